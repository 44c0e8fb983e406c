package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tunehub-backend/internal/domain"
	"tunehub-backend/internal/logger"
	"tunehub-backend/internal/repository"
)

type jobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) repository.JobRepository {
	return &jobRepository{db: db}
}

const selectJobColumns = `id, public_ref, owner_id, status, vehicle, priced_items, credits_used_cents, assigned_admin, revision_count, started_on, completed_on, created_on, updated_on`

// CreateWithDebit funds and persists a new job as one transaction. The
// conditional balance decrement, the ledger entry, the job row, and the
// entry's job_ref backfill either all land or none do. A debited-but-jobless
// state is unreachable.
func (r *jobRepository) CreateWithDebit(ctx context.Context, job *domain.Job) (*domain.LedgerEntry, error) {
	vehicleJSON, err := json.Marshal(job.Vehicle)
	if err != nil {
		return nil, err
	}
	itemsJSON, err := json.Marshal(job.PricedItems)
	if err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	entry, err := debitTx(ctx, tx, job.OwnerID, job.CreditsUsed, nil, domain.EntryKindJobDebit,
		fmt.Sprintf("Tuning job %s", job.PublicRef))
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	job.Status = domain.JobStatusPending
	job.CreatedOn = now
	job.UpdatedOn = now
	err = tx.QueryRowContext(ctx,
		`INSERT INTO jobs (public_ref, owner_id, status, vehicle, priced_items, credits_used_cents, revision_count, created_on, updated_on)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
		job.PublicRef, job.OwnerID, job.Status, vehicleJSON, itemsJSON, job.CreditsUsed,
		job.RevisionCount, job.CreatedOn, job.UpdatedOn).Scan(&job.ID)
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE ledger_entries SET job_ref = $1 WHERE id = $2`, job.ID, entry.ID); err != nil {
		return nil, err
	}
	entry.JobRef = &job.ID

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	logger.Info("Job created with debit", "job_id", job.ID, "owner_id", job.OwnerID, "credits_used", job.CreditsUsed)
	return entry, nil
}

func scanJob(row interface{ Scan(...any) error }) (*domain.Job, error) {
	var (
		j           domain.Job
		vehicleJSON []byte
		itemsJSON   []byte
	)
	err := row.Scan(&j.ID, &j.PublicRef, &j.OwnerID, &j.Status, &vehicleJSON, &itemsJSON,
		&j.CreditsUsed, &j.AssignedAdmin, &j.RevisionCount, &j.StartedOn, &j.CompletedOn,
		&j.CreatedOn, &j.UpdatedOn)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(vehicleJSON, &j.Vehicle); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(itemsJSON, &j.PricedItems); err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *jobRepository) GetByID(ctx context.Context, id int32) (*domain.Job, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+selectJobColumns+` FROM jobs WHERE id = $1`, id)
	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("job %d: %w", id, domain.ErrNotFound)
	}
	return job, err
}

func (r *jobRepository) ListByOwner(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.Job, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + selectJobColumns + ` FROM jobs WHERE owner_id = $1`
	args := []interface{}{ownerID}
	argIdx := 2
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	return r.queryJobs(ctx, query, count, args...)
}

func (r *jobRepository) ListByStatus(ctx context.Context, status domain.JobStatus, page, pageSize int32) ([]domain.Job, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	if err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM jobs WHERE status = $1`, status).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + selectJobColumns + ` FROM jobs WHERE status = $1 ORDER BY created_on ASC LIMIT $2 OFFSET $3`
	return r.queryJobs(ctx, query, count, status, pageSize, offset)
}

func (r *jobRepository) queryJobs(ctx context.Context, query string, count int32, args ...interface{}) ([]domain.Job, int32, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, count, rows.Err()
}

// UpdateStatus persists an already-applied transition, guarded by the status
// the caller read. Zero rows means a concurrent transition won; the caller
// reloads and re-validates against the table.
func (r *jobRepository) UpdateStatus(ctx context.Context, job *domain.Job, from domain.JobStatus) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE jobs SET status=$1, assigned_admin=$2, revision_count=$3, started_on=$4, completed_on=$5, updated_on=$6
		 WHERE id=$7 AND status=$8`,
		job.Status, job.AssignedAdmin, job.RevisionCount, job.StartedOn, job.CompletedOn,
		job.UpdatedOn, job.ID, from)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}
