package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"tunehub-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestJobRepository_CreateWithDebit(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewJobRepository(db)
	ctx := context.Background()

	t.Run("DebitAndJobLandTogether", func(t *testing.T) {
		job := &domain.Job{
			PublicRef: "2f0c1b2a-1111-4222-8333-444455556666",
			OwnerID:   3,
			Vehicle:   domain.VehicleInfo{Make: "BMW", Model: "335d", Year: 2014, ECU: "EDC17CP45"},
			PricedItems: []domain.PricedItem{
				{Code: "STAGE_1", Name: "Stage 1", PriceCents: 5000},
				{Code: "DPF_OFF", Name: "DPF removal", PriceCents: 2500},
			},
			CreditsUsed: 7500,
		}

		mock.ExpectBegin()
		mock.ExpectQuery("UPDATE accounts SET balance_cents = balance_cents -").
			WithArgs(int64(7500), sqlmock.AnyArg(), int32(3)).
			WillReturnRows(sqlmock.NewRows([]string{"balance_cents"}).AddRow(2500))
		mock.ExpectQuery("INSERT INTO ledger_entries").
			WithArgs(int32(3), string(domain.EntryKindJobDebit), int64(-7500), int64(10000), int64(2500),
				nil, nil, "Tuning job "+job.PublicRef, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
		mock.ExpectQuery("INSERT INTO jobs").
			WithArgs(job.PublicRef, int32(3), string(domain.JobStatusPending), sqlmock.AnyArg(), sqlmock.AnyArg(),
				int64(7500), int32(0), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
		mock.ExpectExec("UPDATE ledger_entries SET job_ref").
			WithArgs(int32(42), int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		entry, err := repo.CreateWithDebit(ctx, job)
		assert.NoError(t, err)
		assert.Equal(t, int32(42), job.ID)
		assert.Equal(t, domain.JobStatusPending, job.Status)
		assert.Equal(t, int64(7), entry.ID)
		assert.NotNil(t, entry.JobRef)
		assert.Equal(t, int32(42), *entry.JobRef)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("InsufficientFundsLeavesNothingBehind", func(t *testing.T) {
		job := &domain.Job{
			PublicRef:   "9a8b7c6d-1111-4222-8333-444455556666",
			OwnerID:     3,
			Vehicle:     domain.VehicleInfo{Make: "Audi", Model: "A4", Year: 2018, ECU: "MED17"},
			PricedItems: []domain.PricedItem{{Code: "STAGE_2", Name: "Stage 2", PriceCents: 9000}},
			CreditsUsed: 9000,
		}

		mock.ExpectBegin()
		mock.ExpectQuery("UPDATE accounts SET balance_cents = balance_cents -").
			WithArgs(int64(9000), sqlmock.AnyArg(), int32(3)).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(int32(3)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectRollback()

		_, err := repo.CreateWithDebit(ctx, job)
		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
		assert.Equal(t, int32(0), job.ID, "no job row on a failed debit")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestJobRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewJobRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery("SELECT (.+) FROM jobs WHERE id").
			WithArgs(int32(42)).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "public_ref", "owner_id", "status", "vehicle", "priced_items",
				"credits_used_cents", "assigned_admin", "revision_count",
				"started_on", "completed_on", "created_on", "updated_on",
			}).AddRow(42, "2f0c1b2a-1111-4222-8333-444455556666", 3, "IN_PROGRESS",
				[]byte(`{"make":"BMW","model":"335d","year":2014,"ecu":"EDC17CP45"}`),
				[]byte(`[{"code":"STAGE_1","name":"Stage 1","price_cents":5000}]`),
				5000, nil, 0, now, nil, now, now))

		job, err := repo.GetByID(ctx, 42)
		assert.NoError(t, err)
		assert.Equal(t, domain.JobStatusInProgress, job.Status)
		assert.Equal(t, "BMW", job.Vehicle.Make)
		assert.Len(t, job.PricedItems, 1)
		assert.Equal(t, int64(5000), job.PricedItems[0].PriceCents)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM jobs WHERE id").
			WithArgs(int32(404)).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(ctx, 404)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestJobRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewJobRepository(db)
	ctx := context.Background()

	started := time.Now().UTC()
	job := &domain.Job{
		ID:        42,
		Status:    domain.JobStatusInProgress,
		StartedOn: &started,
		UpdatedOn: started,
	}

	t.Run("Applied", func(t *testing.T) {
		mock.ExpectExec("UPDATE jobs SET status=").
			WithArgs(string(domain.JobStatusInProgress), nil, int32(0), sqlmock.AnyArg(), nil,
				sqlmock.AnyArg(), int32(42), string(domain.JobStatusPending)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		applied, err := repo.UpdateStatus(ctx, job, domain.JobStatusPending)
		assert.NoError(t, err)
		assert.True(t, applied)
	})

	t.Run("LostRaceReportsZeroRows", func(t *testing.T) {
		mock.ExpectExec("UPDATE jobs SET status=").
			WithArgs(string(domain.JobStatusInProgress), nil, int32(0), sqlmock.AnyArg(), nil,
				sqlmock.AnyArg(), int32(42), string(domain.JobStatusPending)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		applied, err := repo.UpdateStatus(ctx, job, domain.JobStatusPending)
		assert.NoError(t, err)
		assert.False(t, applied, "a concurrent transition already moved the job")
	})
}
