package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tunehub-backend/internal/domain"
	"tunehub-backend/internal/logger"
	"tunehub-backend/internal/repository"

	"github.com/lib/pq"
)

type ledgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) repository.LedgerRepository {
	return &ledgerRepository{db: db}
}

const insertEntryQuery = `INSERT INTO ledger_entries
	(account_id, kind, amount_cents, balance_before_cents, balance_after_cents, job_ref, external_ref, description, created_on)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`

// debitTx runs the conditional decrement and entry insert inside an existing
// transaction. Shared with the job repository's create-with-debit flow.
func debitTx(ctx context.Context, tx *sql.Tx, accountID int32, amountCents int64, jobRef *int32, kind domain.EntryKind, description string) (*domain.LedgerEntry, error) {
	if amountCents <= 0 {
		return nil, fmt.Errorf("debit amount must be positive, got %d", amountCents)
	}

	// Atomic compare-and-decrement: two concurrent debits can never both
	// observe a stale balance, and a debit below zero matches no row.
	var after int64
	err := tx.QueryRowContext(ctx,
		`UPDATE accounts SET balance_cents = balance_cents - $1, updated_on = $2
		 WHERE id = $3 AND balance_cents >= $1 RETURNING balance_cents`,
		amountCents, time.Now().UTC(), accountID).Scan(&after)
	if errors.Is(err, sql.ErrNoRows) {
		var exists bool
		if checkErr := tx.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM accounts WHERE id = $1)`, accountID).Scan(&exists); checkErr != nil {
			return nil, checkErr
		}
		if !exists {
			return nil, fmt.Errorf("account %d: %w", accountID, domain.ErrNotFound)
		}
		return nil, domain.ErrInsufficientFunds
	}
	if err != nil {
		return nil, err
	}

	entry := &domain.LedgerEntry{
		AccountID:          accountID,
		Kind:               kind,
		AmountCents:        -amountCents,
		BalanceBeforeCents: after + amountCents,
		BalanceAfterCents:  after,
		JobRef:             jobRef,
		Description:        description,
		CreatedOn:          time.Now().UTC(),
	}
	err = tx.QueryRowContext(ctx, insertEntryQuery,
		entry.AccountID, entry.Kind, entry.AmountCents, entry.BalanceBeforeCents,
		entry.BalanceAfterCents, entry.JobRef, entry.ExternalRef, entry.Description,
		entry.CreatedOn).Scan(&entry.ID)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *ledgerRepository) Debit(ctx context.Context, accountID int32, amountCents int64, jobRef *int32, kind domain.EntryKind, description string) (*domain.LedgerEntry, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	entry, err := debitTx(ctx, tx, accountID, amountCents, jobRef, kind, description)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	logger.Debug("Debit applied", "account_id", accountID, "amount_cents", amountCents, "balance_after", entry.BalanceAfterCents)
	return entry, nil
}

func (r *ledgerRepository) Credit(ctx context.Context, accountID int32, amountCents int64, externalRef string, kind domain.EntryKind, description string) (*domain.LedgerEntry, bool, error) {
	if amountCents <= 0 {
		return nil, false, fmt.Errorf("credit amount must be positive, got %d", amountCents)
	}
	if externalRef == "" {
		return nil, false, fmt.Errorf("credit requires an external reference")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, err
	}
	defer tx.Rollback()

	var after int64
	err = tx.QueryRowContext(ctx,
		`UPDATE accounts SET balance_cents = balance_cents + $1, updated_on = $2
		 WHERE id = $3 RETURNING balance_cents`,
		amountCents, time.Now().UTC(), accountID).Scan(&after)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("account %d: %w", accountID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, false, err
	}

	entry := &domain.LedgerEntry{
		AccountID:          accountID,
		Kind:               kind,
		AmountCents:        amountCents,
		BalanceBeforeCents: after - amountCents,
		BalanceAfterCents:  after,
		ExternalRef:        &externalRef,
		Description:        description,
		CreatedOn:          time.Now().UTC(),
	}
	err = tx.QueryRowContext(ctx, insertEntryQuery,
		entry.AccountID, entry.Kind, entry.AmountCents, entry.BalanceBeforeCents,
		entry.BalanceAfterCents, entry.JobRef, entry.ExternalRef, entry.Description,
		entry.CreatedOn).Scan(&entry.ID)
	if err != nil {
		// The unique index on external_ref is the dedup authority. A
		// concurrent or redelivered credit loses the insert race here; the
		// rollback undoes the balance increment and the original entry is
		// returned as an idempotent success.
		if isUniqueViolation(err) {
			_ = tx.Rollback()
			existing, fetchErr := r.GetEntryByExternalRef(ctx, externalRef)
			if fetchErr != nil {
				return nil, false, fetchErr
			}
			logger.Info("Duplicate payment credit ignored", "external_ref", externalRef, "entry_id", existing.ID)
			return existing, false, nil
		}
		return nil, false, err
	}
	if err := tx.Commit(); err != nil {
		return nil, false, err
	}
	logger.Debug("Credit applied", "account_id", accountID, "amount_cents", amountCents, "external_ref", externalRef)
	return entry, true, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func (r *ledgerRepository) GetBalance(ctx context.Context, accountID int32) (int64, error) {
	var balance int64
	err := r.db.QueryRowContext(ctx,
		`SELECT balance_cents FROM accounts WHERE id = $1`, accountID).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("account %d: %w", accountID, domain.ErrNotFound)
	}
	return balance, err
}

const selectEntryColumns = `id, account_id, kind, amount_cents, balance_before_cents, balance_after_cents, job_ref, external_ref, COALESCE(description, ''), created_on`

func scanEntry(row interface{ Scan(...any) error }) (*domain.LedgerEntry, error) {
	var e domain.LedgerEntry
	if err := row.Scan(&e.ID, &e.AccountID, &e.Kind, &e.AmountCents, &e.BalanceBeforeCents,
		&e.BalanceAfterCents, &e.JobRef, &e.ExternalRef, &e.Description, &e.CreatedOn); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *ledgerRepository) GetEntryByExternalRef(ctx context.Context, externalRef string) (*domain.LedgerEntry, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+selectEntryColumns+` FROM ledger_entries WHERE external_ref = $1`, externalRef)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("ledger entry %q: %w", externalRef, domain.ErrNotFound)
	}
	return entry, err
}

func (r *ledgerRepository) ListEntries(ctx context.Context, accountID int32, page, pageSize int32) ([]domain.LedgerEntry, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM ledger_entries WHERE account_id = $1`, accountID).Scan(&count)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+selectEntryColumns+` FROM ledger_entries
		 WHERE account_id = $1 ORDER BY id DESC LIMIT $2 OFFSET $3`,
		accountID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, *entry)
	}
	return entries, count, rows.Err()
}

func (r *ledgerRepository) VerifyChain(ctx context.Context, accountID int32) (int64, int64, error) {
	stored, err := r.GetBalance(ctx, accountID)
	if err != nil {
		return 0, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT amount_cents, balance_before_cents, balance_after_cents FROM ledger_entries
		 WHERE account_id = $1 ORDER BY id ASC`, accountID)
	if err != nil {
		return 0, stored, err
	}
	defer rows.Close()

	var replayed int64
	first := true
	for rows.Next() {
		var amount, before, after int64
		if err := rows.Scan(&amount, &before, &after); err != nil {
			return 0, stored, err
		}
		if first {
			replayed = before
			first = false
		}
		if before != replayed || after != replayed+amount {
			return replayed, stored, fmt.Errorf("ledger chain broken for account %d: entry before=%d after=%d, replayed=%d", accountID, before, after, replayed)
		}
		replayed += amount
	}
	if err := rows.Err(); err != nil {
		return replayed, stored, err
	}
	if first {
		// No entries yet; the stored balance stands alone.
		replayed = stored
	}
	return replayed, stored, nil
}
