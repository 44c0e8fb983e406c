package repository

import (
	"context"

	"tunehub-backend/internal/domain"
)

type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id int32) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	ListIDs(ctx context.Context) ([]int32, error)
}

// LedgerRepository exclusively owns account balances and ledger entries.
// Debit and Credit are the only write paths to a balance; both append
// exactly one entry per successful call.
type LedgerRepository interface {
	// Debit atomically checks and decrements the balance. Returns
	// domain.ErrInsufficientFunds without mutating anything if the balance
	// does not cover the amount. amountCents must be positive.
	Debit(ctx context.Context, accountID int32, amountCents int64, jobRef *int32, kind domain.EntryKind, description string) (*domain.LedgerEntry, error)

	// Credit increments the balance, keyed by externalRef for idempotency.
	// Redelivery with the same externalRef hits the unique index
	// (domain.ErrDuplicateExternalRef is the condition's name; it never
	// escapes this layer): the original entry is returned with
	// created=false and the balance is untouched.
	Credit(ctx context.Context, accountID int32, amountCents int64, externalRef string, kind domain.EntryKind, description string) (entry *domain.LedgerEntry, created bool, err error)

	GetBalance(ctx context.Context, accountID int32) (int64, error)
	GetEntryByExternalRef(ctx context.Context, externalRef string) (*domain.LedgerEntry, error)
	ListEntries(ctx context.Context, accountID int32, page, pageSize int32) ([]domain.LedgerEntry, int32, error)

	// VerifyChain replays an account's entries oldest-first and reports the
	// recomputed final balance alongside the stored one. Used by the audit
	// sweep.
	VerifyChain(ctx context.Context, accountID int32) (replayed, stored int64, err error)
}

type CatalogRepository interface {
	Create(ctx context.Context, item *domain.ServiceCatalogItem) error
	Update(ctx context.Context, item *domain.ServiceCatalogItem) error
	GetByCode(ctx context.Context, code string) (*domain.ServiceCatalogItem, error)
	ListActiveByCodes(ctx context.Context, codes []string) ([]domain.ServiceCatalogItem, error)
	List(ctx context.Context, includeInactive bool) ([]domain.ServiceCatalogItem, error)
}

type JobRepository interface {
	// CreateWithDebit persists the job and its funding debit in a single
	// transaction: either both exist afterwards or neither does. The
	// returned entry carries the new job's id as its JobRef.
	CreateWithDebit(ctx context.Context, job *domain.Job) (*domain.LedgerEntry, error)

	GetByID(ctx context.Context, id int32) (*domain.Job, error)
	ListByOwner(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.Job, int32, error)
	ListByStatus(ctx context.Context, status domain.JobStatus, page, pageSize int32) ([]domain.Job, int32, error)

	// UpdateStatus applies a pre-validated transition with an optimistic
	// status check (WHERE status = from). Returns false with no error when
	// another writer got there first; the caller re-validates.
	UpdateStatus(ctx context.Context, job *domain.Job, from domain.JobStatus) (bool, error)
}

type MessageRepository interface {
	// Create inserts a message keyed by its client-generated UUID. A
	// duplicate id is a silent no-op, matching the optimistic-insert model.
	Create(ctx context.Context, msg *domain.Message) error
	ListByJob(ctx context.Context, jobID int32, includeInternal bool) ([]domain.Message, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, accountID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, accountID int32) error
}
