package service

import (
	"context"

	"tunehub-backend/internal/domain"
)

type PricingService interface {
	// Price resolves a set of service codes into an immutable snapshot.
	// Duplicate codes are billed once; any unknown or inactive code rejects
	// the whole request.
	Price(ctx context.Context, codes []string) ([]domain.PricedItem, error)
}

type JobService interface {
	// CreateJob prices the requested services and atomically debits the
	// owner before the job exists. On any failure the balance is unchanged.
	CreateJob(ctx context.Context, ownerID int32, vehicle domain.VehicleInfo, codes []string) (*domain.Job, error)

	// Transition moves a job through the lifecycle table, applying the side
	// effects bound to the target status. Concurrent transitions on the same
	// job are serialized; the loser is re-validated and usually rejected.
	Transition(ctx context.Context, actorID int32, jobID int32, to domain.JobStatus, reason string, assignAdmin *int32) (*domain.Job, error)

	GetJob(ctx context.Context, actorID int32, isAdmin bool, jobID int32) (*domain.Job, error)
	ListJobs(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.Job, int32, error)
	ListQueue(ctx context.Context, status domain.JobStatus, page, pageSize int32) ([]domain.Job, int32, error)
}

type LedgerService interface {
	GetBalance(ctx context.Context, accountID int32) (int64, error)
	GetEntries(ctx context.Context, accountID int32, page, pageSize int32) ([]domain.LedgerEntry, int32, error)

	// AdminAdjust applies a signed manual correction. Credits are
	// unconstrained; debits still respect the non-negative invariant.
	AdminAdjust(ctx context.Context, adminID, accountID int32, amountCents int64, reason string) (*domain.LedgerEntry, error)
}

type PaymentService interface {
	// HandlePaymentConfirmed turns a verified provider event into a balance
	// credit exactly once per external reference. Redelivery returns the
	// original entry.
	HandlePaymentConfirmed(ctx context.Context, externalRef string, accountID int32, amountCents int64, label string) (*domain.LedgerEntry, error)
}

type MessageService interface {
	PostMessage(ctx context.Context, msg *domain.Message) (*domain.Message, error)
	ListMessages(ctx context.Context, actorID int32, isAdmin bool, jobID int32) ([]domain.Message, error)
}

type CatalogService interface {
	CreateItem(ctx context.Context, item *domain.ServiceCatalogItem) error
	UpdateItem(ctx context.Context, item *domain.ServiceCatalogItem) error
	ListItems(ctx context.Context, includeInactive bool) ([]domain.ServiceCatalogItem, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, accountID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, accountID, notificationID int32) error
}

type EmailService interface {
	SendJobStatusNotification(ctx context.Context, email, name, jobRef string, status domain.JobStatus, reason string) error
	SendPaymentReceipt(ctx context.Context, email, name string, amountCents int64, label string) error
	SendAdminJobAlert(ctx context.Context, adminEmail, jobRef string, creditsUsed int64) error
	SendStaleJobReminder(ctx context.Context, email, name, jobRef string) error
}
