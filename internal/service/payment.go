package service

import (
	"context"
	"fmt"
	"strconv"

	"tunehub-backend/internal/domain"
	"tunehub-backend/internal/events"
	"tunehub-backend/internal/logger"
	"tunehub-backend/internal/repository"
)

type paymentService struct {
	ledgerRepo  repository.LedgerRepository
	accountRepo repository.AccountRepository
	noteRepo    repository.NotificationRepository
	emailSvc    EmailService
	broadcaster *events.Broadcaster
}

func NewPaymentService(
	ledgerRepo repository.LedgerRepository,
	accountRepo repository.AccountRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
	broadcaster *events.Broadcaster,
) PaymentService {
	return &paymentService{
		ledgerRepo:  ledgerRepo,
		accountRepo: accountRepo,
		noteRepo:    noteRepo,
		emailSvc:    emailSvc,
		broadcaster: broadcaster,
	}
}

// HandlePaymentConfirmed credits a confirmed purchase. The ledger's unique
// external_ref index is the only dedup state: this workflow keeps none of its
// own, so redelivery and out-of-order delivery collapse into the same call.
// Everything after the Credit is best-effort and never fails the operation.
func (s *paymentService) HandlePaymentConfirmed(ctx context.Context, externalRef string, accountID int32, amountCents int64, label string) (*domain.LedgerEntry, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("payment %s: %w", externalRef, err)
	}

	description := label
	if description == "" {
		description = "Credit purchase"
	}
	entry, created, err := s.ledgerRepo.Credit(ctx, accountID, amountCents, externalRef,
		domain.EntryKindPurchaseCredit, description)
	if err != nil {
		return nil, err
	}

	// Side effects only on the first delivery; redelivery is invisible.
	if created {
		notif := &domain.Notification{
			AccountID: account.ID,
			Title:     "Credits added",
			Message:   fmt.Sprintf("%d credits were added to your balance", amountCents),
			Attributes: map[string]string{
				"type":         "PAYMENT_CREDIT",
				"external_ref": externalRef,
			},
		}
		if err := s.noteRepo.Create(ctx, notif); err != nil {
			logger.Warn("Failed to record payment notification", "external_ref", externalRef, "error", err)
		}
		if err := s.emailSvc.SendPaymentReceipt(ctx, account.Email, account.Name, amountCents, label); err != nil {
			logger.Warn("Failed to send payment receipt email", "external_ref", externalRef, "error", err)
		}
		s.broadcaster.Publish(events.ChangeEvent{
			EntityType: events.EntityTypeAccount,
			EntityID:   strconv.Itoa(int(accountID)),
			ChangeKind: events.ChangeKindUpdated,
		})
	}

	return entry, nil
}
