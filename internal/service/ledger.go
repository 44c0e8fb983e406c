package service

import (
	"context"
	"fmt"

	"tunehub-backend/internal/domain"
	"tunehub-backend/internal/logger"
	"tunehub-backend/internal/repository"

	"github.com/google/uuid"
)

type ledgerService struct {
	ledgerRepo repository.LedgerRepository
}

func NewLedgerService(ledgerRepo repository.LedgerRepository) LedgerService {
	return &ledgerService{ledgerRepo: ledgerRepo}
}

func (s *ledgerService) GetBalance(ctx context.Context, accountID int32) (int64, error) {
	return s.ledgerRepo.GetBalance(ctx, accountID)
}

func (s *ledgerService) GetEntries(ctx context.Context, accountID int32, page, pageSize int32) ([]domain.LedgerEntry, int32, error) {
	return s.ledgerRepo.ListEntries(ctx, accountID, page, pageSize)
}

// AdminAdjust issues a manual correction. A positive amount credits the
// account under a generated reference; a negative amount goes through the
// same conditional debit as job funding, so even an admin cannot push a
// balance below zero.
func (s *ledgerService) AdminAdjust(ctx context.Context, adminID, accountID int32, amountCents int64, reason string) (*domain.LedgerEntry, error) {
	if reason == "" {
		return nil, fmt.Errorf("adjustment requires a reason")
	}
	if amountCents == 0 {
		return nil, fmt.Errorf("adjustment amount must be non-zero")
	}

	description := fmt.Sprintf("Admin %d adjustment: %s", adminID, reason)
	var entry *domain.LedgerEntry
	var err error
	if amountCents > 0 {
		entry, _, err = s.ledgerRepo.Credit(ctx, accountID, amountCents,
			"adj_"+uuid.NewString(), domain.EntryKindAdminAdjustment, description)
	} else {
		entry, err = s.ledgerRepo.Debit(ctx, accountID, -amountCents, nil,
			domain.EntryKindAdminAdjustment, description)
	}
	if err != nil {
		return nil, err
	}
	logger.Info("Admin adjustment applied", "admin_id", adminID, "account_id", accountID, "amount_cents", amountCents)
	return entry, nil
}
