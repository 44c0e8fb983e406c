package service

import (
	"context"
	"strings"
	"testing"

	"tunehub-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestLedgerService_AdminAdjust(t *testing.T) {
	ctx := context.Background()

	t.Run("PositiveAmountCredits", func(t *testing.T) {
		ledgerRepo := new(MockLedgerRepo)
		svc := NewLedgerService(ledgerRepo)

		ledgerRepo.On("Credit", ctx, int32(7), int64(2000),
			mock.MatchedBy(func(ref string) bool { return strings.HasPrefix(ref, "adj_") }),
			domain.EntryKindAdminAdjustment, mock.AnythingOfType("string")).
			Return(&domain.LedgerEntry{ID: 30, AmountCents: 2000}, true, nil)

		entry, err := svc.AdminAdjust(ctx, 1, 7, 2000, "goodwill after delayed delivery")
		assert.NoError(t, err)
		assert.Equal(t, int64(30), entry.ID)
		ledgerRepo.AssertExpectations(t)
	})

	t.Run("NegativeAmountDebitsWithFloor", func(t *testing.T) {
		ledgerRepo := new(MockLedgerRepo)
		svc := NewLedgerService(ledgerRepo)

		// The correction goes through the same conditional debit as job
		// funding, so an over-large claw-back fails instead of overdrawing.
		ledgerRepo.On("Debit", ctx, int32(7), int64(2500), (*int32)(nil),
			domain.EntryKindAdminAdjustment, mock.AnythingOfType("string")).
			Return(nil, domain.ErrInsufficientFunds)

		_, err := svc.AdminAdjust(ctx, 1, 7, -2500, "reverse mistaken credit")
		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
		ledgerRepo.AssertExpectations(t)
	})

	t.Run("RequiresReason", func(t *testing.T) {
		svc := NewLedgerService(new(MockLedgerRepo))
		_, err := svc.AdminAdjust(ctx, 1, 7, 500, "")
		assert.Error(t, err)
	})

	t.Run("RejectsZeroAmount", func(t *testing.T) {
		svc := NewLedgerService(new(MockLedgerRepo))
		_, err := svc.AdminAdjust(ctx, 1, 7, 0, "no-op")
		assert.Error(t, err)
	})
}
