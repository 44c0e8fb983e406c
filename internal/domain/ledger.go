package domain

import "time"

type EntryKind string

const (
	EntryKindPurchaseCredit EntryKind = "PURCHASE_CREDIT"
	EntryKindJobDebit       EntryKind = "JOB_DEBIT"
	// EntryKindRefund is reserved for support tooling that reverses a
	// payment out-of-band; no service path produces it yet.
	EntryKindRefund          EntryKind = "REFUND"
	EntryKindAdminAdjustment EntryKind = "ADMIN_ADJUSTMENT"
)

// LedgerEntry is an append-only record of a balance mutation. Replaying an
// account's entries in creation order from the first BalanceBeforeCents must
// reproduce every subsequent before/after pair and the current balance.
type LedgerEntry struct {
	ID                 int64     `json:"id"`
	AccountID          int32     `json:"account_id"`
	Kind               EntryKind `json:"kind"`
	AmountCents        int64     `json:"amount_cents"` // positive for credit, negative for debit
	BalanceBeforeCents int64     `json:"balance_before_cents"`
	BalanceAfterCents  int64     `json:"balance_after_cents"`
	JobRef             *int32    `json:"job_ref,omitempty"`
	ExternalRef        *string   `json:"external_ref,omitempty"` // payment provider event id, unique per credit
	Description        string    `json:"description"`
	CreatedOn          time.Time `json:"created_on"`
}
