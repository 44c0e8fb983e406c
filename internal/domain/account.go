package domain

import "time"

type AccountRole string

const (
	AccountRoleCustomer AccountRole = "CUSTOMER"
	AccountRoleAdmin    AccountRole = "ADMIN"
)

// Account holds the authoritative credit balance. The balance is mutated
// only by the ledger repository's debit/credit operations; no other code
// path writes it.
type Account struct {
	ID           int32       `json:"id"`
	Email        string      `json:"email"`
	Name         string      `json:"name"`
	Role         AccountRole `json:"role"`
	BalanceCents int64       `json:"balance_cents"`
	CreatedOn    time.Time   `json:"created_on"`
	UpdatedOn    time.Time   `json:"updated_on"`
}
