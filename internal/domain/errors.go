package domain

import "errors"

var (
	// ErrInsufficientFunds is returned when a debit would take an account
	// balance below zero. Recoverable; nothing is mutated.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrUnknownServiceCode is returned when pricing is requested for a code
	// that is absent from the catalog or inactive. No partial pricing.
	ErrUnknownServiceCode = errors.New("unknown service code")

	// ErrInvalidTransition is returned when a job status change is not in
	// the transition table. The job is left unchanged.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrDuplicateExternalRef signals that a ledger entry already exists for
	// the external reference. Callers treat it as idempotent success; the
	// ledger repository resolves it internally and never surfaces it.
	ErrDuplicateExternalRef = errors.New("duplicate external reference")

	ErrUnauthenticated = errors.New("unauthenticated")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrNotFound        = errors.New("not found")
)
