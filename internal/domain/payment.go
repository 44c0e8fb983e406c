package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PaymentEventTypeCompleted is the only event shape the engine accepts from
// the payment provider. Anything else is rejected at the boundary before it
// can reach the ledger.
const PaymentEventTypeCompleted = "payment.completed"

// PaymentEvent is the decoded, validated form of a provider webhook payload.
type PaymentEvent struct {
	Type        string `json:"type"`
	ExternalRef string `json:"external_ref"` // provider event/session id, unique per payment
	AccountID   int32  `json:"account_id"`
	AmountCents int64  `json:"amount_cents"`
	Label       string `json:"label"`
}

// DecodePaymentEvent parses a raw webhook body into a known event shape.
// Unknown types, missing references, and non-positive amounts are all
// rejected so downstream code only ever sees well-formed events.
func DecodePaymentEvent(body []byte) (*PaymentEvent, error) {
	var evt PaymentEvent
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&evt); err != nil {
		return nil, fmt.Errorf("malformed payment event: %w", err)
	}
	if evt.Type != PaymentEventTypeCompleted {
		return nil, fmt.Errorf("unsupported payment event type %q", evt.Type)
	}
	if evt.ExternalRef == "" {
		return nil, fmt.Errorf("payment event missing external_ref")
	}
	if evt.AccountID <= 0 {
		return nil, fmt.Errorf("payment event missing account_id")
	}
	if evt.AmountCents <= 0 {
		return nil, fmt.Errorf("payment event amount must be positive, got %d", evt.AmountCents)
	}
	return &evt, nil
}
