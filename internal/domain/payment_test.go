package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodePaymentEvent(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		body := []byte(`{"type":"payment.completed","external_ref":"evt_123","account_id":7,"amount_cents":5000,"label":"50 credits"}`)
		evt, err := DecodePaymentEvent(body)
		assert.NoError(t, err)
		assert.Equal(t, "evt_123", evt.ExternalRef)
		assert.Equal(t, int32(7), evt.AccountID)
		assert.Equal(t, int64(5000), evt.AmountCents)
	})

	t.Run("UnknownFieldRejected", func(t *testing.T) {
		body := []byte(`{"type":"payment.completed","external_ref":"evt_123","account_id":7,"amount_cents":5000,"surprise":true}`)
		_, err := DecodePaymentEvent(body)
		assert.Error(t, err)
	})

	t.Run("WrongTypeRejected", func(t *testing.T) {
		body := []byte(`{"type":"payment.refunded","external_ref":"evt_123","account_id":7,"amount_cents":5000}`)
		_, err := DecodePaymentEvent(body)
		assert.Error(t, err)
	})

	t.Run("MissingExternalRefRejected", func(t *testing.T) {
		body := []byte(`{"type":"payment.completed","account_id":7,"amount_cents":5000}`)
		_, err := DecodePaymentEvent(body)
		assert.Error(t, err)
	})

	t.Run("NonPositiveAmountRejected", func(t *testing.T) {
		body := []byte(`{"type":"payment.completed","external_ref":"evt_123","account_id":7,"amount_cents":0}`)
		_, err := DecodePaymentEvent(body)
		assert.Error(t, err)

		body = []byte(`{"type":"payment.completed","external_ref":"evt_123","account_id":7,"amount_cents":-100}`)
		_, err = DecodePaymentEvent(body)
		assert.Error(t, err)
	})

	t.Run("MalformedJSONRejected", func(t *testing.T) {
		_, err := DecodePaymentEvent([]byte(`{"type":`))
		assert.Error(t, err)
	})
}
