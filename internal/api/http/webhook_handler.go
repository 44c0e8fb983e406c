package http

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"

	"tunehub-backend/internal/domain"
	"tunehub-backend/internal/logger"
	"tunehub-backend/internal/service"
)

// WebhookHandler receives asynchronous payment confirmations. Delivery is
// at-least-once and unordered; everything downstream leans on the ledger's
// external_ref idempotency, so this handler just verifies and decodes.
type WebhookHandler struct {
	paymentSvc service.PaymentService
	secret     []byte
}

func NewWebhookHandler(paymentSvc service.PaymentService, sharedSecret string) *WebhookHandler {
	return &WebhookHandler{paymentSvc: paymentSvc, secret: []byte(sharedSecret)}
}

const signatureHeader = "X-Payment-Signature"

// HandlePaymentEvent verifies the HMAC signature over the raw body before
// anything is parsed or mutated. Unverifiable or malformed events never reach
// the ledger.
func (h *WebhookHandler) HandlePaymentEvent(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unreadable body"})
		return
	}

	if !h.verifySignature(body, r.Header.Get(signatureHeader)) {
		logger.Warn("Rejected payment event with bad signature", "remote", r.RemoteAddr)
		writeError(w, domain.ErrUnauthenticated)
		return
	}

	evt, err := domain.DecodePaymentEvent(body)
	if err != nil {
		logger.Warn("Rejected malformed payment event", "error", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	entry, err := h.paymentSvc.HandlePaymentConfirmed(r.Context(), evt.ExternalRef, evt.AccountID, evt.AmountCents, evt.Label)
	if err != nil {
		writeError(w, err)
		return
	}

	// Duplicates land here too: same entry, same 200, invisible to anyone.
	writeJSON(w, http.StatusOK, entry)
}

func (h *WebhookHandler) verifySignature(body []byte, signature string) bool {
	if signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, h.secret)
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
