package http

import (
	"encoding/json"
	"net/http"

	"tunehub-backend/internal/service"
)

type LedgerHandler struct {
	ledgerSvc service.LedgerService
}

func NewLedgerHandler(ledgerSvc service.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerSvc: ledgerSvc}
}

type balanceResponse struct {
	BalanceCents int64 `json:"balance_cents"`
}

func (h *LedgerHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	balance, err := h.ledgerSvc.GetBalance(r.Context(), claims.AccountID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, balanceResponse{BalanceCents: balance})
}

func (h *LedgerHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	page, pageSize := pagination(r)

	entries, total, err := h.ledgerSvc.GetEntries(r.Context(), claims.AccountID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: entries, Total: total})
}

type adjustRequest struct {
	AccountID   int32  `json:"account_id"`
	AmountCents int64  `json:"amount_cents"`
	Reason      string `json:"reason"`
}

func (h *LedgerHandler) AdminAdjust(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	var req adjustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	entry, err := h.ledgerSvc.AdminAdjust(r.Context(), claims.AccountID, req.AccountID, req.AmountCents, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}
