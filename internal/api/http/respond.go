package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"tunehub-backend/internal/domain"
	"tunehub-backend/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

// writeError maps domain sentinels to HTTP statuses. Recoverable, user-facing
// outcomes get specific, actionable messages; everything else is a 503 so the
// caller knows to retry.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInsufficientFunds):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error: "insufficient credits: top up your balance and try again",
		})
	case errors.Is(err, domain.ErrUnknownServiceCode):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidTransition):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrUnauthenticated):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
	case errors.Is(err, domain.ErrUnauthorized):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "not allowed"})
	default:
		logger.Error("Request failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "temporary failure, please retry"})
	}
}
