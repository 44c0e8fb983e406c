package http

import (
	"encoding/json"
	"net/http"

	"tunehub-backend/internal/domain"
	"tunehub-backend/internal/service"
)

type MessageHandler struct {
	msgSvc service.MessageService
}

func NewMessageHandler(msgSvc service.MessageService) *MessageHandler {
	return &MessageHandler{msgSvc: msgSvc}
}

type postMessageRequest struct {
	ID       string `json:"id,omitempty"` // client-generated uuid for optimistic insert
	Body     string `json:"body"`
	Internal bool   `json:"internal,omitempty"`
}

func (h *MessageHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	jobID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid job id"})
		return
	}

	var req postMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}
	if req.Internal && !claims.IsAdmin() {
		writeError(w, domain.ErrUnauthorized)
		return
	}

	msg := &domain.Message{
		ID:       req.ID,
		JobID:    jobID,
		SenderID: claims.AccountID,
		Body:     req.Body,
		Internal: req.Internal,
	}
	created, err := h.msgSvc.PostMessage(r.Context(), msg)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *MessageHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	jobID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid job id"})
		return
	}

	msgs, err := h.msgSvc.ListMessages(r.Context(), claims.AccountID, claims.IsAdmin(), jobID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}
