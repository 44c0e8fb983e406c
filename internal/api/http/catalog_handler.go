package http

import (
	"encoding/json"
	"net/http"

	"tunehub-backend/internal/domain"
	"tunehub-backend/internal/service"
)

type CatalogHandler struct {
	catalogSvc service.CatalogService
}

func NewCatalogHandler(catalogSvc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc}
}

func (h *CatalogHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	includeInactive := claims.IsAdmin() && r.URL.Query().Get("include_inactive") == "true"

	items, err := h.catalogSvc.ListItems(r.Context(), includeInactive)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *CatalogHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var item domain.ServiceCatalogItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}
	if err := h.catalogSvc.CreateItem(r.Context(), &item); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *CatalogHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid catalog item id"})
		return
	}

	var item domain.ServiceCatalogItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}
	item.ID = id
	if err := h.catalogSvc.UpdateItem(r.Context(), &item); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}
