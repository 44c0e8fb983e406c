package http

import (
	"net/http"

	"tunehub-backend/internal/security"

	"github.com/gorilla/mux"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Jobs          *JobHandler
	Ledger        *LedgerHandler
	Messages      *MessageHandler
	Catalog       *CatalogHandler
	Notifications *NotificationHandler
	Webhook       *WebhookHandler
}

// NewRouter wires the HTTP surface. The payment webhook authenticates with
// its own signature scheme and sits outside the bearer-token middleware.
func NewRouter(h Handlers, verifier security.TokenVerifier) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/webhooks/payment", h.Webhook.HandlePaymentEvent).Methods(http.MethodPost)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(AuthMiddleware(verifier))

	api.HandleFunc("/jobs", h.Jobs.CreateJob).Methods(http.MethodPost)
	api.HandleFunc("/jobs", h.Jobs.ListJobs).Methods(http.MethodGet)
	api.HandleFunc("/jobs/{id:[0-9]+}", h.Jobs.GetJob).Methods(http.MethodGet)
	api.HandleFunc("/jobs/{id:[0-9]+}/transition", h.Jobs.Transition).Methods(http.MethodPost)
	api.HandleFunc("/jobs/{id:[0-9]+}/messages", h.Messages.PostMessage).Methods(http.MethodPost)
	api.HandleFunc("/jobs/{id:[0-9]+}/messages", h.Messages.ListMessages).Methods(http.MethodGet)

	api.HandleFunc("/ledger/balance", h.Ledger.GetBalance).Methods(http.MethodGet)
	api.HandleFunc("/ledger/entries", h.Ledger.ListEntries).Methods(http.MethodGet)

	api.HandleFunc("/catalog", h.Catalog.ListItems).Methods(http.MethodGet)

	api.HandleFunc("/notifications", h.Notifications.List).Methods(http.MethodGet)
	api.HandleFunc("/notifications/{id:[0-9]+}/read", h.Notifications.MarkAsRead).Methods(http.MethodPost)

	admin := api.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/queue", RequireAdmin(h.Jobs.ListQueue)).Methods(http.MethodGet)
	admin.HandleFunc("/ledger/adjust", RequireAdmin(h.Ledger.AdminAdjust)).Methods(http.MethodPost)
	admin.HandleFunc("/catalog", RequireAdmin(h.Catalog.CreateItem)).Methods(http.MethodPost)
	admin.HandleFunc("/catalog/{id:[0-9]+}", RequireAdmin(h.Catalog.UpdateItem)).Methods(http.MethodPut)

	return r
}
