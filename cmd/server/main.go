package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	api "tunehub-backend/internal/api/http"
	"tunehub-backend/internal/config"
	"tunehub-backend/internal/events"
	"tunehub-backend/internal/logger"
	"tunehub-backend/internal/repository/postgres"
	"tunehub-backend/internal/security"
	"tunehub-backend/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting TuneHub Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Repositories
	store := postgres.NewStore(db)

	// Security
	tokenVerifier := security.NewTokenVerifier(cfg.JWT.Secret)

	// Change notification channel
	broadcaster := events.NewBroadcaster()

	// Services
	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName)
	pricingSvc := service.NewPricingService(store.CatalogRepository)
	jobSvc := service.NewJobService(
		store.JobRepository,
		store.AccountRepository,
		store.NotificationRepository,
		pricingSvc,
		emailSvc,
		cfg.Email.AdminEmail,
		broadcaster,
	)
	ledgerSvc := service.NewLedgerService(store.LedgerRepository)
	paymentSvc := service.NewPaymentService(
		store.LedgerRepository,
		store.AccountRepository,
		store.NotificationRepository,
		emailSvc,
		broadcaster,
	)
	msgSvc := service.NewMessageService(store.MessageRepository, store.JobRepository, broadcaster)
	catalogSvc := service.NewCatalogService(store.CatalogRepository)
	noteSvc := service.NewNotificationService(store.NotificationRepository)

	// HTTP API
	router := api.NewRouter(api.Handlers{
		Jobs:          api.NewJobHandler(jobSvc),
		Ledger:        api.NewLedgerHandler(ledgerSvc),
		Messages:      api.NewMessageHandler(msgSvc),
		Catalog:       api.NewCatalogHandler(catalogSvc),
		Notifications: api.NewNotificationHandler(noteSvc),
		Webhook:       api.NewWebhookHandler(paymentSvc, cfg.Payment.WebhookSecret),
	}, tokenVerifier)

	addr := cfg.GetServerAddress()
	logger.Info("HTTP server listening", "address", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		logger.Error("HTTP server stopped", "error", err)
		log.Fatalf("HTTP server stopped: %v", err)
	}
}
