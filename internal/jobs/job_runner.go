package jobs

import (
	"database/sql"

	"tunehub-backend/internal/config"
	"tunehub-backend/internal/logger"
	"tunehub-backend/internal/repository/postgres"
	"tunehub-backend/internal/service"
)

// JobRunner coordinates all scheduled maintenance work.
type JobRunner struct {
	db       *sql.DB
	store    *postgres.Store
	services *Services
	config   *config.Config
}

// Services holds the service dependencies scheduled jobs need.
type Services struct {
	Email service.EmailService
}

func NewJobRunner(db *sql.DB, store *postgres.Store, services *Services, cfg *config.Config) *JobRunner {
	return &JobRunner{
		db:       db,
		store:    store,
		services: services,
		config:   cfg,
	}
}

func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery.
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllNightlyJobs runs every nightly job, for manual execution.
func (jr *JobRunner) RunAllNightlyJobs() {
	jr.AuditLedgerChains()
	jr.SendStaleJobReminders()
}
