package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"tunehub-backend/internal/jobs"
	"tunehub-backend/internal/logger"
)

// Scheduler manages cron job scheduling.
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

func NewScheduler(jobRunner *jobs.JobRunner) *Scheduler {
	// UTC with seconds precision, matching the cron expressions in config.
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	s.registerJobs()
	return s
}

func (s *Scheduler) registerJobs() {
	cfg := s.jobs.Config().Scheduler

	if _, err := s.cron.AddFunc(cfg.AuditLedgerChains, s.jobs.AuditLedgerChains); err != nil {
		logger.Error("Failed to register AuditLedgerChains job", "error", err)
	}

	if _, err := s.cron.AddFunc(cfg.SendStaleJobReminders, s.jobs.SendStaleJobReminders); err != nil {
		logger.Error("Failed to register SendStaleJobReminders job", "error", err)
	}

	logger.Info("All cron jobs registered successfully")
}

// Start begins the cron scheduler.
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
	logger.Info("Cron scheduler started successfully")
}

// Stop gracefully stops the cron scheduler.
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// IsRunning returns true if the scheduler has registered entries.
func (s *Scheduler) IsRunning() bool {
	return len(s.cron.Entries()) > 0
}
