package jobs

import (
	"context"
	"time"

	"tunehub-backend/internal/domain"
	"tunehub-backend/internal/logger"
)

// AuditLedgerChains replays every account's ledger entries and compares the
// recomputed balance with the stored one. A mismatch means a write path
// bypassed the ledger; it is logged loudly, never repaired automatically.
func (jr *JobRunner) AuditLedgerChains() {
	jr.runWithRecovery("AuditLedgerChains", func() {
		ctx := context.Background()

		ids, err := jr.store.AccountRepository.ListIDs(ctx)
		if err != nil {
			logger.Error("Failed to list accounts for ledger audit", "error", err)
			return
		}

		var broken int
		for _, id := range ids {
			replayed, stored, err := jr.store.LedgerRepository.VerifyChain(ctx, id)
			if err != nil {
				logger.Error("Ledger chain verification failed", "account_id", id, "error", err)
				broken++
				continue
			}
			if replayed != stored {
				logger.Error("Ledger chain does not match stored balance",
					"account_id", id, "replayed_cents", replayed, "stored_cents", stored)
				broken++
			}
		}
		logger.Info("Ledger audit finished", "accounts_checked", len(ids), "discrepancies", broken)
	})
}

// SendStaleJobReminders nudges customers whose jobs have been waiting for
// their input for more than the configured number of days.
func (jr *JobRunner) SendStaleJobReminders() {
	jr.runWithRecovery("SendStaleJobReminders", func() {
		ctx := context.Background()
		cutoff := time.Now().UTC().AddDate(0, 0, -jr.config.Scheduler.StaleJobDays)

		var page int32 = 1
		for {
			jobs, total, err := jr.store.JobRepository.ListByStatus(ctx, domain.JobStatusWaitingForInfo, page, 100)
			if err != nil {
				logger.Error("Failed to list waiting jobs", "error", err)
				return
			}
			for _, job := range jobs {
				if job.UpdatedOn.After(cutoff) {
					continue
				}
				owner, err := jr.store.AccountRepository.GetByID(ctx, job.OwnerID)
				if err != nil {
					logger.Warn("Skipping reminder, owner lookup failed", "job_id", job.ID, "error", err)
					continue
				}
				if err := jr.services.Email.SendStaleJobReminder(ctx, owner.Email, owner.Name, job.PublicRef); err != nil {
					logger.Warn("Failed to send stale job reminder", "job_id", job.ID, "error", err)
				}
			}
			if int64(page)*100 >= int64(total) {
				return
			}
			page++
		}
	})
}
