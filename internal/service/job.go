package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"tunehub-backend/internal/domain"
	"tunehub-backend/internal/events"
	"tunehub-backend/internal/logger"
	"tunehub-backend/internal/repository"

	"github.com/google/uuid"
)

type jobService struct {
	jobRepo     repository.JobRepository
	accountRepo repository.AccountRepository
	noteRepo    repository.NotificationRepository
	pricing     PricingService
	emailSvc    EmailService
	adminEmail  string
	broadcaster *events.Broadcaster
}

func NewJobService(
	jobRepo repository.JobRepository,
	accountRepo repository.AccountRepository,
	noteRepo repository.NotificationRepository,
	pricing PricingService,
	emailSvc EmailService,
	adminEmail string,
	broadcaster *events.Broadcaster,
) JobService {
	return &jobService{
		jobRepo:     jobRepo,
		accountRepo: accountRepo,
		noteRepo:    noteRepo,
		pricing:     pricing,
		emailSvc:    emailSvc,
		adminEmail:  adminEmail,
		broadcaster: broadcaster,
	}
}

func (s *jobService) CreateJob(ctx context.Context, ownerID int32, vehicle domain.VehicleInfo, codes []string) (*domain.Job, error) {
	priced, err := s.pricing.Price(ctx, codes)
	if err != nil {
		return nil, err
	}

	job := &domain.Job{
		PublicRef:   uuid.NewString(),
		OwnerID:     ownerID,
		Vehicle:     vehicle,
		PricedItems: priced,
		CreditsUsed: domain.TotalPriceCents(priced),
	}

	// Debit and job creation are one storage transaction; a failure on
	// either side leaves the balance untouched.
	entry, err := s.jobRepo.CreateWithDebit(ctx, job)
	if err != nil {
		return nil, err
	}
	logger.Info("Job funded", "job_id", job.ID, "entry_id", entry.ID,
		"balance_after", entry.BalanceAfterCents)

	owner, err := s.accountRepo.GetByID(ctx, ownerID)
	if err != nil {
		logger.Warn("Skipping job creation notification, owner lookup failed", "job_id", job.ID, "error", err)
	}
	if owner != nil {
		notif := &domain.Notification{
			AccountID: owner.ID,
			Title:     "Job received",
			Message:   fmt.Sprintf("Your tuning job %s was created and %d credits were reserved", job.PublicRef, job.CreditsUsed),
			Attributes: map[string]string{
				"type":   "JOB_CREATED",
				"job_id": strconv.Itoa(int(job.ID)),
			},
		}
		_ = s.noteRepo.Create(ctx, notif)
	}

	if s.adminEmail != "" {
		if err := s.emailSvc.SendAdminJobAlert(ctx, s.adminEmail, job.PublicRef, job.CreditsUsed); err != nil {
			logger.Warn("Failed to send admin job alert", "job_id", job.ID, "error", err)
		}
	}

	s.broadcaster.Publish(events.ChangeEvent{
		EntityType: events.EntityTypeJob,
		EntityID:   strconv.Itoa(int(job.ID)),
		ChangeKind: events.ChangeKindCreated,
	})
	return job, nil
}

func (s *jobService) Transition(ctx context.Context, actorID int32, jobID int32, to domain.JobStatus, reason string, assignAdmin *int32) (*domain.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	for {
		from := job.Status
		if err := domain.ApplyTransition(job, to, domain.TransitionParams{
			Reason:        reason,
			AssignedAdmin: assignAdmin,
			Now:           time.Now().UTC(),
		}); err != nil {
			return nil, err
		}

		applied, err := s.jobRepo.UpdateStatus(ctx, job, from)
		if err != nil {
			return nil, err
		}
		if applied {
			break
		}

		// A concurrent transition won the race. Reload and re-validate the
		// requested step against the post-transition state.
		job, err = s.jobRepo.GetByID(ctx, jobID)
		if err != nil {
			return nil, err
		}
	}

	s.notifyTransition(ctx, job, reason)
	s.broadcaster.Publish(events.ChangeEvent{
		EntityType: events.EntityTypeJob,
		EntityID:   strconv.Itoa(int(job.ID)),
		ChangeKind: events.ChangeKindUpdated,
	})
	return job, nil
}

// notifyTransition records a persisted notification and sends a best-effort
// email. Neither failure affects the already-committed transition.
func (s *jobService) notifyTransition(ctx context.Context, job *domain.Job, reason string) {
	owner, err := s.accountRepo.GetByID(ctx, job.OwnerID)
	if err != nil {
		logger.Warn("Skipping transition notification, owner lookup failed", "job_id", job.ID, "error", err)
		return
	}

	notif := &domain.Notification{
		AccountID: owner.ID,
		Title:     "Job status updated",
		Message:   fmt.Sprintf("Job %s is now %s", job.PublicRef, job.Status),
		Attributes: map[string]string{
			"type":   "JOB_STATUS",
			"job_id": strconv.Itoa(int(job.ID)),
			"status": string(job.Status),
		},
	}
	_ = s.noteRepo.Create(ctx, notif)

	if err := s.emailSvc.SendJobStatusNotification(ctx, owner.Email, owner.Name, job.PublicRef, job.Status, reason); err != nil {
		logger.Warn("Failed to send job status email", "job_id", job.ID, "error", err)
	}
}

func (s *jobService) GetJob(ctx context.Context, actorID int32, isAdmin bool, jobID int32) (*domain.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && job.OwnerID != actorID {
		return nil, domain.ErrUnauthorized
	}
	return job, nil
}

func (s *jobService) ListJobs(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.Job, int32, error) {
	return s.jobRepo.ListByOwner(ctx, ownerID, status, page, pageSize)
}

func (s *jobService) ListQueue(ctx context.Context, status domain.JobStatus, page, pageSize int32) ([]domain.Job, int32, error) {
	return s.jobRepo.ListByStatus(ctx, status, page, pageSize)
}
