package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"tunehub-backend/internal/domain"
	"tunehub-backend/internal/events"
	"tunehub-backend/internal/repository"

	"github.com/google/uuid"
)

type messageService struct {
	msgRepo     repository.MessageRepository
	jobRepo     repository.JobRepository
	broadcaster *events.Broadcaster
}

func NewMessageService(
	msgRepo repository.MessageRepository,
	jobRepo repository.JobRepository,
	broadcaster *events.Broadcaster,
) MessageService {
	return &messageService{msgRepo: msgRepo, jobRepo: jobRepo, broadcaster: broadcaster}
}

// PostMessage appends a message to a job. Messaging is not gated by job
// status; even a rejected job keeps its thread open.
func (s *messageService) PostMessage(ctx context.Context, msg *domain.Message) (*domain.Message, error) {
	if msg.Body == "" {
		return nil, fmt.Errorf("message body must not be empty")
	}
	if _, err := s.jobRepo.GetByID(ctx, msg.JobID); err != nil {
		return nil, err
	}
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	} else if _, err := uuid.Parse(msg.ID); err != nil {
		return nil, fmt.Errorf("message id must be a uuid: %w", err)
	}
	msg.CreatedOn = time.Now().UTC()

	if err := s.msgRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	// Message events carry the payload; the id lets optimistic inserts and
	// this echo collapse into one entry on the consumer side.
	s.broadcaster.Publish(events.ChangeEvent{
		EntityType: events.EntityTypeMessage,
		EntityID:   strconv.Itoa(int(msg.JobID)),
		ChangeKind: events.ChangeKindCreated,
		Payload:    *msg,
	})
	return msg, nil
}

func (s *messageService) ListMessages(ctx context.Context, actorID int32, isAdmin bool, jobID int32) ([]domain.Message, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && job.OwnerID != actorID {
		return nil, domain.ErrUnauthorized
	}
	return s.msgRepo.ListByJob(ctx, jobID, isAdmin)
}
