// Package reconcile keeps a client-held view of a job in sync with the
// authoritative store. Change notifications are hints: job-level events
// trigger a full re-fetch (partial payloads risk an inconsistent composite),
// while message events are trusted directly but deduplicated by id.
package reconcile

import (
	"context"
	"strconv"
	"sync"

	"tunehub-backend/internal/domain"
	"tunehub-backend/internal/events"
	"tunehub-backend/internal/logger"
)

// Fetcher loads authoritative state on demand. In production this is an API
// client; tests supply a fake.
type Fetcher interface {
	GetJob(ctx context.Context, jobID int32) (*domain.Job, error)
	ListMessages(ctx context.Context, jobID int32) ([]domain.Message, error)
}

// JobView is the locally cached job plus its ordered message list.
type JobView struct {
	mu       sync.Mutex
	jobID    int32
	fetcher  Fetcher
	job      *domain.Job
	messages []domain.Message
	seen     map[string]bool

	sub  *events.Subscription
	done chan struct{}
}

func NewJobView(jobID int32, fetcher Fetcher) *JobView {
	return &JobView{
		jobID:   jobID,
		fetcher: fetcher,
		seen:    make(map[string]bool),
	}
}

// Start loads the initial state and begins consuming notifications from the
// broadcaster until Stop is called or ctx is cancelled.
func (v *JobView) Start(ctx context.Context, b *events.Broadcaster) error {
	if err := v.refetchJob(ctx); err != nil {
		return err
	}
	if err := v.refetchMessages(ctx); err != nil {
		return err
	}

	v.sub = b.Subscribe()
	v.done = make(chan struct{})
	go func() {
		defer close(v.done)
		for {
			select {
			case <-ctx.Done():
				v.sub.Unsubscribe()
				return
			case evt, ok := <-v.sub.C:
				if !ok {
					return
				}
				v.Apply(ctx, evt)
			}
		}
	}()
	return nil
}

// Stop releases the subscription. Safe to call more than once.
func (v *JobView) Stop() {
	if v.sub != nil {
		v.sub.Unsubscribe()
		<-v.done
	}
}

// Apply merges one notification into the view. Fetch failures keep the stale
// view and are retried on the next notification; they never surface as a
// hard error.
func (v *JobView) Apply(ctx context.Context, evt events.ChangeEvent) {
	switch evt.EntityType {
	case events.EntityTypeJob:
		if evt.EntityID != strconv.Itoa(int(v.jobID)) {
			return
		}
		// Multiple fields change together on a transition; re-fetch the
		// whole entity rather than trust a partial payload.
		if err := v.refetchJob(ctx); err != nil {
			logger.Warn("Job re-fetch failed, keeping stale view", "job_id", v.jobID, "error", err)
		}
	case events.EntityTypeMessage:
		msg, ok := evt.Payload.(domain.Message)
		if !ok || msg.JobID != v.jobID {
			return
		}
		v.InsertMessage(msg)
	}
}

// InsertMessage adds a message to the local list exactly once. The sender may
// already have inserted it optimistically before the echo arrives.
func (v *JobView) InsertMessage(msg domain.Message) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.seen[msg.ID] {
		return
	}
	v.seen[msg.ID] = true
	v.messages = append(v.messages, msg)
}

func (v *JobView) refetchJob(ctx context.Context) error {
	job, err := v.fetcher.GetJob(ctx, v.jobID)
	if err != nil {
		return err
	}
	v.mu.Lock()
	v.job = job
	v.mu.Unlock()
	return nil
}

func (v *JobView) refetchMessages(ctx context.Context) error {
	msgs, err := v.fetcher.ListMessages(ctx, v.jobID)
	if err != nil {
		return err
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, m := range msgs {
		if !v.seen[m.ID] {
			v.seen[m.ID] = true
			v.messages = append(v.messages, m)
		}
	}
	return nil
}

// Job returns a copy of the cached job, or nil before the first fetch.
func (v *JobView) Job() *domain.Job {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.job == nil {
		return nil
	}
	job := *v.job
	return &job
}

// Messages returns a copy of the cached message list in insertion order.
func (v *JobView) Messages() []domain.Message {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]domain.Message, len(v.messages))
	copy(out, v.messages)
	return out
}
