// Package events carries change notifications from the mutation paths to
// interested consumers. The channel is best-effort and at-least-once from the
// consumer's point of view: subscribers treat events as hints to re-validate,
// never as the source of truth.
package events

import (
	"sync"

	"tunehub-backend/internal/logger"
)

type EntityType string

const (
	EntityTypeJob     EntityType = "job"
	EntityTypeMessage EntityType = "message"
	EntityTypeAccount EntityType = "account"
)

type ChangeKind string

const (
	ChangeKindCreated ChangeKind = "created"
	ChangeKindUpdated ChangeKind = "updated"
)

// ChangeEvent identifies what changed, not how. Job-level payloads are
// deliberately absent: consumers re-fetch the full entity instead of trusting
// a partial composite. Message events carry the payload because a message is
// immutable once written.
type ChangeEvent struct {
	EntityType EntityType
	EntityID   string
	ChangeKind ChangeKind
	Payload    any // set for message events only
}

// Broadcaster fans ChangeEvents out to subscribers. Slow subscribers drop
// events rather than block the mutation path; a dropped event is recovered by
// the consumer's next re-fetch.
type Broadcaster struct {
	mu     sync.RWMutex
	nextID int64
	subs   map[int64]chan ChangeEvent
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[int64]chan ChangeEvent)}
}

// Subscription is a handle to a subscriber channel. Unsubscribe is idempotent
// and releases the channel immediately.
type Subscription struct {
	C      <-chan ChangeEvent
	id     int64
	b      *Broadcaster
	once   sync.Once
	closed chan struct{}
}

func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.b.mu.Lock()
		ch := s.b.subs[s.id]
		delete(s.b.subs, s.id)
		s.b.mu.Unlock()
		if ch != nil {
			close(ch)
		}
		close(s.closed)
	})
}

// Done is closed when the subscription has been released.
func (s *Subscription) Done() <-chan struct{} { return s.closed }

func (b *Broadcaster) Subscribe() *Subscription {
	ch := make(chan ChangeEvent, 64)
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[id] = ch
	b.mu.Unlock()
	return &Subscription{C: ch, id: id, b: b, closed: make(chan struct{})}
}

func (b *Broadcaster) Publish(evt ChangeEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subs {
		select {
		case ch <- evt:
		default:
			logger.Warn("Dropping change event for slow subscriber",
				"entity_type", evt.EntityType, "entity_id", evt.EntityID)
		}
	}
}
