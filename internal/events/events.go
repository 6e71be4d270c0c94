package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Event describes a single completed store mutation. The presentation layer
// subscribes to these to show toasts; nothing in the core depends on whether
// anyone is listening.
type Event struct {
	ID      uuid.UUID
	Type    string
	Entity  string
	Payload any
	At      time.Time
}

const (
	EntityCart     = "cart"
	EntityWishlist = "wishlist"
	EntityAuth     = "auth"
)

type Subscriber func(Event)

// Bus is a synchronous in-process publish/subscribe fan-out. Publish runs
// every subscriber on the caller's goroutine; a panicking subscriber is
// contained so one bad listener cannot break a store mutation.
type Bus struct {
	mu   sync.RWMutex
	subs []Subscriber
}

func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) Subscribe(fn Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, fn)
}

func (b *Bus) Publish(entity, eventType string, payload any) {
	if b == nil {
		return
	}

	event := Event{
		ID:      uuid.New(),
		Type:    eventType,
		Entity:  entity,
		Payload: payload,
		At:      time.Now(),
	}

	b.mu.RLock()
	subs := make([]Subscriber, len(b.subs))
	copy(subs, b.subs)
	b.mu.RUnlock()

	for _, fn := range subs {
		safeNotify(fn, event)
	}
}

func safeNotify(fn Subscriber, event Event) {
	defer func() {
		_ = recover()
	}()
	fn(event)
}

// LogSubscriber returns a subscriber that writes every mutation to the
// structured log, the local stand-in for the audit trail the outbox worker
// used to provide.
func LogSubscriber(logger *zap.Logger) Subscriber {
	return func(e Event) {
		logger.Info("store mutation",
			zap.String("event_id", e.ID.String()),
			zap.String("entity", e.Entity),
			zap.String("type", e.Type),
			zap.Time("at", e.At),
		)
	}
}
