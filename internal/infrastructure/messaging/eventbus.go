// Package messaging implements the in-memory event bus of the forum engine.
// Dispatch is synchronous: the engine runs single-actor operations and
// publishes events after a state change commits, so handlers observe a
// consistent post-mutation view.
package messaging

import (
	"sync"

	"github.com/query-hub/query-hub-forum/internal/domain/shared"
	"github.com/query-hub/query-hub-forum/pkg/logger"
)

// EventBus routes domain events to subscribed handlers.
type EventBus struct {
	mu          sync.RWMutex
	handlers    map[shared.EventType][]shared.EventHandler
	allHandlers []shared.EventHandler
	log         *logger.Logger
}

// NewEventBus creates a new event bus.
func NewEventBus(log *logger.Logger) *EventBus {
	if log == nil {
		log = logger.Default()
	}
	return &EventBus{
		handlers: make(map[shared.EventType][]shared.EventHandler),
		log:      log.With(logger.Component("eventbus")),
	}
}

// Subscribe registers a handler for one event type.
func (b *EventBus) Subscribe(t shared.EventType, h shared.EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[t] = append(b.handlers[t], h)
}

// SubscribeAll registers a handler for every event type.
func (b *EventBus) SubscribeAll(h shared.EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.allHandlers = append(b.allHandlers, h)
}

// Publish dispatches the event to all matching handlers in registration
// order. A panicking handler is recovered and logged; remaining handlers
// still run.
func (b *EventBus) Publish(ev shared.Event) {
	b.mu.RLock()
	matched := make([]shared.EventHandler, 0, len(b.handlers[ev.EventType()])+len(b.allHandlers))
	matched = append(matched, b.handlers[ev.EventType()]...)
	matched = append(matched, b.allHandlers...)
	b.mu.RUnlock()

	for _, h := range matched {
		b.dispatch(h, ev)
	}
}

func (b *EventBus) dispatch(h shared.EventHandler, ev shared.Event) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("event handler panicked",
				logger.String("event_type", string(ev.EventType())),
				logger.Any("panic", r),
			)
		}
	}()
	h(ev)
}
