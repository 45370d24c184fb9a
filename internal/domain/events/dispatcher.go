package events

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// EventHandler handles a domain event
type EventHandler func(ctx context.Context, event DomainEvent) error

// Dispatcher routes domain events to the handlers registered for their type.
// Handlers run in registration order on the caller's goroutine.
type Dispatcher struct {
	handlers map[string][]EventHandler
	mu       sync.RWMutex
	log      *zap.Logger
}

// NewDispatcher creates a new event dispatcher
func NewDispatcher(log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{
		handlers: make(map[string][]EventHandler),
		log:      log.Named("events"),
	}
}

// Register adds a handler for an event type
func (d *Dispatcher) Register(eventType string, handler EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.handlers[eventType] = append(d.handlers[eventType], handler)
}

// Dispatch delivers an event to every handler of its type. All handlers run even
// when one fails; the failures are joined.
func (d *Dispatcher) Dispatch(ctx context.Context, event DomainEvent) error {
	d.mu.RLock()
	handlers := append([]EventHandler(nil), d.handlers[event.EventType()]...)
	d.mu.RUnlock()

	if len(handlers) == 0 {
		return nil
	}

	var errs []error
	for _, h := range handlers {
		if err := h(ctx, event); err != nil {
			d.log.Warn("event handler failed",
				zap.String("event_type", event.EventType()),
				zap.String("event_id", event.EventID()),
				zap.String("aggregate_id", event.AggregateID()),
				zap.Error(err),
			)
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("dispatch %s: %w", event.EventType(), errors.Join(errs...))
	}
	return nil
}

// DispatchAll dispatches every event in order. A failing event does not keep
// later ones from being delivered; all failures are joined.
func (d *Dispatcher) DispatchAll(ctx context.Context, events []DomainEvent) error {
	var errs []error
	for _, event := range events {
		if err := d.Dispatch(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
