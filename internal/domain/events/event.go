package events

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent represents something that happened to an aggregate
type DomainEvent interface {
	EventID() string
	EventType() string
	OccurredAt() time.Time
	AggregateID() string
}

// BaseEvent carries the fields shared by every event
type BaseEvent struct {
	eventID     string
	eventType   string
	occurredAt  time.Time
	aggregateID string
}

// NewBaseEvent creates a base event stamped with a fresh id and the current time
func NewBaseEvent(eventType, aggregateID string) BaseEvent {
	return BaseEvent{
		eventID:     uuid.NewString(),
		eventType:   eventType,
		occurredAt:  time.Now().UTC(),
		aggregateID: aggregateID,
	}
}

func (e BaseEvent) EventID() string       { return e.eventID }
func (e BaseEvent) EventType() string     { return e.eventType }
func (e BaseEvent) OccurredAt() time.Time { return e.occurredAt }
func (e BaseEvent) AggregateID() string   { return e.aggregateID }

// Recorder collects events raised by an aggregate until they are pulled
type Recorder struct {
	pending []DomainEvent
}

// Record appends an event
func (r *Recorder) Record(event DomainEvent) {
	r.pending = append(r.pending, event)
}

// PullEvents returns the recorded events and clears them
func (r *Recorder) PullEvents() []DomainEvent {
	out := r.pending
	r.pending = nil
	return out
}
