// Package shared contains common domain types, errors, and events
// that are used across all domain packages.
package shared

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents the type of domain event.
type EventType string

// Domain event types. Each event records something significant that happened
// to forum state; the engine publishes them after the state change commits.
const (
	// Question events
	EventQuestionCreated EventType = "question.created"
	EventQuestionEdited  EventType = "question.edited"
	EventQuestionSolved  EventType = "question.solved"
	EventQuestionDeleted EventType = "question.deleted"

	// Answer events
	EventAnswerCreated EventType = "answer.created"
	EventAnswerDeleted EventType = "answer.deleted"

	// Comment events
	EventCommentCreated EventType = "comment.created"

	// Reputation events
	EventVoteCast      EventType = "reputation.vote_cast"
	EventPointsAwarded EventType = "reputation.points_awarded"

	// User events
	EventUserRegistered EventType = "user.registered"
	EventUserUpdated    EventType = "user.updated"
	EventUserDeleted    EventType = "user.deleted"

	// Moderation events
	EventReportFiled    EventType = "moderation.report_filed"
	EventReportsCleared EventType = "moderation.reports_cleared"
)

// Event is the base interface for all domain events.
type Event interface {
	// EventType returns the type of the event.
	EventType() EventType

	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time

	// AggregateID returns the ID of the aggregate that produced this event.
	AggregateID() int64

	// Payload returns the event data as a map for serialization.
	Payload() map[string]any
}

// BaseEvent provides the common fields of a domain event.
// Concrete events embed it and add their own payload.
type BaseEvent struct {
	ID         string
	Type       EventType
	Aggregate  int64
	Occurred   time.Time
	Attributes map[string]any
}

// NewEvent creates a new event with a fresh uuid identifier.
func NewEvent(t EventType, aggregateID int64, attrs map[string]any) BaseEvent {
	return BaseEvent{
		ID:         uuid.NewString(),
		Type:       t,
		Aggregate:  aggregateID,
		Occurred:   time.Now().UTC(),
		Attributes: attrs,
	}
}

// EventType returns the type of the event.
func (e BaseEvent) EventType() EventType { return e.Type }

// OccurredAt returns when the event occurred.
func (e BaseEvent) OccurredAt() time.Time { return e.Occurred }

// AggregateID returns the ID of the aggregate that produced this event.
func (e BaseEvent) AggregateID() int64 { return e.Aggregate }

// Payload returns the event data as a map for serialization.
func (e BaseEvent) Payload() map[string]any {
	payload := make(map[string]any, len(e.Attributes)+2)
	for k, v := range e.Attributes {
		payload[k] = v
	}
	payload["event_id"] = e.ID
	payload["aggregate_id"] = e.Aggregate
	return payload
}

// EventHandler processes a published event.
type EventHandler func(Event)
