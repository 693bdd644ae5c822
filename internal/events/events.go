package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Mentorship lifecycle event types.
const (
	EventRequestCreated   = "request_created"
	EventMentorMatched    = "mentor_matched"
	EventMentorSelected   = "mentor_selected"
	EventSessionScheduled = "session_scheduled"
	EventRequestCancelled = "request_cancelled"
	EventRequestCompleted = "request_completed"
)

// NotificationEvent represents a mentorship lifecycle occurrence that
// downstream consumers may want to notify participants about. It carries
// the event-specific data as serialized JSON so the emitter has no
// dependency on consumer packages.
type NotificationEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the lifecycle event type constants
	Type string `json:"type"`

	// RequestID identifies the mentorship request the event concerns
	RequestID uuid.UUID `json:"request_id"`

	// Payload contains the event-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *NotificationEvent) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewNotificationEvent creates a new NotificationEvent with the specified
// type, subject request, and payload.
func NewNotificationEvent(eventType string, requestID uuid.UUID, payload interface{}) (*NotificationEvent, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &NotificationEvent{
		ID:        uuid.New(),
		Type:      eventType,
		RequestID: requestID,
		Payload:   payloadBytes,
		CreatedAt: time.Now(),
	}, nil
}

// EventHandler defines an interface for components that can handle events.
// Handlers are responsible for processing events and taking appropriate actions.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *NotificationEvent) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *NotificationEvent) error
}
