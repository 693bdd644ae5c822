package events

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockEventHandler is a test implementation of the EventHandler interface.
type MockEventHandler struct {
	HandledCount int
	LastEvent    *NotificationEvent
	HandlerError error
}

func (h *MockEventHandler) HandleEvent(ctx context.Context, event *NotificationEvent) error {
	h.HandledCount++
	h.LastEvent = event
	return h.HandlerError
}

func TestNewNotificationEvent(t *testing.T) {
	requestID := uuid.New()
	payload := map[string]string{"topic": "fundraising strategy"}

	event, err := NewNotificationEvent(EventRequestCreated, requestID, payload)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, EventRequestCreated, event.Type)
	assert.Equal(t, requestID, event.RequestID)
	assert.False(t, event.CreatedAt.IsZero())

	var decoded map[string]string
	require.NoError(t, event.UnmarshalPayload(&decoded))
	assert.Equal(t, payload, decoded)
}

func TestNewNotificationEventInvalidPayload(t *testing.T) {
	// Channels cannot be marshaled to JSON
	_, err := NewNotificationEvent(EventMentorMatched, uuid.New(), make(chan int))
	assert.Error(t, err)
}
