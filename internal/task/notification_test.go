package task

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/seedstage/mentorship-api/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSink is a NotificationSink that records deliveries.
type mockSink struct {
	delivered []Notification
	err       error
}

func (s *mockSink) Deliver(ctx context.Context, notification Notification) error {
	if s.err != nil {
		return s.err
	}
	s.delivered = append(s.delivered, notification)
	return nil
}

func validNotification() Notification {
	return Notification{
		EventID:   uuid.New(),
		EventType: events.EventMentorMatched,
		RequestID: uuid.New(),
		Payload:   json.RawMessage(`{"match_count":3}`),
		CreatedAt: time.Now(),
	}
}

func TestNewNotificationTask(t *testing.T) {
	sink := &mockSink{}

	t.Run("valid", func(t *testing.T) {
		task, err := NewNotificationTask(validNotification(), sink, testLogger())
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, task.ID())
		assert.Equal(t, TaskTypeNotification, task.Type())
		assert.Equal(t, TaskStatusPending, task.Status())
	})

	t.Run("nil_sink", func(t *testing.T) {
		_, err := NewNotificationTask(validNotification(), nil, testLogger())
		assert.ErrorIs(t, err, ErrNilSink)
	})

	t.Run("nil_logger", func(t *testing.T) {
		_, err := NewNotificationTask(validNotification(), sink, nil)
		assert.ErrorIs(t, err, ErrNilLogger)
	})

	t.Run("empty_event_id", func(t *testing.T) {
		n := validNotification()
		n.EventID = uuid.Nil
		_, err := NewNotificationTask(n, sink, testLogger())
		assert.ErrorIs(t, err, ErrEmptyEventID)
	})

	t.Run("empty_event_type", func(t *testing.T) {
		n := validNotification()
		n.EventType = ""
		_, err := NewNotificationTask(n, sink, testLogger())
		assert.ErrorIs(t, err, ErrEmptyEvent)
	})

	t.Run("empty_request_id", func(t *testing.T) {
		n := validNotification()
		n.RequestID = uuid.Nil
		_, err := NewNotificationTask(n, sink, testLogger())
		assert.ErrorIs(t, err, ErrEmptyRequest)
	})
}

func TestNotificationTaskExecute(t *testing.T) {
	t.Run("delivers_to_sink", func(t *testing.T) {
		sink := &mockSink{}
		notification := validNotification()
		task, err := NewNotificationTask(notification, sink, testLogger())
		require.NoError(t, err)

		require.NoError(t, task.Execute(context.Background()))
		assert.Equal(t, TaskStatusCompleted, task.Status())
		require.Len(t, sink.delivered, 1)
		assert.Equal(t, notification.EventID, sink.delivered[0].EventID)
	})

	t.Run("delivery_failure_marks_failed", func(t *testing.T) {
		sink := &mockSink{err: errors.New("smtp unreachable")}
		task, err := NewNotificationTask(validNotification(), sink, testLogger())
		require.NoError(t, err)

		assert.Error(t, task.Execute(context.Background()))
		assert.Equal(t, TaskStatusFailed, task.Status())
	})

	t.Run("cancelled_context", func(t *testing.T) {
		sink := &mockSink{}
		task, err := NewNotificationTask(validNotification(), sink, testLogger())
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		assert.Error(t, task.Execute(ctx))
		assert.Equal(t, TaskStatusFailed, task.Status())
		assert.Empty(t, sink.delivered)
	})
}

func TestNotificationTaskPayload(t *testing.T) {
	sink := &mockSink{}
	notification := validNotification()
	task, err := NewNotificationTask(notification, sink, testLogger())
	require.NoError(t, err)

	var decoded Notification
	require.NoError(t, json.Unmarshal(task.Payload(), &decoded))
	assert.Equal(t, notification.EventID, decoded.EventID)
	assert.Equal(t, notification.EventType, decoded.EventType)
}

func TestLogSinkDeliver(t *testing.T) {
	sink := NewLogSink(testLogger())
	assert.NoError(t, sink.Deliver(context.Background(), validNotification()))
}
