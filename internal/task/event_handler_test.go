package task

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/seedstage/mentorship-api/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationEventHandler(t *testing.T) {
	t.Run("enqueues_notification_task", func(t *testing.T) {
		queue := NewTaskQueue(5, testLogger())
		sink := &mockSink{}
		handler := NewNotificationEventHandler(queue, sink, testLogger())

		event, err := events.NewNotificationEvent(
			events.EventMentorSelected,
			uuid.New(),
			map[string]string{"mentor_id": uuid.New().String()},
		)
		require.NoError(t, err)

		require.NoError(t, handler.HandleEvent(context.Background(), event))

		// The queue now holds a notification task carrying the event data.
		enqueued := <-queue.GetChannel()
		assert.Equal(t, TaskTypeNotification, enqueued.Type())

		require.NoError(t, enqueued.Execute(context.Background()))
		require.Len(t, sink.delivered, 1)
		assert.Equal(t, event.ID, sink.delivered[0].EventID)
		assert.Equal(t, events.EventMentorSelected, sink.delivered[0].EventType)
		assert.Equal(t, event.RequestID, sink.delivered[0].RequestID)
	})

	t.Run("full_queue_returns_error", func(t *testing.T) {
		queue := NewTaskQueue(1, testLogger())
		handler := NewNotificationEventHandler(queue, &mockSink{}, testLogger())

		first, err := events.NewNotificationEvent(events.EventRequestCreated, uuid.New(), nil)
		require.NoError(t, err)
		require.NoError(t, handler.HandleEvent(context.Background(), first))

		second, err := events.NewNotificationEvent(events.EventRequestCreated, uuid.New(), nil)
		require.NoError(t, err)
		assert.Error(t, handler.HandleEvent(context.Background(), second))
	})

	t.Run("nil_dependencies_panic", func(t *testing.T) {
		queue := NewTaskQueue(1, testLogger())
		assert.Panics(t, func() {
			NewNotificationEventHandler(nil, &mockSink{}, testLogger())
		})
		assert.Panics(t, func() {
			NewNotificationEventHandler(queue, nil, testLogger())
		})
	})
}
