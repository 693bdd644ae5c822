package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/seedstage/mentorship-api/internal/events"
)

// NotificationEventHandler implements the events.EventHandler interface,
// turning mentorship lifecycle events into notification tasks and
// enqueueing them for the worker pool.
type NotificationEventHandler struct {
	queue  TaskQueueWriter
	sink   NotificationSink
	logger *slog.Logger
}

// NewNotificationEventHandler creates a new event handler that builds
// notification tasks for the given sink and submits them to the queue.
func NewNotificationEventHandler(
	queue TaskQueueWriter,
	sink NotificationSink,
	handlerLogger *slog.Logger,
) *NotificationEventHandler {
	if queue == nil {
		panic("queue cannot be nil")
	}
	if sink == nil {
		panic("sink cannot be nil")
	}
	if handlerLogger == nil {
		handlerLogger = slog.Default()
	}

	return &NotificationEventHandler{
		queue:  queue,
		sink:   sink,
		logger: handlerLogger.With("component", "notification_event_handler"),
	}
}

// HandleEvent processes lifecycle events by creating a notification task
// and enqueueing it. A full or closed queue is an error the emitter logs;
// the lifecycle operation that emitted the event is never affected.
func (h *NotificationEventHandler) HandleEvent(
	ctx context.Context,
	event *events.NotificationEvent,
) error {
	notification := Notification{
		EventID:   event.ID,
		EventType: event.Type,
		RequestID: event.RequestID,
		Payload:   event.Payload,
		CreatedAt: event.CreatedAt,
	}

	t, err := NewNotificationTask(notification, h.sink, h.logger)
	if err != nil {
		h.logger.Error("failed to create notification task",
			"error", err,
			"event_id", event.ID,
			"event_type", event.Type)
		return fmt.Errorf("failed to create notification task: %w", err)
	}

	if err := h.queue.Enqueue(t); err != nil {
		h.logger.Error("failed to enqueue notification task",
			"error", err,
			"task_id", t.ID(),
			"event_id", event.ID,
			"event_type", event.Type)
		return fmt.Errorf("failed to enqueue notification task: %w", err)
	}

	h.logger.Debug("notification task enqueued",
		"task_id", t.ID(),
		"event_id", event.ID,
		"event_type", event.Type)
	return nil
}

// Ensure NotificationEventHandler implements events.EventHandler
var _ events.EventHandler = (*NotificationEventHandler)(nil)
