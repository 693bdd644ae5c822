package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/seedstage/mentorship-api/internal/platform/logger"
)

// Status constants for NotificationTask
// These match the TaskStatus values defined in task.go
const (
	statusPending    = "pending"
	statusProcessing = "processing"
	statusCompleted  = "completed"
	statusFailed     = "failed"
)

// Common errors
var (
	ErrNilSink      = errors.New("notification sink cannot be nil")
	ErrNilLogger    = errors.New("logger cannot be nil")
	ErrEmptyEventID = errors.New("event ID cannot be empty")
	ErrEmptyEvent   = errors.New("event type cannot be empty")
	ErrEmptyRequest = errors.New("request ID cannot be empty")
)

// Notification is the message delivered to a sink for a lifecycle event.
type Notification struct {
	EventID   uuid.UUID       `json:"event_id"`
	EventType string          `json:"event_type"`
	RequestID uuid.UUID       `json:"request_id"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// NotificationSink delivers notifications to participants. Implementations
// may post to email, chat, or simply log; delivery errors are surfaced to
// the caller, which logs and drops the notification.
type NotificationSink interface {
	Deliver(ctx context.Context, notification Notification) error
}

// LogSink is a NotificationSink that writes notifications to the
// structured log. It is the default sink when no external channel is
// configured.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink creates a LogSink writing to the given logger.
func NewLogSink(baseLogger *slog.Logger) *LogSink {
	if baseLogger == nil {
		baseLogger = slog.Default()
	}
	return &LogSink{
		logger: baseLogger.With(slog.String("component", "notification_log_sink")),
	}
}

// Deliver implements NotificationSink by logging the notification.
func (s *LogSink) Deliver(ctx context.Context, notification Notification) error {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Info("notification",
		slog.String("event_id", notification.EventID.String()),
		slog.String("event_type", notification.EventType),
		slog.String("request_id", notification.RequestID.String()),
		slog.String("payload", string(notification.Payload)))
	return nil
}

// Ensure LogSink implements NotificationSink
var _ NotificationSink = (*LogSink)(nil)

// NotificationTask implements the Task interface for delivering a single
// lifecycle notification through a sink.
type NotificationTask struct {
	id           uuid.UUID
	notification Notification
	sink         NotificationSink
	logger       *slog.Logger
	status       string
}

// NewNotificationTask creates a new notification delivery task.
func NewNotificationTask(
	notification Notification,
	sink NotificationSink,
	taskLogger *slog.Logger,
) (*NotificationTask, error) {
	// Validate dependencies
	if sink == nil {
		return nil, ErrNilSink
	}
	if taskLogger == nil {
		return nil, ErrNilLogger
	}

	// Validate notification fields
	if notification.EventID == uuid.Nil {
		return nil, ErrEmptyEventID
	}
	if notification.EventType == "" {
		return nil, ErrEmptyEvent
	}
	if notification.RequestID == uuid.Nil {
		return nil, ErrEmptyRequest
	}

	return &NotificationTask{
		id:           uuid.New(),
		notification: notification,
		sink:         sink,
		logger: taskLogger.With(
			"task_type", TaskTypeNotification,
			"event_type", notification.EventType,
			"request_id", notification.RequestID,
		),
		status: statusPending,
	}, nil
}

// ID returns the task's unique identifier
func (t *NotificationTask) ID() uuid.UUID {
	return t.id
}

// Type returns the task type identifier
func (t *NotificationTask) Type() string {
	return TaskTypeNotification
}

// Payload returns the task data as a byte slice
func (t *NotificationTask) Payload() []byte {
	data, err := json.Marshal(t.notification)
	if err != nil {
		// If marshal fails, return an empty payload with error logged
		t.logger.Error("failed to marshal task payload", "error", err)
		return []byte{}
	}
	return data
}

// Status returns the current task status
func (t *NotificationTask) Status() TaskStatus {
	return TaskStatus(t.status)
}

// Execute delivers the notification through the sink. A failed delivery
// marks the task failed; there is no retry, the notification is dropped.
func (t *NotificationTask) Execute(ctx context.Context) error {
	t.status = statusProcessing

	if err := ctx.Err(); err != nil {
		t.status = statusFailed
		t.logger.Error("task cancelled by context", "error", err)
		return fmt.Errorf("task cancelled by context: %w", err)
	}

	if err := t.sink.Deliver(ctx, t.notification); err != nil {
		t.status = statusFailed
		t.logger.Error("failed to deliver notification", "error", err)
		return fmt.Errorf("failed to deliver notification: %w", err)
	}

	t.status = statusCompleted
	t.logger.Debug("notification delivered")
	return nil
}

// Ensure NotificationTask implements Task
var _ Task = (*NotificationTask)(nil)
