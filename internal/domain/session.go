package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// SessionStatus represents the state of a single mentorship session.
type SessionStatus string

// Possible session status values
const (
	SessionStatusScheduled   SessionStatus = "scheduled"
	SessionStatusCompleted   SessionStatus = "completed"
	SessionStatusCancelled   SessionStatus = "cancelled"
	SessionStatusNoShow      SessionStatus = "no_show"
	SessionStatusRescheduled SessionStatus = "rescheduled"
)

// Session duration bounds in minutes.
const (
	MinSessionDurationMinutes = 15
	MaxSessionDurationMinutes = 240
)

// Common validation errors for Session
var (
	ErrSessionIDEmpty         = errors.New("session ID cannot be empty")
	ErrSessionMentorIDEmpty   = errors.New("session mentor ID cannot be empty")
	ErrSessionTimeNotFuture   = errors.New("session must be scheduled in the future")
	ErrSessionDurationInvalid = errors.New("session duration must be between 15 and 240 minutes")
	ErrSessionClosed          = errors.New("session is no longer open for feedback")
	ErrFeedbackAlreadyGiven   = errors.New("feedback already submitted for this side")
)

// Feedback is one side's review of a completed session.
type Feedback struct {
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Session is a single scheduled mentorship meeting owned by a
// MentorshipRequest. It carries optional feedback from both sides; the
// session transitions to Completed only when both are present.
type Session struct {
	ID              uuid.UUID     `json:"id"`
	MentorID        uuid.UUID     `json:"mentor_id"`
	ScheduledAt     time.Time     `json:"scheduled_at"`
	DurationMinutes int           `json:"duration_minutes"`
	MeetingLink     string        `json:"meeting_link,omitempty"`
	Status          SessionStatus `json:"status"`
	FounderFeedback *Feedback     `json:"founder_feedback,omitempty"`
	MentorFeedback  *Feedback     `json:"mentor_feedback,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// NewSession creates a new scheduled Session for the given mentor.
// The scheduled time must be strictly in the future relative to now, and
// the duration must lie within [15,240] minutes.
func NewSession(
	mentorID uuid.UUID,
	scheduledAt time.Time,
	durationMinutes int,
	meetingLink string,
	now time.Time,
) (*Session, error) {
	session := &Session{
		ID:              uuid.New(),
		MentorID:        mentorID,
		ScheduledAt:     scheduledAt,
		DurationMinutes: durationMinutes,
		MeetingLink:     meetingLink,
		Status:          SessionStatusScheduled,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := session.validateAt(now); err != nil {
		return nil, err
	}

	return session, nil
}

// validateAt checks the session against creation-time rules.
func (s *Session) validateAt(now time.Time) error {
	if s.ID == uuid.Nil {
		return ErrSessionIDEmpty
	}

	if s.MentorID == uuid.Nil {
		return ErrSessionMentorIDEmpty
	}

	if !s.ScheduledAt.After(now) {
		return ErrSessionTimeNotFuture
	}

	if s.DurationMinutes < MinSessionDurationMinutes || s.DurationMinutes > MaxSessionDurationMinutes {
		return ErrSessionDurationInvalid
	}

	return nil
}

// IsOpen reports whether the session still accepts feedback.
func (s *Session) IsOpen() bool {
	return s.Status == SessionStatusScheduled || s.Status == SessionStatusRescheduled
}

// SubmitFeedback stores one side's feedback for the session. When both
// sides are present afterwards, the session status becomes Completed.
// Returns ErrSessionClosed for sessions that already reached a terminal
// status and ErrFeedbackAlreadyGiven for a duplicate submission.
func (s *Session) SubmitFeedback(founderSide bool, rating int, comment string, now time.Time) error {
	if !s.IsOpen() {
		return ErrSessionClosed
	}

	if rating < 1 || rating > 5 {
		return ErrFeedbackRatingRange
	}

	fb := &Feedback{
		Rating:      rating,
		Comment:     comment,
		SubmittedAt: now,
	}

	if founderSide {
		if s.FounderFeedback != nil {
			return ErrFeedbackAlreadyGiven
		}
		s.FounderFeedback = fb
	} else {
		if s.MentorFeedback != nil {
			return ErrFeedbackAlreadyGiven
		}
		s.MentorFeedback = fb
	}

	if s.FounderFeedback != nil && s.MentorFeedback != nil {
		s.Status = SessionStatusCompleted
	}

	s.UpdatedAt = now
	return nil
}
