package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// RequestStatus represents the lifecycle state of a mentorship request.
type RequestStatus string

// Possible request status values
const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusMatched   RequestStatus = "matched"
	RequestStatusScheduled RequestStatus = "scheduled"
	RequestStatusCompleted RequestStatus = "completed"
	RequestStatusCancelled RequestStatus = "cancelled"
)

// Urgency represents how pressing a mentorship request is.
type Urgency string

// Possible urgency values
const (
	UrgencyLow      Urgency = "low"
	UrgencyMedium   Urgency = "medium"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

// MatchStatus represents the state of a single match entry.
type MatchStatus string

// Possible match entry status values
const (
	MatchStatusSuggested MatchStatus = "suggested"
	MatchStatusAccepted  MatchStatus = "accepted"
	MatchStatusDeclined  MatchStatus = "declined"
	MatchStatusPending   MatchStatus = "pending"
)

// MaxMatchedMentors caps the matched mentor list on a request.
const MaxMatchedMentors = 10

// Common validation and lifecycle errors for MentorshipRequest
var (
	ErrRequestIDEmpty        = errors.New("request ID cannot be empty")
	ErrRequestStartupEmpty   = errors.New("request startup ID cannot be empty")
	ErrRequestRequesterEmpty = errors.New("request requester ID cannot be empty")
	ErrRequestTopicEmpty     = errors.New("request topic cannot be empty")
	ErrRequestSkillsEmpty    = errors.New("request must list at least one skill")
	ErrInvalidUrgency        = errors.New("invalid urgency")
	ErrInvalidRequestStatus  = errors.New("invalid request status")
	ErrMatchListUnsorted     = errors.New("matched mentors must be sorted by descending score")
	ErrMatchListTooLong      = errors.New("matched mentors list exceeds the maximum length")
	ErrMatchNotFound         = errors.New("mentor not present in matched mentors")
	ErrMentorAlreadySelected = errors.New("a mentor has already been selected")
	ErrSessionNotFound       = errors.New("session not found on request")
)

// SubScores holds the per-factor scores behind a match entry's composite.
// Semantic is nil when the embedding collaborator was unavailable and the
// remaining weights were redistributed.
type SubScores struct {
	Skill        int  `json:"skill"`
	Domain       int  `json:"domain"`
	Availability int  `json:"availability"`
	Rating       int  `json:"rating"`
	Capacity     int  `json:"capacity"`
	Semantic     *int `json:"semantic,omitempty"`
}

// MatchEntry is a scored candidate mentor attached to a request.
type MatchEntry struct {
	MentorID   uuid.UUID     `json:"mentor_id"`
	Score      float64       `json:"score"`
	SubScores  SubScores     `json:"sub_scores"`
	Status     MatchStatus   `json:"status"`
	Mentor     MentorSummary `json:"mentor"`
	AcceptedAt *time.Time    `json:"accepted_at,omitempty"`
}

// Cancellation records who cancelled a request, when, and why.
type Cancellation struct {
	By     uuid.UUID `json:"by"`
	At     time.Time `json:"at"`
	Reason string    `json:"reason,omitempty"`
}

// MentorshipRequest is the aggregate root of the mentorship lifecycle. It
// owns its match entries and sessions exclusively; they are never shared
// across aggregates, which keeps the sorted-order and capped-length
// invariants enforceable in one place.
type MentorshipRequest struct {
	ID             uuid.UUID     `json:"id"`
	StartupID      uuid.UUID     `json:"startup_id"`
	RequesterID    uuid.UUID     `json:"requester_id"`
	Topic          string        `json:"topic"`
	Description    string        `json:"description,omitempty"`
	Skills         []string      `json:"skills"`
	Domains        []string      `json:"domains,omitempty"`
	Urgency        Urgency       `json:"urgency"`
	Status         RequestStatus `json:"status"`
	MatchedMentors []MatchEntry  `json:"matched_mentors"`
	MatchRationale string        `json:"match_rationale,omitempty"`
	SelectedMentor *uuid.UUID    `json:"selected_mentor,omitempty"`
	Sessions       []Session     `json:"sessions"`
	Cancellation   *Cancellation `json:"cancellation,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// allowedTransitions is the canonical request lifecycle transition table.
// Transitions outside the table are rejected with ErrIllegalTransition
// rather than merely logged.
var allowedTransitions = map[RequestStatus][]RequestStatus{
	RequestStatusPending:   {RequestStatusMatched, RequestStatusCancelled},
	RequestStatusMatched:   {RequestStatusScheduled, RequestStatusCancelled, RequestStatusPending},
	RequestStatusScheduled: {RequestStatusCompleted, RequestStatusCancelled},
	RequestStatusCompleted: {},
	RequestStatusCancelled: {},
}

// CanTransition reports whether a request may move between the two statuses.
func CanTransition(from, to RequestStatus) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// NewMentorshipRequest creates a new pending MentorshipRequest.
// Returns an error if validation fails; skills must be non-empty.
func NewMentorshipRequest(
	startupID, requesterID uuid.UUID,
	topic, description string,
	skills, domains []string,
	urgency Urgency,
) (*MentorshipRequest, error) {
	now := time.Now().UTC()
	request := &MentorshipRequest{
		ID:             uuid.New(),
		StartupID:      startupID,
		RequesterID:    requesterID,
		Topic:          topic,
		Description:    description,
		Skills:         skills,
		Domains:        domains,
		Urgency:        urgency,
		Status:         RequestStatusPending,
		MatchedMentors: make([]MatchEntry, 0),
		Sessions:       make([]Session, 0),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := request.Validate(); err != nil {
		return nil, err
	}

	return request, nil
}

// Validate checks if the MentorshipRequest has valid data.
// Returns an error if any field fails validation.
func (r *MentorshipRequest) Validate() error {
	if r.ID == uuid.Nil {
		return ErrRequestIDEmpty
	}

	if r.StartupID == uuid.Nil {
		return ErrRequestStartupEmpty
	}

	if r.RequesterID == uuid.Nil {
		return ErrRequestRequesterEmpty
	}

	if r.Topic == "" {
		return ErrRequestTopicEmpty
	}

	if len(r.Skills) == 0 {
		return ErrRequestSkillsEmpty
	}

	if !isValidUrgency(r.Urgency) {
		return ErrInvalidUrgency
	}

	if !isValidRequestStatus(r.Status) {
		return ErrInvalidRequestStatus
	}

	return nil
}

// TransitionTo moves the request to the given status, enforcing the
// lifecycle transition table. Returns ErrIllegalTransition when the move
// is not allowed from the current status.
func (r *MentorshipRequest) TransitionTo(status RequestStatus) error {
	if !isValidRequestStatus(status) {
		return ErrInvalidRequestStatus
	}

	if !CanTransition(r.Status, status) {
		return ErrIllegalTransition
	}

	r.Status = status
	r.UpdatedAt = time.Now().UTC()
	return nil
}

// SetMatches replaces the matched mentor list with a freshly ranked one.
// The list must already be sorted non-increasing by score and capped at
// MaxMatchedMentors; violations are validation errors, not silently fixed,
// since the ranking engine owns the ordering.
func (r *MentorshipRequest) SetMatches(entries []MatchEntry) error {
	if len(entries) > MaxMatchedMentors {
		return ErrMatchListTooLong
	}

	for i := 1; i < len(entries); i++ {
		if entries[i].Score > entries[i-1].Score {
			return ErrMatchListUnsorted
		}
	}

	r.MatchedMentors = entries
	r.UpdatedAt = time.Now().UTC()
	return nil
}

// FindMatch returns a pointer to the match entry for the given mentor,
// or nil when the mentor is not in the matched list.
func (r *MentorshipRequest) FindMatch(mentorID uuid.UUID) *MatchEntry {
	for i := range r.MatchedMentors {
		if r.MatchedMentors[i].MentorID == mentorID {
			return &r.MatchedMentors[i]
		}
	}
	return nil
}

// SelectMentor marks the given match entry as accepted and records the
// selection. Selection is a one-time mutation: a second call returns
// ErrMentorAlreadySelected. Returns ErrMatchNotFound when the mentor is
// not present in the matched list.
func (r *MentorshipRequest) SelectMentor(mentorID uuid.UUID, now time.Time) error {
	if r.SelectedMentor != nil {
		return ErrMentorAlreadySelected
	}

	entry := r.FindMatch(mentorID)
	if entry == nil {
		return ErrMatchNotFound
	}

	entry.Status = MatchStatusAccepted
	entry.AcceptedAt = &now
	r.SelectedMentor = &mentorID
	r.UpdatedAt = now
	return nil
}

// AddSession appends a session to the request. When the request is still
// Matched it advances to Scheduled; subsequent sessions leave the status
// untouched.
func (r *MentorshipRequest) AddSession(session Session) error {
	if r.Status == RequestStatusMatched {
		if err := r.TransitionTo(RequestStatusScheduled); err != nil {
			return err
		}
	} else if r.Status != RequestStatusScheduled {
		return ErrIllegalTransition
	}

	r.Sessions = append(r.Sessions, session)
	r.UpdatedAt = time.Now().UTC()
	return nil
}

// FindSession returns a pointer to the session with the given ID, or nil.
// The pointer addresses the aggregate's own slice so feedback mutations
// apply in place.
func (r *MentorshipRequest) FindSession(sessionID uuid.UUID) *Session {
	for i := range r.Sessions {
		if r.Sessions[i].ID == sessionID {
			return &r.Sessions[i]
		}
	}
	return nil
}

// Cancel terminally cancels the request, recording actor, time, and
// reason. Only Pending, Matched, and Scheduled requests can be cancelled;
// others return ErrIllegalTransition.
func (r *MentorshipRequest) Cancel(by uuid.UUID, reason string, now time.Time) error {
	if !CanTransition(r.Status, RequestStatusCancelled) {
		return ErrIllegalTransition
	}

	r.Status = RequestStatusCancelled
	r.Cancellation = &Cancellation{
		By:     by,
		At:     now,
		Reason: reason,
	}
	r.UpdatedAt = now
	return nil
}

// isValidUrgency checks if the given urgency is a valid Urgency.
func isValidUrgency(u Urgency) bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyCritical:
		return true
	default:
		return false
	}
}

// isValidRequestStatus checks if the given status is a valid RequestStatus.
func isValidRequestStatus(status RequestStatus) bool {
	switch status {
	case RequestStatusPending, RequestStatusMatched, RequestStatusScheduled,
		RequestStatusCompleted, RequestStatusCancelled:
		return true
	default:
		return false
	}
}
