package domain

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

// Availability represents a mentor's current availability for new mentees.
type Availability string

// Possible availability values
const (
	AvailabilityAvailable   Availability = "available"
	AvailabilityBusy        Availability = "busy"
	AvailabilityUnavailable Availability = "unavailable"
)

// Mentor-specific validation errors
var (
	// ErrMentorIDEmpty is returned when a mentor ID is empty or nil.
	ErrMentorIDEmpty = errors.New("mentor ID cannot be empty")

	// ErrMentorNameEmpty is returned when a mentor's name is empty.
	ErrMentorNameEmpty = errors.New("mentor name cannot be empty")

	// ErrMentorExpertiseEmpty is returned when a mentor has no expertise listed.
	ErrMentorExpertiseEmpty = errors.New("mentor must have at least one expertise")

	// ErrMentorRatingRange is returned when a mentor's rating falls outside [0,5].
	ErrMentorRatingRange = errors.New("mentor rating must be between 0 and 5")

	// ErrMentorMaxMentees is returned when maxMentees is negative.
	ErrMentorMaxMentees = errors.New("mentor max mentees cannot be negative")

	// ErrMentorAtCapacity is returned when a mentee cannot be added because
	// the mentor already carries the maximum number of mentees.
	ErrMentorAtCapacity = errors.New("mentor is at maximum mentee capacity")

	// ErrFeedbackRatingRange is returned when a session feedback rating
	// falls outside [1,5].
	ErrFeedbackRatingRange = errors.New("feedback rating must be between 1 and 5")
)

// Mentor represents an incubator mentor with their expertise profile,
// rolling rating, and mentee capacity bookkeeping.
type Mentor struct {
	ID                uuid.UUID    `json:"id"`
	Name              string       `json:"name"`
	Bio               string       `json:"bio,omitempty"`
	Company           string       `json:"company,omitempty"`
	AvatarURL         string       `json:"avatar_url,omitempty"`
	Expertise         []string     `json:"expertise"`
	Domains           []string     `json:"domains,omitempty"`
	Availability      Availability `json:"availability"`
	Rating            float64      `json:"rating"`
	TotalRatings      int          `json:"total_ratings"`
	SessionsCompleted int          `json:"sessions_completed"`
	MaxMentees        int          `json:"max_mentees"`
	CurrentMentees    []uuid.UUID  `json:"current_mentees"`
	Active            bool         `json:"active"`

	// BusyByCapacity records that Availability was flipped to Busy by the
	// capacity tracker rather than by the mentor, so it can revert to
	// Available when a slot frees.
	BusyByCapacity bool `json:"busy_by_capacity"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MentorSummary is the public projection of a mentor captured on match
// entries. It deliberately omits internal bookkeeping fields such as the
// mentee list so match results never leak them.
type MentorSummary struct {
	ID                uuid.UUID    `json:"id"`
	Name              string       `json:"name"`
	Expertise         []string     `json:"expertise"`
	Domains           []string     `json:"domains,omitempty"`
	Bio               string       `json:"bio,omitempty"`
	Rating            float64      `json:"rating"`
	SessionsCompleted int          `json:"sessions_completed"`
	Availability      Availability `json:"availability"`
	AvatarURL         string       `json:"avatar_url,omitempty"`
	Company           string       `json:"company,omitempty"`
}

// NewMentor creates a new active Mentor with the given profile fields.
// It generates a new UUID for the mentor ID and sets the creation/update
// timestamps. Returns an error if validation fails.
func NewMentor(name string, expertise []string, maxMentees int) (*Mentor, error) {
	now := time.Now().UTC()
	mentor := &Mentor{
		ID:             uuid.New(),
		Name:           name,
		Expertise:      expertise,
		Availability:   AvailabilityAvailable,
		MaxMentees:     maxMentees,
		CurrentMentees: make([]uuid.UUID, 0),
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := mentor.Validate(); err != nil {
		return nil, err
	}

	return mentor, nil
}

// Validate checks if the Mentor has valid data.
// Returns an error if any field fails validation.
func (m *Mentor) Validate() error {
	if m.ID == uuid.Nil {
		return ErrMentorIDEmpty
	}

	if m.Name == "" {
		return ErrMentorNameEmpty
	}

	if len(m.Expertise) == 0 {
		return ErrMentorExpertiseEmpty
	}

	if m.Rating < 0 || m.Rating > 5 {
		return ErrMentorRatingRange
	}

	if m.MaxMentees < 0 {
		return ErrMentorMaxMentees
	}

	return nil
}

// Summary returns the mentor's public projection for match results.
func (m *Mentor) Summary() MentorSummary {
	return MentorSummary{
		ID:                m.ID,
		Name:              m.Name,
		Expertise:         m.Expertise,
		Domains:           m.Domains,
		Bio:               m.Bio,
		Rating:            m.Rating,
		SessionsCompleted: m.SessionsCompleted,
		Availability:      m.Availability,
		AvatarURL:         m.AvatarURL,
		Company:           m.Company,
	}
}

// HasCapacity reports whether the mentor can take on another mentee.
func (m *Mentor) HasCapacity() bool {
	return m.MaxMentees > 0 && len(m.CurrentMentees) < m.MaxMentees
}

// HasMentee reports whether the startup is already among the mentor's mentees.
func (m *Mentor) HasMentee(startupID uuid.UUID) bool {
	for _, id := range m.CurrentMentees {
		if id == startupID {
			return true
		}
	}
	return false
}

// AddMentee records the startup as a mentee of this mentor.
// Adding a startup that is already a mentee is a no-op success.
// Returns ErrMentorAtCapacity without mutation if the mentor is at or over
// capacity. When the addition fills the last slot, availability flips to
// Busy and is remembered as capacity-driven so RemoveMentee can revert it.
func (m *Mentor) AddMentee(startupID uuid.UUID) error {
	if m.HasMentee(startupID) {
		return nil
	}

	if len(m.CurrentMentees) >= m.MaxMentees {
		return ErrMentorAtCapacity
	}

	m.CurrentMentees = append(m.CurrentMentees, startupID)
	if len(m.CurrentMentees) == m.MaxMentees && m.Availability == AvailabilityAvailable {
		m.Availability = AvailabilityBusy
		m.BusyByCapacity = true
	}

	m.UpdatedAt = time.Now().UTC()
	return nil
}

// RemoveMentee removes the startup from the mentor's mentees if present.
// When availability was flipped to Busy by the capacity tracker and the
// mentor now has headroom again, availability reverts to Available.
func (m *Mentor) RemoveMentee(startupID uuid.UUID) {
	for i, id := range m.CurrentMentees {
		if id == startupID {
			m.CurrentMentees = append(m.CurrentMentees[:i], m.CurrentMentees[i+1:]...)
			m.UpdatedAt = time.Now().UTC()
			break
		}
	}

	if m.BusyByCapacity && len(m.CurrentMentees) < m.MaxMentees {
		m.Availability = AvailabilityAvailable
		m.BusyByCapacity = false
	}
}

// RecordSessionFeedback folds a completed session's rating into the
// mentor's rolling average and increments the completion counters.
// Returns ErrFeedbackRatingRange if the rating is outside [1,5].
func (m *Mentor) RecordSessionFeedback(rating int) error {
	if rating < 1 || rating > 5 {
		return ErrFeedbackRatingRange
	}

	total := m.Rating*float64(m.TotalRatings) + float64(rating)
	m.TotalRatings++
	m.Rating = round2(total / float64(m.TotalRatings))
	m.SessionsCompleted++
	m.UpdatedAt = time.Now().UTC()
	return nil
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
