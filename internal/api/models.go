package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/seedstage/mentorship-api/internal/domain"
)

// Request payloads

// CreateRequestDTO defines the payload for creating a mentorship request.
type CreateRequestDTO struct {
	StartupID   uuid.UUID `json:"startup_id"  validate:"required"`
	Topic       string    `json:"topic"       validate:"required,min=1,max=200"`
	Description string    `json:"description" validate:"max=2000"`
	Skills      []string  `json:"skills"      validate:"required,min=1,dive,required"`
	Domains     []string  `json:"domains"     validate:"omitempty,dive,required"`
	Urgency     string    `json:"urgency"     validate:"required,oneof=low medium high critical"`
}

// SelectMentorDTO defines the payload for accepting a matched mentor.
type SelectMentorDTO struct {
	MentorID uuid.UUID `json:"mentor_id" validate:"required"`
}

// ScheduleSessionDTO defines the payload for scheduling a session.
type ScheduleSessionDTO struct {
	ScheduledAt     time.Time `json:"scheduled_at"     validate:"required"`
	DurationMinutes int       `json:"duration_minutes" validate:"required,min=15,max=240"`
	MeetingLink     string    `json:"meeting_link"     validate:"omitempty,url"`
}

// SubmitFeedbackDTO defines the payload for one side's session feedback.
type SubmitFeedbackDTO struct {
	Side    string `json:"side"    validate:"required,oneof=founder mentor"`
	Rating  int    `json:"rating"  validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

// CancelRequestDTO defines the payload for cancelling a request.
type CancelRequestDTO struct {
	Reason string `json:"reason" validate:"max=500"`
}

// Response payloads

// MentorSummaryResponse is the mentor projection embedded in match entries.
type MentorSummaryResponse struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Expertise         []string  `json:"expertise"`
	Domains           []string  `json:"domains,omitempty"`
	Bio               string    `json:"bio,omitempty"`
	Rating            float64   `json:"rating"`
	SessionsCompleted int       `json:"sessions_completed"`
	Availability      string    `json:"availability"`
	Company           string    `json:"company,omitempty"`
	AvatarURL         string    `json:"avatar_url,omitempty"`
}

// SubScoresResponse carries the per-factor scores of a match entry.
type SubScoresResponse struct {
	Skill        int  `json:"skill"`
	Domain       int  `json:"domain"`
	Availability int  `json:"availability"`
	Rating       int  `json:"rating"`
	Capacity     int  `json:"capacity"`
	Semantic     *int `json:"semantic,omitempty"`
}

// MatchEntryResponse is one scored candidate in the match list.
type MatchEntryResponse struct {
	MentorID   uuid.UUID             `json:"mentor_id"`
	Score      float64               `json:"score"`
	SubScores  SubScoresResponse     `json:"sub_scores"`
	Status     string                `json:"status"`
	Mentor     MentorSummaryResponse `json:"mentor"`
	AcceptedAt *time.Time            `json:"accepted_at,omitempty"`
}

// FeedbackResponse is one side's review of a session.
type FeedbackResponse struct {
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// SessionResponse represents a scheduled mentorship session.
type SessionResponse struct {
	ID              uuid.UUID         `json:"id"`
	MentorID        uuid.UUID         `json:"mentor_id"`
	ScheduledAt     time.Time         `json:"scheduled_at"`
	DurationMinutes int               `json:"duration_minutes"`
	MeetingLink     string            `json:"meeting_link,omitempty"`
	Status          string            `json:"status"`
	FounderFeedback *FeedbackResponse `json:"founder_feedback,omitempty"`
	MentorFeedback  *FeedbackResponse `json:"mentor_feedback,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// CancellationResponse records who cancelled a request and why.
type CancellationResponse struct {
	By     uuid.UUID `json:"by"`
	At     time.Time `json:"at"`
	Reason string    `json:"reason,omitempty"`
}

// RequestResponse is the full mentorship request aggregate.
type RequestResponse struct {
	ID             uuid.UUID             `json:"id"`
	StartupID      uuid.UUID             `json:"startup_id"`
	RequesterID    uuid.UUID             `json:"requester_id"`
	Topic          string                `json:"topic"`
	Description    string                `json:"description,omitempty"`
	Skills         []string              `json:"skills"`
	Domains        []string              `json:"domains,omitempty"`
	Urgency        string                `json:"urgency"`
	Status         string                `json:"status"`
	MatchedMentors []MatchEntryResponse  `json:"matched_mentors"`
	MatchRationale string                `json:"match_rationale,omitempty"`
	SelectedMentor *uuid.UUID            `json:"selected_mentor,omitempty"`
	Sessions       []SessionResponse     `json:"sessions"`
	Cancellation   *CancellationResponse `json:"cancellation,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

// requestToResponse converts a domain request aggregate into its DTO.
func requestToResponse(request *domain.MentorshipRequest) RequestResponse {
	matches := make([]MatchEntryResponse, 0, len(request.MatchedMentors))
	for _, entry := range request.MatchedMentors {
		matches = append(matches, matchEntryToResponse(entry))
	}

	sessions := make([]SessionResponse, 0, len(request.Sessions))
	for i := range request.Sessions {
		sessions = append(sessions, sessionToResponse(&request.Sessions[i]))
	}

	response := RequestResponse{
		ID:             request.ID,
		StartupID:      request.StartupID,
		RequesterID:    request.RequesterID,
		Topic:          request.Topic,
		Description:    request.Description,
		Skills:         request.Skills,
		Domains:        request.Domains,
		Urgency:        string(request.Urgency),
		Status:         string(request.Status),
		MatchedMentors: matches,
		MatchRationale: request.MatchRationale,
		SelectedMentor: request.SelectedMentor,
		Sessions:       sessions,
		CreatedAt:      request.CreatedAt,
		UpdatedAt:      request.UpdatedAt,
	}

	if request.Cancellation != nil {
		response.Cancellation = &CancellationResponse{
			By:     request.Cancellation.By,
			At:     request.Cancellation.At,
			Reason: request.Cancellation.Reason,
		}
	}

	return response
}

func matchEntryToResponse(entry domain.MatchEntry) MatchEntryResponse {
	return MatchEntryResponse{
		MentorID: entry.MentorID,
		Score:    entry.Score,
		SubScores: SubScoresResponse{
			Skill:        entry.SubScores.Skill,
			Domain:       entry.SubScores.Domain,
			Availability: entry.SubScores.Availability,
			Rating:       entry.SubScores.Rating,
			Capacity:     entry.SubScores.Capacity,
			Semantic:     entry.SubScores.Semantic,
		},
		Status: string(entry.Status),
		Mentor: MentorSummaryResponse{
			ID:                entry.Mentor.ID,
			Name:              entry.Mentor.Name,
			Expertise:         entry.Mentor.Expertise,
			Domains:           entry.Mentor.Domains,
			Bio:               entry.Mentor.Bio,
			Rating:            entry.Mentor.Rating,
			SessionsCompleted: entry.Mentor.SessionsCompleted,
			Availability:      string(entry.Mentor.Availability),
			Company:           entry.Mentor.Company,
			AvatarURL:         entry.Mentor.AvatarURL,
		},
		AcceptedAt: entry.AcceptedAt,
	}
}

func sessionToResponse(session *domain.Session) SessionResponse {
	response := SessionResponse{
		ID:              session.ID,
		MentorID:        session.MentorID,
		ScheduledAt:     session.ScheduledAt,
		DurationMinutes: session.DurationMinutes,
		MeetingLink:     session.MeetingLink,
		Status:          string(session.Status),
		CreatedAt:       session.CreatedAt,
		UpdatedAt:       session.UpdatedAt,
	}
	if session.FounderFeedback != nil {
		response.FounderFeedback = feedbackToResponse(session.FounderFeedback)
	}
	if session.MentorFeedback != nil {
		response.MentorFeedback = feedbackToResponse(session.MentorFeedback)
	}
	return response
}

func feedbackToResponse(feedback *domain.Feedback) *FeedbackResponse {
	return &FeedbackResponse{
		Rating:      feedback.Rating,
		Comment:     feedback.Comment,
		SubmittedAt: feedback.SubmittedAt,
	}
}
