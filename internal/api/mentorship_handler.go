package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/seedstage/mentorship-api/internal/api/shared"
	"github.com/seedstage/mentorship-api/internal/domain"
	"github.com/seedstage/mentorship-api/internal/platform/logger"
	"github.com/seedstage/mentorship-api/internal/service"
)

// MentorshipHandler handles the mentorship request lifecycle endpoints.
type MentorshipHandler struct {
	mentorshipService service.MentorshipService
	validator         *validator.Validate
}

// NewMentorshipHandler creates a new MentorshipHandler.
func NewMentorshipHandler(mentorshipService service.MentorshipService) *MentorshipHandler {
	return &MentorshipHandler{
		mentorshipService: mentorshipService,
		validator:         validator.New(),
	}
}

// CreateRequest handles POST /api/requests. The authenticated actor
// becomes the request's requester.
func (h *MentorshipHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), slog.Default())

	actorID, ok := getActorIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	var req CreateRequestDTO
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	request, err := h.mentorshipService.CreateRequest(r.Context(), service.CreateRequestParams{
		StartupID:   req.StartupID,
		RequesterID: actorID,
		Topic:       req.Topic,
		Description: req.Description,
		Skills:      req.Skills,
		Domains:     req.Domains,
		Urgency:     domain.Urgency(req.Urgency),
	})
	if err != nil {
		log.Error("failed to create mentorship request", "error", err, "actor_id", actorID)
		HandleAPIError(w, r, err, "Failed to create mentorship request")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, requestToResponse(request))
}

// GetRequest handles GET /api/requests/{id}.
func (h *MentorshipHandler) GetRequest(w http.ResponseWriter, r *http.Request) {
	_, requestID, ok := handleActorAndPathUUID(w, r, "id", nil)
	if !ok {
		return
	}

	request, err := h.mentorshipService.GetRequest(r.Context(), requestID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to retrieve mentorship request")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, requestToResponse(request))
}

// RunMatching handles POST /api/requests/{id}/matching, recomputing the
// match list for a still-open request.
func (h *MentorshipHandler) RunMatching(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), slog.Default())

	_, requestID, ok := handleActorAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	request, err := h.mentorshipService.RunMatching(r.Context(), requestID)
	if err != nil {
		log.Error("matching pass failed", "error", err, "request_id", requestID)
		HandleAPIError(w, r, err, "Failed to run matching")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, requestToResponse(request))
}

// SelectMentor handles POST /api/requests/{id}/select.
func (h *MentorshipHandler) SelectMentor(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), slog.Default())

	_, requestID, ok := handleActorAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req SelectMentorDTO
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	request, err := h.mentorshipService.SelectMentor(r.Context(), requestID, req.MentorID)
	if err != nil {
		log.Error("failed to select mentor",
			"error", err,
			"request_id", requestID,
			"mentor_id", req.MentorID)
		HandleAPIError(w, r, err, "Failed to select mentor")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, requestToResponse(request))
}

// ScheduleSession handles POST /api/requests/{id}/sessions.
func (h *MentorshipHandler) ScheduleSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), slog.Default())

	_, requestID, ok := handleActorAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req ScheduleSessionDTO
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	session, err := h.mentorshipService.ScheduleSession(r.Context(), service.ScheduleSessionParams{
		RequestID:       requestID,
		ScheduledAt:     req.ScheduledAt,
		DurationMinutes: req.DurationMinutes,
		MeetingLink:     req.MeetingLink,
	})
	if err != nil {
		log.Error("failed to schedule session", "error", err, "request_id", requestID)
		HandleAPIError(w, r, err, "Failed to schedule session")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, sessionToResponse(session))
}

// SubmitFeedback handles POST /api/sessions/{id}/feedback.
func (h *MentorshipHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), slog.Default())

	_, sessionID, ok := handleActorAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req SubmitFeedbackDTO
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	session, err := h.mentorshipService.SubmitFeedback(r.Context(), service.SubmitFeedbackParams{
		SessionID:   sessionID,
		FounderSide: req.Side == "founder",
		Rating:      req.Rating,
		Comment:     req.Comment,
	})
	if err != nil {
		log.Error("failed to submit feedback", "error", err, "session_id", sessionID)
		HandleAPIError(w, r, err, "Failed to submit feedback")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, sessionToResponse(session))
}

// CompleteRequest handles POST /api/requests/{id}/complete.
func (h *MentorshipHandler) CompleteRequest(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), slog.Default())

	actorID, requestID, ok := handleActorAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	request, err := h.mentorshipService.CompleteRequest(r.Context(), requestID, actorID)
	if err != nil {
		log.Error("failed to complete request", "error", err, "request_id", requestID)
		HandleAPIError(w, r, err, "Failed to complete request")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, requestToResponse(request))
}

// CancelRequest handles POST /api/requests/{id}/cancel.
func (h *MentorshipHandler) CancelRequest(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), slog.Default())

	actorID, requestID, ok := handleActorAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	// The body is optional; cancelling without a reason is allowed.
	var req CancelRequestDTO
	if err := shared.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	request, err := h.mentorshipService.CancelRequest(r.Context(), requestID, actorID, req.Reason)
	if err != nil {
		log.Error("failed to cancel request", "error", err, "request_id", requestID)
		HandleAPIError(w, r, err, "Failed to cancel request")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, requestToResponse(request))
}
