package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/seedstage/mentorship-api/internal/api/shared"
	"github.com/seedstage/mentorship-api/internal/domain"
	"github.com/seedstage/mentorship-api/internal/platform/logger"
)

// getActorIDFromContext extracts the authenticated actor's UUID from the
// request context. The ID is placed there by the actor middleware.
func getActorIDFromContext(r *http.Request) (uuid.UUID, bool) {
	actorID, ok := r.Context().Value(shared.ActorIDContextKey).(uuid.UUID)
	if !ok || actorID == uuid.Nil {
		return uuid.Nil, false
	}
	return actorID, true
}

// getPathUUID extracts and parses a UUID path parameter.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}

// handleActorAndPathUUID extracts both the actor ID from context and a
// UUID path parameter, writing an error response if either fails.
func handleActorAndPathUUID(
	w http.ResponseWriter,
	r *http.Request,
	paramName string,
	log *slog.Logger,
) (uuid.UUID, uuid.UUID, bool) {
	if log == nil {
		log = logger.FromContextOrDefault(r.Context(), slog.Default())
	}

	actorID, ok := getActorIDFromContext(r)
	if !ok {
		log.Warn("actor ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return uuid.Nil, uuid.Nil, false
	}

	pathID, err := getPathUUID(r, paramName)
	if err != nil {
		log.Warn("invalid path parameter",
			slog.String("param_name", paramName),
			slog.String("value", chi.URLParam(r, paramName)))
		HandleAPIError(w, r, err, "")
		return uuid.Nil, uuid.Nil, false
	}

	return actorID, pathID, true
}
