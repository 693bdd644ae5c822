package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/seedstage/mentorship-api/internal/api/shared"
	"github.com/seedstage/mentorship-api/internal/domain"
	"github.com/seedstage/mentorship-api/internal/service"
	"github.com/seedstage/mentorship-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This prevents leaking internal error
// types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, service.ErrRequestNotFound),
		errors.Is(err, service.ErrMentorNotFound),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrMatchNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors: lifecycle and capacity violations
	case errors.Is(err, service.ErrCapacityExceeded),
		errors.Is(err, service.ErrIllegalState),
		errors.Is(err, domain.ErrSessionClosed),
		errors.Is(err, domain.ErrFeedbackAlreadyGiven):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrRequestStartupEmpty),
		errors.Is(err, domain.ErrRequestRequesterEmpty),
		errors.Is(err, domain.ErrRequestTopicEmpty),
		errors.Is(err, domain.ErrRequestSkillsEmpty),
		errors.Is(err, domain.ErrInvalidUrgency),
		errors.Is(err, domain.ErrSessionTimeNotFuture),
		errors.Is(err, domain.ErrSessionDurationInvalid),
		errors.Is(err, domain.ErrFeedbackRatingRange),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return "Unauthorized"

	case errors.Is(err, service.ErrRequestNotFound):
		return "Mentorship request not found"

	case errors.Is(err, service.ErrMentorNotFound):
		return "Mentor not found"

	case errors.Is(err, service.ErrSessionNotFound):
		return "Session not found"

	case errors.Is(err, service.ErrMatchNotFound):
		return "Mentor is not among the request's matches"

	case errors.Is(err, service.ErrCapacityExceeded):
		return "Mentor is at maximum mentee capacity"

	case errors.Is(err, service.ErrIllegalState):
		return "Operation not allowed in the request's current state"

	case errors.Is(err, domain.ErrSessionClosed):
		return "Session is no longer open for feedback"

	case errors.Is(err, domain.ErrFeedbackAlreadyGiven):
		return "Feedback already submitted for this side"

	case errors.Is(err, domain.ErrSessionTimeNotFuture):
		return "Session must be scheduled in the future"

	case errors.Is(err, domain.ErrSessionDurationInvalid):
		return "Session duration must be between 15 and 240 minutes"

	case errors.Is(err, domain.ErrFeedbackRatingRange):
		return "Rating must be between 1 and 5"

	case errors.Is(err, domain.ErrRequestTopicEmpty):
		return "Topic is required"

	case errors.Is(err, domain.ErrRequestSkillsEmpty):
		return "At least one skill is required"

	case errors.Is(err, domain.ErrInvalidUrgency):
		return "Invalid urgency value"

	case errors.Is(err, domain.ErrRequestStartupEmpty),
		errors.Is(err, domain.ErrRequestRequesterEmpty):
		return "Invalid request data"

	case errors.Is(err, domain.ErrValidation), errors.Is(err, store.ErrInvalidEntity):
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			return fmt.Sprintf("Invalid %s: %s", validationErr.Field, validationErr.Message)
		}
		return "Invalid request data"

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid identifier format"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError maps an error to its status code and safe message and
// writes the response. When defaultMsg is non-empty it overrides the
// mapped message for generic 500s, keeping handler call sites terse.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if defaultMsg != "" && status == http.StatusInternalServerError {
		message = defaultMsg
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// SanitizeValidationError reduces a validator error to a user-friendly
// message without echoing struct internals.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example input: "Key: 'CreateRequestDTO.Topic' Error:Field validation
	// for 'Topic' failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}
				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, validationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// validationTagMessage maps validation tags to user-friendly error messages
func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short or too small"
	case "max":
		return "too long or too large"
	case "oneof":
		return "invalid value"
	case "gt":
		return "must be greater"
	case "uuid":
		return "invalid identifier"
	default:
		return "validation failed"
	}
}
