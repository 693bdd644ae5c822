package service

import (
	"errors"
	"fmt"

	"github.com/seedstage/mentorship-api/internal/domain"
	"github.com/seedstage/mentorship-api/internal/store"
)

// Common sentinel errors for the mentorship service. Callers check these
// with errors.Is(); the API layer maps them to HTTP status codes.
var (
	// ErrRequestNotFound indicates that the mentorship request does not exist.
	ErrRequestNotFound = errors.New("mentorship request not found")

	// ErrMentorNotFound indicates that the mentor does not exist.
	ErrMentorNotFound = errors.New("mentor not found")

	// ErrSessionNotFound indicates that no request owns the given session.
	ErrSessionNotFound = errors.New("session not found")

	// ErrMatchNotFound indicates the mentor is not in the request's match list.
	ErrMatchNotFound = errors.New("mentor not found in match results")

	// ErrCapacityExceeded indicates the mentor cannot take another mentee.
	ErrCapacityExceeded = errors.New("mentor has no mentee capacity left")

	// ErrIllegalState indicates the request's lifecycle state does not
	// permit the attempted operation.
	ErrIllegalState = errors.New("operation not allowed in the request's current state")
)

// MentorshipServiceError wraps errors from the mentorship service with context.
type MentorshipServiceError struct {
	// Operation is the operation that failed (e.g., "create_request", "run_matching")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for MentorshipServiceError.
func (e *MentorshipServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("mentorship service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("mentorship service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *MentorshipServiceError) Unwrap() error {
	return e.Err
}

// NewMentorshipServiceError creates a new MentorshipServiceError.
// Known sentinel and domain errors are returned directly without wrapping
// so that callers can match them with errors.Is.
func NewMentorshipServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	// Service-level sentinels pass through untouched.
	for _, sentinel := range []error{
		ErrRequestNotFound,
		ErrMentorNotFound,
		ErrSessionNotFound,
		ErrMatchNotFound,
		ErrCapacityExceeded,
		ErrIllegalState,
	} {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}

	// Store-level sentinels map to service-level ones.
	switch {
	case errors.Is(err, store.ErrMentorNotFound):
		return ErrMentorNotFound
	case errors.Is(err, store.ErrRequestNotFound):
		return ErrRequestNotFound
	case errors.Is(err, store.ErrSessionNotFound):
		return ErrSessionNotFound
	}

	// Domain lifecycle and capacity errors map to their service sentinels
	// while keeping the domain error in the chain for detail.
	switch {
	case errors.Is(err, domain.ErrIllegalTransition),
		errors.Is(err, domain.ErrMentorAlreadySelected):
		return fmt.Errorf("%w: %w", ErrIllegalState, err)
	case errors.Is(err, domain.ErrMentorAtCapacity):
		return fmt.Errorf("%w: %w", ErrCapacityExceeded, err)
	case errors.Is(err, domain.ErrMatchNotFound):
		return ErrMatchNotFound
	case errors.Is(err, domain.ErrSessionNotFound):
		return ErrSessionNotFound
	}

	return &MentorshipServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
