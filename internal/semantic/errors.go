package semantic

import "errors"

// Common errors returned by the semantic package
var (
	// ErrUnavailable is returned when no semantic provider is configured,
	// or when the provider cannot serve the request. Callers treat it as
	// a signal to skip the semantic factor, never as a fatal error.
	ErrUnavailable = errors.New("semantic provider unavailable")

	// ErrInvalidInput is returned when the input texts are empty or unusable
	ErrInvalidInput = errors.New("invalid input for semantic operation")

	// ErrInvalidResponse is returned when the provider response cannot be parsed or is malformed
	ErrInvalidResponse = errors.New("invalid response from semantic provider")

	// ErrTransientFailure is returned for temporary errors that might resolve on retry
	ErrTransientFailure = errors.New("transient error from semantic provider")

	// ErrInvalidConfig is returned when the provider configuration is invalid
	ErrInvalidConfig = errors.New("invalid semantic provider configuration")
)
