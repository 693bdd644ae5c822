// Package gemini provides an implementation of the semantic.Client interface
// that uses Google's Gemini API for embedding texts and summarizing matches.
//
// This package is an infrastructure adapter, connecting the matching engine's
// optional semantic factor to Google's external Gemini service. It translates
// between the application's domain models and the Gemini API without exposing
// the details of the external service to the core application.
//
// Error handling follows the semantic package's taxonomy: transient API
// failures are retried with exponential backoff and jitter, malformed
// responses are permanent errors, and callers treat every failure as a
// signal to degrade gracefully rather than abort the matching run.
package gemini
