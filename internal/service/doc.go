// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and repositories
// (defined in internal/store) to fulfill application features.
//
// The mentorship service drives the request lifecycle end to end: request
// intake, matching runs, mentor selection, session scheduling, feedback, and
// completion or cancellation. It applies transactional boundaries when an
// operation spans the request and mentor aggregates, serializes capacity
// mutations per mentor, and emits lifecycle events for the notification
// pipeline.
//
// Error handling:
//   - Service methods return sentinel errors for expected error conditions
//   - Unexpected errors are wrapped in MentorshipServiceError
//   - Callers use errors.Is/errors.As to check for specific conditions
//   - The API layer maps service errors to appropriate HTTP status codes
//
// The service layer depends on domain entities and repository interfaces,
// never on specific infrastructure implementations.
package service
