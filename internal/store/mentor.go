package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/seedstage/mentorship-api/internal/domain"
)

// MentorStore defines the interface for mentor data persistence.
type MentorStore interface {
	// Create saves a new mentor to the store.
	// Returns validation errors if the mentor data is invalid and
	// ErrDuplicate if a mentor with the same ID already exists.
	Create(ctx context.Context, mentor *domain.Mentor) error

	// GetByID retrieves a mentor by its unique ID.
	// Returns ErrMentorNotFound if the mentor does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Mentor, error)

	// ListActive retrieves all active mentors for a matching run.
	// The returned order is stable (creation order) so ranking tie-breaks
	// stay deterministic across runs.
	ListActive(ctx context.Context) ([]*domain.Mentor, error)

	// Update saves changes to an existing mentor, including capacity and
	// rating bookkeeping. Returns ErrMentorNotFound if the mentor does
	// not exist.
	//
	// IMPORTANT: capacity and rating updates are read-modify-write; the
	// service layer serializes them per mentor before calling Update.
	Update(ctx context.Context, mentor *domain.Mentor) error

	// WithTx returns a new MentorStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller
	// (typically a service via RunInTransaction).
	WithTx(tx *sql.Tx) MentorStore
}
