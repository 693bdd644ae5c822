package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/seedstage/mentorship-api/internal/domain"
)

// RequestStore defines the interface for mentorship request persistence.
// A request is stored as a single aggregate: its match list, sessions,
// and cancellation record travel with it.
type RequestStore interface {
	// Create saves a new mentorship request.
	// Returns ErrDuplicate if a request with the same ID already exists.
	Create(ctx context.Context, request *domain.MentorshipRequest) error

	// GetByID retrieves a request by its unique ID.
	// Returns ErrRequestNotFound if the request does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.MentorshipRequest, error)

	// GetBySessionID retrieves the request that owns the given session.
	// Returns ErrSessionNotFound if no request contains the session.
	GetBySessionID(ctx context.Context, sessionID uuid.UUID) (*domain.MentorshipRequest, error)

	// Update saves changes to an existing request, replacing the stored
	// aggregate (status, matches, sessions, cancellation) wholesale.
	// Returns ErrRequestNotFound if the request does not exist.
	Update(ctx context.Context, request *domain.MentorshipRequest) error

	// WithTx returns a new RequestStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) RequestStore
}
