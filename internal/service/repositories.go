package service

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/seedstage/mentorship-api/internal/domain"
)

// MentorRepository defines the mentor persistence interface for the
// service layer. It is aligned with store.MentorStore plus access to the
// underlying database connection for transaction management.
type MentorRepository interface {
	// Create saves a new mentor to the store
	Create(ctx context.Context, mentor *domain.Mentor) error

	// GetByID retrieves a mentor by its unique ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Mentor, error)

	// ListActive retrieves all active mentors for a matching run
	ListActive(ctx context.Context) ([]*domain.Mentor, error)

	// Update saves changes to an existing mentor
	Update(ctx context.Context, mentor *domain.Mentor) error

	// WithTx returns a new repository instance that uses the provided transaction
	WithTx(tx *sql.Tx) MentorRepository

	// DB returns the underlying database connection
	DB() *sql.DB
}

// RequestRepository defines the mentorship request persistence interface
// for the service layer, aligned with store.RequestStore.
type RequestRepository interface {
	// Create saves a new mentorship request
	Create(ctx context.Context, request *domain.MentorshipRequest) error

	// GetByID retrieves a request by its unique ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.MentorshipRequest, error)

	// GetBySessionID retrieves the request that owns the given session
	GetBySessionID(ctx context.Context, sessionID uuid.UUID) (*domain.MentorshipRequest, error)

	// Update saves changes to an existing request
	Update(ctx context.Context, request *domain.MentorshipRequest) error

	// WithTx returns a new repository instance that uses the provided transaction
	WithTx(tx *sql.Tx) RequestRepository

	// DB returns the underlying database connection
	DB() *sql.DB
}
