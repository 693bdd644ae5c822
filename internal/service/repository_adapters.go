package service

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/seedstage/mentorship-api/internal/domain"
	"github.com/seedstage/mentorship-api/internal/store"
)

// NewMentorRepositoryAdapter creates a new adapter that allows a
// store.MentorStore to be used where a MentorRepository is expected.
func NewMentorRepositoryAdapter(mentorStore store.MentorStore, db *sql.DB) MentorRepository {
	return &mentorRepositoryAdapter{
		mentorStore: mentorStore,
		db:          db,
	}
}

// mentorRepositoryAdapter adapts a store.MentorStore to the MentorRepository interface
type mentorRepositoryAdapter struct {
	mentorStore store.MentorStore
	db          *sql.DB
}

// Create implements MentorRepository.Create
func (a *mentorRepositoryAdapter) Create(ctx context.Context, mentor *domain.Mentor) error {
	return a.mentorStore.Create(ctx, mentor)
}

// GetByID implements MentorRepository.GetByID
func (a *mentorRepositoryAdapter) GetByID(ctx context.Context, id uuid.UUID) (*domain.Mentor, error) {
	return a.mentorStore.GetByID(ctx, id)
}

// ListActive implements MentorRepository.ListActive
func (a *mentorRepositoryAdapter) ListActive(ctx context.Context) ([]*domain.Mentor, error) {
	return a.mentorStore.ListActive(ctx)
}

// Update implements MentorRepository.Update
func (a *mentorRepositoryAdapter) Update(ctx context.Context, mentor *domain.Mentor) error {
	return a.mentorStore.Update(ctx, mentor)
}

// WithTx implements MentorRepository.WithTx
func (a *mentorRepositoryAdapter) WithTx(tx *sql.Tx) MentorRepository {
	return &mentorRepositoryAdapter{
		mentorStore: a.mentorStore.WithTx(tx),
		db:          a.db,
	}
}

// DB implements MentorRepository.DB
func (a *mentorRepositoryAdapter) DB() *sql.DB {
	return a.db
}

// NewRequestRepositoryAdapter creates a new adapter that allows a
// store.RequestStore to be used where a RequestRepository is expected.
func NewRequestRepositoryAdapter(requestStore store.RequestStore, db *sql.DB) RequestRepository {
	return &requestRepositoryAdapter{
		requestStore: requestStore,
		db:           db,
	}
}

// requestRepositoryAdapter adapts a store.RequestStore to the RequestRepository interface
type requestRepositoryAdapter struct {
	requestStore store.RequestStore
	db           *sql.DB
}

// Create implements RequestRepository.Create
func (a *requestRepositoryAdapter) Create(ctx context.Context, request *domain.MentorshipRequest) error {
	return a.requestStore.Create(ctx, request)
}

// GetByID implements RequestRepository.GetByID
func (a *requestRepositoryAdapter) GetByID(ctx context.Context, id uuid.UUID) (*domain.MentorshipRequest, error) {
	return a.requestStore.GetByID(ctx, id)
}

// GetBySessionID implements RequestRepository.GetBySessionID
func (a *requestRepositoryAdapter) GetBySessionID(ctx context.Context, sessionID uuid.UUID) (*domain.MentorshipRequest, error) {
	return a.requestStore.GetBySessionID(ctx, sessionID)
}

// Update implements RequestRepository.Update
func (a *requestRepositoryAdapter) Update(ctx context.Context, request *domain.MentorshipRequest) error {
	return a.requestStore.Update(ctx, request)
}

// WithTx implements RequestRepository.WithTx
func (a *requestRepositoryAdapter) WithTx(tx *sql.Tx) RequestRepository {
	return &requestRepositoryAdapter{
		requestStore: a.requestStore.WithTx(tx),
		db:           a.db,
	}
}

// DB implements RequestRepository.DB
func (a *requestRepositoryAdapter) DB() *sql.DB {
	return a.db
}
