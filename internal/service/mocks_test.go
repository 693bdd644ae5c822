package service

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/seedstage/mentorship-api/internal/domain"
	"github.com/seedstage/mentorship-api/internal/events"
)

// MockMentorRepository mocks the MentorRepository interface
type MockMentorRepository struct {
	mock.Mock
}

func (m *MockMentorRepository) Create(ctx context.Context, mentor *domain.Mentor) error {
	args := m.Called(ctx, mentor)
	return args.Error(0)
}

func (m *MockMentorRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Mentor, error) {
	args := m.Called(ctx, id)
	mentor, _ := args.Get(0).(*domain.Mentor)
	return mentor, args.Error(1)
}

func (m *MockMentorRepository) ListActive(ctx context.Context) ([]*domain.Mentor, error) {
	args := m.Called(ctx)
	mentors, _ := args.Get(0).([]*domain.Mentor)
	return mentors, args.Error(1)
}

func (m *MockMentorRepository) Update(ctx context.Context, mentor *domain.Mentor) error {
	args := m.Called(ctx, mentor)
	return args.Error(0)
}

func (m *MockMentorRepository) WithTx(tx *sql.Tx) MentorRepository {
	args := m.Called(tx)
	return args.Get(0).(MentorRepository)
}

func (m *MockMentorRepository) DB() *sql.DB {
	args := m.Called()
	db, _ := args.Get(0).(*sql.DB)
	return db
}

// MockRequestRepository mocks the RequestRepository interface
type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) Create(ctx context.Context, request *domain.MentorshipRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockRequestRepository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.MentorshipRequest, error) {
	args := m.Called(ctx, id)
	request, _ := args.Get(0).(*domain.MentorshipRequest)
	return request, args.Error(1)
}

func (m *MockRequestRepository) GetBySessionID(
	ctx context.Context,
	sessionID uuid.UUID,
) (*domain.MentorshipRequest, error) {
	args := m.Called(ctx, sessionID)
	request, _ := args.Get(0).(*domain.MentorshipRequest)
	return request, args.Error(1)
}

func (m *MockRequestRepository) Update(ctx context.Context, request *domain.MentorshipRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockRequestRepository) WithTx(tx *sql.Tx) RequestRepository {
	args := m.Called(tx)
	return args.Get(0).(RequestRepository)
}

func (m *MockRequestRepository) DB() *sql.DB {
	args := m.Called()
	db, _ := args.Get(0).(*sql.DB)
	return db
}

// MockSemanticClient mocks the semantic.Client interface
type MockSemanticClient struct {
	mock.Mock
}

func (m *MockSemanticClient) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	args := m.Called(ctx, texts)
	embeddings, _ := args.Get(0).([][]float32)
	return embeddings, args.Error(1)
}

func (m *MockSemanticClient) SummarizeMatches(
	ctx context.Context,
	topic string,
	mentors []domain.MentorSummary,
) (string, error) {
	args := m.Called(ctx, topic, mentors)
	return args.String(0), args.Error(1)
}

// MockEventEmitter mocks the events.EventEmitter interface
type MockEventEmitter struct {
	mock.Mock
}

func (m *MockEventEmitter) EmitEvent(ctx context.Context, event *events.NotificationEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
