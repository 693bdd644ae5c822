package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/seedstage/mentorship-api/internal/domain"
	"github.com/seedstage/mentorship-api/internal/service"
)

// MockMentorshipService is a testify mock of service.MentorshipService
// for handler tests.
type MockMentorshipService struct {
	mock.Mock
}

func (m *MockMentorshipService) CreateRequest(ctx context.Context, params service.CreateRequestParams) (*domain.MentorshipRequest, error) {
	args := m.Called(ctx, params)
	request, _ := args.Get(0).(*domain.MentorshipRequest)
	return request, args.Error(1)
}

func (m *MockMentorshipService) GetRequest(ctx context.Context, requestID uuid.UUID) (*domain.MentorshipRequest, error) {
	args := m.Called(ctx, requestID)
	request, _ := args.Get(0).(*domain.MentorshipRequest)
	return request, args.Error(1)
}

func (m *MockMentorshipService) RunMatching(ctx context.Context, requestID uuid.UUID) (*domain.MentorshipRequest, error) {
	args := m.Called(ctx, requestID)
	request, _ := args.Get(0).(*domain.MentorshipRequest)
	return request, args.Error(1)
}

func (m *MockMentorshipService) SelectMentor(ctx context.Context, requestID, mentorID uuid.UUID) (*domain.MentorshipRequest, error) {
	args := m.Called(ctx, requestID, mentorID)
	request, _ := args.Get(0).(*domain.MentorshipRequest)
	return request, args.Error(1)
}

func (m *MockMentorshipService) ScheduleSession(ctx context.Context, params service.ScheduleSessionParams) (*domain.Session, error) {
	args := m.Called(ctx, params)
	session, _ := args.Get(0).(*domain.Session)
	return session, args.Error(1)
}

func (m *MockMentorshipService) SubmitFeedback(ctx context.Context, params service.SubmitFeedbackParams) (*domain.Session, error) {
	args := m.Called(ctx, params)
	session, _ := args.Get(0).(*domain.Session)
	return session, args.Error(1)
}

func (m *MockMentorshipService) CompleteRequest(ctx context.Context, requestID, actorID uuid.UUID) (*domain.MentorshipRequest, error) {
	args := m.Called(ctx, requestID, actorID)
	request, _ := args.Get(0).(*domain.MentorshipRequest)
	return request, args.Error(1)
}

func (m *MockMentorshipService) CancelRequest(ctx context.Context, requestID, actorID uuid.UUID, reason string) (*domain.MentorshipRequest, error) {
	args := m.Called(ctx, requestID, actorID, reason)
	request, _ := args.Get(0).(*domain.MentorshipRequest)
	return request, args.Error(1)
}

// Compile-time check so the mock tracks interface changes.
var _ service.MentorshipService = (*MockMentorshipService)(nil)
