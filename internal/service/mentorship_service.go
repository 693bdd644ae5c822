package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/seedstage/mentorship-api/internal/domain"
	"github.com/seedstage/mentorship-api/internal/domain/matching"
	"github.com/seedstage/mentorship-api/internal/events"
	"github.com/seedstage/mentorship-api/internal/semantic"
	"github.com/seedstage/mentorship-api/internal/store"
)

// CreateRequestParams carries the input for creating a mentorship request.
type CreateRequestParams struct {
	StartupID   uuid.UUID
	RequesterID uuid.UUID
	Topic       string
	Description string
	Skills      []string
	Domains     []string
	Urgency     domain.Urgency
}

// ScheduleSessionParams carries the input for scheduling a session.
type ScheduleSessionParams struct {
	RequestID       uuid.UUID
	ScheduledAt     time.Time
	DurationMinutes int
	MeetingLink     string
}

// SubmitFeedbackParams carries one side's feedback for a session.
type SubmitFeedbackParams struct {
	SessionID   uuid.UUID
	FounderSide bool
	Rating      int
	Comment     string
}

// MentorshipService drives the mentorship request lifecycle.
type MentorshipService interface {
	// CreateRequest validates and persists a new request, immediately runs
	// a matching pass, and emits lifecycle events.
	CreateRequest(ctx context.Context, params CreateRequestParams) (*domain.MentorshipRequest, error)

	// GetRequest retrieves a request aggregate by ID.
	GetRequest(ctx context.Context, requestID uuid.UUID) (*domain.MentorshipRequest, error)

	// RunMatching recomputes the request's match list. It is re-runnable
	// while no mentor has been selected.
	RunMatching(ctx context.Context, requestID uuid.UUID) (*domain.MentorshipRequest, error)

	// SelectMentor accepts one of the request's match entries and takes a
	// mentee slot on the chosen mentor.
	SelectMentor(ctx context.Context, requestID, mentorID uuid.UUID) (*domain.MentorshipRequest, error)

	// ScheduleSession adds a session with the selected mentor.
	ScheduleSession(ctx context.Context, params ScheduleSessionParams) (*domain.Session, error)

	// SubmitFeedback records one side's feedback for a session. Founder
	// feedback folds into the mentor's rolling rating.
	SubmitFeedback(ctx context.Context, params SubmitFeedbackParams) (*domain.Session, error)

	// CompleteRequest closes out a scheduled request and frees the
	// mentor's mentee slot.
	CompleteRequest(ctx context.Context, requestID, actorID uuid.UUID) (*domain.MentorshipRequest, error)

	// CancelRequest terminally cancels a request, recording who cancelled
	// and why, and frees the mentee slot if one was taken.
	CancelRequest(ctx context.Context, requestID, actorID uuid.UUID, reason string) (*domain.MentorshipRequest, error)
}

// mentorshipServiceImpl implements the MentorshipService interface
type mentorshipServiceImpl struct {
	requestRepo  RequestRepository
	mentorRepo   MentorRepository
	matcher      matching.Service
	semantic     semantic.Client
	eventEmitter events.EventEmitter
	locks        *mentorLocks
	logger       *slog.Logger
}

// NewMentorshipService creates a new MentorshipService.
// It returns an error if any of the required dependencies are nil; pass
// semantic.Disabled{} rather than nil when no semantic provider is
// configured.
func NewMentorshipService(
	requestRepo RequestRepository,
	mentorRepo MentorRepository,
	matcher matching.Service,
	semanticClient semantic.Client,
	eventEmitter events.EventEmitter,
	logger *slog.Logger,
) (MentorshipService, error) {
	if requestRepo == nil {
		return nil, &MentorshipServiceError{Operation: "create_service", Message: "requestRepo cannot be nil"}
	}
	if mentorRepo == nil {
		return nil, &MentorshipServiceError{Operation: "create_service", Message: "mentorRepo cannot be nil"}
	}
	if matcher == nil {
		return nil, &MentorshipServiceError{Operation: "create_service", Message: "matcher cannot be nil"}
	}
	if semanticClient == nil {
		return nil, &MentorshipServiceError{Operation: "create_service", Message: "semanticClient cannot be nil"}
	}
	if eventEmitter == nil {
		return nil, &MentorshipServiceError{Operation: "create_service", Message: "eventEmitter cannot be nil"}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &mentorshipServiceImpl{
		requestRepo:  requestRepo,
		mentorRepo:   mentorRepo,
		matcher:      matcher,
		semantic:     semanticClient,
		eventEmitter: eventEmitter,
		locks:        newMentorLocks(),
		logger:       logger.With("component", "mentorship_service"),
	}, nil
}

// CreateRequest implements MentorshipService.CreateRequest
func (s *mentorshipServiceImpl) CreateRequest(
	ctx context.Context,
	params CreateRequestParams,
) (*domain.MentorshipRequest, error) {
	request, err := domain.NewMentorshipRequest(
		params.StartupID,
		params.RequesterID,
		params.Topic,
		params.Description,
		params.Skills,
		params.Domains,
		params.Urgency,
	)
	if err != nil {
		s.logger.Error("failed to create request object",
			"error", err,
			"startup_id", params.StartupID)
		return nil, NewMentorshipServiceError("create_request", "failed to create request object", err)
	}

	// Run the initial matching pass before the aggregate is persisted, so
	// the request lands in the store already Matched when candidates exist.
	if err := s.match(ctx, request); err != nil {
		return nil, NewMentorshipServiceError("create_request", "initial matching pass failed", err)
	}

	if err := s.requestRepo.Create(ctx, request); err != nil {
		s.logger.Error("failed to persist request",
			"error", err,
			"request_id", request.ID)
		return nil, NewMentorshipServiceError("create_request", "failed to save request", err)
	}

	s.logger.Info("mentorship request created",
		"request_id", request.ID,
		"startup_id", request.StartupID,
		"status", request.Status,
		"match_count", len(request.MatchedMentors))

	s.emitEvent(ctx, events.EventRequestCreated, request.ID, struct {
		Topic   string         `json:"topic"`
		Urgency domain.Urgency `json:"urgency"`
	}{request.Topic, request.Urgency})

	if len(request.MatchedMentors) > 0 {
		s.emitMatchedEvent(ctx, request)
	}

	return request, nil
}

// GetRequest implements MentorshipService.GetRequest
func (s *mentorshipServiceImpl) GetRequest(
	ctx context.Context,
	requestID uuid.UUID,
) (*domain.MentorshipRequest, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, NewMentorshipServiceError("get_request", "failed to retrieve request", err)
	}
	return request, nil
}

// RunMatching implements MentorshipService.RunMatching
func (s *mentorshipServiceImpl) RunMatching(
	ctx context.Context,
	requestID uuid.UUID,
) (*domain.MentorshipRequest, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, NewMentorshipServiceError("run_matching", "failed to retrieve request", err)
	}

	// Matching can be re-run only while the request is still open and no
	// mentor has been accepted.
	if request.SelectedMentor != nil {
		return nil, NewMentorshipServiceError("run_matching", "mentor already selected", ErrIllegalState)
	}
	if request.Status != domain.RequestStatusPending && request.Status != domain.RequestStatusMatched {
		return nil, NewMentorshipServiceError("run_matching", "request is not open for matching", ErrIllegalState)
	}

	if err := s.match(ctx, request); err != nil {
		return nil, NewMentorshipServiceError("run_matching", "matching pass failed", err)
	}

	if err := s.requestRepo.Update(ctx, request); err != nil {
		return nil, NewMentorshipServiceError("run_matching", "failed to save request", err)
	}

	s.logger.Info("matching pass completed",
		"request_id", request.ID,
		"status", request.Status,
		"match_count", len(request.MatchedMentors))

	if len(request.MatchedMentors) > 0 {
		s.emitMatchedEvent(ctx, request)
	}

	return request, nil
}

// match runs one scoring pass over the active mentor pool and mutates the
// request's match list, rationale, and status accordingly. The semantic
// factor and the rationale are both best-effort: their absence degrades the
// result, never fails it.
func (s *mentorshipServiceImpl) match(ctx context.Context, request *domain.MentorshipRequest) error {
	mentors, err := s.mentorRepo.ListActive(ctx)
	if err != nil {
		return err
	}

	semanticScores := s.computeSemanticScores(ctx, request, mentors)

	entries, err := s.matcher.Rank(request, mentors, semanticScores)
	if err != nil {
		return err
	}

	if err := request.SetMatches(entries); err != nil {
		return err
	}

	// Pending with matches advances to Matched; a re-run that comes back
	// empty drops a Matched request to Pending.
	if len(entries) > 0 && request.Status == domain.RequestStatusPending {
		if err := request.TransitionTo(domain.RequestStatusMatched); err != nil {
			return err
		}
	} else if len(entries) == 0 && request.Status == domain.RequestStatusMatched {
		if err := request.TransitionTo(domain.RequestStatusPending); err != nil {
			return err
		}
	}

	request.MatchRationale = s.summarizeMatches(ctx, request)
	return nil
}

// SelectMentor implements MentorshipService.SelectMentor
func (s *mentorshipServiceImpl) SelectMentor(
	ctx context.Context,
	requestID, mentorID uuid.UUID,
) (*domain.MentorshipRequest, error) {
	// Serialize capacity mutations for this mentor across concurrent
	// selections.
	s.locks.Lock(mentorID)
	defer s.locks.Unlock(mentorID)

	var updated *domain.MentorshipRequest
	err := store.RunInTransaction(ctx, s.requestRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		txRequests := s.requestRepo.WithTx(tx)
		txMentors := s.mentorRepo.WithTx(tx)

		request, err := txRequests.GetByID(ctx, requestID)
		if err != nil {
			return err
		}

		if request.Status != domain.RequestStatusMatched {
			return ErrIllegalState
		}

		if err := request.SelectMentor(mentorID, time.Now().UTC()); err != nil {
			return err
		}

		mentor, err := txMentors.GetByID(ctx, mentorID)
		if err != nil {
			return err
		}

		if err := mentor.AddMentee(request.StartupID); err != nil {
			return err
		}

		if err := txMentors.Update(ctx, mentor); err != nil {
			return err
		}
		if err := txRequests.Update(ctx, request); err != nil {
			return err
		}

		updated = request
		return nil
	})
	if err != nil {
		return nil, NewMentorshipServiceError("select_mentor", "failed to select mentor", err)
	}

	s.logger.Info("mentor selected",
		"request_id", requestID,
		"mentor_id", mentorID)

	s.emitEvent(ctx, events.EventMentorSelected, requestID, struct {
		MentorID uuid.UUID `json:"mentor_id"`
	}{mentorID})

	return updated, nil
}

// ScheduleSession implements MentorshipService.ScheduleSession
func (s *mentorshipServiceImpl) ScheduleSession(
	ctx context.Context,
	params ScheduleSessionParams,
) (*domain.Session, error) {
	request, err := s.requestRepo.GetByID(ctx, params.RequestID)
	if err != nil {
		return nil, NewMentorshipServiceError("schedule_session", "failed to retrieve request", err)
	}

	if request.SelectedMentor == nil {
		return nil, NewMentorshipServiceError("schedule_session", "no mentor selected", ErrIllegalState)
	}

	now := time.Now().UTC()
	session, err := domain.NewSession(
		*request.SelectedMentor,
		params.ScheduledAt,
		params.DurationMinutes,
		params.MeetingLink,
		now,
	)
	if err != nil {
		return nil, NewMentorshipServiceError("schedule_session", "invalid session", err)
	}

	if err := request.AddSession(*session); err != nil {
		return nil, NewMentorshipServiceError("schedule_session", "failed to add session", err)
	}

	if err := s.requestRepo.Update(ctx, request); err != nil {
		return nil, NewMentorshipServiceError("schedule_session", "failed to save request", err)
	}

	s.logger.Info("session scheduled",
		"request_id", request.ID,
		"session_id", session.ID,
		"scheduled_at", session.ScheduledAt)

	s.emitEvent(ctx, events.EventSessionScheduled, request.ID, struct {
		SessionID   uuid.UUID `json:"session_id"`
		ScheduledAt time.Time `json:"scheduled_at"`
	}{session.ID, session.ScheduledAt})

	return session, nil
}

// SubmitFeedback implements MentorshipService.SubmitFeedback
func (s *mentorshipServiceImpl) SubmitFeedback(
	ctx context.Context,
	params SubmitFeedbackParams,
) (*domain.Session, error) {
	// Locate the owning request first so the mentor lock can be taken
	// before the transactional read-modify-write.
	request, err := s.requestRepo.GetBySessionID(ctx, params.SessionID)
	if err != nil {
		return nil, NewMentorshipServiceError("submit_feedback", "failed to locate session", err)
	}

	session := request.FindSession(params.SessionID)
	if session == nil {
		return nil, NewMentorshipServiceError("submit_feedback", "session not on request", ErrSessionNotFound)
	}
	mentorID := session.MentorID

	// Either side's submission can be the one that completes the session
	// and folds the founder rating into the mentor aggregate, so the
	// per-mentor lock is taken unconditionally.
	s.locks.Lock(mentorID)
	defer s.locks.Unlock(mentorID)

	var updated *domain.Session
	err = store.RunInTransaction(ctx, s.requestRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		txRequests := s.requestRepo.WithTx(tx)

		request, err := txRequests.GetByID(ctx, request.ID)
		if err != nil {
			return err
		}

		session := request.FindSession(params.SessionID)
		if session == nil {
			return ErrSessionNotFound
		}

		now := time.Now().UTC()
		if err := session.SubmitFeedback(params.FounderSide, params.Rating, params.Comment, now); err != nil {
			return err
		}

		// The mentor aggregate moves only once both sides are present and
		// the session has just completed. Folding the founder's stored
		// rating at that point keeps a session the mentor never responds
		// to, or that is later cancelled, out of the rolling rating and
		// the sessions-completed count.
		if session.Status == domain.SessionStatusCompleted {
			txMentors := s.mentorRepo.WithTx(tx)
			mentor, err := txMentors.GetByID(ctx, mentorID)
			if err != nil {
				return err
			}
			if err := mentor.RecordSessionFeedback(session.FounderFeedback.Rating); err != nil {
				return err
			}
			if err := txMentors.Update(ctx, mentor); err != nil {
				return err
			}
		}

		if err := txRequests.Update(ctx, request); err != nil {
			return err
		}

		sessionCopy := *session
		updated = &sessionCopy
		return nil
	})
	if err != nil {
		return nil, NewMentorshipServiceError("submit_feedback", "failed to submit feedback", err)
	}

	s.logger.Info("session feedback submitted",
		"request_id", request.ID,
		"session_id", params.SessionID,
		"founder_side", params.FounderSide,
		"session_status", updated.Status)

	return updated, nil
}

// CompleteRequest implements MentorshipService.CompleteRequest
func (s *mentorshipServiceImpl) CompleteRequest(
	ctx context.Context,
	requestID, actorID uuid.UUID,
) (*domain.MentorshipRequest, error) {
	request, err := s.closeRequest(ctx, requestID, func(request *domain.MentorshipRequest) error {
		return request.TransitionTo(domain.RequestStatusCompleted)
	})
	if err != nil {
		return nil, NewMentorshipServiceError("complete_request", "failed to complete request", err)
	}

	s.logger.Info("mentorship request completed",
		"request_id", requestID,
		"actor_id", actorID)

	s.emitEvent(ctx, events.EventRequestCompleted, requestID, struct {
		ActorID uuid.UUID `json:"actor_id"`
	}{actorID})

	return request, nil
}

// CancelRequest implements MentorshipService.CancelRequest
func (s *mentorshipServiceImpl) CancelRequest(
	ctx context.Context,
	requestID, actorID uuid.UUID,
	reason string,
) (*domain.MentorshipRequest, error) {
	request, err := s.closeRequest(ctx, requestID, func(request *domain.MentorshipRequest) error {
		return request.Cancel(actorID, reason, time.Now().UTC())
	})
	if err != nil {
		return nil, NewMentorshipServiceError("cancel_request", "failed to cancel request", err)
	}

	s.logger.Info("mentorship request cancelled",
		"request_id", requestID,
		"actor_id", actorID,
		"reason", reason)

	s.emitEvent(ctx, events.EventRequestCancelled, requestID, struct {
		ActorID uuid.UUID `json:"actor_id"`
		Reason  string    `json:"reason,omitempty"`
	}{actorID, reason})

	return request, nil
}

// errSelectionRaced signals that a mentor was selected between the
// unlocked peek and the transactional read, so the close must be retried
// with the lock decision made against the new selection.
var errSelectionRaced = errors.New("mentor selected while closing request")

// selectionRaced reports whether the selection observed inside the
// transaction no longer matches the peek the lock decision was based on.
func selectionRaced(peeked, current *uuid.UUID) bool {
	if peeked == nil {
		return current != nil
	}
	return current == nil || *current != *peeked
}

// closeRequest applies a terminal transition to the request and, when a
// mentor had been selected, frees the startup's mentee slot in the same
// transaction. The per-mentor lock covers the capacity mutation; a
// selection committing between the peek and the transaction start is
// detected inside the transaction and the close retried under the lock.
func (s *mentorshipServiceImpl) closeRequest(
	ctx context.Context,
	requestID uuid.UUID,
	transition func(*domain.MentorshipRequest) error,
) (*domain.MentorshipRequest, error) {
	for {
		updated, err := s.closeRequestOnce(ctx, requestID, transition)
		if errors.Is(err, errSelectionRaced) {
			continue
		}
		return updated, err
	}
}

func (s *mentorshipServiceImpl) closeRequestOnce(
	ctx context.Context,
	requestID uuid.UUID,
	transition func(*domain.MentorshipRequest) error,
) (*domain.MentorshipRequest, error) {
	// Peek at the aggregate to learn whether a mentor slot must be freed;
	// the authoritative read happens inside the transaction under the lock.
	peek, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	peekedMentor := peek.SelectedMentor
	if peekedMentor != nil {
		mentorID := *peekedMentor
		s.locks.Lock(mentorID)
		defer s.locks.Unlock(mentorID)
	}

	var updated *domain.MentorshipRequest
	err = store.RunInTransaction(ctx, s.requestRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		txRequests := s.requestRepo.WithTx(tx)

		request, err := txRequests.GetByID(ctx, requestID)
		if err != nil {
			return err
		}

		if selectionRaced(peekedMentor, request.SelectedMentor) {
			return errSelectionRaced
		}

		if err := transition(request); err != nil {
			return err
		}

		if request.SelectedMentor != nil {
			txMentors := s.mentorRepo.WithTx(tx)
			mentor, err := txMentors.GetByID(ctx, *request.SelectedMentor)
			if err != nil {
				return err
			}
			mentor.RemoveMentee(request.StartupID)
			if err := txMentors.Update(ctx, mentor); err != nil {
				return err
			}
		}

		if err := txRequests.Update(ctx, request); err != nil {
			return err
		}

		updated = request
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// emitEvent emits a lifecycle notification event. Notification delivery is
// fire-and-forget: emit failures are logged and never fail the operation
// that triggered them.
func (s *mentorshipServiceImpl) emitEvent(ctx context.Context, eventType string, requestID uuid.UUID, payload interface{}) {
	event, err := events.NewNotificationEvent(eventType, requestID, payload)
	if err != nil {
		s.logger.Error("failed to create notification event",
			"error", err,
			"event_type", eventType,
			"request_id", requestID)
		return
	}

	if err := s.eventEmitter.EmitEvent(ctx, event); err != nil {
		s.logger.Warn("failed to emit notification event",
			"error", err,
			"event_type", eventType,
			"event_id", event.ID,
			"request_id", requestID)
	}
}

// emitMatchedEvent emits the mentor_matched event with the top entry.
func (s *mentorshipServiceImpl) emitMatchedEvent(ctx context.Context, request *domain.MentorshipRequest) {
	top := request.MatchedMentors[0]
	s.emitEvent(ctx, events.EventMentorMatched, request.ID, struct {
		MatchCount int       `json:"match_count"`
		TopMentor  uuid.UUID `json:"top_mentor"`
		TopScore   float64   `json:"top_score"`
	}{len(request.MatchedMentors), top.MentorID, top.Score})
}
