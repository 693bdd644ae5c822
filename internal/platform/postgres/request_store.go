package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/seedstage/mentorship-api/internal/domain"
	"github.com/seedstage/mentorship-api/internal/platform/logger"
	"github.com/seedstage/mentorship-api/internal/store"
)

// PostgresRequestStore implements the store.RequestStore interface
// using a PostgreSQL database as the storage backend. The request's match
// entries, sessions, and cancellation record are stored as JSONB columns
// on the request row, so the aggregate is always read and written whole.
type PostgresRequestStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresRequestStore creates a new PostgreSQL implementation of the
// RequestStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresRequestStore(db store.DBTX, logger *slog.Logger) *PostgresRequestStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresRequestStore{
		db:     db,
		logger: logger.With(slog.String("component", "request_store")),
	}
}

// Ensure PostgresRequestStore implements store.RequestStore interface
var _ store.RequestStore = (*PostgresRequestStore)(nil)

const requestColumns = `id, startup_id, requester_id, topic, description,
	skills, domains, urgency, status, matched_mentors, match_rationale,
	selected_mentor, sessions, cancellation, created_at, updated_at`

// Create implements store.RequestStore.Create
func (s *PostgresRequestStore) Create(ctx context.Context, request *domain.MentorshipRequest) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := request.Validate(); err != nil {
		return err
	}

	fields, err := marshalRequestFields(request)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO mentorship_requests (id, startup_id, requester_id, topic,
			description, skills, domains, urgency, status, matched_mentors,
			match_rationale, selected_mentor, sessions, cancellation,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err = s.db.ExecContext(ctx, query,
		request.ID,
		request.StartupID,
		request.RequesterID,
		request.Topic,
		request.Description,
		fields.skills,
		fields.domains,
		request.Urgency,
		request.Status,
		fields.matches,
		request.MatchRationale,
		request.SelectedMentor,
		fields.sessions,
		fields.cancellation,
		request.CreatedAt,
		request.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create mentorship request",
			slog.String("request_id", request.ID.String()),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	log.Debug("mentorship request created",
		slog.String("request_id", request.ID.String()),
		slog.String("startup_id", request.StartupID.String()))
	return nil
}

// GetByID implements store.RequestStore.GetByID
func (s *PostgresRequestStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.MentorshipRequest, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`SELECT %s FROM mentorship_requests WHERE id = $1`, requestColumns)

	request, err := scanRequest(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if IsNotFoundError(err) {
			return nil, store.ErrRequestNotFound
		}
		log.Error("failed to get mentorship request by ID",
			slog.String("request_id", id.String()),
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return request, nil
}

// GetBySessionID implements store.RequestStore.GetBySessionID
// It locates the request whose sessions JSONB array contains a session with
// the given ID.
func (s *PostgresRequestStore) GetBySessionID(ctx context.Context, sessionID uuid.UUID) (*domain.MentorshipRequest, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`
		SELECT %s FROM mentorship_requests
		WHERE sessions @> jsonb_build_array(jsonb_build_object('id', $1::text))
	`, requestColumns)

	request, err := scanRequest(s.db.QueryRowContext(ctx, query, sessionID.String()))
	if err != nil {
		if IsNotFoundError(err) {
			return nil, store.ErrSessionNotFound
		}
		log.Error("failed to get mentorship request by session ID",
			slog.String("session_id", sessionID.String()),
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return request, nil
}

// Update implements store.RequestStore.Update
// It replaces the stored aggregate wholesale; callers mutate the domain
// object and persist it in one write.
func (s *PostgresRequestStore) Update(ctx context.Context, request *domain.MentorshipRequest) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := request.Validate(); err != nil {
		return err
	}

	fields, err := marshalRequestFields(request)
	if err != nil {
		return err
	}

	query := `
		UPDATE mentorship_requests
		SET topic = $2, description = $3, skills = $4, domains = $5,
			urgency = $6, status = $7, matched_mentors = $8,
			match_rationale = $9, selected_mentor = $10, sessions = $11,
			cancellation = $12, updated_at = $13
		WHERE id = $1
	`

	result, err := s.db.ExecContext(ctx, query,
		request.ID,
		request.Topic,
		request.Description,
		fields.skills,
		fields.domains,
		request.Urgency,
		request.Status,
		fields.matches,
		request.MatchRationale,
		request.SelectedMentor,
		fields.sessions,
		fields.cancellation,
		request.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to update mentorship request",
			slog.String("request_id", request.ID.String()),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "mentorship request"); err != nil {
		return store.ErrRequestNotFound
	}

	log.Debug("mentorship request updated",
		slog.String("request_id", request.ID.String()),
		slog.String("status", string(request.Status)))
	return nil
}

// WithTx implements store.RequestStore.WithTx
// It returns a new RequestStore that uses the provided transaction.
func (s *PostgresRequestStore) WithTx(tx *sql.Tx) store.RequestStore {
	return &PostgresRequestStore{
		db:     tx,
		logger: s.logger,
	}
}

// requestJSONFields holds the JSONB-serialized slice and struct fields of a
// request row.
type requestJSONFields struct {
	skills       []byte
	domains      []byte
	matches      []byte
	sessions     []byte
	cancellation []byte
}

func marshalRequestFields(request *domain.MentorshipRequest) (*requestJSONFields, error) {
	skills, err := marshalJSONB(request.Skills)
	if err != nil {
		return nil, err
	}
	domains, err := marshalJSONB(request.Domains)
	if err != nil {
		return nil, err
	}
	matches, err := marshalJSONB(request.MatchedMentors)
	if err != nil {
		return nil, err
	}
	sessions, err := marshalJSONB(request.Sessions)
	if err != nil {
		return nil, err
	}

	// Cancellation is a nullable object column, not a list.
	var cancellation []byte
	if request.Cancellation != nil {
		cancellation, err = marshalJSONB(request.Cancellation)
		if err != nil {
			return nil, err
		}
	}

	return &requestJSONFields{
		skills:       skills,
		domains:      domains,
		matches:      matches,
		sessions:     sessions,
		cancellation: cancellation,
	}, nil
}

// scanRequest maps a mentorship request database row onto a
// domain.MentorshipRequest.
func scanRequest(row rowScanner) (*domain.MentorshipRequest, error) {
	var (
		request        domain.MentorshipRequest
		skills         []byte
		domains        []byte
		matches        []byte
		sessions       []byte
		cancellation   []byte
		selectedMentor uuid.NullUUID
	)

	err := row.Scan(
		&request.ID,
		&request.StartupID,
		&request.RequesterID,
		&request.Topic,
		&request.Description,
		&skills,
		&domains,
		&request.Urgency,
		&request.Status,
		&matches,
		&request.MatchRationale,
		&selectedMentor,
		&sessions,
		&cancellation,
		&request.CreatedAt,
		&request.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := unmarshalJSONB(skills, &request.Skills); err != nil {
		return nil, err
	}
	if err := unmarshalJSONB(domains, &request.Domains); err != nil {
		return nil, err
	}
	if err := unmarshalJSONB(matches, &request.MatchedMentors); err != nil {
		return nil, err
	}
	if err := unmarshalJSONB(sessions, &request.Sessions); err != nil {
		return nil, err
	}
	if len(cancellation) > 0 {
		request.Cancellation = &domain.Cancellation{}
		if err := unmarshalJSONB(cancellation, request.Cancellation); err != nil {
			return nil, err
		}
	}
	if selectedMentor.Valid {
		request.SelectedMentor = &selectedMentor.UUID
	}
	if request.MatchedMentors == nil {
		request.MatchedMentors = make([]domain.MatchEntry, 0)
	}
	if request.Sessions == nil {
		request.Sessions = make([]domain.Session, 0)
	}

	return &request, nil
}
