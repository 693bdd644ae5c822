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

// PostgresMentorStore implements the store.MentorStore interface
// using a PostgreSQL database as the storage backend.
type PostgresMentorStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresMentorStore creates a new PostgreSQL implementation of the
// MentorStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresMentorStore(db store.DBTX, logger *slog.Logger) *PostgresMentorStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresMentorStore{
		db:     db,
		logger: logger.With(slog.String("component", "mentor_store")),
	}
}

// Ensure PostgresMentorStore implements store.MentorStore interface
var _ store.MentorStore = (*PostgresMentorStore)(nil)

// mentorColumns is the canonical column list shared by reads.
const mentorColumns = `id, name, bio, company, avatar_url, expertise, domains,
	availability, rating, total_ratings, sessions_completed, max_mentees,
	current_mentees, active, busy_by_capacity, created_at, updated_at`

// Create implements store.MentorStore.Create
func (s *PostgresMentorStore) Create(ctx context.Context, mentor *domain.Mentor) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := mentor.Validate(); err != nil {
		return err
	}

	expertise, err := marshalJSONB(mentor.Expertise)
	if err != nil {
		return err
	}
	domains, err := marshalJSONB(mentor.Domains)
	if err != nil {
		return err
	}
	mentees, err := marshalJSONB(mentor.CurrentMentees)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO mentors (id, name, bio, company, avatar_url, expertise,
			domains, availability, rating, total_ratings, sessions_completed,
			max_mentees, current_mentees, active, busy_by_capacity,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err = s.db.ExecContext(ctx, query,
		mentor.ID,
		mentor.Name,
		mentor.Bio,
		mentor.Company,
		mentor.AvatarURL,
		expertise,
		domains,
		mentor.Availability,
		mentor.Rating,
		mentor.TotalRatings,
		mentor.SessionsCompleted,
		mentor.MaxMentees,
		mentees,
		mentor.Active,
		mentor.BusyByCapacity,
		mentor.CreatedAt,
		mentor.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create mentor",
			slog.String("mentor_id", mentor.ID.String()),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	log.Debug("mentor created",
		slog.String("mentor_id", mentor.ID.String()))
	return nil
}

// GetByID implements store.MentorStore.GetByID
func (s *PostgresMentorStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Mentor, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`SELECT %s FROM mentors WHERE id = $1`, mentorColumns)

	mentor, err := scanMentor(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if IsNotFoundError(err) {
			return nil, store.ErrMentorNotFound
		}
		log.Error("failed to get mentor by ID",
			slog.String("mentor_id", id.String()),
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return mentor, nil
}

// ListActive implements store.MentorStore.ListActive
func (s *PostgresMentorStore) ListActive(ctx context.Context) ([]*domain.Mentor, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Creation order keeps ranking tie-breaks deterministic.
	query := fmt.Sprintf(
		`SELECT %s FROM mentors WHERE active = TRUE ORDER BY created_at ASC, id ASC`,
		mentorColumns,
	)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list active mentors",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var mentors []*domain.Mentor
	for rows.Next() {
		mentor, err := scanMentor(rows)
		if err != nil {
			log.Error("failed to scan mentor row",
				slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		mentors = append(mentors, mentor)
	}

	if err := rows.Err(); err != nil {
		log.Error("error iterating mentor rows",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return mentors, nil
}

// Update implements store.MentorStore.Update
func (s *PostgresMentorStore) Update(ctx context.Context, mentor *domain.Mentor) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := mentor.Validate(); err != nil {
		return err
	}

	expertise, err := marshalJSONB(mentor.Expertise)
	if err != nil {
		return err
	}
	domains, err := marshalJSONB(mentor.Domains)
	if err != nil {
		return err
	}
	mentees, err := marshalJSONB(mentor.CurrentMentees)
	if err != nil {
		return err
	}

	query := `
		UPDATE mentors
		SET name = $2, bio = $3, company = $4, avatar_url = $5, expertise = $6,
			domains = $7, availability = $8, rating = $9, total_ratings = $10,
			sessions_completed = $11, max_mentees = $12, current_mentees = $13,
			active = $14, busy_by_capacity = $15, updated_at = $16
		WHERE id = $1
	`

	result, err := s.db.ExecContext(ctx, query,
		mentor.ID,
		mentor.Name,
		mentor.Bio,
		mentor.Company,
		mentor.AvatarURL,
		expertise,
		domains,
		mentor.Availability,
		mentor.Rating,
		mentor.TotalRatings,
		mentor.SessionsCompleted,
		mentor.MaxMentees,
		mentees,
		mentor.Active,
		mentor.BusyByCapacity,
		mentor.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to update mentor",
			slog.String("mentor_id", mentor.ID.String()),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "mentor"); err != nil {
		return store.ErrMentorNotFound
	}

	log.Debug("mentor updated",
		slog.String("mentor_id", mentor.ID.String()))
	return nil
}

// WithTx implements store.MentorStore.WithTx
// It returns a new MentorStore that uses the provided transaction.
func (s *PostgresMentorStore) WithTx(tx *sql.Tx) store.MentorStore {
	return &PostgresMentorStore{
		db:     tx,
		logger: s.logger,
	}
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scan logic.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanMentor maps a mentor database row onto a domain.Mentor.
func scanMentor(row rowScanner) (*domain.Mentor, error) {
	var (
		mentor    domain.Mentor
		expertise []byte
		domains   []byte
		mentees   []byte
	)

	err := row.Scan(
		&mentor.ID,
		&mentor.Name,
		&mentor.Bio,
		&mentor.Company,
		&mentor.AvatarURL,
		&expertise,
		&domains,
		&mentor.Availability,
		&mentor.Rating,
		&mentor.TotalRatings,
		&mentor.SessionsCompleted,
		&mentor.MaxMentees,
		&mentees,
		&mentor.Active,
		&mentor.BusyByCapacity,
		&mentor.CreatedAt,
		&mentor.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := unmarshalJSONB(expertise, &mentor.Expertise); err != nil {
		return nil, err
	}
	if err := unmarshalJSONB(domains, &mentor.Domains); err != nil {
		return nil, err
	}
	if err := unmarshalJSONB(mentees, &mentor.CurrentMentees); err != nil {
		return nil, err
	}
	if mentor.CurrentMentees == nil {
		mentor.CurrentMentees = make([]uuid.UUID, 0)
	}

	return &mentor, nil
}
