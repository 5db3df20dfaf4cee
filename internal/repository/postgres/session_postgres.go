package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/fittrack/activity-service/internal/domain"
	"github.com/fittrack/activity-service/internal/repository"
)

type sessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository creates a new PostgreSQL session repository
func NewSessionRepository(db *sqlx.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

// Create inserts a new session into the database. The partial unique
// index sessions_one_open_per_owner rejects a second open session for
// the same owner; that violation is surfaced as ErrDuplicateOpenSession.
func (r *sessionRepository) Create(ctx context.Context, session *domain.Session) error {
	query := `
		INSERT INTO sessions (
			id, owner, label, activity_type, description,
			start_time, end_time, duration_seconds, created_at, updated_at
		) VALUES (
			:id, :owner, :label, :activity_type, :description,
			:start_time, :end_time, :duration_seconds, :created_at, :updated_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, session)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicateOpenSession
		}
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

// GetByID retrieves a session by its ID
func (r *sessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	query := `
		SELECT id, owner, label, activity_type, description,
			   start_time, end_time, duration_seconds, created_at, updated_at
		FROM sessions
		WHERE id = $1`

	var session domain.Session
	err := r.db.GetContext(ctx, &session, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get session by id: %w", err)
	}

	return &session, nil
}

// GetOpenByOwner retrieves the owner's running session. The ORDER BY
// keeps the selection deterministic should pre-existing data ever hold
// more than one open row.
func (r *sessionRepository) GetOpenByOwner(ctx context.Context, owner string) (*domain.Session, error) {
	query := `
		SELECT id, owner, label, activity_type, description,
			   start_time, end_time, duration_seconds, created_at, updated_at
		FROM sessions
		WHERE owner = $1 AND end_time IS NULL
		ORDER BY start_time DESC
		LIMIT 1`

	var session domain.Session
	err := r.db.GetContext(ctx, &session, query, owner)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get open session: %w", err)
	}

	return &session, nil
}

// ListByOwner retrieves all sessions for an owner, most recent first
func (r *sessionRepository) ListByOwner(ctx context.Context, owner string) ([]*domain.Session, error) {
	query := `
		SELECT id, owner, label, activity_type, description,
			   start_time, end_time, duration_seconds, created_at, updated_at
		FROM sessions
		WHERE owner = $1
		ORDER BY start_time DESC`

	sessions := []*domain.Session{}
	err := r.db.SelectContext(ctx, &sessions, query, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	return sessions, nil
}

// Close persists the end time and duration of a stopped session. The
// end_time IS NULL guard makes close-once a database-level fact: a row
// that was closed concurrently matches zero rows.
func (r *sessionRepository) Close(ctx context.Context, session *domain.Session) error {
	query := `
		UPDATE sessions
		SET end_time = :end_time,
			duration_seconds = :duration_seconds,
			updated_at = :updated_at
		WHERE id = :id AND end_time IS NULL`

	result, err := r.db.NamedExecContext(ctx, query, session)
	if err != nil {
		return fmt.Errorf("failed to close session: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return repository.ErrSessionClosed
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
