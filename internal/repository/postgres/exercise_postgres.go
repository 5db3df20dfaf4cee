package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fittrack/activity-service/internal/domain"
	"github.com/fittrack/activity-service/internal/repository"
)

type exerciseRepository struct {
	db *sqlx.DB
}

// NewExerciseRepository creates a new PostgreSQL exercise repository
func NewExerciseRepository(db *sqlx.DB) repository.ExerciseRepository {
	return &exerciseRepository{db: db}
}

// Create inserts a new exercise entry into the database
func (r *exerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) error {
	query := `
		INSERT INTO exercises (
			id, username, exercise_type, sub_activity, description,
			duration, date, created_at, updated_at
		) VALUES (
			:id, :username, :exercise_type, :sub_activity, :description,
			:duration, :date, :created_at, :updated_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, exercise)
	if err != nil {
		return fmt.Errorf("failed to create exercise: %w", err)
	}

	return nil
}

// ListByUsername retrieves all exercise entries for a user, most recent first
func (r *exerciseRepository) ListByUsername(ctx context.Context, username string) ([]*domain.Exercise, error) {
	query := `
		SELECT id, username, exercise_type, sub_activity, description,
			   duration, date, created_at, updated_at
		FROM exercises
		WHERE username = $1
		ORDER BY date DESC`

	exercises := []*domain.Exercise{}
	err := r.db.SelectContext(ctx, &exercises, query, username)
	if err != nil {
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}

	return exercises, nil
}
