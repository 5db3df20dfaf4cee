package repository

import (
	"context"

	"github.com/fittrack/activity-service/internal/domain"
)

type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) error
	ListByUsername(ctx context.Context, username string) ([]*domain.Exercise, error)
}
