package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/fittrack/activity-service/internal/domain"
	"github.com/fittrack/activity-service/internal/repository"
)

var (
	ErrUsernameRequired    = errors.New("username is required")
	ErrInvalidExerciseType = errors.New("invalid exercise type")
	ErrInvalidDuration     = errors.New("duration must be a positive integer")
)

type ExerciseService struct {
	exerciseRepo repository.ExerciseRepository
}

type AddExerciseInput struct {
	Username     string
	ExerciseType string
	SubActivity  string
	Description  string
	Duration     int
	Date         time.Time
}

func NewExerciseService(exerciseRepo repository.ExerciseRepository) *ExerciseService {
	return &ExerciseService{
		exerciseRepo: exerciseRepo,
	}
}

// Add logs a discrete exercise entry for a user.
func (s *ExerciseService) Add(ctx context.Context, in AddExerciseInput) (*domain.Exercise, error) {
	if in.Username == "" {
		return nil, ErrUsernameRequired
	}
	if !slices.Contains(domain.ExerciseActivityTypes, in.ExerciseType) {
		return nil, ErrInvalidExerciseType
	}
	if in.Duration < 1 {
		return nil, ErrInvalidDuration
	}

	now := time.Now()
	exercise := &domain.Exercise{
		ID:           uuid.New(),
		Username:     in.Username,
		ExerciseType: in.ExerciseType,
		SubActivity:  optional(in.SubActivity),
		Description:  optional(in.Description),
		Duration:     in.Duration,
		Date:         in.Date,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.exerciseRepo.Create(ctx, exercise); err != nil {
		return nil, fmt.Errorf("failed to create exercise: %w", err)
	}

	return exercise, nil
}

// ListByUsername returns a user's exercise entries, most recent first.
func (s *ExerciseService) ListByUsername(ctx context.Context, username string) ([]*domain.Exercise, error) {
	if username == "" {
		return nil, ErrUsernameRequired
	}
	return s.exerciseRepo.ListByUsername(ctx, username)
}

// Activities returns the catalog of trackable exercise types.
func (s *ExerciseService) Activities() []string {
	return domain.ExerciseActivityTypes
}
