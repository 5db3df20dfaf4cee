package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fittrack/activity-service/internal/domain"
)

type fakeExerciseRepo struct {
	exercises []*domain.Exercise
}

func (r *fakeExerciseRepo) Create(ctx context.Context, exercise *domain.Exercise) error {
	r.exercises = append(r.exercises, exercise)
	return nil
}

func (r *fakeExerciseRepo) ListByUsername(ctx context.Context, username string) ([]*domain.Exercise, error) {
	out := []*domain.Exercise{}
	for _, e := range r.exercises {
		if e.Username == username {
			out = append(out, e)
		}
	}
	return out, nil
}

func TestExerciseService_Add(t *testing.T) {
	repo := &fakeExerciseRepo{}
	svc := NewExerciseService(repo)

	exercise, err := svc.Add(context.Background(), AddExerciseInput{
		Username:     "alice",
		ExerciseType: domain.ActivityYoga,
		Duration:     45,
		Date:         time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ActivityYoga, exercise.ExerciseType)
	assert.Equal(t, 45, exercise.Duration)
	assert.Len(t, repo.exercises, 1)
}

func TestExerciseService_Add_Validation(t *testing.T) {
	svc := NewExerciseService(&fakeExerciseRepo{})
	ctx := context.Background()
	date := time.Now()

	_, err := svc.Add(ctx, AddExerciseInput{ExerciseType: domain.ActivityGym, Duration: 30, Date: date})
	assert.ErrorIs(t, err, ErrUsernameRequired)

	_, err = svc.Add(ctx, AddExerciseInput{Username: "alice", ExerciseType: "Skiing", Duration: 30, Date: date})
	assert.ErrorIs(t, err, ErrInvalidExerciseType)

	_, err = svc.Add(ctx, AddExerciseInput{Username: "alice", ExerciseType: domain.ActivityGym, Duration: 0, Date: date})
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestExerciseService_Activities(t *testing.T) {
	svc := NewExerciseService(&fakeExerciseRepo{})
	activities := svc.Activities()
	assert.Contains(t, activities, domain.ActivityYoga)
	assert.Contains(t, activities, domain.ActivityRunning)
}
