package handler

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fittrack/activity-service/internal/domain"
)

type memExerciseRepo struct {
	mu        sync.Mutex
	exercises []*domain.Exercise
}

func (r *memExerciseRepo) Create(ctx context.Context, exercise *domain.Exercise) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exercises = append(r.exercises, exercise)
	return nil
}

func (r *memExerciseRepo) ListByUsername(ctx context.Context, username string) ([]*domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.Exercise{}
	for _, e := range r.exercises {
		if e.Username == username {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func TestExercises_Add(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.request(t, http.MethodPost, "/exercises/add", map[string]any{
		"username":     "alice",
		"exerciseType": "Yoga",
		"duration":     45,
		"date":         time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC).Format(time.RFC3339),
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Exercise added", body["message"])

	exercise := body["exercise"].(map[string]any)
	assert.Equal(t, "Yoga", exercise["exerciseType"])
	assert.Equal(t, float64(45), exercise["duration"])
}

func TestExercises_Add_Validation(t *testing.T) {
	env := newTestEnv(t)
	date := time.Now().Format(time.RFC3339)

	cases := []map[string]any{
		{"exerciseType": "Gym", "duration": 30, "date": date}, // missing username
		{"username": "alice", "duration": 30, "date": date},   // missing type
		{"username": "alice", "exerciseType": "Skiing", "duration": 30, "date": date},
		{"username": "alice", "exerciseType": "Gym", "duration": 0, "date": date},
		{"username": "alice", "exerciseType": "Gym", "duration": 30}, // missing date
	}
	for _, payload := range cases {
		resp, _ := env.request(t, http.MethodPost, "/exercises/add", payload, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "payload %v", payload)
	}
}

func TestExercises_ListByUser(t *testing.T) {
	env := newTestEnv(t)

	for _, day := range []int{10, 12, 11} {
		resp, _ := env.request(t, http.MethodPost, "/exercises/add", map[string]any{
			"username":     "alice",
			"exerciseType": "Running",
			"duration":     30,
			"date":         time.Date(2025, 3, day, 7, 0, 0, 0, time.UTC).Format(time.RFC3339),
		}, "")
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, body := env.request(t, http.MethodGet, "/exercises/user/alice", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	exercises := body["exercises"].([]any)
	require.Len(t, exercises, 3)
	first := exercises[0].(map[string]any)
	assert.Contains(t, first["date"], "2025-03-12")
}

func TestExercises_Activities(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.request(t, http.MethodGet, "/exercises/activities", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	activities := body["activities"].([]any)
	assert.Contains(t, activities, "Yoga")
	assert.Contains(t, activities, "Running")
}
