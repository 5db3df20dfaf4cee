package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/fittrack/activity-service/internal/handler/middleware"
	"github.com/fittrack/activity-service/internal/service"
	"github.com/fittrack/activity-service/internal/testutil"
	"github.com/fittrack/activity-service/pkg/blacklist"
	"github.com/fittrack/activity-service/pkg/jwt"
	"github.com/fittrack/activity-service/pkg/validator"
)

const testSecret = "test-secret"

type testEnv struct {
	app         *fiber.App
	sessionRepo *testutil.FakeSessionRepository
	tokens      *jwt.TokenService
	blacklist   *blacklist.TokenBlacklist
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { redisClient.Close() })

	tokens, err := jwt.NewTokenService(testSecret, time.Hour, "activity-service-test")
	require.NoError(t, err)

	tokenBlacklist := blacklist.NewTokenBlacklist(redisClient)

	validate := validator.NewValidator()
	sessionRepo := testutil.NewFakeSessionRepository()
	sessionService := service.NewSessionService(sessionRepo)
	exerciseService := service.NewExerciseService(&memExerciseRepo{})

	app := fiber.New()
	SetupRoutes(
		app,
		NewSessionHandler(sessionService, validate),
		NewTimerSessionHandler(sessionService, validate),
		NewExerciseHandler(exerciseService, validate),
		NewHealthHandler(),
		middleware.AuthMiddleware(tokens, tokenBlacklist),
	)

	return &testEnv{
		app:         app,
		sessionRepo: sessionRepo,
		tokens:      tokens,
		blacklist:   tokenBlacklist,
	}
}

func (e *testEnv) request(t *testing.T, method, path string, body any, token string) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var decoded map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func (e *testEnv) requestWithRawAuth(t *testing.T, method, path string, body any, authHeader string) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var decoded map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func (e *testEnv) requestList(t *testing.T, path, token string) (*http.Response, []map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var decoded []map[string]any
	if len(raw) > 0 && raw[0] == '[' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}
