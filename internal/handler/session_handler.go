package handler

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fittrack/activity-service/internal/domain"
	"github.com/fittrack/activity-service/internal/service"
	"github.com/fittrack/activity-service/pkg/validator"
)

// SessionHandler serves the label-addressed timer API: the owner is a
// plain username carried in the request body, no credential required.
type SessionHandler struct {
	sessions  *service.SessionService
	validator *validator.Validator
}

func NewSessionHandler(sessions *service.SessionService, validator *validator.Validator) *SessionHandler {
	return &SessionHandler{
		sessions:  sessions,
		validator: validator,
	}
}

type startSessionRequest struct {
	Username     string `json:"username" validate:"required"`
	Label        string `json:"label"`
	ActivityType string `json:"activityType" validate:"omitempty,oneof=Running Cycling Swimming Gym Other"`
	Description  string `json:"description"`
}

type stopSessionRequest struct {
	Username  string `json:"username"`
	SessionID string `json:"sessionId"`
}

type sessionResponse struct {
	ID              string     `json:"id"`
	Username        string     `json:"username"`
	Label           string     `json:"label"`
	ActivityType    *string    `json:"activityType,omitempty"`
	Description     *string    `json:"description,omitempty"`
	StartTime       time.Time  `json:"startTime"`
	EndTime         *time.Time `json:"endTime,omitempty"`
	DurationSeconds *int       `json:"durationSeconds,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func toSessionResponse(s *domain.Session) sessionResponse {
	return sessionResponse{
		ID:              s.ID.String(),
		Username:        s.Owner,
		Label:           s.Label,
		ActivityType:    s.ActivityType,
		Description:     s.Description,
		StartTime:       s.StartTime,
		EndTime:         s.EndTime,
		DurationSeconds: s.DurationSeconds,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// Start begins a new timer session for a user
// POST /sessions/start
func (h *SessionHandler) Start(c *fiber.Ctx) error {
	var req startSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.validator.Validate(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	session, err := h.sessions.Start(c.Context(), req.Username, service.StartInput{
		Label:        req.Label,
		ActivityType: req.ActivityType,
		Description:  req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOwnerRequired):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "username is required",
			})
		case errors.Is(err, service.ErrTimerAlreadyRunning):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Timer is already running",
			})
		case errors.Is(err, service.ErrInvalidActivityType):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid activity type",
			})
		default:
			log.Printf("[SESSION] Failed to start timer for %q: %v", req.Username, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to start timer",
			})
		}
	}

	return c.JSON(fiber.Map{
		"message": "Timer started",
		"session": toSessionResponse(session),
	})
}

// Stop ends a running timer session, addressed either by session id or
// by the user's current open session
// POST /sessions/stop
func (h *SessionHandler) Stop(c *fiber.Ctx) error {
	var req stopSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Username == "" && req.SessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "username or sessionId is required",
		})
	}

	session, err := h.sessions.Stop(c.Context(), req.Username, req.SessionID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Session not found",
			})
		case errors.Is(err, service.ErrSessionAlreadyStopped):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Session already stopped",
			})
		case errors.Is(err, service.ErrNoActiveTimer):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "No active timer to stop",
			})
		default:
			log.Printf("[SESSION] Failed to stop timer for %q: %v", req.Username, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to stop timer",
			})
		}
	}

	return c.JSON(fiber.Map{
		"message": "Timer stopped",
		"session": toSessionResponse(session),
	})
}

// List returns a user's sessions, most recently started first
// GET /sessions?user=<username>
func (h *SessionHandler) List(c *fiber.Ctx) error {
	user := c.Query("user")
	if user == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "user query param required",
		})
	}

	sessions, err := h.sessions.List(c.Context(), user)
	if err != nil {
		log.Printf("[SESSION] Failed to list sessions for %q: %v", user, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch sessions",
		})
	}

	response := make([]sessionResponse, len(sessions))
	for i, session := range sessions {
		response[i] = toSessionResponse(session)
	}

	return c.JSON(fiber.Map{
		"sessions": response,
	})
}
