package handler

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/fittrack/activity-service/internal/domain"
	"github.com/fittrack/activity-service/internal/service"
	"github.com/fittrack/activity-service/pkg/validator"
)

// TimerSessionHandler serves the identity-addressed timer API. The owner
// is the authenticated principal from the auth middleware; sessions of
// other principals are indistinguishable from missing ones.
type TimerSessionHandler struct {
	sessions  *service.SessionService
	validator *validator.Validator
}

func NewTimerSessionHandler(sessions *service.SessionService, validator *validator.Validator) *TimerSessionHandler {
	return &TimerSessionHandler{
		sessions:  sessions,
		validator: validator,
	}
}

type createTimerSessionRequest struct {
	TaskLabel string    `json:"taskLabel"`
	StartTime time.Time `json:"startTime" validate:"required"`
	EndTime   time.Time `json:"endTime" validate:"required"`
	// Duration is accepted for wire compatibility but recomputed
	// server-side from the interval.
	Duration int `json:"duration"`
}

type timerSessionResponse struct {
	ID        string     `json:"id"`
	TaskLabel string     `json:"taskLabel"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	Duration  *int       `json:"duration,omitempty"`
	UserID    string     `json:"userId"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func toTimerSessionResponse(s *domain.Session) timerSessionResponse {
	return timerSessionResponse{
		ID:        s.ID.String(),
		TaskLabel: s.Label,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Duration:  s.DurationSeconds,
		UserID:    s.Owner,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func callerID(c *fiber.Ctx) (string, bool) {
	userID, ok := c.Locals("user_id").(uuid.UUID)
	if !ok {
		return "", false
	}
	return userID.String(), true
}

// Create records a completed timer session for the caller
// POST /timer-sessions
func (h *TimerSessionHandler) Create(c *fiber.Ctx) error {
	owner, ok := callerID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication required",
		})
	}

	var req createTimerSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.validator.Validate(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
		})
	}

	session, err := h.sessions.Record(c.Context(), owner, service.RecordInput{
		TaskLabel: req.TaskLabel,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidInterval) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "endTime must not be before startTime",
			})
		}
		log.Printf("[TIMER] Failed to record session for %s: %v", owner, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to create timer session",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(toTimerSessionResponse(session))
}

// List returns all timer sessions for the caller, most recent first
// GET /timer-sessions
func (h *TimerSessionHandler) List(c *fiber.Ctx) error {
	owner, ok := callerID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication required",
		})
	}

	sessions, err := h.sessions.List(c.Context(), owner)
	if err != nil {
		log.Printf("[TIMER] Failed to list sessions for %s: %v", owner, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch timer sessions",
		})
	}

	response := make([]timerSessionResponse, len(sessions))
	for i, session := range sessions {
		response[i] = toTimerSessionResponse(session)
	}

	return c.JSON(response)
}

// Get returns one of the caller's timer sessions by id
// GET /timer-sessions/:id
func (h *TimerSessionHandler) Get(c *fiber.Ctx) error {
	owner, ok := callerID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication required",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Timer session not found",
		})
	}

	session, err := h.sessions.Get(c.Context(), owner, id)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Timer session not found",
			})
		}
		log.Printf("[TIMER] Failed to get session %s for %s: %v", id, owner, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch timer session",
		})
	}

	return c.JSON(toTimerSessionResponse(session))
}
