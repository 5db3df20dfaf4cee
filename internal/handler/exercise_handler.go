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

type ExerciseHandler struct {
	exercises *service.ExerciseService
	validator *validator.Validator
}

func NewExerciseHandler(exercises *service.ExerciseService, validator *validator.Validator) *ExerciseHandler {
	return &ExerciseHandler{
		exercises: exercises,
		validator: validator,
	}
}

type addExerciseRequest struct {
	Username     string    `json:"username" validate:"required"`
	ExerciseType string    `json:"exerciseType" validate:"required,oneof=Running Cycling Swimming Gym Yoga Other"`
	SubActivity  string    `json:"subActivity"`
	Description  string    `json:"description"`
	Duration     int       `json:"duration" validate:"required,min=1"`
	Date         time.Time `json:"date" validate:"required"`
}

type exerciseResponse struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	ExerciseType string    `json:"exerciseType"`
	SubActivity  *string   `json:"subActivity,omitempty"`
	Description  *string   `json:"description,omitempty"`
	Duration     int       `json:"duration"`
	Date         time.Time `json:"date"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func toExerciseResponse(e *domain.Exercise) exerciseResponse {
	return exerciseResponse{
		ID:           e.ID.String(),
		Username:     e.Username,
		ExerciseType: e.ExerciseType,
		SubActivity:  e.SubActivity,
		Description:  e.Description,
		Duration:     e.Duration,
		Date:         e.Date,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

// Add logs a discrete exercise entry
// POST /exercises/add
func (h *ExerciseHandler) Add(c *fiber.Ctx) error {
	var req addExerciseRequest
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

	exercise, err := h.exercises.Add(c.Context(), service.AddExerciseInput{
		Username:     req.Username,
		ExerciseType: req.ExerciseType,
		SubActivity:  req.SubActivity,
		Description:  req.Description,
		Duration:     req.Duration,
		Date:         req.Date,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameRequired),
			errors.Is(err, service.ErrInvalidExerciseType),
			errors.Is(err, service.ErrInvalidDuration):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		default:
			log.Printf("[EXERCISE] Failed to add exercise for %q: %v", req.Username, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to add exercise",
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Exercise added",
		"exercise": toExerciseResponse(exercise),
	})
}

// List returns a user's exercise entries, most recent first
// GET /exercises/user/:username
func (h *ExerciseHandler) List(c *fiber.Ctx) error {
	username := c.Params("username")

	exercises, err := h.exercises.ListByUsername(c.Context(), username)
	if err != nil {
		if errors.Is(err, service.ErrUsernameRequired) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "username is required",
			})
		}
		log.Printf("[EXERCISE] Failed to list exercises for %q: %v", username, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch exercises",
		})
	}

	response := make([]exerciseResponse, len(exercises))
	for i, exercise := range exercises {
		response[i] = toExerciseResponse(exercise)
	}

	return c.JSON(fiber.Map{
		"exercises": response,
	})
}

// Activities returns the catalog of trackable exercise types
// GET /exercises/activities
func (h *ExerciseHandler) Activities(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"activities": h.exercises.Activities(),
	})
}
