package handler

import (
	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(
	app *fiber.App,
	sessionHandler *SessionHandler,
	timerSessionHandler *TimerSessionHandler,
	exerciseHandler *ExerciseHandler,
	healthHandler *HealthHandler,
	authMiddleware fiber.Handler,
) {
	// Health checks (public)
	app.Get("/health", healthHandler.Health)
	app.Get("/ready", healthHandler.Ready)

	// Label-addressed timer sessions (public)
	sessions := app.Group("/sessions")
	sessions.Post("/start", sessionHandler.Start)
	sessions.Post("/stop", sessionHandler.Stop)
	sessions.Get("/", sessionHandler.List)

	// Identity-addressed timer sessions (protected)
	timers := app.Group("/timer-sessions", authMiddleware)
	timers.Post("/", timerSessionHandler.Create)
	timers.Get("/", timerSessionHandler.List)
	timers.Get("/:id", timerSessionHandler.Get)

	// Exercise log (public)
	exercises := app.Group("/exercises")
	exercises.Post("/add", exerciseHandler.Add)
	exercises.Get("/activities", exerciseHandler.Activities)
	exercises.Get("/user/:username", exerciseHandler.List)
}
