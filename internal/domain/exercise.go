package domain

import (
	"time"

	"github.com/google/uuid"
)

// ExerciseActivityTypes lists the catalog of trackable exercise types.
// Yoga is offered for discrete exercises but not for timed sessions.
var ExerciseActivityTypes = []string{
	ActivityRunning,
	ActivityCycling,
	ActivitySwimming,
	ActivityGym,
	ActivityYoga,
	ActivityOther,
}

// Exercise is a single logged exercise entry. Duration is whole minutes
// reported by the user, unlike session durations which are derived from
// server timestamps.
type Exercise struct {
	ID           uuid.UUID `db:"id"`
	Username     string    `db:"username"`
	ExerciseType string    `db:"exercise_type"`
	SubActivity  *string   `db:"sub_activity"`
	Description  *string   `db:"description"`
	Duration     int       `db:"duration"`
	Date         time.Time `db:"date"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}
