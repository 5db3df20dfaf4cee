package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// DefaultLabel is used when a session is started or recorded without one.
const DefaultLabel = "Untitled Task"

// Activity types a timed session may be tagged with.
const (
	ActivityRunning  = "Running"
	ActivityCycling  = "Cycling"
	ActivitySwimming = "Swimming"
	ActivityGym      = "Gym"
	ActivityYoga     = "Yoga"
	ActivityOther    = "Other"
)

// SessionActivityTypes lists the tags accepted on a timed session.
var SessionActivityTypes = []string{
	ActivityRunning,
	ActivityCycling,
	ActivitySwimming,
	ActivityGym,
	ActivityOther,
}

// Session is one timed activity interval for one owner. A nil EndTime
// means the session is still running; a set EndTime is never changed
// again.
type Session struct {
	ID              uuid.UUID  `db:"id"`
	Owner           string     `db:"owner"`
	Label           string     `db:"label"`
	ActivityType    *string    `db:"activity_type"`
	Description     *string    `db:"description"`
	StartTime       time.Time  `db:"start_time"`
	EndTime         *time.Time `db:"end_time"`
	DurationSeconds *int       `db:"duration_seconds"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}

// Open reports whether the session is still running.
func (s *Session) Open() bool {
	return s.EndTime == nil
}

// DurationBetween derives the persisted duration for a closed interval.
func DurationBetween(start, end time.Time) int {
	return int(math.Round(end.Sub(start).Seconds()))
}
