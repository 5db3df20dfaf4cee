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

// Custom errors
var (
	ErrOwnerRequired         = errors.New("owner is required")
	ErrMissingIdentifier     = errors.New("owner or session id is required")
	ErrTimerAlreadyRunning   = errors.New("timer is already running")
	ErrNoActiveTimer         = errors.New("no active timer to stop")
	ErrSessionAlreadyStopped = errors.New("session already stopped")
	ErrSessionNotFound       = errors.New("session not found")
	ErrInvalidActivityType   = errors.New("invalid activity type")
	ErrInvalidInterval       = errors.New("end time precedes start time")
)

// SessionService owns the per-owner start/stop state machine. It is the
// only place that decides whether a transition is legal; the store below
// it is passive apart from the one-open-session uniqueness constraint.
//
// Both API variants run through this one service: the caller resolves
// the owner (request-body username or verified principal id) and the
// machine does not care which.
type SessionService struct {
	sessionRepo repository.SessionRepository
	now         func() time.Time
}

type StartInput struct {
	Label        string
	ActivityType string
	Description  string
}

type RecordInput struct {
	TaskLabel string
	StartTime time.Time
	EndTime   time.Time
}

func NewSessionService(sessionRepo repository.SessionRepository) *SessionService {
	return &SessionService{
		sessionRepo: sessionRepo,
		now:         time.Now,
	}
}

// Start opens a new session for owner. It fails with
// ErrTimerAlreadyRunning if the owner already has one open; the store's
// uniqueness constraint turns the check-then-create race into the same
// conflict instead of a second open session.
func (s *SessionService) Start(ctx context.Context, owner string, in StartInput) (*domain.Session, error) {
	if owner == "" {
		return nil, ErrOwnerRequired
	}
	if in.ActivityType != "" && !slices.Contains(domain.SessionActivityTypes, in.ActivityType) {
		return nil, ErrInvalidActivityType
	}

	_, err := s.sessionRepo.GetOpenByOwner(ctx, owner)
	if err == nil {
		return nil, ErrTimerAlreadyRunning
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for open session: %w", err)
	}

	now := s.now()
	session := &domain.Session{
		ID:           uuid.New(),
		Owner:        owner,
		Label:        labelOrDefault(in.Label),
		ActivityType: optional(in.ActivityType),
		Description:  optional(in.Description),
		StartTime:    now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		if errors.Is(err, repository.ErrDuplicateOpenSession) {
			return nil, ErrTimerAlreadyRunning
		}
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return session, nil
}

// Stop closes a session. A non-empty sessionID targets that exact
// session; otherwise the owner's current open session is stopped. The
// end time and duration are derived from server clocks only.
func (s *SessionService) Stop(ctx context.Context, owner, sessionID string) (*domain.Session, error) {
	session, err := s.resolveStopTarget(ctx, owner, sessionID)
	if err != nil {
		return nil, err
	}

	end := s.now()
	if end.Before(session.StartTime) {
		return nil, ErrInvalidInterval
	}

	duration := domain.DurationBetween(session.StartTime, end)
	session.EndTime = &end
	session.DurationSeconds = &duration
	session.UpdatedAt = end

	if err := s.sessionRepo.Close(ctx, session); err != nil {
		if errors.Is(err, repository.ErrSessionClosed) {
			// Lost a race with another stop; the first close stands.
			return nil, ErrSessionAlreadyStopped
		}
		return nil, fmt.Errorf("failed to close session: %w", err)
	}

	return session, nil
}

func (s *SessionService) resolveStopTarget(ctx context.Context, owner, sessionID string) (*domain.Session, error) {
	if sessionID != "" {
		id, err := uuid.Parse(sessionID)
		if err != nil {
			return nil, ErrSessionNotFound
		}
		session, err := s.sessionRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrSessionNotFound
			}
			return nil, fmt.Errorf("failed to get session: %w", err)
		}
		if !session.Open() {
			return nil, ErrSessionAlreadyStopped
		}
		return session, nil
	}

	if owner == "" {
		return nil, ErrMissingIdentifier
	}

	session, err := s.sessionRepo.GetOpenByOwner(ctx, owner)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoActiveTimer
		}
		return nil, fmt.Errorf("failed to get open session: %w", err)
	}
	return session, nil
}

// List returns the owner's sessions, most recently started first.
func (s *SessionService) List(ctx context.Context, owner string) ([]*domain.Session, error) {
	if owner == "" {
		return nil, ErrOwnerRequired
	}
	return s.sessionRepo.ListByOwner(ctx, owner)
}

// Record persists an already-completed interval reported by the client.
// The wire shape carries a client duration but the stored one is always
// recomputed from the interval, so the duration invariant holds no
// matter what the client sends.
func (s *SessionService) Record(ctx context.Context, owner string, in RecordInput) (*domain.Session, error) {
	if owner == "" {
		return nil, ErrOwnerRequired
	}
	if in.EndTime.Before(in.StartTime) {
		return nil, ErrInvalidInterval
	}

	now := s.now()
	end := in.EndTime
	duration := domain.DurationBetween(in.StartTime, in.EndTime)
	session := &domain.Session{
		ID:              uuid.New(),
		Owner:           owner,
		Label:           labelOrDefault(in.TaskLabel),
		StartTime:       in.StartTime,
		EndTime:         &end,
		DurationSeconds: &duration,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return session, nil
}

// Get returns a session by id only if owner owns it. Foreign sessions
// come back as not-found so their existence is never leaked.
func (s *SessionService) Get(ctx context.Context, owner string, id uuid.UUID) (*domain.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session.Owner != owner {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func labelOrDefault(label string) string {
	if label == "" {
		return domain.DefaultLabel
	}
	return label
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
