package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/fittrack/activity-service/internal/domain"
	"github.com/fittrack/activity-service/internal/repository"
)

// FakeSessionRepository is an in-memory SessionRepository with the same
// semantics as the Postgres store, including the one-open-session-per-
// owner uniqueness and the guarded close. Safe for concurrent use so
// tests can race starts and stops against it.
type FakeSessionRepository struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]domain.Session

	// CreateErr, when set, is returned by every Create call.
	CreateErr error
}

func NewFakeSessionRepository() *FakeSessionRepository {
	return &FakeSessionRepository{
		sessions: make(map[uuid.UUID]domain.Session),
	}
}

func (r *FakeSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.CreateErr != nil {
		return r.CreateErr
	}

	if session.EndTime == nil {
		for _, existing := range r.sessions {
			if existing.Owner == session.Owner && existing.EndTime == nil {
				return repository.ErrDuplicateOpenSession
			}
		}
	}

	r.sessions[session.ID] = cloneSession(session)
	return nil
}

func (r *FakeSessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := cloneSession(&session)
	return &copy, nil
}

func (r *FakeSessionRepository) GetOpenByOwner(ctx context.Context, owner string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var open *domain.Session
	for _, session := range r.sessions {
		if session.Owner != owner || session.EndTime != nil {
			continue
		}
		if open == nil || session.StartTime.After(open.StartTime) {
			copy := cloneSession(&session)
			open = &copy
		}
	}
	if open == nil {
		return nil, repository.ErrNotFound
	}
	return open, nil
}

func (r *FakeSessionRepository) ListByOwner(ctx context.Context, owner string) ([]*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessions := []*domain.Session{}
	for _, session := range r.sessions {
		if session.Owner == owner {
			copy := cloneSession(&session)
			sessions = append(sessions, &copy)
		}
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].StartTime.After(sessions[j].StartTime)
	})
	return sessions, nil
}

func (r *FakeSessionRepository) Close(ctx context.Context, session *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.sessions[session.ID]
	if !ok || existing.EndTime != nil {
		return repository.ErrSessionClosed
	}
	r.sessions[session.ID] = cloneSession(session)
	return nil
}

// OpenCount reports how many open sessions an owner currently has.
func (r *FakeSessionRepository) OpenCount(owner string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, session := range r.sessions {
		if session.Owner == owner && session.EndTime == nil {
			count++
		}
	}
	return count
}

// Count reports the total number of stored sessions for an owner.
func (r *FakeSessionRepository) Count(owner string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, session := range r.sessions {
		if session.Owner == owner {
			count++
		}
	}
	return count
}

func cloneSession(s *domain.Session) domain.Session {
	copy := *s
	if s.ActivityType != nil {
		v := *s.ActivityType
		copy.ActivityType = &v
	}
	if s.Description != nil {
		v := *s.Description
		copy.Description = &v
	}
	if s.EndTime != nil {
		v := *s.EndTime
		copy.EndTime = &v
	}
	if s.DurationSeconds != nil {
		v := *s.DurationSeconds
		copy.DurationSeconds = &v
	}
	return copy
}
