package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/fittrack/activity-service/internal/domain"
)

type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	// GetOpenByOwner returns the owner's running session, or ErrNotFound.
	// If more than one exists the most recently started wins.
	GetOpenByOwner(ctx context.Context, owner string) (*domain.Session, error)
	ListByOwner(ctx context.Context, owner string) ([]*domain.Session, error)
	// Close persists the session's end time and duration. It only
	// touches rows that are still open and returns ErrSessionClosed if
	// the row was closed underneath us.
	Close(ctx context.Context, session *domain.Session) error
}
