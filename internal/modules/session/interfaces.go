package session

import (
	"context"

	"thenest/internal/domain"

	"github.com/google/uuid"
)

type SessionRepository interface {
	Create(ctx context.Context, s *domain.Session) error
	Update(ctx context.Context, s *domain.Session) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Session, error)
	List(ctx context.Context) ([]domain.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type SettingsRepository interface {
	Get(ctx context.Context) (*domain.AdminSettings, error)
	SetActiveSession(ctx context.Context, id *uuid.UUID) error
	ClearActiveSessionIf(ctx context.Context, id uuid.UUID) error
}
