package guest

import (
	"context"

	"thenest/internal/domain"

	"github.com/google/uuid"
)

type SessionRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Session, error)
}

type GuestRepository interface {
	CreateUnique(ctx context.Context, g *domain.Guest) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Guest, error)
	ListBySession(ctx context.Context, sessionID uuid.UUID, includeInactive bool) ([]domain.Guest, error)
	NameTaken(ctx context.Context, sessionID uuid.UUID, name string, exceptID uuid.UUID) (bool, error)
	Update(ctx context.Context, g *domain.Guest) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}
