package tip

import (
	"context"

	"thenest/internal/domain"

	"github.com/google/uuid"
)

type TipRepository interface {
	Get(ctx context.Context, sessionID, guestID uuid.UUID) (*domain.Tip, error)
	Upsert(ctx context.Context, t *domain.Tip) error
}

type SessionRepository interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Session, error)
}

type GuestRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Guest, error)
}
