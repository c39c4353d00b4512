package consumption

import (
	"context"

	"thenest/internal/domain"

	"github.com/google/uuid"
)

type ConsumptionRepository interface {
	Create(ctx context.Context, c *domain.Consumption) error
	ListByGuest(ctx context.Context, guestID uuid.UUID) ([]domain.Consumption, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type GuestRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Guest, error)
}

type ProductRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	MapByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Product, error)
}
