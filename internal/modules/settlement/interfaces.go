package settlement

import (
	"context"

	"thenest/internal/domain"
	"thenest/internal/modules/costs"
	"thenest/internal/repository"

	"github.com/google/uuid"
)

type SettlementRepository interface {
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.Settlement, error)
	Modify(ctx context.Context, sessionID, guestID uuid.UUID, create bool,
		fn func(s *domain.Settlement, alloc repository.SymbolAllocator) error) (*domain.Settlement, error)
	SaveOverrides(ctx context.Context, rows []domain.Settlement) error
}

type SessionRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error)
}

type GuestRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Guest, error)
}

// CostReader is satisfied by costs.Service.
type CostReader interface {
	ForSlug(ctx context.Context, slug string) (*costs.Report, error)
	ForSession(ctx context.Context, sessionID uuid.UUID) (*costs.Report, error)
	ForGuest(ctx context.Context, sessionID, guestID uuid.UUID) (*costs.GuestCosts, *costs.Report, error)
}
