package hardware

import (
	"context"

	"thenest/internal/domain"
	"thenest/internal/repository"

	"github.com/google/uuid"
)

type HardwareRepository interface {
	ListItems(ctx context.Context, availableOnly bool) ([]domain.HardwareItem, error)
	GetItem(ctx context.Context, id uuid.UUID) (*domain.HardwareItem, error)
	CreateItem(ctx context.Context, it *domain.HardwareItem) error
	UpdateItem(ctx context.Context, it *domain.HardwareItem) error
	DeleteItem(ctx context.Context, id uuid.UUID) error
	Reserve(ctx context.Context, sessionID, guestID uuid.UUID, nights int, reqs []repository.ReservationRequest) ([]domain.HardwareReservation, error)
	ReservedBySession(ctx context.Context, sessionID uuid.UUID) (map[uuid.UUID]int, error)
	ListReservations(ctx context.Context, f repository.ReservationFilter) ([]domain.HardwareReservation, error)
	CancelReservation(ctx context.Context, id uuid.UUID) error
}

type GuestRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Guest, error)
}

type SessionRepository interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Session, error)
}

type SettingsRepository interface {
	Get(ctx context.Context) (*domain.AdminSettings, error)
}
