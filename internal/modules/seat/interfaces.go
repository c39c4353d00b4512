package seat

import (
	"context"

	"thenest/internal/domain"
	"thenest/internal/repository"

	"github.com/google/uuid"
)

type SeatRepository interface {
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.SeatReservation, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SeatReservation, error)
	Claim(ctx context.Context, res *domain.SeatReservation) (repository.SeatOutcome, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type SessionRepository interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Session, error)
}

type GuestRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Guest, error)
}

// Publisher receives the full seat map of a session after each change.
type Publisher interface {
	Publish(sessionID uuid.UUID, seats []SeatState)
}
