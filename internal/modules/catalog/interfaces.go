package catalog

import (
	"context"
	"time"

	"thenest/internal/domain"

	"github.com/google/uuid"
)

type ProductRepository interface {
	List(ctx context.Context, availableOnly bool) ([]domain.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) error
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type GameRepository interface {
	List(ctx context.Context, activeOnly bool) ([]domain.Game, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Game, error)
	Create(ctx context.Context, g *domain.Game) error
	Update(ctx context.Context, g *domain.Game) error
	Delete(ctx context.Context, id uuid.UUID) error
	ToggleVote(ctx context.Context, v *domain.GameVote) (bool, error)
	VoteCounts(ctx context.Context, sessionID uuid.UUID) (map[uuid.UUID]int, error)
}

type MenuRepository interface {
	ListItems(ctx context.Context, sessionID uuid.UUID) ([]domain.MenuItem, error)
	GetItem(ctx context.Context, id uuid.UUID) (*domain.MenuItem, error)
	CreateItem(ctx context.Context, m *domain.MenuItem) error
	UpdateItem(ctx context.Context, m *domain.MenuItem) error
	DeleteItem(ctx context.Context, id uuid.UUID) error
	ListTemplates(ctx context.Context) ([]domain.MealTemplate, error)
	GetTemplate(ctx context.Context, id uuid.UUID) (*domain.MealTemplate, error)
	CreateTemplate(ctx context.Context, t *domain.MealTemplate) error
	UpdateTemplate(ctx context.Context, t *domain.MealTemplate) error
	DeleteTemplate(ctx context.Context, id uuid.UUID) error
	ItemFromTemplate(ctx context.Context, sessionID, templateID uuid.UUID, date time.Time) (*domain.MenuItem, error)
}

type SessionRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Session, error)
}

type GuestRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Guest, error)
}
