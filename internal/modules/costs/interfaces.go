package costs

import (
	"context"

	"thenest/internal/domain"
	"thenest/internal/repository"

	"github.com/google/uuid"
)

type SessionReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Session, error)
}

type LedgerLoader interface {
	Load(ctx context.Context, sessionID uuid.UUID) (*repository.Ledger, error)
}

type SettingsReader interface {
	Get(ctx context.Context) (*domain.AdminSettings, error)
}
