package auth

import (
	"context"

	"thenest/internal/domain"

	"github.com/google/uuid"
)

// UserRepository is the subset of the user store auth needs.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	List(ctx context.Context, status domain.UserStatus) ([]domain.User, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error
}

type tokenIssuer interface {
	GenerateToken(userID string, role string) (string, error)
}
