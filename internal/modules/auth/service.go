package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"thenest/internal/domain"
	"thenest/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Service registers users, issues tokens and lets admins approve accounts.
type Service struct {
	users UserRepository
	jwt   tokenIssuer
	cost  int
}

func NewService(users UserRepository, jwt tokenIssuer) *Service {
	return &Service{users: users, jwt: jwt, cost: bcrypt.DefaultCost}
}

// Register creates a pending account. It cannot log in until an admin approves it.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name", ErrValidation)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, err
	}
	u := &domain.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         domain.RoleUser,
		Status:       domain.UserPending,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}
	log.Printf("user registered: id=%s email=%s", u.ID, u.Email)
	return u, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	switch u.Status {
	case domain.UserApproved:
	case domain.UserRejected:
		return nil, ErrRejected
	default:
		return nil, ErrPendingApproval
	}

	token, err := s.jwt.GenerateToken(u.ID.String(), string(u.Role))
	if err != nil {
		return nil, err
	}
	return &LoginResponse{Token: token, User: u}, nil
}

func (s *Service) Me(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return u, err
}

/* ---------- admin ---------- */

func (s *Service) List(ctx context.Context, status domain.UserStatus) ([]domain.User, error) {
	switch status {
	case "", domain.UserPending, domain.UserApproved, domain.UserRejected:
	default:
		return nil, fmt.Errorf("%w: status", ErrValidation)
	}
	return s.users.List(ctx, status)
}

func (s *Service) update(ctx context.Context, id uuid.UUID, fields map[string]any) (*domain.User, error) {
	if err := s.users.UpdateFields(ctx, id, fields); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.Me(ctx, id)
}

func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, status domain.UserStatus) (*domain.User, error) {
	u, err := s.update(ctx, id, map[string]any{"status": status})
	if err != nil {
		return nil, err
	}
	log.Printf("admin action: user_%s id=%s", status, id)
	return u, nil
}

func (s *Service) SetRole(ctx context.Context, id uuid.UUID, role domain.UserRole) (*domain.User, error) {
	if role != domain.RoleUser && role != domain.RoleAdmin {
		return nil, fmt.Errorf("%w: role", ErrValidation)
	}
	u, err := s.update(ctx, id, map[string]any{"role": role})
	if err != nil {
		return nil, err
	}
	log.Printf("admin action: user_role id=%s role=%s", id, role)
	return u, nil
}
