package tip

import (
	"context"
	"errors"
	"fmt"
	"log"

	"thenest/internal/domain"
	"thenest/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var maxPercentage = decimal.NewFromInt(100)

type Service struct {
	tips     TipRepository
	sessions SessionRepository
	guests   GuestRepository
}

func NewService(tips TipRepository, sessions SessionRepository, guests GuestRepository) *Service {
	return &Service{tips: tips, sessions: sessions, guests: guests}
}

func (s *Service) guestInEvent(ctx context.Context, slug string, guestID uuid.UUID) (*domain.Guest, error) {
	sess, err := s.sessions.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	g, err := s.guests.GetByID(ctx, guestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}
	if g.SessionID != sess.ID {
		return nil, ErrGuestNotInEvent
	}
	return g, nil
}

// Set stores the guest's tip. Amount is what gets billed; the percentage is
// kept only so the UI can show the choice again.
func (s *Service) Set(ctx context.Context, slug string, guestID uuid.UUID, req SetTipRequest) (*domain.Tip, error) {
	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount", ErrValidation)
	}
	if p := req.Percentage; p != nil && (p.IsNegative() || p.GreaterThan(maxPercentage)) {
		return nil, fmt.Errorf("%w: percentage", ErrValidation)
	}
	g, err := s.guestInEvent(ctx, slug, guestID)
	if err != nil {
		return nil, err
	}

	t := &domain.Tip{
		GuestID:    g.ID,
		SessionID:  g.SessionID,
		Amount:     req.Amount.Round(2),
		Percentage: req.Percentage,
	}
	if err := s.tips.Upsert(ctx, t); err != nil {
		return nil, err
	}
	log.Printf("tip set: session=%s guest=%s amount=%s", g.SessionID, g.ID, t.Amount)
	return t, nil
}

// Get returns the stored tip, or a zero tip when the guest has not set one.
func (s *Service) Get(ctx context.Context, slug string, guestID uuid.UUID) (*domain.Tip, error) {
	g, err := s.guestInEvent(ctx, slug, guestID)
	if err != nil {
		return nil, err
	}
	t, err := s.tips.Get(ctx, g.SessionID, g.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return &domain.Tip{GuestID: g.ID, SessionID: g.SessionID, Amount: decimal.Zero}, nil
	}
	return t, err
}
