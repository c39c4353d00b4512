package guest

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"thenest/internal/domain"
	"thenest/internal/pkg/utils"
	"thenest/internal/repository"

	"github.com/google/uuid"
)

type Service struct {
	sessions SessionRepository
	guests   GuestRepository
}

func NewService(sessions SessionRepository, guests GuestRepository) *Service {
	return &Service{sessions: sessions, guests: guests}
}

func (s *Service) sessionBySlug(ctx context.Context, slug string) (*domain.Session, error) {
	sess, err := s.sessions.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return sess, nil
}

func parseStay(checkIn, checkOut string) (time.Time, time.Time, error) {
	in, err := utils.ParseDate(checkIn)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: check_in_date", ErrValidation)
	}
	out, err := utils.ParseDate(checkOut)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: check_out_date", ErrValidation)
	}
	if out.Before(in) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: check_out_date before check_in_date", ErrValidation)
	}
	return in, out, nil
}

// Register adds a guest to the event. The name must be unique among active guests;
// nights_count is taken as submitted.
func (s *Service) Register(ctx context.Context, slug string, req RegisterGuestRequest) (*domain.Guest, error) {
	sess, err := s.sessionBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !sess.Status.AcceptsRegistrations() {
		return nil, ErrSessionClosed
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name", ErrValidation)
	}
	if req.NightsCount < 1 {
		return nil, fmt.Errorf("%w: nights_count", ErrValidation)
	}
	in, out, err := parseStay(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return nil, err
	}

	g := &domain.Guest{
		Name:         name,
		SessionID:    sess.ID,
		NightsCount:  req.NightsCount,
		CheckInDate:  &in,
		CheckOutDate: &out,
		IsActive:     true,
	}
	if err := s.guests.CreateUnique(ctx, g); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrGuestExists
		}
		return nil, err
	}
	log.Printf("guest registered: session=%s guest=%s nights=%d", sess.Slug, g.ID, g.NightsCount)
	return g, nil
}

// ListForEvent returns the active guests of the event.
func (s *Service) ListForEvent(ctx context.Context, slug string) ([]domain.Guest, error) {
	sess, err := s.sessionBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.guests.ListBySession(ctx, sess.ID, false)
}

func (s *Service) ListForSession(ctx context.Context, sessionID uuid.UUID, includeInactive bool) ([]domain.Guest, error) {
	if _, err := s.sessions.GetByID(ctx, sessionID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return s.guests.ListBySession(ctx, sessionID, includeInactive)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Guest, error) {
	g, err := s.guests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}
	return g, nil
}

// ActiveInSession loads a guest and checks it is active and belongs to sessionID.
func (s *Service) ActiveInSession(ctx context.Context, id, sessionID uuid.UUID) (*domain.Guest, error) {
	g, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if g.SessionID != sessionID {
		return nil, ErrGuestNotInEvent
	}
	if !g.IsActive {
		return nil, ErrGuestInactive
	}
	return g, nil
}

// Update is the admin edit of a guest.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateGuestRequest) (*domain.Guest, error) {
	g, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name", ErrValidation)
		}
		g.Name = name
	}
	if req.NightsCount != nil {
		if *req.NightsCount < 1 {
			return nil, fmt.Errorf("%w: nights_count", ErrValidation)
		}
		g.NightsCount = *req.NightsCount
	}
	if req.CheckInDate != nil {
		d, err := utils.ParseDate(*req.CheckInDate)
		if err != nil {
			return nil, fmt.Errorf("%w: check_in_date", ErrValidation)
		}
		g.CheckInDate = &d
	}
	if req.CheckOutDate != nil {
		d, err := utils.ParseDate(*req.CheckOutDate)
		if err != nil {
			return nil, fmt.Errorf("%w: check_out_date", ErrValidation)
		}
		g.CheckOutDate = &d
	}
	if g.CheckInDate != nil && g.CheckOutDate != nil && g.CheckOutDate.Before(*g.CheckInDate) {
		return nil, fmt.Errorf("%w: check_out_date before check_in_date", ErrValidation)
	}
	if req.IsActive != nil {
		g.IsActive = *req.IsActive
	}

	if g.IsActive {
		taken, err := s.guests.NameTaken(ctx, g.SessionID, g.Name, g.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrGuestExists
		}
	}

	if err := s.guests.Update(ctx, g); err != nil {
		return nil, err
	}
	log.Printf("admin action: guest_updated id=%s", g.ID)
	return g, nil
}

// Deactivate soft-deletes a guest. Its ledger entries are kept.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	if err := s.guests.Deactivate(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrGuestNotFound
		}
		return err
	}
	log.Printf("admin action: guest_deactivated id=%s", id)
	return nil
}
