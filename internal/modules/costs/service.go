package costs

import (
	"context"
	"errors"
	"fmt"

	"thenest/internal/domain"
	"thenest/internal/repository"

	"github.com/google/uuid"
)

type Service struct {
	sessions SessionReader
	ledger   LedgerLoader
	settings SettingsReader
}

func NewService(sessions SessionReader, ledger LedgerLoader, settings SettingsReader) *Service {
	return &Service{sessions: sessions, ledger: ledger, settings: settings}
}

// ForSlug is the guest-facing read path.
func (s *Service) ForSlug(ctx context.Context, slug string) (*Report, error) {
	sess, err := s.sessions.GetBySlug(ctx, slug)
	if err != nil {
		return nil, sessionErr(err)
	}
	return s.build(ctx, sess)
}

// ForSession is the admin read path. It shares BuildReport with ForSlug so
// override keys line up on both sides.
func (s *Service) ForSession(ctx context.Context, sessionID uuid.UUID) (*Report, error) {
	sess, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, sessionErr(err)
	}
	return s.build(ctx, sess)
}

// ForGuest returns one guest's costs together with the session they belong to.
func (s *Service) ForGuest(ctx context.Context, sessionID, guestID uuid.UUID) (*GuestCosts, *Report, error) {
	report, err := s.ForSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	gc, ok := report.Guest(guestID)
	if !ok {
		return nil, nil, ErrGuestNotFound
	}
	return gc, report, nil
}

func (s *Service) build(ctx context.Context, sess *domain.Session) (*Report, error) {
	ledger, err := s.ledger.Load(ctx, sess.ID)
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	return BuildReport(sess, ledger, settings), nil
}

func sessionErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrSessionNotFound
	}
	return err
}
