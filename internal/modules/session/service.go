package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"thenest/internal/domain"
	"thenest/internal/pkg/utils"
	"thenest/internal/repository"

	"github.com/google/uuid"
)

type Service struct {
	sessions SessionRepository
	settings SettingsRepository
}

func NewService(sessions SessionRepository, settings SettingsRepository) *Service {
	return &Service{sessions: sessions, settings: settings}
}

func (s *Service) activeID(ctx context.Context) (*uuid.UUID, error) {
	st, err := s.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	return st.ActiveSessionID, nil
}

func markActive(sess *domain.Session, active *uuid.UUID) {
	sess.IsActive = active != nil && *active == sess.ID
}

func (s *Service) List(ctx context.Context) ([]domain.Session, error) {
	list, err := s.sessions.List(ctx)
	if err != nil {
		return nil, err
	}
	active, err := s.activeID(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		markActive(&list[i], active)
	}
	return list, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	sess, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return s.withActive(ctx, sess)
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (*domain.Session, error) {
	sess, err := s.sessions.GetBySlug(ctx, slug)
	if err != nil {
		return nil, notFound(err)
	}
	return s.withActive(ctx, sess)
}

// Active resolves the session the active pointer refers to.
func (s *Service) Active(ctx context.Context) (*domain.Session, error) {
	active, err := s.activeID(ctx)
	if err != nil {
		return nil, err
	}
	if active == nil {
		return nil, ErrNoActive
	}
	sess, err := s.sessions.GetByID(ctx, *active)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoActive
		}
		return nil, err
	}
	sess.IsActive = true
	return sess, nil
}

func (s *Service) withActive(ctx context.Context, sess *domain.Session) (*domain.Session, error) {
	active, err := s.activeID(ctx)
	if err != nil {
		return nil, err
	}
	markActive(sess, active)
	return sess, nil
}

func (s *Service) Create(ctx context.Context, req CreateSessionRequest) (*domain.Session, error) {
	name := strings.TrimSpace(req.Name)
	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		slug = utils.Slugify(name)
	} else {
		slug = utils.Slugify(slug)
	}
	if name == "" || slug == "" {
		return nil, fmt.Errorf("%w: name", ErrValidation)
	}

	start, err := utils.ParseDate(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: start_date", ErrValidation)
	}
	end, err := utils.ParseOptionalDate(req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: end_date", ErrValidation)
	}
	if end != nil && end.Before(start) {
		return nil, fmt.Errorf("%w: end_date before start_date", ErrValidation)
	}
	if req.PricePerNight.IsNegative() {
		return nil, fmt.Errorf("%w: price_per_night", ErrValidation)
	}
	status := req.Status
	if status == "" {
		status = domain.SessionDraft
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: status", ErrValidation)
	}

	sess := &domain.Session{
		Name:                   name,
		Slug:                   slug,
		Description:            req.Description,
		StartDate:              start,
		EndDate:                end,
		StartTime:              req.StartTime,
		EndTime:                req.EndTime,
		PricePerNight:          req.PricePerNight,
		SurchargeEnabled:       req.SurchargeEnabled,
		HardwarePricingEnabled: req.HardwarePricingEnabled,
		MenuEnabled:            req.MenuEnabled,
		Status:                 status,
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}

	if req.IsActive {
		id := sess.ID
		if err := s.settings.SetActiveSession(ctx, &id); err != nil {
			return nil, fmt.Errorf("activate session: %w", err)
		}
		sess.IsActive = true
	}
	log.Printf("admin action: session_created id=%s slug=%s active=%t", sess.ID, sess.Slug, sess.IsActive)
	return sess, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateSessionRequest) (*domain.Session, error) {
	sess, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name", ErrValidation)
		}
		sess.Name = name
	}
	if req.Slug != nil {
		slug := utils.Slugify(*req.Slug)
		if slug == "" {
			return nil, fmt.Errorf("%w: slug", ErrValidation)
		}
		sess.Slug = slug
	}
	if req.Description != nil {
		sess.Description = *req.Description
	}
	if req.StartDate != nil {
		start, err := utils.ParseDate(*req.StartDate)
		if err != nil {
			return nil, fmt.Errorf("%w: start_date", ErrValidation)
		}
		sess.StartDate = start
	}
	if req.EndDate != nil {
		end, err := utils.ParseOptionalDate(req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: end_date", ErrValidation)
		}
		sess.EndDate = end
	}
	if sess.EndDate != nil && sess.EndDate.Before(sess.StartDate) {
		return nil, fmt.Errorf("%w: end_date before start_date", ErrValidation)
	}
	if req.StartTime != nil {
		sess.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		sess.EndTime = *req.EndTime
	}
	if req.PricePerNight != nil {
		if req.PricePerNight.IsNegative() {
			return nil, fmt.Errorf("%w: price_per_night", ErrValidation)
		}
		sess.PricePerNight = *req.PricePerNight
	}
	if req.SurchargeEnabled != nil {
		sess.SurchargeEnabled = *req.SurchargeEnabled
	}
	if req.HardwarePricingEnabled != nil {
		sess.HardwarePricingEnabled = *req.HardwarePricingEnabled
	}
	if req.MenuEnabled != nil {
		sess.MenuEnabled = *req.MenuEnabled
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, fmt.Errorf("%w: status", ErrValidation)
		}
		sess.Status = *req.Status
	}

	if err := s.sessions.Update(ctx, sess); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}

	if req.IsActive != nil {
		if *req.IsActive {
			sid := sess.ID
			err = s.settings.SetActiveSession(ctx, &sid)
		} else {
			err = s.settings.ClearActiveSessionIf(ctx, sess.ID)
		}
		if err != nil {
			return nil, fmt.Errorf("move active pointer: %w", err)
		}
	}
	log.Printf("admin action: session_updated id=%s", sess.ID)
	return s.withActive(ctx, sess)
}

// Delete removes the session row only; dependent records are retained.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.sessions.Delete(ctx, id); err != nil {
		return notFound(err)
	}
	log.Printf("admin action: session_deleted id=%s", id)
	return nil
}

func notFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
