package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"

	"thenest/internal/domain"
	"thenest/internal/pkg/utils"
	"thenest/internal/repository"

	"github.com/google/uuid"
)

// EventMenu is the public menu; events without a menu answer ErrMenuDisabled.
func (s *Service) EventMenu(ctx context.Context, slug string) ([]domain.MenuItem, error) {
	sess, err := s.sessionBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !sess.MenuEnabled {
		return nil, ErrMenuDisabled
	}
	return s.menu.ListItems(ctx, sess.ID)
}

func (s *Service) SessionMenu(ctx context.Context, sessionID uuid.UUID) ([]domain.MenuItem, error) {
	if _, err := s.sessionByID(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.menu.ListItems(ctx, sessionID)
}

func applyMenuItem(m *domain.MenuItem, req MenuItemRequest) error {
	if req.Date != nil {
		d, err := utils.ParseDate(*req.Date)
		if err != nil {
			return fmt.Errorf("%w: date", ErrValidation)
		}
		m.Date = d
	}
	if req.MealType != nil {
		if !req.MealType.Valid() {
			return fmt.Errorf("%w: meal_type", ErrValidation)
		}
		m.MealType = *req.MealType
	}
	if req.Title != nil {
		title, err := requiredText("title", req.Title)
		if err != nil {
			return err
		}
		m.Title = title
	}
	if req.Description != nil {
		m.Description = *req.Description
	}
	return nil
}

func (s *Service) CreateMenuItem(ctx context.Context, sessionID uuid.UUID, req MenuItemRequest) (*domain.MenuItem, error) {
	if req.Date == nil || req.MealType == nil || req.Title == nil {
		return nil, fmt.Errorf("%w: date, meal_type and title are required", ErrValidation)
	}
	if _, err := s.sessionByID(ctx, sessionID); err != nil {
		return nil, err
	}
	m := &domain.MenuItem{SessionID: sessionID}
	if err := applyMenuItem(m, req); err != nil {
		return nil, err
	}
	if err := s.menu.CreateItem(ctx, m); err != nil {
		return nil, err
	}
	log.Printf("admin action: menu_item_created session=%s id=%s", sessionID, m.ID)
	return m, nil
}

func (s *Service) UpdateMenuItem(ctx context.Context, id uuid.UUID, req MenuItemRequest) (*domain.MenuItem, error) {
	m, err := s.menu.GetItem(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, err
	}
	if err := applyMenuItem(m, req); err != nil {
		return nil, err
	}
	if err := s.menu.UpdateItem(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) DeleteMenuItem(ctx context.Context, id uuid.UUID) error {
	if err := s.menu.DeleteItem(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMenuItemNotFound
		}
		return err
	}
	log.Printf("admin action: menu_item_deleted id=%s", id)
	return nil
}

// FromTemplate copies a meal template into the session's menu.
func (s *Service) FromTemplate(ctx context.Context, sessionID uuid.UUID, req FromTemplateRequest) (*domain.MenuItem, error) {
	date, err := utils.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date", ErrValidation)
	}
	if _, err := s.sessionByID(ctx, sessionID); err != nil {
		return nil, err
	}
	m, err := s.menu.ItemFromTemplate(ctx, sessionID, req.TemplateID, date)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	log.Printf("admin action: menu_item_from_template session=%s template=%s", sessionID, req.TemplateID)
	return m, nil
}

func (s *Service) ListTemplates(ctx context.Context) ([]domain.MealTemplate, error) {
	return s.menu.ListTemplates(ctx)
}

func applyTemplate(t *domain.MealTemplate, req TemplateRequest) error {
	if req.Name != nil {
		name, err := requiredText("name", req.Name)
		if err != nil {
			return err
		}
		t.Name = name
	}
	if req.MealType != nil {
		if !req.MealType.Valid() {
			return fmt.Errorf("%w: meal_type", ErrValidation)
		}
		t.MealType = *req.MealType
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	return nil
}

func (s *Service) CreateTemplate(ctx context.Context, req TemplateRequest) (*domain.MealTemplate, error) {
	if req.Name == nil || req.MealType == nil {
		return nil, fmt.Errorf("%w: name and meal_type are required", ErrValidation)
	}
	t := &domain.MealTemplate{}
	if err := applyTemplate(t, req); err != nil {
		return nil, err
	}
	if err := s.menu.CreateTemplate(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) UpdateTemplate(ctx context.Context, id uuid.UUID, req TemplateRequest) (*domain.MealTemplate, error) {
	t, err := s.menu.GetTemplate(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	if err := applyTemplate(t, req); err != nil {
		return nil, err
	}
	if err := s.menu.UpdateTemplate(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// DeleteTemplate keeps menu items created from it; they only lose the link's target.
func (s *Service) DeleteTemplate(ctx context.Context, id uuid.UUID) error {
	if err := s.menu.DeleteTemplate(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTemplateNotFound
		}
		return err
	}
	return nil
}
