package repository

import (
	"context"
	"time"

	"thenest/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GameRepository struct {
	db *gorm.DB
}

func NewGameRepository(db *gorm.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) List(ctx context.Context, activeOnly bool) ([]domain.Game, error) {
	q := r.db.WithContext(ctx)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var out []domain.Game
	err := q.Order("name asc").Find(&out).Error
	return out, err
}

func (r *GameRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Game, error) {
	var g domain.Game
	if err := r.db.WithContext(ctx).First(&g, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &g, nil
}

func (r *GameRepository) Create(ctx context.Context, g *domain.Game) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *GameRepository) Update(ctx context.Context, g *domain.Game) error {
	return r.db.WithContext(ctx).Save(g).Error
}

func (r *GameRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&domain.Game{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleVote adds the guest's vote for a game or removes it when present.
// It reports whether a vote exists afterwards.
func (r *GameRepository) ToggleVote(ctx context.Context, v *domain.GameVote) (bool, error) {
	voted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		del := tx.Where("game_id = ? AND guest_id = ? AND session_id = ?", v.GameID, v.GuestID, v.SessionID).
			Delete(&domain.GameVote{})
		if del.Error != nil {
			return del.Error
		}
		if del.RowsAffected > 0 {
			return nil
		}
		voted = true
		return tx.Create(v).Error
	})
	return voted, err
}

// VoteCounts returns the number of votes per game in a session.
func (r *GameRepository) VoteCounts(ctx context.Context, sessionID uuid.UUID) (map[uuid.UUID]int, error) {
	type row struct {
		GameID uuid.UUID
		Votes  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&domain.GameVote{}).
		Select("game_id, COUNT(*) AS votes").
		Where("session_id = ?", sessionID).
		Group("game_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]int, len(rows))
	for _, rw := range rows {
		out[rw.GameID] = int(rw.Votes)
	}
	return out, nil
}

type MenuRepository struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{db: db}
}

func (r *MenuRepository) ListItems(ctx context.Context, sessionID uuid.UUID) ([]domain.MenuItem, error) {
	var out []domain.MenuItem
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).
		Order("date asc, meal_type asc, title asc").Find(&out).Error
	return out, err
}

func (r *MenuRepository) GetItem(ctx context.Context, id uuid.UUID) (*domain.MenuItem, error) {
	var m domain.MenuItem
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &m, nil
}

func (r *MenuRepository) CreateItem(ctx context.Context, m *domain.MenuItem) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *MenuRepository) UpdateItem(ctx context.Context, m *domain.MenuItem) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *MenuRepository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&domain.MenuItem{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MenuRepository) ListTemplates(ctx context.Context) ([]domain.MealTemplate, error) {
	var out []domain.MealTemplate
	err := r.db.WithContext(ctx).Order("meal_type asc, name asc").Find(&out).Error
	return out, err
}

func (r *MenuRepository) GetTemplate(ctx context.Context, id uuid.UUID) (*domain.MealTemplate, error) {
	var t domain.MealTemplate
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

func (r *MenuRepository) CreateTemplate(ctx context.Context, t *domain.MealTemplate) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *MenuRepository) UpdateTemplate(ctx context.Context, t *domain.MealTemplate) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *MenuRepository) DeleteTemplate(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&domain.MealTemplate{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ItemFromTemplate copies a template into the menu of a session on the given date.
func (r *MenuRepository) ItemFromTemplate(ctx context.Context, sessionID, templateID uuid.UUID, date time.Time) (*domain.MenuItem, error) {
	t, err := r.GetTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}
	tid := t.ID
	item := &domain.MenuItem{
		SessionID:   sessionID,
		Date:        date,
		MealType:    t.MealType,
		Title:       t.Name,
		Description: t.Description,
		TemplateID:  &tid,
	}
	if err := r.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}
