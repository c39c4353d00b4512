package repository

import (
	"context"

	"thenest/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GuestRepository struct {
	db *gorm.DB
}

func NewGuestRepository(db *gorm.DB) *GuestRepository {
	return &GuestRepository{db: db}
}

// CreateUnique inserts g unless an active guest with the same name is already in the session.
// The check and the insert share one transaction.
func (r *GuestRepository) CreateUnique(ctx context.Context, g *domain.Guest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&domain.Guest{}).
			Where("session_id = ? AND name = ? AND is_active = ?", g.SessionID, g.Name, true).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrDuplicate
		}
		return tx.Create(g).Error
	})
}

func (r *GuestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Guest, error) {
	var g domain.Guest
	if err := r.db.WithContext(ctx).First(&g, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &g, nil
}

func (r *GuestRepository) ListBySession(ctx context.Context, sessionID uuid.UUID, includeInactive bool) ([]domain.Guest, error) {
	q := r.db.WithContext(ctx).Where("session_id = ?", sessionID)
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	var out []domain.Guest
	err := q.Order("created_at asc, id asc").Find(&out).Error
	return out, err
}

func (r *GuestRepository) CountActive(ctx context.Context, sessionID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Guest{}).
		Where("session_id = ? AND is_active = ?", sessionID, true).
		Count(&n).Error
	return n, err
}

// NameTaken reports whether another active guest in the session uses name.
func (r *GuestRepository) NameTaken(ctx context.Context, sessionID uuid.UUID, name string, exceptID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Guest{}).
		Where("session_id = ? AND name = ? AND is_active = ? AND id <> ?", sessionID, name, true, exceptID).
		Count(&n).Error
	return n > 0, err
}

func (r *GuestRepository) Update(ctx context.Context, g *domain.Guest) error {
	return r.db.WithContext(ctx).Save(g).Error
}

func (r *GuestRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&domain.Guest{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
