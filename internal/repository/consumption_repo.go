package repository

import (
	"context"

	"thenest/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConsumptionRepository struct {
	db *gorm.DB
}

func NewConsumptionRepository(db *gorm.DB) *ConsumptionRepository {
	return &ConsumptionRepository{db: db}
}

func (r *ConsumptionRepository) Create(ctx context.Context, c *domain.Consumption) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ConsumptionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Consumption, error) {
	var c domain.Consumption
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

// ListByGuest returns records in ledger order: consumed_at, then id.
func (r *ConsumptionRepository) ListByGuest(ctx context.Context, guestID uuid.UUID) ([]domain.Consumption, error) {
	var out []domain.Consumption
	err := r.db.WithContext(ctx).Where("guest_id = ?", guestID).
		Order("consumed_at asc, id asc").Find(&out).Error
	return out, err
}

func (r *ConsumptionRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.Consumption, error) {
	var out []domain.Consumption
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).
		Order("consumed_at asc, id asc").Find(&out).Error
	return out, err
}

func (r *ConsumptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&domain.Consumption{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
