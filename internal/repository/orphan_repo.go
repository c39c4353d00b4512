package repository

import (
	"context"

	"thenest/internal/domain"

	"gorm.io/gorm"
)

// OrphanTables lists the session-scoped tables checked for dangling session ids.
var OrphanTables = []any{
	&domain.Guest{},
	&domain.Consumption{},
	&domain.HardwareReservation{},
	&domain.Tip{},
	&domain.Settlement{},
	&domain.SeatReservation{},
	&domain.MenuItem{},
	&domain.GameVote{},
}

type OrphanRepository struct {
	db *gorm.DB
}

func NewOrphanRepository(db *gorm.DB) *OrphanRepository {
	return &OrphanRepository{db: db}
}

func (r *OrphanRepository) orphaned(ctx context.Context, model any) *gorm.DB {
	sessions := r.db.Model(&domain.Session{}).Select("id")
	return r.db.WithContext(ctx).Model(model).Where("session_id NOT IN (?)", sessions)
}

// Count returns how many rows of model reference a session that no longer exists.
func (r *OrphanRepository) Count(ctx context.Context, model any) (int64, error) {
	var n int64
	err := r.orphaned(ctx, model).Count(&n).Error
	return n, err
}

// Prune deletes the rows Count reports.
func (r *OrphanRepository) Prune(ctx context.Context, model any) (int64, error) {
	sessions := r.db.Model(&domain.Session{}).Select("id")
	res := r.db.WithContext(ctx).Where("session_id NOT IN (?)", sessions).Delete(model)
	return res.RowsAffected, res.Error
}
