package repository

import (
	"context"

	"thenest/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TipRepository struct {
	db *gorm.DB
}

func NewTipRepository(db *gorm.DB) *TipRepository {
	return &TipRepository{db: db}
}

func (r *TipRepository) Get(ctx context.Context, sessionID, guestID uuid.UUID) (*domain.Tip, error) {
	var t domain.Tip
	if err := r.db.WithContext(ctx).Where("session_id = ? AND guest_id = ?", sessionID, guestID).First(&t).Error; err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

// Upsert stores the tip of a guest, replacing amount and percentage of an existing one.
func (r *TipRepository) Upsert(ctx context.Context, t *domain.Tip) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}, {Name: "guest_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount", "percentage", "updated_at"}),
	}).Create(t).Error
	if err != nil {
		return err
	}
	stored, err := r.Get(ctx, t.SessionID, t.GuestID)
	if err != nil {
		return err
	}
	*t = *stored
	return nil
}

func (r *TipRepository) MapBySession(ctx context.Context, sessionID uuid.UUID) (map[uuid.UUID]domain.Tip, error) {
	var rows []domain.Tip
	if err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]domain.Tip, len(rows))
	for _, t := range rows {
		out[t.GuestID] = t
	}
	return out, nil
}
