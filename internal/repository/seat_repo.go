package repository

import (
	"context"
	"errors"

	"thenest/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SeatOutcome string

const (
	SeatReserved SeatOutcome = "reserved"
	SeatMoved    SeatOutcome = "moved"
	SeatReleased SeatOutcome = "released"
)

// ErrSeatHeld means the seat belongs to another guest.
var ErrSeatHeld = errors.New("seat held by another guest")

type SeatRepository struct {
	db *gorm.DB
}

func NewSeatRepository(db *gorm.DB) *SeatRepository {
	return &SeatRepository{db: db}
}

func (r *SeatRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.SeatReservation, error) {
	var out []domain.SeatReservation
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).Order("seat_id asc").Find(&out).Error
	return out, err
}

func (r *SeatRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SeatReservation, error) {
	var s domain.SeatReservation
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

// Claim reserves res.SeatID for res.GuestID. Claiming a seat the guest already
// holds releases it; a guest holding another seat is moved.
func (r *SeatRepository) Claim(ctx context.Context, res *domain.SeatReservation) (SeatOutcome, error) {
	outcome := SeatReserved
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var holder domain.SeatReservation
		err := tx.Where("session_id = ? AND seat_id = ?", res.SessionID, res.SeatID).First(&holder).Error
		switch {
		case err == nil:
			if holder.GuestID != res.GuestID {
				return ErrSeatHeld
			}
			outcome = SeatReleased
			*res = holder
			return tx.Delete(&domain.SeatReservation{}, "id = ?", holder.ID).Error
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		del := tx.Where("session_id = ? AND guest_id = ?", res.SessionID, res.GuestID).Delete(&domain.SeatReservation{})
		if del.Error != nil {
			return del.Error
		}
		if del.RowsAffected > 0 {
			outcome = SeatMoved
		}
		if err := tx.Create(res).Error; err != nil {
			if IsUniqueViolation(err) {
				return ErrSeatHeld
			}
			return err
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return outcome, nil
}

func (r *SeatRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&domain.SeatReservation{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
