package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"

	"thenest/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrItemUnavailable = errors.New("hardware item unavailable")

// ReservationRequest asks for Quantity units of one item.
type ReservationRequest struct {
	ItemID   uuid.UUID
	Quantity int
}

// StockShortage rejects a batch because one item cannot cover its request.
type StockShortage struct {
	ItemID    uuid.UUID
	ItemName  string
	Available int
	Requested int
}

func (e *StockShortage) Error() string {
	return fmt.Sprintf("insufficient stock for %q: available %d, requested %d", e.ItemName, e.Available, e.Requested)
}

type HardwareRepository struct {
	db *gorm.DB
}

func NewHardwareRepository(db *gorm.DB) *HardwareRepository {
	return &HardwareRepository{db: db}
}

func (r *HardwareRepository) ListItems(ctx context.Context, availableOnly bool) ([]domain.HardwareItem, error) {
	q := r.db.WithContext(ctx)
	if availableOnly {
		q = q.Where("is_available = ?", true)
	}
	var out []domain.HardwareItem
	err := q.Order("type asc, name asc").Find(&out).Error
	return out, err
}

func (r *HardwareRepository) GetItem(ctx context.Context, id uuid.UUID) (*domain.HardwareItem, error) {
	var it domain.HardwareItem
	if err := r.db.WithContext(ctx).First(&it, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &it, nil
}

func (r *HardwareRepository) MapItemsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.HardwareItem, error) {
	out := make(map[uuid.UUID]domain.HardwareItem, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []domain.HardwareItem
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, it := range rows {
		out[it.ID] = it
	}
	return out, nil
}

func (r *HardwareRepository) CreateItem(ctx context.Context, it *domain.HardwareItem) error {
	return r.db.WithContext(ctx).Create(it).Error
}

func (r *HardwareRepository) UpdateItem(ctx context.Context, it *domain.HardwareItem) error {
	return r.db.WithContext(ctx).Save(it).Error
}

func (r *HardwareRepository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&domain.HardwareItem{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Reserve allocates every request or none of them. Item rows are locked for the
// duration of the check so concurrent batches cannot both take the last unit.
// reqs must not contain the same item twice.
func (r *HardwareRepository) Reserve(ctx context.Context, sessionID, guestID uuid.UUID, nights int, reqs []ReservationRequest) ([]domain.HardwareReservation, error) {
	ids := make([]uuid.UUID, 0, len(reqs))
	for _, req := range reqs {
		ids = append(ids, req.ItemID)
	}
	// fixed lock order keeps two overlapping batches from deadlocking
	sort.Slice(ids, func(i, j int) bool { return bytes.Compare(ids[i][:], ids[j][:]) < 0 })

	var created []domain.HardwareReservation
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var items []domain.HardwareItem
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id IN ?", ids).Order("id").Find(&items).Error; err != nil {
			return err
		}
		byID := make(map[uuid.UUID]domain.HardwareItem, len(items))
		for _, it := range items {
			byID[it.ID] = it
		}

		for _, req := range reqs {
			item, ok := byID[req.ItemID]
			if !ok {
				return fmt.Errorf("hardware item %s: %w", req.ItemID, ErrNotFound)
			}
			if !item.IsAvailable {
				return fmt.Errorf("hardware item %q: %w", item.Name, ErrItemUnavailable)
			}
			reserved, err := reservedQuantity(tx, sessionID, item.ID)
			if err != nil {
				return err
			}
			available := item.Quantity - reserved
			if available < 0 {
				available = 0
			}
			if req.Quantity > available {
				return &StockShortage{ItemID: item.ID, ItemName: item.Name, Available: available, Requested: req.Quantity}
			}
		}

		created = make([]domain.HardwareReservation, 0, len(reqs))
		for _, req := range reqs {
			item := byID[req.ItemID]
			res := domain.HardwareReservation{
				HardwareItemID: item.ID,
				GuestID:        guestID,
				SessionID:      sessionID,
				Quantity:       req.Quantity,
				NightsCount:    nights,
				TotalPrice:     item.PricePerNight.Mul(decimal.NewFromInt(int64(req.Quantity))).Mul(decimal.NewFromInt(int64(nights))),
				Status:         domain.ReservationActive,
			}
			if err := tx.Create(&res).Error; err != nil {
				return err
			}
			created = append(created, res)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func reservedQuantity(tx *gorm.DB, sessionID, itemID uuid.UUID) (int, error) {
	var sum int64
	err := tx.Model(&domain.HardwareReservation{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("hardware_item_id = ? AND session_id = ? AND status = ?", itemID, sessionID, domain.ReservationActive).
		Scan(&sum).Error
	return int(sum), err
}

// ReservedBySession sums active reserved units per item.
func (r *HardwareRepository) ReservedBySession(ctx context.Context, sessionID uuid.UUID) (map[uuid.UUID]int, error) {
	type row struct {
		HardwareItemID uuid.UUID
		Total          int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&domain.HardwareReservation{}).
		Select("hardware_item_id, COALESCE(SUM(quantity), 0) AS total").
		Where("session_id = ? AND status = ?", sessionID, domain.ReservationActive).
		Group("hardware_item_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]int, len(rows))
	for _, rw := range rows {
		out[rw.HardwareItemID] = int(rw.Total)
	}
	return out, nil
}

// ReservationFilter narrows ListReservations. Zero values match everything.
type ReservationFilter struct {
	SessionID  uuid.UUID
	GuestID    uuid.UUID
	ActiveOnly bool
}

func (r *HardwareRepository) ListReservations(ctx context.Context, f ReservationFilter) ([]domain.HardwareReservation, error) {
	q := r.db.WithContext(ctx)
	if f.SessionID != uuid.Nil {
		q = q.Where("session_id = ?", f.SessionID)
	}
	if f.GuestID != uuid.Nil {
		q = q.Where("guest_id = ?", f.GuestID)
	}
	if f.ActiveOnly {
		q = q.Where("status = ?", domain.ReservationActive)
	}
	var out []domain.HardwareReservation
	err := q.Order("created_at asc, id asc").Find(&out).Error
	return out, err
}

func (r *HardwareRepository) GetReservation(ctx context.Context, id uuid.UUID) (*domain.HardwareReservation, error) {
	var res domain.HardwareReservation
	if err := r.db.WithContext(ctx).First(&res, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &res, nil
}

func (r *HardwareRepository) CancelReservation(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&domain.HardwareReservation{}).
		Where("id = ?", id).Update("status", domain.ReservationCancelled)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
