package repository

import (
	"context"
	"fmt"

	"thenest/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ledger is everything the cost aggregation needs for one session, read in one pass.
type Ledger struct {
	Guests       []domain.Guest
	Consumption  []domain.Consumption
	Products     map[uuid.UUID]domain.Product
	Reservations []domain.HardwareReservation
	Items        map[uuid.UUID]domain.HardwareItem
	Tips         map[uuid.UUID]domain.Tip
	Settlements  map[uuid.UUID]domain.Settlement
}

type LedgerRepository struct {
	guests      *GuestRepository
	consumption *ConsumptionRepository
	products    *ProductRepository
	hardware    *HardwareRepository
	tips        *TipRepository
	settlements *SettlementRepository
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{
		guests:      NewGuestRepository(db),
		consumption: NewConsumptionRepository(db),
		products:    NewProductRepository(db),
		hardware:    NewHardwareRepository(db),
		tips:        NewTipRepository(db),
		settlements: NewSettlementRepository(db),
	}
}

func (r *LedgerRepository) Load(ctx context.Context, sessionID uuid.UUID) (*Ledger, error) {
	var (
		l   Ledger
		err error
	)
	if l.Guests, err = r.guests.ListBySession(ctx, sessionID, false); err != nil {
		return nil, fmt.Errorf("load guests: %w", err)
	}
	if l.Consumption, err = r.consumption.ListBySession(ctx, sessionID); err != nil {
		return nil, fmt.Errorf("load consumption: %w", err)
	}
	if l.Products, err = r.products.MapByIDs(ctx, productIDs(l.Consumption)); err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	if l.Reservations, err = r.hardware.ListReservations(ctx, ReservationFilter{SessionID: sessionID, ActiveOnly: true}); err != nil {
		return nil, fmt.Errorf("load reservations: %w", err)
	}
	if l.Items, err = r.hardware.MapItemsByIDs(ctx, itemIDs(l.Reservations)); err != nil {
		return nil, fmt.Errorf("load hardware items: %w", err)
	}
	if l.Tips, err = r.tips.MapBySession(ctx, sessionID); err != nil {
		return nil, fmt.Errorf("load tips: %w", err)
	}
	if l.Settlements, err = r.settlements.MapBySession(ctx, sessionID); err != nil {
		return nil, fmt.Errorf("load settlements: %w", err)
	}
	return &l, nil
}

func productIDs(rows []domain.Consumption) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(rows))
	out := make([]uuid.UUID, 0, len(rows))
	for _, c := range rows {
		if _, ok := seen[c.ProductID]; ok {
			continue
		}
		seen[c.ProductID] = struct{}{}
		out = append(out, c.ProductID)
	}
	return out
}

func itemIDs(rows []domain.HardwareReservation) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(rows))
	out := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		if _, ok := seen[r.HardwareItemID]; ok {
			continue
		}
		seen[r.HardwareItemID] = struct{}{}
		out = append(out, r.HardwareItemID)
	}
	return out
}
