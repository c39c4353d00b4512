package consumption

import (
	"context"
	"errors"
	"fmt"
	"time"

	"thenest/internal/domain"
	"thenest/internal/modules/costs"
	"thenest/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Service struct {
	records  ConsumptionRepository
	guests   GuestRepository
	products ProductRepository
	now      func() time.Time
}

func NewService(records ConsumptionRepository, guests GuestRepository, products ProductRepository) *Service {
	return &Service{records: records, guests: guests, products: products, now: time.Now}
}

func (s *Service) Add(ctx context.Context, req AddConsumptionRequest) (*Entry, error) {
	qty := req.Quantity
	if qty == 0 {
		qty = 1
	}
	if qty < 1 {
		return nil, fmt.Errorf("%w: quantity", ErrValidation)
	}

	g, err := s.guests.GetByID(ctx, req.GuestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}
	if !g.IsActive {
		return nil, ErrGuestInactive
	}

	p, err := s.products.GetByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if !p.IsAvailable {
		return nil, ErrProductUnavailable
	}

	rec := &domain.Consumption{
		GuestID:    g.ID,
		ProductID:  p.ID,
		SessionID:  g.SessionID,
		Quantity:   qty,
		ConsumedAt: s.now(),
	}
	if err := s.records.Create(ctx, rec); err != nil {
		return nil, err
	}
	e := toEntry(*rec, p)
	return &e, nil
}

// ListByGuest returns the guest's ledger priced at current product prices.
func (s *Service) ListByGuest(ctx context.Context, guestID uuid.UUID) ([]Entry, error) {
	recs, err := s.records.ListByGuest(ctx, guestID)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(recs))
	for _, r := range recs {
		ids = append(ids, r.ProductID)
	}
	products, err := s.products.MapByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]Entry, 0, len(recs))
	for _, r := range recs {
		var p *domain.Product
		if found, ok := products[r.ProductID]; ok {
			p = &found
		}
		out = append(out, toEntry(r, p))
	}
	return out, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.records.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func toEntry(c domain.Consumption, p *domain.Product) Entry {
	e := Entry{Consumption: c, ProductName: costs.UnknownProductName, UnitPrice: decimal.Zero}
	if p != nil {
		e.ProductName = p.Name
		e.Category = p.Category
		e.UnitPrice = p.Price
	}
	e.TotalPrice = e.UnitPrice.Mul(decimal.NewFromInt(int64(c.Quantity)))
	return e
}
