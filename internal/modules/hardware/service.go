package hardware

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"thenest/internal/domain"
	"thenest/internal/metrics"
	"thenest/internal/repository"

	"github.com/google/uuid"
)

type Service struct {
	hardware HardwareRepository
	guests   GuestRepository
	sessions SessionRepository
	settings SettingsRepository
}

func NewService(hardware HardwareRepository, guests GuestRepository, sessions SessionRepository, settings SettingsRepository) *Service {
	return &Service{hardware: hardware, guests: guests, sessions: sessions, settings: settings}
}

// Coalesce merges both payload forms into one request per item, keeping the
// order in which items first appear.
func Coalesce(req CreateReservationsRequest) ([]repository.ReservationRequest, error) {
	var out []repository.ReservationRequest
	index := make(map[uuid.UUID]int)
	add := func(id uuid.UUID, qty int) {
		if i, ok := index[id]; ok {
			out[i].Quantity += qty
			return
		}
		index[id] = len(out)
		out = append(out, repository.ReservationRequest{ItemID: id, Quantity: qty})
	}

	for _, line := range req.Reservations {
		if line.HardwareItemID == uuid.Nil {
			return nil, fmt.Errorf("%w: hardware_item_id", ErrValidation)
		}
		qty := line.Quantity
		if qty == 0 {
			qty = 1
		}
		if qty < 0 {
			return nil, fmt.Errorf("%w: quantity", ErrValidation)
		}
		add(line.HardwareItemID, qty)
	}
	for _, id := range req.HardwareItemIDs {
		if id == uuid.Nil {
			return nil, fmt.Errorf("%w: hardware_item_ids", ErrValidation)
		}
		add(id, 1)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no hardware requested", ErrValidation)
	}
	return out, nil
}

func (s *Service) activeSessionID(ctx context.Context) (uuid.UUID, error) {
	st, err := s.settings.Get(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	if st.ActiveSessionID == nil {
		return uuid.Nil, ErrNoActiveSession
	}
	return *st.ActiveSessionID, nil
}

// MaxNights bounds a single reservation.
const MaxNights = 365

// Reserve books every requested item for the guest or nothing at all.
func (s *Service) Reserve(ctx context.Context, req CreateReservationsRequest) ([]domain.HardwareReservation, error) {
	if req.NightsCount < 1 || req.NightsCount > MaxNights {
		return nil, fmt.Errorf("%w: nights_count", ErrValidation)
	}
	reqs, err := Coalesce(req)
	if err != nil {
		return nil, err
	}

	var sessionID uuid.UUID
	if req.SessionID != nil && *req.SessionID != uuid.Nil {
		sessionID = *req.SessionID
	} else if sessionID, err = s.activeSessionID(ctx); err != nil {
		return nil, err
	}

	g, err := s.guests.GetByID(ctx, req.GuestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}
	if g.SessionID != sessionID {
		return nil, ErrGuestNotInSession
	}
	if !g.IsActive {
		return nil, ErrGuestInactive
	}

	created, err := s.hardware.Reserve(ctx, sessionID, g.ID, req.NightsCount, reqs)
	if err != nil {
		metrics.TrackReservation(metrics.ReservationRejected)
		var shortage *repository.StockShortage
		switch {
		case errors.As(err, &shortage):
			log.Printf("hardware reservation rejected: session=%s guest=%s item=%s available=%d requested=%d",
				sessionID, g.ID, shortage.ItemID, shortage.Available, shortage.Requested)
			return nil, err
		case errors.Is(err, repository.ErrNotFound):
			return nil, fmt.Errorf("%w: %v", ErrItemNotFound, err)
		case errors.Is(err, repository.ErrItemUnavailable):
			return nil, fmt.Errorf("%w: %v", ErrItemUnavailable, err)
		}
		return nil, err
	}
	metrics.TrackReservation(metrics.ReservationCreated)
	log.Printf("hardware reserved: session=%s guest=%s reservations=%d", sessionID, g.ID, len(created))
	return created, nil
}

func (s *Service) ListReservations(ctx context.Context, sessionID, guestID uuid.UUID, activeOnly bool) ([]domain.HardwareReservation, error) {
	return s.hardware.ListReservations(ctx, repository.ReservationFilter{SessionID: sessionID, GuestID: guestID, ActiveOnly: activeOnly})
}

func (s *Service) Cancel(ctx context.Context, id uuid.UUID) error {
	if err := s.hardware.CancelReservation(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrReservationMissing
		}
		return err
	}
	log.Printf("hardware reservation cancelled: id=%s", id)
	return nil
}

// Availability lists the catalog with free units in the session, falling back
// to the active session when sessionID is nil.
func (s *Service) Availability(ctx context.Context, sessionID uuid.UUID, availableOnly bool) ([]ItemAvailability, error) {
	items, err := s.hardware.ListItems(ctx, availableOnly)
	if err != nil {
		return nil, err
	}
	reserved := map[uuid.UUID]int{}
	if sessionID == uuid.Nil {
		sessionID, err = s.activeSessionID(ctx)
		if err != nil && !errors.Is(err, ErrNoActiveSession) {
			return nil, err
		}
	}
	if sessionID != uuid.Nil {
		if reserved, err = s.hardware.ReservedBySession(ctx, sessionID); err != nil {
			return nil, err
		}
	}

	out := make([]ItemAvailability, 0, len(items))
	for _, it := range items {
		free := it.Quantity - reserved[it.ID]
		if free < 0 || !it.IsAvailable {
			free = 0
		}
		out = append(out, ItemAvailability{HardwareItem: it, Reserved: reserved[it.ID], Available: free})
	}
	return out, nil
}

func (s *Service) AvailabilityForEvent(ctx context.Context, slug string) ([]ItemAvailability, error) {
	sess, err := s.sessions.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return s.Availability(ctx, sess.ID, true)
}

func (s *Service) CreateItem(ctx context.Context, req CreateItemRequest) (*domain.HardwareItem, error) {
	if !req.Type.Valid() {
		return nil, fmt.Errorf("%w: type", ErrValidation)
	}
	if req.PricePerNight.IsNegative() {
		return nil, fmt.Errorf("%w: price_per_night", ErrValidation)
	}
	it := &domain.HardwareItem{
		Name:          strings.TrimSpace(req.Name),
		Type:          req.Type,
		Category:      req.Category,
		PricePerNight: req.PricePerNight,
		Specs:         req.Specs,
		Quantity:      1,
		IsAvailable:   true,
	}
	if it.Name == "" {
		return nil, fmt.Errorf("%w: name", ErrValidation)
	}
	if req.Quantity != nil {
		it.Quantity = *req.Quantity
	}
	if req.IsAvailable != nil {
		it.IsAvailable = *req.IsAvailable
	}
	if err := s.hardware.CreateItem(ctx, it); err != nil {
		return nil, err
	}
	log.Printf("admin action: hardware_item_created id=%s name=%q", it.ID, it.Name)
	return it, nil
}

func (s *Service) UpdateItem(ctx context.Context, id uuid.UUID, req UpdateItemRequest) (*domain.HardwareItem, error) {
	it, err := s.hardware.GetItem(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: name", ErrValidation)
		}
		it.Name = strings.TrimSpace(*req.Name)
	}
	if req.Type != nil {
		if !req.Type.Valid() {
			return nil, fmt.Errorf("%w: type", ErrValidation)
		}
		it.Type = *req.Type
	}
	if req.Category != nil {
		it.Category = *req.Category
	}
	if req.PricePerNight != nil {
		if req.PricePerNight.IsNegative() {
			return nil, fmt.Errorf("%w: price_per_night", ErrValidation)
		}
		it.PricePerNight = *req.PricePerNight
	}
	if req.Specs != nil {
		it.Specs = *req.Specs
	}
	if req.Quantity != nil {
		it.Quantity = *req.Quantity
	}
	if req.IsAvailable != nil {
		it.IsAvailable = *req.IsAvailable
	}
	if err := s.hardware.UpdateItem(ctx, it); err != nil {
		return nil, err
	}
	log.Printf("admin action: hardware_item_updated id=%s", it.ID)
	return it, nil
}

// DeleteItem removes a catalog item; existing reservations keep their snapshot price.
func (s *Service) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if err := s.hardware.DeleteItem(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrItemNotFound
		}
		return err
	}
	log.Printf("admin action: hardware_item_deleted id=%s", id)
	return nil
}
