package seat

import (
	"context"
	"errors"
	"log"
	"strings"

	"thenest/internal/domain"
	"thenest/internal/repository"

	"github.com/google/uuid"
)

type Service struct {
	seats     SeatRepository
	sessions  SessionRepository
	guests    GuestRepository
	publisher Publisher
}

func NewService(seats SeatRepository, sessions SessionRepository, guests GuestRepository, publisher Publisher) *Service {
	return &Service{seats: seats, sessions: sessions, guests: guests, publisher: publisher}
}

func (s *Service) session(ctx context.Context, slug string) (*domain.Session, error) {
	sess, err := s.sessions.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return sess, nil
}

// SessionID resolves an event slug, for callers that only need the id.
func (s *Service) SessionID(ctx context.Context, slug string) (uuid.UUID, error) {
	sess, err := s.session(ctx, slug)
	if err != nil {
		return uuid.Nil, err
	}
	return sess.ID, nil
}

// Snapshot returns the whole layout with the holder of each taken seat.
func (s *Service) Snapshot(ctx context.Context, sessionID uuid.UUID) ([]SeatState, error) {
	taken, err := s.seats.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	bySeat := make(map[string]domain.SeatReservation, len(taken))
	for _, r := range taken {
		bySeat[r.SeatID] = r
	}

	out := make([]SeatState, 0, len(Layout))
	for _, id := range Layout {
		st := SeatState{SeatID: id}
		if r, ok := bySeat[id]; ok {
			resID, guestID := r.ID, r.GuestID
			st.Reserved = true
			st.ReservationID = &resID
			st.GuestID = &guestID
			st.GuestName = r.GuestName
		}
		out = append(out, st)
	}
	return out, nil
}

func (s *Service) Map(ctx context.Context, slug string) ([]SeatState, error) {
	sess, err := s.session(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.Snapshot(ctx, sess.ID)
}

// Claim toggles a seat for a guest: a free seat is reserved (moving the guest
// off any other seat), the guest's own seat is released.
func (s *Service) Claim(ctx context.Context, slug string, req ClaimRequest) (*ClaimResult, error) {
	seatID := strings.ToUpper(strings.TrimSpace(req.SeatID))
	if !ValidSeat(seatID) {
		return nil, ErrUnknownSeat
	}
	sess, err := s.session(ctx, slug)
	if err != nil {
		return nil, err
	}
	g, err := s.guests.GetByID(ctx, req.GuestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}
	if g.SessionID != sess.ID {
		return nil, ErrGuestNotInEvent
	}
	if !g.IsActive {
		return nil, ErrGuestInactive
	}

	res := &domain.SeatReservation{SeatID: seatID, SessionID: sess.ID, GuestID: g.ID, GuestName: g.Name}
	outcome, err := s.seats.Claim(ctx, res)
	if err != nil {
		if errors.Is(err, repository.ErrSeatHeld) {
			return nil, ErrSeatTaken
		}
		return nil, err
	}
	log.Printf("seat %s: session=%s seat=%s guest=%s", outcome, sess.ID, seatID, g.ID)
	s.broadcast(ctx, sess.ID)

	result := &ClaimResult{Action: string(outcome), SeatID: seatID}
	if outcome != repository.SeatReleased {
		id := res.ID
		result.ID = &id
	}
	return result, nil
}

func (s *Service) Cancel(ctx context.Context, id uuid.UUID) error {
	res, err := s.seats.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrReservationMissing
		}
		return err
	}
	if err := s.seats.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrReservationMissing
		}
		return err
	}
	log.Printf("seat cancelled: session=%s seat=%s guest=%s", res.SessionID, res.SeatID, res.GuestID)
	s.broadcast(ctx, res.SessionID)
	return nil
}

func (s *Service) broadcast(ctx context.Context, sessionID uuid.UUID) {
	if s.publisher == nil {
		return
	}
	seats, err := s.Snapshot(ctx, sessionID)
	if err != nil {
		log.Printf("seat broadcast skipped: session=%s err=%v", sessionID, err)
		return
	}
	s.publisher.Publish(sessionID, seats)
}
