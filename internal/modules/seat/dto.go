package seat

import "github.com/google/uuid"

type ClaimRequest struct {
	GuestID uuid.UUID `json:"guest_id" validate:"required"`
	SeatID  string    `json:"seat_id" validate:"required"`
}

type ClaimResult struct {
	Action string     `json:"action"`
	SeatID string     `json:"seat_id"`
	ID     *uuid.UUID `json:"reservation_id,omitempty"`
}

// SeatState is one cell of the seat map.
type SeatState struct {
	SeatID        string     `json:"seat_id"`
	Reserved      bool       `json:"reserved"`
	ReservationID *uuid.UUID `json:"reservation_id,omitempty"`
	GuestID       *uuid.UUID `json:"guest_id,omitempty"`
	GuestName     string     `json:"guest_name,omitempty"`
}

const EventSeatUpdate = "seat_update"

// SeatUpdate is pushed to websocket clients after every change.
type SeatUpdate struct {
	Type  string      `json:"type"`
	Seats []SeatState `json:"seats"`
}
