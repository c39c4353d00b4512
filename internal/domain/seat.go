package domain

import "github.com/google/uuid"

type SeatReservation struct {
	Base
	SeatID    string    `json:"seat_id" gorm:"type:varchar(8);not null;uniqueIndex:idx_seat_session_seat"`
	SessionID uuid.UUID `json:"session_id" gorm:"type:uuid;not null;uniqueIndex:idx_seat_session_seat;uniqueIndex:idx_seat_session_guest"`
	GuestID   uuid.UUID `json:"guest_id" gorm:"type:uuid;not null;uniqueIndex:idx_seat_session_guest"`
	GuestName string    `json:"guest_name"`
}
