package hardware

import (
	"thenest/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ReservationLine struct {
	HardwareItemID uuid.UUID `json:"hardware_item_id" validate:"required"`
	Quantity       int       `json:"quantity" validate:"omitempty,min=1"`
}

// CreateReservationsRequest accepts either reservations or the older flat
// hardware_item_ids list, where each occurrence of an id means one unit.
type CreateReservationsRequest struct {
	GuestID         uuid.UUID         `json:"guest_id" binding:"required"`
	NightsCount     int               `json:"nights_count" binding:"required,min=1,max=365"`
	SessionID       *uuid.UUID        `json:"session_id"`
	Reservations    []ReservationLine `json:"reservations" validate:"omitempty,dive"`
	HardwareItemIDs []uuid.UUID       `json:"hardware_item_ids"`
}

type CreateItemRequest struct {
	Name          string              `json:"name" binding:"required,max=200"`
	Type          domain.HardwareType `json:"type" binding:"required"`
	Category      string              `json:"category"`
	PricePerNight decimal.Decimal     `json:"price_per_night"`
	Specs         string              `json:"specs"`
	Quantity      *int                `json:"quantity" binding:"omitempty,min=0"`
	IsAvailable   *bool               `json:"is_available"`
}

type UpdateItemRequest struct {
	Name          *string              `json:"name" binding:"omitempty,max=200"`
	Type          *domain.HardwareType `json:"type"`
	Category      *string              `json:"category"`
	PricePerNight *decimal.Decimal     `json:"price_per_night"`
	Specs         *string              `json:"specs"`
	Quantity      *int                 `json:"quantity" binding:"omitempty,min=0"`
	IsAvailable   *bool                `json:"is_available"`
}

// ItemAvailability is a catalog item with its free units in one session.
type ItemAvailability struct {
	domain.HardwareItem
	Reserved  int `json:"reserved"`
	Available int `json:"available"`
}
