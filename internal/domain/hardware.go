package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type HardwareType string

const (
	HardwarePC      HardwareType = "pc"
	HardwareMonitor HardwareType = "monitor"
	HardwareOther   HardwareType = "other"
)

func (t HardwareType) Valid() bool {
	return t == HardwarePC || t == HardwareMonitor || t == HardwareOther
}

type HardwareItem struct {
	Base
	Name          string          `json:"name" gorm:"not null"`
	Type          HardwareType    `json:"type" gorm:"type:varchar(16);not null"`
	Category      string          `json:"category"`
	PricePerNight decimal.Decimal `json:"price_per_night" gorm:"type:decimal(12,2);not null"`
	Specs         string          `json:"specs,omitempty" gorm:"type:text"`
	Quantity      int             `json:"quantity" gorm:"not null"`
	IsAvailable   bool            `json:"is_available" gorm:"not null"`
}

type ReservationStatus string

const (
	ReservationActive    ReservationStatus = "active"
	ReservationCancelled ReservationStatus = "cancelled"
)

// HardwareReservation holds units of one item for a guest.
// TotalPrice is a snapshot taken at creation and never recomputed.
type HardwareReservation struct {
	Base
	HardwareItemID uuid.UUID         `json:"hardware_item_id" gorm:"type:uuid;not null;index"`
	GuestID        uuid.UUID         `json:"guest_id" gorm:"type:uuid;not null;index"`
	SessionID      uuid.UUID         `json:"session_id" gorm:"type:uuid;not null;index"`
	Quantity       int               `json:"quantity" gorm:"not null"`
	NightsCount    int               `json:"nights_count" gorm:"not null"`
	TotalPrice     decimal.Decimal   `json:"total_price" gorm:"type:decimal(12,2);not null"`
	Status         ReservationStatus `json:"status" gorm:"type:varchar(16);not null;default:'active';index"`
}
