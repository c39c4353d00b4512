package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tip is a voluntary amount a guest adds to the bill. Amount is authoritative;
// Percentage only records what the guest picked in the UI.
type Tip struct {
	Base
	GuestID    uuid.UUID        `json:"guest_id" gorm:"type:uuid;not null;uniqueIndex:idx_tip_session_guest"`
	SessionID  uuid.UUID        `json:"session_id" gorm:"type:uuid;not null;uniqueIndex:idx_tip_session_guest"`
	Amount     decimal.Decimal  `json:"amount" gorm:"type:decimal(12,2);not null"`
	Percentage *decimal.Decimal `json:"percentage,omitempty" gorm:"type:decimal(5,2)"`
}
