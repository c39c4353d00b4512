package domain

import (
	"time"

	"github.com/google/uuid"
)

// Consumption is one ledger entry. Its price is always read live from the product.
type Consumption struct {
	Base
	GuestID    uuid.UUID `json:"guest_id" gorm:"type:uuid;not null;index"`
	ProductID  uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	SessionID  uuid.UUID `json:"session_id" gorm:"type:uuid;not null;index"`
	Quantity   int       `json:"quantity" gorm:"not null"`
	ConsumedAt time.Time `json:"consumed_at" gorm:"not null"`
}
