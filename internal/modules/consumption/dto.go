package consumption

import (
	"thenest/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AddConsumptionRequest struct {
	GuestID   uuid.UUID `json:"guest_id" binding:"required"`
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"omitempty,min=1,max=100"`
}

// Entry is a ledger record joined with the current product price.
type Entry struct {
	domain.Consumption
	ProductName string          `json:"product_name"`
	Category    string          `json:"category"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}
