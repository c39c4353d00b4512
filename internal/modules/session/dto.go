package session

import (
	"thenest/internal/domain"

	"github.com/shopspring/decimal"
)

type CreateSessionRequest struct {
	Name                   string               `json:"name" binding:"required,max=200"`
	Slug                   string               `json:"slug" binding:"omitempty,max=120"`
	Description            string               `json:"description"`
	StartDate              string               `json:"start_date" binding:"required"`
	EndDate                *string              `json:"end_date"`
	StartTime              string               `json:"start_time"`
	EndTime                string               `json:"end_time"`
	PricePerNight          decimal.Decimal      `json:"price_per_night"`
	SurchargeEnabled       bool                 `json:"surcharge_enabled"`
	HardwarePricingEnabled bool                 `json:"hardware_pricing_enabled"`
	MenuEnabled            bool                 `json:"menu_enabled"`
	Status                 domain.SessionStatus `json:"status"`
	IsActive               bool                 `json:"is_active"`
}

// UpdateSessionRequest is a partial update. Absent fields stay untouched.
type UpdateSessionRequest struct {
	Name                   *string               `json:"name" binding:"omitempty,max=200"`
	Slug                   *string               `json:"slug" binding:"omitempty,max=120"`
	Description            *string               `json:"description"`
	StartDate              *string               `json:"start_date"`
	EndDate                *string               `json:"end_date"`
	StartTime              *string               `json:"start_time"`
	EndTime                *string               `json:"end_time"`
	PricePerNight          *decimal.Decimal      `json:"price_per_night"`
	SurchargeEnabled       *bool                 `json:"surcharge_enabled"`
	HardwarePricingEnabled *bool                 `json:"hardware_pricing_enabled"`
	MenuEnabled            *bool                 `json:"menu_enabled"`
	Status                 *domain.SessionStatus `json:"status"`
	IsActive               *bool                 `json:"is_active"`
}
