package settlement

import (
	"thenest/internal/domain"
	"thenest/internal/modules/costs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	ActionGenerateQR = "generate_qr"
	ActionMarkPaid   = "mark_paid"
	ActionMarkUnpaid = "mark_unpaid"
	ActionUpdate     = "update"
)

// ActionRequest drives every admin change to a settlement. Fields other than
// Action and GuestID apply only to "update"; nil means untouched.
type ActionRequest struct {
	Action         string                      `json:"action" validate:"required,oneof=generate_qr mark_paid mark_unpaid update"`
	GuestID        uuid.UUID                   `json:"guest_id" validate:"required"`
	Adjustments    *[]domain.LineItem          `json:"adjustments"`
	Overrides      *map[string]decimal.Decimal `json:"overrides"`
	CustomItems    *[]domain.LineItem          `json:"custom_items"`
	Notes          *string                     `json:"notes"`
	Status         *domain.SettlementStatus    `json:"status"`
	VariableSymbol *string                     `json:"variable_symbol"`
}

// GuestView is a guest's computed costs next to the stored settlement record.
type GuestView struct {
	costs.GuestCosts
	Record *domain.Settlement `json:"record"`
}

// AdminView is the session cost report with stored records attached per guest.
type AdminView struct {
	*costs.Report
	Guests []GuestView `json:"guests"`
}

type MigrateResult struct {
	Updated int `json:"updated"`
}
