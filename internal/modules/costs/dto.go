package costs

import (
	"time"

	"thenest/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Pricing tells whether a line amount is recomputed on read or frozen on write.
type Pricing string

const (
	// PricingLive amounts are derived from current product prices on every read.
	PricingLive Pricing = "live"
	// PricingSnapshot amounts were frozen when the reservation was created.
	PricingSnapshot Pricing = "snapshot"
)

type ConsumptionLine struct {
	Key        string          `json:"key"`
	StableKey  string          `json:"stable_key"`
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Pricing    Pricing         `json:"pricing"`
}

type HardwareLine struct {
	Key            string              `json:"key"`
	StableKey      string              `json:"stable_key"`
	ReservationID  uuid.UUID           `json:"reservation_id"`
	HardwareItemID uuid.UUID           `json:"hardware_item_id"`
	Name           string              `json:"name"`
	Type           domain.HardwareType `json:"type"`
	Quantity       int                 `json:"quantity"`
	NightsCount    int                 `json:"nights_count"`
	TotalPrice     decimal.Decimal     `json:"totalPrice"`
	Pricing        Pricing             `json:"pricing"`
}

// SettlementBlock is present only for finalized settlements and carries the
// override-resolved amounts.
type SettlementBlock struct {
	Status           domain.SettlementStatus `json:"status"`
	NightsTotal      decimal.Decimal         `json:"nightsTotal"`
	ConsumptionTotal decimal.Decimal         `json:"consumptionTotal"`
	HardwareTotal    decimal.Decimal         `json:"hwTotal"`
	Tip              decimal.Decimal         `json:"tip"`
	CustomItemsTotal decimal.Decimal         `json:"customItemsTotal"`
	AdjustmentsTotal decimal.Decimal         `json:"adjustmentsTotal"`
	CustomItems      []domain.LineItem       `json:"custom_items"`
	Adjustments      []domain.LineItem       `json:"adjustments"`
	FinalTotal       decimal.Decimal         `json:"finalTotal"`
	// Lines holds the resolved amount of every line by its positional key.
	Lines          map[string]decimal.Decimal `json:"lines"`
	VariableSymbol string                     `json:"variable_symbol"`
	PaidAt         *time.Time                 `json:"paid_at"`
	QRGeneratedAt  *time.Time                 `json:"qr_generated_at"`
}

type GuestCosts struct {
	ID            uuid.UUID         `json:"id"`
	Name          string            `json:"name"`
	NightsCount   int               `json:"nights_count"`
	NightsTotal   decimal.Decimal   `json:"nightsTotal"`
	Consumption   []ConsumptionLine `json:"consumption"`
	SnacksTotal   decimal.Decimal   `json:"snacksTotal"`
	Hardware      []HardwareLine    `json:"hardware"`
	HwTotal       decimal.Decimal   `json:"hwTotal"`
	Tip           decimal.Decimal   `json:"tip"`
	TipPercentage *decimal.Decimal  `json:"tipPercentage"`
	GrandTotal    decimal.Decimal   `json:"grandTotal"`
	Settlement    *SettlementBlock  `json:"settlement"`
}

// Payable is what the guest owes: the finalized total when there is one,
// otherwise the preliminary grand total.
func (g *GuestCosts) Payable() decimal.Decimal {
	if g.Settlement != nil {
		return g.Settlement.FinalTotal
	}
	return g.GrandTotal
}

type BankSettings struct {
	AccountNumber string `json:"accountNumber"`
	BankCode      string `json:"bankCode"`
	IBAN          string `json:"iban"`
	RecipientName string `json:"recipientName"`
}

type Report struct {
	SessionID              uuid.UUID       `json:"sessionId"`
	Guests                 []GuestCosts    `json:"guests"`
	SessionName            string          `json:"sessionName"`
	PricePerNight          decimal.Decimal `json:"pricePerNight"`
	EffectivePricePerNight decimal.Decimal `json:"effectivePricePerNight"`
	SurchargeEnabled       bool            `json:"surchargeEnabled"`
	GuestCount             int             `json:"guestCount"`
	HardwarePricingEnabled bool            `json:"hardwarePricingEnabled"`
	IsPreliminary          bool            `json:"isPreliminary"`
	BankSettings           *BankSettings   `json:"bankSettings"`
}

// Guest returns the costs of one guest in the report.
func (r *Report) Guest(id uuid.UUID) (*GuestCosts, bool) {
	for i := range r.Guests {
		if r.Guests[i].ID == id {
			return &r.Guests[i], true
		}
	}
	return nil, false
}
