package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SettlementStatus string

const (
	SettlementDraft   SettlementStatus = "draft"
	SettlementPending SettlementStatus = "pending"
	SettlementPaid    SettlementStatus = "paid"
)

func (s SettlementStatus) Valid() bool {
	return s == SettlementDraft || s == SettlementPending || s == SettlementPaid
}

// Settlement is the admin-finalized bill of one guest at one session.
type Settlement struct {
	Base
	SessionID      uuid.UUID                  `json:"session_id" gorm:"type:uuid;not null;uniqueIndex:idx_settlement_session_guest;uniqueIndex:idx_settlement_session_vs,where:variable_symbol <> ''"`
	GuestID        uuid.UUID                  `json:"guest_id" gorm:"type:uuid;not null;uniqueIndex:idx_settlement_session_guest"`
	Status         SettlementStatus           `json:"status" gorm:"type:varchar(16);not null;default:'draft'"`
	QRGeneratedAt  *time.Time                 `json:"qr_generated_at,omitempty"`
	VariableSymbol string                     `json:"variable_symbol,omitempty" gorm:"type:varchar(10);uniqueIndex:idx_settlement_session_vs,where:variable_symbol <> ''"`
	Overrides      map[string]decimal.Decimal `json:"overrides" gorm:"serializer:json;type:text"`
	CustomItems    []LineItem                 `json:"custom_items" gorm:"serializer:json;type:text"`
	Adjustments    []LineItem                 `json:"adjustments" gorm:"serializer:json;type:text"`
	Notes          string                     `json:"notes,omitempty" gorm:"type:text"`
	PaidAt         *time.Time                 `json:"paid_at,omitempty"`
}

// IsFinalized reports whether overrides and manual items are authoritative.
func (s *Settlement) IsFinalized() bool {
	return s != nil && s.QRGeneratedAt != nil
}
