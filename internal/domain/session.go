package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type SessionStatus string

const (
	SessionDraft     SessionStatus = "draft"
	SessionUpcoming  SessionStatus = "upcoming"
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
	SessionCancelled SessionStatus = "cancelled"
)

func (s SessionStatus) Valid() bool {
	switch s {
	case SessionDraft, SessionUpcoming, SessionActive, SessionCompleted, SessionCancelled:
		return true
	}
	return false
}

// AcceptsRegistrations reports whether guests may still join an event in this state.
func (s SessionStatus) AcceptsRegistrations() bool {
	return s != SessionCompleted && s != SessionCancelled
}

// Session is one LAN-party event.
type Session struct {
	Base
	Name                   string          `json:"name" gorm:"not null"`
	Slug                   string          `json:"slug" gorm:"not null;uniqueIndex"`
	Description            string          `json:"description,omitempty" gorm:"type:text"`
	StartDate              time.Time       `json:"start_date" gorm:"not null"`
	EndDate                *time.Time      `json:"end_date,omitempty"`
	StartTime              string          `json:"start_time,omitempty"`
	EndTime                string          `json:"end_time,omitempty"`
	PricePerNight          decimal.Decimal `json:"price_per_night" gorm:"type:decimal(12,2);not null;default:0"`
	SurchargeEnabled       bool            `json:"surcharge_enabled"`
	HardwarePricingEnabled bool            `json:"hardware_pricing_enabled"`
	MenuEnabled            bool            `json:"menu_enabled"`
	Status                 SessionStatus   `json:"status" gorm:"type:varchar(16);not null;default:'draft'"`

	// IsActive mirrors the active-session pointer in AdminSettings; it is not stored.
	IsActive bool `json:"is_active" gorm:"-"`
}
