package domain

import (
	"time"

	"github.com/google/uuid"
)

type Guest struct {
	Base
	Name         string     `json:"name" gorm:"not null;index"`
	SessionID    uuid.UUID  `json:"session_id" gorm:"type:uuid;not null;index"`
	NightsCount  int        `json:"nights_count" gorm:"not null;default:1"`
	CheckInDate  *time.Time `json:"check_in_date,omitempty"`
	CheckOutDate *time.Time `json:"check_out_date,omitempty"`
	IsActive     bool       `json:"is_active" gorm:"not null"`
}
