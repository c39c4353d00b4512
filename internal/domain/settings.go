package domain

import (
	"time"

	"github.com/google/uuid"
)

// AdminSettingsID is the primary key of the only AdminSettings row.
const AdminSettingsID = 1

// AdminSettings is a singleton record. ActiveSessionID is the single source of
// truth for which event is currently running.
type AdminSettings struct {
	ID                int        `json:"-" gorm:"primaryKey;autoIncrement:false"`
	ActiveSessionID   *uuid.UUID `json:"active_session_id,omitempty" gorm:"type:uuid"`
	BankAccountNumber string     `json:"bank_account_number,omitempty"`
	BankCode          string     `json:"bank_code,omitempty"`
	IBAN              string     `json:"iban,omitempty"`
	RecipientName     string     `json:"recipient_name,omitempty"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// HasBankAccount reports whether any payment destination is configured.
func (s *AdminSettings) HasBankAccount() bool {
	return s != nil && (s.IBAN != "" || s.BankAccountNumber != "")
}
