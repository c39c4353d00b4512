package domain

import "github.com/shopspring/decimal"

// Product is a snack or drink sold at every event.
type Product struct {
	Base
	Name          string           `json:"name" gorm:"not null"`
	Price         decimal.Decimal  `json:"price" gorm:"type:decimal(12,2);not null"`
	PurchasePrice *decimal.Decimal `json:"purchase_price,omitempty" gorm:"type:decimal(12,2)"`
	Category      string           `json:"category"`
	ImageURL      string           `json:"image_url,omitempty"`
	IsAvailable   bool             `json:"is_available" gorm:"not null"`
}
