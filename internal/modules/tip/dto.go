package tip

import "github.com/shopspring/decimal"

type SetTipRequest struct {
	Amount     decimal.Decimal  `json:"amount"`
	Percentage *decimal.Decimal `json:"percentage"`
}
