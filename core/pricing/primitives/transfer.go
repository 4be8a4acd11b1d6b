// Package primitives - Data transfer pricing primitives
package primitives

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DataTransferGB prices outbound transfer above a free baseline, floored at zero
func DataTransferGB(gb decimal.Decimal, freeGB decimal.Decimal, perGB decimal.Decimal) Charge {
	billable := FreeTier(gb, freeGB)
	return Charge{
		Measure:  "GB",
		Quantity: billable,
		Rate:     perGB,
		Amount:   billable.Mul(perGB),
		Formula: fmt.Sprintf("max(0, %s GB - %s GB free) × $%s/GB",
			gb.String(), freeGB.String(), perGB.String()),
	}
}
