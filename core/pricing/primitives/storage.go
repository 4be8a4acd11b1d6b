// Package primitives - Storage pricing primitives
// GB-months
package primitives

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// StorageGB prices gb of storage for a month
func StorageGB(gb int, perGB decimal.Decimal) Charge {
	if gb <= 0 {
		return Charge{Measure: "GB-months", Rate: perGB, Formula: "no storage"}
	}

	qty := decimal.NewFromInt(int64(gb))
	return Charge{
		Measure:  "GB-months",
		Quantity: qty,
		Rate:     perGB,
		Amount:   qty.Mul(perGB),
		Formula:  fmt.Sprintf("%d GB × $%s/GB-month", gb, perGB.String()),
	}
}
