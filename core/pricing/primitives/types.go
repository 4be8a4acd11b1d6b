// Package primitives - Centralized pricing math
// Presets declare tiers and rates, not do math.
// All pricing arithmetic flows through these primitives.
package primitives

import "github.com/shopspring/decimal"

// HoursPerMonth is the billing month used for hourly resources
var HoursPerMonth = decimal.NewFromInt(730)

// Million is the unit for request-priced services
var Million = decimal.NewFromInt(1_000_000)

// Charge is a priced usage component
type Charge struct {
	Measure  string
	Quantity decimal.Decimal
	Rate     decimal.Decimal
	Amount   decimal.Decimal
	Formula  string
}

// Plus combines two charges into one amount. Measure and rate of the
// receiver are kept; quantities are not summed since units may differ.
func (c Charge) Plus(other Charge, formula string) Charge {
	return Charge{
		Measure:  c.Measure,
		Quantity: c.Quantity,
		Rate:     c.Rate,
		Amount:   c.Amount.Add(other.Amount),
		Formula:  formula,
	}
}

// PricingTier represents a tiered pricing level
type PricingTier struct {
	UpTo     decimal.Decimal // Upper limit (zero = unlimited)
	UnitRate decimal.Decimal // Rate per unit in this tier
}

// Dec converts a float literal rate into a decimal via its shortest
// string form, so 0.0832 stays exactly 0.0832.
func Dec(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
