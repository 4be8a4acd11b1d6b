// Package primitives - Request and usage-based pricing primitives
package primitives

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Requests prices count requests at rate per unitSize requests
// (e.g. S3 per 1,000, API Gateway per 1,000,000).
func Requests(count decimal.Decimal, rate decimal.Decimal, unitSize decimal.Decimal) Charge {
	measure := fmt.Sprintf("per-%s-requests", unitSize.String())
	if !count.IsPositive() {
		return Charge{Measure: measure, Rate: rate, Formula: "no requests"}
	}

	units := count.Div(unitSize)
	return Charge{
		Measure:  measure,
		Quantity: units,
		Rate:     rate,
		Amount:   units.Mul(rate),
		Formula:  fmt.Sprintf("%s requests / %s × $%s", count.String(), unitSize.String(), rate.String()),
	}
}

// FreeTierRequests prices only the requests above a free allowance,
// at rate per million.
func FreeTierRequests(count decimal.Decimal, free decimal.Decimal, ratePerMillion decimal.Decimal) Charge {
	billable := FreeTier(count, free)
	if billable.IsZero() {
		return Charge{
			Measure: "million-requests",
			Rate:    ratePerMillion,
			Formula: fmt.Sprintf("%s requests within %s free", count.String(), free.String()),
		}
	}

	millions := billable.Div(Million)
	return Charge{
		Measure:  "million-requests",
		Quantity: millions,
		Rate:     ratePerMillion,
		Amount:   millions.Mul(ratePerMillion),
		Formula: fmt.Sprintf("(%s - %s free) / 1M × $%s",
			count.String(), free.String(), ratePerMillion.String()),
	}
}
