// Package primitives - Tiered pricing primitives
// Handles free allowances and marginal rate tiers
package primitives

import "github.com/shopspring/decimal"

// CalculateTieredCost computes the cost of quantity across marginal tiers.
// Each tier's UpTo is cumulative; a zero UpTo absorbs everything remaining.
func CalculateTieredCost(quantity decimal.Decimal, tiers []PricingTier) decimal.Decimal {
	if !quantity.IsPositive() || len(tiers) == 0 {
		return decimal.Zero
	}

	total := decimal.Zero
	remaining := quantity
	previousLimit := decimal.Zero

	for _, tier := range tiers {
		if !remaining.IsPositive() {
			break
		}

		if tier.UpTo.IsZero() {
			total = total.Add(remaining.Mul(tier.UnitRate))
			remaining = decimal.Zero
			continue
		}

		usageInTier := decimal.Min(remaining, tier.UpTo.Sub(previousLimit))
		total = total.Add(usageInTier.Mul(tier.UnitRate))
		remaining = remaining.Sub(usageInTier)
		previousLimit = tier.UpTo
	}

	return total
}

// FreeTier returns the quantity left after a free allowance, never negative
func FreeTier(quantity decimal.Decimal, freeAmount decimal.Decimal) decimal.Decimal {
	return nonNegative(quantity.Sub(freeAmount))
}
