// Package diff provides line-item cost diffing.
// Compares two cost breakdowns service by service.
package diff

import (
	"github.com/shopspring/decimal"

	"infra-estimator/core/types"
)

// Result is the complete diff between two breakdowns
type Result struct {
	// Overall summary
	TotalBefore  decimal.Decimal
	TotalAfter   decimal.Decimal
	TotalDelta   decimal.Decimal
	DeltaPercent decimal.Decimal

	// Line-item changes in the after breakdown's order, then removals
	Items []ItemDiff

	// Counts
	AddedCount     int
	RemovedCount   int
	ChangedCount   int
	UnchangedCount int
}

// ItemDiff describes the change of a single line item
type ItemDiff struct {
	Service    types.Service
	Label      string
	ChangeType ChangeType

	Before decimal.Decimal
	After  decimal.Decimal
	Delta  decimal.Decimal

	// Sizing detail on each side, e.g. "2× t3.large" vs "8× t3.medium"
	DetailBefore string
	DetailAfter  string
}

// ChangeType indicates the type of change
type ChangeType int

const (
	ChangeAdded     ChangeType = iota // Item only in after
	ChangeRemoved                     // Item only in before
	ChangeModified                    // Amount changed
	ChangeUnchanged                   // No cost change
)

// String returns the change type name
func (c ChangeType) String() string {
	switch c {
	case ChangeAdded:
		return "added"
	case ChangeRemoved:
		return "removed"
	case ChangeModified:
		return "modified"
	case ChangeUnchanged:
		return "unchanged"
	default:
		return "unknown"
	}
}

// MarshalText encodes the change type by name
func (c ChangeType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Diff computes the diff between before and after.
// A nil side is treated as an empty breakdown.
func Diff(before, after *types.CostBreakdown) *Result {
	if before == nil {
		before = &types.CostBreakdown{}
	}
	if after == nil {
		after = &types.CostBreakdown{}
	}

	result := &Result{
		TotalBefore: before.Total,
		TotalAfter:  after.Total,
		TotalDelta:  after.Total.Sub(before.Total),
		Items:       []ItemDiff{},
	}
	if !before.Total.IsZero() {
		result.DeltaPercent = result.TotalDelta.Div(before.Total).Mul(decimal.NewFromInt(100)).Round(2)
	}

	seen := make(map[types.Service]bool, len(after.Items))
	for _, a := range after.Items {
		seen[a.Service] = true

		d := ItemDiff{
			Service:     a.Service,
			Label:       a.Label,
			After:       a.Amount,
			DetailAfter: a.Detail,
		}

		b, ok := before.Item(a.Service)
		if !ok {
			d.ChangeType = ChangeAdded
			d.Delta = a.Amount
			result.AddedCount++
			result.Items = append(result.Items, d)
			continue
		}

		d.Before = b.Amount
		d.DetailBefore = b.Detail
		d.Delta = a.Amount.Sub(b.Amount)
		if d.Delta.IsZero() {
			d.ChangeType = ChangeUnchanged
			result.UnchangedCount++
		} else {
			d.ChangeType = ChangeModified
			result.ChangedCount++
		}
		result.Items = append(result.Items, d)
	}

	for _, b := range before.Items {
		if seen[b.Service] {
			continue
		}
		result.Items = append(result.Items, ItemDiff{
			Service:      b.Service,
			Label:        b.Label,
			ChangeType:   ChangeRemoved,
			Before:       b.Amount,
			Delta:        b.Amount.Neg(),
			DetailBefore: b.Detail,
		})
		result.RemovedCount++
	}

	return result
}

// Changed returns only the items whose amount differs
func (r *Result) Changed() []ItemDiff {
	var out []ItemDiff
	for _, d := range r.Items {
		if d.ChangeType != ChangeUnchanged {
			out = append(out, d)
		}
	}
	return out
}
