// Package pricing holds the tier tables and unit rates of each preset.
// Tables are declarative; all arithmetic lives in the primitives package.
package pricing

import (
	"math"

	"github.com/shopspring/decimal"
)

// Unbounded marks the final, open-ended tier of a table
const Unbounded = math.MaxInt

// Tier maps every user count up to and including MaxUsers to Value
type Tier[T any] struct {
	MaxUsers int
	Value    T
}

// Lookup returns the value of the first tier whose closed upper bound
// covers users. Counts past the last bound fall into the last tier.
func Lookup[T any](tiers []Tier[T], users int) T {
	for _, tier := range tiers {
		if users <= tier.MaxUsers {
			return tier.Value
		}
	}
	var zero T
	if len(tiers) == 0 {
		return zero
	}
	return tiers[len(tiers)-1].Value
}

// InstanceSpec is a fleet of identical instances
type InstanceSpec struct {
	Count  int
	Type   string
	Hourly decimal.Decimal
}

// NodeType is a managed-service node class and its hourly price
type NodeType struct {
	Type   string
	Hourly decimal.Decimal
}
