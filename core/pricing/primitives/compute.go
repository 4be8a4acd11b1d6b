// Package primitives - Compute pricing primitives
// Instance hours and node hours
package primitives

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// InstanceHours prices count instances running a full month
func InstanceHours(count int, instanceType string, hourly decimal.Decimal) Charge {
	if count <= 0 {
		return Charge{Measure: "instance-hours", Rate: hourly, Formula: "no instances"}
	}

	hours := decimal.NewFromInt(int64(count)).Mul(HoursPerMonth)
	return Charge{
		Measure:  "instance-hours",
		Quantity: hours,
		Rate:     hourly,
		Amount:   hours.Mul(hourly),
		Formula:  fmt.Sprintf("%d × %s × $%s/hour × 730 hours", count, instanceType, hourly.String()),
	}
}

// NodeHours prices managed-service nodes (ElastiCache, RDS) running a full month
func NodeHours(count int, nodeType string, hourly decimal.Decimal) Charge {
	c := InstanceHours(count, nodeType, hourly)
	c.Measure = "node-hours"
	return c
}

// FixedHourly prices a single always-on resource billed by the hour
func FixedHourly(resource string, hourly decimal.Decimal) Charge {
	return Charge{
		Measure:  "hours",
		Quantity: HoursPerMonth,
		Rate:     hourly,
		Amount:   HoursPerMonth.Mul(hourly),
		Formula:  fmt.Sprintf("%s $%s/hour × 730 hours", resource, hourly.String()),
	}
}
