// Package types - Cost breakdown types
package types

import "github.com/shopspring/decimal"

// Currency represents a display currency code
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyINR Currency = "INR"
)

// USDToINR is the fixed display exchange rate
var USDToINR = decimal.RequireFromString("83.5")

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}

// Valid reports whether c is a supported currency
func (c Currency) Valid() bool {
	return c == CurrencyUSD || c == CurrencyINR
}

// Symbol returns the display prefix for amounts
func (c Currency) Symbol() string {
	if c == CurrencyINR {
		return "₹"
	}
	return "$"
}

// Convert converts a USD amount into c. Engine outputs are always USD;
// conversion happens only when rendering.
func (c Currency) Convert(usd decimal.Decimal) decimal.Decimal {
	if c == CurrencyINR {
		return usd.Mul(USDToINR)
	}
	return usd
}

// Format renders a USD amount in c with two decimals
func (c Currency) Format(usd decimal.Decimal) string {
	return c.Symbol() + c.Convert(usd).StringFixed(2)
}

// LineItem is a single billable service in a breakdown
type LineItem struct {
	// Service identifies the line item
	Service Service `json:"service"`

	// Label is a human-readable label
	Label string `json:"label"`

	// Detail describes sizing, e.g. "2× t3.large"
	Detail string `json:"detail,omitempty"`

	// Measure is the billing unit (e.g., "instance-hours", "GB-month")
	Measure string `json:"measure,omitempty"`

	// Quantity is the billed quantity after free allowances
	Quantity decimal.Decimal `json:"quantity"`

	// Rate is the unit price in USD
	Rate decimal.Decimal `json:"rate"`

	// Amount is the monthly cost in USD
	Amount decimal.Decimal `json:"amount"`

	// Enabled is false when the service was toggled off
	Enabled bool `json:"enabled"`

	// Required services cannot be toggled off
	Required bool `json:"required,omitempty"`

	// Formula describes how the amount was calculated
	Formula string `json:"formula"`
}

// Sizing records the tier decisions behind a breakdown
type Sizing struct {
	EC2Instances   int             `json:"ec2_instances"`
	EC2Type        string          `json:"ec2_type"`
	S3StorageGB    int             `json:"s3_storage_gb"`
	RedisType      string          `json:"redis_type"`
	RedisInstances int             `json:"redis_instances"`
	RDSClass       string          `json:"rds_class,omitempty"`
	RDSStorageGB   int             `json:"rds_storage_gb,omitempty"`
	SNSMessages    int64           `json:"sns_messages"`
	SQSRequests    int64           `json:"sqs_requests"`
	DataTransferGB decimal.Decimal `json:"data_transfer_gb"`
}

// CostBreakdown is the itemized monthly cost of a configuration
type CostBreakdown struct {
	// Preset is the pricing preset used
	Preset Preset `json:"preset"`

	// UserCount is the user count the breakdown was computed for
	UserCount int `json:"user_count"`

	// Items are the line items in preset order
	Items []LineItem `json:"items"`

	// Sizing records tier decisions
	Sizing Sizing `json:"sizing"`

	// Total is the sum of all line item amounts, in USD
	Total decimal.Decimal `json:"total"`

	// Adjustments lists input corrections applied before pricing
	Adjustments []string `json:"adjustments,omitempty"`
}

// NewCostBreakdown creates an empty breakdown
func NewCostBreakdown(preset Preset, users int) *CostBreakdown {
	return &CostBreakdown{
		Preset:    preset,
		UserCount: users,
		Total:     decimal.Zero,
	}
}

// Add appends a line item and updates the total
func (b *CostBreakdown) Add(item LineItem) {
	b.Items = append(b.Items, item)
	b.Total = b.Total.Add(item.Amount)
}

// Item returns the line item for svc
func (b *CostBreakdown) Item(svc Service) (LineItem, bool) {
	for _, item := range b.Items {
		if item.Service == svc {
			return item, true
		}
	}
	return LineItem{}, false
}

// Amount returns the cost of svc, zero when absent
func (b *CostBreakdown) Amount(svc Service) decimal.Decimal {
	if item, ok := b.Item(svc); ok {
		return item.Amount
	}
	return decimal.Zero
}

// Sum recomputes the total from the line items
func (b *CostBreakdown) Sum() decimal.Decimal {
	total := decimal.Zero
	for _, item := range b.Items {
		total = total.Add(item.Amount)
	}
	return total
}

// HourlyTotal returns the total spread over 730 hours
func (b *CostBreakdown) HourlyTotal() decimal.Decimal {
	return b.Total.Div(decimal.NewFromInt(730))
}

// Clone returns a deep copy
func (b *CostBreakdown) Clone() *CostBreakdown {
	out := *b
	out.Items = append([]LineItem(nil), b.Items...)
	out.Adjustments = append([]string(nil), b.Adjustments...)
	return &out
}
