package primitives

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestDecKeepsShortestForm(t *testing.T) {
	if got := Dec(0.0832).String(); got != "0.0832" {
		t.Errorf("Dec(0.0832) = %s", got)
	}
	c := InstanceHours(2, "t3.large", Dec(0.0832))
	if !c.Amount.Equal(d("121.472")) {
		t.Errorf("2 × t3.large = %s, want 121.472", c.Amount)
	}
}

func TestInstanceHours(t *testing.T) {
	tests := []struct {
		count  int
		hourly string
		hours  string
		amount string
	}{
		{0, "0.0832", "0", "0"},
		{1, "0.0832", "730", "60.736"},
		{3, "0.1664", "2190", "364.416"},
	}

	for _, tt := range tests {
		c := InstanceHours(tt.count, "t3", d(tt.hourly))
		if !c.Quantity.Equal(d(tt.hours)) {
			t.Errorf("count=%d: hours = %s, want %s", tt.count, c.Quantity, tt.hours)
		}
		if !c.Amount.Equal(d(tt.amount)) {
			t.Errorf("count=%d: amount = %s, want %s", tt.count, c.Amount, tt.amount)
		}
	}

	if m := NodeHours(1, "cache.t3.micro", d("0.017")).Measure; m != "node-hours" {
		t.Errorf("node measure = %s", m)
	}
}

func TestFixedHourly(t *testing.T) {
	c := FixedHourly("NAT gateway", d("0.045"))
	if !c.Amount.Equal(d("32.85")) {
		t.Errorf("NAT = %s, want 32.85", c.Amount)
	}
}

func TestStorageGB(t *testing.T) {
	if c := StorageGB(50, d("0.023")); !c.Amount.Equal(d("1.15")) {
		t.Errorf("50 GB = %s, want 1.15", c.Amount)
	}
	if c := StorageGB(-1, d("0.023")); !c.Amount.IsZero() {
		t.Errorf("negative storage = %s, want 0", c.Amount)
	}
}

func TestRequests(t *testing.T) {
	tests := []struct {
		name   string
		count  string
		rate   string
		unit   decimal.Decimal
		amount string
	}{
		{"s3 per thousand", "100000", "0.0004", decimal.NewFromInt(1000), "0.04"},
		{"api per million", "2500000", "3.5", Million, "8.75"},
		{"none", "0", "3.5", Million, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Requests(d(tt.count), d(tt.rate), tt.unit)
			if !c.Amount.Equal(d(tt.amount)) {
				t.Errorf("amount = %s, want %s", c.Amount, tt.amount)
			}
		})
	}
}

func TestFreeTierRequests(t *testing.T) {
	tests := []struct {
		count  string
		amount string
	}{
		{"0", "0"},
		{"999999", "0"},
		{"1000000", "0"},
		{"1000001", "0.0000005"},
		{"3000000", "1"},
	}

	for _, tt := range tests {
		c := FreeTierRequests(d(tt.count), Million, d("0.5"))
		if !c.Amount.Equal(d(tt.amount)) {
			t.Errorf("count=%s: amount = %s, want %s", tt.count, c.Amount, tt.amount)
		}
	}
}

func TestCalculateTieredCost(t *testing.T) {
	tiers := []PricingTier{
		{UpTo: d("50000"), UnitRate: d("0.0055")},
		{UnitRate: d("0.0046")},
	}

	tests := []struct {
		quantity string
		want     string
	}{
		{"-10", "0"},
		{"0", "0"},
		{"10000", "55"},
		{"50000", "275"},
		{"50001", "275.0046"},
		{"100000", "505"},
	}

	for _, tt := range tests {
		got := CalculateTieredCost(d(tt.quantity), tiers)
		if !got.Equal(d(tt.want)) {
			t.Errorf("tiered(%s) = %s, want %s", tt.quantity, got, tt.want)
		}
	}
}

func TestCalculateTieredCostCumulativeBounds(t *testing.T) {
	tiers := []PricingTier{
		{UpTo: d("10"), UnitRate: d("3")},
		{UpTo: d("30"), UnitRate: d("2")},
		{UpTo: d("60"), UnitRate: d("1")},
	}

	// 10×3 + 20×2 + 30×1; the capped final tier drops the rest
	if got := CalculateTieredCost(d("100"), tiers); !got.Equal(d("100")) {
		t.Errorf("tiered(100) = %s, want 100", got)
	}
	if got := CalculateTieredCost(d("5"), nil); !got.IsZero() {
		t.Errorf("no tiers = %s, want 0", got)
	}
}

func TestFreeTierAndTransfer(t *testing.T) {
	if got := FreeTier(d("40"), d("100")); !got.IsZero() {
		t.Errorf("FreeTier below allowance = %s", got)
	}
	if got := FreeTier(d("140"), d("100")); !got.Equal(d("40")) {
		t.Errorf("FreeTier above allowance = %s", got)
	}

	c := DataTransferGB(d("110"), d("100"), d("0.09"))
	if !c.Amount.Equal(d("0.9")) || !c.Quantity.Equal(d("10")) {
		t.Errorf("transfer = %s for %s GB", c.Amount, c.Quantity)
	}
}

func TestChargePlus(t *testing.T) {
	a := StorageGB(50, d("0.023"))
	b := Requests(d("50000"), d("0.0004"), decimal.NewFromInt(1000))

	sum := a.Plus(b, "combined")
	if !sum.Amount.Equal(d("1.17")) {
		t.Errorf("sum = %s, want 1.17", sum.Amount)
	}
	if sum.Measure != a.Measure || sum.Formula != "combined" {
		t.Errorf("sum = %+v", sum)
	}
}
