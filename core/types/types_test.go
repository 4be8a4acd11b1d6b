package types

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseService(t *testing.T) {
	tests := []struct {
		name    string
		want    Service
		wantErr bool
	}{
		{"ec2", ServiceEC2, false},
		{" Redis ", ServiceRedis, false},
		{"elasticache", ServiceRedis, false},
		{"api-gateway", ServiceAPIGateway, false},
		{"CloudWatch", ServiceMonitoring, false},
		{"alb", ServiceLoadBalancer, false},
		{"lambda", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseService(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestServiceSet(t *testing.T) {
	all := AllServices()
	for _, svc := range ToggleServices {
		if !all.Has(svc) {
			t.Errorf("AllServices missing %s", svc)
		}
	}

	set := all.Without(ServiceRedis)
	if set.Has(ServiceRedis) {
		t.Error("Without did not remove Redis")
	}
	if !all.Has(ServiceRedis) {
		t.Error("Without mutated the receiver")
	}
	if set.With(ServiceRedis) != all {
		t.Error("With did not restore Redis")
	}

	var empty ServiceSet
	if !empty.Has(ServiceDataTransfer) {
		t.Error("services without a toggle are always enabled")
	}
	if len(empty.Services()) != 0 {
		t.Errorf("empty set services = %v", empty.Services())
	}
	if ServiceDataTransfer.IsToggleable() {
		t.Error("data transfer has no toggle")
	}
}

func TestServiceSetJSON(t *testing.T) {
	set := NewServiceSet(ServiceEC2, ServiceS3, ServiceVPC)

	data, err := json.Marshal(set)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `["EC2","S3","VPC"]` {
		t.Errorf("marshal = %s", data)
	}

	var decoded ServiceSet
	if err := json.Unmarshal([]byte(`["ec2","s3","vpc"]`), &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded != set {
		t.Errorf("decoded = %s, want %s", decoded, set)
	}

	if err := json.Unmarshal([]byte(`["lambda"]`), &decoded); err == nil {
		t.Error("unknown service should fail")
	}
}

func TestRequiredServices(t *testing.T) {
	for _, svc := range []Service{ServiceEC2, ServiceS3, ServiceVPC} {
		if !svc.IsRequired() {
			t.Errorf("%s should be required", svc)
		}
	}
	if ServiceRedis.IsRequired() {
		t.Error("Redis is optional")
	}
}

func TestCurrencyFormat(t *testing.T) {
	tests := []struct {
		currency Currency
		usd      string
		want     string
	}{
		{CurrencyUSD, "73.61", "$73.61"},
		{CurrencyUSD, "0", "$0.00"},
		{CurrencyINR, "1", "₹83.50"},
		{CurrencyINR, "73.61", "₹6146.44"},
		{"", "10", "$10.00"},
	}

	for _, tt := range tests {
		got := tt.currency.Format(decimal.RequireFromString(tt.usd))
		if got != tt.want {
			t.Errorf("%q.Format(%s) = %q, want %q", tt.currency, tt.usd, got, tt.want)
		}
	}

	if !CurrencyUSD.Valid() || !CurrencyINR.Valid() || Currency("EUR").Valid() {
		t.Error("Valid")
	}
}

func TestDefaultConfigurationComparable(t *testing.T) {
	a := DefaultConfiguration(PresetProject)
	b := DefaultConfiguration(PresetProject)
	if a != b {
		t.Error("identical configurations should compare equal")
	}

	seen := map[Configuration]bool{a: true}
	b.UserCount++
	if seen[b] {
		t.Error("different configurations should not collide")
	}

	arch := DefaultConfiguration(PresetArchitecture)
	if arch.Currency != CurrencyINR || arch.UserCount != 10 {
		t.Errorf("architecture defaults = %+v", arch)
	}
}

func TestCostBreakdownAdd(t *testing.T) {
	b := NewCostBreakdown(PresetArchitecture, 10)
	b.Add(LineItem{Service: ServiceEC2, Amount: decimal.RequireFromString("60.736")})
	b.Add(LineItem{Service: ServiceS3, Amount: decimal.RequireFromString("0.464")})

	if !b.Total.Equal(decimal.RequireFromString("61.2")) || !b.Total.Equal(b.Sum()) {
		t.Errorf("total = %s", b.Total)
	}
	if !b.Amount(ServiceS3).Equal(decimal.RequireFromString("0.464")) {
		t.Errorf("S3 = %s", b.Amount(ServiceS3))
	}
	if !b.Amount(ServiceRedis).IsZero() {
		t.Error("absent service should be zero")
	}

	clone := b.Clone()
	clone.Items[0].Amount = decimal.Zero
	if b.Items[0].Amount.IsZero() {
		t.Error("Clone shares items")
	}
}
