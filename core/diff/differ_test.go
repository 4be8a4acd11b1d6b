package diff

import (
	"testing"

	"github.com/shopspring/decimal"

	"infra-estimator/core/engine"
	"infra-estimator/core/types"
)

func breakdown(items map[types.Service]string, order ...types.Service) *types.CostBreakdown {
	b := types.NewCostBreakdown(types.PresetArchitecture, 0)
	for _, svc := range order {
		b.Add(types.LineItem{Service: svc, Label: string(svc), Amount: decimal.RequireFromString(items[svc])})
	}
	return b
}

func TestDiffClassifiesItems(t *testing.T) {
	before := breakdown(map[types.Service]string{
		types.ServiceEC2: "100", types.ServiceS3: "5", types.ServiceRDS: "30",
	}, types.ServiceEC2, types.ServiceS3, types.ServiceRDS)
	after := breakdown(map[types.Service]string{
		types.ServiceEC2: "150", types.ServiceS3: "5", types.ServiceSNS: "1",
	}, types.ServiceEC2, types.ServiceS3, types.ServiceSNS)

	r := Diff(before, after)

	want := map[types.Service]ChangeType{
		types.ServiceEC2: ChangeModified,
		types.ServiceS3:  ChangeUnchanged,
		types.ServiceSNS: ChangeAdded,
		types.ServiceRDS: ChangeRemoved,
	}
	for _, d := range r.Items {
		if d.ChangeType != want[d.Service] {
			t.Errorf("%s: %s, want %s", d.Service, d.ChangeType, want[d.Service])
		}
	}

	if r.AddedCount != 1 || r.RemovedCount != 1 || r.ChangedCount != 1 || r.UnchangedCount != 1 {
		t.Errorf("counts = %d/%d/%d/%d", r.AddedCount, r.RemovedCount, r.ChangedCount, r.UnchangedCount)
	}
	if !r.TotalDelta.Equal(decimal.NewFromInt(21)) {
		t.Errorf("delta = %s, want 21", r.TotalDelta)
	}
	if !r.DeltaPercent.Equal(decimal.RequireFromString("15.56")) {
		t.Errorf("delta percent = %s, want 15.56", r.DeltaPercent)
	}
	if len(r.Changed()) != 3 {
		t.Errorf("changed = %d, want 3", len(r.Changed()))
	}
}

func TestDiffArchitectures(t *testing.T) {
	cfg := types.DefaultConfiguration(types.PresetArchitecture)
	cfg.UserCount = 100

	mono := engine.ComputeInfrastructureCost(cfg)
	cfg.Architecture = types.ArchitectureMicroservices
	micro := engine.ComputeInfrastructureCost(cfg)

	r := Diff(mono, micro)
	changed := r.Changed()
	if len(changed) != 1 || changed[0].Service != types.ServiceEC2 {
		t.Fatalf("changed = %+v, want only EC2", changed)
	}
	if changed[0].DetailBefore != "2× t3.large" || changed[0].DetailAfter != "8× t3.medium" {
		t.Errorf("details = %q -> %q", changed[0].DetailBefore, changed[0].DetailAfter)
	}
	if !r.TotalDelta.Equal(micro.Total.Sub(mono.Total)) {
		t.Errorf("delta = %s", r.TotalDelta)
	}
}

func TestDiffNilSides(t *testing.T) {
	after := breakdown(map[types.Service]string{types.ServiceEC2: "10"}, types.ServiceEC2)

	r := Diff(nil, after)
	if r.AddedCount != 1 || !r.DeltaPercent.IsZero() {
		t.Errorf("nil before: %+v", r)
	}

	r = Diff(after, nil)
	if r.RemovedCount != 1 || !r.TotalDelta.Equal(decimal.NewFromInt(-10)) {
		t.Errorf("nil after: %+v", r)
	}
}

func TestNarrative(t *testing.T) {
	before := breakdown(map[types.Service]string{
		types.ServiceEC2: "100", types.ServiceS3: "5", types.ServiceRDS: "30",
	}, types.ServiceEC2, types.ServiceS3, types.ServiceRDS)
	after := breakdown(map[types.Service]string{
		types.ServiceEC2: "80", types.ServiceS3: "5", types.ServiceSNS: "1",
	}, types.ServiceEC2, types.ServiceS3, types.ServiceSNS)
	before.Items[0].Detail = "2× t3.large"
	after.Items[0].Detail = "8× t3.medium"

	got := Diff(before, after).Narrative(types.CurrencyUSD)
	want := []string{
		"EC2 cost decreased by $20.00 (from $100.00 to $80.00): 2× t3.large → 8× t3.medium",
		"New item SNS costs $1.00/month",
		"Dropping RDS saves $30.00/month",
	}
	if len(got) != len(want) {
		t.Fatalf("narrative = %q", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}
