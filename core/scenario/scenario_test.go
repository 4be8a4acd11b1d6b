package scenario

import (
	"testing"

	"github.com/shopspring/decimal"

	"infra-estimator/core/engine"
	"infra-estimator/core/types"
)

func TestBuildDefaultColumns(t *testing.T) {
	cfg := types.DefaultConfiguration(types.PresetArchitecture)
	m := Build(nil, cfg, nil)

	if len(m.UserCounts) != 9 || m.UserCounts[0] != 10 || m.UserCounts[8] != 300 {
		t.Fatalf("columns = %v", m.UserCounts)
	}
	if len(m.Rows) != 7 {
		t.Errorf("rows = %d, want 7", len(m.Rows))
	}
	if len(m.Totals) != len(m.UserCounts) {
		t.Errorf("totals = %d", len(m.Totals))
	}
}

// TestColumnsMatchSingleCalls proves every column equals a direct engine call
func TestColumnsMatchSingleCalls(t *testing.T) {
	for _, preset := range types.Presets {
		cfg := types.DefaultConfiguration(preset)
		m := Build(engine.NewMemo(nil, 64), cfg, nil)

		for col, users := range m.UserCounts {
			c := cfg
			c.UserCount = users
			want := engine.ComputeInfrastructureCost(c)

			if !m.Totals[col].Equal(want.Total) {
				t.Errorf("%s/%d: total %s, want %s", preset, users, m.Totals[col], want.Total)
			}
			for i, row := range m.Rows {
				if !row.Amounts[col].Equal(want.Items[i].Amount) {
					t.Errorf("%s/%d/%s: %s, want %s", preset, users, row.Service, row.Amounts[col], want.Items[i].Amount)
				}
			}
		}
	}
}

func TestBuildCustomColumns(t *testing.T) {
	m := Build(engine.New(), types.DefaultConfiguration(types.PresetProject), []int{500, 50_000})

	if len(m.Totals) != 2 {
		t.Fatalf("totals = %d", len(m.Totals))
	}
	if !m.Totals[1].GreaterThan(m.Totals[0]) {
		t.Errorf("50k users (%s) should cost more than 500 (%s)", m.Totals[1], m.Totals[0])
	}

	b, ok := m.Column(50_000)
	if !ok || b.UserCount != 50_000 {
		t.Errorf("Column(50000) = %v, %v", b, ok)
	}
	if _, ok := m.Column(7); ok {
		t.Error("Column(7) should not exist")
	}
}

func TestCompareArchitectures(t *testing.T) {
	cfg := types.DefaultConfiguration(types.PresetArchitecture)
	cfg.UserCount = 100

	cmp := CompareArchitectures(nil, cfg)

	// EC2 only: 2× t3.large 121.472 vs 8× t3.medium 242.944
	if cmp.Cheaper != types.ArchitectureMonorepo {
		t.Errorf("cheaper = %s", cmp.Cheaper)
	}
	if !cmp.Savings.Equal(decimal.RequireFromString("121.472")) {
		t.Errorf("savings = %s, want 121.472", cmp.Savings)
	}
	if !cmp.Microservices.Sub(cmp.Monorepo).Equal(cmp.Savings) {
		t.Errorf("totals %s/%s disagree with savings", cmp.Monorepo, cmp.Microservices)
	}
	if !cmp.SavingsPercent.IsPositive() || cmp.SavingsPercent.GreaterThan(decimal.NewFromInt(100)) {
		t.Errorf("savings percent = %s", cmp.SavingsPercent)
	}
	if len(cmp.Diff.Changed()) != 1 {
		t.Errorf("diff changed = %d, want 1", len(cmp.Diff.Changed()))
	}
}

func TestCompareProjectArchitecturesTie(t *testing.T) {
	cmp := CompareArchitectures(nil, types.DefaultConfiguration(types.PresetProject))

	if !cmp.Savings.IsZero() || !cmp.SavingsPercent.IsZero() {
		t.Errorf("project tables share EC2 tiers, got savings %s", cmp.Savings)
	}
	if cmp.Cheaper != types.ArchitectureMonorepo {
		t.Errorf("tie should report monorepo, got %s", cmp.Cheaper)
	}
}

func TestCompareAcross(t *testing.T) {
	out := CompareAcross(nil, types.DefaultConfiguration(types.PresetArchitecture), nil)
	if len(out) != len(DefaultUserCounts) {
		t.Fatalf("comparisons = %d", len(out))
	}
	for i, c := range out {
		if c.UserCount != DefaultUserCounts[i] {
			t.Errorf("column %d user count = %d", i, c.UserCount)
		}
		if c.Cheaper != types.ArchitectureMonorepo {
			t.Errorf("%d users: %s cheaper", c.UserCount, c.Cheaper)
		}
	}
}
