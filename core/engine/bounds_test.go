package engine

import (
	"math"
	"testing"

	"infra-estimator/core/types"
)

func TestHugeUserCountsClampToCeiling(t *testing.T) {
	ceiling := types.DefaultConfiguration(types.PresetProject)
	ceiling.UserCount = types.MaxUserCount
	want := ComputeInfrastructureCost(ceiling)

	for _, users := range []int{math.MaxInt, math.MaxInt - 1000, types.MaxUserCount + 1} {
		cfg := types.DefaultConfiguration(types.PresetProject)
		cfg.UserCount = users
		b := ComputeInfrastructureCost(cfg)

		lb, _ := b.Item(types.ServiceLoadBalancer)
		wantLB, _ := want.Item(types.ServiceLoadBalancer)
		if !lb.Amount.Equal(wantLB.Amount) || lb.Detail != wantLB.Detail {
			t.Errorf("users=%d: load balancer %s %s, want %s %s", users, lb.Detail, lb.Amount, wantLB.Detail, wantLB.Amount)
		}
		if !b.Total.Equal(want.Total) {
			t.Errorf("users=%d: total %s, want %s", users, b.Total, want.Total)
		}
		if len(b.Adjustments) == 0 {
			t.Errorf("users=%d: clamp not reported", users)
		}
	}

	small := types.DefaultConfiguration(types.PresetProject)
	small.UserCount = 5000
	if !want.Total.GreaterThan(ComputeInfrastructureCost(small).Total) {
		t.Error("clamped total should exceed a 5000-user total")
	}
}

func TestHugeScopeKeepsMonitoringPositive(t *testing.T) {
	cfg := types.DefaultConfiguration(types.PresetProject)
	cfg.Scope = types.Scope{BackendServices: math.MaxInt / 2, FrontendServices: math.MaxInt / 2, AIAgents: 10}

	bounded := types.DefaultConfiguration(types.PresetProject)
	bounded.Scope = types.Scope{BackendServices: types.MaxScopeCount, FrontendServices: types.MaxScopeCount, AIAgents: 10}

	got, _ := ComputeInfrastructureCost(cfg).Item(types.ServiceMonitoring)
	want, _ := ComputeInfrastructureCost(bounded).Item(types.ServiceMonitoring)
	if got.Detail != want.Detail || !got.Amount.Equal(want.Amount) {
		t.Errorf("monitoring = %s %s, want %s %s", got.Detail, got.Amount, want.Detail, want.Amount)
	}
	if !got.Amount.IsPositive() {
		t.Errorf("monitoring amount = %s", got.Amount)
	}
}

func TestHugeScopeTeamTotalMatchesRoles(t *testing.T) {
	tests := []struct {
		name  string
		scope types.Scope
	}{
		{"generative AI", types.Scope{GenerativeAIModules: math.MaxInt}},
		{"every category", types.Scope{
			BackendServices:     math.MaxInt,
			FrontendServices:    math.MaxInt,
			AIAgents:            math.MaxInt,
			GenerativeAIModules: math.MaxInt,
			SeparateServices:    math.MaxInt,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			team := ComputeTeamAndSchedule(teamConfig(tt.scope, 1, types.QualitySenior))

			if team.TeamSize <= 0 {
				t.Fatalf("team size = %d", team.TeamSize)
			}
			sum := 0
			for _, r := range team.Roles {
				if r.Headcount < 0 {
					t.Errorf("%s headcount = %d", r.Role, r.Headcount)
				}
				sum += r.Headcount
			}
			if sum != team.Total {
				t.Errorf("total %d != role sum %d", team.Total, sum)
			}
			if !team.MonthlySalaryCost.IsPositive() {
				t.Errorf("payroll = %s", team.MonthlySalaryCost)
			}
		})
	}
}
