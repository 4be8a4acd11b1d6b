package engine

import (
	"testing"

	"infra-estimator/core/pricing"
	"infra-estimator/core/types"
)

func teamConfig(scope types.Scope, timeline int, quality types.TeamQuality) types.Configuration {
	cfg := types.DefaultConfiguration(types.PresetProject)
	cfg.Scope = scope
	cfg.TimelineMonths = timeline
	cfg.TeamQuality = quality
	return cfg
}

func TestTeamSixtyBackendServices(t *testing.T) {
	team := ComputeTeamAndSchedule(teamConfig(types.Scope{BackendServices: 60}, 6, types.QualityMid))

	if !team.Effort.Development.Equal(d("45")) {
		t.Errorf("development = %s, want 45", team.Effort.Development)
	}
	if !team.Effort.Testing.Equal(d("9")) {
		t.Errorf("testing = %s, want 9", team.Effort.Testing)
	}
	if !team.Effort.Adjusted.Equal(d("54")) {
		t.Errorf("adjusted = %s, want 54", team.Effort.Adjusted)
	}
	if team.TeamSize != 9 {
		t.Errorf("team size = %d, want 9", team.TeamSize)
	}

	want := map[types.Role]int{
		types.RoleBackend:        3,
		types.RoleFrontend:       1,
		types.RoleAI:             3,
		types.RoleDevOps:         2,
		types.RoleQA:             2,
		types.RoleTechLead:       2,
		types.RoleProjectManager: 1,
	}
	for role, n := range want {
		if got := team.Headcount(role); got != n {
			t.Errorf("%s = %d, want %d", role, got, n)
		}
	}

	if team.Total != 14 {
		t.Errorf("total = %d, want 14", team.Total)
	}
	if !team.MonthlySalaryCost.Equal(d("88000")) {
		t.Errorf("monthly salary = %s, want 88000", team.MonthlySalaryCost)
	}
	if !team.ProjectSalaryCost.Equal(d("528000")) {
		t.Errorf("project salary = %s, want 528000", team.ProjectSalaryCost)
	}
}

func TestTeamQualityMultiplier(t *testing.T) {
	scope := types.Scope{BackendServices: 10, FrontendServices: 4, AIAgents: 2, GenerativeAIModules: 1, SeparateServices: 2}

	tests := []struct {
		quality  types.TeamQuality
		adjusted string
		size     int
		leads    int
	}{
		{types.QualityJunior, "40.5", 7, 2},
		{types.QualityMid, "27", 5, 2},
		{types.QualitySenior, "20.25", 4, 1},
	}

	for _, tt := range tests {
		t.Run(string(tt.quality), func(t *testing.T) {
			team := ComputeTeamAndSchedule(teamConfig(scope, 6, tt.quality))

			if !team.Effort.Adjusted.Equal(d(tt.adjusted)) {
				t.Errorf("adjusted = %s, want %s", team.Effort.Adjusted, tt.adjusted)
			}
			if team.TeamSize != tt.size {
				t.Errorf("team size = %d, want %d", team.TeamSize, tt.size)
			}
			if got := team.Headcount(types.RoleTechLead); got != tt.leads {
				t.Errorf("tech leads = %d, want %d", got, tt.leads)
			}
		})
	}
}

func TestTeamFloors(t *testing.T) {
	tests := []struct {
		quality types.TeamQuality
		total   int
	}{
		{types.QualityJunior, 9},
		{types.QualityMid, 9},
		{types.QualitySenior, 8},
	}

	for _, tt := range tests {
		team := ComputeTeamAndSchedule(teamConfig(types.Scope{}, 12, tt.quality))

		if team.TeamSize != 0 {
			t.Errorf("%s: team size = %d, want 0", tt.quality, team.TeamSize)
		}
		if team.Total != tt.total {
			t.Errorf("%s: total = %d, want %d", tt.quality, team.Total, tt.total)
		}
		if got := team.Headcount(types.RoleDevOps); got != 2 {
			t.Errorf("%s: devops = %d, want 2", tt.quality, got)
		}
		if got := team.Headcount(types.RoleProjectManager); got != pricing.ProjectManagers {
			t.Errorf("%s: project managers = %d", tt.quality, got)
		}
	}
}

func TestTeamDevOpsCeiling(t *testing.T) {
	team := ComputeTeamAndSchedule(teamConfig(types.Scope{BackendServices: 200}, 1, types.QualityMid))

	if team.TeamSize != 180 {
		t.Fatalf("team size = %d, want 180", team.TeamSize)
	}
	if got := team.Headcount(types.RoleDevOps); got != 3 {
		t.Errorf("devops = %d, want 3", got)
	}
	if got := team.Headcount(types.RoleBackend); got != 45 {
		t.Errorf("backend = %d, want 45", got)
	}
}

func TestTeamTotalMatchesRoles(t *testing.T) {
	for backend := 0; backend <= 100; backend += 7 {
		for timeline := 1; timeline <= 24; timeline += 5 {
			scope := types.Scope{BackendServices: backend, FrontendServices: backend / 3, AIAgents: backend / 10}
			team := ComputeTeamAndSchedule(teamConfig(scope, timeline, types.QualityMid))

			sum := 0
			cost := d("0")
			for _, r := range team.Roles {
				sum += r.Headcount
				cost = cost.Add(r.MonthlyCost)
			}
			if sum != team.Total {
				t.Fatalf("backend=%d timeline=%d: total %d != role sum %d", backend, timeline, team.Total, sum)
			}
			if !cost.Equal(team.MonthlySalaryCost) {
				t.Fatalf("backend=%d timeline=%d: salary %s != role sum %s", backend, timeline, team.MonthlySalaryCost, cost)
			}
		}
	}
}

func TestLongerTimelineNeverGrowsTeam(t *testing.T) {
	scope := types.Scope{BackendServices: 40, FrontendServices: 10, AIAgents: 5}

	prev := -1
	for timeline := 1; timeline <= 36; timeline++ {
		size := ComputeTeamAndSchedule(teamConfig(scope, timeline, types.QualityMid)).TeamSize
		if prev >= 0 && size > prev {
			t.Fatalf("timeline %d: team size %d grew from %d", timeline, size, prev)
		}
		prev = size
	}
}

func TestTeamIndependentOfPreset(t *testing.T) {
	scope := types.Scope{BackendServices: 12}
	project := teamConfig(scope, 3, types.QualityMid)
	architecture := project
	architecture.Preset = types.PresetArchitecture

	a := ComputeTeamAndSchedule(project)
	b := ComputeTeamAndSchedule(architecture)
	if a.Total != b.Total || !a.MonthlySalaryCost.Equal(b.MonthlySalaryCost) {
		t.Errorf("team differs by preset: %d/%s vs %d/%s", a.Total, a.MonthlySalaryCost, b.Total, b.MonthlySalaryCost)
	}
}

func TestCustomStaffing(t *testing.T) {
	staffing := pricing.DefaultStaffing()
	staffing.TestingShare = d("0")

	e := NewWithStaffing(staffing)
	team := e.ComputeTeamAndSchedule(teamConfig(types.Scope{BackendServices: 60}, 6, types.QualityMid))

	if !team.Effort.Adjusted.Equal(d("45")) {
		t.Errorf("adjusted = %s, want 45", team.Effort.Adjusted)
	}
	if team.TeamSize != 8 {
		t.Errorf("team size = %d, want 8", team.TeamSize)
	}
}
