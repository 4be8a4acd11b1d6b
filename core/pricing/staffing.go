package pricing

import (
	"github.com/shopspring/decimal"

	"infra-estimator/core/types"
)

// RoleShare is the fraction of the team assigned to a role, with a
// headcount floor and an optional ceiling (zero means none).
type RoleShare struct {
	Fraction decimal.Decimal
	Min      int
	Max      int
}

// Staffing holds the effort model and salary table of the project preset
type Staffing struct {
	// Person-months per deliverable
	BackendEffort      decimal.Decimal
	FrontendEffort     decimal.Decimal
	AIAgentEffort      decimal.Decimal
	GenerativeAIEffort decimal.Decimal
	SeparateEffort     decimal.Decimal

	// TestingShare is testing effort as a fraction of development effort
	TestingShare decimal.Decimal

	// QualityMultiplier scales effort: juniors need more hours, seniors fewer
	QualityMultiplier map[types.TeamQuality]decimal.Decimal

	// Shares are the fractional roles sized from team size
	Shares map[types.Role]RoleShare

	// Monthly salary in USD by quality and role
	Salaries map[types.TeamQuality]map[types.Role]decimal.Decimal
}

func salaries(backend, frontend, ai, devops, qa, lead, pm int64) map[types.Role]decimal.Decimal {
	return map[types.Role]decimal.Decimal{
		types.RoleBackend:        decimal.NewFromInt(backend),
		types.RoleFrontend:       decimal.NewFromInt(frontend),
		types.RoleAI:             decimal.NewFromInt(ai),
		types.RoleDevOps:         decimal.NewFromInt(devops),
		types.RoleQA:             decimal.NewFromInt(qa),
		types.RoleTechLead:       decimal.NewFromInt(lead),
		types.RoleProjectManager: decimal.NewFromInt(pm),
	}
}

// DefaultStaffing returns the effort model and salary table
func DefaultStaffing() Staffing {
	return Staffing{
		BackendEffort:      dec(0.75),
		FrontendEffort:     dec(1.5),
		AIAgentEffort:      decimal.NewFromInt(2),
		GenerativeAIEffort: decimal.NewFromInt(3),
		SeparateEffort:     decimal.NewFromInt(1),

		TestingShare: dec(0.2),

		QualityMultiplier: map[types.TeamQuality]decimal.Decimal{
			types.QualityJunior: dec(1.5),
			types.QualityMid:    decimal.NewFromInt(1),
			types.QualitySenior: dec(0.75),
		},

		Shares: map[types.Role]RoleShare{
			types.RoleBackend:  {Fraction: dec(0.25), Min: 1},
			types.RoleFrontend: {Fraction: dec(0.10), Min: 1},
			types.RoleAI:       {Fraction: dec(0.30), Min: 1},
			types.RoleDevOps:   {Fraction: dec(0.08), Min: 2, Max: 3},
			types.RoleQA:       {Fraction: dec(0.15), Min: 1},
		},

		Salaries: map[types.TeamQuality]map[types.Role]decimal.Decimal{
			types.QualityJunior: salaries(3000, 2800, 4000, 3200, 2200, 5000, 4000),
			types.QualityMid:    salaries(5500, 5000, 7500, 6000, 4000, 8500, 7000),
			types.QualitySenior: salaries(9000, 8500, 12000, 9500, 6500, 13000, 10000),
		},
	}
}

// TechLeads returns the tech lead headcount: seniors need one, others two
func TechLeads(quality types.TeamQuality) int {
	if quality == types.QualitySenior {
		return 1
	}
	return 2
}

// ProjectManagers is the fixed project manager headcount
const ProjectManagers = 1
