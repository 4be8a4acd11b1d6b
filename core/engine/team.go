package engine

import (
	"github.com/shopspring/decimal"

	"infra-estimator/core/pricing"
	"infra-estimator/core/types"
)

// ComputeTeamAndSchedule converts the project scope into person-month
// effort, spreads it over the timeline and allocates roles.
//
//	development = Σ count × effort-per-unit
//	adjusted    = (development × 1.2) × quality multiplier
//	team size   = ceil(adjusted / timeline)
//
// Fractional roles round up and are held to their floors (and DevOps to
// its ceiling), so the total never drops below the sum of role floors.
func (e *Engine) ComputeTeamAndSchedule(cfg types.Configuration) *types.TeamBreakdown {
	cfg, adjustments := Normalize(cfg)
	s := e.staffing

	effort := e.effort(cfg)

	timeline := decimal.NewFromInt(int64(cfg.TimelineMonths))
	teamSize := int(effort.Adjusted.Div(timeline).Ceil().IntPart())

	out := &types.TeamBreakdown{
		Quality:           cfg.TeamQuality,
		TimelineMonths:    cfg.TimelineMonths,
		Effort:            effort,
		TeamSize:          teamSize,
		MonthlySalaryCost: decimal.Zero,
		Adjustments:       adjustments,
	}

	salaries := s.Salaries[cfg.TeamQuality]
	for _, role := range types.Roles {
		headcount := e.headcount(role, teamSize, cfg.TeamQuality)
		salary := salaries[role]
		cost := salary.Mul(decimal.NewFromInt(int64(headcount)))

		out.Roles = append(out.Roles, types.RoleAllocation{
			Role:          role,
			Headcount:     headcount,
			MonthlySalary: salary,
			MonthlyCost:   cost,
		})
		out.Total += headcount
		out.MonthlySalaryCost = out.MonthlySalaryCost.Add(cost)
	}

	out.ProjectSalaryCost = out.MonthlySalaryCost.Mul(timeline)
	return out
}

func (e *Engine) effort(cfg types.Configuration) types.Effort {
	s := e.staffing
	count := func(n int) decimal.Decimal { return decimal.NewFromInt(int64(n)) }

	eff := types.Effort{
		Backend:      count(cfg.Scope.BackendServices).Mul(s.BackendEffort),
		Frontend:     count(cfg.Scope.FrontendServices).Mul(s.FrontendEffort),
		AIAgents:     count(cfg.Scope.AIAgents).Mul(s.AIAgentEffort),
		GenerativeAI: count(cfg.Scope.GenerativeAIModules).Mul(s.GenerativeAIEffort),
		Separate:     count(cfg.Scope.SeparateServices).Mul(s.SeparateEffort),
	}
	eff.Development = eff.Backend.Add(eff.Frontend).Add(eff.AIAgents).Add(eff.GenerativeAI).Add(eff.Separate)
	eff.Testing = eff.Development.Mul(s.TestingShare)
	eff.Total = eff.Development.Add(eff.Testing)

	multiplier, ok := s.QualityMultiplier[cfg.TeamQuality]
	if !ok {
		multiplier = decimal.NewFromInt(1)
	}
	eff.Multiplier = multiplier
	eff.Adjusted = eff.Total.Mul(multiplier)
	return eff
}

func (e *Engine) headcount(role types.Role, teamSize int, quality types.TeamQuality) int {
	switch role {
	case types.RoleTechLead:
		return pricing.TechLeads(quality)
	case types.RoleProjectManager:
		return pricing.ProjectManagers
	}

	share, ok := e.staffing.Shares[role]
	if !ok {
		return 0
	}

	n := int(share.Fraction.Mul(decimal.NewFromInt(int64(teamSize))).Ceil().IntPart())
	if n < share.Min {
		n = share.Min
	}
	if share.Max > 0 && n > share.Max {
		n = share.Max
	}
	return n
}
