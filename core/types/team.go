// Package types - Team and schedule types
package types

import "github.com/shopspring/decimal"

// Role is a delivery team role
type Role string

const (
	RoleBackend        Role = "backend_developer"
	RoleFrontend       Role = "frontend_developer"
	RoleAI             Role = "ai_engineer"
	RoleDevOps         Role = "devops_engineer"
	RoleQA             Role = "qa_engineer"
	RoleTechLead       Role = "tech_lead"
	RoleProjectManager Role = "project_manager"
)

// Roles lists every role in display order
var Roles = []Role{
	RoleBackend,
	RoleFrontend,
	RoleAI,
	RoleDevOps,
	RoleQA,
	RoleTechLead,
	RoleProjectManager,
}

// Label returns a human-readable role name
func (r Role) Label() string {
	switch r {
	case RoleBackend:
		return "Backend Developers"
	case RoleFrontend:
		return "Frontend Developers"
	case RoleAI:
		return "AI Engineers"
	case RoleDevOps:
		return "DevOps Engineers"
	case RoleQA:
		return "QA Engineers"
	case RoleTechLead:
		return "Tech Leads"
	case RoleProjectManager:
		return "Project Managers"
	default:
		return string(r)
	}
}

// Effort is the person-month effort per scope category
type Effort struct {
	Backend      decimal.Decimal `json:"backend"`
	Frontend     decimal.Decimal `json:"frontend"`
	AIAgents     decimal.Decimal `json:"ai_agents"`
	GenerativeAI decimal.Decimal `json:"generative_ai"`
	Separate     decimal.Decimal `json:"separate"`

	// Development is the sum of the categories above
	Development decimal.Decimal `json:"development"`

	// Testing is a fixed share of Development
	Testing decimal.Decimal `json:"testing"`

	// Total is Development plus Testing
	Total decimal.Decimal `json:"total"`

	// Multiplier is the team quality multiplier
	Multiplier decimal.Decimal `json:"multiplier"`

	// Adjusted is Total times Multiplier
	Adjusted decimal.Decimal `json:"adjusted"`
}

// RoleAllocation is the headcount and cost of one role
type RoleAllocation struct {
	Role          Role            `json:"role"`
	Headcount     int             `json:"headcount"`
	MonthlySalary decimal.Decimal `json:"monthly_salary"`
	MonthlyCost   decimal.Decimal `json:"monthly_cost"`
}

// TeamBreakdown is the staffing plan of a project configuration
type TeamBreakdown struct {
	// Quality is the team seniority mix
	Quality TeamQuality `json:"quality"`

	// TimelineMonths is the planned project duration
	TimelineMonths int `json:"timeline_months"`

	// Effort is the person-month breakdown
	Effort Effort `json:"effort"`

	// TeamSize is ceil(adjusted effort / timeline) before role floors
	TeamSize int `json:"team_size"`

	// Roles are the role allocations in display order
	Roles []RoleAllocation `json:"roles"`

	// Total is the headcount across all roles
	Total int `json:"total"`

	// MonthlySalaryCost is the team's monthly payroll in USD
	MonthlySalaryCost decimal.Decimal `json:"monthly_salary_cost"`

	// ProjectSalaryCost is payroll over the whole timeline in USD
	ProjectSalaryCost decimal.Decimal `json:"project_salary_cost"`

	// Adjustments lists input corrections applied before sizing
	Adjustments []string `json:"adjustments,omitempty"`
}

// Headcount returns the headcount of role
func (t *TeamBreakdown) Headcount(role Role) int {
	for _, r := range t.Roles {
		if r.Role == role {
			return r.Headcount
		}
	}
	return 0
}
