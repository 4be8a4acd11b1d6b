// Package types - Estimation input
package types

// Preset selects which calculator's pricing tables apply
type Preset string

const (
	// PresetArchitecture compares monorepo and microservices deployments
	// of a fixed 20-service application. No toggles, no staffing.
	PresetArchitecture Preset = "architecture"

	// PresetProject sizes infrastructure and a delivery team from a
	// project scope, with per-service toggles.
	PresetProject Preset = "project"
)

// Input bounds. Larger values are rejected by validation and clamped by
// the engine so that count arithmetic stays far from int overflow.
const (
	MaxUserCount  = 1_000_000_000
	MaxScopeCount = 1_000_000
)

// Presets lists every supported preset
var Presets = []Preset{PresetArchitecture, PresetProject}

// Architecture is the deployment architecture
type Architecture string

const (
	ArchitectureMonorepo      Architecture = "monorepo"
	ArchitectureMicroservices Architecture = "microservices"
)

// TeamQuality is the seniority mix of the delivery team
type TeamQuality string

const (
	QualityJunior TeamQuality = "junior"
	QualityMid    TeamQuality = "mid"
	QualitySenior TeamQuality = "senior"
)

// Scope counts the deliverables of a project
type Scope struct {
	BackendServices     int `json:"backend_services"`
	FrontendServices    int `json:"frontend_services"`
	AIAgents            int `json:"ai_agents"`
	GenerativeAIModules int `json:"generative_ai_modules"`
	SeparateServices    int `json:"separate_services"`
}

// Total returns the number of deliverables across all categories
func (s Scope) Total() int {
	return s.BackendServices + s.FrontendServices + s.AIAgents + s.GenerativeAIModules + s.SeparateServices
}

// Configuration is a complete, immutable estimation input.
// It is passed by value and is comparable, so it can key a cache.
type Configuration struct {
	// Preset selects the pricing tables
	Preset Preset `json:"preset"`

	// UserCount drives nearly every line item
	UserCount int `json:"user_count"`

	// Architecture changes EC2 sizing (architecture preset only)
	Architecture Architecture `json:"architecture"`

	// Currency is used for display only
	Currency Currency `json:"currency"`

	// Scope is the project deliverable count (project preset only)
	Scope Scope `json:"scope"`

	// TeamQuality selects effort multiplier and salary row (project preset only)
	TeamQuality TeamQuality `json:"team_quality"`

	// TimelineMonths divides total effort into a team size (project preset only)
	TimelineMonths int `json:"timeline_months"`

	// EnabledServices gates line items (project preset only)
	EnabledServices ServiceSet `json:"enabled_services"`
}

// DefaultConfiguration returns the starting configuration of a preset
func DefaultConfiguration(preset Preset) Configuration {
	if preset == PresetProject {
		return Configuration{
			Preset:       PresetProject,
			UserCount:    1000,
			Architecture: ArchitectureMicroservices,
			Currency:     CurrencyUSD,
			Scope: Scope{
				BackendServices:     10,
				FrontendServices:    4,
				AIAgents:            2,
				GenerativeAIModules: 1,
				SeparateServices:    2,
			},
			TeamQuality:     QualityMid,
			TimelineMonths:  6,
			EnabledServices: AllServices(),
		}
	}

	return Configuration{
		Preset:          PresetArchitecture,
		UserCount:       10,
		Architecture:    ArchitectureMonorepo,
		Currency:        CurrencyINR,
		TeamQuality:     QualityMid,
		TimelineMonths:  1,
		EnabledServices: AllServices(),
	}
}

// Toggleable reports whether the preset honours EnabledServices
func (p Preset) Toggleable() bool {
	return p == PresetProject
}

// Valid reports whether p is a known preset
func (p Preset) Valid() bool {
	return p == PresetArchitecture || p == PresetProject
}

// Valid reports whether a is a known architecture
func (a Architecture) Valid() bool {
	return a == ArchitectureMonorepo || a == ArchitectureMicroservices
}

// Valid reports whether q is a known team quality
func (q TeamQuality) Valid() bool {
	return q == QualityJunior || q == QualityMid || q == QualitySenior
}
