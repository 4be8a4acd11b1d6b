package engine

import (
	"fmt"

	"infra-estimator/core/types"
)

// Normalize clamps a configuration into the engine's domain and reports
// every correction it made. Zero values silently take defaults; values
// that are present but out of range are corrected and reported.
//
// The returned configuration is always valid: known enums, non-negative
// counts, a timeline of at least one month, and required services enabled.
func Normalize(cfg types.Configuration) (types.Configuration, []string) {
	var adjustments []string
	note := func(format string, args ...interface{}) {
		adjustments = append(adjustments, fmt.Sprintf(format, args...))
	}

	switch {
	case cfg.Preset == "":
		cfg.Preset = types.PresetArchitecture
	case !cfg.Preset.Valid():
		note("unknown preset %q, using %q", cfg.Preset, types.PresetArchitecture)
		cfg.Preset = types.PresetArchitecture
	}

	switch {
	case cfg.UserCount < 0:
		note("user count %d clamped to 0", cfg.UserCount)
		cfg.UserCount = 0
	case cfg.UserCount > types.MaxUserCount:
		note("user count %d clamped to %d", cfg.UserCount, types.MaxUserCount)
		cfg.UserCount = types.MaxUserCount
	}

	switch {
	case cfg.Architecture == "":
		cfg.Architecture = types.ArchitectureMonorepo
	case !cfg.Architecture.Valid():
		note("unknown architecture %q, using %q", cfg.Architecture, types.ArchitectureMonorepo)
		cfg.Architecture = types.ArchitectureMonorepo
	}

	switch {
	case cfg.Currency == "":
		cfg.Currency = types.CurrencyUSD
	case !cfg.Currency.Valid():
		note("unknown currency %q, using %q", cfg.Currency, types.CurrencyUSD)
		cfg.Currency = types.CurrencyUSD
	}

	switch {
	case cfg.TeamQuality == "":
		cfg.TeamQuality = types.QualityMid
	case !cfg.TeamQuality.Valid():
		note("unknown team quality %q, using %q", cfg.TeamQuality, types.QualityMid)
		cfg.TeamQuality = types.QualityMid
	}

	switch {
	case cfg.TimelineMonths == 0:
		cfg.TimelineMonths = 1
	case cfg.TimelineMonths < 0:
		note("timeline %d months clamped to 1", cfg.TimelineMonths)
		cfg.TimelineMonths = 1
	}

	cfg.Scope = clampScope(cfg.Scope, note)

	if !cfg.Preset.Toggleable() {
		cfg.EnabledServices = types.AllServices()
	} else {
		for _, svc := range types.RequiredServices {
			if !cfg.EnabledServices.Has(svc) {
				note("%s is required and cannot be disabled", svc)
				cfg.EnabledServices = cfg.EnabledServices.With(svc)
			}
		}
	}

	return cfg, adjustments
}

func clampScope(s types.Scope, note func(string, ...interface{})) types.Scope {
	clamp := func(name string, v *int) {
		switch {
		case *v < 0:
			note("%s %d clamped to 0", name, *v)
			*v = 0
		case *v > types.MaxScopeCount:
			note("%s %d clamped to %d", name, *v, types.MaxScopeCount)
			*v = types.MaxScopeCount
		}
	}
	clamp("backend services", &s.BackendServices)
	clamp("frontend services", &s.FrontendServices)
	clamp("AI agents", &s.AIAgents)
	clamp("generative AI modules", &s.GenerativeAIModules)
	clamp("separate services", &s.SeparateServices)
	return s
}
