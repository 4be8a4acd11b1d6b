package engine

import (
	"sync"

	"infra-estimator/core/types"
)

// Memo caches engine results by configuration. Configuration is a
// comparable value, so it keys the cache directly. The cache is bounded:
// once it holds capacity entries it is cleared before the next insert.
//
// Results are cloned on the way out so callers cannot alter cached state.
type Memo struct {
	engine   *Engine
	capacity int

	mu    sync.Mutex
	costs map[types.Configuration]*types.CostBreakdown
	teams map[types.Configuration]*types.TeamBreakdown

	hits   int64
	misses int64
}

// NewMemo wraps engine with a cache of at most capacity entries per result kind
func NewMemo(engine *Engine, capacity int) *Memo {
	if engine == nil {
		engine = New()
	}
	if capacity <= 0 {
		capacity = 1024
	}
	return &Memo{
		engine:   engine,
		capacity: capacity,
		costs:    make(map[types.Configuration]*types.CostBreakdown),
		teams:    make(map[types.Configuration]*types.TeamBreakdown),
	}
}

// ComputeInfrastructureCost returns the cached breakdown of cfg, computing it once
func (m *Memo) ComputeInfrastructureCost(cfg types.Configuration) *types.CostBreakdown {
	m.mu.Lock()
	if b, ok := m.costs[cfg]; ok {
		m.hits++
		m.mu.Unlock()
		return b.Clone()
	}
	m.misses++
	m.mu.Unlock()

	b := m.engine.ComputeInfrastructureCost(cfg)

	m.mu.Lock()
	if len(m.costs) >= m.capacity {
		m.costs = make(map[types.Configuration]*types.CostBreakdown)
	}
	m.costs[cfg] = b
	m.mu.Unlock()

	return b.Clone()
}

// ComputeTeamAndSchedule returns the cached team plan of cfg, computing it once
func (m *Memo) ComputeTeamAndSchedule(cfg types.Configuration) *types.TeamBreakdown {
	m.mu.Lock()
	if t, ok := m.teams[cfg]; ok {
		m.hits++
		m.mu.Unlock()
		return cloneTeam(t)
	}
	m.misses++
	m.mu.Unlock()

	t := m.engine.ComputeTeamAndSchedule(cfg)

	m.mu.Lock()
	if len(m.teams) >= m.capacity {
		m.teams = make(map[types.Configuration]*types.TeamBreakdown)
	}
	m.teams[cfg] = t
	m.mu.Unlock()

	return cloneTeam(t)
}

// Stats returns cache hits and misses
func (m *Memo) Stats() (hits, misses int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hits, m.misses
}

func cloneTeam(t *types.TeamBreakdown) *types.TeamBreakdown {
	out := *t
	out.Roles = append([]types.RoleAllocation(nil), t.Roles...)
	out.Adjustments = append([]string(nil), t.Adjustments...)
	return &out
}
