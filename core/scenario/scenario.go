// Package scenario evaluates a configuration across user counts and
// compares deployment architectures.
package scenario

import (
	"github.com/shopspring/decimal"

	"infra-estimator/core/diff"
	"infra-estimator/core/engine"
	"infra-estimator/core/types"
)

// DefaultUserCounts are the columns of the scenario matrix
var DefaultUserCounts = []int{10, 20, 30, 40, 50, 100, 150, 200, 300}

// Evaluator prices a configuration. *engine.Engine and *engine.Memo
// both satisfy it.
type Evaluator interface {
	ComputeInfrastructureCost(cfg types.Configuration) *types.CostBreakdown
}

// Row is one line item across every column of a matrix
type Row struct {
	Service types.Service     `json:"service"`
	Label   string            `json:"label"`
	Details []string          `json:"details"`
	Amounts []decimal.Decimal `json:"amounts"`
}

// Matrix is a configuration evaluated at several user counts with
// everything else held fixed
type Matrix struct {
	Preset       types.Preset       `json:"preset"`
	Architecture types.Architecture `json:"architecture"`
	UserCounts   []int              `json:"user_counts"`
	Rows         []Row              `json:"rows"`
	Totals       []decimal.Decimal  `json:"totals"`

	Breakdowns []*types.CostBreakdown `json:"-"`
}

// Build evaluates cfg at every user count. A nil or empty users slice
// uses DefaultUserCounts; a nil evaluator uses the default engine.
func Build(eval Evaluator, cfg types.Configuration, users []int) *Matrix {
	if eval == nil {
		eval = engine.New()
	}
	if len(users) == 0 {
		users = DefaultUserCounts
	}

	m := &Matrix{
		UserCounts: append([]int(nil), users...),
	}

	for col, n := range users {
		c := cfg
		c.UserCount = n
		b := eval.ComputeInfrastructureCost(c)

		if col == 0 {
			normalized, _ := engine.Normalize(c)
			m.Preset = normalized.Preset
			m.Architecture = normalized.Architecture
			for _, item := range b.Items {
				m.Rows = append(m.Rows, Row{
					Service: item.Service,
					Label:   item.Label,
					Details: make([]string, len(users)),
					Amounts: make([]decimal.Decimal, len(users)),
				})
			}
		}

		for i, item := range b.Items {
			m.Rows[i].Details[col] = item.Detail
			m.Rows[i].Amounts[col] = item.Amount
		}
		m.Totals = append(m.Totals, b.Total)
		m.Breakdowns = append(m.Breakdowns, b)
	}

	return m
}

// Column returns the breakdown evaluated at users, if that column exists
func (m *Matrix) Column(users int) (*types.CostBreakdown, bool) {
	for i, n := range m.UserCounts {
		if n == users {
			return m.Breakdowns[i], true
		}
	}
	return nil, false
}

// Comparison holds monthly totals for both architectures at one user count
type Comparison struct {
	UserCount      int                `json:"user_count"`
	Monorepo       decimal.Decimal    `json:"monorepo"`
	Microservices  decimal.Decimal    `json:"microservices"`
	Cheaper        types.Architecture `json:"cheaper"`
	Savings        decimal.Decimal    `json:"savings"`
	SavingsPercent decimal.Decimal    `json:"savings_percent"`

	// Diff is microservices relative to monorepo
	Diff *diff.Result `json:"diff"`
}

// CompareArchitectures prices cfg under both architectures. Savings is
// the absolute difference; SavingsPercent is relative to the dearer one.
// Ties report monorepo as cheaper.
func CompareArchitectures(eval Evaluator, cfg types.Configuration) *Comparison {
	if eval == nil {
		eval = engine.New()
	}

	mono := cfg
	mono.Architecture = types.ArchitectureMonorepo
	micro := cfg
	micro.Architecture = types.ArchitectureMicroservices

	a := eval.ComputeInfrastructureCost(mono)
	b := eval.ComputeInfrastructureCost(micro)

	cmp := &Comparison{
		UserCount:     a.UserCount,
		Monorepo:      a.Total,
		Microservices: b.Total,
		Cheaper:       types.ArchitectureMonorepo,
		Diff:          diff.Diff(a, b),
	}

	dearer := b.Total
	if b.Total.LessThan(a.Total) {
		cmp.Cheaper = types.ArchitectureMicroservices
		dearer = a.Total
	}
	cmp.Savings = a.Total.Sub(b.Total).Abs()
	if dearer.IsPositive() {
		cmp.SavingsPercent = cmp.Savings.Div(dearer).Mul(decimal.NewFromInt(100)).Round(2)
	}

	return cmp
}

// CompareAcross runs CompareArchitectures at every user count
func CompareAcross(eval Evaluator, cfg types.Configuration, users []int) []*Comparison {
	if len(users) == 0 {
		users = DefaultUserCounts
	}
	out := make([]*Comparison, 0, len(users))
	for _, n := range users {
		c := cfg
		c.UserCount = n
		out = append(out, CompareArchitectures(eval, c))
	}
	return out
}
