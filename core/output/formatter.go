// Package output provides output formatting interfaces.
// This package produces human and machine-readable outputs.
package output

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"infra-estimator/core/determinism"
	"infra-estimator/core/engine"
	"infra-estimator/core/scenario"
	"infra-estimator/core/types"
	"infra-estimator/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatMarkdown is a markdown report
	FormatMarkdown Format = "markdown"

	// FormatXLSX is an Excel workbook
	FormatXLSX Format = "xlsx"
)

// Region is the pricing region all rates are quoted for
const Region = "us-east-1"

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render produces output for the given result
	Render(w io.Writer, result *EstimationResult) error
}

// EstimationResult contains the complete estimation output.
// Amounts are USD; Currency only selects how they are displayed.
type EstimationResult struct {
	// Configuration is the normalized input
	Configuration types.Configuration `json:"configuration"`

	// Breakdown is the itemized infrastructure cost
	Breakdown *types.CostBreakdown `json:"breakdown"`

	// Team is the staffing plan, if requested
	Team *types.TeamBreakdown `json:"team,omitempty"`

	// Matrix is the scenario matrix, if requested
	Matrix *scenario.Matrix `json:"matrix,omitempty"`

	// Comparison contrasts both architectures, if requested
	Comparison *scenario.Comparison `json:"comparison,omitempty"`

	// Currency is the display currency
	Currency types.Currency `json:"currency"`

	// DisplayTotal is the monthly total formatted in Currency
	DisplayTotal string `json:"display_total"`

	// Notes is the informational panel
	Notes []Note `json:"notes,omitempty"`

	// Metadata contains execution context
	Metadata EstimationMetadata `json:"metadata"`
}

// Note is one entry of the informational panel
type Note struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// EstimationMetadata contains execution context
type EstimationMetadata struct {
	// EstimateID is stable for identical inputs
	EstimateID string `json:"estimate_id"`

	// Timestamp is when the estimation was performed
	Timestamp string `json:"timestamp"`

	// Duration is how long the estimation took
	Duration string `json:"duration"`

	// InputHash is the SHA-256 of the normalized configuration
	InputHash string `json:"input_hash"`

	// Version is the tool version
	Version string `json:"version"`

	// Source is the input source
	Source string `json:"source,omitempty"`

	// Region is the pricing region
	Region string `json:"region"`
}

// Estimator is the engine surface the output layer needs.
// *engine.Engine and *engine.Memo both satisfy it.
type Estimator interface {
	ComputeInfrastructureCost(cfg types.Configuration) *types.CostBreakdown
	ComputeTeamAndSchedule(cfg types.Configuration) *types.TeamBreakdown
}

// Options selects the optional sections of a result
type Options struct {
	// Team forces the staffing plan; project presets always include it
	Team bool

	// Matrix adds the scenario matrix over UserCounts
	Matrix bool

	// Compare adds the architecture comparison
	Compare bool

	// UserCounts are the matrix columns; empty means the defaults
	UserCounts []int

	// Notes adds the informational panel
	Notes bool

	Version string
	Source  string
}

var estimateIDs = determinism.NewIDGenerator("estimate")

// Estimate runs the engine for cfg and assembles a result
func Estimate(est Estimator, cfg types.Configuration, opts Options) (*EstimationResult, error) {
	if est == nil {
		est = engine.New()
	}
	start := time.Now()

	normalized, _ := engine.Normalize(cfg)
	hash, err := InputHash(normalized)
	if err != nil {
		return nil, err
	}

	result := &EstimationResult{
		Configuration: normalized,
		Breakdown:     est.ComputeInfrastructureCost(cfg),
		Currency:      normalized.Currency,
	}
	result.DisplayTotal = normalized.Currency.Format(result.Breakdown.Total)

	if opts.Team || normalized.Preset == types.PresetProject {
		result.Team = est.ComputeTeamAndSchedule(cfg)
	}
	if opts.Matrix {
		result.Matrix = scenario.Build(est, normalized, opts.UserCounts)
	}
	if opts.Compare {
		result.Comparison = scenario.CompareArchitectures(est, normalized)
	}
	if opts.Notes {
		result.Notes = InfoNotes(normalized.Preset)
	}

	result.Metadata = EstimationMetadata{
		EstimateID: string(estimateIDs.Generate(hash)),
		Timestamp:  start.UTC().Format(time.RFC3339),
		Duration:   time.Since(start).String(),
		InputHash:  hash,
		Version:    opts.Version,
		Source:     opts.Source,
		Region:     Region,
	}
	return result, nil
}

// InputHash hashes a configuration. Callers normalize first so that
// equivalent inputs share a hash.
func InputHash(cfg types.Configuration) (string, error) {
	h, err := determinism.HashJSON(cfg)
	if err != nil {
		return "", errors.Internal("hash configuration", err)
	}
	return h.Hex(), nil
}

// Money formats a USD amount in the display currency
func Money(c types.Currency, usd decimal.Decimal) string {
	return c.Format(usd)
}

// Registry manages formatter registration
type Registry struct {
	formatters map[Format]Formatter
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{formatters: make(map[Format]Formatter)}
}

// DefaultRegistry holds every built-in formatter with default options
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewCLIFormatter(CLIOptions{ShowNotes: true}))
	r.Register(NewJSONFormatter(true))
	r.Register(NewMarkdownFormatter())
	r.Register(NewXLSXFormatter())
	return r
}

// Register adds or replaces a formatter
func (r *Registry) Register(f Formatter) {
	r.formatters[f.Format()] = f
}

// Get returns the formatter for format
func (r *Registry) Get(format Format) (Formatter, error) {
	f, ok := r.formatters[format]
	if !ok {
		return nil, errors.NotSupported(fmt.Sprintf("output format %q", format))
	}
	return f, nil
}

// Formats lists registered formats in sorted order
func (r *Registry) Formats() []Format {
	out := make([]Format, 0, len(r.formatters))
	for f := range r.formatters {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
