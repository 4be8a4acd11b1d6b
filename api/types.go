// Package api - Request and response types
package api

import (
	"net/http"

	"github.com/go-chi/render"

	"infra-estimator/core/output"
	"infra-estimator/core/scenario"
	"infra-estimator/core/types"
)

// EstimateReply is the reply of POST /api/v1/estimate
type EstimateReply struct {
	RequestID string `json:"request_id,omitempty"`
	*output.EstimationResult
}

// TeamReply is the reply of POST /api/v1/team
type TeamReply struct {
	RequestID     string               `json:"request_id,omitempty"`
	Configuration types.Configuration  `json:"configuration"`
	Team          *types.TeamBreakdown `json:"team"`
	Currency      types.Currency       `json:"currency"`
	DisplayMonthly string               `json:"display_monthly"`
	DisplayTotal  string               `json:"display_project"`
	InputHash     string               `json:"input_hash"`
}

// ScenarioReply is the reply of POST /api/v1/scenarios
type ScenarioReply struct {
	RequestID   string                 `json:"request_id,omitempty"`
	Currency    types.Currency         `json:"currency"`
	Matrix      *scenario.Matrix       `json:"matrix"`
	Comparisons []*scenario.Comparison `json:"comparisons,omitempty"`
	InputHash   string                 `json:"input_hash"`
}

// PresetInfo describes one pricing preset
type PresetInfo struct {
	Name     types.Preset        `json:"name"`
	Services []types.Service     `json:"services"`
	Required []types.Service     `json:"required"`
	Defaults types.Configuration `json:"defaults"`
}

// PresetsReply is the reply of GET /api/v1/presets
type PresetsReply struct {
	Presets []PresetInfo `json:"presets"`
}

// HealthReply is the reply of GET /health
type HealthReply struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Time    string `json:"time"`
}

// VersionReply is the reply of GET /version
type VersionReply struct {
	Version    string `json:"version"`
	Engine     string `json:"engine"`
	APIVersion string `json:"api_version"`
}

// ErrorReply carries a failed request
type ErrorReply struct {
	Status    int         `json:"-"`
	RequestID string      `json:"request_id,omitempty"`
	Error     ErrorDetail `json:"error"`
}

// ErrorDetail is the error body
type ErrorDetail struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

func (e *ErrorReply) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.Status)
	return nil
}

func (EstimateReply) Render(w http.ResponseWriter, r *http.Request) error { return nil }
func (TeamReply) Render(w http.ResponseWriter, r *http.Request) error     { return nil }
func (ScenarioReply) Render(w http.ResponseWriter, r *http.Request) error { return nil }
func (PresetsReply) Render(w http.ResponseWriter, r *http.Request) error  { return nil }
func (HealthReply) Render(w http.ResponseWriter, r *http.Request) error   { return nil }
func (VersionReply) Render(w http.ResponseWriter, r *http.Request) error  { return nil }
