package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infra-estimator/core/engine"
	"infra-estimator/core/types"
	"infra-estimator/internal/config"
)

func newTestServer(t *testing.T, mutate func(*Options)) *httptest.Server {
	t.Helper()
	cfg := config.Default()
	opts := Options{
		Version:   "test",
		Server:    cfg.Server,
		Estimate:  cfg.Estimate,
		Estimator: engine.NewMemo(engine.New(), 16),
	}
	if mutate != nil {
		mutate(&opts)
	}
	srv := httptest.NewServer(NewServer(opts))
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, srv *httptest.Server, path, contentType, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+path, contentType, strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func get(t *testing.T, srv *httptest.Server, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

type estimateBody struct {
	RequestID    string `json:"request_id"`
	DisplayTotal string `json:"display_total"`
	Breakdown    struct {
		Total string `json:"total"`
		Items []struct {
			Service string `json:"service"`
			Amount  string `json:"amount"`
		} `json:"items"`
	} `json:"breakdown"`
	Team     *json.RawMessage `json:"team"`
	Matrix   *json.RawMessage `json:"matrix"`
	Notes    []json.RawMessage
	Metadata struct {
		InputHash  string `json:"input_hash"`
		EstimateID string `json:"estimate_id"`
		Source     string `json:"source"`
	} `json:"metadata"`
}

type errorBody struct {
	Error ErrorDetail `json:"error"`
}

func TestEstimate(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := post(t, srv, "/api/v1/estimate", "application/json", `{"user_count": 10, "currency": "USD"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body estimateBody
	decodeBody(t, resp, &body)
	assert.Equal(t, "73.61", body.Breakdown.Total)
	assert.Equal(t, "$73.61", body.DisplayTotal)
	assert.Len(t, body.Breakdown.Items, 7)
	assert.NotEmpty(t, body.RequestID)
	assert.Len(t, body.Metadata.InputHash, 64)
	assert.Equal(t, "api", body.Metadata.Source)
	assert.Nil(t, body.Team)
}

func TestEstimateCurrencyDefaults(t *testing.T) {
	tests := []struct {
		name     string
		currency types.Currency
		body     string
		want     string
	}{
		{"preset default", "", `{"user_count": 10}`, "₹6146.44"},
		{"server default", types.CurrencyUSD, `{"user_count": 10}`, "$73.61"},
		{"request wins", types.CurrencyUSD, `{"user_count": 10, "currency": "INR"}`, "₹6146.44"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, func(o *Options) { o.Estimate.DefaultCurrency = tt.currency })

			resp := post(t, srv, "/api/v1/estimate", "application/json", tt.body)
			require.Equal(t, http.StatusOK, resp.StatusCode)

			var body estimateBody
			decodeBody(t, resp, &body)
			assert.Equal(t, tt.want, body.DisplayTotal)
		})
	}
}

func TestEstimateYAMLBody(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := post(t, srv, "/api/v1/estimate", "application/yaml", "user_count: 10\ncurrency: USD\n")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body estimateBody
	decodeBody(t, resp, &body)
	assert.Equal(t, "73.61", body.Breakdown.Total)
}

func TestEstimateOptionalSections(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := post(t, srv, "/api/v1/estimate?matrix=true&notes=true&users=10,100", "application/json", `{"user_count": 10}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Matrix struct {
			UserCounts []int    `json:"user_counts"`
			Totals     []string `json:"totals"`
		} `json:"matrix"`
		Notes []struct {
			Title string `json:"title"`
		} `json:"notes"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, []int{10, 100}, body.Matrix.UserCounts)
	assert.Equal(t, "73.61", body.Matrix.Totals[0])
	assert.NotEmpty(t, body.Notes)
}

func TestEstimateProjectPresetQuery(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := post(t, srv, "/api/v1/estimate?preset=project", "application/json", ``)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body estimateBody
	decodeBody(t, resp, &body)
	assert.Len(t, body.Breakdown.Items, 12)
	assert.NotNil(t, body.Team)
}

func TestEstimateErrors(t *testing.T) {
	srv := newTestServer(t, nil)

	tests := []struct {
		name string
		path string
		body string
		code string
	}{
		{"malformed json", "/api/v1/estimate", `{"user_count": `, "PARSING_ERROR"},
		{"unknown field", "/api/v1/estimate", `{"users": 10}`, "PARSING_ERROR"},
		{"negative users", "/api/v1/estimate", `{"user_count": -5}`, "INPUT_ERROR"},
		{"unknown preset", "/api/v1/estimate", `{"preset": "enterprise"}`, "INPUT_ERROR"},
		{"unknown service", "/api/v1/estimate", `{"preset": "project", "services": ["lambda"]}`, "INPUT_ERROR"},
		{"bad users query", "/api/v1/scenarios?users=ten", `{}`, "INPUT_ERROR"},
		{"bad matrix users on estimate", "/api/v1/estimate?matrix=true&users=abc", `{}`, "INPUT_ERROR"},
		{"bad matrix users on export", "/api/v1/export?format=json&users=-3", `{}`, "INPUT_ERROR"},
		{"user count over limit", "/api/v1/estimate", `{"user_count": 5000000000}`, "INPUT_ERROR"},
		{"cli export", "/api/v1/export?format=cli", `{}`, "NOT_SUPPORTED"},
		{"unknown export", "/api/v1/export?format=pdf", `{}`, "NOT_SUPPORTED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv, tt.path, "application/json", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var body errorBody
			decodeBody(t, resp, &body)
			assert.Equal(t, tt.code, body.Error.Code)
			assert.NotEmpty(t, body.Error.Message)
		})
	}
}

func TestErrorFields(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := post(t, srv, "/api/v1/estimate", "application/json", `{"user_count": -5, "scope": {"ai_agents": -1}}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body errorBody
	decodeBody(t, resp, &body)
	assert.ElementsMatch(t, []string{"user_count", "scope.ai_agents"}, body.Error.Fields)
}

func TestTeam(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := post(t, srv, "/api/v1/team", "application/json",
		`{"preset": "project", "team_quality": "mid", "timeline_months": 6, "scope": {"backend_services": 60, "frontend_services": 0, "ai_agents": 0, "generative_ai_modules": 0, "separate_services": 0}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Team struct {
			Total             int    `json:"total"`
			MonthlySalaryCost string `json:"monthly_salary_cost"`
		} `json:"team"`
		DisplayMonthly string `json:"display_monthly"`
		DisplayProject string `json:"display_project"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, 14, body.Team.Total)
	assert.Equal(t, "88000", body.Team.MonthlySalaryCost)
	assert.Equal(t, "$88000.00", body.DisplayMonthly)
	assert.Equal(t, "$528000.00", body.DisplayProject)
}

func TestScenarios(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := post(t, srv, "/api/v1/scenarios?users=10,50,300&compare=true", "application/json", `{}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Matrix struct {
			UserCounts []int `json:"user_counts"`
			Rows       []struct {
				Label   string   `json:"label"`
				Amounts []string `json:"amounts"`
			} `json:"rows"`
		} `json:"matrix"`
		Comparisons []struct {
			UserCount int    `json:"user_count"`
			Cheaper   string `json:"cheaper"`
		} `json:"comparisons"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, []int{10, 50, 300}, body.Matrix.UserCounts)
	require.Len(t, body.Matrix.Rows, 7)
	assert.Len(t, body.Matrix.Rows[0].Amounts, 3)
	require.Len(t, body.Comparisons, 3)
	assert.Equal(t, 300, body.Comparisons[2].UserCount)
}

func TestScenariosDefaultColumns(t *testing.T) {
	srv := newTestServer(t, func(o *Options) { o.Estimate.ScenarioUsers = []int{5, 15} })

	resp := post(t, srv, "/api/v1/scenarios", "application/json", `{}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Matrix struct {
			UserCounts []int `json:"user_counts"`
		} `json:"matrix"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, []int{5, 15}, body.Matrix.UserCounts)
}

func TestExport(t *testing.T) {
	srv := newTestServer(t, nil)

	tests := []struct {
		format      string
		contentType string
		prefix      string
	}{
		{"xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "PK"},
		{"markdown", "text/markdown; charset=utf-8", "# Infrastructure Estimate"},
		{"json", "application/json", "{"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			resp := post(t, srv, "/api/v1/export?format="+tt.format, "application/json", `{"user_count": 10}`)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.contentType, resp.Header.Get("Content-Type"))
			assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")

			data, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(string(data), tt.prefix), "body starts with %q", string(data[:min(len(data), 20)]))
		})
	}
}

func TestPresets(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := get(t, srv, "/api/v1/presets")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body PresetsReply
	decodeBody(t, resp, &body)
	require.Len(t, body.Presets, 2)
	assert.Equal(t, types.PresetArchitecture, body.Presets[0].Name)
	assert.Len(t, body.Presets[0].Services, 7)
	assert.Equal(t, types.PresetProject, body.Presets[1].Name)
	assert.Len(t, body.Presets[1].Services, 12)
	assert.Equal(t, types.RequiredServices, body.Presets[1].Required)
}

func TestHealthAndVersion(t *testing.T) {
	srv := newTestServer(t, nil)

	var health HealthReply
	resp := get(t, srv, "/health")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &health)
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "test", health.Version)

	var version VersionReply
	resp = get(t, srv, "/version")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &version)
	assert.Equal(t, APIVersion, version.APIVersion)
}

func TestMetrics(t *testing.T) {
	srv := newTestServer(t, nil)

	post(t, srv, "/api/v1/estimate", "application/json", `{"user_count": 10}`)
	post(t, srv, "/api/v1/estimate", "application/json", `{"user_count": 10}`)

	resp := get(t, srv, "/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, `estimator_estimates_total{endpoint="estimate",preset="architecture"} 2`)
	assert.Contains(t, text, "estimator_cache_hits_total 1")
	for _, name := range []string{RequestsCollectorName, LatencyCollectorName, EstimatesCollectorName} {
		assert.Contains(t, text, "# HELP "+name)
	}
}

func TestMetricsDisabled(t *testing.T) {
	srv := newTestServer(t, func(o *Options) { o.Server.MetricsEnabled = false })

	resp := get(t, srv, "/metrics")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCORS(t *testing.T) {
	srv := newTestServer(t, nil)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/v1/estimate", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestRequestID(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := get(t, srv, "/health")
	generated := resp.Header.Get("X-Request-Id")
	assert.Len(t, generated, 36)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/v1/estimate", strings.NewReader(`{}`))
	require.NoError(t, err)
	req.Header.Set("X-Request-Id", "caller-42")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "caller-42", resp.Header.Get("X-Request-Id"))
	var body estimateBody
	decodeBody(t, resp, &body)
	assert.Equal(t, "caller-42", body.RequestID)
}
