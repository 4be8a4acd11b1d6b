// Package api - HTTP handlers
// Handlers decode the request into a Configuration and delegate to the
// engine. They contain no estimation logic.
package api

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"infra-estimator/core/input"
	"infra-estimator/core/output"
	"infra-estimator/core/pricing"
	"infra-estimator/core/scenario"
	"infra-estimator/core/types"
	"infra-estimator/internal/errors"
	"infra-estimator/internal/logging"
)

// handleEstimate handles POST /api/v1/estimate.
// Query flags matrix, compare, team and notes add optional sections.
func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	env, ok := s.decode(w, r)
	if !ok {
		return
	}

	opts, err := s.outputOptions(r, env)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	result, err := output.Estimate(s.estimator, env.Config, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.metrics.Estimated("estimate", string(result.Configuration.Preset))
	s.log.Debug("estimate", append(logging.BreakdownFields(result.Breakdown),
		zap.String("request_id", middleware.GetReqID(r.Context())))...)

	_ = render.Render(w, r, EstimateReply{
		RequestID:        middleware.GetReqID(r.Context()),
		EstimationResult: result,
	})
}

// handleTeam handles POST /api/v1/team
func (s *Server) handleTeam(w http.ResponseWriter, r *http.Request) {
	env, ok := s.decode(w, r)
	if !ok {
		return
	}

	result, err := output.Estimate(s.estimator, env.Config, output.Options{Team: true, Version: s.opts.Version})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.metrics.Estimated("team", string(result.Configuration.Preset))
	s.log.Debug("team", append(logging.TeamFields(result.Team),
		zap.String("request_id", middleware.GetReqID(r.Context())))...)

	cur := result.Currency
	_ = render.Render(w, r, TeamReply{
		RequestID:      middleware.GetReqID(r.Context()),
		Configuration:  result.Configuration,
		Team:           result.Team,
		Currency:       cur,
		DisplayMonthly: output.Money(cur, result.Team.MonthlySalaryCost),
		DisplayTotal:   output.Money(cur, result.Team.ProjectSalaryCost),
		InputHash:      result.Metadata.InputHash,
	})
}

// handleScenarios handles POST /api/v1/scenarios.
// ?users=10,50,100 picks the columns; ?compare=true adds a comparison per column.
func (s *Server) handleScenarios(w http.ResponseWriter, r *http.Request) {
	env, ok := s.decode(w, r)
	if !ok {
		return
	}

	users, err := parseUsers(r.URL.Query().Get("users"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if len(users) == 0 {
		users = s.opts.Estimate.ScenarioUsers
	}

	hash, err := output.InputHash(env.Config)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	reply := ScenarioReply{
		RequestID: middleware.GetReqID(r.Context()),
		Currency:  env.Config.Currency,
		Matrix:    scenario.Build(s.estimator, env.Config, users),
		InputHash: hash,
	}
	if flag(r, "compare") {
		reply.Comparisons = scenario.CompareAcross(s.estimator, env.Config, reply.Matrix.UserCounts)
	}
	s.metrics.Estimated("scenarios", string(reply.Matrix.Preset))

	_ = render.Render(w, r, reply)
}

// handleExport handles POST /api/v1/export?format=xlsx|markdown|json
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	env, ok := s.decode(w, r)
	if !ok {
		return
	}

	format := output.Format(r.URL.Query().Get("format"))
	if format == "" {
		format = output.FormatXLSX
	}
	if format == output.FormatCLI {
		s.writeError(w, r, errors.NotSupported("cli export over http"))
		return
	}
	formatter, err := output.DefaultRegistry().Get(format)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts, err := s.outputOptions(r, env)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Notes = true
	result, err := output.Estimate(s.estimator, env.Config, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := formatter.Render(&buf, result); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.metrics.Estimated("export", string(result.Configuration.Preset))

	name := fmt.Sprintf("estimate-%s.%s", result.Metadata.EstimateID, extension(format))
	w.Header().Set("Content-Type", contentType(format))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// handlePresets handles GET /api/v1/presets
func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	reply := PresetsReply{}
	for _, p := range types.Presets {
		tables, err := pricing.ForPreset(p)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		reply.Presets = append(reply.Presets, PresetInfo{
			Name:     p,
			Services: tables.Services,
			Required: types.RequiredServices,
			Defaults: types.DefaultConfiguration(p),
		})
	}
	_ = render.Render(w, r, reply)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = render.Render(w, r, HealthReply{
		Status:  "healthy",
		Version: s.opts.Version,
		Time:    time.Now().UTC().Format(time.RFC3339),
	})
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	_ = render.Render(w, r, VersionReply{
		Version:    s.opts.Version,
		Engine:     "infra-estimator",
		APIVersion: APIVersion,
	})
}

// decode reads the body into an envelope, writing the error reply on failure
func (s *Server) decode(w http.ResponseWriter, r *http.Request) (*input.Envelope, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.TypeInput, "read request body", err))
		return nil, false
	}
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}

	preset := s.opts.Estimate.DefaultPreset
	if p := r.URL.Query().Get("preset"); p != "" {
		preset = types.Preset(p)
	}
	if preset == "" {
		preset = types.PresetArchitecture
	}

	env, err := input.FromBytes(body, requestFormat(r), preset)
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	env.DefaultCurrency(s.opts.Estimate.DefaultCurrency)
	return env, true
}

func (s *Server) outputOptions(r *http.Request, env *input.Envelope) (output.Options, error) {
	users, err := parseUsers(r.URL.Query().Get("users"))
	if err != nil {
		return output.Options{}, err
	}
	if len(users) == 0 {
		users = s.opts.Estimate.ScenarioUsers
	}
	return output.Options{
		Team:       flag(r, "team"),
		Matrix:     flag(r, "matrix"),
		Compare:    flag(r, "compare"),
		Notes:      flag(r, "notes"),
		UserCounts: users,
		Version:    s.opts.Version,
		Source:     env.Source.Type.String(),
	}, nil
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.TypeOf(err).HTTPStatus()
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", zap.Error(err), zap.String("request_id", middleware.GetReqID(r.Context())))
	}
	_ = render.Render(w, r, &ErrorReply{
		Status:    status,
		RequestID: middleware.GetReqID(r.Context()),
		Error: ErrorDetail{
			Code:    string(errors.TypeOf(err)),
			Message: err.Error(),
			Fields:  errors.FieldsOf(err),
		},
	})
}

// requestFormat picks the body decoder from Content-Type, defaulting to JSON
func requestFormat(r *http.Request) input.Format {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch {
	case strings.Contains(mediaType, "yaml"):
		return input.FormatYAML
	case strings.Contains(mediaType, "hcl"):
		return input.FormatHCL
	default:
		return input.FormatJSON
	}
}

func parseUsers(raw string) ([]int, error) {
	if raw == "" {
		return nil, nil
	}
	var users []int
	for _, part := range strings.Split(raw, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			return nil, errors.Newf(errors.TypeInput, "invalid user count %q", part)
		}
		users = append(users, n)
	}
	return users, nil
}

func flag(r *http.Request, name string) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get(name))
	return v
}

func contentType(f output.Format) string {
	switch f {
	case output.FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case output.FormatMarkdown:
		return "text/markdown; charset=utf-8"
	default:
		return "application/json"
	}
}

func extension(f output.Format) string {
	if f == output.FormatMarkdown {
		return "md"
	}
	return string(f)
}
