// Package input reads estimation inputs from scenario files and request
// bodies. Every source produces a Document, which is validated and then
// merged onto the defaults of its preset.
package input

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v3"

	"infra-estimator/core/types"
	"infra-estimator/internal/errors"
)

// Format is a scenario file encoding
type Format string

const (
	FormatHCL  Format = "hcl"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the encoding from a file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return FormatHCL, nil
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.NotSupported(fmt.Sprintf("scenario file type %q", filepath.Ext(path)))
	}
}

// Document is the wire form of a Configuration. Absent fields take the
// defaults of the chosen preset.
//
//	preset       = "project"
//	user_count   = 1000
//	architecture = "microservices"
//	services     = ["ec2", "s3", "vpc", "rds"]
//
//	scope {
//	  backend_services = 10
//	}
type Document struct {
	Preset         *string        `hcl:"preset,optional" json:"preset,omitempty" yaml:"preset,omitempty" validate:"omitempty,oneof=architecture project"`
	UserCount      *int           `hcl:"user_count,optional" json:"user_count,omitempty" yaml:"user_count,omitempty" validate:"omitempty,min=0,max=1000000000"`
	Architecture   *string        `hcl:"architecture,optional" json:"architecture,omitempty" yaml:"architecture,omitempty" validate:"omitempty,oneof=monorepo microservices"`
	Currency       *string        `hcl:"currency,optional" json:"currency,omitempty" yaml:"currency,omitempty" validate:"omitempty,oneof=USD INR"`
	TeamQuality    *string        `hcl:"team_quality,optional" json:"team_quality,omitempty" yaml:"team_quality,omitempty" validate:"omitempty,oneof=junior mid senior"`
	TimelineMonths *int           `hcl:"timeline_months,optional" json:"timeline_months,omitempty" yaml:"timeline_months,omitempty" validate:"omitempty,min=1"`
	Services       []string       `hcl:"services,optional" json:"services,omitempty" yaml:"services,omitempty" validate:"omitempty,dive,service"`
	Scope          *ScopeDocument `hcl:"scope,block" json:"scope,omitempty" yaml:"scope,omitempty"`
}

// ScopeDocument is the wire form of a project scope
type ScopeDocument struct {
	BackendServices     *int `hcl:"backend_services,optional" json:"backend_services,omitempty" yaml:"backend_services,omitempty" validate:"omitempty,min=0,max=1000000"`
	FrontendServices    *int `hcl:"frontend_services,optional" json:"frontend_services,omitempty" yaml:"frontend_services,omitempty" validate:"omitempty,min=0,max=1000000"`
	AIAgents            *int `hcl:"ai_agents,optional" json:"ai_agents,omitempty" yaml:"ai_agents,omitempty" validate:"omitempty,min=0,max=1000000"`
	GenerativeAIModules *int `hcl:"generative_ai_modules,optional" json:"generative_ai_modules,omitempty" yaml:"generative_ai_modules,omitempty" validate:"omitempty,min=0,max=1000000"`
	SeparateServices    *int `hcl:"separate_services,optional" json:"separate_services,omitempty" yaml:"separate_services,omitempty" validate:"omitempty,min=0,max=1000000"`
}

var defaultValidator = NewValidator()

// Decode parses data in the given format. filename only labels diagnostics.
// Unknown fields are rejected in every format.
func Decode(data []byte, format Format, filename string) (*Document, error) {
	doc := &Document{}

	switch format {
	case FormatHCL:
		f, diags := hclparse.NewParser().ParseHCL(data, filename)
		if diags.HasErrors() {
			return nil, errors.Parsing(filename, diags)
		}
		if diags := gohcl.DecodeBody(f.Body, nil, doc); diags.HasErrors() {
			return nil, errors.Parsing(filename, diags)
		}

	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(doc); err != nil {
			return nil, errors.Parsing(filename, err)
		}

	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(doc); err != nil {
			return nil, errors.Parsing(filename, err)
		}

	default:
		return nil, errors.NotSupported(fmt.Sprintf("scenario format %q", format))
	}

	return doc, nil
}

// Validate checks field ranges and enum values
func (d *Document) Validate() error {
	if err := defaultValidator.Struct(d); err != nil {
		return err
	}
	return nil
}

// Configuration merges the document onto the defaults of its preset,
// or of fallback when the document names none. A nil services list
// keeps every service enabled; an empty one enables only the required set.
func (d *Document) Configuration(fallback types.Preset) (types.Configuration, error) {
	if err := d.Validate(); err != nil {
		return types.Configuration{}, err
	}

	preset := fallback
	if d.Preset != nil {
		preset = types.Preset(*d.Preset)
	}
	cfg := types.DefaultConfiguration(preset)

	if d.UserCount != nil {
		cfg.UserCount = *d.UserCount
	}
	if d.Architecture != nil {
		cfg.Architecture = types.Architecture(*d.Architecture)
	}
	if d.Currency != nil {
		cfg.Currency = types.Currency(*d.Currency)
	}
	if d.TeamQuality != nil {
		cfg.TeamQuality = types.TeamQuality(*d.TeamQuality)
	}
	if d.TimelineMonths != nil {
		cfg.TimelineMonths = *d.TimelineMonths
	}
	if d.Services != nil {
		set, err := types.ParseServiceSet(d.Services)
		if err != nil {
			return types.Configuration{}, errors.Wrap(errors.TypeInput, "invalid services", err)
		}
		cfg.EnabledServices = set
	}
	if s := d.Scope; s != nil {
		setInt(&cfg.Scope.BackendServices, s.BackendServices)
		setInt(&cfg.Scope.FrontendServices, s.FrontendServices)
		setInt(&cfg.Scope.AIAgents, s.AIAgents)
		setInt(&cfg.Scope.GenerativeAIModules, s.GenerativeAIModules)
		setInt(&cfg.Scope.SeparateServices, s.SeparateServices)
	}

	return cfg, nil
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

// DocumentFrom returns a fully populated document for cfg
func DocumentFrom(cfg types.Configuration) *Document {
	str := func(s string) *string { return &s }
	num := func(n int) *int { return &n }

	services := make([]string, 0, len(types.ToggleServices))
	for _, svc := range cfg.EnabledServices.Services() {
		services = append(services, strings.ToLower(string(svc)))
	}

	return &Document{
		Preset:         str(string(cfg.Preset)),
		UserCount:      num(cfg.UserCount),
		Architecture:   str(string(cfg.Architecture)),
		Currency:       str(string(cfg.Currency)),
		TeamQuality:    str(string(cfg.TeamQuality)),
		TimelineMonths: num(cfg.TimelineMonths),
		Services:       services,
		Scope: &ScopeDocument{
			BackendServices:     num(cfg.Scope.BackendServices),
			FrontendServices:    num(cfg.Scope.FrontendServices),
			AIAgents:            num(cfg.Scope.AIAgents),
			GenerativeAIModules: num(cfg.Scope.GenerativeAIModules),
			SeparateServices:    num(cfg.Scope.SeparateServices),
		},
	}
}

// Encode writes doc in the given format. HCL output is not supported.
func Encode(doc *Document, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(doc, "", "  ")
	case FormatYAML:
		return yaml.Marshal(doc)
	default:
		return nil, errors.NotSupported(fmt.Sprintf("encoding scenario as %q", format))
	}
}
