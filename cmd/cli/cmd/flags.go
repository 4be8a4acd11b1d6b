package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"infra-estimator/core/input"
	"infra-estimator/core/output"
	"infra-estimator/core/types"
	"infra-estimator/internal/config"
	"infra-estimator/internal/errors"
)

// scenarioFlags describe a configuration on the command line. Flags
// override the values of --input, which override the preset defaults.
type scenarioFlags struct {
	file         string
	preset       string
	users        int
	architecture string
	currency     string
	quality      string
	timeline     int

	backend  int
	frontend int
	aiAgents int
	genAI    int
	separate int

	services []string
	disable  []string
}

func (f *scenarioFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.file, "input", "i", "", "scenario file (.hcl, .json, .yaml)")
	fs.StringVarP(&f.preset, "preset", "p", "", "pricing preset (architecture, project)")
	fs.IntVarP(&f.users, "users", "u", 0, "number of users")
	fs.StringVarP(&f.architecture, "architecture", "a", "", "deployment architecture (monorepo, microservices)")
	fs.StringVarP(&f.currency, "currency", "c", "", "display currency (USD, INR)")
	fs.StringVar(&f.quality, "quality", "", "team quality (junior, mid, senior)")
	fs.IntVar(&f.timeline, "timeline", 0, "project timeline in months")

	fs.IntVar(&f.backend, "backend", 0, "backend services in scope")
	fs.IntVar(&f.frontend, "frontend", 0, "frontend services in scope")
	fs.IntVar(&f.aiAgents, "ai-agents", 0, "AI agents in scope")
	fs.IntVar(&f.genAI, "genai", 0, "generative AI modules in scope")
	fs.IntVar(&f.separate, "separate", 0, "separate services in scope")

	fs.StringSliceVar(&f.services, "services", nil, "enabled services, e.g. ec2,s3,vpc,rds (project preset)")
	fs.StringSliceVar(&f.disable, "disable", nil, "services to disable (project preset)")
}

// envelope merges --input and the changed flags into one validated input
func (f *scenarioFlags) envelope(cmd *cobra.Command, fallback types.Preset) (*input.Envelope, error) {
	var env *input.Envelope
	doc := &input.Document{}

	if f.file != "" {
		loaded, err := input.LoadFile(f.file, fallback)
		if err != nil {
			return nil, err
		}
		env, doc = loaded, loaded.Document
	}

	fs := cmd.Flags()
	str := func(dst **string, name, v string) {
		if fs.Changed(name) {
			*dst = &v
		}
	}
	num := func(dst **int, name string, v int) {
		if fs.Changed(name) {
			*dst = &v
		}
	}

	str(&doc.Preset, "preset", f.preset)
	num(&doc.UserCount, "users", f.users)
	str(&doc.Architecture, "architecture", f.architecture)
	str(&doc.Currency, "currency", strings.ToUpper(f.currency))
	str(&doc.TeamQuality, "quality", f.quality)
	num(&doc.TimelineMonths, "timeline", f.timeline)
	if fs.Changed("services") {
		doc.Services = append([]string{}, f.services...)
	}

	for _, name := range []string{"backend", "frontend", "ai-agents", "genai", "separate"} {
		if fs.Changed(name) && doc.Scope == nil {
			doc.Scope = &input.ScopeDocument{}
		}
	}
	if doc.Scope != nil {
		num(&doc.Scope.BackendServices, "backend", f.backend)
		num(&doc.Scope.FrontendServices, "frontend", f.frontend)
		num(&doc.Scope.AIAgents, "ai-agents", f.aiAgents)
		num(&doc.Scope.GenerativeAIModules, "genai", f.genAI)
		num(&doc.Scope.SeparateServices, "separate", f.separate)
	}

	cfg, err := doc.Configuration(fallback)
	if err != nil {
		return nil, err
	}
	for _, name := range f.disable {
		svc, err := types.ParseService(name)
		if err != nil {
			return nil, errors.Wrap(errors.TypeInput, "invalid --disable", err)
		}
		cfg.EnabledServices = cfg.EnabledServices.Without(svc)
	}

	if env == nil {
		env = input.FromConfiguration(cfg)
	}
	env.Document = doc
	env.Config = cfg
	env.DefaultCurrency(config.Get().Estimate.DefaultCurrency)
	return env, nil
}

// renderFlags select the output format and destination
type renderFlags struct {
	format   string
	output   string
	formulas bool
	notes    bool
}

func (r *renderFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&r.format, "format", "f", "", "output format (cli, json, markdown, xlsx)")
	fs.StringVarP(&r.output, "output", "o", "", "write to a file instead of stdout")
	fs.BoolVar(&r.formulas, "formulas", false, "show the arithmetic behind each line item")
	fs.BoolVar(&r.notes, "notes", false, "show the informational notes")
}

func (r *renderFlags) showNotes() bool {
	return r.notes || config.Get().Output.ShowNotes
}

func (o *rootOptions) registry(r *renderFlags) *output.Registry {
	cfg := config.Get().Output
	reg := output.NewRegistry()
	reg.Register(output.NewCLIFormatter(output.CLIOptions{
		NoColor:      o.noColor || !cfg.Color || r.output != "",
		ShowFormulas: r.formulas || cfg.ShowFormulas,
		ShowNotes:    r.showNotes(),
	}))
	reg.Register(output.NewJSONFormatter(true))
	reg.Register(output.NewMarkdownFormatter())
	reg.Register(output.NewXLSXFormatter())
	return reg
}

// render writes result in the chosen format to stdout or --output
func (o *rootOptions) render(cmd *cobra.Command, r *renderFlags, result *output.EstimationResult) error {
	format := output.Format(r.format)
	if format == "" {
		format = output.Format(config.Get().Output.DefaultFormat)
	}
	if format == "" {
		format = output.FormatCLI
	}

	formatter, err := o.registry(r).Get(format)
	if err != nil {
		return err
	}

	if r.output == "" {
		if format == output.FormatXLSX {
			return errors.New(errors.TypeInput, "xlsx output requires --output")
		}
		return formatter.Render(cmd.OutOrStdout(), result)
	}

	return writeFile(r.output, func(f *os.File) error {
		return formatter.Render(f, result)
	})
}

func writeFile(path string, write func(*os.File) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Export("create "+dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Export("create "+path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Export("close "+path, err)
	}
	return nil
}

// formatFromPath maps an export file extension to a format
func formatFromPath(path string) (output.Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return output.FormatXLSX, nil
	case ".md", ".markdown":
		return output.FormatMarkdown, nil
	case ".json":
		return output.FormatJSON, nil
	default:
		return "", errors.NotSupported("export file type " + filepath.Ext(path))
	}
}
