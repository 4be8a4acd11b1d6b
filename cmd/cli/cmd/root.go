// Package cmd provides the CLI commands for infra-estimator.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"infra-estimator/core/engine"
	"infra-estimator/core/output"
	"infra-estimator/internal/config"
	"infra-estimator/internal/errors"
	"infra-estimator/internal/logging"
)

// Version is the tool version, overridable with -ldflags
var Version = "0.1.0"

// rootOptions holds the persistent flags shared by every command
type rootOptions struct {
	cfgFile string
	verbose bool
	noColor bool
}

// NewRootCommand builds the command tree
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "infra-estimator",
		Short: "Estimate AWS infrastructure and team costs",
		Long: `infra-estimator prices a small AWS deployment from a handful of inputs
and sizes the delivery team for a project.

Examples:
  infra-estimator estimate --users 150 --architecture microservices
  infra-estimator estimate --preset project --backend 12 --timeline 9
  infra-estimator scenarios --compare
  infra-estimator export estimate.xlsx --input scenario.hcl`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.initConfig()
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is $HOME/.infra-estimator/config.json)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(
		newEstimateCmd(opts),
		newTeamCmd(opts),
		newScenariosCmd(opts),
		newExportCmd(opts),
		newPricingCmd(opts),
		newServeCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the CLI
func Execute() error {
	err := NewRootCommand().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	logging.Sync()
	return err
}

func (o *rootOptions) configPath() string {
	if o.cfgFile != "" {
		return o.cfgFile
	}
	return config.DefaultPath()
}

func (o *rootOptions) initConfig() error {
	path := o.configPath()
	cfg, err := config.Load(path)
	if err != nil {
		return errors.Config("load "+path, err)
	}
	if o.verbose {
		cfg.Logging.Level = "debug"
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
	return nil
}

// estimator returns the engine, memoized when the cache is enabled
func (o *rootOptions) estimator() output.Estimator {
	cfg := config.Get()
	if cfg.Cache.Enabled {
		return engine.NewMemo(engine.New(), cfg.Cache.Capacity)
	}
	return engine.New()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "infra-estimator version %s\n", Version)
		},
	}
}
