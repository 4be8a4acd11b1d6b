// Package cmd - estimate command
package cmd

import (
	"github.com/spf13/cobra"

	"infra-estimator/core/input"
	"infra-estimator/core/output"
	"infra-estimator/core/types"
	"infra-estimator/internal/config"
	"infra-estimator/internal/logging"
)

func newEstimateCmd(root *rootOptions) *cobra.Command {
	var (
		sf      scenarioFlags
		rf      renderFlags
		team    bool
		matrix  bool
		compare bool
	)

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate monthly infrastructure cost",
		Long: `Price a configuration and print its line items.

Inputs come from flags, a scenario file, or both; flags win.

Examples:
  infra-estimator estimate --users 80
  infra-estimator estimate --users 80 --architecture microservices --currency USD
  infra-estimator estimate --preset project --disable redis,rds --format json
  infra-estimator estimate --input scenario.yaml --compare`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := sf.envelope(cmd, config.Get().Estimate.DefaultPreset)
			if err != nil {
				return err
			}
			result, err := estimate(root, env, &rf, output.Options{
				Team:    team,
				Matrix:  matrix,
				Compare: compare,
			})
			if err != nil {
				return err
			}
			return root.render(cmd, &rf, result)
		},
	}

	sf.register(cmd)
	rf.register(cmd)
	cmd.Flags().BoolVar(&team, "team", false, "include the staffing plan (always on for the project preset)")
	cmd.Flags().BoolVar(&matrix, "matrix", false, "include the scenario matrix")
	cmd.Flags().BoolVar(&compare, "compare", false, "compare monorepo and microservices")
	return cmd
}

// estimate fills the shared options and runs the engine
func estimate(root *rootOptions, env *input.Envelope, rf *renderFlags, opts output.Options) (*output.EstimationResult, error) {
	if opts.UserCounts == nil {
		opts.UserCounts = config.Get().Estimate.ScenarioUsers
	}
	opts.Notes = opts.Notes || rf.showNotes()
	opts.Version = Version
	opts.Source = env.Source.Type.String()

	logging.Debug("estimating", logging.ConfigurationFields(env.Config)...)
	result, err := output.Estimate(root.estimator(), env.Config, opts)
	if err != nil {
		return nil, err
	}
	logging.Debug("estimated", logging.BreakdownFields(result.Breakdown)...)
	if result.Team != nil {
		logging.Debug("staffed", logging.TeamFields(result.Team)...)
	}
	return result, nil
}

func newTeamCmd(root *rootOptions) *cobra.Command {
	var (
		sf scenarioFlags
		rf renderFlags
	)

	cmd := &cobra.Command{
		Use:   "team",
		Short: "Size the delivery team and schedule for a project",
		Long: `Convert the project scope into person-months and allocate roles.

Examples:
  infra-estimator team --backend 60 --frontend 0 --ai-agents 0 --genai 0 --separate 0
  infra-estimator team --quality senior --timeline 12`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := sf.envelope(cmd, types.PresetProject)
			if err != nil {
				return err
			}
			result, err := estimate(root, env, &rf, output.Options{Team: true})
			if err != nil {
				return err
			}
			return root.render(cmd, &rf, result)
		},
	}

	sf.register(cmd)
	rf.register(cmd)
	return cmd
}

func newScenariosCmd(root *rootOptions) *cobra.Command {
	var (
		sf      scenarioFlags
		rf      renderFlags
		columns []int
		compare bool
	)

	cmd := &cobra.Command{
		Use:   "scenarios",
		Short: "Evaluate a configuration across user counts",
		Long: `Evaluate the same configuration at several user counts and print
one column per count.

Examples:
  infra-estimator scenarios
  infra-estimator scenarios --columns 10,100,1000 --architecture microservices
  infra-estimator scenarios --compare --format markdown`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := sf.envelope(cmd, config.Get().Estimate.DefaultPreset)
			if err != nil {
				return err
			}
			result, err := estimate(root, env, &rf, output.Options{
				Matrix:     true,
				Compare:    compare,
				UserCounts: columns,
			})
			if err != nil {
				return err
			}
			return root.render(cmd, &rf, result)
		},
	}

	sf.register(cmd)
	rf.register(cmd)
	cmd.Flags().IntSliceVar(&columns, "columns", nil, "user counts to evaluate (default 10,20,30,40,50,100,150,200,300)")
	cmd.Flags().BoolVar(&compare, "compare", false, "compare monorepo and microservices")
	return cmd
}

func newExportCmd(root *rootOptions) *cobra.Command {
	var (
		sf scenarioFlags
		rf renderFlags
	)

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Write a full report to a file",
		Long: `Write the estimate, scenario matrix, architecture comparison and notes
to a file. The format follows the extension (.xlsx, .md, .json) unless
--format is given.

Examples:
  infra-estimator export estimate.xlsx --users 150
  infra-estimator export report.md --input scenario.hcl`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if rf.format == "" {
				format, err := formatFromPath(path)
				if err != nil {
					return err
				}
				rf.format = string(format)
			}
			rf.output = path

			env, err := sf.envelope(cmd, config.Get().Estimate.DefaultPreset)
			if err != nil {
				return err
			}
			result, err := estimate(root, env, &rf, output.Options{
				Matrix:  true,
				Compare: true,
				Notes:   true,
			})
			if err != nil {
				return err
			}
			if err := root.render(cmd, &rf, result); err != nil {
				return err
			}
			cmd.PrintErrf("Wrote %s (%s)\n", path, rf.format)
			return nil
		},
	}

	sf.register(cmd)
	cmd.Flags().StringVarP(&rf.format, "format", "f", "", "output format (json, markdown, xlsx); default from the extension")
	return cmd
}
