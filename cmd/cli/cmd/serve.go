// Package cmd - HTTP server
package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"infra-estimator/api"
	"infra-estimator/internal/config"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the estimation API over HTTP",
		Long: `Start the HTTP API.

Endpoints:
  POST /api/v1/estimate    estimate a configuration
  POST /api/v1/team        size the delivery team
  POST /api/v1/scenarios   evaluate across user counts
  POST /api/v1/export      download xlsx, markdown or json
  GET  /api/v1/presets     list presets and their defaults
  GET  /health, /version, /metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Get()
			serverCfg := cfg.Server
			if addr != "" {
				serverCfg.Address = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := api.NewServer(api.Options{
				Version:   Version,
				Server:    serverCfg,
				Estimate:  cfg.Estimate,
				Estimator: root.estimator(),
			})
			cmd.PrintErrf("infra-estimator %s listening on %s\n", Version, serverCfg.Address)
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}
