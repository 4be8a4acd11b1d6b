// Package main - Entry point for the infra-estimator API server
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"infra-estimator/api"
	"infra-estimator/core/engine"
	"infra-estimator/core/output"
	"infra-estimator/internal/config"
	"infra-estimator/internal/logging"
)

var version = "0.1.0"

func main() {
	cfgPath := flag.String("config", config.DefaultPath(), "Config file")
	addr := flag.String("addr", "", "Server address (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Server.Address = *addr
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
	defer logging.Sync()

	var estimator output.Estimator = engine.New()
	if cfg.Cache.Enabled {
		estimator = engine.NewMemo(engine.New(), cfg.Cache.Capacity)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := api.NewServer(api.Options{
		Version:   version,
		Server:    cfg.Server,
		Estimate:  cfg.Estimate,
		Estimator: estimator,
	})

	logging.Info("starting infra-estimator server", zap.String("version", version), zap.String("address", cfg.Server.Address))
	if err := srv.ListenAndServe(ctx); err != nil {
		logging.Error("server failed", zap.Error(err))
		stop()
		os.Exit(1)
	}
}
