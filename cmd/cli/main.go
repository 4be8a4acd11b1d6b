// Package main is the entry point for the infra-estimator CLI.
package main

import (
	"os"

	"infra-estimator/cmd/cli/cmd"
	"infra-estimator/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.ExitCode(err))
	}
}
