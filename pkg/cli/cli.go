// Package cli provides the command-line interface for e2e-runner.
package cli

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

// Version is set at build time.
var Version = "dev"

// Execute runs the CLI.
func Execute() {
	app := &cli.App{
		Name:    "e2e-runner",
		Usage:   "Accessibility-driven end-to-end test runner for GUI applications",
		Version: Version,
		Description: `e2e-runner drives a running GUI application through its accessibility
tree and asserts on the resulting UI state.

Examples:
  e2e-runner run suite.yaml
  e2e-runner run suite.yaml --bridge-url http://127.0.0.1:8123
  e2e-runner run suite.yaml --driver fake --verbose
  e2e-runner cases`,
		Commands: []*cli.Command{
			runCommand,
			casesCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
