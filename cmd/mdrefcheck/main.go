// Package main is the entry point for the mdrefcheck CLI.
package main

import (
	"os"

	"github.com/yaklabco/mdrefcheck/internal/cli"
	"github.com/yaklabco/mdrefcheck/internal/logging"

	// Registers the built-in rules via init().
	_ "github.com/yaklabco/mdrefcheck/pkg/lint/rules"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := cli.NewRootCommand(cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})

	err := rootCmd.Execute()
	if cli.ShouldLog(err) {
		logging.Default().Error("command failed", logging.FieldError, err)
	}

	return cli.ExitCode(err)
}
