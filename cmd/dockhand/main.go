// Package main is the entry point for the dockhand CLI.
//
// All functionality lives in the internal/cli package, which defines the
// cobra commands. Build-time variables (version, commit, date) are
// injected via ldflags during the release process and default to "dev",
// "none" and "unknown" during development.
package main

import (
	"github.com/mmr-tortoise/dockhand/internal/cli"
)

// version, commit and date are set at build time via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	rootCmd := cli.NewRootCommand()
	cli.Execute(rootCmd)
}
