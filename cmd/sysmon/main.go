// Package main is the entry point for the sysmon CLI.
//
// The binary samples host metrics and ships them to InfluxDB. All
// functionality is delegated to the internal/cli package, which defines
// the cobra commands.
package main

import (
	"github.com/mtik00/sysmon/internal/cli"
)

// version, commit, and date are set at build time via ldflags.
// During development they default to "dev", "none", and "unknown".
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
