// Package cli implements the cobra-based CLI commands for sysmon.
//
// Each subcommand (run, collect, check) is defined in its own file within
// this package. The root command carries the global flags (--debug,
// --json, --config) and translates CLIError values into process exit
// codes.
package cli
