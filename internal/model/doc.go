// Package model defines the domain types and value objects for the
// sysmon CLI.
//
// This package contains pure data structures with no external dependencies.
// The central entity is Snapshot — one sampling cycle's worth of flattened
// metric fields — which flows from the collectors to the InfluxDB sink.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
