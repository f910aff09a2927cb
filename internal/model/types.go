// Package model defines the domain types for the sysmon CLI.
//
// All metric data is represented as flat field maps so that a snapshot can
// be written to InfluxDB as a single point: measurement "sysmon", one
// "hostname" tag, and every collected value as a field.
package model

import (
	"fmt"
	"sort"
	"time"
)

// Fields holds flattened metric values keyed by field name.
//
// Field names follow the conventions of the sysmon measurement:
//
//	memory_total, memory_used
//	cpu_count, cpu_frequency, cpu_percent, cpu_load_1, cpu_load_5, cpu_load_15
//	disk_usage_<path>_total|used|free|percent
//	<sensor-key>_<index>_current
//
// Values are float64 throughout. InfluxDB stores integers and floats in
// separate field types, and mixing them across writes causes field type
// conflicts, so we normalize everything to float at collection time.
type Fields map[string]float64

// Merge copies all fields from other into f. Colliding names are
// overwritten by other; collectors are expected to use disjoint
// field name prefixes, so collisions indicate a collector bug.
func (f Fields) Merge(other Fields) {
	for name, value := range other {
		f[name] = value
	}
}

// Names returns the field names in sorted order. Iteration over a Go map
// is randomized, so any output that should be stable (CLI tables, logged
// points, tests) goes through this method.
func (f Fields) Names() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WithoutZeros returns a copy of f with all zero-valued fields removed.
//
// A zero reading almost always means "the platform could not provide this
// value" (e.g. cpu_frequency inside a container, the first cpu_percent
// sample). Dropping the field keeps the series clean instead of recording
// a misleading zero.
func (f Fields) WithoutZeros() Fields {
	result := make(Fields, len(f))
	for name, value := range f {
		if value != 0 {
			result[name] = value
		}
	}
	return result
}

// Snapshot is one sampling cycle's worth of metrics, tagged with the
// hostname and the time the sample was taken. It is the unit of work
// handed to the InfluxDB writer.
type Snapshot struct {
	// Hostname is the value of the "hostname" tag on the written point.
	Hostname string `json:"hostname"`

	// TakenAt is the collection timestamp, used as the point's time.
	TakenAt time.Time `json:"takenAt"`

	// Fields holds all collected metric values, already flattened.
	Fields Fields `json:"fields"`
}

// ExitCode defines the process exit codes for the sysmon CLI.
// These codes allow init systems and scripts to distinguish failure
// modes without parsing log output.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitConfigInvalid indicates the effective configuration failed
	// validation (e.g. missing InfluxDB connection settings, bad period).
	ExitConfigInvalid ExitCode = 2

	// ExitInfluxUnavailable indicates the InfluxDB server could not be
	// reached or rejected the connection.
	ExitInfluxUnavailable ExitCode = 3

	// ExitCollectFailed indicates every collector failed and no usable
	// metrics were produced.
	ExitCollectFailed ExitCode = 4

	// ExitDockerNotRunning indicates container stats were requested but
	// the Docker daemon is not accessible.
	ExitDockerNotRunning ExitCode = 5
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
