// Package metrics implements the system metric collectors.
//
// Each subsystem (memory, CPU, disk usage, temperature sensors, optional
// Docker container stats) is a Collector that produces a flat field map.
// A Registry runs every collector in order and merges the results into a
// single model.Snapshot per sampling cycle.
//
// Collectors are isolated from each other: one failing collector logs a
// warning and contributes no fields, but never aborts the cycle. Hosts
// routinely lack some subsystem (no temperature sensors in a VM, no
// load average on Windows), and a partial snapshot is far more useful
// than none.
//
// Host readings come from github.com/shirou/gopsutil/v4, the Go
// counterpart of the psutil library.
package metrics
