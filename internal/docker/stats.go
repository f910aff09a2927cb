// stats.go implements the container stats collector.
//
// Each cycle lists the running containers and takes a one-shot stats
// sample per container. The readings become fields on the regular sysmon
// point:
//
//	container_<name>_cpu_percent
//	container_<name>_mem_used
//
// CPU percent is computed the same way the docker CLI does it: the delta
// of the container's cumulative CPU time over the delta of the host's,
// scaled by the number of online CPUs.
package docker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/rs/zerolog"

	"github.com/mtik00/sysmon/internal/model"
)

// StatsCollector samples per-container CPU and memory usage. It
// implements the metrics.Collector interface.
type StatsCollector struct {
	client *Client
	logger zerolog.Logger
}

// NewStatsCollector creates a stats collector over an existing Docker
// client. The caller owns the client's lifecycle.
func NewStatsCollector(logger zerolog.Logger, client *Client) *StatsCollector {
	return &StatsCollector{
		client: client,
		logger: logger,
	}
}

// Name identifies this collector in log output.
func (c *StatsCollector) Name() string {
	return "docker"
}

// Collect lists running containers and samples each one. A container
// that disappears or fails mid-sample (it may have just exited) is
// logged and skipped; the daemon being unable to list containers at all
// is an error, which the registry downgrades to a per-cycle warning.
func (c *StatsCollector) Collect(ctx context.Context) (model.Fields, error) {
	containers, err := c.client.Inner().ContainerList(ctx, container.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list containers: %w", err)
	}

	fields := make(model.Fields)
	for _, ctr := range containers {
		stats, err := c.sampleContainer(ctx, ctr.ID)
		if err != nil {
			c.logger.Debug().
				Err(err).
				Str("container", ctr.ID[:12]).
				Msg("container stats unavailable")
			continue
		}
		fields.Merge(ContainerFields(containerName(ctr), stats))
	}

	return fields, nil
}

// sampleContainer fetches a single non-streaming stats sample. With
// stream=false the daemon delivers one JSON document with both the
// current and the previous CPU sample, which is what the percent
// calculation needs.
func (c *StatsCollector) sampleContainer(ctx context.Context, id string) (*container.StatsResponse, error) {
	resp, err := c.client.Inner().ContainerStats(ctx, id, false)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	var stats container.StatsResponse
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return nil, fmt.Errorf("failed to decode stats: %w", err)
	}
	return &stats, nil
}

// containerName extracts a display name for the container. The API
// reports names with a leading "/" that is an artifact, not part of the
// name. Falls back to the short ID for the rare unnamed container.
func containerName(ctr container.Summary) string {
	if len(ctr.Names) > 0 {
		return strings.TrimPrefix(ctr.Names[0], "/")
	}
	return ctr.ID[:12]
}

// ContainerFields builds the two per-container fields from a stats
// sample. Zero readings (e.g. CPU percent on the first sample after a
// container starts) are later dropped by the zero-field filter.
func ContainerFields(name string, stats *container.StatsResponse) model.Fields {
	// Container names may not contain spaces, but the field name must be
	// line-protocol safe regardless of where the name came from.
	name = strings.ReplaceAll(name, " ", "_")

	return model.Fields{
		fmt.Sprintf("container_%s_cpu_percent", name): CPUPercent(stats),
		fmt.Sprintf("container_%s_mem_used", name):    MemoryUsed(stats),
	}
}

// CPUPercent computes CPU utilization from the two cumulative samples in
// a stats response, matching the docker CLI's formula.
func CPUPercent(stats *container.StatsResponse) float64 {
	cpuDelta := float64(stats.CPUStats.CPUUsage.TotalUsage) - float64(stats.PreCPUStats.CPUUsage.TotalUsage)
	systemDelta := float64(stats.CPUStats.SystemUsage) - float64(stats.PreCPUStats.SystemUsage)
	if cpuDelta <= 0 || systemDelta <= 0 {
		return 0
	}

	// OnlineCPUs is zero on older daemons; the per-CPU usage list length
	// is the cgroup v1 era fallback.
	onlineCPUs := float64(stats.CPUStats.OnlineCPUs)
	if onlineCPUs == 0 {
		onlineCPUs = float64(len(stats.CPUStats.CPUUsage.PercpuUsage))
	}
	if onlineCPUs == 0 {
		return 0
	}

	return (cpuDelta / systemDelta) * onlineCPUs * 100.0
}

// MemoryUsed returns the container's memory usage in bytes, excluding
// the page cache the kernel can reclaim at any time. The inactive file
// accounting key differs between cgroup v1 (total_inactive_file) and
// v2 (inactive_file).
func MemoryUsed(stats *container.StatsResponse) float64 {
	usage := stats.MemoryStats.Usage
	if v, ok := stats.MemoryStats.Stats["total_inactive_file"]; ok && v < usage {
		return float64(usage - v)
	}
	if v, ok := stats.MemoryStats.Stats["inactive_file"]; ok && v < usage {
		return float64(usage - v)
	}
	return float64(usage)
}
