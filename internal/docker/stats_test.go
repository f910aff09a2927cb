package docker

import (
	"testing"

	"github.com/docker/docker/api/types/container"
	"github.com/stretchr/testify/assert"
)

// statsSample builds a StatsResponse with the given cumulative CPU
// samples and online CPU count.
func statsSample(preCPU, curCPU, preSystem, curSystem uint64, onlineCPUs uint32) *container.StatsResponse {
	stats := &container.StatsResponse{}
	stats.PreCPUStats.CPUUsage.TotalUsage = preCPU
	stats.CPUStats.CPUUsage.TotalUsage = curCPU
	stats.PreCPUStats.SystemUsage = preSystem
	stats.CPUStats.SystemUsage = curSystem
	stats.CPUStats.OnlineCPUs = onlineCPUs
	return stats
}

// TestCPUPercent verifies the docker CLI formula: container delta over
// system delta, scaled by online CPUs.
func TestCPUPercent(t *testing.T) {
	// Container consumed 50 of 1000 system units across 2 CPUs → 10%.
	stats := statsSample(100, 150, 1000, 2000, 2)
	assert.InDelta(t, 10.0, CPUPercent(stats), 0.001)
}

// TestCPUPercent_NoDelta verifies the guard against the first sample
// after container start, where the previous sample is zeroed and the
// deltas are meaningless.
func TestCPUPercent_NoDelta(t *testing.T) {
	assert.Equal(t, 0.0, CPUPercent(statsSample(100, 100, 1000, 1000, 2)), "zero deltas")
	assert.Equal(t, 0.0, CPUPercent(statsSample(200, 100, 2000, 1000, 2)), "negative deltas")
}

// TestCPUPercent_PercpuFallback verifies the cgroup v1 fallback: when
// OnlineCPUs is zero, the per-CPU usage list length is used instead.
func TestCPUPercent_PercpuFallback(t *testing.T) {
	stats := statsSample(0, 500, 0, 10000, 0)
	stats.CPUStats.CPUUsage.PercpuUsage = []uint64{1, 2, 3, 4}

	assert.InDelta(t, 20.0, CPUPercent(stats), 0.001)
}

// TestCPUPercent_NoCPUInfo verifies that a sample with no CPU count at
// all yields zero rather than NaN.
func TestCPUPercent_NoCPUInfo(t *testing.T) {
	assert.Equal(t, 0.0, CPUPercent(statsSample(0, 500, 0, 10000, 0)))
}

// TestMemoryUsed verifies the cache-excluding memory calculation for
// both cgroup versions.
func TestMemoryUsed(t *testing.T) {
	v1 := &container.StatsResponse{}
	v1.MemoryStats.Usage = 1000
	v1.MemoryStats.Stats = map[string]uint64{"total_inactive_file": 300}
	assert.Equal(t, 700.0, MemoryUsed(v1), "cgroup v1 subtracts total_inactive_file")

	v2 := &container.StatsResponse{}
	v2.MemoryStats.Usage = 1000
	v2.MemoryStats.Stats = map[string]uint64{"inactive_file": 200}
	assert.Equal(t, 800.0, MemoryUsed(v2), "cgroup v2 subtracts inactive_file")

	bare := &container.StatsResponse{}
	bare.MemoryStats.Usage = 1000
	assert.Equal(t, 1000.0, MemoryUsed(bare), "no accounting keys → raw usage")
}

// TestMemoryUsed_InactiveExceedsUsage verifies the guard when the
// inactive file count exceeds usage (seen transiently during reclaim).
func TestMemoryUsed_InactiveExceedsUsage(t *testing.T) {
	stats := &container.StatsResponse{}
	stats.MemoryStats.Usage = 100
	stats.MemoryStats.Stats = map[string]uint64{"total_inactive_file": 500}

	assert.Equal(t, 100.0, MemoryUsed(stats), "must not underflow")
}

// TestContainerFields verifies field naming, including space
// sanitization.
func TestContainerFields(t *testing.T) {
	stats := statsSample(100, 150, 1000, 2000, 2)
	stats.MemoryStats.Usage = 4096

	fields := ContainerFields("web-app", stats)
	assert.InDelta(t, 10.0, fields["container_web-app_cpu_percent"], 0.001)
	assert.Equal(t, 4096.0, fields["container_web-app_mem_used"])

	spaced := ContainerFields("odd name", stats)
	assert.Contains(t, spaced, "container_odd_name_cpu_percent")
}

// TestContainerName verifies name extraction from the API summary.
func TestContainerName(t *testing.T) {
	named := container.Summary{ID: "abcdef123456789", Names: []string{"/web-app"}}
	assert.Equal(t, "web-app", containerName(named))

	unnamed := container.Summary{ID: "abcdef123456789"}
	assert.Equal(t, "abcdef123456", containerName(unnamed))
}
