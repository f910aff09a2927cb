package metrics

import (
	"context"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/load"

	"github.com/mtik00/sysmon/internal/model"
)

// CPUCollector samples processor count, frequency, utilization, and the
// 1/5/15 minute load averages.
type CPUCollector struct{}

// NewCPUCollector creates a CPU collector.
func NewCPUCollector() *CPUCollector {
	return &CPUCollector{}
}

// Name identifies this collector in log output.
func (c *CPUCollector) Name() string {
	return "cpu"
}

// Collect returns the cpu_* fields.
//
// cpu_percent is measured since the previous Collect call (interval 0),
// so the very first sample of a process is 0 and gets dropped by the
// zero-field filter. With a 10 second default period this settles into
// accurate utilization from the second cycle on, without blocking the
// cycle the way an interval-based measurement would.
//
// Frequency and load average are best-effort: not every platform exposes
// them (containers often hide cpufreq, Windows has no loadavg). Their
// absence zeroes the field rather than failing the collector.
func (c *CPUCollector) Collect(ctx context.Context) (model.Fields, error) {
	count, err := cpu.CountsWithContext(ctx, true)
	if err != nil {
		return nil, err
	}

	fields := model.Fields{
		"cpu_count": float64(count),
	}

	if percents, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(percents) > 0 {
		fields["cpu_percent"] = percents[0]
	}

	if infos, err := cpu.InfoWithContext(ctx); err == nil && len(infos) > 0 {
		fields["cpu_frequency"] = infos[0].Mhz
	}

	if avg, err := load.AvgWithContext(ctx); err == nil {
		fields["cpu_load_1"] = avg.Load1
		fields["cpu_load_5"] = avg.Load5
		fields["cpu_load_15"] = avg.Load15
	}

	return fields, nil
}
