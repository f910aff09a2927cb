package metrics

import (
	"context"

	"github.com/shirou/gopsutil/v4/mem"

	"github.com/mtik00/sysmon/internal/model"
)

// MemoryCollector samples virtual memory usage.
//
// Only total and used are reported. "Available" and the various cache
// accounting fields vary too much across platforms to chart consistently,
// and used/total is what the dashboards actually graph.
type MemoryCollector struct{}

// NewMemoryCollector creates a memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Name identifies this collector in log output.
func (c *MemoryCollector) Name() string {
	return "memory"
}

// Collect returns the memory_total and memory_used fields, in bytes.
func (c *MemoryCollector) Collect(ctx context.Context) (model.Fields, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, err
	}

	return model.Fields{
		"memory_total": float64(vm.Total),
		"memory_used":  float64(vm.Used),
	}, nil
}
