package metrics

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v4/disk"

	"github.com/mtik00/sysmon/internal/model"
)

// DiskCollector samples filesystem usage for a configured set of mount
// paths (APP_DISK_USAGE_PATHS).
type DiskCollector struct {
	paths  []string
	logger zerolog.Logger
}

// NewDiskCollector creates a disk usage collector for the given paths.
func NewDiskCollector(logger zerolog.Logger, paths []string) *DiskCollector {
	return &DiskCollector{
		paths:  paths,
		logger: logger,
	}
}

// Name identifies this collector in log output.
func (c *DiskCollector) Name() string {
	return "disk"
}

// Collect returns disk_usage_<path>_total|used|free|percent fields for
// every configured path. The path appears verbatim in the field name
// (e.g. disk_usage_/_percent), which keeps the series names stable no
// matter what order paths are configured in.
//
// A path that cannot be statted (unmounted, permissions) is logged and
// skipped; the remaining paths are still sampled. Collect only errors
// when every configured path failed.
func (c *DiskCollector) Collect(ctx context.Context) (model.Fields, error) {
	fields := make(model.Fields)
	failed := 0

	for _, path := range c.paths {
		usage, err := disk.UsageWithContext(ctx, path)
		if err != nil {
			c.logger.Warn().
				Err(err).
				Str("path", path).
				Msg("disk usage unavailable")
			failed++
			continue
		}
		fields.Merge(DiskUsageFields(path, usage.Total, usage.Used, usage.Free, usage.UsedPercent))
	}

	if failed == len(c.paths) && len(c.paths) > 0 {
		return nil, fmt.Errorf("disk usage unavailable for all %d configured paths", len(c.paths))
	}
	return fields, nil
}

// DiskUsageFields builds the four disk usage fields for a single path.
// Split out from Collect so field naming is testable without real mounts.
func DiskUsageFields(path string, total, used, free uint64, percent float64) model.Fields {
	return model.Fields{
		fmt.Sprintf("disk_usage_%s_total", path):   float64(total),
		fmt.Sprintf("disk_usage_%s_used", path):    float64(used),
		fmt.Sprintf("disk_usage_%s_free", path):    float64(free),
		fmt.Sprintf("disk_usage_%s_percent", path): percent,
	}
}
