package metrics

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/mtik00/sysmon/internal/model"
)

// Collector produces one subsystem's worth of flattened metric fields.
//
// Collect must honor ctx cancellation and return promptly when the
// deadline passes; the daemon bounds every sampling cycle with a
// per-cycle timeout.
type Collector interface {
	// Name identifies the collector in log output (e.g. "memory", "cpu").
	Name() string

	// Collect gathers the current readings. Returning an error means the
	// whole subsystem was unavailable this cycle; partial results should
	// be returned as fields with the problem logged by the collector.
	Collect(ctx context.Context) (model.Fields, error)
}

// Registry runs an ordered set of collectors and merges their output
// into snapshots.
type Registry struct {
	collectors []Collector
	logger     zerolog.Logger
}

// NewRegistry creates a Registry over the given collectors. Collector
// order is preserved; it only affects log output, since field names are
// disjoint across collectors.
func NewRegistry(logger zerolog.Logger, collectors ...Collector) *Registry {
	return &Registry{
		collectors: collectors,
		logger:     logger,
	}
}

// Collect runs every collector and merges the results into a Snapshot
// tagged with hostname and stamped with the current time.
//
// A failing collector is logged at warn level and skipped. Collect only
// returns an error when no collector succeeded at all, which indicates
// the host is in a state where sampling is pointless this cycle.
func (r *Registry) Collect(ctx context.Context, hostname string) (*model.Snapshot, error) {
	snapshot := &model.Snapshot{
		Hostname: hostname,
		TakenAt:  time.Now(),
		Fields:   make(model.Fields),
	}

	succeeded := 0
	for _, collector := range r.collectors {
		fields, err := collector.Collect(ctx)
		if err != nil {
			r.logger.Warn().
				Err(err).
				Str("collector", collector.Name()).
				Msg("collector failed; skipping for this cycle")
			continue
		}
		snapshot.Fields.Merge(fields)
		succeeded++
	}

	if succeeded == 0 && len(r.collectors) > 0 {
		return nil, model.NewCLIError(model.ExitCollectFailed, "all collectors failed")
	}

	return snapshot, nil
}
