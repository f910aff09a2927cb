// setup.go holds the construction helpers shared by the run, collect,
// and check commands: loading the effective configuration and wiring the
// collector registry.
package cli

import (
	"github.com/rs/zerolog"

	"github.com/mtik00/sysmon/internal/config"
	"github.com/mtik00/sysmon/internal/docker"
	"github.com/mtik00/sysmon/internal/metrics"
)

// loadConfig loads the layered configuration using the global --config
// flag and validates the sampling parameters.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildRegistry wires the collector set for the given configuration.
//
// The Docker stats collector is best-effort: if stats are enabled but no
// Docker socket is found, the daemon logs a warning and carries on with
// host metrics only. Requiring Docker would turn a monitoring tool into
// a dependency of the thing it monitors.
//
// The returned cleanup function closes the Docker client, if one was
// created, and must be called when sampling is done.
func buildRegistry(cfg *config.Config, logger zerolog.Logger) (*metrics.Registry, func()) {
	collectors := []metrics.Collector{
		metrics.NewMemoryCollector(),
		metrics.NewCPUCollector(),
		metrics.NewTemperatureCollector(),
		metrics.NewDiskCollector(logger, cfg.DiskUsagePaths),
	}

	cleanup := func() {}
	if cfg.Docker.Enabled {
		client, err := docker.NewClient()
		if err != nil {
			logger.Warn().Err(err).Msg("container stats enabled but Docker is unavailable; continuing without them")
		} else {
			collectors = append(collectors, docker.NewStatsCollector(logger, client))
			cleanup = func() { _ = client.Close() }
		}
	}

	return metrics.NewRegistry(logger, collectors...), cleanup
}
