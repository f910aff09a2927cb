// run.go implements the "sysmon run" command — the daemon loop.
//
// The loop samples immediately on startup, then on every period tick.
// Each cycle is bounded by its own timeout so one stuck collector cannot
// wedge the daemon. Write failures are logged and the loop keeps going;
// a monitoring gap is recoverable, a dead monitor is not.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mtik00/sysmon/internal/config"
	"github.com/mtik00/sysmon/internal/influx"
	"github.com/mtik00/sysmon/internal/logging"
	"github.com/mtik00/sysmon/internal/metrics"
	"github.com/mtik00/sysmon/internal/model"
)

// maxCycleTimeout caps the per-cycle deadline for long sampling periods.
// A cycle normally completes in well under a second; 30 seconds is only
// reached when a collector hangs on a dead NFS mount or similar.
const maxCycleTimeout = 30 * time.Second

// runFlags holds the flag values for the run command.
type runFlags struct {
	// periodSeconds overrides the sampling period. Zero means "use the
	// configured value".
	periodSeconds int

	// noDB disables the InfluxDB connection; points are logged at debug
	// level instead. Implies --debug.
	noDB bool

	// once collects and writes a single sample, then exits. Useful from
	// cron or for smoke-testing a deployment.
	once bool
}

// NewRunCommand creates the "run" cobra command.
func NewRunCommand() *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Sample metrics on a fixed period and write them to InfluxDB",
		Long: `Run the sampling loop: collect host metrics every period and write
them to InfluxDB as one point per cycle. The loop runs until SIGINT or
SIGTERM.

With --no-db, no database connection is made and each point is logged
instead; this implies --debug so the points are visible.

Examples:
  sysmon run
  sysmon run --period 30
  sysmon run --no-db
  sysmon run --once`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd.Context(), flags)
		},
	}

	cmd.Flags().IntVarP(&flags.periodSeconds, "period", "p", 0,
		"Period for taking measurements, in seconds (default 10)")
	cmd.Flags().BoolVarP(&flags.noDB, "no-db", "n", false,
		"Don't connect to an InfluxDB database. Will automatically set --debug.")
	cmd.Flags().BoolVar(&flags.once, "once", false,
		"Collect and write a single sample, then exit")

	return cmd
}

// runRun is the main logic function for the run command.
func runRun(ctx context.Context, flags *runFlags) error {
	// --no-db implies --debug: the whole point of the mode is seeing the
	// points that would have been written.
	if flags.noDB && !debugMode {
		logger = logging.Setup(true)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flags.periodSeconds > 0 {
		cfg.Period = time.Duration(flags.periodSeconds) * time.Second
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	writer, err := newWriter(cfg, flags.noDB)
	if err != nil {
		return err
	}
	defer func() { _ = writer.Close() }()

	registry, cleanup := buildRegistry(cfg, logger)
	defer cleanup()

	// Stop the loop on SIGINT/SIGTERM. The current cycle finishes; the
	// cancellation is observed at the top of the loop.
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info().
		Str("hostname", cfg.Hostname).
		Dur("period", cfg.Period).
		Strs("disk_paths", cfg.DiskUsagePaths).
		Bool("no_db", flags.noDB).
		Msg("sysmon starting")

	// First sample immediately; waiting a full period before the first
	// point makes restarts look like outages on the dashboard.
	if err := sampleOnce(ctx, registry, writer, cfg); err != nil {
		return err
	}
	if flags.once {
		return nil
	}

	ticker := time.NewTicker(cfg.Period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("shutting down")
			return nil
		case <-ticker.C:
			if err := sampleOnce(ctx, registry, writer, cfg); err != nil {
				return err
			}
		}
	}
}

// sampleOnce runs a single collect-and-write cycle with its own timeout.
//
// Collection failure (all collectors down) is fatal — the host is in a
// state where the daemon cannot do its job. A write failure is not: the
// error is logged and the next cycle retries with a fresh point.
func sampleOnce(ctx context.Context, registry *metrics.Registry, writer influx.Writer, cfg *config.Config) error {
	timeout := cfg.Period
	if timeout > maxCycleTimeout {
		timeout = maxCycleTimeout
	}
	cycleCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	snapshot, err := registry.Collect(cycleCtx, cfg.Hostname)
	if err != nil {
		return err
	}

	if err := writer.WritePoint(cycleCtx, snapshot); err != nil {
		logger.Error().Err(err).Msg("failed to write point; will retry next cycle")
		return nil
	}

	logger.Debug().
		Int("fields", len(snapshot.Fields)).
		Time("taken_at", snapshot.TakenAt).
		Msg("cycle complete")
	return nil
}

// newWriter selects the sink: the log-only writer for --no-db, otherwise
// a real HTTP writer over validated connection settings.
func newWriter(cfg *config.Config, noDB bool) (influx.Writer, error) {
	if noDB {
		logger.Debug().Msg("not connecting to database")
		return influx.NewLogWriter(logger), nil
	}

	if !cfg.Influx.Valid() {
		// Log the redacted settings so the operator can see which of
		// host/port/database is missing.
		logger.Error().Stringer("settings", cfg.Influx).Msg("InfluxDB connection settings are not valid")
		return nil, model.NewCLIError(model.ExitConfigInvalid,
			"InfluxDB connection settings are not valid (need host, port, and database); use --no-db to run without a database")
	}

	return influx.NewHTTPWriter(cfg.Influx)
}
