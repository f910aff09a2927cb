package influx

import (
	"context"
	"fmt"
	"time"

	influxclient "github.com/influxdata/influxdb1-client/v2"
	"github.com/rs/zerolog"

	"github.com/mtik00/sysmon/internal/config"
	"github.com/mtik00/sysmon/internal/model"
)

// Measurement is the InfluxDB measurement name every point is written to.
const Measurement = "sysmon"

// pingTimeout bounds the Ping call backing the check command.
const pingTimeout = 5 * time.Second

// Writer is the sink for metric snapshots.
type Writer interface {
	// WritePoint writes one snapshot as a single point.
	WritePoint(ctx context.Context, snapshot *model.Snapshot) error

	// Ping verifies the sink is reachable.
	Ping(ctx context.Context) error

	// Close releases any connections held by the writer.
	Close() error
}

// HTTPWriter writes points to an InfluxDB 1.x server over HTTP(S).
type HTTPWriter struct {
	client   influxclient.Client
	database string
}

// NewHTTPWriter creates a writer from validated connection settings.
// No network traffic happens here; the 1.x client connects lazily on
// the first write or ping.
func NewHTTPWriter(settings config.InfluxSettings) (*HTTPWriter, error) {
	c, err := influxclient.NewHTTPClient(influxclient.HTTPConfig{
		Addr:     settings.Addr(),
		Username: settings.Username,
		Password: settings.Password,
	})
	if err != nil {
		return nil, model.WrapCLIError(model.ExitInfluxUnavailable,
			fmt.Sprintf("failed to create InfluxDB client for %s", settings.Addr()), err)
	}

	return &HTTPWriter{
		client:   c,
		database: settings.Database,
	}, nil
}

// WritePoint writes the snapshot as one point in the sysmon measurement.
// Zero-valued fields are dropped first; a snapshot whose fields are all
// zero produces no write at all, because InfluxDB rejects points with
// no fields.
//
// The 1.x client API does not accept a context; cancellation is bounded
// instead by the HTTP client's own timeout handling.
func (w *HTTPWriter) WritePoint(_ context.Context, snapshot *model.Snapshot) error {
	fields := PointFields(snapshot.Fields)
	if len(fields) == 0 {
		return nil
	}

	batch, err := influxclient.NewBatchPoints(influxclient.BatchPointsConfig{
		Database:  w.database,
		Precision: "s",
	})
	if err != nil {
		return fmt.Errorf("failed to create batch: %w", err)
	}

	point, err := influxclient.NewPoint(
		Measurement,
		map[string]string{"hostname": snapshot.Hostname},
		fields,
		snapshot.TakenAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create point: %w", err)
	}
	batch.AddPoint(point)

	if err := w.client.Write(batch); err != nil {
		return model.WrapCLIError(model.ExitInfluxUnavailable, "failed to write point", err)
	}
	return nil
}

// Ping verifies the server responds within pingTimeout.
func (w *HTTPWriter) Ping(_ context.Context) error {
	if _, _, err := w.client.Ping(pingTimeout); err != nil {
		return model.WrapCLIError(model.ExitInfluxUnavailable,
			"InfluxDB server is not responding", err)
	}
	return nil
}

// Close releases the underlying HTTP client.
func (w *HTTPWriter) Close() error {
	return w.client.Close()
}

// LogWriter logs each point at debug level instead of writing it
// anywhere. It backs the --no-db flag and never performs network I/O.
type LogWriter struct {
	logger zerolog.Logger
}

// NewLogWriter creates a log-only writer.
func NewLogWriter(logger zerolog.Logger) *LogWriter {
	return &LogWriter{logger: logger}
}

// WritePoint logs the point's tag and fields in sorted order.
func (w *LogWriter) WritePoint(_ context.Context, snapshot *model.Snapshot) error {
	fields := snapshot.Fields.WithoutZeros()

	event := w.logger.Debug().
		Str("measurement", Measurement).
		Str("hostname", snapshot.Hostname).
		Time("time", snapshot.TakenAt)
	for _, name := range fields.Names() {
		event = event.Float64(name, fields[name])
	}
	event.Msg("point (not written, --no-db)")
	return nil
}

// Ping always succeeds: there is nothing to reach.
func (w *LogWriter) Ping(_ context.Context) error {
	return nil
}

// Close is a no-op.
func (w *LogWriter) Close() error {
	return nil
}

// PointFields converts a field map into the interface-typed map the
// InfluxDB client expects, dropping zero-valued fields on the way.
func PointFields(fields model.Fields) map[string]interface{} {
	filtered := fields.WithoutZeros()
	result := make(map[string]interface{}, len(filtered))
	for name, value := range filtered {
		result[name] = value
	}
	return result
}
