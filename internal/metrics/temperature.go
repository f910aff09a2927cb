package metrics

import (
	"context"
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v4/sensors"

	"github.com/mtik00/sysmon/internal/model"
)

// TemperatureCollector samples hardware temperature sensors.
//
// Sensor readings are flattened into per-sensor fields so they fit the
// single-point-per-cycle layout:
//
//	<sensor-key>_<index>_current
//
// where <sensor-key> is the sensor name with spaces replaced by
// underscores, and <index> is the ordinal among readings that share the
// same key (multi-core packages report several readings under one key).
type TemperatureCollector struct{}

// NewTemperatureCollector creates a temperature collector.
func NewTemperatureCollector() *TemperatureCollector {
	return &TemperatureCollector{}
}

// Name identifies this collector in log output.
func (c *TemperatureCollector) Name() string {
	return "temperature"
}

// Collect returns one field per sensor reading. Hosts without any
// sensors (VMs, most containers) yield an empty field map, not an
// error: missing hardware is normal, not a failure.
func (c *TemperatureCollector) Collect(ctx context.Context) (model.Fields, error) {
	readings, err := sensors.TemperaturesWithContext(ctx)
	if err != nil {
		// gopsutil wraps per-sensor read problems in a Warnings error
		// while still returning the readings it could get. Treat that
		// as success with partial data.
		if len(readings) == 0 {
			return model.Fields{}, nil
		}
	}

	return FlattenTemperatures(readings), nil
}

// FlattenTemperatures converts sensor readings into flattened fields.
// Exported for tests; readings are plain structs so naming rules can be
// verified without real sensor hardware.
func FlattenTemperatures(readings []sensors.TemperatureStat) model.Fields {
	fields := make(model.Fields, len(readings))

	// Ordinal per sensor key, so two readings from the same sensor get
	// distinct field names instead of overwriting each other.
	indexes := make(map[string]int)

	for _, reading := range readings {
		key := strings.ReplaceAll(reading.SensorKey, " ", "_")
		name := fmt.Sprintf("%s_%d_current", key, indexes[key])
		indexes[key]++
		fields[name] = reading.Temperature
	}

	return fields
}
