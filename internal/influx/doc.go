// Package influx implements the InfluxDB sink for metric snapshots.
//
// Every sampling cycle becomes exactly one point: measurement "sysmon",
// a single "hostname" tag, and all collected metrics as fields. The
// point is written over the InfluxDB 1.x HTTP API via
// github.com/influxdata/influxdb1-client.
//
// The Writer interface has two implementations: HTTPWriter talks to a
// real server, and LogWriter (used by --no-db) logs each point instead
// of dialing out, which is the debugging mode for new deployments.
package influx
