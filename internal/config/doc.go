// Package config loads and validates the sysmon configuration.
//
// Configuration is layered, later layers overriding earlier ones:
//
//  1. Built-in defaults
//  2. An optional config file (YAML or JSONC)
//  3. A .env file in the working directory, if present (godotenv)
//  4. Environment variables (APP_* and INFLUXDB_*, via envconfig)
//  5. Command-line flags, applied by the cli package
//
// The environment variable contract is the primary interface in container
// deployments: INFLUXDB_HOST/PORT/USERNAME/PASSWORD/DBNAME/SSL for the
// sink, APP_HOSTNAME / APP_DISK_USAGE_PATHS / APP_PERIOD for sampling.
package config
