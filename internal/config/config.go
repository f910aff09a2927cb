package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/mtik00/sysmon/internal/model"
)

// DefaultPeriod is the sampling period used when neither the environment,
// the config file, nor the --period flag specifies one.
const DefaultPeriod = 10 * time.Second

// InfluxSettings holds the InfluxDB connection parameters.
//
// The field set mirrors the INFLUXDB_* environment variables. Settings are
// considered usable when Host, Port, and Database are all present; username
// and password are optional because unauthenticated InfluxDB instances are
// common on private networks.
type InfluxSettings struct {
	// Host is the InfluxDB server hostname or IP address.
	Host string `yaml:"host" json:"host"`

	// Port is the InfluxDB HTTP API port. Zero means "not configured".
	Port int `yaml:"port" json:"port"`

	// Username authenticates the HTTP API connection. Optional.
	Username string `yaml:"username" json:"username"`

	// Password authenticates the HTTP API connection. Optional.
	Password string `yaml:"password" json:"password"`

	// Database is the target database name.
	Database string `yaml:"database" json:"database"`

	// SSL selects https for the HTTP API connection.
	SSL bool `yaml:"ssl" json:"ssl"`
}

// Valid reports whether enough settings are present to attempt a
// connection: host, port, and database name.
func (s InfluxSettings) Valid() bool {
	return s.Host != "" && s.Port != 0 && s.Database != ""
}

// Addr returns the HTTP API base URL, e.g. "http://influx.local:8086".
func (s InfluxSettings) Addr() string {
	scheme := "http"
	if s.SSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s:%d", scheme, s.Host, s.Port)
}

// String returns a loggable representation with the password redacted.
// This is what gets logged when the settings fail validation, so it must
// never leak the credential.
func (s InfluxSettings) String() string {
	password := s.Password
	if password != "" {
		password = "***"
	}
	return fmt.Sprintf("<InfluxSettings host=%s port=%d username=%s password=%s database=%s ssl=%t>",
		s.Host, s.Port, s.Username, password, s.Database, s.SSL)
}

// DockerSettings controls the optional per-container stats collector.
type DockerSettings struct {
	// Enabled turns on collection of per-container CPU and memory fields
	// via the Docker stats API. Off by default.
	Enabled bool `yaml:"enabled" json:"enabled"`
}

// Config is the effective sysmon configuration after all layers have
// been applied.
type Config struct {
	// Hostname is the value of the "hostname" tag on every written point.
	Hostname string `yaml:"hostname" json:"hostname"`

	// DiskUsagePaths lists the mount points to sample disk usage for.
	DiskUsagePaths []string `yaml:"disk_usage_paths" json:"diskUsagePaths"`

	// Period is the sampling interval.
	Period time.Duration `yaml:"-" json:"-"`

	// Influx holds the InfluxDB sink settings.
	Influx InfluxSettings `yaml:"influxdb" json:"influxdb"`

	// Docker holds the container stats collector settings.
	Docker DockerSettings `yaml:"docker" json:"docker"`
}

// envVars is the intermediate struct that envconfig populates from the
// process environment. String types are used for values that need custom
// parsing (SSL truthiness, comma-separated paths) so we control the
// conversion rather than envconfig's defaults.
type envVars struct {
	Hostname       string `envconfig:"APP_HOSTNAME"`
	DiskUsagePaths string `envconfig:"APP_DISK_USAGE_PATHS"`
	PeriodSeconds  string `envconfig:"APP_PERIOD"`

	InfluxHost     string `envconfig:"INFLUXDB_HOST"`
	InfluxPort     string `envconfig:"INFLUXDB_PORT"`
	InfluxUsername string `envconfig:"INFLUXDB_USERNAME"`
	InfluxPassword string `envconfig:"INFLUXDB_PASSWORD"`
	InfluxDatabase string `envconfig:"INFLUXDB_DBNAME"`
	InfluxSSL      string `envconfig:"INFLUXDB_SSL"`

	DockerStats string `envconfig:"APP_DOCKER_STATS"`
}

// Default returns the built-in configuration baseline: sample "/" every
// ten seconds, no InfluxDB sink configured, Docker stats off.
func Default() *Config {
	return &Config{
		DiskUsagePaths: []string{"/"},
		Period:         DefaultPeriod,
	}
}

// Load builds the effective configuration by applying every layer.
//
// configPath may be empty, in which case the default config file locations
// are searched (see FindConfigFile). A missing config file is not an
// error; a file that exists but cannot be parsed is.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	// Layer 2: config file.
	path, err := resolveConfigFile(configPath)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := applyFile(cfg, path); err != nil {
			return nil, err
		}
	}

	// Layer 3: .env file. godotenv only sets variables that are not
	// already present in the environment, so real env vars win.
	_ = godotenv.Load()

	// Layer 4: environment variables.
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	// The hostname tag must always have a value; fall back to the OS
	// hostname the same way the HOST/HOSTNAME chain would.
	if cfg.Hostname == "" {
		cfg.Hostname, _ = os.Hostname()
	}

	return cfg, nil
}

// applyEnv overlays environment variables onto cfg. Unset variables leave
// the existing values untouched.
func applyEnv(cfg *Config) error {
	var env envVars
	if err := envconfig.Process("", &env); err != nil {
		return model.WrapCLIError(model.ExitConfigInvalid, "failed to read environment", err)
	}

	// APP_HOSTNAME falls back to the HOST and HOSTNAME variables that
	// container runtimes and shells commonly set.
	hostname := env.Hostname
	if hostname == "" {
		hostname = os.Getenv("HOST")
	}
	if hostname == "" {
		hostname = os.Getenv("HOSTNAME")
	}
	if hostname != "" {
		cfg.Hostname = hostname
	}

	if env.DiskUsagePaths != "" {
		cfg.DiskUsagePaths = SplitPaths(env.DiskUsagePaths)
	}
	if env.PeriodSeconds != "" {
		seconds, err := strconv.Atoi(env.PeriodSeconds)
		if err != nil {
			return model.WrapCLIError(model.ExitConfigInvalid,
				fmt.Sprintf("APP_PERIOD %q is not a number", env.PeriodSeconds), err)
		}
		cfg.Period = time.Duration(seconds) * time.Second
	}

	if env.InfluxHost != "" {
		cfg.Influx.Host = env.InfluxHost
	}
	if env.InfluxPort != "" {
		port, err := strconv.Atoi(env.InfluxPort)
		if err != nil {
			return model.WrapCLIError(model.ExitConfigInvalid,
				fmt.Sprintf("INFLUXDB_PORT %q is not a number", env.InfluxPort), err)
		}
		cfg.Influx.Port = port
	}
	if env.InfluxUsername != "" {
		cfg.Influx.Username = env.InfluxUsername
	}
	if env.InfluxPassword != "" {
		cfg.Influx.Password = env.InfluxPassword
	}
	if env.InfluxDatabase != "" {
		cfg.Influx.Database = env.InfluxDatabase
	}
	if env.InfluxSSL != "" {
		cfg.Influx.SSL = ToBool(env.InfluxSSL)
	}
	if env.DockerStats != "" {
		cfg.Docker.Enabled = ToBool(env.DockerStats)
	}

	return nil
}

// Validate checks the parts of the configuration that every command
// depends on. InfluxDB settings are validated separately because the
// collect command and --no-db mode never touch the sink.
func (c *Config) Validate() error {
	if c.Period < time.Second {
		return model.NewCLIError(model.ExitConfigInvalid,
			fmt.Sprintf("period %s is too short; minimum is 1s", c.Period))
	}
	if len(c.DiskUsagePaths) == 0 {
		return model.NewCLIError(model.ExitConfigInvalid, "at least one disk usage path is required")
	}
	for _, path := range c.DiskUsagePaths {
		if path == "" {
			return model.NewCLIError(model.ExitConfigInvalid, "disk usage paths must not be empty")
		}
	}
	return nil
}

// SplitPaths parses the comma-separated APP_DISK_USAGE_PATHS value into a
// path list, trimming whitespace and dropping empty entries so that a
// trailing comma does not produce a bogus path.
func SplitPaths(value string) []string {
	parts := strings.Split(value, ",")
	paths := make([]string, 0, len(parts))
	for _, part := range parts {
		path := strings.TrimSpace(part)
		if path != "" {
			paths = append(paths, path)
		}
	}
	return paths
}

// ToBool interprets the truthy strings accepted for INFLUXDB_SSL and
// APP_DOCKER_STATS: "1", "y", and "yes", case-insensitive. Everything
// else (including "true") is false, matching the documented contract.
func ToBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "y", "yes":
		return true
	default:
		return false
	}
}
