// file.go implements the optional config file layer.
//
// Two formats are supported, selected by file extension:
//   - YAML (.yaml / .yml), parsed with gopkg.in/yaml.v3
//   - JSONC (.json / .jsonc), comments stripped with github.com/tidwall/jsonc
//     before parsing with the standard encoding/json library
//
// The file is an overlay, not a full document: only the keys present in
// the file override the defaults, and later layers (environment, flags)
// override the file in turn.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/mtik00/sysmon/internal/model"
)

// fileConfig is the on-disk config file schema. It differs from Config in
// one place: the period is expressed in whole seconds, matching the
// --period flag and APP_PERIOD variable, rather than as a Go duration.
//
// Section pointers distinguish "section absent" from "section present
// with zero values", so a file that only sets the hostname does not
// clobber InfluxDB settings from another layer.
type fileConfig struct {
	Hostname       string          `yaml:"hostname" json:"hostname"`
	PeriodSeconds  int             `yaml:"period_seconds" json:"periodSeconds"`
	DiskUsagePaths []string        `yaml:"disk_usage_paths" json:"diskUsagePaths"`
	Influx         *InfluxSettings `yaml:"influxdb" json:"influxdb"`
	Docker         *DockerSettings `yaml:"docker" json:"docker"`
}

// defaultConfigFiles lists the locations searched when --config is not
// given, in priority order. The working directory is checked first so a
// per-deployment file sits next to the unit file or compose project that
// starts the daemon.
func defaultConfigFiles() []string {
	paths := []string{
		"sysmon.yaml",
		"sysmon.yml",
		"sysmon.jsonc",
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "sysmon", "sysmon.yaml"))
	}
	return paths
}

// resolveConfigFile decides which config file to load. An explicit path
// must exist; the default search locations are all optional.
func resolveConfigFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", model.WrapCLIError(model.ExitConfigInvalid,
				fmt.Sprintf("config file %q not found", explicit), err)
		}
		return explicit, nil
	}
	return FindConfigFile(), nil
}

// FindConfigFile returns the first existing default config file, or the
// empty string when none is present.
func FindConfigFile() string {
	for _, path := range defaultConfigFiles() {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// applyFile parses the config file at path and overlays its settings
// onto cfg.
func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.WrapCLIError(model.ExitConfigInvalid,
			fmt.Sprintf("failed to read config file %q", path), err)
	}

	var fc fileConfig
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return model.WrapCLIError(model.ExitConfigInvalid,
				fmt.Sprintf("failed to parse YAML config %q", path), err)
		}
	case ".json", ".jsonc":
		// jsonc.ToJSON strips comments and trailing commas, producing
		// plain JSON for the standard library parser.
		if err := json.Unmarshal(jsonc.ToJSON(data), &fc); err != nil {
			return model.WrapCLIError(model.ExitConfigInvalid,
				fmt.Sprintf("failed to parse JSONC config %q", path), err)
		}
	default:
		return model.NewCLIError(model.ExitConfigInvalid,
			fmt.Sprintf("unsupported config file extension %q (use .yaml, .yml, .json, or .jsonc)", ext))
	}

	overlayFile(cfg, &fc)
	return nil
}

// overlayFile copies the keys present in fc onto cfg. Zero values within
// a present InfluxDB section are skipped field by field, so a file can
// set just the host and database while the port comes from the
// environment.
func overlayFile(cfg *Config, fc *fileConfig) {
	if fc.Hostname != "" {
		cfg.Hostname = fc.Hostname
	}
	if fc.PeriodSeconds > 0 {
		cfg.Period = time.Duration(fc.PeriodSeconds) * time.Second
	}
	if len(fc.DiskUsagePaths) > 0 {
		cfg.DiskUsagePaths = fc.DiskUsagePaths
	}

	if fc.Influx != nil {
		if fc.Influx.Host != "" {
			cfg.Influx.Host = fc.Influx.Host
		}
		if fc.Influx.Port != 0 {
			cfg.Influx.Port = fc.Influx.Port
		}
		if fc.Influx.Username != "" {
			cfg.Influx.Username = fc.Influx.Username
		}
		if fc.Influx.Password != "" {
			cfg.Influx.Password = fc.Influx.Password
		}
		if fc.Influx.Database != "" {
			cfg.Influx.Database = fc.Influx.Database
		}
		if fc.Influx.SSL {
			cfg.Influx.SSL = true
		}
	}

	if fc.Docker != nil && fc.Docker.Enabled {
		cfg.Docker.Enabled = true
	}
}
