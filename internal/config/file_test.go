package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtik00/sysmon/internal/model"
)

// writeTempConfig writes content to a file with the given name inside a
// fresh temp directory and returns the full path.
func writeTempConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestApplyFile_YAML verifies parsing of a full YAML config file.
func TestApplyFile_YAML(t *testing.T) {
	path := writeTempConfig(t, "sysmon.yaml", `
hostname: nas-01
period_seconds: 60
disk_usage_paths:
  - /
  - /srv/media
influxdb:
  host: influx.home.lan
  port: 8086
  database: sysmon
  ssl: true
docker:
  enabled: true
`)

	cfg := Default()
	require.NoError(t, applyFile(cfg, path))

	assert.Equal(t, "nas-01", cfg.Hostname)
	assert.Equal(t, 60*time.Second, cfg.Period)
	assert.Equal(t, []string{"/", "/srv/media"}, cfg.DiskUsagePaths)
	assert.Equal(t, "influx.home.lan", cfg.Influx.Host)
	assert.Equal(t, 8086, cfg.Influx.Port)
	assert.Equal(t, "sysmon", cfg.Influx.Database)
	assert.True(t, cfg.Influx.SSL)
	assert.True(t, cfg.Docker.Enabled)
}

// TestApplyFile_JSONC verifies parsing of a JSONC config file, including
// comments and trailing commas that plain JSON would reject.
func TestApplyFile_JSONC(t *testing.T) {
	path := writeTempConfig(t, "sysmon.jsonc", `{
  // Metrics tag for this machine.
  "hostname": "backup-host",
  "periodSeconds": 15,
  "influxdb": {
    "host": "influx.home.lan",
    "port": 8086,
    "database": "sysmon", // trailing comma below is fine in JSONC
  },
}`)

	cfg := Default()
	require.NoError(t, applyFile(cfg, path))

	assert.Equal(t, "backup-host", cfg.Hostname)
	assert.Equal(t, 15*time.Second, cfg.Period)
	assert.True(t, cfg.Influx.Valid())
}

// TestApplyFile_PartialOverlay verifies that keys absent from the file do
// not clobber values from earlier layers.
func TestApplyFile_PartialOverlay(t *testing.T) {
	path := writeTempConfig(t, "sysmon.yaml", `
influxdb:
  host: influx.home.lan
`)

	cfg := Default()
	cfg.Influx.Port = 8086
	cfg.Influx.Database = "sysmon"
	cfg.Hostname = "preset"

	require.NoError(t, applyFile(cfg, path))

	assert.Equal(t, "influx.home.lan", cfg.Influx.Host)
	assert.Equal(t, 8086, cfg.Influx.Port, "port from earlier layer must survive")
	assert.Equal(t, "sysmon", cfg.Influx.Database)
	assert.Equal(t, "preset", cfg.Hostname)
	assert.Equal(t, []string{"/"}, cfg.DiskUsagePaths, "default paths must survive")
}

// TestApplyFile_BadYAML verifies that a malformed file is a config error,
// not a silent fallback to defaults.
func TestApplyFile_BadYAML(t *testing.T) {
	path := writeTempConfig(t, "sysmon.yaml", "hostname: [unclosed")

	err := applyFile(Default(), path)
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitConfigInvalid, cliErr.Code)
}

// TestApplyFile_UnknownExtension verifies rejection of unsupported
// config file formats.
func TestApplyFile_UnknownExtension(t *testing.T) {
	path := writeTempConfig(t, "sysmon.toml", `hostname = "nope"`)

	err := applyFile(Default(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported config file extension")
}

// TestResolveConfigFile_ExplicitMissing verifies that an explicitly
// requested config file must exist.
func TestResolveConfigFile_ExplicitMissing(t *testing.T) {
	_, err := resolveConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitConfigInvalid, cliErr.Code)
}

// TestResolveConfigFile_Explicit verifies that an existing explicit path
// is returned as-is.
func TestResolveConfigFile_Explicit(t *testing.T) {
	path := writeTempConfig(t, "custom.yaml", "hostname: x\n")

	resolved, err := resolveConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, resolved)
}

// TestLoad_EnvOverridesFile verifies layer precedence: the environment
// wins over the config file.
func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeTempConfig(t, "sysmon.yaml", `
hostname: from-file
period_seconds: 60
influxdb:
  host: file-host
  port: 9999
  database: filedb
`)
	t.Setenv("APP_HOSTNAME", "from-env")
	t.Setenv("INFLUXDB_HOST", "env-host")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Hostname, "env outranks file")
	assert.Equal(t, "env-host", cfg.Influx.Host, "env outranks file")
	assert.Equal(t, 9999, cfg.Influx.Port, "file value survives where env is unset")
	assert.Equal(t, 60*time.Second, cfg.Period)
}
