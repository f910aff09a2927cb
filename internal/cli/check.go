// check.go implements the "sysmon check" command, which verifies a
// deployment without writing anything: the configuration parses and
// validates, the InfluxDB server answers a ping, and — when container
// stats are enabled — the Docker daemon is reachable.
package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mtik00/sysmon/internal/docker"
	"github.com/mtik00/sysmon/internal/influx"
	"github.com/mtik00/sysmon/internal/model"
)

// NewCheckCommand creates the "check" cobra command.
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify the configuration and InfluxDB connectivity",
		Long: `Validate the effective configuration and ping the InfluxDB server.
When container stats are enabled, the Docker daemon is pinged as well.

Exit codes distinguish the failure: 2 for invalid configuration, 3 when
InfluxDB is unreachable, 5 when Docker is unreachable.

Examples:
  sysmon check
  sysmon check --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context())
		},
	}

	return cmd
}

// checkResult is the JSON output structure for the check command.
type checkResult struct {
	Hostname    string `json:"hostname"`
	InfluxAddr  string `json:"influxAddr"`
	Database    string `json:"database"`
	DockerStats bool   `json:"dockerStats"`
}

// runCheck is the main logic function for the check command.
func runCheck(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if !cfg.Influx.Valid() {
		logger.Error().Stringer("settings", cfg.Influx).Msg("InfluxDB connection settings are not valid")
		return model.NewCLIError(model.ExitConfigInvalid,
			"InfluxDB connection settings are not valid (need host, port, and database)")
	}

	writer, err := influx.NewHTTPWriter(cfg.Influx)
	if err != nil {
		return err
	}
	defer func() { _ = writer.Close() }()

	if err := writer.Ping(ctx); err != nil {
		return err
	}
	logger.Debug().Str("addr", cfg.Influx.Addr()).Msg("InfluxDB ping ok")

	if cfg.Docker.Enabled {
		client, err := docker.NewClient()
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()

		if err := client.Ping(ctx); err != nil {
			return err
		}
		logger.Debug().Msg("Docker ping ok")
	}

	printCheckResult(cfg.Hostname, cfg.Influx.Addr(), cfg.Influx.Database, cfg.Docker.Enabled)
	return nil
}

// printCheckResult outputs the successful check in text or JSON format.
func printCheckResult(hostname, addr, database string, dockerStats bool) {
	if IsJSONOutput() {
		result := checkResult{
			Hostname:    hostname,
			InfluxAddr:  addr,
			Database:    database,
			DockerStats: dockerStats,
		}
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Printf("Configuration OK\n")
	fmt.Printf("  hostname:  %s\n", hostname)
	fmt.Printf("  influxdb:  %s (database %q)\n", addr, database)
	if dockerStats {
		fmt.Printf("  docker:    reachable, container stats enabled\n")
	}
}
