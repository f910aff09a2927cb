// collect.go implements the "sysmon collect" command — a one-shot sample
// printed to stdout. It never touches InfluxDB, which makes it the quick
// way to see what a host would report before wiring up a database.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/mtik00/sysmon/internal/model"
)

// collectTimeout bounds the one-shot sample; it matches the daemon's
// per-cycle cap.
const collectTimeout = 30 * time.Second

// NewCollectCommand creates the "collect" cobra command.
func NewCollectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Take a single sample and print it",
		Long: `Collect one sample of all metrics and print the fields to stdout,
as an aligned table or as JSON with --json. No database connection is
made.

Zero-valued fields are shown here even though the daemon would drop
them from the written point, so missing subsystems are visible.

Examples:
  sysmon collect
  sysmon collect --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runCollect(cmd.Context())
		},
	}

	return cmd
}

// runCollect is the main logic function for the collect command.
func runCollect(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	registry, cleanup := buildRegistry(cfg, logger)
	defer cleanup()

	collectCtx, cancel := context.WithTimeout(ctx, collectTimeout)
	defer cancel()

	snapshot, err := registry.Collect(collectCtx, cfg.Hostname)
	if err != nil {
		return err
	}

	printSnapshot(snapshot)
	return nil
}

// printSnapshot outputs the snapshot in text or JSON format based on the
// global --json flag.
func printSnapshot(snapshot *model.Snapshot) {
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(snapshot, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Printf("Hostname: %s\n", snapshot.Hostname)
	fmt.Printf("Taken at: %s\n", snapshot.TakenAt.Format(time.RFC3339))
	fmt.Println()

	for _, name := range snapshot.Fields.Names() {
		fmt.Printf("%-48s %s\n", name, FormatFieldValue(snapshot.Fields[name]))
	}
}

// FormatFieldValue renders a field value without the scientific notation
// %g would use for byte counts, and without trailing zeros for the
// percent and load fields. Exported for testing.
func FormatFieldValue(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
