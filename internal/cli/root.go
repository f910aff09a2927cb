package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mtik00/sysmon/internal/logging"
	"github.com/mtik00/sysmon/internal/model"
)

// Global flag variables bound to cobra persistent flags on the root
// command, making them available to every subcommand.
var (
	// debugMode sets the log level to debug.
	debugMode bool

	// jsonOutput switches command output to JSON for machine consumption.
	jsonOutput bool

	// configPath is an explicit config file path. Empty means "search the
	// default locations".
	configPath string
)

// Version, Commit, and Date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// logger is the process logger, initialized by the root command's
// PersistentPreRun before any subcommand logic executes.
var logger zerolog.Logger

// NewRootCommand creates and configures the root cobra command.
//
// The root command itself performs no action — it provides help text,
// global flags, and logger initialization. Functionality lives in the
// run, collect, and check subcommands.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sysmon",
		Short: "Export system hardware metrics to InfluxDB",
		Long: `sysmon periodically samples host metrics — memory, CPU, load average,
disk usage, and temperature sensors — and writes them to an InfluxDB
database as a single point per cycle, tagged with the hostname.

Connection settings come from the INFLUXDB_* environment variables, an
optional config file, or flags. See "sysmon check" to verify a setup.`,

		// Errors are formatted by Execute (text or JSON per --json), so
		// cobra's automatic printing is disabled.
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.Setup(debugMode)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&debugMode, "debug", "d", false, "Set logging level to DEBUG")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a config file (YAML or JSONC)")

	rootCmd.AddCommand(NewRunCommand())
	rootCmd.AddCommand(NewCollectCommand())
	rootCmd.AddCommand(NewCheckCommand())

	return rootCmd
}

// Execute runs the root command and translates errors into process exit
// codes. CLIError values carry their own code; anything else exits 1.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		var cliErr *model.CLIError
		if errors.As(err, &cliErr) {
			printError(cliErr.Message, cliErr.Err)
			os.Exit(int(cliErr.Code))
		}

		printError(err.Error(), nil)
		os.Exit(int(model.ExitGeneralError))
	}
}

// printError outputs an error message in the appropriate format (JSON or
// text) based on the --json global flag. Errors always go to stderr;
// stdout is reserved for successful command output.
func printError(message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			errObj["error"].(map[string]interface{})["detail"] = underlying.Error()
		}
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		if underlying != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, underlying)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", message)
		}
	}
}

// IsJSONOutput returns whether the --json flag is set.
func IsJSONOutput() bool {
	return jsonOutput
}
