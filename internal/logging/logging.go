// Package logging configures the process-wide zerolog logger.
//
// sysmon logs human-readable console output to stderr; stdout is reserved
// for command output (the collect command's table or JSON). The global
// log level is controlled by the --debug flag: info by default, debug
// when set. --no-db implies --debug so that the points that would have
// been written are visible in the log.
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup initializes the global zerolog logger and returns it. It is
// called once, from the root command's PersistentPreRun, before any
// subcommand logic executes.
func Setup(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	writer := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "2006-01-02 15:04:05",
	}

	logger := zerolog.New(writer).With().Timestamp().Logger()
	log.Logger = logger
	return logger
}
