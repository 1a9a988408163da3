package logger

import (
	"io"
	stdlog "log"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init initializes the global zerolog logger writing to stdout.
func Init(logLevelStr string, appEnv string) {
	InitWithWriter(logLevelStr, appEnv, os.Stdout)
}

// InitWithWriter initializes the global zerolog logger. Development
// environments get human readable console output, everything else JSON.
// The standard library logger is redirected into zerolog.
func InitWithWriter(logLevelStr string, appEnv string, out io.Writer) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs

	parsedLevel, err := zerolog.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil || logLevelStr == "" {
		parsedLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsedLevel)

	output := out
	switch strings.ToLower(appEnv) {
	case "development", "dev":
		output = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	log.Logger = zerolog.New(output).With().Timestamp().Str("service", "secrets").Logger()
	if err != nil {
		log.Warn().Err(err).Msgf("Invalid log level '%s', defaulting to 'info'", logLevelStr)
	}

	stdlog.SetFlags(0)
	stdlog.SetOutput(log.Logger)
}
