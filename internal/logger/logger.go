package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New builds the root logger. Services derive child loggers from it via
// With().Str("service", ...).
func New() zerolog.Logger {
	// Cloud Logging parses the level automatically when the field is
	// named "severity".
	zerolog.LevelFieldName = "severity"
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	// Human-readable output for local development.
	if os.Getenv("ENV") == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		return logger.Level(zerolog.DebugLevel)
	}

	return logger.Level(zerolog.InfoLevel)
}
