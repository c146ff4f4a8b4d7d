package infra

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger constructs a zerolog.Logger for the given APP_ENV: console output
// at debug level in development, silent in test, JSON at info otherwise.
func NewLogger(appEnv string) zerolog.Logger {
	if appEnv == "test" {
		return zerolog.Nop()
	}

	level := zerolog.InfoLevel
	if appEnv == "development" {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(os.Stdout).
		Level(level).
		With().
		Timestamp().
		Str("service", "crowdfund").
		Logger()

	if appEnv == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	return logger
}

// Logger aliases zerolog.Logger so packages wiring the service can name the
// logging contract through infra.
type Logger = zerolog.Logger
