package logging

import (
	"io"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

const (
	LoggerNameKey string = "logger_name"
	RunIDKey      string = "runID"
	BotNameKey    string = "botName"
	OpponentKey   string = "opponent"
	CategoryKey   string = "category"
	TimeCtrlKey   string = "timeControl"
)

// IsColorLoggingEnabled reads COLORIZE_LOG. Color is on unless it is set to a false value.
func IsColorLoggingEnabled() bool {
	v := os.Getenv("COLORIZE_LOG")
	if v == "" {
		return true
	}
	enabled, err := strconv.ParseBool(v)
	return err == nil && enabled
}

// GetZeroLogger returns a console logger tagged with LoggerNameKey. Output goes to stdout when out is nil.
func GetZeroLogger(name string, out io.Writer) *zerolog.Logger {
	if out == nil {
		out = os.Stdout
	}
	output := zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    !IsColorLoggingEnabled(),
		TimeFormat: time.RFC3339,
	}
	logger := zerolog.New(output).With().Timestamp().Str(LoggerNameKey, name).Logger()
	return &logger
}

// ForRun tags every line of a run with its ID and the bot it runs as.
func ForRun(logger *zerolog.Logger, runID string, botName string) *zerolog.Logger {
	l := logger.With().Str(RunIDKey, runID).Str(BotNameKey, botName).Logger()
	return &l
}

// Nop returns a logger that discards everything. Used by tests.
func Nop() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}
