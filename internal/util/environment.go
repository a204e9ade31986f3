package util

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"voyager.com/challenger/internal/errs"
	"voyager.com/challenger/internal/logging"
)

var environmentLogger = log.With().Str(logging.LoggerNameKey, "util::environment").Logger()

// DefaultLichessURL is used when LICHESS_URL is not set.
const DefaultLichessURL = "https://lichess.org"

type environment struct {
	BotToken       string
	BotName        string
	LichessURL     string
	PushgatewayURL string
	LogLevel       string
}

// Env is a helper object for accessing environment variables.
var Env = &environment{
	BotToken:       "LICHESS_BOT_TOKEN",
	BotName:        "LICHESS_BOT_NAME",
	LichessURL:     "LICHESS_URL",
	PushgatewayURL: "PUSHGATEWAY_URL",
	LogLevel:       "LOG_LEVEL",
}

// GetBotToken returns the personal API token of the bot account.
func (e *environment) GetBotToken() (string, error) {
	v := strings.TrimSpace(os.Getenv(e.BotToken))
	if v == "" {
		return "", errs.Newf(errs.Configuration, "%s is not defined", e.BotToken)
	}
	return v, nil
}

// GetBotName returns the bot account name override. Empty when not set.
func (e *environment) GetBotName() string {
	return strings.TrimSpace(os.Getenv(e.BotName))
}

func (e *environment) GetLichessURL() string {
	v := os.Getenv(e.LichessURL)
	if v == "" {
		return DefaultLichessURL
	}
	return strings.TrimRight(v, "/")
}

// GetPushgatewayURL returns the Prometheus Pushgateway address. Empty disables pushing.
func (e *environment) GetPushgatewayURL() string {
	return os.Getenv(e.PushgatewayURL)
}

func (e *environment) GetLogLevel() string {
	v := os.Getenv(e.LogLevel)
	if v == "" {
		defaultVal := "info"
		environmentLogger.Debug().Msgf("%s is not defined. Using default %s", e.LogLevel, defaultVal)
		return defaultVal
	}
	return v
}

func (e *environment) GetZeroLogLogLevel() (zerolog.Level, error) {
	l := e.GetLogLevel()
	switch strings.ToLower(l) {
	case "trace":
		return zerolog.TraceLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "info":
		return zerolog.InfoLevel, nil
	case "warn":
		fallthrough
	case "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	case "disabled":
		return zerolog.Disabled, nil
	default:
		return zerolog.InfoLevel, errs.New(errs.Configuration, fmt.Errorf("Unsupported %s: %s", e.LogLevel, l))
	}
}
