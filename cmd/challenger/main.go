package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"
	"voyager.com/challenger/internal/config"
	"voyager.com/challenger/internal/driver"
	"voyager.com/challenger/internal/errs"
	"voyager.com/challenger/internal/lichess"
	"voyager.com/challenger/internal/logging"
	"voyager.com/challenger/internal/metrics"
	"voyager.com/challenger/internal/util"
)

var (
	cmdArgs    arg
	mainLogger = logging.GetZeroLogger("main::main", nil)
)

type arg struct {
	configFile string
	dryRun     bool
}

func init() {
	flag.StringVar(&cmdArgs.configFile, "config", "", "Challenger YAML file. Built-in defaults are used if not provided.")
	flag.BoolVar(&cmdArgs.dryRun, "dry-run", false, "Select an opponent but do not send the challenge.")
}

func main() {
	flag.Parse()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := challenger(ctx, cmdArgs)
	stop()
	os.Exit(code)
}

func challenger(ctx context.Context, args arg) int {
	logLevel, err := util.Env.GetZeroLogLogLevel()
	if err != nil {
		mainLogger.Error().Msgf("%s", err)
		return 1
	}
	zerolog.SetGlobalLevel(logLevel)

	token, err := util.Env.GetBotToken()
	if err != nil {
		mainLogger.Error().Msgf("%s", err)
		return 1
	}
	cfg, err := config.ReadConfig(args.configFile)
	if err != nil {
		mainLogger.Error().Msgf("%s", err)
		return 1
	}
	if name := util.Env.GetBotName(); name != "" {
		cfg.BotName = name
	}
	mainLogger.Info().Msgf("Lichess URL: %s", util.Env.GetLichessURL())
	mainLogger.Info().Msgf("Config File: %s", args.configFile)
	mainLogger.Info().Msgf("Bot: %s", cfg.BotName)

	clientLogger := logging.GetZeroLogger("lichess::client", nil)
	client := lichess.NewClient(util.Env.GetLichessURL(), token, cfg.RequestTimeoutDuration(), clientLogger)

	m := metrics.New()
	runLogger := logging.GetZeroLogger("Challenger", nil)
	c, err := driver.NewChallenger(client, cfg, args.dryRun, util.NewRandom(), m, runLogger)
	if err != nil {
		mainLogger.Error().Msgf("Error while creating the challenger: %s", err)
		return 1
	}

	result, err := c.Run(ctx)
	pushMetrics(m, cfg.BotName)
	if err != nil {
		mainLogger.Error().
			Str(logging.RunIDKey, c.RunID()).
			Str("kind", errs.KindOf(err).String()).
			Msgf("Run failed: %+v", err)
		return 1
	}
	mainLogger.Info().Str(logging.RunIDKey, c.RunID()).Msgf("Run finished: %s", result.Outcome)
	return 0
}

func pushMetrics(m *metrics.Metrics, botName string) {
	url := util.Env.GetPushgatewayURL()
	if url == "" {
		return
	}
	if err := m.Push(url, botName); err != nil {
		// metrics never change the exit status
		mainLogger.Warn().Msgf("%s", err)
	}
}
