package driver

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"voyager.com/challenger/internal/challenge"
	"voyager.com/challenger/internal/config"
	"voyager.com/challenger/internal/errs"
	"voyager.com/challenger/internal/lichess"
	"voyager.com/challenger/internal/logging"
	"voyager.com/challenger/internal/metrics"
	"voyager.com/challenger/internal/roster"
	"voyager.com/challenger/internal/selector"
	"voyager.com/challenger/internal/session"
	"voyager.com/challenger/internal/timecontrol"
	"voyager.com/challenger/internal/util"
)

// API is everything a run needs from the game server.
type API interface {
	roster.API
	session.API
	challenge.API
}

// Outcome is how a run that did not fail ended.
type Outcome int

const (
	Challenged Outcome = iota + 1
	AlreadyPlaying
	NoOpponent
)

func (o Outcome) String() string {
	switch o {
	case Challenged:
		return "challenged"
	case AlreadyPlaying:
		return "already_playing"
	case NoOpponent:
		return "no_opponent"
	}
	return "unknown"
}

// Result describes a finished run.
type Result struct {
	Outcome     Outcome
	TimeControl timecontrol.TimeControl
	Opponent    *roster.BotProfile
	// Challenge is nil in dry-run mode.
	Challenge *lichess.Challenge
}

// Challenger runs the challenge pipeline once.
type Challenger struct {
	runID    string
	api      API
	cfg      *config.Config
	rng      util.Random
	now      func() time.Time
	metrics  *metrics.Metrics
	issuer   *challenge.Issuer
	selector *selector.Selector
	logger   *zerolog.Logger
}

// NewChallenger checks cfg and wires the components for one run.
func NewChallenger(api API, cfg *config.Config, dryRun bool, rng util.Random, m *metrics.Metrics, logger *zerolog.Logger) (*Challenger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	runID := uuid.New().String()
	runLogger := logging.ForRun(logger, runID, cfg.BotName)

	issuer, err := challenge.NewIssuer(api, rng, challenge.Options{
		Rated:    cfg.Rated,
		Position: cfg.Position,
		DryRun:   dryRun,
	}, runLogger)
	if err != nil {
		return nil, err
	}

	sel := selector.New(cfg.Criteria(), runLogger)
	if m != nil {
		sel.OnSkip = func(_ *roster.BotProfile, reason selector.SkipReason) {
			m.CandidateSkipped(reason.String())
		}
	}

	return &Challenger{
		runID:    runID,
		api:      api,
		cfg:      cfg,
		rng:      rng,
		now:      time.Now,
		metrics:  m,
		issuer:   issuer,
		selector: sel,
		logger:   runLogger,
	}, nil
}

func (c *Challenger) RunID() string {
	return c.runID
}

// Run performs the session check, picks a time control, fetches the roster,
// selects an opponent and challenges it. "Already playing" and "no opponent"
// are successful outcomes, not errors.
func (c *Challenger) Run(ctx context.Context) (*Result, error) {
	result, err := c.run(ctx)
	if c.metrics != nil {
		if err != nil {
			c.metrics.RunFinished("error")
		} else {
			c.metrics.RunFinished(result.Outcome.String())
		}
	}
	return result, err
}

func (c *Challenger) run(ctx context.Context) (*Result, error) {
	blocked, err := session.HasBlockingOngoingGame(ctx, c.api, c.logger)
	if err != nil {
		return nil, errors.Wrap(err, "Unable to check ongoing games")
	}
	if blocked {
		c.logger.Info().Msg("Playing a game. Will not challenge.")
		return &Result{Outcome: AlreadyPlaying}, nil
	}

	tc, err := timecontrol.Pick(c.rng, c.cfg.TimeControls)
	if err != nil {
		return nil, err
	}
	cat := tc.Category()
	c.logger.Debug().Str(logging.TimeCtrlKey, tc.String()).Msgf("Picked a %s time control", cat)

	bots, err := roster.Fetch(ctx, c.api, c.rng, c.logger)
	if err != nil {
		return nil, errors.Wrap(err, "Unable to fetch bot roster")
	}
	if c.metrics != nil {
		c.metrics.SetRosterSize(len(bots))
	}

	self, ok := roster.Find(bots, c.cfg.BotName)
	if !ok {
		return nil, errs.Newf(errs.Fetch, "%s is not in the bot roster", c.cfg.BotName)
	}

	opponent, ok := c.selector.SelectOpponent(bots, self, cat, c.now().UTC())
	if !ok {
		c.logger.Info().Str(logging.CategoryKey, string(cat)).Msg("No eligible opponent this run.")
		return &Result{Outcome: NoOpponent, TimeControl: tc}, nil
	}

	ch, err := c.issuer.Issue(ctx, opponent.Name, tc)
	if err != nil {
		return nil, err
	}
	if c.metrics != nil && ch != nil {
		c.metrics.ChallengeSent(string(cat))
	}
	return &Result{
		Outcome:     Challenged,
		TimeControl: tc,
		Opponent:    opponent,
		Challenge:   ch,
	}, nil
}
