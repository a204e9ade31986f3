package challenge

import (
	"context"
	"strings"

	"github.com/notnil/chess"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"voyager.com/challenger/internal/errs"
	"voyager.com/challenger/internal/lichess"
	"voyager.com/challenger/internal/timecontrol"
	"voyager.com/challenger/internal/util"
)

// The server insists on a correspondence day count even for clock games.
const requiredDays = 1

type API interface {
	CreateChallenge(ctx context.Context, username string, req lichess.ChallengeRequest) (*lichess.Challenge, error)
}

type Options struct {
	Rated bool
	// Position is a FEN. Empty means the standard starting position.
	Position string
	// DryRun logs the request instead of sending it.
	DryRun bool
}

// Issuer sends the challenge for a run.
type Issuer struct {
	api    API
	rng    util.Random
	opts   Options
	logger *zerolog.Logger
}

func NewIssuer(api API, rng util.Random, opts Options, logger *zerolog.Logger) (*Issuer, error) {
	opts.Position = strings.TrimSpace(opts.Position)
	if opts.Position != "" {
		if _, err := chess.FEN(opts.Position); err != nil {
			return nil, errs.New(errs.Configuration, errors.Wrapf(err, "Invalid starting position [%s]", opts.Position))
		}
	}
	return &Issuer{
		api:    api,
		rng:    rng,
		opts:   opts,
		logger: logger,
	}, nil
}

// RandomColor picks white or black with equal probability.
func RandomColor(r util.Random) string {
	if util.GetRandomInt(r, 0, 1) == 0 {
		return lichess.ColorWhite
	}
	return lichess.ColorBlack
}

// Request builds the challenge form for tc with a freshly drawn color.
func (i *Issuer) Request(tc timecontrol.TimeControl) lichess.ChallengeRequest {
	return lichess.ChallengeRequest{
		Rated:          i.opts.Rated,
		ClockLimit:     tc.BaseSeconds,
		ClockIncrement: tc.IncrementSeconds,
		Days:           requiredDays,
		Color:          RandomColor(i.rng),
		Variant:        lichess.VariantStandard,
		FEN:            i.opts.Position,
	}
}

// Issue challenges opponent. It does not wait for the challenge to be accepted.
// In dry-run mode nothing is sent and a nil challenge is returned.
func (i *Issuer) Issue(ctx context.Context, opponent string, tc timecontrol.TimeControl) (*lichess.Challenge, error) {
	req := i.Request(tc)
	i.logger.Info().Msgf("Challenging %s to a %s game with time control of %d seconds.", opponent, tc.Category(), tc.BaseSeconds)
	if i.opts.DryRun {
		i.logger.Info().Msgf("Dry run, not sending: %s", req.Form().Encode())
		return nil, nil
	}
	ch, err := i.api.CreateChallenge(ctx, opponent, req)
	if err != nil {
		return nil, errs.New(errs.ChallengeRejected, err)
	}
	i.logger.Info().Msgf("Challenge %s created (%s), playing %s", ch.ID, ch.URL, req.Color)
	return ch, nil
}
