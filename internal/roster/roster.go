package roster

import (
	"context"

	mapset "github.com/deckarep/golang-set"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"voyager.com/challenger/internal/errs"
	"voyager.com/challenger/internal/lichess"
	"voyager.com/challenger/internal/util"
)

// API is the part of the Lichess client the fetcher needs.
type API interface {
	GetBotNames(ctx context.Context) ([]string, error)
	GetUsersByID(ctx context.Context, ids ...string) ([]lichess.User, error)
}

// Fetch returns the profiles of the listed bots, disabled accounts removed, in random order.
func Fetch(ctx context.Context, api API, r util.Random, logger *zerolog.Logger) ([]*BotProfile, error) {
	names, err := api.GetBotNames(ctx)
	if err != nil {
		return nil, errs.New(errs.Fetch, err)
	}
	names = dedupe(names)
	if len(names) == 0 {
		logger.Warn().Msg("Bot listing page has no bots")
		return []*BotProfile{}, nil
	}

	users, err := api.GetUsersByID(ctx, names...)
	if err != nil {
		return nil, errs.New(errs.Fetch, err)
	}

	profiles := make([]*BotProfile, 0, len(users))
	for _, u := range users {
		if u.Disabled {
			logger.Debug().Msgf("Skipping %s: account is closed.", u.Username)
			continue
		}
		p, err := NewBotProfile(u)
		if err != nil {
			return nil, errs.New(errs.Fetch, errors.Wrap(err, "Invalid user lookup response"))
		}
		profiles = append(profiles, p)
	}

	r.Shuffle(len(profiles), func(i, j int) {
		profiles[i], profiles[j] = profiles[j], profiles[i]
	})
	logger.Info().Msgf("Fetched %d bot profiles (%d listed)", len(profiles), len(names))
	return profiles, nil
}

// dedupe drops repeated names, keeping the first occurrence.
func dedupe(names []string) []string {
	seen := mapset.NewThreadUnsafeSet()
	out := make([]string, 0, len(names))
	for _, n := range names {
		if seen.Contains(n) {
			continue
		}
		seen.Add(n)
		out = append(out, n)
	}
	return out
}
