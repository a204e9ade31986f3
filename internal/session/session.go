package session

import (
	"context"

	"github.com/rs/zerolog"
	"voyager.com/challenger/internal/errs"
	"voyager.com/challenger/internal/lichess"
	"voyager.com/challenger/internal/timecontrol"
)

type API interface {
	GetOngoingGames(ctx context.Context) ([]lichess.OngoingGame, error)
}

// HasBlockingOngoingGame reports whether the account is in a game that should prevent a
// new challenge. Correspondence games never block.
func HasBlockingOngoingGame(ctx context.Context, api API, logger *zerolog.Logger) (bool, error) {
	games, err := api.GetOngoingGames(ctx)
	if err != nil {
		return false, errs.New(errs.StateQuery, err)
	}
	for _, g := range games {
		if timecontrol.Category(g.Speed) != timecontrol.Correspondence {
			logger.Debug().Msgf("Ongoing %s game %s against %s", g.Speed, g.GameID, g.Opponent.Username)
			return true, nil
		}
	}
	if len(games) > 0 {
		logger.Debug().Msgf("%d correspondence games in progress", len(games))
	}
	return false, nil
}
