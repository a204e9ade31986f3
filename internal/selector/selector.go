package selector

import (
	"strings"
	"time"

	"github.com/rs/zerolog"
	"voyager.com/challenger/internal/logging"
	"voyager.com/challenger/internal/roster"
	"voyager.com/challenger/internal/timecontrol"
)

// Criteria are the eligibility thresholds for an opponent.
type Criteria struct {
	MaxIdle          time.Duration
	MaxRatingGap     int
	MinCategoryGames int
	MinTotalGames    int
}

var DefaultCriteria = Criteria{
	MaxIdle:          10 * time.Minute,
	MaxRatingGap:     300,
	MinCategoryGames: 50,
	MinTotalGames:    250,
}

// SkipReason tells why a candidate was passed over. Eligible means it was not.
type SkipReason int

const (
	Eligible SkipReason = iota
	IsSelf
	NotSeenRecently
	RatingGap
	TooFewGames
)

func (r SkipReason) String() string {
	switch r {
	case Eligible:
		return "eligible"
	case IsSelf:
		return "self"
	case NotSeenRecently:
		return "not_seen_recently"
	case RatingGap:
		return "rating_gap"
	case TooFewGames:
		return "too_few_games"
	}
	return "unknown"
}

// Selector picks the opponent for one run.
type Selector struct {
	criteria Criteria
	logger   *zerolog.Logger
	// OnSkip, when set, is called for every candidate passed over.
	OnSkip func(candidate *roster.BotProfile, reason SkipReason)
}

func New(criteria Criteria, logger *zerolog.Logger) *Selector {
	return &Selector{
		criteria: criteria,
		logger:   logger,
	}
}

// Check returns the first rule candidate fails, or Eligible.
func (s *Selector) Check(candidate *roster.BotProfile, self *roster.BotProfile, cat timecontrol.Category, now time.Time) SkipReason {
	if candidate == self || strings.EqualFold(candidate.Name, self.Name) {
		return IsSelf
	}
	if now.Sub(candidate.LastSeen) > s.criteria.MaxIdle {
		return NotSeenRecently
	}
	if abs(candidate.Rating(cat)-self.Rating(cat)) > s.criteria.MaxRatingGap {
		return RatingGap
	}
	if candidate.NumGames(cat) < s.criteria.MinCategoryGames || candidate.TotalGames() < s.criteria.MinTotalGames {
		return TooFewGames
	}
	return Eligible
}

// SelectOpponent walks the roster in the given order and returns the first eligible bot.
// The roster is expected to be shuffled already; it is never reordered here.
// Returns false when no bot qualifies, which is a normal outcome.
func (s *Selector) SelectOpponent(bots []*roster.BotProfile, self *roster.BotProfile, cat timecontrol.Category, now time.Time) (*roster.BotProfile, bool) {
	for _, bot := range bots {
		reason := s.Check(bot, self, cat, now)
		if reason == Eligible {
			s.logger.Info().
				Str(logging.OpponentKey, bot.Name).
				Int("rating", bot.Rating(cat)).
				Int("myRating", self.Rating(cat)).
				Msgf("Selected %s for a %s game.", bot.Name, cat)
			return bot, true
		}
		s.logSkip(bot, reason)
		if s.OnSkip != nil {
			s.OnSkip(bot, reason)
		}
	}
	return nil, false
}

func (s *Selector) logSkip(bot *roster.BotProfile, reason SkipReason) {
	switch reason {
	case IsSelf:
		s.logger.Info().Msg("Don't challenge myself.")
	case NotSeenRecently:
		s.logger.Info().Msgf("Skipping %s: not seen in too long.", bot.Name)
	case RatingGap:
		s.logger.Info().Msgf("Skipping %s: rating difference too large.", bot.Name)
	case TooFewGames:
		s.logger.Info().Msgf("Skipping %s: too few games.", bot.Name)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
