package timecontrol

import (
	"fmt"

	"voyager.com/challenger/internal/errs"
	"voyager.com/challenger/internal/util"
)

// Category is a Lichess speed category.
type Category string

const (
	Bullet         Category = "bullet"
	Blitz          Category = "blitz"
	Rapid          Category = "rapid"
	Classical      Category = "classical"
	Correspondence Category = "correspondence"
)

// Rated lists the real-time categories every bot profile carries a rating for.
var Rated = []Category{Bullet, Blitz, Rapid, Classical}

// Estimated number of moves used to fold the increment into a game duration.
const incrementMoves = 40

// Upper bounds (exclusive) of each category's estimated duration in seconds.
const (
	bulletLimit = 179
	blitzLimit  = 479
	rapidLimit  = 1499
)

// TimeControl is a base clock with a per-move increment, both in seconds.
type TimeControl struct {
	BaseSeconds      int `yaml:"base"`
	IncrementSeconds int `yaml:"increment"`
}

// Defaults are the base clocks picked from when nothing is configured.
var Defaults = []TimeControl{
	{BaseSeconds: 60},
	{BaseSeconds: 120},
	{BaseSeconds: 300},
	{BaseSeconds: 420},
	{BaseSeconds: 600},
	{BaseSeconds: 900},
	{BaseSeconds: 1800},
	{BaseSeconds: 2400},
}

// Classify maps a clock to its speed category using base + 40 * increment.
func Classify(baseSeconds int, incrementSeconds int) Category {
	duration := baseSeconds + incrementMoves*incrementSeconds
	switch {
	case duration < bulletLimit:
		return Bullet
	case duration < blitzLimit:
		return Blitz
	case duration < rapidLimit:
		return Rapid
	default:
		return Classical
	}
}

func (tc TimeControl) Category() Category {
	return Classify(tc.BaseSeconds, tc.IncrementSeconds)
}

func (tc TimeControl) Validate() error {
	if tc.BaseSeconds <= 0 {
		return fmt.Errorf("Invalid base clock [%d]", tc.BaseSeconds)
	}
	if tc.IncrementSeconds < 0 {
		return fmt.Errorf("Invalid increment [%d]", tc.IncrementSeconds)
	}
	return nil
}

func (tc TimeControl) String() string {
	return fmt.Sprintf("%d+%d", tc.BaseSeconds, tc.IncrementSeconds)
}

// Pick chooses one of the candidates uniformly at random.
func Pick(r util.Random, candidates []TimeControl) (TimeControl, error) {
	if len(candidates) == 0 {
		return TimeControl{}, errs.Newf(errs.Configuration, "No time controls configured")
	}
	tc := candidates[util.GetRandomInt(r, 0, len(candidates)-1)]
	if err := tc.Validate(); err != nil {
		return TimeControl{}, errs.New(errs.Configuration, err)
	}
	return tc, nil
}
