package roster

import (
	"fmt"
	"strings"
	"time"

	"voyager.com/challenger/internal/lichess"
	"voyager.com/challenger/internal/timecontrol"
)

// BotProfile is a read-only snapshot of one bot account.
type BotProfile struct {
	Name     string
	LastSeen time.Time
	Ratings  map[timecontrol.Category]int
	Games    map[timecontrol.Category]int
}

// NewBotProfile parses a user lookup entry. Every rated category must be present.
func NewBotProfile(u lichess.User) (*BotProfile, error) {
	if u.Username == "" {
		return nil, fmt.Errorf("User [%s] has no username", u.ID)
	}
	p := &BotProfile{
		Name:     u.Username,
		LastSeen: u.SeenAtTime(),
		Ratings:  make(map[timecontrol.Category]int, len(timecontrol.Rated)),
		Games:    make(map[timecontrol.Category]int, len(timecontrol.Rated)),
	}
	for _, cat := range timecontrol.Rated {
		perf, ok := u.Perfs[string(cat)]
		if !ok {
			return nil, fmt.Errorf("User [%s] has no %s perf", u.Username, cat)
		}
		p.Ratings[cat] = perf.Rating
		p.Games[cat] = perf.Games
	}
	return p, nil
}

func (p *BotProfile) Rating(cat timecontrol.Category) int {
	return p.Ratings[cat]
}

func (p *BotProfile) NumGames(cat timecontrol.Category) int {
	return p.Games[cat]
}

// TotalGames sums the games played across all categories.
func (p *BotProfile) TotalGames() int {
	total := 0
	for _, n := range p.Games {
		total += n
	}
	return total
}

// Find returns the profile with the given name. Lichess names are case insensitive.
func Find(profiles []*BotProfile, name string) (*BotProfile, bool) {
	for _, p := range profiles {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return nil, false
}
