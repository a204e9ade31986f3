package lichess

import (
	"net/url"
	"strconv"
	"time"
)

// User is a subset of the /api/users payload.
type User struct {
	ID           string          `json:"id"`
	Username     string          `json:"username"`
	Title        string          `json:"title"`
	SeenAt       int64           `json:"seenAt"`
	Disabled     bool            `json:"disabled"`
	TosViolation bool            `json:"tosViolation"`
	Perfs        map[string]Perf `json:"perfs"`
}

// SeenAtTime converts the millisecond timestamp to UTC.
func (u User) SeenAtTime() time.Time {
	return time.Unix(0, u.SeenAt*int64(time.Millisecond)).UTC()
}

type Perf struct {
	Games  int  `json:"games"`
	Rating int  `json:"rating"`
	Rd     int  `json:"rd"`
	Prog   int  `json:"prog"`
	Prov   bool `json:"prov"`
}

// OngoingGame is one entry of /api/account/playing.
type OngoingGame struct {
	GameID   string `json:"gameId"`
	FullID   string `json:"fullId"`
	Speed    string `json:"speed"`
	Perf     string `json:"perf"`
	Color    string `json:"color"`
	Rated    bool   `json:"rated"`
	IsMyTurn bool   `json:"isMyTurn"`
	Opponent struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Rating   int    `json:"rating"`
	} `json:"opponent"`
}

const (
	ColorWhite = "white"
	ColorBlack = "black"

	VariantStandard = "standard"
)

// ChallengeRequest holds the form fields of a challenge creation call.
type ChallengeRequest struct {
	Rated          bool
	ClockLimit     int
	ClockIncrement int
	// Days must be set even for real-time clocks or the server rejects the request.
	Days    int
	Color   string
	Variant string
	FEN     string
}

func (r ChallengeRequest) Form() url.Values {
	form := url.Values{}
	form.Set("rated", strconv.FormatBool(r.Rated))
	form.Set("clock.limit", strconv.Itoa(r.ClockLimit))
	form.Set("clock.increment", strconv.Itoa(r.ClockIncrement))
	form.Set("days", strconv.Itoa(r.Days))
	form.Set("color", r.Color)
	form.Set("variant", r.Variant)
	if r.FEN != "" {
		form.Set("fen", r.FEN)
	}
	return form
}

// Challenge identifies a created challenge.
type Challenge struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Status string `json:"status"`
}

// Older servers wrap the challenge in a "challenge" field.
type challengeResponse struct {
	Challenge
	Wrapped *Challenge `json:"challenge"`
}

func (r *challengeResponse) normalize() *Challenge {
	if r.ID == "" && r.Wrapped != nil {
		return r.Wrapped
	}
	c := r.Challenge
	return &c
}
