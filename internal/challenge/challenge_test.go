package challenge

import (
	"context"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"voyager.com/challenger/internal/errs"
	"voyager.com/challenger/internal/lichess"
	"voyager.com/challenger/internal/logging"
	"voyager.com/challenger/internal/timecontrol"
)

type fakeAPI struct {
	calls    int
	opponent string
	req      lichess.ChallengeRequest
	err      error
}

func (f *fakeAPI) CreateChallenge(ctx context.Context, username string, req lichess.ChallengeRequest) (*lichess.Challenge, error) {
	f.calls++
	f.opponent = username
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &lichess.Challenge{ID: "abc12345", Status: "created"}, nil
}

func TestIssue(t *testing.T) {
	api := &fakeAPI{}
	issuer, err := NewIssuer(api, rand.New(rand.NewSource(1)), Options{Rated: true}, logging.Nop())
	if err != nil {
		t.Fatalf("NewIssuer returned error [%s]", err)
	}
	ch, err := issuer.Issue(context.Background(), "maia1", timecontrol.TimeControl{BaseSeconds: 180, IncrementSeconds: 2})
	if err != nil {
		t.Fatalf("Issue returned error [%s]", err)
	}
	if ch.ID != "abc12345" {
		t.Errorf("challenge ID = %s; expected abc12345", ch.ID)
	}
	if api.calls != 1 || api.opponent != "maia1" {
		t.Fatalf("CreateChallenge called %d times for %s", api.calls, api.opponent)
	}

	expected := lichess.ChallengeRequest{
		Rated:          true,
		ClockLimit:     180,
		ClockIncrement: 2,
		Days:           1,
		Color:          api.req.Color,
		Variant:        "standard",
	}
	if diff := cmp.Diff(expected, api.req); diff != "" {
		t.Errorf("request mismatch (-want +got):\n%s", diff)
	}
	if api.req.Color != lichess.ColorWhite && api.req.Color != lichess.ColorBlack {
		t.Errorf("Color = %s", api.req.Color)
	}
}

func TestIssueRejected(t *testing.T) {
	api := &fakeAPI{err: &lichess.APIError{StatusCode: 400, Message: "already challenged"}}
	issuer, _ := NewIssuer(api, rand.New(rand.NewSource(1)), Options{Rated: true}, logging.Nop())
	_, err := issuer.Issue(context.Background(), "maia1", timecontrol.TimeControl{BaseSeconds: 60})
	if !errs.Is(err, errs.ChallengeRejected) {
		t.Fatalf("error = %v; expected challenge rejected", err)
	}
	var apiErr *lichess.APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "already challenged" {
		t.Error("server message was lost")
	}
	if api.calls != 1 {
		t.Errorf("CreateChallenge called %d times; expected no retry", api.calls)
	}
}

func TestIssueDryRun(t *testing.T) {
	api := &fakeAPI{}
	issuer, _ := NewIssuer(api, rand.New(rand.NewSource(1)), Options{Rated: true, DryRun: true}, logging.Nop())
	ch, err := issuer.Issue(context.Background(), "maia1", timecontrol.TimeControl{BaseSeconds: 60})
	if err != nil || ch != nil {
		t.Errorf("Issue = %v, %v; expected nil, nil", ch, err)
	}
	if api.calls != 0 {
		t.Error("dry run sent a challenge")
	}
}

func TestRandomColor(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	counts := map[string]int{}
	for i := 0; i < 1000; i++ {
		counts[RandomColor(r)]++
	}
	if len(counts) != 2 {
		t.Fatalf("RandomColor produced %v", counts)
	}
	if counts[lichess.ColorWhite] < 400 || counts[lichess.ColorBlack] < 400 {
		t.Errorf("RandomColor is lopsided: %v", counts)
	}
}

func TestNewIssuerPosition(t *testing.T) {
	api := &fakeAPI{}
	fen := "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"
	issuer, err := NewIssuer(api, rand.New(rand.NewSource(1)), Options{Position: " " + fen + " "}, logging.Nop())
	if err != nil {
		t.Fatalf("NewIssuer rejected a valid FEN [%s]", err)
	}
	if issuer.Request(timecontrol.TimeControl{BaseSeconds: 60}).FEN != fen {
		t.Error("starting position not passed through")
	}

	_, err = NewIssuer(api, rand.New(rand.NewSource(1)), Options{Position: "not a fen"}, logging.Nop())
	if !errs.Is(err, errs.Configuration) {
		t.Errorf("error = %v; expected configuration error", err)
	}
}
