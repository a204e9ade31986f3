package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"voyager.com/challenger/internal/errs"
	"voyager.com/challenger/internal/selector"
	"voyager.com/challenger/internal/timecontrol"
)

func TestDefault(t *testing.T) {
	cfg, err := ReadConfig("")
	if err != nil {
		t.Fatalf("ReadConfig(\"\") returned error [%s]", err)
	}
	if !cmp.Equal(cfg.TimeControls, timecontrol.Defaults) {
		t.Errorf("default time controls differ: %s", cmp.Diff(timecontrol.Defaults, cfg.TimeControls))
	}
	expected := selector.Criteria{
		MaxIdle:          10 * time.Minute,
		MaxRatingGap:     300,
		MinCategoryGames: 50,
		MinTotalGames:    250,
	}
	if diff := cmp.Diff(expected, cfg.Criteria()); diff != "" {
		t.Errorf("default criteria mismatch (-want +got):\n%s", diff)
	}
	if !cfg.Rated {
		t.Error("challenges should be rated by default")
	}
	if cfg.RequestTimeoutDuration() != 30*time.Second {
		t.Errorf("RequestTimeoutDuration = %s; expected 30s", cfg.RequestTimeoutDuration())
	}
}

func TestDefaultIsACopy(t *testing.T) {
	cfg := Default()
	cfg.TimeControls[0].BaseSeconds = 1
	if timecontrol.Defaults[0].BaseSeconds != 60 {
		t.Error("Default() shares the time control table with the package default")
	}
}

func TestReadConfig(t *testing.T) {
	cfg, err := ReadConfig("testdata/challenger.yaml")
	if err != nil {
		t.Fatalf("ReadConfig returned error [%s]", err)
	}
	if cfg.BotName != "Weiawaga" {
		t.Errorf("BotName = %s; expected Weiawaga", cfg.BotName)
	}
	expectedTCs := []timecontrol.TimeControl{
		{BaseSeconds: 180, IncrementSeconds: 2},
		{BaseSeconds: 600},
	}
	if diff := cmp.Diff(expectedTCs, cfg.TimeControls); diff != "" {
		t.Errorf("TimeControls mismatch (-want +got):\n%s", diff)
	}
	if cfg.MaxRatingGap != 200 {
		t.Errorf("MaxRatingGap = %d; expected 200", cfg.MaxRatingGap)
	}
	if cfg.MinTotalGames != 100 {
		t.Errorf("MinTotalGames = %d; expected 100", cfg.MinTotalGames)
	}
	// not in the file
	if cfg.MinCategoryGames != 50 {
		t.Errorf("MinCategoryGames = %d; expected default 50", cfg.MinCategoryGames)
	}
	if cfg.MaxIdleMinutes != 10 {
		t.Errorf("MaxIdleMinutes = %d; expected default 10", cfg.MaxIdleMinutes)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate returned error [%s]", err)
	}
}

func TestReadConfigErrors(t *testing.T) {
	for _, fileName := range []string{"testdata/missing.yaml", "testdata/broken.yaml"} {
		_, err := ReadConfig(fileName)
		if !errs.Is(err, errs.Configuration) {
			t.Errorf("ReadConfig(%s) error = %v; expected configuration error", fileName, err)
		}
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		modify func(c *Config)
	}{
		{name: "no bot name", modify: func(c *Config) { c.BotName = "" }},
		{name: "no time controls", modify: func(c *Config) { c.TimeControls = nil }},
		{name: "zero base clock", modify: func(c *Config) { c.TimeControls[0].BaseSeconds = 0 }},
		{name: "negative increment", modify: func(c *Config) { c.TimeControls[0].IncrementSeconds = -1 }},
		{name: "negative gap", modify: func(c *Config) { c.MaxRatingGap = -1 }},
		{name: "zero idle", modify: func(c *Config) { c.MaxIdleMinutes = 0 }},
		{name: "zero timeout", modify: func(c *Config) { c.RequestTimeout = 0 }},
	}
	for _, tc := range testCases {
		cfg := Default()
		cfg.BotName = "Weiawaga"
		tc.modify(cfg)
		if err := cfg.Validate(); !errs.Is(err, errs.Configuration) {
			t.Errorf("%s: Validate error = %v; expected configuration error", tc.name, err)
		}
	}
}
