package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"voyager.com/challenger/internal/errs"
	"voyager.com/challenger/internal/selector"
	"voyager.com/challenger/internal/timecontrol"
)

// Config contains the challenger YAML content.
type Config struct {
	BotName          string                    `yaml:"bot-name"`
	TimeControls     []timecontrol.TimeControl `yaml:"time-controls"`
	MaxRatingGap     int                       `yaml:"max-rating-gap"`
	MinTotalGames    int                       `yaml:"min-total-games"`
	MinCategoryGames int                       `yaml:"min-category-games"`
	MaxIdleMinutes   int                       `yaml:"max-idle-minutes"`
	Rated            bool                      `yaml:"rated"`
	Position         string                    `yaml:"position"`
	RequestTimeout   int                       `yaml:"request-timeout-sec"`
}

/*
  bot-name: Weiawaga
  time-controls:
    - base: 180
      increment: 2
  max-rating-gap: 300
*/

// Default returns the configuration used when no file is given.
func Default() *Config {
	tcs := make([]timecontrol.TimeControl, len(timecontrol.Defaults))
	copy(tcs, timecontrol.Defaults)
	return &Config{
		TimeControls:     tcs,
		MaxRatingGap:     selector.DefaultCriteria.MaxRatingGap,
		MinTotalGames:    selector.DefaultCriteria.MinTotalGames,
		MinCategoryGames: selector.DefaultCriteria.MinCategoryGames,
		MaxIdleMinutes:   int(selector.DefaultCriteria.MaxIdle / time.Minute),
		Rated:            true,
		RequestTimeout:   30,
	}
}

// ReadConfig loads fileName over the defaults. Keys missing from the file keep their default value.
// An empty fileName returns the defaults.
func ReadConfig(fileName string) (*Config, error) {
	cfg := Default()
	if fileName == "" {
		return cfg, nil
	}
	bytes, err := os.ReadFile(fileName)
	if err != nil {
		return nil, errs.New(errs.Configuration, errors.Wrapf(err, "Error reading configuration file [%s]", fileName))
	}
	err = yaml.Unmarshal(bytes, cfg)
	if err != nil {
		return nil, errs.New(errs.Configuration, errors.Wrapf(err, "Error parsing YAML file [%s]", fileName))
	}
	return cfg, nil
}

// Validate checks the values that the run cannot proceed without.
func (c *Config) Validate() error {
	if c.BotName == "" {
		return errs.Newf(errs.Configuration, "bot-name is not defined")
	}
	if len(c.TimeControls) == 0 {
		return errs.Newf(errs.Configuration, "time-controls is empty")
	}
	for i, tc := range c.TimeControls {
		if err := tc.Validate(); err != nil {
			return errs.New(errs.Configuration, errors.Wrapf(err, "time-controls[%d]", i))
		}
	}
	if c.MaxRatingGap < 0 || c.MinTotalGames < 0 || c.MinCategoryGames < 0 {
		return errs.New(errs.Configuration, fmt.Errorf("Negative eligibility threshold: max-rating-gap=%d min-total-games=%d min-category-games=%d",
			c.MaxRatingGap, c.MinTotalGames, c.MinCategoryGames))
	}
	if c.MaxIdleMinutes <= 0 {
		return errs.Newf(errs.Configuration, "Invalid max-idle-minutes [%d]", c.MaxIdleMinutes)
	}
	if c.RequestTimeout <= 0 {
		return errs.Newf(errs.Configuration, "Invalid request-timeout-sec [%d]", c.RequestTimeout)
	}
	return nil
}

// Criteria returns the eligibility thresholds.
func (c *Config) Criteria() selector.Criteria {
	return selector.Criteria{
		MaxIdle:          time.Duration(c.MaxIdleMinutes) * time.Minute,
		MaxRatingGap:     c.MaxRatingGap,
		MinCategoryGames: c.MinCategoryGames,
		MinTotalGames:    c.MinTotalGames,
	}
}

func (c *Config) RequestTimeoutDuration() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}
