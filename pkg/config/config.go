// Package config reads tidechart settings from the environment. Every
// variable is prefixed with TIDECHART_ and optional; the defaults read the
// 2024 Quarry Bay tide page in three 29 row blocks.
package config

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/kelseyhightower/envconfig"

	"github.com/spencer-p/tidechart/pkg/tide"
)

const prefix = "tidechart"

type Config struct {
	URL  string `default:"https://www.hko.gov.hk/tide/eTPKtext2024.html"`
	Year int    `default:"2024"`
	// Row ranges of the combined table, one dataset each. The last one is
	// smoothed and charted.
	Ranges        tide.Ranges `default:"0:29,29:58,58:87"`
	MaxTables     int         `split_words:"true" default:"20"`
	ExpectHeaders []string    `split_words:"true"`
	Samples       int         `default:"500"`
	Timezone      string      `default:"Asia/Hong_Kong"`

	Timeout  time.Duration `default:"30s"`
	CacheTTL time.Duration `split_words:"true" default:"0s"`

	ChartOutput string `split_words:"true"`
	ChartWidth  int    `split_words:"true" default:"100"`
	ChartHeight int    `split_words:"true" default:"20"`

	Pushgateway string
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var c Config
	if err := envconfig.Process(prefix, &c); err != nil {
		return Config{}, err
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	if c.URL == "" {
		return fmt.Errorf("TIDECHART_URL is empty")
	}
	if len(c.Ranges) == 0 {
		return fmt.Errorf("no row ranges configured")
	}
	if c.Samples < 2 {
		return fmt.Errorf("need at least 2 samples, got %d", c.Samples)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location loads the configured time zone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading time zone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// TideOptions returns how table rows become tide records.
func (c Config) TideOptions() (tide.Options, error) {
	loc, err := c.Location()
	if err != nil {
		return tide.Options{}, err
	}
	return tide.Options{
		Year:     c.Year,
		Location: loc,
		Expect:   c.ExpectHeaders,
	}, nil
}
