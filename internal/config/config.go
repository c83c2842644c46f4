package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	DefaultClub        = "Hallam FC"
	DefaultHomeAddress = "Sandygate, Sandygate Road, Sheffield, S10 5SE"
	DefaultTimezone    = "Europe/London"
	DefaultJSONDir     = "json"
	DefaultOutputDir   = "ics"
	DefaultDataDir     = "~/.local/share/fixtures-ics"
	DefaultDuration    = 2 * time.Hour
	DefaultConfigPath  = "fixtures-ics.yaml"

	defaultWebsite  = "https://hallamfc.co.uk"
	defaultXProfile = "https://x.com/HallamFC1860"
	defaultYouTube  = "https://www.youtube.com/@hallamfc1860"
)

// Link is a labelled URL appended to every event description
type Link struct {
	// Label is the line shown above the URL, e.g. "Join the discussion on X:".
	Label string `yaml:"label" json:"label"`
	URL   string `yaml:"url" json:"url"`
}

// Config is the top-level application configuration.
type Config struct {
	// Club is the name used in summaries, descriptions, PRODID and UIDs.
	Club string `yaml:"club" env:"FIXTURES_CLUB"`

	// HomeAddress is the LOCATION of every home fixture.
	HomeAddress string `yaml:"home_address" env:"FIXTURES_HOME_ADDRESS"`

	// Timezone is only a label written to X-WR-TIMEZONE; no tz database is consulted.
	Timezone string `yaml:"timezone" env:"FIXTURES_TIMEZONE"`

	// UTCOffset is the fixed offset of the kick-off wall clock, e.g. "1h" for BST.
	// Zero treats kick-off times as UTC.
	UTCOffset time.Duration `yaml:"utc_offset" env:"FIXTURES_UTC_OFFSET"`

	// MatchDuration is the gap between DTSTART and DTEND.
	MatchDuration time.Duration `yaml:"match_duration" env:"FIXTURES_MATCH_DURATION"`

	JSONDir   string `yaml:"json_dir" env:"FIXTURES_JSON_DIR"`
	OutputDir string `yaml:"output_dir" env:"FIXTURES_OUTPUT_DIR"`
	DataDir   string `yaml:"data_dir" env:"FIXTURES_DATA_DIR"`

	// Strict turns unversioned fixture edits into errors.
	Strict bool `yaml:"strict" env:"FIXTURES_STRICT"`

	// Links are appended to each event description, in order.
	Links []Link `yaml:"links"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Club:          DefaultClub,
		HomeAddress:   DefaultHomeAddress,
		Timezone:      DefaultTimezone,
		MatchDuration: DefaultDuration,
		JSONDir:       DefaultJSONDir,
		OutputDir:     DefaultOutputDir,
		DataDir:       DefaultDataDir,
		Links:         defaultLinks(),
	}
}

func defaultLinks() []Link {
	return []Link{
		{Label: "Check the website for tickets, news and updates:", URL: defaultWebsite},
		{Label: "Join the discussion on X:", URL: defaultXProfile},
		{Label: "Check for highlights on YouTube:", URL: defaultYouTube},
	}
}

// Normalize fills in missing/zero values with defaults so partially-filled
// configs still behave correctly.
func (c *Config) Normalize() {
	c.Club = strings.TrimSpace(c.Club)
	if c.Club == "" {
		c.Club = DefaultClub
	}
	if strings.TrimSpace(c.HomeAddress) == "" {
		c.HomeAddress = DefaultHomeAddress
	}
	if strings.TrimSpace(c.Timezone) == "" {
		c.Timezone = DefaultTimezone
	}
	if c.MatchDuration <= 0 {
		c.MatchDuration = DefaultDuration
	}
	if c.JSONDir == "" {
		c.JSONDir = DefaultJSONDir
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.DataDir == "" {
		c.DataDir = DefaultDataDir
	}
	// An explicit empty list in YAML turns the links off; only nil means unset.
	if c.Links == nil {
		c.Links = defaultLinks()
	}
}

// Validate rejects settings Normalize cannot repair
func (c *Config) Validate() error {
	if c.UTCOffset <= -24*time.Hour || c.UTCOffset >= 24*time.Hour {
		return fmt.Errorf("utc_offset %s out of range", c.UTCOffset)
	}
	if c.UTCOffset%time.Minute != 0 {
		return fmt.Errorf("utc_offset %s must be whole minutes", c.UTCOffset)
	}
	if c.MatchDuration > 24*time.Hour {
		return fmt.Errorf("match_duration %s longer than a day", c.MatchDuration)
	}
	for i, l := range c.Links {
		if strings.TrimSpace(l.URL) == "" {
			return fmt.Errorf("links[%d]: url is required", i)
		}
	}
	return nil
}

// Load reads the YAML file at path, applies FIXTURES_* environment overrides
// and normalizes the result.
//
// A missing file is not an error when optional is true: the defaults are used.
func Load(path string, optional bool) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist) && optional:
		default:
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
