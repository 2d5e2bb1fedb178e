// Package config holds the immutable settings a scrape run is built from.
//
// A zero-argument run uses Default(). An optional YAML file may override any
// subset of the fields; keys that are absent keep their default value.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL      = "https://mildenhallcricketclub.hitscricket.com"
	DefaultUserAgent    = "Mozilla/5.0 (compatible; MCCBot/1.0; +https://mildenhallcricketclub.hitscricket.com)"
	DefaultHomePath     = "/"
	DefaultFixturesPath = "/fixtures/teamid_all/default.aspx"
	DefaultOutputDir    = "."
)

// Configuration validation errors.
var (
	ErrMissingBaseURL   = errors.New("base_url is required")
	ErrInvalidBaseURL   = errors.New("base_url must be an absolute http(s) URL")
	ErrMissingUserAgent = errors.New("user_agent is required")
	ErrMissingPath      = errors.New("paths.home and paths.fixtures are required")
	ErrInvalidTimeout   = errors.New("timeout must not be negative")
)

// Config is passed by value; nothing mutates it after Load returns.
type Config struct {
	BaseURL   string        `yaml:"base_url"`
	UserAgent string        `yaml:"user_agent"`
	Timeout   time.Duration `yaml:"timeout"` // zero disables the client timeout
	Paths     Paths         `yaml:"paths"`
	OutputDir string        `yaml:"output_dir"`
}

// Paths are resolved against BaseURL.
type Paths struct {
	Home     string `yaml:"home"`
	Fixtures string `yaml:"fixtures"`
}

// Default returns the settings for the club website.
func Default() Config {
	return Config{
		BaseURL:   DefaultBaseURL,
		UserAgent: DefaultUserAgent,
		Paths: Paths{
			Home:     DefaultHomePath,
			Fixtures: DefaultFixturesPath,
		},
		OutputDir: DefaultOutputDir,
	}
}

// Load reads a YAML file on top of Default and validates the result.
// An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks that the configuration can drive a scrape.
func (c Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return ErrMissingBaseURL
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidBaseURL
	}
	if strings.TrimSpace(c.UserAgent) == "" {
		return ErrMissingUserAgent
	}
	if c.Paths.Home == "" || c.Paths.Fixtures == "" {
		return ErrMissingPath
	}
	if c.Timeout < 0 {
		return ErrInvalidTimeout
	}
	return nil
}
