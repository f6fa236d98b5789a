// Package config loads the sentry-cordova CLI configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/getsentry/sentry-go"
	"github.com/strongdm/sentry-cordova-go/pkg/cordova/core"
)

// Environment variables that override file values.
const (
	EnvDSN         = "SENTRY_DSN"
	EnvEnvironment = "SENTRY_ENVIRONMENT"
	EnvRelease     = "SENTRY_RELEASE"
	EnvSampleRate  = "SENTRY_SAMPLE_RATE"
)

// Config is the file configuration.
type Config struct {
	DSN         string  `toml:"dsn"`
	Environment string  `toml:"environment"`
	Release     string  `toml:"release"`
	Dist        string  `toml:"dist"`
	SampleRate  float64 `toml:"sample_rate"` // in (0, 1]; set disabled to send nothing
	Debug       bool    `toml:"debug"`
	Disabled    bool    `toml:"disabled"`

	Scrubbing ScrubbingConfig `toml:"scrubbing"`
	Transport TransportConfig `toml:"transport"`
	Dialog    DialogConfig    `toml:"dialog"`
}

// ScrubbingConfig enables sensitive data redaction.
type ScrubbingConfig struct {
	Enabled       bool     `toml:"enabled"`
	SensitiveKeys []string `toml:"sensitive_keys"`
}

// TransportConfig controls event delivery.
type TransportConfig struct {
	// Stderr prints events instead of sending them.
	Stderr    bool    `toml:"stderr"`
	Verbose   bool    `toml:"verbose"`
	QueueSize int     `toml:"queue_size"`
	RateLimit float64 `toml:"rate_limit"`
	Burst     int     `toml:"burst"`
}

// DialogConfig holds report dialog texts.
type DialogConfig struct {
	Lang           string `toml:"lang"`
	Title          string `toml:"title"`
	Subtitle       string `toml:"subtitle"`
	Subtitle2      string `toml:"subtitle2"`
	LabelName      string `toml:"label_name"`
	LabelEmail     string `toml:"label_email"`
	LabelComments  string `toml:"label_comments"`
	LabelClose     string `toml:"label_close"`
	LabelSubmit    string `toml:"label_submit"`
	ErrorGeneric   string `toml:"error_generic"`
	ErrorFormEntry string `toml:"error_form_entry"`
	SuccessMessage string `toml:"success_message"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Environment: "production",
		SampleRate:  1.0,
		Transport: TransportConfig{
			QueueSize: 100,
		},
	}
}

// Load reads path on top of the defaults and applies environment overrides.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("config file not found: %s", path)
			}
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	}

	if err := cfg.ApplyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return cfg, nil
}

// ApplyEnvOverrides replaces file values with SENTRY_* environment variables.
func (c *Config) ApplyEnvOverrides() error {
	if v := os.Getenv(EnvDSN); v != "" {
		c.DSN = v
	}
	if v := os.Getenv(EnvEnvironment); v != "" {
		c.Environment = v
	}
	if v := os.Getenv(EnvRelease); v != "" {
		c.Release = v
	}
	if v := os.Getenv(EnvSampleRate); v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSampleRate, err)
		}
		c.SampleRate = rate
	}
	return nil
}

// Validate checks value ranges and the DSN format.
func (c *Config) Validate() error {
	if c.SampleRate <= 0 || c.SampleRate > 1 {
		return fmt.Errorf("sample_rate must be greater than 0 and at most 1, got %v (use disabled = true to send nothing)", c.SampleRate)
	}
	if c.Transport.QueueSize < 0 {
		return fmt.Errorf("transport.queue_size must not be negative, got %d", c.Transport.QueueSize)
	}
	if c.Transport.RateLimit < 0 {
		return fmt.Errorf("transport.rate_limit must not be negative, got %v", c.Transport.RateLimit)
	}
	if c.DSN != "" {
		if _, err := sentry.NewDsn(c.DSN); err != nil {
			return fmt.Errorf("dsn: %w", err)
		}
	}
	return nil
}

// ClientOptions converts the file configuration into client options.
func (c *Config) ClientOptions() core.Options {
	opts := core.Options{
		DSN:                 c.DSN,
		Environment:         c.Environment,
		Release:             c.Release,
		Dist:                c.Dist,
		SampleRate:          c.SampleRate,
		Debug:               c.Debug,
		Disabled:            c.Disabled,
		AttachDeviceContext: true,
		Fingerprinting:      true,
	}
	if c.Scrubbing.Enabled {
		scrub := core.DefaultScrubberConfig()
		scrub.SensitiveKeys = c.Scrubbing.SensitiveKeys
		opts.Scrubbing = &scrub
	}
	return opts
}

// DialogOptions converts the dialog texts for a given event.
func (c *Config) DialogOptions(eventID string) core.DialogOptions {
	d := c.Dialog
	return core.DialogOptions{
		EventID:        eventID,
		Lang:           d.Lang,
		Title:          d.Title,
		Subtitle:       d.Subtitle,
		Subtitle2:      d.Subtitle2,
		LabelName:      d.LabelName,
		LabelEmail:     d.LabelEmail,
		LabelComments:  d.LabelComments,
		LabelClose:     d.LabelClose,
		LabelSubmit:    d.LabelSubmit,
		ErrorGeneric:   d.ErrorGeneric,
		ErrorFormEntry: d.ErrorFormEntry,
		SuccessMessage: d.SuccessMessage,
	}
}
