// options.go defines the client configuration shared by every platform.

package core

import (
	"log"

	"github.com/getsentry/sentry-go"
)

// DefaultMaxValueLength bounds message and exception values.
const DefaultMaxValueLength = 250

// Options configures a BaseClient.
type Options struct {
	// DSN is the endpoint identity events are sent to. An empty DSN is
	// allowed; the backend then discards events.
	DSN string

	// Environment and Release are applied to events that do not set them.
	Environment string
	Release     string
	Dist        string

	// SampleRate is the fraction of events sent. Zero (unset) sends every
	// event; set Disabled to send none.
	SampleRate float64

	// Debug enables SDK diagnostic logging to stderr when no logger is injected.
	Debug bool

	// Disabled turns every capture path and the report dialog off.
	Disabled bool

	// MaxValueLength truncates messages and exception values (default: 250).
	MaxValueLength int

	// Integrations are listed in the event's SDK descriptor.
	Integrations []string

	// AttachDeviceContext adds a "device" context snapshot to every event.
	AttachDeviceContext bool

	// Fingerprinting sets a stable grouping fingerprint on events without one.
	Fingerprinting bool

	// Scrubbing enables sensitive data redaction when non-nil.
	Scrubbing *ScrubberConfig

	// BeforeSend may modify the prepared event or drop it by returning nil.
	BeforeSend func(event *sentry.Event, hint *sentry.EventHint) *sentry.Event
}

func (o Options) sampleRate() float64 {
	if o.SampleRate <= 0 || o.SampleRate > 1 {
		return 1
	}
	return o.SampleRate
}

func (o Options) maxValueLength() int {
	if o.MaxValueLength <= 0 {
		return DefaultMaxValueLength
	}
	return o.MaxValueLength
}

// BaseOption configures a BaseClient.
type BaseOption func(*baseConfig)

type baseConfig struct {
	preparer EventPreparer
	logger   *log.Logger
	random   func() float64
}

// WithEventPreparer registers the preparation step run for every captured
// event. Platform adapters pass themselves here and delegate back to
// (*BaseClient).PrepareEvent.
func WithEventPreparer(p EventPreparer) BaseOption {
	return func(c *baseConfig) {
		c.preparer = p
	}
}

// WithLogger sets the logger for SDK diagnostics.
// An injected logger is always enabled, regardless of Options.Debug.
func WithLogger(logger *log.Logger) BaseOption {
	return func(c *baseConfig) {
		c.logger = logger
	}
}

// WithRandom replaces the source used for sampling decisions.
func WithRandom(fn func() float64) BaseOption {
	return func(c *baseConfig) {
		if fn != nil {
			c.random = fn
		}
	}
}
