// client.go implements BaseClient, the generic event pipeline.

package core

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"
	"slices"
	"time"
	"unicode/utf8"

	"github.com/getsentry/sentry-go"
)

// BaseClient is the platform-independent client. Platform adapters compose
// with it and customize event preparation through WithEventPreparer.
type BaseClient struct {
	opts      Options
	dsn       *sentry.Dsn
	backend   Backend
	preparer  EventPreparer
	scrubber  *Scrubber
	logger    *Logger
	random    func() float64
	startTime time.Time
}

// NewBaseClient parses the configured DSN, builds the platform backend with
// factory and returns a client ready to capture events.
func NewBaseClient(factory BackendFactory, opts Options, baseOpts ...BaseOption) (*BaseClient, error) {
	if factory == nil {
		return nil, errors.New("backend factory is required")
	}

	cfg := &baseConfig{random: rand.Float64}
	for _, opt := range baseOpts {
		opt(cfg)
	}

	c := &BaseClient{
		opts:      opts,
		random:    cfg.random,
		startTime: time.Now(),
	}

	switch {
	case cfg.logger != nil:
		c.logger = NewLogger(cfg.logger)
	case opts.Debug:
		c.logger = NewLogger(log.New(os.Stderr, "", log.LstdFlags))
	default:
		c.logger = NewLogger(nil)
	}

	if opts.DSN != "" {
		dsn, err := sentry.NewDsn(opts.DSN)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDSN, err)
		}
		c.dsn = dsn
	}

	if opts.Scrubbing != nil {
		c.scrubber = NewScrubber(*opts.Scrubbing)
	}

	backend, err := factory(opts)
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}
	c.backend = backend

	c.preparer = cfg.preparer
	if c.preparer == nil {
		c.preparer = c
	}

	return c, nil
}

// DSN returns the parsed configured DSN, or nil when none is configured.
func (c *BaseClient) DSN() *sentry.Dsn {
	return c.dsn
}

// Options returns the configuration captured at construction.
func (c *BaseClient) Options() Options {
	return c.opts
}

// IsEnabled reports whether the client's enablement flag is on.
func (c *BaseClient) IsEnabled() bool {
	return !c.opts.Disabled
}

// Logger returns the client's diagnostic logger.
func (c *BaseClient) Logger() *Logger {
	return c.logger
}

// Backend returns the platform backend.
func (c *BaseClient) Backend() Backend {
	return c.backend
}

// CaptureException captures err and returns the event ID, or nil if the
// event was not sent.
func (c *BaseClient) CaptureException(ctx context.Context, err error, hint *sentry.EventHint, scope *sentry.Scope) *sentry.EventID {
	if err == nil {
		return nil
	}
	if hint == nil {
		hint = &sentry.EventHint{}
	}
	if hint.OriginalException == nil {
		hint.OriginalException = err
	}
	event := c.backend.EventFromException(err, hint)
	return c.CaptureEvent(ctx, event, hint, scope)
}

// CaptureMessage captures a plain message at the given level.
func (c *BaseClient) CaptureMessage(ctx context.Context, message string, level sentry.Level, scope *sentry.Scope) *sentry.EventID {
	hint := &sentry.EventHint{}
	event := c.backend.EventFromMessage(message, level, hint)
	return c.CaptureEvent(ctx, event, hint, scope)
}

// CaptureRecovered captures a value recovered from a panic at fatal level.
func (c *BaseClient) CaptureRecovered(ctx context.Context, recovered any, scope *sentry.Scope) *sentry.EventID {
	if recovered == nil {
		return nil
	}
	hint := &sentry.EventHint{RecoveredException: recovered}
	var event *sentry.Event
	if err, ok := recovered.(error); ok {
		event = c.backend.EventFromException(err, hint)
	} else {
		event = c.backend.EventFromMessage(fmt.Sprintf("%v", recovered), sentry.LevelFatal, hint)
	}
	if event == nil {
		return nil
	}
	event.Level = sentry.LevelFatal
	return c.CaptureEvent(ctx, event, hint, scope)
}

// CaptureEvent runs event through the registered preparer, the BeforeSend
// hook and the backend. Failures are logged, never returned.
func (c *BaseClient) CaptureEvent(ctx context.Context, event *sentry.Event, hint *sentry.EventHint, scope *sentry.Scope) *sentry.EventID {
	if event == nil {
		return nil
	}
	if !c.IsEnabled() {
		c.logger.Warn("SDK not enabled, will not send event.")
		return nil
	}
	if rate := c.opts.sampleRate(); rate < 1 && c.random() >= rate {
		c.logger.Log("Discarding event because it's not included in the random sample (sampling rate = %v)", rate)
		return nil
	}
	if scope == nil {
		scope, _ = ScopeFromContext(ctx)
	}

	prepared := c.preparer.PrepareEvent(event, scope, hint)
	if prepared == nil {
		c.logger.Warn("An event processor returned nil, will not send event.")
		return nil
	}

	if c.opts.BeforeSend != nil {
		prepared = c.opts.BeforeSend(prepared, hint)
		if prepared == nil {
			c.logger.Warn("BeforeSend returned nil, will not send event.")
			return nil
		}
	}

	if err := c.backend.SendEvent(ctx, prepared); err != nil {
		c.logger.Error("Failed to send event %s: %v", prepared.EventID, err)
		return nil
	}

	id := prepared.EventID
	return &id
}

// PrepareEvent fills identity and option defaults, merges the scope and
// applies scrubbing and fingerprinting. It returns nil if the scope drops
// the event.
func (c *BaseClient) PrepareEvent(event *sentry.Event, scope *sentry.Scope, hint *sentry.EventHint) *sentry.Event {
	if event == nil {
		return nil
	}

	if event.EventID == "" {
		event.EventID = NewEventID()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.Contexts == nil {
		event.Contexts = make(map[string]sentry.Context)
	}
	if event.Tags == nil {
		event.Tags = make(map[string]string)
	}
	if event.Extra == nil {
		event.Extra = make(map[string]interface{})
	}

	c.applyClientOptions(event)
	c.applyIntegrationsMetadata(event)

	if c.opts.AttachDeviceContext {
		if _, ok := event.Contexts["device"]; !ok {
			event.Contexts["device"] = DeviceContext(c.startTime)
		}
	}

	if scope != nil {
		event = scope.ApplyToEvent(event, hint)
		if event == nil {
			return nil
		}
	}

	if c.scrubber != nil {
		c.scrubber.ScrubEvent(event)
	}

	if c.opts.Fingerprinting && len(event.Fingerprint) == 0 {
		event.Fingerprint = []string{Fingerprint(event)}
	}

	return event
}

// Flush delegates to the backend.
func (c *BaseClient) Flush(ctx context.Context) error {
	return c.backend.Flush(ctx)
}

// Close delegates to the backend.
func (c *BaseClient) Close() error {
	return c.backend.Close()
}

func (c *BaseClient) applyClientOptions(event *sentry.Event) {
	if event.Environment == "" && c.opts.Environment != "" {
		event.Environment = c.opts.Environment
	}
	if event.Release == "" && c.opts.Release != "" {
		event.Release = c.opts.Release
	}
	if event.Dist == "" && c.opts.Dist != "" {
		event.Dist = c.opts.Dist
	}

	maxLen := c.opts.maxValueLength()
	event.Message = truncate(event.Message, maxLen)
	for i := range event.Exception {
		event.Exception[i].Value = truncate(event.Exception[i].Value, maxLen)
	}
}

// applyIntegrationsMetadata appends the configured integrations the event's
// SDK descriptor does not already list.
func (c *BaseClient) applyIntegrationsMetadata(event *sentry.Event) {
	if len(c.opts.Integrations) == 0 {
		return
	}
	integrations := make([]string, 0, len(event.Sdk.Integrations)+len(c.opts.Integrations))
	integrations = append(integrations, event.Sdk.Integrations...)
	for _, name := range c.opts.Integrations {
		if !slices.Contains(integrations, name) {
			integrations = append(integrations, name)
		}
	}
	event.Sdk.Integrations = integrations
}

// truncate cuts s to at most maxLen bytes on a rune boundary and appends an
// ellipsis when shortened.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:runeBoundary(s, maxLen)] + "..."
}

// runeBoundary returns the largest n <= maxLen at which s can be cut
// without splitting a UTF-8 sequence.
func runeBoundary(s string, maxLen int) int {
	for maxLen > 0 && !utf8.RuneStart(s[maxLen]) {
		maxLen--
	}
	return maxLen
}
