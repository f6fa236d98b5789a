// Package backend provides the Cordova platform backend: it builds events
// from errors and messages and routes them either to the native SDK through
// the Cordova bridge or to an event transport.
package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/getsentry/sentry-go"
	"github.com/strongdm/sentry-cordova-go/pkg/cordova/core"
	"github.com/strongdm/sentry-cordova-go/pkg/cordova/transports/httpsentry"
	"github.com/strongdm/sentry-cordova-go/pkg/cordova/transports/noop"
	"golang.org/x/time/rate"
)

// Native plugin identifiers the bridge is called with.
const (
	PluginName      = "SentryCordova"
	ActionSendEvent = "sendEvent"
)

// ErrRateLimited is returned by SendEvent when the event exceeds the
// configured rate limit.
var ErrRateLimited = errors.New("event dropped by rate limit")

// NativeBridge is the Cordova exec bridge to the native SDK.
type NativeBridge interface {
	// Available reports whether the native plugin is installed and the
	// device is ready.
	Available() bool

	// Exec invokes action on plugin with a JSON payload.
	Exec(ctx context.Context, plugin, action string, payload []byte) error
}

// Option configures a Backend.
type Option func(*config)

type config struct {
	transport        core.Transport
	bridge           NativeBridge
	limit            rate.Limit
	burst            int
	attachStacktrace bool
	onDropped        func(event *sentry.Event)
}

// WithTransport sets the transport used when the native bridge is absent.
func WithTransport(t core.Transport) Option {
	return func(c *config) {
		c.transport = t
	}
}

// WithNativeBridge routes events to the native SDK while the bridge is available.
func WithNativeBridge(b NativeBridge) Option {
	return func(c *config) {
		c.bridge = b
	}
}

// WithRateLimit caps outgoing events to eventsPerSecond with the given burst.
func WithRateLimit(eventsPerSecond float64, burst int) Option {
	return func(c *config) {
		if eventsPerSecond > 0 {
			c.limit = rate.Limit(eventsPerSecond)
			c.burst = max(burst, 1)
		}
	}
}

// WithAttachStacktrace attaches the current stack to message events and to
// errors that carry no stack of their own.
func WithAttachStacktrace() Option {
	return func(c *config) {
		c.attachStacktrace = true
	}
}

// WithOnDropped sets a callback invoked for each rate limited event.
func WithOnDropped(fn func(event *sentry.Event)) Option {
	return func(c *config) {
		c.onDropped = fn
	}
}

// Backend is the Cordova implementation of core.Backend.
type Backend struct {
	transport        core.Transport
	bridge           NativeBridge
	limiter          *rate.Limiter
	attachStacktrace bool
	onDropped        func(event *sentry.Event)
}

// New creates a Backend for opts. Without an explicit transport, events go
// over HTTP to opts.DSN, or nowhere when no DSN is configured.
func New(opts core.Options, backendOpts ...Option) (*Backend, error) {
	cfg := &config{}
	for _, opt := range backendOpts {
		opt(cfg)
	}

	b := &Backend{
		transport:        cfg.transport,
		bridge:           cfg.bridge,
		attachStacktrace: cfg.attachStacktrace,
		onDropped:        cfg.onDropped,
	}

	if b.transport == nil {
		if opts.DSN != "" {
			b.transport = httpsentry.NewHTTPTransport(opts)
		} else {
			b.transport = noop.NewNoopTransport()
		}
	}

	if cfg.limit > 0 {
		b.limiter = rate.NewLimiter(cfg.limit, cfg.burst)
	}

	return b, nil
}

// Factory returns a core.BackendFactory building a Backend with backendOpts.
func Factory(backendOpts ...Option) core.BackendFactory {
	return func(opts core.Options) (core.Backend, error) {
		return New(opts, backendOpts...)
	}
}

// EventFromException builds an error-level event describing err and every
// error it wraps, outermost last.
func (b *Backend) EventFromException(err error, hint *sentry.EventHint) *sentry.Event {
	event := sentry.NewEvent()
	event.Level = sentry.LevelError

	for e := err; e != nil; e = errors.Unwrap(e) {
		exc := sentry.Exception{
			Type:       reflect.TypeOf(e).String(),
			Value:      e.Error(),
			Stacktrace: sentry.ExtractStacktrace(e),
		}
		event.Exception = append([]sentry.Exception{exc}, event.Exception...)
	}

	if n := len(event.Exception); n > 0 && event.Exception[n-1].Stacktrace == nil && b.attachStacktrace {
		event.Exception[n-1].Stacktrace = sentry.NewStacktrace()
	}

	applyHint(event, hint)
	return event
}

// EventFromMessage builds an event carrying message at level.
func (b *Backend) EventFromMessage(message string, level sentry.Level, hint *sentry.EventHint) *sentry.Event {
	event := sentry.NewEvent()
	event.Level = level
	event.Message = message

	if b.attachStacktrace {
		event.Threads = []sentry.Thread{{
			Stacktrace: sentry.NewStacktrace(),
			Current:    true,
		}}
	}

	applyHint(event, hint)
	return event
}

// SendEvent forwards event to the native SDK when the bridge is available,
// otherwise to the transport.
func (b *Backend) SendEvent(ctx context.Context, event *sentry.Event) error {
	if b.limiter != nil && !b.limiter.Allow() {
		if b.onDropped != nil {
			b.onDropped(event)
		}
		return ErrRateLimited
	}

	if b.bridge != nil && b.bridge.Available() {
		payload, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("encode event: %w", err)
		}
		if err := b.bridge.Exec(ctx, PluginName, ActionSendEvent, payload); err != nil {
			return fmt.Errorf("native %s: %w", ActionSendEvent, err)
		}
		return nil
	}

	return b.transport.Send(ctx, event)
}

// Flush delegates to the transport.
func (b *Backend) Flush(ctx context.Context) error {
	return b.transport.Flush(ctx)
}

// Close delegates to the transport.
func (b *Backend) Close() error {
	return b.transport.Close()
}

func applyHint(event *sentry.Event, hint *sentry.EventHint) {
	if hint != nil && hint.EventID != "" {
		event.EventID = sentry.EventID(hint.EventID)
	}
}
