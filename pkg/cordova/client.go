// client.go implements the Cordova client adapter over the base pipeline.

package cordova

import (
	"context"
	"fmt"

	"github.com/getsentry/sentry-go"
	"github.com/strongdm/sentry-cordova-go/pkg/cordova/backend"
	"github.com/strongdm/sentry-cordova-go/pkg/cordova/core"
)

// Client is the Sentry Cordova SDK client.
//
// See core.Options for the recognized configuration.
type Client struct {
	base   *core.BaseClient
	host   Host
	logger *core.Logger
}

// NewClient creates a Cordova client. The configuration is forwarded, with
// the Cordova backend, to the base client; the Client registers itself as
// the base client's event preparer.
func NewClient(opts Options, clientOpts ...ClientOption) (*Client, error) {
	cfg := &clientConfig{host: NoDocumentHost{}}
	for _, opt := range clientOpts {
		opt(cfg)
	}

	factory := cfg.backendFactory
	if factory == nil {
		factory = backend.Factory(cfg.backendOptions...)
	}

	c := &Client{host: cfg.host}

	baseOpts := append([]core.BaseOption{core.WithEventPreparer(c)}, cfg.baseOptions...)
	if cfg.logger != nil {
		baseOpts = append(baseOpts, core.WithLogger(cfg.logger))
	}

	base, err := core.NewBaseClient(factory, opts, baseOpts...)
	if err != nil {
		return nil, fmt.Errorf("create cordova client: %w", err)
	}
	c.base = base
	c.logger = base.Logger()

	return c, nil
}

// PrepareEvent tags event with the platform and the Cordova SDK identity and
// then delegates to the base pipeline, returning its result unmodified.
//
// A platform already set by the caller is kept. Previously listed SDK
// packages are kept in order and the Cordova package is appended, without
// checking for an existing entry.
func (c *Client) PrepareEvent(event *sentry.Event, scope *sentry.Scope, hint *sentry.EventHint) *sentry.Event {
	if event != nil {
		if event.Platform == "" {
			event.Platform = DefaultPlatform
		}

		packages := make([]sentry.SdkPackage, 0, len(event.Sdk.Packages)+1)
		packages = append(packages, event.Sdk.Packages...)
		packages = append(packages, sentry.SdkPackage{
			Name:    PackageName,
			Version: SDKVersion,
		})

		event.Sdk.Name = SDKName
		event.Sdk.Version = SDKVersion
		event.Sdk.Packages = packages
	}

	return c.base.PrepareEvent(event, scope, hint)
}

// CaptureException captures err. Returns the event ID, or nil if the event
// was not sent.
func (c *Client) CaptureException(ctx context.Context, err error, hint *sentry.EventHint, scope *sentry.Scope) *sentry.EventID {
	return c.base.CaptureException(ctx, err, hint, scope)
}

// CaptureMessage captures message at level.
func (c *Client) CaptureMessage(ctx context.Context, message string, level sentry.Level, scope *sentry.Scope) *sentry.EventID {
	return c.base.CaptureMessage(ctx, message, level, scope)
}

// CaptureEvent captures a caller-built event.
func (c *Client) CaptureEvent(ctx context.Context, event *sentry.Event, hint *sentry.EventHint, scope *sentry.Scope) *sentry.EventID {
	return c.base.CaptureEvent(ctx, event, hint, scope)
}

// CaptureRecovered captures a recovered panic value. It lets the client be
// used with core.Recover.
func (c *Client) CaptureRecovered(ctx context.Context, recovered any, scope *sentry.Scope) *sentry.EventID {
	return c.base.CaptureRecovered(ctx, recovered, scope)
}

// DSN returns the configured DSN, or nil when none is configured.
func (c *Client) DSN() *sentry.Dsn {
	return c.base.DSN()
}

// Options returns the configuration captured at construction.
func (c *Client) Options() Options {
	return c.base.Options()
}

// IsEnabled reports whether the client is enabled.
func (c *Client) IsEnabled() bool {
	return c.base.IsEnabled()
}

// Flush blocks until queued events are delivered or ctx is done.
func (c *Client) Flush(ctx context.Context) error {
	return c.base.Flush(ctx)
}

// Close releases the backend.
func (c *Client) Close() error {
	return c.base.Close()
}
