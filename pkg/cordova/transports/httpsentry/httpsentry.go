// Package httpsentry delivers events to a Sentry server over HTTP using the
// sentry-go HTTP transport.
package httpsentry

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/strongdm/sentry-cordova-go/pkg/cordova/core"
)

// defaultFlushTimeout bounds Flush when ctx carries no deadline.
const defaultFlushTimeout = 2 * time.Second

// HTTPTransportOption configures the HTTP transport.
type HTTPTransportOption func(*httpTransportConfig)

type httpTransportConfig struct {
	client     *http.Client
	timeout    time.Duration
	bufferSize int
}

// WithHTTPClient sets the HTTP client used for delivery.
func WithHTTPClient(client *http.Client) HTTPTransportOption {
	return func(c *httpTransportConfig) {
		c.client = client
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) HTTPTransportOption {
	return func(c *httpTransportConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithBufferSize sets how many events the sentry-go transport buffers.
func WithBufferSize(n int) HTTPTransportOption {
	return func(c *httpTransportConfig) {
		if n > 0 {
			c.bufferSize = n
		}
	}
}

type httpTransport struct {
	inner  *sentry.HTTPTransport
	mu     sync.Mutex
	closed bool
}

// NewHTTPTransport creates a transport delivering to the server named by
// opts.DSN.
func NewHTTPTransport(opts core.Options, transportOpts ...HTTPTransportOption) core.Transport {
	cfg := &httpTransportConfig{}
	for _, opt := range transportOpts {
		opt(cfg)
	}

	inner := sentry.NewHTTPTransport()
	if cfg.timeout > 0 {
		inner.Timeout = cfg.timeout
	}
	if cfg.bufferSize > 0 {
		inner.BufferSize = cfg.bufferSize
	}
	inner.Configure(sentry.ClientOptions{
		Dsn:        opts.DSN,
		Debug:      opts.Debug,
		HTTPClient: cfg.client,
	})

	return &httpTransport{inner: inner}
}

// Send queues the event on the sentry-go worker.
func (t *httpTransport) Send(ctx context.Context, event *sentry.Event) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return core.ErrClosed
	}
	t.inner.SendEvent(event)
	return nil
}

// Flush waits for queued events until ctx's deadline, or two seconds when
// ctx has none.
func (t *httpTransport) Flush(ctx context.Context) error {
	timeout := defaultFlushTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	if !t.inner.Flush(timeout) {
		return errors.New("flush timed out")
	}
	return nil
}

// Close flushes pending events and rejects further sends.
func (t *httpTransport) Close() error {
	t.mu.Lock()
	t.closed = true
	t.mu.Unlock()

	if !t.inner.Flush(defaultFlushTimeout) {
		return errors.New("flush timed out")
	}
	return nil
}
