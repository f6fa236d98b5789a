// Package noop provides a no-operation transport that discards all events.
// Useful for testing and for clients configured without a DSN.
package noop

import (
	"context"

	"github.com/getsentry/sentry-go"
	"github.com/strongdm/sentry-cordova-go/pkg/cordova/core"
)

// noopTransport discards all events.
type noopTransport struct{}

// NewNoopTransport creates a transport that discards all events.
// All methods return nil and perform no operations.
func NewNoopTransport() core.Transport {
	return &noopTransport{}
}

func (t *noopTransport) Send(ctx context.Context, event *sentry.Event) error {
	return nil
}

func (t *noopTransport) Flush(ctx context.Context) error {
	return nil
}

func (t *noopTransport) Close() error {
	return nil
}
