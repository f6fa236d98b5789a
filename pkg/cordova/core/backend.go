// backend.go defines the contracts between the base client, platform
// backends and transports.

package core

import (
	"context"

	"github.com/getsentry/sentry-go"
)

// EventPreparer prepares an event for delivery. It returns nil when the
// event must be dropped.
type EventPreparer interface {
	PrepareEvent(event *sentry.Event, scope *sentry.Scope, hint *sentry.EventHint) *sentry.Event
}

// Backend is the platform-specific capture and delivery implementation.
// Implementations must be safe for concurrent use.
type Backend interface {
	// EventFromException builds an event describing err.
	EventFromException(err error, hint *sentry.EventHint) *sentry.Event

	// EventFromMessage builds an event carrying a plain message.
	EventFromMessage(message string, level sentry.Level, hint *sentry.EventHint) *sentry.Event

	// SendEvent delivers a prepared event.
	SendEvent(ctx context.Context, event *sentry.Event) error

	// Flush blocks until queued events are delivered or ctx is done.
	Flush(ctx context.Context) error

	// Close releases resources held by the backend.
	Close() error
}

// BackendFactory builds the platform backend for a set of client options.
type BackendFactory func(opts Options) (Backend, error)

// Transport is the destination for prepared events.
// Implementations must be safe for concurrent use.
type Transport interface {
	// Send delivers an event. Called after preparation.
	Send(ctx context.Context, event *sentry.Event) error

	// Flush ensures any buffered events are delivered.
	// For synchronous transports, this may be a no-op.
	Flush(ctx context.Context) error

	// Close releases resources held by the transport.
	// Queued transports reject Send after Close with ErrClosed.
	Close() error
}
