// Package multi provides a transport that fans out to multiple transports.
// All transports receive all events; errors are aggregated.
package multi

import (
	"context"
	"errors"

	"github.com/getsentry/sentry-go"
	"github.com/strongdm/sentry-cordova-go/pkg/cordova/core"
	"github.com/strongdm/sentry-cordova-go/pkg/cordova/transports/noop"
)

type multiTransport struct {
	transports []core.Transport
}

// NewMultiTransport creates a transport that sends to every non-nil given
// transport. Errors are aggregated via errors.Join. With no transports left
// events are discarded; a single transport is returned as is.
func NewMultiTransport(transports ...core.Transport) core.Transport {
	active := make([]core.Transport, 0, len(transports))
	for _, t := range transports {
		if t != nil {
			active = append(active, t)
		}
	}

	switch len(active) {
	case 0:
		return noop.NewNoopTransport()
	case 1:
		return active[0]
	}
	return &multiTransport{
		transports: active,
	}
}

// Send delivers the event to all transports, even if some return errors.
func (m *multiTransport) Send(ctx context.Context, event *sentry.Event) error {
	var errs []error
	for _, t := range m.transports {
		if err := t.Send(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *multiTransport) Flush(ctx context.Context) error {
	var errs []error
	for _, t := range m.transports {
		if err := t.Flush(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *multiTransport) Close() error {
	var errs []error
	for _, t := range m.transports {
		if err := t.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
