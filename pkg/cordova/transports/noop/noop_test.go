package noop

import (
	"context"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/strongdm/sentry-cordova-go/pkg/cordova/core"
)

func TestNoopTransport_ImplementsTransportInterface(t *testing.T) {
	var _ core.Transport = NewNoopTransport()
}

func TestNoopTransport_AllMethodsReturnNil(t *testing.T) {
	transport := NewNoopTransport()
	ctx := context.Background()

	if err := transport.Send(ctx, &sentry.Event{EventID: "evt-1"}); err != nil {
		t.Errorf("Send returned error: %v", err)
	}
	if err := transport.Flush(ctx); err != nil {
		t.Errorf("Flush returned error: %v", err)
	}
	if err := transport.Close(); err != nil {
		t.Errorf("Close returned error: %v", err)
	}
}
