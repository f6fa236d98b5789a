// recover.go provides the Recover helper for goroutines and callbacks.

package core

import (
	"context"

	"github.com/getsentry/sentry-go"
)

// PanicRecorder captures recovered panic values.
type PanicRecorder interface {
	CaptureRecovered(ctx context.Context, recovered any, scope *sentry.Scope) *sentry.EventID
}

// Recover captures a panic, reports it through recorder, and returns the
// recovered value. Recover does NOT re-panic after recording.
//
// Use in defer:
//
//	func handler(ctx context.Context) {
//	    defer core.Recover(ctx, client)
//	    // code that might panic
//	}
func Recover(ctx context.Context, recorder PanicRecorder) any {
	r := recover()
	if r == nil {
		return nil
	}

	scope, _ := ScopeFromContext(ctx)
	recorder.CaptureRecovered(ctx, r, scope)

	return r
}
