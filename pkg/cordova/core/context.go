// context.go propagates a capture scope through context.Context.

package core

import (
	"context"

	"github.com/getsentry/sentry-go"
)

type scopeKey struct{}

// WithScope returns a context carrying scope. Capture calls that receive a
// nil scope fall back to the one attached here.
func WithScope(ctx context.Context, scope *sentry.Scope) context.Context {
	return context.WithValue(ctx, scopeKey{}, scope)
}

// ScopeFromContext extracts the scope attached with WithScope.
// Returns nil and false if none is set.
func ScopeFromContext(ctx context.Context) (*sentry.Scope, bool) {
	if ctx == nil {
		return nil, false
	}
	scope, ok := ctx.Value(scopeKey{}).(*sentry.Scope)
	return scope, ok && scope != nil
}
