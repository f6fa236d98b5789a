// Package stderr provides a transport that prints events in human-readable
// form. Useful for development and debugging inside a web view console.
package stderr

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/getsentry/sentry-go"
	"github.com/strongdm/sentry-cordova-go/pkg/cordova/core"
)

// StderrTransportOption configures the stderr transport.
type StderrTransportOption func(*stderrTransportConfig)

type stderrTransportConfig struct {
	verbose bool
	out     io.Writer
}

// WithVerbose enables stack frames in the output.
func WithVerbose() StderrTransportOption {
	return func(c *stderrTransportConfig) {
		c.verbose = true
	}
}

// WithWriter redirects output away from os.Stderr.
func WithWriter(w io.Writer) StderrTransportOption {
	return func(c *stderrTransportConfig) {
		if w != nil {
			c.out = w
		}
	}
}

type stderrTransport struct {
	mu      sync.Mutex
	out     io.Writer
	verbose bool
}

// NewStderrTransport creates a transport that writes to stderr.
func NewStderrTransport(opts ...StderrTransportOption) core.Transport {
	cfg := &stderrTransportConfig{out: os.Stderr}
	for _, opt := range opts {
		opt(cfg)
	}
	return &stderrTransport{
		out:     cfg.out,
		verbose: cfg.verbose,
	}
}

// Send formats and outputs the event.
// Format: [SENTRY] <timestamp> <LEVEL> <event_id> <platform> (<sdk name>/<sdk version>)
func (t *stderrTransport) Send(ctx context.Context, event *sentry.Event) error {
	var b strings.Builder

	level := strings.ToUpper(string(event.Level))
	if level == "" {
		level = "ERROR"
	}
	fmt.Fprintf(&b, "[SENTRY] %s %s %s", event.Timestamp.Format("2006-01-02T15:04:05Z07:00"), level, event.EventID)
	if event.Platform != "" {
		fmt.Fprintf(&b, " %s", event.Platform)
	}
	if event.Sdk.Name != "" {
		fmt.Fprintf(&b, " (%s/%s)", event.Sdk.Name, event.Sdk.Version)
	}
	b.WriteString("\n")

	if event.Message != "" {
		fmt.Fprintf(&b, "        Message: %s\n", event.Message)
	}
	for _, exc := range event.Exception {
		fmt.Fprintf(&b, "        Exception: %s: %s\n", exc.Type, exc.Value)
		if t.verbose && exc.Stacktrace != nil {
			for i := len(exc.Stacktrace.Frames) - 1; i >= 0; i-- {
				f := exc.Stacktrace.Frames[i]
				fmt.Fprintf(&b, "          %s.%s (%s:%d)\n", f.Module, f.Function, f.Filename, f.Lineno)
			}
		}
	}
	if len(event.Fingerprint) > 0 {
		fmt.Fprintf(&b, "        Fingerprint: %s\n", strings.Join(event.Fingerprint, ","))
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	_, err := io.WriteString(t.out, b.String())
	return err
}

// Flush is a no-op for the stderr transport.
func (t *stderrTransport) Flush(ctx context.Context) error {
	return nil
}

// Close is a no-op for the stderr transport.
func (t *stderrTransport) Close() error {
	return nil
}
