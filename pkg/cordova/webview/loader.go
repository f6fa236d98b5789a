package webview

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// ScriptLoader fetches a script the way the web view would.
type ScriptLoader interface {
	Load(ctx context.Context, src string) error
}

// LoaderFunc adapts a function to ScriptLoader.
type LoaderFunc func(ctx context.Context, src string) error

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, src string) error {
	return f(ctx, src)
}

// HTTPLoader loads scripts over HTTP.
type HTTPLoader struct {
	Client *http.Client
}

// Load fetches src and discards the body. Non-2xx responses are errors.
func (l *HTTPLoader) Load(ctx context.Context, src string) error {
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("load %s: %w", src, err)
	}
	defer resp.Body.Close()

	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		return fmt.Errorf("read %s: %w", src, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("load %s: status %d", src, resp.StatusCode)
	}
	return nil
}
