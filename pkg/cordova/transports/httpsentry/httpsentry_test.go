package httpsentry

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/strongdm/sentry-cordova-go/pkg/cordova/core"
)

type request struct {
	path string
	body string
}

func newServer(t *testing.T) (*httptest.Server, chan request) {
	t.Helper()
	received := make(chan request, 10)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		received <- request{path: r.URL.Path, body: string(body)}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)
	return server, received
}

func dsnFor(server *httptest.Server) string {
	return strings.Replace(server.URL, "http://", "http://public@", 1) + "/42"
}

func TestHTTPTransport_DeliversToProjectEndpoint(t *testing.T) {
	server, received := newServer(t)
	transport := NewHTTPTransport(core.Options{DSN: dsnFor(server)},
		WithHTTPClient(server.Client()), WithTimeout(time.Second), WithBufferSize(10))

	event := sentry.NewEvent()
	event.EventID = "0123456789abcdef0123456789abcdef"
	event.Message = "hello from the web view"
	event.Level = sentry.LevelError
	event.Platform = "javascript"
	require.NoError(t, transport.Send(context.Background(), event))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, transport.Flush(ctx))

	select {
	case req := <-received:
		assert.Contains(t, req.path, "/api/42/")
		assert.Contains(t, req.body, "0123456789abcdef0123456789abcdef")
		assert.Contains(t, req.body, "hello from the web view")
	case <-time.After(2 * time.Second):
		t.Fatal("server received no request")
	}
}

func TestHTTPTransport_SendAfterClose(t *testing.T) {
	server, _ := newServer(t)
	transport := NewHTTPTransport(core.Options{DSN: dsnFor(server)}, WithHTTPClient(server.Client()))

	require.NoError(t, transport.Close())

	err := transport.Send(context.Background(), sentry.NewEvent())
	assert.True(t, errors.Is(err, core.ErrClosed))
}
