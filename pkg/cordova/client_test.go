package cordova

import (
	"bytes"
	"context"
	"errors"
	"log"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/strongdm/sentry-cordova-go/pkg/cordova/core"
)

func newTestClient(t *testing.T, opts Options, clientOpts ...ClientOption) (*Client, *fakeBackend) {
	t.Helper()
	backend := &fakeBackend{}
	all := append([]ClientOption{WithBackendFactory(backend.factory())}, clientOpts...)
	client, err := NewClient(opts, all...)
	require.NoError(t, err)
	return client, backend
}

func TestPrepareEvent_DefaultsPlatform(t *testing.T) {
	client, _ := newTestClient(t, Options{DSN: testDSN})

	event := client.PrepareEvent(sentry.NewEvent(), nil, nil)

	require.NotNil(t, event)
	assert.Equal(t, "javascript", event.Platform)
}

func TestPrepareEvent_KeepsCallerPlatform(t *testing.T) {
	client, _ := newTestClient(t, Options{DSN: testDSN})

	event := sentry.NewEvent()
	event.Platform = "cocoa"
	prepared := client.PrepareEvent(event, nil, nil)

	require.NotNil(t, prepared)
	assert.Equal(t, "cocoa", prepared.Platform)
}

func TestPrepareEvent_SetsSDKIdentity(t *testing.T) {
	client, _ := newTestClient(t, Options{DSN: testDSN})

	event := sentry.NewEvent()
	event.Sdk = sentry.SdkInfo{Name: "sentry.javascript.browser", Version: "4.0.0"}
	prepared := client.PrepareEvent(event, nil, nil)

	require.NotNil(t, prepared)
	assert.Equal(t, SDKName, prepared.Sdk.Name)
	assert.Equal(t, SDKVersion, prepared.Sdk.Version)
	require.Len(t, prepared.Sdk.Packages, 1)
	assert.Equal(t, sentry.SdkPackage{Name: "npm:sentry-cordova", Version: SDKVersion}, prepared.Sdk.Packages[0])
}

func TestPrepareEvent_AppendsPackageAfterExisting(t *testing.T) {
	client, _ := newTestClient(t, Options{DSN: testDSN})

	existing := []sentry.SdkPackage{
		{Name: "npm:@sentry/browser", Version: "4.0.0"},
		{Name: "npm:@sentry/core", Version: "4.0.0"},
	}
	event := sentry.NewEvent()
	event.Sdk.Packages = append([]sentry.SdkPackage(nil), existing...)
	event.Sdk.Integrations = []string{"Breadcrumbs"}

	prepared := client.PrepareEvent(event, nil, nil)

	require.NotNil(t, prepared)
	require.Len(t, prepared.Sdk.Packages, len(existing)+1)
	assert.Equal(t, existing, prepared.Sdk.Packages[:len(existing)])
	assert.Equal(t, PackageName, prepared.Sdk.Packages[len(existing)].Name)
	assert.Equal(t, SDKVersion, prepared.Sdk.Packages[len(existing)].Version)
	assert.Equal(t, []string{"Breadcrumbs"}, prepared.Sdk.Integrations, "other descriptor fields survive")
}

func TestPrepareEvent_RepeatedPreparationAppendsAgain(t *testing.T) {
	client, _ := newTestClient(t, Options{DSN: testDSN})

	event := sentry.NewEvent()
	event = client.PrepareEvent(event, nil, nil)
	event = client.PrepareEvent(event, nil, nil)

	require.NotNil(t, event)
	require.Len(t, event.Sdk.Packages, 2)
	assert.Equal(t, PackageName, event.Sdk.Packages[0].Name)
	assert.Equal(t, PackageName, event.Sdk.Packages[1].Name)
}

func TestPrepareEvent_DelegatesToBase(t *testing.T) {
	client, _ := newTestClient(t, Options{
		DSN:          testDSN,
		Environment:  "staging",
		Release:      "app@1.0.0",
		Integrations: []string{"GlobalHandlers"},
	})

	scope := sentry.NewScope()
	scope.SetTag("screen", "checkout")

	prepared := client.PrepareEvent(sentry.NewEvent(), scope, nil)

	require.NotNil(t, prepared)
	assert.NotEmpty(t, prepared.EventID, "base assigns the event id")
	assert.False(t, prepared.Timestamp.IsZero(), "base assigns the timestamp")
	assert.Equal(t, "staging", prepared.Environment)
	assert.Equal(t, "app@1.0.0", prepared.Release)
	assert.Equal(t, "checkout", prepared.Tags["screen"])
	assert.Equal(t, []string{"GlobalHandlers"}, prepared.Sdk.Integrations)
	assert.Equal(t, SDKName, prepared.Sdk.Name, "base keeps the adapter's identity")
}

func TestPrepareEvent_ReturnsBaseDrop(t *testing.T) {
	client, _ := newTestClient(t, Options{DSN: testDSN})

	scope := sentry.NewScope()
	scope.AddEventProcessor(func(event *sentry.Event, hint *sentry.EventHint) *sentry.Event {
		return nil
	})

	event := sentry.NewEvent()
	prepared := client.PrepareEvent(event, scope, nil)

	assert.Nil(t, prepared)
	assert.Equal(t, "javascript", event.Platform, "event was still enriched in place")
}

func TestCaptureMessage_RunsAdapterPreparation(t *testing.T) {
	client, backend := newTestClient(t, Options{DSN: testDSN})

	id := client.CaptureMessage(context.Background(), "boom", sentry.LevelWarning, nil)
	require.NotNil(t, id)

	events := backend.getEvents()
	require.Len(t, events, 1)
	assert.Equal(t, *id, events[0].EventID)
	assert.Equal(t, "javascript", events[0].Platform)
	assert.Equal(t, SDKName, events[0].Sdk.Name)
	require.Len(t, events[0].Sdk.Packages, 1)
}

func TestCaptureException_RunsAdapterPreparation(t *testing.T) {
	client, backend := newTestClient(t, Options{DSN: testDSN})

	id := client.CaptureException(context.Background(), errors.New("kaput"), nil, nil)
	require.NotNil(t, id)

	events := backend.getEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "kaput", events[0].Exception[0].Value)
	assert.Equal(t, SDKName, events[0].Sdk.Name)
}

func TestCapture_DisabledClientSendsNothing(t *testing.T) {
	client, backend := newTestClient(t, Options{DSN: testDSN, Disabled: true})

	id := client.CaptureMessage(context.Background(), "boom", sentry.LevelError, nil)

	assert.Nil(t, id)
	assert.Empty(t, backend.getEvents())
}

func TestCapture_BackendErrorIsLogged(t *testing.T) {
	var buf bytes.Buffer
	backend := &fakeBackend{sendErr: errors.New("offline")}
	client, err := NewClient(Options{DSN: testDSN},
		WithBackendFactory(backend.factory()),
		WithLogger(log.New(&buf, "", 0)),
	)
	require.NoError(t, err)

	id := client.CaptureMessage(context.Background(), "boom", sentry.LevelError, nil)

	assert.Nil(t, id)
	assert.Contains(t, buf.String(), "Sentry Logger [Error]: Failed to send event")
	assert.Contains(t, buf.String(), "offline")
}

func TestRecover_CapturesPanicThroughAdapter(t *testing.T) {
	client, backend := newTestClient(t, Options{DSN: testDSN})

	func() {
		defer core.Recover(context.Background(), client)
		panic("unexpected")
	}()

	events := backend.getEvents()
	require.Len(t, events, 1)
	assert.Equal(t, sentry.LevelFatal, events[0].Level)
	assert.Equal(t, "unexpected", events[0].Message)
	assert.Equal(t, "javascript", events[0].Platform)
}

func TestNewClient_InvalidDSN(t *testing.T) {
	_, err := NewClient(Options{DSN: "not a dsn"})

	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidDSN)
}

func TestNewClient_DefaultBackendWithoutDSN(t *testing.T) {
	client, err := NewClient(Options{})
	require.NoError(t, err)
	defer client.Close()

	assert.Nil(t, client.DSN())
	assert.True(t, client.IsEnabled())
	assert.NotNil(t, client.CaptureMessage(context.Background(), "dropped quietly", sentry.LevelInfo, nil))
}
