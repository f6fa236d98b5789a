package cordova

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/strongdm/sentry-cordova-go/pkg/cordova/core"
)

const testEventID = "c6f6a6f1a3b54ad0a1a0f46bd5c2d9e1"

func newDialogClient(t *testing.T, opts Options, host Host) (*Client, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	client, _ := newTestClient(t, opts, WithHost(host), WithLogger(log.New(&buf, "", 0)))
	return client, &buf
}

func logLines(buf *bytes.Buffer) []string {
	out := strings.TrimSpace(buf.String())
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

func dialogOptions(eventID string) ReportDialogOptions {
	return ReportDialogOptions{DialogOptions: core.DialogOptions{EventID: eventID}}
}

func TestShowReportDialog_NoDocumentIsSilent(t *testing.T) {
	client, buf := newDialogClient(t, Options{DSN: testDSN, Disabled: true}, &fakeHost{})

	client.ShowReportDialog(ReportDialogOptions{})

	assert.Empty(t, logLines(buf), "no log output without a document")
}

func TestShowReportDialog_DefaultHostHasNoDocument(t *testing.T) {
	var buf bytes.Buffer
	client, _ := newTestClient(t, Options{DSN: testDSN}, WithLogger(log.New(&buf, "", 0)))

	client.ShowReportDialog(dialogOptions(testEventID))

	assert.Empty(t, logLines(&buf))
}

func TestShowReportDialog_DisabledLogsOnce(t *testing.T) {
	doc := newFakeDocument()
	client, buf := newDialogClient(t, Options{DSN: testDSN, Disabled: true}, &fakeHost{doc: doc})

	client.ShowReportDialog(dialogOptions(testEventID))

	lines := logLines(buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "Sentry Logger [Error]: Trying to call showReportDialog with Sentry Client is disabled", lines[0])
	assert.Empty(t, doc.head.children)
	assert.Empty(t, doc.body.children)
}

func TestShowReportDialog_DisabledCheckedBeforeEventID(t *testing.T) {
	doc := newFakeDocument()
	client, buf := newDialogClient(t, Options{Disabled: true}, &fakeHost{doc: doc})

	// Missing event ID and DSN too; only the disabled error may be reported.
	client.ShowReportDialog(ReportDialogOptions{})

	lines := logLines(buf)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "Sentry Client is disabled")
	assert.Empty(t, doc.head.children)
}

func TestShowReportDialog_MissingEventID(t *testing.T) {
	doc := newFakeDocument()
	client, buf := newDialogClient(t, Options{DSN: testDSN}, &fakeHost{doc: doc})

	client.ShowReportDialog(ReportDialogOptions{})

	lines := logLines(buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "Sentry Logger [Error]: Missing `eventId` option in showReportDialog call", lines[0])
	assert.Empty(t, doc.head.children)
}

func TestShowReportDialog_EventIDCheckedBeforeDSN(t *testing.T) {
	doc := newFakeDocument()
	client, buf := newDialogClient(t, Options{}, &fakeHost{doc: doc})

	client.ShowReportDialog(ReportDialogOptions{})

	lines := logLines(buf)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "Missing `eventId`")
}

func TestShowReportDialog_MissingDSN(t *testing.T) {
	doc := newFakeDocument()
	client, buf := newDialogClient(t, Options{}, &fakeHost{doc: doc})

	client.ShowReportDialog(dialogOptions(testEventID))

	lines := logLines(buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "Sentry Logger [Error]: Missing `Dsn` option in showReportDialog call", lines[0])
	assert.Empty(t, doc.head.children)
	assert.Empty(t, doc.body.children)
}

func TestShowReportDialog_InvalidOverrideDSN(t *testing.T) {
	doc := newFakeDocument()
	client, buf := newDialogClient(t, Options{DSN: testDSN}, &fakeHost{doc: doc})

	opts := dialogOptions(testEventID)
	opts.DSN = "::invalid::"
	client.ShowReportDialog(opts)

	lines := logLines(buf)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "Invalid `Dsn`")
	assert.Empty(t, doc.head.children)
}

func TestShowReportDialog_AppendsScriptToHead(t *testing.T) {
	doc := newFakeDocument()
	client, buf := newDialogClient(t, Options{DSN: testDSN}, &fakeHost{doc: doc})

	loaded := 0
	opts := dialogOptions(testEventID)
	opts.User = &core.DialogUser{Name: "Jane", Email: "jane@example.com"}
	opts.OnLoad = func() { loaded++ }

	client.ShowReportDialog(opts)

	assert.Empty(t, logLines(buf))
	require.Len(t, doc.head.children, 1)
	assert.Empty(t, doc.body.children)

	script := doc.head.children[0]
	assert.True(t, script.Async)

	dsn, err := sentry.NewDsn(testDSN)
	require.NoError(t, err)
	assert.Equal(t, core.ReportDialogEndpoint(dsn, opts.DialogOptions), script.Src)

	require.NotNil(t, script.OnLoad)
	assert.Equal(t, 0, loaded, "the client never invokes the callback itself")
	script.OnLoad()
	assert.Equal(t, 1, loaded)
}

func TestShowReportDialog_NoOnLoad(t *testing.T) {
	doc := newFakeDocument()
	client, _ := newDialogClient(t, Options{DSN: testDSN}, &fakeHost{doc: doc})

	client.ShowReportDialog(dialogOptions(testEventID))

	require.Len(t, doc.head.children, 1)
	assert.Nil(t, doc.head.children[0].OnLoad)
}

func TestShowReportDialog_OverrideDSN(t *testing.T) {
	doc := newFakeDocument()
	client, _ := newDialogClient(t, Options{}, &fakeHost{doc: doc})

	override := "https://other@feedback.example.org/7"
	opts := dialogOptions(testEventID)
	opts.DSN = override
	client.ShowReportDialog(opts)

	require.Len(t, doc.head.children, 1)
	dsn, err := sentry.NewDsn(override)
	require.NoError(t, err)
	assert.Equal(t, core.ReportDialogEndpoint(dsn, opts.DialogOptions), doc.head.children[0].Src)
	assert.True(t, strings.HasPrefix(doc.head.children[0].Src, "https://feedback.example.org/api/embed/error-page/?"))
}

func TestShowReportDialog_FallsBackToBody(t *testing.T) {
	doc := &fakeDocument{body: &fakeNode{}}
	client, buf := newDialogClient(t, Options{DSN: testDSN}, &fakeHost{doc: doc})

	client.ShowReportDialog(dialogOptions(testEventID))

	assert.Empty(t, logLines(buf))
	require.Len(t, doc.body.children, 1)
	assert.True(t, doc.body.children[0].Async)
}

func TestShowReportDialog_NoHeadNorBody(t *testing.T) {
	doc := &fakeDocument{}
	client, buf := newDialogClient(t, Options{DSN: testDSN}, &fakeHost{doc: doc})

	client.ShowReportDialog(dialogOptions(testEventID))

	lines := logLines(buf)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "neither head nor body")
}
