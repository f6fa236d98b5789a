package cordova

import (
	"context"
	"sync"

	"github.com/getsentry/sentry-go"
	"github.com/strongdm/sentry-cordova-go/pkg/cordova/core"
)

const testDSN = "https://public@sentry.example.com/42"

// fakeBackend records sent events.
type fakeBackend struct {
	mu      sync.Mutex
	events  []*sentry.Event
	sendErr error
}

func (b *fakeBackend) EventFromException(err error, hint *sentry.EventHint) *sentry.Event {
	event := sentry.NewEvent()
	event.Level = sentry.LevelError
	event.Exception = []sentry.Exception{{Type: "test", Value: err.Error()}}
	return event
}

func (b *fakeBackend) EventFromMessage(message string, level sentry.Level, hint *sentry.EventHint) *sentry.Event {
	event := sentry.NewEvent()
	event.Level = level
	event.Message = message
	return event
}

func (b *fakeBackend) SendEvent(ctx context.Context, event *sentry.Event) error {
	if b.sendErr != nil {
		return b.sendErr
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
	return nil
}

func (b *fakeBackend) Flush(ctx context.Context) error { return nil }

func (b *fakeBackend) Close() error { return nil }

func (b *fakeBackend) getEvents() []*sentry.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	result := make([]*sentry.Event, len(b.events))
	copy(result, b.events)
	return result
}

func (b *fakeBackend) factory() core.BackendFactory {
	return func(opts core.Options) (core.Backend, error) {
		return b, nil
	}
}

// fakeHost serves a fakeDocument, or no document when doc is nil.
type fakeHost struct {
	doc *fakeDocument
}

func (h *fakeHost) Document() (Document, bool) {
	if h.doc == nil {
		return nil, false
	}
	return h.doc, true
}

type fakeDocument struct {
	head *fakeNode
	body *fakeNode
}

func newFakeDocument() *fakeDocument {
	return &fakeDocument{head: &fakeNode{}, body: &fakeNode{}}
}

func (d *fakeDocument) Head() Node {
	if d.head == nil {
		return nil
	}
	return d.head
}

func (d *fakeDocument) Body() Node {
	if d.body == nil {
		return nil
	}
	return d.body
}

type fakeNode struct {
	children []*ScriptElement
}

func (n *fakeNode) AppendChild(script *ScriptElement) {
	n.children = append(n.children, script)
}
