// Package async wraps a transport with a bounded queue so that capture calls
// never wait on the network. Oldest events are dropped when the queue is full.
package async

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/strongdm/sentry-cordova-go/pkg/cordova/core"
)

// AsyncTransportOption configures the async transport.
type AsyncTransportOption func(*asyncTransportConfig)

type asyncTransportConfig struct {
	queueSize    int
	pollInterval time.Duration
	onDropped    func(count int)
}

// WithQueueSize sets the maximum number of queued events (default: 100).
func WithQueueSize(size int) AsyncTransportOption {
	return func(c *asyncTransportConfig) {
		if size > 0 {
			c.queueSize = size
		}
	}
}

// WithFlushInterval sets how often Flush checks for a drained queue (default: 10ms).
func WithFlushInterval(d time.Duration) AsyncTransportOption {
	return func(c *asyncTransportConfig) {
		if d > 0 {
			c.pollInterval = d
		}
	}
}

// WithOnDropped sets a callback invoked when events are dropped due to queue overflow.
func WithOnDropped(fn func(count int)) AsyncTransportOption {
	return func(c *asyncTransportConfig) {
		c.onDropped = fn
	}
}

type asyncTransport struct {
	inner        core.Transport
	queue        chan *sentry.Event
	done         chan struct{}
	closeOnce    sync.Once
	closeMu      sync.Mutex
	closed       bool
	wg           sync.WaitGroup
	inFlight     atomic.Int64
	pollInterval time.Duration
	onDropped    func(count int)
}

// NewAsyncTransport wraps inner with a bounded queue.
// Send returns immediately; events are delivered by a background goroutine.
func NewAsyncTransport(inner core.Transport, opts ...AsyncTransportOption) core.Transport {
	cfg := &asyncTransportConfig{
		queueSize:    100,
		pollInterval: 10 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	t := &asyncTransport{
		inner:        inner,
		queue:        make(chan *sentry.Event, cfg.queueSize),
		done:         make(chan struct{}),
		pollInterval: cfg.pollInterval,
		onDropped:    cfg.onDropped,
	}

	t.wg.Add(1)
	go t.processLoop()

	return t
}

func (t *asyncTransport) processLoop() {
	defer t.wg.Done()
	for {
		select {
		case event := <-t.queue:
			t.deliver(event)
		case <-t.done:
			for {
				select {
				case event := <-t.queue:
					t.deliver(event)
				default:
					return
				}
			}
		}
	}
}

// deliver ignores inner errors; the caller already returned.
func (t *asyncTransport) deliver(event *sentry.Event) {
	_ = t.inner.Send(context.Background(), event)
	t.inFlight.Add(-1)
}

// Send enqueues an event. If the queue is full, the oldest event is dropped.
func (t *asyncTransport) Send(ctx context.Context, event *sentry.Event) error {
	t.closeMu.Lock()
	defer t.closeMu.Unlock()
	if t.closed {
		return core.ErrClosed
	}

	t.inFlight.Add(1)
	select {
	case t.queue <- event:
		return nil
	default:
		t.dropOldestAndEnqueue(event)
		return nil
	}
}

func (t *asyncTransport) dropOldestAndEnqueue(event *sentry.Event) {
	select {
	case <-t.queue:
		t.dropped()
	default:
		// drained by the processor in the meantime
	}

	select {
	case t.queue <- event:
	default:
		t.dropped()
	}
}

func (t *asyncTransport) dropped() {
	t.inFlight.Add(-1)
	if t.onDropped != nil {
		t.onDropped(1)
	}
}

// Flush blocks until all queued events are delivered, then flushes inner.
func (t *asyncTransport) Flush(ctx context.Context) error {
	ticker := time.NewTicker(t.pollInterval)
	defer ticker.Stop()

	for t.inFlight.Load() > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return t.inner.Flush(ctx)
}

// Close drains the queue, stops the processor and closes inner.
func (t *asyncTransport) Close() error {
	t.closeOnce.Do(func() {
		t.closeMu.Lock()
		t.closed = true
		t.closeMu.Unlock()

		close(t.done)
		t.wg.Wait()
	})

	return t.inner.Close()
}
