package events

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
)

// defaultQueueSize applies when NewBus is given a non-positive size.
const defaultQueueSize = 256

// Sink receives events from the Bus worker.
type Sink interface {
	Handle(ctx context.Context, e Event) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, e Event) error

// Handle calls f(ctx, e).
func (f SinkFunc) Handle(ctx context.Context, e Event) error {
	return f(ctx, e)
}

type namedSink struct {
	name string
	sink Sink
}

// Bus queues events and delivers them to sinks on a single worker goroutine.
//
// Thread Safety:
//   - Publish is safe for concurrent use.
//   - AddSink must be called before Run.
type Bus struct {
	queue   chan Event
	sinks   []namedSink
	logger  *slog.Logger
	dropped atomic.Uint64
}

// NewBus creates a bus with a queue of the given size.
func NewBus(size int, logger *slog.Logger) *Bus {
	if size <= 0 {
		size = defaultQueueSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		queue:  make(chan Event, size),
		logger: logger,
	}
}

// AddSink registers a sink under a name used in log lines.
func (b *Bus) AddSink(name string, s Sink) {
	b.sinks = append(b.sinks, namedSink{name: name, sink: s})
}

// Publish queues an event. If the queue is full the event is dropped.
func (b *Bus) Publish(e Event) {
	select {
	case b.queue <- e:
	default:
		n := b.dropped.Add(1)
		b.logger.Warn("event queue full, dropping event",
			"type", e.Type,
			"id", e.ID,
			"dropped_total", n,
		)
	}
}

// Dropped returns how many events were discarded because the queue was full.
func (b *Bus) Dropped() uint64 {
	return b.dropped.Load()
}

// Run delivers queued events until ctx is cancelled, then delivers whatever
// is still queued and returns.
func (b *Bus) Run(ctx context.Context) {
	for {
		select {
		case e := <-b.queue:
			b.deliver(ctx, e)
		case <-ctx.Done():
			b.drain()
			return
		}
	}
}

// drain delivers remaining events with a fresh context.
func (b *Bus) drain() {
	for {
		select {
		case e := <-b.queue:
			b.deliver(context.Background(), e)
		default:
			return
		}
	}
}

func (b *Bus) deliver(ctx context.Context, e Event) {
	for _, s := range b.sinks {
		if err := b.safeHandle(ctx, s, e); err != nil {
			b.logger.Warn("event sink failed",
				"sink", s.name,
				"type", e.Type,
				"id", e.ID,
				"error", err,
			)
		}
	}
}

// safeHandle converts a sink panic into an error.
func (b *Bus) safeHandle(ctx context.Context, s namedSink, e Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in sink: %v", r)
		}
	}()
	return s.sink.Handle(ctx, e)
}
