// Package runtime owns the single real-time session: the connection
// manager, its internal pub/sub bus, and the routing of inbound events to
// the session stores. It contains no domain rules beyond routing.
package runtime

import (
	"context"
	"log/slog"
	"sync"

	"chatlink/contract"
	"chatlink/domain/event"
)

// Bus is the internal publish/subscribe point of a session. Consumers
// attach here, never to the transport: two surfaces can therefore never
// open two connections for the same session.
type Bus struct {
	mu    sync.RWMutex
	log   *slog.Logger
	sinks []contract.EventSink
}

func NewBus(log *slog.Logger) *Bus {
	return &Bus{log: log}
}

func (b *Bus) Subscribe(sink contract.EventSink) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sinks = append(b.sinks, sink)
}

// Publish delivers one event to every sink in subscription order. A sink
// error is logged and does not stop delivery to the remaining sinks.
func (b *Bus) Publish(ctx context.Context, e event.DomainEvent) {
	b.mu.RLock()
	sinks := make([]contract.EventSink, len(b.sinks))
	copy(sinks, b.sinks)
	b.mu.RUnlock()

	for _, sink := range sinks {
		if err := sink.Consume(ctx, e); err != nil {
			b.log.Warn("Event sink failed", "kind", e.Kind(), "error", err)
		}
	}
}

// Clear detaches every sink, part of session teardown.
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sinks = nil
}
