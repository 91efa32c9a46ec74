package workers

import (
	"context"
	"log/slog"

	"chatlink/contract"
	"chatlink/domain/event"
)

// Publisher fans one event out to every subscribed sink.
type Publisher interface {
	Publish(ctx context.Context, e event.DomainEvent)
}

// EventFanout forwards normalized events from the pump to the session bus.
//
// It provides best-effort fan-out with no guarantees regarding delivery,
// ordering across sessions, durability, or retries. EventFanout is not a
// message broker; it exists so that every surface observes one stream
// instead of attaching to the transport directly.
type EventFanout struct {
	log    *slog.Logger
	events <-chan event.DomainEvent
	bus    Publisher
}

func NewEventFanout(log *slog.Logger, events <-chan event.DomainEvent, bus Publisher) *EventFanout {
	return &EventFanout{log: log, events: events, bus: bus}
}

var _ contract.Worker = (*EventFanout)(nil)

func (w *EventFanout) Run(ctx context.Context) error {
	for {
		select {
		case evt := <-w.events:
			w.bus.Publish(ctx, evt)
		case <-ctx.Done():
			w.log.Debug("Context done, stopping event fanout")
			return nil
		}
	}
}
