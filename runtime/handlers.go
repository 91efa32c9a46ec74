package runtime

import (
	"context"

	"chatlink/domain"
	"chatlink/domain/event"
)

// funcSink adapts a plain callback into a bus subscriber.
type funcSink struct {
	fn func(e event.DomainEvent)
}

func (s funcSink) Consume(_ context.Context, e event.DomainEvent) error {
	s.fn(e)
	return nil
}

// OnMessage registers a callback for every inbound message that survived
// the self filter. Duplicate filtering still belongs to the router; this
// hook observes the raw inbound stream.
func (c *ConnectionManager) OnMessage(fn func(m domain.Message)) {
	c.Subscribe(funcSink{fn: func(e event.DomainEvent) {
		if evt, ok := e.(event.MessageReceived); ok && evt.Message.SenderID != c.localID() {
			fn(evt.Message)
		}
	}})
}

// OnTyping registers a callback for user-typing events.
func (c *ConnectionManager) OnTyping(fn func(userID string)) {
	c.Subscribe(funcSink{fn: func(e event.DomainEvent) {
		if evt, ok := e.(event.TypingStarted); ok {
			fn(evt.UserID)
		}
	}})
}

// OnStopTyping registers a callback for user-stopped-typing events.
func (c *ConnectionManager) OnStopTyping(fn func(userID string)) {
	c.Subscribe(funcSink{fn: func(e event.DomainEvent) {
		if evt, ok := e.(event.TypingStopped); ok {
			fn(evt.UserID)
		}
	}})
}

// OnStateChange registers a callback for connection lifecycle transitions.
func (c *ConnectionManager) OnStateChange(fn func(state domain.ConnectionState)) {
	c.Subscribe(funcSink{fn: func(e event.DomainEvent) {
		if evt, ok := e.(event.StateChanged); ok {
			fn(evt.State)
		}
	}})
}
