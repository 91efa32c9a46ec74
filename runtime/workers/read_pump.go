package workers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"chatlink/contract"
	"chatlink/domain/event"
	"chatlink/errors"
	"chatlink/observability"
	"chatlink/transport"
)

// ReadPump drains the transport and normalizes every frame into exactly one
// domain event. It is the only reader of the connection; all consumers see
// the same stream through the fanout.
type ReadPump struct {
	log       *slog.Logger
	transport contract.Transport
	events    chan<- event.DomainEvent
	monitor   *observability.Monitor
	onFailure func(error)
}

func NewReadPump(log *slog.Logger, t contract.Transport, events chan<- event.DomainEvent,
	monitor *observability.Monitor, onFailure func(error)) *ReadPump {
	return &ReadPump{log: log, transport: t, events: events, monitor: monitor, onFailure: onFailure}
}

// Run returns nil in every case: a transport failure is terminal for the
// session (reported through onFailure), not a crash the supervisor should
// restart into a closed connection.
func (w *ReadPump) Run(ctx context.Context) error {
	for {
		frame, err := w.transport.ReadFrame(ctx)
		if err != nil {
			if ctx.Err() != nil {
				w.log.Debug("Read pump stopped")
				return nil
			}
			w.log.Warn("Transport read failed, session terminal", "error", err)
			w.onFailure(err)
			return nil
		}

		w.monitor.IncrFramesIn()

		evt, err := Normalize(frame)
		if err != nil {
			w.log.Warn(fmt.Sprintf("Dropping frame %q: %v", frame.Event, err))
			continue
		}

		select {
		case w.events <- evt:
		case <-ctx.Done():
			return nil
		}
	}
}

// Normalize maps a wire frame to its canonical domain event.
func Normalize(f transport.Frame) (event.DomainEvent, error) {
	now := time.Now()
	switch f.Event {
	case transport.EventReceiveMessage:
		m, err := transport.DecodeMessage(f)
		if err != nil {
			return nil, err
		}
		return event.MessageReceived{Message: m, At: now}, nil

	case transport.EventChatNotification:
		n, err := transport.DecodeNotification(f)
		if err != nil {
			return nil, err
		}
		return event.NotificationReceived{
			SenderID:   n.SenderID,
			SenderName: n.SenderName,
			Content:    n.Content,
			SentAt:     n.Timestamp,
			At:         now,
		}, nil

	case transport.EventUserTyping:
		p, err := transport.DecodeUserTyping(f)
		if err != nil {
			return nil, err
		}
		return event.TypingStarted{UserID: p.UserID, At: now}, nil

	case transport.EventUserStopTyping:
		p, err := transport.DecodeUserTyping(f)
		if err != nil {
			return nil, err
		}
		return event.TypingStopped{UserID: p.UserID, At: now}, nil

	default:
		return nil, fmt.Errorf("%w: %s", errors.ErrUnknownEvent, f.Event)
	}
}
