//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"

	"chatlink/domain/event"
	"chatlink/transport"
)

type WorkerName string

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// EventSink consumes normalized session events from the bus.
// Sinks must not block: the fanout runs on the single event loop goroutine.
type EventSink interface {
	Consume(ctx context.Context, e event.DomainEvent) error
}

// Transport is the persistent bidirectional connection under the
// ConnectionManager. Exactly one implementation attaches per session.
type Transport interface {
	Dial(ctx context.Context, token string) error
	ReadFrame(ctx context.Context) (transport.Frame, error)
	WriteFrame(f transport.Frame) error
	Close() error
}
