package workers

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

// countingWorker panics for its first n runs, then finishes cleanly.
type countingWorker struct {
	runs      atomic.Int32
	panicsFor int32
}

func (w *countingWorker) Run(_ context.Context) error {
	n := w.runs.Add(1)
	if n <= w.panicsFor {
		panic("boom")
	}
	return nil
}

// blockingWorker runs until its context is canceled.
type blockingWorker struct {
	started chan struct{}
}

func (w *blockingWorker) Run(ctx context.Context) error {
	close(w.started)
	<-ctx.Done()
	return nil
}

func TestSupervisor_RestartsPanickedWorker(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	worker := &countingWorker{panicsFor: 2}
	supervisor := NewSupervisor(log)
	supervisor.Add(worker)

	done := make(chan struct{})
	go func() {
		supervisor.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("supervisor did not finish")
	}
	// Two panicked runs plus the clean one.
	req.Equal(int32(3), worker.runs.Load())
}

func TestSupervisor_NilReturnIsNeverRestarted(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	worker := &countingWorker{}
	supervisor := NewSupervisor(log)
	supervisor.Add(worker)
	supervisor.Run(context.Background())

	// Give a restart loop, if any, time to show itself.
	time.Sleep(2 * waitTimeBeforeRestart)
	req.Equal(int32(1), worker.runs.Load())
}

func TestSupervisor_StopCancelsWorkers(t *testing.T) {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	worker := &blockingWorker{started: make(chan struct{})}
	supervisor := NewSupervisor(log)
	supervisor.Add(worker)

	done := make(chan struct{})
	go func() {
		supervisor.Run(context.Background())
		close(done)
	}()

	select {
	case <-worker.started:
	case <-time.After(time.Second):
		t.Fatal("worker never started")
	}

	supervisor.Stop()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("supervisor did not stop")
	}
}

func TestSupervisor_ParentContextCancellation(t *testing.T) {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	worker := &blockingWorker{started: make(chan struct{})}
	supervisor := NewSupervisor(log)
	supervisor.Add(worker)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		supervisor.Run(ctx)
		close(done)
	}()

	<-worker.started
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("supervisor did not observe parent cancellation")
	}
}
