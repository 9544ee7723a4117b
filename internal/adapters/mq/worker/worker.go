// Package worker drains the pointer event queue into the game, one event at
// a time and in order.
package worker

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/okian/circle/internal/domain/model"
	"github.com/okian/circle/pkg/logger"
)

// Event abstracts what workers read off the queue.
type Event = model.Event

// Handler applies one pointer event; it reports a Result when the event
// finished a gesture.
type Handler interface {
	Handle(ctx context.Context, e Event) (model.Result, bool)
}

// Queue defines how workers receive events.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Event
}

// ResultFunc receives every finished gesture.
type ResultFunc func(ctx context.Context, r model.Result)

// Worker consumes the queue until it is closed, ctx is done or Shutdown is called.
type Worker struct {
	queue    Queue
	handler  Handler
	onResult ResultFunc
	name     string

	processed atomic.Int64
	results   atomic.Int64

	shutdown     chan struct{}
	shutdownOnce sync.Once
	done         chan struct{}

	logger logger.Logger
}

// New creates a worker with configuration options.
func New(queue Queue, handler Handler, opts ...Option) *Worker {
	w := &Worker{
		queue:    queue,
		handler:  handler,
		name:     "worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.logger == nil {
		w.logger = logger.Get().Named(w.name)
	}

	return w
}

// Run processes events until the queue closes, ctx is done or Shutdown is called.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.done)

	events := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case event, ok := <-events:
			if !ok {
				w.logger.Debug(ctx, "queue drained", logger.Int("processed", int(w.processed.Load())))
				return
			}
			w.process(ctx, event)
		}
	}
}

func (w *Worker) process(ctx context.Context, event Event) {
	w.processed.Add(1)
	result, ok := w.handler.Handle(ctx, event)
	if !ok {
		return
	}
	w.results.Add(1)
	if w.onResult != nil {
		w.onResult(ctx, result)
	}
}

// Done is closed when Run returns.
func (w *Worker) Done() <-chan struct{} { return w.done }

// Processed returns how many events the worker has handled.
func (w *Worker) Processed() int { return int(w.processed.Load()) }

// Results returns how many gestures the worker has finished.
func (w *Worker) Results() int { return int(w.results.Load()) }

// Shutdown stops the worker and waits for Run to return.
func (w *Worker) Shutdown(ctx context.Context) error {
	w.shutdownOnce.Do(func() { close(w.shutdown) })

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}
