// Package queue carries pointer events from the input collaborator to the
// single consumer that drives the game.
//
// The queue is a bounded buffered channel. Enqueue never blocks; Put waits
// for room so replayed streams are not dropped.
package queue

import (
	"context"
	"sync"

	"github.com/okian/circle/internal/domain/model"
	"github.com/okian/circle/pkg/metrics"
)

// Default queue configuration constants.
const (
	defaultQueueCapacity = 1024
)

// Reasons recorded when an event is rejected.
const (
	reasonClosed    = "closed"
	reasonFull      = "queue_full"
	reasonCancelled = "context_cancelled"
)

// Event represents the payload type flowing through the queue.
type Event = model.Event

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds an event to the queue.
	// Returns false if the queue is full or closed and the event was not enqueued.
	Enqueue(ctx context.Context, e Event) bool

	// Put adds an event, waiting for room until ctx is done or the queue closes.
	Put(ctx context.Context, e Event) error

	// Dequeue returns a channel that will receive events in enqueue order.
	// The channel will be closed when the queue is closed and drained.
	Dequeue(ctx context.Context) <-chan Event

	// Len returns the current number of queued events.
	Len(ctx context.Context) int

	// Close stops accepting events; queued events are still delivered.
	Close() error

	// IsClosed returns true if the queue has been closed.
	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	events   chan Event
	capacity int
	metrics  *metrics.Manager

	quit      chan struct{}
	closeOnce sync.Once
	mu        sync.RWMutex
	closed    bool
}

// NewInMemoryQueue creates a new in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{
		capacity: defaultQueueCapacity,
		metrics:  metrics.Default(),
		quit:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(q)
	}

	q.events = make(chan Event, q.capacity)

	q.metrics.UpdateQueueCapacity(q.capacity)
	q.metrics.UpdateQueueSize(0)

	return q
}

// Enqueue adds an event to the queue without waiting.
func (q *InMemoryQueue) Enqueue(ctx context.Context, e Event) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		q.metrics.RecordQueueEnqueueError(reasonClosed)
		return false
	}

	select {
	case <-ctx.Done():
		q.metrics.RecordQueueEnqueueError(reasonCancelled)
		return false
	default:
	}

	select {
	case q.events <- e:
		q.accepted()
		return true
	default:
		q.metrics.RecordQueueEnqueueError(reasonFull)
		return false
	}
}

// Put adds an event, waiting for room.
func (q *InMemoryQueue) Put(ctx context.Context, e Event) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		q.metrics.RecordQueueEnqueueError(reasonClosed)
		return ErrClosed
	}

	select {
	case q.events <- e:
		q.accepted()
		return nil
	case <-ctx.Done():
		q.metrics.RecordQueueEnqueueError(reasonCancelled)
		return ctx.Err()
	case <-q.quit:
		q.metrics.RecordQueueEnqueueError(reasonClosed)
		return ErrClosed
	}
}

func (q *InMemoryQueue) accepted() {
	q.metrics.RecordQueueEnqueue()
	q.metrics.UpdateQueueSize(len(q.events))
}

// Dequeue returns a channel that will receive events as they become available.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Event {
	out := make(chan Event)
	go func() {
		defer close(out)
		for event := range q.events {
			select {
			case out <- event:
				q.metrics.RecordQueueDequeue()
				q.metrics.UpdateQueueSize(len(q.events))
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Len returns the current number of queued events.
func (q *InMemoryQueue) Len(_ context.Context) int {
	size := len(q.events)
	q.metrics.UpdateQueueSize(size)
	return size
}

// Cap returns the configured capacity.
func (q *InMemoryQueue) Cap() int { return q.capacity }

// Close gracefully shuts down the queue.
func (q *InMemoryQueue) Close() error {
	// Wake blocked Put calls before taking the write lock they hold shared.
	q.closeOnce.Do(func() { close(q.quit) })

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}

	close(q.events)
	q.closed = true

	return nil
}

// IsClosed returns true if the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
