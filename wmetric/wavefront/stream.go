package wavefront

import (
	"context"
	"sync"
)

// Task is one unit of work submitted to a Stream.
type Task func(ctx context.Context) error

// Stream is an abstract ordered work queue: tasks enqueued in a given order
// execute in that order, one at a time, and Sync is the final barrier before
// results may be read. It models a device stream or compute queue; the
// solver relies on the ordering guarantee as the barrier between diagonals.
type Stream interface {
	Enqueue(Task)
	Sync() error
}

// OrderedStream is the default Stream: a single draining goroutine executes
// tasks FIFO. The first task error (or context cancellation) is sticky;
// later tasks are skipped and the error surfaces from Sync. A stream is
// one-shot: after Sync it accepts no further work.
type OrderedStream struct {
	ctx   context.Context
	tasks chan Task
	done  chan struct{}

	mu  sync.Mutex
	err error
}

// NewOrderedStream starts the draining goroutine and returns the stream.
func NewOrderedStream(ctx context.Context) *OrderedStream {
	s := &OrderedStream{
		ctx:   ctx,
		tasks: make(chan Task, 64),
		done:  make(chan struct{}),
	}
	go s.drain()
	return s
}

func (s *OrderedStream) drain() {
	defer close(s.done)
	for task := range s.tasks {
		if s.loadErr() != nil {
			continue
		}
		if err := s.ctx.Err(); err != nil {
			s.storeErr(err)
			continue
		}
		if err := task(s.ctx); err != nil {
			s.storeErr(err)
		}
	}
}

// Enqueue submits a task. Must not be called after Sync.
func (s *OrderedStream) Enqueue(t Task) {
	s.tasks <- t
}

// Sync closes the queue, waits for every enqueued task to finish, and
// returns the first error encountered.
func (s *OrderedStream) Sync() error {
	close(s.tasks)
	<-s.done
	return s.loadErr()
}

func (s *OrderedStream) loadErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *OrderedStream) storeErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err == nil {
		s.err = err
	}
}
