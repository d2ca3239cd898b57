// Package pool provides a fixed-size worker pool draining an
// unbounded FIFO queue, with graceful drain-then-join shutdown.
//
// The producer submits a finite set of tasks and then shuts the pool
// down, so the queue needs no backpressure. Every submitted task runs
// exactly once; a panicking task never terminates its worker.
package pool

import (
	"errors"
	"sync"
)

// ErrClosed is returned by Submit once shutdown has begun.
// Submitting after shutdown is a caller error.
var ErrClosed = errors.New("pool: submit after shutdown")

// Task is one independent unit of work.
type Task func()

// PanicHandler receives the value recovered from a panicking task.
type PanicHandler func(recovered any)

// Option configures a Pool.
type Option func(*Pool)

// WithPanicHandler installs a handler invoked when a task panics.
// Without one, recovered panics are silently discarded after the
// worker is kept alive.
func WithPanicHandler(h PanicHandler) Option {
	return func(p *Pool) {
		p.onPanic = h
	}
}

// Pool owns its worker goroutines and task queue. The worker count is
// fixed at construction.
type Pool struct {
	mu      sync.Mutex
	cond    *sync.Cond
	queue   []Task
	closed  bool
	wg      sync.WaitGroup
	onPanic PanicHandler
}

// New starts a pool with the given number of workers (minimum 1).
func New(workers int, opts ...Option) *Pool {
	if workers < 1 {
		workers = 1
	}

	p := &Pool{}
	p.cond = sync.NewCond(&p.mu)
	for _, opt := range opts {
		opt(p)
	}

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

// Submit enqueues a task. Safe for concurrent use. Returns ErrClosed
// once Shutdown has been called.
func (p *Pool) Submit(task Task) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	p.queue = append(p.queue, task)
	p.mu.Unlock()

	p.cond.Signal()
	return nil
}

// Shutdown stops intake, lets already-queued tasks drain, then joins
// every worker before returning. Safe to call more than once.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	p.cond.Broadcast()
	p.wg.Wait()
}

// worker claims tasks one at a time until shutdown is requested and
// the queue is empty.
func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		p.mu.Lock()
		for len(p.queue) == 0 && !p.closed {
			p.cond.Wait()
		}
		if len(p.queue) == 0 {
			// closed and drained
			p.mu.Unlock()
			return
		}
		task := p.queue[0]
		p.queue = p.queue[1:]
		p.mu.Unlock()

		p.run(task)
	}
}

// run executes a task outside the queue lock, containing panics.
func (p *Pool) run(task Task) {
	defer func() {
		if r := recover(); r != nil && p.onPanic != nil {
			p.onPanic(r)
		}
	}()
	task()
}
