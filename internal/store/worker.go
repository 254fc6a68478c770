package store

import (
	"context"
	"sync"
)

// Worker is a single-writer queue: one goroutine runs submitted jobs in FIFO
// order. Once a job is accepted it runs to completion; there is no
// cancellation of in-flight work.
//
// A job must not submit to, or Close, its own Worker. That deadlocks the
// same way a serial queue dispatching synchronously onto itself would.
type Worker struct {
	mu      sync.RWMutex
	closed  bool
	jobs    chan func()
	stopped chan struct{}
}

// NewWorker starts a Worker.
func NewWorker() *Worker {
	w := &Worker{
		jobs:    make(chan func(), 64),
		stopped: make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *Worker) run() {
	defer close(w.stopped)
	for job := range w.jobs {
		job()
	}
}

func (w *Worker) enqueue(job func()) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		return ErrWorkerClosed
	}
	w.jobs <- job
	return nil
}

// Submit queues fn and returns a channel that receives its result. The
// caller may ignore the channel; it is buffered.
func (w *Worker) Submit(fn func() error) <-chan error {
	result := make(chan error, 1)
	if err := w.enqueue(func() { result <- fn() }); err != nil {
		result <- err
	}
	return result
}

// Do queues fn and blocks until it has run.
func (w *Worker) Do(fn func() error) error {
	return <-w.Submit(fn)
}

// Close stops accepting work, lets queued jobs finish and waits for the
// goroutine to exit. It is safe to call more than once.
func (w *Worker) Close() {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.jobs)
	}
	w.mu.Unlock()
	<-w.stopped
}

// Wait blocks until result delivers or ctx is done. Giving up on ctx does not
// cancel the job; it still runs.
func Wait(ctx context.Context, result <-chan error) error {
	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
