package engine

import "context"

// Executor marshals units of work onto the engine's single mutation
// goroutine. Engine state may only be mutated from inside submitted work.
//
// Callers must never hold application locks across Do: the engine
// goroutine acquires those same locks synchronously from filters, so
// waiting on the handoff while holding one deadlocks. Snapshot under
// lock, release, then submit.
type Executor interface {
	// Submit enqueues work and returns without waiting for it to run.
	Submit(fn func())
	// Do enqueues work and blocks until it has run or ctx is done.
	Do(ctx context.Context, fn func()) error
}

// SerialExecutor implements Executor over one worker goroutine.
type SerialExecutor struct {
	tasks chan func()
}

// NewSerialExecutor returns an executor with the given queue depth.
func NewSerialExecutor(buffer int) *SerialExecutor {
	return &SerialExecutor{tasks: make(chan func(), buffer)}
}

// Run processes submitted work until ctx is done. It must be called from
// exactly one goroutine; that goroutine becomes the engine mutation thread.
func (e *SerialExecutor) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-e.tasks:
			fn()
		}
	}
}

// Submit implements Executor.
func (e *SerialExecutor) Submit(fn func()) {
	e.tasks <- fn
}

// Do implements Executor.
func (e *SerialExecutor) Do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	wrapped := func() {
		defer close(done)
		fn()
	}

	select {
	case e.tasks <- wrapped:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
