package task

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// Result is the outcome of a task submitted to a Runner.
type Result struct {
	Value any
	Err   error
}

// runner is the implementation of the Runner interface.
type runner struct {
	mu          sync.Mutex
	pool        worker.DynamicWorkerPool
	workers     int
	queueSize   int
	idleTimeout time.Duration
	nextID      atomic.Int64
	closed      bool
}

// Runner executes the blocking suspension points of scene bring-up (physics init, asset
// loading, session negotiation) off the caller's goroutine so the caller can wait on them
// with a context.
type Runner interface {
	// Submit queues fn for execution on a pooled worker.
	//
	// Parameters:
	//   - fn: the work to run
	//
	// Returns:
	//   - <-chan Result: receives exactly one Result when fn returns
	Submit(fn func() (any, error)) <-chan Result

	// Close stops the underlying worker pool. Submit after Close runs fn on a fresh goroutine.
	Close()
}

var _ Runner = &runner{}

// NewRunner creates a Runner backed by a dynamic worker pool.
//
// Parameters:
//   - options: functional options for pool sizing
//
// Returns:
//   - Runner: the new runner
func NewRunner(options ...RunnerBuilderOption) Runner {
	r := &runner{
		workers:     2,
		queueSize:   16,
		idleTimeout: time.Second,
	}
	for _, opt := range options {
		opt(r)
	}
	r.pool = worker.NewDynamicWorkerPool(r.workers, r.queueSize, r.idleTimeout)
	return r
}

func (r *runner) Submit(fn func() (any, error)) <-chan Result {
	out := make(chan Result, 1)
	do := func() (v any, err error) {
		defer func() {
			if rec := recover(); rec != nil {
				err = fmt.Errorf("task panicked: %v", rec)
			}
			out <- Result{Value: v, Err: err}
		}()
		return fn()
	}

	r.mu.Lock()
	closed := r.closed
	r.mu.Unlock()
	if closed {
		go do()
		return out
	}

	r.pool.SubmitTask(worker.Task{
		ID: int(r.nextID.Add(1)),
		Do: do,
	})
	return out
}

func (r *runner) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	r.pool.Stop()
}

// Await submits fn to r and blocks until it returns or ctx is done.
// When ctx ends first, Await returns ctx.Err() and the task's eventual result is discarded.
//
// Parameters:
//   - ctx: bounds the wait
//   - r: the runner executing fn
//   - fn: the work to run
//
// Returns:
//   - T: the value produced by fn
//   - error: the error from fn, or ctx.Err()
func Await[T any](ctx context.Context, r Runner, fn func() (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	done := r.Submit(func() (any, error) {
		return fn()
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-done:
		if res.Err != nil {
			return zero, res.Err
		}
		v, _ := res.Value.(T)
		return v, nil
	}
}
