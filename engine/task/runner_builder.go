package task

import "time"

// RunnerBuilderOption is a functional option for configuring a Runner.
type RunnerBuilderOption func(*runner)

// WithWorkers sets the maximum number of pooled workers.
//
// Parameters:
//   - n: worker count (values <= 0 keep the default)
//
// Returns:
//   - RunnerBuilderOption: option function to apply
func WithWorkers(n int) RunnerBuilderOption {
	return func(r *runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithQueueSize sets the capacity of the pending task queue.
//
// Parameters:
//   - n: queue capacity (values <= 0 keep the default)
//
// Returns:
//   - RunnerBuilderOption: option function to apply
func WithQueueSize(n int) RunnerBuilderOption {
	return func(r *runner) {
		if n > 0 {
			r.queueSize = n
		}
	}
}

// WithIdleTimeout sets how long an idle worker is kept alive.
//
// Parameters:
//   - d: idle timeout
//
// Returns:
//   - RunnerBuilderOption: option function to apply
func WithIdleTimeout(d time.Duration) RunnerBuilderOption {
	return func(r *runner) {
		r.idleTimeout = d
	}
}
