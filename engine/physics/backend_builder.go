package physics

import "github.com/Carmen-Shannon/oxy-fps/engine/task"

// BackendBuilderOption is a functional option for configuring a Backend.
type BackendBuilderOption func(*backend)

// WithRunner makes Initialize run its load step on the given task runner and wait on it with the caller's context.
//
// Parameters:
//   - r: the runner executing the load
//
// Returns:
//   - BackendBuilderOption: option function to apply
func WithRunner(r task.Runner) BackendBuilderOption {
	return func(b *backend) {
		b.runner = r
	}
}

// WithLoader sets a hook run before the world is created, such as loading a native module.
// A non-nil error makes Initialize fail with ErrBackendUnavailable.
//
// Parameters:
//   - loader: the load hook
//
// Returns:
//   - BackendBuilderOption: option function to apply
func WithLoader(loader func() error) BackendBuilderOption {
	return func(b *backend) {
		b.loader = loader
	}
}

// WithSolverIterations sets how many contact resolution passes run per substep.
//
// Parameters:
//   - n: pass count (values <= 0 keep the default of 4)
//
// Returns:
//   - BackendBuilderOption: option function to apply
func WithSolverIterations(n int) BackendBuilderOption {
	return func(b *backend) {
		if n > 0 {
			b.iterations = n
		}
	}
}

// WithMaxStep sets the largest substep Step integrates at once. Longer frames are split.
//
// Parameters:
//   - seconds: maximum substep length (values <= 0 keep the default of 1/30s)
//
// Returns:
//   - BackendBuilderOption: option function to apply
func WithMaxStep(seconds float32) BackendBuilderOption {
	return func(b *backend) {
		if seconds > 0 {
			b.maxStep = seconds
		}
	}
}
