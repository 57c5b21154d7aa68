package environment

import "github.com/Carmen-Shannon/oxy-fps/engine/task"

// GroundProviderBuilderOption is a functional option for configuring a GroundProvider during construction.
type GroundProviderBuilderOption func(*groundProvider)

// WithBuilder sets the preferred environment Builder. Without one the provider always falls back.
//
// Parameters:
//   - b: the builder
//
// Returns:
//   - GroundProviderBuilderOption: functional option to set the builder
func WithBuilder(b Builder) GroundProviderBuilderOption {
	return func(gp *groundProvider) {
		gp.builder = b
	}
}

// WithRunner runs the Builder on a task runner so the wait honours the build context.
//
// Parameters:
//   - r: the task runner
//
// Returns:
//   - GroundProviderBuilderOption: functional option to set the runner
func WithRunner(r task.Runner) GroundProviderBuilderOption {
	return func(gp *groundProvider) {
		gp.runner = r
	}
}

// WithOptions sets the cosmetic options passed to the Builder.
//
// Parameters:
//   - opts: the environment options
//
// Returns:
//   - GroundProviderBuilderOption: functional option to set the options
func WithOptions(opts Options) GroundProviderBuilderOption {
	return func(gp *groundProvider) {
		gp.opts = opts
	}
}

// WithFallbackSize sets the width and depth of the fallback ground. Non-positive and
// non-finite sizes are ignored so the fallback can always be built.
//
// Parameters:
//   - size: the fallback ground extent
//
// Returns:
//   - GroundProviderBuilderOption: functional option to set the fallback size
func WithFallbackSize(size float32) GroundProviderBuilderOption {
	return func(gp *groundProvider) {
		if validExtent(size) {
			gp.fallbackSize = size
		}
	}
}
