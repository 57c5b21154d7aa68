package bootstrap

import (
	"github.com/Carmen-Shannon/oxy-fps/engine/environment"
	"github.com/Carmen-Shannon/oxy-fps/engine/event"
	"github.com/Carmen-Shannon/oxy-fps/engine/hud"
	"github.com/Carmen-Shannon/oxy-fps/engine/immersive"
	"github.com/Carmen-Shannon/oxy-fps/engine/input"
	"github.com/Carmen-Shannon/oxy-fps/engine/physics"
	"github.com/Carmen-Shannon/oxy-fps/engine/task"
)

// BootstrapBuilderOption is a functional option for configuring a Bootstrap.
type BootstrapBuilderOption func(*bootstrap)

// WithConfig replaces the scene configuration. Zero-valued fields fall back to DefaultConfig.
//
// Parameters:
//   - cfg: the configuration
//
// Returns:
//   - BootstrapBuilderOption: option function to apply
func WithConfig(cfg Config) BootstrapBuilderOption {
	return func(b *bootstrap) {
		b.cfg = cfg
	}
}

// WithPhysicsBackend sets the backend the physics world is initialized from.
//
// Parameters:
//   - backend: the physics backend
//
// Returns:
//   - BootstrapBuilderOption: option function to apply
func WithPhysicsBackend(backend physics.Backend) BootstrapBuilderOption {
	return func(b *bootstrap) {
		b.physics = backend
	}
}

// WithEnvironmentBuilder sets the preferred environment builder. nil forces the fallback ground.
//
// Parameters:
//   - builder: the environment builder
//
// Returns:
//   - BootstrapBuilderOption: option function to apply
func WithEnvironmentBuilder(builder environment.Builder) BootstrapBuilderOption {
	return func(b *bootstrap) {
		b.envBuilder = builder
	}
}

// WithImmersiveRuntime sets a fixed immersive runtime.
//
// Parameters:
//   - rt: the runtime
//
// Returns:
//   - BootstrapBuilderOption: option function to apply
func WithImmersiveRuntime(rt immersive.Runtime) BootstrapBuilderOption {
	return func(b *bootstrap) {
		b.runtime = func(*event.Bus) immersive.Runtime { return rt }
	}
}

// WithImmersiveRuntimeFactory builds the immersive runtime from the scene's bus once the scene exists,
// for runtimes driven by scene input such as immersive.NewPreviewRuntime.
//
// Parameters:
//   - factory: creates the runtime
//
// Returns:
//   - BootstrapBuilderOption: option function to apply
func WithImmersiveRuntimeFactory(factory func(bus *event.Bus) immersive.Runtime) BootstrapBuilderOption {
	return func(b *bootstrap) {
		b.runtime = factory
	}
}

// WithPointerCapture sets the OS pointer-lock API, usually the window.
//
// Parameters:
//   - capture: the pointer capture implementation
//
// Returns:
//   - BootstrapBuilderOption: option function to apply
func WithPointerCapture(capture input.PointerCapture) BootstrapBuilderOption {
	return func(b *bootstrap) {
		b.capture = capture
	}
}

// WithStatus sets where bring-up progress is reported.
//
// Parameters:
//   - sink: the status sink
//
// Returns:
//   - BootstrapBuilderOption: option function to apply
func WithStatus(sink hud.StatusSink) BootstrapBuilderOption {
	return func(b *bootstrap) {
		if sink != nil {
			b.status = sink
		}
	}
}

// WithOverlay sets the HUD overlay driven by the input mode controller.
//
// Parameters:
//   - overlay: the overlay
//
// Returns:
//   - BootstrapBuilderOption: option function to apply
func WithOverlay(overlay hud.Overlay) BootstrapBuilderOption {
	return func(b *bootstrap) {
		b.overlay = overlay
	}
}

// WithRunner sets the pool that asynchronous stages are awaited on.
//
// Parameters:
//   - r: the task runner
//
// Returns:
//   - BootstrapBuilderOption: option function to apply
func WithRunner(r task.Runner) BootstrapBuilderOption {
	return func(b *bootstrap) {
		b.runner = r
	}
}

// WithBus sets the event bus of the new scene, typically one already attached to the window.
//
// Parameters:
//   - bus: the event bus
//
// Returns:
//   - BootstrapBuilderOption: option function to apply
func WithBus(bus *event.Bus) BootstrapBuilderOption {
	return func(b *bootstrap) {
		b.bus = bus
	}
}

// WithScheduler sets the timer scheduler of the new scene.
//
// Parameters:
//   - s: the scheduler
//
// Returns:
//   - BootstrapBuilderOption: option function to apply
func WithScheduler(s event.Scheduler) BootstrapBuilderOption {
	return func(b *bootstrap) {
		b.scheduler = s
	}
}
