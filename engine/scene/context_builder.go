package scene

import "github.com/Carmen-Shannon/oxy-fps/engine/event"

// ContextBuilderOption is a functional option for configuring a Context during construction.
type ContextBuilderOption func(*sceneContext)

// WithBus sets the event bus. A new bus is created if none is provided.
//
// Parameters:
//   - bus: the event bus
//
// Returns:
//   - ContextBuilderOption: functional option to set the bus
func WithBus(bus *event.Bus) ContextBuilderOption {
	return func(c *sceneContext) {
		c.bus = bus
	}
}

// WithScheduler sets the timer scheduler. A wall-clock scheduler is created if none is provided.
//
// Parameters:
//   - s: the scheduler
//
// Returns:
//   - ContextBuilderOption: functional option to set the scheduler
func WithScheduler(s event.Scheduler) ContextBuilderOption {
	return func(c *sceneContext) {
		c.scheduler = s
	}
}

// WithClearColor sets the RGBA color the frame is cleared to.
//
// Parameters:
//   - r, g, b, a: color components
//
// Returns:
//   - ContextBuilderOption: functional option to set the clear color
func WithClearColor(r, g, b, a float64) ContextBuilderOption {
	return func(c *sceneContext) {
		c.clearColor = [4]float64{r, g, b, a}
	}
}
