package renderer

import (
	"github.com/Carmen-Shannon/oxy-fps/engine/scene"
)

// FrameStats describes what the most recent frame drew.
type FrameStats struct {
	// Instances is the number of shaded meshes drawn.
	Instances int
	// Shadows is the number of projected caster shadows drawn.
	Shadows int
}

// Renderer defines the interface for presenting a scene.Context to a drawable surface.
//
// Implementations own their GPU resources. Render is called once per tick from the loop goroutine;
// it must treat a disposed scene as a no-op rather than an error.
type Renderer interface {
	// Resize reconfigures the underlying surface for a new size.
	// Non-positive dimensions are ignored.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// Size returns the surface size the renderer is currently configured for.
	//
	// Returns:
	//   - int: width in pixels
	//   - int: height in pixels
	Size() (int, int)

	// SetPresentMode changes how frames are delivered to the display.
	// Takes effect on the next Resize.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// Render draws a single frame of the scene, using the scene's clear color and active camera.
	//
	// Parameters:
	//   - sc: the scene to draw
	//
	// Returns:
	//   - error: an error if the frame could not be acquired or submitted
	Render(sc scene.Context) error

	// Frames returns the number of frames successfully presented.
	Frames() uint64

	// LastFrame reports what the most recent frame drew.
	//
	// Returns:
	//   - FrameStats: instance counts of the last presented frame
	LastFrame() FrameStats

	// Release frees every resource held by the renderer. The renderer must not be used afterwards.
	Release()
}
