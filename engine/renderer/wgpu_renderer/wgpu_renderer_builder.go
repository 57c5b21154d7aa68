package wgpu_renderer

import "github.com/Carmen-Shannon/oxy-fps/engine/renderer"

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*wgpuRenderer)

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode renderer.PresentMode) RendererBuilderOption {
	return func(r *wgpuRenderer) {
		r.presentMode = mode
	}
}

// WithMSAA sets the multisample anti-aliasing sample count for the renderer.
// When not specified, the default is MSAA4x. Use MSAAOff to disable MSAA entirely.
//
// Parameters:
//   - count: the MSAASampleCount to use
//
// Returns:
//   - RendererBuilderOption: a function that applies the MSAA option to a renderer
func WithMSAA(count renderer.MSAASampleCount) RendererBuilderOption {
	return func(r *wgpuRenderer) {
		r.sampleCount = count
	}
}

// WithForceFallbackAdapter requests the software fallback adapter.
//
// Parameters:
//   - force: whether to force the fallback adapter
//
// Returns:
//   - RendererBuilderOption: a function that applies the option to a renderer
func WithForceFallbackAdapter(force bool) RendererBuilderOption {
	return func(r *wgpuRenderer) {
		r.forceFallbackAdapter = force
	}
}
