package wgpu_renderer

import (
	"fmt"
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-fps/engine/renderer"
	"github.com/Carmen-Shannon/oxy-fps/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
)

// SurfaceSource is anything that can describe a drawable surface to WebGPU, typically a glfw_window.Window.
type SurfaceSource interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Width() int
	Height() int
}

// wgpuRenderer is the WebGPU implementation of renderer.Renderer.
type wgpuRenderer struct {
	mu      sync.Mutex
	backend *backend

	width  int
	height int
	frames uint64
	last   renderer.FrameStats

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          renderer.PresentMode
	sampleCount          renderer.MSAASampleCount
}

var _ renderer.Renderer = &wgpuRenderer{}

// NewRenderer creates a WebGPU renderer presenting to the surface described by source, and
// configures the surface to the source's current size.
//
// Parameters:
//   - source: the window providing the surface descriptor and initial size
//   - options: functional options to configure the renderer
//
// Returns:
//   - renderer.Renderer: the renderer
//   - error: an error if the adapter, device or surface could not be created
func NewRenderer(source SurfaceSource, options ...RendererBuilderOption) (renderer.Renderer, error) {
	r := &wgpuRenderer{
		presentMode: renderer.PresentModeVSync,
		sampleCount: renderer.MSAA4x,
	}
	for _, opt := range options {
		opt(r)
	}
	if !r.sampleCount.Valid() {
		return nil, fmt.Errorf("invalid MSAA sample count %d", r.sampleCount)
	}

	b, err := newBackend(source.SurfaceDescriptor(), r.forceFallbackAdapter, r.sampleCount)
	if err != nil {
		return nil, fmt.Errorf("failed to create wgpu backend: %w", err)
	}
	r.backend = b
	b.setPresentMode(r.presentMode)

	r.width, r.height = source.Width(), source.Height()
	if err := b.configureSurface(r.width, r.height); err != nil {
		b.release()
		return nil, fmt.Errorf("failed to configure surface: %w", err)
	}
	return r, nil
}

func (r *wgpuRenderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.backend == nil {
		return
	}
	if err := r.backend.configureSurface(width, height); err != nil {
		log.Printf("[Renderer] resize to %dx%d failed: %v", width, height, err)
		return
	}
	r.width, r.height = width, height
}

func (r *wgpuRenderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *wgpuRenderer) SetPresentMode(mode renderer.PresentMode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.presentMode = mode
	if r.backend != nil {
		r.backend.setPresentMode(mode)
	}
}

func (r *wgpuRenderer) Render(sc scene.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.backend == nil || sc == nil || !sc.Alive() {
		return nil
	}

	dl := renderer.BuildDrawList(sc)
	if err := r.backend.beginFrame(sc.ClearColor()); err != nil {
		return fmt.Errorf("begin frame: %w", err)
	}
	drawErr := r.backend.draw(&dl)
	// The pass is ended and presented even when a draw failed so the surface texture is returned.
	if err := r.backend.endFrame(); err != nil {
		return fmt.Errorf("end frame: %w", err)
	}
	r.backend.present()
	if drawErr != nil {
		return fmt.Errorf("draw: %w", drawErr)
	}
	r.frames++
	r.last = renderer.FrameStats{Instances: dl.Instances(), Shadows: dl.ShadowInstances()}
	return nil
}

func (r *wgpuRenderer) Frames() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

func (r *wgpuRenderer) LastFrame() renderer.FrameStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

func (r *wgpuRenderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.backend == nil {
		return
	}
	r.backend.release()
	r.backend = nil
}
