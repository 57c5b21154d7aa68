package renderer

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-fps/engine/scene"
)

// headless is a Renderer that builds each frame's DrawList without submitting it. It is used when no GPU surface exists,
// such as in tests and on machines without a GPU adapter.
type headless struct {
	mu          sync.Mutex
	width       int
	height      int
	presentMode PresentMode
	frames      uint64
	lastClear   [4]float64
	last        FrameStats
	released    bool
}

var _ Renderer = &headless{}

// NewHeadless creates a Renderer that records frame and size state without a GPU.
//
// Parameters:
//   - width: the initial surface width in pixels
//   - height: the initial surface height in pixels
//
// Returns:
//   - Renderer: the headless renderer
func NewHeadless(width, height int) Renderer {
	return &headless{width: width, height: height}
}

func (h *headless) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.width, h.height = width, height
}

func (h *headless) Size() (int, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.width, h.height
}

func (h *headless) SetPresentMode(mode PresentMode) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.presentMode = mode
}

func (h *headless) Render(sc scene.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.released || sc == nil || !sc.Alive() {
		return nil
	}
	dl := BuildDrawList(sc)
	h.lastClear = sc.ClearColor()
	h.last = FrameStats{Instances: dl.Instances(), Shadows: dl.ShadowInstances()}
	h.frames++
	return nil
}

func (h *headless) Frames() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.frames
}

func (h *headless) LastFrame() FrameStats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last
}

func (h *headless) Release() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.released = true
}
