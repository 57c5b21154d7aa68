package glfw_window

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-fps/engine/event"
	"github.com/Carmen-Shannon/oxy-fps/engine/input"
	"github.com/Carmen-Shannon/oxy-fps/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Window is a GLFW-backed window.Window that can also describe its drawable surface to WebGPU.
type Window interface {
	window.Window

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
}

// glfwWindow is the implementation of the Window interface.
// Every method except Captured must be called from the thread that created the window.
type glfwWindow struct {
	mu sync.Mutex

	// title is the window title displayed in the title bar.
	title string

	// width and height are the current framebuffer size in pixels.
	width  int
	height int

	// requested size limits applied with SetSizeLimits.
	minWidth, minHeight int
	maxWidth, maxHeight int

	window  *glfw.Window
	running bool

	bus      *event.Bus
	onUpdate func()

	captured bool
	// pendingCapture holds capture changes published after the next event poll,
	// matching the asynchronous notification model of OS pointer lock.
	pendingCapture []bool

	lastX, lastY float64
	hasLast      bool
}

var _ Window = &glfwWindow{}

// NewWindow creates and shows a GLFW window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the spawned window
func NewWindow(options ...WindowBuilderOption) Window {
	w := &glfwWindow{
		title:     "oxy-fps",
		maxWidth:  glfw.DontCare,
		maxHeight: glfw.DontCare,
		minWidth:  600,
		minHeight: 200,
		width:     1280,
		height:    720,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := w.spawn(); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

// spawn creates the GLFW window and registers its input callbacks.
//
// GLFW reference: https://www.glfw.org/docs/latest/window_guide.html
// go-gl/glfw: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw
func (w *glfwWindow) spawn() error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %v", err)
	}

	// WebGPU provides its own graphics API, so disable OpenGL context creation.
	// Reference: https://www.glfw.org/docs/latest/window_guide.html#window_hints_ctx
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("failed to create GLFW window: %v", err)
	}
	win.SetSizeLimits(w.minWidth, w.minHeight, w.maxWidth, w.maxHeight)
	w.window = win
	w.running = true

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetKeyCallback
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			if w.Captured() {
				w.ReleaseCapture()
				return
			}
			w.running = false
			win.SetShouldClose(true)
			return
		}
		bus := w.currentBus()
		if bus == nil {
			return
		}
		switch action {
		case glfw.Press:
			bus.Keys.Emit(event.KeyEvent{Action: event.KeyDown, Code: uint32(key)})
		case glfw.Repeat:
			bus.Keys.Emit(event.KeyEvent{Action: event.KeyDown, Code: uint32(key), Repeat: true})
		case glfw.Release:
			bus.Keys.Emit(event.KeyEvent{Action: event.KeyUp, Code: uint32(key)})
		}
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetMouseButtonCallback
	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		bus := w.currentBus()
		if bus == nil || action == glfw.Repeat {
			return
		}
		xpos, ypos := win.GetCursorPos()
		bus.PointerButton.Emit(event.PointerButtonEvent{
			Button:  int(button),
			Pressed: action == glfw.Press,
			X:       float32(xpos),
			Y:       float32(ypos),
		})
	})

	// Pointer motion is published as deltas so look rotation is independent of where the
	// hidden cursor sits while captured.
	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetCursorPosCallback
	win.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		if !w.hasLast {
			w.lastX, w.lastY, w.hasLast = xpos, ypos, true
			return
		}
		dx, dy := xpos-w.lastX, ypos-w.lastY
		w.lastX, w.lastY = xpos, ypos
		if bus := w.currentBus(); bus != nil && (dx != 0 || dy != 0) {
			bus.PointerMove.Emit(event.PointerMoveEvent{DX: float32(dx), DY: float32(dy)})
		}
	})

	// The OS drops pointer lock when the window loses focus.
	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetFocusCallback
	win.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		if !focused && w.Captured() {
			w.ReleaseCapture()
		}
	})

	// Use framebuffer size callback for pixel-accurate resize events.
	// On high-DPI displays (e.g., macOS Retina), framebuffer size differs from window size.
	// The renderer requires pixel dimensions for correct surface configuration.
	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetFramebufferSizeCallback
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.mu.Lock()
		w.width = width
		w.height = height
		w.mu.Unlock()
		if bus := w.currentBus(); bus != nil {
			bus.Resize.Emit(event.ResizeEvent{Width: width, Height: height})
		}
	})

	// Update stored dimensions to reflect actual framebuffer size (may differ from requested on high-DPI).
	fbWidth, fbHeight := win.GetFramebufferSize()
	w.width = fbWidth
	w.height = fbHeight

	return nil
}

func (w *glfwWindow) currentBus() *event.Bus {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.bus
}

func (w *glfwWindow) Attach(bus *event.Bus) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.bus = bus
}

func (w *glfwWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *glfwWindow) SetTitle(title string) {
	w.title = title
	if w.window != nil {
		w.window.SetTitle(title)
	}
}

// RequestCapture hides the cursor and locks it to the window using GLFW's disabled cursor mode,
// with raw (unaccelerated) motion where the platform supports it.
// Reference: https://www.glfw.org/docs/latest/input_guide.html#cursor_mode
func (w *glfwWindow) RequestCapture() error {
	if w.window == nil || !w.running {
		return input.ErrCaptureUnavailable
	}
	w.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	if glfw.RawMouseMotionSupported() {
		w.window.SetInputMode(glfw.RawMouseMotion, glfw.True)
	}
	w.hasLast = false

	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.captured {
		w.captured = true
		w.pendingCapture = append(w.pendingCapture, true)
	}
	return nil
}

func (w *glfwWindow) ReleaseCapture() {
	if w.window == nil {
		return
	}
	w.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	w.hasLast = false

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.captured {
		w.captured = false
		w.pendingCapture = append(w.pendingCapture, false)
	}
}

func (w *glfwWindow) Captured() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.captured
}

// SurfaceDescriptor uses the wgpuglfw bridge package which has per-platform implementations
// (Windows, X11, Wayland, macOS).
//
// Reference: https://pkg.go.dev/github.com/cogentcore/webgpu/wgpuglfw#GetSurfaceDescriptor
func (w *glfwWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	if w.window == nil {
		return nil
	}
	return wgpuglfw.GetSurfaceDescriptor(w.window)
}

// IsRunning returns false once the running flag is cleared or GLFW reports ShouldClose.
func (w *glfwWindow) IsRunning() bool {
	if w.window == nil {
		return false
	}
	return w.running && !w.window.ShouldClose()
}

// Close destroys the GLFW window and terminates the GLFW library.
func (w *glfwWindow) Close() error {
	if w.window == nil {
		return fmt.Errorf("window is not initialized")
	}
	w.running = false
	w.window.SetShouldClose(true)
	w.window.Destroy()
	w.window = nil
	glfw.Terminate()
	return nil
}

// ProcessMessages polls GLFW for pending events without blocking, publishes capture changes
// and then runs the update callback.
//
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#PollEvents
func (w *glfwWindow) ProcessMessages() {
	for w.IsRunning() {
		glfw.PollEvents()
		w.flushCapture()
		if !w.IsRunning() {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *glfwWindow) flushCapture() {
	w.mu.Lock()
	pending := w.pendingCapture
	w.pendingCapture = nil
	bus := w.bus
	w.mu.Unlock()

	if bus == nil {
		return
	}
	for _, captured := range pending {
		bus.Capture.Emit(event.PointerCaptureEvent{Captured: captured})
	}
}

func (w *glfwWindow) Width() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width
}

func (w *glfwWindow) Height() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.height
}
