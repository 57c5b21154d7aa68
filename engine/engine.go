package engine

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-fps/engine/event"
	"github.com/Carmen-Shannon/oxy-fps/engine/profiler"
	"github.com/Carmen-Shannon/oxy-fps/engine/renderer"
	"github.com/Carmen-Shannon/oxy-fps/engine/scene"
	"github.com/Carmen-Shannon/oxy-fps/engine/window"
)

var (
	// ErrNoWindow is returned by Run when the engine was built without a window.
	ErrNoWindow = errors.New("engine has no window")

	// ErrSceneNotReady is returned by Run when the scene is nil or already disposed.
	ErrSceneNotReady = errors.New("scene is not ready")
)

// maxFrameDelta caps a single tick so a stalled frame does not jump the simulation ahead.
const maxFrameDelta float32 = 0.1

// Updater is advanced once per tick, before physics steps.
type Updater interface {
	Update(dt float32)
}

// engine implements the Engine interface.
// All tick work runs on the window's message loop; nothing in the scene is touched from another goroutine.
type engine struct {
	mu      sync.Mutex
	running bool

	quitChannel  chan struct{}
	quitOnce     sync.Once
	shutdownOnce sync.Once

	window   window.Window
	renderer renderer.Renderer
	scene    scene.Context
	updaters []Updater

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)
	now            func() time.Time
	lastTick       time.Time

	width  int
	height int
}

// Engine drives the per-frame loop for a bootstrapped scene: timers, updaters, physics, mesh sync,
// camera matrices and rendering, in that order.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Renderer returns the renderer frames are presented with.
	//
	// Returns:
	//   - renderer.Renderer: the renderer instance, or nil when running without one
	Renderer() renderer.Renderer

	// Scene returns the scene passed to Run, or nil before Run.
	Scene() scene.Context

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate caps the loop at the given ticks per second.
	//
	// Parameters:
	//   - fps: target frames per second (0 or less uncaps the loop)
	SetTickRate(fps float64)

	// SetTickCallback registers a function called each tick after the updaters.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// AddUpdater registers an Updater advanced every tick.
	//
	// Parameters:
	//   - u: the updater to add
	AddUpdater(u Updater)

	// Run starts the render loop for sc and blocks until the window closes, the engine quits,
	// or the scene is disposed. When Run returns the scene is disposed, the renderer released
	// and the window closed, in that order.
	// Run must only be called with a fully bootstrapped scene.
	//
	// Parameters:
	//   - sc: the scene to drive
	//
	// Returns:
	//   - error: ErrNoWindow or ErrSceneNotReady if the loop could not start
	Run(sc scene.Context) error

	// Tick advances the scene by dt seconds and renders one frame.
	// Panics raised while ticking are recovered, logged, and end the loop.
	//
	// Parameters:
	//   - dt: elapsed seconds since the previous tick
	//
	// Returns:
	//   - bool: false once the scene is no longer alive and the loop should stop
	Tick(dt float32) bool

	// Resize propagates a new surface size to the renderer and the active camera.
	// Non-positive or unchanged sizes are ignored.
	//
	// Parameters:
	//   - width: width in pixels
	//   - height: height in pixels
	Resize(width, height int)

	// Quit signals the loop to stop. Safe to call multiple times and from any goroutine.
	Quit()

	// Done returns a channel closed once Quit has been called.
	Done() <-chan struct{}
}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration (window, renderer, profiling, tick rate)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		quitChannel:    make(chan struct{}),
		engineTickRate: time.Second / 60,
		now:            time.Now,
	}

	for _, opt := range options {
		opt(e)
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithClock(e.now))
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Scene() scene.Context {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scene
}

func (e *engine) Run(sc scene.Context) error {
	if e.window == nil {
		return ErrNoWindow
	}
	if sc == nil || !sc.Alive() {
		return ErrSceneNotReady
	}

	e.mu.Lock()
	e.scene = sc
	e.running = true
	e.lastTick = e.now()
	e.mu.Unlock()

	e.window.Attach(sc.Bus())
	e.window.SetUpdateCallback(e.frame)

	// Resize is only wired once the loop is about to start, so a resize during bootstrap
	// cannot touch a half-built scene.
	sub := sc.Bus().Resize.Subscribe(func(ev event.ResizeEvent) {
		e.Resize(ev.Width, ev.Height)
	})
	sc.OnDispose(func() {
		sc.Bus().Resize.Unsubscribe(sub)
	})
	sc.OnDispose(e.Quit)
	e.Resize(e.window.Width(), e.window.Height())

	log.Println("[Engine] render loop started")
	e.window.ProcessMessages()

	e.mu.Lock()
	e.running = false
	e.mu.Unlock()
	e.Quit()
	sc.Dispose()
	e.shutdown()
	log.Println("[Engine] render loop stopped")
	return nil
}

// shutdown releases the renderer and then closes the window, so the rendering surface is
// never released after its native window is gone. Only the first call has an effect.
func (e *engine) shutdown() {
	e.shutdownOnce.Do(func() {
		if e.renderer != nil {
			e.renderer.Release()
		}
		if err := e.window.Close(); err != nil {
			log.Printf("[Engine] failed to close window: %v", err)
		}
	})
}

// frame is the window update callback. It applies the tick rate cap, then ticks.
func (e *engine) frame() {
	select {
	case <-e.quitChannel:
		e.shutdown()
		return
	default:
	}

	now := e.now()
	elapsed := now.Sub(e.lastTick)
	if e.engineTickRate > 0 && elapsed < e.engineTickRate {
		time.Sleep(e.engineTickRate - elapsed)
		now = e.now()
		elapsed = now.Sub(e.lastTick)
	}
	e.lastTick = now

	if !e.Tick(float32(elapsed.Seconds())) {
		e.Quit()
	}
}

func (e *engine) Tick(dt float32) (alive bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Engine] tick recovered from panic: %v", r)
			e.Quit()
			alive = false
		}
	}()

	e.mu.Lock()
	sc := e.scene
	e.mu.Unlock()
	if sc == nil || !sc.Alive() {
		return false
	}

	if dt < 0 {
		dt = 0
	}
	if dt > maxFrameDelta {
		dt = maxFrameDelta
	}

	sc.Scheduler().RunDue()
	if !sc.Alive() {
		return false
	}

	for _, u := range e.updaters {
		u.Update(dt)
	}
	if e.tickCallback != nil {
		e.tickCallback(dt)
	}
	if !sc.Alive() {
		return false
	}

	if w := sc.Physics(); w != nil {
		w.Step(dt)
	}
	sc.SyncMeshes()

	if cam := sc.Camera(); cam != nil {
		cam.Update()
	}

	if e.renderer != nil {
		if err := e.renderer.Render(sc); err != nil {
			log.Printf("[Engine] render failed: %v", err)
		}
	}

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}
	return true
}

func (e *engine) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	e.mu.Lock()
	sc := e.scene
	if width == e.width && height == e.height {
		e.mu.Unlock()
		return
	}
	e.width, e.height = width, height
	e.mu.Unlock()

	if sc != nil && !sc.Alive() {
		return
	}
	if e.renderer != nil {
		e.renderer.Resize(width, height)
	}
	if sc != nil {
		if c := sc.Camera(); c != nil {
			c.SetAspect(float32(width) / float32(height))
		}
	}
}

// Quit signals the loop to stop.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

func (e *engine) Done() <-chan struct{} {
	return e.quitChannel
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		e.engineTickRate = 0
		return
	}
	e.engineTickRate = time.Duration(float64(time.Second) / fps)
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) AddUpdater(u Updater) {
	if u == nil {
		return
	}
	e.updaters = append(e.updaters, u)
}
