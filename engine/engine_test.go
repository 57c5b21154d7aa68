package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-fps/engine/camera"
	"github.com/Carmen-Shannon/oxy-fps/engine/event"
	"github.com/Carmen-Shannon/oxy-fps/engine/physics"
	"github.com/Carmen-Shannon/oxy-fps/engine/renderer"
	"github.com/Carmen-Shannon/oxy-fps/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// fakeWindow runs its message loop synchronously, up to maxIterations.
type fakeWindow struct {
	bus           *event.Bus
	onUpdate      func()
	running       bool
	closed        bool
	iterations    int
	maxIterations int
	width, height int
}

func newFakeWindow() *fakeWindow {
	return &fakeWindow{running: true, maxIterations: 100, width: 800, height: 600}
}

func (w *fakeWindow) Attach(bus *event.Bus)       { w.bus = bus }
func (w *fakeWindow) SetUpdateCallback(cb func()) { w.onUpdate = cb }
func (w *fakeWindow) SetTitle(string)             {}
func (w *fakeWindow) RequestCapture() error       { return nil }
func (w *fakeWindow) ReleaseCapture()             {}
func (w *fakeWindow) Captured() bool              { return false }
func (w *fakeWindow) IsRunning() bool             { return w.running }
func (w *fakeWindow) Width() int                  { return w.width }
func (w *fakeWindow) Height() int                 { return w.height }
func (w *fakeWindow) Close() error                { w.running = false; w.closed = true; return nil }
func (w *fakeWindow) ProcessMessages() {
	for w.running && w.iterations < w.maxIterations {
		w.iterations++
		if w.onUpdate != nil {
			w.onUpdate()
		}
	}
}

type updaterFunc func(dt float32)

func (f updaterFunc) Update(dt float32) { f(dt) }

func newTestScene(t *testing.T) scene.Context {
	t.Helper()
	sc := scene.NewContext()
	ctrl := camera.NewCameraController(camera.WithPosition(0, 2, -10))
	sc.SetCamera(camera.NewCamera(camera.WithName("testCamera"), camera.WithController(ctrl)))
	return sc
}

func TestRunRequiresWindowAndLiveScene(t *testing.T) {
	if err := NewEngine().Run(scene.NewContext()); !errors.Is(err, ErrNoWindow) {
		t.Fatalf("expected ErrNoWindow, got %v", err)
	}

	sc := scene.NewContext()
	sc.Dispose()
	e := NewEngine(WithWindow(newFakeWindow()))
	if err := e.Run(sc); !errors.Is(err, ErrSceneNotReady) {
		t.Fatalf("expected ErrSceneNotReady, got %v", err)
	}
	if err := e.Run(nil); !errors.Is(err, ErrSceneNotReady) {
		t.Fatalf("expected ErrSceneNotReady for nil scene, got %v", err)
	}
}

func TestRunStopsWhenSceneDisposed(t *testing.T) {
	w := newFakeWindow()
	r := renderer.NewHeadless(800, 600)
	sc := newTestScene(t)

	ticks := 0
	e := NewEngine(
		WithWindow(w),
		WithRenderer(r),
		WithTickRate(0),
		WithUpdaters(updaterFunc(func(float32) {
			ticks++
			if ticks == 3 {
				sc.Dispose()
			}
		})),
	)

	if err := e.Run(sc); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := r.Frames(); got != 2 {
		t.Errorf("expected 2 rendered frames before disposal, got %d", got)
	}
	if !w.closed {
		t.Error("window should be closed once the scene is disposed")
	}
	if sc.Alive() {
		t.Error("scene should be disposed after Run returns")
	}
	select {
	case <-e.Done():
	default:
		t.Error("Done should be closed after Run")
	}
}

func TestRunDisposesSceneWhenWindowCloses(t *testing.T) {
	w := newFakeWindow()
	w.maxIterations = 5
	sc := newTestScene(t)
	e := NewEngine(WithWindow(w), WithRenderer(renderer.NewHeadless(800, 600)), WithTickRate(0))

	if err := e.Run(sc); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sc.Alive() {
		t.Error("scene should be disposed when the window loop ends")
	}
	if got := e.Renderer().Frames(); got != 5 {
		t.Errorf("expected 5 frames, got %d", got)
	}
}

// orderedRenderer records whether the window was still open when it was released.
type orderedRenderer struct {
	renderer.Renderer
	window            *fakeWindow
	releases          int
	windowOpenOnFirst bool
}

func (r *orderedRenderer) Release() {
	if r.releases == 0 {
		r.windowOpenOnFirst = !r.window.closed
	}
	r.releases++
	r.Renderer.Release()
}

func TestShutdownReleasesRendererBeforeWindow(t *testing.T) {
	tests := []struct {
		name string
		stop func(e Engine, w *fakeWindow, sc scene.Context, ticks int)
	}{
		{"quit", func(e Engine, _ *fakeWindow, _ scene.Context, ticks int) {
			if ticks == 2 {
				e.Quit()
			}
		}},
		{"scene disposed", func(_ Engine, _ *fakeWindow, sc scene.Context, ticks int) {
			if ticks == 2 {
				sc.Dispose()
			}
		}},
		{"window closed by user", func(_ Engine, w *fakeWindow, _ scene.Context, ticks int) {
			if ticks == 2 {
				w.running = false
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newFakeWindow()
			r := &orderedRenderer{Renderer: renderer.NewHeadless(800, 600), window: w}
			sc := newTestScene(t)

			var e Engine
			ticks := 0
			e = NewEngine(
				WithWindow(w),
				WithRenderer(r),
				WithTickRate(0),
				WithUpdaters(updaterFunc(func(float32) {
					ticks++
					tt.stop(e, w, sc, ticks)
				})),
			)
			if err := e.Run(sc); err != nil {
				t.Fatalf("Run: %v", err)
			}

			if r.releases != 1 {
				t.Errorf("renderer released %d times, want 1", r.releases)
			}
			if !r.windowOpenOnFirst {
				t.Error("renderer must be released while the window still exists")
			}
			if !w.closed {
				t.Error("window should be closed after Run")
			}
		})
	}
}

func TestTickStepsPhysicsAndRunsTimers(t *testing.T) {
	clock := event.NewManualClock(time.Unix(0, 0))
	sc := scene.NewContext(scene.WithScheduler(event.NewScheduler(clock.Now)))
	w, err := physics.NewBackend().Initialize(context.Background(), mgl32.Vec3{0, -9.81, 0})
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	sc.SetPhysics(w)

	h, err := w.CreateBody(physics.Sphere(1), physics.At(mgl32.Vec3{0, 10, 0}), physics.BodyProps{Name: "ball", Mass: 1})
	if err != nil {
		t.Fatalf("CreateBody: %v", err)
	}

	fired := false
	sc.Scheduler().AfterFunc(50*time.Millisecond, func() { fired = true })

	e := NewEngine()
	e.(*engine).scene = sc

	clock.Advance(50 * time.Millisecond)
	if !e.Tick(1.0 / 60.0) {
		t.Fatal("Tick reported a dead scene")
	}
	if !fired {
		t.Error("due timer should run during Tick")
	}

	st, ok := w.Body(h)
	if !ok {
		t.Fatal("body missing")
	}
	if st.Position.Y() >= 10 {
		t.Errorf("body should fall after a tick, y = %.3f", st.Position.Y())
	}
}

func TestTickOnDeadSceneIsNoOp(t *testing.T) {
	e := NewEngine()
	if e.Tick(0.016) {
		t.Fatal("Tick without a scene should report false")
	}

	sc := scene.NewContext()
	e.(*engine).scene = sc
	sc.Dispose()
	if e.Tick(0.016) {
		t.Fatal("Tick on a disposed scene should report false")
	}
}

func TestTickRecoversPanic(t *testing.T) {
	sc := scene.NewContext()
	e := NewEngine(WithUpdaters(updaterFunc(func(float32) { panic("boom") })))
	e.(*engine).scene = sc

	if e.Tick(0.016) {
		t.Fatal("a panicking tick should end the loop")
	}
	select {
	case <-e.Done():
	default:
		t.Error("panic should signal quit")
	}
}

func TestResizeIgnoresInvalidAndUnchanged(t *testing.T) {
	r := renderer.NewHeadless(800, 600)
	sc := newTestScene(t)
	e := NewEngine(WithRenderer(r))
	e.(*engine).scene = sc

	e.Resize(0, 600)
	e.Resize(800, -1)
	if w, h := r.Size(); w != 800 || h != 600 {
		t.Fatalf("invalid resize reached the renderer: %dx%d", w, h)
	}

	e.Resize(1000, 500)
	if w, h := r.Size(); w != 1000 || h != 500 {
		t.Fatalf("expected 1000x500, got %dx%d", w, h)
	}
	if got := sc.Camera().Aspect(); got != 2 {
		t.Errorf("expected aspect 2, got %v", got)
	}

	// A second identical resize must not reach the renderer.
	r.Resize(640, 480)
	e.Resize(1000, 500)
	if w, h := r.Size(); w != 640 || h != 480 {
		t.Errorf("unchanged resize should be ignored, renderer at %dx%d", w, h)
	}
}

func TestResizeAfterDisposeIsIgnored(t *testing.T) {
	r := renderer.NewHeadless(800, 600)
	sc := newTestScene(t)
	e := NewEngine(WithRenderer(r))
	e.(*engine).scene = sc
	sc.Dispose()

	e.Resize(1024, 768)
	if w, h := r.Size(); w != 800 || h != 600 {
		t.Errorf("resize after dispose reached the renderer: %dx%d", w, h)
	}
}
