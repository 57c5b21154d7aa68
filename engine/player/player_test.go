package player

import (
	"context"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-fps/engine/event"
	"github.com/Carmen-Shannon/oxy-fps/engine/physics"
	"github.com/Carmen-Shannon/oxy-fps/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// restHeight is where the eye settles with the default ellipsoid on a ground whose top is y=0.
const restHeight float32 = 0.9

type testScene struct {
	sc     scene.Context
	clock  *event.ManualClock
	ground scene.Mesh
}

func newTestScene(t *testing.T) *testScene {
	t.Helper()
	w, err := physics.NewBackend().Initialize(context.Background(), mgl32.Vec3{0, -9.81, 0})
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	clock := event.NewManualClock(time.Unix(1000, 0))
	sc := scene.NewContext(scene.WithScheduler(event.NewScheduler(clock.Now)))
	sc.SetPhysics(w)

	h, err := w.CreateBody(physics.Box(100, 0.1, 100), physics.At(mgl32.Vec3{0, -0.05, 0}), physics.BodyProps{
		Name: "ground", Restitution: 0.1, Friction: 0.8, Pickable: true,
	})
	if err != nil {
		t.Fatalf("CreateBody(ground) failed: %v", err)
	}
	ground := scene.NewMesh(scene.MeshGround, scene.WithName("ground"), scene.WithGround(), scene.WithSize(100, 0, 100))
	ground.SetBody(h)
	if err := sc.SetGround(ground); err != nil {
		t.Fatalf("SetGround failed: %v", err)
	}
	t.Cleanup(sc.Dispose)
	return &testScene{sc: sc, clock: clock, ground: ground}
}

func near(a, b, tol float32) bool {
	d := a - b
	return d <= tol && d >= -tol
}

func step(c Controller, seconds float32) {
	const dt float32 = 1.0 / 60.0
	for i := 0; i < int(seconds/dt+0.5); i++ {
		c.Update(dt)
	}
}

func TestControllerInstallsCamera(t *testing.T) {
	ts := newTestScene(t)
	c := NewController(ts.sc)

	if ts.sc.Camera() != c.Camera() {
		t.Fatalf("scene camera is not the player camera")
	}
	if got := c.Position(); got != (mgl32.Vec3{0, 2.5, -10}) {
		t.Errorf("start position = %v, want (0, 2.5, -10)", got)
	}
	if !c.CollisionsEnabled() || !c.GravityEnabled() {
		t.Errorf("collisions and gravity should default on")
	}
	e := c.Ellipsoid()
	if e.Radii != (mgl32.Vec3{0.5, 0.9, 0.5}) || e.Offset != (mgl32.Vec3{0, 0.9, 0}) {
		t.Errorf("ellipsoid = %+v", e)
	}
}

func TestControllerFallsAndRests(t *testing.T) {
	ts := newTestScene(t)
	c := NewController(ts.sc)

	step(c, 2)

	if !c.Grounded() {
		t.Fatalf("player should be grounded after falling")
	}
	if y := c.Position().Y(); !near(y, restHeight, 0.01) {
		t.Errorf("rest height = %v, want about %v", y, restHeight)
	}
	if v := c.VerticalVelocity(); v != 0 {
		t.Errorf("vertical velocity at rest = %v, want 0", v)
	}
}

func TestControllerWalksForward(t *testing.T) {
	ts := newTestScene(t)
	c := NewController(ts.sc)
	c.Attach()
	step(c, 1)
	start := c.Position()

	ts.sc.Bus().Keys.Emit(event.KeyEvent{Action: event.KeyDown, Code: 'W'})
	step(c, 1)
	ts.sc.Bus().Keys.Emit(event.KeyEvent{Action: event.KeyUp, Code: 'W'})
	moved := c.Position().Sub(start)

	if moved.Z() < 1.5 || moved.Z() > 1.8 {
		t.Errorf("walked %v along +Z in one second, want about 1.75", moved.Z())
	}
	if !near(moved.X(), 0, 1e-3) || !near(moved.Y(), 0, 1e-2) {
		t.Errorf("walking forward drifted: %v", moved)
	}

	before := c.Position()
	step(c, 0.5)
	if d := c.Position().Sub(before).Len(); d > 0.05 {
		t.Errorf("player kept moving %v after key release", d)
	}
}

func TestControllerBlockedByBody(t *testing.T) {
	ts := newTestScene(t)
	if _, err := ts.sc.Physics().CreateBody(physics.Box(4, 4, 1), physics.At(mgl32.Vec3{0, 2, -7}), physics.BodyProps{}); err != nil {
		t.Fatalf("CreateBody(wall) failed: %v", err)
	}
	c := NewController(ts.sc)
	c.Attach()
	step(c, 1)

	ts.sc.Bus().Keys.Emit(event.KeyEvent{Action: event.KeyDown, Code: 'W'})
	step(c, 3)

	// wall face at z=-7.5, player half-depth 0.5
	if z := c.Position().Z(); z > -8+0.01 {
		t.Errorf("player penetrated the wall: z=%v", z)
	}
}

func TestControllerImpulseRisesAndLands(t *testing.T) {
	ts := newTestScene(t)
	c := NewController(ts.sc)
	step(c, 2)

	c.ApplyVerticalImpulse(5.5)
	if c.Grounded() {
		t.Errorf("impulse should leave the ground")
	}
	peak := c.Position().Y()
	for range 120 {
		c.Update(1.0 / 60.0)
		peak = max(peak, c.Position().Y())
	}
	// v^2 / 2g = 1.54
	if rise := peak - restHeight; rise < 1.3 || rise > 1.7 {
		t.Errorf("jump rose %v, want about 1.54", rise)
	}
	if !c.Grounded() || !near(c.Position().Y(), restHeight, 0.01) {
		t.Errorf("player did not land: y=%v grounded=%v", c.Position().Y(), c.Grounded())
	}
}

func TestControllerLookGate(t *testing.T) {
	ts := newTestScene(t)
	locked := false
	c := NewController(ts.sc, WithLookGate(func() bool { return locked }))
	c.Attach()

	ts.sc.Bus().PointerMove.Emit(event.PointerMoveEvent{DX: 3500})
	c.Update(1.0 / 60.0)
	if yaw := c.Camera().Controller().Yaw(); yaw != 0 {
		t.Fatalf("look applied while gated: yaw=%v", yaw)
	}

	locked = true
	ts.sc.Bus().PointerMove.Emit(event.PointerMoveEvent{DX: 3500})
	c.Update(1.0 / 60.0)
	if yaw := c.Camera().Controller().Yaw(); yaw == 0 {
		t.Fatalf("look not applied while ungated")
	}
}

func TestControllerAttachIdempotentAndDetach(t *testing.T) {
	ts := newTestScene(t)
	c := NewController(ts.sc)
	h1 := c.Attach()
	h2 := c.Attach()
	if h1 != h2 {
		t.Fatalf("Attach twice returned different handles")
	}
	if n := ts.sc.Bus().Keys.Len(); n != 1 {
		t.Fatalf("key subscribers = %d, want 1", n)
	}
	h1.Detach()
	h1.Detach()
	if n := ts.sc.Bus().Keys.Len(); n != 0 {
		t.Errorf("key subscribers after Detach = %d, want 0", n)
	}
	if n := ts.sc.Bus().PointerMove.Len(); n != 0 {
		t.Errorf("pointer subscribers after Detach = %d, want 0", n)
	}
}
