package physics

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-fps/engine/task"
	"github.com/go-gl/mathgl/mgl32"
)

var earthGravity = mgl32.Vec3{0, -9.81, 0}

func newTestWorld(t *testing.T) World {
	t.Helper()
	w, err := NewBackend().Initialize(context.Background(), earthGravity)
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	return w
}

func addGround(t *testing.T, w World) BodyHandle {
	t.Helper()
	h, err := w.CreateBody(Box(100, 0.1, 100), At(mgl32.Vec3{0, -0.05, 0}), BodyProps{
		Name: "ground", Mass: 0, Restitution: 0.1, Friction: 0.8, Pickable: true,
	})
	if err != nil {
		t.Fatalf("CreateBody(ground) failed: %v", err)
	}
	return h
}

func TestInitializeWithRunner(t *testing.T) {
	r := task.NewRunner()
	defer r.Close()

	w, err := NewBackend(WithRunner(r)).Initialize(context.Background(), earthGravity)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Gravity() != earthGravity {
		t.Fatalf("expected gravity %v, got %v", earthGravity, w.Gravity())
	}
}

func TestInitializeLoaderFailure(t *testing.T) {
	b := NewBackend(WithLoader(func() error { return errors.New("module not found") }))
	w, err := b.Initialize(context.Background(), earthGravity)
	if !errors.Is(err, ErrBackendUnavailable) {
		t.Fatalf("expected ErrBackendUnavailable, got %v", err)
	}
	if w != nil {
		t.Fatalf("expected nil world on failure")
	}
}

func TestInitializeRejectsNonFiniteGravity(t *testing.T) {
	nan := float32(math.NaN())
	_, err := NewBackend().Initialize(context.Background(), mgl32.Vec3{0, nan, 0})
	if !errors.Is(err, ErrBackendUnavailable) {
		t.Fatalf("expected ErrBackendUnavailable, got %v", err)
	}
}

func TestInitializeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewBackend().Initialize(ctx, earthGravity); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled without runner, got %v", err)
	}

	r := task.NewRunner()
	defer r.Close()
	if _, err := NewBackend(WithRunner(r)).Initialize(ctx, earthGravity); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled with runner, got %v", err)
	}
}

func TestCreateBodyValidation(t *testing.T) {
	w := newTestWorld(t)
	tests := []struct {
		name  string
		shape Shape
		props BodyProps
	}{
		{"zero radius", Sphere(0), BodyProps{Mass: 1}},
		{"flat box", Box(1, 0, 1), BodyProps{Mass: 1}},
		{"negative mass", Sphere(1), BodyProps{Mass: -1}},
		{"restitution above one", Sphere(1), BodyProps{Mass: 1, Restitution: 1.5}},
		{"negative friction", Box(1, 1, 1), BodyProps{Mass: 1, Friction: -0.1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := w.CreateBody(tt.shape, At(mgl32.Vec3{}), tt.props); !errors.Is(err, ErrInvalidBody) {
				t.Fatalf("expected ErrInvalidBody, got %v", err)
			}
		})
	}
	if w.BodyCount() != 0 {
		t.Fatalf("invalid bodies must not be registered, got %d", w.BodyCount())
	}
}

func TestStaticAndDynamicTags(t *testing.T) {
	w := newTestWorld(t)
	g := addGround(t, w)
	s, err := w.CreateBody(Sphere(1), At(mgl32.Vec3{0, 5, 0}), BodyProps{Mass: 1.2})
	if err != nil {
		t.Fatalf("CreateBody failed: %v", err)
	}

	gs, _ := w.Body(g)
	ss, _ := w.Body(s)
	if !gs.Static || ss.Static {
		t.Fatalf("expected ground static and sphere dynamic, got %v / %v", gs.Static, ss.Static)
	}

	w.ApplyImpulse(g, mgl32.Vec3{0, 100, 0})
	w.ApplyImpulse(s, mgl32.Vec3{0, 6, 0})
	gs, _ = w.Body(g)
	ss, _ = w.Body(s)
	if gs.Velocity != (mgl32.Vec3{}) {
		t.Fatalf("static body must ignore impulses, got %v", gs.Velocity)
	}
	if !ss.Velocity.ApproxEqual(mgl32.Vec3{0, 5, 0}) {
		t.Fatalf("expected velocity (0,5,0), got %v", ss.Velocity)
	}
}

func TestSphereFallsAndRestsOnGround(t *testing.T) {
	w := newTestWorld(t)
	addGround(t, w)
	s, _ := w.CreateBody(Sphere(1), At(mgl32.Vec3{0, 10, 0}), BodyProps{Mass: 1.2, Restitution: 0.4, Friction: 0.6})

	for i := 0; i < 600; i++ {
		w.Step(1.0 / 60.0)
	}

	st, ok := w.Body(s)
	if !ok {
		t.Fatalf("sphere disappeared")
	}
	if mgl32.Abs(st.Position.Y()-0.5) > 0.05 {
		t.Fatalf("expected sphere to rest at y~0.5, got %f", st.Position.Y())
	}
	if st.Velocity.Len() > 0.1 {
		t.Fatalf("expected sphere at rest, velocity %v", st.Velocity)
	}
}

func TestRotatedBoxFallsOntoGround(t *testing.T) {
	w := newTestWorld(t)
	addGround(t, w)
	rot := mgl32.AnglesToQuat(0.7, 1.2, 0, mgl32.XYZ)
	b, _ := w.CreateBody(Box(1.5, 1.5, 1.5), Transform{Position: mgl32.Vec3{3, 12, -4}, Rotation: rot}, BodyProps{Mass: 1.8, Restitution: 0.4, Friction: 0.6})

	for i := 0; i < 600; i++ {
		w.Step(1.0 / 60.0)
	}

	st, _ := w.Body(b)
	if st.Position.Y() <= 0 || st.Position.Y() > 2 {
		t.Fatalf("expected box resting above the ground, got y=%f", st.Position.Y())
	}
}

func TestFallingBodiesStayAboveGroundAtLowFrameRates(t *testing.T) {
	steps := []struct {
		name string
		dt   float32
	}{
		{"60fps", 1.0 / 60.0},
		{"30fps", 1.0 / 30.0},
		{"20fps", 0.05},
		{"10fps", 0.1},
	}
	for _, tc := range steps {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld(t)
			addGround(t, w)

			var bodies []BodyHandle
			for i := 0; i <= 12; i++ {
				height := float32(8 + i)
				x := float32(i*4 - 24)
				s, err := w.CreateBody(Sphere(0.8), At(mgl32.Vec3{x, height, -10}), BodyProps{Mass: 0.96, Restitution: 0.4, Friction: 0.6})
				if err != nil {
					t.Fatalf("CreateBody(sphere) failed: %v", err)
				}
				rot := mgl32.AnglesToQuat(float32(i)*0.2, float32(i)*0.3, 0, mgl32.XYZ)
				b, err := w.CreateBody(Box(0.8, 0.8, 0.8), Transform{Position: mgl32.Vec3{x, height, 10}, Rotation: rot}, BodyProps{Mass: 0.96, Restitution: 0.4, Friction: 0.6})
				if err != nil {
					t.Fatalf("CreateBody(box) failed: %v", err)
				}
				bodies = append(bodies, s, b)
			}

			for range int(6 / tc.dt) {
				w.Step(tc.dt)
			}

			for i, h := range bodies {
				st, _ := w.Body(h)
				if y := st.Position.Y(); y < 0 || y > 2 {
					t.Errorf("body %d (%v) ended at y=%f, want resting on the ground", i, st.Shape.Kind, y)
				}
			}
		})
	}
}

func TestStepSubdividesFastBodies(t *testing.T) {
	w := newTestWorld(t)
	addGround(t, w)
	s, _ := w.CreateBody(Sphere(0.8), At(mgl32.Vec3{0, 1.5, 0}), BodyProps{Mass: 1, Restitution: 0.1})
	w.ApplyImpulse(s, mgl32.Vec3{0, -30, 0})

	w.Step(0.1)

	st, _ := w.Body(s)
	if st.Position.Y() < 0 {
		t.Fatalf("sphere moving at 30 m/s passed through the ground, y=%f", st.Position.Y())
	}
}

func TestStackedSpheresDoNotInterpenetrate(t *testing.T) {
	w := newTestWorld(t)
	addGround(t, w)
	low, _ := w.CreateBody(Sphere(1), At(mgl32.Vec3{0, 2, 0}), BodyProps{Mass: 1, Restitution: 0.4, Friction: 0.6})
	high, _ := w.CreateBody(Sphere(1), At(mgl32.Vec3{0, 4, 0}), BodyProps{Mass: 1, Restitution: 0.4, Friction: 0.6})

	for i := 0; i < 600; i++ {
		w.Step(1.0 / 60.0)
	}

	a, _ := w.Body(low)
	b, _ := w.Body(high)
	if d := b.Position.Sub(a.Position).Len(); d < 0.9 {
		t.Fatalf("spheres interpenetrate: center distance %f", d)
	}
}

func TestRaycastHitsGround(t *testing.T) {
	w := newTestWorld(t)
	g := addGround(t, w)

	hit, ok := w.Raycast(Ray{Origin: mgl32.Vec3{0, 0.5, 0}, Direction: mgl32.Vec3{0, -1, 0}, Length: 0.99}, nil)
	if !ok {
		t.Fatalf("expected ground hit")
	}
	if hit.Body.Handle != g {
		t.Fatalf("expected ground handle, got %v", hit.Body.Handle)
	}
	if mgl32.Abs(hit.Distance-0.5) > 1e-4 {
		t.Fatalf("expected distance 0.5, got %f", hit.Distance)
	}
	if !hit.Normal.ApproxEqual(mgl32.Vec3{0, 1, 0}) {
		t.Fatalf("expected up normal, got %v", hit.Normal)
	}
}

func TestRaycastRespectsLengthAndFilter(t *testing.T) {
	w := newTestWorld(t)
	addGround(t, w)
	s, _ := w.CreateBody(Sphere(1), At(mgl32.Vec3{0, 3, 0}), BodyProps{Name: "ball", Mass: 1, Pickable: true})

	down := mgl32.Vec3{0, -1, 0}
	if _, ok := w.Raycast(Ray{Origin: mgl32.Vec3{0, 10, 0}, Direction: down, Length: 2}, nil); ok {
		t.Fatalf("expected miss beyond ray length")
	}

	hit, ok := w.Raycast(Ray{Origin: mgl32.Vec3{0, 10, 0}, Direction: down, Length: 20}, nil)
	if !ok || hit.Body.Handle != s {
		t.Fatalf("expected nearest hit on sphere, got %+v ok=%v", hit.Body, ok)
	}
	if mgl32.Abs(hit.Distance-6.5) > 1e-3 {
		t.Fatalf("expected distance 6.5, got %f", hit.Distance)
	}

	hit, ok = w.Raycast(Ray{Origin: mgl32.Vec3{0, 10, 0}, Direction: down, Length: 20}, func(b BodyState) bool {
		return b.Static
	})
	if !ok || hit.Body.Name != "ground" {
		t.Fatalf("expected filter to skip the sphere and hit ground, got %+v ok=%v", hit.Body, ok)
	}
}

func TestRaycastRotatedBox(t *testing.T) {
	w := newTestWorld(t)
	rot := mgl32.QuatRotate(float32(math.Pi/4), mgl32.Vec3{0, 0, 1})
	w.CreateBody(Box(2, 2, 2), Transform{Position: mgl32.Vec3{0, 0, 0}, Rotation: rot}, BodyProps{Mass: 1})

	hit, ok := w.Raycast(Ray{Origin: mgl32.Vec3{0, 5, 0}, Direction: mgl32.Vec3{0, -1, 0}, Length: 10}, nil)
	if !ok {
		t.Fatalf("expected hit on rotated box")
	}
	want := 5 - float32(math.Sqrt2)
	if mgl32.Abs(hit.Distance-want) > 1e-3 {
		t.Fatalf("expected distance %f to the box corner, got %f", want, hit.Distance)
	}
}

func TestMoveAndCollideLandsOnGround(t *testing.T) {
	w := newTestWorld(t)
	addGround(t, w)
	vol := Ellipsoid{Radii: mgl32.Vec3{0.5, 0.9, 0.5}, Offset: mgl32.Vec3{0, 0.9, 0}}

	res := w.MoveAndCollide(vol, mgl32.Vec3{0, 2.5, -10}, mgl32.Vec3{0, -5, 0})
	if !res.Grounded || !res.Blocked {
		t.Fatalf("expected grounded and blocked, got %+v", res)
	}
	if mgl32.Abs(res.Position.Y()-0.9) > 0.01 {
		t.Fatalf("expected camera to rest at y~0.9, got %f", res.Position.Y())
	}

	again := w.MoveAndCollide(vol, res.Position, mgl32.Vec3{0, -0.1, 0})
	if !again.Grounded || mgl32.Abs(again.Position.Y()-res.Position.Y()) > 1e-4 {
		t.Fatalf("expected resting contact to hold position, got %+v", again)
	}
}

func TestMoveAndCollideBlocksWalls(t *testing.T) {
	w := newTestWorld(t)
	addGround(t, w)
	w.CreateBody(Box(2, 4, 2), At(mgl32.Vec3{3, 2, 0}), BodyProps{Mass: 0})
	vol := Ellipsoid{Radii: mgl32.Vec3{0.5, 0.9, 0.5}, Offset: mgl32.Vec3{0, 0.9, 0}}

	res := w.MoveAndCollide(vol, mgl32.Vec3{0, 0.901, 0}, mgl32.Vec3{5, 0, 0})
	if !res.Blocked {
		t.Fatalf("expected wall to block motion")
	}
	if res.Position.X() > 1.5 {
		t.Fatalf("camera penetrated wall: x=%f", res.Position.X())
	}

	free := w.MoveAndCollide(vol, mgl32.Vec3{0, 0.901, 0}, mgl32.Vec3{-5, 0, 0})
	if free.Blocked || mgl32.Abs(free.Position.X()+5) > 1e-4 {
		t.Fatalf("expected unobstructed motion, got %+v", free)
	}
}

func TestRemoveAndDispose(t *testing.T) {
	w := newTestWorld(t)
	g := addGround(t, w)
	s, _ := w.CreateBody(Sphere(1), At(mgl32.Vec3{0, 5, 0}), BodyProps{Mass: 1})

	w.RemoveBody(s)
	w.RemoveBody(s)
	if w.BodyCount() != 1 {
		t.Fatalf("expected 1 body after removal, got %d", w.BodyCount())
	}
	if _, ok := w.Body(s); ok {
		t.Fatalf("removed body still readable")
	}

	w.Dispose()
	w.Dispose()
	if w.BodyCount() != 0 {
		t.Fatalf("expected 0 bodies after dispose, got %d", w.BodyCount())
	}
	if _, ok := w.Body(g); ok {
		t.Fatalf("disposed world still returns bodies")
	}
	if _, err := w.CreateBody(Sphere(1), At(mgl32.Vec3{}), BodyProps{Mass: 1}); !errors.Is(err, ErrWorldDisposed) {
		t.Fatalf("expected ErrWorldDisposed, got %v", err)
	}
	w.Step(1.0 / 60.0)
}
