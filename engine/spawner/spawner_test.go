package spawner

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-fps/engine/light"
	"github.com/Carmen-Shannon/oxy-fps/engine/physics"
	"github.com/Carmen-Shannon/oxy-fps/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

func newTestScene(t *testing.T) scene.Context {
	t.Helper()
	w, err := physics.NewBackend().Initialize(context.Background(), mgl32.Vec3{0, -9.81, 0})
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	sc := scene.NewContext()
	sc.SetPhysics(w)
	t.Cleanup(sc.Dispose)
	return sc
}

func TestSpawnTwentyFive(t *testing.T) {
	sc := newTestScene(t)
	sun := light.NewLight(light.LightTypeDirectional, light.WithDirection(-0.6, -1, -0.4))
	sg, err := light.NewShadowGenerator(sun)
	if err != nil {
		t.Fatalf("NewShadowGenerator failed: %v", err)
	}
	sc.SetShadows(sg)

	bounds := DefaultBounds()
	batch, err := NewSpawner(sc, WithSeed(42)).Spawn(25, bounds)
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}
	if len(batch.Meshes) != 25 {
		t.Fatalf("batch has %d meshes, want 25", len(batch.Meshes))
	}
	if n := sc.Physics().BodyCount(); n != 25 {
		t.Errorf("physics has %d bodies, want 25", n)
	}
	if n := len(sg.Casters()); n != 25 {
		t.Errorf("shadow generator has %d casters, want 25", n)
	}

	for i, m := range batch.Meshes {
		st, ok := sc.Physics().Body(m.Body())
		if !ok {
			t.Fatalf("mesh %s has no body", m.Name())
		}
		switch st.Shape.Kind {
		case physics.ShapeSphere:
			if m.Kind() != scene.MeshSphere || !strings.HasPrefix(m.Name(), "sphere") {
				t.Errorf("object %d: sphere body on mesh %q kind %v", i, m.Name(), m.Kind())
			}
		case physics.ShapeBox:
			if m.Kind() != scene.MeshBox || !strings.HasPrefix(m.Name(), "box") {
				t.Errorf("object %d: box body on mesh %q kind %v", i, m.Name(), m.Kind())
			}
		default:
			t.Errorf("object %d: unexpected shape %v", i, st.Shape.Kind)
		}
		if st.Mass <= 0 || st.Static {
			t.Errorf("%s: mass %v static %v, want dynamic with positive mass", m.Name(), st.Mass, st.Static)
		}
		size := m.Size().X()
		if size < 0.8 || size >= 2.6 {
			t.Errorf("%s: size %v outside [0.8, 2.6)", m.Name(), size)
		}
		if diff := st.Mass - size*1.2; diff > 1e-4 || diff < -1e-4 {
			t.Errorf("%s: mass %v, want %v", m.Name(), st.Mass, size*1.2)
		}
		p := st.Position
		if p.Y() < 8 || p.Y() >= 20 {
			t.Errorf("%s: height %v outside [8, 20)", m.Name(), p.Y())
		}
		if p.X() < -35 || p.X() > 35 || p.Z() < -35 || p.Z() > 35 {
			t.Errorf("%s: position %v outside the spawn square", m.Name(), p)
		}
		if st.Restitution != 0.4 || st.Friction != 0.6 {
			t.Errorf("%s: restitution %v friction %v, want 0.4/0.6", m.Name(), st.Restitution, st.Friction)
		}
		if !m.CheckCollisions() {
			t.Errorf("%s: camera collisions should be enabled", m.Name())
		}
	}
}

func TestSpawnIsReproducible(t *testing.T) {
	a, err := NewSpawner(newTestScene(t), WithSeed(7)).Spawn(10, DefaultBounds())
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}
	b, err := NewSpawner(newTestScene(t), WithSeed(7)).Spawn(10, DefaultBounds())
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}
	for i := range a.Meshes {
		if a.Meshes[i].Name() != b.Meshes[i].Name() || a.Meshes[i].Position() != b.Meshes[i].Position() {
			t.Fatalf("object %d differs between runs with the same seed", i)
		}
	}
}

func TestSpawnObjectsFallOntoGround(t *testing.T) {
	for _, dt := range []float32{1.0 / 60.0, 1.0 / 30.0, 0.1} {
		sc := newTestScene(t)
		w := sc.Physics()
		if _, err := w.CreateBody(physics.Box(100, 0.1, 100), physics.At(mgl32.Vec3{0, -0.05, 0}), physics.BodyProps{Mass: 0}); err != nil {
			t.Fatalf("CreateBody(ground) failed: %v", err)
		}

		batch, err := NewSpawner(sc, WithSeed(3)).Spawn(25, DefaultBounds())
		if err != nil {
			t.Fatalf("Spawn failed: %v", err)
		}
		for range int(8 / dt) {
			w.Step(dt)
		}
		sc.SyncMeshes()
		for _, m := range batch.Meshes {
			if y := m.Position().Y(); y < 0 || y > 5 {
				t.Errorf("dt=%v: %s settled at y=%v, want resting near the ground", dt, m.Name(), y)
			}
		}
	}
}

func TestSpawnRejectsInvalidInput(t *testing.T) {
	sc := newTestScene(t)
	s := NewSpawner(sc, WithSeed(1))

	if _, err := s.Spawn(-1, DefaultBounds()); err == nil {
		t.Errorf("negative count should fail")
	}
	for _, b := range []Bounds{
		{HalfWidth: -1, MinHeight: 8, MaxHeight: 20},
		{HalfWidth: 35, MinHeight: 0, MaxHeight: 20},
		{HalfWidth: 35, MinHeight: 20, MaxHeight: 8},
	} {
		if _, err := s.Spawn(1, b); !errors.Is(err, ErrInvalidBounds) {
			t.Errorf("Spawn(%+v) err = %v, want ErrInvalidBounds", b, err)
		}
	}
	if n := sc.Physics().BodyCount(); n != 0 {
		t.Errorf("rejected spawns created %d bodies", n)
	}

	if batch, err := s.Spawn(0, DefaultBounds()); err != nil || len(batch.Meshes) != 0 {
		t.Errorf("Spawn(0) = %d meshes, %v", len(batch.Meshes), err)
	}
}

func TestSpawnRequiresPhysics(t *testing.T) {
	sc := scene.NewContext()
	defer sc.Dispose()
	if _, err := NewSpawner(sc).Spawn(1, DefaultBounds()); !errors.Is(err, ErrNoPhysics) {
		t.Fatalf("err = %v, want ErrNoPhysics", err)
	}
}
