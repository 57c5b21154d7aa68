package scene

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-fps/engine/event"
	"github.com/Carmen-Shannon/oxy-fps/engine/physics"
	"github.com/go-gl/mathgl/mgl32"
)

func TestNewMeshDefaults(t *testing.T) {
	a := NewMesh(MeshBox, WithName("a"))
	b := NewMesh(MeshSphere, WithName("b"), WithSize(2, 2, 2))

	if a.ID() == b.ID() {
		t.Fatalf("mesh IDs must be unique, both are %d", a.ID())
	}
	if !a.Enabled() || !a.Pickable() {
		t.Errorf("new mesh should be enabled and pickable")
	}
	if a.IsGround() {
		t.Errorf("mesh should not be ground unless WithGround is used")
	}
	if a.Rotation() != mgl32.QuatIdent() {
		t.Errorf("default rotation = %v, want identity", a.Rotation())
	}
	if a.Material() != nil {
		t.Errorf("default material should be nil")
	}
}

func TestMeshHasGeometry(t *testing.T) {
	tests := []struct {
		name string
		mesh Mesh
		want bool
	}{
		{"box", NewMesh(MeshBox, WithSize(1, 1, 1)), true},
		{"flat box", NewMesh(MeshBox, WithSize(1, 0, 1)), false},
		{"sphere", NewMesh(MeshSphere, WithSize(1, 0, 0)), true},
		{"empty sphere", NewMesh(MeshSphere, WithSize(0, 0, 0)), false},
		{"ground", NewMesh(MeshGround, WithSize(100, 0, 100)), true},
		{"empty ground", NewMesh(MeshGround, WithSize(0, 0, 100)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.mesh.HasGeometry(); got != tt.want {
				t.Errorf("HasGeometry() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContextSingleGround(t *testing.T) {
	sc := NewContext()
	g := NewMesh(MeshGround, WithName("ground"), WithGround())
	if err := sc.SetGround(g); err != nil {
		t.Fatalf("SetGround failed: %v", err)
	}
	err := sc.SetGround(NewMesh(MeshGround, WithName("other"), WithGround()))
	if !errors.Is(err, ErrGroundAlreadySet) {
		t.Fatalf("second SetGround err = %v, want ErrGroundAlreadySet", err)
	}
	if sc.Ground() != g {
		t.Errorf("Ground() changed after rejected SetGround")
	}
	if n := len(sc.Meshes()); n != 1 {
		t.Errorf("Meshes() has %d entries, want 1", n)
	}
	if m, ok := sc.MeshByName("ground"); !ok || m != g {
		t.Errorf("MeshByName(ground) = %v, %v", m, ok)
	}
}

func TestContextSyncMeshes(t *testing.T) {
	w, err := physics.NewBackend().Initialize(context.Background(), mgl32.Vec3{0, -9.81, 0})
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	h, err := w.CreateBody(physics.Sphere(1), physics.At(mgl32.Vec3{0, 10, 0}), physics.BodyProps{Mass: 1})
	if err != nil {
		t.Fatalf("CreateBody failed: %v", err)
	}

	sc := NewContext()
	sc.SetPhysics(w)
	m := NewMesh(MeshSphere, WithPosition(0, 10, 0))
	m.SetBody(h)
	sc.AddMesh(m)
	sc.AddMesh(NewMesh(MeshBox, WithPosition(5, 5, 5)))

	if got, ok := sc.MeshForBody(h); !ok || got != m {
		t.Fatalf("MeshForBody did not return the bound mesh")
	}

	w.Step(0.5)
	sc.SyncMeshes()

	if y := m.Position().Y(); y >= 10 {
		t.Errorf("synced mesh y = %v, want below 10 after falling", y)
	}
	st, _ := w.Body(h)
	if !m.Position().ApproxEqual(st.Position) {
		t.Errorf("mesh position %v != body position %v", m.Position(), st.Position)
	}
}

func TestContextDispose(t *testing.T) {
	clock := event.NewManualClock(time.Unix(0, 0))
	sc := NewContext(WithScheduler(event.NewScheduler(clock.Now)))

	w, err := physics.NewBackend().Initialize(context.Background(), mgl32.Vec3{0, -9.81, 0})
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	sc.SetPhysics(w)

	fired := false
	sc.Scheduler().AfterFunc(time.Second, func() { fired = true })

	var order []int
	sc.OnDispose(func() { order = append(order, 1) })
	sc.OnDispose(func() { order = append(order, 2) })

	sc.Dispose()
	sc.Dispose()

	if sc.Alive() {
		t.Fatalf("context should be dead after Dispose")
	}
	if len(order) != 2 || order[0] != 2 || order[1] != 1 {
		t.Errorf("dispose hooks ran in order %v, want [2 1]", order)
	}

	clock.Advance(2 * time.Second)
	sc.Scheduler().RunDue()
	if fired {
		t.Errorf("timer fired after Dispose")
	}

	if _, err := w.CreateBody(physics.Sphere(1), physics.At(mgl32.Vec3{}), physics.BodyProps{Mass: 1}); !errors.Is(err, physics.ErrWorldDisposed) {
		t.Errorf("physics world should be disposed with the scene, got %v", err)
	}

	late := false
	sc.OnDispose(func() { late = true })
	if !late {
		t.Errorf("OnDispose on a dead context should run immediately")
	}
	if err := sc.SetGround(NewMesh(MeshGround, WithGround())); !errors.Is(err, ErrContextDisposed) {
		t.Errorf("SetGround after Dispose err = %v, want ErrContextDisposed", err)
	}
}
