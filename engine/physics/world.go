package physics

import (
	"fmt"
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/yohamta/donburi"
)

// world is the implementation of the World interface.
// Bodies live as donburi entities carrying a Body component and a Static or Dynamic tag.
type world struct {
	ecs        donburi.World
	gravity    mgl32.Vec3
	order      []donburi.Entity
	seq        uint64
	iterations int
	maxStep    float32
	sleepSpeed float32
	disposed   bool
}

var _ World = &world{}

func (w *world) Gravity() mgl32.Vec3 {
	return w.gravity
}

func (w *world) CreateBody(shape Shape, transform Transform, props BodyProps) (BodyHandle, error) {
	if w.disposed {
		return BodyHandle{}, ErrWorldDisposed
	}
	if err := validateBody(shape, props); err != nil {
		return BodyHandle{}, err
	}

	rot := transform.Rotation
	if rot.Len() < 1e-6 {
		rot = mgl32.QuatIdent()
	}

	tag := Dynamic
	invMass := float32(0)
	if props.Mass == 0 {
		tag = Static
	} else {
		invMass = 1 / props.Mass
	}

	e := w.ecs.Create(Body, tag)
	w.seq++
	Body.Set(w.ecs.Entry(e), &BodyData{
		Seq:         w.seq,
		Name:        props.Name,
		Shape:       shape,
		Position:    transform.Position,
		Prev:        transform.Position,
		Rotation:    rot.Normalize(),
		Mass:        props.Mass,
		InvMass:     invMass,
		Restitution: props.Restitution,
		Friction:    props.Friction,
		Pickable:    props.Pickable,
	})
	w.order = append(w.order, e)
	return BodyHandle{entity: e, valid: true}, nil
}

// validateBody rejects shapes and properties the solver cannot simulate.
func validateBody(shape Shape, props BodyProps) error {
	switch shape.Kind {
	case ShapeSphere:
		if !(shape.Radius > 0) {
			return fmt.Errorf("%w: sphere radius %f", ErrInvalidBody, shape.Radius)
		}
	case ShapeBox:
		for _, h := range shape.HalfExtents {
			if !(h > 0) {
				return fmt.Errorf("%w: box half extents %v", ErrInvalidBody, shape.HalfExtents)
			}
		}
	default:
		return fmt.Errorf("%w: unknown shape %d", ErrInvalidBody, shape.Kind)
	}
	if props.Mass < 0 || math.IsNaN(float64(props.Mass)) {
		return fmt.Errorf("%w: mass %f", ErrInvalidBody, props.Mass)
	}
	if props.Restitution < 0 || props.Restitution > 1 {
		return fmt.Errorf("%w: restitution %f", ErrInvalidBody, props.Restitution)
	}
	if props.Friction < 0 || props.Friction > 1 {
		return fmt.Errorf("%w: friction %f", ErrInvalidBody, props.Friction)
	}
	return nil
}

func (w *world) RemoveBody(h BodyHandle) {
	if !h.valid || !w.ecs.Valid(h.entity) {
		return
	}
	w.ecs.Remove(h.entity)
	for i, e := range w.order {
		if e == h.entity {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
}

func (w *world) Body(h BodyHandle) (BodyState, bool) {
	if !h.valid || !w.ecs.Valid(h.entity) {
		return BodyState{}, false
	}
	entry := w.ecs.Entry(h.entity)
	return snapshot(entry), true
}

func (w *world) Bodies() []BodyState {
	out := make([]BodyState, 0, len(w.order))
	for _, e := range w.order {
		if !w.ecs.Valid(e) {
			continue
		}
		out = append(out, snapshot(w.ecs.Entry(e)))
	}
	return out
}

func (w *world) BodyCount() int {
	n := 0
	for _, e := range w.order {
		if w.ecs.Valid(e) {
			n++
		}
	}
	return n
}

func (w *world) ApplyImpulse(h BodyHandle, impulse mgl32.Vec3) {
	if !h.valid || !w.ecs.Valid(h.entity) {
		return
	}
	b := Body.Get(w.ecs.Entry(h.entity))
	if b.InvMass == 0 {
		return
	}
	b.Velocity = b.Velocity.Add(impulse.Mul(b.InvMass))
}

func (w *world) Dispose() {
	if w.disposed {
		return
	}
	for _, e := range w.order {
		if w.ecs.Valid(e) {
			w.ecs.Remove(e)
		}
	}
	w.order = nil
	w.disposed = true
	log.Println("[Physics] world disposed")
}

// entries returns the live body entries in creation order.
func (w *world) entries() []*donburi.Entry {
	out := make([]*donburi.Entry, 0, len(w.order))
	for _, e := range w.order {
		if w.ecs.Valid(e) {
			out = append(out, w.ecs.Entry(e))
		}
	}
	return out
}

func snapshot(entry *donburi.Entry) BodyState {
	b := Body.Get(entry)
	return BodyState{
		Handle:      BodyHandle{entity: entry.Entity(), valid: true},
		Name:        b.Name,
		Shape:       b.Shape,
		Position:    b.Position,
		Rotation:    b.Rotation,
		Velocity:    b.Velocity,
		Mass:        b.Mass,
		Restitution: b.Restitution,
		Friction:    b.Friction,
		Pickable:    b.Pickable,
		Static:      entry.HasComponent(Static),
	}
}
