package physics

import (
	"math"

	"github.com/Carmen-Shannon/oxy-fps/common"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// penetrationSlop is the overlap tolerated before positional correction kicks in.
	penetrationSlop float32 = 0.001
	// correctionPercent is the share of the remaining overlap removed per solver pass.
	correctionPercent float32 = 0.8
	// bounceThreshold is the approach speed below which contacts are treated as inelastic.
	bounceThreshold float32 = 1.0
	// supportNormalY is the minimum vertical normal component for a contact to count as support.
	supportNormalY float32 = 0.7
	// maxSubsteps bounds the work done for a single long frame.
	maxSubsteps = 64
	// travelFraction is the share of a body's smallest half-extent it may move in one substep.
	travelFraction float32 = 0.5
)

func (w *world) Step(dt float32) {
	if w.disposed || !(dt > 0) {
		return
	}
	steps := int(math.Ceil(float64(dt / w.maxStep)))
	if n := w.travelSteps(dt); n > steps {
		steps = n
	}
	if steps < 1 {
		steps = 1
	}
	if steps > maxSubsteps {
		steps = maxSubsteps
	}
	h := dt / float32(steps)
	for range steps {
		w.substep(h)
	}
}

// travelSteps returns how many substeps keep every dynamic body from moving more than
// travelFraction of its smallest half-extent per substep over dt.
func (w *world) travelSteps(dt float32) int {
	g := w.gravity.Len()
	steps := 1
	for _, e := range w.entries() {
		b := Body.Get(e)
		if b.InvMass == 0 {
			continue
		}
		limit := minHalfExtent(b.Shape) * travelFraction
		if limit <= 0 {
			continue
		}
		travel := (b.Velocity.Len() + g*dt) * dt
		if n := int(math.Ceil(float64(travel / limit))); n > steps {
			steps = n
		}
	}
	return steps
}

func minHalfExtent(s Shape) float32 {
	if s.Kind == ShapeSphere {
		return s.Radius
	}
	h := s.HalfExtents
	return min(h[0], h[1], h[2])
}

// substep integrates gravity, then runs the contact solver over every body pair.
func (w *world) substep(h float32) {
	entries := w.entries()
	bodies := make([]*BodyData, len(entries))
	for i, e := range entries {
		bodies[i] = Body.Get(e)
	}

	for _, b := range bodies {
		b.Prev = b.Position
		if b.InvMass == 0 {
			continue
		}
		b.Velocity = b.Velocity.Add(w.gravity.Mul(h))
		b.Position = b.Position.Add(b.Velocity.Mul(h))
	}

	supported := make([]bool, len(bodies))
	for it := 0; it < w.iterations; it++ {
		for i := 0; i < len(bodies); i++ {
			for j := i + 1; j < len(bodies); j++ {
				a, b := bodies[i], bodies[j]
				if a.InvMass+b.InvMass == 0 {
					continue
				}
				n, depth, ok := contact(a, b)
				if !ok {
					continue
				}
				resolve(a, b, n, depth)
				if b.InvMass > 0 && n.Y() > supportNormalY {
					supported[j] = true
				}
				if a.InvMass > 0 && n.Y() < -supportNormalY {
					supported[i] = true
				}
			}
		}
	}

	// Resting bodies drop their residual velocity so stacks do not creep.
	for i, b := range bodies {
		if b.InvMass > 0 && supported[i] && b.Velocity.Len() < w.sleepSpeed {
			b.Velocity = mgl32.Vec3{}
		}
	}
}

// resolve separates a and b along n (pointing from a to b) and applies restitution and friction impulses.
func resolve(a, b *BodyData, n mgl32.Vec3, depth float32) {
	invSum := a.InvMass + b.InvMass

	if corr := max(depth-penetrationSlop, 0) / invSum * correctionPercent; corr > 0 {
		a.Position = a.Position.Sub(n.Mul(corr * a.InvMass))
		b.Position = b.Position.Add(n.Mul(corr * b.InvMass))
	}

	rv := b.Velocity.Sub(a.Velocity)
	vn := rv.Dot(n)
	if vn >= 0 {
		return
	}

	e := a.Restitution * b.Restitution
	if -vn < bounceThreshold {
		e = 0
	}
	j := -(1 + e) * vn / invSum
	a.Velocity = a.Velocity.Sub(n.Mul(j * a.InvMass))
	b.Velocity = b.Velocity.Add(n.Mul(j * b.InvMass))

	rv = b.Velocity.Sub(a.Velocity)
	vt := rv.Sub(n.Mul(rv.Dot(n)))
	speed := vt.Len()
	if speed < common.Epsilon {
		return
	}
	t := vt.Mul(1 / speed)
	mu := a.Friction * b.Friction
	jt := mgl32.Clamp(speed/invSum, 0, mu*j)
	a.Velocity = a.Velocity.Add(t.Mul(jt * a.InvMass))
	b.Velocity = b.Velocity.Sub(t.Mul(jt * b.InvMass))
}

// contact returns the separating normal (from a to b) and penetration depth of two overlapping bodies.
func contact(a, b *BodyData) (mgl32.Vec3, float32, bool) {
	switch {
	case a.Shape.Kind == ShapeSphere && b.Shape.Kind == ShapeSphere:
		return sphereSphere(a.Position, a.Shape.Radius, b.Position, b.Shape.Radius)
	case a.Shape.Kind == ShapeSphere && b.Shape.Kind == ShapeBox:
		n, d, ok := sphereBox(a.Position, a.Prev, a.Shape.Radius, b)
		return n.Mul(-1), d, ok
	case a.Shape.Kind == ShapeBox && b.Shape.Kind == ShapeSphere:
		return sphereBox(b.Position, b.Prev, b.Shape.Radius, a)
	default:
		return boxBox(a, b)
	}
}

func sphereSphere(pa mgl32.Vec3, ra float32, pb mgl32.Vec3, rb float32) (mgl32.Vec3, float32, bool) {
	d := pb.Sub(pa)
	dist := d.Len()
	if dist >= ra+rb {
		return mgl32.Vec3{}, 0, false
	}
	n := mgl32.Vec3{0, 1, 0}
	if dist > common.Epsilon {
		n = d.Mul(1 / dist)
	}
	return n, ra + rb - dist, true
}

// sphereBox tests a sphere against an oriented box. The normal points from the box toward the sphere.
// prev is the sphere center at the start of the substep; a center that ended up inside the box
// leaves through the face it entered by.
func sphereBox(ps, prev mgl32.Vec3, r float32, box *BodyData) (mgl32.Vec3, float32, bool) {
	h := box.Shape.HalfExtents
	local := box.Rotation.Inverse().Rotate(ps.Sub(box.Position))
	closest := mgl32.Vec3{
		mgl32.Clamp(local[0], -h[0], h[0]),
		mgl32.Clamp(local[1], -h[1], h[1]),
		mgl32.Clamp(local[2], -h[2], h[2]),
	}
	diff := local.Sub(closest)
	dist := diff.Len()

	var nLocal mgl32.Vec3
	var depth float32
	if dist > common.Epsilon {
		if dist >= r {
			return mgl32.Vec3{}, 0, false
		}
		nLocal = diff.Mul(1 / dist)
		depth = r - dist
	} else {
		axis, sign := entryFace(local, box.Rotation.Inverse().Rotate(prev.Sub(box.Position)), h)
		nLocal[axis] = sign
		depth = r + h[axis] - local[axis]*sign
	}
	return box.Rotation.Rotate(nLocal), depth, true
}

// entryFace picks the face a point at local crossed coming from prevLocal, both in box space.
// With no crossing it falls back to the face nearest to local.
func entryFace(local, prevLocal, h mgl32.Vec3) (int, float32) {
	axis, best := -1, float32(0)
	for i := 0; i < 3; i++ {
		if out := mgl32.Abs(prevLocal[i]) - h[i]; out > best {
			axis, best = i, out
		}
	}
	if axis < 0 {
		axis = 0
		gap := h[0] - mgl32.Abs(local[0])
		for i := 1; i < 3; i++ {
			if g := h[i] - mgl32.Abs(local[i]); g < gap {
				axis, gap = i, g
			}
		}
		if local[axis] < 0 {
			return axis, -1
		}
		return axis, 1
	}
	if prevLocal[axis] < 0 {
		return axis, -1
	}
	return axis, 1
}

// boxBox tests two boxes using their world-space bounding boxes.
func boxBox(a, b *BodyData) (mgl32.Vec3, float32, bool) {
	minA, maxA := bounds(a)
	minB, maxB := bounds(b)
	axis, depth := -1, common.Inf()
	for i := 0; i < 3; i++ {
		o := min(maxA[i], maxB[i]) - max(minA[i], minB[i])
		if o <= 0 {
			return mgl32.Vec3{}, 0, false
		}
		if o < depth {
			axis, depth = i, o
		}
	}
	// Order along the axis is taken from the substep start so a box that passed a thin
	// slab's center is still pushed back the way it came.
	var n mgl32.Vec3
	n[axis] = 1
	depth = maxA[axis] - minB[axis]
	if d := b.Prev[axis] - a.Prev[axis]; d < 0 || (d == 0 && b.Position[axis] < a.Position[axis]) {
		n[axis] = -1
		depth = maxB[axis] - minA[axis]
	}
	return n, depth, true
}

// bounds returns the world-space axis-aligned bounding box of a body.
func bounds(b *BodyData) (mgl32.Vec3, mgl32.Vec3) {
	var ext mgl32.Vec3
	switch b.Shape.Kind {
	case ShapeSphere:
		ext = mgl32.Vec3{b.Shape.Radius, b.Shape.Radius, b.Shape.Radius}
	default:
		h := b.Shape.HalfExtents
		ax := common.Abs3(b.Rotation.Rotate(mgl32.Vec3{h[0], 0, 0}))
		ay := common.Abs3(b.Rotation.Rotate(mgl32.Vec3{0, h[1], 0}))
		az := common.Abs3(b.Rotation.Rotate(mgl32.Vec3{0, 0, h[2]}))
		ext = ax.Add(ay).Add(az)
	}
	return b.Position.Sub(ext), b.Position.Add(ext)
}
