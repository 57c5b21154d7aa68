package physics

import (
	"math"

	"github.com/Carmen-Shannon/oxy-fps/common"
	"github.com/go-gl/mathgl/mgl32"
)

func (w *world) Raycast(r Ray, accept func(BodyState) bool) (Hit, bool) {
	dir := common.SafeNormalize(r.Direction)
	if w.disposed || dir == (mgl32.Vec3{}) || r.Length < 0 {
		return Hit{}, false
	}

	var best Hit
	found := false
	for _, entry := range w.entries() {
		b := Body.Get(entry)
		var (
			t  float32
			n  mgl32.Vec3
			ok bool
		)
		switch b.Shape.Kind {
		case ShapeSphere:
			t, n, ok = raySphere(r.Origin, dir, b.Position, b.Shape.Radius)
		default:
			t, n, ok = rayBox(r.Origin, dir, b)
		}
		if !ok || t > r.Length || (found && t >= best.Distance) {
			continue
		}
		state := snapshot(entry)
		if accept != nil && !accept(state) {
			continue
		}
		best = Hit{
			Body:     state,
			Distance: t,
			Point:    r.Origin.Add(dir.Mul(t)),
			Normal:   n,
		}
		found = true
	}
	return best, found
}

// raySphere intersects a unit-direction ray with a sphere. An origin inside the sphere hits at distance 0.
func raySphere(o, d, c mgl32.Vec3, radius float32) (float32, mgl32.Vec3, bool) {
	oc := o.Sub(c)
	cc := oc.Dot(oc) - radius*radius
	if cc <= 0 {
		return 0, d.Mul(-1), true
	}
	b := oc.Dot(d)
	disc := b*b - cc
	if disc < 0 {
		return 0, mgl32.Vec3{}, false
	}
	t := -b - float32(math.Sqrt(float64(disc)))
	if t < 0 {
		return 0, mgl32.Vec3{}, false
	}
	p := o.Add(d.Mul(t))
	return t, common.SafeNormalize(p.Sub(c)), true
}

// rayBox intersects a unit-direction ray with an oriented box using the slab method in box space.
func rayBox(o, d mgl32.Vec3, box *BodyData) (float32, mgl32.Vec3, bool) {
	inv := box.Rotation.Inverse()
	lo := inv.Rotate(o.Sub(box.Position))
	ld := inv.Rotate(d)
	h := box.Shape.HalfExtents

	tmin, tmax := -common.Inf(), common.Inf()
	enterAxis := -1
	for i := 0; i < 3; i++ {
		if mgl32.Abs(ld[i]) < common.Epsilon {
			if lo[i] < -h[i] || lo[i] > h[i] {
				return 0, mgl32.Vec3{}, false
			}
			continue
		}
		t1 := (-h[i] - lo[i]) / ld[i]
		t2 := (h[i] - lo[i]) / ld[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin, enterAxis = t1, i
		}
		tmax = min(tmax, t2)
		if tmin > tmax {
			return 0, mgl32.Vec3{}, false
		}
	}
	if tmax < 0 {
		return 0, mgl32.Vec3{}, false
	}
	if tmin < 0 || enterAxis < 0 {
		return 0, d.Mul(-1), true
	}
	var nLocal mgl32.Vec3
	nLocal[enterAxis] = 1
	if ld[enterAxis] > 0 {
		nLocal[enterAxis] = -1
	}
	return tmin, box.Rotation.Rotate(nLocal), true
}
