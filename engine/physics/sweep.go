package physics

import "github.com/go-gl/mathgl/mgl32"

// contactSkin is the gap kept between a moving character and the surface it stops against.
const contactSkin float32 = 0.001

// sweepOrder resolves vertical motion first so grounding is decided before sliding along walls.
var sweepOrder = [3]int{1, 0, 2}

func (w *world) MoveAndCollide(volume Ellipsoid, position, displacement mgl32.Vec3) MoveResult {
	if w.disposed {
		return MoveResult{Position: position.Add(displacement)}
	}

	r := volume.Radii
	center := volume.Center(position)
	res := MoveResult{}

	type box struct{ lo, hi mgl32.Vec3 }
	boxes := make([]box, 0, len(w.order))
	for _, entry := range w.entries() {
		lo, hi := bounds(Body.Get(entry))
		boxes = append(boxes, box{lo, hi})
	}

	for _, axis := range sweepOrder {
		delta := displacement[axis]
		if delta == 0 {
			continue
		}
		pLo, pHi := center.Sub(r), center.Add(r)
		for _, b := range boxes {
			if !overlapsOthers(pLo, pHi, b.lo, b.hi, axis) {
				continue
			}
			// Already interpenetrating along this axis: let the character move out freely.
			if pLo[axis] < b.hi[axis] && pHi[axis] > b.lo[axis] {
				continue
			}
			if delta > 0 && pHi[axis] <= b.lo[axis] {
				if allowed := b.lo[axis] - pHi[axis] - contactSkin; allowed < delta {
					delta = max(allowed, 0)
					res.Blocked = true
				}
			} else if delta < 0 && pLo[axis] >= b.hi[axis] {
				if allowed := b.hi[axis] - pLo[axis] + contactSkin; allowed > delta {
					delta = min(allowed, 0)
					res.Blocked = true
					if axis == 1 {
						res.Grounded = true
					}
				}
			}
		}
		center[axis] += delta
	}

	res.Position = center.Add(mgl32.Vec3{0, r.Y(), 0}).Sub(volume.Offset)
	return res
}

// overlapsOthers reports whether two boxes overlap on the two axes other than axis.
func overlapsOthers(aLo, aHi, bLo, bHi mgl32.Vec3, axis int) bool {
	for i := 0; i < 3; i++ {
		if i == axis {
			continue
		}
		if aLo[i] >= bHi[i] || aHi[i] <= bLo[i] {
			return false
		}
	}
	return true
}
