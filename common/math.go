package common

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// Epsilon is the tolerance used when comparing lengths and distances against zero.
const Epsilon float32 = 1e-6

// SafeNormalize returns v scaled to unit length.
// Unlike mgl32.Vec3.Normalize, a zero-length input yields the zero vector instead of NaN components.
//
// Parameters:
//   - v: the vector to normalize
//
// Returns:
//   - mgl32.Vec3: the unit vector, or the zero vector if v has no length
func SafeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l < Epsilon {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}

// RandRange returns a uniformly distributed value in [lo, hi).
//
// Parameters:
//   - r: the random source to draw from
//   - lo: inclusive lower bound
//   - hi: exclusive upper bound
//
// Returns:
//   - float32: the sampled value
func RandRange(r *rand.Rand, lo, hi float32) float32 {
	return lo + r.Float32()*(hi-lo)
}

// Abs3 returns the component-wise absolute value of v.
func Abs3(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{mgl32.Abs(v[0]), mgl32.Abs(v[1]), mgl32.Abs(v[2])}
}

// Min3 returns the component-wise minimum of a and b.
func Min3(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{min(a[0], b[0]), min(a[1], b[1]), min(a[2], b[2])}
}

// Max3 returns the component-wise maximum of a and b.
func Max3(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{max(a[0], b[0]), max(a[1], b[1]), max(a[2], b[2])}
}

// Inf returns positive infinity as a float32, used to seed nearest-hit searches.
func Inf() float32 {
	return float32(math.Inf(1))
}
