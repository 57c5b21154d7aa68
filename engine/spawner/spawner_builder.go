package spawner

import (
	"math/rand"

	"github.com/Carmen-Shannon/oxy-fps/engine/material"
)

// SpawnerBuilderOption is a functional option for configuring a Spawner during construction.
type SpawnerBuilderOption func(*spawner)

// WithSeed seeds the spawner's random source so batches are reproducible.
//
// Parameters:
//   - seed: the seed
//
// Returns:
//   - SpawnerBuilderOption: functional option to set the seed
func WithSeed(seed int64) SpawnerBuilderOption {
	return func(s *spawner) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithSphereMaterial sets the material shared by spawned spheres.
//
// Parameters:
//   - m: the material
//
// Returns:
//   - SpawnerBuilderOption: functional option to set the sphere material
func WithSphereMaterial(m material.Material) SpawnerBuilderOption {
	return func(s *spawner) {
		s.sphereMat = m
	}
}

// WithBoxMaterial sets the material shared by spawned boxes.
//
// Parameters:
//   - m: the material
//
// Returns:
//   - SpawnerBuilderOption: functional option to set the box material
func WithBoxMaterial(m material.Material) SpawnerBuilderOption {
	return func(s *spawner) {
		s.boxMat = m
	}
}

// WithSizeRange sets the object size distribution to [min, min+span).
//
// Parameters:
//   - min: the smallest size
//   - span: the width of the size range
//
// Returns:
//   - SpawnerBuilderOption: functional option to set the size range
func WithSizeRange(min, span float32) SpawnerBuilderOption {
	return func(s *spawner) {
		if min > 0 && span >= 0 {
			s.minSize = min
			s.sizeSpan = span
		}
	}
}

// WithBodyProps sets the mass-per-size factor and the surface properties shared by every object.
//
// Parameters:
//   - massPerSize: mass = size * massPerSize, must be positive
//   - restitution: bounciness in [0, 1]
//   - friction: friction in [0, 1]
//
// Returns:
//   - SpawnerBuilderOption: functional option to set the body properties
func WithBodyProps(massPerSize, restitution, friction float32) SpawnerBuilderOption {
	return func(s *spawner) {
		if massPerSize > 0 {
			s.massPerSize = massPerSize
		}
		s.restitution = restitution
		s.friction = friction
	}
}
