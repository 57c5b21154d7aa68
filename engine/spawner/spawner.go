// Package spawner populates a scene with randomly placed dynamic spheres and boxes.
package spawner

import (
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/Carmen-Shannon/oxy-fps/common"
	"github.com/Carmen-Shannon/oxy-fps/engine/material"
	"github.com/Carmen-Shannon/oxy-fps/engine/physics"
	"github.com/Carmen-Shannon/oxy-fps/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrInvalidBounds is returned when spawn bounds describe an empty region.
	ErrInvalidBounds = errors.New("invalid spawn bounds")
	// ErrNoPhysics is returned when the scene has no physics world.
	ErrNoPhysics = errors.New("scene has no physics world")
)

// Bounds is the region objects are dropped from: a horizontal square of HalfWidth around
// Center, at a height between MinHeight and MaxHeight above Center.Y.
type Bounds struct {
	Center    mgl32.Vec3
	HalfWidth float32
	MinHeight float32
	MaxHeight float32
}

// DefaultBounds returns a 70 by 70 square dropping objects from 8 to 20 units above the origin.
func DefaultBounds() Bounds {
	return Bounds{HalfWidth: 35, MinHeight: 8, MaxHeight: 20}
}

func (b Bounds) validate() error {
	switch {
	case b.HalfWidth < 0 || math.IsNaN(float64(b.HalfWidth)):
		return fmt.Errorf("%w: half width %v", ErrInvalidBounds, b.HalfWidth)
	case b.MinHeight <= 0:
		return fmt.Errorf("%w: min height %v must be above the ground", ErrInvalidBounds, b.MinHeight)
	case b.MaxHeight < b.MinHeight:
		return fmt.Errorf("%w: max height %v below min height %v", ErrInvalidBounds, b.MaxHeight, b.MinHeight)
	}
	return nil
}

// Batch is the set of objects produced by one Spawn call.
type Batch struct {
	Meshes []scene.Mesh
}

// spawner is the implementation of the Spawner interface.
type spawner struct {
	sc          scene.Context
	rng         *rand.Rand
	sphereMat   material.Material
	boxMat      material.Material
	minSize     float32
	sizeSpan    float32
	massPerSize float32
	restitution float32
	friction    float32
}

// Spawner drops dynamic physics objects into a scene.
type Spawner interface {
	// Spawn creates count objects, each a sphere or a box chosen by coin flip, sized and placed
	// at random inside bounds. Objects are registered as shadow casters when the scene has
	// a shadow generator. Overlapping spawns are left for the physics world to resolve.
	//
	// Parameters:
	//   - count: the number of objects to create
	//   - bounds: the spawn region
	//
	// Returns:
	//   - Batch: the created objects
	//   - error: error if the arguments are invalid or a body could not be created
	Spawn(count int, bounds Bounds) (Batch, error)
}

var _ Spawner = &spawner{}

// NewSpawner creates a Spawner for sc.
//
// Parameters:
//   - sc: the scene to populate
//   - options: functional options to configure the spawner
//
// Returns:
//   - Spawner: the new spawner
func NewSpawner(sc scene.Context, options ...SpawnerBuilderOption) Spawner {
	s := &spawner{
		sc:          sc,
		minSize:     0.8,
		sizeSpan:    1.8,
		massPerSize: 1.2,
		restitution: 0.4,
		friction:    0.6,
	}
	for _, opt := range options {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.sphereMat == nil {
		s.sphereMat = material.NewMaterial(
			material.WithName("sphereMat"),
			material.WithDiffuseColor(0.9, 0.4, 0.4),
			material.WithSpecularPower(32),
		)
	}
	if s.boxMat == nil {
		s.boxMat = material.NewMaterial(
			material.WithName("boxMat"),
			material.WithDiffuseColor(0.4, 0.4, 0.9),
			material.WithSpecularPower(32),
		)
	}
	return s
}

func (s *spawner) Spawn(count int, bounds Bounds) (Batch, error) {
	if count < 0 {
		return Batch{}, fmt.Errorf("spawn count %d is negative", count)
	}
	if err := bounds.validate(); err != nil {
		return Batch{}, err
	}
	w := s.sc.Physics()
	if w == nil {
		return Batch{}, ErrNoPhysics
	}

	batch := Batch{Meshes: make([]scene.Mesh, 0, count)}
	shadows := s.sc.Shadows()
	hw := bounds.HalfWidth

	for i := range count {
		isSphere := s.rng.Float32() < 0.5
		size := s.minSize + s.rng.Float32()*s.sizeSpan
		pos := bounds.Center.Add(mgl32.Vec3{
			common.RandRange(s.rng, -hw, hw),
			common.RandRange(s.rng, bounds.MinHeight, bounds.MaxHeight),
			common.RandRange(s.rng, -hw, hw),
		})

		var (
			m     scene.Mesh
			shape physics.Shape
			rot   = mgl32.QuatIdent()
		)
		if isSphere {
			shape = physics.Sphere(size)
			m = scene.NewMesh(scene.MeshSphere,
				scene.WithName(fmt.Sprintf("sphere%d", i)),
				scene.WithSize(size, size, size),
				scene.WithMaterial(s.sphereMat),
			)
		} else {
			shape = physics.Box(size, size, size)
			rot = mgl32.AnglesToQuat(s.rng.Float32()*math.Pi, s.rng.Float32()*math.Pi, 0, mgl32.XYZ)
			m = scene.NewMesh(scene.MeshBox,
				scene.WithName(fmt.Sprintf("box%d", i)),
				scene.WithSize(size, size, size),
				scene.WithMaterial(s.boxMat),
			)
		}
		m.SetTransform(pos, rot)
		m.SetCheckCollisions(true)

		h, err := w.CreateBody(shape, physics.Transform{Position: pos, Rotation: rot}, physics.BodyProps{
			Name:        m.Name(),
			Mass:        size * s.massPerSize,
			Restitution: s.restitution,
			Friction:    s.friction,
			Pickable:    m.Pickable(),
		})
		if err != nil {
			return batch, fmt.Errorf("spawn %s: %w", m.Name(), err)
		}
		m.SetBody(h)
		s.sc.AddMesh(m)
		if shadows != nil {
			shadows.AddCaster(m)
		}
		batch.Meshes = append(batch.Meshes, m)
	}

	log.Printf("[Spawner] %d dynamic objects added", len(batch.Meshes))
	return batch, nil
}
