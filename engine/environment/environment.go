// Package environment builds the walkable ground of a scene. A preferred Builder supplies a
// skybox and ground; when it fails the GroundProvider falls back to a flat primitive so the
// scene always ends up with exactly one ground.
package environment

import (
	"context"
	"errors"

	"github.com/Carmen-Shannon/oxy-fps/common"
	"github.com/Carmen-Shannon/oxy-fps/engine/scene"
)

var (
	// ErrNoEnvironment is returned when no builder is configured or the builder produced nothing.
	ErrNoEnvironment = errors.New("environment builder returned no environment")
	// ErrGroundMissing is returned when the environment has no usable ground surface.
	ErrGroundMissing = errors.New("environment created but ground is missing")
	// ErrNoPhysics is returned when the scene has no physics world to register the ground with.
	ErrNoPhysics = errors.New("scene has no physics world")
)

// Options are the cosmetic settings handed to a Builder.
type Options struct {
	CreateSkybox  bool
	SkyboxTexture string
	SkyboxColor   [3]float32
	SkyboxSize    float32

	CreateGround       bool
	GroundSize         float32
	GroundColor        [3]float32
	EnableGroundShadow bool
	// GroundYBias lifts the ground slightly to keep it from z-fighting with the skybox floor.
	GroundYBias float32

	MainColor [3]float32
}

// DefaultOptions returns the stock environment settings.
func DefaultOptions() Options {
	return Options{
		CreateSkybox:       true,
		SkyboxColor:        [3]float32{0.1, 0.1, 0.2},
		SkyboxSize:         200,
		CreateGround:       true,
		GroundSize:         100,
		GroundColor:        [3]float32{0.5, 0.55, 0.5},
		EnableGroundShadow: true,
		GroundYBias:        0.01,
		MainColor:          [3]float32{0.85, 0.85, 0.85},
	}
}

// Skybox is the backdrop produced by a Builder.
type Skybox struct {
	Size    float32
	Color   [3]float32
	Texture *common.Texture
}

// Environment is what a Builder produces. Either field may be nil.
type Environment struct {
	Ground scene.Mesh
	Skybox *Skybox
}

// Builder creates a default environment. Build may block while assets load.
type Builder interface {
	// Build creates the environment described by opts.
	//
	// Parameters:
	//   - ctx: bounds asset loading
	//   - opts: cosmetic settings
	//
	// Returns:
	//   - *Environment: the environment, possibly nil
	//   - error: error if the environment could not be created
	Build(ctx context.Context, opts Options) (*Environment, error)
}

// BuilderFunc adapts a function to the Builder interface.
type BuilderFunc func(ctx context.Context, opts Options) (*Environment, error)

// Build calls f(ctx, opts).
func (f BuilderFunc) Build(ctx context.Context, opts Options) (*Environment, error) {
	return f(ctx, opts)
}
