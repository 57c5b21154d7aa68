package environment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/Carmen-Shannon/oxy-fps/common"
	"github.com/Carmen-Shannon/oxy-fps/engine/light"
	"github.com/Carmen-Shannon/oxy-fps/engine/material"
	"github.com/Carmen-Shannon/oxy-fps/engine/physics"
	"github.com/Carmen-Shannon/oxy-fps/engine/scene"
	"github.com/Carmen-Shannon/oxy-fps/engine/task"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// EnvironmentGroundName is the name given to a ground supplied by the Builder.
	EnvironmentGroundName = "environmentGround"
	// FallbackGroundName is the name of the flat ground built when the Builder fails.
	FallbackGroundName = "errorFallbackGround"

	// groundThickness is the depth of the static box backing a ground plane. Its top face
	// is the walkable surface.
	groundThickness float32 = 1
	// defaultFallbackSize is the width and depth of the fallback ground.
	defaultFallbackSize float32 = 100
)

// GroundResult is the outcome of GroundProvider.BuildGround.
type GroundResult struct {
	// Ground is the registered ground. It is never nil when BuildGround returns a nil error.
	Ground scene.Mesh
	// Skybox is the backdrop from the preferred path, nil on fallback.
	Skybox *Skybox
	// Fallback is true when the flat fallback ground was built.
	Fallback bool
	// Degraded holds the *common.RecoverableAssetError that forced the fallback.
	Degraded error
}

// groundProvider is the implementation of the GroundProvider interface.
type groundProvider struct {
	sc           scene.Context
	builder      Builder
	runner       task.Runner
	opts         Options
	fallbackSize float32
}

// GroundProvider registers exactly one walkable ground with a scene.
type GroundProvider interface {
	// BuildGround builds the ground from the preferred Builder, falling back to a flat
	// primitive when the Builder fails, returns nothing, or returns an unusable surface.
	// Builder failures never escape; they are reported through GroundResult.Degraded.
	//
	// Parameters:
	//   - ctx: bounds environment asset loading
	//
	// Returns:
	//   - GroundResult: the registered ground
	//   - error: ctx.Err() if cancelled, or an error if the scene cannot accept a ground at all
	BuildGround(ctx context.Context) (GroundResult, error)
}

var _ GroundProvider = &groundProvider{}

// NewGroundProvider creates a GroundProvider for sc.
//
// Parameters:
//   - sc: the scene receiving the ground
//   - options: functional options to configure the provider
//
// Returns:
//   - GroundProvider: the new provider
func NewGroundProvider(sc scene.Context, options ...GroundProviderBuilderOption) GroundProvider {
	gp := &groundProvider{
		sc:           sc,
		opts:         DefaultOptions(),
		fallbackSize: defaultFallbackSize,
	}
	for _, opt := range options {
		opt(gp)
	}
	return gp
}

func (gp *groundProvider) BuildGround(ctx context.Context) (GroundResult, error) {
	w := gp.sc.Physics()
	if w == nil {
		return GroundResult{}, ErrNoPhysics
	}
	if gp.sc.Ground() != nil {
		return GroundResult{}, scene.ErrGroundAlreadySet
	}

	res, err := gp.preferred(ctx, w)
	if err == nil {
		return res, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return GroundResult{}, ctxErr
	}

	degraded := &common.RecoverableAssetError{Component: "environment", Err: err}
	log.Printf("[Environment] error creating default environment: %v", degraded)

	ground, err := gp.fallback(w)
	if err != nil {
		return GroundResult{}, err
	}
	return GroundResult{Ground: ground, Fallback: true, Degraded: degraded}, nil
}

// preferred runs the Builder and registers its ground. Nothing is added to the scene on error.
func (gp *groundProvider) preferred(ctx context.Context, w physics.World) (GroundResult, error) {
	if gp.builder == nil {
		return GroundResult{}, ErrNoEnvironment
	}

	build := func() (env *Environment, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("environment builder panicked: %v", r)
			}
		}()
		return gp.builder.Build(ctx, gp.opts)
	}

	var (
		env *Environment
		err error
	)
	if gp.runner != nil {
		env, err = task.Await(ctx, gp.runner, build)
	} else {
		env, err = build()
	}
	if err != nil {
		return GroundResult{}, err
	}
	if env == nil {
		return GroundResult{}, ErrNoEnvironment
	}

	ground := env.Ground
	if ground == nil || !ground.IsGround() {
		return GroundResult{}, ErrGroundMissing
	}
	if !ground.HasGeometry() {
		return GroundResult{}, fmt.Errorf("%w: ground has no geometry", ErrGroundMissing)
	}

	ground.SetName(EnvironmentGroundName)
	ground.SetCheckCollisions(true)
	ground.SetReceiveShadows(true)
	if mat := ground.Material(); mat == nil {
		log.Println("[Environment] environment ground created without a material, assigning fallback")
		ground.SetMaterial(material.NewMaterial(
			material.WithName("envGroundMat"),
			material.WithDiffuseColor(0.5, 0.55, 0.5),
			material.WithSpecularColor(0.1, 0.1, 0.1),
		))
	} else {
		mat.SetAlpha(1)
		log.Printf("[Environment] environment ground material found: %s", mat.Name())
	}

	if err := gp.register(w, ground, physics.BodyProps{
		Name: EnvironmentGroundName, Mass: 0, Restitution: 0.1, Friction: 0.8, Pickable: true,
	}); err != nil {
		return GroundResult{}, err
	}

	if env.Skybox != nil {
		c := env.Skybox.Color
		gp.sc.SetClearColor([4]float64{float64(c[0]), float64(c[1]), float64(c[2]), 1})
	}
	log.Println("[Environment] environment ground created and configured for physics")
	return GroundResult{Ground: ground, Skybox: env.Skybox}, nil
}

// fallback builds a flat ground with a default material and light.
func (gp *groundProvider) fallback(w physics.World) (scene.Mesh, error) {
	gp.sc.AddLight(light.NewLight(light.LightTypeHemispheric, light.WithName("default light")))

	size := gp.fallbackSize
	if !validExtent(size) {
		size = defaultFallbackSize
	}
	ground := scene.NewMesh(scene.MeshGround,
		scene.WithName(FallbackGroundName),
		scene.WithGround(),
		scene.WithSize(size, 0, size),
		scene.WithMaterial(material.NewMaterial(
			material.WithName("fallbackGroundMat"),
			material.WithDiffuseColor(0.6, 0.6, 0.6),
		)),
		scene.WithCheckCollisions(true),
		scene.WithReceiveShadows(true),
	)
	if err := gp.register(w, ground, physics.BodyProps{
		Name: FallbackGroundName, Mass: 0, Restitution: 0.1, Friction: 0.2, Pickable: true,
	}); err != nil {
		return nil, fmt.Errorf("fallback ground: %w", err)
	}
	log.Println("[Environment] created fallback ground due to environment error")
	return ground, nil
}

// register backs ground with a static box whose top face sits at the ground's height,
// then makes it the scene's ground.
func (gp *groundProvider) register(w physics.World, ground scene.Mesh, props physics.BodyProps) error {
	size := ground.Size()
	pos := ground.Position().Sub(mgl32.Vec3{0, groundThickness / 2, 0})
	h, err := w.CreateBody(
		physics.Box(size.X(), groundThickness, size.Z()),
		physics.Transform{Position: pos, Rotation: ground.Rotation()},
		props,
	)
	if err != nil {
		return err
	}
	ground.SetBody(h)
	if err := gp.sc.SetGround(ground); err != nil {
		w.RemoveBody(h)
		ground.SetBody(physics.BodyHandle{})
		if errors.Is(err, scene.ErrGroundAlreadySet) {
			return err
		}
		return fmt.Errorf("register ground: %w", err)
	}
	return nil
}

func validExtent(v float32) bool {
	return v > 0 && !math.IsInf(float64(v), 0)
}
