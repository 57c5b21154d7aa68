// Package bootstrap brings up the playground scene: physics, ground, lighting, dynamic objects,
// the immersive session and the player controls, in that order.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Carmen-Shannon/oxy-fps/common"
	"github.com/Carmen-Shannon/oxy-fps/engine/camera"
	"github.com/Carmen-Shannon/oxy-fps/engine/environment"
	"github.com/Carmen-Shannon/oxy-fps/engine/event"
	"github.com/Carmen-Shannon/oxy-fps/engine/hud"
	"github.com/Carmen-Shannon/oxy-fps/engine/immersive"
	"github.com/Carmen-Shannon/oxy-fps/engine/input"
	"github.com/Carmen-Shannon/oxy-fps/engine/light"
	"github.com/Carmen-Shannon/oxy-fps/engine/material"
	"github.com/Carmen-Shannon/oxy-fps/engine/physics"
	"github.com/Carmen-Shannon/oxy-fps/engine/player"
	"github.com/Carmen-Shannon/oxy-fps/engine/scene"
	"github.com/Carmen-Shannon/oxy-fps/engine/spawner"
	"github.com/Carmen-Shannon/oxy-fps/engine/task"
)

// Status texts written to the status sink while the scene comes up.
const (
	StatusCreatingScene      = "Creating Scene..."
	StatusInitPhysics        = "Initializing Physics..."
	StatusPhysicsFailed      = "Physics Init Failed!"
	StatusLoadingEnvironment = "Loading Environment..."
	StatusEnvironmentDegrade = "Env Error. Using Fallback."
	StatusAddingObjects      = "Adding Objects..."
	StatusSceneFailed        = "Scene Init Failed!"
	statusFatalPrefix        = "FATAL ERROR: "
)

// ErrNoPhysicsBackend is returned when Run is called without a physics backend.
var ErrNoPhysicsBackend = errors.New("no physics backend configured")

// Result is everything Run brought up. The caller hands Scene to the render loop and
// advances Player each tick.
type Result struct {
	Scene     scene.Context
	Player    player.Controller
	Jump      player.JumpController
	Input     input.ModeController
	Overlay   hud.Overlay
	Ground    environment.GroundResult
	Objects   spawner.Batch
	Sun       light.Light
	Immersive immersive.Outcome
}

// bootstrap is the implementation of the Bootstrap interface.
type bootstrap struct {
	cfg Config

	physics    physics.Backend
	envBuilder environment.Builder
	runtime    func(bus *event.Bus) immersive.Runtime
	capture    input.PointerCapture
	status     hud.StatusSink
	overlay    hud.Overlay
	runner     task.Runner
	bus        *event.Bus
	scheduler  event.Scheduler
}

// Bootstrap sequences scene construction.
type Bootstrap interface {
	// Run builds the scene. Each stage is reported to the status sink before it starts.
	//
	// Only a *common.FatalInitError is ever returned: an unavailable physics backend, a cancelled
	// ctx, or a scene that cannot accept a ground. Environment and immersive failures degrade
	// in place and are visible on the Result. On error nothing is left registered and the
	// scene is disposed, so the render loop must not be started.
	//
	// Parameters:
	//   - ctx: bounds every suspension point (physics load, environment load, session negotiation)
	//
	// Returns:
	//   - *Result: the live scene and its controllers
	//   - error: a *common.FatalInitError
	Run(ctx context.Context) (*Result, error)
}

var _ Bootstrap = &bootstrap{}

// NewBootstrap creates a Bootstrap. Without options it uses the in-process physics backend,
// the environment helper, no immersive runtime, no pointer capture and log-only status.
//
// Parameters:
//   - options: functional options to configure the bootstrap
//
// Returns:
//   - Bootstrap: the new bootstrap
func NewBootstrap(options ...BootstrapBuilderOption) Bootstrap {
	b := &bootstrap{
		cfg:        DefaultConfig(),
		physics:    physics.NewBackend(),
		envBuilder: environment.NewHelper(),
		status:     hud.LogStatus(),
	}
	for _, opt := range options {
		opt(b)
	}
	b.cfg = b.cfg.Normalize()
	return b
}

func (b *bootstrap) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	log.Println("[Bootstrap] creating scene")
	b.status.SetStatus(StatusCreatingScene)

	var sceneOpts []scene.ContextBuilderOption
	if b.bus != nil {
		sceneOpts = append(sceneOpts, scene.WithBus(b.bus))
	}
	if b.scheduler != nil {
		sceneOpts = append(sceneOpts, scene.WithScheduler(b.scheduler))
	}
	cc := b.cfg.ClearColor
	sceneOpts = append(sceneOpts, scene.WithClearColor(cc[0], cc[1], cc[2], cc[3]))
	sc := scene.NewContext(sceneOpts...)

	// Physics is the only stage whose failure stops the bring-up.
	b.status.SetStatus(StatusInitPhysics)
	if b.physics == nil {
		return nil, b.physicsFailed(sc, ErrNoPhysicsBackend)
	}
	w, err := b.physics.Initialize(ctx, b.cfg.Gravity)
	if err != nil {
		if ctx.Err() != nil {
			return nil, b.abort(sc, "physics", ctx.Err())
		}
		return nil, b.physicsFailed(sc, err)
	}
	sc.SetPhysics(w)

	res := &Result{Scene: sc}
	var mc input.ModeController

	res.Player = player.NewController(sc,
		player.WithCameraOptions(
			camera.WithPosition(b.cfg.CameraPosition.X(), b.cfg.CameraPosition.Y(), b.cfg.CameraPosition.Z()),
			camera.WithSpeed(b.cfg.CameraSpeed),
			camera.WithAngularSensibility(b.cfg.AngularSensibility),
			camera.WithInertia(b.cfg.Inertia),
		),
		player.WithLookGate(func() bool {
			return mc != nil && mc.Mode() == input.ModePointerLocked
		}),
	)

	b.status.SetStatus(StatusLoadingEnvironment)
	gp := environment.NewGroundProvider(sc,
		environment.WithBuilder(b.envBuilder),
		environment.WithRunner(b.runner),
		environment.WithOptions(b.cfg.Environment),
		environment.WithFallbackSize(b.cfg.FallbackGroundSize),
	)
	res.Ground, err = gp.BuildGround(ctx)
	if err != nil {
		return nil, b.abort(sc, "environment", err)
	}
	if res.Ground.Fallback {
		b.status.SetStatus(StatusEnvironmentDegrade)
	}

	res.Sun = b.addSun(sc)
	// Receivers are marked again once a shadow-casting light exists.
	res.Ground.Ground.SetReceiveShadows(true)

	if err := ctx.Err(); err != nil {
		return nil, b.abort(sc, "spawner", err)
	}
	b.status.SetStatus(StatusAddingObjects)
	sp := spawner.NewSpawner(sc, b.spawnerOptions()...)
	res.Objects, err = sp.Spawn(b.cfg.ObjectCount, b.cfg.Bounds)
	if err != nil {
		return nil, b.abort(sc, "spawner", err)
	}

	b.status.SetStatus(immersive.StatusInitializing)
	var rt immersive.Runtime
	if b.runtime != nil {
		rt = b.runtime(sc.Bus())
	}
	res.Immersive, err = immersive.Negotiate(ctx, rt, immersive.Options{
		FloorMeshes:          []scene.Mesh{res.Ground.Ground},
		DisableTeleportation: true,
	}, b.runner)
	if err != nil {
		return nil, b.abort(sc, "immersive", err)
	}
	b.status.SetStatus(res.Immersive.Status)
	if res.Immersive.Err != nil {
		log.Printf("[Bootstrap] immersive session unavailable: %v", res.Immersive.Err)
	}

	// Controls are wired last so no input reaches a half-built scene.
	res.Player.Attach()
	res.Jump = player.NewJumpController(sc, res.Player,
		player.WithImpulse(b.cfg.JumpImpulse),
		player.WithCooldown(b.cfg.JumpCooldown),
	)
	res.Jump.Attach()

	overlay := b.overlay
	if overlay == nil {
		overlay = hud.NewOverlay()
	}
	mc = input.NewModeController(sc, b.capture, overlay)
	mc.Attach()
	if s := res.Immersive.Session; s != nil {
		mc.WatchSession(s.States())
		sc.OnDispose(s.End)
	}
	res.Input = mc
	res.Overlay = overlay

	log.Printf("[Bootstrap] scene creation complete in %v (%d meshes, %d bodies)",
		time.Since(start).Round(time.Millisecond), len(sc.Meshes()), w.BodyCount())
	return res, nil
}

// addSun registers the shadow-casting directional light. A shadow generator that cannot be
// built only costs the shadows.
func (b *bootstrap) addSun(sc scene.Context) light.Light {
	d, p := b.cfg.SunDirection, b.cfg.SunPosition
	sun := light.NewLight(light.LightTypeDirectional,
		light.WithName("dirLight"),
		light.WithDirection(d.X(), d.Y(), d.Z()),
		light.WithPosition(p.X(), p.Y(), p.Z()),
		light.WithIntensity(b.cfg.SunIntensity),
		light.WithShadowRange(b.cfg.ShadowNear, b.cfg.ShadowFar),
	)
	sc.AddLight(sun)

	sg, err := light.NewShadowGenerator(sun,
		light.WithMapSize(b.cfg.ShadowMapSize),
		light.WithBias(b.cfg.ShadowBias),
		light.WithDarkness(b.cfg.ShadowDarkness),
		light.WithBlurExponential(b.cfg.ShadowBlurKernel),
	)
	if err != nil {
		log.Printf("[Bootstrap] %v", &common.RecoverableFeatureError{Component: "shadows", Err: err})
		return sun
	}
	sc.SetShadows(sg)
	return sun
}

func (b *bootstrap) spawnerOptions() []spawner.SpawnerBuilderOption {
	sphere := material.NewMaterial(
		material.WithName("sphereMat"),
		material.WithDiffuseColor(b.cfg.SphereColor[0], b.cfg.SphereColor[1], b.cfg.SphereColor[2]),
		material.WithSpecularPower(32),
	)
	box := material.NewMaterial(
		material.WithName("boxMat"),
		material.WithDiffuseColor(b.cfg.BoxColor[0], b.cfg.BoxColor[1], b.cfg.BoxColor[2]),
		material.WithSpecularPower(32),
	)
	opts := []spawner.SpawnerBuilderOption{
		spawner.WithSphereMaterial(sphere),
		spawner.WithBoxMaterial(box),
	}
	if b.cfg.Seed != 0 {
		opts = append(opts, spawner.WithSeed(b.cfg.Seed))
	}
	return opts
}

func (b *bootstrap) physicsFailed(sc scene.Context, err error) error {
	log.Printf("[Bootstrap] failed to initialize physics: %v", err)
	b.status.SetStatus(StatusPhysicsFailed)
	b.status.SetStatus(StatusSceneFailed)
	sc.Dispose()
	return common.NewFatalInitError("physics", err)
}

func (b *bootstrap) abort(sc scene.Context, component string, err error) error {
	fatal := common.NewFatalInitError(component, err)
	log.Printf("[Bootstrap] %v", fatal)
	b.status.SetStatus(fmt.Sprintf("%s%v", statusFatalPrefix, err))
	sc.Dispose()
	return fatal
}
