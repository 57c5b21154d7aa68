package scene

import (
	"errors"
	"log"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-fps/engine/camera"
	"github.com/Carmen-Shannon/oxy-fps/engine/event"
	"github.com/Carmen-Shannon/oxy-fps/engine/light"
	"github.com/Carmen-Shannon/oxy-fps/engine/physics"
)

var (
	// ErrGroundAlreadySet is returned when a second ground is registered on a context.
	ErrGroundAlreadySet = errors.New("scene already has a ground")
	// ErrContextDisposed is returned when a disposed context is mutated.
	ErrContextDisposed = errors.New("scene context disposed")
)

// sceneContext is the implementation of the Context interface.
type sceneContext struct {
	mu         sync.Mutex
	alive      atomic.Bool
	bus        *event.Bus
	scheduler  event.Scheduler
	world      physics.World
	cam        camera.Camera
	ground     Mesh
	meshes     []Mesh
	lights     []light.Light
	shadows    light.ShadowGenerator
	clearColor [4]float64
	disposers  []func()
}

// Context owns every live handle of one scene: the event streams, the timer scheduler,
// the physics world, the camera, meshes and lights. It is passed explicitly to every
// component that needs scene state and is the single point of teardown.
type Context interface {
	// Alive reports whether the scene has not been disposed.
	//
	// Returns:
	//   - bool: true until Dispose is called
	Alive() bool

	// Bus returns the scene's typed event streams.
	//
	// Returns:
	//   - *event.Bus: the event bus
	Bus() *event.Bus

	// Scheduler returns the scene's timer scheduler.
	//
	// Returns:
	//   - event.Scheduler: the scheduler
	Scheduler() event.Scheduler

	// Physics returns the scene's physics world, or nil before physics is initialized.
	//
	// Returns:
	//   - physics.World: the world or nil
	Physics() physics.World

	// SetPhysics attaches an initialized physics world. The world is disposed with the scene.
	//
	// Parameters:
	//   - w: the physics world
	SetPhysics(w physics.World)

	// Camera returns the active camera, or nil if none is set.
	//
	// Returns:
	//   - camera.Camera: the camera or nil
	Camera() camera.Camera

	// SetCamera sets the active camera.
	//
	// Parameters:
	//   - c: the camera
	SetCamera(c camera.Camera)

	// Ground returns the scene's ground mesh, or nil if none is registered.
	//
	// Returns:
	//   - Mesh: the ground or nil
	Ground() Mesh

	// SetGround registers the ground mesh and adds it to the mesh list.
	// A scene holds at most one ground.
	//
	// Parameters:
	//   - m: the ground mesh
	//
	// Returns:
	//   - error: ErrGroundAlreadySet if a ground exists, ErrContextDisposed after Dispose
	SetGround(m Mesh) error

	// AddMesh adds a mesh to the scene.
	//
	// Parameters:
	//   - m: the mesh
	AddMesh(m Mesh)

	// Meshes returns every mesh in insertion order.
	//
	// Returns:
	//   - []Mesh: a copy of the mesh list
	Meshes() []Mesh

	// MeshByName returns the first mesh with the given name.
	//
	// Parameters:
	//   - name: the mesh name
	//
	// Returns:
	//   - Mesh: the mesh
	//   - bool: false if no mesh has that name
	MeshByName(name string) (Mesh, bool)

	// MeshForBody returns the mesh bound to a physics body.
	//
	// Parameters:
	//   - h: the body handle
	//
	// Returns:
	//   - Mesh: the mesh
	//   - bool: false if no mesh is bound to h
	MeshForBody(h physics.BodyHandle) (Mesh, bool)

	// AddLight adds a light to the scene.
	//
	// Parameters:
	//   - l: the light
	AddLight(l light.Light)

	// Lights returns every light in insertion order.
	//
	// Returns:
	//   - []light.Light: a copy of the light list
	Lights() []light.Light

	// Shadows returns the scene's shadow generator, or nil.
	//
	// Returns:
	//   - light.ShadowGenerator: the generator or nil
	Shadows() light.ShadowGenerator

	// SetShadows sets the scene's shadow generator.
	//
	// Parameters:
	//   - sg: the shadow generator
	SetShadows(sg light.ShadowGenerator)

	// ClearColor returns the RGBA color the frame is cleared to.
	//
	// Returns:
	//   - [4]float64: the clear color
	ClearColor() [4]float64

	// SetClearColor sets the RGBA color the frame is cleared to.
	//
	// Parameters:
	//   - rgba: the clear color
	SetClearColor(rgba [4]float64)

	// OnDispose registers fn to run when the scene is disposed. Hooks run in reverse
	// registration order. Registering on a disposed context runs fn immediately.
	//
	// Parameters:
	//   - fn: the teardown hook
	OnDispose(fn func())

	// SyncMeshes copies physics body transforms onto their bound meshes.
	SyncMeshes()

	// Dispose tears the scene down: cancels pending timers, runs teardown hooks,
	// disposes the physics world and marks the context dead. Later calls are no-ops.
	Dispose()
}

var _ Context = &sceneContext{}

// NewContext creates a live Context with the provided options.
//
// Parameters:
//   - options: functional options to configure the context
//
// Returns:
//   - Context: the new context
func NewContext(options ...ContextBuilderOption) Context {
	c := &sceneContext{
		clearColor: [4]float64{0.05, 0.06, 0.08, 1},
	}
	for _, opt := range options {
		opt(c)
	}
	if c.bus == nil {
		c.bus = event.NewBus()
	}
	if c.scheduler == nil {
		c.scheduler = event.NewScheduler(nil)
	}
	c.alive.Store(true)
	return c
}

func (c *sceneContext) Alive() bool {
	return c.alive.Load()
}

func (c *sceneContext) Bus() *event.Bus {
	return c.bus
}

func (c *sceneContext) Scheduler() event.Scheduler {
	return c.scheduler
}

func (c *sceneContext) Physics() physics.World {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.world
}

func (c *sceneContext) SetPhysics(w physics.World) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.world = w
}

func (c *sceneContext) Camera() camera.Camera {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cam
}

func (c *sceneContext) SetCamera(cam camera.Camera) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cam = cam
}

func (c *sceneContext) Ground() Mesh {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ground
}

func (c *sceneContext) SetGround(m Mesh) error {
	if !c.Alive() {
		return ErrContextDisposed
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ground != nil {
		return ErrGroundAlreadySet
	}
	c.ground = m
	c.meshes = append(c.meshes, m)
	return nil
}

func (c *sceneContext) AddMesh(m Mesh) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.meshes = append(c.meshes, m)
}

func (c *sceneContext) Meshes() []Mesh {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Mesh, len(c.meshes))
	copy(out, c.meshes)
	return out
}

func (c *sceneContext) MeshByName(name string) (Mesh, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, m := range c.meshes {
		if m.Name() == name {
			return m, true
		}
	}
	return nil, false
}

func (c *sceneContext) MeshForBody(h physics.BodyHandle) (Mesh, bool) {
	if !h.Valid() {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, m := range c.meshes {
		if m.Body() == h {
			return m, true
		}
	}
	return nil, false
}

func (c *sceneContext) AddLight(l light.Light) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lights = append(c.lights, l)
}

func (c *sceneContext) Lights() []light.Light {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]light.Light, len(c.lights))
	copy(out, c.lights)
	return out
}

func (c *sceneContext) Shadows() light.ShadowGenerator {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.shadows
}

func (c *sceneContext) SetShadows(sg light.ShadowGenerator) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.shadows = sg
}

func (c *sceneContext) ClearColor() [4]float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clearColor
}

func (c *sceneContext) SetClearColor(rgba [4]float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearColor = rgba
}

func (c *sceneContext) OnDispose(fn func()) {
	if fn == nil {
		return
	}
	if !c.Alive() {
		fn()
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disposers = append(c.disposers, fn)
}

func (c *sceneContext) SyncMeshes() {
	w := c.Physics()
	if w == nil {
		return
	}
	for _, m := range c.Meshes() {
		h := m.Body()
		if !h.Valid() {
			continue
		}
		st, ok := w.Body(h)
		if !ok {
			continue
		}
		m.SetTransform(st.Position, st.Rotation)
	}
}

func (c *sceneContext) Dispose() {
	if !c.alive.CompareAndSwap(true, false) {
		return
	}
	c.scheduler.CancelAll()

	c.mu.Lock()
	disposers := c.disposers
	c.disposers = nil
	w := c.world
	c.mu.Unlock()

	for i := len(disposers) - 1; i >= 0; i-- {
		disposers[i]()
	}
	if w != nil {
		w.Dispose()
	}
	log.Println("[Scene] context disposed")
}
