// Package player implements the first-person player: a collision-aware walking camera and
// the jump state machine layered on top of it.
package player

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-fps/common"
	"github.com/Carmen-Shannon/oxy-fps/engine/camera"
	"github.com/Carmen-Shannon/oxy-fps/engine/event"
	"github.com/Carmen-Shannon/oxy-fps/engine/physics"
	"github.com/Carmen-Shannon/oxy-fps/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// referenceFrame is the frame length inertia is expressed in.
	referenceFrame float32 = 1.0 / 60.0
	// walkScale converts the camera speed setting into units per second.
	walkScale float32 = 3.5
)

var defaultGravity = mgl32.Vec3{0, -9.81, 0}

// MoveKeys are the key codes bound to the four walking directions.
type MoveKeys struct {
	Forward, Backward, Left, Right uint32
}

// controller is the implementation of the Controller interface.
// It is driven from the scene's loop goroutine only.
type controller struct {
	sc         scene.Context
	cam        camera.Camera
	ctrl       camera.CameraController
	keys       MoveKeys
	ellipsoid  physics.Ellipsoid
	collisions bool
	gravity    bool
	lookGate   func() bool

	held      map[uint32]bool
	walkVel   mgl32.Vec3
	vertical  float32
	grounded  bool
	camOpts   []camera.CameraControllerOption
	camName   string
	attachedH *handle
}

// Controller owns the first-person camera: it walks on key input, looks on pointer motion,
// falls under gravity and collides with every body in the scene's physics world.
type Controller interface {
	// Attach subscribes the controller to the scene's key and pointer streams.
	// Attaching twice returns the existing handle.
	//
	// Returns:
	//   - Handle: detaches the controller from input
	Attach() Handle

	// Camera returns the player camera.
	//
	// Returns:
	//   - camera.Camera: the camera
	Camera() camera.Camera

	// Position returns the eye position.
	//
	// Returns:
	//   - mgl32.Vec3: the eye position
	Position() mgl32.Vec3

	// SetPosition teleports the player without collision.
	//
	// Parameters:
	//   - p: the new eye position
	SetPosition(p mgl32.Vec3)

	// Ellipsoid returns the collision volume.
	//
	// Returns:
	//   - physics.Ellipsoid: the volume
	Ellipsoid() physics.Ellipsoid

	// VerticalVelocity returns the current vertical speed in units per second.
	//
	// Returns:
	//   - float32: positive when rising
	VerticalVelocity() float32

	// ApplyVerticalImpulse launches the player upward. Downward speed is cancelled first.
	//
	// Parameters:
	//   - speed: the upward speed to add in units per second
	ApplyVerticalImpulse(speed float32)

	// Grounded reports whether the last update ended standing on a body.
	//
	// Returns:
	//   - bool: true if standing
	Grounded() bool

	// CollisionsEnabled reports whether movement is clipped against bodies.
	//
	// Returns:
	//   - bool: true if collisions are on
	CollisionsEnabled() bool

	// GravityEnabled reports whether gravity is applied each update.
	//
	// Returns:
	//   - bool: true if gravity is on
	GravityEnabled() bool

	// Update advances look rotation, walking, gravity and collision by dt seconds.
	//
	// Parameters:
	//   - dt: elapsed time in seconds
	Update(dt float32)
}

// Handle detaches an attached component from its event streams.
type Handle interface {
	Detach()
}

type handle struct {
	once   sync.Once
	detach func()
}

func (h *handle) Detach() {
	h.once.Do(h.detach)
}

var _ Controller = &controller{}

// NewController creates the player and installs its camera as the scene's active camera.
// Defaults: start (0, 2.5, -10), keys W/S/A/D, ellipsoid (0.5, 0.9, 0.5) offset (0, 0.9, 0),
// collisions and gravity on.
//
// Parameters:
//   - sc: the scene the player lives in
//   - options: functional options to configure the controller
//
// Returns:
//   - Controller: the new controller
func NewController(sc scene.Context, options ...ControllerBuilderOption) Controller {
	c := &controller{
		sc:      sc,
		camName: "playerCamera",
		keys: MoveKeys{
			Forward:  common.KeyW,
			Backward: common.KeyS,
			Left:     common.KeyA,
			Right:    common.KeyD,
		},
		ellipsoid: physics.Ellipsoid{
			Radii:  mgl32.Vec3{0.5, 0.9, 0.5},
			Offset: mgl32.Vec3{0, 0.9, 0},
		},
		collisions: true,
		gravity:    true,
		held:       make(map[uint32]bool),
		camOpts:    []camera.CameraControllerOption{camera.WithPosition(0, 2.5, -10)},
	}
	for _, opt := range options {
		opt(c)
	}
	c.ctrl = camera.NewCameraController(c.camOpts...)
	c.cam = camera.NewCamera(camera.WithName(c.camName), camera.WithController(c.ctrl))
	sc.SetCamera(c.cam)
	return c
}

func (c *controller) Attach() Handle {
	if c.attachedH != nil {
		return c.attachedH
	}
	bus := c.sc.Bus()
	keySub := bus.Keys.Subscribe(c.handleKey)
	moveSub := bus.PointerMove.Subscribe(c.handlePointerMove)
	c.attachedH = &handle{detach: func() {
		bus.Keys.Unsubscribe(keySub)
		bus.PointerMove.Unsubscribe(moveSub)
		clear(c.held)
	}}
	c.sc.OnDispose(c.attachedH.Detach)
	return c.attachedH
}

func (c *controller) handleKey(ev event.KeyEvent) {
	switch ev.Code {
	case c.keys.Forward, c.keys.Backward, c.keys.Left, c.keys.Right:
		c.held[ev.Code] = ev.Action == event.KeyDown
	}
}

func (c *controller) handlePointerMove(ev event.PointerMoveEvent) {
	if c.lookGate != nil && !c.lookGate() {
		return
	}
	c.ctrl.Look(ev.DX, ev.DY)
}

func (c *controller) Camera() camera.Camera {
	return c.cam
}

func (c *controller) Position() mgl32.Vec3 {
	return c.ctrl.Position()
}

func (c *controller) SetPosition(p mgl32.Vec3) {
	c.ctrl.SetPosition(p)
}

func (c *controller) Ellipsoid() physics.Ellipsoid {
	return c.ellipsoid
}

func (c *controller) VerticalVelocity() float32 {
	return c.vertical
}

func (c *controller) ApplyVerticalImpulse(speed float32) {
	c.vertical = max(c.vertical, 0) + speed
	c.grounded = false
}

func (c *controller) Grounded() bool {
	return c.grounded
}

func (c *controller) CollisionsEnabled() bool {
	return c.collisions
}

func (c *controller) GravityEnabled() bool {
	return c.gravity
}

func (c *controller) Update(dt float32) {
	if !(dt > 0) {
		return
	}
	c.ctrl.Update(dt)

	w := c.sc.Physics()
	g := defaultGravity
	if w != nil {
		g = w.Gravity()
	}

	fwd := common.SafeNormalize(mgl32.Vec3{c.ctrl.Forward().X(), 0, c.ctrl.Forward().Z()})
	right := c.ctrl.Right()
	var dir mgl32.Vec3
	if c.held[c.keys.Forward] {
		dir = dir.Add(fwd)
	}
	if c.held[c.keys.Backward] {
		dir = dir.Sub(fwd)
	}
	if c.held[c.keys.Right] {
		dir = dir.Add(right)
	}
	if c.held[c.keys.Left] {
		dir = dir.Sub(right)
	}
	target := common.SafeNormalize(dir).Mul(c.ctrl.Speed() * walkScale)
	blend := float32(math.Pow(float64(c.ctrl.Inertia()), float64(dt/referenceFrame)))
	c.walkVel = target.Add(c.walkVel.Sub(target).Mul(blend))

	if c.gravity {
		c.vertical += g.Y() * dt
	}
	disp := mgl32.Vec3{c.walkVel.X() * dt, c.vertical * dt, c.walkVel.Z() * dt}
	pos := c.ctrl.Position()

	if !c.collisions || w == nil {
		c.grounded = false
		c.ctrl.SetPosition(pos.Add(disp))
		return
	}

	res := w.MoveAndCollide(c.ellipsoid, pos, disp)
	c.grounded = res.Grounded
	if c.grounded && c.vertical < 0 {
		c.vertical = 0
	}
	if c.vertical > 0 && res.Position.Y() < pos.Y()+disp.Y()-common.Epsilon {
		c.vertical = 0
	}
	c.ctrl.SetPosition(res.Position)
}
