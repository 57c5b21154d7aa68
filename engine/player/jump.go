package player

import (
	"log"
	"time"

	"github.com/Carmen-Shannon/oxy-fps/common"
	"github.com/Carmen-Shannon/oxy-fps/engine/event"
	"github.com/Carmen-Shannon/oxy-fps/engine/physics"
	"github.com/Carmen-Shannon/oxy-fps/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// JumpState is the state of the jump state machine.
type JumpState int

const (
	// JumpReady accepts a jump key press.
	JumpReady JumpState = iota
	// JumpCooling ignores jump key presses until the cooldown elapses.
	JumpCooling
)

func (s JumpState) String() string {
	switch s {
	case JumpReady:
		return "ready"
	case JumpCooling:
		return "cooling"
	default:
		return "unknown"
	}
}

const (
	// rayStartFactor places the grounded probe this fraction of the ellipsoid height below the eye.
	rayStartFactor float32 = 0.9
	// rayLengthFactor sets the grounded probe length as a fraction of the ellipsoid height.
	rayLengthFactor float32 = 1.1
)

var down = mgl32.Vec3{0, -1, 0}

// jumpController is the implementation of the JumpController interface.
// It is driven from the scene's loop goroutine only.
type jumpController struct {
	sc       scene.Context
	player   Controller
	key      uint32
	impulse  float32
	cooldown time.Duration

	state  JumpState
	timer  event.Timer
	sub    event.Subscription
	subbed bool
	closed bool
}

// JumpController gates jump impulses behind a grounded raycast and a cooldown.
// A press while cooling or airborne is dropped, never queued.
type JumpController interface {
	// Attach subscribes the controller to the scene's key stream and to scene teardown.
	Attach()

	// HandleKey feeds one key event to the state machine.
	//
	// Parameters:
	//   - ev: the key event
	//
	// Returns:
	//   - bool: true if the event started a jump
	HandleKey(ev event.KeyEvent) bool

	// Grounded runs the grounded raycast from the player's current position.
	//
	// Returns:
	//   - bool: true if the probe hits the ground or a pickable dynamic body within its length
	Grounded() bool

	// State returns the current state.
	//
	// Returns:
	//   - JumpState: Ready or Cooling
	State() JumpState

	// Close cancels a pending cooldown and unsubscribes from input. The controller ignores
	// every later key event.
	Close()
}

var _ JumpController = &jumpController{}

// NewJumpController creates a JumpController for player in sc.
// Defaults: Space, impulse 5.5, cooldown 700ms.
//
// Parameters:
//   - sc: the scene supplying physics, ground and timers
//   - player: the player to launch
//   - options: functional options to configure the controller
//
// Returns:
//   - JumpController: the new controller, in JumpReady
func NewJumpController(sc scene.Context, player Controller, options ...JumpControllerBuilderOption) JumpController {
	jc := &jumpController{
		sc:       sc,
		player:   player,
		key:      common.KeySpace,
		impulse:  5.5,
		cooldown: 700 * time.Millisecond,
		state:    JumpReady,
	}
	for _, opt := range options {
		opt(jc)
	}
	return jc
}

func (jc *jumpController) Attach() {
	if jc.subbed || jc.closed {
		return
	}
	jc.sub = jc.sc.Bus().Keys.Subscribe(func(ev event.KeyEvent) {
		jc.HandleKey(ev)
	})
	jc.subbed = true
	jc.sc.OnDispose(jc.Close)
}

func (jc *jumpController) HandleKey(ev event.KeyEvent) bool {
	if jc.closed || ev.Action != event.KeyDown || ev.Code != jc.key {
		return false
	}
	if jc.state != JumpReady {
		return false
	}
	if !jc.Grounded() {
		return false
	}

	jc.player.ApplyVerticalImpulse(jc.impulse)
	jc.state = JumpCooling
	jc.timer = jc.sc.Scheduler().AfterFunc(jc.cooldown, func() {
		jc.state = JumpReady
		jc.timer = nil
	})
	log.Printf("[Jump] jump initiated (impulse %.2f, cooldown %v)", jc.impulse, jc.cooldown)
	return true
}

func (jc *jumpController) Grounded() bool {
	w := jc.sc.Physics()
	ground := jc.sc.Ground()
	if w == nil || ground == nil {
		return false
	}

	e := jc.player.Ellipsoid()
	ray := physics.Ray{
		Origin:    jc.player.Position().Sub(mgl32.Vec3{0, e.Radii.Y() * rayStartFactor, 0}),
		Direction: down,
		Length:    e.Radii.Y() * rayLengthFactor,
	}
	groundBody := ground.Body()
	hit, ok := w.Raycast(ray, func(b physics.BodyState) bool {
		if groundBody.Valid() && b.Handle == groundBody {
			return true
		}
		return b.Pickable && !b.Static && b.Mass > 0
	})
	return ok && hit.Distance < ray.Length
}

func (jc *jumpController) State() JumpState {
	return jc.state
}

func (jc *jumpController) Close() {
	if jc.closed {
		return
	}
	jc.closed = true
	if jc.timer != nil {
		jc.timer.Cancel()
		jc.timer = nil
	}
	if jc.subbed {
		jc.sc.Bus().Keys.Unsubscribe(jc.sub)
		jc.subbed = false
	}
}
