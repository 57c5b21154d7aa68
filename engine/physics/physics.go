// Package physics provides the rigid-body world the scene simulates: async backend
// initialization, body registration, a gravity step with contact resolution, raycasts
// for gameplay queries, and a swept move for the collision-aware first-person camera.
package physics

import (
	"context"
	"errors"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/yohamta/donburi"
)

// ErrBackendUnavailable is returned by Backend.Initialize when the simulation cannot be brought up.
var ErrBackendUnavailable = errors.New("physics backend unavailable")

// ErrInvalidBody is returned by World.CreateBody when the shape or material properties are out of range.
var ErrInvalidBody = errors.New("invalid body")

// ErrWorldDisposed is returned by operations on a world after Dispose.
var ErrWorldDisposed = errors.New("physics world disposed")

// ShapeKind identifies the collision primitive of a body.
type ShapeKind int

const (
	// ShapeSphere is a sphere described by Radius.
	ShapeSphere ShapeKind = iota
	// ShapeBox is an oriented box described by HalfExtents.
	ShapeBox
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeSphere:
		return "sphere"
	case ShapeBox:
		return "box"
	default:
		return "unknown"
	}
}

// Shape describes a collision primitive.
type Shape struct {
	Kind        ShapeKind
	Radius      float32
	HalfExtents mgl32.Vec3
}

// Sphere returns a sphere shape of the given diameter.
//
// Parameters:
//   - diameter: the sphere's diameter in world units
//
// Returns:
//   - Shape: the sphere shape
func Sphere(diameter float32) Shape {
	return Shape{Kind: ShapeSphere, Radius: diameter / 2}
}

// Box returns a box shape with the given full dimensions.
//
// Parameters:
//   - width, height, depth: full extents along X, Y and Z
//
// Returns:
//   - Shape: the box shape
func Box(width, height, depth float32) Shape {
	return Shape{Kind: ShapeBox, HalfExtents: mgl32.Vec3{width / 2, height / 2, depth / 2}}
}

// Transform is a rigid placement in world space.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

// At returns an unrotated transform at position p.
func At(p mgl32.Vec3) Transform {
	return Transform{Position: p, Rotation: mgl32.QuatIdent()}
}

// BodyProps are the material properties of a body. A Mass of 0 makes the body static.
type BodyProps struct {
	Name        string
	Mass        float32
	Restitution float32
	Friction    float32
	// Pickable bodies are visible to gameplay raycast predicates.
	Pickable bool
}

// BodyHandle refers to a body registered in a World. The zero value refers to no body.
type BodyHandle struct {
	entity donburi.Entity
	valid  bool
}

// Valid reports whether the handle was returned by CreateBody.
func (h BodyHandle) Valid() bool {
	return h.valid
}

// BodyState is a read-only snapshot of a body.
type BodyState struct {
	Handle      BodyHandle
	Name        string
	Shape       Shape
	Position    mgl32.Vec3
	Rotation    mgl32.Quat
	Velocity    mgl32.Vec3
	Mass        float32
	Restitution float32
	Friction    float32
	Pickable    bool
	Static      bool
}

// Ray is a half-line segment used for queries. Direction need not be normalized.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
	Length    float32
}

// Hit describes the nearest body intersected by a ray.
type Hit struct {
	Body     BodyState
	Distance float32
	Point    mgl32.Vec3
	Normal   mgl32.Vec3
}

// Ellipsoid is the collision volume of a moving character.
// The volume's center sits at position - (0, Radii.Y, 0) + Offset.
type Ellipsoid struct {
	Radii  mgl32.Vec3
	Offset mgl32.Vec3
}

// Center returns the volume center for a character at position.
func (e Ellipsoid) Center(position mgl32.Vec3) mgl32.Vec3 {
	return position.Sub(mgl32.Vec3{0, e.Radii.Y(), 0}).Add(e.Offset)
}

// MoveResult is the outcome of World.MoveAndCollide.
type MoveResult struct {
	// Position is the character position after collision response.
	Position mgl32.Vec3
	// Grounded is true when downward motion was stopped by a body.
	Grounded bool
	// Blocked is true when any axis of the displacement was clipped.
	Blocked bool
}

// Backend brings up a World. Initialization may block while the backend loads, so it
// honours ctx and should be called from the bootstrap sequence only.
type Backend interface {
	// Initialize creates a world simulating the given gravity.
	//
	// Parameters:
	//   - ctx: bounds the initialization
	//   - gravity: the acceleration applied to dynamic bodies each step
	//
	// Returns:
	//   - World: the initialized world
	//   - error: ErrBackendUnavailable (wrapped) or ctx.Err() on failure
	Initialize(ctx context.Context, gravity mgl32.Vec3) (World, error)
}

// World is an initialized simulation. All methods are called from the scene's loop goroutine.
type World interface {
	// Gravity returns the world gravity vector.
	//
	// Returns:
	//   - mgl32.Vec3: gravity in units per second squared
	Gravity() mgl32.Vec3

	// CreateBody registers a body.
	//
	// Parameters:
	//   - shape: the collision primitive
	//   - transform: the initial placement
	//   - props: mass and surface properties (mass 0 = static)
	//
	// Returns:
	//   - BodyHandle: the new body's handle
	//   - error: ErrInvalidBody (wrapped) if the shape or props are out of range
	CreateBody(shape Shape, transform Transform, props BodyProps) (BodyHandle, error)

	// RemoveBody unregisters a body. Unknown handles are ignored.
	//
	// Parameters:
	//   - h: the body to remove
	RemoveBody(h BodyHandle)

	// Body returns a snapshot of a body.
	//
	// Parameters:
	//   - h: the body to read
	//
	// Returns:
	//   - BodyState: the snapshot
	//   - bool: false if the handle does not refer to a live body
	Body(h BodyHandle) (BodyState, bool)

	// Bodies returns snapshots of every live body in creation order.
	//
	// Returns:
	//   - []BodyState: the snapshots
	Bodies() []BodyState

	// BodyCount returns the number of live bodies.
	//
	// Returns:
	//   - int: the count
	BodyCount() int

	// ApplyImpulse changes a dynamic body's velocity by impulse / mass. Static bodies are unaffected.
	//
	// Parameters:
	//   - h: the body
	//   - impulse: the impulse vector
	ApplyImpulse(h BodyHandle, impulse mgl32.Vec3)

	// Step advances the simulation by dt seconds.
	//
	// Parameters:
	//   - dt: elapsed time in seconds
	Step(dt float32)

	// Raycast returns the nearest body hit by r for which accept returns true.
	// A nil accept admits every body.
	//
	// Parameters:
	//   - r: the ray
	//   - accept: optional filter
	//
	// Returns:
	//   - Hit: the nearest accepted hit
	//   - bool: false if nothing was hit within r.Length
	Raycast(r Ray, accept func(BodyState) bool) (Hit, bool)

	// MoveAndCollide moves a character volume by displacement, clipping motion against every body.
	//
	// Parameters:
	//   - volume: the character's collision volume
	//   - position: the character's current position
	//   - displacement: the desired motion this frame
	//
	// Returns:
	//   - MoveResult: the resolved position and contact flags
	MoveAndCollide(volume Ellipsoid, position, displacement mgl32.Vec3) MoveResult

	// Dispose releases every body. Later calls are no-ops.
	Dispose()
}
