package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraController defines first-person camera control.
// Controllers own positional state (position, yaw, pitch). Camera reads from controller
// and computes view/projection matrices.
type CameraController interface {
	// Position returns the camera's world-space eye position.
	//
	// Returns:
	//   - mgl32.Vec3: the eye position
	Position() mgl32.Vec3

	// SetPosition sets the camera's world-space eye position directly.
	//
	// Parameters:
	//   - p: the new eye position
	SetPosition(p mgl32.Vec3)

	// Yaw returns the rotation around the world Y axis in radians. Zero looks down +Z.
	//
	// Returns:
	//   - float32: yaw in radians
	Yaw() float32

	// Pitch returns the rotation around the camera's right axis in radians. Positive looks down.
	//
	// Returns:
	//   - float32: pitch in radians
	Pitch() float32

	// SetRotation sets yaw and pitch directly. Pitch is clamped short of straight up and down.
	//
	// Parameters:
	//   - yaw: rotation around Y in radians
	//   - pitch: rotation around the right axis in radians
	SetRotation(yaw, pitch float32)

	// Look feeds relative pointer motion into the controller. The motion is divided by the
	// angular sensibility and accumulates as rotational velocity consumed by Update.
	//
	// Parameters:
	//   - dx: horizontal pointer delta in pixels
	//   - dy: vertical pointer delta in pixels
	Look(dx, dy float32)

	// Update applies pending rotational velocity and decays it by the inertia factor.
	//
	// Parameters:
	//   - dt: elapsed time in seconds
	Update(dt float32)

	// Forward returns the unit look direction.
	//
	// Returns:
	//   - mgl32.Vec3: the forward vector
	Forward() mgl32.Vec3

	// Right returns the unit screen-right vector on the horizontal plane (forward x up).
	//
	// Returns:
	//   - mgl32.Vec3: the right vector
	Right() mgl32.Vec3

	// Speed returns the movement speed in world units per reference frame (1/60 s).
	//
	// Returns:
	//   - float32: the speed
	Speed() float32

	// AngularSensibility returns the pointer divisor; larger values rotate more slowly.
	//
	// Returns:
	//   - float32: the sensibility
	AngularSensibility() float32

	// Inertia returns the per-reference-frame retention factor for rotational velocity.
	//
	// Returns:
	//   - float32: inertia in [0, 1)
	Inertia() float32
}
