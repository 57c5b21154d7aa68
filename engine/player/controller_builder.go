package player

import (
	"github.com/Carmen-Shannon/oxy-fps/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
)

// ControllerBuilderOption is a functional option for configuring a Controller during construction.
type ControllerBuilderOption func(*controller)

// WithCameraName sets the name of the player camera.
//
// Parameters:
//   - name: the camera name
//
// Returns:
//   - ControllerBuilderOption: functional option to set the camera name
func WithCameraName(name string) ControllerBuilderOption {
	return func(c *controller) {
		c.camName = name
	}
}

// WithCameraOptions appends options for the underlying camera controller (start position, speed,
// angular sensibility, inertia).
//
// Parameters:
//   - opts: camera controller options
//
// Returns:
//   - ControllerBuilderOption: functional option to configure the camera controller
func WithCameraOptions(opts ...camera.CameraControllerOption) ControllerBuilderOption {
	return func(c *controller) {
		c.camOpts = append(c.camOpts, opts...)
	}
}

// WithMoveKeys binds the four walking directions.
//
// Parameters:
//   - keys: the key codes
//
// Returns:
//   - ControllerBuilderOption: functional option to set the movement keys
func WithMoveKeys(keys MoveKeys) ControllerBuilderOption {
	return func(c *controller) {
		c.keys = keys
	}
}

// WithEllipsoid sets the collision volume radii and its offset from the eye.
//
// Parameters:
//   - radii: the ellipsoid radii
//   - offset: the volume offset
//
// Returns:
//   - ControllerBuilderOption: functional option to set the collision volume
func WithEllipsoid(radii, offset mgl32.Vec3) ControllerBuilderOption {
	return func(c *controller) {
		c.ellipsoid.Radii = radii
		c.ellipsoid.Offset = offset
	}
}

// WithCollisions enables or disables collision against bodies.
//
// Parameters:
//   - enabled: true to collide
//
// Returns:
//   - ControllerBuilderOption: functional option to set collisions
func WithCollisions(enabled bool) ControllerBuilderOption {
	return func(c *controller) {
		c.collisions = enabled
	}
}

// WithGravity enables or disables gravity.
//
// Parameters:
//   - enabled: true to fall
//
// Returns:
//   - ControllerBuilderOption: functional option to set gravity
func WithGravity(enabled bool) ControllerBuilderOption {
	return func(c *controller) {
		c.gravity = enabled
	}
}

// WithLookGate makes pointer motion rotate the camera only while gate returns true,
// for example while the pointer is captured.
//
// Parameters:
//   - gate: the predicate
//
// Returns:
//   - ControllerBuilderOption: functional option to set the look gate
func WithLookGate(gate func() bool) ControllerBuilderOption {
	return func(c *controller) {
		c.lookGate = gate
	}
}
