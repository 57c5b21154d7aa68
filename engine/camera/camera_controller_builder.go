package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithPosition sets the initial eye position.
//
// Parameters:
//   - x: X coordinate
//   - y: Y coordinate
//   - z: Z coordinate
//
// Returns:
//   - CameraControllerOption: functional option to set the position
func WithPosition(x, y, z float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.position = mgl32.Vec3{x, y, z}
	}
}

// WithRotation sets the initial yaw and pitch.
//
// Parameters:
//   - yaw: rotation around Y in radians (0 looks down +Z)
//   - pitch: rotation around the right axis in radians (positive looks down)
//
// Returns:
//   - CameraControllerOption: functional option to set the rotation
func WithRotation(yaw, pitch float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.yaw = yaw
		cc.pitch = pitch
	}
}

// WithSpeed sets the movement speed per reference frame.
//
// Parameters:
//   - speed: world units moved per 1/60 s while a movement key is held
//
// Returns:
//   - CameraControllerOption: functional option to set the speed
func WithSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.speed = speed
	}
}

// WithAngularSensibility sets the pointer divisor. Larger values rotate more slowly.
//
// Parameters:
//   - sensibility: pixels of pointer motion per radian
//
// Returns:
//   - CameraControllerOption: functional option to set the sensibility
func WithAngularSensibility(sensibility float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.angularSensibility = sensibility
	}
}

// WithInertia sets how much rotational velocity survives each reference frame.
//
// Parameters:
//   - inertia: retention factor in [0, 1)
//
// Returns:
//   - CameraControllerOption: functional option to set the inertia
func WithInertia(inertia float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.inertia = mgl32.Clamp(inertia, 0, 0.999)
	}
}
