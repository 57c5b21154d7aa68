package camera

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// referenceFrame is the frame length the per-frame tuning values (speed, inertia) are expressed in.
const referenceFrame float32 = 1.0 / 60.0

// maxPitch keeps the look direction from reaching the up vector, where LookAt degenerates.
const maxPitch = float32(math.Pi/2 - 0.01)

// cameraControllerImpl is the single implementation of CameraController.
type cameraControllerImpl struct {
	mu *sync.Mutex

	position mgl32.Vec3
	yaw      float32
	pitch    float32

	// pending rotational velocity in radians per reference frame
	yawVelocity   float32
	pitchVelocity float32

	speed              float32
	angularSensibility float32
	inertia            float32
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a new first-person controller.
// Defaults match a walking player: speed 0.5, angular sensibility 3500, inertia 0.1.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:                 &sync.Mutex{},
		speed:              0.5,
		angularSensibility: 3500,
		inertia:            0.1,
	}
	for _, option := range options {
		option(cc)
	}
	cc.pitch = mgl32.Clamp(cc.pitch, -maxPitch, maxPitch)
	return cc
}

func (cc *cameraControllerImpl) Position() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position
}

func (cc *cameraControllerImpl) SetPosition(p mgl32.Vec3) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.position = p
}

func (cc *cameraControllerImpl) Yaw() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.yaw
}

func (cc *cameraControllerImpl) Pitch() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.pitch
}

func (cc *cameraControllerImpl) SetRotation(yaw, pitch float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.yaw = yaw
	cc.pitch = mgl32.Clamp(pitch, -maxPitch, maxPitch)
}

func (cc *cameraControllerImpl) Look(dx, dy float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if cc.angularSensibility <= 0 {
		return
	}
	// Screen-right motion turns toward -X when facing +Z in a right-handed frame.
	cc.yawVelocity -= dx / cc.angularSensibility
	cc.pitchVelocity += dy / cc.angularSensibility
}

func (cc *cameraControllerImpl) Update(dt float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	cc.yaw += cc.yawVelocity
	cc.pitch = mgl32.Clamp(cc.pitch+cc.pitchVelocity, -maxPitch, maxPitch)

	frames := dt / referenceFrame
	if frames <= 0 {
		frames = 1
	}
	decay := float32(math.Pow(float64(cc.inertia), float64(frames)))
	cc.yawVelocity *= decay
	cc.pitchVelocity *= decay
	if mgl32.Abs(cc.yawVelocity) < 1e-6 {
		cc.yawVelocity = 0
	}
	if mgl32.Abs(cc.pitchVelocity) < 1e-6 {
		cc.pitchVelocity = 0
	}
}

func (cc *cameraControllerImpl) Forward() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	sy, cy := sincos(cc.yaw)
	sp, cp := sincos(cc.pitch)
	return mgl32.Vec3{sy * cp, -sp, cy * cp}
}

func (cc *cameraControllerImpl) Right() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	sy, cy := sincos(cc.yaw)
	return mgl32.Vec3{-cy, 0, sy}
}

func (cc *cameraControllerImpl) Speed() float32 {
	return cc.speed
}

func (cc *cameraControllerImpl) AngularSensibility() float32 {
	return cc.angularSensibility
}

func (cc *cameraControllerImpl) Inertia() float32 {
	return cc.inertia
}

func sincos(a float32) (float32, float32) {
	s, c := math.Sincos(float64(a))
	return float32(s), float32(c)
}
