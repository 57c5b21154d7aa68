package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestControllerDefaults(t *testing.T) {
	cc := NewCameraController(WithPosition(0, 2.5, -10))
	if cc.Speed() != 0.5 || cc.AngularSensibility() != 3500 || cc.Inertia() != 0.1 {
		t.Fatalf("unexpected defaults: speed=%f sens=%f inertia=%f", cc.Speed(), cc.AngularSensibility(), cc.Inertia())
	}
	if !cc.Forward().ApproxEqual(mgl32.Vec3{0, 0, 1}) {
		t.Fatalf("expected +Z forward at zero yaw, got %v", cc.Forward())
	}
	want := cc.Forward().Cross(mgl32.Vec3{0, 1, 0})
	if !cc.Right().ApproxEqual(want) {
		t.Fatalf("expected right = forward x up (%v), got %v", want, cc.Right())
	}
}

func TestLookAppliesAndDecays(t *testing.T) {
	cc := NewCameraController()
	cc.Look(3500, 0)
	cc.Update(1.0 / 60.0)
	if mgl32.Abs(cc.Yaw()+1) > 1e-5 {
		t.Fatalf("expected yaw -1 rad after one update, got %f", cc.Yaw())
	}
	cc.Update(1.0 / 60.0)
	if mgl32.Abs(cc.Yaw()+1.1) > 1e-4 {
		t.Fatalf("expected inertia to carry 10%% into the next frame, got %f", cc.Yaw())
	}
}

func TestPitchClamped(t *testing.T) {
	cc := NewCameraController()
	cc.SetRotation(0, 10)
	if cc.Pitch() >= float32(math.Pi/2) {
		t.Fatalf("pitch not clamped: %f", cc.Pitch())
	}
	if cc.Forward().Y() >= 0 {
		t.Fatalf("positive pitch should look down, forward=%v", cc.Forward())
	}
}

func TestCameraSetAspectIgnoresInvalid(t *testing.T) {
	c := NewCamera(WithAspect(16.0/9.0), WithController(NewCameraController()))
	before := c.ProjectionMatrix()

	c.SetAspect(0)
	c.SetAspect(float32(math.Inf(1)))
	if c.ProjectionMatrix() != before {
		t.Fatalf("invalid aspect changed projection")
	}

	c.SetAspect(16.0 / 9.0)
	if c.ProjectionMatrix() != before {
		t.Fatalf("same aspect must produce the same projection")
	}
}

func TestCameraViewFollowsController(t *testing.T) {
	cc := NewCameraController(WithPosition(0, 2, 0))
	c := NewCamera(WithController(cc))

	p := c.ViewMatrix().Mul4x1(mgl32.Vec4{0, 2, 5, 1})
	if mgl32.Abs(p.X()) > 1e-4 || mgl32.Abs(p.Y()) > 1e-4 || p.Z() > -4.99 {
		t.Fatalf("point ahead of the camera should map to -Z view space, got %v", p)
	}

	cc.SetPosition(mgl32.Vec3{0, 2, 10})
	c.Update()
	p = c.ViewMatrix().Mul4x1(mgl32.Vec4{0, 2, 5, 1})
	if p.Z() < 4.99 {
		t.Fatalf("point behind the camera should map to +Z view space, got %v", p)
	}
}
