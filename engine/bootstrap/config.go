package bootstrap

import (
	"math"
	"time"

	"github.com/Carmen-Shannon/oxy-fps/common"
	"github.com/Carmen-Shannon/oxy-fps/engine/environment"
	"github.com/Carmen-Shannon/oxy-fps/engine/spawner"
	"github.com/go-gl/mathgl/mgl32"
)

// Config is the cosmetic and tuning data of the playground scene.
// Zero-valued fields are replaced with the matching DefaultConfig value by Normalize.
type Config struct {
	Gravity    mgl32.Vec3
	ClearColor [4]float64

	// ObjectCount is the number of dynamic objects dropped onto the ground.
	ObjectCount int
	Bounds      spawner.Bounds
	// Seed drives the spawner; 0 picks a time-based seed.
	Seed int64

	SphereColor [3]float32
	BoxColor    [3]float32

	Environment        environment.Options
	FallbackGroundSize float32

	SunDirection mgl32.Vec3
	SunPosition  mgl32.Vec3
	SunIntensity float32
	ShadowNear   float32
	ShadowFar    float32

	ShadowMapSize    int
	ShadowBias       float32
	ShadowDarkness   float32
	ShadowBlurKernel int

	CameraPosition     mgl32.Vec3
	CameraSpeed        float32
	AngularSensibility float32
	Inertia            float32

	JumpImpulse  float32
	JumpCooldown time.Duration
}

// DefaultConfig returns the playground defaults: 25 objects, earth gravity, a 100 unit ground
// and a shadow-casting sun.
func DefaultConfig() Config {
	return Config{
		Gravity:            mgl32.Vec3{0, -9.81, 0},
		ClearColor:         [4]float64{0, 0, 0, 1},
		ObjectCount:        25,
		Bounds:             spawner.DefaultBounds(),
		SphereColor:        [3]float32{0.9, 0.4, 0.4},
		BoxColor:           [3]float32{0.4, 0.4, 0.9},
		Environment:        environment.DefaultOptions(),
		FallbackGroundSize: 100,
		SunDirection:       mgl32.Vec3{-0.6, -1, -0.4}.Normalize(),
		SunPosition:        mgl32.Vec3{50, 80, 40},
		SunIntensity:       1.2,
		ShadowNear:         1,
		ShadowFar:          150,
		ShadowMapSize:      2048,
		ShadowBias:         0.005,
		ShadowDarkness:     0.4,
		ShadowBlurKernel:   32,
		CameraPosition:     mgl32.Vec3{0, 2.5, -10},
		CameraSpeed:        0.5,
		AngularSensibility: 3500,
		Inertia:            0.1,
		JumpImpulse:        5.5,
		JumpCooldown:       700 * time.Millisecond,
	}
}

// Normalize fills every zero-valued field of c from DefaultConfig.
// ObjectCount is kept when negative so Spawn can reject it. FallbackGroundSize is reset
// whenever it is not a finite positive extent, since the fallback ground must always build.
//
// Returns:
//   - Config: the completed config
func (c Config) Normalize() Config {
	d := DefaultConfig()
	c.Gravity = common.Coalesce(c.Gravity, d.Gravity)
	c.ClearColor = common.Coalesce(c.ClearColor, d.ClearColor)
	c.ObjectCount = common.Coalesce(c.ObjectCount, d.ObjectCount)
	c.Bounds = common.Coalesce(c.Bounds, d.Bounds)
	c.SphereColor = common.Coalesce(c.SphereColor, d.SphereColor)
	c.BoxColor = common.Coalesce(c.BoxColor, d.BoxColor)
	c.Environment = common.Coalesce(c.Environment, d.Environment)
	if !(c.FallbackGroundSize > 0) || math.IsInf(float64(c.FallbackGroundSize), 0) {
		c.FallbackGroundSize = d.FallbackGroundSize
	}
	c.SunDirection = common.Coalesce(c.SunDirection, d.SunDirection)
	c.SunPosition = common.Coalesce(c.SunPosition, d.SunPosition)
	c.SunIntensity = common.Coalesce(c.SunIntensity, d.SunIntensity)
	c.ShadowNear = common.Coalesce(c.ShadowNear, d.ShadowNear)
	c.ShadowFar = common.Coalesce(c.ShadowFar, d.ShadowFar)
	c.ShadowMapSize = common.Coalesce(c.ShadowMapSize, d.ShadowMapSize)
	c.ShadowBias = common.Coalesce(c.ShadowBias, d.ShadowBias)
	c.ShadowDarkness = common.Coalesce(c.ShadowDarkness, d.ShadowDarkness)
	c.ShadowBlurKernel = common.Coalesce(c.ShadowBlurKernel, d.ShadowBlurKernel)
	c.CameraPosition = common.Coalesce(c.CameraPosition, d.CameraPosition)
	c.CameraSpeed = common.Coalesce(c.CameraSpeed, d.CameraSpeed)
	c.AngularSensibility = common.Coalesce(c.AngularSensibility, d.AngularSensibility)
	c.Inertia = common.Coalesce(c.Inertia, d.Inertia)
	c.JumpImpulse = common.Coalesce(c.JumpImpulse, d.JumpImpulse)
	c.JumpCooldown = common.Coalesce(c.JumpCooldown, d.JumpCooldown)
	return c
}
