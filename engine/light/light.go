package light

import (
	"github.com/Carmen-Shannon/oxy-fps/common"
	"github.com/go-gl/mathgl/mgl32"
)

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeDirectional represents a light with no falloff, only direction.
	// Used for the sun. Directional lights are the only type that can drive a ShadowGenerator.
	LightTypeDirectional LightType = iota

	// LightTypeHemispheric represents an ambient sky/ground light. Its direction points
	// toward the sky color; fragments facing away blend toward the ground color.
	LightTypeHemispheric
)

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	name        string
	lightType   LightType
	position    mgl32.Vec3
	direction   mgl32.Vec3
	color       [3]float32
	groundColor [3]float32
	intensity   float32
	shadowNear  float32
	shadowFar   float32
	enabled     bool
}

// Light defines the interface for a light source in the scene.
//
// All light types share this interface; type-specific properties (ground color for
// hemispheric lights, shadow depth range for directional lights) return zero values
// when not applicable.
type Light interface {
	// Name returns the light's identifier.
	//
	// Returns:
	//   - string: the name
	Name() string

	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type
	Type() LightType

	// Position returns the world-space position of the light. Directional lights use it
	// as the origin of their shadow projection.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// Direction returns the normalized direction of the light.
	//
	// Returns:
	//   - mgl32.Vec3: the direction
	Direction() mgl32.Vec3

	// Color returns the RGB color of the light.
	//
	// Returns:
	//   - [3]float32: color as (r, g, b)
	Color() [3]float32

	// GroundColor returns the color hemispheric lights blend toward on surfaces facing away from the sky.
	//
	// Returns:
	//   - [3]float32: color as (r, g, b)
	GroundColor() [3]float32

	// Intensity returns the scalar intensity multiplier for the light.
	//
	// Returns:
	//   - float32: the intensity value
	Intensity() float32

	// ShadowRange returns the near and far planes of the light's shadow projection.
	//
	// Returns:
	//   - near, far: plane distances
	ShadowRange() (near, far float32)

	// Enabled returns whether this light is active for rendering.
	//
	// Returns:
	//   - bool: true if the light is enabled
	Enabled() bool

	// SetPosition sets the world-space position of the light.
	//
	// Parameters:
	//   - p: the position
	SetPosition(p mgl32.Vec3)

	// SetDirection sets the direction of the light and normalizes it.
	//
	// Parameters:
	//   - d: direction (will be normalized)
	SetDirection(d mgl32.Vec3)

	// SetIntensity sets the scalar intensity multiplier.
	//
	// Parameters:
	//   - intensity: the intensity value
	SetIntensity(intensity float32)

	// SetEnabled enables or disables the light for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the specified type with sensible defaults and
// any provided options applied.
//
// Parameters:
//   - lightType: the kind of light to create
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType:  lightType,
		direction:  mgl32.Vec3{0, -1, 0},
		color:      [3]float32{1, 1, 1},
		intensity:  1.0,
		shadowNear: DefaultShadowNear,
		shadowFar:  DefaultShadowFar,
		enabled:    true,
	}
	if lightType == LightTypeHemispheric {
		l.direction = mgl32.Vec3{0, 1, 0}
		l.shadowNear, l.shadowFar = 0, 0
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Name() string {
	return l.name
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() mgl32.Vec3 {
	return l.position
}

func (l *lightImpl) Direction() mgl32.Vec3 {
	return l.direction
}

func (l *lightImpl) Color() [3]float32 {
	return l.color
}

func (l *lightImpl) GroundColor() [3]float32 {
	return l.groundColor
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) ShadowRange() (float32, float32) {
	return l.shadowNear, l.shadowFar
}

func (l *lightImpl) Enabled() bool {
	return l.enabled
}

func (l *lightImpl) SetPosition(p mgl32.Vec3) {
	l.position = p
}

func (l *lightImpl) SetDirection(d mgl32.Vec3) {
	l.direction = common.SafeNormalize(d)
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.intensity = intensity
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.enabled = enabled
}
