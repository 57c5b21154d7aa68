package light

import (
	"errors"
	"sync"
)

// ShadowMapResolution is the default width and height in texels of the shadow depth texture.
const ShadowMapResolution = 2048

// DefaultShadowNear is the default near plane for a directional light's shadow projection.
const DefaultShadowNear float32 = 1.0

// DefaultShadowFar is the default far plane for a directional light's shadow projection.
const DefaultShadowFar float32 = 150.0

// DefaultShadowBias is the constant depth bias applied to shadow comparisons
// to reduce shadow acne artifacts.
const DefaultShadowBias float32 = 0.005

// DefaultBlurKernel is the default blur kernel width for exponential shadow filtering.
const DefaultBlurKernel = 32

// DefaultShadowDarkness is how much light a fully shadowed fragment still receives (0 = black).
const DefaultShadowDarkness float32 = 0.4

// ErrShadowLightType is returned by NewShadowGenerator for lights that cannot cast shadows.
var ErrShadowLightType = errors.New("shadow generator requires a directional light")

// ShadowCaster is anything that can be registered with a ShadowGenerator.
type ShadowCaster interface {
	Name() string
}

// shadowGenerator is the implementation of the ShadowGenerator interface.
type shadowGenerator struct {
	mu              sync.Mutex
	light           Light
	mapSize         int
	bias            float32
	darkness        float32
	blurKernel      int
	blurExponential bool
	casters         []ShadowCaster
}

// ShadowGenerator tracks the meshes that cast shadows from a single directional light,
// together with the depth map settings used to render them.
type ShadowGenerator interface {
	// Light returns the light the generator renders from.
	//
	// Returns:
	//   - Light: the light
	Light() Light

	// MapSize returns the shadow map resolution in texels.
	//
	// Returns:
	//   - int: width and height of the depth texture
	MapSize() int

	// Bias returns the depth comparison bias.
	//
	// Returns:
	//   - float32: the bias
	Bias() float32

	// Darkness returns the residual light in shadowed regions.
	//
	// Returns:
	//   - float32: darkness in [0, 1]
	Darkness() float32

	// BlurKernel returns the blur kernel width, and whether exponential blur is enabled.
	//
	// Returns:
	//   - int: kernel width
	//   - bool: true if exponential blur is on
	BlurKernel() (int, bool)

	// AddCaster registers a shadow caster. Registering the same caster twice is a no-op.
	//
	// Parameters:
	//   - c: the caster
	AddCaster(c ShadowCaster)

	// RemoveCaster unregisters a shadow caster.
	//
	// Parameters:
	//   - c: the caster
	RemoveCaster(c ShadowCaster)

	// Casters returns the registered casters in registration order.
	//
	// Returns:
	//   - []ShadowCaster: a copy of the caster list
	Casters() []ShadowCaster
}

var _ ShadowGenerator = &shadowGenerator{}

// NewShadowGenerator creates a ShadowGenerator for a directional light.
//
// Parameters:
//   - l: the directional light to render shadows from
//   - opts: variadic list of ShadowGeneratorOption functions
//
// Returns:
//   - ShadowGenerator: the generator
//   - error: ErrShadowLightType if l is nil or not directional
func NewShadowGenerator(l Light, opts ...ShadowGeneratorOption) (ShadowGenerator, error) {
	if l == nil || l.Type() != LightTypeDirectional {
		return nil, ErrShadowLightType
	}
	sg := &shadowGenerator{
		light:      l,
		mapSize:    ShadowMapResolution,
		bias:       DefaultShadowBias,
		darkness:   DefaultShadowDarkness,
		blurKernel: DefaultBlurKernel,
	}
	for _, opt := range opts {
		opt(sg)
	}
	return sg, nil
}

func (sg *shadowGenerator) Light() Light {
	return sg.light
}

func (sg *shadowGenerator) MapSize() int {
	return sg.mapSize
}

func (sg *shadowGenerator) Bias() float32 {
	return sg.bias
}

func (sg *shadowGenerator) Darkness() float32 {
	return sg.darkness
}

func (sg *shadowGenerator) BlurKernel() (int, bool) {
	return sg.blurKernel, sg.blurExponential
}

func (sg *shadowGenerator) AddCaster(c ShadowCaster) {
	if c == nil {
		return
	}
	sg.mu.Lock()
	defer sg.mu.Unlock()
	for _, existing := range sg.casters {
		if existing == c {
			return
		}
	}
	sg.casters = append(sg.casters, c)
}

func (sg *shadowGenerator) RemoveCaster(c ShadowCaster) {
	sg.mu.Lock()
	defer sg.mu.Unlock()
	for i, existing := range sg.casters {
		if existing == c {
			sg.casters = append(sg.casters[:i], sg.casters[i+1:]...)
			return
		}
	}
}

func (sg *shadowGenerator) Casters() []ShadowCaster {
	sg.mu.Lock()
	defer sg.mu.Unlock()
	out := make([]ShadowCaster, len(sg.casters))
	copy(out, sg.casters)
	return out
}
