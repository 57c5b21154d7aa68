package material

import "github.com/Carmen-Shannon/oxy-fps/common"

// material is the implementation of the Material interface.
type material struct {
	name          string
	diffuseColor  [3]float32
	specularColor [3]float32
	specularPower float32
	alpha         float32
	texture       *common.Texture
}

// Material defines the surface appearance of a mesh: diffuse and specular colors,
// specular power, opacity and an optional texture.
//
// Surface properties are mutable so environment builders can patch materials they
// receive (for instance forcing a ground to opaque) without rebuilding the mesh.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// DiffuseColor retrieves the RGB diffuse color of the material.
	//
	// Returns:
	//   - [3]float32: the diffuse color
	DiffuseColor() [3]float32

	// SpecularColor retrieves the RGB specular highlight color of the material.
	//
	// Returns:
	//   - [3]float32: the specular color
	SpecularColor() [3]float32

	// SpecularPower retrieves the specular exponent. Higher values give tighter highlights.
	//
	// Returns:
	//   - float32: the specular exponent
	SpecularPower() float32

	// Alpha retrieves the material opacity in [0, 1].
	//
	// Returns:
	//   - float32: the opacity
	Alpha() float32

	// Texture retrieves the diffuse texture, or nil if none is set.
	//
	// Returns:
	//   - *common.Texture: the texture, or nil
	Texture() *common.Texture

	// SetAlpha sets the material opacity, clamped to [0, 1].
	//
	// Parameters:
	//   - alpha: the new opacity
	SetAlpha(alpha float32)

	// SetDiffuseColor sets the RGB diffuse color.
	//
	// Parameters:
	//   - color: the new diffuse color
	SetDiffuseColor(color [3]float32)

	// Clone returns an independent copy of the material with a new name.
	//
	// Parameters:
	//   - name: the name of the copy
	//
	// Returns:
	//   - Material: the copy
	Clone(name string) Material
}

var _ Material = &material{}

// NewMaterial creates a new Material instance configured with the provided options.
// Defaults to an opaque white diffuse surface with a white specular highlight of power 64.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		diffuseColor:  [3]float32{1, 1, 1},
		specularColor: [3]float32{1, 1, 1},
		specularPower: 64,
		alpha:         1,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) DiffuseColor() [3]float32 {
	return m.diffuseColor
}

func (m *material) SpecularColor() [3]float32 {
	return m.specularColor
}

func (m *material) SpecularPower() float32 {
	return m.specularPower
}

func (m *material) Alpha() float32 {
	return m.alpha
}

func (m *material) Texture() *common.Texture {
	return m.texture
}

func (m *material) SetAlpha(alpha float32) {
	m.alpha = min(max(alpha, 0), 1)
}

func (m *material) SetDiffuseColor(color [3]float32) {
	m.diffuseColor = color
}

func (m *material) Clone(name string) Material {
	cp := *m
	cp.name = name
	return &cp
}
