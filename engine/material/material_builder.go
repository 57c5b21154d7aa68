package material

import "github.com/Carmen-Shannon/oxy-fps/common"

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithDiffuseColor is an option builder that sets the RGB diffuse color of the material.
//
// Parameters:
//   - r, g, b: the diffuse color components
//
// Returns:
//   - MaterialBuilderOption: a function that applies the diffuse color option to a material
func WithDiffuseColor(r, g, b float32) MaterialBuilderOption {
	return func(m *material) {
		m.diffuseColor = [3]float32{r, g, b}
	}
}

// WithSpecularColor is an option builder that sets the RGB specular color of the material.
//
// Parameters:
//   - r, g, b: the specular color components
//
// Returns:
//   - MaterialBuilderOption: a function that applies the specular color option to a material
func WithSpecularColor(r, g, b float32) MaterialBuilderOption {
	return func(m *material) {
		m.specularColor = [3]float32{r, g, b}
	}
}

// WithSpecularPower is an option builder that sets the specular exponent.
//
// Parameters:
//   - power: the specular exponent
//
// Returns:
//   - MaterialBuilderOption: a function that applies the specular power option to a material
func WithSpecularPower(power float32) MaterialBuilderOption {
	return func(m *material) {
		m.specularPower = power
	}
}

// WithAlpha is an option builder that sets the opacity, clamped to [0, 1].
//
// Parameters:
//   - alpha: the opacity
//
// Returns:
//   - MaterialBuilderOption: a function that applies the alpha option to a material
func WithAlpha(alpha float32) MaterialBuilderOption {
	return func(m *material) {
		m.alpha = min(max(alpha, 0), 1)
	}
}

// WithTexture is an option builder that sets the diffuse texture reference.
//
// Parameters:
//   - tex: the texture
//
// Returns:
//   - MaterialBuilderOption: a function that applies the texture option to a material
func WithTexture(tex *common.Texture) MaterialBuilderOption {
	return func(m *material) {
		m.texture = tex
	}
}
