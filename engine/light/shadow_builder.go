package light

// ShadowGeneratorOption is a function that configures a shadow generator during construction.
type ShadowGeneratorOption func(*shadowGenerator)

// WithMapSize sets the shadow map resolution.
//
// Parameters:
//   - size: width and height in texels (values <= 0 keep the default)
//
// Returns:
//   - ShadowGeneratorOption: option function to apply
func WithMapSize(size int) ShadowGeneratorOption {
	return func(sg *shadowGenerator) {
		if size > 0 {
			sg.mapSize = size
		}
	}
}

// WithBias sets the depth comparison bias.
//
// Parameters:
//   - bias: the bias
//
// Returns:
//   - ShadowGeneratorOption: option function to apply
func WithBias(bias float32) ShadowGeneratorOption {
	return func(sg *shadowGenerator) {
		sg.bias = bias
	}
}

// WithDarkness sets the residual light in shadowed regions.
//
// Parameters:
//   - darkness: value in [0, 1]
//
// Returns:
//   - ShadowGeneratorOption: option function to apply
func WithDarkness(darkness float32) ShadowGeneratorOption {
	return func(sg *shadowGenerator) {
		sg.darkness = min(max(darkness, 0), 1)
	}
}

// WithBlurExponential enables exponential shadow blur with the given kernel width.
//
// Parameters:
//   - kernel: blur kernel width in texels
//
// Returns:
//   - ShadowGeneratorOption: option function to apply
func WithBlurExponential(kernel int) ShadowGeneratorOption {
	return func(sg *shadowGenerator) {
		sg.blurExponential = true
		if kernel > 0 {
			sg.blurKernel = kernel
		}
	}
}
