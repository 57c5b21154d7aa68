package environment

import "github.com/Carmen-Shannon/oxy-fps/common"

// HelperBuilderOption is a functional option for configuring the stock environment Builder.
type HelperBuilderOption func(*helper)

// WithGroundOpacity sets the opacity of the ground material the helper creates.
//
// Parameters:
//   - alpha: opacity in [0, 1]
//
// Returns:
//   - HelperBuilderOption: functional option to set the opacity
func WithGroundOpacity(alpha float32) HelperBuilderOption {
	return func(h *helper) {
		h.groundOpacity = alpha
	}
}

// WithTextureDecoder replaces the skybox texture decoder. The decoder must populate the
// texture's Width and Height on success and return its RGBA8 pixels, whose average
// becomes the sky color.
//
// Parameters:
//   - decode: the decoder
//
// Returns:
//   - HelperBuilderOption: functional option to set the decoder
func WithTextureDecoder(decode func(t *common.Texture) ([]byte, error)) HelperBuilderOption {
	return func(h *helper) {
		if decode != nil {
			h.decode = decode
		}
	}
}
