package immersive

// PreviewBuilderOption is a functional option for configuring the preview runtime.
type PreviewBuilderOption func(*previewRuntime)

// WithToggleKey sets the key code that enters and exits the preview session.
//
// Parameters:
//   - code: the key code
//
// Returns:
//   - PreviewBuilderOption: functional option to set the toggle key
func WithToggleKey(code uint32) PreviewBuilderOption {
	return func(p *previewRuntime) {
		p.toggleKey = code
	}
}
