package hud

// OverlayBuilderOption is a functional option for configuring an Overlay during construction.
type OverlayBuilderOption func(*overlay)

// WithOnChange registers a callback invoked whenever visibility changes.
//
// Parameters:
//   - fn: receives the new info and reticle visibility
//
// Returns:
//   - OverlayBuilderOption: functional option to set the callback
func WithOnChange(fn func(info, reticle bool)) OverlayBuilderOption {
	return func(o *overlay) {
		o.onChange = fn
	}
}
