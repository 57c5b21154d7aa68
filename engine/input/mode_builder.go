package input

// ModeControllerBuilderOption is a functional option for configuring a ModeController during construction.
type ModeControllerBuilderOption func(*modeController)

// WithCaptureButton sets the pointer button that requests capture. Defaults to the primary button.
//
// Parameters:
//   - button: the button code
//
// Returns:
//   - ModeControllerBuilderOption: functional option to set the capture button
func WithCaptureButton(button int) ModeControllerBuilderOption {
	return func(mc *modeController) {
		mc.button = button
	}
}
