package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyW     = 87  // W key (ASCII), move forward
	KeyA     = 65  // A key (ASCII), strafe left
	KeyS     = 83  // S key (ASCII), move backward
	KeyD     = 68  // D key (ASCII), strafe right
	KeyF     = 70  // F key (ASCII), immersive preview toggle
	KeySpace = 32  // Spacebar (ASCII), jump
	KeyEsc   = 256 // Escape key (GLFW), releases pointer capture
)

// Mouse button codes matching GLFW's button numbering.
const (
	MouseButtonPrimary   = 0 // Left button (GLFW)
	MouseButtonSecondary = 1 // Right button (GLFW)
	MouseButtonMiddle    = 2 // Middle button (GLFW)
)
