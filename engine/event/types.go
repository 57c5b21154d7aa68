package event

// KeyAction distinguishes key presses from releases.
type KeyAction int

const (
	// KeyDown is emitted when a key is pressed or auto-repeats.
	KeyDown KeyAction = iota
	// KeyUp is emitted when a key is released.
	KeyUp
)

// KeyEvent is a keyboard event carrying a device-independent key code (see common.Key*).
type KeyEvent struct {
	Action KeyAction
	Code   uint32
	Repeat bool
}

// PointerButtonEvent is a mouse button press or release.
type PointerButtonEvent struct {
	Button  int
	Pressed bool
	X, Y    float32
}

// PointerMoveEvent carries relative pointer motion since the previous event.
type PointerMoveEvent struct {
	DX, DY float32
}

// PointerCaptureEvent is the OS notification that pointer capture was acquired or released.
type PointerCaptureEvent struct {
	Captured bool
}

// ResizeEvent carries the new drawable size in pixels.
type ResizeEvent struct {
	Width, Height int
}

// SessionState is the lifecycle state reported by an immersive session.
type SessionState int

const (
	// SessionInactive means no immersive presentation is running.
	SessionInactive SessionState = iota
	// SessionEntering means the runtime is preparing to present.
	SessionEntering
	// SessionActive means the immersive session is presenting and owns input.
	SessionActive
	// SessionExiting means the runtime is tearing presentation down.
	SessionExiting
)

func (s SessionState) String() string {
	switch s {
	case SessionInactive:
		return "inactive"
	case SessionEntering:
		return "entering"
	case SessionActive:
		return "active"
	case SessionExiting:
		return "exiting"
	default:
		return "unknown"
	}
}
