package window

import (
	"github.com/Carmen-Shannon/oxy-fps/engine/event"
	"github.com/Carmen-Shannon/oxy-fps/engine/hud"
)

// Window provides platform windowing, input events and pointer capture.
// Input is published on the event.Bus given to Attach rather than through per-event callbacks,
// so scene components subscribe to exactly the streams they need.
type Window interface {
	// Attach routes keyboard, pointer, capture and resize events to bus.
	// Passing nil detaches the window from its current bus.
	//
	// Parameters:
	//   - bus: the bus to publish on
	Attach(bus *event.Bus)

	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetTitle replaces the window title.
	//
	// Parameters:
	//   - title: the new title
	SetTitle(title string)

	// RequestCapture asks the OS to lock and hide the pointer. The result is published later
	// as an event.PointerCaptureEvent.
	//
	// Returns:
	//   - error: error if the pointer cannot be captured
	RequestCapture() error

	// ReleaseCapture gives the pointer back to the OS.
	ReleaseCapture()

	// Captured reports whether the pointer is currently captured.
	//
	// Returns:
	//   - bool: true if captured
	Captured() bool

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls the update callback each iteration.
	ProcessMessages()

	// Width returns the current drawable width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current drawable height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// TitleStatus returns a status sink that shows each status in the window title after base.
//
// Parameters:
//   - w: the window whose title is updated
//   - base: the fixed title prefix
//
// Returns:
//   - hud.StatusSink: the sink
func TitleStatus(w Window, base string) hud.StatusSink {
	return hud.StatusFunc(func(text string) {
		if text == "" {
			w.SetTitle(base)
			return
		}
		w.SetTitle(base + " - " + text)
	})
}
