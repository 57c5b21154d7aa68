// Package input decides who owns the pointer: the desktop (free or captured) or an
// immersive session, and keeps the HUD in step with that decision.
package input

import (
	"errors"
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-fps/common"
	"github.com/Carmen-Shannon/oxy-fps/engine/event"
	"github.com/Carmen-Shannon/oxy-fps/engine/hud"
	"github.com/Carmen-Shannon/oxy-fps/engine/scene"
)

// ErrCaptureUnavailable is returned by PointerCapture implementations that cannot lock the pointer.
var ErrCaptureUnavailable = errors.New("pointer capture API not available")

// Mode is the current owner of pointer input.
type Mode int

const (
	// ModeFree leaves the pointer to the OS.
	ModeFree Mode = iota
	// ModePointerLocked binds pointer motion to the camera.
	ModePointerLocked
	// ModeImmersive hands input to an immersive session.
	ModeImmersive
)

func (m Mode) String() string {
	switch m {
	case ModeFree:
		return "free"
	case ModePointerLocked:
		return "pointer-locked"
	case ModeImmersive:
		return "immersive"
	default:
		return "unknown"
	}
}

// PointerCapture is the OS pointer-lock API. The outcome of RequestCapture arrives later
// as a PointerCaptureEvent.
type PointerCapture interface {
	// RequestCapture asks the OS to lock the pointer.
	//
	// Returns:
	//   - error: ErrCaptureUnavailable if the platform cannot lock the pointer
	RequestCapture() error

	// ReleaseCapture gives the pointer back to the OS.
	ReleaseCapture()
}

// modeController is the implementation of the ModeController interface.
// It is driven from the scene's loop goroutine only.
type modeController struct {
	sc       scene.Context
	capture  PointerCapture
	overlay  hud.Overlay
	button   int
	mode     Mode
	locked   bool
	warnOnce sync.Once
	subs     []func()
	attached bool
	closed   bool
}

// ModeController is the Free / PointerLocked / Immersive state machine.
type ModeController interface {
	// Attach subscribes to the scene's pointer-button and capture streams and to scene teardown.
	Attach()

	// WatchSession follows the lifecycle of an immersive session.
	//
	// Parameters:
	//   - states: the session state stream
	WatchSession(states event.Dispatcher[event.SessionState])

	// HandlePointerDown requests pointer capture on a primary press while free.
	//
	// Parameters:
	//   - ev: the button event
	//
	// Returns:
	//   - bool: true if capture was requested
	HandlePointerDown(ev event.PointerButtonEvent) bool

	// HandleCaptureChange applies an OS capture notification.
	//
	// Parameters:
	//   - ev: the capture event
	HandleCaptureChange(ev event.PointerCaptureEvent)

	// HandleSessionState applies an immersive session state change.
	//
	// Parameters:
	//   - st: the new session state
	HandleSessionState(st event.SessionState)

	// Mode returns the current mode.
	//
	// Returns:
	//   - Mode: the mode
	Mode() Mode

	// Close unsubscribes from every stream.
	Close()
}

var _ ModeController = &modeController{}

// NewModeController creates a ModeController in ModeFree with the overlay shown and the reticle hidden.
//
// Parameters:
//   - sc: the scene supplying the event streams
//   - capture: the pointer-lock API, nil if the platform has none
//   - overlay: the HUD overlay to drive
//   - options: functional options to configure the controller
//
// Returns:
//   - ModeController: the new controller
func NewModeController(sc scene.Context, capture PointerCapture, overlay hud.Overlay, options ...ModeControllerBuilderOption) ModeController {
	mc := &modeController{
		sc:      sc,
		capture: capture,
		overlay: overlay,
		button:  common.MouseButtonPrimary,
	}
	for _, opt := range options {
		opt(mc)
	}
	if mc.overlay == nil {
		mc.overlay = hud.NewOverlay()
	}
	mc.overlay.Show(true, false)
	return mc
}

func (mc *modeController) Attach() {
	if mc.closed || mc.attached {
		return
	}
	mc.attached = true
	bus := mc.sc.Bus()
	btn := bus.PointerButton.Subscribe(func(ev event.PointerButtonEvent) { mc.HandlePointerDown(ev) })
	capt := bus.Capture.Subscribe(mc.HandleCaptureChange)
	mc.subs = append(mc.subs,
		func() { bus.PointerButton.Unsubscribe(btn) },
		func() { bus.Capture.Unsubscribe(capt) },
	)
	mc.sc.OnDispose(mc.Close)
}

func (mc *modeController) WatchSession(states event.Dispatcher[event.SessionState]) {
	if mc.closed || states == nil {
		return
	}
	sub := states.Subscribe(mc.HandleSessionState)
	mc.subs = append(mc.subs, func() { states.Unsubscribe(sub) })
}

func (mc *modeController) HandlePointerDown(ev event.PointerButtonEvent) bool {
	if mc.closed || !ev.Pressed || ev.Button != mc.button {
		return false
	}
	if mc.locked || mc.mode == ModeImmersive {
		return false
	}
	if mc.capture == nil {
		mc.warnUnavailable(ErrCaptureUnavailable)
		return false
	}
	if err := mc.capture.RequestCapture(); err != nil {
		mc.warnUnavailable(err)
		return false
	}
	return true
}

func (mc *modeController) HandleCaptureChange(ev event.PointerCaptureEvent) {
	if mc.closed {
		return
	}
	if ev.Captured && mc.mode != ModeImmersive {
		mc.locked = true
		mc.mode = ModePointerLocked
		mc.overlay.Show(false, true)
		log.Println("[Input] pointer locked")
		return
	}

	mc.locked = false
	if mc.mode == ModePointerLocked {
		mc.mode = ModeFree
	}
	mc.overlay.Show(mc.mode != ModeImmersive, false)
	log.Println("[Input] pointer unlocked or immersive")
}

func (mc *modeController) HandleSessionState(st event.SessionState) {
	if mc.closed {
		return
	}
	switch st {
	case event.SessionActive:
		if mc.mode == ModeImmersive {
			return
		}
		wasLocked := mc.locked
		mc.mode = ModeImmersive
		mc.locked = false
		mc.overlay.Show(false, false)
		if wasLocked && mc.capture != nil {
			mc.capture.ReleaseCapture()
		}
		log.Println("[Input] entered immersive mode")
	case event.SessionInactive:
		if mc.mode != ModeImmersive {
			return
		}
		mc.mode = ModeFree
		mc.overlay.Show(true, false)
		log.Println("[Input] left immersive mode")
	}
}

func (mc *modeController) Mode() Mode {
	return mc.mode
}

func (mc *modeController) Close() {
	if mc.closed {
		return
	}
	mc.closed = true
	for _, unsub := range mc.subs {
		unsub()
	}
	mc.subs = nil
}

func (mc *modeController) warnUnavailable(err error) {
	mc.warnOnce.Do(func() {
		log.Printf("[Input] %v", &common.IgnorableInputError{Component: "pointer capture", Err: err})
	})
}
