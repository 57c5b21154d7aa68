package input

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-fps/engine/event"
	"github.com/Carmen-Shannon/oxy-fps/engine/hud"
	"github.com/Carmen-Shannon/oxy-fps/engine/scene"
)

// fakeCapture grants capture by emitting on the scene's capture stream, like the OS would.
type fakeCapture struct {
	bus      *event.Bus
	err      error
	requests int
	releases int
}

func (f *fakeCapture) RequestCapture() error {
	f.requests++
	if f.err != nil {
		return f.err
	}
	f.bus.Capture.Emit(event.PointerCaptureEvent{Captured: true})
	return nil
}

func (f *fakeCapture) ReleaseCapture() {
	f.releases++
	f.bus.Capture.Emit(event.PointerCaptureEvent{Captured: false})
}

var primaryDown = event.PointerButtonEvent{Button: 0, Pressed: true}

func setup(t *testing.T) (scene.Context, *fakeCapture, hud.Overlay, ModeController) {
	t.Helper()
	sc := scene.NewContext()
	t.Cleanup(sc.Dispose)
	fc := &fakeCapture{bus: sc.Bus()}
	ov := hud.NewOverlay()
	mc := NewModeController(sc, fc, ov)
	mc.Attach()
	return sc, fc, ov, mc
}

func assertHUD(t *testing.T, ov hud.Overlay, info, reticle bool) {
	t.Helper()
	if ov.InfoVisible() != info || ov.ReticleVisible() != reticle {
		t.Errorf("hud info=%v reticle=%v, want %v/%v", ov.InfoVisible(), ov.ReticleVisible(), info, reticle)
	}
}

func TestPointerLockCycle(t *testing.T) {
	sc, fc, ov, mc := setup(t)

	if mc.Mode() != ModeFree {
		t.Fatalf("initial mode = %v, want free", mc.Mode())
	}
	assertHUD(t, ov, true, false)

	sc.Bus().PointerButton.Emit(primaryDown)
	if fc.requests != 1 || mc.Mode() != ModePointerLocked {
		t.Fatalf("after click: requests=%d mode=%v", fc.requests, mc.Mode())
	}
	assertHUD(t, ov, false, true)

	sc.Bus().PointerButton.Emit(primaryDown)
	if fc.requests != 1 {
		t.Errorf("click while locked requested capture again")
	}

	sc.Bus().Capture.Emit(event.PointerCaptureEvent{Captured: false})
	if mc.Mode() != ModeFree {
		t.Fatalf("after release: mode=%v, want free", mc.Mode())
	}
	assertHUD(t, ov, true, false)
}

func TestOnlyPrimaryPressRequestsCapture(t *testing.T) {
	_, fc, _, mc := setup(t)
	for _, ev := range []event.PointerButtonEvent{
		{Button: 1, Pressed: true},
		{Button: 2, Pressed: true},
		{Button: 0, Pressed: false},
	} {
		if mc.HandlePointerDown(ev) {
			t.Errorf("HandlePointerDown(%+v) requested capture", ev)
		}
	}
	if fc.requests != 0 {
		t.Errorf("requests = %d, want 0", fc.requests)
	}
}

func TestImmersiveSupersedesPointerLock(t *testing.T) {
	sc, fc, ov, mc := setup(t)
	states := event.NewDispatcher[event.SessionState]()
	mc.WatchSession(states)

	sc.Bus().PointerButton.Emit(primaryDown)
	if mc.Mode() != ModePointerLocked {
		t.Fatalf("mode = %v, want pointer-locked", mc.Mode())
	}

	states.Emit(event.SessionEntering)
	if mc.Mode() != ModePointerLocked {
		t.Fatalf("entering should not change mode, got %v", mc.Mode())
	}
	states.Emit(event.SessionActive)
	if mc.Mode() != ModeImmersive {
		t.Fatalf("mode = %v, want immersive", mc.Mode())
	}
	if fc.releases != 1 {
		t.Errorf("entering immersive should release pointer capture, releases=%d", fc.releases)
	}
	assertHUD(t, ov, false, false)

	sc.Bus().PointerButton.Emit(primaryDown)
	if fc.requests != 1 {
		t.Errorf("capture requested while immersive")
	}
	sc.Bus().Capture.Emit(event.PointerCaptureEvent{Captured: true})
	if mc.Mode() != ModeImmersive {
		t.Errorf("capture event while immersive changed mode to %v", mc.Mode())
	}
	assertHUD(t, ov, false, false)

	states.Emit(event.SessionExiting)
	states.Emit(event.SessionInactive)
	if mc.Mode() != ModeFree {
		t.Fatalf("mode after exit = %v, want free", mc.Mode())
	}
	assertHUD(t, ov, true, false)

	sc.Bus().PointerButton.Emit(primaryDown)
	if fc.requests != 2 || mc.Mode() != ModePointerLocked {
		t.Errorf("capture not available again after exit: requests=%d mode=%v", fc.requests, mc.Mode())
	}
}

func TestCaptureUnavailableIsIgnored(t *testing.T) {
	sc := scene.NewContext()
	defer sc.Dispose()
	fc := &fakeCapture{bus: sc.Bus(), err: ErrCaptureUnavailable}
	mc := NewModeController(sc, fc, nil)

	for range 3 {
		if mc.HandlePointerDown(primaryDown) {
			t.Errorf("HandlePointerDown reported a request that failed")
		}
	}
	if mc.Mode() != ModeFree {
		t.Errorf("mode = %v, want free", mc.Mode())
	}

	nilCapture := NewModeController(sc, nil, nil)
	if nilCapture.HandlePointerDown(primaryDown) {
		t.Errorf("nil capture API requested capture")
	}
}

func TestCloseOnDispose(t *testing.T) {
	sc := scene.NewContext()
	fc := &fakeCapture{bus: sc.Bus(), err: errors.New("unused")}
	mc := NewModeController(sc, fc, nil)
	mc.Attach()
	mc.Attach()
	if sc.Bus().PointerButton.Len() != 1 || sc.Bus().Capture.Len() != 1 {
		t.Fatalf("Attach twice should subscribe once")
	}

	sc.Dispose()
	if sc.Bus().PointerButton.Len() != 0 || sc.Bus().Capture.Len() != 0 {
		t.Errorf("subscriptions survived scene teardown")
	}
	mc.HandleCaptureChange(event.PointerCaptureEvent{Captured: true})
	if mc.Mode() != ModeFree {
		t.Errorf("closed controller changed mode to %v", mc.Mode())
	}
}
