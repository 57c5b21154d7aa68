package immersive

import (
	"context"
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-fps/common"
	"github.com/Carmen-Shannon/oxy-fps/engine/event"
)

// previewRuntime simulates a headset on the desktop: a key toggles the session between
// active and inactive, walking through the entering and exiting states.
type previewRuntime struct {
	keys      event.Dispatcher[event.KeyEvent]
	toggleKey uint32
}

// NewPreviewRuntime creates a Runtime whose sessions are toggled by a key on keys.
// The default toggle key is F.
//
// Parameters:
//   - keys: the key stream the toggle key is read from
//   - options: functional options to configure the runtime
//
// Returns:
//   - Runtime: the preview runtime
func NewPreviewRuntime(keys event.Dispatcher[event.KeyEvent], options ...PreviewBuilderOption) Runtime {
	p := &previewRuntime{keys: keys, toggleKey: common.KeyF}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *previewRuntime) Supported() bool {
	return p.keys != nil
}

func (p *previewRuntime) CreateSession(ctx context.Context, opts Options) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.keys == nil {
		return nil, ErrUnsupported
	}
	s := &previewSession{
		keys:   p.keys,
		states: event.NewDispatcher[event.SessionState](),
		floors: len(opts.FloorMeshes),
	}
	s.sub = p.keys.Subscribe(func(ev event.KeyEvent) {
		if ev.Action == event.KeyDown && !ev.Repeat && ev.Code == p.toggleKey {
			s.Toggle()
		}
	})
	log.Printf("[Immersive] preview session ready (%d floor meshes, teleportation disabled: %v)", s.floors, opts.DisableTeleportation)
	return s, nil
}

// previewSession is the Session created by the preview runtime.
type previewSession struct {
	mu     sync.Mutex
	keys   event.Dispatcher[event.KeyEvent]
	sub    event.Subscription
	states event.Dispatcher[event.SessionState]
	state  event.SessionState
	floors int
	ended  bool
}

func (s *previewSession) State() event.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *previewSession) States() event.Dispatcher[event.SessionState] {
	return s.states
}

// Toggle enters the session when inactive and exits it when active.
func (s *previewSession) Toggle() {
	s.mu.Lock()
	if s.ended {
		s.mu.Unlock()
		return
	}
	var seq []event.SessionState
	if s.state == event.SessionActive {
		seq = []event.SessionState{event.SessionExiting, event.SessionInactive}
	} else {
		seq = []event.SessionState{event.SessionEntering, event.SessionActive}
	}
	s.mu.Unlock()

	for _, st := range seq {
		s.mu.Lock()
		s.state = st
		s.mu.Unlock()
		s.states.Emit(st)
	}
}

func (s *previewSession) End() {
	s.mu.Lock()
	if s.ended {
		s.mu.Unlock()
		return
	}
	s.ended = true
	wasActive := s.state == event.SessionActive
	s.state = event.SessionInactive
	s.mu.Unlock()

	s.keys.Unsubscribe(s.sub)
	if wasActive {
		s.states.Emit(event.SessionExiting)
		s.states.Emit(event.SessionInactive)
	}
}
