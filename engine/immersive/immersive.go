// Package immersive negotiates head-mounted sessions. A session reports its lifecycle on a
// typed state stream; while it is active, it owns input instead of the desktop pointer.
package immersive

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Carmen-Shannon/oxy-fps/common"
	"github.com/Carmen-Shannon/oxy-fps/engine/event"
	"github.com/Carmen-Shannon/oxy-fps/engine/scene"
	"github.com/Carmen-Shannon/oxy-fps/engine/task"
)

// ErrUnsupported is returned by runtimes that cannot present immersive sessions on this device.
var ErrUnsupported = errors.New("immersive sessions are not supported on this device")

// Status texts reported by Negotiate.
const (
	StatusInitializing = "Initializing XR..."
	StatusReady        = "XR Ready!"
	StatusFailed       = "XR Failed (Check Device)"
	StatusNotSupported = "XR Not Supported"
	statusErrorPrefix  = "XR Error: "
)

// Options configure a new session.
type Options struct {
	// FloorMeshes are the surfaces the session may place the user on.
	FloorMeshes []scene.Mesh
	// DisableTeleportation turns off locomotion by pointing at the floor.
	DisableTeleportation bool
}

// Session is a running immersive session.
type Session interface {
	// State returns the current lifecycle state.
	//
	// Returns:
	//   - event.SessionState: the state
	State() event.SessionState

	// States returns the stream of lifecycle changes.
	//
	// Returns:
	//   - event.Dispatcher[event.SessionState]: the state stream
	States() event.Dispatcher[event.SessionState]

	// End stops presenting and releases the session. Later calls are no-ops.
	End()
}

// Runtime creates immersive sessions.
type Runtime interface {
	// Supported reports whether the device can present immersive sessions at all.
	//
	// Returns:
	//   - bool: true if sessions can be requested
	Supported() bool

	// CreateSession negotiates a session. It may block while the device is prepared.
	// A nil Session with a nil error means the runtime declined without a specific error.
	//
	// Parameters:
	//   - ctx: bounds the negotiation
	//   - opts: session options
	//
	// Returns:
	//   - Session: the session, or nil
	//   - error: error if negotiation failed
	CreateSession(ctx context.Context, opts Options) (Session, error)
}

// Outcome is the result of Negotiate. Session is nil unless Status is StatusReady.
type Outcome struct {
	Session Session
	Status  string
	// Err is a *common.RecoverableFeatureError when the session could not be started.
	Err error
}

// Negotiate requests a session from rt. Every runtime failure is converted into a degraded
// Outcome; only cancellation of ctx is returned as an error.
//
// Parameters:
//   - ctx: bounds the negotiation
//   - rt: the runtime, nil meaning unsupported
//   - opts: session options
//   - r: optional runner the negotiation is awaited on
//
// Returns:
//   - Outcome: the session or the degraded status
//   - error: ctx.Err() if cancelled
func Negotiate(ctx context.Context, rt Runtime, opts Options, r task.Runner) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}
	if rt == nil || !rt.Supported() {
		log.Println("[Immersive] immersive sessions are not supported by this device")
		return Outcome{Status: StatusNotSupported, Err: feature(ErrUnsupported)}, nil
	}

	create := func() (s Session, err error) {
		defer func() {
			if p := recover(); p != nil {
				err = fmt.Errorf("immersive runtime panicked: %v", p)
			}
		}()
		return rt.CreateSession(ctx, opts)
	}

	var (
		s   Session
		err error
	)
	if r != nil {
		s, err = task.Await(ctx, r, create)
	} else {
		s, err = create()
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		if s != nil {
			s.End()
		}
		return Outcome{}, ctxErr
	}

	switch {
	case errors.Is(err, ErrUnsupported):
		log.Println("[Immersive] immersive sessions are not supported by this device")
		return Outcome{Status: StatusNotSupported, Err: feature(err)}, nil
	case err != nil:
		log.Printf("[Immersive] error during immersive initialization: %v", err)
		return Outcome{Status: statusErrorPrefix + err.Error(), Err: feature(err)}, nil
	case s == nil:
		log.Println("[Immersive] immersive session could not be initialized")
		return Outcome{Status: StatusFailed, Err: feature(errors.New("runtime returned no session"))}, nil
	}

	log.Println("[Immersive] immersive session created")
	return Outcome{Session: s, Status: StatusReady}, nil
}

func feature(err error) error {
	return &common.RecoverableFeatureError{Component: "immersive", Err: err}
}
