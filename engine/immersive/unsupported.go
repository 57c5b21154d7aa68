package immersive

import "context"

// unsupported is a Runtime for devices without immersive hardware.
type unsupported struct{}

// Unsupported returns a Runtime that never creates sessions.
func Unsupported() Runtime {
	return unsupported{}
}

func (unsupported) Supported() bool {
	return false
}

func (unsupported) CreateSession(context.Context, Options) (Session, error) {
	return nil, ErrUnsupported
}
