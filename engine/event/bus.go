package event

// Bus groups the typed event streams a window produces so they can be threaded
// through component constructors as one value.
type Bus struct {
	Keys          Dispatcher[KeyEvent]
	PointerButton Dispatcher[PointerButtonEvent]
	PointerMove   Dispatcher[PointerMoveEvent]
	Capture       Dispatcher[PointerCaptureEvent]
	Resize        Dispatcher[ResizeEvent]
}

// NewBus creates a Bus with an empty dispatcher for every stream.
//
// Returns:
//   - *Bus: the new bus
func NewBus() *Bus {
	return &Bus{
		Keys:          NewDispatcher[KeyEvent](),
		PointerButton: NewDispatcher[PointerButtonEvent](),
		PointerMove:   NewDispatcher[PointerMoveEvent](),
		Capture:       NewDispatcher[PointerCaptureEvent](),
		Resize:        NewDispatcher[ResizeEvent](),
	}
}
