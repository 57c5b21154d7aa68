package event

import "sync"

// Subscription identifies a handler registered on a Dispatcher.
// The zero value is never returned by Subscribe and is safe to Unsubscribe.
type Subscription uint64

// dispatcher is the implementation of the Dispatcher interface.
type dispatcher[T any] struct {
	mu       sync.Mutex
	next     Subscription
	order    []Subscription
	handlers map[Subscription]func(T)
}

// Dispatcher is a typed event stream. Components subscribe explicitly and receive every
// event emitted after their subscription, in subscription order.
//
// Emit runs handlers synchronously on the caller's goroutine so each event is processed
// to completion before the next one is delivered.
type Dispatcher[T any] interface {
	// Subscribe registers a handler for future events.
	//
	// Parameters:
	//   - handler: the function invoked with each emitted event
	//
	// Returns:
	//   - Subscription: the handle used to unsubscribe
	Subscribe(handler func(T)) Subscription

	// Unsubscribe removes a previously registered handler. Unknown handles are ignored.
	//
	// Parameters:
	//   - sub: the subscription to remove
	Unsubscribe(sub Subscription)

	// Emit delivers an event to every current subscriber.
	//
	// Parameters:
	//   - ev: the event value
	Emit(ev T)

	// Len returns the number of active subscriptions.
	//
	// Returns:
	//   - int: the subscriber count
	Len() int
}

var _ Dispatcher[int] = &dispatcher[int]{}

// NewDispatcher creates an empty Dispatcher for events of type T.
//
// Returns:
//   - Dispatcher[T]: the new dispatcher
func NewDispatcher[T any]() Dispatcher[T] {
	return &dispatcher[T]{
		handlers: make(map[Subscription]func(T)),
	}
}

func (d *dispatcher[T]) Subscribe(handler func(T)) Subscription {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.next++
	d.handlers[d.next] = handler
	d.order = append(d.order, d.next)
	return d.next
}

func (d *dispatcher[T]) Unsubscribe(sub Subscription) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.handlers[sub]; !ok {
		return
	}
	delete(d.handlers, sub)
	for i, s := range d.order {
		if s == sub {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

func (d *dispatcher[T]) Emit(ev T) {
	// Snapshot so handlers may subscribe or unsubscribe while being dispatched.
	d.mu.Lock()
	handlers := make([]func(T), 0, len(d.order))
	for _, s := range d.order {
		handlers = append(handlers, d.handlers[s])
	}
	d.mu.Unlock()

	for _, h := range handlers {
		h(ev)
	}
}

func (d *dispatcher[T]) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.handlers)
}
