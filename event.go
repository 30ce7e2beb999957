package motion

// --- Listener registry ---

type listener[T any] struct {
	id uint32
	fn func(T)
}

// remover is implemented by every Event instantiation so a Handle can
// unsubscribe without knowing the payload type.
type remover interface {
	remove(id uint32)
}

// Handle allows removing a registered listener.
type Handle struct {
	id    uint32
	event remover
}

// Stop unregisters the listener so it no longer fires. Calling Stop more than
// once, or on the zero Handle, is a no-op.
func (h Handle) Stop() {
	if h.event == nil {
		return
	}
	h.event.remove(h.id)
}

// Event is a synchronous publish/subscribe channel for values of type T.
//
// Emit calls every listener registered at the time of the call, in
// subscription order, on the caller's goroutine. Listeners added or removed
// while an Emit is in progress take effect from the next Emit. The zero value
// is ready to use. Event is not safe for concurrent use.
type Event[T any] struct {
	listeners []listener[T]
	nextID    uint32
}

// On registers fn and returns a handle that unregisters it.
func (e *Event[T]) On(fn func(T)) Handle {
	e.nextID++
	e.listeners = append(e.listeners, listener[T]{id: e.nextID, fn: fn})
	return Handle{id: e.nextID, event: e}
}

// Once returns a channel that receives the next emitted value. The listener
// removes itself after the first delivery.
func (e *Event[T]) Once() <-chan T {
	ch := make(chan T, 1)
	var h Handle
	h = e.On(func(v T) {
		h.Stop()
		select {
		case ch <- v:
		default:
		}
	})
	return ch
}

// Off removes every listener.
func (e *Event[T]) Off() {
	e.listeners = nil
}

// Emit delivers v to the current listeners.
func (e *Event[T]) Emit(v T) {
	// remove never mutates the backing array in place, so this header stays a
	// stable snapshot even if listeners unsubscribe during dispatch.
	snapshot := e.listeners
	for i := range snapshot {
		snapshot[i].fn(v)
	}
}

// Len returns the number of registered listeners.
func (e *Event[T]) Len() int {
	return len(e.listeners)
}

func (e *Event[T]) remove(id uint32) {
	for i := range e.listeners {
		if e.listeners[i].id == id {
			next := make([]listener[T], 0, len(e.listeners)-1)
			next = append(next, e.listeners[:i]...)
			next = append(next, e.listeners[i+1:]...)
			e.listeners = next
			return
		}
	}
}
