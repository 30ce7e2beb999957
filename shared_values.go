package motion

import (
	"fmt"
	"sort"
)

// KeyValue pairs a state key with the value it changed to.
type KeyValue[T any] struct {
	Key   string
	Value T
}

// SharedValues is a named group of SharedValues created from an initial
// state map. It forwards each child's value notifications as group
// notifications and can produce a snapshot of every current value.
//
// Keys are fixed at construction and iterated in sorted order.
type SharedValues[T any] struct {
	keys    []string
	current map[string]*SharedValue[T]

	handles     []Handle
	initialized bool

	valueEvt   Event[KeyValue[T]]
	changeEvt  Event[map[string]T]
	destroyEvt Event[struct{}]
}

// NewSharedValues creates one SharedValue per key of initial and starts
// forwarding their notifications.
func NewSharedValues[T any](initial map[string]T) *SharedValues[T] {
	s := &SharedValues[T]{
		keys:    make([]string, 0, len(initial)),
		current: make(map[string]*SharedValue[T], len(initial)),
	}
	for key, v := range initial {
		s.keys = append(s.keys, key)
		s.current[key] = NewSharedValue(v)
	}
	sort.Strings(s.keys)
	s.Initialize()
	return s
}

// Keys returns the state keys in sorted order.
func (s *SharedValues[T]) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Current returns the SharedValue for key. Panics if key is not part of the
// state.
func (s *SharedValues[T]) Current(key string) *SharedValue[T] {
	v, ok := s.current[key]
	if !ok {
		panic(fmt.Sprintf("motion: unknown state key %q", key))
	}
	return v
}

// Lookup returns the SharedValue for key and whether it exists.
func (s *SharedValues[T]) Lookup(key string) (*SharedValue[T], bool) {
	v, ok := s.current[key]
	return v, ok
}

// Values returns a fresh snapshot of every current value.
func (s *SharedValues[T]) Values() map[string]T {
	out := make(map[string]T, len(s.keys))
	for _, key := range s.keys {
		out[key] = s.current[key].value
	}
	return out
}

// Initialize (re)establishes forwarding from each child to the group.
// Calling it on an initialized group replaces the existing subscriptions.
func (s *SharedValues[T]) Initialize() {
	s.unsubscribe()
	s.handles = make([]Handle, 0, len(s.keys))
	for _, key := range s.keys {
		s.handles = append(s.handles, s.current[key].OnValue(func(v T) {
			s.valueEvt.Emit(KeyValue[T]{Key: key, Value: v})
			s.changeEvt.Emit(s.Values())
		}))
	}
	s.initialized = true
}

// Destroy notifies destroy listeners and then stops forwarding child
// notifications. Calling Destroy on a group that is not initialized is a
// no-op.
func (s *SharedValues[T]) Destroy() {
	if !s.initialized {
		return
	}
	s.destroyEvt.Emit(struct{}{})
	s.unsubscribe()
	s.initialized = false
}

// Clear resets every child to its initial value.
func (s *SharedValues[T]) Clear() {
	for _, key := range s.keys {
		s.current[key].Clear()
	}
}

// OnValue registers fn to receive the key and new value of every child
// change.
func (s *SharedValues[T]) OnValue(fn func(KeyValue[T])) Handle {
	return s.valueEvt.On(fn)
}

// OnChange registers fn to receive a full snapshot after every child change.
func (s *SharedValues[T]) OnChange(fn func(map[string]T)) Handle {
	return s.changeEvt.On(fn)
}

// OnDestroy registers fn to run when the group is destroyed.
func (s *SharedValues[T]) OnDestroy(fn func()) Handle {
	return s.destroyEvt.On(func(struct{}) { fn() })
}

func (s *SharedValues[T]) unsubscribe() {
	for _, h := range s.handles {
		h.Stop()
	}
	s.handles = nil
}
