package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/phanxgames/motion"
)

// ValueEvent is published for every change of an animated value.
type ValueEvent[T any] struct {
	// Source identifies the publisher, usually a controller ID.
	Source string
	Key    string
	Value  T
}

// StatusEvent is published for every controller state transition.
type StatusEvent struct {
	Source string
	State  motion.ControllerState
}

// ValueEventType is the Donburi event type for float64 values, the usual
// payload of animations. Use events.NewEventType for other value types.
var ValueEventType = events.NewEventType[ValueEvent[float64]]()

// StatusEventType is the Donburi event type for controller state changes.
var StatusEventType = events.NewEventType[StatusEvent]()

// Bridge forwards motion notifications into a Donburi world.
type Bridge[T any] struct {
	world   donburi.World
	values  *events.EventType[ValueEvent[T]]
	source  string
	handles []motion.Handle
}

// Attach publishes every value change of group to world as events of type
// et, tagged with source.
func Attach[T any](world donburi.World, et *events.EventType[ValueEvent[T]], source string, group *motion.SharedValues[T]) *Bridge[T] {
	b := &Bridge[T]{world: world, values: et, source: source}
	b.handles = append(b.handles,
		group.OnValue(func(kv motion.KeyValue[T]) {
			b.values.Publish(b.world, ValueEvent[T]{Source: b.source, Key: kv.Key, Value: kv.Value})
		}),
		group.OnDestroy(b.Detach),
	)
	return b
}

// AttachController publishes ctrl's value changes as events of type et and
// its state transitions as StatusEventType events. Events are tagged with
// the controller ID.
func AttachController[T any](world donburi.World, et *events.EventType[ValueEvent[T]], ctrl *motion.Controller[T]) *Bridge[T] {
	b := Attach(world, et, ctrl.ID().String(), ctrl.Values())
	b.handles = append(b.handles, ctrl.OnStatus(func(s motion.ControllerState) {
		StatusEventType.Publish(b.world, StatusEvent{Source: b.source, State: s})
	}))
	return b
}

// Source returns the tag attached to published events.
func (b *Bridge[T]) Source() string {
	return b.source
}

// Detach stops forwarding. Calling it more than once is a no-op.
func (b *Bridge[T]) Detach() {
	handles := b.handles
	b.handles = nil
	for _, h := range handles {
		h.Stop()
	}
}
