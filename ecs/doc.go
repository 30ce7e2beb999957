// Package ecs bridges motion notifications into a [Donburi] world.
//
// Value changes of a SharedValues group are published as typed
// [ValueEvent]s, and controller state transitions as [StatusEvent]s. Donburi
// queues published events; systems receive them when the event type's
// ProcessEvents runs, typically once per game tick.
//
// Usage:
//
//	bridge := ecs.AttachController(world, ecs.ValueEventType, ctrl)
//	defer bridge.Detach()
//	ecs.ValueEventType.Subscribe(world, func(w donburi.World, e ecs.ValueEvent[float64]) { ... })
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
