package motion

import (
	"fmt"
	"time"
)

// Status reports whether a coroutine suspended or completed.
type Status uint8

const (
	// Pending means the coroutine yielded and wants to be stepped again on
	// the next frame.
	Pending Status = iota
	// Done means the coroutine completed. It must not be stepped again.
	Done
)

// String returns a human-readable representation of the status.
func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// FrameInfo is passed to every coroutine step.
type FrameInfo struct {
	// DeltaTime is the time elapsed since the previous frame.
	DeltaTime time.Duration

	onClear func(func())
}

// OnClear registers fn to run when the driving Controller is cleared or
// stopped. Callbacks run in reverse registration order. Outside a Controller
// OnClear does nothing.
func (f FrameInfo) OnClear(fn func()) {
	if f.onClear != nil && fn != nil {
		f.onClear(fn)
	}
}

// Coroutine is a resumable animation step function.
//
// Each call to Step resumes the coroutine for one frame. It either suspends by
// returning Pending, or completes by returning Done. A non-nil error also ends
// the coroutine; combinators return it to their caller unchanged.
//
// The first Step starts the coroutine. The DeltaTime it carries belongs to the
// frame on which the coroutine began, so time-based coroutines only count the
// deltas of later steps. This lets a combinator start a child partway through a
// frame without the child consuming that frame's time twice.
//
// Coroutines are single-use: once Done they stay Done. Build a fresh tree for
// every run, which is what the Controller does by calling its animation
// factory on each start.
type Coroutine interface {
	Step(info FrameInfo) (Status, error)
}

// StepFunc adapts an ordinary function to the Coroutine interface.
type StepFunc func(info FrameInfo) (Status, error)

// Step calls f(info).
func (f StepFunc) Step(info FrameInfo) (Status, error) {
	return f(info)
}

// lazy defers building a coroutine until a combinator starts.
type lazy struct {
	factory func() Coroutine
	co      Coroutine
	built   bool
}

// Lazy wraps a factory. Combinators call the factory exactly once, when they
// start; stepping a Lazy directly builds it on the first step.
func Lazy(factory func() Coroutine) Coroutine {
	if factory == nil {
		panic("motion: nil coroutine factory")
	}
	return &lazy{factory: factory}
}

func (l *lazy) materialize() Coroutine {
	if !l.built {
		l.co = l.factory()
		l.built = true
	}
	return l.co
}

func (l *lazy) Step(info FrameInfo) (Status, error) {
	return step(l.materialize(), info)
}

// materialize resolves every Lazy child.
func materialize(children []Coroutine) []Coroutine {
	out := make([]Coroutine, len(children))
	for i, c := range children {
		if l, ok := c.(*lazy); ok {
			out[i] = l.materialize()
			continue
		}
		out[i] = c
	}
	return out
}

// step advances c, treating a nil coroutine as already complete.
func step(c Coroutine, info FrameInfo) (Status, error) {
	if c == nil {
		return Done, nil
	}
	return c.Step(info)
}
