// Package motiontest provides a fake clock, a manually driven frame scheduler
// and a harness combining both, for deterministic tests of motion
// controllers.
package motiontest

import (
	"time"

	"github.com/phanxgames/motion"
)

// ManualScheduler is a FrameScheduler whose frames are produced by calling
// Flush.
type ManualScheduler struct {
	motion.FrameQueue
}

// NewManualScheduler returns an empty scheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Harness drives controllers in simulated time. Every Frame advances the
// clock and then runs the frame callbacks queued on the scheduler.
type Harness struct {
	Clock     *FakeClock
	Scheduler *ManualScheduler

	elapsed time.Duration
	frames  int
}

// New returns a harness with a fresh clock and scheduler.
func New() *Harness {
	return &Harness{
		Clock:     NewFakeClock(),
		Scheduler: NewManualScheduler(),
	}
}

// Options returns the controller options that bind a controller to the
// harness.
func (h *Harness) Options(extra ...motion.Option) []motion.Option {
	opts := []motion.Option{
		motion.WithClock(h.Clock),
		motion.WithScheduler(h.Scheduler),
	}
	return append(opts, extra...)
}

// Frame advances the clock by dt and runs one frame. Returns the number of
// callbacks run.
func (h *Harness) Frame(dt time.Duration) int {
	h.Clock.Advance(dt)
	h.elapsed += dt
	h.frames++
	return h.Scheduler.Flush()
}

// Run produces frames of length step until total has been simulated. A final
// shorter frame covers any remainder. Returns the number of frames run.
func (h *Harness) Run(total, step time.Duration) int {
	if step <= 0 {
		panic("motiontest: non-positive step")
	}
	n := 0
	for total > 0 {
		dt := step
		if total < step {
			dt = total
		}
		h.Frame(dt)
		total -= dt
		n++
	}
	return n
}

// RunUntilIdle produces frames of length step until no frame is requested,
// or limit frames have run. It returns the number of frames run and whether
// the scheduler went idle.
func (h *Harness) RunUntilIdle(step time.Duration, limit int) (int, bool) {
	for n := 0; n < limit; n++ {
		if h.Scheduler.Pending() == 0 {
			return n, true
		}
		h.Frame(step)
	}
	return limit, h.Scheduler.Pending() == 0
}

// Elapsed returns the simulated time so far.
func (h *Harness) Elapsed() time.Duration {
	return h.elapsed
}

// Frames returns the number of frames produced so far.
func (h *Harness) Frames() int {
	return h.frames
}
