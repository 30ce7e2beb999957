package motiontest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/phanxgames/motion"
)

func TestFakeClock(t *testing.T) {
	c := NewFakeClock()
	start := c.Now()

	c.Advance(250 * time.Millisecond)
	require.Equal(t, 250*time.Millisecond, c.Now().Sub(start))

	at := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	c.Set(at)
	require.True(t, c.Now().Equal(at))
}

func TestManualSchedulerRunsRequestsOncePerFlush(t *testing.T) {
	s := NewManualScheduler()
	var calls []int

	s.RequestFrame(func() {
		calls = append(calls, 1)
		// Requested during a flush: runs on the next one.
		s.RequestFrame(func() { calls = append(calls, 3) })
	})
	s.RequestFrame(func() { calls = append(calls, 2) })

	require.Equal(t, 2, s.Flush())
	require.Equal(t, []int{1, 2}, calls)
	require.Equal(t, 1, s.Pending())

	require.Equal(t, 1, s.Flush())
	require.Equal(t, []int{1, 2, 3}, calls)
	require.Zero(t, s.Pending())
}

func TestManualSchedulerCancel(t *testing.T) {
	s := NewManualScheduler()
	ran := false
	h := s.RequestFrame(func() { ran = true })
	s.CancelFrame(h)
	s.CancelFrame(h)
	s.CancelFrame(0)

	require.Zero(t, s.Flush())
	require.False(t, ran)
}

func TestManualSchedulerCancelDuringFlush(t *testing.T) {
	s := NewManualScheduler()
	var second motion.FrameHandle
	ran := false
	s.RequestFrame(func() { s.CancelFrame(second) })
	second = s.RequestFrame(func() { ran = true })

	require.Equal(t, 1, s.Flush())
	require.False(t, ran)
}

func TestHarnessDrivesController(t *testing.T) {
	h := New()
	ctrl := motion.Create(map[string]float64{"x": 0},
		func(s *motion.SharedValues[float64]) motion.Coroutine {
			return motion.Timing(s.Current("x"), motion.TimingConfig{To: 10, Duration: 100 * time.Millisecond})
		}, h.Options()...)

	ctrl.Start()
	frames, idle := h.RunUntilIdle(10*time.Millisecond, 100)

	require.True(t, idle)
	require.Equal(t, 11, frames)
	require.Equal(t, 11, h.Frames())
	require.Equal(t, 110*time.Millisecond, h.Elapsed())
	require.Equal(t, 10.0, ctrl.Values().Current("x").Value())
	require.Equal(t, motion.Idle, ctrl.State())
}

func TestHarnessRunSplitsRemainder(t *testing.T) {
	h := New()
	start := h.Clock.Now()

	n := h.Run(250*time.Millisecond, 100*time.Millisecond)

	require.Equal(t, 3, n)
	require.Equal(t, 250*time.Millisecond, h.Clock.Now().Sub(start))
}
