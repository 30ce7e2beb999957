package motion

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

// stepClock advances by a fixed step on every read.
type stepClock struct {
	now  time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	c.now = c.now.Add(c.step)
	return c.now
}

func TestDebugLogsTransitionsAndFrames(t *testing.T) {
	var buf bytes.Buffer
	prev := debugOut
	debugOut = &buf
	defer func() { debugOut = prev }()

	var q FrameQueue
	ctrl := Create(map[string]int{"n": 0}, func(v *SharedValues[int]) Coroutine {
		return Wait(10 * time.Millisecond)
	}, WithScheduler(&q), WithClock(&stepClock{step: 10 * time.Millisecond}), WithConfig(Config{Debug: true}))

	ctrl.Start()
	for q.Pending() > 0 {
		q.Flush()
	}

	out := buf.String()
	for _, want := range []string{
		"[motion] controller " + ctrl.ID().String() + ": idle -> running",
		"running -> idle",
		"dt: 10ms",
		"| done",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("debug output missing %q:\n%s", want, out)
		}
	}
}

func TestDebugDisabledIsSilent(t *testing.T) {
	var buf bytes.Buffer
	prev := debugOut
	debugOut = &buf
	defer func() { debugOut = prev }()

	var q FrameQueue
	ctrl := Create(map[string]int{"n": 0}, func(v *SharedValues[int]) Coroutine {
		return nil
	}, WithScheduler(&q), WithClock(&stepClock{step: time.Millisecond}))
	ctrl.Start()
	q.Flush()

	if buf.Len() != 0 {
		t.Errorf("debug output without Debug: %q", buf.String())
	}
}
