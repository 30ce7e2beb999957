package script

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/phanxgames/motion"
	"github.com/phanxgames/motion/motiontest"
)

const intro = `
name: intro
state:
  x: 0
  alpha: 0
animation:
  sequence:
    delay: 100ms
    steps:
      - timing: {key: alpha, to: 1, duration: 200ms, easing: out(cubic)}
      - parallel:
          - timing: {key: x, from: 10, to: 50, duration: 300ms}
          - wait: 100ms
      - set: {key: alpha, value: 0.5}
`

func TestParse(t *testing.T) {
	s, err := Parse([]byte(intro))
	require.NoError(t, err)

	require.Equal(t, "intro", s.Name)
	require.Equal(t, map[string]float64{"x": 0, "alpha": 0}, s.State)
	require.NotNil(t, s.Animation.Sequence)
	require.Equal(t, 100*time.Millisecond, s.Animation.Sequence.Delay)
	require.Len(t, s.Animation.Sequence.Steps, 3)

	first := s.Animation.Sequence.Steps[0].Timing
	require.Equal(t, "alpha", first.Key)
	require.Equal(t, 200*time.Millisecond, first.Duration)
	require.Equal(t, "out(cubic)", first.Easing)

	par := s.Animation.Sequence.Steps[1].Parallel
	require.Len(t, par, 2)
	require.Equal(t, 10.0, *par[0].Timing.From)
	require.Equal(t, 100*time.Millisecond, *par[1].Wait)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", "empty document"},
		{"bad yaml", "state: [", "parse script"},
		{"no state", "animation: {wait: 1s}", "no state declared"},
		{"unknown field", "state: {x: 0}\nanimation: {wait: 1s}\nextra: 1", "extra"},
		{"empty step", "state: {x: 0}\nanimation: {}", "empty step"},
		{"two actions", "state: {x: 0}\nanimation: {wait: 1s, set: {key: x, value: 1}}", "several actions"},
		{"unknown key", "state: {x: 0}\nanimation: {timing: {key: y, to: 1}}", `unknown state key "y"`},
		{"missing key", "state: {x: 0}\nanimation: {set: {value: 1}}", "missing key"},
		{"bad easing", "state: {x: 0}\nanimation: {timing: {key: x, to: 1, easing: wobble}}", "wobble"},
		{"bad duration", "state: {x: 0}\nanimation: {wait: soon}", "parse script"},
		{"negative wait", "state: {x: 0}\nanimation: {wait: -1s}", "negative duration"},
		{"nested path", "state: {x: 0}\nanimation: {chain: [{wait: 1s}, {jitter: {key: z}}]}", "animation.chain[1].jitter"},
		{"loop body", "state: {x: 0}\nanimation: {loop: {count: 2, body: {}}}", "animation.loop.body"},
		{"unbounded loop over set", "state: {x: 0}\nanimation: {loop: {count: -1, body: {set: {key: x, value: 1}}}}", "animation.loop.body: unbounded loop body never suspends"},
		{"unbounded loop over zero wait", "state: {x: 0}\nanimation: {loop: {count: -1, body: {wait: 0s}}}", "never suspends"},
		{"unbounded loop over racing set", "state: {x: 0}\nanimation: {loop: {count: -1, body: {any: [{wait: 1s}, {set: {key: x, value: 1}}]}}}", "never suspends"},
		{"unbounded loop over instant chain", "state: {x: 0}\nanimation: {loop: {count: -1, body: {chain: [{set: {key: x, value: 1}}, {sequence: {delay: 1s, steps: [{wait: 0s}]}}]}}}", "never suspends"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.in))
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestScriptPlays(t *testing.T) {
	s, err := Parse([]byte(intro))
	require.NoError(t, err)

	h := motiontest.New()
	ctrl, err := s.Controller(h.Options()...)
	require.NoError(t, err)

	var alphaSeen []float64
	ctrl.Values().Current("alpha").OnValue(func(v float64) { alphaSeen = append(alphaSeen, v) })

	ctrl.Start()
	_, idle := h.RunUntilIdle(50*time.Millisecond, 200)
	require.True(t, idle)

	vals := ctrl.Values().Values()
	require.Equal(t, 50.0, vals["x"])
	require.Equal(t, 0.5, vals["alpha"])
	require.Contains(t, alphaSeen, 1.0)
	require.Equal(t, motion.Idle, ctrl.State())
}

func TestScriptLoop(t *testing.T) {
	s, err := Parse([]byte(`
state: {n: 0}
animation:
  loop:
    count: 3
    body:
      chain:
        - set: {key: n, value: 0}
        - timing: {key: n, to: 1, duration: 100ms}
`))
	require.NoError(t, err)

	h := motiontest.New()
	ctrl, err := s.Controller(h.Options()...)
	require.NoError(t, err)

	resets := 0
	ctrl.Values().Current("n").OnValue(func(v float64) {
		if v == 1 {
			resets++
		}
	})

	ctrl.Start()
	frames, idle := h.RunUntilIdle(100*time.Millisecond, 100)
	require.True(t, idle)
	require.Equal(t, 3, resets)
	require.Equal(t, 4, frames)
}

func TestScriptInfiniteLoopKeepsRunning(t *testing.T) {
	s, err := Parse([]byte(`
state: {n: 0}
animation:
  loop:
    count: -1
    body: {wait: 100ms}
`))
	require.NoError(t, err)

	h := motiontest.New()
	ctrl, err := s.Controller(h.Options()...)
	require.NoError(t, err)

	ctrl.Start()
	h.Run(5*time.Second, 100*time.Millisecond)
	require.Equal(t, motion.Running, ctrl.State())
	ctrl.Stop()
}

func TestParseAcceptsUnboundedLoopsThatYield(t *testing.T) {
	bodies := []string{
		"{wait: 10ms}",
		"{timing: {key: x, to: 1, duration: 0s}}",
		"{jitter: {key: x, amplitude: 1}}",
		"{chain: [{set: {key: x, value: 0}}, {wait: 10ms}]}",
		"{parallel: [{set: {key: x, value: 0}}, {timing: {key: x, to: 1}}]}",
		"{sequence: {delay: 10ms, steps: [{set: {key: x, value: 0}}, {set: {key: x, value: 1}}]}}",
		"{loop: {count: 2, body: {wait: 10ms}}}",
	}
	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			_, err := Parse([]byte("state: {x: 0}\nanimation: {loop: {count: -1, body: " + body + "}}"))
			require.NoError(t, err)
		})
	}
}

func TestScriptSeededJitterIsReproducible(t *testing.T) {
	src := `
seed: 42
state: {x: 0}
animation: {jitter: {key: x, amplitude: 5, duration: 200ms}}
`
	run := func() []float64 {
		s, err := Parse([]byte(src))
		require.NoError(t, err)
		h := motiontest.New()
		ctrl, err := s.Controller(h.Options()...)
		require.NoError(t, err)

		var seen []float64
		ctrl.Values().Current("x").OnValue(func(v float64) { seen = append(seen, v) })
		ctrl.Start()
		h.RunUntilIdle(20*time.Millisecond, 100)
		return seen
	}

	a, b := run(), run()
	require.NotEmpty(t, a)
	require.Equal(t, a, b)
	require.Equal(t, 0.0, a[len(a)-1])
}

func TestStaggerAndAny(t *testing.T) {
	s, err := Parse([]byte(`
state: {a: 0, b: 0, c: 0}
animation:
  any:
    - stagger:
        delay: 100ms
        steps:
          - set: {key: a, value: 1}
          - set: {key: b, value: 1}
    - chain:
        - wait: 150ms
        - set: {key: c, value: 1}
`))
	require.NoError(t, err)

	h := motiontest.New()
	ctrl, err := s.Controller(h.Options()...)
	require.NoError(t, err)

	ctrl.Start()
	frames, idle := h.RunUntilIdle(50*time.Millisecond, 100)
	require.True(t, idle)
	require.Equal(t, 3, frames)

	vals := ctrl.Values().Values()
	require.Equal(t, 1.0, vals["a"])
	require.Equal(t, 1.0, vals["b"])
	require.Equal(t, 0.0, vals["c"])
}
