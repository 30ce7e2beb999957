package motion

import (
	"time"

	"github.com/phanxgames/motion/easing"
)

// DefaultWait is the conventional pause length when none is specified.
const DefaultWait = time.Second

// DefaultTimingDuration is used by Timing when TimingConfig.Duration is zero.
const DefaultTimingDuration = 600 * time.Millisecond

// --- Wait ---

type wait struct {
	duration time.Duration
	elapsed  time.Duration
	started  bool
}

// Wait suspends until the accumulated frame time reaches d. Wait(0)
// completes on its first step.
func Wait(d time.Duration) Coroutine {
	return &wait{duration: d}
}

func (w *wait) Step(info FrameInfo) (Status, error) {
	if w.started {
		w.elapsed += info.DeltaTime
	}
	w.started = true
	if w.elapsed < w.duration {
		return Pending, nil
	}
	return Done, nil
}

// --- WaitUntil ---

type waitUntil struct {
	value  *SharedValue[bool]
	invert bool
}

// WaitUntil suspends every frame while value is false, or while it is true
// when invert is set.
func WaitUntil(value *SharedValue[bool], invert bool) Coroutine {
	return &waitUntil{value: value, invert: invert}
}

func (w *waitUntil) Step(FrameInfo) (Status, error) {
	held := !w.value.Value()
	if w.invert {
		held = w.value.Value()
	}
	if held {
		return Pending, nil
	}
	return Done, nil
}

// --- Delay ---

// Delay waits for d and then runs c. A nil c makes Delay equivalent to Wait.
func Delay(d time.Duration, c Coroutine) Coroutine {
	if c == nil {
		return Wait(d)
	}
	return Chain(Wait(d), c)
}

// --- Do ---

type action struct {
	fn   func() error
	done bool
}

// Do runs fn once, on its first step, and completes in the same frame. An
// error returned by fn ends the coroutine with that error.
func Do(fn func() error) Coroutine {
	return &action{fn: fn}
}

func (a *action) Step(FrameInfo) (Status, error) {
	if a.done {
		return Done, nil
	}
	a.done = true
	if a.fn == nil {
		return Done, nil
	}
	return Done, a.fn()
}

// --- Timing ---

// TimingConfig configures Timing and TimingFunc.
type TimingConfig struct {
	// From is the start value. Nil means the target's value when the
	// coroutine starts (zero for TimingFunc).
	From *float64
	// To is the final value.
	To float64
	// Easing shapes progress. Nil means easing.Linear.
	Easing easing.Func
	// Delay is waited before the animation begins.
	Delay time.Duration
	// Duration is the length of the animation. Zero means
	// DefaultTimingDuration; a negative duration jumps straight to To.
	Duration time.Duration
}

// Float returns a pointer to v, for TimingConfig.From.
func Float(v float64) *float64 {
	return &v
}

const (
	timingStart = iota
	timingDelay
	timingRun
	timingDone
)

type timing struct {
	cfg     TimingConfig
	write   func(float64) bool
	initial func() float64

	phase   int
	from    float64
	delay   *wait
	elapsed time.Duration
}

// Timing animates value from cfg.From to cfg.To over cfg.Duration.
//
// After cfg.Delay, every step writes from + (to-from)*easing(elapsed/duration)
// while elapsed is below the duration, where elapsed counts the frame time
// since the step on which the delay finished. Progress is not clamped, so the
// last in-range write may fall short of (or overshoot) To; the coroutine
// always finishes by writing exactly To.
func Timing(value *SharedValue[float64], cfg TimingConfig) Coroutine {
	return newTiming(cfg, func(x float64) bool {
		value.Set(x)
		return false
	}, value.Value)
}

// TimingFunc is Timing for a callback target. The callback receives every
// interpolated value; returning true cancels the animation early, after which
// the callback is invoked once more with To.
func TimingFunc(fn func(float64) bool, cfg TimingConfig) Coroutine {
	return newTiming(cfg, fn, func() float64 { return 0 })
}

func newTiming(cfg TimingConfig, write func(float64) bool, initial func() float64) *timing {
	if cfg.Easing == nil {
		cfg.Easing = easing.Linear
	}
	if cfg.Duration == 0 {
		cfg.Duration = DefaultTimingDuration
	}
	return &timing{cfg: cfg, write: write, initial: initial}
}

func (t *timing) Step(info FrameInfo) (Status, error) {
	switch t.phase {
	case timingStart:
		t.from = t.initial()
		if t.cfg.From != nil {
			t.from = *t.cfg.From
		}
		t.delay = &wait{duration: t.cfg.Delay}
		t.phase = timingDelay
		fallthrough
	case timingDelay:
		if st, _ := t.delay.Step(info); st == Pending {
			return Pending, nil
		}
		t.phase = timingRun
		t.elapsed = 0
		return t.advance(), nil
	case timingRun:
		t.elapsed += info.DeltaTime
		return t.advance(), nil
	default:
		return Done, nil
	}
}

func (t *timing) advance() Status {
	if t.elapsed < t.cfg.Duration {
		progress := t.cfg.Easing(float64(t.elapsed) / float64(t.cfg.Duration))
		if !t.write(t.from + (t.cfg.To-t.from)*progress) {
			return Pending
		}
	}
	t.write(t.cfg.To)
	t.phase = timingDone
	return Done
}
