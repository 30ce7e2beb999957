package motion

import (
	"math/rand/v2"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// --- gween tweens ---

// tweenTrack binds one gween tween to the value it writes.
type tweenTrack struct {
	tween  *gween.Tween
	target *SharedValue[float64]
}

// tweenGroup drives its tracks in lockstep until every tween has finished.
type tweenGroup struct {
	tracks  []tweenTrack
	started bool
}

// Tween drives a gween tween, writing its value to target every frame until
// the tween reports finished. Frame deltas are fed to gween in seconds.
func Tween(target *SharedValue[float64], tw *gween.Tween) Coroutine {
	return &tweenGroup{tracks: []tweenTrack{{tween: tw, target: target}}}
}

// TweenXY animates two values, typically a position, to (toX, toY) over
// duration using fn. The start values are read when the constructor is called.
func TweenXY(x, y *SharedValue[float64], toX, toY float64, duration time.Duration, fn ease.TweenFunc) Coroutine {
	secs := float32(duration.Seconds())
	return &tweenGroup{tracks: []tweenTrack{
		{tween: gween.New(float32(x.Value()), float32(toX), secs, fn), target: x},
		{tween: gween.New(float32(y.Value()), float32(toY), secs, fn), target: y},
	}}
}

func (g *tweenGroup) Step(info FrameInfo) (Status, error) {
	dt := float32(info.DeltaTime.Seconds())
	if !g.started {
		g.started = true
		dt = 0
	}

	allDone := true
	for _, tr := range g.tracks {
		val, finished := tr.tween.Update(dt)
		tr.target.Set(float64(val))
		if !finished {
			allDone = false
		}
	}
	if allDone {
		return Done, nil
	}
	return Pending, nil
}

// --- Jitter ---

// DefaultJitterDuration is used by Jitter when JitterConfig.Duration is zero.
const DefaultJitterDuration = 300 * time.Millisecond

// JitterConfig configures Jitter.
type JitterConfig struct {
	// Amplitude is the largest offset applied on the first frame. It decays
	// linearly to zero over Duration.
	Amplitude float64
	// Duration is the length of the shake. Zero means DefaultJitterDuration.
	Duration time.Duration
	// Rand supplies the offsets. Nil uses the math/rand/v2 global source;
	// pass a seeded generator for reproducible results.
	Rand *rand.Rand
}

type jitter struct {
	target  *SharedValue[float64]
	cfg     JitterConfig
	float   func() float64
	origin  float64
	elapsed time.Duration
	started bool
}

// Jitter shakes target around its current value with a random offset that
// decays over the configured duration, then restores the original value.
func Jitter(target *SharedValue[float64], cfg JitterConfig) Coroutine {
	if cfg.Duration == 0 {
		cfg.Duration = DefaultJitterDuration
	}
	j := &jitter{target: target, cfg: cfg, float: rand.Float64}
	if cfg.Rand != nil {
		j.float = cfg.Rand.Float64
	}
	return j
}

func (j *jitter) Step(info FrameInfo) (Status, error) {
	if !j.started {
		j.started = true
		j.origin = j.target.Value()
	} else {
		j.elapsed += info.DeltaTime
	}
	if j.elapsed >= j.cfg.Duration {
		j.target.Set(j.origin)
		return Done, nil
	}
	decay := 1 - float64(j.elapsed)/float64(j.cfg.Duration)
	offset := (j.float()*2 - 1) * j.cfg.Amplitude * decay
	j.target.Set(j.origin + offset)
	return Pending, nil
}
