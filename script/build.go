package script

import (
	"fmt"
	"math/rand/v2"

	"github.com/phanxgames/motion"
	"github.com/phanxgames/motion/easing"
)

// Build turns the animation tree into a coroutine over values. The script
// must have been validated.
func (s *Script) Build(values *motion.SharedValues[float64]) (motion.Coroutine, error) {
	b := &builder{values: values}
	if s.Seed != 0 {
		b.rng = rand.New(rand.NewPCG(s.Seed, s.Seed))
	}
	return b.step(&s.Animation)
}

// Controller validates the script and creates a controller that plays it.
func (s *Script) Controller(opts ...motion.Option) (*motion.Controller[float64], error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return motion.Create(s.State, func(values *motion.SharedValues[float64]) motion.Coroutine {
		co, err := s.Build(values)
		if err != nil {
			return motion.Do(func() error { return err })
		}
		return co
	}, opts...), nil
}

type builder struct {
	values *motion.SharedValues[float64]
	rng    *rand.Rand
}

func (b *builder) value(key string) (*motion.SharedValue[float64], error) {
	v, ok := b.values.Lookup(key)
	if !ok {
		return nil, fmt.Errorf("unknown state key %q", key)
	}
	return v, nil
}

func (b *builder) step(st *Step) (motion.Coroutine, error) {
	switch {
	case st.Timing != nil:
		return b.timing(st.Timing)
	case st.Wait != nil:
		return motion.Wait(*st.Wait), nil
	case st.Set != nil:
		v, err := b.value(st.Set.Key)
		if err != nil {
			return nil, err
		}
		x := st.Set.Value
		return motion.Do(func() error {
			v.Set(x)
			return nil
		}), nil
	case st.Jitter != nil:
		v, err := b.value(st.Jitter.Key)
		if err != nil {
			return nil, err
		}
		return motion.Jitter(v, motion.JitterConfig{
			Amplitude: st.Jitter.Amplitude,
			Duration:  st.Jitter.Duration,
			Rand:      b.rng,
		}), nil
	case st.Parallel != nil:
		children, err := b.steps(st.Parallel)
		if err != nil {
			return nil, err
		}
		return motion.Parallel(children...), nil
	case st.Any != nil:
		children, err := b.steps(st.Any)
		if err != nil {
			return nil, err
		}
		return motion.Any(children...), nil
	case st.Chain != nil:
		children, err := b.steps(st.Chain)
		if err != nil {
			return nil, err
		}
		return motion.Chain(children...), nil
	case st.Sequence != nil:
		children, err := b.steps(st.Sequence.Steps)
		if err != nil {
			return nil, err
		}
		return motion.Sequence(st.Sequence.Delay, children...), nil
	case st.Stagger != nil:
		children, err := b.steps(st.Stagger.Steps)
		if err != nil {
			return nil, err
		}
		return motion.Stagger(st.Stagger.Delay, children...), nil
	case st.Loop != nil:
		return b.loop(st.Loop)
	default:
		return nil, fmt.Errorf("empty step")
	}
}

func (b *builder) steps(steps []Step) ([]motion.Coroutine, error) {
	out := make([]motion.Coroutine, len(steps))
	for i := range steps {
		co, err := b.step(&steps[i])
		if err != nil {
			return nil, err
		}
		out[i] = co
	}
	return out, nil
}

func (b *builder) timing(t *TimingStep) (motion.Coroutine, error) {
	v, err := b.value(t.Key)
	if err != nil {
		return nil, err
	}
	cfg := motion.TimingConfig{
		From:     t.From,
		To:       t.To,
		Delay:    t.Delay,
		Duration: t.Duration,
	}
	if t.Easing != "" {
		if cfg.Easing, err = easing.Parse(t.Easing); err != nil {
			return nil, err
		}
	}
	return motion.Timing(v, cfg), nil
}

func (b *builder) loop(l *LoopStep) (motion.Coroutine, error) {
	// Build once up front so a bad body fails here rather than mid-animation.
	if _, err := b.step(&l.Body); err != nil {
		return nil, err
	}
	count := l.Count
	if count < 0 {
		count = motion.Infinite
	}
	return motion.Loop(count, func(int) motion.Coroutine {
		co, err := b.step(&l.Body)
		if err != nil {
			return motion.Do(func() error { return err })
		}
		return co
	}), nil
}
