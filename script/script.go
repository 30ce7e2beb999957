// Package script loads animations described in YAML.
//
// A script declares the animated state and a tree of steps:
//
//	name: intro
//	state:
//	  x: 0
//	  alpha: 0
//	animation:
//	  sequence:
//	    delay: 100ms
//	    steps:
//	      - timing: {key: alpha, to: 1, duration: 300ms, easing: out(cubic)}
//	      - parallel:
//	          - timing: {key: x, to: 200, duration: 1s, easing: bounce}
//	          - jitter: {key: alpha, amplitude: 0.1}
//
// Every step holds exactly one of: timing, wait, set, jitter, parallel, any,
// chain, sequence, stagger or loop. Durations use time.ParseDuration syntax
// and easings use the easing.Parse expression syntax.
package script

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/phanxgames/motion/easing"
)

// Script is a parsed animation script.
type Script struct {
	Name  string             `yaml:"name"`
	State map[string]float64 `yaml:"state"`
	// Seed makes jitter steps reproducible. Zero uses a random source.
	Seed      uint64 `yaml:"seed,omitempty"`
	Animation Step   `yaml:"animation"`
}

// Step is one node of the animation tree.
type Step struct {
	Timing   *TimingStep    `yaml:"timing,omitempty"`
	Wait     *time.Duration `yaml:"wait,omitempty"`
	Set      *SetStep       `yaml:"set,omitempty"`
	Jitter   *JitterStep    `yaml:"jitter,omitempty"`
	Parallel []Step         `yaml:"parallel,omitempty"`
	Any      []Step         `yaml:"any,omitempty"`
	Chain    []Step         `yaml:"chain,omitempty"`
	Sequence *GroupStep     `yaml:"sequence,omitempty"`
	Stagger  *GroupStep     `yaml:"stagger,omitempty"`
	Loop     *LoopStep      `yaml:"loop,omitempty"`
}

// TimingStep animates one state key.
type TimingStep struct {
	Key      string        `yaml:"key"`
	From     *float64      `yaml:"from,omitempty"`
	To       float64       `yaml:"to"`
	Easing   string        `yaml:"easing,omitempty"`
	Delay    time.Duration `yaml:"delay,omitempty"`
	Duration time.Duration `yaml:"duration,omitempty"`
}

// SetStep assigns a state key immediately.
type SetStep struct {
	Key   string  `yaml:"key"`
	Value float64 `yaml:"value"`
}

// JitterStep shakes a state key.
type JitterStep struct {
	Key       string        `yaml:"key"`
	Amplitude float64       `yaml:"amplitude"`
	Duration  time.Duration `yaml:"duration,omitempty"`
}

// GroupStep is the body of sequence and stagger steps.
type GroupStep struct {
	Delay time.Duration `yaml:"delay"`
	Steps []Step        `yaml:"steps"`
}

// LoopStep repeats its body. A negative count loops forever, in which case
// the body must wait for at least one frame per iteration.
type LoopStep struct {
	Count int  `yaml:"count"`
	Body  Step `yaml:"body"`
}

// Parse decodes and validates a script. Unknown fields are rejected.
func Parse(data []byte) (*Script, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Script
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse script: empty document")
		}
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	return &s, nil
}

// Validate checks that every step is well formed and only references
// declared state keys.
func (s *Script) Validate() error {
	if len(s.State) == 0 {
		return errors.New("no state declared")
	}
	return s.validateStep(&s.Animation, "animation")
}

func (s *Script) validateStep(st *Step, path string) error {
	kind, err := st.kind()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	path = path + "." + kind

	switch kind {
	case "timing":
		if err := s.checkKey(st.Timing.Key); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if st.Timing.Easing != "" {
			if _, err := easing.Parse(st.Timing.Easing); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
		}
	case "wait":
		if *st.Wait < 0 {
			return fmt.Errorf("%s: negative duration %v", path, *st.Wait)
		}
	case "set":
		if err := s.checkKey(st.Set.Key); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	case "jitter":
		if err := s.checkKey(st.Jitter.Key); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	case "parallel", "any", "chain":
		return s.validateSteps(st.children(), path)
	case "sequence", "stagger":
		g := st.Sequence
		if kind == "stagger" {
			g = st.Stagger
		}
		if g.Delay < 0 {
			return fmt.Errorf("%s: negative delay %v", path, g.Delay)
		}
		return s.validateSteps(g.Steps, path)
	case "loop":
		if err := s.validateStep(&st.Loop.Body, path+".body"); err != nil {
			return err
		}
		if st.Loop.Count < 0 && !st.Loop.Body.suspends() {
			return fmt.Errorf("%s.body: unbounded loop body never suspends", path)
		}
	}
	return nil
}

// suspends reports whether the step always yields at least one frame before
// completing. An unbounded loop over a body that does not would never return
// from its first frame.
func (st *Step) suspends() bool {
	switch {
	case st.Timing != nil:
		return st.Timing.Duration >= 0 || st.Timing.Delay > 0
	case st.Wait != nil:
		return *st.Wait > 0
	case st.Jitter != nil:
		return st.Jitter.Duration >= 0
	case st.Parallel != nil:
		return anySuspends(st.Parallel)
	case st.Chain != nil:
		return anySuspends(st.Chain)
	case st.Any != nil:
		if len(st.Any) == 0 {
			return false
		}
		for i := range st.Any {
			if !st.Any[i].suspends() {
				return false
			}
		}
		return true
	case st.Sequence != nil:
		return groupSuspends(st.Sequence)
	case st.Stagger != nil:
		return groupSuspends(st.Stagger)
	case st.Loop != nil:
		return st.Loop.Count != 0 && st.Loop.Body.suspends()
	default:
		return false
	}
}

func anySuspends(steps []Step) bool {
	for i := range steps {
		if steps[i].suspends() {
			return true
		}
	}
	return false
}

// groupSuspends covers sequence and stagger, which wait delay between or
// before their children.
func groupSuspends(g *GroupStep) bool {
	if g.Delay > 0 && len(g.Steps) > 1 {
		return true
	}
	return anySuspends(g.Steps)
}

func (s *Script) validateSteps(steps []Step, path string) error {
	for i := range steps {
		if err := s.validateStep(&steps[i], fmt.Sprintf("%s[%d]", path, i)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Script) checkKey(key string) error {
	if key == "" {
		return errors.New("missing key")
	}
	if _, ok := s.State[key]; !ok {
		return fmt.Errorf("unknown state key %q", key)
	}
	return nil
}

// kind returns the name of the single action set on the step.
func (st *Step) kind() (string, error) {
	var kinds []string
	add := func(set bool, name string) {
		if set {
			kinds = append(kinds, name)
		}
	}
	add(st.Timing != nil, "timing")
	add(st.Wait != nil, "wait")
	add(st.Set != nil, "set")
	add(st.Jitter != nil, "jitter")
	add(st.Parallel != nil, "parallel")
	add(st.Any != nil, "any")
	add(st.Chain != nil, "chain")
	add(st.Sequence != nil, "sequence")
	add(st.Stagger != nil, "stagger")
	add(st.Loop != nil, "loop")

	switch len(kinds) {
	case 0:
		return "", errors.New("empty step")
	case 1:
		return kinds[0], nil
	default:
		return "", fmt.Errorf("step has several actions %v", kinds)
	}
}

func (st *Step) children() []Step {
	switch {
	case st.Parallel != nil:
		return st.Parallel
	case st.Any != nil:
		return st.Any
	default:
		return st.Chain
	}
}
