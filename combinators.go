package motion

import "time"

// Infinite makes Loop repeat until its driver stops it.
const Infinite = -1

// --- Parallel ---

type parallel struct {
	children  []Coroutine
	done      []bool
	remaining int
	started   bool
}

// Parallel steps every child once per frame, in declaration order, until all
// of them have completed.
func Parallel(children ...Coroutine) Coroutine {
	return &parallel{children: children}
}

// All is an alias for Parallel.
func All(children ...Coroutine) Coroutine {
	return Parallel(children...)
}

func (p *parallel) Step(info FrameInfo) (Status, error) {
	if !p.started {
		p.started = true
		p.children = materialize(p.children)
		p.done = make([]bool, len(p.children))
		p.remaining = len(p.children)
	}
	for i, c := range p.children {
		if p.done[i] {
			continue
		}
		st, err := step(c, info)
		if err != nil {
			return Done, err
		}
		if st == Done {
			p.done[i] = true
			p.remaining--
		}
	}
	if p.remaining == 0 {
		return Done, nil
	}
	return Pending, nil
}

// --- Any ---

type race struct {
	children []Coroutine
	started  bool
}

// Any steps every child once per frame, in declaration order, and completes
// as soon as one of them completes. Children after the winner are not stepped
// that frame, and the losers are simply abandoned: they receive no signal, so
// anything they registered with FrameInfo.OnClear is only released when the
// Controller is cleared. Any with no children completes immediately.
func Any(children ...Coroutine) Coroutine {
	return &race{children: children}
}

func (r *race) Step(info FrameInfo) (Status, error) {
	if !r.started {
		r.started = true
		r.children = materialize(r.children)
	}
	if len(r.children) == 0 {
		return Done, nil
	}
	for _, c := range r.children {
		st, err := step(c, info)
		if err != nil {
			return Done, err
		}
		if st == Done {
			return Done, nil
		}
	}
	return Pending, nil
}

// --- Chain ---

type chain struct {
	children []Coroutine
	index    int
	started  bool
}

// Chain runs each child to completion before starting the next. A child that
// completes mid-frame hands the rest of that frame to its successor.
func Chain(children ...Coroutine) Coroutine {
	return &chain{children: children}
}

func (c *chain) Step(info FrameInfo) (Status, error) {
	if !c.started {
		c.started = true
		c.children = materialize(c.children)
	}
	for c.index < len(c.children) {
		st, err := step(c.children[c.index], info)
		if err != nil {
			return Done, err
		}
		if st == Pending {
			return Pending, nil
		}
		c.index++
	}
	return Done, nil
}

// --- Sequence / Stagger ---

// Sequence is Chain with a Wait(delay) between consecutive children.
func Sequence(delay time.Duration, children ...Coroutine) Coroutine {
	if len(children) == 0 {
		return Chain()
	}
	steps := make([]Coroutine, 0, len(children)*2-1)
	for i, c := range children {
		if i > 0 {
			steps = append(steps, Wait(delay))
		}
		steps = append(steps, c)
	}
	return Chain(steps...)
}

// Stagger runs children in parallel, delaying the i-th child by delay*i.
func Stagger(delay time.Duration, children ...Coroutine) Coroutine {
	lanes := make([]Coroutine, len(children))
	for i, c := range children {
		lanes[i] = Chain(Wait(delay*time.Duration(i)), c)
	}
	return Parallel(lanes...)
}

// --- Loop ---

type loop struct {
	iterations int
	factory    func(i int) Coroutine
	i          int
	current    Coroutine
	active     bool
}

// Loop runs factory(0), factory(1), ... factory(iterations-1) one after the
// other, each to completion. Pass Infinite to repeat forever. The body of an
// infinite loop must suspend at least once per iteration, otherwise a single
// frame never returns.
func Loop(iterations int, factory func(i int) Coroutine) Coroutine {
	if factory == nil {
		panic("motion: nil loop factory")
	}
	return &loop{iterations: iterations, factory: factory}
}

// Forever is Loop(Infinite, factory).
func Forever(factory func(i int) Coroutine) Coroutine {
	return Loop(Infinite, factory)
}

func (l *loop) Step(info FrameInfo) (Status, error) {
	for l.iterations < 0 || l.i < l.iterations {
		if !l.active {
			l.current = l.factory(l.i)
			l.active = true
		}
		st, err := step(l.current, info)
		if err != nil {
			return Done, err
		}
		if st == Pending {
			return Pending, nil
		}
		l.active = false
		l.current = nil
		l.i++
	}
	return Done, nil
}
