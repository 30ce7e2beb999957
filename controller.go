package motion

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uber-go/tally/v4"
)

// ControllerState is the lifecycle state of a Controller.
type ControllerState uint8

const (
	// Idle means no coroutine is active.
	Idle ControllerState = iota
	// Running means the coroutine advances on every frame.
	Running
	// Paused means the coroutine is retained but does not advance.
	Paused
)

// String returns a human-readable representation of the state.
func (s ControllerState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return fmt.Sprintf("ControllerState(%d)", int(s))
	}
}

// --- Options ---

// Option configures a Controller.
type Option func(*options)

type options struct {
	scheduler FrameScheduler
	clock     Clock
	handler   ErrorHandler
	scope     tally.Scope
	cfg       Config
}

// WithScheduler sets the frame scheduler. The default is DefaultScheduler.
func WithScheduler(s FrameScheduler) Option {
	return func(o *options) { o.scheduler = s }
}

// WithClock sets the time source used to measure frame deltas.
func WithClock(c Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithErrorHandler routes failures to h instead of the package handler set
// with SetHandler.
func WithErrorHandler(h ErrorHandler) Option {
	return func(o *options) { o.handler = h }
}

// WithMetrics reports frame and lifecycle counters to scope.
func WithMetrics(scope tally.Scope) Option {
	return func(o *options) { o.scope = scope }
}

// WithConfig applies cfg.
func WithConfig(cfg Config) Option {
	return func(o *options) { o.cfg = cfg }
}

// --- Controller ---

// Controller drives one animation coroutine against a SharedValues group.
//
// The animation function is called to build a fresh coroutine on the first
// frame after every start from Idle. Each frame the coroutine is stepped with
// the time elapsed since the previous frame until it completes, fails, or the
// Controller is paused or stopped.
//
// A Controller is not safe for concurrent use. All methods must be called
// from the goroutine that runs its scheduler's frames.
type Controller[T any] struct {
	id        uuid.UUID
	cfg       Config
	values    *SharedValues[T]
	animation func(*SharedValues[T]) Coroutine

	scheduler FrameScheduler
	clock     Clock
	handler   ErrorHandler
	metrics   controllerMetrics

	co       Coroutine
	state    ControllerState
	frame    FrameHandle
	lastTime time.Time
	cleanups []func()
	// gen changes on every Stop, so a frame can tell that the controller
	// was stopped or restarted while its coroutine was running.
	gen uint64

	statusEvt Event[ControllerState]
}

// Create builds an idle Controller over a SharedValues group created from
// initial. animation receives the group and returns the coroutine to run.
//
// Without WithScheduler the controller requests frames from DefaultScheduler,
// which produces nothing until DefaultScheduler.Run is called. Started
// controllers stay Running with a pending frame and never advance otherwise.
func Create[T any](initial map[string]T, animation func(*SharedValues[T]) Coroutine, opts ...Option) *Controller[T] {
	if animation == nil {
		panic("motion: nil animation")
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.scheduler == nil {
		o.scheduler = DefaultScheduler
	}
	if o.clock == nil {
		o.clock = SystemClock
	}
	c := &Controller[T]{
		id:        uuid.New(),
		cfg:       o.cfg.withDefaults(),
		values:    NewSharedValues(initial),
		animation: animation,
		scheduler: o.scheduler,
		clock:     o.clock,
		handler:   o.handler,
		metrics:   newControllerMetrics(o.scope),
	}
	c.metrics.state.Update(float64(Idle))
	return c
}

// ID returns the controller's unique identifier.
func (c *Controller[T]) ID() uuid.UUID {
	return c.id
}

// Values returns the animated state group.
func (c *Controller[T]) Values() *SharedValues[T] {
	return c.values
}

// State returns the current lifecycle state.
func (c *Controller[T]) State() ControllerState {
	return c.state
}

// OnStatus registers fn to receive every state transition.
func (c *Controller[T]) OnStatus(fn func(ControllerState)) Handle {
	return c.statusEvt.On(fn)
}

// Start begins running the animation. Starting a paused controller resumes
// it; starting a running controller does nothing.
func (c *Controller[T]) Start() {
	switch c.state {
	case Running:
		return
	case Paused:
		c.Resume()
		return
	}
	c.lastTime = c.clock.Now()
	c.metrics.started.Inc(1)
	c.setState(Running)
	c.schedule()
}

// Pause suspends a running animation, keeping its progress.
func (c *Controller[T]) Pause() {
	if c.state != Running {
		return
	}
	c.cancelFrame()
	c.setState(Paused)
}

// Resume continues a paused animation from where it stopped. Time spent
// paused is not counted.
func (c *Controller[T]) Resume() {
	if c.state != Paused {
		return
	}
	c.lastTime = c.clock.Now()
	c.setState(Running)
	c.schedule()
}

// Stop abandons the animation, resets every value to its initial value and
// runs the registered cleanup callbacks.
func (c *Controller[T]) Stop() {
	c.cancelFrame()
	c.gen++
	wasActive := c.state != Idle || c.co != nil
	c.co = nil
	c.setState(Idle)
	c.Clear()
	if wasActive {
		c.metrics.stopped.Inc(1)
	}
}

// Restart stops and starts the animation.
func (c *Controller[T]) Restart() {
	c.Stop()
	c.Start()
}

// Clear resets every value to its initial value, then runs the registered
// cleanup callbacks in reverse registration order and forgets them. It does
// not change the state.
func (c *Controller[T]) Clear() {
	c.values.Clear()
	for len(c.cleanups) > 0 {
		last := len(c.cleanups) - 1
		fn := c.cleanups[last]
		c.cleanups[last] = nil
		c.cleanups = c.cleanups[:last]
		c.runCleanup(fn)
	}
}

// Destroy stops the controller and detaches the value group's forwarding
// subscriptions. The controller must not be started again.
func (c *Controller[T]) Destroy() {
	c.Stop()
	c.values.Destroy()
	c.statusEvt.Off()
}

// --- frame loop ---

func (c *Controller[T]) schedule() {
	if c.frame != 0 {
		return
	}
	c.frame = c.scheduler.RequestFrame(c.tick)
}

func (c *Controller[T]) cancelFrame() {
	if c.frame != 0 {
		c.scheduler.CancelFrame(c.frame)
		c.frame = 0
	}
}

func (c *Controller[T]) tick() {
	c.frame = 0
	if c.state != Running {
		return
	}

	now := c.clock.Now()
	dt := now.Sub(c.lastTime)
	c.lastTime = now
	gen := c.gen
	c.metrics.frames.Inc(1)

	var start time.Time
	if c.cfg.Debug {
		start = time.Now()
	}
	st, err := c.advance(dt)
	if c.cfg.Debug {
		c.debugFrame(dt, time.Since(start), st)
	}

	if err != nil {
		c.report(err)
	}
	if gen != c.gen {
		return
	}
	if err != nil {
		c.metrics.failed.Inc(1)
		c.co = nil
		c.setState(Idle)
		return
	}
	if st == Done {
		c.metrics.completed.Inc(1)
		c.co = nil
		c.setState(Idle)
		return
	}
	if c.state == Running {
		c.schedule()
	}
}

// advance builds the coroutine if needed and steps it once. Panics are
// recovered and returned as *PanicError.
func (c *Controller[T]) advance(dt time.Duration) (st Status, err error) {
	defer func() {
		if r := recover(); r != nil {
			st = Done
			err = &PanicError{
				Op:           "controller.tick",
				ControllerID: c.id.String(),
				Value:        r,
				StackTrace:   CaptureStack(),
				Timestamp:    time.Now(),
			}
		}
	}()
	if c.co == nil {
		c.co = c.animation(c.values)
		if c.co == nil {
			return Done, nil
		}
	}
	return c.co.Step(FrameInfo{DeltaTime: dt, onClear: c.pushCleanup})
}

func (c *Controller[T]) pushCleanup(fn func()) {
	c.cleanups = append(c.cleanups, fn)
}

func (c *Controller[T]) runCleanup(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			c.report(&PanicError{
				Op:           "controller.clear",
				ControllerID: c.id.String(),
				Value:        r,
				StackTrace:   CaptureStack(),
				Timestamp:    time.Now(),
			})
		}
	}()
	fn()
}

func (c *Controller[T]) report(err error) {
	h := c.errorHandler()
	if pe, ok := err.(*PanicError); ok {
		h.HandlePanic(pe)
		return
	}
	h.HandleError(&AnimationError{
		Op:           "controller.tick",
		ControllerID: c.id.String(),
		Err:          err,
		Timestamp:    time.Now(),
	})
}

func (c *Controller[T]) errorHandler() ErrorHandler {
	if c.handler != nil {
		return c.handler
	}
	if c.cfg.Verbose {
		return &LogHandler{Verbose: true}
	}
	return defaultHandler()
}

func (c *Controller[T]) setState(s ControllerState) {
	if c.state == s {
		return
	}
	prev := c.state
	c.state = s
	c.metrics.state.Update(float64(s))
	if c.cfg.Debug {
		c.debugState(prev, s)
	}
	c.statusEvt.Emit(s)
}
