package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/phanxgames/motion"
)

// errAnimationFailed is returned by play when the controller reported a
// failure.
var errAnimationFailed = errors.New("animation failed")

// failureHandler logs failures and remembers that one happened.
type failureHandler struct {
	log    motion.LogHandler
	failed bool
}

func (h *failureHandler) HandleError(err *motion.AnimationError) {
	h.failed = true
	h.log.HandleError(err)
}

func (h *failureHandler) HandlePanic(err *motion.PanicError) {
	h.failed = true
	h.log.HandlePanic(err)
}

// simClock is advanced by the play loop in simulated mode.
type simClock struct {
	now time.Time
}

func (c *simClock) Now() time.Time { return c.now }

// sampler prints one row of values whenever every has passed. It re-requests
// itself each frame so it runs right after the controller's own frame.
type sampler struct {
	out       io.Writer
	values    *motion.SharedValues[float64]
	clock     motion.Clock
	scheduler motion.FrameScheduler
	every     time.Duration

	start time.Time
	next  time.Duration
	last  time.Duration
	stop  bool
}

func (s *sampler) begin() {
	s.start = s.clock.Now()
	s.row(0)
	s.next = s.every
	s.scheduler.RequestFrame(s.frame)
}

func (s *sampler) frame() {
	if s.stop {
		return
	}
	elapsed := s.clock.Now().Sub(s.start)
	if elapsed >= s.next {
		s.row(elapsed)
		for s.next <= elapsed {
			s.next += s.every
		}
	}
	s.scheduler.RequestFrame(s.frame)
}

// finish prints the final values unless they were just printed.
func (s *sampler) finish() {
	s.stop = true
	elapsed := s.clock.Now().Sub(s.start)
	if elapsed != s.last {
		s.row(elapsed)
	}
}

func (s *sampler) row(elapsed time.Duration) {
	s.last = elapsed
	vals := s.values.Values()
	var sb strings.Builder
	fmt.Fprintf(&sb, "%8v", elapsed)
	for _, key := range s.values.Keys() {
		fmt.Fprintf(&sb, "  %s=%.4g", key, vals[key])
	}
	fmt.Fprintln(s.out, sb.String())
}

// play <script>: run a script and print its values over time.
func playCmd() *cobra.Command {
	var (
		realtime bool
		step     time.Duration
		every    time.Duration
		limit    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "play <script>",
		Short: "Play a YAML animation script and print sampled values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadScript(args[0])
			if err != nil {
				return err
			}
			if every <= 0 {
				return fmt.Errorf("--every must be positive, got %v", every)
			}
			handler := &failureHandler{log: motion.LogHandler{Verbose: cfg.Verbose, Out: cmd.ErrOrStderr()}}

			if realtime {
				err = playRealtime(cmd.Context(), cmd.OutOrStdout(), s.Controller, handler, every, limit)
			} else {
				if step <= 0 {
					step = cfg.FrameInterval
				}
				err = playSimulated(cmd.OutOrStdout(), s.Controller, handler, step, every, limit)
			}
			if err != nil {
				return err
			}
			if handler.failed {
				return errAnimationFailed
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&realtime, "realtime", false, "play against the wall clock instead of simulated time")
	cmd.Flags().DurationVar(&step, "step", 0, "simulated frame length (default: config frame interval)")
	cmd.Flags().DurationVar(&every, "every", 100*time.Millisecond, "interval between printed rows")
	cmd.Flags().DurationVar(&limit, "max", time.Minute, "stop after this much animation time")
	return cmd
}

type controllerFactory func(opts ...motion.Option) (*motion.Controller[float64], error)

func playSimulated(out io.Writer, newController controllerFactory, handler motion.ErrorHandler, step, every, limit time.Duration) error {
	var q motion.FrameQueue
	clock := &simClock{now: time.Unix(0, 0)}
	ctrl, err := newController(
		motion.WithScheduler(&q),
		motion.WithClock(clock),
		motion.WithConfig(cfg),
		motion.WithErrorHandler(handler),
	)
	if err != nil {
		return err
	}
	defer ctrl.Destroy()

	smp := &sampler{out: out, values: ctrl.Values(), clock: clock, scheduler: &q, every: every}
	ctrl.Start()
	smp.begin()
	for elapsed := time.Duration(0); ctrl.State() == motion.Running && elapsed < limit; elapsed += step {
		clock.now = clock.now.Add(step)
		q.Flush()
	}
	smp.finish()
	return nil
}

func playRealtime(ctx context.Context, out io.Writer, newController controllerFactory, handler motion.ErrorHandler, every, limit time.Duration) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()
	ctx, cancelLimit := context.WithTimeout(ctx, limit)
	defer cancelLimit()

	sched := motion.NewTickerScheduler(cfg.FrameInterval)
	ctrl, err := newController(
		motion.WithScheduler(sched),
		motion.WithConfig(cfg),
		motion.WithErrorHandler(handler),
	)
	if err != nil {
		return err
	}

	smp := &sampler{out: out, values: ctrl.Values(), clock: motion.SystemClock, scheduler: sched, every: every}
	ctrl.OnStatus(func(st motion.ControllerState) {
		if st == motion.Idle {
			cancel()
		}
	})
	sched.Post(func() {
		ctrl.Start()
		smp.begin()
	})

	err = sched.Run(ctx)
	// Run has returned, so this goroutine owns the controller again.
	smp.finish()
	ctrl.Destroy()
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}
