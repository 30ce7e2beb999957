// Package motion is a frame-driven animation engine built on coroutines.
//
// Animations are written as trees of [Coroutine] values: primitives such as
// [Timing], [Wait] and [WaitUntil] that move [SharedValue]s over time, and
// combinators such as [Parallel], [Any], [Chain], [Sequence], [Stagger] and
// [Loop] that compose them. A [Controller] owns one tree and steps it once per
// frame with the time elapsed since the previous frame.
//
// # Quick start
//
//	ctrl := motion.Create(map[string]float64{"x": 0, "alpha": 0},
//		func(s *motion.SharedValues[float64]) motion.Coroutine {
//			return motion.Parallel(
//				motion.Timing(s.Current("x"), motion.TimingConfig{To: 200, Duration: time.Second}),
//				motion.Timing(s.Current("alpha"), motion.TimingConfig{To: 1, Easing: easing.Out(easing.Cubic)}),
//			)
//		})
//	ctrl.Values().OnValue(func(kv motion.KeyValue[float64]) { fmt.Println(kv.Key, kv.Value) })
//	ctrl.Start()
//
// # Frames
//
// Controllers ask a [FrameScheduler] for frames. Inside an [Ebitengine] game
// use the scheduler from the ebitenloop package, which produces one frame per
// Update. Elsewhere, run [DefaultScheduler] (a [TickerScheduler]) on the
// goroutine that owns the controllers:
//
//	go motion.DefaultScheduler.Run(ctx)
//	motion.DefaultScheduler.Post(ctrl.Start)
//
// Controllers and the values they animate are not safe for concurrent use.
// Every call must happen on the goroutine that runs the frames; use
// [TickerScheduler.Post] to hand work over from other goroutines.
//
// # Easing
//
// Easing curves live in the easing subpackage. Any [gween] easing function
// can be adapted with easing.FromGween, and [Tween] drives a gween tween
// directly.
//
// # Failures
//
// An error returned by a coroutine, or a panic raised while stepping it, stops
// the animation and is reported to the controller's [ErrorHandler] as an
// [AnimationError] or [PanicError]. The controller becomes [Idle]; the host is
// never crashed.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package motion
