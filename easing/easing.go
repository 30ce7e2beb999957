// Package easing provides easing functions for motion animations.
//
// An easing function maps normalized progress t in [0, 1] to an output
// progress. Curves are pure and deterministic; parameters are not validated,
// so out-of-range or NaN inputs produce whatever the arithmetic yields.
//
// The base curves ([Quad], [Cubic], [Sin], ...) accelerate from zero. Wrap
// them with [Out] or [InOut] to change where the motion is concentrated:
//
//	fn := easing.InOut(easing.Cubic)
//	fn(0.25) // 0.0625
//
// Curves from [gween] can be adapted with [FromGween], and any curve can be
// looked up by name or parsed from an expression with [Parse].
//
// [gween]: https://github.com/tanema/gween
package easing

import "math"

// Func maps normalized time t to normalized progress.
type Func func(t float64) float64

// Linear returns t unchanged.
func Linear(t float64) float64 {
	return t
}

// Ease is a gentle acceleration curve, Bezier(0.42, 0, 1, 1).
var Ease = BezierFunc(0.42, 0, 1, 1)

// Quad is t².
func Quad(t float64) float64 {
	return t * t
}

// Cubic is t³.
func Cubic(t float64) float64 {
	return t * t * t
}

// Poly returns t raised to the power n.
func Poly(n float64) Func {
	return func(t float64) float64 {
		return math.Pow(t, n)
	}
}

// Sin is a quarter cosine wave.
func Sin(t float64) float64 {
	return 1 - math.Cos(t*math.Pi/2)
}

// Circle is a quarter circle.
func Circle(t float64) float64 {
	return 1 - math.Sqrt(1-t*t)
}

// Exp is an exponential curve. Exp(0) is 2^-10, not zero.
func Exp(t float64) float64 {
	return math.Pow(2, 10*(t-1))
}

// Elastic returns a spring-like curve that overshoots and settles. A
// bounciness of 1 oscillates once; 0 never overshoots.
func Elastic(bounciness float64) Func {
	p := bounciness * math.Pi
	return func(t float64) float64 {
		return 1 - math.Pow(math.Cos(t*math.Pi/2), 3)*math.Cos(t*p)
	}
}

// DefaultBackOvershoot is the overshoot used by Back in most tween libraries
// (roughly a 10% pull back).
const DefaultBackOvershoot = 1.70158

// Back returns a curve that pulls back by an amount controlled by s before
// moving forward.
func Back(s float64) Func {
	return func(t float64) float64 {
		return t * t * ((s+1)*t - s)
	}
}

// Bounce is a bouncing curve that settles at 1.
func Bounce(t float64) float64 {
	switch {
	case t < 1/2.75:
		return 7.5625 * t * t
	case t < 2/2.75:
		t2 := t - 1.5/2.75
		return 7.5625*t2*t2 + 0.75
	case t < 2.5/2.75:
		t2 := t - 2.25/2.75
		return 7.5625*t2*t2 + 0.9375
	default:
		t2 := t - 2.625/2.75
		return 7.5625*t2*t2 + 0.984375
	}
}

// Steps quantizes progress into n discrete levels. Progress is floored to the
// level below unless round is set, in which case it snaps to the nearest level.
func Steps(n int, round bool) Func {
	levels := float64(n)
	return func(t float64) float64 {
		v := clampUnit(t) * levels
		if round {
			return math.Round(v) / levels
		}
		return math.Floor(v) / levels
	}
}

// In runs f forwards. It exists for symmetry with Out and InOut.
func In(f Func) Func {
	return f
}

// Out runs f backwards: t ↦ 1 - f(1-t).
func Out(f Func) Func {
	return func(t float64) float64 {
		return 1 - f(1-t)
	}
}

// InOut makes f symmetric around t = 0.5: the first half runs f, the second
// half runs f backwards.
func InOut(f Func) Func {
	return func(t float64) float64 {
		if t < 0.5 {
			return f(t*2) / 2
		}
		return 1 - f((1-t)*2)/2
	}
}

func clampUnit(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
