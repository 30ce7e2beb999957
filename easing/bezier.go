package easing

import "math"

// Factory produces an easing function. Bezier returns one so curves can be
// shared by value and instantiated where they are used.
type Factory func() Func

// Bezier returns a factory for a cubic-bezier shaped curve.
//
// The curve is evaluated directly as the y polynomial of a cubic Bézier with
// control points (0,0), (x1,y1), (x2,y2), (1,1) at parameter t; the x
// coordinates are accepted for signature compatibility but do not take part.
// Use [CubicBezier] for the CSS cubic-bezier() timing function, which solves
// for the parameter whose x equals t.
func Bezier(x1, y1, x2, y2 float64) Factory {
	return func() Func {
		return BezierFunc(x1, y1, x2, y2)
	}
}

// BezierFunc is Bezier without the factory indirection.
func BezierFunc(x1, y1, x2, y2 float64) Func {
	return func(t float64) float64 {
		return sampleCurve(y1, y2, t)
	}
}

// CubicBezier returns a cubic-bezier easing function matching CSS cubic-bezier().
// The parameters define the two control points (x1,y1) and (x2,y2) of the curve.
// The curve starts at (0,0) and ends at (1,1).
func CubicBezier(x1, y1, x2, y2 float64) Func {
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}

		u := t
		// Newton-Raphson converges quickly for most values.
		for range 8 {
			x := sampleCurve(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				return sampleCurve(y1, y2, clampUnit(u))
			}
			dx := sampleCurveDerivative(x1, x2, u)
			if math.Abs(dx) < 1e-7 {
				break
			}
			u -= x / dx
		}

		// Bisection fallback keeps u inside [0,1].
		lo, hi := 0.0, 1.0
		u = clampUnit(u)
		for range 12 {
			x := sampleCurve(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				break
			}
			if x > 0 {
				hi = u
			} else {
				lo = u
			}
			u = (lo + hi) * 0.5
		}

		return sampleCurve(y1, y2, u)
	}
}

func sampleCurve(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*t*a + 3*inv*t*t*b + t*t*t
}

func sampleCurveDerivative(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*a + 6*inv*t*(b-a) + 3*t*t*(1-b)
}
