// Package mathutil provides numerical helpers for the fling physics engine.
package mathutil

import "math"

// Bezier evaluates the one-dimensional cubic Bézier anchored at 0 and 1 with
// inner control values c1 and c2:
//
//	B(t) = 3t(1-t)((1-t)c1 + t c2) + t³
func Bezier(t, c1, c2 float64) float64 {
	coef := 3 * t * (1 - t)
	return coef*((1-t)*c1+t*c2) + t*t*t
}

// bezierSlope is dB/dt for Bezier.
func bezierSlope(t, c1, c2 float64) float64 {
	d := 1 - t
	return 3*d*d*c1 + 6*d*t*(c2-c1) + 3*t*t*(1-c2)
}

// BezierMonotone reports whether Bezier(t, c1, c2) is non-decreasing on
// [0, 1]. The slope is a quadratic in Bernstein form with coefficients c1,
// c2-c1 and 1-c2; it stays non-negative exactly when the outer two are and
// the middle one is at least -sqrt(c1(1-c2)).
func BezierMonotone(c1, c2 float64) bool {
	if !(c1 >= 0 && c2 <= 1) {
		return false
	}
	return c2-c1 >= -math.Sqrt(c1*(1-c2))
}

// Bisect finds x in [lo, hi] with |f(x) - target| < BisectTolerance for a
// non-decreasing f. It reports false when the tolerance was not reached within
// BisectMaxIterations, returning the last midpoint tried.
func Bisect(f func(float64) float64, target, lo, hi float64) (float64, bool) {
	x := lo
	for range BisectMaxIterations {
		x = lo + (hi-lo)/2
		fx := f(x)
		if math.Abs(fx-target) < BisectTolerance {
			return x, true
		}
		if fx > target {
			hi = x
		} else {
			lo = x
		}
	}
	return x, false
}

// CubicBezierEasing returns an easing curve through (0,0) and (1,1) with
// control points (x1,y1) and (x2,y2), in the CSS cubic-bezier sense.
//
// For a progress value p it solves Bx(t) = p with Newton's method, falling
// back to bisection when the slope vanishes, and returns By(t).
func CubicBezierEasing(x1, y1, x2, y2 float64) func(float64) float64 {
	return func(p float64) float64 {
		if p <= 0 {
			return 0
		}
		if p >= 1 {
			return 1
		}

		t := p
		solved := false
		for range newtonIterations {
			dx := Bezier(t, x1, x2) - p
			if math.Abs(dx) < newtonEpsilon {
				solved = true
				break
			}
			slope := bezierSlope(t, x1, x2)
			if math.Abs(slope) < newtonEpsilon {
				break
			}
			t -= dx / slope
			if t <= 0 || t >= 1 {
				break
			}
		}
		if !solved || t < 0 || t > 1 {
			t, _ = Bisect(func(v float64) float64 { return Bezier(v, x1, x2) }, p, 0, 1)
		}

		return Bezier(t, y1, y2)
	}
}

// FastOutSlowIn is the standard material easing curve, cubic-bezier(0.4, 0, 0.2, 1).
var FastOutSlowIn = CubicBezierEasing(0.4, 0, 0.2, 1)

// Sign returns -1, 0 or 1 according to the sign of x. NaN is returned unchanged.
func Sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return x
	}
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
