// Package spline builds the fixed-resolution lookup table that shapes a fling.
//
// The table samples two cubic Bézier curves whose inner control values are
// derived from the inflection point and the start and end tensions:
//
//	p1 = StartTension * Inflection
//	p2 = 1 - EndTension * (1 - Inflection)
//
// The tension curve B(x; StartTension, 1) and the inflection curve
// B(x; p1, p2) are combined twice. For each normalized time alpha the
// inflection curve is inverted and the tension curve evaluated at the root,
// giving the distance progression at that time. The reverse pairing gives the
// time at which a distance progression is reached.
package spline

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/iamjosephmj/flinger/internal/mathutil"
)

// ErrNoConvergence indicates spline parameters for which the root finder could
// not reach its tolerance.
var ErrNoConvergence = errors.New("spline root finding did not converge")

// ErrNotMonotonic indicates tensions that bend a curve backwards, so a fling
// would overshoot its target and reverse. It wraps ErrNoConvergence.
var ErrNotMonotonic = fmt.Errorf("%w: curve is not monotonic", ErrNoConvergence)

// Params are the spline shaping constants. Params is comparable and is used
// as the cache key for built tables.
type Params struct {
	Inflection   float64
	StartTension float64
	EndTension   float64
	Samples      int
}

// P1 returns the first inner control value of the inflection curve.
func (p Params) P1() float64 { return p.StartTension * p.Inflection }

// P2 returns the second inner control value of the inflection curve.
func (p Params) P2() float64 { return 1 - p.EndTension*(1-p.Inflection) }

// Monotonic reports whether both the tension and the inflection curve are
// non-decreasing, which the table requires.
func (p Params) Monotonic() bool {
	return mathutil.BezierMonotone(p.StartTension, 1) && mathutil.BezierMonotone(p.P1(), p.P2())
}

// Table is an immutable spline lookup table. It is safe for concurrent use.
type Table struct {
	params   Params
	n        int
	distance []float64 // distance progression at uniform time knots
	time     []float64 // time progression at uniform distance knots
}

// Build computes the table for p. It fails with ErrNotMonotonic when a curve
// bends backwards, and with ErrNoConvergence when any knot cannot be solved
// within mathutil.BisectMaxIterations.
func Build(p Params) (*Table, error) {
	n := p.Samples
	if n < 1 {
		return nil, fmt.Errorf("%w: sample count %d", ErrNoConvergence, n)
	}
	if !p.Monotonic() {
		return nil, fmt.Errorf("%w: start tension %g, controls %g and %g", ErrNotMonotonic, p.StartTension, p.P1(), p.P2())
	}

	p1, p2 := p.P1(), p.P2()
	inflection := func(x float64) float64 { return mathutil.Bezier(x, p1, p2) }
	tension := func(x float64) float64 { return mathutil.Bezier(x, p.StartTension, 1) }

	alphas := floats.Span(make([]float64, n+1), 0, 1)

	t := &Table{
		params:   p,
		n:        n,
		distance: make([]float64, n+1),
		time:     make([]float64, n+1),
	}

	for i, alpha := range alphas[:n] {
		x, ok := mathutil.Bisect(inflection, alpha, 0, 1)
		if !ok {
			return nil, fmt.Errorf("%w: distance knot %d (alpha=%g)", ErrNoConvergence, i, alpha)
		}
		t.distance[i] = tension(x)

		y, ok := mathutil.Bisect(tension, alpha, 0, 1)
		if !ok {
			return nil, fmt.Errorf("%w: time knot %d (alpha=%g)", ErrNoConvergence, i, alpha)
		}
		t.time[i] = inflection(y)
	}

	t.time[n] = 1
	t.distance[n] = t.time[n]

	return t, nil
}

// Params returns the parameters the table was built from.
func (t *Table) Params() Params { return t.params }

// Samples returns the table resolution.
func (t *Table) Samples() int { return t.n }

// Sample returns the distance and velocity coefficients at normalized time
// tn. For tn >= 1 it returns the terminal plateau (1, 0); negative tn is
// treated as 0.
//
// The velocity coefficient is the slope of the distance progression with
// respect to normalized time.
func (t *Table) Sample(tn float64) (distanceCoeff, velocityCoeff float64) {
	return lookup(t.distance, t.n, tn)
}

// TimeAt returns the normalized time at which the distance progression
// reaches fraction. For fraction >= 1 it returns 1.
func (t *Table) TimeAt(fraction float64) float64 {
	v, _ := lookup(t.time, t.n, fraction)
	return v
}

// Knots returns a copy of the distance progression knots.
func (t *Table) Knots() []float64 {
	out := make([]float64, len(t.distance))
	copy(out, t.distance)
	return out
}

func lookup(knots []float64, n int, x float64) (value, slope float64) {
	if x >= 1 {
		return 1, 0
	}
	if x < 0 {
		x = 0
	}

	idx := int(float64(n) * x)
	if idx >= n {
		idx = n - 1
	}

	lo := float64(idx) / float64(n)
	hi := float64(idx+1) / float64(n)
	slope = (knots[idx+1] - knots[idx]) / (hi - lo)
	value = knots[idx] + (x-lo)*slope
	return value, slope
}
