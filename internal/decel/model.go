// Package decel converts fling physics constants and a release velocity into
// a travel distance and a duration.
//
// Both values derive from a single deceleration coefficient
//
//	l = ln(inflection * |v| / (scrollFriction * physicalScale))
//
// so that distance and duration always describe the same motion.
package decel

import "math"

// densityToPixelsPerInch converts a display density into pixels per inch.
const densityToPixelsPerInch = 160

// Model holds the constants of the deceleration law together with the
// display density it is evaluated at. Model is a value type; it never changes
// after construction.
type Model struct {
	ScrollFriction       float64
	DecelerationFriction float64
	DecelerationRate     float64
	Inflection           float64
	Gravity              float64
	InchesPerMeter       float64
	Density              float64
}

// Result is the motion implied by one release velocity.
type Result struct {
	// L is the deceleration coefficient the other fields derive from.
	L float64

	// Distance is the unsigned travel distance in display units.
	Distance float64

	// DurationMs is the motion duration in whole milliseconds.
	DurationMs int64
}

// PhysicalScale returns gravity * inchesPerMeter * density * 160 * decelerationFriction.
func (m Model) PhysicalScale() float64 {
	return m.Gravity * m.InchesPerMeter * m.Density * densityToPixelsPerInch * m.DecelerationFriction
}

// SplineDeceleration returns ln(inflection * |velocity| / friction).
//
// The result is -Inf for a zero velocity and NaN or +Inf for a zero or
// negative friction. Callers guard small velocities; the value is not clamped.
func (m Model) SplineDeceleration(velocity, friction float64) float64 {
	return math.Log(m.Inflection * math.Abs(velocity) / friction)
}

// Compute evaluates the deceleration coefficient once and derives both the
// distance and the duration from it.
func (m Model) Compute(velocity float64) Result {
	friction := m.ScrollFriction * m.PhysicalScale()
	l := m.SplineDeceleration(velocity, friction)
	decelMinusOne := m.DecelerationRate - 1

	return Result{
		L:          l,
		Distance:   friction * math.Exp(m.DecelerationRate/decelMinusOne*l),
		DurationMs: int64(1000 * math.Exp(l/decelMinusOne)),
	}
}

// Distance returns the unsigned travel distance for velocity.
func (m Model) Distance(velocity float64) float64 {
	return m.Compute(velocity).Distance
}

// Duration returns the motion duration for velocity in milliseconds.
func (m Model) Duration(velocity float64) int64 {
	return m.Compute(velocity).DurationMs
}
