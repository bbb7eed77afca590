// Package trajectory turns a release velocity into a closed-form fling:
// position and velocity at any elapsed time.
package trajectory

import (
	"math"

	"github.com/iamjosephmj/flinger/internal/decel"
	"github.com/iamjosephmj/flinger/internal/mathutil"
	"github.com/iamjosephmj/flinger/internal/simdops"
	"github.com/iamjosephmj/flinger/internal/spline"
)

// Spec is the decay law shared by every gesture of one configuration and
// density: the deceleration model, its spline table and the velocity below
// which motion counts as finished.
type Spec struct {
	Model                decel.Model
	Table                *spline.Table
	AbsVelocityThreshold float64
}

// Trajectory is one fling, computed at gesture start and read every frame.
// Velocities are in display units per second, times in milliseconds.
type Trajectory struct {
	InitialVelocity float64
	Distance        float64 // unsigned travel distance
	DurationMs      int64

	sign      float64
	threshold float64
	table     *spline.Table
}

// New computes the trajectory for velocity under spec.
func New(spec Spec, velocity float64) *Trajectory {
	r := spec.Model.Compute(velocity)
	return &Trajectory{
		InitialVelocity: velocity,
		Distance:        r.Distance,
		DurationMs:      r.DurationMs,
		sign:            mathutil.Sign(velocity),
		threshold:       spec.AbsVelocityThreshold,
		table:           spec.Table,
	}
}

// TargetValue returns the signed distance at which the fling comes to rest.
func (t *Trajectory) TargetValue() float64 {
	return t.sign * t.Distance
}

func (t *Trajectory) progress(elapsedMs float64) float64 {
	return elapsedMs / float64(t.DurationMs)
}

// Position returns the signed offset from the release point after elapsedMs.
// A trajectory with no duration is already at its target.
func (t *Trajectory) Position(elapsedMs float64) float64 {
	if t.DurationMs <= 0 {
		return t.TargetValue()
	}
	d, _ := t.table.Sample(t.progress(elapsedMs))
	return t.Distance * t.sign * d
}

// VelocityAt returns the signed velocity after elapsedMs.
func (t *Trajectory) VelocityAt(elapsedMs float64) float64 {
	if t.DurationMs <= 0 {
		return 0
	}
	_, v := t.table.Sample(t.progress(elapsedMs))
	return v * t.sign * t.Distance / float64(t.DurationMs) * 1000
}

// IsFinished reports whether the fling has come to rest at elapsedMs: its
// duration has passed, or its speed has dropped to the absolute velocity
// threshold.
func (t *Trajectory) IsFinished(elapsedMs float64) bool {
	if elapsedMs >= float64(t.DurationMs) {
		return true
	}
	return t.threshold > 0 && elapsedMs > 0 && math.Abs(t.VelocityAt(elapsedMs)) <= t.threshold
}

// ElapsedFor returns the time in milliseconds at which the fling has covered
// |offset|. Offsets at or beyond the distance map to the full duration.
func (t *Trajectory) ElapsedFor(offset float64) float64 {
	if t.Distance <= 0 || t.DurationMs <= 0 {
		return 0
	}
	return t.table.TimeAt(math.Abs(offset)/t.Distance) * float64(t.DurationMs)
}

// Curve returns the positions at 0, frameMs, 2*frameMs, ... up to and
// including the first frame at or past the end of the fling.
func (t *Trajectory) Curve(frameMs float64) []float64 {
	return curve[float64](t, frameMs)
}

// CurveFloat32 is Curve in single precision.
func (t *Trajectory) CurveFloat32(frameMs float64) []float32 {
	return curve[float32](t, frameMs)
}

func curve[F simdops.Float](t *Trajectory, frameMs float64) []F {
	if frameMs <= 0 {
		return nil
	}
	frames := int(math.Ceil(float64(t.DurationMs)/frameMs)) + 1

	coeffs := make([]F, frames)
	for i := range coeffs {
		if t.DurationMs <= 0 {
			coeffs[i] = 1
			continue
		}
		d, _ := t.table.Sample(t.progress(float64(i) * frameMs))
		coeffs[i] = F(d)
	}

	out := make([]F, frames)
	simdops.For[F]().Scale(out, coeffs, F(t.TargetValue()))
	return out
}
