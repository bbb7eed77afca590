package decel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iamjosephmj/flinger/internal/testutil"
)

func defaultModel(density float64) Model {
	return Model{
		ScrollFriction:       0.008,
		DecelerationFriction: 0.09,
		DecelerationRate:     math.Log(0.78) / math.Log(0.9),
		Inflection:           0.1,
		Gravity:              9.80665,
		InchesPerMeter:       39.37,
		Density:              density,
	}
}

func TestSplineDeceleration_Golden(t *testing.T) {
	m := defaultModel(1)
	testutil.AssertRelativeError(t, 1.71480, m.SplineDeceleration(5, 0.09), testutil.GoldenTolerance)
	assert.Equal(t, m.SplineDeceleration(5, 0.09), m.SplineDeceleration(-5, 0.09))
}

func TestCompute_Golden(t *testing.T) {
	tests := []struct {
		name     string
		density  float64
		velocity float64
		distance float64
		duration int64
	}{
		{"Slow release dense screen", 10, 5, 0.0033697, 6},
		{"Typical fling", 1, 1000, 181.5784, 1815},
		{"Typical fling dense screen", 10, 1000, 33.3270, 333},
		{"Slow release", 1, 5, 0.0183595, 36},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := defaultModel(tt.density).Compute(tt.velocity)
			testutil.AssertRelativeError(t, tt.distance, r.Distance, testutil.GoldenTolerance)
			assert.Equal(t, tt.duration, r.DurationMs)
		})
	}
}

func TestPhysicalScale(t *testing.T) {
	m := defaultModel(2)
	assert.InDelta(t, 9.80665*39.37*2*160*0.09, m.PhysicalScale(), 1e-9)
}

func TestDistance_ScalesWithVelocity(t *testing.T) {
	m := defaultModel(1)
	for _, v := range []float64{50, 500, 2000, 8000} {
		half, full, double := m.Distance(v/2), m.Distance(v), m.Distance(2*v)
		assert.Greater(t, double, full, "v=%v", v)
		assert.Greater(t, full, half, "v=%v", v)
		assert.Greater(t, half, 0.0, "v=%v", v)
	}
}

func TestFrictionMonotonicity(t *testing.T) {
	const v = 2500.0
	prevDistance := math.Inf(1)
	for _, f := range []float64{0.002, 0.005, 0.008, 0.015, 0.05, 0.1} {
		m := defaultModel(1)
		m.ScrollFriction = f
		d := m.Distance(v)
		assert.Less(t, d, prevDistance, "scroll friction %v", f)
		prevDistance = d
	}

	prevDuration := int64(math.MaxInt64)
	for _, f := range []float64{0.02, 0.05, 0.09, 0.2, 0.5} {
		m := defaultModel(1)
		m.DecelerationFriction = f
		d := m.Duration(v)
		assert.Less(t, d, prevDuration, "deceleration friction %v", f)
		prevDuration = d
	}
}

func TestSymmetry(t *testing.T) {
	m := defaultModel(2.625)
	for _, v := range []float64{1.5, 30, 750, 4321, 20000} {
		assert.Equal(t, m.Distance(v), m.Distance(-v), "v=%v", v)
		assert.Equal(t, m.Duration(v), m.Duration(-v), "v=%v", v)
	}
}

func TestCompute_SharedCoefficient(t *testing.T) {
	m := defaultModel(1)
	r := m.Compute(3000)
	friction := m.ScrollFriction * m.PhysicalScale()
	assert.InDelta(t, m.SplineDeceleration(3000, friction), r.L, 1e-12)

	rate := m.DecelerationRate
	assert.InDelta(t, friction*math.Exp(rate/(rate-1)*r.L), r.Distance, 1e-9)
	assert.Equal(t, int64(1000*math.Exp(r.L/(rate-1))), r.DurationMs)
}

func TestCompute_LargeVelocityIsFinite(t *testing.T) {
	r := defaultModel(3).Compute(20000)
	assert.False(t, math.IsNaN(r.Distance) || math.IsInf(r.Distance, 0))
	assert.Positive(t, r.DurationMs)
}

// TestSplineDeceleration_Degenerate tests that degenerate inputs propagate as
// non-finite values instead of being clamped.
func TestSplineDeceleration_Degenerate(t *testing.T) {
	m := defaultModel(1)
	assert.True(t, math.IsInf(m.SplineDeceleration(0, 0.09), -1))
	assert.True(t, math.IsNaN(m.SplineDeceleration(0, 0)))
	assert.True(t, math.IsInf(m.SplineDeceleration(100, 0), 1))
}

func BenchmarkCompute(b *testing.B) {
	m := defaultModel(2)
	for b.Loop() {
		_ = m.Compute(4200)
	}
}
