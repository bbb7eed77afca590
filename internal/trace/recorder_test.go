package trace

import (
	"bytes"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamjosephmj/flinger/internal/decel"
	"github.com/iamjosephmj/flinger/internal/fling"
	"github.com/iamjosephmj/flinger/internal/spline"
	"github.com/iamjosephmj/flinger/internal/testutil"
	"github.com/iamjosephmj/flinger/internal/trajectory"
)

func runFling(t *testing.T, velocity float64, hooks fling.Hooks) {
	t.Helper()
	tab, err := spline.Build(spline.Params{Inflection: 0.1, StartTension: 0.1, EndTension: 1.0, Samples: 100})
	require.NoError(t, err)
	tr := trajectory.New(trajectory.Spec{
		Model: decel.Model{
			ScrollFriction:       0.008,
			DecelerationFriction: 0.09,
			DecelerationRate:     math.Log(0.78) / math.Log(0.9),
			Inflection:           0.1,
			Gravity:              9.80665,
			InchesPerMeter:       39.37,
			Density:              1,
		},
		Table: tab,
	}, velocity)

	_, err = fling.NewSession(tr, func(d float64) float64 { return d }, hooks).Run(fling.NewFixedRateFrames(60))
	require.NoError(t, err)
}

func TestRecorder_Fling(t *testing.T) {
	rec := NewRecorder(0)
	runFling(t, -1000, rec)

	sum := rec.Summary()
	assert.True(t, rec.Started())
	assert.True(t, sum.Ended)
	assert.False(t, sum.Cancelled)
	assert.Equal(t, -1000.0, sum.InitialVelocity)
	assert.Equal(t, len(rec.Samples()), sum.Ticks)
	assert.InDelta(t, 181.5784, sum.TotalConsumed, 1e-3)
	assert.Equal(t, 1.0, sum.FinalProgress)

	assert.LessOrEqual(t, sum.MeanSpeed, sum.RMSSpeed)
	assert.LessOrEqual(t, sum.RMSSpeed, sum.PeakSpeed)
	assert.LessOrEqual(t, sum.PeakSpeed, 1000.0)

	speeds := rec.Velocities()
	for i := range speeds {
		speeds[i] = math.Abs(speeds[i])
	}
	testutil.AssertNonIncreasing(t, speeds, "recorded speeds")
	assert.Equal(t, sum.PeakSpeed, speeds[0])

	for i, s := range rec.Samples() {
		assert.Equal(t, i+1, s.Tick)
	}
}

func TestRecorder_Limit(t *testing.T) {
	rec := NewRecorder(10)
	runFling(t, 3000, rec)

	sum := rec.Summary()
	assert.Len(t, rec.Samples(), 10)
	assert.Equal(t, sum.Ticks-10, rec.Dropped())
	assert.Equal(t, sum.Ticks, rec.Samples()[9].Tick)
}

func TestRecorder_Empty(t *testing.T) {
	sum := NewRecorder(0).Summary()
	assert.Zero(t, sum.Ticks)
	assert.Zero(t, sum.PeakSpeed)
	assert.False(t, sum.Ended)
}

func TestTee(t *testing.T) {
	a, b := NewRecorder(0), NewRecorder(0)
	runFling(t, 1000, Tee(a, nil, b))

	assert.Equal(t, a.Summary(), b.Summary())
	assert.True(t, b.Summary().Ended)
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	rec := NewRecorder(0)
	runFling(t, 1000, Tee(LogHooks(l), rec))

	out := buf.String()
	assert.Contains(t, out, "fling start")
	assert.Contains(t, out, "fling end")
	assert.NotContains(t, out, "fling tick")

	buf.Reset()
	l.Info("summary", "fling", rec.Summary())
	assert.Contains(t, buf.String(), "fling.ticks=")
}
