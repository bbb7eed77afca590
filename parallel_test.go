package flinger

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flingResult struct {
	residual float64
	total    float64
	ticks    int
}

func runRecorded(e *Engine, v float64, snap bool) (flingResult, error) {
	var r flingResult
	hooks := HookFuncs{
		Progress: func(float64, float64) { r.ticks++ },
		End:      func(total float64, _ bool) { r.total = total },
	}

	var err error
	if snap {
		col := &column{size: 90, window: 720}
		r.residual, err = e.Snap(v, col.consume, col, hooks)
	} else {
		r.residual, err = e.Fling(v, func(d float64) float64 { return d }, hooks)
	}
	return r, err
}

// TestEngine_ConcurrentSessions checks that sessions sharing one engine and
// table produce bit-identical results to the same sessions run sequentially.
func TestEngine_ConcurrentSessions(t *testing.T) {
	opts := DefaultSnapOptions()
	opts.Mode = SnapSmoothFusion
	e, err := NewEngine(DefaultConfig(), 2.75, WithSnapOptions(opts))
	require.NoError(t, err)

	velocities := []float64{-9000, -3100, -420, 75, 640, 1800, 5200, 14000}

	type job struct {
		v    float64
		snap bool
	}
	var jobs []job
	for _, v := range velocities {
		jobs = append(jobs, job{v, false}, job{v, true})
	}

	sequential := make([]flingResult, len(jobs))
	for i, j := range jobs {
		sequential[i], err = runRecorded(e, j.v, j.snap)
		require.NoError(t, err)
	}

	parallel := make([]flingResult, len(jobs))
	errs := make([]error, len(jobs))
	var wg sync.WaitGroup
	for i, j := range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			parallel[i], errs[i] = runRecorded(e, j.v, j.snap)
		}()
	}
	wg.Wait()

	for i := range jobs {
		require.NoError(t, errs[i])
		assert.Equal(t, sequential[i], parallel[i], "job %d v=%v snap=%v", i, jobs[i].v, jobs[i].snap)
	}
}

// TestTableCache_ConcurrentEngines builds engines for the same config from
// many goroutines; all of them must end up with one shared table.
func TestTableCache_ConcurrentEngines(t *testing.T) {
	cache := NewTableCache()
	engines := make([]*Engine, 16)

	var wg sync.WaitGroup
	for i := range engines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e, err := NewEngine(DefaultConfig(), float64(i+1), WithTableCache(cache))
			if err == nil {
				engines[i] = e
			}
		}()
	}
	wg.Wait()

	require.NotNil(t, engines[0])
	for _, e := range engines[1:] {
		require.NotNil(t, e)
		assert.Same(t, engines[0].Table(), e.Table())
	}
	assert.Equal(t, 1, cache.Len())
}

func BenchmarkEngine_Snap(b *testing.B) {
	e, err := NewEngine(DefaultConfig(), 2.75)
	require.NoError(b, err)

	b.ReportAllocs()
	for b.Loop() {
		col := &column{size: 90, window: 720}
		_, _ = e.Snap(3000, col.consume, col, nil)
	}
}

func BenchmarkComputeTrajectory(b *testing.B) {
	e, err := NewEngine(DefaultConfig(), 2.75)
	require.NoError(b, err)

	b.ReportAllocs()
	for b.Loop() {
		_ = e.Trajectory(4200)
	}
}
