package trace

import (
	"log/slog"
	"math"
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/iamjosephmj/flinger/internal/fling"
	"github.com/iamjosephmj/flinger/internal/simdops"
)

// Sample is one OnProgress report.
type Sample struct {
	Tick     int     `yaml:"tick"`
	Progress float64 `yaml:"progress"`
	Velocity float64 `yaml:"velocity"`
}

// Summary condenses a recorded fling.
type Summary struct {
	InitialVelocity float64 `yaml:"initial_velocity"`
	Ticks           int     `yaml:"ticks"`
	TotalConsumed   float64 `yaml:"total_consumed"`
	Cancelled       bool    `yaml:"cancelled"`
	Ended           bool    `yaml:"ended"`
	FinalProgress   float64 `yaml:"final_progress"`
	PeakSpeed       float64 `yaml:"peak_speed"`
	MeanSpeed       float64 `yaml:"mean_speed"`
	RMSSpeed        float64 `yaml:"rms_speed"`
}

// Recorder is a fling.Hooks that keeps the most recent samples of a fling.
// It is safe for concurrent use.
type Recorder struct {
	samples *Ring[Sample]

	mu        sync.Mutex
	initial   float64
	started   bool
	ended     bool
	cancelled bool
	total     float64
	ticks     int
}

// NewRecorder returns a recorder keeping at most limit samples. A limit of
// zero or less keeps all of them.
func NewRecorder(limit int) *Recorder {
	return &Recorder{samples: NewRing[Sample](defaultRingCapacity, limit)}
}

// OnStart implements fling.Hooks.
func (r *Recorder) OnStart(initialVelocity float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.initial = initialVelocity
	r.started = true
}

// OnProgress implements fling.Hooks.
func (r *Recorder) OnProgress(progress, velocity float64) {
	r.mu.Lock()
	r.ticks++
	tick := r.ticks
	r.mu.Unlock()

	r.samples.Push(Sample{Tick: tick, Progress: progress, Velocity: velocity})
}

// OnEnd implements fling.Hooks.
func (r *Recorder) OnEnd(totalConsumed float64, cancelled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ended = true
	r.total = totalConsumed
	r.cancelled = cancelled
}

// Started reports whether OnStart fired.
func (r *Recorder) Started() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.started
}

// Samples returns the retained samples, oldest first.
func (r *Recorder) Samples() []Sample { return r.samples.All() }

// Dropped returns the number of samples discarded to stay within the limit.
func (r *Recorder) Dropped() int { return r.samples.Dropped() }

// Velocities returns the velocity of each retained sample.
func (r *Recorder) Velocities() []float64 {
	samples := r.samples.All()
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.Velocity
	}
	return out
}

// Summary computes speed statistics over the retained samples.
func (r *Recorder) Summary() Summary {
	r.mu.Lock()
	sum := Summary{
		InitialVelocity: r.initial,
		Ticks:           r.ticks,
		TotalConsumed:   r.total,
		Cancelled:       r.cancelled,
		Ended:           r.ended,
	}
	r.mu.Unlock()

	samples := r.samples.All()
	if len(samples) == 0 {
		return sum
	}
	sum.FinalProgress = samples[len(samples)-1].Progress

	speeds := make([]float64, len(samples))
	for i, s := range samples {
		speeds[i] = math.Abs(s.Velocity)
	}

	ops := simdops.For[float64]()
	n := float64(len(speeds))
	sum.PeakSpeed = floats.Max(speeds)
	sum.MeanSpeed = ops.Sum(speeds) / n
	sum.RMSSpeed = math.Sqrt(ops.DotProduct(speeds, speeds) / n)
	return sum
}

// LogValue implements slog.LogValuer.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("initial_velocity", s.InitialVelocity),
		slog.Int("ticks", s.Ticks),
		slog.Float64("total_consumed", s.TotalConsumed),
		slog.Bool("cancelled", s.Cancelled),
		slog.Float64("peak_speed", s.PeakSpeed),
		slog.Float64("mean_speed", s.MeanSpeed),
	)
}

// Tee fans hook calls out to each non-nil hooks value in order.
func Tee(hooks ...fling.Hooks) fling.Hooks {
	out := make(tee, 0, len(hooks))
	for _, h := range hooks {
		if h != nil {
			out = append(out, h)
		}
	}
	return out
}

type tee []fling.Hooks

func (t tee) OnStart(v float64) {
	for _, h := range t {
		h.OnStart(v)
	}
}

func (t tee) OnProgress(p, v float64) {
	for _, h := range t {
		h.OnProgress(p, v)
	}
}

func (t tee) OnEnd(total float64, cancelled bool) {
	for _, h := range t {
		h.OnEnd(total, cancelled)
	}
}

// LogHooks reports a fling to l: start and end at Info, each tick at Debug.
func LogHooks(l *slog.Logger) fling.Hooks {
	return fling.HookFuncs{
		Start: func(v float64) {
			l.Info("fling start", "velocity", v)
		},
		Progress: func(p, v float64) {
			l.Debug("fling tick", "progress", p, "velocity", v)
		},
		End: func(total float64, cancelled bool) {
			l.Info("fling end", "total_consumed", total, "cancelled", cancelled)
		},
	}
}
