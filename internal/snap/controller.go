package snap

import (
	"errors"
	"fmt"
	"math"

	"github.com/iamjosephmj/flinger/internal/fling"
	"github.com/iamjosephmj/flinger/internal/logging"
	"github.com/iamjosephmj/flinger/internal/mathutil"
	"github.com/iamjosephmj/flinger/internal/settle"
	"github.com/iamjosephmj/flinger/internal/trajectory"
)

// ErrSessionUsed is returned when Run is called twice on one Session.
var ErrSessionUsed = errors.New("snap session already run")

// Phase is the stage a snap Session is in.
type Phase int

const (
	// PhaseIdle is a session that has not run.
	PhaseIdle Phase = iota

	// PhaseFling is the decaying fling.
	PhaseFling

	// PhaseSettle is the animation onto the snap point.
	PhaseSettle

	// PhaseDone is a session that has returned from Run.
	PhaseDone
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseFling:
		return "fling"
	case PhaseSettle:
		return "settle"
	case PhaseDone:
		return "done"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Controller runs snapping flings with fixed options. It keeps no
// per-gesture state and may be shared.
type Controller struct {
	opts Options
}

// NewController returns a controller for opts. A nil Motion becomes
// settle.DefaultSpring() and a non-positive FrameRate becomes
// fling.DefaultFrameRate.
func NewController(opts Options) *Controller {
	if opts.Motion == nil {
		opts.Motion = settle.DefaultSpring()
	}
	if opts.FrameRate <= 0 {
		opts.FrameRate = fling.DefaultFrameRate
	}
	return &Controller{opts: opts}
}

// Options returns the effective options.
func (c *Controller) Options() Options { return c.opts }

// FusionThreshold returns the speed below which SmoothFusion hands a fling
// released at v0 over to the settle phase.
func (o Options) FusionThreshold(v0 float64) float64 {
	return mathutil.Clamp(math.Abs(v0)*o.FusionVelocityRatio, o.MinFusionThreshold, o.MaxFusionThreshold)
}

// SeedVelocity returns the initial velocity of the settle phase given the
// fling's residual velocity, the snap offset, and whether the fling was
// handed over by the fusion threshold.
func (o Options) SeedVelocity(residual, offset float64, triggered bool) float64 {
	speed := math.Abs(residual)
	if o.Mode != SmoothFusion {
		if speed > o.StandardSeedMinVelocity {
			return residual * o.StandardSeedFraction
		}
		return 0
	}

	switch {
	case triggered && speed > o.FusedSeedMinVelocity:
		return residual * o.FusedSeedFraction
	case speed > o.ResidualSeedMinVelocity:
		return residual * o.ResidualSeedFraction
	default:
		return offset * o.SyntheticVelocityFactor
	}
}

// approachVelocity seeds a settle that starts against an edge. Standard
// starts from rest; SmoothFusion keeps its synthetic approach speed.
func (o Options) approachVelocity(offset float64) float64 {
	if o.Mode != SmoothFusion {
		return 0
	}
	return offset * o.SyntheticVelocityFactor
}

// Run performs a snapping fling with both phases ticking at the controller's
// frame rate. It always returns zero residual velocity: whatever the fling
// leaves is absorbed by the settle phase.
func (c *Controller) Run(traj *trajectory.Trajectory, consume fling.ConsumeFunc, provider Provider, hooks fling.Hooks) (float64, error) {
	return c.NewSession(traj, consume, provider, hooks).Run(fling.NewFixedRateFrames(c.opts.FrameRate))
}

// NewSession prepares a snapping fling. hooks may be nil.
func (c *Controller) NewSession(traj *trajectory.Trajectory, consume fling.ConsumeFunc, provider Provider, hooks fling.Hooks) *Session {
	if hooks == nil {
		hooks = fling.HookFuncs{}
	}
	return &Session{
		opts:     c.opts,
		traj:     traj,
		consume:  consume,
		provider: provider,
		hooks:    hooks,
	}
}

// Session is the state of one snapping fling. It is not safe for concurrent use.
type Session struct {
	opts     Options
	traj     *trajectory.Trajectory
	consume  fling.ConsumeFunc
	provider Provider
	hooks    fling.Hooks

	phase             Phase
	threshold         float64
	residualVelocity  float64
	velocityTriggered bool
	hitBoundary       bool
	targetOffset      float64
	fusionVelocity    float64
	settled           float64
	settleFrames      int
	totalConsumed     float64
	maxProgress       float64
	cancelled         bool
}

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Threshold returns the fusion threshold, or zero in Standard mode.
func (s *Session) Threshold() float64 { return s.threshold }

// ResidualVelocity returns the velocity the fling phase ended with.
func (s *Session) ResidualVelocity() float64 { return s.residualVelocity }

// VelocityTriggered reports whether the fling phase was ended by the fusion
// threshold.
func (s *Session) VelocityTriggered() bool { return s.velocityTriggered }

// HitBoundary reports whether the fling phase ended against an edge.
func (s *Session) HitBoundary() bool { return s.hitBoundary }

// TargetOffset returns the snap distance measured after the fling phase.
func (s *Session) TargetOffset() float64 { return s.targetOffset }

// FusionVelocity returns the velocity the settle phase was seeded with.
func (s *Session) FusionVelocity() float64 { return s.fusionVelocity }

// SettleFrames returns the number of settle frames run.
func (s *Session) SettleFrames() int { return s.settleFrames }

// TotalConsumed returns the absolute distance applied across both phases.
func (s *Session) TotalConsumed() float64 { return s.totalConsumed }

// Run executes the fling phase with frames, then the settle phase at the
// configured frame rate. OnStart and OnEnd fire once each around both
// phases; OnEnd reports cancelled only when the settle phase hit a boundary
// or a step failed. A fling phase cut short by a boundary or by the fusion
// threshold still settles.
func (s *Session) Run(frames fling.FrameSource) (float64, error) {
	if s.phase != PhaseIdle {
		return 0, ErrSessionUsed
	}

	v0 := s.traj.InitialVelocity
	s.phase = PhaseFling
	s.hooks.OnStart(v0)

	split := s.opts.progressSplit()
	inner := fling.NewSession(s.traj, s.consume, flingPhaseHooks{s: s, split: split})
	if s.opts.Mode == SmoothFusion {
		s.threshold = s.opts.FusionThreshold(v0)
		inner.InterruptWhen(func(v float64) bool { return math.Abs(v) < s.threshold })
	}

	residual, err := inner.Run(frames)
	s.totalConsumed += inner.TotalConsumed()
	s.residualVelocity = residual
	s.velocityTriggered = inner.Interrupted()
	if err != nil {
		s.finish(true)
		return 0, err
	}
	s.hitBoundary = inner.State() == fling.Cancelled && !s.velocityTriggered

	s.phase = PhaseSettle
	offset, ok := Offset(s.provider.VisibleItems(), s.provider.Viewport(), s.opts.Position)
	s.targetOffset = offset
	if !ok || math.Abs(offset) < fling.BoundaryEpsilon {
		logging.Logger().Debug("snap settle skipped", "offset", offset, "items", ok)
		s.report(1, 0)
		s.finish(false)
		return 0, nil
	}

	s.fusionVelocity = s.opts.SeedVelocity(residual, offset, s.velocityTriggered)
	if s.hitBoundary && s.fusionVelocity*offset < 0 {
		// The residual points into the edge the fling stopped at.
		s.fusionVelocity = s.opts.approachVelocity(offset)
	}
	logging.Logger().Debug("snap settle started",
		"mode", s.opts.Mode,
		"offset", offset,
		"residual", residual,
		"seed", s.fusionVelocity,
		"triggered", s.velocityTriggered,
		"boundary", s.hitBoundary)

	anim := s.opts.Motion.Begin(offset, s.fusionVelocity, s.opts.FrameRate)
	for {
		done, err := s.settleStep(anim, offset, split)
		if err != nil {
			logging.Logger().Warn("snap settle step failed", "error", err)
			s.finish(true)
			return 0, fmt.Errorf("%w: %w", fling.ErrStepFailed, err)
		}
		if done {
			break
		}
	}

	s.finish(s.cancelled)
	return 0, nil
}

func (s *Session) settleStep(anim settle.Animation, offset, split float64) (done bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	value, velocity, finished := anim.Next()
	delta := value - s.settled
	consumed := s.consume(delta)

	s.settled = value
	s.settleFrames++
	s.totalConsumed += math.Abs(consumed)
	s.report(split+(1-split)*mathutil.Clamp(value/offset, 0, 1), velocity)

	if math.Abs(delta-consumed) > fling.BoundaryEpsilon {
		logging.Logger().Debug("snap settle hit boundary",
			"frame", s.settleFrames,
			"requested", delta,
			"consumed", consumed)
		s.cancelled = true
		return true, nil
	}
	return finished, nil
}

// report forwards progress, never letting it decrease.
func (s *Session) report(progress, velocity float64) {
	s.maxProgress = max(s.maxProgress, progress)
	s.hooks.OnProgress(s.maxProgress, velocity)
}

func (s *Session) finish(cancelled bool) {
	s.phase = PhaseDone
	s.hooks.OnEnd(s.totalConsumed, cancelled)
}

// flingPhaseHooks maps fling progress into [0, split] of the snap's overall
// progress. Start and end belong to the snap session.
type flingPhaseHooks struct {
	s     *Session
	split float64
}

func (h flingPhaseHooks) OnStart(float64) {}

func (h flingPhaseHooks) OnProgress(progress, velocity float64) {
	h.s.report(progress*h.split, velocity)
}

func (h flingPhaseHooks) OnEnd(float64, bool) {}
