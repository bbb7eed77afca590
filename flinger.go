package flinger

import (
	"fmt"
	"log/slog"

	"github.com/iamjosephmj/flinger/internal/fling"
	"github.com/iamjosephmj/flinger/internal/logging"
	"github.com/iamjosephmj/flinger/internal/settle"
	"github.com/iamjosephmj/flinger/internal/snap"
	"github.com/iamjosephmj/flinger/internal/spline"
	"github.com/iamjosephmj/flinger/internal/trajectory"
)

// Engine types re-exported for callers.
type (
	// Table is an immutable spline lookup table shared by trajectories.
	Table = spline.Table

	// TableCache shares tables between engines with equal spline constants.
	TableCache = spline.Cache

	// Trajectory is the closed-form motion of one fling.
	Trajectory = trajectory.Trajectory

	// Hooks observes a fling or snap lifecycle.
	Hooks = fling.Hooks

	// HookFuncs adapts optional functions to Hooks.
	HookFuncs = fling.HookFuncs

	// ConsumeFunc applies a delta and returns how much of it was applied.
	ConsumeFunc = fling.ConsumeFunc

	// FrameSource yields elapsed frame times in milliseconds.
	FrameSource = fling.FrameSource

	// FixedRateFrames is a FrameSource ticking at a constant interval.
	FixedRateFrames = fling.FixedRateFrames

	// FlingState is the lifecycle state of a FlingSession.
	FlingState = fling.State

	// FlingSession is the per-gesture fling state machine.
	FlingSession = fling.Session

	// SnapSession is the per-gesture snap state.
	SnapSession = snap.Session

	// SnapProvider reports visible items and the viewport.
	SnapProvider = snap.Provider

	// Item is a visible item along the scroll axis.
	Item = snap.Item

	// Viewport is the visible window along the scroll axis.
	Viewport = snap.Viewport

	// SnapMode selects how a fling hands over to its settle phase.
	SnapMode = snap.Mode

	// SnapPosition selects the alignment of items to the viewport.
	SnapPosition = snap.Position

	// SnapOptions tunes snapping.
	SnapOptions = snap.Options

	// SettleMotion animates the settle phase of a snap.
	SettleMotion = settle.Motion
)

// Fling session states.
const (
	FlingIdle      = fling.Idle
	FlingRunning   = fling.Running
	FlingFinished  = fling.Finished
	FlingCancelled = fling.Cancelled
)

// Snap modes and positions.
const (
	SnapStandard     = snap.Standard
	SnapSmoothFusion = snap.SmoothFusion

	SnapStart  = snap.Start
	SnapCenter = snap.Center
	SnapEnd    = snap.End
)

// ErrStepFailed is returned when a frame source or callback fails mid-tick.
var ErrStepFailed = fling.ErrStepFailed

// SetLogger sets the logger for the engine and its sub-packages. It is silent
// by default; passing nil restores silence.
func SetLogger(l *slog.Logger) { logging.SetLogger(l) }

// Logger returns the active logger.
func Logger() *slog.Logger { return logging.Logger() }

// NewFixedRateFrames returns frames at fps frames per second.
func NewFixedRateFrames(fps int) *FixedRateFrames { return fling.NewFixedRateFrames(fps) }

// NewTableCache returns an empty table cache.
func NewTableCache() *TableCache { return spline.NewCache() }

// DefaultSnapOptions returns the stock snapping tunables.
func DefaultSnapOptions() SnapOptions { return snap.DefaultOptions() }

// BuildTable validates cfg and builds its spline table. Prefer an Engine,
// which caches the table, when running many flings.
func BuildTable(cfg Config) (*Table, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	t, err := spline.Build(cfg.splineParams())
	if err != nil {
		return nil, fmt.Errorf("build table: %w", err)
	}
	return t, nil
}

// ComputeTrajectory returns the trajectory of a fling released at velocity
// on a display of the given density.
func ComputeTrajectory(cfg Config, density, velocity float64) (*Trajectory, error) {
	if err := validateDensity(density); err != nil {
		return nil, err
	}
	t, err := BuildTable(cfg)
	if err != nil {
		return nil, err
	}
	return newTrajectory(cfg, t, density, velocity), nil
}

func newTrajectory(cfg Config, t *Table, density, velocity float64) *Trajectory {
	tr := trajectory.New(trajectory.Spec{
		Model:                cfg.model(density),
		Table:                t,
		AbsVelocityThreshold: cfg.AbsVelocityThreshold,
	}, velocity)
	logging.Logger().Debug("trajectory computed",
		"velocity", velocity,
		"density", density,
		"distance", tr.Distance,
		"duration_ms", tr.DurationMs)
	return tr
}

// RunFling plays traj at 60 frames per second and returns the residual
// velocity. hooks may be nil.
func RunFling(traj *Trajectory, consume ConsumeFunc, hooks Hooks) (float64, error) {
	return RunFlingWithFrames(traj, consume, hooks, fling.NewFixedRateFrames(fling.DefaultFrameRate))
}

// RunFlingWithFrames is RunFling driven by the caller's clock.
func RunFlingWithFrames(traj *Trajectory, consume ConsumeFunc, hooks Hooks, frames FrameSource) (float64, error) {
	return fling.NewSession(traj, consume, hooks).Run(frames)
}

// RunSnapFusion plays traj and settles onto the nearest item start reported
// by provider, using the default tunables for mode. It always returns zero.
// To align item centers or ends, or to tune the settle, use
// RunSnapFusionWithOptions or an Engine built WithSnapOptions.
func RunSnapFusion(traj *Trajectory, consume ConsumeFunc, provider SnapProvider, mode SnapMode, hooks Hooks) (float64, error) {
	opts := snap.DefaultOptions()
	opts.Mode = mode
	return RunSnapFusionWithOptions(traj, consume, provider, opts, hooks)
}

// RunSnapFusionWithOptions is RunSnapFusion with every snapping tunable,
// including the snap position, taken from opts.
func RunSnapFusionWithOptions(traj *Trajectory, consume ConsumeFunc, provider SnapProvider, opts SnapOptions, hooks Hooks) (float64, error) {
	return snap.NewController(opts).Run(traj, consume, provider, hooks)
}
