// Package fling drives a trajectory frame by frame against a consumer that
// may refuse part of each delta.
//
// A Session moves Idle → Running → {Finished, Cancelled}. Each Tick samples
// the trajectory, hands the delta since the previous tick to the consumer and
// reports the resulting state. A consumer that absorbs less than requested
// has hit a boundary and cancels the session.
package fling

import (
	"errors"
	"fmt"
	"math"

	"github.com/iamjosephmj/flinger/internal/logging"
	"github.com/iamjosephmj/flinger/internal/mathutil"
	"github.com/iamjosephmj/flinger/internal/trajectory"
)

// ErrStepFailed indicates that the frame source or a callback failed in the
// middle of a tick. The session is cancelled.
var ErrStepFailed = errors.New("fling step failed")

// State is the lifecycle state of a Session.
type State int

const (
	// Idle is a session that has not started.
	Idle State = iota

	// Running is a session in motion.
	Running

	// Finished is a session that reached the end of its trajectory, or whose
	// release velocity was too small to move at all.
	Finished

	// Cancelled is a session stopped by a boundary, by Cancel or by a failed step.
	Cancelled
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Finished:
		return "finished"
	case Cancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ConsumeFunc applies delta and returns how much of it was applied.
type ConsumeFunc func(delta float64) float64

// Session is the per-gesture fling state. It is not safe for concurrent use;
// each scrollable surface owns its own session.
type Session struct {
	traj    *trajectory.Trajectory
	consume ConsumeFunc
	hooks   Hooks

	interrupt   func(velocity float64) bool
	interrupted bool

	state             State
	velocityRemaining float64
	lastValue         float64
	lastElapsed       float64
	ticks             int
	totalConsumed     float64
	ended             bool
}

// NewSession prepares a session for traj. hooks may be nil.
func NewSession(traj *trajectory.Trajectory, consume ConsumeFunc, hooks Hooks) *Session {
	if hooks == nil {
		hooks = nopHooks{}
	}
	return &Session{
		traj:              traj,
		consume:           consume,
		hooks:             hooks,
		velocityRemaining: traj.InitialVelocity,
	}
}

// InterruptWhen installs a check run after every tick that leaves the session
// running. When fn reports true for the current velocity the session is
// cancelled and Interrupted reports true. It must be set before Start.
func (s *Session) InterruptWhen(fn func(velocity float64) bool) {
	s.interrupt = fn
}

// Interrupted reports whether the session was stopped by its interrupt check.
func (s *Session) Interrupted() bool { return s.interrupted }

// State returns the current state.
func (s *Session) State() State { return s.state }

// VelocityRemaining returns the velocity at the last tick.
func (s *Session) VelocityRemaining() float64 { return s.velocityRemaining }

// TotalConsumed returns the absolute distance the consumer has applied.
func (s *Session) TotalConsumed() float64 { return s.totalConsumed }

// Ticks returns the number of ticks processed.
func (s *Session) Ticks() int { return s.ticks }

// Start moves an idle session to Running and fires OnStart. A release
// velocity at or below MinFlingVelocity finishes immediately without
// motion or hooks.
func (s *Session) Start() State {
	if s.state != Idle {
		return s.state
	}

	v0 := s.traj.InitialVelocity
	if math.Abs(v0) <= MinFlingVelocity {
		s.state = Finished
		s.ended = true
		return s.state
	}

	s.state = Running
	logging.Logger().Debug("fling started",
		"velocity", v0,
		"distance", s.traj.Distance,
		"duration_ms", s.traj.DurationMs)
	s.hooks.OnStart(v0)
	return s.state
}

// Tick advances a running session to elapsedMs and returns the new state.
// Ticks on a session that is not running are ignored. Elapsed times are
// expected to increase from tick to tick.
func (s *Session) Tick(elapsedMs float64) State {
	if s.state != Running {
		return s.state
	}

	value := s.traj.Position(elapsedMs)
	delta := value - s.lastValue
	consumed := s.consume(delta)

	s.lastValue = value
	s.lastElapsed = elapsedMs
	s.ticks++
	s.totalConsumed += math.Abs(consumed)
	s.velocityRemaining = s.traj.VelocityAt(elapsedMs)

	s.hooks.OnProgress(s.progress(), s.velocityRemaining)

	switch {
	case math.Abs(delta-consumed) > BoundaryEpsilon:
		logging.Logger().Debug("fling hit boundary",
			"elapsed_ms", elapsedMs,
			"requested", delta,
			"consumed", consumed)
		s.end(Cancelled)
	case s.traj.IsFinished(elapsedMs):
		s.end(Finished)
	case s.interrupt != nil && s.interrupt(s.velocityRemaining):
		s.interrupted = true
		s.end(Cancelled)
	}

	return s.state
}

// Cancel stops a running session and fires OnEnd with cancelled set.
func (s *Session) Cancel() {
	if s.state == Running {
		s.end(Cancelled)
	}
}

// Run starts the session and ticks it with frames until it terminates. It
// returns the residual velocity: zero for a fling that ran to completion, the
// velocity at the boundary for one that was cut short, and the release
// velocity unchanged for one too slow to start.
//
// A frame source error, a frame time that does not advance, or a panic in a
// callback cancels the session and is returned wrapped in ErrStepFailed
// together with the last known velocity.
func (s *Session) Run(frames FrameSource) (float64, error) {
	if s.Start() != Running {
		return s.velocityRemaining, nil
	}

	for s.state == Running {
		if err := s.step(frames); err != nil {
			logging.Logger().Warn("fling step failed", "error", err)
			s.end(Cancelled)
			return s.velocityRemaining, fmt.Errorf("%w: %w", ErrStepFailed, err)
		}
	}

	return s.velocityRemaining, nil
}

func (s *Session) step(frames FrameSource) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	elapsed, err := frames.NextFrame()
	if err != nil {
		return err
	}
	if s.ticks > 0 && elapsed <= s.lastElapsed {
		return fmt.Errorf("frame time %gms does not advance past %gms", elapsed, s.lastElapsed)
	}

	s.Tick(elapsed)
	return nil
}

func (s *Session) progress() float64 {
	v0 := math.Abs(s.traj.InitialVelocity)
	if v0 < progressEpsilon {
		return 1
	}
	return mathutil.Clamp(1-math.Abs(s.velocityRemaining)/v0, 0, 1)
}

func (s *Session) end(state State) {
	s.state = state
	if s.ended {
		return
	}
	s.ended = true
	s.hooks.OnEnd(s.totalConsumed, state == Cancelled)
}
