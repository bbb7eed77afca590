// Package flinger computes momentum-scroll ("fling") trajectories and snaps
// them onto item boundaries, in pure Go.
//
// The engine is a deterministic numerical core. It owns no clock and no
// goroutines: the host asks it for positions at elapsed times, or hands it a
// [FrameSource] and a consume callback and lets it drive one gesture to the
// end.
//
// # Features
//
//   - Spline-shaped deceleration from a cubic Bézier lookup table
//   - Distance and duration from a single deceleration coefficient, scaled by
//     friction, gravity and display density
//   - Fling sessions with boundary detection and exactly-once lifecycle hooks
//   - Two-phase snapping: standard (decay, then settle) and smooth fusion
//     (hand over to the settle motion mid-flight, carrying velocity across)
//   - Spring (github.com/charmbracelet/harmonica) or eased settle motions
//   - YAML configuration files
//
// # Quick Start
//
// For a single trajectory:
//
//	traj, err := flinger.ComputeTrajectory(flinger.DefaultConfig(), 2.625, 4000)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(traj.Distance, traj.DurationMs, traj.Position(100))
//
// For many gestures on one surface, build an [Engine] once and reuse it:
//
//	e, err := flinger.NewEngine(flinger.DefaultConfig(), density)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	residual, err := e.Fling(velocity, list.ScrollBy, nil)
//
// # Snapping
//
// [Engine.Snap] and [RunSnapFusion] take a [SnapProvider] that reports the
// visible items and viewport once the fling phase ends:
//
//	opts := flinger.DefaultSnapOptions()
//	opts.Mode = flinger.SnapSmoothFusion
//	opts.Position = flinger.SnapCenter
//	e, _ := flinger.NewEngine(cfg, density, flinger.WithSnapOptions(opts))
//	_, err := e.Snap(velocity, list.ScrollBy, list, hooks)
//
// In [SnapStandard] mode the fling decays fully and the settle motion is
// seeded with part of whatever velocity a boundary left behind. In
// [SnapSmoothFusion] mode the fling ends once its speed falls below a
// threshold derived from the release velocity, and the settle motion starts
// from that speed.
//
// # Boundaries
//
// The consume callback returns how much of each delta it applied. A shortfall
// greater than half a unit means the surface hit an edge: the phase in
// progress is cancelled and its hooks report it.
//
// # Logging
//
// The engine logs through log/slog and is silent by default. [SetLogger]
// routes gesture lifecycle events (Debug) and recovered step failures (Warn)
// to a logger of the caller's choosing.
//
// # Thread Safety
//
// [Engine], [Table] and [TableCache] are safe for concurrent use. Sessions
// are not: each scrollable surface drives its own.
package flinger
