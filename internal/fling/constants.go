package fling

// Driver constants
const (
	// MinFlingVelocity is the speed at or below which a release counts as
	// already stopped. The deceleration coefficient is undefined near zero.
	MinFlingVelocity = 1.0

	// BoundaryEpsilon is the largest shortfall between a requested and a
	// consumed delta that is still treated as rounding.
	BoundaryEpsilon = 0.5

	// DefaultFrameRate is the tick rate of NewFixedRateFrames(0).
	DefaultFrameRate = 60

	// progressEpsilon guards the progress ratio against a zero initial velocity.
	progressEpsilon = 1e-6
)
