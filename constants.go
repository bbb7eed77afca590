package flinger

import "math"

// Default physical constants
const (
	// DefaultScrollFriction governs how far a fling travels.
	DefaultScrollFriction = 0.008

	// DefaultDecelerationFriction governs how quickly a fling slows.
	DefaultDecelerationFriction = 0.09

	// DefaultGravity is standard gravity in m/s².
	DefaultGravity = 9.80665

	// DefaultInchesPerMeter converts the physical scale to inches.
	DefaultInchesPerMeter = 39.37

	// DefaultAbsVelocityThreshold of zero lets every fling run its full duration.
	DefaultAbsVelocityThreshold = 0.0
)

// Default spline shape
const (
	DefaultSplineInflection   = 0.1
	DefaultSplineStartTension = 0.1
	DefaultSplineEndTension   = 1.0
	DefaultSplineSampleCount  = 100
)

// DefaultDecelerationRate is ln(0.78)/ln(0.9).
var DefaultDecelerationRate = math.Log(0.78) / math.Log(0.9)

// Validation limits
const (
	maxSplineSampleCount = 1 << 16
	minDecelerationRate  = 1.0
)
