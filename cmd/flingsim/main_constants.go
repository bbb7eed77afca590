package main

// Default command-line flag values
const (
	defaultVelocity = 4000.0 // units/s, a brisk flick
	defaultDensity  = 2.625  // xxhdpi-ish pixels per dp
	defaultItemSize = 120.0
	defaultViewport = 800.0
	defaultFPS      = 60
	defaultTrace    = 8
)

// Output formats
const (
	formatText = "text"
	formatYAML = "yaml"
)

// Settle motions
const (
	motionSpring = "spring"
	motionEased  = "eased"
)

// modeNone runs a plain fling without snapping.
const modeNone = "none"

// msPerSecond converts frame rates to frame intervals.
const msPerSecond = 1000.0
