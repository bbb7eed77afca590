package snap

import (
	"fmt"

	"github.com/iamjosephmj/flinger/internal/fling"
	"github.com/iamjosephmj/flinger/internal/settle"
)

// Mode selects how the fling phase hands over to the settle phase.
type Mode int

const (
	// Standard lets the fling decay completely before settling.
	Standard Mode = iota

	// SmoothFusion ends the fling once its velocity falls below a threshold
	// derived from the release velocity and settles from there.
	SmoothFusion
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Standard:
		return "standard"
	case SmoothFusion:
		return "smooth"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode is the inverse of String.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "standard":
		return Standard, nil
	case "smooth":
		return SmoothFusion, nil
	default:
		return 0, fmt.Errorf("unknown snap mode %q", s)
	}
}

// Default tunables
const (
	DefaultFusionVelocityRatio = 0.15
	DefaultMinFusionThreshold  = 100.0
	DefaultMaxFusionThreshold  = 800.0

	DefaultStandardSeedFraction    = 0.3
	DefaultStandardSeedMinVelocity = 100.0

	DefaultFusedSeedFraction    = 0.8
	DefaultFusedSeedMinVelocity = 50.0

	DefaultResidualSeedFraction    = 0.5
	DefaultResidualSeedMinVelocity = 30.0

	DefaultSyntheticVelocityFactor = 2.0

	DefaultStandardProgressSplit = 0.7
	DefaultFusionProgressSplit   = 0.75
)

// Options tunes a Controller. The zero value is not useful; start from
// DefaultOptions.
type Options struct {
	Mode     Mode
	Position Position

	// Motion animates the settle phase. Nil means settle.DefaultSpring().
	Motion settle.Motion

	// FrameRate is the tick rate of both phases when the controller owns the
	// clock, and always of the settle phase.
	FrameRate int

	// FusionVelocityRatio scales the release speed into the SmoothFusion
	// hand-over threshold, which is then clamped to
	// [MinFusionThreshold, MaxFusionThreshold].
	FusionVelocityRatio float64
	MinFusionThreshold  float64
	MaxFusionThreshold  float64

	// Standard mode seeds the settle phase with StandardSeedFraction of the
	// residual velocity when it exceeds StandardSeedMinVelocity.
	StandardSeedFraction    float64
	StandardSeedMinVelocity float64

	// SmoothFusion seeds with FusedSeedFraction of the residual velocity
	// after a threshold hand-over, else ResidualSeedFraction of it, else a
	// synthetic SyntheticVelocityFactor times the snap distance.
	FusedSeedFraction       float64
	FusedSeedMinVelocity    float64
	ResidualSeedFraction    float64
	ResidualSeedMinVelocity float64
	SyntheticVelocityFactor float64

	// Share of overall progress reported by the fling phase.
	StandardProgressSplit float64
	FusionProgressSplit   float64
}

// DefaultOptions returns Standard mode snapping to item starts with a
// critically damped spring.
func DefaultOptions() Options {
	return Options{
		Mode:                    Standard,
		Position:                Start,
		Motion:                  settle.DefaultSpring(),
		FrameRate:               fling.DefaultFrameRate,
		FusionVelocityRatio:     DefaultFusionVelocityRatio,
		MinFusionThreshold:      DefaultMinFusionThreshold,
		MaxFusionThreshold:      DefaultMaxFusionThreshold,
		StandardSeedFraction:    DefaultStandardSeedFraction,
		StandardSeedMinVelocity: DefaultStandardSeedMinVelocity,
		FusedSeedFraction:       DefaultFusedSeedFraction,
		FusedSeedMinVelocity:    DefaultFusedSeedMinVelocity,
		ResidualSeedFraction:    DefaultResidualSeedFraction,
		ResidualSeedMinVelocity: DefaultResidualSeedMinVelocity,
		SyntheticVelocityFactor: DefaultSyntheticVelocityFactor,
		StandardProgressSplit:   DefaultStandardProgressSplit,
		FusionProgressSplit:     DefaultFusionProgressSplit,
	}
}

func (o Options) progressSplit() float64 {
	if o.Mode == SmoothFusion {
		return o.FusionProgressSplit
	}
	return o.StandardProgressSplit
}
