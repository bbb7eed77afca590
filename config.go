package flinger

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/iamjosephmj/flinger/internal/decel"
	"github.com/iamjosephmj/flinger/internal/spline"
)

// Common errors returned by the engine.
var (
	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid fling configuration")

	// ErrInvalidDensity indicates a non-positive or non-finite density.
	ErrInvalidDensity = errors.New("invalid density")

	// ErrInvalidSplineParameters indicates spline parameters for which the
	// table could not be built.
	ErrInvalidSplineParameters = spline.ErrNoConvergence
)

// Config holds the physical and spline constants of a fling. It is a value
// type; two equal configs produce identical trajectories.
type Config struct {
	// ScrollFriction governs total travel distance. Typical 0.001 to 0.1.
	ScrollFriction float64 `yaml:"scroll_friction"`

	// AbsVelocityThreshold is the speed at or below which a trajectory is
	// considered finished. Zero disables the check.
	AbsVelocityThreshold float64 `yaml:"abs_velocity_threshold"`

	// Gravity and InchesPerMeter combine with density into the physical
	// deceleration scale. They are tuning knobs, not physics.
	Gravity        float64 `yaml:"gravity"`
	InchesPerMeter float64 `yaml:"inches_per_meter"`

	// DecelerationFriction governs how fast velocity decays, independently
	// of ScrollFriction.
	DecelerationFriction float64 `yaml:"deceleration_friction"`

	// DecelerationRate shapes duration scaling. Must exceed 1.
	DecelerationRate float64 `yaml:"deceleration_rate"`

	// SplineInflection is where the two segments of the motion spline join.
	// Must lie in (0, 1).
	SplineInflection float64 `yaml:"spline_inflection"`

	// SplineStartTension and SplineEndTension shape the inner control points.
	SplineStartTension float64 `yaml:"spline_start_tension"`
	SplineEndTension   float64 `yaml:"spline_end_tension"`

	// SplineSampleCount is the lookup table resolution.
	SplineSampleCount int `yaml:"spline_sample_count"`
}

// DefaultConfig returns the stock fling constants.
func DefaultConfig() Config {
	return Config{
		ScrollFriction:       DefaultScrollFriction,
		AbsVelocityThreshold: DefaultAbsVelocityThreshold,
		Gravity:              DefaultGravity,
		InchesPerMeter:       DefaultInchesPerMeter,
		DecelerationFriction: DefaultDecelerationFriction,
		DecelerationRate:     DefaultDecelerationRate,
		SplineInflection:     DefaultSplineInflection,
		SplineStartTension:   DefaultSplineStartTension,
		SplineEndTension:     DefaultSplineEndTension,
		SplineSampleCount:    DefaultSplineSampleCount,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"scroll friction", c.ScrollFriction},
		{"abs velocity threshold", c.AbsVelocityThreshold},
		{"gravity", c.Gravity},
		{"inches per meter", c.InchesPerMeter},
		{"deceleration friction", c.DecelerationFriction},
		{"deceleration rate", c.DecelerationRate},
		{"spline inflection", c.SplineInflection},
		{"spline start tension", c.SplineStartTension},
		{"spline end tension", c.SplineEndTension},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be finite", ErrInvalidConfig, f.name)
		}
	}

	if c.ScrollFriction <= 0 {
		return fmt.Errorf("%w: scroll friction must be positive", ErrInvalidConfig)
	}

	if c.DecelerationFriction <= 0 {
		return fmt.Errorf("%w: deceleration friction must be positive", ErrInvalidConfig)
	}

	if c.Gravity <= 0 || c.InchesPerMeter <= 0 {
		return fmt.Errorf("%w: gravity and inches per meter must be positive", ErrInvalidConfig)
	}

	if c.AbsVelocityThreshold < 0 {
		return fmt.Errorf("%w: abs velocity threshold must not be negative", ErrInvalidConfig)
	}

	if c.DecelerationRate <= minDecelerationRate {
		return fmt.Errorf("%w: deceleration rate must exceed %v", ErrInvalidConfig, minDecelerationRate)
	}

	if c.SplineInflection <= 0 || c.SplineInflection >= 1 {
		return fmt.Errorf("%w: spline inflection must be in (0, 1)", ErrInvalidConfig)
	}

	if c.SplineStartTension <= 0 || c.SplineEndTension <= 0 {
		return fmt.Errorf("%w: spline tensions must be positive", ErrInvalidConfig)
	}

	if !c.splineParams().Monotonic() {
		return fmt.Errorf("%w: spline tensions %g and %g bend the curve backwards",
			ErrInvalidConfig, c.SplineStartTension, c.SplineEndTension)
	}

	if c.SplineSampleCount < 1 || c.SplineSampleCount > maxSplineSampleCount {
		return fmt.Errorf("%w: spline sample count must be 1-%d", ErrInvalidConfig, maxSplineSampleCount)
	}

	return nil
}

// LoadConfig reads a YAML file over DefaultConfig and validates the result.
// Keys absent from the file keep their default values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig is LoadConfig for YAML already in memory.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// YAML encodes c in the format LoadConfig reads.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

func (c *Config) splineParams() spline.Params {
	return spline.Params{
		Inflection:   c.SplineInflection,
		StartTension: c.SplineStartTension,
		EndTension:   c.SplineEndTension,
		Samples:      c.SplineSampleCount,
	}
}

func (c *Config) model(density float64) decel.Model {
	return decel.Model{
		ScrollFriction:       c.ScrollFriction,
		DecelerationFriction: c.DecelerationFriction,
		DecelerationRate:     c.DecelerationRate,
		Inflection:           c.SplineInflection,
		Gravity:              c.Gravity,
		InchesPerMeter:       c.InchesPerMeter,
		Density:              density,
	}
}

func validateDensity(density float64) error {
	if density <= 0 || math.IsNaN(density) || math.IsInf(density, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidDensity, density)
	}
	return nil
}
