package flinger

import (
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.InDelta(t, 2.3582, cfg.DecelerationRate, 1e-4)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero scroll friction", func(c *Config) { c.ScrollFriction = 0 }},
		{"negative deceleration friction", func(c *Config) { c.DecelerationFriction = -0.1 }},
		{"zero gravity", func(c *Config) { c.Gravity = 0 }},
		{"negative threshold", func(c *Config) { c.AbsVelocityThreshold = -1 }},
		{"rate of one", func(c *Config) { c.DecelerationRate = 1 }},
		{"inflection at zero", func(c *Config) { c.SplineInflection = 0 }},
		{"inflection at one", func(c *Config) { c.SplineInflection = 1 }},
		{"zero start tension", func(c *Config) { c.SplineStartTension = 0 }},
		{"start tension above one", func(c *Config) { c.SplineStartTension = 1.5 }},
		{"end tension too large", func(c *Config) { c.SplineEndTension = 3 }},
		{"zero samples", func(c *Config) { c.SplineSampleCount = 0 }},
		{"too many samples", func(c *Config) { c.SplineSampleCount = maxSplineSampleCount + 1 }},
		{"NaN friction", func(c *Config) { c.ScrollFriction = math.NaN() }},
		{"infinite inches", func(c *Config) { c.InchesPerMeter = math.Inf(1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestBuildTable_RejectsBackwardCurve(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SplineStartTension = 3

	tab, err := BuildTable(cfg)
	assert.Nil(t, tab)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = ComputeTrajectory(cfg, 1, 1000)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestConfig_ValidateAcceptsSingleSample(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SplineSampleCount = 1
	assert.NoError(t, cfg.Validate())
}

func TestParseConfig_KeepsDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte("scroll_friction: 0.015\nspline_sample_count: 200\n"))
	require.NoError(t, err)

	want := DefaultConfig()
	want.ScrollFriction = 0.015
	want.SplineSampleCount = 200
	assert.Equal(t, want, cfg)
}

func TestParseConfig_Errors(t *testing.T) {
	_, err := ParseConfig([]byte("scroll_friction: [1, 2]\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = ParseConfig([]byte("deceleration_rate: 0.5\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadConfig(t *testing.T) {
	want := DefaultConfig()
	want.DecelerationFriction = 0.12
	want.AbsVelocityThreshold = 25

	data, err := want.YAML()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "fling.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
