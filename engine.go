package flinger

import (
	"fmt"

	"github.com/iamjosephmj/flinger/internal/fling"
	"github.com/iamjosephmj/flinger/internal/snap"
	"github.com/iamjosephmj/flinger/internal/spline"
)

// Engine runs flings for one configuration and display density. The spline
// table is built once and shared by every trajectory the engine produces.
// An Engine is immutable and safe for concurrent use; the sessions it creates
// are not.
type Engine struct {
	cfg       Config
	density   float64
	cache     *TableCache
	table     *Table
	snap      *snap.Controller
	frameRate int
}

// Option configures an Engine.
type Option func(*engineOptions)

type engineOptions struct {
	cache     *TableCache
	snap      snap.Options
	frameRate int
}

// WithTableCache shares c with other engines. Without it each engine owns
// a private cache.
func WithTableCache(c *TableCache) Option {
	return func(o *engineOptions) { o.cache = c }
}

// WithSnapOptions replaces the default snapping tunables.
func WithSnapOptions(s SnapOptions) Option {
	return func(o *engineOptions) { o.snap = s }
}

// WithFrameRate sets the tick rate of flings the engine runs itself.
func WithFrameRate(fps int) Option {
	return func(o *engineOptions) { o.frameRate = fps }
}

// NewEngine validates cfg and density and builds or fetches the spline table.
func NewEngine(cfg Config, density float64, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := validateDensity(density); err != nil {
		return nil, err
	}

	o := engineOptions{snap: snap.DefaultOptions(), frameRate: fling.DefaultFrameRate}
	for _, opt := range opts {
		opt(&o)
	}
	if o.cache == nil {
		o.cache = spline.NewCache()
	}
	if o.frameRate <= 0 {
		return nil, fmt.Errorf("%w: frame rate must be positive", ErrInvalidConfig)
	}
	o.snap.FrameRate = o.frameRate

	t, err := o.cache.Get(cfg.splineParams())
	if err != nil {
		return nil, fmt.Errorf("build table: %w", err)
	}

	return &Engine{
		cfg:       cfg,
		density:   density,
		cache:     o.cache,
		table:     t,
		snap:      snap.NewController(o.snap),
		frameRate: o.frameRate,
	}, nil
}

// WithDensity returns an engine for another display density. It shares the
// table and options of e.
func (e *Engine) WithDensity(density float64) (*Engine, error) {
	if err := validateDensity(density); err != nil {
		return nil, err
	}
	c := *e
	c.density = density
	return &c, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.cfg }

// Density returns the display density.
func (e *Engine) Density() float64 { return e.density }

// Table returns the shared spline table.
func (e *Engine) Table() *Table { return e.table }

// SnapOptions returns the effective snapping tunables.
func (e *Engine) SnapOptions() SnapOptions { return e.snap.Options() }

// Trajectory computes the trajectory for a release at velocity.
func (e *Engine) Trajectory(velocity float64) *Trajectory {
	return newTrajectory(e.cfg, e.table, e.density, velocity)
}

// NewFlingSession prepares a fling the caller ticks itself.
func (e *Engine) NewFlingSession(velocity float64, consume ConsumeFunc, hooks Hooks) *FlingSession {
	return fling.NewSession(e.Trajectory(velocity), consume, hooks)
}

// NewSnapSession prepares a snap the caller runs with its own frame source.
func (e *Engine) NewSnapSession(velocity float64, consume ConsumeFunc, provider SnapProvider, hooks Hooks) *SnapSession {
	return e.snap.NewSession(e.Trajectory(velocity), consume, provider, hooks)
}

// Fling runs a fling at the engine frame rate and returns the residual velocity.
func (e *Engine) Fling(velocity float64, consume ConsumeFunc, hooks Hooks) (float64, error) {
	return e.NewFlingSession(velocity, consume, hooks).Run(fling.NewFixedRateFrames(e.frameRate))
}

// Snap runs a snapping fling at the engine frame rate. It always returns zero.
func (e *Engine) Snap(velocity float64, consume ConsumeFunc, provider SnapProvider, hooks Hooks) (float64, error) {
	return e.snap.Run(e.Trajectory(velocity), consume, provider, hooks)
}
