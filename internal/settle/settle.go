// Package settle provides the bounded motions that carry content from the
// end of a fling onto a snap target.
package settle

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/iamjosephmj/flinger/internal/mathutil"
)

// Settle defaults
const (
	// DefaultAngularFrequency matches a spring stiffness of 400.
	DefaultAngularFrequency = 20.0

	// DefaultDampingRatio is critical damping.
	DefaultDampingRatio = 1.0

	// DefaultRestDistance is how close to the target a spring must be to stop.
	DefaultRestDistance = 0.5

	// DefaultRestVelocity is the speed, in units per second, below which a
	// spring near its target stops.
	DefaultRestVelocity = 10.0

	// DefaultMaxDurationMs bounds a spring that never comes to rest.
	DefaultMaxDurationMs = 3000.0

	// DefaultEasedDurationMs is the length of an eased settle.
	DefaultEasedDurationMs = 300.0

	defaultFPS = 60
)

// Motion starts settle animations. Implementations are immutable and may be
// shared between gestures.
type Motion interface {
	// Begin starts an animation from 0 to target with the given initial
	// velocity in units per second, advanced at fps frames per second.
	Begin(target, velocity float64, fps int) Animation
}

// Animation is one running settle motion.
type Animation interface {
	// Next advances one frame. The final frame returns done with value
	// exactly equal to the target.
	Next() (value, velocity float64, done bool)
}

// Spring settles with a damped harmonic oscillator.
type Spring struct {
	AngularFrequency float64
	DampingRatio     float64
	RestDistance     float64
	RestVelocity     float64
	MaxDurationMs    float64
}

// DefaultSpring returns a critically damped spring.
func DefaultSpring() Spring {
	return Spring{
		AngularFrequency: DefaultAngularFrequency,
		DampingRatio:     DefaultDampingRatio,
		RestDistance:     DefaultRestDistance,
		RestVelocity:     DefaultRestVelocity,
		MaxDurationMs:    DefaultMaxDurationMs,
	}
}

// Begin implements Motion.
func (s Spring) Begin(target, velocity float64, fps int) Animation {
	if fps <= 0 {
		fps = defaultFPS
	}
	maxFrames := int(math.Ceil(s.MaxDurationMs * float64(fps) / 1000))
	return &springAnimation{
		spring:    harmonica.NewSpring(harmonica.FPS(fps), s.AngularFrequency, s.DampingRatio),
		cfg:       s,
		target:    target,
		vel:       velocity,
		maxFrames: max(maxFrames, 1),
	}
}

type springAnimation struct {
	spring    harmonica.Spring
	cfg       Spring
	target    float64
	pos, vel  float64
	frames    int
	maxFrames int
}

func (a *springAnimation) Next() (float64, float64, bool) {
	a.pos, a.vel = a.spring.Update(a.pos, a.vel, a.target)
	a.frames++

	atRest := math.Abs(a.pos-a.target) < a.cfg.RestDistance && math.Abs(a.vel) < a.cfg.RestVelocity
	if atRest || a.frames >= a.maxFrames {
		a.pos, a.vel = a.target, 0
		return a.pos, a.vel, true
	}
	return a.pos, a.vel, false
}

// Eased settles along an easing curve over a fixed duration. The initial
// velocity is ignored.
type Eased struct {
	DurationMs float64
	Easing     func(float64) float64
}

// DefaultEased returns a fast-out-slow-in settle of DefaultEasedDurationMs.
func DefaultEased() Eased {
	return Eased{DurationMs: DefaultEasedDurationMs, Easing: mathutil.FastOutSlowIn}
}

// Begin implements Motion.
func (e Eased) Begin(target, _ float64, fps int) Animation {
	if fps <= 0 {
		fps = defaultFPS
	}
	easing := e.Easing
	if easing == nil {
		easing = mathutil.FastOutSlowIn
	}
	return &easedAnimation{
		easing:     easing,
		target:     target,
		durationMs: e.DurationMs,
		frameMs:    1000 / float64(fps),
	}
}

type easedAnimation struct {
	easing     func(float64) float64
	target     float64
	durationMs float64
	frameMs    float64
	elapsed    float64
	value      float64
}

func (a *easedAnimation) Next() (float64, float64, bool) {
	a.elapsed += a.frameMs

	p := 1.0
	if a.durationMs > 0 {
		p = a.elapsed / a.durationMs
	}
	if p >= 1 {
		v := (a.target - a.value) / a.frameMs * 1000
		a.value = a.target
		return a.value, v, true
	}

	next := a.target * a.easing(p)
	v := (next - a.value) / a.frameMs * 1000
	a.value = next
	return a.value, v, false
}
