package fling

// Hooks observes the lifecycle of a fling. OnStart fires once when motion
// begins, OnProgress once per tick, and OnEnd exactly once when a started
// fling terminates.
type Hooks interface {
	OnStart(initialVelocity float64)
	OnProgress(progress, velocity float64)
	OnEnd(totalConsumed float64, cancelled bool)
}

// HookFuncs adapts optional functions to Hooks. Nil fields are skipped.
type HookFuncs struct {
	Start    func(initialVelocity float64)
	Progress func(progress, velocity float64)
	End      func(totalConsumed float64, cancelled bool)
}

// OnStart implements Hooks.
func (h HookFuncs) OnStart(initialVelocity float64) {
	if h.Start != nil {
		h.Start(initialVelocity)
	}
}

// OnProgress implements Hooks.
func (h HookFuncs) OnProgress(progress, velocity float64) {
	if h.Progress != nil {
		h.Progress(progress, velocity)
	}
}

// OnEnd implements Hooks.
func (h HookFuncs) OnEnd(totalConsumed float64, cancelled bool) {
	if h.End != nil {
		h.End(totalConsumed, cancelled)
	}
}

// nopHooks is used when the caller passes nil.
type nopHooks struct{}

func (nopHooks) OnStart(float64)         {}
func (nopHooks) OnProgress(_, _ float64) {}
func (nopHooks) OnEnd(float64, bool)     {}
