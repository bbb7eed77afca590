package fling

// FrameSource yields the elapsed time, in milliseconds since the fling
// started, of each successive frame. It stands in for the host's animation
// clock. An error ends the fling as cancelled.
type FrameSource interface {
	NextFrame() (elapsedMs float64, err error)
}

// FrameSourceFunc adapts a function to FrameSource.
type FrameSourceFunc func() (float64, error)

// NextFrame implements FrameSource.
func (f FrameSourceFunc) NextFrame() (float64, error) { return f() }

// FixedRateFrames is a FrameSource ticking at a constant interval. The first
// frame lands one interval after the start.
type FixedRateFrames struct {
	IntervalMs float64
	frame      int
}

// NewFixedRateFrames returns frames at fps frames per second. Non-positive
// rates fall back to DefaultFrameRate.
func NewFixedRateFrames(fps int) *FixedRateFrames {
	if fps <= 0 {
		fps = DefaultFrameRate
	}
	return &FixedRateFrames{IntervalMs: 1000 / float64(fps)}
}

// NextFrame implements FrameSource.
func (f *FixedRateFrames) NextFrame() (float64, error) {
	f.frame++
	return float64(f.frame) * f.IntervalMs, nil
}
