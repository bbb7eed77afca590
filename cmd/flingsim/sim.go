package main

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/iamjosephmj/flinger"
	"github.com/iamjosephmj/flinger/internal/settle"
	"github.com/iamjosephmj/flinger/internal/snap"
	"github.com/iamjosephmj/flinger/internal/trace"
)

// simOptions holds the parsed simulation flags.
type simOptions struct {
	velocity float64
	density  float64
	mode     string
	position string
	motion   string
	itemSize float64
	viewport float64
	items    int
	fps      int
	trace    int
}

// simList is a column of equally sized items. With a positive item count it
// stops at both ends.
type simList struct {
	pos      float64
	min, max float64
	itemSize float64
	window   float64
	count    int
}

func newSimList(itemSize, window float64, count int) *simList {
	l := &simList{
		min:      math.Inf(-1),
		max:      math.Inf(1),
		itemSize: itemSize,
		window:   window,
		count:    count,
	}
	if count > 0 {
		l.min = 0
		l.max = max(0, float64(count)*itemSize-window)
	}
	return l
}

func (l *simList) consume(delta float64) float64 {
	next := math.Min(math.Max(l.pos+delta, l.min), l.max)
	applied := next - l.pos
	l.pos = next
	return applied
}

// VisibleItems implements snap.Provider.
func (l *simList) VisibleItems() []flinger.Item {
	var items []flinger.Item
	for k := math.Floor(l.pos / l.itemSize); k*l.itemSize < l.pos+l.window; k++ {
		if l.count > 0 && (k < 0 || int(k) >= l.count) {
			continue
		}
		items = append(items, flinger.Item{Offset: k*l.itemSize - l.pos, Size: l.itemSize})
	}
	return items
}

// Viewport implements snap.Provider.
func (l *simList) Viewport() flinger.Viewport {
	return flinger.Viewport{Start: 0, End: l.window}
}

// snapReport is the snap session state after a run.
type snapReport struct {
	Phase             string  `yaml:"phase"`
	Threshold         float64 `yaml:"threshold"`
	ResidualVelocity  float64 `yaml:"residual_velocity"`
	VelocityTriggered bool    `yaml:"velocity_triggered"`
	TargetOffset      float64 `yaml:"target_offset"`
	FusionVelocity    float64 `yaml:"fusion_velocity"`
	SettleFrames      int     `yaml:"settle_frames"`
}

// report is what one simulated gesture produced.
type report struct {
	Mode          string         `yaml:"mode"`
	Velocity      float64        `yaml:"velocity"`
	Density       float64        `yaml:"density"`
	Distance      float64        `yaml:"distance"`
	DurationMs    int64          `yaml:"duration_ms"`
	Residual      float64        `yaml:"residual"`
	FinalPosition float64        `yaml:"final_position"`
	Snap          *snapReport    `yaml:"snap,omitempty"`
	Summary       trace.Summary  `yaml:"summary"`
	Recent        []trace.Sample `yaml:"recent,omitempty"`
}

// buildEngine turns the flags into an engine.
func buildEngine(cfg flinger.Config, o simOptions) (*flinger.Engine, error) {
	opts := flinger.DefaultSnapOptions()

	if o.mode != modeNone {
		mode, err := snap.ParseMode(o.mode)
		if err != nil {
			return nil, err
		}
		opts.Mode = mode
	}

	pos, err := snap.ParsePosition(o.position)
	if err != nil {
		return nil, err
	}
	opts.Position = pos

	switch o.motion {
	case motionSpring:
		opts.Motion = settle.DefaultSpring()
	case motionEased:
		opts.Motion = settle.DefaultEased()
	default:
		return nil, fmt.Errorf("unknown settle motion %q", o.motion)
	}

	return flinger.NewEngine(cfg, o.density, flinger.WithSnapOptions(opts), flinger.WithFrameRate(o.fps))
}

// simulate runs one gesture on a fresh list.
func simulate(e *flinger.Engine, o simOptions) (report, error) {
	list := newSimList(o.itemSize, o.viewport, o.items)
	rec := trace.NewRecorder(o.trace)
	hooks := trace.Tee(rec, trace.LogHooks(flinger.Logger()))
	frames := flinger.NewFixedRateFrames(o.fps)

	traj := e.Trajectory(o.velocity)
	r := report{
		Mode:       o.mode,
		Velocity:   o.velocity,
		Density:    e.Density(),
		Distance:   traj.Distance,
		DurationMs: traj.DurationMs,
	}

	var err error
	if o.mode == modeNone {
		r.Residual, err = e.NewFlingSession(o.velocity, list.consume, hooks).Run(frames)
	} else {
		s := e.NewSnapSession(o.velocity, list.consume, list, hooks)
		r.Residual, err = s.Run(frames)
		r.Snap = &snapReport{
			Phase:             s.Phase().String(),
			Threshold:         s.Threshold(),
			ResidualVelocity:  s.ResidualVelocity(),
			VelocityTriggered: s.VelocityTriggered(),
			TargetOffset:      s.TargetOffset(),
			FusionVelocity:    s.FusionVelocity(),
			SettleFrames:      s.SettleFrames(),
		}
	}

	r.FinalPosition = list.pos
	r.Summary = rec.Summary()
	if o.trace > 0 {
		r.Recent = rec.Samples()
	}
	return r, err
}

// printCurve writes the first n frames of traj.
func printCurve(w io.Writer, traj *flinger.Trajectory, fps, n int) error {
	frameMs := msPerSecond / float64(fps)
	positions := traj.Curve(frameMs)
	n = min(n, len(positions))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "frame\telapsed_ms\tposition\tvelocity\t")
	for i := range n {
		elapsed := float64(i) * frameMs
		fmt.Fprintf(tw, "%d\t%.1f\t%.3f\t%.1f\t\n", i, elapsed, positions[i], traj.VelocityAt(elapsed))
	}
	return tw.Flush()
}

// printReport writes r as text or YAML.
func printReport(w io.Writer, r report, format string) error {
	switch format {
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case formatText:
	default:
		return fmt.Errorf("unknown output format %q", format)
	}

	fmt.Fprintf(w, "Fling (%s):\n", r.Mode)
	fmt.Fprintf(w, "  Velocity: %g units/s at density %g\n", r.Velocity, r.Density)
	fmt.Fprintf(w, "  Trajectory: %.3f units over %d ms\n", r.Distance, r.DurationMs)
	fmt.Fprintf(w, "  Ticks: %d (cancelled: %v)\n", r.Summary.Ticks, r.Summary.Cancelled)
	fmt.Fprintf(w, "  Consumed: %.3f, final position %.3f\n", r.Summary.TotalConsumed, r.FinalPosition)
	fmt.Fprintf(w, "  Speed: peak %.1f, mean %.1f, rms %.1f\n", r.Summary.PeakSpeed, r.Summary.MeanSpeed, r.Summary.RMSSpeed)
	fmt.Fprintf(w, "  Residual velocity: %g\n", r.Residual)

	if s := r.Snap; s != nil {
		fmt.Fprintf(w, "Snap:\n")
		if s.Threshold > 0 {
			fmt.Fprintf(w, "  Fusion threshold: %.1f (triggered: %v)\n", s.Threshold, s.VelocityTriggered)
		}
		fmt.Fprintf(w, "  Fling residual: %.1f\n", s.ResidualVelocity)
		fmt.Fprintf(w, "  Target offset: %.3f, seed velocity %.1f\n", s.TargetOffset, s.FusionVelocity)
		fmt.Fprintf(w, "  Settle frames: %d\n", s.SettleFrames)
	}

	if len(r.Recent) > 0 {
		fmt.Fprintf(w, "Last %d ticks:\n", len(r.Recent))
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(tw, "tick\tprogress\tvelocity\t")
		for _, s := range r.Recent {
			fmt.Fprintf(tw, "%d\t%.4f\t%.1f\t\n", s.Tick, s.Progress, s.Velocity)
		}
		return tw.Flush()
	}
	return nil
}
