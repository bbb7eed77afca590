// Command flingsim simulates a fling, optionally snapping onto a list of
// equally sized items, and prints what happened.
//
// Usage:
//
//	flingsim -velocity 4000
//	flingsim -velocity -2500 -mode smooth -position center -trace 12
//	flingsim -config fling.yaml -mode none -frames 20
//	flingsim -dump-config > fling.yaml
//
// The config file holds any subset of the engine constants in YAML; absent
// keys keep their defaults.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/iamjosephmj/flinger"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		log.Fatalf("flingsim: %v", err)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("flingsim", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		configPath = fs.String("config", "", "YAML file with engine constants")
		dumpConfig = fs.Bool("dump-config", false, "Print the effective config as YAML and exit")
		frames     = fs.Int("frames", 0, "Print the first N frames of the trajectory")
		format     = fs.String("format", formatText, "Report format: text, yaml")
		verbose    = fs.Bool("v", false, "Log gesture events to stderr")
	)
	var o simOptions
	fs.Float64Var(&o.velocity, "velocity", defaultVelocity, "Release velocity in units/s")
	fs.Float64Var(&o.density, "density", defaultDensity, "Display density")
	fs.StringVar(&o.mode, "mode", "standard", "Snap mode: standard, smooth, none")
	fs.StringVar(&o.position, "position", "start", "Snap position: start, center, end")
	fs.StringVar(&o.motion, "motion", motionSpring, "Settle motion: spring, eased")
	fs.Float64Var(&o.itemSize, "item-size", defaultItemSize, "Item size along the scroll axis")
	fs.Float64Var(&o.viewport, "viewport", defaultViewport, "Viewport size along the scroll axis")
	fs.IntVar(&o.items, "items", 0, "Number of items; 0 for an endless list")
	fs.IntVar(&o.fps, "fps", defaultFPS, "Frame rate")
	fs.IntVar(&o.trace, "trace", defaultTrace, "Number of recent ticks to report")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *verbose {
		flinger.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		defer flinger.SetLogger(nil)
	}

	cfg := flinger.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = flinger.LoadConfig(*configPath); err != nil {
			return err
		}
	}

	if *dumpConfig {
		data, err := cfg.YAML()
		if err != nil {
			return err
		}
		_, err = stdout.Write(data)
		return err
	}

	if o.itemSize <= 0 || o.viewport <= 0 {
		return fmt.Errorf("item size and viewport must be positive")
	}

	e, err := buildEngine(cfg, o)
	if err != nil {
		return err
	}

	if *frames > 0 {
		if err := printCurve(stdout, e.Trajectory(o.velocity), o.fps, *frames); err != nil {
			return err
		}
		fmt.Fprintln(stdout)
	}

	r, err := simulate(e, o)
	if perr := printReport(stdout, r, *format); perr != nil {
		return perr
	}
	return err
}
