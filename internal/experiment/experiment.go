package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/integrators"
	"github.com/san-kum/gravsim/internal/metrics"
	"github.com/san-kum/gravsim/internal/sim"
)

// Build constructs a simulator seeded with the scene described by cfg. The
// simulator starts paused; callers decide when to run it.
func Build(cfg *config.Config, opts ...sim.Option) (*sim.Simulator, error) {
	bodies, err := cfg.InitialBodies()
	if err != nil {
		return nil, err
	}
	integ, err := integrators.Get(cfg.Integrator)
	if err != nil {
		return nil, err
	}

	all := append([]sim.Option{
		sim.WithIntegrator(integ),
		sim.WithBodies(bodies...),
	}, opts...)
	return sim.New(cfg.Physics, all...)
}

type Experiment struct {
	cfg       *config.Config
	simulator *sim.Simulator
	recorder  *Recorder
}

type Result struct {
	*sim.Result
	Frames []Frame
}

// New builds a headless experiment that records every sampleEvery-th step.
// A sampleEvery of 0 disables recording.
func New(cfg *config.Config, sampleEvery int) (*Experiment, error) {
	s, err := Build(cfg, sim.WithRunning(true))
	if err != nil {
		return nil, err
	}
	for _, m := range metrics.Default(cfg.Physics) {
		s.AddMetric(m)
	}

	e := &Experiment{cfg: cfg, simulator: s}
	if sampleEvery > 0 {
		e.recorder = NewRecorder(cfg.Physics, sampleEvery)
		e.recorder.Capture(0, 0, s.Bodies())
		s.AddObserver(e.recorder)
	}
	return e, nil
}

func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	res, err := e.simulator.Run(ctx, e.cfg.Ticks)
	out := &Result{Result: res}
	if e.recorder != nil {
		out.Frames = e.recorder.Frames()
	}
	return out, err
}

// Recorder returns nil when recording is disabled.
func (e *Experiment) Recorder() *Recorder {
	return e.recorder
}
