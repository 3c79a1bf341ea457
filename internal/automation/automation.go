package automation

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/experiment"
	"github.com/san-kum/gravsim/internal/sim"
)

const (
	ActionCreate = "create"
	ActionRun    = "run"
	ActionPause  = "pause"
	ActionReset  = "reset"
)

// Script is a timeline of commands fed to the simulator at frame
// boundaries, the headless equivalent of clicking through the UI.
type Script struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Preset      string `yaml:"preset"`
	Integrator  string `yaml:"integrator"`
	Ticks       int    `yaml:"ticks"`
	Steps       []Step `yaml:"steps"`
}

// Step is queued immediately before frame At is ticked.
type Step struct {
	At     int                `yaml:"at"`
	Action string             `yaml:"action"`
	Body   *config.BodyConfig `yaml:"body,omitempty"`
}

type ScriptResult struct {
	Frames int
	Steps  int
	Time   float64
	Merges int
	Final  []dynamo.BodyState
}

// LoadScript loads a script from a YAML file
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := script.Validate(); err != nil {
		return nil, err
	}
	return &script, nil
}

func (s *Script) Validate() error {
	if s.Preset != "" && config.GetPreset(s.Preset) == nil {
		return fmt.Errorf("%w: %s (available: %v)", dynamo.ErrUnknownPreset, s.Preset, config.ListPresets())
	}
	for i, st := range s.Steps {
		if st.At < 0 {
			return fmt.Errorf("step %d: %w: at %d", i+1, dynamo.ErrParameterBounds, st.At)
		}
		if s.Ticks > 0 && st.At >= s.Ticks {
			return fmt.Errorf("step %d: %w: at %d is past the last frame %d", i+1, dynamo.ErrParameterBounds, st.At, s.Ticks-1)
		}
		switch st.Action {
		case ActionCreate:
			if st.Body == nil {
				return fmt.Errorf("step %d: create needs a body", i+1)
			}
			if _, err := st.Body.Body(); err != nil {
				return fmt.Errorf("step %d: %w", i+1, err)
			}
		case ActionRun, ActionPause, ActionReset:
		default:
			return fmt.Errorf("step %d: unknown action %q", i+1, st.Action)
		}
	}
	return nil
}

// Frames is the number of ticks the script runs: Ticks if set, otherwise
// one past the last step.
func (s *Script) Frames() int {
	if s.Ticks > 0 {
		return s.Ticks
	}
	n := 0
	for _, st := range s.Steps {
		if st.At+1 > n {
			n = st.At + 1
		}
	}
	return n
}

func (s *Script) scene() *config.Config {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		cfg = config.GetPreset(s.Preset)
	}
	if s.Integrator != "" {
		cfg.Integrator = s.Integrator
	}
	return cfg
}

// RunScript builds the scene and plays the timeline. Without a preset the
// scene starts empty.
func RunScript(ctx context.Context, script *Script) (*ScriptResult, error) {
	if err := script.Validate(); err != nil {
		return nil, err
	}
	s, err := experiment.Build(script.scene())
	if err != nil {
		return nil, err
	}
	return Play(ctx, script, s)
}

// Play drives an existing simulator. Steps sharing a frame are submitted
// in file order.
func Play(ctx context.Context, script *Script, s *sim.Simulator) (*ScriptResult, error) {
	steps := append([]Step(nil), script.Steps...)
	sort.SliceStable(steps, func(i, j int) bool { return steps[i].At < steps[j].At })

	startSteps, startMerges := s.Steps(), s.Merges()
	frames := script.Frames()
	next := 0

	for f := 0; f < frames; f++ {
		select {
		case <-ctx.Done():
			return summarize(s, f, startSteps, startMerges), ctx.Err()
		default:
		}

		for ; next < len(steps) && steps[next].At == f; next++ {
			if err := submit(s, steps[next]); err != nil {
				return summarize(s, f, startSteps, startMerges), err
			}
			log.Printf("script: frame %d %s", f, steps[next].Action)
		}
		s.Tick()
	}
	return summarize(s, frames, startSteps, startMerges), nil
}

func submit(s *sim.Simulator, st Step) error {
	switch st.Action {
	case ActionCreate:
		b := st.Body
		_, err := s.CreateBody(b.X, b.Y, b.VX, b.VY, b.Mass)
		return err
	case ActionRun:
		s.SetRunning(true)
	case ActionPause:
		s.SetRunning(false)
	case ActionReset:
		s.Reset()
	}
	return nil
}

func summarize(s *sim.Simulator, frames, startSteps, startMerges int) *ScriptResult {
	return &ScriptResult{
		Frames: frames,
		Steps:  s.Steps() - startSteps,
		Time:   s.Time(),
		Merges: s.Merges() - startMerges,
		Final:  s.Snapshot(),
	}
}

// ParameterSweep runs a preset across a range of one physics parameter.
// Param is one of g, epsilon, scale, dt.
type ParameterSweep struct {
	Preset   string
	Param    string
	Min      float64
	Max      float64
	NumSteps int
	Ticks    int
}

// SweepResult holds results from a parameter sweep
type SweepResult struct {
	Value       float64
	Bodies      int
	Merges      int
	EnergyDrift float64
	Err         error
}

// RunSweep executes a parameter sweep. Values that produce an invalid
// config are reported per row rather than aborting the sweep.
func RunSweep(ctx context.Context, sweep *ParameterSweep) ([]SweepResult, error) {
	if config.GetPreset(sweep.Preset) == nil {
		return nil, fmt.Errorf("%w: %s", dynamo.ErrUnknownPreset, sweep.Preset)
	}
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("%w: sweep needs at least one step", dynamo.ErrParameterBounds)
	}

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.Max - sweep.Min) / float64(sweep.NumSteps-1)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	for i := 0; i < sweep.NumSteps; i++ {
		val := sweep.Min + float64(i)*paramStep
		cfg := config.GetPreset(sweep.Preset)
		if sweep.Ticks > 0 {
			cfg.Ticks = sweep.Ticks
		}
		if err := setParam(&cfg.Physics, sweep.Param, val); err != nil {
			return nil, err
		}

		row := SweepResult{Value: val}
		exp, err := experiment.New(cfg, 0)
		if err != nil {
			row.Err = err
			results = append(results, row)
			continue
		}
		res, err := exp.Run(ctx)
		if err != nil {
			return results, err
		}
		row.Bodies = len(res.Final)
		row.Merges = res.Merges
		row.EnergyDrift = res.Metrics["energy_drift"]
		results = append(results, row)

		log.Printf("sweep %d/%d: %s=%.4f", i+1, sweep.NumSteps, sweep.Param, val)
	}

	return results, nil
}

func setParam(c *dynamo.Config, name string, v float64) error {
	switch name {
	case "g":
		c.G = v
	case "epsilon":
		c.Epsilon = v
	case "scale":
		c.Scale = v
	case "dt":
		c.Dt = v
	default:
		return fmt.Errorf("unknown parameter: %s", name)
	}
	return nil
}
