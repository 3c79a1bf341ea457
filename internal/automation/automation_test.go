package automation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/dynamo"
)

const collisionScript = `
name: two-body
steps:
  - at: 0
    action: create
    body: {x: 0, y: 0, mass: 10}
  - at: 0
    action: create
    body: {x: 3, y: 0, mass: 10}
  - at: 2
    action: run
  - at: 5
    action: pause
ticks: 8
`

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScript(t *testing.T) {
	script, err := LoadScript(writeScript(t, collisionScript))
	if err != nil {
		t.Fatal(err)
	}
	if script.Name != "two-body" || len(script.Steps) != 4 {
		t.Errorf("unexpected script %+v", script)
	}
	if script.Steps[1].Body.X != 3 {
		t.Errorf("expected second body at x=3, got %v", script.Steps[1].Body.X)
	}
}

func TestRunScript_Collision(t *testing.T) {
	script, err := LoadScript(writeScript(t, collisionScript))
	if err != nil {
		t.Fatal(err)
	}

	res, err := RunScript(context.Background(), script)
	if err != nil {
		t.Fatal(err)
	}
	if res.Frames != 8 {
		t.Errorf("expected 8 frames, got %d", res.Frames)
	}
	// running from frame 2 until the pause queued before frame 5
	if res.Steps != 3 {
		t.Errorf("expected 3 running steps, got %d", res.Steps)
	}
	if res.Merges != 1 || len(res.Final) != 1 || res.Final[0].Mass != 20 {
		t.Errorf("expected a single merged body of mass 20, got %+v", res.Final)
	}
}

func TestRunScript_Reset(t *testing.T) {
	script := &Script{
		Preset: "binary",
		Steps: []Step{
			{At: 0, Action: ActionRun},
			{At: 3, Action: ActionReset},
			{At: 4, Action: ActionCreate, Body: &config.BodyConfig{X: 1, Y: 1, Mass: 2}},
		},
	}
	if script.Frames() != 5 {
		t.Fatalf("expected 5 frames, got %d", script.Frames())
	}

	res, err := RunScript(context.Background(), script)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Final) != 1 || res.Final[0].Mass != 2 {
		t.Errorf("expected only the body created after reset, got %+v", res.Final)
	}
	if res.Steps != 5 {
		t.Errorf("reset must keep the run state, got %d steps", res.Steps)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		script Script
	}{
		{"unknown action", Script{Steps: []Step{{Action: "explode"}}}},
		{"create without body", Script{Steps: []Step{{Action: ActionCreate}}}},
		{"invalid body", Script{Steps: []Step{{Action: ActionCreate, Body: &config.BodyConfig{Mass: -1}}}}},
		{"negative frame", Script{Steps: []Step{{At: -1, Action: ActionRun}}}},
		{"unknown preset", Script{Preset: "nope"}},
		{"step past last frame", Script{Ticks: 5, Steps: []Step{{At: 5, Action: ActionRun}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.script.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}

	late := Script{Ticks: 3, Steps: []Step{{At: 2, Action: ActionRun}, {At: 7, Action: ActionPause}}}
	if err := late.Validate(); !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds for a step after the last frame, got %v", err)
	}
	if err := (&Script{Ticks: 3, Steps: []Step{{At: 2, Action: ActionRun}}}).Validate(); err != nil {
		t.Errorf("step on the last frame should be accepted, got %v", err)
	}

	bad := Script{Steps: []Step{{Action: ActionCreate, Body: &config.BodyConfig{Mass: 0}}}}
	if err := bad.Validate(); !errors.Is(err, dynamo.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRunScript_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := RunScript(ctx, &Script{Ticks: 10})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if res.Frames != 0 {
		t.Errorf("expected no frames, got %d", res.Frames)
	}
}

func TestRunSweep(t *testing.T) {
	results, err := RunSweep(context.Background(), &ParameterSweep{
		Preset: "collision", Param: "epsilon", Min: -1, Max: 5, NumSteps: 3, Ticks: 2,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(results))
	}
	if !errors.Is(results[0].Err, dynamo.ErrDegenerateConfig) {
		t.Errorf("epsilon -1 should be rejected, got %v", results[0].Err)
	}
	for _, r := range results[1:] {
		if r.Err != nil || r.Bodies != 1 || r.Merges != 1 {
			t.Errorf("expected a merge at epsilon %v, got %+v", r.Value, r)
		}
	}

	if _, err := RunSweep(context.Background(), &ParameterSweep{Preset: "collision", Param: "mass", NumSteps: 1}); err == nil {
		t.Error("expected error for unknown parameter")
	}
	if _, err := RunSweep(context.Background(), &ParameterSweep{Preset: "nope", Param: "g", NumSteps: 1}); !errors.Is(err, dynamo.ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}
