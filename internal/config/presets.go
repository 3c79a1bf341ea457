package config

import (
	"sort"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/integrators"
)

var Presets = map[string]*Config{
	"collision": {
		Name: "collision", Integrator: integrators.Default, Ticks: 10,
		Physics: dynamo.DefaultConfig(),
		Bodies: []BodyConfig{
			{X: 0, Y: 0, Mass: 10},
			{X: 3, Y: 0, Mass: 10},
		},
	},
	"binary": {
		Name: "binary", Integrator: integrators.Default, Ticks: 2000,
		Physics: dynamo.DefaultConfig(),
		Bodies: []BodyConfig{
			{X: -60, Y: 0, VX: 0, VY: -8.1, Mass: 200},
			{X: 60, Y: 0, VX: 0, VY: 8.1, Mass: 200},
		},
	},
	"orbit": {
		Name: "orbit", Integrator: integrators.Default, Ticks: 5000,
		Physics:   dynamo.DefaultConfig(),
		AutoOrbit: true,
		Bodies: []BodyConfig{
			{X: 0, Y: 0, Mass: 500},
			{X: 120, Y: 0, Mass: 2},
			{X: 0, Y: -200, Mass: 4},
			{X: -300, Y: 0, Mass: 1},
		},
	},
	"ring": {
		Name: "ring", Integrator: integrators.Default, Ticks: 3000,
		Physics:   dynamo.DefaultConfig(),
		AutoOrbit: true,
		Bodies:    []BodyConfig{{Mass: 400}},
		Generator: GeneratorConfig{Kind: GeneratorRing, Count: 24, Radius: 250, Mass: 1},
	},
	"nebula": {
		Name: "nebula", Integrator: integrators.Default, Ticks: 3000,
		Physics:   dynamo.DefaultConfig(),
		Generator: GeneratorConfig{Kind: GeneratorNebula, Count: 60, Radius: 300, Mass: 2, Seed: 42},
	},
}

// GetPreset returns a deep copy so callers may override fields freely.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	cfg.Bodies = append([]BodyConfig(nil), p.Bodies...)
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
