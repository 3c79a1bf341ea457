package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/integrators"
)

const (
	DefaultTicks = 1000
	DefaultName  = "collision"
)

type Config struct {
	Name       string          `yaml:"name"`
	Integrator string          `yaml:"integrator"`
	Ticks      int             `yaml:"ticks"`
	Physics    dynamo.Config   `yaml:"physics"`
	Bodies     []BodyConfig    `yaml:"bodies"`
	Generator  GeneratorConfig `yaml:"generator"`
	AutoOrbit  bool            `yaml:"auto_orbit"`
}

type BodyConfig struct {
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	VX   float64 `yaml:"vx"`
	VY   float64 `yaml:"vy"`
	Mass float64 `yaml:"mass"`
}

// GeneratorConfig describes bodies placed procedurally after the explicit
// Bodies list. Kind is "ring", "nebula" or empty.
type GeneratorConfig struct {
	Kind    string  `yaml:"kind"`
	Count   int     `yaml:"count"`
	Radius  float64 `yaml:"radius"`
	CenterX float64 `yaml:"center_x"`
	CenterY float64 `yaml:"center_y"`
	Mass    float64 `yaml:"mass"`
	Seed    int64   `yaml:"seed"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:       DefaultName,
		Integrator: integrators.Default,
		Ticks:      DefaultTicks,
		Physics:    dynamo.DefaultConfig(),
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if err := c.Physics.Validate(); err != nil {
		return err
	}
	if _, err := integrators.Get(c.Integrator); err != nil {
		return err
	}
	if c.Ticks < 0 {
		return fmt.Errorf("%w: ticks %d", dynamo.ErrParameterBounds, c.Ticks)
	}
	for i, b := range c.Bodies {
		if _, err := b.Body(); err != nil {
			return fmt.Errorf("body %d: %w", i, err)
		}
	}
	switch c.Generator.Kind {
	case "", GeneratorRing, GeneratorNebula:
	default:
		return fmt.Errorf("%w: generator %q", dynamo.ErrParameterBounds, c.Generator.Kind)
	}
	if c.Generator.Kind != "" && (c.Generator.Count < 0 || c.Generator.Mass <= 0) {
		return fmt.Errorf("%w: generator needs count >= 0 and mass > 0", dynamo.ErrParameterBounds)
	}
	return nil
}

func (b BodyConfig) Body() (dynamo.Body, error) {
	return dynamo.NewBody(b.X, b.Y, b.VX, b.VY, b.Mass)
}

// InitialBodies builds the starting set: explicit bodies, then generated
// ones, then auto-orbit velocities if enabled.
func (c *Config) InitialBodies() ([]dynamo.Body, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	bodies := make([]dynamo.Body, 0, len(c.Bodies)+c.Generator.Count)
	for _, bc := range c.Bodies {
		b, err := bc.Body()
		if err != nil {
			return nil, err
		}
		bodies = append(bodies, b)
	}

	gen, err := Generate(c.Generator)
	if err != nil {
		return nil, err
	}
	bodies = append(bodies, gen...)

	if c.AutoOrbit {
		AutoOrbit(c.Physics, bodies)
	}
	return bodies, nil
}
