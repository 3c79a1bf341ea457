package dynamo

import (
	"fmt"
	"math"
)

// BodyID is the handle returned to callers that create bodies.
type BodyID uint64

type Body struct {
	ID     BodyID
	X, Y   float64
	VX, VY float64
	FX, FY float64
	mass   float64
	radius float64
}

// NewBody validates the inputs and returns a body with radius sqrt(mass).
// The ID is left for the caller to assign.
func NewBody(x, y, vx, vy, mass float64) (Body, error) {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"x", x}, {"y", y}, {"vx", vx}, {"vy", vy},
	} {
		if !isFinite(f.v) {
			return Body{}, &InputError{Field: f.name, Value: f.v}
		}
	}

	b := Body{X: x, Y: y, VX: vx, VY: vy}
	if err := b.SetMass(mass); err != nil {
		return Body{}, err
	}
	return b, nil
}

func (b *Body) Mass() float64   { return b.mass }
func (b *Body) Radius() float64 { return b.radius }

// SetMass is the only way to change mass; it keeps radius == sqrt(mass).
// A non-positive or non-finite mass is refused and the body is unchanged.
func (b *Body) SetMass(m float64) error {
	if !isFinite(m) || m <= 0 {
		return &InputError{Field: "mass", Value: m}
	}
	b.mass = m
	b.radius = math.Sqrt(m)
	return nil
}

// Validate reports whether b could have come from NewBody. A zero Body
// literal fails on its mass.
func (b *Body) Validate() error {
	_, err := NewBody(b.X, b.Y, b.VX, b.VY, b.mass)
	return err
}

func (b *Body) ResetForce() {
	b.FX, b.FY = 0, 0
}

func (b *Body) ApplyForce(fx, fy float64) {
	b.FX += fx
	b.FY += fy
}

func (b *Body) Momentum() (px, py float64) {
	return b.VX * b.mass, b.VY * b.mass
}

func (b *Body) State() BodyState {
	return BodyState{
		ID: b.ID,
		X:  b.X, Y: b.Y,
		VX: b.VX, VY: b.VY,
		FX: b.FX, FY: b.FY,
		Mass:   b.mass,
		Radius: b.radius,
	}
}

func (b Body) String() string {
	return fmt.Sprintf("body#%d pos=(%.3f, %.3f) vel=(%.3f, %.3f) m=%.3f", b.ID, b.X, b.Y, b.VX, b.VY, b.mass)
}

// BodyState is a read-only snapshot row handed to renderers and exporters.
type BodyState struct {
	ID     BodyID  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	VX     float64 `json:"vx"`
	VY     float64 `json:"vy"`
	FX     float64 `json:"fx"`
	FY     float64 `json:"fy"`
	Mass   float64 `json:"mass"`
	Radius float64 `json:"radius"`
}

// Merge records one body absorbing another during collision resolution.
type Merge struct {
	Survivor BodyID  `json:"survivor"`
	Absorbed BodyID  `json:"absorbed"`
	Mass     float64 `json:"mass"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	VX       float64 `json:"vx"`
	VY       float64 `json:"vy"`
}

type ForceField interface {
	ComputeForces(set *Set)
}

type Integrator interface {
	Integrate(b *Body, dt float64)
}

type CollisionResolver interface {
	Resolve(set *Set) []Merge
}

type Metric interface {
	Name() string
	Observe(bodies []Body, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnTick(tick int, t float64, bodies []Body)
}

// MergeObserver is implemented by observers that want individual merge events.
type MergeObserver interface {
	OnMerge(m Merge)
}

type Config struct {
	G       float64 `yaml:"g" json:"g"`
	Epsilon float64 `yaml:"epsilon" json:"epsilon"`
	Scale   float64 `yaml:"scale" json:"scale"`
	Dt      float64 `yaml:"dt" json:"dt"`
}

const (
	DefaultG       = 1.0
	DefaultEpsilon = 5.0
	DefaultScale   = 0.1
	DefaultDt      = 0.02
)

func DefaultConfig() Config {
	return Config{
		G:       DefaultG,
		Epsilon: DefaultEpsilon,
		Scale:   DefaultScale,
		Dt:      DefaultDt,
	}
}

// Validate rejects constant sets that would make a tick ill-defined.
func (c Config) Validate() error {
	if !isFinite(c.Epsilon) || c.Epsilon <= 0 {
		return fmt.Errorf("epsilon=%v: %w", c.Epsilon, ErrDegenerateConfig)
	}
	if !isFinite(c.Dt) || c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %v: %w", c.Dt, ErrParameterBounds)
	}
	if !isFinite(c.G) {
		return fmt.Errorf("g=%v: %w", c.G, ErrParameterBounds)
	}
	if !isFinite(c.Scale) || c.Scale <= 0 {
		return fmt.Errorf("scale must be positive, got %v: %w", c.Scale, ErrParameterBounds)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
