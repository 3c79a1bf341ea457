package metrics

import (
	"math"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/physics"
)

// Energy reports the most recent total (kinetic + potential) energy.
type Energy struct {
	name    string
	field   *physics.Gravity
	current float64
	samples int
}

func NewEnergy(cfg dynamo.Config) *Energy {
	return &Energy{
		name:  "energy",
		field: physics.NewGravity(cfg),
	}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(bodies []dynamo.Body, t float64) {
	e.current = e.field.Energy(bodies)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.current
}

func (e *Energy) Reset() {
	e.current = 0
	e.samples = 0
}

// EnergyDrift is the largest relative departure from the first observed
// energy. Merges are inelastic, so drift also absorbs the energy they shed.
type EnergyDrift struct {
	name          string
	field         *physics.Gravity
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift(cfg dynamo.Config) *EnergyDrift {
	return &EnergyDrift{
		name:  "energy_drift",
		field: physics.NewGravity(cfg),
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(bodies []dynamo.Body, t float64) {
	energy := e.field.Energy(bodies)

	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
