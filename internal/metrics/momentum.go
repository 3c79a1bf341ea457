package metrics

import (
	"math"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/physics"
)

// MomentumDrift is the largest change in total momentum magnitude seen
// since the first sample. Both forces and merges conserve momentum, so this
// should stay at rounding level.
type MomentumDrift struct {
	name     string
	px0, py0 float64
	maxDrift float64
	samples  int
}

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{name: "momentum_drift"}
}

func (m *MomentumDrift) Name() string { return m.name }

func (m *MomentumDrift) Observe(bodies []dynamo.Body, t float64) {
	px, py := physics.Momentum(bodies)
	if m.samples == 0 {
		m.px0, m.py0 = px, py
	}
	m.samples++
	m.maxDrift = math.Max(m.maxDrift, math.Hypot(px-m.px0, py-m.py0))
}

func (m *MomentumDrift) Value() float64 { return m.maxDrift }

func (m *MomentumDrift) Reset() {
	m.px0, m.py0 = 0, 0
	m.maxDrift = 0
	m.samples = 0
}

// AngularMomentumDrift is the largest change in total angular momentum
// about the origin since the first sample. Central pair forces conserve it;
// merges do not, since the survivor keeps its own position.
type AngularMomentumDrift struct {
	l0       float64
	maxDrift float64
	samples  int
}

func NewAngularMomentumDrift() *AngularMomentumDrift { return &AngularMomentumDrift{} }

func (a *AngularMomentumDrift) Name() string { return "angular_momentum_drift" }

func (a *AngularMomentumDrift) Observe(bodies []dynamo.Body, t float64) {
	l := physics.AngularMomentum(bodies)
	if a.samples == 0 {
		a.l0 = l
	}
	a.samples++
	a.maxDrift = math.Max(a.maxDrift, math.Abs(l-a.l0))
}

func (a *AngularMomentumDrift) Value() float64 { return a.maxDrift }

func (a *AngularMomentumDrift) Reset() {
	a.l0 = 0
	a.maxDrift = 0
	a.samples = 0
}

// BodyCount reports the number of bodies at the latest sample.
type BodyCount struct {
	count   int
	samples int
}

func NewBodyCount() *BodyCount { return &BodyCount{} }

func (b *BodyCount) Name() string { return "bodies" }

func (b *BodyCount) Observe(bodies []dynamo.Body, t float64) {
	b.count = len(bodies)
	b.samples++
}

func (b *BodyCount) Value() float64 { return float64(b.count) }

func (b *BodyCount) Reset() {
	b.count = 0
	b.samples = 0
}

// Default returns the metric set used by headless runs.
func Default(cfg dynamo.Config) []dynamo.Metric {
	return []dynamo.Metric{
		NewEnergy(cfg),
		NewEnergyDrift(cfg),
		NewMomentumDrift(),
		NewAngularMomentumDrift(),
		NewBodyCount(),
		NewStability(1e5),
	}
}
