package control

import "math"

const (
	MinMass     = 1.0
	MaxMass     = 500.0
	DefaultMass = 10.0
)

// Mass is the mass applied to newly created bodies, clamped to
// [MinMass, MaxMass].
type Mass struct {
	value float64
}

func NewMass(v float64) *Mass {
	m := &Mass{}
	m.Set(v)
	return m
}

func (m *Mass) Value() float64 { return m.value }

// Set clamps v into range. NaN resets to DefaultMass.
func (m *Mass) Set(v float64) {
	if math.IsNaN(v) {
		v = DefaultMass
	}
	m.value = math.Min(MaxMass, math.Max(MinMass, v))
}

func (m *Mass) Adjust(delta float64) {
	m.Set(m.value + delta)
}
