package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/physics"
)

func bodies(t *testing.T, specs ...[5]float64) []dynamo.Body {
	t.Helper()
	out := make([]dynamo.Body, 0, len(specs))
	for _, s := range specs {
		b, err := dynamo.NewBody(s[0], s[1], s[2], s[3], s[4])
		if err != nil {
			t.Fatal(err)
		}
		out = append(out, b)
	}
	return out
}

func TestEnergy(t *testing.T) {
	cfg := dynamo.DefaultConfig()
	m := NewEnergy(cfg)

	bs := bodies(t, [5]float64{0, 0, 1, 0, 2}, [5]float64{100, 0, 0, 0, 2})
	m.Observe(bs, 0)

	expected := physics.NewGravity(cfg).Energy(bs)
	if math.Abs(m.Value()-expected) > 1e-12 {
		t.Errorf("expected energy %f, got %f", expected, m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestEnergyDrift(t *testing.T) {
	cfg := dynamo.DefaultConfig()
	m := NewEnergyDrift(cfg)

	bs := bodies(t, [5]float64{0, 0, 1, 0, 1})
	m.Observe(bs, 0)
	if m.Value() != 0 {
		t.Errorf("expected zero drift on first sample, got %v", m.Value())
	}

	bs[0].VX = 2 // kinetic energy 0.5 -> 2
	m.Observe(bs, 0.02)
	if math.Abs(m.Value()-3) > 1e-12 {
		t.Errorf("expected drift 3, got %v", m.Value())
	}

	bs[0].VX = 1
	m.Observe(bs, 0.04)
	if math.Abs(m.Value()-3) > 1e-12 {
		t.Errorf("drift should report the maximum, got %v", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero drift after reset")
	}
}

func TestMomentumDrift(t *testing.T) {
	m := NewMomentumDrift()
	bs := bodies(t, [5]float64{0, 0, 1, 0, 2}, [5]float64{5, 0, -1, 0, 2})

	m.Observe(bs, 0)
	m.Observe(bs, 1)
	if m.Value() != 0 {
		t.Errorf("expected zero drift, got %v", m.Value())
	}

	bs[0].VY = 1.5
	m.Observe(bs, 2)
	if math.Abs(m.Value()-3) > 1e-12 {
		t.Errorf("expected drift 3, got %v", m.Value())
	}
}

func TestAngularMomentumDrift(t *testing.T) {
	m := NewAngularMomentumDrift()
	// L = m * (x*vy - y*vx) = 2 * (10*1) = 20
	bs := bodies(t, [5]float64{10, 0, 0, 1, 2})

	m.Observe(bs, 0)
	if m.Value() != 0 {
		t.Errorf("expected zero drift on first sample, got %v", m.Value())
	}

	bs[0].VY = 3 // L = 60
	m.Observe(bs, 1)
	if math.Abs(m.Value()-40) > 1e-12 {
		t.Errorf("expected drift 40, got %v", m.Value())
	}

	bs[0].VY = 1
	m.Observe(bs, 2)
	if math.Abs(m.Value()-40) > 1e-12 {
		t.Errorf("drift should report the maximum, got %v", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero drift after reset")
	}
}

func TestStability(t *testing.T) {
	s := NewStability(10)
	if s.Value() != 1 {
		t.Error("no samples should report full stability")
	}

	s.Observe(bodies(t, [5]float64{1, 1, 0, 0, 1}), 0)
	s.Observe(bodies(t, [5]float64{100, 0, 0, 0, 1}), 1)
	if s.Value() != 0.5 {
		t.Errorf("expected 0.5, got %v", s.Value())
	}
}

func TestBodyCount(t *testing.T) {
	c := NewBodyCount()
	c.Observe(bodies(t, [5]float64{0, 0, 0, 0, 1}, [5]float64{9, 9, 0, 0, 1}), 0)
	if c.Value() != 2 {
		t.Errorf("expected 2, got %v", c.Value())
	}
}

func TestDefault(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range Default(dynamo.DefaultConfig()) {
		if seen[m.Name()] {
			t.Errorf("duplicate metric %s", m.Name())
		}
		seen[m.Name()] = true
	}
	for _, name := range []string{"energy", "energy_drift", "momentum_drift", "angular_momentum_drift", "bodies", "stability"} {
		if !seen[name] {
			t.Errorf("missing metric %s", name)
		}
	}
}
