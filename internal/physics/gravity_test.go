package physics

import (
	"math"
	"testing"

	"github.com/san-kum/gravsim/internal/dynamo"
)

func mustBody(t testing.TB, x, y, vx, vy, m float64) dynamo.Body {
	t.Helper()
	b, err := dynamo.NewBody(x, y, vx, vy, m)
	if err != nil {
		t.Fatalf("NewBody: %v", err)
	}
	return b
}

func TestPairForce_Value(t *testing.T) {
	g := NewGravity(dynamo.DefaultConfig())
	a := mustBody(t, 0, 0, 0, 0, 1)
	b := mustBody(t, 10, 0, 0, 0, 1)

	fx, fy := g.PairForce(&a, &b)

	// dx = 10 * 0.1 = 1, distSq = 1 + 25
	want := 1.0 / 26.0 / math.Sqrt(26)
	if math.Abs(fx-want) > 1e-12 {
		t.Errorf("fx = %v, want %v", fx, want)
	}
	if fy != 0 {
		t.Errorf("fy = %v, want 0", fy)
	}
}

func TestPairForce_Symmetry(t *testing.T) {
	g := NewGravity(dynamo.DefaultConfig())

	tests := []struct {
		name   string
		a, b   [2]float64
		ma, mb float64
	}{
		{"axis", [2]float64{0, 0}, [2]float64{3, 0}, 10, 10},
		{"diagonal", [2]float64{-4, 2}, [2]float64{7, -9}, 3, 50},
		{"far", [2]float64{0, 0}, [2]float64{1000, 1000}, 1, 1},
		{"close", [2]float64{1, 1}, [2]float64{1.001, 1}, 5, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := mustBody(t, tt.a[0], tt.a[1], 0, 0, tt.ma)
			b := mustBody(t, tt.b[0], tt.b[1], 0, 0, tt.mb)

			fabx, faby := g.PairForce(&a, &b)
			fbax, fbay := g.PairForce(&b, &a)

			if math.Abs(fabx+fbax) > 1e-12 || math.Abs(faby+fbay) > 1e-12 {
				t.Errorf("force on a (%v, %v) not opposite to force on b (%v, %v)", fabx, faby, fbax, fbay)
			}
		})
	}
}

func TestPairForce_Coincident(t *testing.T) {
	g := NewGravity(dynamo.DefaultConfig())
	a := mustBody(t, 5, 5, 0, 0, 100)
	b := mustBody(t, 5, 5, 0, 0, 100)

	fx, fy := g.PairForce(&a, &b)
	if math.IsNaN(fx) || math.IsNaN(fy) || math.IsInf(fx, 0) || math.IsInf(fy, 0) {
		t.Fatalf("expected finite force, got (%v, %v)", fx, fy)
	}
	if fx != 0 || fy != 0 {
		t.Errorf("expected zero net force for coincident bodies, got (%v, %v)", fx, fy)
	}
}

func TestComputeForces_ResetsAndAccumulates(t *testing.T) {
	g := NewGravity(dynamo.DefaultConfig())
	set := dynamo.NewSet(
		mustBody(t, 0, 0, 0, 0, 1),
		mustBody(t, 10, 0, 0, 0, 1),
		mustBody(t, -10, 0, 0, 0, 1),
	)

	// stale force from a previous tick must not leak in
	set.At(0).ApplyForce(99, 99)

	g.ComputeForces(set)

	centre := set.At(0)
	if math.Abs(centre.FX) > 1e-12 || math.Abs(centre.FY) > 1e-12 {
		t.Errorf("centre body should feel zero net force, got (%v, %v)", centre.FX, centre.FY)
	}

	right := set.At(1)
	fx1, _ := g.PairForce(right, set.At(0))
	fx2, _ := g.PairForce(right, set.At(2))
	if math.Abs(right.FX-(fx1+fx2)) > 1e-12 {
		t.Errorf("expected accumulated fx %v, got %v", fx1+fx2, right.FX)
	}

	g.ComputeForces(set)
	if math.Abs(right.FX-(fx1+fx2)) > 1e-12 {
		t.Errorf("second call should recompute, not add: got %v", right.FX)
	}
}

func TestComputeForces_NetForceZero(t *testing.T) {
	g := NewGravity(dynamo.DefaultConfig())
	set := dynamo.NewSet(
		mustBody(t, 0, 0, 0, 0, 3),
		mustBody(t, 40, 10, 0, 0, 8),
		mustBody(t, -25, 60, 0, 0, 1),
		mustBody(t, 5, -70, 0, 0, 20),
	)
	g.ComputeForces(set)

	sx, sy := 0.0, 0.0
	for _, b := range set.Bodies() {
		sx += b.FX
		sy += b.FY
	}
	if math.Abs(sx) > 1e-12 || math.Abs(sy) > 1e-12 {
		t.Errorf("expected zero net force, got (%v, %v)", sx, sy)
	}
}

func TestComputeForces_Empty(t *testing.T) {
	g := NewGravity(dynamo.DefaultConfig())
	set := dynamo.NewSet()
	g.ComputeForces(set)

	single := dynamo.NewSet(mustBody(t, 1, 1, 0, 0, 1))
	g.ComputeForces(single)
	if single.At(0).FX != 0 || single.At(0).FY != 0 {
		t.Error("lone body should feel no force")
	}
}

func BenchmarkComputeForces50(b *testing.B) {
	g := NewGravity(dynamo.DefaultConfig())
	set := dynamo.NewSet()
	for i := 0; i < 50; i++ {
		set.Append(mustBody(b, float64(i*13%97), float64(i*29%89), 0, 0, 1+float64(i%5)))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.ComputeForces(set)
	}
}

func TestComputeForces_MatchesPairSum(t *testing.T) {
	g := NewGravity(dynamo.DefaultConfig())
	set := dynamo.NewSet()
	for i := 0; i < 300; i++ {
		set.Append(mustBody(t, float64(i%17)*13, float64(i/17)*11, 0, 0, 1+float64(i%5)))
	}
	g.ComputeForces(set)

	bodies := set.Bodies()
	for _, i := range []int{0, 63, 64, 150, 299} {
		var fx, fy float64
		for j := range bodies {
			if i == j {
				continue
			}
			px, py := g.PairForce(&bodies[i], &bodies[j])
			fx += px
			fy += py
		}
		if bodies[i].FX != fx || bodies[i].FY != fy {
			t.Errorf("body %d: got (%v, %v), want (%v, %v)", i, bodies[i].FX, bodies[i].FY, fx, fy)
		}
	}
}
