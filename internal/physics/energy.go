package physics

import (
	"math"

	"github.com/san-kum/gravsim/internal/dynamo"
)

func (g *Gravity) Kinetic(bodies []dynamo.Body) float64 {
	ke := 0.0
	for i := range bodies {
		b := &bodies[i]
		ke += 0.5 * b.Mass() * (b.VX*b.VX + b.VY*b.VY)
	}
	return ke
}

// Potential is the softened pair potential whose gradient in unscaled
// coordinates is exactly the force ComputeForces applies.
func (g *Gravity) Potential(bodies []dynamo.Body) float64 {
	eps2 := g.Softening * g.Softening
	pe := 0.0
	for i := range bodies {
		for j := i + 1; j < len(bodies); j++ {
			dx := (bodies[j].X - bodies[i].X) * g.Scale
			dy := (bodies[j].Y - bodies[i].Y) * g.Scale
			r := math.Sqrt(dx*dx + dy*dy + eps2)
			pe -= g.G * bodies[i].Mass() * bodies[j].Mass() / (g.Scale * r)
		}
	}
	return pe
}

func (g *Gravity) Energy(bodies []dynamo.Body) float64 {
	return g.Kinetic(bodies) + g.Potential(bodies)
}

func Momentum(bodies []dynamo.Body) (px, py float64) {
	for i := range bodies {
		x, y := bodies[i].Momentum()
		px += x
		py += y
	}
	return
}

// AngularMomentum is the total z component of r x p about the origin.
func AngularMomentum(bodies []dynamo.Body) float64 {
	L := 0.0
	for i := range bodies {
		b := &bodies[i]
		L += b.Mass() * (b.X*b.VY - b.Y*b.VX)
	}
	return L
}

// CircularSpeed is the speed that keeps a light body on a circular orbit of
// radius r around a fixed mass M under the softened law.
func (g *Gravity) CircularSpeed(M, r float64) float64 {
	if r <= 0 {
		return 0
	}
	s := r * g.Scale
	d2 := s*s + g.Softening*g.Softening
	a := g.G * M / d2 * s / math.Sqrt(d2)
	return math.Sqrt(a * r)
}
