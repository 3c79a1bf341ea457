package physics

import (
	"math"

	"github.com/san-kum/gravsim/internal/dynamo"
)

// Gravity is the softened inverse-square force field.
type Gravity struct {
	G         float64
	Softening float64
	Scale     float64
}

// NewGravity builds the field from validated constants.
func NewGravity(cfg dynamo.Config) *Gravity {
	return &Gravity{
		G:         cfg.G,
		Softening: cfg.Epsilon,
		Scale:     cfg.Scale,
	}
}

// ComputeForces resets every force once, then accumulates the pull of every
// other body onto each body. O(n^2).
func (g *Gravity) ComputeForces(set *dynamo.Set) {
	bodies := set.Bodies()
	for i := range bodies {
		bodies[i].ResetForce()
	}

	for i := range bodies {
		bi := &bodies[i]
		for j := range bodies {
			if i == j {
				continue
			}
			fx, fy := g.PairForce(bi, &bodies[j])
			bi.ApplyForce(fx, fy)
		}
	}
}

// PairForce returns the force body b exerts on body a.
func (g *Gravity) PairForce(a, b *dynamo.Body) (fx, fy float64) {
	dx := (b.X - a.X) * g.Scale
	dy := (b.Y - a.Y) * g.Scale

	distSq := dx*dx + dy*dy + g.Softening*g.Softening
	dist := math.Sqrt(distSq)

	f := g.G * a.Mass() * b.Mass() / distSq
	return f * dx / dist, f * dy / dist
}
