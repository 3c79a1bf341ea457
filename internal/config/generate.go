package config

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/aquilax/go-perlin"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/physics"
)

const (
	GeneratorRing   = "ring"
	GeneratorNebula = "nebula"

	nebulaAlpha     = 2.0
	nebulaBeta      = 2.0
	nebulaOctaves   = 3
	nebulaThreshold = 0.05
	nebulaFrequency = 3.0
	maxRejections   = 10000
)

// Generate places g.Count bodies at rest according to g.Kind.
func Generate(g GeneratorConfig) ([]dynamo.Body, error) {
	switch g.Kind {
	case "":
		return nil, nil
	case GeneratorRing:
		return ring(g)
	case GeneratorNebula:
		return nebula(g)
	default:
		return nil, fmt.Errorf("%w: generator %q", dynamo.ErrParameterBounds, g.Kind)
	}
}

func ring(g GeneratorConfig) ([]dynamo.Body, error) {
	out := make([]dynamo.Body, 0, g.Count)
	for i := 0; i < g.Count; i++ {
		a := 2 * math.Pi * float64(i) / float64(g.Count)
		b, err := dynamo.NewBody(g.CenterX+g.Radius*math.Cos(a), g.CenterY+g.Radius*math.Sin(a), 0, 0, g.Mass)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// nebula rejection-samples a disc, keeping points where Perlin noise is
// dense, so bodies clump into filaments.
func nebula(g GeneratorConfig) ([]dynamo.Body, error) {
	rng := rand.New(rand.NewSource(g.Seed))
	noise := perlin.NewPerlin(nebulaAlpha, nebulaBeta, nebulaOctaves, g.Seed)

	out := make([]dynamo.Body, 0, g.Count)
	for tries := 0; len(out) < g.Count; tries++ {
		if tries > maxRejections {
			return nil, fmt.Errorf("%w: nebula could not place %d bodies", dynamo.ErrParameterBounds, g.Count)
		}
		r := g.Radius * math.Sqrt(rng.Float64())
		a := 2 * math.Pi * rng.Float64()
		x, y := r*math.Cos(a), r*math.Sin(a)

		var density float64
		if g.Radius > 0 {
			density = noise.Noise2D(x/g.Radius*nebulaFrequency, y/g.Radius*nebulaFrequency)
		}
		if density < nebulaThreshold && g.Radius > 0 {
			continue
		}
		b, err := dynamo.NewBody(g.CenterX+x, g.CenterY+y, 0, 0, g.Mass*(0.5+rng.Float64()))
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// AutoOrbit gives every resting body after the first a circular velocity
// around the first body, counter-clockwise.
func AutoOrbit(cfg dynamo.Config, bodies []dynamo.Body) {
	if len(bodies) < 2 {
		return
	}
	g := physics.NewGravity(cfg)
	c := &bodies[0]
	for i := 1; i < len(bodies); i++ {
		b := &bodies[i]
		if b.VX != 0 || b.VY != 0 {
			continue
		}
		dx, dy := b.X-c.X, b.Y-c.Y
		r := math.Hypot(dx, dy)
		if r == 0 {
			continue
		}
		v := g.CircularSpeed(c.Mass(), r)
		b.VX = c.VX - v*dy/r
		b.VY = c.VY + v*dx/r
	}
}
