package physics

import (
	"math"

	"github.com/san-kum/gravsim/internal/dynamo"
)

// Merger resolves overlapping bodies with perfectly inelastic collisions.
type Merger struct{}

func NewMerger() *Merger {
	return &Merger{}
}

// Overlapping reports whether the centres are closer than the sum of radii.
// Positions are compared unscaled.
func Overlapping(a, b *dynamo.Body) bool {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return math.Sqrt(dx*dx+dy*dy) < a.Radius()+b.Radius()
}

// Resolve scans pairs i < j in order. When j is absorbed into i the slot j
// now holds the next body, so the inner cursor stays put for another look.
// The survivor keeps its own position.
func (m *Merger) Resolve(set *dynamo.Set) []dynamo.Merge {
	var merges []dynamo.Merge

	for i := 0; i < set.Len(); i++ {
		for j := i + 1; j < set.Len(); j++ {
			a, b := set.At(i), set.At(j)
			if !Overlapping(a, b) {
				continue
			}

			merges = append(merges, absorb(a, b))
			set.RemoveAt(j)
			j--
		}
	}

	return merges
}

func absorb(a, b *dynamo.Body) dynamo.Merge {
	total := a.Mass() + b.Mass()

	a.VX = (a.VX*a.Mass() + b.VX*b.Mass()) / total
	a.VY = (a.VY*a.Mass() + b.VY*b.Mass()) / total
	// sum of two valid masses is positive and finite
	_ = a.SetMass(total)

	return dynamo.Merge{
		Survivor: a.ID,
		Absorbed: b.ID,
		Mass:     total,
		X:        a.X,
		Y:        a.Y,
		VX:       a.VX,
		VY:       a.VY,
	}
}
