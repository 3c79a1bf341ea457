package integrators

import "github.com/san-kum/gravsim/internal/dynamo"

// SymplecticEuler is semi-implicit Euler: velocity first, then position
// from the updated velocity.
type SymplecticEuler struct{}

func NewSymplecticEuler() *SymplecticEuler {
	return &SymplecticEuler{}
}

func (s *SymplecticEuler) Integrate(b *dynamo.Body, dt float64) {
	m := b.Mass()
	b.VX += (b.FX / m) * dt
	b.VY += (b.FY / m) * dt

	b.X += b.VX * dt
	b.Y += b.VY * dt
}

// Euler is explicit forward Euler. Position advances with the velocity from
// before the kick. Only used to compare drift against SymplecticEuler.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Integrate(b *dynamo.Body, dt float64) {
	m := b.Mass()
	vx, vy := b.VX, b.VY

	b.VX += (b.FX / m) * dt
	b.VY += (b.FY / m) * dt

	b.X += vx * dt
	b.Y += vy * dt
}
