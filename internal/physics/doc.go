// Package physics implements the force and collision stages of a tick.
//
//   - [Gravity]: softened pairwise attraction, a [dynamo.ForceField]
//   - [Merger]: perfectly inelastic merging, a [dynamo.CollisionResolver]
//
// # Force Law
//
// For bodies i and j with displacement d = (p[j] - p[i]) * Scale:
//
//	F = G * m[i] * m[j] / (|d|^2 + eps^2)
//
// directed along d. The softening length eps must be positive; it keeps the
// denominator away from zero for coincident bodies.
//
// # Energy
//
// [Gravity.Energy] returns kinetic plus softened potential energy, useful to
// monitor integrator drift:
//
//	g := physics.NewGravity(cfg)
//	e0 := g.Energy(set.Bodies())
package physics
