// Package dynamo provides core simulation primitives for the gravity engine.
//
// The package defines the fundamental types shared by every other package:
//
//   - [Body]: one point mass (position, velocity, force, mass, radius)
//   - [Set]: ordered, compacting collection of bodies
//   - [Config]: immutable physical constants (G, softening, scale, dt)
//   - [ForceField], [Integrator], [CollisionResolver]: the three stages of a tick
//   - [Merge]: event emitted when one body absorbs another
//
// # Example
//
//	cfg := dynamo.DefaultConfig()
//	var set dynamo.Set
//	b, _ := dynamo.NewBody(0, 0, 0, 0, 10)
//	set.Append(b)
//
// # Invariants
//
// A body's radius is always sqrt(mass). Mass can only change through
// [Body.SetMass], which re-derives the radius.
//
// # Thread Safety
//
// Set and Body are NOT thread-safe. The sim package serialises access.
package dynamo
