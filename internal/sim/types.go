package sim

import (
	"fmt"

	"github.com/san-kum/gravsim/internal/dynamo"
)

// Command is a presentation-layer request drained at the next tick boundary.
type Command interface {
	apply(s *Simulator)
}

// createBody is only built by Simulator.CreateBody after validation, so
// it cannot be submitted with an unchecked body.
type createBody struct {
	body dynamo.Body
}

func (c createBody) apply(s *Simulator) {
	s.bodies.Append(c.body)
}

type SetRunning struct {
	Running bool
}

func (c SetRunning) apply(s *Simulator) {
	s.clock.Running = c.Running
}

type Reset struct{}

func (Reset) apply(s *Simulator) {
	s.bodies.Clear()
}

// Clock holds the fixed step and the run flag. Paused is the zero state.
type Clock struct {
	Dt      float64
	Running bool
}

// Option configures a Simulator in New. An option that returns an error
// aborts construction.
type Option func(*Simulator) error

func WithIntegrator(i dynamo.Integrator) Option {
	return func(s *Simulator) error {
		s.integrator = i
		return nil
	}
}

func WithForceField(f dynamo.ForceField) Option {
	return func(s *Simulator) error {
		s.field = f
		return nil
	}
}

func WithResolver(r dynamo.CollisionResolver) Option {
	return func(s *Simulator) error {
		s.resolver = r
		return nil
	}
}

// WithBodies seeds the set. Every body is validated first; New fails on the
// first invalid one and nothing is added.
func WithBodies(bodies ...dynamo.Body) Option {
	return func(s *Simulator) error {
		for i := range bodies {
			if err := bodies[i].Validate(); err != nil {
				return fmt.Errorf("body %d: %w", i, err)
			}
		}
		for _, b := range bodies {
			b.ID = s.newID()
			s.bodies.Append(b)
		}
		return nil
	}
}

func WithRunning(running bool) Option {
	return func(s *Simulator) error {
		s.clock.Running = running
		return nil
	}
}

type Result struct {
	Steps   int
	Time    float64
	Merges  int
	Metrics map[string]float64
	Final   []dynamo.BodyState
}
