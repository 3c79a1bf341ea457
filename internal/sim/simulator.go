package sim

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/integrators"
	"github.com/san-kum/gravsim/internal/physics"
)

// Simulator owns the body set and runs one tick at a time:
// drain commands, then forces, integration and merging when running.
//
// Observers and metrics are called with the tick lock held and must not
// call back into the Simulator.
type Simulator struct {
	mu         sync.Mutex
	cfg        dynamo.Config
	clock      Clock
	bodies     dynamo.Set
	field      dynamo.ForceField
	integrator dynamo.Integrator
	resolver   dynamo.CollisionResolver
	metrics    []dynamo.Metric
	observers  []dynamo.Observer
	frames     int
	steps      int
	t          float64
	merges     int

	qmu   sync.Mutex
	queue []Command

	lastID atomic.Uint64
}

// New validates cfg and wires the default stages: softened gravity,
// semi-implicit Euler and inelastic merging.
func New(cfg dynamo.Config, opts ...Option) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Simulator{
		cfg:        cfg,
		clock:      Clock{Dt: cfg.Dt},
		field:      physics.NewGravity(cfg),
		integrator: integrators.NewSymplecticEuler(),
		resolver:   physics.NewMerger(),
		metrics:    make([]dynamo.Metric, 0),
		observers:  make([]dynamo.Observer, 0),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Simulator) AddMetric(m dynamo.Metric) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics = append(s.metrics, m)
}

func (s *Simulator) AddObserver(o dynamo.Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

func (s *Simulator) Config() dynamo.Config { return s.cfg }

func (s *Simulator) newID() dynamo.BodyID {
	return dynamo.BodyID(s.lastID.Add(1))
}

// Submit queues a command for the next tick boundary.
func (s *Simulator) Submit(cmd Command) {
	s.qmu.Lock()
	s.queue = append(s.queue, cmd)
	s.qmu.Unlock()
}

// CreateBody validates the inputs and queues the body. Invalid input is
// rejected here and never reaches the set.
func (s *Simulator) CreateBody(x, y, vx, vy, mass float64) (dynamo.BodyID, error) {
	b, err := dynamo.NewBody(x, y, vx, vy, mass)
	if err != nil {
		return 0, err
	}
	b.ID = s.newID()
	s.Submit(createBody{body: b})
	return b.ID, nil
}

func (s *Simulator) SetRunning(running bool) {
	s.Submit(SetRunning{Running: running})
}

func (s *Simulator) Reset() {
	s.Submit(Reset{})
}

func (s *Simulator) Pending() int {
	s.qmu.Lock()
	defer s.qmu.Unlock()
	return len(s.queue)
}

// Tick advances the simulation by one frame. Commands queued since the
// previous tick are applied first, in order; physics only runs if the
// clock is running once they have been applied.
func (s *Simulator) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.drain()
	s.frames++

	if !s.clock.Running {
		return
	}
	s.step()
}

func (s *Simulator) drain() {
	s.qmu.Lock()
	pending := s.queue
	s.queue = nil
	s.qmu.Unlock()

	for _, cmd := range pending {
		cmd.apply(s)
	}
}

func (s *Simulator) step() {
	dt := s.clock.Dt

	s.field.ComputeForces(&s.bodies)

	bodies := s.bodies.Bodies()
	for i := range bodies {
		s.integrator.Integrate(&bodies[i], dt)
	}

	merges := s.resolver.Resolve(&s.bodies)
	s.merges += len(merges)

	s.steps++
	s.t += dt

	bodies = s.bodies.Bodies()
	for _, m := range s.metrics {
		m.Observe(bodies, s.t)
	}
	for _, obs := range s.observers {
		if mo, ok := obs.(dynamo.MergeObserver); ok {
			for _, m := range merges {
				mo.OnMerge(m)
			}
		}
		obs.OnTick(s.steps, s.t, bodies)
	}
}

// Run ticks the simulator n times, checking ctx between ticks.
func (s *Simulator) Run(ctx context.Context, n int) (*Result, error) {
	s.mu.Lock()
	for _, m := range s.metrics {
		m.Reset()
	}
	startMerges := s.merges
	startSteps := s.steps
	s.mu.Unlock()

	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return s.result(startSteps, startMerges), ctx.Err()
		default:
		}
		s.Tick()
	}

	return s.result(startSteps, startMerges), nil
}

func (s *Simulator) result(startSteps, startMerges int) *Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := &Result{
		Steps:   s.steps - startSteps,
		Time:    s.t,
		Merges:  s.merges - startMerges,
		Metrics: make(map[string]float64, len(s.metrics)),
		Final:   s.bodies.Snapshot(),
	}
	for _, m := range s.metrics {
		r.Metrics[m.Name()] = m.Value()
	}
	return r
}

// Snapshot copies the body set. It never observes a partial tick.
func (s *Simulator) Snapshot() []dynamo.BodyState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bodies.Snapshot()
}

func (s *Simulator) Bodies() []dynamo.Body {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bodies.Clone()
}

func (s *Simulator) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clock.Running
}

func (s *Simulator) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bodies.Len()
}

func (s *Simulator) Time() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t
}

// Steps counts ticks that ran physics; Frames counts every tick.
func (s *Simulator) Steps() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.steps
}

func (s *Simulator) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

func (s *Simulator) Merges() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.merges
}
