package sim

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/integrators"
)

type countingMetric struct {
	samples int
}

func (c *countingMetric) Name() string                       { return "count" }
func (c *countingMetric) Observe(b []dynamo.Body, t float64) { c.samples++ }
func (c *countingMetric) Value() float64                     { return float64(c.samples) }
func (c *countingMetric) Reset()                             { c.samples = 0 }

type recordingObserver struct {
	ticks  []int
	merges []dynamo.Merge
}

func (r *recordingObserver) OnTick(tick int, t float64, bodies []dynamo.Body) {
	r.ticks = append(r.ticks, tick)
}

func (r *recordingObserver) OnMerge(m dynamo.Merge) {
	r.merges = append(r.merges, m)
}

var _ = Describe("Simulator", func() {
	var s *Simulator

	BeforeEach(func() {
		var err error
		s, err = New(dynamo.DefaultConfig())
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("construction", func() {
		It("starts paused and empty", func() {
			Expect(s.Running()).To(BeFalse())
			Expect(s.Len()).To(BeZero())
		})

		It("rejects a zero softening length", func() {
			cfg := dynamo.DefaultConfig()
			cfg.Epsilon = 0
			_, err := New(cfg)
			Expect(errors.Is(err, dynamo.ErrDegenerateConfig)).To(BeTrue())
		})

		It("rejects a negative softening length", func() {
			cfg := dynamo.DefaultConfig()
			cfg.Epsilon = -2
			_, err := New(cfg)
			Expect(err).To(MatchError(dynamo.ErrDegenerateConfig))
		})

		It("accepts an alternative integrator", func() {
			integ, err := integrators.Get("euler")
			Expect(err).NotTo(HaveOccurred())
			s, err = New(dynamo.DefaultConfig(), WithIntegrator(integ))
			Expect(err).NotTo(HaveOccurred())
			Expect(s.integrator).To(BeAssignableToTypeOf(&integrators.Euler{}))
		})
	})

	Describe("CreateBody", func() {
		It("rejects invalid input without touching the set", func() {
			_, err := s.CreateBody(0, 0, 0, 0, -1)
			Expect(err).To(MatchError(dynamo.ErrInvalidInput))
			_, err = s.CreateBody(math.NaN(), 0, 0, 0, 1)
			Expect(err).To(MatchError(dynamo.ErrInvalidInput))

			Expect(s.Pending()).To(BeZero())
			s.Tick()
			Expect(s.Len()).To(BeZero())
		})

		It("returns distinct handles", func() {
			a, err := s.CreateBody(0, 0, 0, 0, 1)
			Expect(err).NotTo(HaveOccurred())
			b, err := s.CreateBody(100, 0, 0, 0, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(a).NotTo(Equal(b))
		})

		It("applies at the next tick boundary, even while paused", func() {
			_, _ = s.CreateBody(10, 20, 1, 2, 9)
			Expect(s.Len()).To(BeZero())
			Expect(s.Pending()).To(Equal(1))

			s.Tick()
			Expect(s.Len()).To(Equal(1))
			snap := s.Snapshot()
			Expect(snap[0].X).To(Equal(10.0))
			Expect(snap[0].VX).To(Equal(1.0))
			Expect(snap[0].Radius).To(Equal(3.0))
		})
	})

	Describe("pause semantics", func() {
		It("leaves every body byte-identical while paused", func() {
			_, _ = s.CreateBody(0, 0, 1, 0, 10)
			_, _ = s.CreateBody(200, 0, 0, 1, 10)
			s.SetRunning(true)
			s.Tick()
			s.SetRunning(false)
			s.Tick()

			before := s.Snapshot()
			for i := 0; i < 5; i++ {
				s.Tick()
			}
			Expect(s.Snapshot()).To(Equal(before))
			Expect(s.Steps()).To(Equal(1))
			Expect(s.Frames()).To(Equal(7))
		})

		It("treats SetRunning as idempotent", func() {
			s.SetRunning(true)
			s.SetRunning(true)
			s.Tick()
			Expect(s.Running()).To(BeTrue())
		})

		It("applies run toggles in order", func() {
			s.SetRunning(true)
			s.SetRunning(false)
			_, _ = s.CreateBody(0, 0, 1, 0, 1)
			s.Tick()
			Expect(s.Running()).To(BeFalse())
			Expect(s.Snapshot()[0].X).To(Equal(0.0))
		})
	})

	Describe("Reset", func() {
		It("empties the set and keeps the run state", func() {
			_, _ = s.CreateBody(0, 0, 0, 0, 1)
			_, _ = s.CreateBody(500, 0, 0, 0, 1)
			s.SetRunning(true)
			s.Tick()
			Expect(s.Len()).To(Equal(2))

			s.Reset()
			s.Reset()
			s.Tick()
			Expect(s.Len()).To(BeZero())
			Expect(s.Running()).To(BeTrue())
		})

		It("accepts bodies queued after the reset", func() {
			_, _ = s.CreateBody(0, 0, 0, 0, 1)
			s.Reset()
			_, _ = s.CreateBody(5, 5, 0, 0, 1)
			s.Tick()
			Expect(s.Len()).To(Equal(1))
			Expect(s.Snapshot()[0].X).To(Equal(5.0))
		})
	})

	Describe("a running tick", func() {
		It("merges two overlapping bodies into one", func() {
			_, _ = s.CreateBody(0, 0, 0, 0, 10)
			_, _ = s.CreateBody(3, 0, 0, 0, 10)
			s.SetRunning(true)
			s.Tick()

			snap := s.Snapshot()
			Expect(snap).To(HaveLen(1))
			Expect(snap[0].Mass).To(Equal(20.0))
			Expect(snap[0].Radius).To(BeNumerically("~", math.Sqrt(20), 1e-12))
			Expect(snap[0].VX).To(BeNumerically("~", 0, 1e-12))
			Expect(snap[0].VY).To(BeNumerically("~", 0, 1e-12))
			Expect(s.Merges()).To(Equal(1))
		})

		It("moves attracting bodies toward each other", func() {
			_, _ = s.CreateBody(0, 0, 0, 0, 10)
			_, _ = s.CreateBody(100, 0, 0, 0, 10)
			s.SetRunning(true)
			s.Tick()

			snap := s.Snapshot()
			Expect(snap[0].FX).To(BeNumerically(">", 0))
			Expect(snap[1].FX).To(BeNumerically("<", 0))
			Expect(snap[0].X).To(BeNumerically(">", 0))
			Expect(snap[1].X).To(BeNumerically("<", 100))
		})

		It("conserves total momentum", func() {
			_, _ = s.CreateBody(0, 0, 1, 0, 10)
			_, _ = s.CreateBody(40, 5, -0.5, 0.2, 4)
			_, _ = s.CreateBody(-30, 20, 0, -1, 7)
			_, _ = s.CreateBody(-29, 21, 0.3, 0.3, 2)
			s.SetRunning(true)
			s.Tick()

			px0, py0 := momentum(s.Bodies())
			for i := 0; i < 200; i++ {
				s.Tick()
			}
			px1, py1 := momentum(s.Bodies())
			Expect(px1).To(BeNumerically("~", px0, 1e-9))
			Expect(py1).To(BeNumerically("~", py0, 1e-9))
		})

		It("keeps radius equal to sqrt(mass) throughout", func() {
			for i := 0; i < 8; i++ {
				_, _ = s.CreateBody(float64(i)*4, float64(i%3)*4, 0, 0, 3)
			}
			s.SetRunning(true)
			for i := 0; i < 50; i++ {
				s.Tick()
				for _, b := range s.Snapshot() {
					Expect(b.Radius).To(BeNumerically("~", math.Sqrt(b.Mass), 1e-12))
				}
			}
		})

		It("lets a body inserted while paused join the next running tick", func() {
			_, _ = s.CreateBody(0, 0, 0, 0, 10)
			s.Tick()
			_, _ = s.CreateBody(100, 0, 0, 0, 10)
			s.Tick()
			Expect(s.Snapshot()[0].FX).To(BeZero())

			s.SetRunning(true)
			s.Tick()
			Expect(s.Snapshot()[0].FX).To(BeNumerically(">", 0))
		})
	})

	Describe("observers and metrics", func() {
		It("notifies observers of ticks and merges", func() {
			obs := &recordingObserver{}
			s.AddObserver(obs)
			_, _ = s.CreateBody(0, 0, 0, 0, 10)
			_, _ = s.CreateBody(1, 0, 0, 0, 10)
			s.Tick()
			s.SetRunning(true)
			s.Tick()
			s.Tick()

			Expect(obs.ticks).To(Equal([]int{1, 2}))
			Expect(obs.merges).To(HaveLen(1))
			Expect(obs.merges[0].Mass).To(Equal(20.0))
		})

		It("collects metrics during Run", func() {
			m := &countingMetric{}
			s.AddMetric(m)
			s.SetRunning(true)

			res, err := s.Run(context.Background(), 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Steps).To(Equal(10))
			Expect(res.Metrics).To(HaveKeyWithValue("count", 10.0))
			Expect(res.Time).To(BeNumerically("~", 0.2, 1e-12))
		})

		It("stops Run when the context is canceled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			s.SetRunning(true)

			res, err := s.Run(ctx, 10)
			Expect(err).To(MatchError(context.Canceled))
			Expect(res.Steps).To(BeZero())
		})
	})

	Describe("WithBodies", func() {
		It("seeds the set with fresh handles", func() {
			b1, _ := dynamo.NewBody(0, 0, 0, 0, 1)
			b2, _ := dynamo.NewBody(50, 0, 0, 0, 1)
			s, err := New(dynamo.DefaultConfig(), WithBodies(b1, b2), WithRunning(true))
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Len()).To(Equal(2))
			Expect(s.Running()).To(BeTrue())

			id, _ := s.CreateBody(100, 0, 0, 0, 1)
			Expect(id).To(Equal(dynamo.BodyID(3)))
		})

		It("fails construction on a zero-mass body and adds nothing", func() {
			valid, _ := dynamo.NewBody(0, 0, 0, 0, 10)
			_, err := New(dynamo.DefaultConfig(), WithBodies(valid, dynamo.Body{X: 50}))
			Expect(err).To(MatchError(dynamo.ErrInvalidInput))
		})

		It("fails construction on a non-finite body", func() {
			b, _ := dynamo.NewBody(0, 0, 0, 0, 10)
			b.VX = math.Inf(1)
			_, err := New(dynamo.DefaultConfig(), WithBodies(b))
			Expect(err).To(MatchError(dynamo.ErrInvalidInput))
		})
	})

	Describe("submitted commands", func() {
		It("cannot carry an unchecked body into the set", func() {
			_, err := s.CreateBody(100, 0, 0, 0, 0)
			Expect(err).To(MatchError(dynamo.ErrInvalidInput))
			_, err = s.CreateBody(0, 0, 0, 0, 10)
			Expect(err).NotTo(HaveOccurred())

			s.Submit(SetRunning{Running: true})
			s.Tick()
			s.Tick()

			snap := s.Snapshot()
			Expect(snap).To(HaveLen(1))
			Expect(math.IsNaN(snap[0].X) || math.IsNaN(snap[0].VX)).To(BeFalse())
			Expect(snap[0].Mass).To(Equal(10.0))
		})
	})
})

func momentum(bodies []dynamo.Body) (px, py float64) {
	for i := range bodies {
		x, y := bodies[i].Momentum()
		px += x
		py += y
	}
	return
}
