package experiment

import (
	"sync"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/physics"
)

// Frame is one sampled instant of a run.
type Frame struct {
	Tick   int                `json:"tick"`
	Time   float64            `json:"time"`
	Energy float64            `json:"energy"`
	Bodies []dynamo.BodyState `json:"bodies"`
}

// Recorder samples the body set every N steps and logs merges. It is safe
// to read while the simulator ticks on another goroutine.
type Recorder struct {
	mu     sync.Mutex
	field  *physics.Gravity
	every  int
	frames []Frame
	merges []dynamo.Merge
}

func NewRecorder(cfg dynamo.Config, every int) *Recorder {
	if every < 1 {
		every = 1
	}
	return &Recorder{field: physics.NewGravity(cfg), every: every}
}

func (r *Recorder) OnTick(tick int, t float64, bodies []dynamo.Body) {
	if tick%r.every != 0 {
		return
	}
	r.Capture(tick, t, bodies)
}

func (r *Recorder) OnMerge(m dynamo.Merge) {
	r.mu.Lock()
	r.merges = append(r.merges, m)
	r.mu.Unlock()
}

// Capture records a frame unconditionally.
func (r *Recorder) Capture(tick int, t float64, bodies []dynamo.Body) {
	states := make([]dynamo.BodyState, len(bodies))
	for i := range bodies {
		states[i] = bodies[i].State()
	}
	f := Frame{Tick: tick, Time: t, Energy: r.field.Energy(bodies), Bodies: states}

	r.mu.Lock()
	r.frames = append(r.frames, f)
	r.mu.Unlock()
}

func (r *Recorder) Frames() []Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Frame, len(r.frames))
	copy(out, r.frames)
	return out
}

func (r *Recorder) Merges() []dynamo.Merge {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]dynamo.Merge, len(r.merges))
	copy(out, r.merges)
	return out
}

// Series extracts the body count and total energy per frame.
func (r *Recorder) Series() (counts, energy []float64) {
	frames := r.Frames()
	counts = make([]float64, len(frames))
	energy = make([]float64, len(frames))
	for i, f := range frames {
		counts[i] = float64(len(f.Bodies))
		energy[i] = f.Energy
	}
	return counts, energy
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	r.frames = nil
	r.merges = nil
	r.mu.Unlock()
}
