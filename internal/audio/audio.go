package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/san-kum/gravsim/internal/dynamo"
)

const (
	SampleRate = beep.SampleRate(44100)

	chimeLength = 400 * time.Millisecond
	baseFreq    = 880.0
	minFreq     = 110.0
	maxVoices   = 8
)

// Sonifier plays a short chime for every merge. Heavier merged bodies ring
// lower. It is a dynamo.MergeObserver and never blocks the simulation: if
// the speaker cannot be opened every call is a no-op.
type Sonifier struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	played      int
}

func NewSonifier() *Sonifier {
	return &Sonifier{mixer: &beep.Mixer{}}
}

// Start opens the default output device.
func (s *Sonifier) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

func (s *Sonifier) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	s.initialized = false
}

func (s *Sonifier) OnTick(tick int, t float64, bodies []dynamo.Body) {}

func (s *Sonifier) OnMerge(m dynamo.Merge) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}

	speaker.Lock()
	if s.mixer.Len() < maxVoices {
		s.mixer.Add(beep.Take(SampleRate.N(chimeLength), NewChime(SampleRate, Pitch(m.Mass))))
		s.played++
	}
	speaker.Unlock()
}

// Played reports how many chimes were queued.
func (s *Sonifier) Played() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.played
}

// Pitch maps merged mass to a frequency: one octave down per factor of
// ten in mass, floored at minFreq.
func Pitch(mass float64) float64 {
	if mass <= 1 {
		return baseFreq
	}
	return math.Max(minFreq, baseFreq/math.Pow(2, math.Log10(mass)))
}

// Chime is a detuned triangle pair under a fast-attack exponential decay,
// smoothed by a one-pole low-pass.
type Chime struct {
	sr     beep.SampleRate
	freq   float64
	pos    int
	filter [2]float64
}

func NewChime(sr beep.SampleRate, freq float64) *Chime {
	return &Chime{sr: sr, freq: freq}
}

func (c *Chime) Stream(samples [][2]float64) (n int, ok bool) {
	dt := 1.0 / float64(c.sr)
	for i := range samples {
		t := float64(c.pos) * dt

		envelope := math.Exp(-t*9) * math.Min(1, t*400)
		l := triangle(t*c.freq*0.998) * envelope * 0.3
		r := triangle(t*c.freq*1.002) * envelope * 0.3

		samples[i][0], c.filter[0] = lpf(l, 2500, dt, c.filter[0])
		samples[i][1], c.filter[1] = lpf(r, 2500, dt, c.filter[1])
		c.pos++
	}
	return len(samples), true
}

func (c *Chime) Err() error {
	return nil
}

func triangle(phase float64) float64 {
	p := phase - math.Floor(phase)
	return 4.0*math.Abs(p-0.5) - 1.0
}

// One pole
func lpf(sample, cutoff, dt, state float64) (float64, float64) {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	out := state + alpha*(sample-state)
	return out, out
}
