package sampler

import (
	"math"
	"math/rand"
	"sync"

	"github.com/san-kum/attractor/internal/attractor"
)

const (
	initialSpan     = 0.5
	coefficientSpan = 2.0
)

// Sampler draws random candidates from a single seeded source. It is safe
// for concurrent use.
type Sampler struct {
	mu          sync.Mutex
	rng         *rand.Rand
	sensitivity float64
}

// New wraps src. A non-positive sensitivity falls back to the default.
func New(src rand.Source, sensitivity float64) *Sampler {
	if !(sensitivity > 0) {
		sensitivity = attractor.DefaultSensitivity
	}
	return &Sampler{rng: rand.New(src), sensitivity: sensitivity}
}

func NewSeeded(seed int64, sensitivity float64) *Sampler {
	return New(rand.NewSource(seed), sensitivity)
}

func (s *Sampler) Sensitivity() float64 { return s.sensitivity }

// Sample draws x, y, a0..a11, dx, dy in that order.
func (s *Sampler) Sample() attractor.Candidate {
	s.mu.Lock()
	defer s.mu.Unlock()

	var c attractor.Candidate
	c.Initial = attractor.Point{
		X: s.uniform(-initialSpan, initialSpan),
		Y: s.uniform(-initialSpan, initialSpan),
	}
	for i := range c.Coefficients {
		c.Coefficients[i] = s.uniform(-coefficientSpan, coefficientSpan)
	}

	dx := s.uniform(-1, 1) / s.sensitivity
	dy := s.uniform(-1, 1) / s.sensitivity
	c.Dr = math.Sqrt(dx*dx + dy*dy)
	c.Shadow = attractor.Point{X: c.Initial.X + dx, Y: c.Initial.Y + dy}
	return c
}

// Fork returns an independent sampler seeded from this one's stream, so
// workers can draw without contending on the parent lock.
func (s *Sampler) Fork() *Sampler {
	s.mu.Lock()
	seed := s.rng.Int63()
	s.mu.Unlock()
	return NewSeeded(seed, s.sensitivity)
}

func (s *Sampler) uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*s.rng.Float64()
}
