package analysis

import (
	"math"

	"github.com/san-kum/attractor/internal/attractor"
	"github.com/san-kum/attractor/internal/maps"
)

// shadow follows a perturbed trajectory and keeps it at a fixed distance
// from the primary one, accumulating the log of the stretch at every step.
type shadow struct {
	pos     attractor.Point
	dr      float64
	sum     float64
	updates int
}

func newShadow(pos attractor.Point, dr float64) *shadow {
	return &shadow{pos: pos, dr: dr}
}

// step advances the shadow point with m and measures its separation from
// primary, the already advanced primary point. A zero separation carries no
// direction to renormalise along, so the step leaves the sum untouched.
func (s *shadow) step(m maps.Map, primary attractor.Point) {
	next := m.Next(s.pos)
	d := next.Sub(primary)
	drNew := math.Sqrt(d.X*d.X + d.Y*d.Y)

	if drNew == 0 || s.dr == 0 {
		s.pos = next
		return
	}

	s.sum += math.Log(math.Abs(drNew / s.dr))
	s.updates++

	scale := s.dr / drNew
	s.pos = attractor.Point{
		X: primary.X + d.X*scale,
		Y: primary.Y + d.Y*scale,
	}
}

func (s *shadow) finite() bool {
	return !math.IsNaN(s.sum) && !math.IsInf(s.sum, 0)
}

// LyapunovExponent estimates the largest Lyapunov exponent of m by
// following two nearby orbits of the same map. The first warmup steps only
// move both orbits onto the attractor. A positive value indicates chaos.
//
// Algorithm:
// 1. Offset a copy of p0 by perturbation along x
// 2. Advance both points and measure their separation
// 3. λ ≈ mean of ln(|δ(t+1)| / |δ(0)|), renormalising after each step
func LyapunovExponent(m maps.Map, p0 attractor.Point, steps, warmup int, perturbation float64) float64 {
	if steps <= 0 || perturbation == 0 {
		return 0
	}

	p := p0
	for i := 0; i < warmup; i++ {
		p = m.Next(p)
	}

	s := newShadow(attractor.Point{X: p.X + perturbation, Y: p.Y}, math.Abs(perturbation))
	for i := 0; i < steps; i++ {
		p = m.Next(p)
		s.step(m, p)
		if !s.finite() || !p.IsValid() {
			return math.Inf(1)
		}
	}

	if s.updates == 0 {
		return 0
	}
	return s.sum / float64(s.updates)
}
