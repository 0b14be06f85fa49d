package analysis

import (
	"math"
	"testing"

	"github.com/san-kum/attractor/internal/attractor"
	"github.com/san-kum/attractor/internal/maps"
)

func TestLyapunovExponentContraction(t *testing.T) {
	var a attractor.Coefficients
	a[1], a[9] = 0.5, 0.5
	m := maps.NewQuadratic(a)

	lambda := LyapunovExponent(m, attractor.Point{X: 0.3, Y: -0.2}, 1000, 100, 1e-6)
	if math.Abs(lambda-math.Log(0.5)) > 1e-6 {
		t.Errorf("expected %.6f, got %.6f", math.Log(0.5), lambda)
	}
}

func TestLyapunovExponentClifford(t *testing.T) {
	m := maps.NewClifford(-2, -2.4, 1.1, -0.9)
	lambda := LyapunovExponent(m, attractor.Point{X: 0.1, Y: 0.1}, 20000, 1000, 1e-8)
	if lambda <= 0 {
		t.Errorf("expected positive exponent for a chaotic map, got %f", lambda)
	}
}

func TestLyapunovExponentDegenerate(t *testing.T) {
	m := maps.NewClifford(-2, -2.4, 1.1, -0.9)
	if v := LyapunovExponent(m, attractor.Point{}, 0, 10, 1e-6); v != 0 {
		t.Errorf("expected 0 for zero steps, got %f", v)
	}
	if v := LyapunovExponent(m, attractor.Point{}, 100, 10, 0); v != 0 {
		t.Errorf("expected 0 for zero perturbation, got %f", v)
	}
}

func TestShadowStepZeroSeparation(t *testing.T) {
	var a attractor.Coefficients
	m := maps.NewQuadratic(a)
	s := newShadow(attractor.Point{X: 1, Y: 1}, 0.01)

	s.step(m, attractor.Point{})
	if s.updates != 0 || s.sum != 0 {
		t.Errorf("zero separation must not update the sum, got %d updates sum %f", s.updates, s.sum)
	}
	if !s.finite() {
		t.Error("sum must stay finite")
	}
}

func TestShadowStepRenormalizes(t *testing.T) {
	var a attractor.Coefficients
	a[0] = 3 // xl' = 3
	m := maps.NewQuadratic(a)
	s := newShadow(attractor.Point{}, 0.5)

	primary := attractor.Point{X: 1, Y: 0}
	s.step(m, primary)

	if math.Abs(s.sum-math.Log(2/0.5)) > 1e-12 {
		t.Errorf("expected log 4, got %f", s.sum)
	}
	if d := s.pos.Sub(primary).Norm(); math.Abs(d-0.5) > 1e-12 {
		t.Errorf("expected shadow renormalized to 0.5, got %f", d)
	}
	if s.pos.X <= primary.X {
		t.Errorf("renormalization must keep the separation direction, got %v", s.pos)
	}
}
