package maps

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/attractor/internal/attractor"
)

// Map is a discrete two-dimensional dynamical system.
type Map interface {
	Next(p attractor.Point) attractor.Point
	Name() string
}

// Trig is the search map. Only a0..a3 drive it:
//
//	x' = sin(a0·y) + a2·cos(a0·x)
//	y' = sin(a0·x) + a3·cos(a1·y)
type Trig struct{ A attractor.Coefficients }

func NewTrig(a attractor.Coefficients) *Trig { return &Trig{A: a} }
func (m *Trig) Name() string                 { return "trig" }

func (m *Trig) Next(p attractor.Point) attractor.Point {
	a := &m.A
	return attractor.Point{
		X: math.Sin(a[0]*p.Y) + a[2]*math.Cos(a[0]*p.X),
		Y: math.Sin(a[0]*p.X) + a[3]*math.Cos(a[1]*p.Y),
	}
}

// Quadratic is the full 12-term bivariate quadratic map.
type Quadratic struct{ A attractor.Coefficients }

func NewQuadratic(a attractor.Coefficients) *Quadratic { return &Quadratic{A: a} }
func (m *Quadratic) Name() string                      { return "quadratic" }

func (m *Quadratic) Next(p attractor.Point) attractor.Point {
	a := &m.A
	x, y := p.X, p.Y
	return attractor.Point{
		X: a[0] + a[1]*x + a[2]*x*x + a[3]*y + a[4]*y*y + a[5]*x*y,
		Y: a[6] + a[7]*x + a[8]*x*x + a[9]*y + a[10]*y*y + a[11]*x*y,
	}
}

// Clifford is the classic four parameter Clifford attractor.
type Clifford struct{ A, B, C, D float64 }

func NewClifford(a, b, c, d float64) *Clifford { return &Clifford{A: a, B: b, C: c, D: d} }
func (m *Clifford) Name() string               { return "clifford" }

func (m *Clifford) Next(p attractor.Point) attractor.Point {
	return attractor.Point{
		X: math.Sin(m.A*p.Y) + m.C*math.Cos(m.A*p.X),
		Y: math.Sin(m.B*p.X) + m.D*math.Cos(m.B*p.Y),
	}
}

// Iterate runs m for n steps from p0. The result holds p0 followed by every
// iterate, so its length is n+1.
func Iterate(m Map, p0 attractor.Point, n int) attractor.Trajectory {
	return IterateFunc(m, p0, n, 0, nil)
}

// IterateFunc is Iterate calling fn with the number of completed steps
// every `every` steps and once at the end. fn may be nil.
func IterateFunc(m Map, p0 attractor.Point, n, every int, fn func(done int)) attractor.Trajectory {
	if n < 0 {
		n = 0
	}
	t := make(attractor.Trajectory, 0, n+1)
	t = append(t, p0)
	p := p0
	for i := 1; i <= n; i++ {
		p = m.Next(p)
		t = append(t, p)
		if fn != nil && every > 0 && i%every == 0 && i < n {
			fn(i)
		}
	}
	if fn != nil {
		fn(n)
	}
	return t
}

var constructors = map[string]func(attractor.Coefficients) Map{
	"trig":      func(a attractor.Coefficients) Map { return NewTrig(a) },
	"quadratic": func(a attractor.Coefficients) Map { return NewQuadratic(a) },
	"clifford":  func(a attractor.Coefficients) Map { return NewClifford(a[0], a[1], a[2], a[3]) },
}

// Lookup builds the named map from a coefficient vector. Clifford reads
// its four parameters from a0..a3.
func Lookup(name string, a attractor.Coefficients) (Map, error) {
	fn, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("unknown map: %s (available: %v)", name, Names())
	}
	return fn(a), nil
}

func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
