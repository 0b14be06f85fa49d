package attractor

import (
	"fmt"
	"math"
)

// NumCoefficients is the length of every coefficient vector.
const NumCoefficients = 12

const (
	DefaultMaxIterations     = 50000
	DefaultDivergenceLimit   = 1e10
	DefaultConvergenceLimit  = 1e-10
	DefaultLyapunovThreshold = 5000.0
	DefaultWarmup            = 1000
	DefaultSensitivity       = 500.0
)

type Point struct {
	X, Y float64
}

func (p Point) Sub(o Point) Point { return Point{p.X - o.X, p.Y - o.Y} }

func (p Point) Norm() float64 { return math.Sqrt(p.X*p.X + p.Y*p.Y) }

func (p Point) IsValid() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Coefficients holds the sampled map parameters a0..a11.
type Coefficients [NumCoefficients]float64

func (a Coefficients) String() string {
	return fmt.Sprintf("%f, %f, %f, %f, %f, %f, %f, %f, %f, %f, %f, %f",
		a[0], a[1], a[2], a[3], a[4], a[5], a[6], a[7], a[8], a[9], a[10], a[11])
}

type Trajectory []Point

// Bounds returns the component-wise minimum and maximum of the trajectory.
func (t Trajectory) Bounds() (min, max Point) {
	if len(t) == 0 {
		return Point{}, Point{}
	}
	min, max = t[0], t[0]
	for _, p := range t[1:] {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max
}

// Xs and Ys split the trajectory into coordinate series.
func (t Trajectory) Xs() []float64 {
	xs := make([]float64, len(t))
	for i, p := range t {
		xs[i] = p.X
	}
	return xs
}

func (t Trajectory) Ys() []float64 {
	ys := make([]float64, len(t))
	for i, p := range t {
		ys[i] = p.Y
	}
	return ys
}

// Candidate is one sampled starting configuration.
type Candidate struct {
	Initial      Point
	Shadow       Point
	Coefficients Coefficients
	Dr           float64
}

type Verdict int

const (
	Diverged Verdict = iota + 1
	Converged
	InsufficientChaos
	Accepted
)

func (v Verdict) String() string {
	switch v {
	case Diverged:
		return "diverged"
	case Converged:
		return "converged"
	case InsufficientChaos:
		return "insufficient_chaos"
	case Accepted:
		return "accepted"
	default:
		return fmt.Sprintf("verdict(%d)", int(v))
	}
}

// Outcome is the terminal result of evaluating one candidate. Trajectory,
// Coefficients and Initial are only populated when Verdict is Accepted.
type Outcome struct {
	Verdict      Verdict
	Iterations   int
	Lyapunov     float64
	Updates      int
	Trajectory   Trajectory
	Coefficients Coefficients
	Initial      Point
}

func (o Outcome) Accepted() bool { return o.Verdict == Accepted }

// Exponent is the mean log stretch per accumulated step.
func (o Outcome) Exponent() float64 {
	if o.Updates == 0 {
		return 0
	}
	return o.Lyapunov / float64(o.Updates)
}

type Params struct {
	MaxIterations     int
	DivergenceLimit   float64
	ConvergenceLimit  float64
	LyapunovThreshold float64
	Warmup            int
}

func DefaultParams() Params {
	return Params{
		MaxIterations:     DefaultMaxIterations,
		DivergenceLimit:   DefaultDivergenceLimit,
		ConvergenceLimit:  DefaultConvergenceLimit,
		LyapunovThreshold: DefaultLyapunovThreshold,
		Warmup:            DefaultWarmup,
	}
}

func (p Params) Validate() error {
	switch {
	case p.MaxIterations <= 0:
		return fmt.Errorf("%w: max iterations must be positive, got %d", ErrInvalidParams, p.MaxIterations)
	case p.Warmup < 0:
		return fmt.Errorf("%w: warmup must not be negative, got %d", ErrInvalidParams, p.Warmup)
	case !(p.DivergenceLimit > 0):
		return fmt.Errorf("%w: divergence limit must be positive, got %g", ErrInvalidParams, p.DivergenceLimit)
	case p.ConvergenceLimit < 0 || math.IsNaN(p.ConvergenceLimit):
		return fmt.Errorf("%w: convergence limit must not be negative, got %g", ErrInvalidParams, p.ConvergenceLimit)
	case math.IsNaN(p.LyapunovThreshold):
		return fmt.Errorf("%w: lyapunov threshold is NaN", ErrInvalidParams)
	case p.LyapunovThreshold >= 0 && p.MaxIterations < p.Warmup+2:
		// The sum first moves at step Warmup+1; without it nothing is accepted.
		return fmt.Errorf("%w: max iterations %d leave no step after warmup %d", ErrInvalidParams, p.MaxIterations, p.Warmup)
	}
	return nil
}
