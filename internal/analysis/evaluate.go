package analysis

import (
	"context"
	"math"

	"github.com/san-kum/attractor/internal/attractor"
	"github.com/san-kum/attractor/internal/maps"
)

// pollMask sets how often EvaluateContext checks for cancellation.
const pollMask = 1<<12 - 1

// StepObserver is notified after every executed step with the step index,
// the new primary point and the Lyapunov sum so far.
type StepObserver interface {
	OnStep(i int, p attractor.Point, lyapunov float64)
}

// Evaluator iterates candidates and classifies their orbits. An Evaluator
// holds no per-candidate state and may be shared between goroutines as long
// as no observers are added concurrently.
type Evaluator struct {
	params    attractor.Params
	observers []StepObserver
}

func NewEvaluator(p attractor.Params) *Evaluator {
	return &Evaluator{params: p}
}

func (e *Evaluator) Params() attractor.Params { return e.params }

func (e *Evaluator) AddObserver(o StepObserver) {
	e.observers = append(e.observers, o)
}

// Evaluate runs c to a verdict.
func (e *Evaluator) Evaluate(c attractor.Candidate) attractor.Outcome {
	out, _ := e.EvaluateContext(context.Background(), c)
	return out
}

// EvaluateContext is Evaluate with cancellation. On cancellation the
// partial run is dropped and ctx.Err() is returned.
func (e *Evaluator) EvaluateContext(ctx context.Context, c attractor.Candidate) (attractor.Outcome, error) {
	p := e.params
	primary := maps.NewTrig(c.Coefficients)
	quad := maps.NewQuadratic(c.Coefficients)
	sh := newShadow(c.Shadow, c.Dr)

	traj := make(attractor.Trajectory, 0, p.MaxIterations+1)
	traj = append(traj, c.Initial)
	cur := c.Initial

	reject := func(v attractor.Verdict, steps int) attractor.Outcome {
		return attractor.Outcome{Verdict: v, Iterations: steps, Lyapunov: sh.sum, Updates: sh.updates}
	}

	for i := 0; i < p.MaxIterations; i++ {
		if i&pollMask == 0 {
			select {
			case <-ctx.Done():
				return attractor.Outcome{}, ctx.Err()
			default:
			}
		}

		next := primary.Next(cur)

		if e.diverged(next) {
			return reject(attractor.Diverged, i), nil
		}

		if math.Abs(cur.X-next.X) < p.ConvergenceLimit && math.Abs(cur.Y-next.Y) < p.ConvergenceLimit {
			return reject(attractor.Converged, i), nil
		}

		if i > p.Warmup {
			sh.step(quad, next)
			if !sh.finite() {
				return reject(attractor.InsufficientChaos, i), nil
			}
		}

		cur = next
		traj = append(traj, cur)

		for _, o := range e.observers {
			o.OnStep(i, cur, sh.sum)
		}
	}

	if !(sh.sum > p.LyapunovThreshold) {
		return reject(attractor.InsufficientChaos, p.MaxIterations), nil
	}

	return attractor.Outcome{
		Verdict:      attractor.Accepted,
		Iterations:   p.MaxIterations,
		Lyapunov:     sh.sum,
		Updates:      sh.updates,
		Trajectory:   traj,
		Coefficients: c.Coefficients,
		Initial:      c.Initial,
	}, nil
}

func (e *Evaluator) diverged(p attractor.Point) bool {
	lim := e.params.DivergenceLimit
	return math.Abs(p.X) > lim || math.Abs(p.Y) > lim || math.IsNaN(p.X) || math.IsNaN(p.Y)
}
