package analysis_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/attractor/internal/analysis"
	"github.com/san-kum/attractor/internal/attractor"
	"github.com/san-kum/attractor/internal/sampler"
)

type recorder struct {
	steps []int
	sums  []float64
}

func (r *recorder) OnStep(i int, _ attractor.Point, lyapunov float64) {
	r.steps = append(r.steps, i)
	r.sums = append(r.sums, lyapunov)
}

// chaotic pins x to a2 and drives y through y' = 2cos(2y), whose fixed
// points are all repelling. The shadow's yl' = 2 keeps it far from the orbit.
func chaotic() attractor.Candidate {
	var a attractor.Coefficients
	a[1], a[2], a[3], a[6] = 2, 1, 2, 2
	return candidate(a, attractor.Point{X: 0.1, Y: 0.1}, 0.001)
}

func candidate(a attractor.Coefficients, p attractor.Point, offset float64) attractor.Candidate {
	return attractor.Candidate{
		Initial:      p,
		Shadow:       attractor.Point{X: p.X + offset, Y: p.Y + offset},
		Coefficients: a,
		Dr:           math.Sqrt2 * math.Abs(offset),
	}
}

var _ = Describe("Evaluator", func() {
	var params attractor.Params

	BeforeEach(func() {
		params = attractor.DefaultParams()
	})

	Context("with all coefficients zero from the origin", func() {
		It("converges on the first step", func() {
			out := analysis.NewEvaluator(params).Evaluate(candidate(attractor.Coefficients{}, attractor.Point{}, 0.001))

			Expect(out.Verdict).To(Equal(attractor.Converged))
			Expect(out.Iterations).To(Equal(0))
			Expect(out.Trajectory).To(BeNil())
		})

		It("requires deltas strictly below the limit", func() {
			params.ConvergenceLimit = 0
			params.MaxIterations = 20

			out := analysis.NewEvaluator(params).Evaluate(candidate(attractor.Coefficients{}, attractor.Point{}, 0.001))

			Expect(out.Verdict).To(Equal(attractor.InsufficientChaos))
			Expect(out.Iterations).To(Equal(20))
		})
	})

	Context("when only one coordinate settles", func() {
		It("does not report convergence", func() {
			var a attractor.Coefficients
			a[1], a[3] = 2, 2
			params.MaxIterations = 10

			out := analysis.NewEvaluator(params).Evaluate(candidate(a, attractor.Point{X: 0, Y: 0.1}, 0.001))

			Expect(out.Verdict).To(Equal(attractor.InsufficientChaos))
			Expect(out.Iterations).To(Equal(10))
		})
	})

	Context("with an amplifying coefficient", func() {
		It("diverges on the first step and keeps nothing", func() {
			var a attractor.Coefficients
			a[2] = 1e11

			out := analysis.NewEvaluator(params).Evaluate(candidate(a, attractor.Point{X: 0.2, Y: 0.2}, 0.001))

			Expect(out.Verdict).To(Equal(attractor.Diverged))
			Expect(out.Iterations).To(Equal(0))
			Expect(out.Trajectory).To(BeNil())
		})

		It("halts within the step that crosses the limit", func() {
			var a attractor.Coefficients
			a[1], a[2], a[3] = 2, 1, 2
			params.DivergenceLimit = 1.9

			rec := &recorder{}
			ev := analysis.NewEvaluator(params)
			ev.AddObserver(rec)
			out := ev.Evaluate(candidate(a, attractor.Point{X: 0.1, Y: 0.7}, 0.001))

			Expect(out.Verdict).To(Equal(attractor.Diverged))
			Expect(out.Iterations).To(Equal(2))
			Expect(rec.steps).To(Equal([]int{0, 1}))
		})
	})

	Context("with a chaotic orbit", func() {
		var (
			out attractor.Outcome
			rec *recorder
		)

		BeforeEach(func() {
			params.MaxIterations = 50000
			params.Warmup = 1000
			rec = &recorder{}
			ev := analysis.NewEvaluator(params)
			ev.AddObserver(rec)
			out = ev.Evaluate(chaotic())
		})

		It("is accepted with the full trajectory", func() {
			Expect(out.Verdict).To(Equal(attractor.Accepted))
			Expect(out.Trajectory).To(HaveLen(params.MaxIterations + 1))
			Expect(len(out.Trajectory)).To(BeNumerically(">", params.Warmup))
			Expect(out.Trajectory[0]).To(Equal(chaotic().Initial))
			Expect(out.Initial).To(Equal(chaotic().Initial))
			Expect(out.Coefficients).To(Equal(chaotic().Coefficients))
			Expect(out.Lyapunov).To(BeNumerically(">", params.LyapunovThreshold))
		})

		It("only accumulates after the warm-up", func() {
			for k, i := range rec.steps {
				if i <= params.Warmup {
					Expect(rec.sums[k]).To(BeZero(), "step %d", i)
				}
			}
			Expect(rec.sums[params.Warmup+1]).NotTo(BeZero())
			Expect(out.Updates).To(Equal(params.MaxIterations - params.Warmup - 1))
		})

		It("reports a positive mean exponent", func() {
			Expect(out.Exponent()).To(BeNumerically(">", 0))
		})

		It("is rejected when the threshold cannot be met", func() {
			params.LyapunovThreshold = math.Inf(1)
			out := analysis.NewEvaluator(params).Evaluate(chaotic())
			Expect(out.Verdict).To(Equal(attractor.InsufficientChaos))
			Expect(out.Trajectory).To(BeNil())
		})
	})

	Context("with degenerate shadow separations", func() {
		It("skips steps with zero separation", func() {
			c := chaotic()
			c.Shadow = c.Initial
			c.Dr = 0
			params.MaxIterations = 3000

			out := analysis.NewEvaluator(params).Evaluate(c)

			Expect(out.Verdict).To(Equal(attractor.InsufficientChaos))
			Expect(out.Updates).To(BeZero())
			Expect(math.IsNaN(out.Lyapunov) || math.IsInf(out.Lyapunov, 0)).To(BeFalse())
		})

		It("rejects a non-finite accumulator", func() {
			c := chaotic()
			c.Coefficients[6] = math.MaxFloat64
			c.Coefficients[9] = math.MaxFloat64
			params.Warmup = 10
			params.LyapunovThreshold = 0

			out := analysis.NewEvaluator(params).Evaluate(c)

			Expect(out.Verdict).To(Equal(attractor.InsufficientChaos))
			Expect(out.Iterations).To(Equal(params.Warmup + 1))
		})
	})

	It("is deterministic for a fixed seed", func() {
		params.MaxIterations = 5000
		ev := analysis.NewEvaluator(params)

		a, b := sampler.NewSeeded(11, 500), sampler.NewSeeded(11, 500)
		for i := 0; i < 20; i++ {
			Expect(ev.Evaluate(a.Sample())).To(Equal(ev.Evaluate(b.Sample())))
		}
	})

	It("never returns an accepted trajectory longer than the iteration limit", func() {
		params.MaxIterations = 3000
		ev := analysis.NewEvaluator(params)
		s := sampler.NewSeeded(5, 500)

		for i := 0; i < 200; i++ {
			out := ev.Evaluate(s.Sample())
			Expect(out.Iterations).To(BeNumerically("<=", params.MaxIterations))
			if out.Accepted() {
				Expect(len(out.Trajectory)).To(BeNumerically("<=", params.MaxIterations+1))
				Expect(len(out.Trajectory)).To(BeNumerically(">", params.Warmup))
			} else {
				Expect(out.Trajectory).To(BeNil())
			}
		}
	})

	It("stops when the context is canceled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := analysis.NewEvaluator(params).EvaluateContext(ctx, chaotic())
		Expect(err).To(MatchError(context.Canceled))
	})
})
