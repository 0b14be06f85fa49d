// Package analysis classifies candidate orbits and estimates their chaos.
//
//   - [Evaluator]: iterates a candidate and returns a terminal verdict
//   - [LyapunovExponent]: largest Lyapunov exponent of a known map
//
// # Chaos Detection
//
// The evaluator drives a shadow point with the quadratic map and keeps it
// renormalised to its initial distance from the primary orbit. After the
// warm-up steps every separation adds ln(|δ'|/|δ|) to a running sum; a sum
// above the threshold marks the orbit as chaotic:
//
//	ev := analysis.NewEvaluator(attractor.DefaultParams())
//	out := ev.Evaluate(sampler.Sample())
//	if out.Accepted() {
//	    // out.Trajectory holds the orbit
//	}
package analysis
