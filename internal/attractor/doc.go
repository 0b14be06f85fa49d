// Package attractor defines the core value types of the strange attractor
// search.
//
//   - [Candidate]: sampled initial point, shadow point and coefficients
//   - [Trajectory]: ordered points visited by the primary map
//   - [Outcome]: terminal classification of one evaluated candidate
//   - [Params]: evaluation limits shared by the evaluator and the searcher
//
// # Verdicts
//
// Every evaluation ends in exactly one [Verdict]. Diverged, Converged and
// InsufficientChaos are ordinary results, not errors:
//
//	out := ev.Evaluate(candidate)
//	if out.Accepted() {
//	    img, _ := render.Rasterize(out.Trajectory, 800, 800, render.DefaultIntensity)
//	}
package attractor
