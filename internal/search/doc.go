// Package search drives the generate-and-test loop: draw a candidate,
// evaluate it, discard it on rejection and try again until one is accepted.
//
// By default the loop is unbounded and sequential. [WithMaxAttempts] and
// [WithBudget] bound the work spent per attractor and surface
// [attractor.ErrAttemptsExhausted] or [attractor.ErrBudgetExhausted] wrapped
// in an [attractor.SearchError]. [WithWorkers] evaluates candidates in
// parallel, each worker drawing from its own forked sampler.
//
//	s := search.New(sampler.NewSeeded(seed, 500), attractor.DefaultParams())
//	err := s.Run(ctx, 3, reporter)
package search
