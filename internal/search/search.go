package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/attractor/internal/analysis"
	"github.com/san-kum/attractor/internal/attractor"
	"github.com/san-kum/attractor/internal/ctxlog"
	"github.com/san-kum/attractor/internal/sampler"
)

// errFound stops sibling workers once one of them has an accepted outcome.
var errFound = errors.New("search: attractor found")

// Reporter receives every accepted attractor. A returned error aborts Run.
type Reporter interface {
	Report(ctx context.Context, index int, out attractor.Outcome, stats Stats) error
}

type ReporterFunc func(ctx context.Context, index int, out attractor.Outcome, stats Stats) error

func (f ReporterFunc) Report(ctx context.Context, index int, out attractor.Outcome, stats Stats) error {
	return f(ctx, index, out, stats)
}

// Stats counts the attempts spent finding one attractor.
type Stats struct {
	Attempts          int
	Diverged          int
	Converged         int
	InsufficientChaos int
	Elapsed           time.Duration
}

func (s *Stats) record(v attractor.Verdict) {
	s.Attempts++
	switch v {
	case attractor.Diverged:
		s.Diverged++
	case attractor.Converged:
		s.Converged++
	case attractor.InsufficientChaos:
		s.InsufficientChaos++
	}
}

type Option func(*Searcher)

// WithWorkers evaluates n candidates concurrently. Values below 2 keep the
// search sequential and reproducible for a given seed.
func WithWorkers(n int) Option { return func(s *Searcher) { s.workers = n } }

// WithMaxAttempts caps the attempts per attractor; 0 means unbounded.
func WithMaxAttempts(n int) Option { return func(s *Searcher) { s.maxAttempts = n } }

// WithBudget caps the wall-clock time per attractor; 0 means unbounded.
func WithBudget(d time.Duration) Option { return func(s *Searcher) { s.budget = d } }

func WithLogger(l *slog.Logger) Option { return func(s *Searcher) { s.logger = l } }

// WithProgress registers a callback invoked after every evaluated candidate.
// It may be called from several goroutines when workers are enabled.
func WithProgress(fn func(Stats, attractor.Outcome)) Option {
	return func(s *Searcher) { s.progress = fn }
}

// Searcher repeats sample and evaluate until a candidate is accepted.
type Searcher struct {
	sampler     *sampler.Sampler
	eval        *analysis.Evaluator
	workers     int
	maxAttempts int
	budget      time.Duration
	logger      *slog.Logger
	progress    func(Stats, attractor.Outcome)
}

func New(s *sampler.Sampler, p attractor.Params, opts ...Option) *Searcher {
	sr := &Searcher{
		sampler: s,
		eval:    analysis.NewEvaluator(p),
		workers: 1,
	}
	for _, opt := range opts {
		opt(sr)
	}
	return sr
}

// Run searches for num attractors in turn and hands each one to r.
func (s *Searcher) Run(ctx context.Context, num int, r Reporter) error {
	if err := s.eval.Params().Validate(); err != nil {
		return err
	}

	logger := s.log(ctx)
	runID := uuid.NewString()
	logger = logger.With("run_id", runID)

	for i := 0; i < num; i++ {
		out, stats, err := s.find(ctx, logger.With("index", i+1))
		if err != nil {
			return &attractor.SearchError{Index: i, Attempts: stats.Attempts, Wrapped: err}
		}

		logger.Info("attractor accepted",
			"index", i+1,
			"attempts", stats.Attempts,
			"diverged", stats.Diverged,
			"converged", stats.Converged,
			"insufficient_chaos", stats.InsufficientChaos,
			"lyapunov", out.Lyapunov,
			"exponent", out.Exponent(),
			"elapsed", stats.Elapsed,
		)

		if r == nil {
			continue
		}
		if err := r.Report(ctx, i, out, stats); err != nil {
			return fmt.Errorf("report attractor %d: %w", i+1, err)
		}
	}
	return nil
}

// Find searches for a single accepted attractor.
func (s *Searcher) Find(ctx context.Context) (attractor.Outcome, Stats, error) {
	if err := s.eval.Params().Validate(); err != nil {
		return attractor.Outcome{}, Stats{}, err
	}
	return s.find(ctx, s.log(ctx))
}

func (s *Searcher) find(parent context.Context, logger *slog.Logger) (attractor.Outcome, Stats, error) {
	ctx := parent
	if s.budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(parent, s.budget)
		defer cancel()
	}

	start := time.Now()
	var (
		out   attractor.Outcome
		stats Stats
		err   error
	)
	if s.workers > 1 {
		out, stats, err = s.findParallel(ctx, logger)
	} else {
		out, stats, err = s.findSequential(ctx, logger)
	}
	stats.Elapsed = time.Since(start)

	if err != nil && errors.Is(err, context.DeadlineExceeded) && s.budget > 0 && parent.Err() == nil {
		err = attractor.ErrBudgetExhausted
	}
	return out, stats, err
}

func (s *Searcher) findSequential(ctx context.Context, logger *slog.Logger) (attractor.Outcome, Stats, error) {
	var stats Stats
	for {
		if s.maxAttempts > 0 && stats.Attempts >= s.maxAttempts {
			return attractor.Outcome{}, stats, attractor.ErrAttemptsExhausted
		}

		out, err := s.eval.EvaluateContext(ctx, s.sampler.Sample())
		if err != nil {
			return attractor.Outcome{}, stats, err
		}

		stats.record(out.Verdict)
		s.observe(logger, stats, out)
		if out.Accepted() {
			return out, stats, nil
		}
	}
}

// findParallel deals attempt indices round-robin: worker w evaluates
// attempts w, w+workers, w+2*workers and so on below the cap, each drawn
// from its own forked sampler. Which candidates are evaluated is therefore
// fixed by the seed; only the winner among several accepted ones depends on
// scheduling.
func (s *Searcher) findParallel(ctx context.Context, logger *slog.Logger) (attractor.Outcome, Stats, error) {
	var (
		mu    sync.Mutex
		stats Stats
	)
	found := make(chan attractor.Outcome, 1)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < s.workers; w++ {
		src := s.sampler.Fork()
		g.Go(func() error {
			for attempt := w; s.maxAttempts == 0 || attempt < s.maxAttempts; attempt += s.workers {
				out, err := s.eval.EvaluateContext(gctx, src.Sample())
				if err != nil {
					return err
				}

				mu.Lock()
				stats.record(out.Verdict)
				snapshot := stats
				mu.Unlock()

				s.observe(logger, snapshot, out)
				if out.Accepted() {
					select {
					case found <- out:
					default:
					}
					return errFound
				}
			}
			return nil
		})
	}

	err := g.Wait()

	mu.Lock()
	final := stats
	mu.Unlock()

	select {
	case out := <-found:
		return out, final, nil
	default:
	}
	if err == nil {
		err = attractor.ErrAttemptsExhausted
	}
	return attractor.Outcome{}, final, err
}

func (s *Searcher) observe(logger *slog.Logger, stats Stats, out attractor.Outcome) {
	if !out.Accepted() {
		logger.Debug("candidate rejected",
			"attempt", stats.Attempts,
			"verdict", out.Verdict.String(),
			"iterations", out.Iterations,
		)
	}
	if s.progress != nil {
		s.progress(stats, out)
	}
}

func (s *Searcher) log(ctx context.Context) *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return ctxlog.FromContext(ctx)
}
