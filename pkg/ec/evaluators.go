package ec

import (
	"context"

	"github.com/sourcegraph/conc/pool"

	"github.com/aarongarrett/inspyred/pkg/errors"
)

// CandidateEvaluatorFunc scores a single candidate. A nil fitness with
// a nil error excludes the candidate from the population.
type CandidateEvaluatorFunc func(ctx context.Context, candidate Candidate, run *RunContext) (Fitness, error)

// CandidateEvaluator lifts a per-candidate scoring function into an
// Evaluator that processes the batch serially.
func CandidateEvaluator(eval CandidateEvaluatorFunc) Evaluator {
	return EvaluatorFunc(func(ctx context.Context, candidates []Candidate, run *RunContext) ([]Fitness, error) {
		fitnesses := make([]Fitness, len(candidates))
		for i, c := range candidates {
			if err := errors.CheckContext(ctx, "evaluation"); err != nil {
				return nil, err
			}
			f, err := eval(ctx, c, run)
			if err != nil {
				return nil, err
			}
			fitnesses[i] = f
		}
		return fitnesses, nil
	})
}

// ParallelEvaluator lifts a per-candidate scoring function into an
// Evaluator that fans the batch out over a bounded goroutine pool.
// Results keep their input order, so it is a drop-in replacement for
// CandidateEvaluator when the scoring function is safe to call
// concurrently.
func ParallelEvaluator(eval CandidateEvaluatorFunc, maxConcurrency int) Evaluator {
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}
	return EvaluatorFunc(func(ctx context.Context, candidates []Candidate, run *RunContext) ([]Fitness, error) {
		fitnesses := make([]Fitness, len(candidates))
		p := pool.New().WithMaxGoroutines(maxConcurrency).WithErrors().WithContext(ctx)
		for i, c := range candidates {
			i, c := i, c
			p.Go(func(ctx context.Context) error {
				f, err := eval(ctx, c, run)
				if err != nil {
					return err
				}
				fitnesses[i] = f
				return nil
			})
		}
		if err := p.Wait(); err != nil {
			return nil, err
		}
		return fitnesses, nil
	})
}

// StripStrategies adapts an evaluator over plain value vectors to one
// over StrategyCandidates by unwrapping the values half, letting
// evolution strategies reuse ordinary objective functions. Non-strategy
// candidates pass through untouched.
func StripStrategies(eval Evaluator) Evaluator {
	return EvaluatorFunc(func(ctx context.Context, candidates []Candidate, run *RunContext) ([]Fitness, error) {
		values := make([]Candidate, len(candidates))
		for i, c := range candidates {
			if sc, ok := c.(StrategyCandidate); ok {
				values[i] = sc.Values
			} else {
				values[i] = c
			}
		}
		return eval.Evaluate(ctx, values, run)
	})
}
