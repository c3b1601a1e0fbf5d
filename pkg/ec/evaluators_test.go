package ec

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aarongarrett/inspyred/pkg/errors"
)

func sumEvaluator(ctx context.Context, candidate Candidate, run *RunContext) (Fitness, error) {
	total := 0.0
	for _, g := range candidate.([]float64) {
		total += g
	}
	return Scalar(total), nil
}

func TestCandidateEvaluator(t *testing.T) {
	eval := CandidateEvaluator(sumEvaluator)
	fits, err := eval.Evaluate(context.Background(), []Candidate{
		[]float64{1, 2}, []float64{3, 4},
	}, testRun(nil))
	require.NoError(t, err)
	assert.Equal(t, []Fitness{Scalar(3), Scalar(7)}, fits)
}

func TestParallelEvaluator(t *testing.T) {
	t.Run("matches the serial evaluator and preserves order", func(t *testing.T) {
		candidates := make([]Candidate, 50)
		for i := range candidates {
			candidates[i] = []float64{float64(i), float64(i)}
		}
		serial, err := CandidateEvaluator(sumEvaluator).Evaluate(context.Background(), candidates, testRun(nil))
		require.NoError(t, err)
		parallel, err := ParallelEvaluator(sumEvaluator, 8).Evaluate(context.Background(), candidates, testRun(nil))
		require.NoError(t, err)
		assert.Equal(t, serial, parallel)
	})

	t.Run("propagates evaluation errors", func(t *testing.T) {
		eval := ParallelEvaluator(func(ctx context.Context, candidate Candidate, run *RunContext) (Fitness, error) {
			return nil, errors.New(errors.EvaluationFailed, "boom")
		}, 4)
		_, err := eval.Evaluate(context.Background(), []Candidate{[]float64{1}}, testRun(nil))
		assert.Error(t, err)
	})
}

func TestStripStrategies(t *testing.T) {
	eval := StripStrategies(CandidateEvaluator(sumEvaluator))
	fits, err := eval.Evaluate(context.Background(), []Candidate{
		StrategyCandidate{Values: []float64{1, 2}, Strategies: []float64{0.5, 0.5}},
		[]float64{10},
	}, testRun(nil))
	require.NoError(t, err)
	assert.Equal(t, []Fitness{Scalar(3), Scalar(10)}, fits)
}
