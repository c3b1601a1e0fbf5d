package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAndCode(t *testing.T) {
	err := New(UnsetFitness, "fitness cannot be nil when comparing individuals")
	var e *Error
	require.True(t, stderrors.As(err, &e))
	assert.Equal(t, UnsetFitness, e.Code())
	assert.Equal(t, "fitness cannot be nil when comparing individuals", err.Error())
}

func TestWrapPreservesOriginal(t *testing.T) {
	inner := fmt.Errorf("candidate is not a []float64")
	err := Wrap(inner, VariationFailed, "variation failed")

	assert.Equal(t, "variation failed: candidate is not a []float64", err.Error())
	assert.Equal(t, inner, stderrors.Unwrap(err))
	assert.Nil(t, Wrap(nil, VariationFailed, "no-op"))
}

func TestWithFields(t *testing.T) {
	err := New(EvaluationFailed, "evaluator returned short batch")
	err = WithFields(err, Fields{"want": 10, "got": 7})

	var e *Error
	require.True(t, stderrors.As(err, &e))
	assert.Equal(t, EvaluationFailed, e.Code())
	assert.Equal(t, 10, e.Fields()["want"])
	assert.Equal(t, 7, e.Fields()["got"])
}

func TestIsMatchesByCode(t *testing.T) {
	err := Wrap(fmt.Errorf("boom"), SelectionFailed, "selection failed")
	assert.True(t, stderrors.Is(err, New(SelectionFailed, "anything")))
	assert.False(t, stderrors.Is(err, New(ReplacementFailed, "anything")))
}

func TestCheckContext(t *testing.T) {
	require.NoError(t, CheckContext(context.Background(), "evolve"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := CheckContext(ctx, "evolve")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, New(Canceled, "")))
}
