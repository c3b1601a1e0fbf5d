package ec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScalarLess(t *testing.T) {
	t.Run("orders by value", func(t *testing.T) {
		assert.True(t, Scalar(1).Less(Scalar(2)))
		assert.False(t, Scalar(2).Less(Scalar(1)))
		assert.False(t, Scalar(2).Less(Scalar(2)))
	})

	t.Run("panics on mixed fitness types", func(t *testing.T) {
		assert.Panics(t, func() {
			Scalar(1).Less(fakeFitness{})
		})
	})
}

func TestScalarEqual(t *testing.T) {
	assert.True(t, Scalar(3.5).Equal(Scalar(3.5)))
	assert.False(t, Scalar(3.5).Equal(Scalar(3.6)))
	assert.False(t, Scalar(3.5).Equal(fakeFitness{}))
}

type fakeFitness struct{}

func (fakeFitness) Less(other Fitness) bool  { return false }
func (fakeFitness) Equal(other Fitness) bool { return false }
