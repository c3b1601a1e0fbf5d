package ec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampBounder(t *testing.T) {
	t.Run("scalar bounds apply to every gene", func(t *testing.T) {
		b := NewBounder(-1, 1)
		out := b.Bound([]float64{-5, 0.5, 5}).([]float64)
		assert.Equal(t, []float64{-1, 0.5, 1}, out)
	})

	t.Run("per gene bounds", func(t *testing.T) {
		b := NewBounderSlices([]float64{0, 10}, []float64{1, 20})
		out := b.Bound([]float64{-5, 15}).([]float64)
		assert.Equal(t, []float64{0, 15}, out)
	})

	t.Run("non numeric candidates pass through", func(t *testing.T) {
		b := NewBounder(-1, 1)
		assert.Equal(t, "opaque", b.Bound("opaque"))
	})
}

func TestDiscreteBounder(t *testing.T) {
	b := NewDiscreteBounder([]float64{0, 1, 2})

	t.Run("snaps to nearest value", func(t *testing.T) {
		out := b.Bound([]float64{-3, 0.9, 1.6}).([]float64)
		assert.Equal(t, []float64{0, 1, 2}, out)
	})

	t.Run("earliest value wins ties", func(t *testing.T) {
		out := b.Bound([]float64{0.5}).([]float64)
		assert.Equal(t, []float64{0}, out)
	})
}
