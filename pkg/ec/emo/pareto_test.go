package emo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParetoLess(t *testing.T) {
	t.Run("dominated in all objectives", func(t *testing.T) {
		a := NewPareto([]float64{1, 1})
		b := NewPareto([]float64{2, 2})
		assert.True(t, a.Less(b))
		assert.False(t, b.Less(a))
	})

	t.Run("dominated with one objective tied", func(t *testing.T) {
		a := NewPareto([]float64{1, 2})
		b := NewPareto([]float64{2, 2})
		assert.True(t, a.Less(b))
		assert.False(t, b.Less(a))
	})

	t.Run("mutually non dominated", func(t *testing.T) {
		a := NewPareto([]float64{1, 3})
		b := NewPareto([]float64{3, 1})
		assert.False(t, a.Less(b))
		assert.False(t, b.Less(a))
	})

	t.Run("equal values do not dominate", func(t *testing.T) {
		a := NewPareto([]float64{1, 2})
		b := NewPareto([]float64{1, 2})
		assert.False(t, a.Less(b))
		assert.False(t, b.Less(a))
	})

	t.Run("minimized objectives invert the preference", func(t *testing.T) {
		a := Pareto{Objectives: []float64{1, 5}, Maximize: []bool{true, false}}
		b := Pareto{Objectives: []float64{1, 2}, Maximize: []bool{true, false}}
		assert.True(t, a.Less(b))
		assert.False(t, b.Less(a))
	})

	t.Run("panics on dimension mismatch", func(t *testing.T) {
		a := NewPareto([]float64{1})
		b := NewPareto([]float64{1, 2})
		assert.Panics(t, func() { a.Less(b) })
	})

	t.Run("panics on foreign fitness type", func(t *testing.T) {
		a := NewPareto([]float64{1})
		assert.Panics(t, func() { a.Less(nil) })
	})
}

func TestParetoEqual(t *testing.T) {
	assert.True(t, NewPareto([]float64{1, 2}).Equal(NewPareto([]float64{1, 2})))
	assert.False(t, NewPareto([]float64{1, 2}).Equal(NewPareto([]float64{2, 1})))
}
