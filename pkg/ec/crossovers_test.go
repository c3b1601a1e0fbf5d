package ec

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrossoverAdapter(t *testing.T) {
	passthrough := Crossover(func(rng *rand.Rand, mom, dad Candidate, run *RunContext) ([]Candidate, error) {
		return []Candidate{mom, dad}, nil
	})

	t.Run("pairs candidates in order", func(t *testing.T) {
		out, err := passthrough.Vary(testRNG(), []Candidate{1, 2, 3, 4}, testRun(nil))
		require.NoError(t, err)
		assert.Equal(t, []Candidate{1, 2, 3, 4}, out)
	})

	t.Run("odd candidate is dropped", func(t *testing.T) {
		out, err := passthrough.Vary(testRNG(), []Candidate{1, 2, 3}, testRun(nil))
		require.NoError(t, err)
		assert.Equal(t, []Candidate{1, 2}, out)
	})
}

func TestNPointCrossover(t *testing.T) {
	mom := []float64{1, 1, 1, 1, 1}
	dad := []float64{2, 2, 2, 2, 2}

	t.Run("genes come from the parents position-wise", func(t *testing.T) {
		children, err := NPointCrossover(testRNG(), mom, dad, testRun(&Config{NumCrossoverPoints: 2}))
		require.NoError(t, err)
		require.Len(t, children, 2)
		bro := children[0].([]float64)
		sis := children[1].([]float64)
		for i := range mom {
			assert.Contains(t, []float64{1, 2}, bro[i])
			// Positions swap as a pair.
			assert.NotEqual(t, bro[i], sis[i])
		}
	})

	t.Run("zero rate passes parents through", func(t *testing.T) {
		run := testRun(&Config{CrossoverRate: -1})
		rng := testRNG()
		children, err := NPointCrossover(rng, mom, dad, run)
		require.NoError(t, err)
		assert.Equal(t, mom, children[0])
		assert.Equal(t, dad, children[1])
	})
}

func TestUniformCrossover(t *testing.T) {
	mom := []float64{1, 1, 1, 1}
	dad := []float64{2, 2, 2, 2}
	children, err := UniformCrossover(testRNG(), mom, dad, testRun(nil))
	require.NoError(t, err)
	bro := children[0].([]float64)
	sis := children[1].([]float64)
	for i := range mom {
		assert.Equal(t, 3.0, bro[i]+sis[i])
	}
}

func TestArithmeticCrossover(t *testing.T) {
	mom := []float64{0, 0}
	dad := []float64{2, 4}
	children, err := ArithmeticCrossover(testRNG(), mom, dad, testRun(nil))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, children[0])
	assert.Equal(t, []float64{1, 2}, children[1])
}

func TestBlendCrossover(t *testing.T) {
	mom := []float64{0, 0}
	dad := []float64{10, 10}
	children, err := BlendCrossover(testRNG(), mom, dad, testRun(&Config{BLXAlpha: 0.1}))
	require.NoError(t, err)
	for _, c := range children {
		for _, g := range c.([]float64) {
			assert.GreaterOrEqual(t, g, -1.0)
			assert.LessOrEqual(t, g, 11.0)
		}
	}
}

func TestSimulatedBinaryCrossover(t *testing.T) {
	mom := []float64{2, 8}
	dad := []float64{6, 4}

	t.Run("offspring stay within bounds", func(t *testing.T) {
		run := testRun(nil)
		run.engine.bounder = NewBounder(0, 10)
		rng := testRNG()
		for i := 0; i < 20; i++ {
			children, err := SimulatedBinaryCrossover(rng, mom, dad, run)
			require.NoError(t, err)
			require.Len(t, children, 2)
			for _, child := range children {
				for _, v := range child.([]float64) {
					assert.GreaterOrEqual(t, v, 0.0)
					assert.LessOrEqual(t, v, 10.0)
				}
			}
		}
	})

	t.Run("identical genes are inherited unchanged", func(t *testing.T) {
		run := testRun(nil)
		run.engine.bounder = NewBounder(0, 10)
		children, err := SimulatedBinaryCrossover(testRNG(), []float64{5, 5}, []float64{5, 5}, run)
		require.NoError(t, err)
		assert.Equal(t, []float64{5, 5}, children[0])
		assert.Equal(t, []float64{5, 5}, children[1])
	})

	t.Run("requires a clamping bounder", func(t *testing.T) {
		_, err := SimulatedBinaryCrossover(testRNG(), mom, dad, testRun(nil))
		assert.Error(t, err)
	})
}

func TestHeuristicCrossover(t *testing.T) {
	pop := scalarPopulation(true, 1, 2)
	run := testRun(nil)
	run.engine.population = pop

	candidates := []Candidate{pop[0].Candidate(), pop[1].Candidate()}
	children, err := HeuristicCrossover(testRNG(), candidates, run)
	require.NoError(t, err)
	assert.Len(t, children, 2)

	t.Run("unknown candidates are rejected", func(t *testing.T) {
		_, err := HeuristicCrossover(testRNG(), []Candidate{[]float64{7}, []float64{8}}, run)
		assert.Error(t, err)
	})
}

func TestPartiallyMatchedCrossover(t *testing.T) {
	mom := []int{0, 1, 2, 3, 4, 5}
	dad := []int{5, 4, 3, 2, 1, 0}
	for seed := int64(0); seed < 10; seed++ {
		children, err := PartiallyMatchedCrossover(rand.New(rand.NewSource(seed)), mom, dad, testRun(nil))
		require.NoError(t, err)
		for _, c := range children {
			got := append([]int(nil), c.([]int)...)
			sort.Ints(got)
			assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, got, "offspring must remain a permutation")
		}
	}
}
