package ec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncationReplacement(t *testing.T) {
	pop := scalarPopulation(true, 1, 2, 3)
	offspring := scalarPopulation(true, 5, 0)
	survivors, err := TruncationReplacement(testRNG(), pop, nil, offspring, testRun(nil))
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 3, 2}, fitnessValues(survivors))
}

func TestSteadyStateReplacement(t *testing.T) {
	pop := scalarPopulation(true, 1, 2, 3)
	offspring := scalarPopulation(true, 9)
	survivors, err := SteadyStateReplacement(testRNG(), pop, nil, offspring, testRun(nil))
	require.NoError(t, err)
	assert.Len(t, survivors, 3)
	assert.ElementsMatch(t, []float64{9, 2, 3}, fitnessValues(survivors))
}

func TestGenerationalReplacement(t *testing.T) {
	t.Run("offspring replace the population", func(t *testing.T) {
		pop := scalarPopulation(true, 10, 20)
		offspring := scalarPopulation(true, 1, 2)
		survivors, err := GenerationalReplacement(testRNG(), pop, nil, offspring, testRun(nil))
		require.NoError(t, err)
		assert.ElementsMatch(t, []float64{1, 2}, fitnessValues(survivors))
	})

	t.Run("elites survive", func(t *testing.T) {
		pop := scalarPopulation(true, 10, 20)
		offspring := scalarPopulation(true, 1, 2)
		survivors, err := GenerationalReplacement(testRNG(), pop, nil, offspring, testRun(&Config{NumElites: 1}))
		require.NoError(t, err)
		assert.Equal(t, []float64{20, 2}, fitnessValues(survivors))
	})
}

func TestRandomReplacement(t *testing.T) {
	pop := scalarPopulation(true, 1, 2, 3, 4)
	offspring := scalarPopulation(true, 9, 9)
	survivors, err := RandomReplacement(testRNG(), pop, nil, offspring, testRun(&Config{NumElites: 1}))
	require.NoError(t, err)
	assert.Len(t, survivors, 4)
	// The best individual is elite and always survives.
	assert.Contains(t, fitnessValues(survivors), 4.0)

	t.Run("elites exceeding the population leave it unchanged", func(t *testing.T) {
		pop := scalarPopulation(true, 1, 2)
		offspring := scalarPopulation(true, 9)
		survivors, err := RandomReplacement(testRNG(), pop, nil, offspring, testRun(&Config{NumElites: 5}))
		require.NoError(t, err)
		assert.ElementsMatch(t, []float64{1, 2}, fitnessValues(survivors))
	})
}

func TestPlusReplacement(t *testing.T) {
	pop := scalarPopulation(true, 0, 0, 0)
	parents := scalarPopulation(true, 5, 1)
	offspring := scalarPopulation(true, 3, 4)
	survivors, err := PlusReplacement(testRNG(), pop, parents, offspring, testRun(nil))
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 4, 3}, fitnessValues(survivors))
}

func TestCommaReplacement(t *testing.T) {
	pop := scalarPopulation(true, 9, 9)
	offspring := scalarPopulation(true, 1, 2, 3)
	survivors, err := CommaReplacement(testRNG(), pop, nil, offspring, testRun(nil))
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 2}, fitnessValues(survivors))
}

func TestCrowdingReplacer(t *testing.T) {
	pop := []*Individual{}
	for _, v := range []float64{0, 10} {
		ind := NewIndividual([]float64{v}, true)
		ind.Fitness = Scalar(v)
		pop = append(pop, ind)
	}
	// Offspring near candidate 0 but better than it.
	child := NewIndividual([]float64{0.5}, true)
	child.Fitness = Scalar(5)

	r := &CrowdingReplacer{}
	survivors, err := r.Replace(testRNG(), pop, nil, []*Individual{child}, testRun(&Config{CrowdingDistance: 2}))
	require.NoError(t, err)
	assert.Len(t, survivors, 2)
	assert.True(t, containsIndividual(survivors, child))
	assert.Contains(t, fitnessValues(survivors), 10.0)
}

func TestAnnealingReplacer(t *testing.T) {
	t.Run("better offspring always survive", func(t *testing.T) {
		r := &AnnealingReplacer{Temperature: 1, CoolingRate: 0.9}
		parents := scalarPopulation(true, 1)
		offspring := scalarPopulation(true, 2)
		survivors, err := r.Replace(testRNG(), parents, parents, offspring, testRun(nil))
		require.NoError(t, err)
		assert.Equal(t, []float64{2}, fitnessValues(survivors))
	})

	t.Run("cold temperature rejects much worse offspring", func(t *testing.T) {
		r := &AnnealingReplacer{Temperature: 1e-9, CoolingRate: 1}
		parents := scalarPopulation(true, 100)
		offspring := scalarPopulation(true, 1)
		survivors, err := r.Replace(testRNG(), parents, parents, offspring, testRun(nil))
		require.NoError(t, err)
		assert.Equal(t, []float64{100}, fitnessValues(survivors))
	})

	t.Run("temperature falls back to the evaluation budget", func(t *testing.T) {
		r := &AnnealingReplacer{}
		parents := scalarPopulation(true, 2)
		offspring := scalarPopulation(true, 1)
		_, err := r.Replace(testRNG(), parents, parents, offspring, testRun(&Config{MaxEvaluations: 100}))
		assert.NoError(t, err)
	})

	t.Run("errors without any schedule", func(t *testing.T) {
		r := &AnnealingReplacer{}
		parents := scalarPopulation(true, 2)
		offspring := scalarPopulation(true, 1)
		_, err := r.Replace(testRNG(), parents, parents, offspring, testRun(nil))
		assert.Error(t, err)
	})
}

func TestNSGAReplacement(t *testing.T) {
	t.Run("prefers earlier fronts", func(t *testing.T) {
		pop := []*Individual{
			vecIndividual([]float64{0}, 1, 1),
			vecIndividual([]float64{1}, 2, 2),
		}
		offspring := []*Individual{
			vecIndividual([]float64{2}, 3, 3),
			vecIndividual([]float64{3}, 0, 0),
		}
		survivors, err := NSGAReplacement(testRNG(), pop, nil, offspring, testRun(nil))
		require.NoError(t, err)
		require.Len(t, survivors, 2)
		assert.True(t, containsIndividual(survivors, offspring[0]))
		assert.True(t, containsIndividual(survivors, pop[1]))
	})

	t.Run("chain property keeps the best half", func(t *testing.T) {
		// With totally ordered individuals each front is a singleton, so
		// survivors are exactly the best N of the 2N pool.
		var pop, offspring []*Individual
		for i := 0; i < 4; i++ {
			pop = append(pop, vecIndividual([]float64{float64(i)}, float64(i), float64(i)))
		}
		for i := 4; i < 8; i++ {
			offspring = append(offspring, vecIndividual([]float64{float64(i)}, float64(i), float64(i)))
		}
		survivors, err := NSGAReplacement(testRNG(), pop, nil, offspring, testRun(nil))
		require.NoError(t, err)
		require.Len(t, survivors, 4)
		for _, s := range survivors {
			assert.GreaterOrEqual(t, s.Fitness.(testVec)[0], 4.0)
		}
	})

	t.Run("boundary individuals win crowding ties", func(t *testing.T) {
		// One front of four mutually non-dominated points, room for three:
		// the two extremes must survive on infinite crowding distance.
		pop := []*Individual{
			vecIndividual([]float64{0}, 0, 3),
			vecIndividual([]float64{1}, 1, 2.9),
			vecIndividual([]float64{2}, 2, 2.8),
		}
		offspring := []*Individual{
			vecIndividual([]float64{3}, 3, 0),
		}
		survivors, err := NSGAReplacement(testRNG(), pop, nil, offspring, testRun(nil))
		require.NoError(t, err)
		require.Len(t, survivors, 3)
		assert.True(t, containsIndividual(survivors, pop[0]))
		assert.True(t, containsIndividual(survivors, offspring[0]))
	})

	t.Run("duplicate-heavy split front still fills from later fronts", func(t *testing.T) {
		// The first front holds three copies of one point plus a second
		// point, so it overflows a population of three but contributes
		// only two distinct survivors; the dominated point in the next
		// front must make up the difference.
		pop := []*Individual{
			vecIndividual([]float64{1}, 0, 3),
			vecIndividual([]float64{1}, 0, 3),
			vecIndividual([]float64{2}, 3, 0),
		}
		offspring := []*Individual{
			vecIndividual([]float64{1}, 0, 3),
			vecIndividual([]float64{3}, 0, 0),
		}
		survivors, err := NSGAReplacement(testRNG(), pop, nil, offspring, testRun(nil))
		require.NoError(t, err)
		require.Len(t, survivors, 3)
		assert.True(t, containsIndividual(survivors, pop[0]))
		assert.True(t, containsIndividual(survivors, pop[2]))
		assert.True(t, containsIndividual(survivors, offspring[1]))
	})
}

func TestCrowdingDistances(t *testing.T) {
	combined := []*Individual{
		vecIndividual([]float64{0}, 0, 4),
		vecIndividual([]float64{1}, 1, 3),
		vecIndividual([]float64{2}, 4, 0),
	}
	front := []int{0, 1, 2}
	distance := crowdingDistances(combined, front)
	assert.True(t, math.IsInf(distance[0], 1))
	assert.True(t, math.IsInf(distance[2], 1))
	// Interior point accumulates the raw neighbor gap per objective.
	assert.Equal(t, 8.0, distance[1])
}
