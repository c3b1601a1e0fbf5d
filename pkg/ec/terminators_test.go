package ec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultTermination(t *testing.T) {
	term := DefaultTermination()
	assert.Equal(t, "default termination", term.Name())
	assert.True(t, term.Terminate(nil, 0, 0, testRun(nil)))
}

func TestDiversityTermination(t *testing.T) {
	term := DiversityTermination()

	t.Run("fires when candidates converge", func(t *testing.T) {
		pop := scalarPopulation(true, 1, 1.0000001)
		assert.True(t, term.Terminate(pop, 0, 0, testRun(&Config{MinDiversity: 0.1})))
	})

	t.Run("holds while candidates are spread", func(t *testing.T) {
		pop := scalarPopulation(true, 0, 100)
		assert.False(t, term.Terminate(pop, 0, 0, testRun(&Config{MinDiversity: 0.1})))
	})
}

func TestAverageFitnessTermination(t *testing.T) {
	term := AverageFitnessTermination()

	t.Run("fires when fitness converges", func(t *testing.T) {
		pop := scalarPopulation(true, 5, 5, 5)
		assert.True(t, term.Terminate(pop, 0, 0, testRun(nil)))
	})

	t.Run("holds while fitness varies", func(t *testing.T) {
		pop := scalarPopulation(true, 0, 100)
		assert.False(t, term.Terminate(pop, 0, 0, testRun(nil)))
	})

	t.Run("holds while minimization fitness varies", func(t *testing.T) {
		pop := scalarPopulation(false, 0, 100, 200)
		assert.False(t, term.Terminate(pop, 0, 0, testRun(nil)))
	})

	t.Run("fires when minimization fitness converges", func(t *testing.T) {
		pop := scalarPopulation(false, 5, 5, 5)
		assert.True(t, term.Terminate(pop, 0, 0, testRun(nil)))
	})
}

func TestEvaluationTermination(t *testing.T) {
	term := EvaluationTermination()
	run := testRun(&Config{MaxEvaluations: 100})
	assert.False(t, term.Terminate(nil, 0, 99, run))
	assert.True(t, term.Terminate(nil, 0, 100, run))

	t.Run("unset budget defaults to the population size", func(t *testing.T) {
		pop := scalarPopulation(true, 1, 2, 3)
		assert.False(t, term.Terminate(pop, 0, 2, testRun(nil)))
		assert.True(t, term.Terminate(pop, 0, 3, testRun(nil)))
	})
}

func TestGenerationTermination(t *testing.T) {
	term := GenerationTermination()
	run := testRun(&Config{MaxGenerations: 5})
	assert.False(t, term.Terminate(nil, 4, 0, run))
	assert.True(t, term.Terminate(nil, 5, 0, run))

	t.Run("unset budget defaults to one generation", func(t *testing.T) {
		assert.False(t, term.Terminate(nil, 0, 0, testRun(nil)))
		assert.True(t, term.Terminate(nil, 1, 0, testRun(nil)))
	})
}

func TestTimeTerminator(t *testing.T) {
	now := time.Unix(0, 0)
	term := NewTimeTerminator()
	term.now = func() time.Time { return now }
	run := testRun(&Config{MaxTime: Duration(time.Minute)})

	assert.False(t, term.Terminate(nil, 0, 0, run), "first check starts the clock")
	now = now.Add(30 * time.Second)
	assert.False(t, term.Terminate(nil, 1, 0, run))
	now = now.Add(31 * time.Second)
	assert.True(t, term.Terminate(nil, 2, 0, run))

	t.Run("reset restarts the clock", func(t *testing.T) {
		term.Reset()
		assert.False(t, term.Terminate(nil, 0, 0, run))
	})
}

func TestNoImprovementTerminator(t *testing.T) {
	term := &NoImprovementTerminator{MaxGenerations: 2}
	run := testRun(nil)

	improving := scalarPopulation(true, 1)
	assert.False(t, term.Terminate(improving, 0, 0, run))

	stagnant := scalarPopulation(true, 1)
	assert.False(t, term.Terminate(stagnant, 1, 0, run))
	assert.False(t, term.Terminate(stagnant, 2, 0, run))
	assert.True(t, term.Terminate(stagnant, 3, 0, run))

	t.Run("improvement resets the count", func(t *testing.T) {
		better := scalarPopulation(true, 2)
		assert.False(t, term.Terminate(better, 5, 0, run))
	})
}
