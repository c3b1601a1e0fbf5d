package ec

import (
	"context"
	"math/rand"
	"reflect"
)

// testRun builds a RunContext around a bare engine, the way operators
// see one mid-run.
func testRun(cfg *Config) *RunContext {
	if cfg == nil {
		cfg = &Config{}
	}
	return &RunContext{engine: &Engine{
		config:   cfg,
		bounder:  identityBounder{},
		maximize: true,
		ctx:      context.Background(),
	}}
}

func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

// scalarPopulation builds one individual per fitness value, with the
// candidate equal to the fitness.
func scalarPopulation(maximize bool, fits ...float64) []*Individual {
	pop := make([]*Individual, len(fits))
	for i, f := range fits {
		ind := NewIndividual([]float64{f}, maximize)
		ind.Fitness = Scalar(f)
		pop[i] = ind
	}
	return pop
}

func fitnessValues(pop []*Individual) []float64 {
	out := make([]float64, len(pop))
	for i, ind := range pop {
		out[i] = float64(ind.Fitness.(Scalar))
	}
	return out
}

// testVec is a maximize-all multi-objective fitness compared by Pareto
// dominance, for exercising the multi-objective replacers and archivers
// without importing the emo package.
type testVec []float64

func (v testVec) Values() []float64 { return v }

func (v testVec) Less(other Fitness) bool {
	o := other.(testVec)
	notWorse := true
	strictlyBetter := false
	for i := range v {
		if v[i] > o[i] {
			notWorse = false
		} else if o[i] > v[i] {
			strictlyBetter = true
		}
	}
	return notWorse && strictlyBetter
}

func (v testVec) Equal(other Fitness) bool {
	o, ok := other.(testVec)
	return ok && reflect.DeepEqual([]float64(v), []float64(o))
}

func vecIndividual(candidate []float64, objectives ...float64) *Individual {
	ind := NewIndividual(candidate, true)
	ind.Fitness = testVec(objectives)
	return ind
}
