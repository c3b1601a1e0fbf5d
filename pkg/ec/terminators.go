package ec

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

// DefaultTermination fires immediately, ending the run after the
// initial population has been created and evaluated.
func DefaultTermination() Terminator {
	return TerminatorFunc("default termination", func(population []*Individual, numGenerations, numEvaluations int, run *RunContext) bool {
		return true
	})
}

// DiversityTermination fires when the largest pairwise Euclidean
// distance between real-valued candidates drops below
// Config.MinDiversity.
func DiversityTermination() Terminator {
	return TerminatorFunc("diversity termination", func(population []*Individual, numGenerations, numEvaluations int, run *RunContext) bool {
		minDiversity := run.Config().minDiversity()
		longest := 0.0
		for i, a := range population {
			for _, b := range population[i+1:] {
				if d := euclideanDistance(a.Candidate(), b.Candidate()); d > longest {
					longest = d
				}
			}
		}
		return longest < minDiversity
	})
}

// AverageFitnessTermination fires when the gap between the largest and
// the mean raw scalar fitness drops below Config.Tolerance. The spread
// is taken over raw values, so it measures convergence the same way
// for maximization and minimization.
func AverageFitnessTermination() Terminator {
	return TerminatorFunc("average fitness termination", func(population []*Individual, numGenerations, numEvaluations int, run *RunContext) bool {
		if len(population) == 0 {
			return false
		}
		values := make([]float64, 0, len(population))
		for _, ind := range population {
			s, ok := ind.Fitness.(Scalar)
			if !ok {
				return false
			}
			values = append(values, float64(s))
		}
		largest := values[0]
		for _, v := range values[1:] {
			if v > largest {
				largest = v
			}
		}
		return largest-stat.Mean(values, nil) < run.Config().tolerance()
	})
}

// EvaluationTermination fires once Config.MaxEvaluations fitness
// evaluations have been used. An unset budget defaults to the
// population size, one evaluation per individual.
func EvaluationTermination() Terminator {
	return TerminatorFunc("evaluation termination", func(population []*Individual, numGenerations, numEvaluations int, run *RunContext) bool {
		maxEvaluations := run.Config().MaxEvaluations
		if maxEvaluations <= 0 {
			maxEvaluations = len(population)
		}
		return numEvaluations >= maxEvaluations
	})
}

// GenerationTermination fires once Config.MaxGenerations generations
// have completed. An unset budget defaults to a single generation.
func GenerationTermination() Terminator {
	return TerminatorFunc("generation termination", func(population []*Individual, numGenerations, numEvaluations int, run *RunContext) bool {
		maxGenerations := run.Config().MaxGenerations
		if maxGenerations <= 0 {
			maxGenerations = 1
		}
		return numGenerations >= maxGenerations
	})
}

// TimeTerminator fires once Config.MaxTime has elapsed since the first
// termination check of the run. The clock starts lazily, so one
// instance belongs to one run at a time; call Reset before reuse.
type TimeTerminator struct {
	start time.Time
	// now allows tests to supply a fake clock.
	now func() time.Time
}

func NewTimeTerminator() *TimeTerminator { return &TimeTerminator{now: time.Now} }

// Reset clears the start time so the terminator can serve a fresh run.
func (t *TimeTerminator) Reset() { t.start = time.Time{} }

func (t *TimeTerminator) Name() string { return "time termination" }

func (t *TimeTerminator) Terminate(population []*Individual, numGenerations, numEvaluations int, run *RunContext) bool {
	if t.now == nil {
		t.now = time.Now
	}
	if t.start.IsZero() {
		t.start = t.now()
		return false
	}
	return t.now().Sub(t.start) >= time.Duration(run.Config().MaxTime)
}

// NoImprovementTerminator fires after MaxGenerations consecutive
// generations in which the best fitness has not changed. One instance
// belongs to one run at a time; call Reset before reuse.
type NoImprovementTerminator struct {
	// MaxGenerations is the number of stagnant generations tolerated
	// (default 10).
	MaxGenerations int

	previousBest Fitness
	count        int
}

// Reset clears the stagnation state so the terminator can serve a
// fresh run.
func (t *NoImprovementTerminator) Reset() {
	t.previousBest = nil
	t.count = 0
}

func (t *NoImprovementTerminator) Name() string { return "no improvement termination" }

func (t *NoImprovementTerminator) Terminate(population []*Individual, numGenerations, numEvaluations int, run *RunContext) bool {
	if len(population) == 0 {
		return false
	}
	maxGenerations := t.MaxGenerations
	if maxGenerations <= 0 {
		maxGenerations = 10
	}
	pop := copyPopulation(population)
	sortBestToWorst(pop)
	currentBest := pop[0].Fitness
	if t.previousBest == nil || !t.previousBest.Equal(currentBest) {
		t.previousBest = currentBest
		t.count = 0
		return false
	}
	if t.count >= maxGenerations {
		return true
	}
	t.count++
	return false
}
