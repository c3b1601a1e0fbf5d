package ec

import (
	"fmt"
	"reflect"
	"sort"
	"time"

	"github.com/aarongarrett/inspyred/pkg/errors"
)

// Individual wraps a candidate solution with the fitness assigned to it.
//
// Individuals are almost always created by the engine rather than the
// user. Comparisons respect the Maximize flag, so WorseThan and
// BetterThan always mean "less desirable" and "more desirable"
// regardless of whether the problem is a maximization or minimization.
// Comparing individuals before a fitness has been assigned is a
// programming error and panics.
type Individual struct {
	candidate Candidate
	Fitness   Fitness
	Birthdate time.Time
	Maximize  bool

	// Grid cell index maintained by the adaptive grid archiver.
	gridLocation int
}

// NewIndividual creates an unevaluated individual for the candidate.
func NewIndividual(candidate Candidate, maximize bool) *Individual {
	return &Individual{
		candidate: candidate,
		Birthdate: time.Now(),
		Maximize:  maximize,
	}
}

// Candidate returns the wrapped candidate solution.
func (ind *Individual) Candidate() Candidate {
	return ind.candidate
}

// SetCandidate replaces the candidate and clears the fitness, since a
// fitness computed for the old candidate no longer applies.
func (ind *Individual) SetCandidate(candidate Candidate) {
	ind.candidate = candidate
	ind.Fitness = nil
}

func (ind *Individual) String() string {
	return fmt.Sprintf("%v : %v", ind.candidate, ind.Fitness)
}

func (ind *Individual) checkComparable(other *Individual) {
	if ind.Fitness == nil || other.Fitness == nil {
		panic(errors.New(errors.UnsetFitness, "fitness cannot be nil when comparing individuals"))
	}
}

// WorseThan reports whether ind is strictly less desirable than other.
// When Maximize is false the underlying comparison is inverted by
// swapping operands, so a smaller fitness is the more desirable one.
func (ind *Individual) WorseThan(other *Individual) bool {
	ind.checkComparable(other)
	if ind.Maximize {
		return ind.Fitness.Less(other.Fitness)
	}
	return other.Fitness.Less(ind.Fitness)
}

// BetterThan reports whether ind is strictly more desirable than other.
func (ind *Individual) BetterThan(other *Individual) bool {
	return other.WorseThan(ind)
}

// NoWorseThan reports whether ind is at least as desirable as other.
// Under a partial order this holds for mutually non-dominated pairs.
func (ind *Individual) NoWorseThan(other *Individual) bool {
	return other.WorseThan(ind) || !ind.WorseThan(other)
}

// NoBetterThan reports whether ind is at most as desirable as other.
func (ind *Individual) NoBetterThan(other *Individual) bool {
	return ind.WorseThan(other) || !other.WorseThan(ind)
}

// Equals compares candidate, fitness, and polarity together. Unset
// fitnesses are permitted here and compare equal only to each other.
func (ind *Individual) Equals(other *Individual) bool {
	if ind.Maximize != other.Maximize {
		return false
	}
	if !reflect.DeepEqual(ind.candidate, other.candidate) {
		return false
	}
	if ind.Fitness == nil || other.Fitness == nil {
		return ind.Fitness == nil && other.Fitness == nil
	}
	return ind.Fitness.Equal(other.Fitness)
}

// containsIndividual reports whether pool contains an individual equal to ind.
func containsIndividual(pool []*Individual, ind *Individual) bool {
	for _, p := range pool {
		if p.Equals(ind) {
			return true
		}
	}
	return false
}

// Cloner may be implemented by candidate types that need deep copies
// when offspring are derived from parents.
type Cloner interface {
	Clone() Candidate
}

// cloneCandidate deep-copies the candidate types the built-in operators
// produce. Opaque candidates that do not implement Cloner are shared,
// which is safe only if the user's variators treat them as immutable.
func cloneCandidate(c Candidate) Candidate {
	switch v := c.(type) {
	case []float64:
		out := make([]float64, len(v))
		copy(out, v)
		return out
	case []int:
		out := make([]int, len(v))
		copy(out, v)
		return out
	case Cloner:
		return v.Clone()
	default:
		return c
	}
}

// sortWorstToBest orders the slice in place from least to most desirable,
// stably, using the individuals' comparison rules.
func sortWorstToBest(pool []*Individual) {
	sort.SliceStable(pool, func(i, j int) bool { return pool[i].WorseThan(pool[j]) })
}

// sortBestToWorst orders the slice in place from most to least desirable.
func sortBestToWorst(pool []*Individual) {
	sort.SliceStable(pool, func(i, j int) bool { return pool[i].BetterThan(pool[j]) })
}
