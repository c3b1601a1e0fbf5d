package ec

import (
	"fmt"

	"github.com/aarongarrett/inspyred/pkg/errors"
)

// Candidate is an opaque representation of one solution to the problem
// being optimized. The engine imposes no structure on candidates; the
// built-in numeric operators require a []float64.
type Candidate = any

// Fitness is the quality value assigned to a candidate by an evaluator.
//
// Less reports whether the receiver is strictly worse than other under
// the value's own ordering, ignoring the maximize polarity of the
// individual that carries it. For scalar fitness this is plain numeric
// comparison; for multiobjective fitness it is Pareto dominance, which
// makes the order partial: Less(a, b) and Less(b, a) may both be false
// for distinct values.
type Fitness interface {
	Less(other Fitness) bool
	Equal(other Fitness) bool
}

// Vector is implemented by multiobjective fitness values that expose
// their per-objective components. The non-dominated sorting replacer
// and the adaptive grid archiver require it.
type Vector interface {
	Fitness
	Values() []float64
}

// Scalar is a single-valued fitness.
type Scalar float64

func (s Scalar) Less(other Fitness) bool {
	o, ok := other.(Scalar)
	if !ok {
		panic(errors.New(errors.UnsetFitness,
			fmt.Sprintf("cannot compare Scalar fitness with %T", other)))
	}
	return s < o
}

func (s Scalar) Equal(other Fitness) bool {
	o, ok := other.(Scalar)
	return ok && s == o
}

func (s Scalar) String() string {
	return fmt.Sprintf("%g", float64(s))
}
