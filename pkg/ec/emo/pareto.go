// Package emo provides multi-objective evolutionary computation: the
// Pareto fitness type and the NSGA-II and PAES algorithms.
package emo

import (
	"fmt"
	"reflect"

	"github.com/aarongarrett/inspyred/pkg/ec"
	"github.com/aarongarrett/inspyred/pkg/errors"
)

// Pareto is a multi-objective fitness compared by Pareto preference:
// one fitness is worse than another only if it is dominated, i.e. no
// better in any objective and strictly worse in at least one.
// Objectives are maximized unless the corresponding Maximize entry is
// false; a nil Maximize slice maximizes every objective.
//
// Pareto induces a partial order: two fitnesses may be mutually
// non-dominated, in which case both Less comparisons report false.
type Pareto struct {
	Objectives []float64
	Maximize   []bool
}

// NewPareto creates a fitness that maximizes every objective.
func NewPareto(objectives []float64) Pareto {
	return Pareto{Objectives: objectives}
}

// Values implements ec.Vector.
func (p Pareto) Values() []float64 { return p.Objectives }

func (p Pareto) maximizeAt(i int) bool {
	return p.Maximize == nil || p.Maximize[i]
}

// Less reports whether p is dominated by other. It panics when other
// is not a Pareto fitness of the same dimensionality; comparing
// incompatible fitnesses is a programming error, not a runtime
// condition.
func (p Pareto) Less(other ec.Fitness) bool {
	o, ok := other.(Pareto)
	if !ok {
		panic(errors.New(errors.UnsetFitness,
			fmt.Sprintf("cannot compare Pareto fitness with %T", other)))
	}
	if len(p.Objectives) != len(o.Objectives) {
		panic(errors.New(errors.UnsetFitness,
			fmt.Sprintf("cannot compare Pareto fitnesses of dimension %d and %d",
				len(p.Objectives), len(o.Objectives))))
	}
	notWorse := true
	strictlyBetter := false
	for i, x := range p.Objectives {
		y := o.Objectives[i]
		if p.maximizeAt(i) {
			if x > y {
				notWorse = false
			} else if y > x {
				strictlyBetter = true
			}
		} else {
			if x < y {
				notWorse = false
			} else if y < x {
				strictlyBetter = true
			}
		}
	}
	return notWorse && strictlyBetter
}

// Equal reports element-wise equality of the objective values.
func (p Pareto) Equal(other ec.Fitness) bool {
	o, ok := other.(Pareto)
	if !ok {
		return false
	}
	return reflect.DeepEqual(p.Objectives, o.Objectives)
}

func (p Pareto) String() string {
	return fmt.Sprintf("%v", p.Objectives)
}
