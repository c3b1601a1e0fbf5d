package ec

import (
	"math/rand"
	"reflect"

	"github.com/aarongarrett/inspyred/pkg/errors"
)

// StrategyCandidate pairs a real-valued candidate with its
// self-adaptive mutation strategy parameters, one per value. Evolution
// strategies evolve both halves together.
type StrategyCandidate struct {
	Values     []float64
	Strategies []float64
}

func (sc StrategyCandidate) Clone() Candidate {
	return StrategyCandidate{
		Values:     cloneFloats(sc.Values),
		Strategies: cloneFloats(sc.Strategies),
	}
}

// Strategize wraps a real-valued generator so that each generated
// candidate carries a strategy parameter in [0, 1) for every value.
func Strategize(generator Generator) Generator {
	return GeneratorFunc(func(rng *rand.Rand, run *RunContext) (Candidate, error) {
		c, err := generator.Generate(rng, run)
		if err != nil {
			return nil, err
		}
		values, err := floatsCandidate(c)
		if err != nil {
			return nil, err
		}
		strategies := make([]float64, len(values))
		for i := range strategies {
			strategies[i] = rng.Float64()
		}
		return StrategyCandidate{Values: values, Strategies: strategies}, nil
	})
}

// Diversifier wraps a generator to enforce uniqueness among the
// candidates it has produced. Generation fails once MaxAttempts
// consecutive duplicates occur, rather than spinning forever on an
// exhausted candidate space.
//
// A Diversifier remembers every candidate it has returned, so one
// instance belongs to one run at a time; call Reset before reuse.
type Diversifier struct {
	Generator Generator
	// MaxAttempts bounds the retries per candidate (default 1000).
	MaxAttempts int

	seen []Candidate
}

// Reset forgets all previously generated candidates.
func (d *Diversifier) Reset() { d.seen = nil }

func (d *Diversifier) Generate(rng *rand.Rand, run *RunContext) (Candidate, error) {
	maxAttempts := d.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1000
	}
	for attempt := 0; attempt < maxAttempts; attempt++ {
		c, err := d.Generator.Generate(rng, run)
		if err != nil {
			return nil, err
		}
		duplicate := false
		for _, s := range d.seen {
			if reflect.DeepEqual(s, c) {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}
		d.seen = append(d.seen, c)
		return c, nil
	}
	return nil, errors.WithFields(
		errors.New(errors.GenerationFailed, "could not generate a unique candidate"),
		errors.Fields{"attempts": maxAttempts})
}
