package ec

import (
	"math"
	"math/rand"

	"github.com/aarongarrett/inspyred/pkg/errors"
)

// MutatorFunc perturbs a single candidate.
type MutatorFunc func(rng *rand.Rand, candidate Candidate, run *RunContext) (Candidate, error)

// Mutator lifts a per-candidate mutation into a Variator that applies
// it to every candidate in turn.
func Mutator(mut MutatorFunc) Variator {
	return VariatorFunc(func(rng *rand.Rand, candidates []Candidate, run *RunContext) ([]Candidate, error) {
		mutants := make([]Candidate, len(candidates))
		for i, c := range candidates {
			m, err := mut(rng, c, run)
			if err != nil {
				return nil, err
			}
			mutants[i] = m
		}
		return mutants, nil
	})
}

// BitFlipMutation flips each gene of a binary candidate with
// probability Config.MutationRate. Candidates whose genes are not all
// 0 or 1 pass through unchanged.
func BitFlipMutation(rng *rand.Rand, candidate Candidate, run *RunContext) (Candidate, error) {
	v, err := floatsCandidate(candidate)
	if err != nil {
		return nil, err
	}
	for _, x := range v {
		if x != 0 && x != 1 {
			return candidate, nil
		}
	}
	rate := run.Config().mutationRate()
	mutant := cloneFloats(v)
	for i, x := range mutant {
		if rng.Float64() < rate {
			mutant[i] = math.Mod(x+1, 2)
		}
	}
	return mutant, nil
}

// RandomResetMutation replaces each gene with a random legal value
// from the run's DiscreteBounder with probability Config.MutationRate.
// Candidates pass through unchanged when the bounder is not discrete.
func RandomResetMutation(rng *rand.Rand, candidate Candidate, run *RunContext) (Candidate, error) {
	db, ok := run.Bounder().(*DiscreteBounder)
	if !ok || len(db.Values) == 0 {
		return candidate, nil
	}
	v, err := floatsCandidate(candidate)
	if err != nil {
		return nil, err
	}
	rate := run.Config().mutationRate()
	mutant := cloneFloats(v)
	for i := range mutant {
		if rng.Float64() < rate {
			mutant[i] = db.Values[rng.Intn(len(db.Values))]
		}
	}
	return mutant, nil
}

// GaussianMutation adds Gaussian noise with Config.GaussianMean and
// Config.GaussianStdev to each gene with probability
// Config.MutationRate, then bounds the mutant.
func GaussianMutation(rng *rand.Rand, candidate Candidate, run *RunContext) (Candidate, error) {
	v, err := floatsCandidate(candidate)
	if err != nil {
		return nil, err
	}
	cfg := run.Config()
	rate := cfg.mutationRate()
	mean := cfg.GaussianMean
	stdev := cfg.gaussianStdev()
	mutant := cloneFloats(v)
	for i := range mutant {
		if rng.Float64() < rate {
			mutant[i] += rng.NormFloat64()*stdev + mean
		}
	}
	return run.Bounder().Bound(mutant), nil
}

// NonuniformMutation perturbs each gene toward one bound by an amount
// that shrinks as the run approaches Config.MaxGenerations, weighted
// by Config.MutationStrength. It requires a ClampBounder and a
// positive MaxGenerations.
func NonuniformMutation(rng *rand.Rand, candidate Candidate, run *RunContext) (Candidate, error) {
	cb, ok := run.Bounder().(*ClampBounder)
	if !ok || len(cb.Lower) == 0 || len(cb.Upper) == 0 {
		return nil, errors.New(errors.InvalidConfig,
			"nonuniform mutation requires a clamping bounder with explicit bounds")
	}
	cfg := run.Config()
	if cfg.MaxGenerations <= 0 {
		return nil, errors.New(errors.InvalidConfig,
			"nonuniform mutation requires a positive max generations setting")
	}
	v, err := floatsCandidate(candidate)
	if err != nil {
		return nil, err
	}
	exponent := (1.0 - float64(run.NumGenerations())/float64(cfg.MaxGenerations)) * cfg.mutationStrength()
	mutant := cloneFloats(v)
	for i, c := range v {
		lo := cb.boundAt(i, cb.Lower)
		hi := cb.boundAt(i, cb.Upper)
		if rng.Float64() <= 0.5 {
			mutant[i] = c + (hi-c)*(1.0-math.Pow(rng.Float64(), exponent))
		} else {
			mutant[i] = c - (c-lo)*(1.0-math.Pow(rng.Float64(), exponent))
		}
	}
	return mutant, nil
}

// InversionMutation reverses a random segment of an integer candidate
// with probability Config.MutationRate.
func InversionMutation(rng *rand.Rand, candidate Candidate, run *RunContext) (Candidate, error) {
	v, err := intsCandidate(candidate)
	if err != nil {
		return nil, err
	}
	if rng.Float64() >= run.Config().mutationRate() {
		return candidate, nil
	}
	x, y := segmentBounds(rng, len(v))
	mutant := cloneInts(v)
	for i, j := x, y; i < j; i, j = i+1, j-1 {
		mutant[i], mutant[j] = mutant[j], mutant[i]
	}
	return mutant, nil
}

// ScrambleMutation shuffles a random segment of an integer candidate
// with probability Config.MutationRate.
func ScrambleMutation(rng *rand.Rand, candidate Candidate, run *RunContext) (Candidate, error) {
	v, err := intsCandidate(candidate)
	if err != nil {
		return nil, err
	}
	if rng.Float64() >= run.Config().mutationRate() {
		return candidate, nil
	}
	x, y := segmentBounds(rng, len(v))
	mutant := cloneInts(v)
	segment := mutant[x : y+1]
	rng.Shuffle(len(segment), func(i, j int) {
		segment[i], segment[j] = segment[j], segment[i]
	})
	return mutant, nil
}

// segmentBounds picks two distinct indices in [0, size) and returns
// them in order.
func segmentBounds(rng *rand.Rand, size int) (int, int) {
	points := sampleInts(rng, 0, size, 2)
	x, y := points[0], points[1]
	if y < x {
		x, y = y, x
	}
	return x, y
}
