package ec

import (
	"math/rand"

	"github.com/aarongarrett/inspyred/pkg/errors"
)

// DefaultSelection selects the entire population.
func DefaultSelection(rng *rand.Rand, population []*Individual, run *RunContext) ([]*Individual, error) {
	return population, nil
}

// TruncationSelection selects the best Config.NumSelected individuals
// (default: the whole population).
func TruncationSelection(rng *rand.Rand, population []*Individual, run *RunContext) ([]*Individual, error) {
	numSelected := run.Config().numSelected(len(population))
	pop := copyPopulation(population)
	sortBestToWorst(pop)
	if numSelected > len(pop) {
		numSelected = len(pop)
	}
	return pop[:numSelected], nil
}

// UniformSelection selects Config.NumSelected individuals uniformly at
// random, with replacement, regardless of fitness.
func UniformSelection(rng *rand.Rand, population []*Individual, run *RunContext) ([]*Individual, error) {
	numSelected := run.Config().numSelected(1)
	selected := make([]*Individual, numSelected)
	for i := range selected {
		selected[i] = population[rng.Intn(len(population))]
	}
	return selected, nil
}

// FitnessProportionateSelection selects Config.NumSelected individuals
// via roulette-wheel sampling proportional to scalar fitness. It is
// undefined for minimization and for mixed-sign fitness values; both
// produce an error.
func FitnessProportionateSelection(rng *rand.Rand, population []*Individual, run *RunContext) ([]*Individual, error) {
	numSelected := run.Config().numSelected(1)
	pop := copyPopulation(population)
	sortBestToWorst(pop)
	maxFit, err := scalarFitness(pop[0])
	if err != nil {
		return nil, err
	}
	minFit, err := scalarFitness(pop[len(pop)-1])
	if err != nil {
		return nil, err
	}
	if maxFit < minFit {
		return nil, errors.New(errors.SelectionFailed, "fitness proportionate selection is not valid for minimization")
	}

	psum := make([]float64, len(pop))
	switch {
	case maxFit == minFit:
		for i := range psum {
			psum[i] = float64(i+1) / float64(len(pop))
		}
	case (maxFit > 0 && minFit >= 0) || (maxFit <= 0 && minFit < 0):
		for i, ind := range pop {
			f, err := scalarFitness(ind)
			if err != nil {
				return nil, err
			}
			psum[i] = f
			if i > 0 {
				psum[i] += psum[i-1]
			}
		}
		total := psum[len(psum)-1]
		for i := range psum {
			psum[i] /= total
		}
	default:
		return nil, errors.New(errors.SelectionFailed, "fitness values must be either all positive or all negative")
	}
	return spinWheel(rng, pop, psum, numSelected), nil
}

// RankSelection selects Config.NumSelected individuals via roulette-
// wheel sampling proportional to fitness rank rather than raw value,
// so it works for any comparable fitness and either polarity.
func RankSelection(rng *rand.Rand, population []*Individual, run *RunContext) ([]*Individual, error) {
	numSelected := run.Config().numSelected(1)
	pop := copyPopulation(population)
	sortWorstToBest(pop)
	psum := make([]float64, len(pop))
	den := float64(len(pop)*(len(pop)+1)) / 2.0
	for i := range psum {
		psum[i] = float64(i+1) / den
		if i > 0 {
			psum[i] += psum[i-1]
		}
	}
	return spinWheel(rng, pop, psum, numSelected), nil
}

// TournamentSelection selects Config.NumSelected individuals by holding
// that many tournaments of Config.TournamentSize entrants drawn without
// replacement, keeping each winner. The tournament size is capped at
// the population size.
func TournamentSelection(rng *rand.Rand, population []*Individual, run *RunContext) ([]*Individual, error) {
	cfg := run.Config()
	numSelected := cfg.numSelected(1)
	tournamentSize := cfg.tournamentSize()
	if tournamentSize > len(population) {
		tournamentSize = len(population)
	}
	selected := make([]*Individual, 0, numSelected)
	for i := 0; i < numSelected; i++ {
		perm := rng.Perm(len(population))[:tournamentSize]
		best := population[perm[0]]
		for _, idx := range perm[1:] {
			if population[idx].BetterThan(best) {
				best = population[idx]
			}
		}
		selected = append(selected, best)
	}
	return selected, nil
}

// spinWheel samples n individuals from pop according to the cumulative
// probability distribution psum.
func spinWheel(rng *rand.Rand, pop []*Individual, psum []float64, n int) []*Individual {
	selected := make([]*Individual, 0, n)
	for i := 0; i < n; i++ {
		cutoff := rng.Float64()
		lower, upper := 0, len(pop)-1
		for lower < upper {
			mid := (lower + upper) / 2
			if psum[mid] < cutoff {
				lower = mid + 1
			} else {
				upper = mid
			}
		}
		selected = append(selected, pop[lower])
	}
	return selected
}

// scalarFitness extracts the scalar fitness value of an individual, or
// errors if the fitness is unset or not scalar.
func scalarFitness(ind *Individual) (float64, error) {
	s, ok := ind.Fitness.(Scalar)
	if !ok {
		return 0, errors.WithFields(
			errors.New(errors.UnsetFitness, "selection requires scalar fitness"),
			errors.Fields{"fitness": ind.Fitness})
	}
	return float64(s), nil
}
