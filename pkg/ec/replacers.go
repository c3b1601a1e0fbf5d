package ec

import (
	"math"
	"math/rand"
	"sort"

	"github.com/aarongarrett/inspyred/pkg/errors"
)

// DefaultReplacement performs no replacement, keeping the existing
// population.
func DefaultReplacement(rng *rand.Rand, population, parents, offspring []*Individual, run *RunContext) ([]*Individual, error) {
	return population, nil
}

// TruncationReplacement keeps the best individuals from the pool of
// the current population and the offspring.
func TruncationReplacement(rng *rand.Rand, population, parents, offspring []*Individual, run *RunContext) ([]*Individual, error) {
	pool := make([]*Individual, 0, len(population)+len(offspring))
	pool = append(pool, population...)
	pool = append(pool, offspring...)
	sortBestToWorst(pool)
	return pool[:len(population)], nil
}

// SteadyStateReplacement overwrites the worst individuals with the
// offspring, leaving the rest of the population intact.
func SteadyStateReplacement(rng *rand.Rand, population, parents, offspring []*Individual, run *RunContext) ([]*Individual, error) {
	pop := copyPopulation(population)
	sortWorstToBest(pop)
	n := min(len(offspring), len(pop))
	copy(pop[:n], offspring[:n])
	return pop, nil
}

// GenerationalReplacement replaces the population with the offspring,
// preserving the best Config.NumElites individuals of the old
// population (weak elitism: elites compete with the offspring).
func GenerationalReplacement(rng *rand.Rand, population, parents, offspring []*Individual, run *RunContext) ([]*Individual, error) {
	numElites := run.Config().NumElites
	pop := copyPopulation(population)
	sortBestToWorst(pop)
	if numElites > len(pop) {
		numElites = len(pop)
	}
	pool := make([]*Individual, 0, len(offspring)+numElites)
	pool = append(pool, offspring...)
	pool = append(pool, pop[:numElites]...)
	sortBestToWorst(pool)
	if len(pool) > len(population) {
		pool = pool[:len(population)]
	}
	return pool, nil
}

// RandomReplacement overwrites randomly chosen non-elite individuals
// with the offspring, preserving the best Config.NumElites.
func RandomReplacement(rng *rand.Rand, population, parents, offspring []*Individual, run *RunContext) ([]*Individual, error) {
	numElites := run.Config().NumElites
	pop := copyPopulation(population)
	sortBestToWorst(pop)
	if numElites > len(pop) {
		numElites = len(pop)
	}
	numToReplace := min(len(offspring), len(pop)-numElites)
	indices := sampleInts(rng, numElites, len(pop), numToReplace)
	for i, idx := range indices {
		pop[idx] = offspring[i]
	}
	return pop, nil
}

// PlusReplacement selects survivors from the union of parents and
// offspring (the (mu + lambda) scheme).
func PlusReplacement(rng *rand.Rand, population, parents, offspring []*Individual, run *RunContext) ([]*Individual, error) {
	pool := make([]*Individual, 0, len(offspring)+len(parents))
	pool = append(pool, offspring...)
	pool = append(pool, parents...)
	sortBestToWorst(pool)
	if len(pool) > len(population) {
		pool = pool[:len(population)]
	}
	return pool, nil
}

// CommaReplacement selects survivors from the offspring alone (the
// (mu, lambda) scheme). The population shrinks if fewer offspring than
// population members exist.
func CommaReplacement(rng *rand.Rand, population, parents, offspring []*Individual, run *RunContext) ([]*Individual, error) {
	pool := copyPopulation(offspring)
	sortBestToWorst(pool)
	if len(pool) > len(population) {
		pool = pool[:len(population)]
	}
	return pool, nil
}

// CrowdingReplacer replaces, for each offspring, the most similar
// individual from a random sample of Config.CrowdingDistance population
// members, but only when the offspring is better. Similarity defaults
// to Euclidean distance over real-valued candidates.
type CrowdingReplacer struct {
	// Distance measures dissimilarity between two candidates. When nil,
	// Euclidean distance over []float64 candidates is used.
	Distance func(a, b Candidate) float64
}

func (r *CrowdingReplacer) Replace(rng *rand.Rand, population, parents, offspring []*Individual, run *RunContext) ([]*Individual, error) {
	distance := r.Distance
	if distance == nil {
		distance = euclideanDistance
	}
	sampleSize := run.Config().crowdingDistance()
	pop := copyPopulation(population)
	for _, o := range offspring {
		n := sampleSize
		if n > len(pop) {
			n = len(pop)
		}
		indices := sampleInts(rng, 0, len(pop), n)
		closest := indices[0]
		for _, idx := range indices[1:] {
			if distance(o.Candidate(), pop[idx].Candidate()) < distance(o.Candidate(), pop[closest].Candidate()) {
				closest = idx
			}
		}
		if o.BetterThan(pop[closest]) {
			pop = append(pop[:closest], pop[closest+1:]...)
			pop = append(pop, o)
		}
	}
	return pop, nil
}

func euclideanDistance(a, b Candidate) float64 {
	x, _ := a.([]float64)
	y, _ := b.([]float64)
	sum := 0.0
	for i := 0; i < len(x) && i < len(y); i++ {
		d := x[i] - y[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// AnnealingReplacer performs simulated-annealing acceptance: each
// offspring replaces its parent when no worse, or probabilistically
// when worse, with probability exp(-|delta| / T).
//
// The temperature comes from the replacer's own schedule when
// Temperature is positive (cooled by CoolingRate before each use);
// otherwise it is derived from the remaining evaluation budget, or
// failing that from the generation budget.
type AnnealingReplacer struct {
	Temperature float64
	CoolingRate float64
}

func (r *AnnealingReplacer) Replace(rng *rand.Rand, population, parents, offspring []*Individual, run *RunContext) ([]*Individual, error) {
	cfg := run.Config()
	var temp float64
	switch {
	case r.Temperature > 0:
		r.Temperature *= r.CoolingRate
		temp = r.Temperature
	case cfg.MaxEvaluations > 0:
		temp = float64(cfg.MaxEvaluations-run.NumEvaluations()) / float64(cfg.MaxEvaluations)
	case cfg.MaxGenerations > 0:
		temp = 1 - float64(cfg.MaxGenerations-run.NumGenerations())/float64(cfg.MaxGenerations)
	default:
		return nil, errors.New(errors.InvalidConfig,
			"annealing replacement requires a temperature schedule or an evaluation or generation budget")
	}

	survivors := make([]*Individual, 0, min(len(parents), len(offspring)))
	for i := 0; i < len(parents) && i < len(offspring); i++ {
		p, o := parents[i], offspring[i]
		if o.NoWorseThan(p) {
			survivors = append(survivors, o)
			continue
		}
		pf, err := scalarFitness(p)
		if err != nil {
			return nil, err
		}
		of, err := scalarFitness(o)
		if err != nil {
			return nil, err
		}
		if temp > 0 && rng.Float64() < math.Exp(-math.Abs(pf-of)/temp) {
			survivors = append(survivors, o)
		} else {
			survivors = append(survivors, p)
		}
	}
	return survivors, nil
}

// NSGAReplacement performs non-dominated sorting over the union of the
// current population and the offspring, admitting whole Pareto fronts
// until one no longer fits, then filling the remainder from that front
// in descending crowding-distance order. Duplicates of already-admitted
// individuals are skipped.
func NSGAReplacement(rng *rand.Rand, population, parents, offspring []*Individual, run *RunContext) ([]*Individual, error) {
	combined := make([]*Individual, 0, len(population)+len(offspring))
	combined = append(combined, population...)
	combined = append(combined, offspring...)

	survivors := make([]*Individual, 0, len(population))
	for _, front := range paretoFronts(combined) {
		if len(survivors) >= len(population) {
			break
		}
		if len(survivors)+len(front) <= len(population) {
			for _, idx := range front {
				if !containsIndividual(survivors, combined[idx]) {
					survivors = append(survivors, combined[idx])
				}
			}
			continue
		}

		distance := crowdingDistances(combined, front)
		ranked := make([]int, len(front))
		copy(ranked, front)
		sort.SliceStable(ranked, func(i, j int) bool {
			return distance[ranked[i]] > distance[ranked[j]]
		})
		// Duplicate skipping can leave the population short of its
		// target here, so later fronts are still consulted.
		for _, idx := range ranked {
			if len(survivors) >= len(population) {
				break
			}
			if !containsIndividual(survivors, combined[idx]) {
				survivors = append(survivors, combined[idx])
			}
		}
	}
	return survivors, nil
}

// paretoFronts partitions indices into combined by repeated extraction
// of the non-dominated subset.
func paretoFronts(combined []*Individual) [][]int {
	remaining := make([]int, len(combined))
	for i := range remaining {
		remaining[i] = i
	}
	var fronts [][]int
	for len(remaining) > 0 {
		var front, rest []int
		for _, p := range remaining {
			dominated := false
			for _, q := range remaining {
				if combined[p].WorseThan(combined[q]) {
					dominated = true
					break
				}
			}
			if dominated {
				rest = append(rest, p)
			} else {
				front = append(front, p)
			}
		}
		fronts = append(fronts, front)
		remaining = rest
	}
	return fronts
}

// crowdingDistances computes per-individual crowding distances within
// a front: for each objective the front is sorted by that objective's
// value, boundary individuals receive +Inf, and interior individuals
// accumulate the raw gap between their two neighbors.
func crowdingDistances(combined []*Individual, front []int) map[int]float64 {
	distance := make(map[int]float64, len(front))
	for _, idx := range front {
		distance[idx] = 0
	}
	if len(front) == 0 {
		return distance
	}
	numObjectives := len(objectiveValues(combined[front[0]].Fitness))
	sorted := make([]int, len(front))
	copy(sorted, front)
	for obj := 0; obj < numObjectives; obj++ {
		sort.SliceStable(sorted, func(i, j int) bool {
			return objectiveValues(combined[sorted[i]].Fitness)[obj] < objectiveValues(combined[sorted[j]].Fitness)[obj]
		})
		distance[sorted[0]] = math.Inf(1)
		distance[sorted[len(sorted)-1]] = math.Inf(1)
		for i := 1; i < len(sorted)-1; i++ {
			distance[sorted[i]] += objectiveValues(combined[sorted[i+1]].Fitness)[obj] -
				objectiveValues(combined[sorted[i-1]].Fitness)[obj]
		}
	}
	return distance
}

// objectiveValues views a fitness as a vector of objective values.
func objectiveValues(f Fitness) []float64 {
	switch v := f.(type) {
	case Vector:
		return v.Values()
	case Scalar:
		return []float64{float64(v)}
	default:
		return nil
	}
}

// PAESReplacer performs the (1+1) Pareto archived evolution strategy
// acceptance test between each parent and its offspring, updating the
// run's archive through its grid archiver as a side effect. Mutually
// non-dominated pairs are settled by grid-cell crowding: the candidate
// in the less crowded cell survives.
type PAESReplacer struct {
	Archiver *GridArchiver
}

func (r *PAESReplacer) Replace(rng *rand.Rand, population, parents, offspring []*Individual, run *RunContext) ([]*Individual, error) {
	archive := run.Archive()
	survivors := make([]*Individual, 0, min(len(parents), len(offspring)))
	for i := 0; i < len(parents) && i < len(offspring); i++ {
		p, o := parents[i], offspring[i]
		switch {
		case o.Equals(p) || containsIndividual(archive, o) || o.WorseThan(p):
			survivors = append(survivors, p)
		case o.BetterThan(p):
			next, err := r.Archiver.Archive(rng, []*Individual{o}, archive, run)
			if err != nil {
				return nil, err
			}
			archive = next
			survivors = append(survivors, o)
		default:
			next, err := r.Archiver.Archive(rng, []*Individual{o}, archive, run)
			if err != nil {
				return nil, err
			}
			archive = next
			if r.Archiver.cellDensity(o) <= r.Archiver.cellDensity(p) {
				survivors = append(survivors, o)
			} else {
				survivors = append(survivors, p)
			}
		}
	}
	run.setArchive(archive)
	return survivors, nil
}
