package ec

import (
	"math"
	"math/rand"
	"reflect"
)

// DefaultArchiver returns the existing archive unchanged.
func DefaultArchiver(rng *rand.Rand, population, archive []*Individual, run *RunContext) ([]*Individual, error) {
	return archive, nil
}

// PopulationArchiver replaces the archive with the current population.
func PopulationArchiver(rng *rand.Rand, population, archive []*Individual, run *RunContext) ([]*Individual, error) {
	return copyPopulation(population), nil
}

// BestArchiver keeps only the best individuals seen so far, removing
// any archive member a new individual beats. With Pareto fitness the
// result is a Pareto archive: mutually non-dominated individuals
// coexist. Individuals whose candidate already appears in the archive
// are skipped.
func BestArchiver(rng *rand.Rand, population, archive []*Individual, run *RunContext) ([]*Individual, error) {
	newArchive := copyPopulation(archive)
	for _, ind := range population {
		if len(newArchive) == 0 {
			newArchive = append(newArchive, ind)
			continue
		}
		shouldAdd := true
		var toRemove []*Individual
		for _, a := range newArchive {
			if reflect.DeepEqual(ind.Candidate(), a.Candidate()) {
				shouldAdd = false
				break
			}
			if ind.WorseThan(a) {
				shouldAdd = false
			} else if ind.BetterThan(a) {
				toRemove = append(toRemove, a)
			}
		}
		if len(toRemove) > 0 {
			kept := make([]*Individual, 0, len(newArchive))
			for _, a := range newArchive {
				if !containsIndividual(toRemove, a) {
					kept = append(kept, a)
				}
			}
			newArchive = kept
		}
		if shouldAdd {
			newArchive = append(newArchive, ind)
		}
	}
	return newArchive, nil
}

// GridArchiver keeps a bounded Pareto archive using an adaptive grid
// over objective space, in the manner of the Pareto archived evolution
// strategy. When the archive is full, a new non-dominated individual
// evicts a member of the most crowded grid cell.
//
// The archiver carries grid state between calls, so one instance
// belongs to one run at a time; call Reset before reuse.
type GridArchiver struct {
	grid           []int
	globalSmallest []float64
	globalLargest  []float64
	divisions      int
}

func NewGridArchiver() *GridArchiver { return &GridArchiver{} }

// Reset discards all grid state so the archiver can serve a fresh run.
func (g *GridArchiver) Reset() {
	g.grid = nil
	g.globalSmallest = nil
	g.globalLargest = nil
	g.divisions = 0
}

func (g *GridArchiver) Archive(rng *rand.Rand, population, archive []*Individual, run *RunContext) ([]*Individual, error) {
	if len(population) == 0 {
		return archive, nil
	}
	cfg := run.Config()
	divisions := cfg.numGridDivisions()
	maxSize := cfg.MaxArchiveSize
	if maxSize <= 0 {
		maxSize = len(population)
	}
	g.divisions = divisions
	if g.grid == nil {
		numObjectives := len(objectiveValues(population[0].Fitness))
		for _, p := range population[1:] {
			if n := len(objectiveValues(p.Fitness)); n < numObjectives {
				numObjectives = n
			}
		}
		g.grid = make([]int, 1<<(numObjectives*divisions))
		g.globalSmallest = make([]float64, numObjectives)
		g.globalLargest = make([]float64, numObjectives)
	}

	newArchive := copyPopulation(archive)
	for _, ind := range population {
		g.updateGrid(ind, newArchive, divisions)

		shouldAdd := true
		for _, a := range newArchive {
			if ind.Equals(a) || a.BetterThan(ind) {
				shouldAdd = false
			}
		}
		if !shouldAdd {
			continue
		}
		if len(newArchive) == 0 {
			newArchive = append(newArchive, ind)
			continue
		}

		// Replace the first dominated archive member in place and drop
		// any further dominated members.
		joined := false
		var toRemove []*Individual
		for i, a := range newArchive {
			if !ind.BetterThan(a) {
				continue
			}
			if !joined {
				newArchive[i] = ind
				joined = true
			} else if !containsIndividual(toRemove, a) {
				toRemove = append(toRemove, a)
			}
		}
		if len(toRemove) > 0 {
			kept := make([]*Individual, 0, len(newArchive))
			for _, a := range newArchive {
				if !containsIndividual(toRemove, a) {
					kept = append(kept, a)
				}
			}
			newArchive = kept
		}
		if joined {
			continue
		}

		// The individual is mutually non-dominated with the whole
		// archive.
		if len(newArchive) < maxSize {
			newArchive = append(newArchive, ind)
			continue
		}
		ind.gridLocation = g.location(objectiveValues(ind.Fitness), divisions)
		most := -1
		if ind.gridLocation >= 0 {
			most = g.density(ind.gridLocation)
		}
		replaced, found := 0, false
		for i, a := range newArchive {
			if d := g.density(a.gridLocation); d > most {
				most = d
				replaced = i
				found = true
			}
		}
		if found {
			newArchive[replaced] = ind
		}
	}
	return newArchive, nil
}

// updateGrid rebuilds the grid bounds and cell counts from the archive
// plus the individual under consideration. Bounds get 20% padding of
// each extreme's magnitude on both sides.
func (g *GridArchiver) updateGrid(ind *Individual, archive []*Individual, divisions int) {
	fit := objectiveValues(ind.Fitness)
	numObjectives := min(len(fit), len(g.globalSmallest))
	for _, a := range archive {
		if n := len(objectiveValues(a.Fitness)); n < numObjectives {
			numObjectives = n
		}
	}
	for o := 0; o < numObjectives; o++ {
		smallest, largest := fit[o], fit[o]
		for _, a := range archive {
			if v := objectiveValues(a.Fitness)[o]; v < smallest {
				smallest = v
			} else if v > largest {
				largest = v
			}
		}
		g.globalSmallest[o] = smallest - math.Abs(0.2*smallest)
		g.globalLargest[o] = largest + math.Abs(0.2*largest)
	}
	for i := range g.grid {
		g.grid[i] = 0
	}
	for _, a := range archive {
		a.gridLocation = g.location(objectiveValues(a.Fitness), divisions)
		g.bump(a.gridLocation)
	}
	ind.gridLocation = g.location(fit, divisions)
	g.bump(ind.gridLocation)
}

// location maps objective values to a grid cell index by repeated
// per-objective bisection, or -1 when the values fall outside the
// current bounds.
func (g *GridArchiver) location(fit []float64, divisions int) int {
	m := min(len(fit), len(g.globalSmallest))
	localSmallest := make([]float64, m)
	copy(localSmallest, g.globalSmallest[:m])
	for i := 0; i < m; i++ {
		if fit[i] < localSmallest[i] || fit[i] > localSmallest[i]+g.globalLargest[i]-g.globalSmallest[i] {
			return -1
		}
	}
	loc := 0
	inc := make([]int, m)
	width := make([]float64, m)
	n := 1
	for i := 0; i < m; i++ {
		inc[i] = n
		n *= 2
		width[i] = g.globalLargest[i] - g.globalSmallest[i]
	}
	for d := 0; d < divisions; d++ {
		for i := 0; i < m; i++ {
			if fit[i] < width[i]/2.0+localSmallest[i] {
				loc += inc[i]
			} else {
				localSmallest[i] += width[i] / 2.0
			}
		}
		for i := 0; i < m; i++ {
			inc[i] *= m * 2
			width[i] /= 2.0
		}
	}
	return loc
}

// Out-of-bounds individuals (location -1) share the final grid cell.
func (g *GridArchiver) cellIndex(loc int) int {
	if len(g.grid) == 0 {
		return -1
	}
	if loc < 0 {
		loc += len(g.grid)
	}
	if loc < 0 || loc >= len(g.grid) {
		return -1
	}
	return loc
}

func (g *GridArchiver) bump(loc int) {
	if i := g.cellIndex(loc); i >= 0 {
		g.grid[i]++
	}
}

func (g *GridArchiver) density(loc int) int {
	if i := g.cellIndex(loc); i >= 0 {
		return g.grid[i]
	}
	return 0
}

// cellDensity reports the population of the grid cell the individual
// occupies.
func (g *GridArchiver) cellDensity(ind *Individual) int {
	divisions := g.divisions
	if divisions == 0 {
		divisions = 1
	}
	ind.gridLocation = g.location(objectiveValues(ind.Fitness), divisions)
	return g.density(ind.gridLocation)
}
