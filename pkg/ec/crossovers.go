package ec

import (
	"math"
	"math/rand"
	"reflect"
	"sort"

	"github.com/aarongarrett/inspyred/pkg/errors"
)

// CrossoverFunc recombines a pair of parent candidates into offspring.
type CrossoverFunc func(rng *rand.Rand, mom, dad Candidate, run *RunContext) ([]Candidate, error)

// Crossover lifts a pairwise recombination into a Variator. Candidates
// are paired in order; with an odd count the final unpaired candidate
// is dropped.
func Crossover(cross CrossoverFunc) Variator {
	return VariatorFunc(func(rng *rand.Rand, candidates []Candidate, run *RunContext) ([]Candidate, error) {
		n := len(candidates)
		if n%2 == 1 {
			n--
		}
		children := make([]Candidate, 0, n)
		for i := 0; i+1 < len(candidates); i += 2 {
			offspring, err := cross(rng, candidates[i], candidates[i+1], run)
			if err != nil {
				return nil, err
			}
			children = append(children, offspring...)
		}
		return children, nil
	})
}

// NPointCrossover recombines real-valued parents at
// Config.NumCrossoverPoints cut points with probability
// Config.CrossoverRate, otherwise passing both through unchanged.
func NPointCrossover(rng *rand.Rand, mom, dad Candidate, run *RunContext) ([]Candidate, error) {
	m, err := floatsCandidate(mom)
	if err != nil {
		return nil, err
	}
	d, err := floatsCandidate(dad)
	if err != nil {
		return nil, err
	}
	cfg := run.Config()
	if rng.Float64() >= cfg.crossoverRate() {
		return []Candidate{cloneFloats(m), cloneFloats(d)}, nil
	}
	numCuts := cfg.numCrossoverPoints()
	if numCuts > len(m)-1 {
		numCuts = len(m) - 1
	}
	cuts := sampleInts(rng, 1, len(m), numCuts)
	sort.Ints(cuts)

	bro := cloneFloats(d)
	sis := cloneFloats(m)
	inCut := make(map[int]bool, len(cuts))
	for _, c := range cuts {
		inCut[c] = true
	}
	normal := true
	for i := 0; i < len(m) && i < len(d); i++ {
		if inCut[i] {
			normal = !normal
		}
		if !normal {
			bro[i] = m[i]
			sis[i] = d[i]
		}
	}
	return []Candidate{bro, sis}, nil
}

// UniformCrossover swaps each gene between real-valued parents with
// probability Config.UXBias, subject to Config.CrossoverRate.
func UniformCrossover(rng *rand.Rand, mom, dad Candidate, run *RunContext) ([]Candidate, error) {
	m, err := floatsCandidate(mom)
	if err != nil {
		return nil, err
	}
	d, err := floatsCandidate(dad)
	if err != nil {
		return nil, err
	}
	cfg := run.Config()
	if rng.Float64() >= cfg.crossoverRate() {
		return []Candidate{cloneFloats(m), cloneFloats(d)}, nil
	}
	bias := cfg.uxBias()
	bro := cloneFloats(d)
	sis := cloneFloats(m)
	for i := 0; i < len(m) && i < len(d); i++ {
		if rng.Float64() < bias {
			bro[i] = m[i]
			sis[i] = d[i]
		}
	}
	return []Candidate{bro, sis}, nil
}

// ArithmeticCrossover blends each pair of genes linearly with weight
// Config.AXAlpha, subject to Config.CrossoverRate. Offspring are
// bounded.
func ArithmeticCrossover(rng *rand.Rand, mom, dad Candidate, run *RunContext) ([]Candidate, error) {
	m, err := floatsCandidate(mom)
	if err != nil {
		return nil, err
	}
	d, err := floatsCandidate(dad)
	if err != nil {
		return nil, err
	}
	cfg := run.Config()
	if rng.Float64() >= cfg.crossoverRate() {
		return []Candidate{cloneFloats(m), cloneFloats(d)}, nil
	}
	alpha := cfg.axAlpha()
	bro := cloneFloats(d)
	sis := cloneFloats(m)
	for i := 0; i < len(m) && i < len(d); i++ {
		bro[i] = alpha*m[i] + (1-alpha)*d[i]
		sis[i] = alpha*d[i] + (1-alpha)*m[i]
	}
	return []Candidate{run.Bounder().Bound(bro), run.Bounder().Bound(sis)}, nil
}

// BlendCrossover samples each offspring gene uniformly from the range
// spanned by the parents, widened on each side by Config.BLXAlpha times
// the span, subject to Config.CrossoverRate. Offspring are bounded.
func BlendCrossover(rng *rand.Rand, mom, dad Candidate, run *RunContext) ([]Candidate, error) {
	m, err := floatsCandidate(mom)
	if err != nil {
		return nil, err
	}
	d, err := floatsCandidate(dad)
	if err != nil {
		return nil, err
	}
	cfg := run.Config()
	if rng.Float64() >= cfg.crossoverRate() {
		return []Candidate{cloneFloats(m), cloneFloats(d)}, nil
	}
	alpha := cfg.blxAlpha()
	bro := cloneFloats(d)
	sis := cloneFloats(m)
	for i := 0; i < len(m) && i < len(d); i++ {
		smallest, largest := m[i], d[i]
		if largest < smallest {
			smallest, largest = largest, smallest
		}
		delta := alpha * (largest - smallest)
		bro[i] = smallest - delta + rng.Float64()*(largest-smallest+2*delta)
		sis[i] = smallest - delta + rng.Float64()*(largest-smallest+2*delta)
	}
	return []Candidate{run.Bounder().Bound(bro), run.Bounder().Bound(sis)}, nil
}

// SimulatedBinaryCrossover recombines real-valued parents with the SBX
// operator of Deb et al. Config.SBXDistributionIdx controls the spread:
// small values allow offspring far from the parents, large values keep
// them close. It needs the per-gene bounds, so the run's bounder must be
// a ClampBounder.
func SimulatedBinaryCrossover(rng *rand.Rand, mom, dad Candidate, run *RunContext) ([]Candidate, error) {
	m, err := floatsCandidate(mom)
	if err != nil {
		return nil, err
	}
	d, err := floatsCandidate(dad)
	if err != nil {
		return nil, err
	}
	cfg := run.Config()
	if rng.Float64() >= cfg.crossoverRate() {
		return []Candidate{cloneFloats(m), cloneFloats(d)}, nil
	}
	bounder, ok := run.Bounder().(*ClampBounder)
	if !ok || len(bounder.Lower) == 0 || len(bounder.Upper) == 0 {
		return nil, errors.New(errors.InvalidConfig,
			"simulated binary crossover requires a clamping bounder with bounds")
	}
	di := cfg.sbxDistributionIndex()
	bro := cloneFloats(d)
	sis := cloneFloats(m)
	for i := 0; i < len(m) && i < len(d); i++ {
		lo, hi := m[i], d[i]
		if hi < lo {
			lo, hi = hi, lo
		}
		if hi == lo {
			continue
		}
		lb := bounder.boundAt(i, bounder.Lower)
		ub := bounder.boundAt(i, bounder.Upper)
		beta := 1.0 + 2.0*math.Min(lo-lb, ub-hi)/(hi-lo)
		alpha := 2.0 - 1.0/math.Pow(beta, di+1)
		u := rng.Float64()
		var betaQ float64
		if u <= 1.0/alpha {
			betaQ = math.Pow(u*alpha, 1.0/(di+1))
		} else {
			betaQ = math.Pow(1.0/(2.0-u*alpha), 1.0/(di+1))
		}
		broVal := 0.5 * ((lo + hi) - betaQ*(hi-lo))
		sisVal := 0.5 * ((lo + hi) + betaQ*(hi-lo))
		broVal = math.Max(math.Min(broVal, ub), lb)
		sisVal = math.Max(math.Min(sisVal, ub), lb)
		if rng.Float64() > 0.5 {
			broVal, sisVal = sisVal, broVal
		}
		bro[i] = broVal
		sis[i] = sisVal
	}
	return []Candidate{bro, sis}, nil
}

// HeuristicCrossover recombines real-valued parents by stepping each
// offspring gene a random distance from the worse parent toward the
// better one. It is a full Variator (not a pairwise crossover) because
// it needs fitness information, which it finds by matching candidates
// back to individuals in the current population.
func HeuristicCrossover(rng *rand.Rand, candidates []Candidate, run *RunContext) ([]Candidate, error) {
	rate := run.Config().crossoverRate()
	population := run.Population()
	lookup := func(c Candidate) *Individual {
		for _, ind := range population {
			if reflect.DeepEqual(ind.Candidate(), c) {
				return ind
			}
		}
		return nil
	}
	children := make([]Candidate, 0, len(candidates))
	for i := 0; i+1 < len(candidates); i += 2 {
		mom, dad := candidates[i], candidates[i+1]
		if rng.Float64() >= rate {
			children = append(children, mom, dad)
			continue
		}
		m, err := floatsCandidate(mom)
		if err != nil {
			return nil, err
		}
		d, err := floatsCandidate(dad)
		if err != nil {
			return nil, err
		}
		momInd, dadInd := lookup(mom), lookup(dad)
		if momInd == nil || dadInd == nil {
			return nil, errors.New(errors.VariationFailed,
				"heuristic crossover requires candidates drawn from the current population")
		}
		momIsBetter := momInd.BetterThan(dadInd)
		bro := cloneFloats(d)
		sis := cloneFloats(m)
		for j := 0; j < len(m) && j < len(d); j++ {
			negpos := -1.0
			val := m[j]
			if momIsBetter {
				negpos = 1.0
				val = d[j]
			}
			bro[j] = val + rng.Float64()*negpos*(m[j]-d[j])
			sis[j] = val + rng.Float64()*negpos*(m[j]-d[j])
		}
		children = append(children,
			run.Bounder().Bound(bro), run.Bounder().Bound(sis))
	}
	return children, nil
}

// PartiallyMatchedCrossover recombines permutation parents by swapping
// a random segment and repairing duplicates through the matched
// positions, subject to Config.CrossoverRate. Candidates must be []int
// permutations.
func PartiallyMatchedCrossover(rng *rand.Rand, mom, dad Candidate, run *RunContext) ([]Candidate, error) {
	m, err := intsCandidate(mom)
	if err != nil {
		return nil, err
	}
	d, err := intsCandidate(dad)
	if err != nil {
		return nil, err
	}
	if rng.Float64() >= run.Config().crossoverRate() {
		return []Candidate{cloneInts(m), cloneInts(d)}, nil
	}
	size := len(m)
	points := sampleInts(rng, 0, size, 2)
	x, y := points[0], points[1]
	if y < x {
		x, y = y, x
	}
	bro := cloneInts(d)
	copy(bro[x:y+1], m[x:y+1])
	sis := cloneInts(m)
	copy(sis[x:y+1], d[x:y+1])
	repair := func(parent, child []int) {
		segment := make(map[int]bool, y-x+1)
		for i := x; i <= y; i++ {
			segment[child[i]] = true
		}
		for i := x; i <= y; i++ {
			if segment[parent[i]] {
				continue
			}
			spot := i
			for x <= spot && spot <= y {
				spot = indexOf(parent, child[spot])
			}
			child[spot] = parent[i]
		}
	}
	repair(d, bro)
	repair(m, sis)
	return []Candidate{bro, sis}, nil
}

func indexOf(s []int, v int) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}

// sampleInts draws k distinct integers from [lo, hi).
func sampleInts(rng *rand.Rand, lo, hi, k int) []int {
	perm := rng.Perm(hi - lo)
	out := make([]int, k)
	for i := 0; i < k; i++ {
		out[i] = perm[i] + lo
	}
	return out
}

func cloneFloats(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	return out
}

func cloneInts(v []int) []int {
	out := make([]int, len(v))
	copy(out, v)
	return out
}

// floatsCandidate asserts that a candidate is a real-valued vector.
func floatsCandidate(c Candidate) ([]float64, error) {
	v, ok := c.([]float64)
	if !ok {
		return nil, errors.WithFields(
			errors.New(errors.InvalidCandidate, "candidate is not a []float64"),
			errors.Fields{"candidate": c})
	}
	return v, nil
}

// intsCandidate asserts that a candidate is an integer vector.
func intsCandidate(c Candidate) ([]int, error) {
	v, ok := c.([]int)
	if !ok {
		return nil, errors.WithFields(
			errors.New(errors.InvalidCandidate, "candidate is not a []int"),
			errors.Fields{"candidate": c})
	}
	return v, nil
}
