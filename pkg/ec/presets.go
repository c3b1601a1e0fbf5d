package ec

import (
	"context"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat"

	"github.com/aarongarrett/inspyred/pkg/errors"
)

// GA is a canonical genetic algorithm: rank selection, n-point
// crossover followed by bit-flip mutation, and generational
// replacement with optional weak elitism. The number of selected
// individuals defaults to the population size.
type GA struct {
	*Engine
}

func NewGA(rng *rand.Rand) *GA {
	e := New(rng)
	e.Selector = SelectorFunc(RankSelection)
	e.Variators = []Variator{Crossover(NPointCrossover), Mutator(BitFlipMutation)}
	e.Replacer = ReplacerFunc(GenerationalReplacement)
	e.ConfigDefaults = func(cfg *Config) {
		if cfg.NumSelected == 0 {
			cfg.NumSelected = cfg.popSize()
		}
	}
	return &GA{Engine: e}
}

// ES is a canonical evolution strategy: every individual reproduces,
// mutation is self-adaptive through per-gene strategy parameters
// evolved alongside the values, and survivors come from the union of
// parents and offspring (plus replacement).
type ES struct {
	*Engine
}

func NewES(rng *rand.Rand) *ES {
	e := New(rng)
	e.Variators = []Variator{VariatorFunc(strategyMutation)}
	e.Replacer = ReplacerFunc(PlusReplacement)
	return &ES{Engine: e}
}

// Evolve wraps the generator with Strategize and the evaluator with
// StripStrategies, so both may be written for plain value vectors.
func (es *ES) Evolve(ctx context.Context, generator Generator, evaluator Evaluator, cfg *Config, opts ...EvolveOption) ([]*Individual, error) {
	return es.Engine.Evolve(ctx, Strategize(generator), StripStrategies(evaluator), cfg, opts...)
}

// strategyMutation performs self-adaptive Gaussian mutation: each
// strategy parameter is scaled log-normally using Config.Tau and
// Config.TauPrime (defaulting to the standard 1/sqrt(2*sqrt(n)) and
// 1/sqrt(2n) learning rates), floored at Config.Epsilon, and then each
// value is perturbed by noise of that magnitude.
func strategyMutation(rng *rand.Rand, candidates []Candidate, run *RunContext) ([]Candidate, error) {
	cfg := run.Config()
	mutants := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		sc, ok := c.(StrategyCandidate)
		if !ok {
			return nil, errors.New(errors.InvalidCandidate,
				"evolution strategy variation requires strategy candidates")
		}
		n := len(sc.Values)
		tau := cfg.Tau
		if tau == 0 {
			tau = 1.0 / math.Sqrt(2.0*math.Sqrt(float64(n)))
		}
		tauPrime := cfg.TauPrime
		if tauPrime == 0 {
			tauPrime = 1.0 / math.Sqrt(2.0*float64(n))
		}
		epsilon := cfg.epsilon()

		values := cloneFloats(sc.Values)
		strategies := cloneFloats(sc.Strategies)
		for i, s := range strategies {
			strategies[i] = s * math.Exp(tauPrime*rng.NormFloat64()+tau*rng.NormFloat64())
			if strategies[i] < epsilon {
				strategies[i] = epsilon
			}
		}
		for i := range values {
			values[i] += rng.NormFloat64() * strategies[i]
		}
		if bounded, ok := run.Bounder().Bound(values).([]float64); ok {
			values = bounded
		}
		mutants = append(mutants, StrategyCandidate{Values: values, Strategies: strategies})
	}
	return mutants, nil
}

// EDA is a canonical estimation-of-distribution algorithm: the best
// half of the population is kept by truncation selection, a separable
// Gaussian model is fit to it, and Config.NumOffspring samples from
// the model form the next generation.
type EDA struct {
	*Engine
}

func NewEDA(rng *rand.Rand) *EDA {
	e := New(rng)
	e.Selector = SelectorFunc(TruncationSelection)
	e.Variators = []Variator{VariatorFunc(gaussianResampling)}
	e.Replacer = ReplacerFunc(GenerationalReplacement)
	e.ConfigDefaults = func(cfg *Config) {
		if cfg.NumSelected == 0 {
			cfg.NumSelected = cfg.popSize() / 2
		}
		if cfg.NumOffspring == 0 {
			cfg.NumOffspring = cfg.popSize()
		}
	}
	return &EDA{Engine: e}
}

// gaussianResampling fits an independent Gaussian to each gene of the
// selected candidates and draws Config.NumOffspring fresh candidates
// from the model.
func gaussianResampling(rng *rand.Rand, candidates []Candidate, run *RunContext) ([]Candidate, error) {
	if len(candidates) == 0 {
		return nil, nil
	}
	numOffspring := run.Config().NumOffspring
	if numOffspring <= 0 {
		numOffspring = 1
	}
	genes := make([][]float64, 0, len(candidates))
	numGenes := math.MaxInt
	for _, c := range candidates {
		v, err := floatsCandidate(c)
		if err != nil {
			return nil, err
		}
		genes = append(genes, v)
		if len(v) < numGenes {
			numGenes = len(v)
		}
	}
	mean := make([]float64, numGenes)
	stdev := make([]float64, numGenes)
	column := make([]float64, len(genes))
	for g := 0; g < numGenes; g++ {
		for i, v := range genes {
			column[i] = v[g]
		}
		mean[g], stdev[g] = stat.MeanStdDev(column, nil)
		if math.IsNaN(stdev[g]) {
			stdev[g] = 0
		}
	}
	offspring := make([]Candidate, 0, numOffspring)
	for i := 0; i < numOffspring; i++ {
		child := make([]float64, numGenes)
		for g := range child {
			child[g] = mean[g] + rng.NormFloat64()*stdev[g]
		}
		offspring = append(offspring, run.Bounder().Bound(child))
	}
	return offspring, nil
}

// DEA is a differential evolution algorithm: tournament selection,
// heuristic crossover toward the better parent followed by Gaussian
// mutation, and steady-state replacement of the worst individuals.
type DEA struct {
	*Engine
}

func NewDEA(rng *rand.Rand) *DEA {
	e := New(rng)
	e.Selector = SelectorFunc(TournamentSelection)
	e.Variators = []Variator{VariatorFunc(HeuristicCrossover), Mutator(GaussianMutation)}
	e.Replacer = ReplacerFunc(SteadyStateReplacement)
	e.ConfigDefaults = func(cfg *Config) {
		if cfg.NumSelected == 0 {
			cfg.NumSelected = 2
		}
	}
	return &DEA{Engine: e}
}

// SA is simulated annealing expressed as an evolutionary computation
// with a population of one: the sole individual is mutated and the
// annealing replacer decides probabilistically whether the mutant
// survives. The population size is forced to 1 regardless of the
// configured value.
type SA struct {
	*Engine
}

func NewSA(rng *rand.Rand) *SA {
	e := New(rng)
	e.Variators = []Variator{Mutator(GaussianMutation)}
	e.Replacer = &AnnealingReplacer{}
	e.ConfigDefaults = func(cfg *Config) {
		cfg.PopSize = 1
	}
	return &SA{Engine: e}
}
