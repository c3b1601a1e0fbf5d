// Package ec provides a framework for creating evolutionary computations.
//
// An Engine sequences the operator pipeline (selection, variation,
// evaluation, replacement, migration, archival, observation) over a
// population of individuals until a terminator fires. Every stage is a
// replaceable strategy satisfying a narrow contract, so arbitrary
// combinations of the built-in and user-supplied operators compose.
package ec

import (
	"context"
	"math/rand"

	"github.com/google/uuid"

	"github.com/aarongarrett/inspyred/pkg/errors"
	"github.com/aarongarrett/inspyred/pkg/logging"
)

// Engine drives a basic evolutionary computation.
//
// The exported operator fields may be replaced before calling Evolve to
// assemble a custom algorithm. Variators run as a pipeline, terminators
// are OR-ed with short-circuit, and observers run in order.
type Engine struct {
	Selector    Selector
	Variators   []Variator
	Replacer    Replacer
	Migrator    Migrator
	Archiver    Archiver
	Observers   []Observer
	Terminators []Terminator

	rng    *rand.Rand
	runID  string
	logger *logging.Logger

	// Valid only during and after Evolve.
	config           *Config
	generator        Generator
	evaluator        Evaluator
	bounder          Bounder
	maximize         bool
	population       []*Individual
	archive          []*Individual
	numEvaluations   int
	numGenerations   int
	terminationCause string

	ctx context.Context

	// Preset schemes install a hook that fills in their default
	// configuration values before validation.
	ConfigDefaults func(*Config)
}

// New creates an engine with the do-nothing defaults: every individual
// is selected, candidates pass through variation unchanged, the
// population is returned by the replacer as-is, nothing migrates or is
// archived, and the default terminator ends the run at the first check.
func New(rng *rand.Rand) *Engine {
	return &Engine{
		Selector:    SelectorFunc(DefaultSelection),
		Replacer:    ReplacerFunc(DefaultReplacement),
		Migrator:    MigratorFunc(DefaultMigration),
		Archiver:    ArchiverFunc(DefaultArchiver),
		Terminators: []Terminator{DefaultTermination()},
		rng:         rng,
		runID:       uuid.NewString(),
	}
}

// Population returns a shallow copy of the current population.
func (e *Engine) Population() []*Individual { return copyPopulation(e.population) }

// Archive returns a shallow copy of the current archive.
func (e *Engine) Archive() []*Individual { return copyPopulation(e.archive) }

// NumEvaluations returns the number of fitness evaluations used so far.
func (e *Engine) NumEvaluations() int { return e.numEvaluations }

// NumGenerations returns the number of completed generations.
func (e *Engine) NumGenerations() int { return e.numGenerations }

// TerminationCause returns the name of the terminator that ended the
// run, or the empty string while the run is still in progress.
func (e *Engine) TerminationCause() string { return e.terminationCause }

// RunContext is the read-only handle operators receive on the engine
// driving the run. It exposes the fixed configuration, the bounder, the
// run counters, and attributed access to the evaluator for operators
// (such as migrators) that need to score individuals themselves.
type RunContext struct {
	engine *Engine
}

// Config returns the fixed parameters for this run.
func (rc *RunContext) Config() *Config { return rc.engine.config }

// Bounder returns the bounding function for this run.
func (rc *RunContext) Bounder() Bounder { return rc.engine.bounder }

// Maximize reports the fitness polarity of this run.
func (rc *RunContext) Maximize() bool { return rc.engine.maximize }

// NumEvaluations returns the evaluations used so far.
func (rc *RunContext) NumEvaluations() int { return rc.engine.numEvaluations }

// NumGenerations returns the completed generations so far.
func (rc *RunContext) NumGenerations() int { return rc.engine.numGenerations }

// PopulationSize returns the current population size.
func (rc *RunContext) PopulationSize() int { return len(rc.engine.population) }

// Population returns a shallow copy of the engine's population.
func (rc *RunContext) Population() []*Individual { return copyPopulation(rc.engine.population) }

// Archive returns a shallow copy of the engine's archive.
func (rc *RunContext) Archive() []*Individual { return copyPopulation(rc.engine.archive) }

// EvaluateCandidates scores candidates with the run's evaluator and
// attributes the evaluations to the run counter.
func (rc *RunContext) EvaluateCandidates(candidates []Candidate) ([]Fitness, error) {
	fits, err := rc.engine.evaluator.Evaluate(rc.engine.ctx, candidates, rc)
	if err != nil {
		return nil, errors.Wrap(err, errors.EvaluationFailed, "evaluation failed")
	}
	rc.engine.numEvaluations += len(fits)
	return fits, nil
}

// setArchive replaces the engine archive. Used by replacement schemes
// (PAES) that archive mid-replacement.
func (rc *RunContext) setArchive(archive []*Individual) { rc.engine.archive = archive }

// evolveOptions collects the optional Evolve arguments.
type evolveOptions struct {
	seeds    []Candidate
	maximize bool
	bounder  Bounder
}

// EvolveOption customizes a call to Evolve.
type EvolveOption func(*evolveOptions)

// WithSeeds includes the given candidates verbatim in the initial
// population. If more seeds are supplied than the population size, all
// seeds are kept and the population exceeds the configured size until
// the first replacement cycle.
func WithSeeds(seeds []Candidate) EvolveOption {
	return func(o *evolveOptions) { o.seeds = seeds }
}

// WithMaximize sets the fitness polarity (default true).
func WithMaximize(maximize bool) EvolveOption {
	return func(o *evolveOptions) { o.maximize = maximize }
}

// WithBounder sets the bounding function applied by the built-in
// numeric variators (default: no bounding).
func WithBounder(b Bounder) EvolveOption {
	return func(o *evolveOptions) { o.bounder = b }
}

// Evolve creates a population and runs it through evolutionary epochs
// until a terminator is satisfied. It returns the final population.
//
// An evaluator may decline to score a candidate by returning a nil
// fitness for it; such candidates are excluded with a warning rather
// than failing the run. Any error returned by an operator aborts the
// run and propagates to the caller unchanged apart from stage wrapping:
// an inconsistent mid-generation state cannot safely be resumed.
func (e *Engine) Evolve(ctx context.Context, generator Generator, evaluator Evaluator, cfg *Config, opts ...EvolveOption) ([]*Individual, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg = cfg.clone()
	if e.ConfigDefaults != nil {
		e.ConfigDefaults(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := evolveOptions{maximize: true, bounder: identityBounder{}}
	for _, opt := range opts {
		opt(&options)
	}

	e.config = cfg
	e.generator = generator
	e.evaluator = evaluator
	e.bounder = options.bounder
	e.maximize = options.maximize
	e.population = nil
	e.archive = nil
	e.numEvaluations = 0
	e.numGenerations = 0
	e.terminationCause = ""
	e.ctx = ctx
	e.logger = logging.GetLogger().WithFields(map[string]interface{}{"run_id": e.runID})

	run := &RunContext{engine: e}

	// Create the initial population: seeds first, then enough generated
	// candidates to reach the configured population size.
	numGenerated := max(cfg.popSize()-len(options.seeds), 0)
	initialCS := make([]Candidate, 0, cfg.popSize())
	initialCS = append(initialCS, options.seeds...)
	e.logger.Debug(ctx, "generating initial population")
	for i := 0; i < numGenerated; i++ {
		if err := errors.CheckContext(ctx, "evolve"); err != nil {
			return nil, err
		}
		cs, err := generator.Generate(e.rng, run)
		if err != nil {
			return nil, errors.Wrap(err, errors.GenerationFailed, "generator failed")
		}
		initialCS = append(initialCS, cs)
	}

	e.logger.Debug(ctx, "evaluating initial population")
	initialFit, err := evaluator.Evaluate(ctx, initialCS, run)
	if err != nil {
		return nil, errors.Wrap(err, errors.EvaluationFailed, "evaluation failed")
	}
	if len(initialFit) != len(initialCS) {
		return nil, errors.WithFields(
			errors.New(errors.EvaluationFailed, "evaluator returned wrong number of fitnesses"),
			errors.Fields{"want": len(initialCS), "got": len(initialFit)})
	}

	e.population = e.buildIndividuals(ctx, initialCS, initialFit)
	e.numEvaluations = len(initialFit)
	e.numGenerations = 0
	e.logger.Debug(ctx, "population size is now %d", len(e.population))

	e.logger.Debug(ctx, "archiving initial population")
	archive, err := e.Archiver.Archive(e.rng, copyPopulation(e.population), copyPopulation(e.archive), run)
	if err != nil {
		return nil, errors.Wrap(err, errors.ArchivalFailed, "archival failed")
	}
	e.archive = archive
	e.logger.Debug(ctx, "archive size is now %d", len(e.archive))

	for _, obs := range e.Observers {
		e.logger.Debug(ctx, "observation using %T at generation %d and evaluation %d", obs, e.numGenerations, e.numEvaluations)
		obs.Observe(copyPopulation(e.population), e.numGenerations, e.numEvaluations, run)
	}

	for !e.shouldTerminate(ctx, run) {
		if err := errors.CheckContext(ctx, "evolve"); err != nil {
			return nil, err
		}

		// Select individuals.
		e.logger.Debug(ctx, "selection using %T at generation %d and evaluation %d", e.Selector, e.numGenerations, e.numEvaluations)
		parents, err := e.Selector.Select(e.rng, copyPopulation(e.population), run)
		if err != nil {
			return nil, errors.Wrap(err, errors.SelectionFailed, "selection failed")
		}
		e.logger.Debug(ctx, "selected %d candidates", len(parents))

		offspringCS := make([]Candidate, len(parents))
		for i, p := range parents {
			offspringCS[i] = cloneCandidate(p.Candidate())
		}

		// Vary candidates, each stage feeding the next.
		for _, op := range e.Variators {
			e.logger.Debug(ctx, "variation using %T at generation %d and evaluation %d", op, e.numGenerations, e.numEvaluations)
			offspringCS, err = op.Vary(e.rng, offspringCS, run)
			if err != nil {
				return nil, errors.Wrap(err, errors.VariationFailed, "variation failed")
			}
		}
		e.logger.Debug(ctx, "created %d offspring", len(offspringCS))

		// Evaluate offspring.
		e.logger.Debug(ctx, "evaluation using %T at generation %d and evaluation %d", evaluator, e.numGenerations, e.numEvaluations)
		offspringFit, err := evaluator.Evaluate(ctx, offspringCS, run)
		if err != nil {
			return nil, errors.Wrap(err, errors.EvaluationFailed, "evaluation failed")
		}
		if len(offspringFit) != len(offspringCS) {
			return nil, errors.WithFields(
				errors.New(errors.EvaluationFailed, "evaluator returned wrong number of fitnesses"),
				errors.Fields{"want": len(offspringCS), "got": len(offspringFit)})
		}
		offspring := e.buildIndividuals(ctx, offspringCS, offspringFit)
		e.numEvaluations += len(offspringFit)

		// Replace individuals.
		e.logger.Debug(ctx, "replacement using %T at generation %d and evaluation %d", e.Replacer, e.numGenerations, e.numEvaluations)
		e.population, err = e.Replacer.Replace(e.rng, e.population, parents, offspring, run)
		if err != nil {
			return nil, errors.Wrap(err, errors.ReplacementFailed, "replacement failed")
		}
		e.logger.Debug(ctx, "population size is now %d", len(e.population))

		// Migrate individuals.
		e.logger.Debug(ctx, "migration using %T at generation %d and evaluation %d", e.Migrator, e.numGenerations, e.numEvaluations)
		e.population, err = e.Migrator.Migrate(e.rng, e.population, run)
		if err != nil {
			return nil, errors.Wrap(err, errors.MigrationFailed, "migration failed")
		}

		// Archive individuals.
		e.logger.Debug(ctx, "archival using %T at generation %d and evaluation %d", e.Archiver, e.numGenerations, e.numEvaluations)
		e.archive, err = e.Archiver.Archive(e.rng, copyPopulation(e.population), e.archive, run)
		if err != nil {
			return nil, errors.Wrap(err, errors.ArchivalFailed, "archival failed")
		}
		e.logger.Debug(ctx, "archive size is now %d", len(e.archive))

		e.numGenerations++
		for _, obs := range e.Observers {
			e.logger.Debug(ctx, "observation using %T at generation %d and evaluation %d", obs, e.numGenerations, e.numEvaluations)
			obs.Observe(copyPopulation(e.population), e.numGenerations, e.numEvaluations, run)
		}
	}

	return e.population, nil
}

// buildIndividuals pairs candidates with their fitnesses, excluding any
// candidate whose fitness came back nil.
func (e *Engine) buildIndividuals(ctx context.Context, candidates []Candidate, fitnesses []Fitness) []*Individual {
	individuals := make([]*Individual, 0, len(candidates))
	for i, cs := range candidates {
		if fitnesses[i] == nil {
			e.logger.Warn(ctx, "excluding candidate %v because fitness received as nil", cs)
			continue
		}
		ind := NewIndividual(cs, e.maximize)
		ind.Fitness = fitnesses[i]
		individuals = append(individuals, ind)
	}
	return individuals
}

func (e *Engine) shouldTerminate(ctx context.Context, run *RunContext) bool {
	pop := copyPopulation(e.population)
	for _, t := range e.Terminators {
		e.logger.Debug(ctx, "termination test using %s at generation %d and evaluation %d", t.Name(), e.numGenerations, e.numEvaluations)
		if t.Terminate(pop, e.numGenerations, e.numEvaluations, run) {
			e.terminationCause = t.Name()
			e.logger.Debug(ctx, "termination from %s at generation %d and evaluation %d", e.terminationCause, e.numGenerations, e.numEvaluations)
			return true
		}
	}
	return false
}

func copyPopulation(pop []*Individual) []*Individual {
	out := make([]*Individual, len(pop))
	copy(out, pop)
	return out
}
