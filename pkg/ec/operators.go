package ec

import (
	"context"
	"math/rand"
)

// The engine is assembled from one strategy per role. Each strategy is a
// pure transformation over individuals or candidates plus the typed
// configuration; roles that naturally compose (variators, terminators,
// observers) are held as ordered lists and composed by the engine:
// pipeline composition for variators, short-circuit OR for terminators,
// sequential invocation for observers.
//
// Strategies receive shallow copies of the population, so sorting inside
// a selector or observer never corrupts the engine's population order.

// Generator creates a new candidate solution. Generators are
// problem-specific and supplied by the user.
type Generator interface {
	Generate(rng *rand.Rand, run *RunContext) (Candidate, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(rng *rand.Rand, run *RunContext) (Candidate, error)

func (f GeneratorFunc) Generate(rng *rand.Rand, run *RunContext) (Candidate, error) {
	return f(rng, run)
}

// Evaluator assigns a fitness to every candidate in a batch. The result
// must have the same length and order as the input; a nil entry marks
// the corresponding candidate as unscorable, and the engine excludes it
// with a warning rather than failing the run. The whole batch is handed
// over at once so implementations are free to fan the work out across
// goroutines or processes and fan the results back in order.
type Evaluator interface {
	Evaluate(ctx context.Context, candidates []Candidate, run *RunContext) ([]Fitness, error)
}

// EvaluatorFunc adapts a function to the Evaluator interface.
type EvaluatorFunc func(ctx context.Context, candidates []Candidate, run *RunContext) ([]Fitness, error)

func (f EvaluatorFunc) Evaluate(ctx context.Context, candidates []Candidate, run *RunContext) ([]Fitness, error) {
	return f(ctx, candidates, run)
}

// Selector chooses the parents for one generation.
type Selector interface {
	Select(rng *rand.Rand, population []*Individual, run *RunContext) ([]*Individual, error)
}

// SelectorFunc adapts a function to the Selector interface.
type SelectorFunc func(rng *rand.Rand, population []*Individual, run *RunContext) ([]*Individual, error)

func (f SelectorFunc) Select(rng *rand.Rand, population []*Individual, run *RunContext) ([]*Individual, error) {
	return f(rng, population, run)
}

// Variator transforms a list of candidates into a new list, which need
// not have the same length. Variators run in pipeline order: the output
// of each stage is the input of the next, verbatim.
type Variator interface {
	Vary(rng *rand.Rand, candidates []Candidate, run *RunContext) ([]Candidate, error)
}

// VariatorFunc adapts a function to the Variator interface.
type VariatorFunc func(rng *rand.Rand, candidates []Candidate, run *RunContext) ([]Candidate, error)

func (f VariatorFunc) Vary(rng *rand.Rand, candidates []Candidate, run *RunContext) ([]Candidate, error) {
	return f(rng, candidates, run)
}

// Replacer determines the survivors for the next generation. The
// replacer alone decides the size and composition of the population it
// returns; the engine does not second-guess it.
type Replacer interface {
	Replace(rng *rand.Rand, population, parents, offspring []*Individual, run *RunContext) ([]*Individual, error)
}

// ReplacerFunc adapts a function to the Replacer interface.
type ReplacerFunc func(rng *rand.Rand, population, parents, offspring []*Individual, run *RunContext) ([]*Individual, error)

func (f ReplacerFunc) Replace(rng *rand.Rand, population, parents, offspring []*Individual, run *RunContext) ([]*Individual, error) {
	return f(rng, population, parents, offspring, run)
}

// Migrator exchanges individuals with other concurrently evolving
// populations and returns the updated population.
type Migrator interface {
	Migrate(rng *rand.Rand, population []*Individual, run *RunContext) ([]*Individual, error)
}

// MigratorFunc adapts a function to the Migrator interface.
type MigratorFunc func(rng *rand.Rand, population []*Individual, run *RunContext) ([]*Individual, error)

func (f MigratorFunc) Migrate(rng *rand.Rand, population []*Individual, run *RunContext) ([]*Individual, error) {
	return f(rng, population, run)
}

// Archiver maintains the secondary collection of best-known solutions.
// The archive's membership and size policy belong entirely to the
// archiver; population replacement never overwrites it.
type Archiver interface {
	Archive(rng *rand.Rand, population, archive []*Individual, run *RunContext) ([]*Individual, error)
}

// ArchiverFunc adapts a function to the Archiver interface.
type ArchiverFunc func(rng *rand.Rand, population, archive []*Individual, run *RunContext) ([]*Individual, error)

func (f ArchiverFunc) Archive(rng *rand.Rand, population, archive []*Individual, run *RunContext) ([]*Individual, error) {
	return f(rng, population, archive, run)
}

// Terminator decides when the evolution should end. Terminators are
// combined by short-circuiting logical OR; the name of the first one to
// fire is recorded as the engine's termination cause.
type Terminator interface {
	Name() string
	Terminate(population []*Individual, numGenerations, numEvaluations int, run *RunContext) bool
}

type namedTerminator struct {
	name string
	fn   func(population []*Individual, numGenerations, numEvaluations int, run *RunContext) bool
}

func (t *namedTerminator) Name() string { return t.name }

func (t *namedTerminator) Terminate(population []*Individual, numGenerations, numEvaluations int, run *RunContext) bool {
	return t.fn(population, numGenerations, numEvaluations, run)
}

// TerminatorFunc wraps a function as a named Terminator.
func TerminatorFunc(name string, fn func(population []*Individual, numGenerations, numEvaluations int, run *RunContext) bool) Terminator {
	return &namedTerminator{name: name, fn: fn}
}

// Observer is invoked after every generation (and once against
// generation zero). Observers are side-effect-only reporting hooks and
// must not mutate the population they are passed.
type Observer interface {
	Observe(population []*Individual, numGenerations, numEvaluations int, run *RunContext)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(population []*Individual, numGenerations, numEvaluations int, run *RunContext)

func (f ObserverFunc) Observe(population []*Individual, numGenerations, numEvaluations int, run *RunContext) {
	f(population, numGenerations, numEvaluations, run)
}
