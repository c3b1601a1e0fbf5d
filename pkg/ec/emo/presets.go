package emo

import (
	"context"
	"math/rand"

	"github.com/aarongarrett/inspyred/pkg/ec"
)

// NSGA2 is the nondominated sorting genetic algorithm II: binary
// tournament selection, non-dominated sorting replacement with
// crowding, and a Pareto archive of the best individuals. The caller
// supplies the variators appropriate to the candidate encoding.
type NSGA2 struct {
	*ec.Engine
}

func NewNSGA2(rng *rand.Rand) *NSGA2 {
	e := ec.New(rng)
	e.Selector = ec.SelectorFunc(ec.TournamentSelection)
	e.Replacer = ec.ReplacerFunc(ec.NSGAReplacement)
	e.Archiver = ec.ArchiverFunc(ec.BestArchiver)
	e.ConfigDefaults = func(cfg *ec.Config) {
		if cfg.NumSelected == 0 {
			cfg.NumSelected = cfg.PopSize
			if cfg.NumSelected == 0 {
				cfg.NumSelected = 100
			}
		}
		if cfg.TournamentSize == 0 {
			cfg.TournamentSize = 2
		}
	}
	return &NSGA2{Engine: e}
}

// PAES is the (1+1) Pareto archived evolution strategy: a single
// Gaussian-mutated individual competes with its offspring under an
// adaptive-grid Pareto archive, with grid-cell crowding breaking
// mutually non-dominated ties.
type PAES struct {
	*ec.Engine
	archiver *ec.GridArchiver
}

func NewPAES(rng *rand.Rand) *PAES {
	e := ec.New(rng)
	grid := ec.NewGridArchiver()
	e.Variators = []ec.Variator{ec.Mutator(ec.GaussianMutation)}
	e.Replacer = &ec.PAESReplacer{Archiver: grid}
	e.Archiver = grid
	e.ConfigDefaults = func(cfg *ec.Config) {
		cfg.PopSize = 1
	}
	return &PAES{Engine: e, archiver: grid}
}

// Evolve runs the strategy and resets the grid archiver afterwards so
// the same instance can serve another run.
func (p *PAES) Evolve(ctx context.Context, generator ec.Generator, evaluator ec.Evaluator, cfg *ec.Config, opts ...ec.EvolveOption) ([]*ec.Individual, error) {
	defer p.archiver.Reset()
	return p.Engine.Evolve(ctx, generator, evaluator, cfg, opts...)
}
