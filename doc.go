// Package inspyred is a framework for building biologically-inspired
// population-based optimization: evolutionary computation in which
// every stage of the generation cycle is a replaceable strategy.
//
// The pkg/ec package provides the evolution engine and a catalog of
// selectors, variators, replacers, migrators, archivers, terminators,
// and observers, along with preset algorithms (GA, ES, EDA, DEA, SA)
// that are nothing more than an engine with particular operators
// installed. The pkg/ec/emo package adds multi-objective optimization:
// the Pareto fitness type and the NSGA-II and PAES algorithms.
//
// A minimal run supplies a problem as two functions, a generator that
// produces random candidate solutions and an evaluator that scores
// them, and lets the engine do the rest:
//
//	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
//	ga := ec.NewGA(rng)
//	ga.Terminators = []ec.Terminator{ec.EvaluationTermination()}
//	final, err := ga.Evolve(ctx, generator, evaluator,
//	    &ec.Config{PopSize: 100, MaxEvaluations: 10000})
//
// Candidates are opaque to the engine; the built-in numeric operators
// work on []float64 (and []int for permutation operators), while user
// supplied operators may use any representation.
package inspyred
