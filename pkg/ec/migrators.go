package ec

import (
	"math/rand"
	"sync"
)

// DefaultMigration performs no migration.
func DefaultMigration(rng *rand.Rand, population []*Individual, run *RunContext) ([]*Individual, error) {
	return population, nil
}

// ChannelMigrator migrates individuals among concurrently evolving
// populations through a bounded channel. Multiple engines sharing one
// migrator form a fully connected topology: each generation an engine
// tries to pull one immigrant from the channel into a random slot and
// pushes the displaced individual back out. Both operations are
// non-blocking, so a full or empty channel never stalls a run.
//
// A ChannelMigrator is safe for use from multiple goroutines.
type ChannelMigrator struct {
	// EvaluateMigrant controls whether an incoming migrant is re-scored
	// by the receiving run's evaluator, which matters when fitness is
	// not portable across populations. Evaluations are attributed to
	// the receiving run.
	EvaluateMigrant bool

	mu       sync.Mutex
	migrants chan *Individual
}

// NewChannelMigrator creates a migrator holding at most maxMigrants
// in-flight individuals (minimum 1).
func NewChannelMigrator(maxMigrants int) *ChannelMigrator {
	if maxMigrants < 1 {
		maxMigrants = 1
	}
	return &ChannelMigrator{migrants: make(chan *Individual, maxMigrants)}
}

func (m *ChannelMigrator) Migrate(rng *rand.Rand, population []*Individual, run *RunContext) ([]*Individual, error) {
	if len(population) == 0 {
		return population, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	pop := copyPopulation(population)
	idx := rng.Intn(len(pop))
	emigrant := pop[idx]

	select {
	case immigrant := <-m.migrants:
		if m.EvaluateMigrant {
			fits, err := run.EvaluateCandidates([]Candidate{immigrant.Candidate()})
			if err != nil {
				return nil, err
			}
			if len(fits) == 1 && fits[0] != nil {
				immigrant.Fitness = fits[0]
			}
		}
		pop[idx] = immigrant
	default:
	}

	select {
	case m.migrants <- emigrant:
	default:
	}
	return pop, nil
}
