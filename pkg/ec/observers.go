package ec

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"gonum.org/v1/gonum/stat"

	"github.com/aarongarrett/inspyred/pkg/errors"
	"github.com/aarongarrett/inspyred/pkg/logging"
)

// PopulationStats summarizes the scalar fitness distribution of a
// population.
type PopulationStats struct {
	Best   float64
	Worst  float64
	Mean   float64
	Median float64
	Stdev  float64
}

// Summarize computes fitness statistics over a population. It reports
// ok=false when the population is empty or its fitness is not scalar.
func Summarize(population []*Individual) (PopulationStats, bool) {
	if len(population) == 0 {
		return PopulationStats{}, false
	}
	values := make([]float64, 0, len(population))
	for _, ind := range population {
		s, ok := ind.Fitness.(Scalar)
		if !ok {
			return PopulationStats{}, false
		}
		values = append(values, float64(s))
	}
	pop := copyPopulation(population)
	sortBestToWorst(pop)
	best := float64(pop[0].Fitness.(Scalar))
	worst := float64(pop[len(pop)-1].Fitness.(Scalar))

	sort.Float64s(values)
	return PopulationStats{
		Best:   best,
		Worst:  worst,
		Mean:   stat.Mean(values, nil),
		Median: stat.Quantile(0.5, stat.Empirical, values, nil),
		Stdev:  stat.StdDev(values, nil),
	}, true
}

// StatsObserver logs best, worst, mean, median, and standard deviation
// of the population's fitness each generation. Populations without
// scalar fitness are logged by size only.
func StatsObserver(population []*Individual, numGenerations, numEvaluations int, run *RunContext) {
	logger := logging.GetLogger()
	ctx := context.Background()
	stats, ok := Summarize(population)
	if !ok {
		logger.Info(ctx, "generation %d: %d evaluations, population size %d",
			numGenerations, numEvaluations, len(population))
		return
	}
	logger.Info(ctx, "generation %d: %d evaluations, best %g, worst %g, mean %g, median %g, stdev %g",
		numGenerations, numEvaluations, stats.Best, stats.Worst, stats.Mean, stats.Median, stats.Stdev)
}

// BestObserver logs the best individual in the population each
// generation.
func BestObserver(population []*Individual, numGenerations, numEvaluations int, run *RunContext) {
	if len(population) == 0 {
		return
	}
	pop := copyPopulation(population)
	sortBestToWorst(pop)
	logging.GetLogger().Info(context.Background(), "generation %d: %d evaluations, best %v with fitness %v",
		numGenerations, numEvaluations, pop[0].Candidate(), pop[0].Fitness)
}

// SQLiteObserver records per-generation population statistics in a
// SQLite database, one row per observation. The same database may
// accumulate multiple runs; rows carry the run identifier to keep
// them apart.
type SQLiteObserver struct {
	db    *sql.DB
	runID string
}

// NewSQLiteObserver opens (creating if needed) the statistics database
// at path and tags subsequent rows with runID.
func NewSQLiteObserver(path, runID string) (*SQLiteObserver, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ObservationFailed, "failed to open statistics database")
	}
	const schema = `
		CREATE TABLE IF NOT EXISTS generation_stats (
			run_id          TEXT    NOT NULL,
			generation      INTEGER NOT NULL,
			evaluations     INTEGER NOT NULL,
			population_size INTEGER NOT NULL,
			best            REAL,
			worst           REAL,
			mean            REAL,
			median          REAL,
			stdev           REAL,
			recorded_at     TIMESTAMP NOT NULL,
			PRIMARY KEY (run_id, generation)
		)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, errors.ObservationFailed, "failed to create statistics table")
	}
	return &SQLiteObserver{db: db, runID: runID}, nil
}

// Close releases the underlying database handle.
func (o *SQLiteObserver) Close() error { return o.db.Close() }

func (o *SQLiteObserver) Observe(population []*Individual, numGenerations, numEvaluations int, run *RunContext) {
	var best, worst, mean, median, stdev interface{}
	if stats, ok := Summarize(population); ok {
		best, worst, mean = stats.Best, stats.Worst, stats.Mean
		median, stdev = stats.Median, stats.Stdev
	}
	_, err := o.db.Exec(`
		INSERT OR REPLACE INTO generation_stats
			(run_id, generation, evaluations, population_size, best, worst, mean, median, stdev, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.runID, numGenerations, numEvaluations, len(population),
		best, worst, mean, median, stdev, time.Now().UTC())
	if err != nil {
		logging.GetLogger().Error(context.Background(), "failed to record generation stats: %v", err)
	}
}

// String implements fmt.Stringer for log output.
func (o *SQLiteObserver) String() string {
	return fmt.Sprintf("SQLiteObserver(run %s)", o.runID)
}
