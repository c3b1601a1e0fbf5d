package ec

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	t.Run("computes distribution statistics", func(t *testing.T) {
		pop := scalarPopulation(true, 1, 2, 3, 4, 5)
		stats, ok := Summarize(pop)
		require.True(t, ok)
		assert.Equal(t, 5.0, stats.Best)
		assert.Equal(t, 1.0, stats.Worst)
		assert.Equal(t, 3.0, stats.Mean)
		assert.Equal(t, 3.0, stats.Median)
		assert.InDelta(t, 1.58, stats.Stdev, 0.01)
	})

	t.Run("respects minimization polarity", func(t *testing.T) {
		pop := scalarPopulation(false, 1, 2, 3)
		stats, ok := Summarize(pop)
		require.True(t, ok)
		assert.Equal(t, 1.0, stats.Best)
		assert.Equal(t, 3.0, stats.Worst)
	})

	t.Run("rejects empty and non scalar populations", func(t *testing.T) {
		_, ok := Summarize(nil)
		assert.False(t, ok)
		_, ok = Summarize([]*Individual{vecIndividual([]float64{0}, 1, 2)})
		assert.False(t, ok)
	})
}

func TestSQLiteObserver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.db")
	obs, err := NewSQLiteObserver(path, "run-1")
	require.NoError(t, err)
	defer obs.Close()

	for gen := 0; gen <= 2; gen++ {
		obs.Observe(scalarPopulation(true, 1, 2, 3), gen, gen*10, testRun(nil))
	}

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	var rows int
	require.NoError(t, db.QueryRow(
		`SELECT COUNT(*) FROM generation_stats WHERE run_id = ?`, "run-1").Scan(&rows))
	assert.Equal(t, 3, rows)

	var best float64
	require.NoError(t, db.QueryRow(
		`SELECT best FROM generation_stats WHERE run_id = ? AND generation = 2`, "run-1").Scan(&best))
	assert.Equal(t, 3.0, best)
}
