package ec

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, DefaultConfig().Validate())
	})

	t.Run("zero values are valid", func(t *testing.T) {
		assert.NoError(t, (&Config{}).Validate())
	})

	t.Run("rejects negative population size", func(t *testing.T) {
		cfg := &Config{PopSize: -1}
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects out of range rates", func(t *testing.T) {
		assert.Error(t, (&Config{CrossoverRate: 1.5}).Validate())
		assert.Error(t, (&Config{MutationRate: -0.1}).Validate())
	})
}

func TestConfigDefaults(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, 100, cfg.popSize())
	assert.Equal(t, 7, cfg.numSelected(7))
	assert.Equal(t, 2, cfg.tournamentSize())
	assert.Equal(t, 1.0, cfg.crossoverRate())
	assert.Equal(t, 0.1, cfg.mutationRate())
	assert.Equal(t, 1, cfg.numGridDivisions())

	cfg.NumSelected = 3
	assert.Equal(t, 3, cfg.numSelected(7))
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
pop_size: 50
num_selected: 25
mutation_rate: 0.2
max_generations: 10
max_time: 30s
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.PopSize)
	assert.Equal(t, 25, cfg.NumSelected)
	assert.Equal(t, 0.2, cfg.MutationRate)
	assert.Equal(t, 10, cfg.MaxGenerations)
	assert.Equal(t, Duration(30*time.Second), cfg.MaxTime)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pop_size: -5"), 0o644))
	_, err := LoadConfig(path)
	assert.Error(t, err)
}
