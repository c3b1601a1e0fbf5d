package ec

import (
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/aarongarrett/inspyred/pkg/errors"
)

// Config holds the fixed parameters read by the engine and the built-in
// operators. It replaces the untyped keyword-argument dictionary of older
// designs: operators read their knobs from here and keep any adapted
// per-run state on their own strategy instances instead of writing back.
//
// A zero value for a field means "use the operator's default".
type Config struct {
	// Engine parameters.
	PopSize     int `yaml:"pop_size" validate:"omitempty,gt=0"`
	NumSelected int `yaml:"num_selected" validate:"omitempty,gt=0"`

	// Selection parameters.
	TournamentSize int `yaml:"tournament_size" validate:"omitempty,gt=0"`

	// Variation parameters.
	CrossoverRate      float64 `yaml:"crossover_rate" validate:"omitempty,gte=0,lte=1"`
	NumCrossoverPoints int     `yaml:"num_crossover_points" validate:"omitempty,gt=0"`
	MutationRate       float64 `yaml:"mutation_rate" validate:"omitempty,gte=0,lte=1"`
	GaussianMean       float64 `yaml:"gaussian_mean"`
	GaussianStdev      float64 `yaml:"gaussian_stdev" validate:"omitempty,gt=0"`
	UXBias             float64 `yaml:"ux_bias" validate:"omitempty,gte=0,lte=1"`
	AXAlpha            float64 `yaml:"ax_alpha" validate:"omitempty,gte=0,lte=1"`
	BLXAlpha           float64 `yaml:"blx_alpha" validate:"omitempty,gte=0"`
	MutationStrength   float64 `yaml:"mutation_strength" validate:"omitempty,gt=0"`
	SBXDistributionIdx float64 `yaml:"sbx_distribution_index" validate:"omitempty,gte=0"`
	NumOffspring       int     `yaml:"num_offspring" validate:"omitempty,gt=0"`

	// Evolution strategy parameters.
	Tau      float64 `yaml:"tau"`
	TauPrime float64 `yaml:"tau_prime"`
	Epsilon  float64 `yaml:"epsilon" validate:"omitempty,gt=0"`

	// Replacement parameters.
	NumElites        int `yaml:"num_elites" validate:"omitempty,gte=0"`
	CrowdingDistance int `yaml:"crowding_distance" validate:"omitempty,gt=0"`

	// Archival parameters.
	MaxArchiveSize   int `yaml:"max_archive_size" validate:"omitempty,gt=0"`
	NumGridDivisions int `yaml:"num_grid_divisions" validate:"omitempty,gt=0"`

	// Termination parameters.
	MaxGenerations int           `yaml:"max_generations" validate:"omitempty,gt=0"`
	MaxEvaluations int           `yaml:"max_evaluations" validate:"omitempty,gt=0"`
	MaxTime        Duration      `yaml:"max_time"`
	MinDiversity   float64       `yaml:"min_diversity" validate:"omitempty,gt=0"`
	Tolerance      float64       `yaml:"tolerance" validate:"omitempty,gt=0"`
}

// Duration is a time.Duration that additionally decodes from YAML
// strings such as "30s" or "2h45m".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return errors.Wrap(err, errors.InvalidConfig, "invalid duration")
		}
		*d = Duration(parsed)
		return nil
	}
	var n int64
	if err := value.Decode(&n); err != nil {
		return errors.Wrap(err, errors.InvalidConfig, "invalid duration")
	}
	*d = Duration(n)
	return nil
}

// DefaultConfig returns the configuration the engine assumes when a nil
// Config is passed to Evolve.
func DefaultConfig() *Config {
	return &Config{
		PopSize: 100,
	}
}

var validate = validator.New()

// Validate checks the configuration's range constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, errors.InvalidConfig, "invalid configuration")
	}
	return nil
}

// LoadConfig reads a YAML configuration file and validates it.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.InvalidConfig, "failed to read config file")
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, errors.InvalidConfig, "failed to parse config file")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// clone returns a copy so per-run defaulting never mutates the caller's
// configuration.
func (c *Config) clone() *Config {
	out := *c
	return &out
}

// Convenience accessors that apply the documented defaults.

func (c *Config) popSize() int {
	if c.PopSize <= 0 {
		return 100
	}
	return c.PopSize
}

func (c *Config) numSelected(def int) int {
	if c.NumSelected <= 0 {
		return def
	}
	return c.NumSelected
}

func (c *Config) tournamentSize() int {
	if c.TournamentSize <= 0 {
		return 2
	}
	return c.TournamentSize
}

func (c *Config) crossoverRate() float64 {
	if c.CrossoverRate == 0 {
		return 1.0
	}
	return c.CrossoverRate
}

func (c *Config) numCrossoverPoints() int {
	if c.NumCrossoverPoints <= 0 {
		return 1
	}
	return c.NumCrossoverPoints
}

func (c *Config) mutationRate() float64 {
	if c.MutationRate == 0 {
		return 0.1
	}
	return c.MutationRate
}

func (c *Config) gaussianStdev() float64 {
	if c.GaussianStdev == 0 {
		return 1.0
	}
	return c.GaussianStdev
}

func (c *Config) uxBias() float64 {
	if c.UXBias == 0 {
		return 0.5
	}
	return c.UXBias
}

func (c *Config) axAlpha() float64 {
	if c.AXAlpha == 0 {
		return 0.5
	}
	return c.AXAlpha
}

func (c *Config) blxAlpha() float64 {
	if c.BLXAlpha == 0 {
		return 0.1
	}
	return c.BLXAlpha
}

func (c *Config) mutationStrength() float64 {
	if c.MutationStrength == 0 {
		return 1.0
	}
	return c.MutationStrength
}

func (c *Config) sbxDistributionIndex() float64 {
	if c.SBXDistributionIdx == 0 {
		return 10
	}
	return c.SBXDistributionIdx
}

func (c *Config) epsilon() float64 {
	if c.Epsilon == 0 {
		return 0.00001
	}
	return c.Epsilon
}

func (c *Config) crowdingDistance() int {
	if c.CrowdingDistance <= 0 {
		return 2
	}
	return c.CrowdingDistance
}

func (c *Config) numGridDivisions() int {
	if c.NumGridDivisions <= 0 {
		return 1
	}
	return c.NumGridDivisions
}

func (c *Config) minDiversity() float64 {
	if c.MinDiversity == 0 {
		return 0.001
	}
	return c.MinDiversity
}

func (c *Config) tolerance() float64 {
	if c.Tolerance == 0 {
		return 0.001
	}
	return c.Tolerance
}
