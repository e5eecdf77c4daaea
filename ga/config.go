package ga

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// Config stores the configuration parameters for a GA run.
type Config struct {
	Individual IndividualConfig `yaml:"individual"`
	Population PopulationConfig `yaml:"population"`
	Run        RunConfig        `yaml:"run"`
}

// IndividualConfig holds the per-gene parameters shared by every individual.
type IndividualConfig struct {
	LowerBound    float64 `ini:"lower_bound" yaml:"lower_bound"`
	UpperBound    float64 `ini:"upper_bound" yaml:"upper_bound"`
	NumberOfGenes int     `ini:"number_of_genes" yaml:"number_of_genes"`
}

// PopulationConfig holds the parameters of selection, crossover and mutation.
type PopulationConfig struct {
	Size     int `ini:"size" yaml:"size"`
	NParents int `ini:"n_parents" yaml:"n_parents"`
	// OffspringSize is (genes per offspring row, number of offspring rows).
	OffspringSize []int   `ini:"offspring_size" delim:" " yaml:"offspring_size,flow"`
	MutationMean  float64 `ini:"mutation_mean" yaml:"mutation_mean"`
	MutationSD    float64 `ini:"mutation_sd" yaml:"mutation_sd"`
}

// RunConfig holds optional parameters for Evolution.Run and the random source.
// The loaders set NoFitnessTermination when no fitness_threshold is given;
// configs built in code must set one or the other.
type RunConfig struct {
	Generations          int     `ini:"generations" yaml:"generations"`
	Seed                 uint64  `ini:"seed" yaml:"seed"` // 0 seeds from the clock
	FitnessThreshold     float64 `ini:"fitness_threshold" yaml:"fitness_threshold"`
	NoFitnessTermination bool    `ini:"no_fitness_termination" yaml:"no_fitness_termination"`
}

// OffspringGenes is the number of genes in each offspring row.
func (pc *PopulationConfig) OffspringGenes() int {
	if len(pc.OffspringSize) < 1 {
		return 0
	}
	return pc.OffspringSize[0]
}

// OffspringCount is the number of offspring produced per generation.
func (pc *PopulationConfig) OffspringCount() int {
	if len(pc.OffspringSize) < 2 {
		return 0
	}
	return pc.OffspringSize[1]
}

var requiredKeys = map[string][]string{
	"Individual": {"lower_bound", "upper_bound", "number_of_genes"},
	"Population": {"size", "n_parents", "offspring_size", "mutation_mean", "mutation_sd"},
}

// LoadConfig loads configuration parameters from an INI file, or from a YAML
// file when the path ends in .yaml or .yml.
func LoadConfig(filePath string) (*Config, error) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file '%s': %w", filePath, err)
		}
		return ParseYAMLConfig(data)
	default:
		return ParseINIConfig(filePath)
	}
}

// ParseINIConfig reads an INI config from any source accepted by ini.Load
// (a file name, []byte or io.Reader).
func ParseINIConfig(source interface{}) (*Config, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:         true,
		UnescapeValueCommentSymbols: true,
	}, source)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	for section, keys := range requiredKeys {
		sec, err := cfg.GetSection(section)
		if err != nil {
			return nil, &ConfigError{Field: section, Reason: "section is missing"}
		}
		for _, key := range keys {
			if !sec.HasKey(key) {
				return nil, &ConfigError{Field: key, Reason: "is required"}
			}
		}
	}

	config := &Config{}
	if err := cfg.Section("Individual").MapTo(&config.Individual); err != nil {
		return nil, fmt.Errorf("failed to map [Individual] section: %w", err)
	}
	if err := cfg.Section("Population").MapTo(&config.Population); err != nil {
		return nil, fmt.Errorf("failed to map [Population] section: %w", err)
	}
	if err := cfg.Section("Run").MapTo(&config.Run); err != nil {
		return nil, fmt.Errorf("failed to map [Run] section: %w", err)
	}

	// MapTo silently zeroes list values it cannot parse; re-read the
	// offspring pair strictly so a malformed entry is reported instead.
	sizes, err := cfg.Section("Population").Key("offspring_size").StrictInts(" ")
	if err != nil {
		return nil, &ConfigError{Field: "offspring_size", Reason: "must be two integers separated by a space"}
	}
	config.Population.OffspringSize = sizes

	if !cfg.Section("Run").HasKey("fitness_threshold") {
		config.Run.NoFitnessTermination = true
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// ParseYAMLConfig reads a YAML config with individual, population and run
// mappings using the same key names as the INI format.
func ParseYAMLConfig(data []byte) (*Config, error) {
	var raw map[string]map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse yaml config: %w", err)
	}
	for section, keys := range requiredKeys {
		sec, ok := raw[strings.ToLower(section)]
		if !ok {
			return nil, &ConfigError{Field: section, Reason: "section is missing"}
		}
		for _, key := range keys {
			if _, ok := sec[key]; !ok {
				return nil, &ConfigError{Field: key, Reason: "is required"}
			}
		}
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to decode yaml config: %w", err)
	}
	if _, ok := raw["run"]["fitness_threshold"]; !ok {
		config.Run.NoFitnessTermination = true
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks value ranges and the consistency between sections.
func (c *Config) Validate() error {
	ind := &c.Individual
	pop := &c.Population

	if ind.NumberOfGenes <= 0 {
		return &ConfigError{Field: "number_of_genes", Reason: "must be positive"}
	}
	if math.IsNaN(ind.LowerBound) || math.IsNaN(ind.UpperBound) {
		return &ConfigError{Field: "lower_bound", Reason: "bounds must be numbers"}
	}
	if ind.UpperBound < ind.LowerBound {
		return &ConfigError{Field: "upper_bound", Reason: "cannot be less than lower_bound"}
	}
	if pop.Size <= 0 {
		return &ConfigError{Field: "size", Reason: "must be positive"}
	}
	if pop.NParents < 1 || pop.NParents > pop.Size {
		return &ConfigError{Field: "n_parents", Reason: fmt.Sprintf("must be between 1 and size (%d)", pop.Size)}
	}
	if len(pop.OffspringSize) != 2 {
		return &ConfigError{Field: "offspring_size", Reason: "must be a pair (genes per row, row count)"}
	}
	if pop.OffspringGenes() != ind.NumberOfGenes {
		return &ConfigError{
			Field:  "offspring_size",
			Reason: fmt.Sprintf("genes per row (%d) must equal number_of_genes (%d)", pop.OffspringGenes(), ind.NumberOfGenes),
		}
	}
	if pop.OffspringCount() <= 0 {
		return &ConfigError{Field: "offspring_size", Reason: "row count must be positive"}
	}
	if pop.MutationSD < 0 || math.IsNaN(pop.MutationSD) {
		return &ConfigError{Field: "mutation_sd", Reason: "cannot be negative"}
	}
	if math.IsNaN(pop.MutationMean) {
		return &ConfigError{Field: "mutation_mean", Reason: "must be a number"}
	}
	if c.Run.Generations < 0 {
		return &ConfigError{Field: "generations", Reason: "cannot be negative"}
	}
	return nil
}
