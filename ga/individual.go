package ga

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Individual is one candidate solution: a fixed-length vector of genes.
// The genes never change after construction; only the fitness cache is filled in.
type Individual struct {
	value []float64

	scored bool
	score  float64
}

// NewIndividual creates an individual whose genes are drawn uniformly from
// [LowerBound, UpperBound].
func NewIndividual(cfg IndividualConfig, rng *rand.Rand) (*Individual, error) {
	if rng == nil {
		return nil, fmt.Errorf("random source is required")
	}
	if cfg.NumberOfGenes <= 0 {
		return nil, &ConfigError{Field: "number_of_genes", Reason: "must be positive"}
	}
	if cfg.UpperBound < cfg.LowerBound {
		return nil, &ConfigError{Field: "upper_bound", Reason: "cannot be less than lower_bound"}
	}

	dist := distuv.Uniform{Min: cfg.LowerBound, Max: cfg.UpperBound, Src: rng}
	value := make([]float64, cfg.NumberOfGenes)
	for i := range value {
		value[i] = dist.Rand()
	}
	return &Individual{value: value}, nil
}

// NewIndividualFromValues creates an individual holding values verbatim.
// Values are not checked against the bounds.
func NewIndividualFromValues(cfg IndividualConfig, values []float64) (*Individual, error) {
	if len(values) != cfg.NumberOfGenes {
		return nil, &ConfigError{
			Field:  "number_of_genes",
			Reason: fmt.Sprintf("is %d but the vector has %d genes", cfg.NumberOfGenes, len(values)),
		}
	}
	return &Individual{value: values}, nil
}

// Values returns the gene vector. Callers must not modify it.
func (ind *Individual) Values() []float64 {
	return ind.value
}

// Fitness returns the cached score, evaluating it on first use.
func (ind *Individual) Fitness(f Fitness) (float64, error) {
	if ind.scored {
		return ind.score, nil
	}
	score, err := evaluate(f, ind.value)
	if err != nil {
		return 0, err
	}
	ind.score = score
	ind.scored = true
	return score, nil
}

func newScoredIndividual(value []float64, score float64) *Individual {
	return &Individual{value: value, scored: true, score: score}
}
