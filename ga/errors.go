package ga

import (
	"errors"
	"fmt"
)

// ErrConfiguration is matched by every *ConfigError.
var ErrConfiguration = errors.New("configuration error")

// ConfigError reports a missing or invalid configuration value.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: %s %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrConfiguration
}

// FitnessEvaluationError wraps a failure returned by the fitness function
// together with the gene vector that triggered it.
type FitnessEvaluationError struct {
	Genes []float64
	Err   error
}

func (e *FitnessEvaluationError) Error() string {
	return fmt.Sprintf("fitness evaluation failed for %v: %v", e.Genes, e.Err)
}

func (e *FitnessEvaluationError) Unwrap() error {
	return e.Err
}
