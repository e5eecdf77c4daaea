package ga

import (
	"fmt"
	"math"
)

// Fitness scores a gene vector. Higher scores are better.
// Implementations must be pure: the same genes always give the same score.
type Fitness interface {
	// Arity is the number of genes the function accepts.
	Arity() int
	Evaluate(genes []float64) (float64, error)
}

type fitnessFunc struct {
	arity int
	fn    func([]float64) (float64, error)
}

func (f fitnessFunc) Arity() int { return f.arity }

func (f fitnessFunc) Evaluate(genes []float64) (float64, error) {
	return f.fn(genes)
}

// NewFitness adapts a function over a fixed-length gene vector.
func NewFitness(arity int, fn func(genes []float64) (float64, error)) Fitness {
	return fitnessFunc{arity: arity, fn: fn}
}

// FuncN adapts an infallible function of arity genes.
func FuncN(arity int, fn func(genes []float64) float64) Fitness {
	return fitnessFunc{arity: arity, fn: func(genes []float64) (float64, error) {
		return fn(genes), nil
	}}
}

// Func2 adapts a two-argument function f(x, y).
func Func2(fn func(x, y float64) float64) Fitness {
	return fitnessFunc{arity: 2, fn: func(genes []float64) (float64, error) {
		return fn(genes[0], genes[1]), nil
	}}
}

// evaluate checks arity before calling the fitness function and wraps any
// failure in a *FitnessEvaluationError.
func evaluate(f Fitness, genes []float64) (float64, error) {
	if len(genes) != f.Arity() {
		return 0, &FitnessEvaluationError{
			Genes: genes,
			Err:   fmt.Errorf("got %d genes, fitness function takes %d", len(genes), f.Arity()),
		}
	}
	score, err := f.Evaluate(genes)
	if err != nil {
		return 0, &FitnessEvaluationError{Genes: genes, Err: err}
	}
	return score, nil
}

// better reports whether score a ranks strictly ahead of b. NaN ranks last.
func better(a, b float64) bool {
	if math.IsNaN(b) {
		return !math.IsNaN(a)
	}
	return a > b
}
