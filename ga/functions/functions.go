// Package functions contains standard objective functions for the ga package.
// Minimisation benchmarks are negated so that higher scores are better.
package functions

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/baldhumanity/simple-ga/ga"
)

// Sphere is -(sum of x_i^2). Its maximum, 0, is at the origin.
func Sphere(genes []float64) float64 {
	sum := 0.0
	for _, x := range genes {
		sum += x * x
	}
	return -sum
}

// Rastrigin is the negated Rastrigin function. Maximum 0 at the origin.
func Rastrigin(genes []float64) float64 {
	sum := 10.0 * float64(len(genes))
	for _, x := range genes {
		sum += x*x - 10*math.Cos(2*math.Pi*x)
	}
	return -sum
}

// Rosenbrock is the negated Rosenbrock function. Maximum 0 at (1, ..., 1).
func Rosenbrock(genes []float64) float64 {
	sum := 0.0
	for i := 0; i+1 < len(genes); i++ {
		a := genes[i+1] - genes[i]*genes[i]
		b := 1 - genes[i]
		sum += 100*a*a + b*b
	}
	return -sum
}

// Wave is x(x-1)cos(2x-1)sin(2x-1)(y-2), a two-gene multimodal surface.
// Only the first two genes are used.
func Wave(genes []float64) float64 {
	x, y := genes[0], genes[1]
	return x * (x - 1) * math.Cos(2*x-1) * math.Sin(2*x-1) * (y - 2)
}

type entry struct {
	fn       func([]float64) float64
	minGenes int
	maxGenes int // 0 means unbounded
}

var registry = map[string]entry{
	"sphere":     {fn: Sphere, minGenes: 1},
	"rastrigin":  {fn: Rastrigin, minGenes: 1},
	"rosenbrock": {fn: Rosenbrock, minGenes: 2},
	"wave":       {fn: Wave, minGenes: 2, maxGenes: 2},
}

// Names lists the registered objective names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the named objective as a ga.Fitness of the given arity.
func Lookup(name string, genes int) (ga.Fitness, error) {
	e, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown objective function: %s", name)
	}
	if genes < e.minGenes || (e.maxGenes > 0 && genes > e.maxGenes) {
		return nil, fmt.Errorf("objective %s does not accept %d genes", name, genes)
	}
	return ga.FuncN(genes, e.fn), nil
}
