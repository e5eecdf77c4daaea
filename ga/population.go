package ga

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Population is one generation of individuals together with the operators
// that produce the next one. A Population is rebuilt, not modified, every
// generation.
type Population struct {
	Config      *Config
	individuals []*Individual
	fitness     Fitness
	rng         *rand.Rand
}

// NewPopulation creates Size individuals with uniformly random genes.
func NewPopulation(config *Config, fitness Fitness, rng *rand.Rand) (*Population, error) {
	if err := checkPopulationArgs(config, fitness, rng); err != nil {
		return nil, err
	}
	individuals := make([]*Individual, config.Population.Size)
	for i := range individuals {
		ind, err := NewIndividual(config.Individual, rng)
		if err != nil {
			return nil, fmt.Errorf("failed to create individual %d: %w", i, err)
		}
		individuals[i] = ind
	}
	return &Population{Config: config, individuals: individuals, fitness: fitness, rng: rng}, nil
}

// NewPopulationFromValues creates one individual per gene vector. The number
// of vectors must equal the configured population size.
func NewPopulationFromValues(config *Config, fitness Fitness, rng *rand.Rand, values [][]float64) (*Population, error) {
	if err := checkPopulationArgs(config, fitness, rng); err != nil {
		return nil, err
	}
	individuals := make([]*Individual, len(values))
	for i, v := range values {
		ind, err := NewIndividualFromValues(config.Individual, v)
		if err != nil {
			return nil, fmt.Errorf("failed to create individual %d: %w", i, err)
		}
		individuals[i] = ind
	}
	return newPopulationFromIndividuals(config, fitness, rng, individuals)
}

func newPopulationFromIndividuals(config *Config, fitness Fitness, rng *rand.Rand, individuals []*Individual) (*Population, error) {
	if len(individuals) != config.Population.Size {
		return nil, &ConfigError{
			Field:  "size",
			Reason: fmt.Sprintf("is %d but %d individuals were supplied", config.Population.Size, len(individuals)),
		}
	}
	return &Population{Config: config, individuals: individuals, fitness: fitness, rng: rng}, nil
}

func checkPopulationArgs(config *Config, fitness Fitness, rng *rand.Rand) error {
	if config == nil {
		return &ConfigError{Field: "config", Reason: "is required"}
	}
	if fitness == nil {
		return &ConfigError{Field: "fitness", Reason: "function is required"}
	}
	if rng == nil {
		return fmt.Errorf("random source is required")
	}
	return nil
}

// Size returns the number of individuals.
func (p *Population) Size() int {
	return len(p.individuals)
}

// Individuals returns the individuals in population order.
func (p *Population) Individuals() []*Individual {
	return p.individuals
}

// Scores evaluates every individual, in population order.
func (p *Population) Scores() ([]float64, error) {
	scores := make([]float64, len(p.individuals))
	for i, ind := range p.individuals {
		s, err := ind.Fitness(p.fitness)
		if err != nil {
			return nil, err
		}
		scores[i] = s
	}
	return scores, nil
}

// Best returns the fittest individual and its score. Ties go to the earlier
// individual.
func (p *Population) Best() (*Individual, float64, error) {
	scores, err := p.Scores()
	if err != nil {
		return nil, 0, err
	}
	best := 0
	for i := 1; i < len(scores); i++ {
		if better(scores[i], scores[best]) {
			best = i
		}
	}
	return p.individuals[best], scores[best], nil
}

// GetParents returns the gene vectors of the nParents fittest individuals,
// best first, one per matrix row. Equal scores keep population order.
func (p *Population) GetParents(nParents int) (*mat.Dense, error) {
	if nParents < 1 || nParents > len(p.individuals) {
		return nil, &ConfigError{
			Field:  "n_parents",
			Reason: fmt.Sprintf("must be between 1 and size (%d), got %d", len(p.individuals), nParents),
		}
	}
	scores, err := p.Scores()
	if err != nil {
		return nil, err
	}
	order := rank(scores)

	parents := mat.NewDense(nParents, p.Config.Individual.NumberOfGenes, nil)
	for row := 0; row < nParents; row++ {
		parents.SetRow(row, p.individuals[order[row]].Values())
	}
	return parents, nil
}

// Crossover produces OffspringCount rows by single-point crossover at half
// the gene count. Row k takes its first half from parent k mod n and its
// second half from parent (k+1) mod n.
func (p *Population) Crossover(parents *mat.Dense) (*mat.Dense, error) {
	if parents == nil || parents.IsEmpty() {
		return nil, fmt.Errorf("crossover needs at least one parent")
	}
	nParents, width := parents.Dims()
	genes := p.Config.Population.OffspringGenes()
	if width != genes {
		return nil, &ConfigError{
			Field:  "offspring_size",
			Reason: fmt.Sprintf("genes per row (%d) does not match parent width (%d)", genes, width),
		}
	}

	rows := p.Config.Population.OffspringCount()
	point := genes / 2
	offspring := mat.NewDense(rows, genes, nil)
	for k := 0; k < rows; k++ {
		first := parents.RawRowView(k % nParents)
		second := parents.RawRowView((k + 1) % nParents)
		child := offspring.RawRowView(k)
		copy(child[:point], first[:point])
		copy(child[point:], second[point:])
	}
	return offspring, nil
}

// Mutate returns a copy of offspring in which one randomly chosen gene per
// row has Gaussian noise added. Every gene of the result is then clamped
// to [LowerBound, UpperBound].
func (p *Population) Mutate(offspring *mat.Dense) *mat.Dense {
	mutated := mat.DenseCopyOf(offspring)
	rows, cols := mutated.Dims()

	noise := distuv.Normal{
		Mu:    p.Config.Population.MutationMean,
		Sigma: p.Config.Population.MutationSD,
		Src:   p.rng,
	}
	for i := 0; i < rows; i++ {
		g := p.rng.IntN(cols)
		mutated.Set(i, g, mutated.At(i, g)+noise.Rand())
	}

	lower, upper := p.Config.Individual.LowerBound, p.Config.Individual.UpperBound
	mutated.Apply(func(_, _ int, v float64) float64 {
		return clamp(v, lower, upper)
	}, mutated)
	return mutated
}

// rank returns indices into scores ordered best first. The sort is stable so
// equal scores keep their original order.
func rank(scores []float64) []int {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return better(scores[order[a]], scores[order[b]])
	})
	return order
}
