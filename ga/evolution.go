package ga

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

// Solution is the best gene vector found so far and its score.
type Solution struct {
	BestIndividual []float64
	BestScore      float64
}

// Observer is notified after every successful Step.
type Observer interface {
	ObserveStep(stats GenerationStats)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(stats GenerationStats)

func (f ObserverFunc) ObserveStep(stats GenerationStats) { f(stats) }

// Option configures an Evolution.
type Option func(*Evolution)

// WithRand supplies the random source. By default one is built from
// Config.Run.Seed.
func WithRand(rng *rand.Rand) Option {
	return func(e *Evolution) { e.rng = rng }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Evolution) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithObserver registers an observer for completed steps.
func WithObserver(o Observer) Option {
	return func(e *Evolution) {
		if o != nil {
			e.observers = append(e.observers, o)
		}
	}
}

// Evolution holds the state of a GA run. Call Step repeatedly, or Run.
type Evolution struct {
	Config     *Config
	population *Population
	fitness    Fitness
	rng        *rand.Rand
	logger     *zap.Logger
	observers  []Observer

	generation  int
	solution    Solution
	hasSolution bool
	history     []GenerationStats
}

// NewEvolution validates the config, checks that the fitness function takes
// exactly NumberOfGenes genes and creates a random initial population.
func NewEvolution(config *Config, fitness Fitness, opts ...Option) (*Evolution, error) {
	if config == nil {
		return nil, &ConfigError{Field: "config", Reason: "is required"}
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if fitness == nil {
		return nil, &ConfigError{Field: "fitness", Reason: "function is required"}
	}
	if fitness.Arity() != config.Individual.NumberOfGenes {
		return nil, &ConfigError{
			Field:  "number_of_genes",
			Reason: fmt.Sprintf("is %d but the fitness function takes %d genes", config.Individual.NumberOfGenes, fitness.Arity()),
		}
	}

	e := &Evolution{
		Config:  config,
		fitness: fitness,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = NewRand(config.Run.Seed)
	}

	pop, err := NewPopulation(config, fitness, e.rng)
	if err != nil {
		return nil, fmt.Errorf("failed to create initial population: %w", err)
	}
	e.population = pop
	return e, nil
}

// Step runs one generation: select parents, cross them over, mutate the
// offspring, then keep the Size best of the current generation plus the
// offspring. If any fitness evaluation fails the step is abandoned and the
// Evolution is left exactly as it was.
func (e *Evolution) Step() error {
	start := time.Now()
	next := e.generation + 1
	pop := e.population

	parents, err := pop.GetParents(e.Config.Population.NParents)
	if err != nil {
		return fmt.Errorf("parent selection failed in generation %d: %w", next, err)
	}
	offspring, err := pop.Crossover(parents)
	if err != nil {
		return fmt.Errorf("crossover failed in generation %d: %w", next, err)
	}
	mutated := pop.Mutate(offspring)

	candidates, scores, err := e.mergeCandidates(pop, mutated)
	if err != nil {
		return fmt.Errorf("fitness evaluation failed in generation %d: %w", next, err)
	}

	size := e.Config.Population.Size
	order := rank(scores)
	survivors := make([]*Individual, size)
	sorted := make([]float64, size)
	for i := 0; i < size; i++ {
		survivors[i] = candidates[order[i]]
		sorted[i] = scores[order[i]]
	}

	nextPop, err := newPopulationFromIndividuals(e.Config, e.fitness, e.rng, survivors)
	if err != nil {
		return fmt.Errorf("failed to rebuild population in generation %d: %w", next, err)
	}

	stats := summarize(next, sorted, len(candidates), time.Since(start))

	e.generation = next
	e.population = nextPop
	e.history = append(e.history, stats)
	e.recordSolution(survivors[0].Values(), sorted[0])

	e.logger.Debug("generation finished",
		zap.Int("generation", stats.Generation),
		zap.Float64("best", stats.Best),
		zap.Float64("mean", stats.Mean),
		zap.Float64("stddev", stats.StdDev),
		zap.Duration("elapsed", stats.Duration),
	)
	for _, o := range e.observers {
		o.ObserveStep(stats)
	}
	return nil
}

// mergeCandidates pools the current individuals with the scored offspring.
func (e *Evolution) mergeCandidates(pop *Population, offspring *mat.Dense) ([]*Individual, []float64, error) {
	current, err := pop.Scores()
	if err != nil {
		return nil, nil, err
	}
	rows, _ := offspring.Dims()

	candidates := make([]*Individual, 0, pop.Size()+rows)
	scores := make([]float64, 0, pop.Size()+rows)
	candidates = append(candidates, pop.Individuals()...)
	scores = append(scores, current...)

	for i := 0; i < rows; i++ {
		genes := mat.Row(nil, i, offspring)
		score, err := evaluate(e.fitness, genes)
		if err != nil {
			return nil, nil, err
		}
		candidates = append(candidates, newScoredIndividual(genes, score))
		scores = append(scores, score)
	}
	return candidates, scores, nil
}

// recordSolution keeps the best-ever solution. A generation best that ties
// the recorded score replaces it.
func (e *Evolution) recordSolution(genes []float64, score float64) {
	if e.hasSolution && better(e.solution.BestScore, score) {
		return
	}
	improved := !e.hasSolution || better(score, e.solution.BestScore)

	best := make([]float64, len(genes))
	copy(best, genes)
	e.solution = Solution{BestIndividual: best, BestScore: score}
	e.hasSolution = true

	if improved {
		e.logger.Info("new best solution",
			zap.Int("generation", e.generation),
			zap.Float64("score", score),
			zap.Float64s("genes", best),
		)
	}
}

// Solution returns the best solution found so far. The second result is
// false until a step has completed.
func (e *Evolution) Solution() (Solution, bool) {
	return e.solution, e.hasSolution
}

// Generation returns the number of completed steps.
func (e *Evolution) Generation() int {
	return e.generation
}

// Population returns the current generation.
func (e *Evolution) Population() *Population {
	return e.population
}

// History returns the statistics of every completed step, oldest first.
func (e *Evolution) History() []GenerationStats {
	return e.history
}

// Run calls Step up to generations times; a non-positive value falls back
// to Config.Run.Generations. It stops early when ctx is done, returning the
// context error, or when the best score reaches Config.Run.FitnessThreshold
// unless NoFitnessTermination is set.
func (e *Evolution) Run(ctx context.Context, generations int) (Solution, error) {
	if generations <= 0 {
		generations = e.Config.Run.Generations
	}
	if generations <= 0 {
		return e.solution, &ConfigError{Field: "generations", Reason: "must be positive"}
	}

	for i := 0; i < generations; i++ {
		if err := ctx.Err(); err != nil {
			return e.solution, err
		}
		if err := e.Step(); err != nil {
			return e.solution, err
		}
		if !e.Config.Run.NoFitnessTermination && e.solution.BestScore >= e.Config.Run.FitnessThreshold {
			e.logger.Info("fitness threshold met",
				zap.Int("generation", e.generation),
				zap.Float64("threshold", e.Config.Run.FitnessThreshold),
			)
			break
		}
	}
	return e.solution, nil
}
