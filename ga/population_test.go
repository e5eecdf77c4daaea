package ga

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

var sum2 = Func2(func(x, y float64) float64 { return x + y })

func rows(m *mat.Dense) [][]float64 {
	r, _ := m.Dims()
	out := make([][]float64, r)
	for i := range out {
		out[i] = mat.Row(nil, i, m)
	}
	return out
}

func TestNewPopulation(t *testing.T) {
	cfg := testConfig(3, 12, 4, 6)
	pop, err := NewPopulation(cfg, FuncN(3, func([]float64) float64 { return 0 }), NewRand(1))
	require.NoError(t, err)

	require.Equal(t, 12, pop.Size())
	for _, ind := range pop.Individuals() {
		require.Len(t, ind.Values(), 3)
	}
}

func TestNewPopulationFromValuesEnforcesSize(t *testing.T) {
	cfg := testConfig(2, 3, 2, 2)
	_, err := NewPopulationFromValues(cfg, sum2, NewRand(1), [][]float64{{0, 0}, {1, 1}})
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = NewPopulationFromValues(cfg, sum2, NewRand(1), [][]float64{{0, 0}, {1, 1}, {2}})
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = NewPopulationFromValues(cfg, nil, NewRand(1), [][]float64{{0, 0}, {1, 1}, {2, 2}})
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestGetParentsSelectsFittest(t *testing.T) {
	cfg := testConfig(2, 3, 2, 2)
	pop, err := NewPopulationFromValues(cfg, sum2, NewRand(1), [][]float64{{0, 0}, {1, 1}, {2, 2}})
	require.NoError(t, err)

	parents, err := pop.GetParents(2)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{2, 2}, {1, 1}}, rows(parents))
}

func TestGetParentsTiesKeepPopulationOrder(t *testing.T) {
	cfg := testConfig(2, 4, 4, 2)
	pop, err := NewPopulationFromValues(cfg, sum2, NewRand(1), [][]float64{{1, 0}, {3, 3}, {0, 1}, {0.5, 0.5}})
	require.NoError(t, err)

	parents, err := pop.GetParents(4)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{3, 3}, {1, 0}, {0, 1}, {0.5, 0.5}}, rows(parents))
}

func TestGetParentsNaNRanksLast(t *testing.T) {
	cfg := testConfig(1, 3, 3, 1)
	f := FuncN(1, func(genes []float64) float64 {
		if genes[0] == 0 {
			return nan()
		}
		return genes[0]
	})
	pop, err := NewPopulationFromValues(cfg, f, NewRand(1), [][]float64{{0}, {-1}, {2}})
	require.NoError(t, err)

	parents, err := pop.GetParents(3)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{2}, {-1}, {0}}, rows(parents))
}

func TestGetParentsErrors(t *testing.T) {
	cfg := testConfig(2, 3, 2, 2)
	values := [][]float64{{0, 0}, {1, 1}, {2, 2}}

	pop, err := NewPopulationFromValues(cfg, sum2, NewRand(1), values)
	require.NoError(t, err)
	_, err = pop.GetParents(4)
	assert.ErrorIs(t, err, ErrConfiguration)
	_, err = pop.GetParents(0)
	assert.ErrorIs(t, err, ErrConfiguration)

	// fitness takes three genes, individuals carry two
	wide := FuncN(3, func([]float64) float64 { return 0 })
	pop, err = NewPopulationFromValues(cfg, wide, NewRand(1), values)
	require.NoError(t, err)
	_, err = pop.GetParents(2)
	var fitErr *FitnessEvaluationError
	assert.ErrorAs(t, err, &fitErr)

	boom := errors.New("boom")
	failing := NewFitness(2, func([]float64) (float64, error) { return 0, boom })
	pop, err = NewPopulationFromValues(cfg, failing, NewRand(1), values)
	require.NoError(t, err)
	_, err = pop.GetParents(2)
	assert.ErrorIs(t, err, boom)
	require.ErrorAs(t, err, &fitErr)
	assert.Equal(t, []float64{0, 0}, fitErr.Genes)
}

func TestCrossoverSplicesHalves(t *testing.T) {
	cfg := testConfig(4, 2, 2, 2)
	pop, err := NewPopulationFromValues(cfg, FuncN(4, func([]float64) float64 { return 0 }), NewRand(1),
		[][]float64{{1, 2, 3, 4}, {5, 6, 7, 8}})
	require.NoError(t, err)

	parents := mat.NewDense(2, 4, []float64{1, 2, 3, 4, 5, 6, 7, 8})
	offspring, err := pop.Crossover(parents)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 2, 7, 8}, {5, 6, 3, 4}}, rows(offspring))

	// parents are not modified
	assert.Equal(t, [][]float64{{1, 2, 3, 4}, {5, 6, 7, 8}}, rows(parents))
}

func TestCrossoverCyclesParents(t *testing.T) {
	cfg := testConfig(3, 3, 3, 4)
	pop, err := NewPopulation(cfg, FuncN(3, func([]float64) float64 { return 0 }), NewRand(1))
	require.NoError(t, err)

	parents := mat.NewDense(3, 3, []float64{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	})
	offspring, err := pop.Crossover(parents)
	require.NoError(t, err)
	// odd gene count: crossover point is 1
	assert.Equal(t, [][]float64{
		{1, 5, 6},
		{4, 8, 9},
		{7, 2, 3},
		{1, 5, 6},
	}, rows(offspring))
}

func TestCrossoverSingleParent(t *testing.T) {
	cfg := testConfig(2, 2, 1, 3)
	pop, err := NewPopulation(cfg, sum2, NewRand(1))
	require.NoError(t, err)

	offspring, err := pop.Crossover(mat.NewDense(1, 2, []float64{3, 4}))
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{3, 4}, {3, 4}, {3, 4}}, rows(offspring))
}

func TestCrossoverShapeMismatch(t *testing.T) {
	cfg := testConfig(4, 2, 2, 2)
	pop, err := NewPopulation(cfg, FuncN(4, func([]float64) float64 { return 0 }), NewRand(1))
	require.NoError(t, err)

	_, err = pop.Crossover(mat.NewDense(2, 3, nil))
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = pop.Crossover(nil)
	assert.Error(t, err)
}

func TestMutateChangesOneGenePerRow(t *testing.T) {
	cfg := testConfig(5, 2, 2, 8)
	cfg.Individual.LowerBound, cfg.Individual.UpperBound = -100, 100
	cfg.Population.MutationMean, cfg.Population.MutationSD = 1, 0.1
	pop, err := NewPopulation(cfg, FuncN(5, func([]float64) float64 { return 0 }), NewRand(3))
	require.NoError(t, err)

	offspring := mat.NewDense(8, 5, nil)
	before := rows(offspring)
	mutated := pop.Mutate(offspring)

	assert.Equal(t, before, rows(offspring), "input matrix must not be modified")
	for i, row := range rows(mutated) {
		changed := 0
		for j, v := range row {
			if v != before[i][j] {
				changed++
			}
		}
		assert.Equal(t, 1, changed, "row %d", i)
	}
}

func TestMutateClampsEveryGene(t *testing.T) {
	cfg := testConfig(3, 2, 2, 3)
	cfg.Individual.LowerBound, cfg.Individual.UpperBound = 0, 1
	cfg.Population.MutationMean, cfg.Population.MutationSD = 5, 1
	pop, err := NewPopulation(cfg, FuncN(3, func([]float64) float64 { return 0 }), NewRand(5))
	require.NoError(t, err)

	offspring := mat.NewDense(3, 3, []float64{
		2, -1, 0.5,
		0.2, 0.3, 7,
		-3, 0.9, 0.1,
	})
	mutated := pop.Mutate(offspring)

	r, c := mutated.Dims()
	require.Equal(t, 3, r)
	require.Equal(t, 3, c)
	for _, row := range rows(mutated) {
		for _, v := range row {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}
}

func TestPopulationBest(t *testing.T) {
	cfg := testConfig(2, 3, 2, 2)
	pop, err := NewPopulationFromValues(cfg, sum2, NewRand(1), [][]float64{{0, 0}, {2, 2}, {1, 3}})
	require.NoError(t, err)

	best, score, err := pop.Best()
	require.NoError(t, err)
	assert.Equal(t, 4.0, score)
	assert.Equal(t, []float64{2, 2}, best.Values())
}
