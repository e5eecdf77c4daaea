package ga

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIndividualWithinBounds(t *testing.T) {
	cfg := IndividualConfig{LowerBound: 1, UpperBound: 10, NumberOfGenes: 100}
	ind, err := NewIndividual(cfg, NewRand(1))
	require.NoError(t, err)

	values := ind.Values()
	require.Len(t, values, 100)
	for _, v := range values {
		assert.GreaterOrEqual(t, v, 1.0)
		assert.LessOrEqual(t, v, 10.0)
	}
}

func TestNewIndividualIsSeeded(t *testing.T) {
	cfg := IndividualConfig{LowerBound: -1, UpperBound: 1, NumberOfGenes: 5}
	a, err := NewIndividual(cfg, NewRand(99))
	require.NoError(t, err)
	b, err := NewIndividual(cfg, NewRand(99))
	require.NoError(t, err)
	assert.Equal(t, a.Values(), b.Values())
}

func TestNewIndividualErrors(t *testing.T) {
	_, err := NewIndividual(IndividualConfig{LowerBound: 0, UpperBound: 1, NumberOfGenes: 2}, nil)
	assert.Error(t, err)

	_, err = NewIndividual(IndividualConfig{LowerBound: 0, UpperBound: 1, NumberOfGenes: 0}, NewRand(1))
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestNewIndividualFromValues(t *testing.T) {
	cfg := IndividualConfig{LowerBound: 0, UpperBound: 1, NumberOfGenes: 3}

	// explicit vectors skip the bounds check
	ind, err := NewIndividualFromValues(cfg, []float64{-4, 0.5, 9})
	require.NoError(t, err)
	assert.Equal(t, []float64{-4, 0.5, 9}, ind.Values())

	_, err = NewIndividualFromValues(cfg, []float64{1, 2})
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestIndividualFitnessIsCached(t *testing.T) {
	calls := 0
	f := FuncN(2, func(genes []float64) float64 {
		calls++
		return genes[0] + genes[1]
	})
	ind, err := NewIndividualFromValues(IndividualConfig{NumberOfGenes: 2}, []float64{1, 2})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		score, err := ind.Fitness(f)
		require.NoError(t, err)
		assert.Equal(t, 3.0, score)
	}
	assert.Equal(t, 1, calls)
}
