package functions

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptimaScoreZero(t *testing.T) {
	assert.Equal(t, 0.0, Sphere([]float64{0, 0, 0}))
	assert.InDelta(t, 0.0, Rastrigin([]float64{0, 0}), 1e-12)
	assert.Equal(t, 0.0, Rosenbrock([]float64{1, 1, 1}))

	assert.Equal(t, -5.0, Sphere([]float64{1, 2}))
	assert.Less(t, Rastrigin([]float64{0.5, 0.5}), 0.0)
	assert.Less(t, Rosenbrock([]float64{0, 0}), 0.0)
}

func TestWave(t *testing.T) {
	x, y := 1.5, -1.0
	want := x * (x - 1) * math.Cos(2*x-1) * math.Sin(2*x-1) * (y - 2)
	assert.Equal(t, want, Wave([]float64{x, y}))
	assert.Equal(t, 0.0, Wave([]float64{1, 5}))
}

func TestLookup(t *testing.T) {
	f, err := Lookup(" Sphere ", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, f.Arity())
	score, err := f.Evaluate([]float64{1, 1, 1})
	require.NoError(t, err)
	assert.Equal(t, -3.0, score)

	_, err = Lookup("ackley", 2)
	assert.Error(t, err)
	_, err = Lookup("wave", 3)
	assert.Error(t, err)
	_, err = Lookup("rosenbrock", 1)
	assert.Error(t, err)
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"rastrigin", "rosenbrock", "sphere", "wave"}, Names())
}
