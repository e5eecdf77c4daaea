package ga

import (
	"math"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/stat"
)

// clamp restricts a value to a given range [minVal, maxVal].
func clamp(value, minVal, maxVal float64) float64 {
	return math.Max(minVal, math.Min(value, maxVal))
}

// NewRand returns a PCG-backed random source. A zero seed is replaced by
// the current time, so only non-zero seeds give reproducible runs.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// GenerationStats summarises the surviving population after one step.
type GenerationStats struct {
	Generation int
	Best       float64
	Worst      float64
	Mean       float64
	StdDev     float64 // sample standard deviation; 0 for a single individual
	Candidates int     // parents plus offspring ranked during the step
	Duration   time.Duration
}

// summarize computes statistics over scores sorted best first.
func summarize(generation int, sorted []float64, candidates int, elapsed time.Duration) GenerationStats {
	gs := GenerationStats{
		Generation: generation,
		Best:       sorted[0],
		Worst:      sorted[len(sorted)-1],
		Mean:       stat.Mean(sorted, nil),
		Candidates: candidates,
		Duration:   elapsed,
	}
	if len(sorted) > 1 {
		gs.StdDev = stat.StdDev(sorted, nil)
	}
	return gs
}
