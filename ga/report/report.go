// Package report turns the step history of a ga.Evolution into summaries
// and plots.
package report

import (
	"errors"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/baldhumanity/simple-ga/ga"
)

// Summary compares the first and last recorded generations.
type Summary struct {
	Generations int
	FirstBest   float64
	LastBest    float64
	Improvement float64
	LastMean    float64
}

// Summarize returns a Summary of history. It returns the zero Summary for an
// empty history.
func Summarize(history []ga.GenerationStats) Summary {
	if len(history) == 0 {
		return Summary{}
	}
	first, last := history[0], history[len(history)-1]
	return Summary{
		Generations: len(history),
		FirstBest:   first.Best,
		LastBest:    last.Best,
		Improvement: last.Best - first.Best,
		LastMean:    last.Mean,
	}
}

// PlotHistory writes a line chart of the best and mean score per generation.
// The image format follows the file extension (png, svg, pdf, ...).
func PlotHistory(history []ga.GenerationStats, path string) error {
	if len(history) == 0 {
		return errors.New("no generations to plot")
	}

	best := make(plotter.XYs, len(history))
	mean := make(plotter.XYs, len(history))
	for i, gs := range history {
		best[i].X = float64(gs.Generation)
		best[i].Y = gs.Best
		mean[i].X = float64(gs.Generation)
		mean[i].Y = gs.Mean
	}

	p := plot.New()
	p.Title.Text = "Fitness history"
	p.X.Label.Text = "Generation"
	p.Y.Label.Text = "Score"
	p.Add(plotter.NewGrid())

	bestLine, err := plotter.NewLine(best)
	if err != nil {
		return fmt.Errorf("failed to build best score line: %w", err)
	}
	meanLine, err := plotter.NewLine(mean)
	if err != nil {
		return fmt.Errorf("failed to build mean score line: %w", err)
	}
	meanLine.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	p.Add(bestLine, meanLine)
	p.Legend.Add("best", bestLine)
	p.Legend.Add("mean", meanLine)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save plot '%s': %w", path, err)
	}
	return nil
}
