package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/baldhumanity/simple-ga/ga"
)

// Collector exports evolution progress as Prometheus metrics.
// It implements ga.Observer.
type Collector struct {
	StepsTotal   prometheus.Counter
	Generation   prometheus.Gauge
	BestScore    prometheus.Gauge
	MeanScore    prometheus.Gauge
	ScoreStdDev  prometheus.Gauge
	StepDuration prometheus.Histogram
}

// NewCollector creates the metrics and registers them with reg. A nil
// registerer leaves them unregistered.
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		StepsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "ga_steps_total",
			Help: "Total number of completed evolution steps",
		}),
		Generation: factory.NewGauge(prometheus.GaugeOpts{
			Name: "ga_generation",
			Help: "Generation number of the current population",
		}),
		BestScore: factory.NewGauge(prometheus.GaugeOpts{
			Name: "ga_best_score",
			Help: "Best fitness score in the current population",
		}),
		MeanScore: factory.NewGauge(prometheus.GaugeOpts{
			Name: "ga_mean_score",
			Help: "Mean fitness score of the current population",
		}),
		ScoreStdDev: factory.NewGauge(prometheus.GaugeOpts{
			Name: "ga_score_stddev",
			Help: "Standard deviation of fitness scores in the current population",
		}),
		StepDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "ga_step_duration_seconds",
			Help:    "Evolution step latency in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
	}
}

// ObserveStep records the statistics of one completed step.
func (c *Collector) ObserveStep(stats ga.GenerationStats) {
	c.StepsTotal.Inc()
	c.Generation.Set(float64(stats.Generation))
	c.BestScore.Set(stats.Best)
	c.MeanScore.Set(stats.Mean)
	c.ScoreStdDev.Set(stats.StdDev)
	c.StepDuration.Observe(stats.Duration.Seconds())
}
