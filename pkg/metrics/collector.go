package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/searchkit/pkg/dispatch"
)

const namespace = "searchkit"

// Collector turns dispatch attempts into Prometheus series.
// Register it once; Hook may be shared by many clients.
type Collector struct {
	attempts *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewCollector creates unregistered attempt metrics.
func NewCollector() *Collector {
	return &Collector{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "attempts_total",
			Help:      "Host attempts by pool class and outcome.",
		}, []string{"host", "class", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "attempt_duration_seconds",
			Help:      "Duration of host attempts.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2, 5, 10, 20},
		}, []string{"host", "class"}),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.attempts.Describe(ch)
	c.duration.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.attempts.Collect(ch)
	c.duration.Collect(ch)
}

// Observe records one attempt.
func (c *Collector) Observe(a dispatch.Attempt) {
	class := a.Class.String()
	c.attempts.WithLabelValues(a.Host, class, a.Outcome.String()).Inc()
	c.duration.WithLabelValues(a.Host, class).Observe(a.Duration.Seconds())
}

// Hook returns Observe as a dispatch attempt hook.
func (c *Collector) Hook() dispatch.AttemptHook {
	return c.Observe
}
