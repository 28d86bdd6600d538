// Package metrics exposes simulation progress as Prometheus metrics.
//
//	epica_ticks_total                      steps executed
//	epica_cells{state}                     population per health state
//	epica_transitions_total{state}         committed transitions by new state
//	epica_step_duration_seconds            wall time of one step
package metrics

import (
	"net/http"
	"time"

	"epi-ca/internal/sims/epidemic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records per-tick simulation metrics. It implements runner.Observer.
type Collector struct {
	ticks        prometheus.Counter
	cells        *prometheus.GaugeVec
	transitions  *prometheus.CounterVec
	stepDuration prometheus.Histogram

	gatherer prometheus.Gatherer
}

// NewCollector creates the metrics and registers them on a private registry.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	c := newCollector(reg)
	c.gatherer = reg
	return c
}

// NewCollectorWith registers the metrics on reg.
func NewCollectorWith(reg *prometheus.Registry) *Collector {
	c := newCollector(reg)
	c.gatherer = reg
	return c
}

func newCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "epica_ticks_total",
			Help: "Total number of simulation steps executed",
		}),
		cells: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "epica_cells",
			Help: "Number of cells per health state",
		}, []string{"state"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "epica_transitions_total",
			Help: "Committed cell transitions by the state entered",
		}, []string{"state"}),
		stepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "epica_step_duration_seconds",
			Help:    "Wall time spent in one simulation step",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
	}
	reg.MustRegister(c.ticks, c.cells, c.transitions, c.stepDuration)
	for _, s := range epidemic.States {
		c.transitions.WithLabelValues(s.String())
	}
	return c
}

// Observe records one tick. Tick 0 only sets the population gauges.
func (c *Collector) Observe(tick int, changes epidemic.ChangeSet, stats epidemic.Statistics, elapsed time.Duration) {
	for _, s := range epidemic.States {
		c.cells.WithLabelValues(s.String()).Set(float64(stats.Count(s)))
	}
	if tick == 0 {
		return
	}
	c.ticks.Inc()
	c.stepDuration.Observe(elapsed.Seconds())

	var byState [len(epidemic.States)]int
	for _, ch := range changes {
		byState[ch.State]++
	}
	for _, s := range epidemic.States {
		if n := byState[s]; n > 0 {
			c.transitions.WithLabelValues(s.String()).Add(float64(n))
		}
	}
}

// Handler serves the collected metrics in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}
