// Package report keeps the statistics of a run in memory and renders them
// as an epidemic curve.
package report

import (
	"time"

	"epi-ca/internal/sims/epidemic"
)

// Sample is the population breakdown after one tick.
type Sample struct {
	Tick  int                 `json:"tick"`
	Stats epidemic.Statistics `json:"stats"`
}

// History accumulates one Sample per observed tick. It implements runner.Observer.
type History struct {
	samples []Sample
}

// NewHistory returns an empty history.
func NewHistory() *History { return &History{} }

// Observe appends the statistics for tick.
func (h *History) Observe(tick int, _ epidemic.ChangeSet, stats epidemic.Statistics, _ time.Duration) {
	h.samples = append(h.samples, Sample{Tick: tick, Stats: stats})
}

// Samples returns the recorded samples in tick order.
func (h *History) Samples() []Sample { return h.samples }

// Len returns the number of samples.
func (h *History) Len() int { return len(h.samples) }

// Series returns the tick axis and one count series per health state.
func (h *History) Series() (ticks []float64, counts map[epidemic.HealthState][]float64) {
	ticks = make([]float64, len(h.samples))
	counts = make(map[epidemic.HealthState][]float64, len(epidemic.States))
	for _, s := range epidemic.States {
		counts[s] = make([]float64, len(h.samples))
	}
	for i, sample := range h.samples {
		ticks[i] = float64(sample.Tick)
		for _, s := range epidemic.States {
			counts[s][i] = float64(sample.Stats.Count(s))
		}
	}
	return ticks, counts
}
