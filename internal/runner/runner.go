// Package runner drives an epidemic engine the way a presentation loop does:
// step, publish the result, check for activity, wait, repeat.
package runner

import (
	"context"
	"log/slog"
	"time"

	"epi-ca/internal/sims/epidemic"
)

// Observer receives the outcome of every tick. Tick 0 is the initial state
// with a nil change set.
type Observer interface {
	Observe(tick int, changes epidemic.ChangeSet, stats epidemic.Statistics, elapsed time.Duration)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(tick int, changes epidemic.ChangeSet, stats epidemic.Statistics, elapsed time.Duration)

// Observe calls f.
func (f ObserverFunc) Observe(tick int, changes epidemic.ChangeSet, stats epidemic.Statistics, elapsed time.Duration) {
	f(tick, changes, stats, elapsed)
}

// Options controls pacing and termination.
type Options struct {
	// MaxTicks stops the run after this many steps. Zero runs until the
	// engine is inactive.
	MaxTicks int
	// Interval is the delay between steps. Zero runs unpaced.
	Interval time.Duration
}

// Result summarizes a run.
type Result struct {
	Ticks    int                 `json:"ticks"`
	Final    epidemic.Statistics `json:"final"`
	PeakSick int                 `json:"peak_sick"`
	PeakTick int                 `json:"peak_tick"`
	// Halted is true when the run ended because no cell was sick.
	Halted bool `json:"halted"`
}

// Run steps eng until it is inactive, MaxTicks is reached or ctx is done.
// On cancellation it returns the partial result together with ctx.Err().
func Run(ctx context.Context, eng *epidemic.Engine, opts Options, observers ...Observer) (Result, error) {
	stats := eng.Statistics()
	res := Result{PeakSick: stats.Sick, PeakTick: eng.Tick()}
	notify(observers, eng.Tick(), nil, stats, 0)

	var timer *time.Timer
	if opts.Interval > 0 {
		timer = time.NewTimer(opts.Interval)
		defer timer.Stop()
	}

	for eng.IsActive() {
		if opts.MaxTicks > 0 && res.Ticks >= opts.MaxTicks {
			break
		}
		if err := ctx.Err(); err != nil {
			res.Final = eng.Statistics()
			return res, err
		}

		start := time.Now()
		changes := eng.Step()
		elapsed := time.Since(start)
		res.Ticks++

		stats = eng.Statistics()
		if stats.Sick > res.PeakSick {
			res.PeakSick = stats.Sick
			res.PeakTick = eng.Tick()
		}
		notify(observers, eng.Tick(), changes, stats, elapsed)

		if timer == nil || !eng.IsActive() {
			continue
		}
		select {
		case <-ctx.Done():
			res.Final = eng.Statistics()
			return res, ctx.Err()
		case <-timer.C:
			timer.Reset(opts.Interval)
		}
	}

	res.Final = eng.Statistics()
	res.Halted = !eng.IsActive()
	return res, nil
}

func notify(observers []Observer, tick int, changes epidemic.ChangeSet, stats epidemic.Statistics, elapsed time.Duration) {
	for _, o := range observers {
		o.Observe(tick, changes, stats, elapsed)
	}
}

// LogEvery returns an observer that logs the statistics every n ticks and
// whenever the epidemic ends.
func LogEvery(logger *slog.Logger, n int) Observer {
	if n <= 0 {
		n = 1
	}
	return ObserverFunc(func(tick int, changes epidemic.ChangeSet, stats epidemic.Statistics, elapsed time.Duration) {
		if tick%n != 0 && stats.Sick > 0 {
			return
		}
		logger.Info("tick",
			"tick", tick,
			"changed", len(changes),
			"healthy", stats.Healthy,
			"sick", stats.Sick,
			"immune", stats.Immune,
			"dead", stats.Dead,
			"step", elapsed,
		)
	})
}
