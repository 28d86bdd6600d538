// Package sweep runs many epidemic configurations in parallel and reports
// how each one played out.
package sweep

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync"

	"epi-ca/internal/runner"
	"epi-ca/internal/sims/epidemic"
)

// Scenario overrides the transmission parameters of the base configuration.
type Scenario struct {
	InfectionProbability float64
	DeathProbability     float64
}

func (s Scenario) String() string {
	return fmt.Sprintf("p0=%.3f d0=%.3f", s.InfectionProbability, s.DeathProbability)
}

// Outcome is the result of running one scenario.
type Outcome struct {
	Scenario Scenario
	Result   runner.Result
	Err      error
}

// Options controls the pool and each run.
type Options struct {
	Workers  int
	MaxTicks int
}

// Grid returns the cartesian product of the given probabilities.
func Grid(infection, death []float64) []Scenario {
	out := make([]Scenario, 0, len(infection)*len(death))
	for _, p := range infection {
		for _, d := range death {
			out = append(out, Scenario{InfectionProbability: p, DeathProbability: d})
		}
	}
	return out
}

// ParseList parses a comma separated list of probabilities.
func ParseList(field, raw string) ([]float64, error) {
	var out []float64
	for _, part := range strings.Split(raw, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		v, err := epidemic.ParseFloat(field, part)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, &epidemic.ConfigurationError{Field: field, Value: raw, Reason: "empty list"}
	}
	return out, nil
}

type job struct {
	idx      int
	scenario Scenario
}

// Run evaluates every scenario against base on a bounded worker pool. Every
// scenario starts from base.Seed, so outcomes do not depend on scheduling.
// Outcomes are returned in scenario order. A cancelled context stops the
// remaining runs and is reported as the returned error.
func Run(ctx context.Context, base epidemic.Config, scenarios []Scenario, opts Options) ([]Outcome, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(scenarios) {
		workers = len(scenarios)
	}

	outcomes := make([]Outcome, len(scenarios))
	jobs := make(chan job)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				outcomes[j.idx] = runScenario(ctx, base, j.scenario, opts.MaxTicks)
			}
		}()
	}

feed:
	for i, s := range scenarios {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- job{idx: i, scenario: s}:
		}
	}
	close(jobs)
	wg.Wait()

	return outcomes, ctx.Err()
}

func runScenario(ctx context.Context, base epidemic.Config, s Scenario, maxTicks int) Outcome {
	cfg := base
	cfg.InfectionProbability = s.InfectionProbability
	cfg.DeathProbability = s.DeathProbability

	out := Outcome{Scenario: s}
	eng, err := epidemic.NewSeeded(cfg)
	if err != nil {
		out.Err = err
		return out
	}
	out.Result, out.Err = runner.Run(ctx, eng, runner.Options{MaxTicks: maxTicks})
	return out
}

// SortByDeaths orders outcomes by final death toll, highest first. Failed
// outcomes sort last.
func SortByDeaths(outcomes []Outcome) {
	sort.SliceStable(outcomes, func(i, j int) bool {
		a, b := outcomes[i], outcomes[j]
		if (a.Err == nil) != (b.Err == nil) {
			return a.Err == nil
		}
		return a.Result.Final.Dead > b.Result.Final.Dead
	})
}
