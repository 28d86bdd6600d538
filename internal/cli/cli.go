// Package cli implements the epica command: headless epidemic runs,
// parameter sweeps and preset listings.
//
//	epica run      run one simulation until no cell is sick
//	epica sweep    run a grid of infection/death probabilities in parallel
//	epica presets  list the built-in configurations
//
// Every command reads the YAML file named by --config (default
// configs/default.yaml, silently skipped when absent) on top of the preset
// chosen with --preset.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"epi-ca/internal/core"
	"epi-ca/internal/metrics"
	"epi-ca/internal/render"
	"epi-ca/internal/report"
	"epi-ca/internal/runner"
	"epi-ca/internal/sims/epidemic"
	"epi-ca/internal/sweep"

	"github.com/spf13/cobra"
)

const defaultConfigPath = "configs/default.yaml"

type rootOptions struct {
	configFile string
	preset     string
	overrides  []string
}

// load reads the config file and applies --set overrides to the simulation.
func (o *rootOptions) load(cmd *cobra.Command) (*Config, error) {
	cfg, err := loadConfig(o.configFile, o.preset, cmd.Flags().Changed("config"))
	if err != nil {
		return nil, err
	}
	overrides, err := parseOverrides(o.overrides)
	if err != nil {
		return nil, err
	}
	sim, err := epidemic.ApplyMap(cfg.Simulation, overrides)
	if err != nil {
		return nil, err
	}
	cfg.Simulation = sim
	return cfg, nil
}

func parseOverrides(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("--set expects key=value, got %q", pair)
		}
		out[key] = value
	}
	return out, nil
}

// BuildCLI assembles the root command.
func BuildCLI() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:   "epica",
		Short: "epica: a grid epidemic simulator",
		Long: `epica runs a cellular automaton in which sick cells infect their
neighbours, then die or recover with temporary immunity.`,
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", defaultConfigPath, "config file path")
	rootCmd.PersistentFlags().StringVarP(&opts.preset, "preset", "p", epidemic.DefaultPreset, "base configuration ("+strings.Join(epidemic.PresetNames(), ", ")+")")
	rootCmd.PersistentFlags().StringArrayVar(&opts.overrides, "set", nil, "override a simulation parameter as key=value (repeatable)")

	rootCmd.AddCommand(buildRunCommand(opts))
	rootCmd.AddCommand(buildSweepCommand(opts))
	rootCmd.AddCommand(buildPresetsCommand())

	return rootCmd
}

type runFlags struct {
	seed        int64
	maxTicks    int
	tps         int
	logEvery    int
	metricsAddr string
	chart       string
	frame       string
	frameScale  int
}

func buildRunCommand(opts *rootOptions) *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one simulation until the epidemic ends",
		Long: `Run one simulation and print its final statistics as JSON.
The run ends when no cell is sick, after --max-ticks steps, or on SIGINT/SIGTERM.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("seed") {
				cfg.Simulation.Seed = f.seed
			}
			if flags.Changed("max-ticks") {
				cfg.Run.MaxTicks = f.maxTicks
			}
			if flags.Changed("tps") {
				cfg.Run.TPS = f.tps
			}
			if flags.Changed("log-every") {
				cfg.Run.LogEvery = f.logEvery
			}
			if flags.Changed("metrics-addr") {
				cfg.Metrics.Enabled = true
				cfg.Metrics.Addr = f.metricsAddr
			}

			logger, err := newLogger(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runSimulation(ctx, cmd.OutOrStdout(), logger, opts.preset, cfg, f)
		},
	}

	cmd.Flags().Int64Var(&f.seed, "seed", 0, "random seed (overrides the config)")
	cmd.Flags().IntVar(&f.maxTicks, "max-ticks", 0, "stop after this many ticks (0 = until no cell is sick; with death_probability=0 that may never happen)")
	cmd.Flags().IntVar(&f.tps, "tps", 0, "ticks per second (0 = as fast as possible)")
	cmd.Flags().IntVar(&f.logEvery, "log-every", 10, "log statistics every N ticks")
	cmd.Flags().StringVar(&f.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	cmd.Flags().StringVar(&f.chart, "chart", "", "write the epidemic curve to this PNG file")
	cmd.Flags().StringVar(&f.frame, "frame", "", "write the final grid to this PNG file")
	cmd.Flags().IntVar(&f.frameScale, "frame-scale", 2, "pixels per cell in --frame output")

	return cmd
}

type runSummary struct {
	Preset string          `json:"preset"`
	Config epidemic.Config `json:"config"`
	runner.Result
}

func runSimulation(ctx context.Context, out io.Writer, logger *slog.Logger, preset string, cfg *Config, f runFlags) error {
	eng, err := epidemic.NewSeeded(cfg.Simulation)
	if err != nil {
		return err
	}
	logger.Info("starting run",
		"preset", preset,
		"size", cfg.Simulation.Size,
		"infection_probability", cfg.Simulation.InfectionProbability,
		"death_probability", cfg.Simulation.DeathProbability,
		"initial_sick", cfg.Simulation.InitialSick,
		"seed", cfg.Simulation.Seed,
	)

	observers := []runner.Observer{runner.LogEvery(logger, cfg.Run.LogEvery)}

	if cfg.Metrics.Enabled {
		collector := metrics.NewCollector()
		observers = append(observers, collector)
		shutdown, err := serveMetrics(logger, cfg.Metrics.Addr, collector.Handler())
		if err != nil {
			return err
		}
		defer shutdown()
	}

	var history *report.History
	if f.chart != "" {
		history = report.NewHistory()
		observers = append(observers, history)
	}

	var canvas *render.Canvas
	if f.frame != "" {
		canvas = render.NewCanvas(cfg.Simulation.Size)
		canvas.Redraw(eng.Cells())
		observers = append(observers, runner.ObserverFunc(func(_ int, changes epidemic.ChangeSet, _ epidemic.Statistics, _ time.Duration) {
			canvas.Apply(changes)
		}))
	}

	opts := runner.Options{MaxTicks: cfg.Run.MaxTicks}
	if cfg.Run.TPS > 0 {
		opts.Interval = core.NewFixedStep(cfg.Run.TPS).Interval()
	}

	res, err := runner.Run(ctx, eng, opts, observers...)
	switch {
	case errors.Is(err, context.Canceled):
		logger.Warn("run interrupted", "tick", eng.Tick())
	case err != nil:
		return fmt.Errorf("run: %w", err)
	}
	logger.Info("run finished", "ticks", res.Ticks, "halted", res.Halted, "peak_sick", res.PeakSick, "peak_tick", res.PeakTick)

	if history != nil {
		err := report.WriteChart(f.chart, history, report.DefaultChartOptions())
		switch {
		case errors.Is(err, report.ErrNotEnoughSamples):
			logger.Warn("skipping chart", "path", f.chart, "ticks", res.Ticks, "err", err)
		case err != nil:
			return fmt.Errorf("write chart: %w", err)
		default:
			logger.Info("wrote chart", "path", f.chart)
		}
	}
	if canvas != nil {
		if err := canvas.WritePNG(f.frame, f.frameScale); err != nil {
			return fmt.Errorf("write frame: %w", err)
		}
		logger.Info("wrote frame", "path", f.frame)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(runSummary{Preset: preset, Config: cfg.Simulation, Result: res})
}

// serveMetrics starts the /metrics endpoint and returns a function that shuts
// it down.
func serveMetrics(logger *slog.Logger, addr string, handler http.Handler) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("metrics listener: %w", err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "err", err)
		}
	}()
	logger.Info("serving metrics", "addr", ln.Addr().String())

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Warn("metrics server shutdown", "err", err)
		}
	}, nil
}

func buildSweepCommand(opts *rootOptions) *cobra.Command {
	var (
		infection string
		death     string
		workers   int
		maxTicks  int
	)
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run a grid of infection and death probabilities",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			ps, err := sweep.ParseList(epidemic.KeyInfectionProbability, infection)
			if err != nil {
				return err
			}
			ds, err := sweep.ParseList(epidemic.KeyDeathProbability, death)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			scenarios := sweep.Grid(ps, ds)
			outcomes, err := sweep.Run(ctx, cfg.Simulation, scenarios, sweep.Options{Workers: workers, MaxTicks: maxTicks})
			if err != nil {
				return fmt.Errorf("sweep: %w", err)
			}
			sweep.SortByDeaths(outcomes)
			return writeOutcomes(cmd.OutOrStdout(), outcomes)
		},
	}

	cmd.Flags().StringVar(&infection, "infection", "0.1,0.2,0.3", "comma separated infection probabilities")
	cmd.Flags().StringVar(&death, "death", "0.05,0.1", "comma separated death probabilities")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel runs (0 = number of CPUs)")
	cmd.Flags().IntVar(&maxTicks, "max-ticks", 0, "stop each run after this many ticks (0 = until no cell is sick; with death_probability=0 that may never happen)")

	return cmd
}

func writeOutcomes(w io.Writer, outcomes []sweep.Outcome) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "INFECTION\tDEATH\tTICKS\tPEAK SICK\tPEAK TICK\tHEALTHY\tIMMUNE\tDEAD")
	for _, o := range outcomes {
		if o.Err != nil {
			fmt.Fprintf(tw, "%.3f\t%.3f\terror: %v\t\t\t\t\t\n", o.Scenario.InfectionProbability, o.Scenario.DeathProbability, o.Err)
			continue
		}
		r := o.Result
		fmt.Fprintf(tw, "%.3f\t%.3f\t%d\t%d\t%d\t%d\t%d\t%d\n",
			o.Scenario.InfectionProbability, o.Scenario.DeathProbability,
			r.Ticks, r.PeakSick, r.PeakTick, r.Final.Healthy, r.Final.Immune, r.Final.Dead)
	}
	return tw.Flush()
}

func buildPresetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the built-in configurations",
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tSIZE\tINFECTION\tDEATH\tINITIAL SICK\tSICK TICKS\tIMMUNE TICKS")
			for _, name := range epidemic.PresetNames() {
				p, _ := epidemic.Preset(name)
				fmt.Fprintf(tw, "%s\t%d\t%.4f\t%.4f\t%d\t%d\t%d\n",
					name, p.Size, p.InfectionProbability, p.DeathProbability,
					p.InitialSick, p.SickDuration, p.ImmuneDuration)
			}
			return tw.Flush()
		},
	}
}
