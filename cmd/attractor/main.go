package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/san-kum/attractor/internal/config"
	"github.com/san-kum/attractor/internal/ctxlog"
	"github.com/san-kum/attractor/internal/report"
	"github.com/san-kum/attractor/internal/sampler"
	"github.com/san-kum/attractor/internal/search"
	"github.com/san-kum/attractor/internal/viz"
)

var (
	cfg = config.DefaultConfig()
	// Config file
	configFile string
	// Console output
	plot bool
)

// main registers the commands and runs the search when no subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:           "attractor",
		Short:         "search for strange attractors of 2D chaotic maps",
		RunE:          runSearch,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	addSearchFlags(rootCmd.Flags())

	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "sample random maps until enough chaotic attractors are found",
		Args:  cobra.NoArgs,
		RunE:  runSearch,
	}
	addSearchFlags(searchCmd.Flags())

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the search with live terminal visualization",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addSearchFlags(liveCmd.Flags())

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list known attractors",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}
	presetsCmd.Flags().StringVar(&presetsFile, "presets", "", "extra presets file (yaml)")

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write the effective search configuration as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE:  saveConfig,
	}
	addSearchFlags(configCmd.Flags())

	rootCmd.AddCommand(searchCmd, renderCommand(), presetsCmd, liveCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addSearchFlags(fs *pflag.FlagSet) {
	fs.StringVar(&configFile, "config", "", "config file path (yaml)")
	fs.IntVarP(&cfg.Num, "num", "n", cfg.Num, "number of attractors to find")
	fs.IntVar(&cfg.Iterations, "iterations", cfg.Iterations, "iterations per candidate")
	fs.IntVar(&cfg.Width, "width", cfg.Width, "image width")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "image height")
	fs.Float64Var(&cfg.DivergenceLimit, "divergence-limit", cfg.DivergenceLimit, "coordinate magnitude treated as divergence")
	fs.Float64Var(&cfg.ConvergenceLimit, "convergence-limit", cfg.ConvergenceLimit, "per-step change treated as convergence")
	fs.Float64Var(&cfg.LyapunovThreshold, "lyapunov-threshold", cfg.LyapunovThreshold, "minimum accumulated lyapunov sum")
	fs.Float64Var(&cfg.Sensitivity, "sensitivity", cfg.Sensitivity, "shadow perturbation divisor")
	fs.IntVar(&cfg.Warmup, "warmup", cfg.Warmup, "steps before lyapunov accumulation starts")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 = time based)")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "concurrent candidate evaluations")
	fs.IntVar(&cfg.MaxAttempts, "max-attempts", cfg.MaxAttempts, "attempts per attractor (0 = unbounded)")
	fs.DurationVar(&cfg.Budget, "budget", cfg.Budget, "time budget per attractor (0 = none)")
	fs.Uint8Var(&cfg.Intensity, "intensity", cfg.Intensity, "pixel intensity")
	fs.StringVarP(&cfg.Output, "out", "o", cfg.Output, "output directory")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "image format (png, pgm, ppm, svg)")
	fs.BoolVar(&cfg.Preview, "preview", cfg.Preview, "print a braille preview of each attractor")
	fs.BoolVar(&cfg.Metadata, "json", cfg.Metadata, "write a json metadata file next to each image")
	fs.BoolVar(&plot, "plot", false, "print ascii plots of the x and y series")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format (text, json)")
}

// mergeConfigFile applies the config file, if any, underneath the flags the
// user set explicitly.
func mergeConfigFile(cmd *cobra.Command) error {
	if configFile == "" {
		return nil
	}

	changed := map[string]string{}
	cmd.Flags().Visit(func(f *pflag.Flag) {
		changed[f.Name] = f.Value.String()
	})

	loaded, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	*cfg = *loaded

	for name, value := range changed {
		if err := cmd.Flags().Set(name, value); err != nil {
			return err
		}
	}
	return nil
}

func loadConfig(cmd *cobra.Command) error {
	if err := mergeConfigFile(cmd); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return nil
}

// saveConfig writes the effective configuration, keeping seed 0 so the
// saved file stays time-seeded.
func saveConfig(cmd *cobra.Command, args []string) error {
	if err := mergeConfigFile(cmd); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	path := "attractor.yaml"
	if len(args) == 1 {
		path = args[0]
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func searchOptions() []search.Option {
	return []search.Option{
		search.WithWorkers(cfg.Workers),
		search.WithMaxAttempts(cfg.MaxAttempts),
		search.WithBudget(cfg.Budget),
	}
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := loadConfig(cmd); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	logger := ctxlog.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Info("starting search", "num", cfg.Num, "seed", cfg.Seed, "workers", cfg.Workers)

	searcher := search.New(sampler.NewSeeded(cfg.Seed, cfg.Sensitivity), cfg.Params(), searchOptions()...)

	var opts []report.ConsoleOption
	if plot {
		opts = append(opts, report.WithPlot())
	}
	if cfg.Preview {
		opts = append(opts, report.WithPreview(60, 20))
	}
	images := &report.Images{
		Dir:       cfg.Output,
		Format:    cfg.Format,
		Width:     cfg.Width,
		Height:    cfg.Height,
		Intensity: cfg.Intensity,
		Metadata:  cfg.Metadata,
	}
	reporter := report.Multi{report.NewConsole(os.Stdout, opts...), images}

	start := time.Now()
	if err := searcher.Run(ctx, cfg.Num, reporter); err != nil {
		return err
	}

	logger.Info("search finished", "found", len(images.Written), "elapsed", time.Since(start))
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	if err := loadConfig(cmd); err != nil {
		return err
	}

	ctx := ctxlog.WithLogger(cmd.Context(), ctxlog.Discard())
	s := sampler.NewSeeded(cfg.Seed, cfg.Sensitivity)
	m := viz.NewSearchModel(ctx, s, cfg.Params(), searchOptions()...)

	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}

	found := final.(viz.SearchModel).Found()
	for i, out := range found {
		fmt.Printf("attractor %d: %s (%f, %f)\n", i+1, out.Coefficients, out.Initial.X, out.Initial.Y)
	}
	return nil
}
