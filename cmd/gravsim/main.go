package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/gravsim/internal/audio"
	"github.com/san-kum/gravsim/internal/automation"
	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/experiment"
	"github.com/san-kum/gravsim/internal/export"
	"github.com/san-kum/gravsim/internal/gui"
	"github.com/san-kum/gravsim/internal/integrators"
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile  string
	preset      string
	dt          float64
	gravity     float64
	ticks       int
	integrator  string
	debug       bool
	theme       string
	outFile     string
	sampleEvery int
	sound       bool
	// sweep
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
)

var logFile *os.File

// main registers the commands and runs the root command. With no
// subcommand the terminal preset menu opens.
func main() {
	rootCmd := &cobra.Command{
		Use:   "gravsim",
		Short: "2-D gravitational n-body sandbox",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := viz.SetTheme(theme); err != nil {
				return err
			}
			return setupLogging()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logFile != nil {
				logFile.Close()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive()
		},
	}
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "write a debug log to gravsim.log")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", viz.ThemeNames()[0],
		fmt.Sprintf("terminal color theme %v", viz.ThemeNames()))

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a scene headless and print metrics",
		RunE:  runSimulation,
	}
	sceneFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive sandbox in the terminal",
		RunE:  runLive,
	}
	sceneFlags(liveCmd)

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "interactive sandbox in a desktop window",
		RunE:  runGUI,
	}
	sceneFlags(guiCmd)
	guiCmd.Flags().BoolVar(&sound, "sound", false, "play a chime on every merge")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenes",
		RunE:  listPresets,
	}

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "plot energy and body count over a run",
		RunE:  plotRun,
	}
	sceneFlags(plotCmd)
	plotCmd.Flags().IntVar(&sampleEvery, "every", 10, "sample every n steps")

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "run a scene under every integrator",
		RunE:  compareIntegrators,
	}
	sceneFlags(compareCmd)

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure step throughput against body count",
		RunE:  benchBodies,
	}
	benchCmd.Flags().IntVar(&ticks, "ticks", 200, "steps per measurement")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv",
		Short: "run a scene and write sampled frames as CSV",
		RunE:  exportCmd(writeCSV),
	}
	exportJSONCmd := &cobra.Command{
		Use:   "export-json",
		Short: "run a scene and write the result as JSON",
		RunE:  exportCmd(writeJSON),
	}
	exportSVGCmd := &cobra.Command{
		Use:   "export-svg",
		Short: "run a scene and draw its trajectories as SVG",
		RunE:  exportCmd(writeSVG),
	}
	for _, c := range []*cobra.Command{exportCSVCmd, exportJSONCmd, exportSVGCmd} {
		sceneFlags(c)
		c.Flags().IntVar(&sampleEvery, "every", 10, "sample every n steps")
		c.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	}

	scriptCmd := &cobra.Command{
		Use:   "script [file]",
		Short: "play a YAML command script headless",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run a preset across a range of one physics parameter",
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&preset, "preset", config.DefaultName, "preset to sweep")
	sweepCmd.Flags().StringVar(&sweepParam, "param", "epsilon", "parameter: g, epsilon, scale, dt")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 1, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 10, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 10, "number of values")
	sweepCmd.Flags().IntVar(&ticks, "ticks", config.DefaultTicks, "steps per value")

	rootCmd.AddCommand(runCmd, liveCmd, guiCmd, presetsCmd, plotCmd, compareCmd, benchCmd,
		exportCSVCmd, exportJSONCmd, exportSVGCmd, scriptCmd, sweepCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func sceneFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset scene")
	cmd.Flags().Float64Var(&dt, "dt", 0.02, "timestep")
	cmd.Flags().Float64Var(&gravity, "g", 1, "gravitational constant")
	cmd.Flags().IntVar(&ticks, "ticks", config.DefaultTicks, "number of steps")
	cmd.Flags().StringVar(&integrator, "integrator", integrators.Default, "integrator")
}

func setupLogging() error {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}
	f, err := os.OpenFile("gravsim.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open debug log: %w", err)
	}
	logFile = f
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return nil
}

// loadScene resolves the scene: preset, then config file, then any flag the
// user set explicitly.
func loadScene(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()
	name, _ := flags.GetString("preset")

	cfg := config.DefaultConfig()
	if name != "" {
		cfg = config.GetPreset(name)
		if cfg == nil {
			return nil, fmt.Errorf("%w: %s (available: %v)", dynamo.ErrUnknownPreset, name, config.ListPresets())
		}
	} else if configFile == "" {
		cfg = config.GetPreset(config.DefaultName)
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if flags.Changed("dt") {
		cfg.Physics.Dt = dt
	}
	if flags.Changed("g") {
		cfg.Physics.G = gravity
	}
	if flags.Changed("ticks") {
		cfg.Ticks, _ = flags.GetInt("ticks")
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.Printf("scene %s: %d explicit bodies, generator %q, %d ticks, %+v",
		cfg.Name, len(cfg.Bodies), cfg.Generator.Kind, cfg.Ticks, cfg.Physics)
	return cfg, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadScene(cmd)
	if err != nil {
		return err
	}

	exp, err := experiment.New(cfg, 0)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("running %s with %s...\n", cfg.Name, cfg.Integrator)
	start := time.Now()
	result, err := exp.Run(ctx)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("steps: %d\n", result.Steps)
	fmt.Printf("time: %.3f\n", result.Time)
	fmt.Printf("merges: %d\n", result.Merges)
	fmt.Printf("bodies: %d\n", len(result.Final))

	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadScene(cmd)
	if err != nil {
		return err
	}
	initial, err := cfg.InitialBodies()
	if err != nil {
		return err
	}
	s, err := experiment.Build(cfg, sim.WithRunning(true))
	if err != nil {
		return err
	}
	return viz.Run(viz.NewModel(s, cfg.Name, initial))
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadScene(cmd)
	if err != nil {
		return err
	}
	initial, err := cfg.InitialBodies()
	if err != nil {
		return err
	}
	s, err := experiment.Build(cfg, sim.WithRunning(true))
	if err != nil {
		return err
	}

	var sonifier *audio.Sonifier
	if sound {
		sonifier = audio.NewSonifier()
		if err := sonifier.Start(); err != nil {
			log.Printf("audio disabled: %v", err)
		} else {
			defer sonifier.Stop()
			s.AddObserver(sonifier)
		}
	}

	return gui.Run(gui.New(s, cfg.Name, initial, sonifier))
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBODIES\tTICKS\tINTEGRATOR")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		bodies, err := p.InitialBodies()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", name, len(bodies), p.Ticks, p.Integrator)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadScene(cmd)
	if err != nil {
		return err
	}
	result, exp, err := record(cfg)
	if err != nil {
		return err
	}

	counts, energy := exp.Recorder().Series()
	if len(energy) < 2 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("scene: %s\n", cfg.Name)
	fmt.Printf("samples: %d\n", len(result.Frames))
	fmt.Printf("merges: %d\n\n", result.Merges)

	fmt.Println(asciigraph.Plot(energy,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("total energy"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(counts,
		asciigraph.Height(6),
		asciigraph.Width(80),
		asciigraph.Caption("body count"),
	))
	return nil
}

func record(cfg *config.Config) (*experiment.Result, *experiment.Experiment, error) {
	if sampleEvery < 1 {
		return nil, nil, fmt.Errorf("--every must be at least 1")
	}
	exp, err := experiment.New(cfg, sampleEvery)
	if err != nil {
		return nil, nil, err
	}
	ctx, cancel := signalContext()
	defer cancel()

	result, err := exp.Run(ctx)
	if err != nil {
		return nil, nil, err
	}
	return result, exp, nil
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := loadScene(cmd)
	if err != nil {
		return err
	}

	fmt.Printf("comparing integrators on %s (%d ticks, dt %.4f)\n\n", cfg.Name, cfg.Ticks, cfg.Physics.Dt)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tBODIES\tMERGES\tENERGY DRIFT\tMOMENTUM DRIFT\tTIME")

	for _, name := range integrators.Names() {
		run := *cfg
		run.Integrator = name
		exp, err := experiment.New(&run, 0)
		if err != nil {
			return err
		}
		start := time.Now()
		result, err := exp.Run(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%.3e\t%.3e\t%v\n",
			name, len(result.Final), result.Merges,
			result.Metrics["energy_drift"], result.Metrics["momentum_drift"], time.Since(start))
	}
	return w.Flush()
}

func benchBodies(cmd *cobra.Command, args []string) error {
	counts := []int{10, 50, 100, 250}
	// flag variables are shared between commands, so read this one's own
	steps, _ := cmd.Flags().GetInt("ticks")

	fmt.Printf("benchmarking %d steps per size\n\n", steps)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODIES\tSTEPS\tTIME\tSTEPS/SEC\tMERGES")

	for _, n := range counts {
		cfg := config.DefaultConfig()
		cfg.Name = fmt.Sprintf("bench-%d", n)
		cfg.Ticks = steps
		cfg.Generator = config.GeneratorConfig{
			Kind:   config.GeneratorNebula,
			Count:  n,
			Radius: 600,
			Mass:   2,
			Seed:   42,
		}

		bodies, err := cfg.InitialBodies()
		if err != nil {
			return err
		}
		s, err := experiment.Build(cfg, sim.WithRunning(true))
		if err != nil {
			return err
		}

		start := time.Now()
		result, err := s.Run(context.Background(), cfg.Ticks)
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\t%d\n",
			len(bodies), result.Steps, elapsed, float64(result.Steps)/elapsed.Seconds(), result.Merges)
	}
	return w.Flush()
}

type writeFunc func(w io.Writer, cfg *config.Config, exp *experiment.Experiment, result *experiment.Result) error

func exportCmd(write writeFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := loadScene(cmd)
		if err != nil {
			return err
		}
		result, exp, err := record(cfg)
		if err != nil {
			return err
		}

		var w io.Writer = os.Stdout
		if outFile != "" {
			f, err := os.Create(outFile)
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}
		if err := write(w, cfg, exp, result); err != nil {
			return err
		}
		if outFile != "" {
			fmt.Fprintf(os.Stderr, "exported %d frames to %s\n", len(result.Frames), outFile)
		}
		return nil
	}
}

func writeCSV(w io.Writer, cfg *config.Config, exp *experiment.Experiment, result *experiment.Result) error {
	return export.CSV(w, result.Frames)
}

func writeJSON(w io.Writer, cfg *config.Config, exp *experiment.Experiment, result *experiment.Result) error {
	return export.JSON(w, &export.Data{
		Name:       cfg.Name,
		Integrator: cfg.Integrator,
		Physics:    cfg.Physics,
		Steps:      result.Steps,
		Time:       result.Time,
		Merges:     exp.Recorder().Merges(),
		Metrics:    result.Metrics,
		Frames:     result.Frames,
	})
}

func writeSVG(w io.Writer, cfg *config.Config, exp *experiment.Experiment, result *experiment.Result) error {
	return export.SVG(w, result.Frames, 800, 800)
}

func runScript(cmd *cobra.Command, args []string) error {
	script, err := automation.LoadScript(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("playing %s", script.Name)
	if script.Description != "" {
		fmt.Printf(": %s", script.Description)
	}
	fmt.Println()

	result, err := automation.RunScript(ctx, script)
	if err != nil {
		return err
	}

	fmt.Printf("frames: %d\n", result.Frames)
	fmt.Printf("steps: %d\n", result.Steps)
	fmt.Printf("time: %.3f\n", result.Time)
	fmt.Printf("merges: %d\n\n", result.Merges)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tX\tY\tVX\tVY\tMASS")
	for _, b := range result.Final {
		fmt.Fprintf(w, "%d\t%.2f\t%.2f\t%.3f\t%.3f\t%.1f\n", b.ID, b.X, b.Y, b.VX, b.VY, b.Mass)
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	name, _ := cmd.Flags().GetString("preset")
	steps, _ := cmd.Flags().GetInt("ticks")
	results, err := automation.RunSweep(ctx, &automation.ParameterSweep{
		Preset:   name,
		Param:    sweepParam,
		Min:      sweepMin,
		Max:      sweepMax,
		NumSteps: sweepSteps,
		Ticks:    steps,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tBODIES\tMERGES\tENERGY DRIFT\n", sweepParam)
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(w, "%.4g\t-\t-\t%v\n", r.Value, r.Err)
			continue
		}
		fmt.Fprintf(w, "%.4g\t%d\t%d\t%.3e\n", r.Value, r.Bodies, r.Merges, r.EnergyDrift)
	}
	return w.Flush()
}
