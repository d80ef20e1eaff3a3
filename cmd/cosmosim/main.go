package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/cosmosim/internal/analysis"
	"github.com/san-kum/cosmosim/internal/automation"
	"github.com/san-kum/cosmosim/internal/config"
	"github.com/san-kum/cosmosim/internal/dynamo"
	"github.com/san-kum/cosmosim/internal/export"
	"github.com/san-kum/cosmosim/internal/metrics"
	"github.com/san-kum/cosmosim/internal/sim"
	"github.com/san-kum/cosmosim/internal/storage"
	"github.com/san-kum/cosmosim/internal/viz"
)

var (
	dataDir    string
	logLevel   string
	logFile    string
	dt         float32
	sampleRate int
	runName    string
	outFile    string
	// bench
	numRuns int
	// sweep
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	// render
	svgSize   int
	svgEnergy bool
)

var logger *log.Logger

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cosmosim",
		Short: "planet and asteroid gravity sandbox",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(os.Stderr, logLevel)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			newSim := func(cfg config.StepConfig) *sim.Simulator {
				return sim.New(cfg, sim.WithLogger(liveLogger()))
			}
			return viz.RunLive(viz.NewLauncher(newSim, dt))
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".cosmosim", "data directory")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&logFile, "log-file", "", "log file for the live view")
	pf.Float32Var(&dt, "dt", 1.0/60, "frame timestep")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the simulation with live visualization",
		RunE:  runLive,
	}
	addSimFlags(liveCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and save it",
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().Int("frames", 600, "frames to simulate")
	runCmd.Flags().IntVar(&sampleRate, "sample-every", 1, "record every n-th frame")
	runCmd.Flags().StringVar(&runName, "name", "", "run name (defaults to the preset)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a run's kinetic energy",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	renderCmd := &cobra.Command{
		Use:   "render [run_id]",
		Short: "render a run's final snapshot as svg",
		Args:  cobra.ExactArgs(1),
		RunE:  renderRun,
	}
	renderCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default <run_id>.svg)")
	renderCmd.Flags().IntVar(&svgSize, "size", 600, "image side in pixels")
	renderCmd.Flags().BoolVar(&svgEnergy, "energy", false, "render the kinetic energy series instead")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "run independent seeds in parallel and time them",
		RunE:  benchRuns,
	}
	addSimFlags(benchCmd)
	benchCmd.Flags().Int("frames", 300, "frames per run")
	benchCmd.Flags().IntVar(&numRuns, "runs", 4, "number of runs")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one parameter across a range",
		RunE:  sweepParamCmd,
	}
	sweepCmd.Flags().String("preset", "belt", "preset configuration")
	sweepCmd.Flags().Int64("seed", 1, "random seed")
	sweepCmd.Flags().Int("frames", 300, "frames per step")
	sweepCmd.Flags().StringVar(&sweepParam, "param", "restitution", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.2, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 1.0, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted scenario and save it",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	configCmd := &cobra.Command{
		Use:   "config [file]",
		Short: "write the resolved configuration as yaml",
		Args:  cobra.ExactArgs(1),
		RunE:  writeConfig,
	}
	addSimFlags(configCmd)

	rootCmd.AddCommand(liveCmd, runCmd, listCmd, plotCmd, exportCmd, analyzeCmd, renderCmd, benchCmd, sweepCmd, presetsCmd, scenarioCmd, configCmd)
	return rootCmd
}

// addSimFlags registers the flags resolveConfig reads. The values live in
// each command's own flag set, so commands can pick different defaults.
func addSimFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("config", "", "config file (.yaml or .ini)")
	f.String("preset", "belt", "preset configuration")
	f.Int64("seed", 0, "random seed (0 picks one)")
	f.Int("particles", config.DefaultParticles, "asteroid count")
	f.Int("substeps", config.DefaultSubsteps, "substeps per frame")
}

func newLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("bad --log-level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          "cosmosim",
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	}), nil
}

// liveLogger keeps log lines off the alt screen: they go to --log-file or
// nowhere.
func liveLogger() *log.Logger {
	if logFile == "" {
		return log.New(io.Discard)
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		logger.Warn("cannot open log file", "path", logFile, "err", err)
		return log.New(io.Discard)
	}
	l, _ := newLogger(f, logLevel)
	return l
}

// resolveConfig layers preset, config file and changed flags, in that order.
func resolveConfig(cmd *cobra.Command) (config.StepConfig, error) {
	flags := cmd.Flags()
	preset, _ := flags.GetString("preset")
	cfg, ok := config.GetPreset(preset)
	if !ok {
		return cfg, fmt.Errorf("%w: %s (available: %v)", config.ErrUnknownPreset, preset, config.ListPresets())
	}

	if path, _ := flags.GetString("config"); path != "" {
		loaded, err := config.LoadInto(path, cfg)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if flags.Changed("seed") {
		cfg.System.Seed, _ = flags.GetInt64("seed")
	}
	if flags.Changed("particles") {
		cfg.System.ParticleCount, _ = flags.GetInt("particles")
	}
	if flags.Changed("substeps") {
		cfg.Physics.Substeps, _ = flags.GetInt("substeps")
	}
	return cfg, nil
}

func presetName(cmd *cobra.Command) string {
	name, _ := cmd.Flags().GetString("preset")
	return name
}

func frameCount(cmd *cobra.Command) int {
	n, _ := cmd.Flags().GetInt("frames")
	return n
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func defaultMetrics(cfg config.StepConfig) []dynamo.Metric {
	return metrics.ForConfig(cfg)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	s := sim.New(cfg, sim.WithLogger(liveLogger()))
	return viz.RunLive(viz.NewModel(s, cfg, dt, presetName(cmd)))
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.System.Seed == 0 {
		cfg.System.Seed = time.Now().UnixNano()
	}
	name := runName
	if name == "" {
		name = presetName(cmd)
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	s := sim.New(cfg, sim.WithLogger(logger))
	runner := sim.NewRunner(s)
	for _, m := range defaultMetrics(cfg) {
		runner.AddMetric(m)
	}

	rc := sim.DefaultRunConfig()
	rc.Dt = dt
	rc.Frames = frameCount(cmd)
	rc.SampleEvery = sampleRate

	ctx, cancel := signalContext()
	defer cancel()

	logger.Info("running simulation", "preset", presetName(cmd), "asteroids", cfg.System.ParticleCount, "frames", rc.Frames)
	result, err := runner.Run(ctx, cfg, rc, nil)
	if err != nil {
		return err
	}

	var snap dynamo.Snapshot
	s.Snapshot(&snap)
	runID, err := st.Save(storage.NewMetadata(name, cfg, rc, result), result.Samples, &snap)
	if err != nil {
		return err
	}

	printResult(runID, result)
	return nil
}

func printResult(runID string, result *sim.Result) {
	fmt.Printf("completed in %v\n", result.Elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d (%.2fs simulated)\n", result.Frames, result.SimTime)
	fmt.Printf("resets: %d, spawns: %d\n", result.Stats.Resets, result.Stats.Spawns)
	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tFRAMES\tSIM TIME\tDT\tASTEROIDS\tSEED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2fs\t%.4fs\t%d\t%d\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.SimTime,
			run.Dt,
			run.Config.System.ParticleCount,
			run.Seed,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("name: %s\n", meta.Name)
	fmt.Printf("samples: %d\n\n", len(samples))

	series := []struct {
		caption string
		value   func(sim.Sample) float64
	}{
		{"kinetic energy", func(s sim.Sample) float64 { return s.Kinetic }},
		{"|momentum|", func(s sim.Sample) float64 { return math.Hypot(s.MomentumX, s.MomentumY) }},
		{"contacts", func(s sim.Sample) float64 { return float64(s.Contacts) }},
		{"asteroids", func(s sim.Sample) float64 { return float64(s.Asteroids) }},
	}

	for _, sr := range series {
		data := make([]float64, len(samples))
		for i, smp := range samples {
			data[i] = sr.value(smp)
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(sr.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)

	if outFile == "" {
		return st.ExportJSON(os.Stdout, args[0])
	}

	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := st.ExportJSON(f, args[0]); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", outFile)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	if len(samples) < 4 {
		return fmt.Errorf("need at least 4 samples, have %d", len(samples))
	}

	kinetic := make([]float64, len(samples))
	for i, smp := range samples {
		kinetic[i] = smp.Kinetic
	}
	sampleDt := (samples[len(samples)-1].Time - samples[0].Time) / float64(len(samples)-1)

	ps := analysis.PowerSpectrum(kinetic)
	if len(ps) > 1 {
		graph := asciigraph.Plot(ps[1:],
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("kinetic energy power spectrum"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	if period, ok := analysis.DominantPeriod(kinetic, sampleDt); ok {
		fmt.Printf("dominant period: %.3fs (%.3f Hz)\n", period, 1/period)
	} else {
		fmt.Println("no dominant period")
	}
	return nil
}

func renderRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	var svg string
	if svgEnergy {
		samples, err := st.LoadSamples(runID)
		if err != nil {
			return err
		}
		values := make([]float64, len(samples))
		for i, smp := range samples {
			values[i] = smp.Kinetic
		}
		svg = export.SeriesToSVG(values, svgSize, svgSize/2, "#00ff88")
	} else {
		meta, err := st.Load(runID)
		if err != nil {
			return err
		}
		snap, err := st.LoadSnapshot(runID)
		if err != nil {
			return err
		}
		opts := export.DefaultSnapshotOptions()
		opts.Size = svgSize
		opts.ShowStar = meta.Config.Star.Enabled
		opts.StarX, opts.StarY = meta.Config.Star.X, meta.Config.Star.Y
		svg = export.SnapshotToSVG(snap, opts)
	}
	if svg == "" {
		return fmt.Errorf("nothing to render for %s", runID)
	}

	path := outFile
	if path == "" {
		path = runID + ".svg"
	}
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func benchRuns(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	seedStart := cfg.System.Seed
	if seedStart == 0 {
		seedStart = 1
	}

	rc := sim.DefaultRunConfig()
	rc.Dt = dt
	rc.Frames = frameCount(cmd)
	rc.SampleEvery = rc.Frames

	ctx, cancel := signalContext()
	defer cancel()

	ens := sim.NewEnsemble(cfg, numRuns, seedStart, func() []dynamo.Metric { return defaultMetrics(cfg) }, logger)

	fmt.Printf("benchmarking %s: %d asteroids, %d runs x %d frames\n\n", presetName(cmd), cfg.System.ParticleCount, numRuns, rc.Frames)
	start := time.Now()
	results, err := ens.Run(ctx, rc)
	if err != nil {
		return err
	}
	wall := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tSEED\tTIME\tFRAMES/SEC\tKE\tDRIFT\tSTABILITY\t")
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\t%.2f\t%.4f\t%.3f\t%s\n",
			i, seedStart+int64(i), r.Elapsed.Round(time.Millisecond),
			float64(r.Frames)/r.Elapsed.Seconds(),
			r.Metrics["kinetic_energy"], r.Metrics["energy_drift"], r.Metrics["stability"],
			viz.ProgressBar(r.Metrics["stability"], 20))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nwall time: %v\n", wall.Round(time.Millisecond))
	return nil
}

// newSweep reads the sweep command's flags.
func newSweep(cmd *cobra.Command) *automation.ParameterSweep {
	seed, _ := cmd.Flags().GetInt64("seed")
	return &automation.ParameterSweep{
		Preset:    presetName(cmd),
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
		Frames:    frameCount(cmd),
		Dt:        dt,
		Seed:      seed,
	}
}

func sweepParamCmd(cmd *cobra.Command, args []string) error {
	sweep := newSweep(cmd)

	ctx, cancel := signalContext()
	defer cancel()

	results, err := automation.RunSweep(ctx, sweep, logger)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tKE\tFINAL KE\tCONTACTS\tSTABILITY\t\n", sweepParam)
	for _, r := range results {
		stability := r.Metrics["stability"]
		// the bar carries escape codes, so it stays in the last column
		fmt.Fprintf(w, "%.4f\t%.2f\t%.2f\t%d\t%.3f\t%s\n",
			r.ParamValue, r.Metrics["kinetic_energy"], r.Final.Kinetic, r.Final.Contacts, stability,
			viz.ProgressBar(stability, 20))
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tASTEROIDS\tSTAR\tGRAVITY\tATTRACTOR\tMUTUAL\tDAMPING\tRESTITUTION")
	for _, name := range config.ListPresets() {
		c, _ := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%v\t%v\t%v\t%v\t%.3f\t%.2f\n",
			name, c.System.ParticleCount, c.Star.Enabled, c.Gravity.Enabled,
			c.Attractor.Enabled, c.Mutual.Enabled, c.Physics.Damping, c.Physics.Restitution)
	}
	return w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	result, snap, err := automation.Run(ctx, sc, logger)
	if err != nil {
		return err
	}

	cfg, _ := sc.Config()
	name := sc.Name
	if name == "" {
		name = "scenario"
	}
	runID, err := st.Save(storage.NewMetadata(name, cfg, sc.RunConfig(), result), result.Samples, snap)
	if err != nil {
		return err
	}

	printResult(runID, result)
	return nil
}

func writeConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	logger.Info("wrote config", "path", args[0])
	return nil
}
