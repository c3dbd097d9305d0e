package main

import (
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/glyphgarden/internal/config"
	"github.com/san-kum/glyphgarden/internal/export"
	"github.com/san-kum/glyphgarden/internal/garden"
	"github.com/san-kum/glyphgarden/internal/layout"
	"github.com/san-kum/glyphgarden/internal/seed"
	"github.com/san-kum/glyphgarden/internal/storage"
	"github.com/san-kum/glyphgarden/internal/theme"
	"github.com/san-kum/glyphgarden/internal/viz"
	"github.com/san-kum/glyphgarden/internal/window"
	"github.com/spf13/cobra"
)

var (
	configFile    string
	date          string
	fps           int
	density       int
	chars         string
	colors        string
	noiseName     string
	reducedMotion bool
	section       string
	logFile       string
	// snapshot
	ticks  int
	out    string
	format string
	// spread
	runs  int
	count int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "glyphgarden",
		Short: "a generative garden of glyphs, seeded by the calendar day",
		RunE:  runTerminal,
	}
	gardenFlags(rootCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "grow the garden in the terminal",
		RunE:  runTerminal,
	}
	gardenFlags(runCmd)

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "grow the garden in a desktop window",
		RunE:  runWindow,
	}
	gardenFlags(windowCmd)

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "grow the garden headless and save one frame",
		RunE:  runSnapshot,
	}
	gardenFlags(snapshotCmd)
	snapshotCmd.Flags().IntVar(&ticks, "ticks", 90, "ticks to run before saving")
	snapshotCmd.Flags().StringVar(&out, "out", "", "write to this file instead of the snapshot directory ('-' for stdout)")
	snapshotCmd.Flags().StringVar(&format, "format", "svg", "output format for --out (svg, json)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved snapshots",
		RunE:  listSnapshots,
	}
	listCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")

	elementsCmd := &cobra.Command{
		Use:   "elements <id>",
		Short: "print the element table of a saved snapshot",
		Args:  cobra.ExactArgs(1),
		RunE:  showElements,
	}
	elementsCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")

	spreadCmd := &cobra.Command{
		Use:   "spread",
		Short: "compare best-candidate placement against uniform placement",
		RunE:  plotSpread,
	}
	spreadCmd.Flags().IntVar(&runs, "runs", 40, "number of layouts per method")
	spreadCmd.Flags().IntVar(&count, "count", garden.DefaultDensity, "points per layout")
	spreadCmd.Flags().StringVar(&date, "date", "", "seed day (YYYY-MM-DD), default today")

	seedsCmd := &cobra.Command{
		Use:   "seeds [date]",
		Short: "print the seeds of a day",
		Args:  cobra.MaximumNArgs(1),
		RunE:  printSeeds,
	}

	sectionsCmd := &cobra.Command{
		Use:   "sections",
		Short: "list built-in content sections",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "#\tNAME\tDENSITY\tCHARS\tCOLORS")
			for i, s := range config.Sections {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", i+1, s.Name, s.Density, s.Chars, s.Colors)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(runCmd, windowCmd, snapshotCmd, listCmd, elementsCmd, spreadCmd, seedsCmd, sectionsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func gardenFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&date, "date", "", "seed day (YYYY-MM-DD), default today")
	cmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "ticks per second")
	cmd.Flags().IntVar(&density, "density", garden.DefaultDensity, "elements per layout")
	cmd.Flags().StringVar(&chars, "chars", garden.DefaultChars, "glyph pool")
	cmd.Flags().StringVar(&colors, "colors", strings.Join(garden.DefaultColors, ","), "comma-separated hex palette")
	cmd.Flags().StringVar(&noiseName, "noise", "", "noise backend (simplex, perlin)")
	cmd.Flags().BoolVar(&reducedMotion, "reduced-motion", false, "no spin, fewer ticks")
	cmd.Flags().StringVar(&section, "section", "", "start on this content section")
	cmd.Flags().StringVar(&logFile, "log", "", "write diagnostics to this file")
}

// loadConfig reads the config file, then applies the flags that were set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("date") {
		cfg.Date = date
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("density") {
		cfg.Theme.Density = density
	}
	if flags.Changed("chars") {
		cfg.Theme.Chars = chars
	}
	if flags.Changed("colors") {
		cfg.Theme.Colors = garden.SplitColors(colors)
	}
	if flags.Changed("noise") {
		cfg.Noise = noiseName
	}
	if flags.Changed("reduced-motion") {
		cfg.ReducedMotion = reducedMotion
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// setupLogging sends log output to --log, or drops it: the terminal
// belongs to the renderer.
func setupLogging() (func(), error) {
	if logFile == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := tea.LogToFile(logFile, "glyphgarden")
	if err != nil {
		return nil, fmt.Errorf("failed to open log: %w", err)
	}
	return func() { f.Close() }, nil
}

// buildGarden creates the engine and its section observer. Sections are
// only applied up front when asked for by --section or by the config.
func buildGarden(cfg *config.Config, w, h float64) (*garden.Engine, *theme.Observer, error) {
	opts, err := cfg.EngineOptions(w, h)
	if err != nil {
		return nil, nil, err
	}
	eng, err := garden.New(opts)
	if err != nil {
		return nil, nil, err
	}

	obs := theme.NewObserver(eng, cfg.AllSections())
	switch {
	case section != "":
		idx, ok := config.GetSection(obs.Sections(), section)
		if !ok {
			return nil, nil, fmt.Errorf("unknown section: %s (available: %v)", section, config.ListSections(obs.Sections()))
		}
		if err := obs.Jump(idx); err != nil {
			log.Printf("%v", err)
		}
	case len(cfg.Sections) > 0:
		if err := obs.Start(); err != nil {
			log.Printf("%v", err)
		}
	}
	log.Printf("garden: seeds %+v, %d elements, %d fps", eng.Seeds(), len(eng.Elements()), eng.FPS())
	return eng, obs, nil
}

func renderJitter(eng *garden.Engine) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(eng.Seeds().Uniform), eng.Ticks()))
}

// snapshotter saves frames into the configured snapshot directory.
func snapshotter(cfg *config.Config) func(*garden.Engine) (string, error) {
	st := storage.New(cfg.SnapshotDir)
	_, day, _ := cfg.Seeds()
	return func(eng *garden.Engine) (string, error) {
		if err := st.Init(); err != nil {
			return "", fmt.Errorf("failed to create snapshot dir: %w", err)
		}
		id, err := st.Save(day.String(), export.Capture(eng), func(w io.Writer) error {
			return export.WriteSVG(w, eng, renderJitter(eng))
		})
		if err != nil {
			return "", fmt.Errorf("failed to save snapshot: %w", err)
		}
		log.Printf("snapshot: saved %s", id)
		return st.ImagePath(id), nil
	}
}

func runTerminal(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	closeLog, err := setupLogging()
	if err != nil {
		return err
	}
	defer closeLog()

	cw, ch := float64(cfg.Cell.Width), float64(cfg.Cell.Height)
	w, h := viz.ViewportFor(80, 24, cw, ch)
	eng, obs, err := buildGarden(cfg, w, h)
	if err != nil {
		return err
	}

	return viz.Run(eng, obs, viz.Options{
		CellW:      cw,
		CellH:      ch,
		Snapshot:   snapshotter(cfg),
		JitterSeed: uint64(eng.Seeds().Noise),
	})
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	closeLog, err := setupLogging()
	if err != nil {
		return err
	}
	defer closeLog()

	eng, obs, err := buildGarden(cfg, float64(cfg.Window.Width), float64(cfg.Window.Height))
	if err != nil {
		return err
	}

	return window.Run(eng, obs, window.Options{
		Title:      "glyph garden",
		Snapshot:   snapshotter(cfg),
		JitterSeed: uint64(eng.Seeds().Noise),
	})
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if ticks < 0 {
		return fmt.Errorf("ticks must not be negative, got %d", ticks)
	}
	eng, _, err := buildGarden(cfg, float64(cfg.Window.Width), float64(cfg.Window.Height))
	if err != nil {
		return err
	}
	for i := 0; i < ticks; i++ {
		eng.Tick()
	}

	if out == "" {
		where, err := snapshotter(cfg)(eng)
		if err != nil {
			return err
		}
		fmt.Printf("saved %s (tick %d, %d elements)\n", where, eng.Ticks(), len(eng.Elements()))
		return nil
	}

	switch {
	case format != "svg" && format != "json":
		return fmt.Errorf("unknown format: %s (available: svg, json)", format)
	case out == "-" && format == "svg":
		err = export.WriteSVG(os.Stdout, eng, renderJitter(eng))
	case out == "-":
		err = export.WriteJSON(os.Stdout, eng)
	case format == "svg":
		err = export.ExportSVG(out, eng, renderJitter(eng))
	default:
		err = export.ExportJSON(out, eng)
	}
	if err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if out != "-" {
		fmt.Printf("wrote %s\n", out)
	}
	return nil
}

func listSnapshots(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st := storage.New(cfg.SnapshotDir)
	snaps, err := st.List()
	if err != nil {
		return err
	}

	if len(snaps) == 0 {
		fmt.Printf("no snapshots found in %s\n", st.Dir())
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDAY\tTICK\tELEMENTS\tCHARS\tTIMESTAMP")
	for _, s := range snaps {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%s\n",
			s.ID, s.Day, s.Tick, s.Elements, s.Chars, s.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func showElements(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st := storage.New(cfg.SnapshotDir)
	elements, err := st.LoadElements(args[0])
	if err != nil {
		return fmt.Errorf("snapshot %s: %w", args[0], err)
	}
	return writeElements(os.Stdout, elements)
}

func writeElements(w io.Writer, elements []export.ElementData) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tKIND\tX\tY\tSIZE\tANGLE\tCOLOR")
	for _, e := range elements {
		fmt.Fprintf(tw, "%d\t%s\t%.1f\t%.1f\t%.1f\t%.2f\t%s\n", e.ID, e.Kind, e.X, e.Y, e.Size, e.Angle, e.Color)
	}
	return tw.Flush()
}

func plotSpread(cmd *cobra.Command, args []string) error {
	if runs < 1 {
		return fmt.Errorf("runs must be positive, got %d", runs)
	}
	if count < 2 {
		return fmt.Errorf("count must be at least 2, got %d", count)
	}
	day := seed.Today()
	if date != "" {
		d, err := seed.ParseDay(date)
		if err != nil {
			return err
		}
		day = d
	}

	base := day.Seeds().Uniform
	region := layout.Rect{W: config.DefaultWindowWidth, H: config.DefaultWindowHeight}
	ens := &layout.Ensemble{
		NewRand: func(run int) layout.Rand { return seed.NewRNG(base + int64(run)) },
		Runs:    runs,
		Count:   count,
		Region:  region,
	}
	rep, err := ens.Run(cmd.Context())
	if err != nil {
		return err
	}
	best, uniform := rep.Means()

	graph := asciigraph.PlotMany([][]float64{rep.BestCandidate, rep.Uniform},
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.SeriesColors(asciigraph.Green, asciigraph.Red),
		asciigraph.SeriesLegends("best-candidate", "uniform"),
		asciigraph.Caption(fmt.Sprintf("min pairwise distance, %d points in %.0fx%.0f, %s", count, region.W, region.H, day)),
	)
	fmt.Println(graph)
	fmt.Printf("\nmean: best-candidate %.2f, uniform %.2f (%.1fx)\n", best, uniform, best/uniform)
	return nil
}

func printSeeds(cmd *cobra.Command, args []string) error {
	day := seed.Today()
	if len(args) == 1 {
		d, err := seed.ParseDay(args[0])
		if err != nil {
			return err
		}
		day = d
	}
	s := day.Seeds()
	fmt.Printf("day:     %s\n", day)
	fmt.Printf("uniform: %d\n", s.Uniform)
	fmt.Printf("noise:   %d\n", s.Noise)
	return nil
}
