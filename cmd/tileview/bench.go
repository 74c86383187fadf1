package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tileview/internal/app"
	"github.com/vovakirdan/tileview/internal/bench"
	"github.com/vovakirdan/tileview/internal/config"
	"github.com/vovakirdan/tileview/internal/core"
	"github.com/vovakirdan/tileview/internal/logging"
	"github.com/vovakirdan/tileview/internal/storage"
)

// errOverBudget is returned by --strict runs that miss the frame budget.
var errOverBudget = errors.New("frame budget exceeded")

var (
	flagFrames     int
	flagBudget     time.Duration
	flagViewWidth  int
	flagViewHeight int
	flagNoSave     bool
	flagStrict     bool
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Measure per-frame draw cost",
	Long: `Draw the configured world offscreen and time every frame.

The camera visits the origin, the far corner and the world center, then
pans diagonally from the origin. Each position is drawn --frames times
and checked against the frame budget (bench.budget_ms, or 1000/fps).

Results are saved to bench.db and can be browsed with 'tileview history'.

Examples:
  tileview bench
  tileview bench --width 1000 --height 1000 --frames 1000
  tileview bench --width 100000 --height 100000 --layout chunked
  tileview bench --budget 8ms --strict`,
	Args: cobra.NoArgs,
	RunE: runBench,
}

func init() {
	benchCmd.Flags().IntVar(&flagFrames, "frames", 0, "Frames per camera position")
	benchCmd.Flags().DurationVar(&flagBudget, "budget", 0, "Per-frame budget (e.g. 16ms)")
	benchCmd.Flags().IntVar(&flagViewWidth, "view-width", 0, "Viewport width in pixels")
	benchCmd.Flags().IntVar(&flagViewHeight, "view-height", 0, "Viewport height in pixels")
	benchCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record the run")
	benchCmd.Flags().BoolVar(&flagStrict, "strict", false, "Exit with an error if any position misses the budget")
}

func runBench(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("frames") {
		cfg.Bench.Frames = flagFrames
	}
	if flags.Changed("view-width") {
		cfg.Bench.ViewWidth = flagViewWidth
	}
	if flags.Changed("view-height") {
		cfg.Bench.ViewHeight = flagViewHeight
	}
	budget := cfg.Budget()
	if flags.Changed("budget") {
		budget = flagBudget
	}

	logger, err := logging.NewStderr("tileview-bench", cfg.Log)
	if err != nil {
		return err
	}

	built := time.Now()
	src, err := app.BuildWorld(cfg.World)
	if err != nil {
		return err
	}
	defer app.CloseWorld(src)
	logger.Debug("world built", "took", time.Since(built))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	run, err := bench.Run(ctx, src, bench.Options{
		Frames:    cfg.Bench.Frames,
		ViewW:     cfg.Bench.ViewWidth,
		ViewH:     cfg.Bench.ViewHeight,
		Scale:     core.Scale{CellW: cfg.View.CellWidth, CellH: cfg.View.CellHeight},
		Budget:    budget,
		Speed:     cfg.View.CameraSpeed,
		FPS:       cfg.View.FPS,
		Generator: cfg.World.Generator,
		Layout:    string(app.LayoutOf(src)),
	}, logger)
	if err != nil {
		return fmt.Errorf("bench: %w", err)
	}

	printRun(run)

	if !flagNoSave {
		if err := saveRun(cfg, run); err != nil {
			// The measurement itself succeeded
			logger.Warn("run not saved", "error", err)
		} else {
			fmt.Printf("Saved run %s\n", run.RunID)
		}
	}

	if flagStrict && !run.Passed() {
		return errOverBudget
	}
	return nil
}

func saveRun(cfg config.Config, run storage.BenchRun) error {
	store, err := storage.Open(config.ExpandPath(cfg.Bench.DB))
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.SaveRun(run)
	return err
}

func ms(d time.Duration) string {
	return fmt.Sprintf("%.3fms", float64(d)/float64(time.Millisecond))
}

func printRun(run storage.BenchRun) {
	fmt.Printf("%s world, %s x %s tiles (%s), viewport %dx%d px, %s frames per position\n",
		run.Generator,
		humanize.Comma(int64(run.WorldW)), humanize.Comma(int64(run.WorldH)),
		run.Layout, run.ViewW, run.ViewH, humanize.Comma(int64(run.Frames)))
	if run.Cores > 0 {
		fmt.Printf("CPU: %s, %d cores\n\n", run.CPU, run.Cores)
	} else {
		fmt.Printf("CPU: %s\n\n", run.CPU)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers("Position", "Camera", "Tiles", "Mean", "p99", "Max", "Over budget")

	for _, s := range run.Samples {
		t.Row(
			s.Name,
			fmt.Sprintf("(%d, %d)", s.CamX, s.CamY),
			humanize.Comma(int64(s.Tiles)),
			ms(s.Mean),
			ms(s.P99),
			ms(s.Max),
			humanize.Comma(int64(s.OverBudget)),
		)
	}
	fmt.Println(t)

	verdict := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")).Render("PASS")
	if !run.Passed() {
		verdict = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")).Render("FAIL")
	}
	fmt.Printf("\nResult: %s (worst p99 %s, budget %s)\n", verdict, ms(run.Worst()), ms(run.Budget))
}
