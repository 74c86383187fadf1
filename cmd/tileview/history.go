package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tileview/internal/config"
	"github.com/vovakirdan/tileview/internal/platform/tui"
	"github.com/vovakirdan/tileview/internal/storage"
)

var (
	flagPlain bool
	flagClear bool
	flagRunID string
)

var historyCmd = &cobra.Command{
	Use:   "history [generator]",
	Short: "Browse recorded bench runs",
	Long: `Show bench runs saved by 'tileview bench'.

In a terminal this opens an interactive table (tab switches generator).
With --plain, or when output is not a terminal, it prints a per-generator
summary instead.

Examples:
  tileview history
  tileview history --plain
  tileview history --run 3f1c9a2b  # Per-position detail of one run
  tileview history wave --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a summary instead of the interactive table")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete recorded runs (all, or for the given generator)")
	historyCmd.Flags().StringVar(&flagRunID, "run", "", "Show one run by its ID or an ID prefix")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	store, err := storage.Open(config.ExpandPath(cfg.Bench.DB))
	if err != nil {
		return fmt.Errorf("cannot open bench history: %w", err)
	}
	defer store.Close()

	generator := ""
	if len(args) == 1 {
		generator = args[0]
	}

	if flagRunID != "" {
		run, err := store.RunByID(flagRunID)
		if err != nil {
			return err
		}
		if run == nil {
			return fmt.Errorf("no bench run with ID %q", flagRunID)
		}
		fmt.Printf("Run %s, %s\n", run.RunID, run.CreatedAt.Local().Format("Jan 02 2006 15:04"))
		printRun(*run)
		return nil
	}

	if flagClear {
		if err := store.ClearRuns(generator); err != nil {
			return err
		}
		if generator == "" {
			fmt.Println("Cleared all bench runs.")
		} else {
			fmt.Printf("Cleared bench runs for %s.\n", generator)
		}
		return nil
	}

	fd := int(os.Stdout.Fd())
	if !flagPlain && term.IsTerminal(fd) {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(fd); termErr == nil {
			width, height = w, h
		}
		return tui.RunHistory(store, width, height)
	}

	return printHistory(store, generator)
}

func printHistory(store *storage.Store, generator string) error {
	stats, err := store.AllGeneratorStats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Println("No runs recorded yet. Run 'tileview bench' to record one.")
		return nil
	}

	ids := make([]string, 0, len(stats))
	for id := range stats {
		if generator == "" || id == generator {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers("Generator", "Runs", "Best mean", "Worst p99", "Last run")

	for _, id := range ids {
		s := stats[id]
		t.Row(
			id,
			humanize.Comma(int64(s.Runs)),
			ms(s.BestMean),
			ms(s.WorstP99),
			humanize.Time(s.LastRun),
		)
	}
	fmt.Println(t)
	return nil
}
