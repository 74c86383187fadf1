package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tileview/internal/app"
	"github.com/vovakirdan/tileview/internal/config"
	"github.com/vovakirdan/tileview/internal/logging"
	"github.com/vovakirdan/tileview/internal/platform/tui"
)

var flagNoGrid bool

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Explore the world in this terminal",
	Long: `Open the viewer on the configured world.

Controls:
  Arrows/WASD  - Pan the camera
  G            - Toggle the tile grid
  I            - Toggle the camera/FPS overlay
  Ctrl+S       - Save the visible tiles to ~/.tileview/snapshots
  ?            - Toggle full help
  Esc/Q        - Quit

Logs go to the file set by log.file, since the viewer owns the terminal.

Examples:
  tileview view
  tileview view --width 1000 --height 1000
  tileview view --generator perlin --seed 7 --no-grid`,
	Args: cobra.NoArgs,
	RunE: runView,
}

func init() {
	viewCmd.Flags().BoolVar(&flagNoGrid, "no-grid", false, "Start with the tile grid hidden")
}

func runView(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if flagNoGrid {
		cfg.View.ShowGrid = false
	}

	logger, closer, err := logging.NewFile("tileview", cfg.Log)
	if err != nil {
		return err
	}
	defer closer.Close()

	src, err := app.BuildWorld(cfg.World)
	if err != nil {
		return err
	}
	defer app.CloseWorld(src)

	// Get terminal size; the model corrects it on the first resize message
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	logger.Info("viewer starting",
		"world", fmt.Sprintf("%dx%d", src.Width(), src.Height()),
		"generator", cfg.World.Generator,
		"layout", app.LayoutOf(src),
		"terminal", fmt.Sprintf("%dx%d", width, height),
	)

	err = tui.Run(src, tui.Options{
		Config:      cfg.Runtime(width, height),
		Hold:        cfg.View.Hold(),
		Logger:      logger,
		SnapshotDir: config.ExpandPath("~/.tileview/snapshots"),
	})
	if err != nil {
		logger.Error("viewer stopped", "error", err)
		return fmt.Errorf("viewer: %w", err)
	}
	logger.Info("viewer stopped")
	return nil
}
