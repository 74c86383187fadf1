// tileview renders a procedurally generated tile world in the terminal.
//
// Usage:
//
//	tileview view      - Explore the world in this terminal
//	tileview serve     - Serve the viewer over SSH
//	tileview bench     - Measure per-frame draw cost
//	tileview history   - Browse recorded bench runs
//	tileview inspect   - Print world statistics and a minimap
//	tileview list      - List available generators
//
// Global flags:
//
//	--config <path>     - Config file (default search: ~/.tileview, ./configs, built-in)
//	--fps <rate>        - Frame rate
//	--generator <id>    - World generator
//	--width, --height   - World size in tiles
//	--seed <value>      - Generator seed
//	--layout <name>     - dense, chunked or auto
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tileview/internal/config"
)

var (
	// Global flags
	flagConfig    string
	flagFPS       int
	flagGenerator string
	flagWidth     int
	flagHeight    int
	flagSeed      int64
	flagLayout    string
	flagLogLevel  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tileview",
	Short: "tileview - explore a procedural tile world in your terminal",
	Long: `tileview generates a deterministic tile world (water, sand, grass, dirt)
and shows it through a scrolling viewport. Only the tiles inside the
viewport are drawn, so worlds of any size render at the same cost.

Available commands:
  view     - Explore the world in this terminal
  serve    - Serve the viewer over SSH
  bench    - Measure per-frame draw cost
  history  - Browse recorded bench runs
  inspect  - Print world statistics and a minimap
  list     - List available generators

Examples:
  tileview view
  tileview view --width 100000 --height 100000 --generator perlin --seed 42
  tileview serve --ssh :2222
  tileview bench --width 1000 --height 1000
  tileview inspect --generator perlin`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Path to config YAML")
	pf.IntVar(&flagFPS, "fps", 0, "Frame rate (overrides view.fps)")
	pf.StringVar(&flagGenerator, "generator", "", "World generator ID (see 'tileview list')")
	pf.IntVar(&flagWidth, "width", 0, "World width in tiles")
	pf.IntVar(&flagHeight, "height", 0, "World height in tiles")
	pf.Int64Var(&flagSeed, "seed", 0, "Generator seed")
	pf.StringVar(&flagLayout, "layout", "", "World layout: dense, chunked or auto")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(listCmd)
}

// loadConfig loads the config file and applies the global flags that were set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, source, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.View.FPS = flagFPS
	}
	if flags.Changed("generator") {
		cfg.World.Generator = flagGenerator
	}
	if flags.Changed("width") {
		cfg.World.Width = flagWidth
	}
	if flags.Changed("height") {
		cfg.World.Height = flagHeight
	}
	if flags.Changed("seed") {
		cfg.World.Seed = flagSeed
	}
	if flags.Changed("layout") {
		cfg.World.Layout = flagLayout
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%w (config from %s)", err, source)
	}
	return cfg, nil
}
