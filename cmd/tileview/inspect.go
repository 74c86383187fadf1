package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tileview/internal/app"
	"github.com/vovakirdan/tileview/internal/bench"
	"github.com/vovakirdan/tileview/internal/world"
)

var (
	flagMapWidth  int
	flagMapHeight int
	flagNoColor   bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print world statistics and a minimap",
	Long: `Build the configured world and describe it: size in tiles and pixels,
the share of each terrain kind, the memory a dense grid needs, and a
downsampled minimap.

Worlds above a million cells are sampled on an even stride.

Examples:
  tileview inspect
  tileview inspect --generator perlin --seed 3
  tileview inspect --width 100000 --height 100000 --map-width 100`,
	Args: cobra.NoArgs,
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().IntVar(&flagMapWidth, "map-width", 64, "Minimap width in characters")
	inspectCmd.Flags().IntVar(&flagMapHeight, "map-height", 24, "Minimap height in lines")
	inspectCmd.Flags().BoolVar(&flagNoColor, "no-color", false, "Print the minimap without colors")
}

func runInspect(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	start := time.Now()
	src, err := app.BuildWorld(cfg.World)
	if err != nil {
		return err
	}
	defer app.CloseWorld(src)
	built := time.Since(start)

	sum := world.Stats(src)

	label := lipgloss.NewStyle().Bold(true).Width(12)
	line := func(k, v string) { fmt.Println(label.Render(k) + v) }

	line("Generator", fmt.Sprintf("%s (seed %d)", cfg.World.Generator, cfg.World.Seed))
	line("Layout", string(app.LayoutOf(src)))
	line("Tiles", fmt.Sprintf("%s x %s = %s", humanize.Comma(int64(sum.Width)), humanize.Comma(int64(sum.Height)), humanize.Comma(sum.Cells)))
	line("Pixels", fmt.Sprintf("%s x %s (tile %dpx)", humanize.Comma(sum.PixelW), humanize.Comma(sum.PixelH), sum.TileSize))
	line("Dense grid", humanize.IBytes(uint64(sum.DenseBytes)))
	if c, ok := src.(*world.Chunked); ok {
		line("Chunks", fmt.Sprintf("%d tiles per edge, %s generated", c.ChunkSize(), humanize.Comma(c.Generated())))
	}
	line("Built in", built.Round(time.Microsecond).String())
	if rss := bench.ProcessRSS(); rss > 0 {
		line("Process RSS", humanize.IBytes(rss))
	}
	fmt.Println()

	fmt.Println(kindTable(sum))
	fmt.Println()
	fmt.Println(minimap(src, flagMapWidth, flagMapHeight, !flagNoColor))
	return nil
}

func kindTable(sum world.Summary) *table.Table {
	title := "Terrain"
	if sum.Sampled {
		title = fmt.Sprintf("Terrain (%s sampled)", humanize.Comma(sum.Samples))
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(title, "Glyph", "Cells", "Share", "")

	for _, k := range world.Kinds {
		share := sum.Fraction(k)
		bar := lipgloss.NewStyle().
			Foreground(lipgloss.Color(world.ColorOf(k).Hex())).
			Render(strings.Repeat("█", int(share*30+0.5)))
		t.Row(
			k.String(),
			string(k.Char()),
			humanize.Comma(sum.Counts[k]),
			fmt.Sprintf("%5.1f%%", share*100),
			bar,
		)
	}
	return t
}

// minimap renders the ASCII minimap, optionally tinting each glyph with its
// tile color.
func minimap(src world.Source, cols, rows int, color bool) string {
	plain := world.RenderASCII(src, cols, rows)
	if !color {
		return plain
	}

	styles := make(map[byte]lipgloss.Style, world.NumKinds)
	for _, k := range world.Kinds {
		styles[k.Char()] = lipgloss.NewStyle().Foreground(lipgloss.Color(world.ColorOf(k).Hex()))
	}

	var sb strings.Builder
	for i := 0; i < len(plain); i++ {
		c := plain[i]
		if st, ok := styles[c]; ok {
			sb.WriteString(st.Render(string(c)))
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}
