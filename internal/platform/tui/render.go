package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tileview/internal/core"
)

// colorPair is the foreground and background of one printed cell.
type colorPair struct {
	fg core.RGB
	bg core.RGB
}

// Renderer converts a Screen into styled terminal output. Pixel cells print
// a half block with the top sub-pixel as foreground and the bottom as
// background; text cells print their rune over the top color.
//
// A Renderer caches one lipgloss style per color pair and is not safe for
// concurrent use.
type Renderer struct {
	lg     *lipgloss.Renderer
	styles map[colorPair]lipgloss.Style
	sb     strings.Builder
	run    strings.Builder
}

// NewRenderer creates a renderer for the given lipgloss renderer, which
// decides the color profile. A nil lg uses the default renderer (stdout).
func NewRenderer(lg *lipgloss.Renderer) *Renderer {
	if lg == nil {
		lg = lipgloss.DefaultRenderer()
	}
	return &Renderer{
		lg:     lg,
		styles: make(map[colorPair]lipgloss.Style),
	}
}

func (r *Renderer) style(p colorPair) lipgloss.Style {
	st, ok := r.styles[p]
	if !ok {
		st = r.lg.NewStyle().
			Foreground(lipgloss.Color(p.fg.Hex())).
			Background(lipgloss.Color(p.bg.Hex()))
		r.styles[p] = st
	}
	return st
}

func cellColors(c core.Cell) colorPair {
	if c.Rune != 0 {
		return colorPair{fg: c.Fg, bg: c.Top}
	}
	return colorPair{fg: c.Top, bg: c.Bottom}
}

// Render converts the screen to a string for display.
// Adjacent cells with the same colors share one escape sequence.
func (r *Renderer) Render(s *core.Screen) string {
	r.sb.Reset()
	// Pre-allocate with room for escape codes
	r.sb.Grow(s.Width()*s.Height()*4 + s.Height())

	for y, h := 0, s.Height(); y < h; y++ {
		if y > 0 {
			r.sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := cellColors(s.GetCell(x, y))

			r.run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cellColors(cell) != start {
					break
				}
				r.run.WriteRune(cell.Glyph())
				x++
			}

			r.sb.WriteString(r.style(start).Render(r.run.String()))
		}
	}
	return r.sb.String()
}

// RenderScreen renders s for stdout with a throwaway Renderer.
func RenderScreen(s *core.Screen) string {
	return NewRenderer(nil).Render(s)
}
