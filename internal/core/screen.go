package core

import (
	"strings"
)

// HalfBlock is the glyph used for pixel cells: the foreground paints the top
// half and the background paints the bottom half.
const HalfBlock = '▀'

// Cell is one terminal cell. A pixel cell carries two stacked sub-pixels;
// a text cell carries a rune drawn in Fg over Top.
type Cell struct {
	Top    RGB  // Upper sub-pixel (also the text background)
	Bottom RGB  // Lower sub-pixel
	Rune   rune // 0 for a pixel cell
	Fg     RGB  // Text color
}

// Glyph returns the rune to print for this cell.
func (c Cell) Glyph() rune {
	if c.Rune != 0 {
		return c.Rune
	}
	return HalfBlock
}

// Screen is a cell buffer that doubles as the viewer's display surface.
// Draw calls take world-sized pixel rectangles; the screen maps them onto
// sub-pixels using its Scale and clips whatever falls outside.
type Screen struct {
	width  int
	height int
	scale  Scale
	cells  [][]Cell
}

// NewScreen creates a new screen buffer with the given dimensions in cells.
func NewScreen(width, height int, scale Scale) *Screen {
	if scale.CellW <= 0 || scale.CellH <= 0 {
		scale = DefaultScale()
	}
	s := &Screen{
		width:  max(0, width),
		height: max(0, height),
		scale:  scale,
	}
	s.allocate()
	s.Clear(Black)
	return s
}

func (s *Screen) allocate() {
	s.cells = make([][]Cell, s.height)
	for y := range s.cells {
		s.cells[y] = make([]Cell, s.width)
	}
}

// Width returns the screen width in cells.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in cells.
func (s *Screen) Height() int {
	return s.height
}

// Scale returns the pixels-per-cell scale.
func (s *Screen) Scale() Scale {
	return s.scale
}

// Size returns the surface size in pixels.
func (s *Screen) Size() (int, int) {
	return s.width * s.scale.CellW, s.height * s.scale.CellH
}

// Resize changes the screen dimensions, preserving content where possible.
func (s *Screen) Resize(width, height int) {
	width, height = max(0, width), max(0, height)
	if width == s.width && height == s.height {
		return
	}

	oldCells := s.cells
	s.width = width
	s.height = height
	s.allocate()

	for y := 0; y < min(len(oldCells), height); y++ {
		copy(s.cells[y], oldCells[y])
	}
}

// Clear fills the whole screen with bg and drops any text.
func (s *Screen) Clear(bg RGB) {
	for y := range s.cells {
		row := s.cells[y]
		for x := range row {
			row[x] = Cell{Top: bg, Bottom: bg}
		}
	}
}

// subRange maps a pixel span onto the sub-pixels whose centers fall inside it.
func subRange(start, length, size int) (int, int) {
	half := size / 2
	return ceilDiv(start-half, size), ceilDiv(start+length-half, size)
}

func ceilDiv(a, b int) int {
	return -FloorDiv(-a, b)
}

func (s *Screen) setSub(sx, sy int, c RGB) {
	if sx < 0 || sx >= s.width || sy < 0 || sy >= s.height*2 {
		return
	}
	cell := &s.cells[sy/2][sx]
	if sy%2 == 0 {
		cell.Top = c
	} else {
		cell.Bottom = c
	}
	cell.Rune = 0
}

// bounds returns the surface in pixels.
func (s *Screen) bounds() Rect {
	w, h := s.Size()
	return NewRect(0, 0, w, h)
}

// FillRect paints a filled pixel rectangle.
func (s *Screen) FillRect(r Rect, c RGB) {
	r = r.Intersect(s.bounds())
	if r.Empty() {
		return
	}
	x0, x1 := subRange(r.X, r.W, s.scale.CellW)
	y0, y1 := subRange(r.Y, r.H, s.scale.SubH())
	x0, x1 = max(x0, 0), min(x1, s.width)
	y0, y1 = max(y0, 0), min(y1, s.height*2)
	for sy := y0; sy < y1; sy++ {
		for sx := x0; sx < x1; sx++ {
			s.setSub(sx, sy, c)
		}
	}
}

// StrokeRect paints a 1px outline. At terminal resolution a 1px line
// becomes one sub-pixel along each edge; edges off the screen are skipped.
func (s *Screen) StrokeRect(r Rect, c RGB) {
	if !r.Intersects(s.bounds()) {
		return
	}
	x0, x1 := subRange(r.X, r.W, s.scale.CellW)
	y0, y1 := subRange(r.Y, r.H, s.scale.SubH())
	if x1 <= x0 || y1 <= y0 {
		return
	}
	for sx := x0; sx < x1; sx++ {
		s.setSub(sx, y0, c)
		s.setSub(sx, y1-1, c)
	}
	for sy := y0; sy < y1; sy++ {
		s.setSub(x0, sy, c)
		s.setSub(x1-1, sy, c)
	}
}

// SubPixel returns the color of the sub-pixel at (sx, sy).
// Returns black for out-of-bounds coordinates.
func (s *Screen) SubPixel(sx, sy int) RGB {
	if sx < 0 || sx >= s.width || sy < 0 || sy >= s.height*2 {
		return Black
	}
	cell := s.cells[sy/2][sx]
	if sy%2 == 0 {
		return cell.Top
	}
	return cell.Bottom
}

// GetCell returns the cell at the given position.
// Returns a zero cell for out-of-bounds coordinates.
func (s *Screen) GetCell(x, y int) Cell {
	if !NewRect(0, 0, s.width, s.height).Contains(x, y) {
		return Cell{}
	}
	return s.cells[y][x]
}

// DrawText writes a string horizontally starting at cell (x, y).
// Characters that extend beyond screen bounds are clipped.
func (s *Screen) DrawText(x, y int, text string, fg RGB) {
	if y < 0 || y >= s.height {
		return
	}
	i := 0
	for _, r := range text {
		cx := x + i
		i++
		if cx < 0 || cx >= s.width {
			continue
		}
		cell := &s.cells[y][cx]
		cell.Rune = r
		cell.Fg = fg
	}
}

// String converts the screen to plain text, one line per row.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow((s.width*3 + 1) * s.height)

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < s.width; x++ {
			sb.WriteRune(s.cells[y][x].Glyph())
		}
	}
	return sb.String()
}

// Row returns the plain text of row y.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var sb strings.Builder
	for _, c := range s.cells[y] {
		sb.WriteRune(c.Glyph())
	}
	return sb.String()
}
