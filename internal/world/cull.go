package world

import "github.com/vovakirdan/tileview/internal/core"

// Range is a half-open tile index range [Start, End).
type Range struct {
	Start int
	End   int
}

// Len returns the number of indices in the range.
func (r Range) Len() int {
	return max(0, r.End-r.Start)
}

// Empty reports whether the range holds no indices.
func (r Range) Empty() bool {
	return r.End <= r.Start
}

// Span returns the tiles of an n-tile axis that a view of length view at
// offset cam touches. Partially visible edge tiles are included; the result
// never leaves [0, n).
func Span(cam, view, tileSize, n int) Range {
	if view <= 0 || tileSize <= 0 || n <= 0 {
		return Range{}
	}
	start := core.Clamp(core.FloorDiv(cam, tileSize), 0, n)
	end := min(n, core.FloorDiv(cam+view, tileSize)+1)
	if end < start {
		end = start
	}
	return Range{Start: start, End: end}
}

// VisibleRange returns the column and row ranges of src visible through the viewport.
func VisibleRange(src Source, camX, camY, viewW, viewH int) (cols, rows Range) {
	if viewW <= 0 || viewH <= 0 {
		return Range{}, Range{}
	}
	t := src.TileSize()
	return Span(camX, viewW, t, src.Width()), Span(camY, viewH, t, src.Height())
}

// Op is the kind of a draw command.
type Op uint8

const (
	OpFill    Op = iota // Filled rectangle
	OpOutline           // 1px rectangle outline
)

// String implements fmt.Stringer.
func (o Op) String() string {
	switch o {
	case OpFill:
		return "Fill"
	case OpOutline:
		return "Outline"
	default:
		return "Unknown"
	}
}

// DrawCommand is one rectangle to paint in screen pixels.
type DrawCommand struct {
	Op    Op
	Rect  core.Rect
	Color core.RGB
}

// AppendDraw appends the draw commands for the visible tiles of src to dst
// and returns the extended slice. Tiles are visited row-major; each yields a
// Fill in its color followed by an Outline in GridLine.
func AppendDraw(dst []DrawCommand, src Source, camX, camY, viewW, viewH int) []DrawCommand {
	cols, rows := VisibleRange(src, camX, camY, viewW, viewH)
	if cols.Empty() || rows.Empty() {
		return dst
	}

	t := src.TileSize()
	if need := len(dst) + 2*cols.Len()*rows.Len(); cap(dst) < need {
		grown := make([]DrawCommand, len(dst), need)
		copy(grown, dst)
		dst = grown
	}

	for row := rows.Start; row < rows.End; row++ {
		y := row*t - camY
		for col := cols.Start; col < cols.End; col++ {
			kind, _ := src.TileAt(col, row)
			r := core.NewRect(col*t-camX, y, t, t)
			dst = append(dst,
				DrawCommand{Op: OpFill, Rect: r, Color: ColorOf(kind)},
				DrawCommand{Op: OpOutline, Rect: r, Color: GridLine},
			)
		}
	}
	return dst
}

// Surface accepts draw commands. core.Screen implements it.
type Surface interface {
	Size() (int, int)
	FillRect(r core.Rect, c core.RGB)
	StrokeRect(r core.Rect, c core.RGB)
}

// Apply paints cmds onto s. Outlines are skipped unless grid is set.
// It returns the number of fill commands applied.
func Apply(s Surface, cmds []DrawCommand, grid bool) int {
	fills := 0
	for _, c := range cmds {
		switch c.Op {
		case OpFill:
			s.FillRect(c.Rect, c.Color)
			fills++
		case OpOutline:
			if grid {
				s.StrokeRect(c.Rect, c.Color)
			}
		}
	}
	return fills
}
