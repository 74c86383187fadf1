package world

import (
	"strings"
	"unsafe"
)

// StatsSampleLimit is the largest number of cells Stats visits. Bigger worlds
// are sampled on an even stride.
const StatsSampleLimit = 1 << 20

// Summary describes a world's size and terrain mix.
type Summary struct {
	Width      int
	Height     int
	TileSize   int
	PixelW     int64
	PixelH     int64
	Cells      int64
	DenseBytes int64 // Memory a dense grid of this size needs

	Sampled bool            // Counts come from a stride sample
	Samples int64           // Cells visited
	Counts  [NumKinds]int64 // Per kind, over the visited cells
}

// Fraction returns the share of visited cells of kind k.
func (s Summary) Fraction(k TileKind) float64 {
	if s.Samples == 0 || !k.Valid() {
		return 0
	}
	return float64(s.Counts[k]) / float64(s.Samples)
}

// Stats summarizes src.
func Stats(src Source) Summary {
	w, h, t := src.Width(), src.Height(), src.TileSize()
	cells := int64(w) * int64(h)
	s := Summary{
		Width:      w,
		Height:     h,
		TileSize:   t,
		PixelW:     int64(w) * int64(t),
		PixelH:     int64(h) * int64(t),
		Cells:      cells,
		DenseBytes: cells * int64(unsafe.Sizeof(TileKind(0))),
	}

	stride := 1
	for int64(w/stride+1)*int64(h/stride+1) > StatsSampleLimit && cells > StatsSampleLimit {
		stride *= 2
	}
	s.Sampled = stride > 1

	// Chunked sources are walked one chunk at a time so each chunk is built once.
	bw, bh := w, h
	if c, ok := src.(interface{ ChunkSize() int }); ok && c.ChunkSize() > 0 {
		bw, bh = c.ChunkSize(), c.ChunkSize()
	}

	for by := 0; by < h; by += bh {
		for bx := 0; bx < w; bx += bw {
			for row := alignUp(by, stride); row < min(by+bh, h); row += stride {
				for col := alignUp(bx, stride); col < min(bx+bw, w); col += stride {
					if k, ok := src.TileAt(col, row); ok {
						s.Counts[k]++
						s.Samples++
					}
				}
			}
		}
	}
	return s
}

// alignUp rounds v up to a multiple of step.
func alignUp(v, step int) int {
	return (v + step - 1) / step * step
}

// RenderASCII draws a cols x rows minimap of src, one glyph per sampled tile.
func RenderASCII(src Source, cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	w, h := src.Width(), src.Height()
	cols, rows = min(cols, w), min(rows, h)

	var sb strings.Builder
	sb.Grow((cols + 1) * rows)
	for r := 0; r < rows; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		row := int(int64(r) * int64(h) / int64(rows))
		for c := 0; c < cols; c++ {
			col := int(int64(c) * int64(w) / int64(cols))
			k, _ := src.TileAt(col, row)
			sb.WriteByte(k.Char())
		}
	}
	return sb.String()
}
