// Package world holds the tile grid, the tile generator and viewport culling.
// Everything here is pure: a World is immutable after construction and Draw
// only reads it, so many viewers may share one World.
package world

import "github.com/vovakirdan/tileview/internal/core"

// TileKind is the terrain category of one tile.
type TileKind uint8

const (
	Water TileKind = iota
	Sand
	Grass
	Dirt

	// NumKinds is the number of valid tile kinds.
	NumKinds = 4
)

// Kinds lists every valid kind in index order.
var Kinds = [NumKinds]TileKind{Water, Sand, Grass, Dirt}

var kindNames = [NumKinds]string{"Water", "Sand", "Grass", "Dirt"}

// Minimap glyphs.
var kindChars = [NumKinds]byte{'~', '.', '"', '#'}

var palette = [NumKinds]core.RGB{
	Water: {R: 65, G: 105, B: 225},
	Sand:  {R: 238, G: 214, B: 175},
	Grass: {R: 34, G: 139, B: 34},
	Dirt:  {R: 139, G: 69, B: 19},
}

var (
	// GridLine is the outline color drawn around every tile.
	GridLine = core.RGB{R: 50, G: 50, B: 50}

	// Background is the clear color painted before tiles are drawn.
	Background = core.RGB{R: 34, G: 139, B: 34}
)

// Valid reports whether k is one of the four defined kinds.
func (k TileKind) Valid() bool {
	return k < NumKinds
}

// String implements fmt.Stringer.
func (k TileKind) String() string {
	if !k.Valid() {
		return "Invalid"
	}
	return kindNames[k]
}

// Char returns the single-character glyph used by the ASCII minimap.
func (k TileKind) Char() byte {
	if !k.Valid() {
		return '?'
	}
	return kindChars[k]
}

// ColorOf returns the display color for kind.
// An invalid kind is a cosmetic fault and maps to black.
func ColorOf(kind TileKind) core.RGB {
	if !kind.Valid() {
		return core.Black
	}
	return palette[kind]
}
