package world

import (
	"errors"
	"fmt"
)

// DefaultTileSize is the edge length of a tile in world pixels.
const DefaultTileSize = 64

var (
	// ErrInvalidDimensions is returned for a non-positive grid width or height.
	ErrInvalidDimensions = errors.New("world: invalid dimensions")

	// ErrInvalidTileSize is returned for a non-positive tile size.
	ErrInvalidTileSize = errors.New("world: invalid tile size")
)

// Source is a read-only tile grid. Dense and chunked worlds both satisfy it,
// and culling is written once against it.
type Source interface {
	// Width returns the grid width in tiles.
	Width() int
	// Height returns the grid height in tiles.
	Height() int
	// TileSize returns the tile edge in world pixels.
	TileSize() int
	// TileAt returns the kind at (col, row), or false outside the grid.
	TileAt(col, row int) (TileKind, bool)
}

// Config describes a world to build.
type Config struct {
	Width     int       // Tiles
	Height    int       // Tiles
	TileSize  int       // Pixels per tile edge; 0 means DefaultTileSize
	Generator Generator // nil means DefaultWave
}

func (c Config) normalize() (Config, error) {
	if c.Width <= 0 || c.Height <= 0 {
		return c, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, c.Width, c.Height)
	}
	if c.TileSize == 0 {
		c.TileSize = DefaultTileSize
	}
	if c.TileSize < 0 {
		return c, fmt.Errorf("%w: %d", ErrInvalidTileSize, c.TileSize)
	}
	if c.Generator == nil {
		c.Generator = DefaultWave
	}
	return c, nil
}

// World is a dense, eagerly generated tile grid. It never changes after New.
type World struct {
	width    int
	height   int
	tileSize int
	tiles    []TileKind // Row-major, width*height
}

// New builds a width x height world with the default tile size and generator.
func New(width, height int) (*World, error) {
	return NewWithConfig(Config{Width: width, Height: height})
}

// NewWithConfig builds a world, invoking the generator exactly once per cell.
func NewWithConfig(cfg Config) (*World, error) {
	cfg, err := cfg.normalize()
	if err != nil {
		return nil, err
	}

	w := &World{
		width:    cfg.Width,
		height:   cfg.Height,
		tileSize: cfg.TileSize,
		tiles:    make([]TileKind, cfg.Width*cfg.Height),
	}

	i := 0
	for row := 0; row < cfg.Height; row++ {
		for col := 0; col < cfg.Width; col++ {
			k := cfg.Generator.Kind(col, row)
			if !k.Valid() {
				return nil, fmt.Errorf("world: generator returned invalid kind %d at (%d, %d)", k, col, row)
			}
			w.tiles[i] = k
			i++
		}
	}

	return w, nil
}

// Width returns the grid width in tiles.
func (w *World) Width() int {
	return w.width
}

// Height returns the grid height in tiles.
func (w *World) Height() int {
	return w.height
}

// TileSize returns the tile edge in world pixels.
func (w *World) TileSize() int {
	return w.tileSize
}

// TileAt returns the kind at (col, row), or false outside the grid.
func (w *World) TileAt(col, row int) (TileKind, bool) {
	if col < 0 || col >= w.width || row < 0 || row >= w.height {
		return 0, false
	}
	return w.tiles[row*w.width+col], true
}

// PixelSize returns the world extent in pixels.
func (w *World) PixelSize() (int, int) {
	return w.width * w.tileSize, w.height * w.tileSize
}

// Draw returns the draw commands for the tiles visible through a viewW x viewH
// viewport at camera offset (camX, camY).
func (w *World) Draw(camX, camY, viewW, viewH int) []DrawCommand {
	return AppendDraw(nil, w, camX, camY, viewW, viewH)
}
