package core

// Scale is how many world pixels one terminal cell covers.
// Cells are drawn with a half-block glyph, so each cell holds two stacked
// sub-pixels of CellW x CellH/2 pixels.
type Scale struct {
	CellW int // Pixels per cell horizontally
	CellH int // Pixels per cell vertically (even)
}

// DefaultScale matches the usual 1:2 glyph aspect: 8x16 pixels per cell.
func DefaultScale() Scale {
	return Scale{CellW: 8, CellH: 16}
}

// SubH returns the height in pixels of one half-cell sub-pixel.
func (s Scale) SubH() int {
	return max(1, s.CellH/2)
}

// RuntimeConfig contains configuration passed to a viewer session at start.
type RuntimeConfig struct {
	ScreenW     int     // Screen width in cells
	ScreenH     int     // Screen height in cells
	TickRate    int     // Frames per second (default 60)
	CameraSpeed float64 // Pan speed in pixels per second
	Scale       Scale   // Pixels per cell
	ShowGrid    bool    // Draw tile outlines
	ShowDebug   bool    // Draw the camera/FPS overlay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:     80,
		ScreenH:     24,
		TickRate:    60,
		CameraSpeed: 500,
		Scale:       DefaultScale(),
		ShowGrid:    true,
		ShowDebug:   true,
	}
}
