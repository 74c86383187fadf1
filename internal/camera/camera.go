// Package camera tracks the viewport offset into world-pixel space.
package camera

import "github.com/vovakirdan/tileview/internal/core"

// Camera is the world-pixel position of the viewport's top-left corner.
type Camera struct {
	X, Y int
}

// MaxOffset returns the largest camera offset along one axis that keeps a
// view of length view inside a world of length extent. A world smaller than
// the view pins the camera at 0.
func MaxOffset(extent, view int) int {
	return max(0, extent-view)
}

// Clamp keeps the viewport inside a worldW x worldH pixel world.
func (c *Camera) Clamp(worldW, worldH, viewW, viewH int) {
	c.X = core.Clamp(c.X, 0, MaxOffset(worldW, viewW))
	c.Y = core.Clamp(c.Y, 0, MaxOffset(worldH, viewH))
}

// Pan moves the camera by (dx, dy) pixels without clamping.
func (c *Camera) Pan(dx, dy int) {
	c.X += dx
	c.Y += dy
}

// Viewport returns the visible world rectangle.
func (c Camera) Viewport(viewW, viewH int) core.Rect {
	return core.NewRect(c.X, c.Y, viewW, viewH)
}

// Mover turns held directions into whole-pixel camera deltas.
// Speed times elapsed time rarely lands on a whole pixel, so the fractional
// remainder carries into the next frame; slow speeds still move.
type Mover struct {
	Speed float64 // Pixels per second

	remX, remY float64
}

// NewMover creates a mover at speed pixels per second.
func NewMover(speed float64) *Mover {
	return &Mover{Speed: speed}
}

// Step returns the pixel delta for direction (dirX, dirY) held for dt seconds.
// Releasing an axis drops its remainder.
func (m *Mover) Step(dirX, dirY int, dt float64) (int, int) {
	if dt <= 0 || m.Speed <= 0 {
		return 0, 0
	}
	return m.axis(&m.remX, dirX, dt), m.axis(&m.remY, dirY, dt)
}

func (m *Mover) axis(rem *float64, dir int, dt float64) int {
	if dir == 0 {
		*rem = 0
		return 0
	}
	*rem += float64(dir) * m.Speed * dt
	whole := int(*rem)
	*rem -= float64(whole)
	return whole
}

// Reset drops any carried remainder.
func (m *Mover) Reset() {
	m.remX, m.remY = 0, 0
}
