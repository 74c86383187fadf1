// Package viewer runs one viewer: it owns the camera and drives the world's
// culling and drawing against a surface once per frame.
package viewer

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tileview/internal/camera"
	"github.com/vovakirdan/tileview/internal/core"
	"github.com/vovakirdan/tileview/internal/metrics"
	"github.com/vovakirdan/tileview/internal/world"
)

// Overlay position, in cells.
const (
	OverlayX = 1
	OverlayY = 0
)

// Surface is what a session draws on. core.Screen implements it.
type Surface interface {
	world.Surface
	Clear(bg core.RGB)
	DrawText(x, y int, text string, fg core.RGB)
}

// Options controls a session.
type Options struct {
	Speed     float64 // Camera speed in pixels per second
	ShowGrid  bool
	ShowDebug bool
	Metrics   *metrics.Metrics // Optional
}

// OptionsFrom derives session options from a runtime config.
func OptionsFrom(cfg core.RuntimeConfig) Options {
	return Options{
		Speed:     cfg.CameraSpeed,
		ShowGrid:  cfg.ShowGrid,
		ShowDebug: cfg.ShowDebug,
	}
}

// FrameStats describes one drawn frame.
type FrameStats struct {
	Camera   camera.Camera
	Cols     world.Range
	Rows     world.Range
	Tiles    int
	Commands int
	Took     time.Duration
}

// Session is the loop context for one viewer: the world it reads, the
// surface it paints, and the camera it moves. A session is not safe for
// concurrent use; the world it reads may be shared.
type Session struct {
	world   world.Source
	surface Surface
	cam     camera.Camera
	mover   *camera.Mover
	opts    Options

	fps  float64
	buf  []world.DrawCommand
	last FrameStats
}

// New creates a session with the camera at the world origin.
func New(src world.Source, surface Surface, opts Options) *Session {
	return &Session{
		world:   src,
		surface: surface,
		mover:   camera.NewMover(opts.Speed),
		opts:    opts,
	}
}

// Camera returns the current camera.
func (s *Session) Camera() camera.Camera {
	return s.cam
}

// SetCamera moves the camera and drops any partial movement. It is clamped
// on the next Update.
func (s *Session) SetCamera(c camera.Camera) {
	s.cam = c
	s.mover.Reset()
}

// World returns the world being viewed.
func (s *Session) World() world.Source {
	return s.world
}

// ShowGrid reports whether tile outlines are drawn.
func (s *Session) ShowGrid() bool {
	return s.opts.ShowGrid
}

// ShowDebug reports whether the overlay is drawn.
func (s *Session) ShowDebug() bool {
	return s.opts.ShowDebug
}

// ToggleGrid flips tile outlines on or off.
func (s *Session) ToggleGrid() {
	s.opts.ShowGrid = !s.opts.ShowGrid
}

// ToggleDebug flips the overlay on or off.
func (s *Session) ToggleDebug() {
	s.opts.ShowDebug = !s.opts.ShowDebug
}

// SetFPS sets the frame rate shown in the overlay.
func (s *Session) SetFPS(fps float64) {
	s.fps = fps
}

// LastFrame returns the stats of the most recent Draw.
func (s *Session) LastFrame() FrameStats {
	return s.last
}

func (s *Session) worldPixels() (int, int) {
	t := s.world.TileSize()
	return s.world.Width() * t, s.world.Height() * t
}

// Update advances the camera by the held directions over dt seconds.
// The camera is clamped against the current surface size before the input is
// applied, so a resize since the last frame never leaves it out of bounds.
func (s *Session) Update(in core.InputFrame, dt float64) {
	ww, wh := s.worldPixels()
	vw, vh := s.surface.Size()

	s.cam.Clamp(ww, wh, vw, vh)

	dirX, dirY := in.Axis()
	dx, dy := s.mover.Step(dirX, dirY, dt)
	s.cam.Pan(dx, dy)

	s.cam.Clamp(ww, wh, vw, vh)
}

// Draw paints one frame: background, visible tiles, then the overlay.
func (s *Session) Draw() FrameStats {
	start := time.Now()
	vw, vh := s.surface.Size()

	s.surface.Clear(world.Background)

	view := s.cam.Viewport(vw, vh)
	s.buf = world.AppendDraw(s.buf[:0], s.world, view.X, view.Y, view.W, view.H)
	tiles := world.Apply(s.surface, s.buf, s.opts.ShowGrid)

	if s.opts.ShowDebug {
		s.surface.DrawText(OverlayX, OverlayY, s.OverlayText(), core.White)
	}

	cols, rows := world.VisibleRange(s.world, view.X, view.Y, view.W, view.H)
	s.last = FrameStats{
		Camera:   s.cam,
		Cols:     cols,
		Rows:     rows,
		Tiles:    tiles,
		Commands: len(s.buf),
		Took:     time.Since(start),
	}
	s.opts.Metrics.ObserveFrame(tiles, s.last.Took)
	return s.last
}

// OverlayText returns the debug line for the current frame.
func (s *Session) OverlayText() string {
	return fmt.Sprintf("Camera: (%d, %d) | FPS: %d", s.cam.X, s.cam.Y, int(s.fps))
}
