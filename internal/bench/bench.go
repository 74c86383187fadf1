// Package bench measures per-frame draw cost over a camera sweep and checks
// it against the frame budget.
package bench

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tileview/internal/camera"
	"github.com/vovakirdan/tileview/internal/core"
	"github.com/vovakirdan/tileview/internal/storage"
	"github.com/vovakirdan/tileview/internal/viewer"
	"github.com/vovakirdan/tileview/internal/world"
)

// Options controls a bench run.
type Options struct {
	Frames    int           // Frames per position
	ViewW     int           // Viewport width in pixels
	ViewH     int           // Viewport height in pixels
	Scale     core.Scale    // Pixels per cell of the offscreen surface
	Budget    time.Duration // Per-frame budget
	Speed     float64       // Pan speed for the moving position
	FPS       int           // Simulated frame rate for the moving position
	Generator string        // Recorded only
	Layout    string        // Recorded only
}

// Position is a fixed camera placement to time.
type Position struct {
	Name string
	Cam  camera.Camera
}

// PanName is the sample name of the moving-camera pass.
const PanName = "diagonal pan"

// Positions returns the camera placements every run covers: the origin, the
// far corner, and the world center. Cameras are clamped to the world.
func Positions(src world.Source, viewW, viewH int) []Position {
	t := src.TileSize()
	ww, wh := src.Width()*t, src.Height()*t

	ps := []Position{
		{Name: "origin", Cam: camera.Camera{}},
		{Name: "far corner", Cam: camera.Camera{X: ww, Y: wh}},
		{Name: "interior", Cam: camera.Camera{X: ww/2 - viewW/2, Y: wh/2 - viewH/2}},
	}
	for i := range ps {
		ps[i].Cam.Clamp(ww, wh, viewW, viewH)
	}
	return ps
}

// Run times Frames draws at each fixed position and a diagonal pan from the
// origin. It stops early if ctx is canceled.
func Run(ctx context.Context, src world.Source, opts Options, logger *log.Logger) (storage.BenchRun, error) {
	if opts.Frames <= 0 {
		return storage.BenchRun{}, fmt.Errorf("bench: frames must be positive, got %d", opts.Frames)
	}
	if opts.ViewW <= 0 || opts.ViewH <= 0 {
		return storage.BenchRun{}, fmt.Errorf("bench: invalid viewport %dx%d", opts.ViewW, opts.ViewH)
	}
	if opts.Scale.CellW <= 0 || opts.Scale.CellH <= 0 {
		opts.Scale = core.DefaultScale()
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}

	host := DetectHost()
	run := storage.BenchRun{
		RunID:     uuid.NewString(),
		Generator: opts.Generator,
		Layout:    opts.Layout,
		WorldW:    src.Width(),
		WorldH:    src.Height(),
		TileSize:  src.TileSize(),
		ViewW:     opts.ViewW,
		ViewH:     opts.ViewH,
		Frames:    opts.Frames,
		Budget:    opts.Budget,
		CPU:       host.CPU,
		Cores:     host.Cores,
		CreatedAt: time.Now(),
	}

	screen := core.NewScreen(ceilDiv(opts.ViewW, opts.Scale.CellW), ceilDiv(opts.ViewH, opts.Scale.CellH), opts.Scale)
	sess := viewer.New(src, screen, viewer.Options{Speed: opts.Speed, ShowGrid: true})

	for _, p := range Positions(src, opts.ViewW, opts.ViewH) {
		sess.SetCamera(p.Cam)
		sess.Update(core.InputFrame{}, 0)

		times := make([]time.Duration, 0, opts.Frames)
		var tiles int
		for i := 0; i < opts.Frames; i++ {
			if err := ctx.Err(); err != nil {
				return run, err
			}
			st := sess.Draw()
			times = append(times, st.Took)
			tiles = st.Tiles
		}

		smp := summarize(p.Name, sess.Camera(), tiles, times, opts.Budget)
		logger.Debug("sample", "name", smp.Name, "tiles", smp.Tiles, "mean", smp.Mean, "p99", smp.P99)
		run.Samples = append(run.Samples, smp)
	}

	// Moving camera: update and draw each frame, as the viewer does.
	sess.SetCamera(camera.Camera{})
	in := core.NewInputFrame()
	in.Set(core.ActionPanRight)
	in.Set(core.ActionPanDown)
	dt := 1 / float64(opts.FPS)

	times := make([]time.Duration, 0, opts.Frames)
	maxTiles := 0
	for i := 0; i < opts.Frames; i++ {
		if err := ctx.Err(); err != nil {
			return run, err
		}
		start := time.Now()
		sess.Update(in, dt)
		st := sess.Draw()
		times = append(times, time.Since(start))
		maxTiles = max(maxTiles, st.Tiles)
	}
	run.Samples = append(run.Samples, summarize(PanName, sess.Camera(), maxTiles, times, opts.Budget))

	return run, nil
}

func summarize(name string, cam camera.Camera, tiles int, times []time.Duration, budget time.Duration) storage.BenchSample {
	smp := storage.BenchSample{Name: name, CamX: cam.X, CamY: cam.Y, Tiles: tiles}
	if len(times) == 0 {
		return smp
	}

	var total time.Duration
	for _, d := range times {
		total += d
		if budget > 0 && d > budget {
			smp.OverBudget++
		}
	}

	sorted := slices.Clone(times)
	slices.Sort(sorted)
	smp.Mean = total / time.Duration(len(times))
	smp.P99 = percentile(sorted, 0.99)
	smp.Max = sorted[len(sorted)-1]
	return smp
}

// percentile returns the nearest-rank percentile of sorted durations.
func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	rank := int(p*float64(len(sorted))+0.999999) - 1
	return sorted[min(max(rank, 0), len(sorted)-1)]
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
