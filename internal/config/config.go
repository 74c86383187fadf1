// Package config provides YAML-based configuration loading for tileview.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tileview/internal/core"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the full tileview configuration.
type Config struct {
	World WorldConfig `yaml:"world"`
	View  ViewConfig  `yaml:"view"`
	Log   LogConfig   `yaml:"log"`
	Serve ServeConfig `yaml:"serve"`
	Bench BenchConfig `yaml:"bench"`
}

// WorldConfig describes the world to build.
type WorldConfig struct {
	Width      int     `yaml:"width"`     // Tiles
	Height     int     `yaml:"height"`    // Tiles
	TileSize   int     `yaml:"tile_size"` // Pixels per tile edge
	Generator  string  `yaml:"generator"` // Registry ID: "wave", "perlin"
	Seed       int64   `yaml:"seed"`
	FrequencyX float64 `yaml:"frequency_x"` // 0 = generator default
	FrequencyY float64 `yaml:"frequency_y"` // 0 = generator default
	Amplitude  float64 `yaml:"amplitude"`   // 0 = generator default
	Layout     string  `yaml:"layout"`      // "dense", "chunked" or "auto"
	ChunkSize  int     `yaml:"chunk_size"`
	CacheSize  int     `yaml:"cache_chunks"`
}

// ViewConfig controls the viewer loop.
type ViewConfig struct {
	FPS         int     `yaml:"fps"`
	CameraSpeed float64 `yaml:"camera_speed"` // Pixels per second
	CellWidth   int     `yaml:"cell_width"`   // Pixels per terminal cell
	CellHeight  int     `yaml:"cell_height"`  // Pixels per terminal cell, even
	ShowGrid    bool    `yaml:"show_grid"`
	ShowDebug   bool    `yaml:"show_debug"`
	HoldMS      int     `yaml:"hold_ms"` // How long a key press counts as held
}

// LogConfig controls logging.
type LogConfig struct {
	Level      string `yaml:"level"` // debug, info, warn, error
	File       string `yaml:"file"`  // Used by the TUI, which owns the terminal
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// ServeConfig controls the SSH server.
type ServeConfig struct {
	Address        string `yaml:"address"`
	HostKey        string `yaml:"host_key"`
	IdleTimeoutMin int    `yaml:"idle_timeout_min"`
	MetricsAddress string `yaml:"metrics_address"` // Empty disables /metrics
	MaxSessions    int    `yaml:"max_sessions"`
}

// BenchConfig controls `tileview bench`.
type BenchConfig struct {
	Frames     int     `yaml:"frames"`     // Frames per camera position
	BudgetMS   float64 `yaml:"budget_ms"`  // Per-frame budget; 0 = 1000/fps
	ViewWidth  int     `yaml:"view_width"` // Viewport in pixels
	ViewHeight int     `yaml:"view_height"`
	DB         string  `yaml:"db"` // History database
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		World: WorldConfig{
			Width:     40,
			Height:    30,
			TileSize:  64,
			Generator: "wave",
			Layout:    "auto",
			ChunkSize: 32,
			CacheSize: 1024,
		},
		View: ViewConfig{
			FPS:         60,
			CameraSpeed: 500,
			CellWidth:   8,
			CellHeight:  16,
			ShowGrid:    true,
			ShowDebug:   true,
			HoldMS:      150,
		},
		Log: LogConfig{
			Level:      "info",
			File:       "~/.tileview/tileview.log",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		Serve: ServeConfig{
			Address:        ":23234",
			HostKey:        ".ssh/tileview_ed25519",
			IdleTimeoutMin: 30,
			MetricsAddress: ":9090",
			MaxSessions:    64,
		},
		Bench: BenchConfig{
			Frames:     300,
			ViewWidth:  1024,
			ViewHeight: 768,
			DB:         "~/.tileview/bench.db",
		},
	}
}

// Validate reports the first invalid field, wrapped in ErrInvalid.
func (c Config) Validate() error {
	checks := []struct {
		ok  bool
		msg string
	}{
		{c.World.Width > 0 && c.World.Height > 0, fmt.Sprintf("world size %dx%d must be positive", c.World.Width, c.World.Height)},
		{c.World.TileSize > 0, fmt.Sprintf("world.tile_size %d must be positive", c.World.TileSize)},
		{c.World.Generator != "", "world.generator is empty"},
		{c.World.ChunkSize >= 0 && c.World.CacheSize >= 0, "world chunk settings must not be negative"},
		{c.View.FPS > 0 && c.View.FPS <= 240, fmt.Sprintf("view.fps %d must be in 1..240", c.View.FPS)},
		{c.View.CameraSpeed >= 0, "view.camera_speed must not be negative"},
		{c.View.CellWidth > 0 && c.View.CellHeight > 1, fmt.Sprintf("view cell size %dx%d too small", c.View.CellWidth, c.View.CellHeight)},
		{c.View.CellHeight%2 == 0, fmt.Sprintf("view.cell_height %d must be even", c.View.CellHeight)},
		{c.View.HoldMS >= 0, "view.hold_ms must not be negative"},
		{validLevel(c.Log.Level), fmt.Sprintf("log.level %q is not debug, info, warn, error or fatal", c.Log.Level)},
		{c.Bench.Frames >= 0 && c.Bench.BudgetMS >= 0, "bench settings must not be negative"},
	}

	for _, ch := range checks {
		if !ch.ok {
			return fmt.Errorf("%w: %s", ErrInvalid, ch.msg)
		}
	}
	return nil
}

// validLevel accepts the charmbracelet/log level names; empty means info.
func validLevel(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	_, err := log.ParseLevel(s)
	return err == nil
}

// Runtime converts the view section into a core.RuntimeConfig for a
// screen of the given size in cells.
func (c Config) Runtime(screenW, screenH int) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:     screenW,
		ScreenH:     screenH,
		TickRate:    c.View.FPS,
		CameraSpeed: c.View.CameraSpeed,
		Scale:       core.Scale{CellW: c.View.CellWidth, CellH: c.View.CellHeight},
		ShowGrid:    c.View.ShowGrid,
		ShowDebug:   c.View.ShowDebug,
	}
}

// Hold returns the key hold window.
func (v ViewConfig) Hold() time.Duration {
	return time.Duration(v.HoldMS) * time.Millisecond
}

// Budget returns the per-frame time budget for bench runs.
func (c Config) Budget() time.Duration {
	if c.Bench.BudgetMS > 0 {
		return time.Duration(c.Bench.BudgetMS * float64(time.Millisecond))
	}
	return time.Second / time.Duration(max(1, c.View.FPS))
}

// IdleTimeout returns the SSH idle timeout.
func (s ServeConfig) IdleTimeout() time.Duration {
	return time.Duration(s.IdleTimeoutMin) * time.Minute
}
