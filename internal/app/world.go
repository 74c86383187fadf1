// Package app wires configuration into the pieces every command needs.
package app

import (
	"fmt"
	"io"

	"github.com/vovakirdan/tileview/internal/config"
	"github.com/vovakirdan/tileview/internal/registry"
	"github.com/vovakirdan/tileview/internal/world"

	// Register built-in generators
	_ "github.com/vovakirdan/tileview/internal/gen/perlin"
	_ "github.com/vovakirdan/tileview/internal/gen/wave"
)

// BuildWorld creates the world described by cfg. The caller must release it
// with CloseWorld.
func BuildWorld(cfg config.WorldConfig) (world.Source, error) {
	gen, err := registry.Create(cfg.Generator, registry.Params{
		Seed:       cfg.Seed,
		FrequencyX: cfg.FrequencyX,
		FrequencyY: cfg.FrequencyY,
		Amplitude:  cfg.Amplitude,
	})
	if err != nil {
		return nil, err
	}

	layout, err := world.ParseLayout(cfg.Layout)
	if err != nil {
		return nil, err
	}

	src, err := world.Open(world.Config{
		Width:     cfg.Width,
		Height:    cfg.Height,
		TileSize:  cfg.TileSize,
		Generator: gen,
	}, layout, world.ChunkOptions{
		ChunkSize:   cfg.ChunkSize,
		CacheChunks: cfg.CacheSize,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot build %dx%d %s world: %w", cfg.Width, cfg.Height, cfg.Generator, err)
	}
	return src, nil
}

// CloseWorld releases a world built by BuildWorld. Dense worlds hold nothing.
func CloseWorld(src world.Source) error {
	if c, ok := src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// LayoutOf reports the storage layout src resolved to.
func LayoutOf(src world.Source) world.Layout {
	if _, ok := src.(*world.Chunked); ok {
		return world.LayoutChunked
	}
	return world.LayoutDense
}
