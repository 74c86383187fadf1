package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tileview/internal/config"
	"github.com/vovakirdan/tileview/internal/world"
)

func TestBuildWorld_Defaults(t *testing.T) {
	src, err := BuildWorld(config.Default().World)
	require.NoError(t, err)
	defer CloseWorld(src)

	assert.Equal(t, 40, src.Width())
	assert.Equal(t, 30, src.Height())
	assert.Equal(t, 64, src.TileSize())
	assert.Equal(t, world.LayoutDense, LayoutOf(src))

	// The default generator is the wave field
	for _, p := range [][2]int{{0, 0}, {5, 7}, {39, 29}} {
		got, ok := src.TileAt(p[0], p[1])
		require.True(t, ok)
		assert.Equal(t, world.Generate(p[0], p[1]), got)
	}
}

func TestBuildWorld_Chunked(t *testing.T) {
	cfg := config.Default().World
	cfg.Width, cfg.Height = 100000, 100000

	src, err := BuildWorld(cfg)
	require.NoError(t, err)
	defer CloseWorld(src)

	assert.Equal(t, world.LayoutChunked, LayoutOf(src), "auto should chunk a huge world")
	kind, ok := src.TileAt(99999, 99999)
	require.True(t, ok)
	assert.Equal(t, world.Generate(99999, 99999), kind)
}

func TestBuildWorld_Perlin(t *testing.T) {
	cfg := config.Default().World
	cfg.Generator = "perlin"
	cfg.Seed = 7

	src, err := BuildWorld(cfg)
	require.NoError(t, err)
	assert.NoError(t, CloseWorld(src))
}

func TestBuildWorld_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.WorldConfig)
	}{
		{"unknown generator", func(c *config.WorldConfig) { c.Generator = "nope" }},
		{"unknown layout", func(c *config.WorldConfig) { c.Layout = "sparse" }},
		{"zero width", func(c *config.WorldConfig) { c.Width = 0 }},
		{"negative amplitude", func(c *config.WorldConfig) { c.Amplitude = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default().World
			tt.mutate(&cfg)
			_, err := BuildWorld(cfg)
			assert.Error(t, err)
		})
	}
}
