package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tileview/internal/core"
)

func TestNew_InvalidDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"zero width", 0, 10},
		{"zero height", 10, 0},
		{"negative width", -1, 10},
		{"both negative", -5, -5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, err := New(tc.width, tc.height)
			assert.Nil(t, w)
			assert.ErrorIs(t, err, ErrInvalidDimensions)
		})
	}
}

func TestNewWithConfig_InvalidTileSize(t *testing.T) {
	_, err := NewWithConfig(Config{Width: 4, Height: 4, TileSize: -8})
	assert.ErrorIs(t, err, ErrInvalidTileSize)
}

func TestNewWithConfig_Defaults(t *testing.T) {
	w, err := NewWithConfig(Config{Width: 40, Height: 30})
	require.NoError(t, err)

	assert.Equal(t, 40, w.Width())
	assert.Equal(t, 30, w.Height())
	assert.Equal(t, DefaultTileSize, w.TileSize())

	pw, ph := w.PixelSize()
	assert.Equal(t, 2560, pw)
	assert.Equal(t, 1920, ph)
}

func TestNewWithConfig_GeneratorCalledOncePerCell(t *testing.T) {
	calls := make(map[[2]int]int)
	gen := GeneratorFunc(func(x, y int) TileKind {
		calls[[2]int{x, y}]++
		return Sand
	})

	_, err := NewWithConfig(Config{Width: 7, Height: 5, Generator: gen})
	require.NoError(t, err)

	assert.Len(t, calls, 35)
	for pos, n := range calls {
		assert.Equal(t, 1, n, "cell %v generated %d times", pos, n)
		assert.True(t, pos[0] >= 0 && pos[0] < 7 && pos[1] >= 0 && pos[1] < 5, "cell %v outside grid", pos)
	}
}

func TestNewWithConfig_RejectsInvalidKind(t *testing.T) {
	gen := GeneratorFunc(func(x, y int) TileKind { return TileKind(9) })
	_, err := NewWithConfig(Config{Width: 2, Height: 2, Generator: gen})
	assert.Error(t, err)
}

func TestWorld_TileAt(t *testing.T) {
	w, err := New(40, 30)
	require.NoError(t, err)

	for row := 0; row < 30; row++ {
		for col := 0; col < 40; col++ {
			k, ok := w.TileAt(col, row)
			require.True(t, ok)
			assert.Equal(t, Generate(col, row), k, "tile (%d, %d)", col, row)
			assert.True(t, k.Valid())
		}
	}

	outside := [][2]int{{-1, 0}, {0, -1}, {40, 0}, {0, 30}, {1000, 1000}}
	for _, p := range outside {
		_, ok := w.TileAt(p[0], p[1])
		assert.False(t, ok, "TileAt(%d, %d) should be out of range", p[0], p[1])
	}
}

func TestColorOf(t *testing.T) {
	assert.Equal(t, core.RGB{R: 65, G: 105, B: 225}, ColorOf(Water))
	assert.Equal(t, core.RGB{R: 238, G: 214, B: 175}, ColorOf(Sand))
	assert.Equal(t, core.RGB{R: 34, G: 139, B: 34}, ColorOf(Grass))
	assert.Equal(t, core.RGB{R: 139, G: 69, B: 19}, ColorOf(Dirt))

	// Every kind has a distinct, non-black color
	seen := make(map[core.RGB]bool)
	for _, k := range Kinds {
		c := ColorOf(k)
		assert.NotEqual(t, core.Black, c, "kind %v", k)
		assert.False(t, seen[c], "duplicate color for %v", k)
		seen[c] = true
	}

	assert.Equal(t, core.Black, ColorOf(TileKind(4)))
	assert.Equal(t, core.Black, ColorOf(TileKind(255)))
}

func TestTileKindString(t *testing.T) {
	assert.Equal(t, "Water", Water.String())
	assert.Equal(t, "Dirt", Dirt.String())
	assert.Equal(t, "Invalid", TileKind(12).String())
	assert.Equal(t, byte('?'), TileKind(12).Char())
}
