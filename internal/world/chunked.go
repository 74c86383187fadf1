package world

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/dgraph-io/ristretto"
)

const (
	// DefaultChunkSize is the edge of a chunk in tiles.
	DefaultChunkSize = 32

	// DefaultCacheChunks bounds how many chunks stay resident.
	DefaultCacheChunks = 1024

	// recentChunks is how many freshly generated chunks are kept outside the
	// cache, so a chunk the cache declines to admit is still built only once
	// while it is being read.
	recentChunks = 64

	// AutoChunkThreshold is the cell count above which LayoutAuto picks a chunked world.
	AutoChunkThreshold = 2048 * 2048
)

// Layout selects how a world stores its tiles.
type Layout string

const (
	LayoutDense   Layout = "dense"
	LayoutChunked Layout = "chunked"
	LayoutAuto    Layout = "auto"
)

// ParseLayout parses a layout name; the empty string means LayoutAuto.
func ParseLayout(s string) (Layout, error) {
	switch l := Layout(strings.ToLower(strings.TrimSpace(s))); l {
	case "":
		return LayoutAuto, nil
	case LayoutDense, LayoutChunked, LayoutAuto:
		return l, nil
	default:
		return "", fmt.Errorf("world: unknown layout %q", s)
	}
}

// ChunkOptions tunes a chunked world.
type ChunkOptions struct {
	ChunkSize   int // Tiles per chunk edge
	CacheChunks int // Max resident chunks
}

func (o ChunkOptions) withDefaults() ChunkOptions {
	if o.ChunkSize <= 0 {
		o.ChunkSize = DefaultChunkSize
	}
	if o.CacheChunks <= 0 {
		o.CacheChunks = DefaultCacheChunks
	}
	return o
}

// Open builds a world using the given layout. A chunked result must be
// closed by the caller (it implements io.Closer).
func Open(cfg Config, layout Layout, opts ChunkOptions) (Source, error) {
	cfg, err := cfg.normalize()
	if err != nil {
		return nil, err
	}
	if layout == LayoutAuto {
		layout = LayoutDense
		if int64(cfg.Width)*int64(cfg.Height) > AutoChunkThreshold {
			layout = LayoutChunked
		}
	}

	switch layout {
	case LayoutDense:
		return NewWithConfig(cfg)
	case LayoutChunked:
		return NewChunked(cfg, opts)
	default:
		return nil, fmt.Errorf("world: unknown layout %q", layout)
	}
}

// chunk is one generated block of tiles, row-major.
type chunk struct {
	tiles []TileKind
}

// Chunked is a world whose tiles are generated lazily in fixed-size chunks
// and held in a bounded cache. Evicted chunks are regenerated on demand from
// the same generator, so a Chunked world reads exactly like the dense World
// built from the same Config. Safe for concurrent use.
//
// A generator returning an invalid kind is a programming error: the dense
// World reports it from its constructor, Chunked panics when the chunk is built.
type Chunked struct {
	width     int
	height    int
	tileSize  int
	chunkSize int
	gen       Generator
	cache     *ristretto.Cache
	recent    *recentSet

	generated atomic.Int64
}

// NewChunked creates a lazily generated world. No tiles are generated until read.
func NewChunked(cfg Config, opts ChunkOptions) (*Chunked, error) {
	cfg, err := cfg.normalize()
	if err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: int64(opts.CacheChunks) * 10,
		MaxCost:     int64(opts.CacheChunks),
		BufferItems: 64,

		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("world: cannot create chunk cache: %w", err)
	}

	return &Chunked{
		width:     cfg.Width,
		height:    cfg.Height,
		tileSize:  cfg.TileSize,
		chunkSize: opts.ChunkSize,
		gen:       cfg.Generator,
		cache:     cache,
		recent:    newRecent(recentChunks),
	}, nil
}

// Width returns the grid width in tiles.
func (c *Chunked) Width() int {
	return c.width
}

// Height returns the grid height in tiles.
func (c *Chunked) Height() int {
	return c.height
}

// TileSize returns the tile edge in world pixels.
func (c *Chunked) TileSize() int {
	return c.tileSize
}

// ChunkSize returns the chunk edge in tiles.
func (c *Chunked) ChunkSize() int {
	return c.chunkSize
}

// Generated returns how many chunks have been generated so far, including regenerations.
func (c *Chunked) Generated() int64 {
	return c.generated.Load()
}

// TileAt returns the kind at (col, row), or false outside the grid.
func (c *Chunked) TileAt(col, row int) (TileKind, bool) {
	if col < 0 || col >= c.width || row < 0 || row >= c.height {
		return 0, false
	}
	cx, cy := col/c.chunkSize, row/c.chunkSize
	ch := c.chunk(cx, cy)
	lx, ly := col-cx*c.chunkSize, row-cy*c.chunkSize
	return ch.tiles[ly*c.chunkSize+lx], true
}

// Draw returns the draw commands for the visible tiles, like World.Draw.
func (c *Chunked) Draw(camX, camY, viewW, viewH int) []DrawCommand {
	return AppendDraw(nil, c, camX, camY, viewW, viewH)
}

// Close releases the chunk cache.
func (c *Chunked) Close() error {
	c.cache.Close()
	return nil
}

func chunkKey(cx, cy int) uint64 {
	return uint64(uint32(cx))<<32 | uint64(uint32(cy))
}

func (c *Chunked) chunk(cx, cy int) *chunk {
	key := chunkKey(cx, cy)
	if ch, ok := c.recent.get(key); ok {
		return ch
	}
	if v, ok := c.cache.Get(key); ok {
		return v.(*chunk)
	}

	ch := c.generate(cx, cy)
	c.recent.put(key, ch)
	// Sets are buffered; wait so the next Get sees the chunk.
	if c.cache.Set(key, ch, 1) {
		c.cache.Wait()
	}
	return ch
}

// generate fills a chunk; cells past the world edge are left as zero and never read.
func (c *Chunked) generate(cx, cy int) *chunk {
	n := c.chunkSize
	ch := &chunk{tiles: make([]TileKind, n*n)}
	x0, y0 := cx*n, cy*n
	for ly := 0; ly < n && y0+ly < c.height; ly++ {
		for lx := 0; lx < n && x0+lx < c.width; lx++ {
			k := c.gen.Kind(x0+lx, y0+ly)
			if !k.Valid() {
				panic(fmt.Sprintf("world: generator returned invalid kind %d at (%d, %d)", k, x0+lx, y0+ly))
			}
			ch.tiles[ly*n+lx] = k
		}
	}
	c.generated.Add(1)
	return ch
}

// recentSet is a small FIFO of chunks keyed like the cache.
type recentSet struct {
	mu    sync.Mutex
	keys  []uint64
	next  int
	byKey map[uint64]*chunk
}

func newRecent(size int) *recentSet {
	return &recentSet{
		keys:  make([]uint64, 0, size),
		byKey: make(map[uint64]*chunk, size),
	}
}

func (r *recentSet) get(key uint64) (*chunk, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ch, ok := r.byKey[key]
	return ch, ok
}

func (r *recentSet) put(key uint64, ch *chunk) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byKey[key]; ok {
		return
	}
	if len(r.keys) < cap(r.keys) {
		r.keys = append(r.keys, key)
	} else {
		delete(r.byKey, r.keys[r.next])
		r.keys[r.next] = key
		r.next = (r.next + 1) % len(r.keys)
	}
	r.byKey[key] = ch
}
