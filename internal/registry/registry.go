// Package registry provides a global registry for tile generator factories.
// Generators register themselves in init() functions, allowing the CLI and the
// SSH server to build worlds by name without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tileview/internal/world"
)

// Params carries the tunables a generator may read. Each generator picks the
// fields it understands and ignores the rest.
type Params struct {
	Seed       int64
	FrequencyX float64
	FrequencyY float64
	Amplitude  float64
}

// GeneratorInfo contains metadata about a registered generator.
type GeneratorInfo struct {
	ID    string
	Title string
}

// Factory creates a generator from params.
type Factory func(p Params) (world.Generator, error)

type entry struct {
	title   string
	factory Factory
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a generator factory to the registry.
// Typically called from a generator package's init() function.
// Panics if a generator with the same ID is already registered.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: generator %q already registered", id))
	}

	entries[id] = entry{title: title, factory: f}
}

// List returns information about all registered generators, sorted by ID.
func List() []GeneratorInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GeneratorInfo, 0, len(entries))
	for id, e := range entries {
		result = append(result, GeneratorInfo{
			ID:    id,
			Title: e.title,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create builds a generator by its ID.
// Returns an error if the ID is not registered or the factory rejects params.
func Create(id string, p Params) (world.Generator, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown generator %q", id)
	}

	g, err := e.factory(p)
	if err != nil {
		return nil, fmt.Errorf("registry: cannot create generator %q: %w", id, err)
	}
	return g, nil
}

// Exists checks if a generator with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
