// Package registry provides a global registry of segment kinds.
// Kinds register themselves in init() functions, allowing catalogs loaded
// from configuration to name behaviour without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/rolling-stone/internal/config"
	"github.com/vovakirdan/rolling-stone/internal/track"
)

// Factory turns a catalog entry into the Attach hook of a prefab. The
// returned function runs once for every pooled instance.
type Factory func(env *Env, spec config.SegmentSpec) (func(seg *track.Segment), error)

// KindInfo contains metadata about a registered kind.
type KindInfo struct {
	ID    string
	Title string
}

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a kind factory to the registry.
// Panics if a kind with the same ID is already registered.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: kind %q already registered", id))
	}

	factories[id] = f
	titles[id] = title
}

// List returns information about all registered kinds, sorted by ID.
func List() []KindInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]KindInfo, 0, len(factories))
	for id := range factories {
		result = append(result, KindInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Lookup returns the factory of a kind.
// Returns an error if the kind is not registered.
func Lookup(id string) (Factory, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown kind %q", id)
	}

	return f, nil
}

// Exists checks if a kind with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
