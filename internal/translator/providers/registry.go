// Package providers maintains the registry of translation backends. Each
// backend implements models.Provider and registers itself at startup.
package providers

import (
	"fmt"
	"sort"
	"sync"

	"github.com/modlingo/modlingo/internal/models"
)

var (
	mu       sync.RWMutex
	registry = make(map[string]models.Provider)
)

// Register adds a new provider to the registry. It's called at startup.
func Register(p models.Provider) {
	mu.Lock()
	defer mu.Unlock()
	info := p.Info()
	if _, exists := registry[info.ID]; exists {
		// Panic is appropriate here as it's a developer error during setup.
		panic(fmt.Sprintf("provider with ID '%s' is already registered", info.ID))
	}
	registry[info.ID] = p
}

// Get returns a provider by its ID.
func Get(id string) (models.Provider, bool) {
	mu.RLock()
	defer mu.RUnlock()
	p, ok := registry[id]
	return p, ok
}

// GetAll returns information for all registered providers, sorted by ID.
func GetAll() []models.ProviderInfo {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]models.ProviderInfo, 0, len(registry))
	for _, p := range registry {
		out = append(out, p.Info())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// UnregisterAll clears the registry. Used by tests.
func UnregisterAll() {
	mu.Lock()
	defer mu.Unlock()
	registry = make(map[string]models.Provider)
}
