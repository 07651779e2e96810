package filter

import (
	"slices"
	"strings"
	"sync"
)

// registry holds registered filters by id.
var (
	registryMu sync.RWMutex
	registry   = make(map[string]Filter)
)

// Register registers a filter under its Info().ID.
// This is typically called from init() functions in filter packages.
// If a filter with the same id is already registered, it will be
// replaced. Nil filters and empty ids are ignored.
func Register(f Filter) {
	if f == nil {
		return
	}
	id := f.Info().ID
	if id == "" {
		return
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[id] = f
}

// Unregister removes a filter from the registry.
// This is useful for testing.
func Unregister(id string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(registry, id)
}

// Lookup returns the filter registered under id.
func Lookup(id string) (Filter, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[id]
	return f, ok
}

// IsRegistered checks if a filter with the given id is registered.
func IsRegistered(id string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := registry[id]
	return ok
}

// Infos returns the schema of every registered filter, sorted by
// category and name so menus come out stable.
func Infos() []Info {
	registryMu.RLock()
	defer registryMu.RUnlock()

	infos := make([]Info, 0, len(registry))
	for _, f := range registry {
		infos = append(infos, f.Info())
	}
	slices.SortFunc(infos, func(a, b Info) int {
		if c := strings.Compare(a.Category, b.Category); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return infos
}
