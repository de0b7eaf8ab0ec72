package mock

import (
	"github.com/patrickmn/go-cache"
)

// Registry maps normalized paths to entries. It is safe for concurrent use.
type Registry struct {
	entries *cache.Cache
}

func NewRegistry() *Registry {
	// No expiration and no janitor: entries live until removed.
	return &Registry{entries: cache.New(cache.NoExpiration, 0)}
}

// Register stores entry under the normalized path, replacing any previous one.
func (r *Registry) Register(path string, entry Entry) {
	r.entries.Set(Normalize(path), entry, cache.NoExpiration)
}

func (r *Registry) Remove(path string) {
	r.entries.Delete(Normalize(path))
}

func (r *Registry) Reset() {
	r.entries.Flush()
}

func (r *Registry) Lookup(path string) (Entry, bool) {
	v, ok := r.entries.Get(Normalize(path))
	if !ok {
		return Entry{}, false
	}
	return v.(Entry), true
}

func (r *Registry) Len() int {
	return r.entries.ItemCount()
}

// Paths returns the registered keys in no particular order.
func (r *Registry) Paths() []string {
	items := r.entries.Items()
	paths := make([]string, 0, len(items))
	for k := range items {
		paths = append(paths, k)
	}
	return paths
}
