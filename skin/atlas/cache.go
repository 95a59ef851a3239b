package atlas

import "image"

// Cache owns the extracted sprite buffers of one skin generation. It is
// populated eagerly at build time and never evicts: a skin's sprite set
// is small and bounded, the cache exists to avoid re-copying
// sub-rectangles every frame, not to bound memory. Invalidation is
// wholesale, by dropping the atlas with its package on skin replacement.
type Cache struct {
	gen     uint64
	entries map[cacheKey]*image.RGBA
}

type cacheKey struct {
	gen   uint64
	name  string
	state string
}

func newCache(gen uint64) *Cache {
	return &Cache{gen: gen, entries: make(map[cacheKey]*image.RGBA)}
}

func (c *Cache) put(name, state string, img *image.RGBA) {
	c.entries[cacheKey{gen: c.gen, name: name, state: state}] = img
}

func (c *Cache) get(name, state string) *image.RGBA {
	return c.entries[cacheKey{gen: c.gen, name: name, state: state}]
}

// Len reports the number of cached sprite buffers.
func (c *Cache) Len() int { return len(c.entries) }
