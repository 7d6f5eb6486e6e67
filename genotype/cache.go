package genotype

import (
	"strings"
	"sync"
	"sync/atomic"
)

type entry struct {
	dosage float64
	ok     bool
}

// Cache memoizes Decode by raw genotype text. A run usually sees only a
// handful of distinct genotype strings, so the cache stays small while every
// individual of every variant goes through it. A Cache is safe for use by
// concurrent goroutines; share one across workers.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry

	hits   uint64
	misses uint64
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]entry)}
}

// Decode is the cached form of the package-level Decode.
func (c *Cache) Decode(raw string) (float64, bool) {
	c.mu.RLock()
	e, found := c.entries[raw]
	c.mu.RUnlock()

	if found {
		atomic.AddUint64(&c.hits, 1)
		return e.dosage, e.ok
	}

	atomic.AddUint64(&c.misses, 1)
	dosage, ok := Decode(raw)

	c.mu.Lock()
	// raw usually aliases a whole variant line; keep a private copy of the key
	c.entries[strings.Clone(raw)] = entry{dosage: dosage, ok: ok}
	c.mu.Unlock()

	return dosage, ok
}

// Dosage is Decode with undecodable text aliased to 0.
func (c *Cache) Dosage(raw string) float64 {
	d, _ := c.Decode(raw)
	return d
}

// Stats reports how many lookups were served from the cache and how many had
// to be decoded.
func (c *Cache) Stats() (hits, misses uint64) {
	return atomic.LoadUint64(&c.hits), atomic.LoadUint64(&c.misses)
}

// Len is the number of distinct genotype strings seen.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
