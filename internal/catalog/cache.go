package catalog

import (
	"context"
	"sync"

	"shopfront/internal/domain"
)

// LoadFunc fetches the product listing
type LoadFunc func(ctx context.Context) ([]domain.Product, error)

// Cache holds the product listing for the session. It is populated on first
// use and kept until Invalidate. Failed loads are not cached.
type Cache struct {
	mu       sync.Mutex
	products []domain.Product
	loaded   bool
	loads    int
}

// NewCache creates an empty cache
func NewCache() *Cache {
	return &Cache{}
}

// Products returns the cached listing, calling load on a miss. Concurrent
// callers during a miss wait for the single load in flight.
func (c *Cache) Products(ctx context.Context, load LoadFunc) ([]domain.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded {
		products, err := load(ctx)
		if err != nil {
			return nil, err
		}
		c.products = products
		c.loaded = true
		c.loads++
	}

	// Return a copy to prevent external modification
	result := make([]domain.Product, len(c.products))
	copy(result, c.products)
	return result, nil
}

// Cached reports whether the listing is populated
func (c *Cache) Cached() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// Loads reports how many successful loads the cache has performed
func (c *Cache) Loads() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loads
}

// Invalidate drops the cached listing
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = nil
	c.loaded = false
}
