// Package ratings caches recipe rating aggregates so list views can render
// without one store round-trip per row.
package ratings

import (
	"context"
	"sync"

	"tastebook_backend/models"
)

// Source fetches rating aggregates for a batch of recipe IDs. Every
// requested ID must be present in the result; recipes nobody has rated get
// a zero-vote entry.
type Source func(ctx context.Context, ids []string) (map[string]models.Rating, error)

// Cache holds rating aggregates keyed by recipe ID. A missing entry means
// the rating has not been loaded yet, which is distinct from a loaded
// zero-vote entry.
type Cache struct {
	mu      sync.Mutex
	entries map[string]models.Rating
	version uint64
	source  Source
}

func NewCache(source Source) *Cache {
	return &Cache{
		entries: make(map[string]models.Rating),
		source:  source,
	}
}

// Get returns the cached rating for id. ok is false while the entry has not
// been loaded.
func (c *Cache) Get(id string) (models.Rating, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rating, ok := c.entries[id]
	return rating, ok
}

// Version is a change counter. It increments once per applied batch, so
// pollers can skip re-rendering when nothing new arrived.
func (c *Cache) Version() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}

// LoadMany fetches ratings for the IDs not yet cached and applies them as
// one batch. Already-cached IDs are not refetched.
func (c *Cache) LoadMany(ctx context.Context, ids []string) error {
	c.mu.Lock()
	missing := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := c.entries[id]; !ok {
			missing = append(missing, id)
		}
	}
	c.mu.Unlock()

	if len(missing) == 0 {
		return nil
	}

	loaded, err := c.source(ctx, missing)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for id, rating := range loaded {
		c.entries[id] = rating
	}
	c.version++
	return nil
}
