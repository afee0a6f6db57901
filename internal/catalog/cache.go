package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Lists holds the reference values offered by the food filter form.
type Lists struct {
	Categories  []string  `json:"categories"`
	Areas       []string  `json:"areas"`
	Ingredients []string  `json:"ingredients"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Source provides the reference lists.
type Source interface {
	Categories(ctx context.Context) ([]string, error)
	Areas(ctx context.Context) ([]string, error)
	Ingredients(ctx context.Context) ([]string, error)
}

// Cache keeps fetched reference lists in memory for the life of the process.
type Cache struct {
	src Source
	ttl time.Duration
	now func() time.Time

	mu    sync.Mutex
	lists *Lists
}

// NewCache creates a reference list cache. A ttl of zero never expires.
func NewCache(src Source, ttl time.Duration) *Cache {
	return &Cache{src: src, ttl: ttl, now: time.Now}
}

// Load returns cached lists when fresh, otherwise fetches all three lists
// concurrently and replaces the cache.
func (c *Cache) Load(ctx context.Context) (Lists, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.lists != nil && Fresh(c.lists.FetchedAt, c.ttl, c.now()) {
		return *c.lists, nil
	}

	var lists Lists
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := c.src.Categories(gctx)
		if err != nil {
			return fmt.Errorf("fetch categories: %w", err)
		}
		lists.Categories = v
		return nil
	})
	g.Go(func() error {
		v, err := c.src.Areas(gctx)
		if err != nil {
			return fmt.Errorf("fetch cuisines: %w", err)
		}
		lists.Areas = v
		return nil
	})
	g.Go(func() error {
		v, err := c.src.Ingredients(gctx)
		if err != nil {
			return fmt.Errorf("fetch ingredients: %w", err)
		}
		lists.Ingredients = v
		return nil
	})
	if err := g.Wait(); err != nil {
		return Lists{}, err
	}

	lists.FetchedAt = c.now()
	c.lists = &lists
	return lists, nil
}

// Fresh reports whether data fetched at fetchedAt is still usable.
func Fresh(fetchedAt time.Time, ttl time.Duration, now time.Time) bool {
	if fetchedAt.IsZero() {
		return false
	}
	if ttl <= 0 {
		return true
	}
	return now.Sub(fetchedAt) < ttl
}
