// Package catalog caches read-only movie catalog lookups.
package catalog

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/moviewatch/backend/internal/models"
)

// ErrSourceUnavailable is returned when the cache has no backing store.
var ErrSourceUnavailable = errors.New("catalog: movie source unavailable")

// Source is the movie store being cached.
type Source interface {
	FindByID(ctx context.Context, id string) (models.Movie, error)
	List(ctx context.Context) ([]models.Movie, error)
}

type cacheEntry struct {
	movie   models.Movie
	expires time.Time
}

// CachingStore wraps another Source with a TTL-based in-memory cache. Only
// successful lookups are cached, so a movie seeded after a miss becomes visible
// on the next request.
type CachingStore struct {
	base Source
	ttl  time.Duration
	now  func() time.Time

	mu          sync.RWMutex
	items       map[string]cacheEntry
	list        []models.Movie
	listExpires time.Time
}

// NewCachingStore returns a Source that caches lookups for the provided TTL.
func NewCachingStore(base Source, ttl time.Duration) *CachingStore {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &CachingStore{
		base:  base,
		ttl:   ttl,
		now:   time.Now,
		items: make(map[string]cacheEntry),
	}
}

// FindByID returns the cached movie when available, otherwise it delegates to the
// underlying store and stores the result.
func (c *CachingStore) FindByID(ctx context.Context, id string) (models.Movie, error) {
	if c == nil || c.base == nil {
		return models.Movie{}, ErrSourceUnavailable
	}

	now := c.now()

	c.mu.RLock()
	entry, ok := c.items[id]
	c.mu.RUnlock()
	if ok && now.Before(entry.expires) {
		return entry.movie, nil
	}

	movie, err := c.base.FindByID(ctx, id)
	if err != nil {
		return models.Movie{}, err
	}

	c.mu.Lock()
	c.items[id] = cacheEntry{movie: movie, expires: now.Add(c.ttl)}
	c.mu.Unlock()

	return movie, nil
}

// List returns the cached catalog listing, refreshing it once the TTL lapses.
func (c *CachingStore) List(ctx context.Context) ([]models.Movie, error) {
	if c == nil || c.base == nil {
		return nil, ErrSourceUnavailable
	}

	now := c.now()

	c.mu.RLock()
	list, expires := c.list, c.listExpires
	c.mu.RUnlock()
	if list != nil && now.Before(expires) {
		return append([]models.Movie(nil), list...), nil
	}

	movies, err := c.base.List(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.list = append(make([]models.Movie, 0, len(movies)), movies...)
	c.listExpires = now.Add(c.ttl)
	for _, movie := range movies {
		c.items[movie.ID] = cacheEntry{movie: movie, expires: now.Add(c.ttl)}
	}
	c.mu.Unlock()

	return movies, nil
}
