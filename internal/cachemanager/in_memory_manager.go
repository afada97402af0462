package cachemanager

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/zjrosen/ezwrite/internal/log"
)

const (
	// NoExpiration keeps entries until they are deleted or flushed.
	NoExpiration = gocache.NoExpiration
	// DefaultTTL lets Set use the cache's own default expiration.
	DefaultTTL = gocache.DefaultExpiration

	DefaultCleanupInterval = 30 * time.Minute
)

// InMemory is the go-cache implementation of CacheManager. name labels the
// cache in log lines.
type InMemory[K ~string, V any] struct {
	name  string
	cache *gocache.Cache
}

// NewInMemory creates a cache whose entries live for ttl unless Set says
// otherwise. A ttl of NoExpiration disables the janitor.
func NewInMemory[K ~string, V any](name string, ttl time.Duration) *InMemory[K, V] {
	cleanup := DefaultCleanupInterval
	if ttl == NoExpiration {
		cleanup = 0
	}
	return &InMemory[K, V]{name: name, cache: gocache.New(ttl, cleanup)}
}

func (c *InMemory[K, V]) Get(_ context.Context, key K) (V, bool) {
	var zero V
	raw, found := c.cache.Get(string(key))
	if !found {
		return zero, false
	}
	v, ok := raw.(V)
	if !ok {
		log.Error(log.CatCache, "cached value has the wrong type", "cache", c.name, "key", key)
		c.cache.Delete(string(key))
		return zero, false
	}
	return v, true
}

func (c *InMemory[K, V]) Set(_ context.Context, key K, value V, ttl time.Duration) {
	c.cache.Set(string(key), value, ttl)
}

func (c *InMemory[K, V]) Delete(_ context.Context, keys ...K) {
	for _, key := range keys {
		c.cache.Delete(string(key))
	}
}

func (c *InMemory[K, V]) Flush(_ context.Context) {
	c.cache.Flush()
	log.Debug(log.CatCache, "cache flushed", "cache", c.name)
}

// Len counts entries, expired ones included until the janitor runs.
func (c *InMemory[K, V]) Len() int {
	return c.cache.ItemCount()
}
