package cachemanager

import (
	"context"
	"sync/atomic"
	"time"
)

// Loader produces the value for input on a cache miss.
type Loader[I, V any] func(ctx context.Context, input I) (V, error)

// ReadThroughCache resolves misses with a Loader and stores the result.
// Failed loads are not cached.
type ReadThroughCache[K ~string, V any, I any] struct {
	cache  CacheManager[K, V]
	load   Loader[I, V]
	ttl    time.Duration
	bypass bool

	hits   atomic.Int64
	misses atomic.Int64
}

// Option configures a ReadThroughCache.
type Option func(*options)

type options struct {
	ttl    time.Duration
	bypass bool
}

// WithTTL sets how long loaded values live. The default is DefaultTTL.
func WithTTL(d time.Duration) Option {
	return func(o *options) { o.ttl = d }
}

// WithBypass sends every Get straight to the loader.
func WithBypass(bypass bool) Option {
	return func(o *options) { o.bypass = bypass }
}

// NewReadThroughCache wraps cache with load.
func NewReadThroughCache[K ~string, V any, I any](cache CacheManager[K, V], load Loader[I, V], opts ...Option) *ReadThroughCache[K, V, I] {
	o := options{ttl: DefaultTTL}
	for _, opt := range opts {
		opt(&o)
	}
	return &ReadThroughCache[K, V, I]{cache: cache, load: load, ttl: o.ttl, bypass: o.bypass}
}

// Get returns the cached value for key, loading it from input on a miss.
func (r *ReadThroughCache[K, V, I]) Get(ctx context.Context, key K, input I) (V, error) {
	if !r.bypass {
		if value, ok := r.cache.Get(ctx, key); ok {
			r.hits.Add(1)
			return value, nil
		}
	}
	r.misses.Add(1)

	value, err := r.load(ctx, input)
	if err != nil || r.bypass {
		return value, err
	}
	r.cache.Set(ctx, key, value, r.ttl)
	return value, nil
}

// Invalidate drops keys so the next Get reloads them.
func (r *ReadThroughCache[K, V, I]) Invalidate(ctx context.Context, keys ...K) {
	r.cache.Delete(ctx, keys...)
}

// Reset drops every cached value.
func (r *ReadThroughCache[K, V, I]) Reset(ctx context.Context) {
	r.cache.Flush(ctx)
}

// Stats reports hits and misses since creation.
func (r *ReadThroughCache[K, V, I]) Stats() (hits, misses int64) {
	return r.hits.Load(), r.misses.Load()
}
