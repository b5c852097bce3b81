// Package cache provides the explicit cache collaborator injected into the
// analytics engine, replacing ambient global storage with an interface
// carrying a defined staleness policy.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache is the collaborator interface: get, set, invalidate. Staleness is
// an implementation property (TTL), never the caller's concern.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Invalidate(key string)
}

// TTL is a go-cache backed Cache with per-entry expiry.
type TTL[T any] struct {
	c *gocache.Cache
}

// NewTTL creates a TTL cache. Expired entries are swept every cleanup
// interval; reads of expired entries miss immediately regardless.
func NewTTL[T any](ttl, cleanup time.Duration) *TTL[T] {
	return &TTL[T]{c: gocache.New(ttl, cleanup)}
}

func (t *TTL[T]) Get(key string) (T, bool) {
	var zero T
	v, ok := t.c.Get(key)
	if !ok {
		return zero, false
	}
	value, ok := v.(T)
	if !ok {
		return zero, false
	}
	return value, true
}

func (t *TTL[T]) Set(key string, value T) {
	t.c.SetDefault(key, value)
}

func (t *TTL[T]) Invalidate(key string) {
	t.c.Delete(key)
}
