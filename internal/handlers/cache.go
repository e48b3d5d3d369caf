package handlers

import (
	"sync"
	"time"
)

// Cache is the minimal read/write interface for the gateway response cache.
// Implementations must be safe for concurrent use.
type Cache interface {
	Get(key string) (any, bool)
	Set(key string, v any)
}

type cacheItem struct {
	val       any
	expiresAt time.Time
}

// TTLCache is an in-memory Cache with per-entry expiry. List endpoints use
// it to absorb rapid re-searches; detail and rating reads always go upstream.
type TTLCache struct {
	mu    sync.RWMutex
	items map[string]cacheItem
	ttl   time.Duration
}

func NewTTLCache(ttlSec int) *TTLCache {
	if ttlSec <= 0 {
		ttlSec = 60
	}
	return &TTLCache{
		items: make(map[string]cacheItem),
		ttl:   time.Duration(ttlSec) * time.Second,
	}
}

func (c *TTLCache) Get(key string) (any, bool) {
	c.mu.RLock()
	it, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(it.expiresAt) {
		c.mu.Lock()
		if cur, ok2 := c.items[key]; ok2 && time.Now().After(cur.expiresAt) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return it.val, true
}

func (c *TTLCache) Set(key string, v any) {
	c.mu.Lock()
	c.items[key] = cacheItem{val: v, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}
