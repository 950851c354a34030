package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache stores encoded values under string keys with an expiry.
// Get reports false for missing or expired keys.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Memory is an in-process Cache. Expired entries are swept every
// cleanupInterval; a non-positive interval disables the sweep.
type Memory struct {
	items *gocache.Cache
}

func NewMemory(cleanupInterval time.Duration) *Memory {
	return &Memory{items: gocache.New(gocache.NoExpiration, cleanupInterval)}
}

func (c *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := c.items.Get(key)
	if !ok {
		return nil, false, nil
	}
	return v.([]byte), true, nil
}

// Set stores a copy of value until ttl elapses; a ttl of zero never
// expires.
func (c *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	c.items.Set(key, append([]byte(nil), value...), ttl)
	return nil
}

func (c *Memory) Delete(_ context.Context, key string) error {
	c.items.Delete(key)
	return nil
}

// Len counts stored entries, including expired ones not yet swept.
func (c *Memory) Len() int {
	return c.items.ItemCount()
}

func (c *Memory) Close() error {
	c.items.Flush()
	return nil
}
