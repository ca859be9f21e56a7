package cache

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// LRUCache is a size-bounded in-process cache.
type LRUCache[V any] struct {
	lru *lru.Cache[string, V]
}

func NewLRUCache[V any](size int) (*LRUCache[V], error) {
	c, err := lru.New[string, V](size)
	if err != nil {
		return nil, fmt.Errorf("create lru cache: %w", err)
	}
	return &LRUCache[V]{lru: c}, nil
}

func (c *LRUCache[V]) Get(_ context.Context, key string) (V, bool) {
	return c.lru.Get(key)
}

func (c *LRUCache[V]) Set(_ context.Context, key string, value V) {
	c.lru.Add(key, value)
}

func (c *LRUCache[V]) Len() int {
	return c.lru.Len()
}
