package decompose

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"logsviewer/internal/activity/models"
)

// Func is the signature shared by Decompose and Cache.Decompose.
type Func func(raw string) models.Action

// Cache memoizes Decompose by raw action text. Activity exports repeat the
// same action strings heavily, so a bounded cache avoids re-splitting them on
// every reload.
type Cache struct {
	entries *lru.Cache[string, models.Action]
}

// NewCache returns a Cache holding at most size entries.
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		return nil, fmt.Errorf("decompose cache size must be positive, got %d", size)
	}
	entries, err := lru.New[string, models.Action](size)
	if err != nil {
		return nil, fmt.Errorf("create decompose cache: %w", err)
	}
	return &Cache{entries: entries}, nil
}

// Decompose returns the cached decomposition of raw, computing it on a miss.
func (c *Cache) Decompose(raw string) models.Action {
	if action, ok := c.entries.Get(raw); ok {
		return action
	}
	action := Decompose(raw)
	c.entries.Add(raw, action)
	return action
}

// Len reports how many distinct raw strings are cached.
func (c *Cache) Len() int {
	return c.entries.Len()
}
