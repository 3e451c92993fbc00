// Package discussions keeps the last fetched list of message threads in
// memory.
package discussions

import (
	"slices"
	"sync"

	"github.com/dmitrijs2005/tcgexchange/internal/client/models"
)

type Cache struct {
	mu    sync.RWMutex
	items []models.Discussion
}

func NewCache() *Cache {
	return &Cache{}
}

// Store replaces the cached list.
func (c *Cache) Store(items []models.Discussion) {
	c.mu.Lock()
	c.items = slices.Clone(items)
	c.mu.Unlock()
}

// All returns a copy of the cached list.
func (c *Cache) All() []models.Discussion {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.items)
}

func (c *Cache) HasUnread() bool {
	return c.UnreadCount() > 0
}

func (c *Cache) UnreadCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for _, d := range c.items {
		if !d.Read {
			n++
		}
	}
	return n
}

func (c *Cache) Clear() {
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()
}
