package core

import (
	"context"
	"strings"
	"sync"
)

type MemoryLoginCache struct {
	mu  sync.RWMutex
	ids map[string]string
}

func NewMemoryLoginCache() *MemoryLoginCache {
	return &MemoryLoginCache{ids: make(map[string]string)}
}

func (c *MemoryLoginCache) Get(_ context.Context, login string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	id, ok := c.ids[NormalizeLogin(login)]
	return id, ok
}

func (c *MemoryLoginCache) Set(_ context.Context, login string, id string) {
	key := NormalizeLogin(login)
	if key == "" {
		return
	}
	c.mu.Lock()
	c.ids[key] = id
	c.mu.Unlock()
}

func (c *MemoryLoginCache) Clear(context.Context) {
	c.mu.Lock()
	c.ids = make(map[string]string)
	c.mu.Unlock()
}

func NormalizeLogin(login string) string {
	return strings.ToLower(strings.TrimSpace(login))
}
