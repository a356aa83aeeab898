package cache

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	repositorycache "github.com/goliatone/go-repository-cache/cache"

	"github.com/goliatone/go-twitch/core"
)

const loginCacheKeyPrefix = "go-twitch::user_login::v1"

var errLoginMiss = fmt.Errorf("cache: login not cached")

// LoginCache stores login to id mappings in a repository cache service. Keys
// written through Set are tracked so Clear can evict them.
type LoginCache struct {
	cache repositorycache.CacheService

	mu   sync.Mutex
	keys map[string]struct{}
}

func NewLoginCache(cacheService repositorycache.CacheService) (*LoginCache, error) {
	if cacheService == nil {
		return nil, fmt.Errorf("cache: login cache service is required")
	}
	return &LoginCache{cache: cacheService, keys: map[string]struct{}{}}, nil
}

// LoginCacheKey returns go-twitch::user_login::v1::<login> with the
// normalized login path escaped.
func LoginCacheKey(login string) string {
	return loginCacheKeyPrefix + "::" + url.PathEscape(core.NormalizeLogin(login))
}

func (c *LoginCache) Get(ctx context.Context, login string) (string, bool) {
	if strings.TrimSpace(login) == "" {
		return "", false
	}
	id, err := repositorycache.GetOrFetch(ctx, c.cache, LoginCacheKey(login), func(context.Context) (string, error) {
		return "", errLoginMiss
	})
	if err != nil || id == "" {
		return "", false
	}
	return id, true
}

func (c *LoginCache) Set(ctx context.Context, login string, id string) {
	if core.NormalizeLogin(login) == "" || id == "" {
		return
	}
	key := LoginCacheKey(login)
	_ = c.cache.Delete(ctx, key)
	if _, err := repositorycache.GetOrFetch(ctx, c.cache, key, func(context.Context) (string, error) {
		return id, nil
	}); err != nil {
		return
	}
	c.mu.Lock()
	c.keys[key] = struct{}{}
	c.mu.Unlock()
}

func (c *LoginCache) Clear(ctx context.Context) {
	c.mu.Lock()
	keys := make([]string, 0, len(c.keys))
	for key := range c.keys {
		keys = append(keys, key)
	}
	c.keys = map[string]struct{}{}
	c.mu.Unlock()

	for _, key := range keys {
		_ = c.cache.Delete(ctx, key)
	}
}

var _ core.LoginCache = (*LoginCache)(nil)
