package cache

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	repositorycache "github.com/goliatone/go-repository-cache/cache"

	"github.com/goliatone/go-twitch/core"
)

const credentialCacheKeyPrefix = "go-twitch::credential::v1"

const defaultCredentialKey = "@default"

// CredentialStore reads tokens through a cache and invalidates on every
// write, so a refresh write-back is visible to the next request.
type CredentialStore struct {
	base  core.CredentialStore
	cache repositorycache.CacheService
}

func NewCredentialStore(base core.CredentialStore, cacheService repositorycache.CacheService) (*CredentialStore, error) {
	if base == nil {
		return nil, fmt.Errorf("cache: base credential store is required")
	}
	if cacheService == nil {
		return nil, fmt.Errorf("cache: credential cache service is required")
	}
	return &CredentialStore{base: base, cache: cacheService}, nil
}

// CredentialCacheKey returns go-twitch::credential::v1::<kind>::<target>.
func CredentialCacheKey(kind string, target string) string {
	return strings.Join([]string{
		credentialCacheKeyPrefix,
		url.PathEscape(kind),
		url.PathEscape(strings.TrimSpace(target)),
	}, "::")
}

func (s *CredentialStore) ClientID() string {
	return s.base.ClientID()
}

func (s *CredentialStore) ClientSecret() string {
	return s.base.ClientSecret()
}

func (s *CredentialStore) AccessToken(ctx context.Context, target string) (string, error) {
	return repositorycache.GetOrFetch(ctx, s.cache, CredentialCacheKey("access", target), func(ctx context.Context) (string, error) {
		return s.base.AccessToken(ctx, target)
	})
}

func (s *CredentialStore) RefreshToken(ctx context.Context, target string) (string, error) {
	return repositorycache.GetOrFetch(ctx, s.cache, CredentialCacheKey("refresh", target), func(ctx context.Context) (string, error) {
		return s.base.RefreshToken(ctx, target)
	})
}

func (s *CredentialStore) SetAccessToken(ctx context.Context, target string, token string) error {
	if err := s.base.SetAccessToken(ctx, target, token); err != nil {
		return err
	}
	return s.cache.Delete(ctx, CredentialCacheKey("access", target))
}

func (s *CredentialStore) SetRefreshToken(ctx context.Context, target string, token string) error {
	if err := s.base.SetRefreshToken(ctx, target, token); err != nil {
		return err
	}
	return s.cache.Delete(ctx, CredentialCacheKey("refresh", target))
}

func (s *CredentialStore) SetTokens(ctx context.Context, target string, pair core.TokenPair) error {
	if pairs, ok := s.base.(core.TokenPairStore); ok {
		if err := pairs.SetTokens(ctx, target, pair); err != nil {
			return err
		}
	} else {
		if err := s.base.SetAccessToken(ctx, target, pair.AccessToken); err != nil {
			return err
		}
		if err := s.base.SetRefreshToken(ctx, target, pair.RefreshToken); err != nil {
			return err
		}
	}
	if err := s.cache.Delete(ctx, CredentialCacheKey("access", target)); err != nil {
		return err
	}
	return s.cache.Delete(ctx, CredentialCacheKey("refresh", target))
}

// DefaultAccessToken returns "" when the base store has no default token.
func (s *CredentialStore) DefaultAccessToken(ctx context.Context) (string, error) {
	defaults, ok := s.base.(core.DefaultTokenStore)
	if !ok {
		return "", nil
	}
	return repositorycache.GetOrFetch(ctx, s.cache, CredentialCacheKey("access", defaultCredentialKey), func(ctx context.Context) (string, error) {
		return defaults.DefaultAccessToken(ctx)
	})
}

func (s *CredentialStore) SetDefaultAccessToken(ctx context.Context, token string) error {
	defaults, ok := s.base.(core.DefaultTokenStore)
	if !ok {
		return core.NewBadInputError("cache: base credential store has no default token")
	}
	if err := defaults.SetDefaultAccessToken(ctx, token); err != nil {
		return err
	}
	return s.cache.Delete(ctx, CredentialCacheKey("access", defaultCredentialKey))
}

var (
	_ core.CredentialStore   = (*CredentialStore)(nil)
	_ core.DefaultTokenStore = (*CredentialStore)(nil)
	_ core.TokenPairStore    = (*CredentialStore)(nil)
)
