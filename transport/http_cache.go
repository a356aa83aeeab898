package transport

import (
	"net/http"
	"time"

	"github.com/gregjones/httpcache"
)

// cacheHitHeader is set by httpcache on responses served from the cache.
const cacheHitHeader = httpcache.XFromCache

// NewCachingHTTPClient returns a client that revalidates GET responses with
// ETag/Last-Modified and serves fresh entries from memory.
func NewCachingHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{
		Transport: httpcache.NewMemoryCacheTransport(),
		Timeout:   timeout,
	}
}

func NewHTTPClient(timeout time.Duration, cached bool) *http.Client {
	if cached {
		return NewCachingHTTPClient(timeout)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout}
}
