package core

import (
	"context"
	"net/http"
	"time"

	glog "github.com/goliatone/go-logger/glog"
)

const (
	MethodGet    = http.MethodGet
	MethodPost   = http.MethodPost
	MethodPut    = http.MethodPut
	MethodPatch  = http.MethodPatch
	MethodDelete = http.MethodDelete
)

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger

// CredentialStore holds the client identity and the per-target token pairs.
// A target without a record yields empty tokens and a nil error.
type CredentialStore interface {
	ClientID() string
	ClientSecret() string
	AccessToken(ctx context.Context, target string) (string, error)
	RefreshToken(ctx context.Context, target string) (string, error)
	SetAccessToken(ctx context.Context, target string, token string) error
	SetRefreshToken(ctx context.Context, target string, token string) error
}

// TokenPairStore is implemented by stores that can write a refreshed pair in
// one step. Refresh prefers it over two separate setter calls.
type TokenPairStore interface {
	SetTokens(ctx context.Context, target string, pair TokenPair) error
}

// DefaultTokenStore is implemented by stores that keep an app-level token
// used when a request carries no target.
type DefaultTokenStore interface {
	DefaultAccessToken(ctx context.Context) (string, error)
	SetDefaultAccessToken(ctx context.Context, token string) error
}

type Refresher interface {
	Refresh(ctx context.Context, target string) (string, error)
	RefreshDefault(ctx context.Context) error
}

type TransportRequest struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte
	Timeout time.Duration
}

type TransportResponse struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
	Metadata   map[string]any
}

// Transport dispatches one HTTP exchange. An error means no status was
// obtained; any HTTP status, including 4xx/5xx, is a response.
type Transport interface {
	Do(ctx context.Context, req TransportRequest) (TransportResponse, error)
}

type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, value int64, tags map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string)
}

type LoginCache interface {
	Get(ctx context.Context, login string) (string, bool)
	Set(ctx context.Context, login string, id string)
	Clear(ctx context.Context)
}
