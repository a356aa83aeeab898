package client

import (
	"strings"
	"time"

	"github.com/goliatone/go-twitch/adapters/gologger"
	"github.com/goliatone/go-twitch/core"
	"github.com/goliatone/go-twitch/transport"
)

type clientBuilder struct {
	transport        core.Transport
	httpClient       transport.HTTPDoer
	logger           core.Logger
	loggerProvider   core.LoggerProvider
	metricsRecorder  core.MetricsRecorder
	refresher        core.Refresher
	disableRefresh   bool
	defaultTarget    string
	baseURL          string
	authBaseURL      string
	timeout          time.Duration
	maxResponseBytes int64
	httpCache        bool
	defaultScopes    []string
}

type Option func(*clientBuilder)

func WithLogger(logger core.Logger) Option {
	return func(b *clientBuilder) {
		b.logger = logger
	}
}

func WithLoggerProvider(provider core.LoggerProvider) Option {
	return func(b *clientBuilder) {
		b.loggerProvider = provider
	}
}

func WithMetricsRecorder(recorder core.MetricsRecorder) Option {
	return func(b *clientBuilder) {
		b.metricsRecorder = recorder
	}
}

func WithTransport(t core.Transport) Option {
	return func(b *clientBuilder) {
		b.transport = t
	}
}

func WithHTTPClient(doer transport.HTTPDoer) Option {
	return func(b *clientBuilder) {
		b.httpClient = doer
	}
}

func WithRefresher(refresher core.Refresher) Option {
	return func(b *clientBuilder) {
		b.refresher = refresher
	}
}

func WithoutRefresh() Option {
	return func(b *clientBuilder) {
		b.disableRefresh = true
	}
}

func WithDefaultTarget(target string) Option {
	return func(b *clientBuilder) {
		b.defaultTarget = strings.TrimSpace(target)
	}
}

func WithBaseURL(baseURL string) Option {
	return func(b *clientBuilder) {
		b.baseURL = strings.TrimSpace(baseURL)
	}
}

func WithAuthBaseURL(baseURL string) Option {
	return func(b *clientBuilder) {
		b.authBaseURL = strings.TrimSpace(baseURL)
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(b *clientBuilder) {
		b.timeout = timeout
	}
}

func WithMaxResponseBytes(limit int64) Option {
	return func(b *clientBuilder) {
		b.maxResponseBytes = limit
	}
}

func WithHTTPCache(enabled bool) Option {
	return func(b *clientBuilder) {
		b.httpCache = enabled
	}
}

func WithDefaultScopes(scopes ...string) Option {
	return func(b *clientBuilder) {
		b.defaultScopes = append([]string(nil), scopes...)
	}
}

// WithConfig applies a resolved configuration. Options listed after it
// still take precedence.
func WithConfig(cfg core.Config, family string) Option {
	return func(b *clientBuilder) {
		switch family {
		case core.FamilyHelix:
			b.baseURL = cfg.HelixBaseURL
		case core.FamilyKraken:
			b.baseURL = cfg.KrakenBaseURL
		case core.FamilyAuth:
			b.baseURL = cfg.AuthBaseURL
		}
		b.authBaseURL = cfg.AuthBaseURL
		b.defaultTarget = strings.TrimSpace(cfg.DefaultTarget)
		b.timeout = cfg.RequestTimeout
		b.maxResponseBytes = cfg.MaxResponseBytes
		b.httpCache = cfg.HTTPCache
	}
}

func defaultClientBuilder() clientBuilder {
	return clientBuilder{
		metricsRecorder:  core.NopMetricsRecorder{},
		timeout:          core.DefaultRequestTimeout,
		maxResponseBytes: core.DefaultMaxResponseBytes,
	}
}

func (b *clientBuilder) resolveLogger(name string) (core.LoggerProvider, core.Logger) {
	return gologger.ResolveQuiet(name, b.loggerProvider, b.logger)
}

func (b *clientBuilder) resolveTransport() core.Transport {
	if b.transport != nil {
		return b.transport
	}
	doer := b.httpClient
	if doer == nil {
		doer = transport.NewHTTPClient(b.timeout, b.httpCache)
	}
	return transport.NewHTTPTransport(doer, b.maxResponseBytes)
}
