package twitch

import (
	"context"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-twitch/client"
	"github.com/goliatone/go-twitch/core"
	"github.com/goliatone/go-twitch/providers/helix"
	"github.com/goliatone/go-twitch/providers/kraken"
)

type Config = core.Config

type CredentialStore = core.CredentialStore

type CredentialRecord = core.CredentialRecord

type ClientIdentity = core.ClientIdentity

type LoginCache = core.LoginCache

type LastError = core.LastError

type TokenPair = core.TokenPair

func DefaultConfig() Config {
	return core.DefaultConfig()
}

// Service bundles the three family clients built over one credential store.
type Service struct {
	cfg    Config
	store  core.CredentialStore
	auth   *client.Authenticator
	helix  *helix.Client
	kraken *kraken.Client
}

type Option func(*setupOptions)

type setupOptions struct {
	store          core.CredentialStore
	loginCache     core.LoginCache
	provider       core.ConfigProvider
	resolver       core.OptionsResolver
	logger         core.Logger
	loggerProvider core.LoggerProvider
	clientOpts     []client.Option
}

// WithCredentialStore replaces the in-memory store seeded from the config
// identity.
func WithCredentialStore(store core.CredentialStore) Option {
	return func(o *setupOptions) {
		o.store = store
	}
}

func WithLoginCache(cache core.LoginCache) Option {
	return func(o *setupOptions) {
		o.loginCache = cache
	}
}

func WithConfigProvider(provider core.ConfigProvider) Option {
	return func(o *setupOptions) {
		o.provider = provider
	}
}

func WithOptionsResolver(resolver core.OptionsResolver) Option {
	return func(o *setupOptions) {
		o.resolver = resolver
	}
}

func WithLogger(logger core.Logger) Option {
	return func(o *setupOptions) {
		o.logger = logger
	}
}

func WithLoggerProvider(provider core.LoggerProvider) Option {
	return func(o *setupOptions) {
		o.loggerProvider = provider
	}
}

// WithClientOptions appends pipeline options applied after the config, so
// they win over configured values.
func WithClientOptions(opts ...client.Option) Option {
	return func(o *setupOptions) {
		o.clientOpts = append(o.clientOpts, opts...)
	}
}

// Setup resolves cfg against the configured provider and builds the clients.
func Setup(ctx context.Context, cfg Config, opts ...Option) (*Service, error) {
	options := setupOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	resolved, err := core.ResolveConfig(ctx, cfg, options.provider, options.resolver)
	if err != nil {
		return nil, core.NewBadInputError("twitch: invalid configuration: " + err.Error())
	}
	return newService(resolved, options)
}

// NewService builds the clients from an already resolved config.
func NewService(cfg Config, opts ...Option) (*Service, error) {
	options := setupOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, core.NewBadInputError("twitch: invalid configuration: " + err.Error())
	}
	return newService(cfg, options)
}

func newService(cfg Config, options setupOptions) (*Service, error) {
	store := options.store
	if store == nil {
		if strings.TrimSpace(cfg.ClientID) == "" {
			return nil, core.NewBadInputError("twitch: client_id is required",
				goerrors.FieldError{Field: "client_id", Message: "required"})
		}
		store = core.NewMemoryCredentialStore(core.ClientIdentity{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
		})
	}

	auth, err := client.NewAuthenticator(store, clientOptions(cfg, core.FamilyAuth, options)...)
	if err != nil {
		return nil, err
	}
	helixAPI, err := client.New(core.HelixFamily(store.ClientID()), store, clientOptions(cfg, core.FamilyHelix, options)...)
	if err != nil {
		return nil, err
	}
	krakenAPI, err := client.New(core.KrakenFamily(store.ClientID()), store, clientOptions(cfg, core.FamilyKraken, options)...)
	if err != nil {
		return nil, err
	}

	return &Service{
		cfg:    cfg,
		store:  store,
		auth:   auth,
		helix:  helix.NewWithClient(helixAPI, options.loginCache),
		kraken: kraken.NewWithClient(krakenAPI, options.loginCache),
	}, nil
}

func clientOptions(cfg Config, family string, options setupOptions) []client.Option {
	out := []client.Option{client.WithConfig(cfg, family)}
	if options.loggerProvider != nil {
		out = append(out, client.WithLoggerProvider(options.loggerProvider))
	}
	if options.logger != nil {
		out = append(out, client.WithLogger(options.logger))
	}
	return append(out, options.clientOpts...)
}

func (s *Service) Config() Config {
	if s == nil {
		return Config{}
	}
	return s.cfg
}

func (s *Service) Store() core.CredentialStore {
	if s == nil {
		return nil
	}
	return s.store
}

func (s *Service) Auth() *client.Authenticator {
	if s == nil {
		return nil
	}
	return s.auth
}

func (s *Service) Helix() *helix.Client {
	if s == nil {
		return nil
	}
	return s.helix
}

func (s *Service) Kraken() *kraken.Client {
	if s == nil {
		return nil
	}
	return s.kraken
}

func (s *Service) LastError(family string) *core.LastError {
	if s == nil {
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(family)) {
	case core.FamilyHelix, "":
		return s.helix.LastError()
	case core.FamilyKraken:
		return s.kraken.LastError()
	case core.FamilyAuth:
		return s.auth.LastError()
	default:
		return nil
	}
}
