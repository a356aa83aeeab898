package client

import (
	"context"
	"net/url"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-twitch/core"
	"golang.org/x/oauth2"
)

const (
	grantAuthorizationCode = "authorization_code"
	grantClientCredentials = "client_credentials"
	grantRefreshToken      = "refresh_token"

	tokenPath     = "token"
	authorizePath = "authorize"
)

// Authenticator talks to the OAuth endpoint and keeps the credential store
// current. It is the Refresher used by API clients.
type Authenticator struct {
	store         core.CredentialStore
	client        *Client
	defaultScopes []string
}

func NewAuthenticator(store core.CredentialStore, opts ...Option) (*Authenticator, error) {
	builder := defaultClientBuilder()
	for _, opt := range opts {
		if opt != nil {
			opt(&builder)
		}
	}
	if builder.authBaseURL != "" && builder.baseURL == "" {
		builder.baseURL = builder.authBaseURL
	}
	return newAuthenticator(store, builder)
}

func newAuthenticator(store core.CredentialStore, builder clientBuilder) (*Authenticator, error) {
	builder.defaultTarget = ""
	builder.refresher = nil
	authClient, err := newClient(core.AuthFamily(), store, builder)
	if err != nil {
		return nil, err
	}
	return &Authenticator{
		store:         store,
		client:        authClient,
		defaultScopes: append([]string(nil), builder.defaultScopes...),
	}, nil
}

func (a *Authenticator) Client() *Client {
	return a.client
}

func (a *Authenticator) LastError() *core.LastError {
	return a.client.LastError()
}

func (a *Authenticator) Endpoint() oauth2.Endpoint {
	base := a.client.family.BaseURL
	return oauth2.Endpoint{
		AuthURL:   base + "/" + authorizePath,
		TokenURL:  base + "/" + tokenPath,
		AuthStyle: oauth2.AuthStyleInParams,
	}
}

func (a *Authenticator) AuthorizeURL(redirectURI string, scopes []string) string {
	return a.AuthorizeURLWithState(redirectURI, scopes, "")
}

func (a *Authenticator) AuthorizeURLWithState(redirectURI string, scopes []string, state string) string {
	cfg := oauth2.Config{
		ClientID:    a.store.ClientID(),
		Endpoint:    a.Endpoint(),
		RedirectURL: redirectURI,
		Scopes:      scopes,
	}
	return cfg.AuthCodeURL(state)
}

func (a *Authenticator) ExchangeAuthorizationCode(ctx context.Context, code string, redirectURI string) (core.TokenPair, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return core.TokenPair{}, core.NewBadInputError("client: authorization code is required",
			goerrors.FieldError{Field: "code", Message: "required"})
	}
	return a.exchange(ctx, core.Params{
		"client_id":     a.store.ClientID(),
		"client_secret": a.store.ClientSecret(),
		"code":          code,
		"grant_type":    grantAuthorizationCode,
		"redirect_uri":  redirectURI,
	}, core.TwitchErrorAuthenticationFailed)
}

// ExchangeCallback reads the authorization code from the query string the
// authorize page redirected to.
func (a *Authenticator) ExchangeCallback(ctx context.Context, query url.Values, redirectURI string) (core.TokenPair, error) {
	if errCode := strings.TrimSpace(query.Get("error")); errCode != "" {
		message := strings.TrimSpace(query.Get("error_description"))
		if message == "" {
			message = errCode
		}
		return core.TokenPair{}, core.NewAuthenticationError(0, message)
	}
	return a.ExchangeAuthorizationCode(ctx, query.Get("code"), redirectURI)
}

// ExchangeClientCredentials fetches an app access token. Twitch does not
// issue refresh tokens for this grant, so RefreshToken is usually empty.
func (a *Authenticator) ExchangeClientCredentials(ctx context.Context, scopes []string) (core.TokenPair, error) {
	return a.exchange(ctx, core.Params{
		"client_id":     a.store.ClientID(),
		"client_secret": a.store.ClientSecret(),
		"grant_type":    grantClientCredentials,
		"scope":         strings.Join(scopes, " "),
	}, core.TwitchErrorAuthenticationFailed)
}

// ClientCredentials exchanges client credentials and stores the token as the
// default access token when the store supports one.
func (a *Authenticator) ClientCredentials(ctx context.Context, scopes []string) (core.TokenPair, error) {
	pair, err := a.ExchangeClientCredentials(ctx, scopes)
	if err != nil {
		return core.TokenPair{}, err
	}
	if defaults, ok := a.store.(core.DefaultTokenStore); ok {
		if err := defaults.SetDefaultAccessToken(ctx, pair.AccessToken); err != nil {
			return core.TokenPair{}, core.NewInternalError(err, "client: store default access token")
		}
	}
	return pair, nil
}

// Refresh renews the tokens of target, writes both back to the store and
// returns the new refresh token.
func (a *Authenticator) Refresh(ctx context.Context, target string) (string, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return "", core.NewBadInputError("client: refresh target is required",
			goerrors.FieldError{Field: "target", Message: "required"})
	}
	refreshToken, err := a.store.RefreshToken(ctx, target)
	if err != nil {
		return "", core.NewInternalError(err, "client: read refresh token")
	}
	if strings.TrimSpace(refreshToken) == "" {
		return "", core.NewRefreshError("twitch: no refresh token stored for " + target)
	}

	pair, err := a.exchange(ctx, core.Params{
		"client_id":     a.store.ClientID(),
		"client_secret": a.store.ClientSecret(),
		"grant_type":    grantRefreshToken,
		"refresh_token": refreshToken,
	}, core.TwitchErrorRefreshFailed)
	if err != nil {
		return "", err
	}
	if err := a.writeBack(ctx, target, pair); err != nil {
		return "", err
	}
	return pair.RefreshToken, nil
}

func (a *Authenticator) writeBack(ctx context.Context, target string, pair core.TokenPair) error {
	if pairs, ok := a.store.(core.TokenPairStore); ok {
		if err := pairs.SetTokens(ctx, target, pair); err != nil {
			return core.NewInternalError(err, "client: store token pair")
		}
		return nil
	}
	if err := a.store.SetAccessToken(ctx, target, pair.AccessToken); err != nil {
		return core.NewInternalError(err, "client: store access token")
	}
	if err := a.store.SetRefreshToken(ctx, target, pair.RefreshToken); err != nil {
		return core.NewInternalError(err, "client: store refresh token")
	}
	return nil
}

func (a *Authenticator) RefreshDefault(ctx context.Context) error {
	if _, ok := a.store.(core.DefaultTokenStore); !ok {
		return core.NewRefreshError("twitch: credential store has no default token")
	}
	_, err := a.ClientCredentials(ctx, a.defaultScopes)
	return err
}

func (a *Authenticator) exchange(ctx context.Context, params core.Params, failureCode string) (core.TokenPair, error) {
	reply, err := a.client.Execute(ctx, core.Request{
		Method:          core.MethodPost,
		URL:             tokenPath,
		Params:          params,
		SkipAuthRefresh: true,
	})
	if err != nil {
		return core.TokenPair{}, wrapExchangeError(err, failureCode)
	}
	var pair core.TokenPair
	if err := reply.Decode(&pair); err != nil {
		return core.TokenPair{}, newExchangeError("twitch: decode token reply: "+err.Error(), failureCode)
	}
	if strings.TrimSpace(pair.AccessToken) == "" {
		return core.TokenPair{}, newExchangeError("twitch: token reply has no access_token", failureCode)
	}
	return pair, nil
}

func wrapExchangeError(err error, failureCode string) error {
	if failureCode != core.TwitchErrorRefreshFailed {
		return err
	}
	return asRefreshFailure(err)
}

func newExchangeError(message string, failureCode string) error {
	if failureCode == core.TwitchErrorRefreshFailed {
		return core.NewRefreshError(message)
	}
	return core.NewAuthenticationError(0, message)
}

var _ core.Refresher = (*Authenticator)(nil)
