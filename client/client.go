package client

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-twitch/core"
)

// Client runs authenticated queries against one API family.
type Client struct {
	family          core.Family
	store           core.CredentialStore
	transport       core.Transport
	refresher       core.Refresher
	logger          core.Logger
	loggerProvider  core.LoggerProvider
	metricsRecorder core.MetricsRecorder
	timeout         time.Duration

	mu            sync.RWMutex
	defaultTarget string
	lastError     *core.LastError
}

// New builds a pipeline for family over store. The store is required.
func New(family core.Family, store core.CredentialStore, opts ...Option) (*Client, error) {
	builder := defaultClientBuilder()
	for _, opt := range opts {
		if opt != nil {
			opt(&builder)
		}
	}
	return newClient(family, store, builder)
}

func newClient(family core.Family, store core.CredentialStore, builder clientBuilder) (*Client, error) {
	if store == nil {
		return nil, core.NewBadInputError("client: credential store is required")
	}
	if strings.TrimSpace(family.Name) == "" {
		return nil, core.NewBadInputError("client: family name is required")
	}
	family = family.WithBaseURL(builder.baseURL)
	if family.Formatter == nil {
		family.Formatter = core.JoinFormatter
	}

	loggerProvider, logger := builder.resolveLogger("twitch." + family.Name)
	metricsRecorder := builder.metricsRecorder
	if metricsRecorder == nil {
		metricsRecorder = core.NopMetricsRecorder{}
	}

	c := &Client{
		family:          family,
		store:           store,
		transport:       builder.resolveTransport(),
		logger:          logger,
		loggerProvider:  loggerProvider,
		metricsRecorder: metricsRecorder,
		timeout:         builder.timeout,
		defaultTarget:   builder.defaultTarget,
	}

	switch {
	case builder.disableRefresh, family.Name == core.FamilyAuth:
	case builder.refresher != nil:
		c.refresher = builder.refresher
	default:
		authBuilder := builder
		authBuilder.baseURL = builder.authBaseURL
		authBuilder.transport = c.transport
		authenticator, err := newAuthenticator(store, authBuilder)
		if err != nil {
			return nil, err
		}
		c.refresher = authenticator
	}
	return c, nil
}

func (c *Client) Family() core.Family {
	return c.family
}

func (c *Client) Store() core.CredentialStore {
	return c.store
}

func (c *Client) Logger() core.Logger {
	return c.logger
}

func (c *Client) DefaultTarget() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.defaultTarget
}

// SetDefaultTarget selects the target whose token is sent when a request
// names none. The target must have an access token; an empty target clears it.
func (c *Client) SetDefaultTarget(ctx context.Context, target string) error {
	target = strings.TrimSpace(target)
	if target != "" {
		token, err := c.store.AccessToken(ctx, target)
		if err != nil {
			return core.NewInternalError(err, "client: read access token")
		}
		if token == "" {
			return core.NewBadInputError("client: target has no access token: " + target)
		}
	}
	c.mu.Lock()
	c.defaultTarget = target
	c.mu.Unlock()
	return nil
}

func (c *Client) LastError() *core.LastError {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.lastError == nil {
		return nil
	}
	copied := *c.lastError
	return &copied
}

func (c *Client) ResetLastError() {
	c.mu.Lock()
	c.lastError = nil
	c.mu.Unlock()
}

// Execute sends req with the target's current token. An authentication
// failure triggers one refresh and one retry unless the request opts out.
func (c *Client) Execute(ctx context.Context, req core.Request) (core.Reply, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	startedAt := time.Now()
	reply, err := c.execute(ctx, req)
	c.observeQuery(ctx, startedAt, req, reply, err)
	return reply, err
}

func (c *Client) execute(ctx context.Context, req core.Request) (core.Reply, error) {
	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if method == "" {
		method = core.MethodGet
	}
	if !supportedMethod(method) {
		return core.Reply{}, core.NewBadInputError("client: unsupported method " + method)
	}

	target := strings.TrimSpace(req.Target)
	if target == "" {
		target = c.DefaultTarget()
	}
	token, err := c.resolveToken(ctx, target)
	if err != nil {
		return core.Reply{}, core.NewInternalError(err, "client: resolve access token")
	}

	callURL, body, err := c.buildCall(method, req)
	if err != nil {
		return core.Reply{}, err
	}

	headers := make(map[string]string, len(c.family.BaseHeaders)+2)
	for key, value := range c.family.BaseHeaders {
		headers[key] = value
	}
	if header, ok := c.family.AuthorizationHeader(token); ok {
		headers["Authorization"] = header
	}
	if body != nil {
		headers["Content-Type"] = "application/json"
	}

	c.traceRequest(ctx, method, callURL, req, target, headers)
	res, err := c.transport.Do(ctx, core.TransportRequest{
		Method:  method,
		URL:     callURL,
		Headers: headers,
		Body:    body,
		Timeout: c.timeout,
	})
	if err != nil {
		failure := asTransportFailure(err)
		c.recordLastError(core.ErrorKindTransport, 0, failure.Message)
		return core.Reply{}, failure
	}
	c.traceResponse(ctx, res)

	reply := core.Reply{Status: res.StatusCode, Body: json.RawMessage(res.Body)}
	status := res.StatusCode

	if c.family.IsAuthError(status) {
		message := replyErrorMessage(res.Body, status)
		if req.SkipAuthRefresh || c.refresher == nil {
			c.recordLastError(core.ErrorKindAuthentication, status, message)
			return reply, core.NewAuthenticationError(status, message)
		}
		if err := c.refresh(ctx, target); err != nil {
			failure := asRefreshFailure(err)
			c.recordLastError(core.ErrorKindRefresh, status, failure.Message)
			return reply, failure
		}
		retry := req
		retry.Target = target
		retry.SkipAuthRefresh = true
		return c.execute(ctx, retry)
	}

	if status >= 300 || status < 200 {
		message := replyErrorMessage(res.Body, status)
		c.recordLastError(core.ErrorKindAPI, status, message)
		return reply, core.NewAPIError(status, message)
	}
	return reply, nil
}

func (c *Client) resolveToken(ctx context.Context, target string) (string, error) {
	if target != "" {
		return c.store.AccessToken(ctx, target)
	}
	if defaults, ok := c.store.(core.DefaultTokenStore); ok {
		return defaults.DefaultAccessToken(ctx)
	}
	return "", nil
}

func (c *Client) refresh(ctx context.Context, target string) error {
	if target == "" {
		return c.refresher.RefreshDefault(ctx)
	}
	_, err := c.refresher.Refresh(ctx, target)
	return err
}

func (c *Client) buildCall(method string, req core.Request) (string, []byte, error) {
	callURL := c.family.ResolveURL(req.URL)
	var body []byte
	query := ""

	switch {
	case !sendsBody(method):
		query = c.family.Format(req.Params)
	case req.Body != nil:
		query = c.family.Format(req.Params)
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return "", nil, core.NewBadInputError("client: encode request body: " + err.Error())
		}
		body = encoded
	default:
		params := req.Params
		if params == nil {
			params = core.Params{}
		}
		encoded, err := json.Marshal(params)
		if err != nil {
			return "", nil, core.NewBadInputError("client: encode request params: " + err.Error())
		}
		body = encoded
	}

	if query != "" {
		switch {
		case !strings.Contains(callURL, "?"):
			callURL += "?" + query
		case strings.HasSuffix(callURL, "?"), strings.HasSuffix(callURL, "&"):
			callURL += query
		default:
			callURL += "&" + query
		}
	}
	return strings.TrimRight(callURL, "/"), body, nil
}

func (c *Client) recordLastError(kind core.ErrorKind, code int, message string) {
	c.mu.Lock()
	c.lastError = &core.LastError{Code: code, Message: message, Kind: kind}
	c.mu.Unlock()
}

func supportedMethod(method string) bool {
	switch method {
	case core.MethodGet, core.MethodPost, core.MethodPut, core.MethodPatch, core.MethodDelete:
		return true
	default:
		return false
	}
}

func sendsBody(method string) bool {
	switch method {
	case core.MethodPost, core.MethodPut, core.MethodPatch:
		return true
	default:
		return false
	}
}
