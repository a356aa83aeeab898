package kraken

import (
	"context"

	"github.com/goliatone/go-twitch/client"
	"github.com/goliatone/go-twitch/core"
)

const (
	ServiceUsers    = "users"
	ServiceChannels = "channels"
	ServiceStreams  = "streams"
	ServiceSearch   = "search"
)

type Client struct {
	api        *client.Client
	registry   *core.ServiceRegistry
	loginCache core.LoginCache
}

func New(store core.CredentialStore, opts ...client.Option) (*Client, error) {
	if store == nil {
		return nil, core.NewBadInputError("kraken: credential store is required")
	}
	api, err := client.New(core.KrakenFamily(store.ClientID()), store, opts...)
	if err != nil {
		return nil, err
	}
	return NewWithClient(api, nil), nil
}

func NewWithClient(api *client.Client, cache core.LoginCache) *Client {
	if cache == nil {
		cache = core.NewMemoryLoginCache()
	}
	c := &Client{
		api:        api,
		registry:   core.NewServiceRegistry(),
		loginCache: cache,
	}
	_ = c.registry.Register(ServiceUsers, func() any { return &Users{kraken: c} })
	_ = c.registry.Register(ServiceChannels, func() any { return &Channels{kraken: c} })
	_ = c.registry.Register(ServiceStreams, func() any { return &Streams{kraken: c} })
	_ = c.registry.Register(ServiceSearch, func() any { return &Search{kraken: c} })
	return c
}

func (c *Client) API() *client.Client {
	return c.api
}

func (c *Client) LastError() *core.LastError {
	return c.api.LastError()
}

func (c *Client) Service(name string) any {
	service, _ := c.registry.Resolve(name)
	return service
}

func (c *Client) Services() []string {
	return c.registry.Names()
}

func (c *Client) Users() *Users {
	return c.Service(ServiceUsers).(*Users)
}

func (c *Client) Channels() *Channels {
	return c.Service(ServiceChannels).(*Channels)
}

func (c *Client) Streams() *Streams {
	return c.Service(ServiceStreams).(*Streams)
}

func (c *Client) Search() *Search {
	return c.Service(ServiceSearch).(*Search)
}

func (c *Client) query(ctx context.Context, req core.Request, out any) error {
	reply, err := c.api.Execute(ctx, req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := reply.Decode(out); err != nil {
		return core.NewInternalError(err, "kraken: decode reply")
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, params core.Params, out any) error {
	return c.query(ctx, core.Request{Method: core.MethodGet, URL: path, Params: params}, out)
}
