package helix

import (
	"context"

	"github.com/goliatone/go-twitch/client"
	"github.com/goliatone/go-twitch/core"
)

const (
	ServiceUsers    = "users"
	ServiceChannels = "channels"
	ServiceStreams  = "streams"
	ServiceTags     = "tags"
	ServiceVideos   = "videos"
	ServiceSearch   = "search"

	DefaultPageLength = 20
	MaxPageLength     = 100
)

type Client struct {
	api        *client.Client
	registry   *core.ServiceRegistry
	loginCache core.LoginCache
}

func New(store core.CredentialStore, opts ...client.Option) (*Client, error) {
	if store == nil {
		return nil, core.NewBadInputError("helix: credential store is required")
	}
	api, err := client.New(core.HelixFamily(store.ClientID()), store, opts...)
	if err != nil {
		return nil, err
	}
	return NewWithClient(api, nil), nil
}

// NewWithClient wraps an existing Helix pipeline. A nil cache gets an
// in-memory one.
func NewWithClient(api *client.Client, cache core.LoginCache) *Client {
	if cache == nil {
		cache = core.NewMemoryLoginCache()
	}
	c := &Client{
		api:        api,
		registry:   core.NewServiceRegistry(),
		loginCache: cache,
	}
	_ = c.registry.Register(ServiceUsers, func() any { return &Users{helix: c} })
	_ = c.registry.Register(ServiceChannels, func() any { return &Channels{helix: c} })
	_ = c.registry.Register(ServiceStreams, func() any { return &Streams{helix: c} })
	_ = c.registry.Register(ServiceTags, func() any { return &Tags{helix: c} })
	_ = c.registry.Register(ServiceVideos, func() any { return &Videos{helix: c} })
	_ = c.registry.Register(ServiceSearch, func() any { return &Search{helix: c} })
	return c
}

func (c *Client) API() *client.Client {
	return c.api
}

func (c *Client) LastError() *core.LastError {
	return c.api.LastError()
}

// Service resolves a binding by name; unknown names return nil.
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

func (c *Client) Tags() *Tags {
	return c.Service(ServiceTags).(*Tags)
}

func (c *Client) Videos() *Videos {
	return c.Service(ServiceVideos).(*Videos)
}

func (c *Client) Search() *Search {
	return c.Service(ServiceSearch).(*Search)
}

func (c *Client) get(ctx context.Context, path string, params core.Params, target string, out any) error {
	reply, err := c.api.Execute(ctx, core.Request{
		Method: core.MethodGet,
		URL:    path,
		Params: params,
		Target: target,
	})
	if err != nil {
		return err
	}
	return decodeReply(reply, out)
}

func (c *Client) send(ctx context.Context, req core.Request, out any) error {
	reply, err := c.api.Execute(ctx, req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return decodeReply(reply, out)
}

func decodeReply(reply core.Reply, out any) error {
	if err := reply.Decode(out); err != nil {
		return core.NewInternalError(err, "helix: decode reply")
	}
	return nil
}

func pageLength(length int) int {
	if length <= 0 {
		return DefaultPageLength
	}
	return length
}
