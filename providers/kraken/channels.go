package kraken

import (
	"context"
	"strings"

	"github.com/goliatone/go-twitch/core"
)

type ChannelUpdate struct {
	Status             string `json:"status,omitempty" validate:"required_without_all=Game Delay ChannelFeedEnabled"`
	Game               string `json:"game,omitempty"`
	Delay              *int   `json:"delay,omitempty"`
	ChannelFeedEnabled *bool  `json:"channel_feed_enabled,omitempty"`
}

type FollowersQuery struct {
	Limit     int    `validate:"omitempty,min=1,max=100"`
	Cursor    string
	Direction string `validate:"omitempty,oneof=asc desc"`
}

type commercialInput struct {
	Channel string `json:"channel" validate:"required"`
	Length  int    `json:"length" validate:"oneof=30 60 90 120 150 180"`
}

type Channels struct {
	kraken *Client
}

// Info returns a channel by login or id, or the authenticated channel when
// channel is empty. Unknown logins return nil.
func (c *Channels) Info(ctx context.Context, channel string) (*Channel, error) {
	channel = strings.TrimSpace(channel)
	path := "channel"
	switch {
	case channel == "":
	case core.IsNumericID(channel):
		path = "channels/" + channel
	default:
		id, err := c.kraken.Users().UserID(ctx, channel)
		if err != nil {
			return nil, err
		}
		if id == "" {
			return nil, nil
		}
		path = "channels/" + id
	}
	var out Channel
	if err := c.kraken.get(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Channels) Followers(ctx context.Context, channel string, query FollowersQuery) (*Followers, error) {
	if err := core.ValidateStruct("kraken: invalid followers query", query); err != nil {
		return nil, err
	}
	id, err := c.kraken.Users().resolveID(ctx, channel)
	if err != nil {
		return nil, err
	}
	params := core.Params{}
	if query.Limit > 0 {
		params.Set("limit", query.Limit)
	}
	params.Set("cursor", query.Cursor)
	params.Set("direction", query.Direction)

	var out Followers
	if err := c.kraken.get(ctx, "channels/"+id+"/follows", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Channels) Update(ctx context.Context, channel string, update ChannelUpdate) (*Channel, error) {
	if err := core.ValidateStruct("kraken: at least one update field is required", update); err != nil {
		return nil, err
	}
	id, err := c.kraken.Users().resolveID(ctx, channel)
	if err != nil {
		return nil, err
	}
	var out Channel
	if err := c.kraken.query(ctx, core.Request{
		Method: core.MethodPut,
		URL:    "channels/" + id,
		Body:   map[string]ChannelUpdate{"channel": update},
		Target: strings.TrimSpace(channel),
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// StartCommercial reports whether Twitch acknowledged the commercial.
func (c *Channels) StartCommercial(ctx context.Context, channel string, length int) (bool, error) {
	if err := core.ValidateStruct("kraken: invalid commercial", commercialInput{
		Channel: strings.TrimSpace(channel),
		Length:  length,
	}); err != nil {
		return false, err
	}
	id, err := c.kraken.Users().resolveID(ctx, channel)
	if err != nil {
		return false, err
	}
	reply, err := c.kraken.api.Execute(ctx, core.Request{
		Method: core.MethodPost,
		URL:    "channels/" + id + "/commercial",
		Params: core.Params{"length": length},
		Target: strings.TrimSpace(channel),
	})
	if err != nil {
		return false, err
	}
	return !reply.Empty(), nil
}
