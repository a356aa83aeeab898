package helix

import (
	"context"
	"strings"

	"github.com/goliatone/go-twitch/core"
)

// ChannelUpdate carries the mutable channel fields. At least one is required.
type ChannelUpdate struct {
	GameID              string `json:"game_id,omitempty" validate:"required_without_all=BroadcasterLanguage Title Delay"`
	BroadcasterLanguage string `json:"broadcaster_language,omitempty"`
	Title               string `json:"title,omitempty"`
	Delay               *int   `json:"delay,omitempty"`
}

type commercialInput struct {
	BroadcasterID string `json:"broadcaster_id" validate:"required"`
	Length        int    `json:"length" validate:"oneof=30 60 90 120 150 180"`
}

type Channels struct {
	helix *Client
}

// Info returns channel information keyed by broadcaster id. Logins are
// resolved through the Users binding first.
func (c *Channels) Info(ctx context.Context, loginsOrIDs ...string) ([]ChannelInfo, error) {
	ids, logins := splitLoginsAndIDs(loginsOrIDs)
	if len(logins) > 0 {
		resolved, err := c.helix.Users().UserIDs(ctx, logins...)
		if err != nil {
			return nil, err
		}
		for _, login := range logins {
			if id := resolved[core.NormalizeLogin(login)]; id != "" {
				ids = append(ids, id)
			}
		}
	}
	if len(ids) == 0 {
		return nil, core.NewBadInputError("helix: at least one broadcaster is required")
	}

	var out page[ChannelInfo]
	if err := c.helix.get(ctx, "channels", core.Params{"broadcaster_id": ids}, "", &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// InfoOne returns nil when the channel is not found.
func (c *Channels) InfoOne(ctx context.Context, loginOrID string) (*ChannelInfo, error) {
	infos, err := c.Info(ctx, loginOrID)
	if err != nil {
		return nil, err
	}
	if len(infos) == 0 {
		return nil, nil
	}
	return &infos[0], nil
}

// Update patches the channel. target selects the credential and defaults to
// loginOrID.
func (c *Channels) Update(ctx context.Context, loginOrID string, update ChannelUpdate, target string) error {
	if err := core.ValidateStruct("helix: at least one update field is required", update); err != nil {
		return err
	}
	id, err := c.helix.Users().resolveID(ctx, loginOrID)
	if err != nil {
		return err
	}
	return c.helix.send(ctx, core.Request{
		Method: core.MethodPatch,
		URL:    "channels",
		Params: core.Params{"broadcaster_id": id},
		Body:   update,
		Target: authTarget(target, loginOrID),
	}, nil)
}

func (c *Channels) StartCommercial(ctx context.Context, loginOrID string, length int, target string) (*Commercial, error) {
	if err := core.ValidateStruct("helix: invalid commercial", commercialInput{
		BroadcasterID: strings.TrimSpace(loginOrID),
		Length:        length,
	}); err != nil {
		return nil, err
	}
	id, err := c.helix.Users().resolveID(ctx, loginOrID)
	if err != nil {
		return nil, err
	}

	var out page[Commercial]
	if err := c.helix.send(ctx, core.Request{
		Method: core.MethodPost,
		URL:    "channels/commercial",
		Params: core.Params{"broadcaster_id": id, "length": length},
		Target: authTarget(target, loginOrID),
	}, &out); err != nil {
		return nil, err
	}
	if len(out.Data) == 0 {
		return nil, nil
	}
	return &out.Data[0], nil
}

func authTarget(target, fallback string) string {
	if strings.TrimSpace(target) != "" {
		return strings.TrimSpace(target)
	}
	return strings.TrimSpace(fallback)
}
