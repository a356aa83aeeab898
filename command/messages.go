package command

import (
	"strings"

	"github.com/goliatone/go-twitch/core"
	"github.com/goliatone/go-twitch/providers/helix"
)

const (
	TypeExchangeCode      = "twitch.command.auth.exchange_code"
	TypeClientCredentials = "twitch.command.auth.client_credentials"
	TypeRefresh           = "twitch.command.auth.refresh"
	TypeUpdateChannel     = "twitch.command.channel.update"
	TypeStartCommercial   = "twitch.command.channel.start_commercial"
	TypeReplaceStreamTags = "twitch.command.stream_tags.replace"
)

// ExchangeCodeMessage trades an authorization code for tokens. When Target
// is set the pair is stored under it.
type ExchangeCodeMessage struct {
	Code        string
	RedirectURI string
	Target      string
}

func (ExchangeCodeMessage) Type() string { return TypeExchangeCode }

func (m ExchangeCodeMessage) Validate() error {
	if strings.TrimSpace(m.Code) == "" {
		return commandValidationError("code", "required")
	}
	if strings.TrimSpace(m.RedirectURI) == "" {
		return commandValidationError("redirect_uri", "required")
	}
	return nil
}

type ClientCredentialsMessage struct {
	Scopes []string
}

func (ClientCredentialsMessage) Type() string { return TypeClientCredentials }

func (ClientCredentialsMessage) Validate() error { return nil }

type RefreshMessage struct {
	Target string
}

func (RefreshMessage) Type() string { return TypeRefresh }

func (m RefreshMessage) Validate() error {
	if strings.TrimSpace(m.Target) == "" {
		return commandValidationError("target", "required")
	}
	return nil
}

type UpdateChannelMessage struct {
	Channel string
	Update  helix.ChannelUpdate
	Target  string
}

func (UpdateChannelMessage) Type() string { return TypeUpdateChannel }

func (m UpdateChannelMessage) Validate() error {
	if strings.TrimSpace(m.Channel) == "" {
		return commandValidationError("channel", "required")
	}
	return core.ValidateStruct("command: at least one update field is required", m.Update)
}

type StartCommercialMessage struct {
	Channel string
	Length  int
	Target  string
}

func (StartCommercialMessage) Type() string { return TypeStartCommercial }

func (m StartCommercialMessage) Validate() error {
	if strings.TrimSpace(m.Channel) == "" {
		return commandValidationError("channel", "required")
	}
	switch m.Length {
	case 30, 60, 90, 120, 150, 180:
		return nil
	default:
		return commandValidationError("length", "must be one of 30 60 90 120 150 180")
	}
}

type ReplaceStreamTagsMessage struct {
	Broadcaster string
	TagIDs      []string
	Target      string
}

func (ReplaceStreamTagsMessage) Type() string { return TypeReplaceStreamTags }

func (m ReplaceStreamTagsMessage) Validate() error {
	if strings.TrimSpace(m.Broadcaster) == "" {
		return commandValidationError("broadcaster", "required")
	}
	return nil
}
