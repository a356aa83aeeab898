package command

import (
	"context"
	"strings"

	gocmd "github.com/goliatone/go-command"

	"github.com/goliatone/go-twitch/core"
	"github.com/goliatone/go-twitch/providers/helix"
)

type Authenticator interface {
	ExchangeAuthorizationCode(ctx context.Context, code string, redirectURI string) (core.TokenPair, error)
	ClientCredentials(ctx context.Context, scopes []string) (core.TokenPair, error)
	Refresh(ctx context.Context, target string) (string, error)
}

type ChannelService interface {
	Update(ctx context.Context, loginOrID string, update helix.ChannelUpdate, target string) error
	StartCommercial(ctx context.Context, loginOrID string, length int, target string) (*helix.Commercial, error)
}

type StreamTagService interface {
	ReplaceStreamTags(ctx context.Context, broadcaster string, tagIDs []string, target string) error
}

type ExchangeCodeCommand struct {
	auth  Authenticator
	store core.CredentialStore
}

func NewExchangeCodeCommand(auth Authenticator, store core.CredentialStore) *ExchangeCodeCommand {
	return &ExchangeCodeCommand{auth: auth, store: store}
}

func (c *ExchangeCodeCommand) Execute(ctx context.Context, msg ExchangeCodeMessage) error {
	if c == nil || c.auth == nil {
		return commandDependencyError("command: authenticator is required")
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	pair, err := c.auth.ExchangeAuthorizationCode(ctx, msg.Code, msg.RedirectURI)
	if err != nil {
		return err
	}
	if target := strings.TrimSpace(msg.Target); target != "" {
		if c.store == nil {
			return commandDependencyError("command: credential store is required to keep tokens")
		}
		if err := c.store.SetAccessToken(ctx, target, pair.AccessToken); err != nil {
			return err
		}
		if err := c.store.SetRefreshToken(ctx, target, pair.RefreshToken); err != nil {
			return err
		}
	}
	storeResult(ctx, pair)
	return nil
}

type ClientCredentialsCommand struct {
	auth Authenticator
}

func NewClientCredentialsCommand(auth Authenticator) *ClientCredentialsCommand {
	return &ClientCredentialsCommand{auth: auth}
}

func (c *ClientCredentialsCommand) Execute(ctx context.Context, msg ClientCredentialsMessage) error {
	if c == nil || c.auth == nil {
		return commandDependencyError("command: authenticator is required")
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	pair, err := c.auth.ClientCredentials(ctx, msg.Scopes)
	if err != nil {
		return err
	}
	storeResult(ctx, pair)
	return nil
}

type RefreshCommand struct {
	auth Authenticator
}

func NewRefreshCommand(auth Authenticator) *RefreshCommand {
	return &RefreshCommand{auth: auth}
}

func (c *RefreshCommand) Execute(ctx context.Context, msg RefreshMessage) error {
	if c == nil || c.auth == nil {
		return commandDependencyError("command: authenticator is required")
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	refreshToken, err := c.auth.Refresh(ctx, msg.Target)
	if err != nil {
		return err
	}
	storeResult(ctx, refreshToken)
	return nil
}

type UpdateChannelCommand struct {
	channels ChannelService
}

func NewUpdateChannelCommand(channels ChannelService) *UpdateChannelCommand {
	return &UpdateChannelCommand{channels: channels}
}

func (c *UpdateChannelCommand) Execute(ctx context.Context, msg UpdateChannelMessage) error {
	if c == nil || c.channels == nil {
		return commandDependencyError("command: channel service is required")
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	return c.channels.Update(ctx, msg.Channel, msg.Update, msg.Target)
}

type StartCommercialCommand struct {
	channels ChannelService
}

func NewStartCommercialCommand(channels ChannelService) *StartCommercialCommand {
	return &StartCommercialCommand{channels: channels}
}

func (c *StartCommercialCommand) Execute(ctx context.Context, msg StartCommercialMessage) error {
	if c == nil || c.channels == nil {
		return commandDependencyError("command: channel service is required")
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	commercial, err := c.channels.StartCommercial(ctx, msg.Channel, msg.Length, msg.Target)
	if err != nil {
		return err
	}
	if commercial != nil {
		storeResult(ctx, *commercial)
	}
	return nil
}

type ReplaceStreamTagsCommand struct {
	tags StreamTagService
}

func NewReplaceStreamTagsCommand(tags StreamTagService) *ReplaceStreamTagsCommand {
	return &ReplaceStreamTagsCommand{tags: tags}
}

func (c *ReplaceStreamTagsCommand) Execute(ctx context.Context, msg ReplaceStreamTagsMessage) error {
	if c == nil || c.tags == nil {
		return commandDependencyError("command: stream tag service is required")
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	return c.tags.ReplaceStreamTags(ctx, msg.Broadcaster, msg.TagIDs, msg.Target)
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
