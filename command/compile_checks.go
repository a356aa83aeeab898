package command

import (
	gocmd "github.com/goliatone/go-command"

	"github.com/goliatone/go-twitch/client"
	"github.com/goliatone/go-twitch/providers/helix"
)

var (
	_ gocmd.Commander[ExchangeCodeMessage]      = (*ExchangeCodeCommand)(nil)
	_ gocmd.Commander[ClientCredentialsMessage] = (*ClientCredentialsCommand)(nil)
	_ gocmd.Commander[RefreshMessage]           = (*RefreshCommand)(nil)
	_ gocmd.Commander[UpdateChannelMessage]     = (*UpdateChannelCommand)(nil)
	_ gocmd.Commander[StartCommercialMessage]   = (*StartCommercialCommand)(nil)
	_ gocmd.Commander[ReplaceStreamTagsMessage] = (*ReplaceStreamTagsCommand)(nil)

	_ Authenticator    = (*client.Authenticator)(nil)
	_ ChannelService   = (*helix.Channels)(nil)
	_ StreamTagService = (*helix.Tags)(nil)
)
