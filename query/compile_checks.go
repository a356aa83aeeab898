package query

import (
	gocmd "github.com/goliatone/go-command"

	"github.com/goliatone/go-twitch/client"
	"github.com/goliatone/go-twitch/core"
	"github.com/goliatone/go-twitch/providers/helix"
	"github.com/goliatone/go-twitch/providers/kraken"
)

var (
	_ gocmd.Querier[GetUsersMessage, map[string]helix.User]    = (*GetUsersQuery)(nil)
	_ gocmd.Querier[UserIDsMessage, map[string]string]         = (*UserIDsQuery)(nil)
	_ gocmd.Querier[ChannelInfoMessage, []helix.ChannelInfo]   = (*ChannelInfoQuery)(nil)
	_ gocmd.Querier[GetStreamsMessage, []helix.Stream]         = (*GetStreamsQuery)(nil)
	_ gocmd.Querier[SearchCategoriesMessage, []helix.Category] = (*SearchCategoriesQuery)(nil)
	_ gocmd.Querier[LastErrorMessage, *core.LastError]         = (*LastErrorQuery)(nil)

	_ UserReader       = (*helix.Users)(nil)
	_ ChannelReader    = (*helix.Channels)(nil)
	_ StreamReader     = (*helix.Streams)(nil)
	_ CategorySearcher = (*helix.Search)(nil)
	_ LastErrorSource  = (*client.Client)(nil)
	_ LastErrorSource  = (*helix.Client)(nil)
	_ LastErrorSource  = (*kraken.Client)(nil)
)
