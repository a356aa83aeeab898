package twitch

import (
	"fmt"

	"github.com/goliatone/go-twitch/adapters/gocommand"
	twitchcommand "github.com/goliatone/go-twitch/command"
	"github.com/goliatone/go-twitch/core"
	twitchquery "github.com/goliatone/go-twitch/query"
)

type Commands struct {
	ExchangeCode      *twitchcommand.ExchangeCodeCommand
	ClientCredentials *twitchcommand.ClientCredentialsCommand
	Refresh           *twitchcommand.RefreshCommand
	UpdateChannel     *twitchcommand.UpdateChannelCommand
	StartCommercial   *twitchcommand.StartCommercialCommand
	ReplaceStreamTags *twitchcommand.ReplaceStreamTagsCommand
}

type Queries struct {
	GetUsers         *twitchquery.GetUsersQuery
	UserIDs          *twitchquery.UserIDsQuery
	ChannelInfo      *twitchquery.ChannelInfoQuery
	GetStreams       *twitchquery.GetStreamsQuery
	SearchCategories *twitchquery.SearchCategoriesQuery
	LastError        *twitchquery.LastErrorQuery
}

type Facade struct {
	service  *Service
	commands Commands
	queries  Queries
}

func NewFacade(service *Service) (*Facade, error) {
	if service == nil {
		return nil, fmt.Errorf("twitch: service is required")
	}

	api := service.Helix()
	facade := &Facade{service: service}
	facade.commands = Commands{
		ExchangeCode:      twitchcommand.NewExchangeCodeCommand(service.Auth(), service.Store()),
		ClientCredentials: twitchcommand.NewClientCredentialsCommand(service.Auth()),
		Refresh:           twitchcommand.NewRefreshCommand(service.Auth()),
		UpdateChannel:     twitchcommand.NewUpdateChannelCommand(api.Channels()),
		StartCommercial:   twitchcommand.NewStartCommercialCommand(api.Channels()),
		ReplaceStreamTags: twitchcommand.NewReplaceStreamTagsCommand(api.Tags()),
	}
	facade.queries = Queries{
		GetUsers:         twitchquery.NewGetUsersQuery(api.Users()),
		UserIDs:          twitchquery.NewUserIDsQuery(api.Users()),
		ChannelInfo:      twitchquery.NewChannelInfoQuery(api.Channels()),
		GetStreams:       twitchquery.NewGetStreamsQuery(api.Streams()),
		SearchCategories: twitchquery.NewSearchCategoriesQuery(api.Search()),
		LastError: twitchquery.NewLastErrorQuery(map[string]twitchquery.LastErrorSource{
			core.FamilyHelix:  api,
			core.FamilyKraken: service.Kraken(),
			core.FamilyAuth:   service.Auth(),
		}),
	}
	return facade, nil
}

func (f *Facade) Commands() Commands {
	if f == nil {
		return Commands{}
	}
	return f.commands
}

func (f *Facade) Queries() Queries {
	if f == nil {
		return Queries{}
	}
	return f.queries
}

func (f *Facade) Service() *Service {
	if f == nil {
		return nil
	}
	return f.service
}

func (f *Facade) Handlers() gocommand.Handlers {
	if f == nil {
		return gocommand.Handlers{}
	}
	return gocommand.Handlers{
		ExchangeCode:      f.commands.ExchangeCode,
		ClientCredentials: f.commands.ClientCredentials,
		Refresh:           f.commands.Refresh,
		UpdateChannel:     f.commands.UpdateChannel,
		StartCommercial:   f.commands.StartCommercial,
		ReplaceStreamTags: f.commands.ReplaceStreamTags,
		GetUsers:          f.queries.GetUsers,
		UserIDs:           f.queries.UserIDs,
		ChannelInfo:       f.queries.ChannelInfo,
		GetStreams:        f.queries.GetStreams,
		SearchCategories:  f.queries.SearchCategories,
		LastError:         f.queries.LastError,
	}
}
