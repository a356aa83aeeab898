package gocommand

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-command"
	commanddispatcher "github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"

	twitchcommand "github.com/goliatone/go-twitch/command"
	"github.com/goliatone/go-twitch/core"
	"github.com/goliatone/go-twitch/providers/helix"
	twitchquery "github.com/goliatone/go-twitch/query"
)

// ValidateMessageContract checks that msg has a non-empty Type() and passes
// its own Validate() when it has one.
func ValidateMessageContract(msg any) error {
	if err := command.ValidateMessage(msg); err != nil {
		return err
	}
	m, ok := msg.(command.Message)
	if !ok {
		return fmt.Errorf("gocommand: message must implement Type() string")
	}
	if strings.TrimSpace(m.Type()) == "" {
		return fmt.Errorf("gocommand: message type is required")
	}
	return nil
}

type RegistryAdapter struct {
	registry *command.Registry
}

func NewRegistryAdapter(registry *command.Registry) *RegistryAdapter {
	if registry == nil {
		registry = command.NewRegistry()
	}
	return &RegistryAdapter{registry: registry}
}

func (a *RegistryAdapter) Registry() *command.Registry {
	if a == nil {
		return nil
	}
	return a.registry
}

func (a *RegistryAdapter) RegisterCommand(cmd any) error {
	if a == nil || a.registry == nil {
		return fmt.Errorf("gocommand: registry is not configured")
	}
	return a.registry.RegisterCommand(cmd)
}

func (a *RegistryAdapter) RegisterQuery(qry any) error {
	if a == nil || a.registry == nil {
		return fmt.Errorf("gocommand: registry is not configured")
	}
	return a.registry.RegisterCommand(qry)
}

func (a *RegistryAdapter) AddResolver(key string, resolver command.Resolver) error {
	if a == nil || a.registry == nil {
		return fmt.Errorf("gocommand: registry is not configured")
	}
	return a.registry.AddResolver(strings.TrimSpace(key), resolver)
}

func (a *RegistryAdapter) HasResolver(key string) bool {
	if a == nil || a.registry == nil {
		return false
	}
	return a.registry.HasResolver(strings.TrimSpace(key))
}

func (a *RegistryAdapter) Initialize() error {
	if a == nil || a.registry == nil {
		return fmt.Errorf("gocommand: registry is not configured")
	}
	return a.registry.Initialize()
}

func SubscribeCommand[T any](cmd command.Commander[T], runnerOpts ...runner.Option) commanddispatcher.Subscription {
	return commanddispatcher.SubscribeCommand(cmd, runnerOpts...)
}

func SubscribeCommandFunc[T any](handler command.CommandFunc[T], runnerOpts ...runner.Option) commanddispatcher.Subscription {
	return commanddispatcher.SubscribeCommand(handler, runnerOpts...)
}

func SubscribeQuery[T any, R any](qry command.Querier[T, R], runnerOpts ...runner.Option) commanddispatcher.Subscription {
	return commanddispatcher.SubscribeQuery(qry, runnerOpts...)
}

func SubscribeQueryFunc[T any, R any](qry command.QueryFunc[T, R], runnerOpts ...runner.Option) commanddispatcher.Subscription {
	return commanddispatcher.SubscribeQuery(qry, runnerOpts...)
}

func Dispatch[T any](ctx context.Context, msg T) error {
	return commanddispatcher.Dispatch(ctx, msg)
}

func Query[T any, R any](ctx context.Context, msg T) (R, error) {
	return commanddispatcher.Query[T, R](ctx, msg)
}

func RegisterAndSubscribe[T any](
	adapter *RegistryAdapter,
	cmd command.Commander[T],
	runnerOpts ...runner.Option,
) (commanddispatcher.Subscription, error) {
	if adapter == nil || adapter.registry == nil {
		return nil, fmt.Errorf("gocommand: registry is not configured")
	}
	if cmd == nil {
		return nil, fmt.Errorf("gocommand: command is required")
	}
	subscription := SubscribeCommand(cmd, runnerOpts...)
	if err := adapter.RegisterCommand(cmd); err != nil {
		if subscription != nil {
			subscription.Unsubscribe()
		}
		return nil, err
	}
	return subscription, nil
}

func RegisterAndSubscribeQuery[T any, R any](
	adapter *RegistryAdapter,
	qry command.Querier[T, R],
	runnerOpts ...runner.Option,
) (commanddispatcher.Subscription, error) {
	if adapter == nil || adapter.registry == nil {
		return nil, fmt.Errorf("gocommand: registry is not configured")
	}
	if qry == nil {
		return nil, fmt.Errorf("gocommand: query is required")
	}
	subscription := SubscribeQuery(qry, runnerOpts...)
	if err := adapter.RegisterQuery(qry); err != nil {
		if subscription != nil {
			subscription.Unsubscribe()
		}
		return nil, err
	}
	return subscription, nil
}

// Handlers groups the twitch command and query handlers. Nil entries are
// skipped.
type Handlers struct {
	ExchangeCode      *twitchcommand.ExchangeCodeCommand
	ClientCredentials *twitchcommand.ClientCredentialsCommand
	Refresh           *twitchcommand.RefreshCommand
	UpdateChannel     *twitchcommand.UpdateChannelCommand
	StartCommercial   *twitchcommand.StartCommercialCommand
	ReplaceStreamTags *twitchcommand.ReplaceStreamTagsCommand

	GetUsers         *twitchquery.GetUsersQuery
	UserIDs          *twitchquery.UserIDsQuery
	ChannelInfo      *twitchquery.ChannelInfoQuery
	GetStreams       *twitchquery.GetStreamsQuery
	SearchCategories *twitchquery.SearchCategoriesQuery
	LastError        *twitchquery.LastErrorQuery
}

// Subscriptions is the set returned by RegisterHandlers.
type Subscriptions []commanddispatcher.Subscription

func (s Subscriptions) Unsubscribe() {
	for _, sub := range s {
		if sub != nil {
			sub.Unsubscribe()
		}
	}
}

// RegisterHandlers registers and subscribes every non-nil handler. On error
// the subscriptions made so far are removed.
func RegisterHandlers(adapter *RegistryAdapter, h Handlers, runnerOpts ...runner.Option) (Subscriptions, error) {
	var subs Subscriptions
	add := func(sub commanddispatcher.Subscription, err error) error {
		if err != nil {
			subs.Unsubscribe()
			return err
		}
		subs = append(subs, sub)
		return nil
	}

	steps := []func() error{
		func() error {
			if h.ExchangeCode == nil {
				return nil
			}
			return add(RegisterAndSubscribe[twitchcommand.ExchangeCodeMessage](adapter, h.ExchangeCode, runnerOpts...))
		},
		func() error {
			if h.ClientCredentials == nil {
				return nil
			}
			return add(RegisterAndSubscribe[twitchcommand.ClientCredentialsMessage](adapter, h.ClientCredentials, runnerOpts...))
		},
		func() error {
			if h.Refresh == nil {
				return nil
			}
			return add(RegisterAndSubscribe[twitchcommand.RefreshMessage](adapter, h.Refresh, runnerOpts...))
		},
		func() error {
			if h.UpdateChannel == nil {
				return nil
			}
			return add(RegisterAndSubscribe[twitchcommand.UpdateChannelMessage](adapter, h.UpdateChannel, runnerOpts...))
		},
		func() error {
			if h.StartCommercial == nil {
				return nil
			}
			return add(RegisterAndSubscribe[twitchcommand.StartCommercialMessage](adapter, h.StartCommercial, runnerOpts...))
		},
		func() error {
			if h.ReplaceStreamTags == nil {
				return nil
			}
			return add(RegisterAndSubscribe[twitchcommand.ReplaceStreamTagsMessage](adapter, h.ReplaceStreamTags, runnerOpts...))
		},
		func() error {
			if h.GetUsers == nil {
				return nil
			}
			return add(RegisterAndSubscribeQuery[twitchquery.GetUsersMessage, map[string]helix.User](adapter, h.GetUsers, runnerOpts...))
		},
		func() error {
			if h.UserIDs == nil {
				return nil
			}
			return add(RegisterAndSubscribeQuery[twitchquery.UserIDsMessage, map[string]string](adapter, h.UserIDs, runnerOpts...))
		},
		func() error {
			if h.ChannelInfo == nil {
				return nil
			}
			return add(RegisterAndSubscribeQuery[twitchquery.ChannelInfoMessage, []helix.ChannelInfo](adapter, h.ChannelInfo, runnerOpts...))
		},
		func() error {
			if h.GetStreams == nil {
				return nil
			}
			return add(RegisterAndSubscribeQuery[twitchquery.GetStreamsMessage, []helix.Stream](adapter, h.GetStreams, runnerOpts...))
		},
		func() error {
			if h.SearchCategories == nil {
				return nil
			}
			return add(RegisterAndSubscribeQuery[twitchquery.SearchCategoriesMessage, []helix.Category](adapter, h.SearchCategories, runnerOpts...))
		},
		func() error {
			if h.LastError == nil {
				return nil
			}
			return add(RegisterAndSubscribeQuery[twitchquery.LastErrorMessage, *core.LastError](adapter, h.LastError, runnerOpts...))
		},
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}
	return subs, nil
}
