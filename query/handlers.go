package query

import (
	"context"
	"strings"

	"github.com/goliatone/go-twitch/core"
	"github.com/goliatone/go-twitch/providers/helix"
)

type UserReader interface {
	GetUsers(ctx context.Context, loginsOrIDs ...string) (map[string]helix.User, error)
	UserIDs(ctx context.Context, logins ...string) (map[string]string, error)
}

type ChannelReader interface {
	Info(ctx context.Context, loginsOrIDs ...string) ([]helix.ChannelInfo, error)
}

type StreamReader interface {
	GetStreams(ctx context.Context, filter helix.StreamFilter, cont bool) ([]helix.Stream, error)
}

type CategorySearcher interface {
	Categories(ctx context.Context, query string, length int, cont bool) ([]helix.Category, error)
}

type LastErrorSource interface {
	LastError() *core.LastError
}

type GetUsersQuery struct {
	reader UserReader
}

func NewGetUsersQuery(reader UserReader) *GetUsersQuery {
	return &GetUsersQuery{reader: reader}
}

func (q *GetUsersQuery) Query(ctx context.Context, msg GetUsersMessage) (map[string]helix.User, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: user reader is required")
	}
	return q.reader.GetUsers(ctx, msg.LoginsOrIDs...)
}

type UserIDsQuery struct {
	reader UserReader
}

func NewUserIDsQuery(reader UserReader) *UserIDsQuery {
	return &UserIDsQuery{reader: reader}
}

func (q *UserIDsQuery) Query(ctx context.Context, msg UserIDsMessage) (map[string]string, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: user reader is required")
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return q.reader.UserIDs(ctx, nonEmpty(msg.Logins)...)
}

type ChannelInfoQuery struct {
	reader ChannelReader
}

func NewChannelInfoQuery(reader ChannelReader) *ChannelInfoQuery {
	return &ChannelInfoQuery{reader: reader}
}

func (q *ChannelInfoQuery) Query(ctx context.Context, msg ChannelInfoMessage) ([]helix.ChannelInfo, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: channel reader is required")
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return q.reader.Info(ctx, nonEmpty(msg.LoginsOrIDs)...)
}

type GetStreamsQuery struct {
	reader StreamReader
}

func NewGetStreamsQuery(reader StreamReader) *GetStreamsQuery {
	return &GetStreamsQuery{reader: reader}
}

func (q *GetStreamsQuery) Query(ctx context.Context, msg GetStreamsMessage) ([]helix.Stream, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: stream reader is required")
	}
	return q.reader.GetStreams(ctx, msg.Filter, msg.Continue)
}

type SearchCategoriesQuery struct {
	searcher CategorySearcher
}

func NewSearchCategoriesQuery(searcher CategorySearcher) *SearchCategoriesQuery {
	return &SearchCategoriesQuery{searcher: searcher}
}

func (q *SearchCategoriesQuery) Query(ctx context.Context, msg SearchCategoriesMessage) ([]helix.Category, error) {
	if q == nil || q.searcher == nil {
		return nil, queryDependencyError("query: category searcher is required")
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return q.searcher.Categories(ctx, msg.Query, msg.Length, msg.Continue)
}

// LastErrorQuery resolves the source by family name. A nil result means the
// client has not failed yet.
type LastErrorQuery struct {
	sources map[string]LastErrorSource
}

func NewLastErrorQuery(sources map[string]LastErrorSource) *LastErrorQuery {
	normalized := make(map[string]LastErrorSource, len(sources))
	for name, source := range sources {
		normalized[strings.ToLower(strings.TrimSpace(name))] = source
	}
	return &LastErrorQuery{sources: normalized}
}

func (q *LastErrorQuery) Query(_ context.Context, msg LastErrorMessage) (*core.LastError, error) {
	if q == nil {
		return nil, queryDependencyError("query: last error sources are required")
	}
	family := strings.ToLower(strings.TrimSpace(msg.Family))
	if family == "" {
		family = core.FamilyHelix
	}
	source, ok := q.sources[family]
	if !ok || source == nil {
		return nil, queryValidationError("family", "unknown client family "+family)
	}
	return source.LastError(), nil
}
