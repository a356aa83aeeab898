package kraken

import (
	"context"
	"strings"

	"github.com/goliatone/go-twitch/core"
)

type Search struct {
	kraken *Client
}

type gamesReply struct {
	Games []Game `json:"games"`
}

func (s *Search) Games(ctx context.Context, query string, live bool) ([]Game, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, core.NewBadInputError("kraken: search query is required")
	}
	var out gamesReply
	if err := s.kraken.get(ctx, "search/games", core.Params{"query": query, "live": live}, &out); err != nil {
		return nil, err
	}
	if out.Games == nil {
		return []Game{}, nil
	}
	return out.Games, nil
}
