package helix

import (
	"context"
	"strings"

	"github.com/goliatone/go-twitch/core"
)

type Search struct {
	helix            *Client
	categoriesCursor cursor
}

func (s *Search) Categories(ctx context.Context, query string, length int, cont bool) ([]Category, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, core.NewBadInputError("helix: search query is required")
	}
	params := core.Params{"query": query, "first": pageLength(length)}
	params.Set("after", s.categoriesCursor.next(cont))

	var out page[Category]
	if err := s.helix.get(ctx, "search/categories", params, "", &out); err != nil {
		return nil, err
	}
	s.categoriesCursor.store(out.Pagination)
	return out.Data, nil
}

func (s *Search) HasMoreCategories() bool {
	return s.categoriesCursor.more()
}
