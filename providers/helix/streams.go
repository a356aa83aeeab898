package helix

import (
	"context"

	"github.com/goliatone/go-twitch/core"
)

type StreamFilter struct {
	UserIDs    []string
	UserLogins []string
	GameIDs    []string
	Languages  []string
	Type       string `validate:"omitempty,oneof=all live"`
	First      int    `validate:"omitempty,min=1,max=100"`
}

// Streams lists live streams and keeps the forward cursor between calls.
type Streams struct {
	helix  *Client
	cursor cursor
}

// GetStreams lists streams matching filter. cont picks up after the last
// page returned.
func (s *Streams) GetStreams(ctx context.Context, filter StreamFilter, cont bool) ([]Stream, error) {
	if err := core.ValidateStruct("helix: invalid stream filter", filter); err != nil {
		return nil, err
	}
	params := core.Params{"first": pageLength(filter.First)}
	params.Set("after", s.cursor.next(cont))
	params.Set("user_id", filter.UserIDs)
	params.Set("user_login", filter.UserLogins)
	params.Set("game_id", filter.GameIDs)
	params.Set("language", filter.Languages)
	params.Set("type", filter.Type)

	var out page[Stream]
	if err := s.helix.get(ctx, "streams", params, "", &out); err != nil {
		return nil, err
	}
	s.cursor.store(out.Pagination)
	return out.Data, nil
}

func (s *Streams) HasMore() bool {
	return s.cursor.more()
}

func (s *Streams) ResetCursor() {
	s.cursor.reset()
}
