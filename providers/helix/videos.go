package helix

import (
	"context"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-twitch/core"
)

// VideoFilter selects videos. One of IDs, GameID or UserID is mandatory.
type VideoFilter struct {
	IDs       []string `json:"id" validate:"omitempty,dive,required"`
	GameID    string   `json:"game_id"`
	UserID    string   `json:"user_id"`
	UserLogin string   `json:"user_login"`
	Language  string   `json:"language"`
	Period    string   `json:"period" validate:"omitempty,oneof=all day week month"`
	Sort      string   `json:"sort" validate:"omitempty,oneof=time trending views"`
	Type      string   `json:"type" validate:"omitempty,oneof=all upload archive highlight"`
}

func (f VideoFilter) selective() bool {
	return len(f.IDs) > 0 || strings.TrimSpace(f.GameID) != "" || strings.TrimSpace(f.UserID) != ""
}

type Videos struct {
	helix  *Client
	cursor cursor
}

func (v *Videos) GetVideos(ctx context.Context, filter VideoFilter, length int, cont bool) ([]Video, error) {
	if !filter.selective() {
		return nil, core.NewBadInputError("helix: one of id, game_id or user_id is required",
			goerrors.FieldError{Field: "id", Message: "required without game_id and user_id"})
	}
	if err := core.ValidateStruct("helix: invalid video filter", filter); err != nil {
		return nil, err
	}
	params := core.Params{"first": pageLength(length)}
	params.Set("after", v.cursor.next(cont))
	params.Set("id", filter.IDs)
	params.Set("game_id", filter.GameID)
	params.Set("user_id", filter.UserID)
	params.Set("user_login", filter.UserLogin)
	params.Set("language", filter.Language)
	params.Set("period", filter.Period)
	params.Set("sort", filter.Sort)
	params.Set("type", filter.Type)

	var out page[Video]
	if err := v.helix.get(ctx, "videos", params, "", &out); err != nil {
		return nil, err
	}
	v.cursor.store(out.Pagination)
	return out.Data, nil
}

func (v *Videos) HasMore() bool {
	return v.cursor.more()
}
