package helix

import (
	"context"

	"github.com/goliatone/go-twitch/core"
)

type Tags struct {
	helix  *Client
	cursor cursor
}

func (t *Tags) GetTags(ctx context.Context, tagIDs []string, length int, cont bool) ([]Tag, error) {
	params := core.Params{"first": pageLength(length)}
	params.Set("after", t.cursor.next(cont))
	params.Set("tag_id", tagIDs)

	var out page[Tag]
	if err := t.helix.get(ctx, "tags/streams", params, "", &out); err != nil {
		return nil, err
	}
	t.cursor.store(out.Pagination)
	return out.Data, nil
}

func (t *Tags) HasMoreTags() bool {
	return t.cursor.more()
}

func (t *Tags) GetStreamTags(ctx context.Context, broadcaster string) ([]Tag, error) {
	id, err := t.helix.Users().resolveID(ctx, broadcaster)
	if err != nil {
		return nil, err
	}
	var out page[Tag]
	if err := t.helix.get(ctx, "streams/tags", core.Params{"broadcaster_id": id}, "", &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// ReplaceStreamTags sets the broadcaster's tags. An empty list clears them.
func (t *Tags) ReplaceStreamTags(ctx context.Context, broadcaster string, tagIDs []string, target string) error {
	id, err := t.helix.Users().resolveID(ctx, broadcaster)
	if err != nil {
		return err
	}
	if tagIDs == nil {
		tagIDs = []string{}
	}
	return t.helix.send(ctx, core.Request{
		Method: core.MethodPut,
		URL:    "streams/tags",
		Params: core.Params{"broadcaster_id": id},
		Body:   map[string][]string{"tag_ids": tagIDs},
		Target: authTarget(target, broadcaster),
	}, nil)
}
