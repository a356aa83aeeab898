package kraken

import (
	"context"
)

type Streams struct {
	kraken *Client
}

type streamReply struct {
	Stream *Stream `json:"stream"`
}

// Info returns the live stream of a user, or nil when offline.
func (s *Streams) Info(ctx context.Context, user string) (*Stream, error) {
	id, err := s.kraken.Users().resolveID(ctx, user)
	if err != nil {
		return nil, err
	}
	var out streamReply
	if err := s.kraken.get(ctx, "streams/"+id, nil, &out); err != nil {
		return nil, err
	}
	return out.Stream, nil
}
