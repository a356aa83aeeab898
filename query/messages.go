package query

import (
	"strings"

	"github.com/goliatone/go-twitch/providers/helix"
)

const (
	TypeGetUsers       = "twitch.query.users.get"
	TypeUserIDs        = "twitch.query.users.ids"
	TypeChannelInfo    = "twitch.query.channels.info"
	TypeGetStreams     = "twitch.query.streams.list"
	TypeSearchCategory = "twitch.query.search.categories"
	TypeLastError      = "twitch.query.last_error"
)

// GetUsersMessage with no logins or ids asks for the token owner.
type GetUsersMessage struct {
	LoginsOrIDs []string
}

func (GetUsersMessage) Type() string { return TypeGetUsers }

func (GetUsersMessage) Validate() error { return nil }

type UserIDsMessage struct {
	Logins []string
}

func (UserIDsMessage) Type() string { return TypeUserIDs }

func (m UserIDsMessage) Validate() error {
	if len(nonEmpty(m.Logins)) == 0 {
		return queryValidationError("logins", "required")
	}
	return nil
}

type ChannelInfoMessage struct {
	LoginsOrIDs []string
}

func (ChannelInfoMessage) Type() string { return TypeChannelInfo }

func (m ChannelInfoMessage) Validate() error {
	if len(nonEmpty(m.LoginsOrIDs)) == 0 {
		return queryValidationError("logins_or_ids", "required")
	}
	return nil
}

type GetStreamsMessage struct {
	Filter   helix.StreamFilter
	Continue bool
}

func (GetStreamsMessage) Type() string { return TypeGetStreams }

func (GetStreamsMessage) Validate() error { return nil }

type SearchCategoriesMessage struct {
	Query    string
	Length   int
	Continue bool
}

func (SearchCategoriesMessage) Type() string { return TypeSearchCategory }

func (m SearchCategoriesMessage) Validate() error {
	if strings.TrimSpace(m.Query) == "" {
		return queryValidationError("query", "required")
	}
	return nil
}

type LastErrorMessage struct {
	Family string
}

func (LastErrorMessage) Type() string { return TypeLastError }

func (LastErrorMessage) Validate() error { return nil }

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			out = append(out, value)
		}
	}
	return out
}
