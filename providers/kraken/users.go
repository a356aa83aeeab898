package kraken

import (
	"context"
	"strings"

	"github.com/goliatone/go-twitch/core"
)

type Users struct {
	kraken *Client
}

// Info returns a user by login or id. An empty argument returns the user
// owning the resolved token. Unknown logins return nil.
func (u *Users) Info(ctx context.Context, loginOrID string) (*User, error) {
	loginOrID = strings.TrimSpace(loginOrID)
	path := "user"
	switch {
	case loginOrID == "":
	case core.IsNumericID(loginOrID):
		path = "users/" + loginOrID
	default:
		if id, ok := u.kraken.loginCache.Get(ctx, loginOrID); ok {
			path = "users/" + id
			break
		}
		return u.lookup(ctx, loginOrID)
	}

	var user User
	if err := u.kraken.get(ctx, path, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UserID returns the cached id for login, fetching it when unknown. Unknown
// logins return "".
func (u *Users) UserID(ctx context.Context, login string) (string, error) {
	if id, ok := u.kraken.loginCache.Get(ctx, login); ok {
		return id, nil
	}
	return u.FetchUserID(ctx, login)
}

func (u *Users) FetchUserID(ctx context.Context, login string) (string, error) {
	user, err := u.lookup(ctx, login)
	if err != nil || user == nil {
		return "", err
	}
	return user.ID.String(), nil
}

func (u *Users) ClearIDCache(ctx context.Context) {
	u.kraken.loginCache.Clear(ctx)
}

func (u *Users) lookup(ctx context.Context, login string) (*User, error) {
	login = strings.TrimSpace(login)
	if login == "" {
		return nil, core.NewBadInputError("kraken: login is required")
	}
	var out userList
	if err := u.kraken.get(ctx, "users", core.Params{"login": login}, &out); err != nil {
		return nil, err
	}
	if out.Total == 0 || len(out.Users) == 0 {
		return nil, nil
	}
	user := out.Users[0]
	u.kraken.loginCache.Set(ctx, login, user.ID.String())
	return &user, nil
}

func (u *Users) resolveID(ctx context.Context, loginOrID string) (string, error) {
	loginOrID = strings.TrimSpace(loginOrID)
	if loginOrID == "" {
		return "", core.NewBadInputError("kraken: channel is required")
	}
	if core.IsNumericID(loginOrID) {
		return loginOrID, nil
	}
	id, err := u.UserID(ctx, loginOrID)
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", core.NewBadInputError("kraken: unknown user " + loginOrID)
	}
	return id, nil
}
