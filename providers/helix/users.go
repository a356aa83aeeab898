package helix

import (
	"context"
	"strings"

	"github.com/goliatone/go-twitch/core"
)

type Users struct {
	helix *Client
}

// GetUsers fetches users by any mix of logins and numeric ids, keyed by id.
// With no argument it returns the user owning the resolved token.
func (u *Users) GetUsers(ctx context.Context, loginsOrIDs ...string) (map[string]User, error) {
	ids, logins := splitLoginsAndIDs(loginsOrIDs)
	params := core.Params{}
	params.Set("id", ids)
	params.Set("login", logins)

	var out page[User]
	if err := u.helix.get(ctx, "users", params, "", &out); err != nil {
		return nil, err
	}
	users := make(map[string]User, len(out.Data))
	for _, user := range out.Data {
		u.helix.loginCache.Set(ctx, user.Login, user.ID)
		users[user.ID] = user
	}
	return users, nil
}

// GetUser returns nil when the user does not exist.
func (u *Users) GetUser(ctx context.Context, loginOrID string) (*User, error) {
	var args []string
	if strings.TrimSpace(loginOrID) != "" {
		args = []string{loginOrID}
	}
	users, err := u.GetUsers(ctx, args...)
	if err != nil {
		return nil, err
	}
	for _, user := range users {
		user := user
		return &user, nil
	}
	return nil, nil
}

// UserIDs maps each login to its id, hitting the API only for logins the
// cache does not know.
func (u *Users) UserIDs(ctx context.Context, logins ...string) (map[string]string, error) {
	ids := make(map[string]string, len(logins))
	missing := make([]string, 0, len(logins))
	for _, login := range logins {
		if id, ok := u.helix.loginCache.Get(ctx, login); ok {
			ids[core.NormalizeLogin(login)] = id
			continue
		}
		missing = append(missing, login)
	}
	if len(missing) == 0 {
		return ids, nil
	}
	fetched, err := u.FetchUserIDs(ctx, missing...)
	if err != nil {
		return nil, err
	}
	for login, id := range fetched {
		ids[login] = id
	}
	return ids, nil
}

// UserID returns "" when the login is unknown.
func (u *Users) UserID(ctx context.Context, login string) (string, error) {
	ids, err := u.UserIDs(ctx, login)
	if err != nil {
		return "", err
	}
	return ids[core.NormalizeLogin(login)], nil
}

func (u *Users) FetchUserIDs(ctx context.Context, logins ...string) (map[string]string, error) {
	if len(logins) == 0 {
		return map[string]string{}, nil
	}
	var out page[User]
	if err := u.helix.get(ctx, "users", core.Params{"login": logins}, "", &out); err != nil {
		return nil, err
	}
	ids := make(map[string]string, len(out.Data))
	for _, user := range out.Data {
		u.helix.loginCache.Set(ctx, user.Login, user.ID)
		ids[core.NormalizeLogin(user.Login)] = user.ID
	}
	return ids, nil
}

func (u *Users) FetchUserID(ctx context.Context, login string) (string, error) {
	ids, err := u.FetchUserIDs(ctx, login)
	if err != nil {
		return "", err
	}
	return ids[core.NormalizeLogin(login)], nil
}

func (u *Users) ClearIDCache(ctx context.Context) {
	u.helix.loginCache.Clear(ctx)
}

// resolveID returns loginOrID unchanged when numeric, otherwise the cached or
// fetched id. Unknown logins are a bad input error.
func (u *Users) resolveID(ctx context.Context, loginOrID string) (string, error) {
	loginOrID = strings.TrimSpace(loginOrID)
	if loginOrID == "" {
		return "", core.NewBadInputError("helix: user login or id is required")
	}
	if core.IsNumericID(loginOrID) {
		return loginOrID, nil
	}
	id, err := u.UserID(ctx, loginOrID)
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", core.NewBadInputError("helix: unknown user " + loginOrID)
	}
	return id, nil
}

func splitLoginsAndIDs(values []string) (ids []string, logins []string) {
	for _, value := range values {
		value = strings.TrimSpace(value)
		switch {
		case value == "":
		case core.IsNumericID(value):
			ids = append(ids, value)
		default:
			logins = append(logins, value)
		}
	}
	return ids, logins
}
