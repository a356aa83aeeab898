package sqlstore

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-twitch/core"
)

// defaultTargetKey holds the app-level token. Logins never contain '@'.
const defaultTargetKey = "@default"

type credentialRecord struct {
	bun.BaseModel `bun:"table:twitch_credentials,alias:tc"`

	ID           string    `bun:"id,pk"`
	Target       string    `bun:"target,notnull"`
	AccessToken  string    `bun:"access_token,notnull"`
	RefreshToken string    `bun:"refresh_token,notnull"`
	CreatedAt    time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt    time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

func (r *credentialRecord) toDomain() core.CredentialRecord {
	if r == nil {
		return core.CredentialRecord{}
	}
	return core.CredentialRecord{
		Target:       r.Target,
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
	}
}

type userLoginRecord struct {
	bun.BaseModel `bun:"table:twitch_user_logins,alias:tul"`

	Login     string    `bun:"login,pk"`
	UserID    string    `bun:"user_id,notnull"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}
