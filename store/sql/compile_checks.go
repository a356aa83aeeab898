package sqlstore

import "github.com/goliatone/go-twitch/core"

var (
	_ core.CredentialStore   = (*CredentialStore)(nil)
	_ core.DefaultTokenStore = (*CredentialStore)(nil)
	_ core.TokenPairStore    = (*CredentialStore)(nil)
	_ core.LoginCache        = (*LoginStore)(nil)
)
