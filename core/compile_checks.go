package core

import glog "github.com/goliatone/go-logger/glog"

var (
	_ CredentialStore   = (*MemoryCredentialStore)(nil)
	_ DefaultTokenStore = (*MemoryCredentialStore)(nil)
	_ TokenPairStore    = (*MemoryCredentialStore)(nil)
	_ LoginCache        = (*MemoryLoginCache)(nil)
	_ Registry          = (*ServiceRegistry)(nil)

	_ Logger         = glog.Nop()
	_ LoggerProvider = glog.ProviderFromLogger(glog.Nop())
)
