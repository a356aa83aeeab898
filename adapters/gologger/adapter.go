package gologger

import (
	glog "github.com/goliatone/go-logger/glog"
)

// Resolve uses deterministic precedence provider > logger > nop.
func Resolve(name string, provider glog.LoggerProvider, logger glog.Logger) (glog.LoggerProvider, glog.Logger) {
	return glog.Resolve(name, provider, logger)
}

// ResolveQuiet is Resolve with a nop fallback instead of the go-logger
// default when neither a provider nor a logger is given.
func ResolveQuiet(name string, provider glog.LoggerProvider, logger glog.Logger) (glog.LoggerProvider, glog.Logger) {
	if provider == nil && logger == nil {
		nop := glog.Nop()
		return glog.ProviderFromLogger(nop), nop
	}
	return Resolve(name, provider, logger)
}

func Named(provider glog.LoggerProvider, name string, logger glog.Logger) glog.Logger {
	if provider != nil {
		if named := provider.GetLogger(name); named != nil {
			return glog.Ensure(named)
		}
	}
	return glog.Ensure(logger)
}
