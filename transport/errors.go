package transport

import (
	"net/http"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-twitch/core"
)

func dispatchFailure(source error, message string, metadata map[string]any) error {
	var err *goerrors.Error
	if source == nil {
		err = goerrors.New(message, goerrors.CategoryExternal)
	} else {
		err = goerrors.Wrap(source, goerrors.CategoryExternal, message)
	}
	return err.
		WithCode(http.StatusBadGateway).
		WithTextCode(core.TwitchErrorTransportFailure).
		WithMetadata(metadata)
}
