package client

import (
	"encoding/json"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-twitch/core"
)

const maxErrorBodyChars = 256

func asTransportFailure(err error) *goerrors.Error {
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) && richErr.TextCode == core.TwitchErrorTransportFailure {
		return richErr
	}
	return core.NewTransportError(err)
}

func asRefreshFailure(err error) *goerrors.Error {
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) && richErr.TextCode == core.TwitchErrorRefreshFailed {
		return richErr
	}
	message := "twitch: credential refresh failed"
	if goerrors.As(err, &richErr) {
		message += ": " + richErr.Message
	} else if err != nil {
		message += ": " + err.Error()
	}
	failure := core.NewRefreshError(message)
	failure.Source = err
	return failure
}

type errorReply struct {
	Message          string `json:"message"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func replyErrorMessage(body []byte, status int) string {
	var decoded errorReply
	if err := json.Unmarshal(body, &decoded); err == nil {
		for _, candidate := range []string{decoded.Message, decoded.ErrorDescription, decoded.Error} {
			if strings.TrimSpace(candidate) != "" {
				return strings.TrimSpace(candidate)
			}
		}
	}
	raw := strings.TrimSpace(string(body))
	if raw == "" || strings.HasPrefix(raw, "{") {
		return http.StatusText(status)
	}
	if len(raw) > maxErrorBodyChars {
		raw = raw[:maxErrorBodyChars]
	}
	return raw
}
