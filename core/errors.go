package core

import (
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	TwitchErrorTransportFailure     = "TWITCH_TRANSPORT_FAILURE"
	TwitchErrorAuthenticationFailed = "TWITCH_AUTHENTICATION_FAILED"
	TwitchErrorRefreshFailed        = "TWITCH_REFRESH_FAILED"
	TwitchErrorAPI                  = "TWITCH_API_ERROR"
	TwitchErrorBadInput             = "TWITCH_BAD_INPUT"
	TwitchErrorInternal             = "TWITCH_INTERNAL_ERROR"
)

type ErrorKind string

const (
	ErrorKindNone           ErrorKind = ""
	ErrorKindTransport      ErrorKind = "transport"
	ErrorKindAuthentication ErrorKind = "authentication"
	ErrorKindRefresh        ErrorKind = "refresh"
	ErrorKindAPI            ErrorKind = "api"
)

// LastError is the most recent failure observed by a client instance.
// Code is the HTTP status, or 0 when no status was obtained.
type LastError struct {
	Code    int
	Message string
	Kind    ErrorKind
}

func NewTransportError(err error) *goerrors.Error {
	msg := "twitch: request dispatch failed"
	if err != nil {
		msg = msg + ": " + err.Error()
	}
	return ensureTwitchErrorEnvelope(
		goerrors.New(msg, goerrors.CategoryExternal).
			WithCode(http.StatusBadGateway).
			WithTextCode(TwitchErrorTransportFailure),
	)
}

func NewAuthenticationError(status int, message string) *goerrors.Error {
	return goerrors.New(nonEmpty(message, "twitch: authentication failed"), goerrors.CategoryAuth).
		WithCode(http.StatusUnauthorized).
		WithTextCode(TwitchErrorAuthenticationFailed).
		WithMetadata(map[string]any{"status": status})
}

func NewRefreshError(message string) *goerrors.Error {
	return goerrors.New(nonEmpty(message, "twitch: credential refresh failed"), goerrors.CategoryAuth).
		WithCode(http.StatusUnauthorized).
		WithTextCode(TwitchErrorRefreshFailed)
}

func NewAPIError(status int, message string) *goerrors.Error {
	category := apiErrorCategory(status)
	return goerrors.New(nonEmpty(message, http.StatusText(status)), category).
		WithCode(status).
		WithTextCode(TwitchErrorAPI).
		WithMetadata(map[string]any{"status": status})
}

func NewBadInputError(message string, fields ...goerrors.FieldError) *goerrors.Error {
	if len(fields) > 0 {
		return goerrors.NewValidation(message, fields...).
			WithCode(http.StatusBadRequest).
			WithTextCode(TwitchErrorBadInput)
	}
	return goerrors.New(message, goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(TwitchErrorBadInput)
}

func NewInternalError(err error, message string) *goerrors.Error {
	if err == nil {
		return ensureTwitchErrorEnvelope(goerrors.New(message, goerrors.CategoryInternal))
	}
	return ensureTwitchErrorEnvelope(goerrors.Wrap(err, goerrors.CategoryInternal, message))
}

func KindOf(err error) ErrorKind {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return ErrorKindNone
	}
	switch richErr.TextCode {
	case TwitchErrorTransportFailure:
		return ErrorKindTransport
	case TwitchErrorAuthenticationFailed:
		return ErrorKindAuthentication
	case TwitchErrorRefreshFailed:
		return ErrorKindRefresh
	case TwitchErrorAPI:
		return ErrorKindAPI
	default:
		return ErrorKindNone
	}
}

func IsValidation(err error) bool {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	return richErr.TextCode == TwitchErrorBadInput ||
		richErr.Category == goerrors.CategoryBadInput ||
		richErr.Category == goerrors.CategoryValidation
}

func MapError(err error) *goerrors.Error {
	if err == nil {
		return nil
	}
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return ensureTwitchErrorEnvelope(richErr)
	}
	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	if strings.Contains(msg, "required") || strings.Contains(msg, "invalid") {
		return NewBadInputError(err.Error())
	}
	return ensureTwitchErrorEnvelope(goerrors.MapToError(err, goerrors.DefaultErrorMappers()))
}

func ensureTwitchErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = twitchHTTPStatus(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultTwitchTextCode(err.Category)
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = "An unexpected error occurred"
	}
	return err
}

func apiErrorCategory(status int) goerrors.Category {
	switch {
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return goerrors.CategoryBadInput
	case status == http.StatusUnauthorized:
		return goerrors.CategoryAuth
	case status == http.StatusForbidden:
		return goerrors.CategoryAuthz
	case status == http.StatusNotFound:
		return goerrors.CategoryNotFound
	case status == http.StatusConflict:
		return goerrors.CategoryConflict
	case status == http.StatusTooManyRequests:
		return goerrors.CategoryRateLimit
	default:
		return goerrors.CategoryExternal
	}
}

func defaultTwitchTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return TwitchErrorBadInput
	case goerrors.CategoryAuth:
		return TwitchErrorAuthenticationFailed
	case goerrors.CategoryExternal:
		return TwitchErrorAPI
	default:
		return TwitchErrorInternal
	}
}

func twitchHTTPStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryAuth:
		return http.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return http.StatusForbidden
	case goerrors.CategoryConflict:
		return http.StatusConflict
	case goerrors.CategoryRateLimit:
		return http.StatusTooManyRequests
	case goerrors.CategoryExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func nonEmpty(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
