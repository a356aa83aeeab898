package core

import (
	"net/http"
	"strings"
)

type AuthHeaderStyle string

const (
	AuthHeaderNone   AuthHeaderStyle = ""
	AuthHeaderBearer AuthHeaderStyle = "Bearer"
	AuthHeaderOAuth  AuthHeaderStyle = "OAuth"
)

const (
	FamilyHelix  = "helix"
	FamilyKraken = "kraken"
	FamilyAuth   = "auth"

	KrakenAcceptHeader = "application/vnd.twitchtv.v5+json"
)

// Family is the per-API configuration the query pipeline is parameterized
// with.
type Family struct {
	Name                 string
	BaseURL              string
	BaseHeaders          map[string]string
	AuthHeaderStyle      AuthHeaderStyle
	AuthErrorStatusCodes []int
	Formatter            Formatter
}

func HelixFamily(clientID string) Family {
	return Family{
		Name:                 FamilyHelix,
		BaseURL:              DefaultHelixBaseURL,
		BaseHeaders:          map[string]string{"Client-ID": clientID},
		AuthHeaderStyle:      AuthHeaderBearer,
		AuthErrorStatusCodes: []int{http.StatusBadRequest, http.StatusUnauthorized},
		Formatter:            RepeatFormatter,
	}
}

func KrakenFamily(clientID string) Family {
	return Family{
		Name:    FamilyKraken,
		BaseURL: DefaultKrakenBaseURL,
		BaseHeaders: map[string]string{
			"Accept":    KrakenAcceptHeader,
			"Client-ID": clientID,
		},
		AuthHeaderStyle:      AuthHeaderOAuth,
		AuthErrorStatusCodes: []int{http.StatusUnauthorized},
		Formatter:            JoinFormatter,
	}
}

func AuthFamily() Family {
	return Family{
		Name:                 FamilyAuth,
		BaseURL:              DefaultAuthBaseURL,
		BaseHeaders:          map[string]string{},
		AuthHeaderStyle:      AuthHeaderNone,
		AuthErrorStatusCodes: []int{http.StatusUnauthorized},
		Formatter:            JoinFormatter,
	}
}

func (f Family) WithBaseURL(baseURL string) Family {
	if strings.TrimSpace(baseURL) != "" {
		f.BaseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	}
	return f
}

func (f Family) IsAuthError(status int) bool {
	for _, code := range f.AuthErrorStatusCodes {
		if code == status {
			return true
		}
	}
	return false
}

func (f Family) AuthorizationHeader(token string) (string, bool) {
	if f.AuthHeaderStyle == AuthHeaderNone || strings.TrimSpace(token) == "" {
		return "", false
	}
	return string(f.AuthHeaderStyle) + " " + token, true
}

func (f Family) Format(params Params) string {
	if f.Formatter == nil {
		return JoinFormatter(params)
	}
	return f.Formatter(params)
}

// ResolveURL prefixes relative paths with the base URL and trims the
// trailing slash.
func (f Family) ResolveURL(path string) string {
	path = strings.TrimSpace(path)
	base := strings.TrimRight(f.BaseURL, "/")
	switch {
	case strings.HasPrefix(path, "http://"), strings.HasPrefix(path, "https://"):
	case base == "":
	case path == "":
		path = base
	default:
		path = base + "/" + strings.TrimLeft(path, "/")
	}
	return strings.TrimRight(path, "/")
}
