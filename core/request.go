package core

import (
	"encoding/json"
	"strings"
)

// Params holds request parameters. Values are scalars or slices of scalars.
type Params map[string]any

func (p Params) Clone() Params {
	if len(p) == 0 {
		return Params{}
	}
	out := make(Params, len(p))
	for key, value := range p {
		out[key] = value
	}
	return out
}

// Set stores value unless it is empty, so optional filters can be chained.
func (p Params) Set(key string, value any) Params {
	if isEmptyParam(value) {
		return p
	}
	p[key] = value
	return p
}

type Request struct {
	Method string
	URL    string
	Params Params
	// Body, when set, is sent as JSON and Params go to the query string.
	Body            any
	Target          string
	SkipAuthRefresh bool
}

type Reply struct {
	Status int
	Body   json.RawMessage
}

func (r Reply) Empty() bool {
	trimmed := strings.TrimSpace(string(r.Body))
	return trimmed == "" || trimmed == "null"
}

func (r Reply) Decode(v any) error {
	if r.Empty() {
		return nil
	}
	return json.Unmarshal(r.Body, v)
}

type CredentialRecord struct {
	Target       string
	AccessToken  string
	RefreshToken string
}

type ClientIdentity struct {
	ClientID     string
	ClientSecret string
}

type TokenPair struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	ExpiresIn    int      `json:"expires_in"`
	Scope        []string `json:"scope"`
	TokenType    string   `json:"token_type"`
}

func isEmptyParam(value any) bool {
	switch typed := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(typed) == ""
	case []string:
		return len(typed) == 0
	case []any:
		return len(typed) == 0
	default:
		return false
	}
}
