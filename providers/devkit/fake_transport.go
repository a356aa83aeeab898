package devkit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/goliatone/go-twitch/core"
)

type TransportScript struct {
	Response core.TransportResponse
	Err      error
}

func JSON(status int, payload any) TransportScript {
	body, err := json.Marshal(payload)
	if err != nil {
		return TransportScript{Err: err}
	}
	return TransportScript{Response: core.TransportResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       body,
	}}
}

func Status(status int) TransportScript {
	return TransportScript{Response: core.TransportResponse{StatusCode: status}}
}

// FakeTransport replays scripts in order and records every request. The last
// script repeats once the list is exhausted.
type FakeTransport struct {
	mu       sync.Mutex
	scripts  []TransportScript
	requests []core.TransportRequest
}

func NewFakeTransport(scripts ...TransportScript) *FakeTransport {
	return &FakeTransport{scripts: append([]TransportScript(nil), scripts...)}
}

func (a *FakeTransport) Push(scripts ...TransportScript) {
	a.mu.Lock()
	a.scripts = append(a.scripts, scripts...)
	a.mu.Unlock()
}

func (a *FakeTransport) Do(_ context.Context, req core.TransportRequest) (core.TransportResponse, error) {
	if a == nil {
		return core.TransportResponse{}, fmt.Errorf("devkit: fake transport is nil")
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	a.requests = append(a.requests, cloneTransportRequest(req))
	index := len(a.requests) - 1
	if index < len(a.scripts) {
		script := a.scripts[index]
		return cloneTransportResponse(script.Response), script.Err
	}
	if len(a.scripts) > 0 {
		last := a.scripts[len(a.scripts)-1]
		return cloneTransportResponse(last.Response), last.Err
	}
	return core.TransportResponse{
		StatusCode: 200,
		Headers:    map[string]string{},
		Body:       []byte(`{}`),
	}, nil
}

func (a *FakeTransport) Requests() []core.TransportRequest {
	if a == nil {
		return nil
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]core.TransportRequest, 0, len(a.requests))
	for _, item := range a.requests {
		out = append(out, cloneTransportRequest(item))
	}
	return out
}

func (a *FakeTransport) Last() core.TransportRequest {
	requests := a.Requests()
	if len(requests) == 0 {
		return core.TransportRequest{}
	}
	return requests[len(requests)-1]
}

func Path(req core.TransportRequest) string {
	parsed, err := url.Parse(req.URL)
	if err != nil {
		return ""
	}
	return parsed.Path
}

func RawQuery(req core.TransportRequest) string {
	_, query, _ := strings.Cut(req.URL, "?")
	return query
}

func DecodeBody(req core.TransportRequest) map[string]any {
	out := map[string]any{}
	if len(req.Body) > 0 {
		_ = json.Unmarshal(req.Body, &out)
	}
	return out
}

func cloneTransportRequest(in core.TransportRequest) core.TransportRequest {
	out := core.TransportRequest{
		Method:  in.Method,
		URL:     in.URL,
		Headers: map[string]string{},
		Body:    append([]byte(nil), in.Body...),
		Timeout: in.Timeout,
	}
	for key, value := range in.Headers {
		out.Headers[key] = value
	}
	return out
}

func cloneTransportResponse(in core.TransportResponse) core.TransportResponse {
	out := core.TransportResponse{
		StatusCode: in.StatusCode,
		Headers:    map[string]string{},
		Body:       append([]byte(nil), in.Body...),
		Metadata:   map[string]any{},
	}
	for key, value := range in.Headers {
		out.Headers[key] = value
	}
	for key, value := range in.Metadata {
		out.Metadata[key] = value
	}
	return out
}

var _ core.Transport = (*FakeTransport)(nil)
