package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/goliatone/go-twitch/core"
)

type stubLogger struct{}

func (stubLogger) Trace(string, ...any) {}
func (stubLogger) Debug(string, ...any) {}
func (stubLogger) Info(string, ...any)  {}
func (stubLogger) Warn(string, ...any)  {}
func (stubLogger) Error(string, ...any) {}
func (stubLogger) Fatal(string, ...any) {}
func (s stubLogger) WithContext(context.Context) core.Logger {
	return s
}

type recordingLogger struct {
	stubLogger
	mu       *sync.Mutex
	messages *[]string
}

func newRecordingLogger() recordingLogger {
	return recordingLogger{mu: &sync.Mutex{}, messages: &[]string{}}
}

func (l recordingLogger) Debug(msg string, _ ...any) {
	l.mu.Lock()
	*l.messages = append(*l.messages, msg)
	l.mu.Unlock()
}

func (l recordingLogger) WithContext(context.Context) core.Logger {
	return l
}

type countingMetrics struct {
	mu       sync.Mutex
	counters map[string]int64
}

func (m *countingMetrics) IncCounter(_ context.Context, name string, value int64, _ map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counters == nil {
		m.counters = map[string]int64{}
	}
	m.counters[name] += value
}

func (m *countingMetrics) ObserveHistogram(context.Context, string, float64, map[string]string) {}

type failingTransport struct {
	calls int
}

func (t *failingTransport) Do(context.Context, core.TransportRequest) (core.TransportResponse, error) {
	t.calls++
	return core.TransportResponse{}, errors.New("dial tcp: connection refused")
}

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   map[string]any
}

// fakeTwitch serves the API under /api and the token endpoint under /oauth2.
type fakeTwitch struct {
	t      *testing.T
	server *httptest.Server

	mu        sync.Mutex
	requests  []recordedRequest
	tokenHits []map[string]any

	apiHandler   func(w http.ResponseWriter, r recordedRequest)
	tokenHandler func(w http.ResponseWriter, body map[string]any)
}

func newFakeTwitch(t *testing.T) *fakeTwitch {
	t.Helper()
	fake := &fakeTwitch{t: t}
	fake.apiHandler = func(w http.ResponseWriter, _ recordedRequest) {
		writeJSON(w, http.StatusOK, map[string]any{"data": []any{}})
	}
	fake.tokenHandler = func(w http.ResponseWriter, _ map[string]any) {
		writeJSON(w, http.StatusOK, map[string]any{"access_token": "new-access", "refresh_token": "new-refresh"})
	}
	fake.server = httptest.NewServer(http.HandlerFunc(fake.serve))
	t.Cleanup(fake.server.Close)
	return fake
}

func (f *fakeTwitch) serve(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	body := map[string]any{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &body)
	}
	if strings.HasPrefix(r.URL.Path, "/oauth2/") {
		f.mu.Lock()
		f.tokenHits = append(f.tokenHits, body)
		handler := f.tokenHandler
		f.mu.Unlock()
		handler(w, body)
		return
	}
	rec := recordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
		Header: r.Header.Clone(),
		Body:   body,
	}
	f.mu.Lock()
	f.requests = append(f.requests, rec)
	handler := f.apiHandler
	f.mu.Unlock()
	handler(w, rec)
}

func (f *fakeTwitch) apiRequests() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedRequest(nil), f.requests...)
}

func (f *fakeTwitch) tokenRequests() []map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]map[string]any(nil), f.tokenHits...)
}

func (f *fakeTwitch) options(extra ...Option) []Option {
	return append([]Option{
		WithBaseURL(f.server.URL + "/api"),
		WithAuthBaseURL(f.server.URL + "/oauth2"),
		WithHTTPClient(f.server.Client()),
	}, extra...)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func newStore(records ...core.CredentialRecord) *core.MemoryCredentialStore {
	return core.NewMemoryCredentialStore(core.ClientIdentity{ClientID: "cid", ClientSecret: "secret"}, records...)
}
