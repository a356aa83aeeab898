package transport

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-twitch/core"
)

func TestHTTPTransport_SendsHeadersAndBody(t *testing.T) {
	var gotQuery, gotAuth, gotBody, gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	res, err := NewHTTPTransport(server.Client(), 0).Do(context.Background(), core.TransportRequest{
		Method:  http.MethodPut,
		URL:     server.URL + "/channels?login=a,b",
		Headers: map[string]string{"Authorization": "OAuth tok"},
		Body:    []byte(`{"title":"x"}`),
	})
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if res.StatusCode != http.StatusOK || string(res.Body) != `{"ok":true}` {
		t.Fatalf("unexpected response %#v", res)
	}
	if res.Headers["Content-Type"] != "application/json" {
		t.Fatalf("expected flattened response headers, got %#v", res.Headers)
	}
	if gotMethod != http.MethodPut || gotAuth != "OAuth tok" || gotBody != `{"title":"x"}` {
		t.Fatalf("unexpected request method=%q auth=%q body=%q", gotMethod, gotAuth, gotBody)
	}
	if gotQuery != "login=a,b" {
		t.Fatalf("expected raw query to be preserved, got %q", gotQuery)
	}
}

func TestHTTPTransport_ErrorStatusIsAResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"invalid token"}`))
	}))
	defer server.Close()

	res, err := NewHTTPTransport(server.Client(), 0).Do(context.Background(), core.TransportRequest{URL: server.URL})
	if err != nil {
		t.Fatalf("expected status to be returned as a response, got %v", err)
	}
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.StatusCode)
	}
}

func TestHTTPTransport_ResponseLimitReturnsRichError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("12345"))
	}))
	defer server.Close()

	_, err := NewHTTPTransport(server.Client(), 4).Do(context.Background(), core.TransportRequest{URL: server.URL})
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryExternal || rich.Code != http.StatusBadGateway {
		t.Fatalf("unexpected envelope category=%q code=%d", rich.Category, rich.Code)
	}
	if rich.TextCode != core.TwitchErrorTransportFailure {
		t.Fatalf("expected %q text code, got %q", core.TwitchErrorTransportFailure, rich.TextCode)
	}
}

type failingDoer struct{}

func (failingDoer) Do(*http.Request) (*http.Response, error) {
	return nil, errors.New("connection refused")
}

func TestHTTPTransport_DispatchFailure(t *testing.T) {
	_, err := NewHTTPTransport(failingDoer{}, 0).Do(context.Background(), core.TransportRequest{URL: "http://127.0.0.1:1/x"})
	if core.KindOf(err) != core.ErrorKindTransport {
		t.Fatalf("expected transport failure, got %v", err)
	}
}

func TestHTTPTransport_InvalidURLIsTransportFailure(t *testing.T) {
	_, err := NewHTTPTransport(failingDoer{}, 0).Do(context.Background(), core.TransportRequest{URL: "http://[::1"})
	if core.KindOf(err) != core.ErrorKindTransport {
		t.Fatalf("expected transport failure for malformed url, got %v", err)
	}
}

func TestCachingHTTPClient_RevalidatesWithETag(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if r.Header.Get("If-None-Match") == `"v1"` {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", `"v1"`)
		w.Header().Set("Cache-Control", "no-cache")
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	httpTransport := NewHTTPTransport(NewCachingHTTPClient(0), 0)
	var cached []bool
	for i := 0; i < 2; i++ {
		res, err := httpTransport.Do(context.Background(), core.TransportRequest{URL: server.URL + "/tags/streams"})
		if err != nil {
			t.Fatalf("do %d: %v", i, err)
		}
		if res.StatusCode != http.StatusOK || string(res.Body) != `{"data":[]}` {
			t.Fatalf("unexpected response %d: %#v", i, res)
		}
		cached = append(cached, res.Metadata[metadataCached] == true)
	}
	if hits != 2 {
		t.Fatalf("expected a revalidation request, got %d hits", hits)
	}
	if cached[0] || !cached[1] {
		t.Fatalf("expected only the revalidated response to be marked cached, got %v", cached)
	}
}
