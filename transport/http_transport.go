package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-twitch/core"
)

const (
	defaultTimeout      = 30 * time.Second
	defaultMaxBodyBytes = int64(10 << 20)
	metadataCached      = "cached"
	metadataDurationMS  = "duration_ms"
)

type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPTransport is the pipeline's core.Transport over net/http. Any status
// is returned as a response; only dispatch and read failures are errors.
type HTTPTransport struct {
	doer         HTTPDoer
	maxBodyBytes int64
}

func NewHTTPTransport(doer HTTPDoer, maxBodyBytes int64) *HTTPTransport {
	if doer == nil {
		doer = &http.Client{Timeout: defaultTimeout}
	}
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodyBytes
	}
	return &HTTPTransport{doer: doer, maxBodyBytes: maxBodyBytes}
}

// Do sends the URL as built by the formatter. It is not re-encoded, so comma
// joined Kraken lists keep their literal commas.
func (t *HTTPTransport) Do(ctx context.Context, req core.TransportRequest) (core.TransportResponse, error) {
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return core.TransportResponse{}, dispatchFailure(err, "transport: build request", map[string]any{"url": req.URL})
	}
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	startedAt := time.Now()
	httpRes, err := t.doer.Do(httpReq)
	if err != nil {
		return core.TransportResponse{}, dispatchFailure(err, "transport: send request",
			map[string]any{"method": req.Method, "url": req.URL})
	}
	defer httpRes.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(httpRes.Body, t.maxBodyBytes+1))
	if err != nil {
		return core.TransportResponse{}, dispatchFailure(err, "transport: read response",
			map[string]any{"status_code": httpRes.StatusCode})
	}
	if int64(len(payload)) > t.maxBodyBytes {
		return core.TransportResponse{}, dispatchFailure(nil,
			fmt.Sprintf("transport: response exceeds %d bytes", t.maxBodyBytes),
			map[string]any{"status_code": httpRes.StatusCode})
	}

	headers := make(map[string]string, len(httpRes.Header))
	for key, values := range httpRes.Header {
		headers[key] = strings.Join(values, ",")
	}
	return core.TransportResponse{
		StatusCode: httpRes.StatusCode,
		Headers:    headers,
		Body:       payload,
		Metadata: map[string]any{
			metadataDurationMS: time.Since(startedAt).Milliseconds(),
			metadataCached:     httpRes.Header.Get(cacheHitHeader) == "1",
		},
	}, nil
}
