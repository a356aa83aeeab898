package client

import (
	"context"
	"strconv"
	"time"

	"github.com/goliatone/go-twitch/core"
)

func (c *Client) traceRequest(ctx context.Context, method, callURL string, req core.Request, target string, headers map[string]string) {
	fields := map[string]any{
		"family":            c.family.Name,
		"method":            method,
		"url":               callURL,
		"params":            core.RedactSensitiveMap(map[string]any(req.Params)),
		"target":            target,
		"skip_auth_refresh": req.SkipAuthRefresh,
		"headers":           core.RedactHeaders(headers),
	}
	if req.Body != nil {
		fields["body"] = req.Body
	}
	core.LogWithLevel(ctx, c.logger, "debug", "twitch http query", fields)
}

func (c *Client) traceResponse(ctx context.Context, res core.TransportResponse) {
	body := string(res.Body)
	if c.family.Name == core.FamilyAuth {
		body = core.RedactedValue
	}
	core.LogWithLevel(ctx, c.logger, "debug", "twitch http response", map[string]any{
		"family":      c.family.Name,
		"status_code": res.StatusCode,
		"content":     body,
	})
}

func (c *Client) observeQuery(ctx context.Context, startedAt time.Time, req core.Request, reply core.Reply, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	tags := map[string]string{
		"family": c.family.Name,
		"method": req.Method,
		"status": status,
	}
	if reply.Status > 0 {
		tags["status_code"] = strconv.Itoa(reply.Status)
	}
	if kind := core.KindOf(err); kind != core.ErrorKindNone {
		tags["error_kind"] = string(kind)
	}
	c.metricsRecorder.IncCounter(ctx, core.MetricQueryTotal, 1, core.CloneTags(tags))
	c.metricsRecorder.ObserveHistogram(ctx, core.MetricQueryDurationMS, float64(time.Since(startedAt).Milliseconds()), core.CloneTags(tags))
}
