package hypernode

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Hypernode-sol/hypernode-sdk-go/errors"
	"github.com/Hypernode-sol/hypernode-sdk-go/helpers"
	"github.com/Hypernode-sol/hypernode-sdk-go/logger"
	"github.com/Hypernode-sol/hypernode-sdk-go/retry"
)

// maxResponseBytes bounds how much of a response body is read. Image
// endpoints return multi-megabyte base64 payloads.
const maxResponseBytes = 32 << 20

// call describes one API call. route is the stable label used for logging
// and metrics, path the concrete request path. A path beginning with http
// is used verbatim, which is how inference calls reach deployment endpoints
// outside the API base URL.
type call struct {
	method string
	route  string
	path   string
	in     any
	out    any
}

// do executes a call with retries. The request body is marshalled once and
// replayed on every attempt, and POST requests carry an Idempotency-Key
// that stays fixed across attempts so the server can deduplicate them.
func (c *Client) do(ctx context.Context, cl call) error {
	ctx = logger.EnsureRequestID(ctx)

	var payload []byte
	if cl.in != nil {
		var err error
		payload, err = json.Marshal(cl.in)
		if err != nil {
			return errors.NewValidation("failed to encode request body: " + err.Error())
		}
	}

	idempotencyKey := ""
	if cl.method == http.MethodPost {
		idempotencyKey = helpers.IdempotencyKey()
	}

	fullURL := cl.path
	if !strings.HasPrefix(fullURL, "http://") && !strings.HasPrefix(fullURL, "https://") {
		fullURL = c.apiURL + fullURL
	}

	if c.metrics != nil {
		c.metrics.RequestStarted()
		defer c.metrics.RequestFinished()
	}

	start := time.Now()
	attempt := 0
	lastStatus := 0

	err := retry.DoContext(ctx, c.policy, func(ctx context.Context) error {
		attempt++
		if attempt > 1 {
			if c.metrics != nil {
				c.metrics.ObserveRetry(cl.route)
			}
			c.logger.Ctx(ctx).Debug("retrying request",
				"method", cl.method, "route", cl.route, "attempt", attempt)
		}
		return c.roundTrip(ctx, cl.method, fullURL, payload, idempotencyKey, cl.out, &lastStatus)
	})

	duration := time.Since(start)
	c.logger.LogRequest(ctx, cl.method, cl.route, lastStatus, duration)
	if c.metrics != nil {
		c.metrics.ObserveRequest(cl.method, cl.route, lastStatus, duration)
	}
	return err
}

// roundTrip performs a single HTTP exchange and maps the outcome onto the
// SDK error taxonomy. lastStatus is updated whenever a response arrives,
// transport failures leave it untouched.
func (c *Client) roundTrip(ctx context.Context, method, fullURL string, payload []byte, idempotencyKey string, out any, lastStatus *int) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return errors.NewValidationField("url", err.Error())
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	if requestID := logger.GetRequestID(ctx); requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.FromTransport(err)
	}
	defer resp.Body.Close()

	*lastStatus = resp.StatusCode

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return errors.FromTransport(err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errors.FromResponse(resp.StatusCode, raw, resp.Header)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errors.NewAPI(resp.StatusCode, "failed to decode response body: "+err.Error())
	}
	return nil
}
