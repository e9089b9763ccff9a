package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const maxBodyMessage = 256

// FromResponse maps a non-2xx HTTP response to exactly one taxonomy error.
// The body is inspected for a server-provided message ({"detail": ...},
// {"error": ...} or {"message": ...}); the raw body and the standard status
// text are fallbacks.
func FromResponse(statusCode int, body []byte, header http.Header) error {
	msg := messageFromBody(body)
	if msg == "" {
		msg = http.StatusText(statusCode)
	}
	switch statusCode {
	case http.StatusBadRequest:
		return &ValidationError{Message: msg}
	case http.StatusUnauthorized, http.StatusForbidden:
		return &AuthenticationError{Message: msg, StatusCode: statusCode}
	case http.StatusNotFound:
		return &NotFoundError{Message: msg}
	case http.StatusRequestTimeout:
		return &TimeoutError{Message: msg}
	case http.StatusTooManyRequests:
		return &RateLimitError{Message: msg, RetryAfter: retryAfterDelay(header, time.Now())}
	default:
		return &APIError{
			StatusCode: statusCode,
			Message:    msg,
			RequestID:  header.Get("X-Request-Id"),
		}
	}
}

// FromTransport maps a failure of the HTTP round trip itself. Context
// cancellation passes through unchanged so callers observe ctx.Err();
// deadline and network timeouts become TimeoutError, everything else
// ConnectionError.
func FromTransport(err error) error {
	if err == nil {
		return nil
	}
	if stderrors.Is(err, context.Canceled) {
		return err
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Message: "request deadline exceeded", Err: err}
	}
	var netErr net.Error
	if stderrors.As(err, &netErr) && netErr.Timeout() {
		return &TimeoutError{Message: "request timed out", Err: err}
	}
	return &ConnectionError{Message: "request failed", Err: err}
}

// messageFromBody extracts a human-readable message from a JSON error body.
// Returns "" when nothing usable is found.
func messageFromBody(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, key := range []string{"detail", "error", "message"} {
			switch v := payload[key].(type) {
			case string:
				if v != "" {
					return v
				}
			case map[string]any:
				if m, ok := v["message"].(string); ok && m != "" {
					return m
				}
			}
		}
	}
	return truncateMessage(trimmed, maxBodyMessage)
}

// retryAfterDelay parses a Retry-After header, either delta-seconds or an
// HTTP-date. Absent, malformed, or already-elapsed values yield zero.
func retryAfterDelay(header http.Header, now time.Time) time.Duration {
	raw := strings.TrimSpace(header.Get("Retry-After"))
	if raw == "" {
		return 0
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		if secs <= 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(raw); err == nil {
		if d := at.Sub(now); d > 0 {
			return d
		}
	}
	return 0
}

// truncateMessage shortens s to at most n bytes without splitting a
// multi-byte rune, so server-provided messages stay valid UTF-8.
func truncateMessage(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
