package hypernode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hypernode-sol/hypernode-sdk-go/errors"
	"github.com/Hypernode-sol/hypernode-sdk-go/logger"
	"github.com/Hypernode-sol/hypernode-sdk-go/metric"
	"github.com/Hypernode-sol/hypernode-sdk-go/retry"
)

// fastPolicy keeps retry tests quick without stubbing the clock.
var fastPolicy = retry.Policy{
	MaxRetries:      3,
	BaseDelay:       time.Millisecond,
	MaxDelay:        5 * time.Millisecond,
	ExponentialBase: 2.0,
}

func newTestClient(t *testing.T, baseURL string, opts ...Option) *Client {
	t.Helper()
	base := []Option{WithAPIURL(baseURL), WithRetryPolicy(fastPolicy)}
	c, err := New(append(base, opts...)...)
	require.NoError(t, err)
	return c
}

func TestDo_SendsHeaders(t *testing.T) {
	var mu sync.Mutex
	var headers []http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		headers = append(headers, r.Header.Clone())
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, WithAPIKey("test-key"))

	var out map[string]any
	err := c.do(context.Background(), call{
		method: http.MethodPost,
		route:  "/v1/things",
		path:   "/v1/things",
		in:     map[string]string{"name": "x"},
		out:    &out,
	})
	require.NoError(t, err)

	require.Len(t, headers, 1)
	h := headers[0]
	assert.Equal(t, "Bearer test-key", h.Get("Authorization"))
	assert.Equal(t, "hypernode-sdk-go/"+Version, h.Get("User-Agent"))
	assert.Equal(t, "application/json", h.Get("Accept"))
	assert.Equal(t, "application/json", h.Get("Content-Type"))
	assert.NotEmpty(t, h.Get("X-Request-ID"))
	assert.True(t, strings.HasPrefix(h.Get("Idempotency-Key"), "hnode-"),
		"POST requests carry an idempotency key")
}

func TestDo_GetHasNoIdempotencyKey(t *testing.T) {
	var mu sync.Mutex
	var keys []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		keys = append(keys, r.Header.Get("Idempotency-Key"))
		mu.Unlock()
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	err := c.do(context.Background(), call{method: http.MethodGet, route: "/v1/things", path: "/v1/things"})
	require.NoError(t, err)

	require.Len(t, keys, 1)
	assert.Empty(t, keys[0])
}

func TestDo_RetriesServerErrorsWithStableIdempotencyKey(t *testing.T) {
	var mu sync.Mutex
	attempts := 0
	var keys []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		attempts++
		n := attempts
		keys = append(keys, r.Header.Get("Idempotency-Key"))
		mu.Unlock()

		if n <= 2 {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"detail":"transient"}`))
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	var out map[string]any
	err := c.do(context.Background(), call{
		method: http.MethodPost,
		route:  "/v1/things",
		path:   "/v1/things",
		in:     map[string]string{"name": "x"},
		out:    &out,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)

	require.Len(t, keys, 3)
	assert.Equal(t, keys[0], keys[1])
	assert.Equal(t, keys[1], keys[2], "idempotency key must not change between attempts")
}

func TestDo_DoesNotRetryValidationErrors(t *testing.T) {
	var mu sync.Mutex
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		attempts++
		mu.Unlock()
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"bad input"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	err := c.do(context.Background(), call{method: http.MethodGet, route: "/v1/things", path: "/v1/things"})

	var verr *errors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "bad input", verr.Message)
	assert.Equal(t, 1, attempts)
}

func TestDo_DoesNotRetryAuthenticationErrors(t *testing.T) {
	var mu sync.Mutex
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		attempts++
		mu.Unlock()
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"bad key"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	err := c.do(context.Background(), call{method: http.MethodGet, route: "/v1/things", path: "/v1/things"})

	var aerr *errors.AuthenticationError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, 1, attempts)
}

func TestDo_ExhaustsRetries(t *testing.T) {
	var mu sync.Mutex
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		attempts++
		mu.Unlock()
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"detail":"still down"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	err := c.do(context.Background(), call{method: http.MethodGet, route: "/v1/things", path: "/v1/things"})

	var aerr *errors.APIError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, http.StatusServiceUnavailable, aerr.StatusCode)
	assert.Equal(t, fastPolicy.MaxRetries, attempts)
}

func TestDo_PropagatesRequestIDFromContext(t *testing.T) {
	var mu sync.Mutex
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		got = r.Header.Get("X-Request-ID")
		mu.Unlock()
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	ctx := logger.SetRequestID(context.Background(), "req-fixed-42")
	err := c.do(ctx, call{method: http.MethodGet, route: "/v1/things", path: "/v1/things"})
	require.NoError(t, err)
	assert.Equal(t, "req-fixed-42", got)
}

func TestDo_RecordsMetrics(t *testing.T) {
	var mu sync.Mutex
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		attempts++
		n := attempts
		mu.Unlock()
		if n == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"detail":"transient"}`))
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	collector, err := metric.NewCollector()
	require.NoError(t, err)

	c := newTestClient(t, srv.URL, WithMetrics(collector))
	err = c.do(context.Background(), call{method: http.MethodGet, route: "/v1/things", path: "/v1/things"})
	require.NoError(t, err)

	assert.Equal(t, 1.0, sumCounter(t, collector, "hypernode_sdk_requests_total"))
	assert.Equal(t, 1.0, sumCounter(t, collector, "hypernode_sdk_retries_total"))
	assert.Equal(t, 0.0, gaugeValue(t, collector, "hypernode_sdk_inflight_requests"))
}

func sumCounter(t *testing.T, collector *metric.Collector, name string) float64 {
	t.Helper()
	mfs, err := collector.Registry().Gather()
	require.NoError(t, err)
	total := 0.0
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			total += m.GetCounter().GetValue()
		}
	}
	return total
}

func gaugeValue(t *testing.T, collector *metric.Collector, name string) float64 {
	t.Helper()
	mfs, err := collector.Registry().Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() == name {
			metrics := mf.GetMetric()
			require.NotEmpty(t, metrics)
			return metrics[0].GetGauge().GetValue()
		}
	}
	t.Fatalf("metric %s not found", name)
	return 0
}
