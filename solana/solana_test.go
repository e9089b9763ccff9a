package solana

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hypernode-sol/hypernode-sdk-go/errors"
	"github.com/Hypernode-sol/hypernode-sdk-go/retry"
)

var quickRetries = retry.Policy{
	MaxRetries:      3,
	BaseDelay:       time.Millisecond,
	MaxDelay:        5 * time.Millisecond,
	ExponentialBase: 2.0,
}

// fakeNode is a minimal JSON-RPC endpoint covering the methods the client
// implements.
func fakeNode(t *testing.T) (*httptest.Server, *[]rpcRequest) {
	t.Helper()
	var mu sync.Mutex
	var seen []rpcRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		mu.Lock()
		seen = append(seen, req)
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		switch req.Method {
		case "getHealth":
			w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":"ok"}`))
		case "getVersion":
			w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":{"solana-core":"1.18.22","feature-set":4215500110}}`))
		case "getBalance":
			w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":{"context":{"slot":1114},"value":2500000000}}`))
		case "getLatestBlockhash":
			w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":{"context":{"slot":1114},"value":{"blockhash":"EkSnNWid2cvwEVnVx9aBqawnmiCNiDgp3gUdkDPTKN1N","lastValidBlockHeight":3090}}}`))
		default:
			w.Write([]byte(`{"jsonrpc":"2.0","id":1,"error":{"code":-32601,"message":"Method not found"}}`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &seen
}

func TestClient_Health(t *testing.T) {
	srv, _ := fakeNode(t)
	c := New(srv.URL, WithRetryPolicy(quickRetries))

	health, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", health)
}

func TestClient_Version(t *testing.T) {
	srv, _ := fakeNode(t)
	c := New(srv.URL, WithRetryPolicy(quickRetries))

	version, err := c.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.18.22", version)
}

func TestClient_Balance(t *testing.T) {
	srv, seen := fakeNode(t)
	c := New(srv.URL, WithRetryPolicy(quickRetries))

	balance, err := c.Balance(context.Background(), "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin")
	require.NoError(t, err)
	assert.Equal(t, uint64(2500000000), balance)

	require.Len(t, *seen, 1)
	assert.Equal(t, "getBalance", (*seen)[0].Method)
	assert.Equal(t, []any{"9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin"}, (*seen)[0].Params)
}

func TestClient_BalanceRequiresWallet(t *testing.T) {
	srv, seen := fakeNode(t)
	c := New(srv.URL, WithRetryPolicy(quickRetries))

	_, err := c.Balance(context.Background(), "")
	var verr *errors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, *seen)
}

func TestClient_LatestBlockhash(t *testing.T) {
	srv, _ := fakeNode(t)
	c := New(srv.URL, WithRetryPolicy(quickRetries))

	bh, err := c.LatestBlockhash(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "EkSnNWid2cvwEVnVx9aBqawnmiCNiDgp3gUdkDPTKN1N", bh.Blockhash)
	assert.Equal(t, uint64(3090), bh.LastValidBlockHeight)
}

func TestClient_RequestIDsIncrease(t *testing.T) {
	srv, seen := fakeNode(t)
	c := New(srv.URL, WithRetryPolicy(quickRetries))
	ctx := context.Background()

	_, err := c.Health(ctx)
	require.NoError(t, err)
	_, err = c.Version(ctx)
	require.NoError(t, err)

	require.Len(t, *seen, 2)
	assert.Greater(t, (*seen)[1].ID, (*seen)[0].ID)
}

func TestClient_RPCErrorSurfacesAsAPIError(t *testing.T) {
	srv, seen := fakeNode(t)
	c := New(srv.URL, WithRetryPolicy(retry.Policy{
		MaxRetries: 1, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond, ExponentialBase: 2,
	}))

	err := c.rpcCall(context.Background(), "getBogus", nil, nil)
	var aerr *errors.APIError
	require.ErrorAs(t, err, &aerr)
	assert.Contains(t, aerr.Message, "rpc error -32601")
	assert.Len(t, *seen, 1)
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var mu sync.Mutex
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		attempts++
		n := attempts
		mu.Unlock()
		if n < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":"ok"}`))
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, WithRetryPolicy(quickRetries))
	health, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", health)
	assert.Equal(t, 3, attempts)
}

func TestClient_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`these are not the bytes you are looking for`))
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, WithRetryPolicy(retry.Policy{
		MaxRetries: 1, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond, ExponentialBase: 2,
	}))
	_, err := c.Health(context.Background())
	var aerr *errors.APIError
	require.ErrorAs(t, err, &aerr)
	assert.Contains(t, aerr.Message, "failed to decode rpc response")
}

func TestClient_EmptyRPCURL(t *testing.T) {
	c := New("  ")
	_, err := c.Health(context.Background())
	var verr *errors.ValidationError
	require.ErrorAs(t, err, &verr)
}
