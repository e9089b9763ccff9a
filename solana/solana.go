// Package solana is a minimal Solana JSON-RPC client covering the calls
// the SDK needs: node health, node version, wallet balances and recent
// blockhashes. It shares the retry policy and error taxonomy of the rest
// of the SDK, so transient RPC failures are retried with backoff and
// surface as the same error types API calls produce.
package solana

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/Hypernode-sol/hypernode-sdk-go/errors"
	"github.com/Hypernode-sol/hypernode-sdk-go/logger"
	"github.com/Hypernode-sol/hypernode-sdk-go/retry"
)

const maxResponseBytes = 4 << 20

// Client talks to a Solana RPC node. Construct it with New; the zero
// value is not usable.
type Client struct {
	rpcURL     string
	httpClient *http.Client
	policy     retry.Policy
	logger     logger.Logger
	nextID     atomic.Int64
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithRetryPolicy replaces the retry policy applied to every RPC call.
func WithRetryPolicy(policy retry.Policy) Option {
	return func(c *Client) {
		c.policy = policy
	}
}

// WithLogger attaches a logger. The client is silent by default.
func WithLogger(log logger.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.logger = log
		}
	}
}

// New creates a Client for the given RPC endpoint.
func New(rpcURL string, opts ...Option) *Client {
	c := &Client{
		rpcURL:     strings.TrimRight(strings.TrimSpace(rpcURL), "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		policy:     retry.DefaultPolicy(),
		logger:     logger.Noop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int64  `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

// rpcCall performs one JSON-RPC exchange with retries and decodes the
// result field into out.
func (c *Client) rpcCall(ctx context.Context, method string, params []any, out any) error {
	if c.rpcURL == "" {
		return errors.NewValidation("rpc_url cannot be empty")
	}

	ctx = logger.EnsureRequestID(ctx)
	payload, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      c.nextID.Add(1),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return errors.NewValidation("failed to encode rpc request: " + err.Error())
	}

	start := time.Now()
	status := 0
	err = retry.DoContext(ctx, c.policy, func(ctx context.Context) error {
		return c.roundTrip(ctx, payload, out, &status)
	})
	c.logger.LogRequest(ctx, http.MethodPost, "rpc/"+method, status, time.Since(start))
	return err
}

func (c *Client) roundTrip(ctx context.Context, payload []byte, out any, lastStatus *int) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.rpcURL, bytes.NewReader(payload))
	if err != nil {
		return errors.NewValidationField("rpc_url", err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

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

	var rpcResp rpcResponse
	if err := json.Unmarshal(raw, &rpcResp); err != nil {
		return errors.NewAPI(resp.StatusCode, "failed to decode rpc response: "+err.Error())
	}
	if rpcResp.Error != nil {
		return errors.NewAPI(resp.StatusCode,
			fmt.Sprintf("rpc error %d: %s", rpcResp.Error.Code, rpcResp.Error.Message))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(rpcResp.Result, out); err != nil {
		return errors.NewAPI(resp.StatusCode, "failed to decode rpc result: "+err.Error())
	}
	return nil
}

// Health reports the health of the RPC node, "ok" when healthy.
func (c *Client) Health(ctx context.Context) (string, error) {
	var out string
	if err := c.rpcCall(ctx, "getHealth", nil, &out); err != nil {
		return "", err
	}
	return out, nil
}

// Version returns the solana-core version of the RPC node.
func (c *Client) Version(ctx context.Context) (string, error) {
	var out struct {
		SolanaCore string `json:"solana-core"`
	}
	if err := c.rpcCall(ctx, "getVersion", nil, &out); err != nil {
		return "", err
	}
	return out.SolanaCore, nil
}

// Balance returns the balance of a wallet in lamports.
func (c *Client) Balance(ctx context.Context, walletAddress string) (uint64, error) {
	if walletAddress == "" {
		return 0, errors.NewValidation("wallet address cannot be empty")
	}
	var out struct {
		Value uint64 `json:"value"`
	}
	if err := c.rpcCall(ctx, "getBalance", []any{walletAddress}, &out); err != nil {
		return 0, err
	}
	return out.Value, nil
}

// Blockhash is a recent blockhash together with the last block height at
// which a transaction using it is still valid.
type Blockhash struct {
	Blockhash            string `json:"blockhash"`
	LastValidBlockHeight uint64 `json:"lastValidBlockHeight"`
}

// LatestBlockhash returns the most recent blockhash known to the node.
func (c *Client) LatestBlockhash(ctx context.Context) (*Blockhash, error) {
	var out struct {
		Value Blockhash `json:"value"`
	}
	if err := c.rpcCall(ctx, "getLatestBlockhash", nil, &out); err != nil {
		return nil, err
	}
	return &out.Value, nil
}
