package hypernode

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Hypernode-sol/hypernode-sdk-go/errors"
)

// Metrics returns an aggregate snapshot of network activity.
func (c *Client) Metrics(ctx context.Context) (*NetworkMetrics, error) {
	var out NetworkMetrics
	err := c.do(ctx, call{
		method: http.MethodGet,
		route:  "/v1/metrics",
		path:   "/v1/metrics",
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Stake returns the staking position of a wallet.
func (c *Client) Stake(ctx context.Context, walletAddress string) (*StakeInfo, error) {
	if walletAddress == "" {
		return nil, errors.NewValidation("wallet address cannot be empty")
	}
	var out StakeInfo
	err := c.do(ctx, call{
		method: http.MethodGet,
		route:  "/v1/stake/{wallet}",
		path:   "/v1/stake/" + url.PathEscape(walletAddress),
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
