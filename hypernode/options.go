package hypernode

import (
	"net/http"
	"time"

	"github.com/Hypernode-sol/hypernode-sdk-go/errors"
	"github.com/Hypernode-sol/hypernode-sdk-go/logger"
	"github.com/Hypernode-sol/hypernode-sdk-go/metric"
	"github.com/Hypernode-sol/hypernode-sdk-go/retry"
)

// Option is a functional option for configuring the Client.
type Option func(*Client) error

// WithAPIURL overrides the base URL of the Hypernode API.
func WithAPIURL(apiURL string) Option {
	return func(c *Client) error {
		c.apiURL = apiURL
		return nil
	}
}

// WithAPIKey sets the bearer token sent with every request.
func WithAPIKey(apiKey string) Option {
	return func(c *Client) error {
		c.apiKey = apiKey
		return nil
	}
}

// WithRPCURL overrides the Solana RPC endpoint used by Solana().
func WithRPCURL(rpcURL string) Option {
	return func(c *Client) error {
		c.rpcURL = rpcURL
		return nil
	}
}

// WithHTTPClient replaces the underlying HTTP client. Use this to supply a
// custom transport, proxy settings or an instrumented client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) error {
		if httpClient == nil {
			return errors.NewValidation("http client cannot be nil")
		}
		c.httpClient = httpClient
		return nil
	}
}

// WithTimeout sets the per-request timeout on the underlying HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) error {
		if timeout <= 0 {
			return errors.NewValidationField("timeout", "must be positive")
		}
		c.httpClient.Timeout = timeout
		return nil
	}
}

// WithRetryPolicy replaces the retry policy applied to every request.
// Zero-valued fields are filled with the policy defaults.
func WithRetryPolicy(policy retry.Policy) Option {
	return func(c *Client) error {
		c.policy = policy
		return nil
	}
}

// WithLogger attaches a logger. The client is silent by default.
func WithLogger(log logger.Logger) Option {
	return func(c *Client) error {
		if log == nil {
			return errors.NewValidation("logger cannot be nil")
		}
		c.logger = log
		return nil
	}
}

// WithMetrics attaches a metrics collector. Request counts, latencies and
// retry totals are recorded against it.
func WithMetrics(collector *metric.Collector) Option {
	return func(c *Client) error {
		c.metrics = collector
		return nil
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) error {
		if userAgent == "" {
			return errors.NewValidationField("user_agent", "cannot be empty")
		}
		c.userAgent = userAgent
		return nil
	}
}
