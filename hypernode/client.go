package hypernode

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Hypernode-sol/hypernode-sdk-go/config"
	"github.com/Hypernode-sol/hypernode-sdk-go/errors"
	"github.com/Hypernode-sol/hypernode-sdk-go/logger"
	"github.com/Hypernode-sol/hypernode-sdk-go/metric"
	"github.com/Hypernode-sol/hypernode-sdk-go/retry"
	"github.com/Hypernode-sol/hypernode-sdk-go/solana"
)

// Version is the SDK release version, reported in the User-Agent header.
const Version = "1.0.0"

const (
	// DefaultAPIURL is the production Hypernode API endpoint.
	DefaultAPIURL = "https://api.hypernodesolana.org"
	// DefaultRPCURL is the Solana mainnet-beta RPC endpoint.
	DefaultRPCURL = "https://api.mainnet-beta.solana.com"

	defaultTimeout = 30 * time.Second
)

// Client talks to the Hypernode API. Construct it with New; the zero value
// is not usable.
type Client struct {
	apiURL     string
	rpcURL     string
	apiKey     string
	userAgent  string
	httpClient *http.Client
	policy     retry.Policy
	logger     logger.Logger
	metrics    *metric.Collector
	validate   *validator.Validate

	solanaOnce sync.Once
	solana     *solana.Client
}

// New creates a Client with the given options applied over the defaults:
// the production API URL, Solana mainnet RPC, a 30 second request timeout
// and the default retry policy.
func New(opts ...Option) (*Client, error) {
	c := &Client{
		apiURL:     DefaultAPIURL,
		rpcURL:     DefaultRPCURL,
		userAgent:  "hypernode-sdk-go/" + Version,
		httpClient: &http.Client{Timeout: defaultTimeout},
		policy:     retry.DefaultPolicy(),
		logger:     logger.Noop(),
		validate:   newValidator(),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	apiURL, err := normalizeBaseURL(c.apiURL)
	if err != nil {
		return nil, err
	}
	c.apiURL = apiURL

	c.rpcURL = strings.TrimSpace(c.rpcURL)
	if c.rpcURL == "" {
		c.rpcURL = DefaultRPCURL
	}

	return c, nil
}

// NewFromConfig creates a Client from a loaded configuration. Options are
// applied after the configuration and take precedence over it.
func NewFromConfig(cfg config.ClientConfig, opts ...Option) (*Client, error) {
	base := []Option{
		WithAPIURL(cfg.APIURL),
		WithTimeout(cfg.Timeout),
		WithRetryPolicy(retry.Policy{
			MaxRetries:      cfg.Retry.MaxRetries,
			BaseDelay:       cfg.Retry.BaseDelay,
			MaxDelay:        cfg.Retry.MaxDelay,
			ExponentialBase: cfg.Retry.ExponentialBase,
		}),
	}
	if cfg.APIKey != "" {
		base = append(base, WithAPIKey(cfg.APIKey))
	}
	if cfg.RPCURL != "" {
		base = append(base, WithRPCURL(cfg.RPCURL))
	}
	return New(append(base, opts...)...)
}

// Close releases idle connections held by the underlying HTTP client.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// Solana returns a lazily constructed Solana RPC client bound to the
// configured RPC endpoint. It shares the HTTP client and retry policy.
func (c *Client) Solana() *solana.Client {
	c.solanaOnce.Do(func() {
		c.solana = solana.New(c.rpcURL,
			solana.WithHTTPClient(c.httpClient),
			solana.WithRetryPolicy(c.policy),
			solana.WithLogger(c.logger),
		)
	})
	return c.solana
}

// newValidator builds the request validator. Field names in validation
// errors use the json tag so they match the wire format.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (c *Client) validateStruct(v any) error {
	err := c.validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if stderrors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return errors.NewValidationField(fe.Field(), fmt.Sprintf("failed on the %q rule", fe.Tag()))
	}
	return errors.NewValidation(err.Error())
}

// normalizeBaseURL trims whitespace and trailing slashes and rejects URLs
// that are empty or not absolute.
func normalizeBaseURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", errors.NewValidation("api_url cannot be empty")
	}
	u, err := url.Parse(trimmed)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", errors.NewValidationField("api_url", "must be an absolute http(s) URL")
	}
	return strings.TrimRight(trimmed, "/"), nil
}
