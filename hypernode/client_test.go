package hypernode

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hypernode-sol/hypernode-sdk-go/config"
	"github.com/Hypernode-sol/hypernode-sdk-go/errors"
	"github.com/Hypernode-sol/hypernode-sdk-go/retry"
)

func TestNew_Defaults(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIURL, c.apiURL)
	assert.Equal(t, DefaultRPCURL, c.rpcURL)
	assert.Equal(t, "hypernode-sdk-go/"+Version, c.userAgent)
	assert.Equal(t, 30*time.Second, c.httpClient.Timeout)
	assert.Equal(t, retry.DefaultPolicy(), c.policy)
	assert.Empty(t, c.apiKey)
}

func TestNew_EmptyAPIURL(t *testing.T) {
	for _, raw := range []string{"", "   ", "\t\n"} {
		_, err := New(WithAPIURL(raw))
		require.Error(t, err)

		var verr *errors.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "validation error: api_url cannot be empty", err.Error())
	}
}

func TestNew_InvalidAPIURL(t *testing.T) {
	for _, raw := range []string{"not a url", "/relative/path", "api.example.com"} {
		_, err := New(WithAPIURL(raw))
		require.Error(t, err, "url %q should be rejected", raw)

		var verr *errors.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "api_url", verr.Field)
	}
}

func TestNew_TrimsTrailingSlash(t *testing.T) {
	c, err := New(WithAPIURL("https://api.example.com/"))
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", c.apiURL)
}

func TestNew_OptionErrors(t *testing.T) {
	_, err := New(WithHTTPClient(nil))
	assert.Error(t, err)

	_, err = New(WithLogger(nil))
	assert.Error(t, err)

	_, err = New(WithUserAgent(""))
	assert.Error(t, err)

	_, err = New(WithTimeout(-time.Second))
	assert.Error(t, err)
}

func TestNew_EmptyRPCURLFallsBackToDefault(t *testing.T) {
	c, err := New(WithRPCURL("  "))
	require.NoError(t, err)
	assert.Equal(t, DefaultRPCURL, c.rpcURL)
}

func TestNewFromConfig(t *testing.T) {
	cfg := config.ClientConfig{
		APIURL:  "https://api.staging.example.com/",
		APIKey:  "cfg-key",
		RPCURL:  "https://rpc.staging.example.com",
		Timeout: 5 * time.Second,
		Retry: config.RetryConfig{
			MaxRetries:      7,
			BaseDelay:       2 * time.Second,
			MaxDelay:        8 * time.Second,
			ExponentialBase: 3,
		},
	}

	c, err := NewFromConfig(cfg)
	require.NoError(t, err)

	assert.Equal(t, "https://api.staging.example.com", c.apiURL)
	assert.Equal(t, "cfg-key", c.apiKey)
	assert.Equal(t, "https://rpc.staging.example.com", c.rpcURL)
	assert.Equal(t, 5*time.Second, c.httpClient.Timeout)
	assert.Equal(t, 7, c.policy.MaxRetries)
	assert.Equal(t, 2*time.Second, c.policy.BaseDelay)
	assert.Equal(t, 8*time.Second, c.policy.MaxDelay)
	assert.Equal(t, 3.0, c.policy.ExponentialBase)
}

func TestNewFromConfig_OptionsTakePrecedence(t *testing.T) {
	cfg := config.DefaultClientConfig()
	cfg.APIKey = "from-config"

	c, err := NewFromConfig(cfg, WithAPIKey("from-option"))
	require.NoError(t, err)
	assert.Equal(t, "from-option", c.apiKey)
}

func TestClient_SolanaIsConstructedOnce(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	assert.Same(t, c.Solana(), c.Solana())
}

func TestValidateStruct_UsesWireFieldNames(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	verr := c.validateStruct(DeploymentConfig{Template: TemplatePyTorch})
	require.Error(t, verr)

	var v *errors.ValidationError
	require.ErrorAs(t, verr, &v)
	assert.Equal(t, "model", v.Field)

	verr = c.validateStruct(DeploymentConfig{Model: "m", Template: "vax"})
	require.Error(t, verr)
	require.ErrorAs(t, verr, &v)
	assert.Equal(t, "template", v.Field)
}
