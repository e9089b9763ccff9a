package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultClientConfig(t *testing.T) {
	cfg := DefaultClientConfig()

	assert.Equal(t, "https://api.hypernodesolana.org", cfg.APIURL)
	assert.Equal(t, "https://api.mainnet-beta.solana.com", cfg.RPCURL)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 3, cfg.Retry.MaxRetries)
	assert.Equal(t, time.Second, cfg.Retry.BaseDelay)
	assert.Equal(t, 30*time.Second, cfg.Retry.MaxDelay)
	assert.Equal(t, 2.0, cfg.Retry.ExponentialBase)
}

func TestLoadClientFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hypernode.yaml")
	yaml := `
api_url: https://staging.hypernodesolana.org
api_key: hn_test_key
timeout: 10s
retry:
  max_retries: 5
  base_delay: 200ms
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := LoadClient(path, "")
	require.NoError(t, err)

	assert.Equal(t, "https://staging.hypernodesolana.org", cfg.APIURL)
	assert.Equal(t, "hn_test_key", cfg.APIKey)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, 5, cfg.Retry.MaxRetries)
	assert.Equal(t, 200*time.Millisecond, cfg.Retry.BaseDelay)

	// Untouched keys keep their defaults.
	assert.Equal(t, "https://api.mainnet-beta.solana.com", cfg.RPCURL)
	assert.Equal(t, 30*time.Second, cfg.Retry.MaxDelay)
	assert.Equal(t, 2.0, cfg.Retry.ExponentialBase)
}

func TestLoadClientFromEnvironment(t *testing.T) {
	t.Setenv("HYPERNODE_API_KEY", "hn_env_key")
	t.Setenv("HYPERNODE_RETRY_MAX_RETRIES", "7")
	t.Setenv("HYPERNODE_TIMEOUT", "45s")

	cfg, err := LoadClient("", "")
	require.NoError(t, err)

	assert.Equal(t, "hn_env_key", cfg.APIKey)
	assert.Equal(t, 7, cfg.Retry.MaxRetries)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
	assert.Equal(t, "https://api.hypernodesolana.org", cfg.APIURL)
}

func TestLoadClientRejectsInvalidValues(t *testing.T) {
	t.Setenv("HYPERNODE_API_URL", "not a url")

	_, err := LoadClient("", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid client config")
}

func TestLoadClientMissingFile(t *testing.T) {
	_, err := LoadClient(filepath.Join(t.TempDir(), "absent.yaml"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
}
