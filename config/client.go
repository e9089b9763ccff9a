package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// EnvPrefix is the prefix of all SDK environment variables, e.g.
// HYPERNODE_API_URL, HYPERNODE_RETRY_MAX_RETRIES.
const EnvPrefix = "HYPERNODE"

// RetryConfig holds the retry policy knobs as they appear in configuration
// sources. Durations accept Go syntax ("1s", "500ms").
type RetryConfig struct {
	MaxRetries      int           `mapstructure:"max_retries" yaml:"max_retries" env:"HYPERNODE_RETRY_MAX_RETRIES" env-default:"3" validate:"gte=0"`
	BaseDelay       time.Duration `mapstructure:"base_delay" yaml:"base_delay" env:"HYPERNODE_RETRY_BASE_DELAY" env-default:"1s" validate:"gt=0"`
	MaxDelay        time.Duration `mapstructure:"max_delay" yaml:"max_delay" env:"HYPERNODE_RETRY_MAX_DELAY" env-default:"30s" validate:"gtefield=BaseDelay"`
	ExponentialBase float64       `mapstructure:"exponential_base" yaml:"exponential_base" env:"HYPERNODE_RETRY_EXPONENTIAL_BASE" env-default:"2.0" validate:"gt=1"`
}

// ClientConfig is everything needed to construct a Client. The same struct
// loads through the viper path (LoadClient) and the cleanenv path
// (cleanenvport.Load), hence the doubled tags.
type ClientConfig struct {
	APIURL  string        `mapstructure:"api_url" yaml:"api_url" env:"HYPERNODE_API_URL" env-default:"https://api.hypernodesolana.org" validate:"required,url"`
	APIKey  string        `mapstructure:"api_key" yaml:"api_key" env:"HYPERNODE_API_KEY"`
	RPCURL  string        `mapstructure:"rpc_url" yaml:"rpc_url" env:"HYPERNODE_RPC_URL" env-default:"https://api.mainnet-beta.solana.com" validate:"omitempty,url"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout" env:"HYPERNODE_TIMEOUT" env-default:"30s" validate:"gt=0"`
	Retry   RetryConfig   `mapstructure:"retry" yaml:"retry"`
}

// DefaultClientConfig returns the configuration the client uses when nothing
// is overridden.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		APIURL:  "https://api.hypernodesolana.org",
		RPCURL:  "https://api.mainnet-beta.solana.com",
		Timeout: 30 * time.Second,
		Retry: RetryConfig{
			MaxRetries:      3,
			BaseDelay:       time.Second,
			MaxDelay:        30 * time.Second,
			ExponentialBase: 2.0,
		},
	}
}

// LoadClient builds a validated ClientConfig. configFilePath may be empty,
// in which case only the .env file and HYPERNODE_* environment variables are
// consulted on top of the defaults.
func LoadClient(configFilePath, envFilePath string) (ClientConfig, error) {
	c := New()
	setClientDefaults(c)

	var err error
	if configFilePath != "" {
		err = c.Load(configFilePath, envFilePath, EnvPrefix)
	} else {
		err = c.LoadEnv(envFilePath, EnvPrefix)
	}
	if err != nil {
		return ClientConfig{}, err
	}

	var cfg ClientConfig
	if err := c.Unmarshal(&cfg); err != nil {
		return ClientConfig{}, fmt.Errorf("failed to decode client config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return ClientConfig{}, fmt.Errorf("invalid client config: %w", err)
	}

	return cfg, nil
}

func setClientDefaults(c *Config) {
	defaults := DefaultClientConfig()
	c.SetDefault("api_url", defaults.APIURL)
	c.SetDefault("rpc_url", defaults.RPCURL)
	c.SetDefault("timeout", defaults.Timeout)
	c.SetDefault("retry.max_retries", defaults.Retry.MaxRetries)
	c.SetDefault("retry.base_delay", defaults.Retry.BaseDelay)
	c.SetDefault("retry.max_delay", defaults.Retry.MaxDelay)
	c.SetDefault("retry.exponential_base", defaults.Retry.ExponentialBase)
}
