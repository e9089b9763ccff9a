// Package config loads SDK configuration from files, .env files,
// environment variables and command-line flags, in that order of
// precedence, using Viper underneath.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config wraps a Viper instance.
type Config struct {
	v *viper.Viper
}

// New creates an empty Config.
func New() *Config {
	return &Config{v: viper.New()}
}

// Load reads configuration from the given file, loading a .env file first
// when one is passed. Environment variables (with the given prefix) and
// already-parsed command-line flags are bound as overrides.
func (c *Config) Load(configFilePath, envFilePath, envPrefix string) error {
	if envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil {
			return fmt.Errorf("failed to load .env file %s: %w", envFilePath, err)
		}
	}

	c.bindEnv(envPrefix)

	c.v.SetConfigFile(configFilePath)
	if err := c.v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config %s: %w", configFilePath, err)
	}

	c.v.BindPFlags(pflag.CommandLine)

	return nil
}

// LoadEnv is Load without a config file: .env plus environment variables
// only. SDK users typically configure the client this way.
func (c *Config) LoadEnv(envFilePath, envPrefix string) error {
	if envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil {
			return fmt.Errorf("failed to load .env file %s: %w", envFilePath, err)
		}
	}

	c.bindEnv(envPrefix)

	return nil
}

func (c *Config) bindEnv(envPrefix string) {
	c.v.AutomaticEnv()
	if envPrefix != "" {
		c.v.SetEnvPrefix(envPrefix)
	}
	c.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

// DefineFlag declares a flag (short and long form) and binds it to a
// configuration key.
func (c *Config) DefineFlag(short, long, configKey string, defaultValue any, usage string) (err error) {
	switch v := defaultValue.(type) {
	case string:
		pflag.StringP(long, short, v, usage)
		err = c.v.BindPFlag(configKey, pflag.Lookup(long))
	case int:
		pflag.IntP(long, short, v, usage)
		err = c.v.BindPFlag(configKey, pflag.Lookup(long))
	case bool:
		pflag.BoolP(long, short, v, usage)
		err = c.v.BindPFlag(configKey, pflag.Lookup(long))
	case float64:
		pflag.Float64P(long, short, v, usage)
		err = c.v.BindPFlag(configKey, pflag.Lookup(long))
	case []string:
		pflag.StringSliceP(long, short, v, usage)
		err = c.v.BindPFlag(configKey, pflag.Lookup(long))
	case []int:
		pflag.IntSliceP(long, short, v, usage)
		err = c.v.BindPFlag(configKey, pflag.Lookup(long))
	case time.Duration:
		pflag.DurationP(long, short, v, usage)
		err = c.v.BindPFlag(configKey, pflag.Lookup(long))
	}
	return
}

// ParseFlags parses the declared flags.
func (c *Config) ParseFlags() {
	pflag.Parse()
}

// GetString returns the string value for a key.
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt returns the integer value for a key.
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetBool returns the boolean value for a key.
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetFloat64 returns the float value for a key.
func (c *Config) GetFloat64(key string) float64 {
	return c.v.GetFloat64(key)
}

// GetTime returns the time value for a key.
func (c *Config) GetTime(key string) time.Time {
	return c.v.GetTime(key)
}

// GetDuration returns the duration value for a key.
func (c *Config) GetDuration(key string) time.Duration {
	return c.v.GetDuration(key)
}

// GetStringSlice returns the string slice value for a key.
func (c *Config) GetStringSlice(key string) []string {
	return c.v.GetStringSlice(key)
}

// GetIntSlice returns the int slice value for a key.
func (c *Config) GetIntSlice(key string) []int {
	return c.v.GetIntSlice(key)
}

// Unmarshal decodes the loaded configuration into a struct.
func (c *Config) Unmarshal(rawVal any, opts ...viper.DecoderConfigOption) error {
	return c.v.Unmarshal(rawVal, opts...)
}

// SetDefault sets a fallback value for a key.
func (c *Config) SetDefault(key string, value any) {
	c.v.SetDefault(key, value)
}
