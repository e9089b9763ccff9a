// Package cleanenvport loads and validates SDK configuration from a file
// (YAML/JSON/TOML) or from environment variables alone, using cleanenv and
// validator. It is the lightweight alternative to the viper-based loader in
// the parent package.
package cleanenvport

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

var (
	// ErrConfigPathNotSet is returned when neither the --config flag nor
	// the HYPERNODE_CONFIG_PATH env var is set.
	ErrConfigPathNotSet = errors.New("config path not set")
	// ErrConfigFileNotFound is returned when the config file does not exist.
	ErrConfigFileNotFound = errors.New("config file not found")
	// ErrConfigValidation is returned when the config fails validation.
	ErrConfigValidation = errors.New("config validation failed")
)

// Load reads configuration from the file named by the --config flag or the
// HYPERNODE_CONFIG_PATH environment variable, then validates it against the
// struct's validate tags.
func Load(cfg any) error {
	path := fetchConfigPath()
	if path == "" {
		return fmt.Errorf("%w (use --config flag or HYPERNODE_CONFIG_PATH env)", ErrConfigPathNotSet)
	}
	return LoadPath(path, cfg)
}

// LoadPath loads and validates configuration from the given file path.
// cleanenv applies env and env-default tags on top of the file contents, so
// environment variables override the file.
func LoadPath(configPath string, cfg any) error {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrConfigFileNotFound, configPath)
	}

	if err := cleanenv.ReadConfig(configPath, cfg); err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	return validateStruct(cfg)
}

// LoadEnv populates cfg from environment variables and env-default tags
// only, with no file involved. This is the usual path for SDK users who
// configure everything through HYPERNODE_* variables.
func LoadEnv(cfg any) error {
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return fmt.Errorf("read env config: %w", err)
	}

	return validateStruct(cfg)
}

func validateStruct(cfg any) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("%w: %w", ErrConfigValidation, formatValidationError(err))
	}
	return nil
}

// formatValidationError flattens validator.ValidationErrors into one
// readable error: each field as "FieldName=value (tag)", joined with "; ".
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		var msgs []string
		for _, ve := range validationErrs {
			msgs = append(msgs, fmt.Sprintf("%s=%v (%s)", ve.Field(), ve.Value(), ve.Tag()))
		}
		return errors.New(strings.Join(msgs, "; "))
	}
	return err
}

// fetchConfigPath resolves the config file path from the --config flag,
// registering and parsing it when absent, with HYPERNODE_CONFIG_PATH as the
// fallback. Returns "" when neither is set.
func fetchConfigPath() string {
	var path string
	if f := flag.Lookup("config"); f != nil {
		path = f.Value.String()
	} else {
		flag.StringVar(&path, "config", "", "path to config file")
		flag.Parse()
	}
	if path == "" {
		path = os.Getenv("HYPERNODE_CONFIG_PATH")
	}
	return path
}
