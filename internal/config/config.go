// Package config loads replayfs settings from a YAML file, the environment
// and command-line overrides, in that order of increasing priority.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvCapacity     = "REPLAYFS_CAPACITY"
	EnvRequiredFree = "REPLAYFS_REQUIRED_FREE"
	EnvThreshold    = "REPLAYFS_THRESHOLD"
	EnvIncludeEmpty = "REPLAYFS_INCLUDE_EMPTY"
	EnvConflict     = "REPLAYFS_CONFLICT_POLICY"
	EnvLogLevel     = "REPLAYFS_LOG_LEVEL"
	EnvEnvironment  = "REPLAYFS_ENVIRONMENT"
)

// Config holds all application configuration
type Config struct {
	// Disk model for the free-space query
	Capacity     uint64 `yaml:"capacity" validate:"gt=0"`
	RequiredFree uint64 `yaml:"required_free" validate:"ltefield=Capacity"`

	// Threshold query
	Threshold    uint64 `yaml:"threshold"`
	IncludeEmpty bool   `yaml:"include_empty"`

	// Replay
	ConflictPolicy string `yaml:"conflict_policy" validate:"oneof=reject last-write-wins lww"`

	// Logging
	LogLevel    string `yaml:"log_level" validate:"oneof=debug info warn error"`
	Environment string `yaml:"environment" validate:"oneof=development production"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Capacity:       70000000,
		RequiredFree:   30000000,
		Threshold:      100000,
		IncludeEmpty:   false,
		ConflictPolicy: "reject",
		LogLevel:       "info",
		Environment:    "development",
	}
}

// Load builds the configuration from defaults, the YAML file at path (if path
// is not empty) and REPLAYFS_* environment variables, then validates it.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.loadEnvironment(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config file %s does not exist", path)
	}
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) loadEnvironment() error {
	var err error
	if c.Capacity, err = getEnvUint(EnvCapacity, c.Capacity); err != nil {
		return err
	}
	if c.RequiredFree, err = getEnvUint(EnvRequiredFree, c.RequiredFree); err != nil {
		return err
	}
	if c.Threshold, err = getEnvUint(EnvThreshold, c.Threshold); err != nil {
		return err
	}
	c.IncludeEmpty = getEnvBool(EnvIncludeEmpty, c.IncludeEmpty)
	c.ConflictPolicy = getEnv(EnvConflict, c.ConflictPolicy)
	c.LogLevel = strings.ToLower(getEnv(EnvLogLevel, c.LogLevel))
	c.Environment = strings.ToLower(getEnv(EnvEnvironment, c.Environment))
	return nil
}

var validate = validator.New()

// Validate checks the configuration against its validation tags.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// formatValidationError turns validator errors into one readable message.
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, formatFieldError(e))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func formatFieldError(e validator.FieldError) string {
	field := toSnake(e.Field())
	switch e.Tag() {
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, e.Param())
	case "ltefield":
		return fmt.Sprintf("%s must not exceed %s", field, toSnake(e.Param()))
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// toSnake maps a Go field name to its YAML key, e.g. RequiredFree -> required_free.
func toSnake(s string) string {
	var sb strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				sb.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvUint gets an unsigned integer environment variable with a default value.
// A malformed value is an error.
func getEnvUint(key string, defaultValue uint64) (uint64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a non-negative integer", key, value)
	}
	return v, nil
}
