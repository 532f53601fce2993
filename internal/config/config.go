package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvLenientTemplates = "CONTRACTGEN_LENIENT_TEMPLATES"
	EnvWatermill        = "CONTRACTGEN_WATERMILL"
	EnvOutputSuffix     = "CONTRACTGEN_OUTPUT_SUFFIX"
	EnvWatchDebounce    = "CONTRACTGEN_WATCH_DEBOUNCE"
	EnvLogFormat        = "LOG_FORMAT"
	EnvLogLevel         = "LOG_LEVEL"
)

// Defaults applied when a variable is unset.
const (
	DefaultOutputSuffix  = "_contract.go"
	DefaultWatchDebounce = 200 * time.Millisecond
	DefaultLogFormat     = "text"
)

// Config holds all configuration for the generator.
type Config struct {
	LenientTemplates bool
	Watermill        bool
	OutputSuffix     string        `validate:"required,endswith=.go,excludesall=/\\"`
	WatchDebounce    time.Duration `validate:"min=10ms,max=1m"`
	LogFormat        string        `validate:"oneof=text json"`
	LogLevel         string        `validate:"omitempty,oneof=debug info warn warning error"`
}

// Default returns the configuration used when no environment is set.
func Default() *Config {
	return &Config{
		OutputSuffix:  DefaultOutputSuffix,
		WatchDebounce: DefaultWatchDebounce,
		LogFormat:     DefaultLogFormat,
	}
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	} else if err != nil {
		slog.Debug("No .env file found, relying on environment variables")
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds and validates a Config from lookup.
func FromEnv(lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()

	var err error
	if v, ok := lookup(EnvLenientTemplates); ok && v != "" {
		if cfg.LenientTemplates, err = strconv.ParseBool(v); err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", EnvLenientTemplates, v, err)
		}
	}
	if v, ok := lookup(EnvWatermill); ok && v != "" {
		if cfg.Watermill, err = strconv.ParseBool(v); err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", EnvWatermill, v, err)
		}
	}
	if v, ok := lookup(EnvOutputSuffix); ok && v != "" {
		cfg.OutputSuffix = v
	}
	if v, ok := lookup(EnvWatchDebounce); ok && v != "" {
		if cfg.WatchDebounce, err = time.ParseDuration(v); err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", EnvWatchDebounce, v, err)
		}
	}
	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		cfg.LogFormat = v
	}
	if v, ok := lookup(EnvLogLevel); ok {
		cfg.LogLevel = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
